// Package share 提供文件分享链接的签发与访问控制服务
// 分享令牌是访问文件的唯一凭据，持有合法令牌即可匿名访问，
// 无需租户凭证，访问前依次校验撤销状态、有效期和访问密码
package share

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	stderrors "errors"
	"strings"
	"time"

	"github.com/weiwangfds/filegate/config"
	"github.com/weiwangfds/filegate/internal/database"
	"github.com/weiwangfds/filegate/internal/errors"
	"github.com/weiwangfds/filegate/internal/logger"
	"github.com/weiwangfds/filegate/internal/service/file"
	"github.com/weiwangfds/filegate/internal/service/storage"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	// TokenPrefix 分享令牌的固定前缀，用于在查库前快速识别非法令牌
	TokenPrefix = "fs_"
	// tokenRandomBytes 令牌随机部分的字节数，128位熵
	tokenRandomBytes = 16
	// tokenLength 完整令牌长度，前缀3字符加32个十六进制字符
	tokenLength = len(TokenPrefix) + tokenRandomBytes*2
)

// CreateInput 创建分享链接的参数
type CreateInput struct {
	FileID     uint   // 要分享的文件ID
	TTLSeconds int64  // 有效期（秒），0表示使用默认有效期
	Password   string // 可选的访问密码，空串表示无密码
}

// AccessInput 访问分享链接的参数
type AccessInput struct {
	Token    string // 分享令牌
	Password string // 访问密码，无密码分享时忽略
}

// CreateResult 分享创建成功后的结果
// TTLSeconds是实际生效的有效期，请求有效期为0时为配置的默认值
type CreateResult struct {
	Link       *database.ShareLink // 新建的分享链接记录
	ShareURL   string              // 公开访问地址
	TTLSeconds int64               // 实际生效的有效期（秒）
}

// AccessResult 分享访问成功后的结果
type AccessResult struct {
	File           *database.FileObject `json:"file"`             // 文件元数据，存储键不序列化
	DownloadURL    string               `json:"download_url"`     // 限时下载链接
	ExpiresIn      int64                `json:"expires_in"`       // 下载链接有效期（秒）
	ShareExpiresAt time.Time            `json:"share_expires_at"` // 分享链接本身的过期时间
	AccessCount    int64                `json:"access_count"`     // 本次访问后的累计访问次数
}

// ShareService 分享链接服务接口
type ShareService interface {
	// Create 为文件创建分享链接
	// 创建前校验文件归属，有效期超过上限或非正数时拒绝
	// 设置了密码的分享在访问时必须提供正确密码
	// 返回结果携带实际生效的有效期，调用方无需从过期时间反推
	Create(tenantID uint, input CreateInput) (*CreateResult, error)

	// Access 通过令牌访问分享
	// 校验顺序: 令牌格式、存在性、撤销状态、有效期、密码
	// 撤销判定先于过期判定，已撤销的过期分享报告已撤销
	// 通过全部校验后签发限时下载链接并累加访问计数
	Access(ctx context.Context, input AccessInput) (*AccessResult, error)

	// ListForFile 列出文件的全部分享链接（含归属检查）
	ListForFile(tenantID uint, fileID uint) ([]database.ShareLink, error)

	// Revoke 撤销分享链接
	// 撤销是单向操作，已撤销的链接不可恢复，重复撤销幂等成功
	Revoke(tenantID uint, token string) error

	// ShareURL 构建分享链接的公开访问地址
	ShareURL(token string) string
}

// shareService 分享服务实现
type shareService struct {
	db    *gorm.DB
	store storage.ObjectStore
	files file.FileService
	cfg   config.ShareConfig
}

// NewShareService 创建分享服务实例
// 参数:
//   - db: 数据库连接实例
//   - store: 对象存储实例，用于签发下载链接
//   - files: 文件服务，用于归属检查
//   - cfg: 分享相关配置
func NewShareService(db *gorm.DB, store storage.ObjectStore, files file.FileService, cfg config.ShareConfig) ShareService {
	return &shareService{
		db:    db,
		store: store,
		files: files,
		cfg:   cfg,
	}
}

// Create 为文件创建分享链接
func (s *shareService) Create(tenantID uint, input CreateInput) (*CreateResult, error) {
	// 归属检查必须先于任何令牌生成
	record, err := s.files.GetByID(tenantID, input.FileID)
	if err != nil {
		return nil, err
	}

	ttl := input.TTLSeconds
	if ttl == 0 {
		ttl = s.cfg.DefaultTTLSeconds
	}
	if ttl < 0 || ttl > s.cfg.MaxTTLSeconds {
		return nil, errors.New(errors.ErrShareTTLInvalid)
	}

	var passwordHash *string
	if input.Password != "" {
		if len(input.Password) < s.cfg.MinPasswordLength {
			return nil, errors.New(errors.ErrSharePasswordTooShort)
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.cfg.BcryptCost)
		if err != nil {
			return nil, errors.Wrap(errors.ErrShareCreateFailed, err)
		}
		hashed := string(hash)
		passwordHash = &hashed
	}

	token, err := generateToken()
	if err != nil {
		return nil, errors.Wrap(errors.ErrShareCreateFailed, err)
	}

	link := &database.ShareLink{
		Token:        token,
		FileID:       record.ID,
		ExpiresAt:    time.Now().Add(time.Duration(ttl) * time.Second),
		PasswordHash: passwordHash,
		IsActive:     true,
	}

	if err := s.db.Create(link).Error; err != nil {
		logger.Errorf("创建分享链接失败: 文件%d, 错误: %v", record.ID, err)
		return nil, errors.Wrap(errors.ErrDatabaseInsert, err)
	}

	logger.Infof("分享链接已创建: 文件%d, 有效期至%s, 密码保护: %t",
		record.ID, link.ExpiresAt.Format(time.RFC3339), link.HasPassword())
	return &CreateResult{
		Link:       link,
		ShareURL:   s.ShareURL(token),
		TTLSeconds: ttl,
	}, nil
}

// Access 通过令牌访问分享
func (s *shareService) Access(ctx context.Context, input AccessInput) (*AccessResult, error) {
	if !ValidTokenSyntax(input.Token) {
		return nil, errors.New(errors.ErrShareTokenInvalid)
	}

	var link database.ShareLink
	err := s.db.Preload("File").Where("token = ?", input.Token).First(&link).Error
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New(errors.ErrShareNotFound)
		}
		return nil, errors.Wrap(errors.ErrDatabaseQuery, err)
	}

	// 撤销判定先于过期判定
	if !link.IsActive {
		return nil, errors.New(errors.ErrShareRevoked)
	}
	if !time.Now().Before(link.ExpiresAt) {
		return nil, errors.New(errors.ErrShareExpired)
	}

	if link.HasPassword() {
		if input.Password == "" {
			return nil, errors.New(errors.ErrSharePasswordRequired)
		}
		if err := bcrypt.CompareHashAndPassword([]byte(*link.PasswordHash), []byte(input.Password)); err != nil {
			return nil, errors.New(errors.ErrSharePasswordInvalid)
		}
	}

	if link.File == nil {
		logger.Errorf("分享链接指向的文件记录缺失: %d", link.FileID)
		return nil, errors.New(errors.ErrFileNotFound)
	}

	presignTTL := time.Duration(s.cfg.PresignTTLSeconds) * time.Second
	downloadURL, err := s.store.PresignedGetURL(ctx, link.File.StorageKey, presignTTL)
	if err != nil {
		logger.Errorf("签发下载链接失败: %s, 错误: %v", link.File.StorageKey, err)
		return nil, errors.Wrap(errors.ErrStoragePresignFailed, err)
	}

	// 访问计数尽力而为，失败不阻断访问
	accessCount := link.AccessCount + 1
	if err := s.db.Model(&database.ShareLink{}).
		Where("id = ?", link.ID).
		UpdateColumn("access_count", gorm.Expr("access_count + ?", 1)).Error; err != nil {
		logger.Warnf("累加分享访问计数失败: %d, 错误: %v", link.ID, err)
	}

	return &AccessResult{
		File:           link.File,
		DownloadURL:    downloadURL,
		ExpiresIn:      s.cfg.PresignTTLSeconds,
		ShareExpiresAt: link.ExpiresAt,
		AccessCount:    accessCount,
	}, nil
}

// ListForFile 列出文件的全部分享链接（含归属检查）
func (s *shareService) ListForFile(tenantID uint, fileID uint) ([]database.ShareLink, error) {
	if _, err := s.files.GetByID(tenantID, fileID); err != nil {
		return nil, err
	}

	var links []database.ShareLink
	if err := s.db.Where("file_id = ?", fileID).
		Order("created_at DESC, id DESC").
		Find(&links).Error; err != nil {
		return nil, errors.Wrap(errors.ErrDatabaseQuery, err)
	}

	return links, nil
}

// Revoke 撤销分享链接
func (s *shareService) Revoke(tenantID uint, token string) error {
	if !ValidTokenSyntax(token) {
		return errors.New(errors.ErrShareTokenInvalid)
	}

	var link database.ShareLink
	if err := s.db.Preload("File").Where("token = ?", token).First(&link).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New(errors.ErrShareNotFound)
		}
		return errors.Wrap(errors.ErrDatabaseQuery, err)
	}

	// 撤销需要持有对应文件的归属权
	if link.File == nil || !link.File.OwnedBy(tenantID) {
		return errors.New(errors.ErrForbidden)
	}

	if !link.IsActive {
		return nil
	}

	if err := s.db.Model(&link).UpdateColumn("is_active", false).Error; err != nil {
		logger.Errorf("撤销分享链接失败: %d, 错误: %v", link.ID, err)
		return errors.Wrap(errors.ErrDatabaseUpdate, err)
	}

	logger.Infof("分享链接已撤销: 文件%d, 链接%d", link.FileID, link.ID)
	return nil
}

// ShareURL 构建分享链接的公开访问地址
func (s *shareService) ShareURL(token string) string {
	base := strings.TrimRight(s.cfg.PublicBaseURL, "/")
	return base + "/s/" + token
}

// ValidTokenSyntax 判断令牌格式是否合法
// 合法令牌为固定前缀加32个小写十六进制字符，格式不符直接拒绝，
// 避免对随意构造的字符串查库
func ValidTokenSyntax(token string) bool {
	if len(token) != tokenLength || !strings.HasPrefix(token, TokenPrefix) {
		return false
	}
	for _, c := range token[len(TokenPrefix):] {
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}

// generateToken 生成分享令牌
// 随机部分来自加密安全随机源，128位熵
func generateToken() (string, error) {
	buf := make([]byte, tokenRandomBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return TokenPrefix + hex.EncodeToString(buf), nil
}
