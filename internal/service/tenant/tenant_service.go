// Package tenant 提供租户身份解析相关的业务逻辑服务
// 每个经过认证的请求都先经由本服务将访问密钥解析为租户身份
package tenant

import (
	"crypto/rand"
	"encoding/hex"
	stderrors "errors"
	"fmt"

	"github.com/weiwangfds/filegate/internal/database"
	"github.com/weiwangfds/filegate/internal/errors"
	"github.com/weiwangfds/filegate/internal/logger"
	"gorm.io/gorm"
)

// 访问密钥格式：固定前缀 + 32位十六进制随机串
const (
	accessKeyPrefix    = "ak_"
	accessKeyRandBytes = 16
)

// TenantService 租户服务接口
// 提供访问密钥到租户身份的解析，以及凭证的管理操作
// 凭证创建和停用属于管理操作，不暴露公开HTTP接口
type TenantService interface {
	// Resolve 将访问密钥解析为租户身份
	// 参数:
	//   accessKey - 请求携带的访问密钥
	// 返回:
	//   *database.TenantCredential - 租户凭证记录
	//   error - 密钥缺失、未知或已停用时返回未授权错误
	// 注意:
	//   - 未知密钥和已停用密钥返回完全相同的错误，不泄露凭证是否存在
	Resolve(accessKey string) (*database.TenantCredential, error)

	// CreateCredential 创建租户凭证
	// 返回凭证记录和明文访问密钥；明文只在创建时返回一次
	CreateCredential(name string) (*database.TenantCredential, string, error)

	// DeactivateCredential 停用租户凭证
	// 停用后密钥立即失效，没有恢复接口
	DeactivateCredential(id uint) error
}

// tenantService 租户服务实现
type tenantService struct {
	db *gorm.DB
}

// NewTenantService 创建租户服务实例
func NewTenantService(db *gorm.DB) TenantService {
	return &tenantService{db: db}
}

// Resolve 将访问密钥解析为租户身份
func (s *tenantService) Resolve(accessKey string) (*database.TenantCredential, error) {
	if accessKey == "" {
		return nil, errors.New(errors.ErrUnauthorized)
	}

	var credential database.TenantCredential
	err := s.db.Where("access_key = ?", accessKey).First(&credential).Error
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			// 未知密钥与停用密钥必须不可区分
			return nil, errors.New(errors.ErrUnauthorized)
		}
		logger.Errorf("解析租户凭证失败: %v", err)
		return nil, errors.Wrap(errors.ErrDatabaseQuery, err)
	}

	if !credential.IsActive {
		return nil, errors.New(errors.ErrUnauthorized)
	}

	return &credential, nil
}

// CreateCredential 创建租户凭证
func (s *tenantService) CreateCredential(name string) (*database.TenantCredential, string, error) {
	if name == "" {
		return nil, "", errors.New(errors.ErrInvalidParams).WithDetails("tenant name is required")
	}

	accessKey, err := generateAccessKey()
	if err != nil {
		return nil, "", errors.Wrap(errors.ErrInternalServer, err)
	}

	credential := &database.TenantCredential{
		AccessKey: accessKey,
		Name:      name,
		IsActive:  true,
	}

	if err := s.db.Create(credential).Error; err != nil {
		logger.Errorf("创建租户凭证失败: %s, 错误: %v", name, err)
		return nil, "", errors.Wrap(errors.ErrDatabaseInsert, err)
	}

	logger.Infof("租户凭证已创建: %s (ID: %d)", name, credential.ID)
	return credential, accessKey, nil
}

// DeactivateCredential 停用租户凭证
func (s *tenantService) DeactivateCredential(id uint) error {
	var credential database.TenantCredential
	if err := s.db.First(&credential, id).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New(errors.ErrRecordNotFound)
		}
		return errors.Wrap(errors.ErrDatabaseQuery, err)
	}

	if err := s.db.Model(&credential).Update("is_active", false).Error; err != nil {
		return errors.Wrap(errors.ErrDatabaseUpdate, err)
	}

	logger.Infof("租户凭证已停用: %s (ID: %d)", credential.Name, credential.ID)
	return nil
}

// generateAccessKey 生成高熵访问密钥
// 使用密码学安全的随机源，128位熵
func generateAccessKey() (string, error) {
	buf := make([]byte, accessKeyRandBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return accessKeyPrefix + hex.EncodeToString(buf), nil
}
