// Package file 提供文件管理相关的业务逻辑服务
// 包含文件上传、查询、更新、删除等核心功能
// 租户隔离通过存储键前缀实现，所有读写操作先过归属检查
package file

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"time"

	"github.com/weiwangfds/filegate/internal/database"
	"github.com/weiwangfds/filegate/internal/errors"
	"github.com/weiwangfds/filegate/internal/logger"
	"github.com/weiwangfds/filegate/internal/service/storage"
	"gorm.io/gorm"
)

// UploadInput 文件上传参数
type UploadInput struct {
	FileName    string    // 原始文件名
	DisplayName string    // 可选的显示名称
	VirtualPath string    // 原始虚拟路径，上传时规范化
	ContentType string    // MIME类型，缺省为application/octet-stream
	Metadata    string    // 可选的JSON对象文本，自由格式键值元数据
	Reader      io.Reader // 文件数据流
}

// UpdateInput 文件更新参数
// 仅支持更新显示名称和元数据，文件内容不可变
type UpdateInput struct {
	DisplayName *string // 新的显示名称，nil表示不更新
	Metadata    *string // 新的元数据JSON文本，nil表示不更新
}

// FileService 文件服务接口
// 提供文件的上传、查询、更新、删除和下载等操作
// 所有操作都以租户ID为第一参数，归属检查失败返回禁止访问错误
type FileService interface {
	// Upload 上传文件
	// 流程:
	//   - 规范化虚拟路径并构建存储键
	//   - 先写对象存储，成功后才创建元数据记录
	//   - 对象写入失败时不产生任何记录，调用方可安全重试
	Upload(ctx context.Context, tenantID uint, input UploadInput) (*database.FileObject, error)

	// GetByID 获取文件元数据（含归属检查）
	// 文件不存在返回未找到错误，归属其他租户返回禁止访问错误
	GetByID(tenantID uint, fileID uint) (*database.FileObject, error)

	// Update 更新文件的显示名称或元数据
	Update(tenantID uint, fileID uint, input UpdateInput) (*database.FileObject, error)

	// Delete 删除文件
	// 先删除对象存储中的对象，成功后在一个事务中删除元数据记录
	// 和该文件的全部分享链接
	Delete(ctx context.Context, tenantID uint, fileID uint) error

	// List 按条件查询文件列表
	// 结果按创建时间倒序排列，返回当前页数据和匹配总数
	// 每条记录预加载其分享链接，供调用方提取可用分享摘要
	List(tenantID uint, query ListQuery) ([]database.FileObject, int64, error)

	// Download 获取文件内容流（仅限归属租户）
	// 返回的ReadCloser需要调用者关闭
	Download(ctx context.Context, tenantID uint, fileID uint) (*database.FileObject, io.ReadCloser, error)
}

// fileService 文件服务实现
type fileService struct {
	db    *gorm.DB
	store storage.ObjectStore
}

// NewFileService 创建文件服务实例
// 参数:
//   - db: 数据库连接实例
//   - store: 对象存储实例
func NewFileService(db *gorm.DB, store storage.ObjectStore) FileService {
	return &fileService{
		db:    db,
		store: store,
	}
}

// TenantKeyPrefix 返回租户的存储键前缀
// 该前缀划分租户的全部对象，是租户隔离的唯一依据
func TenantKeyPrefix(tenantID uint) string {
	return strconv.FormatUint(uint64(tenantID), 10) + "/"
}

// BuildStorageKey 构建对象存储键
// 格式: {租户ID}/{路径}/{时间戳}-{文件名}，无路径时省略路径段
// 时间戳为上传时刻的毫秒数，避免同名文件的键冲突
func BuildStorageKey(tenantID uint, normalizedPath, fileName string, now time.Time) string {
	base := filepath.Base(fileName)
	if normalizedPath == "" {
		return fmt.Sprintf("%s%d-%s", TenantKeyPrefix(tenantID), now.UnixMilli(), base)
	}
	return fmt.Sprintf("%s%s/%d-%s", TenantKeyPrefix(tenantID), normalizedPath, now.UnixMilli(), base)
}

// Upload 上传文件
func (s *fileService) Upload(ctx context.Context, tenantID uint, input UploadInput) (*database.FileObject, error) {
	if input.FileName == "" {
		return nil, errors.New(errors.ErrInvalidParams).WithDetails("file name is required")
	}

	normalizedPath, err := NormalizeVirtualPath(input.VirtualPath)
	if err != nil {
		return nil, err
	}

	metadata, err := normalizeMetadata(input.Metadata)
	if err != nil {
		return nil, err
	}

	contentType := input.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	storageKey := BuildStorageKey(tenantID, normalizedPath, input.FileName, time.Now())

	// 先写对象存储，再记录元数据
	// 两步之间崩溃最多留下一个孤儿对象，绝不会出现指向缺失对象的记录
	size, err := s.putObject(ctx, storageKey, input.Reader, contentType)
	if err != nil {
		logger.Errorf("文件上传到对象存储失败: %s, 错误: %v", input.FileName, err)
		return nil, errors.Wrap(errors.ErrStorageUploadFailed, err)
	}

	record := &database.FileObject{
		FileName:    filepath.Base(input.FileName),
		DisplayName: input.DisplayName,
		StorageKey:  storageKey,
		VirtualPath: normalizedPath,
		ContentType: contentType,
		FileSize:    size,
		Metadata:    metadata,
	}

	if err := s.db.Create(record).Error; err != nil {
		// 元数据写入失败时回收已上传的对象
		logger.Errorf("保存文件元数据失败，回收对象: %s, 错误: %v", storageKey, err)
		if delErr := s.store.DeleteObject(ctx, storageKey); delErr != nil {
			logger.Errorf("回收孤儿对象失败: %s, 错误: %v", storageKey, delErr)
		}
		return nil, errors.Wrap(errors.ErrDatabaseInsert, err)
	}

	logger.Infof("文件上传完成: %s (ID: %d, 大小: %d字节)", record.FileName, record.ID, size)
	return record, nil
}

// putObject 上传对象并统计字节数
func (s *fileService) putObject(ctx context.Context, storageKey string, reader io.Reader, contentType string) (int64, error) {
	counter := &countingReader{reader: reader}
	if err := s.store.PutObject(ctx, storageKey, counter, contentType); err != nil {
		return 0, err
	}
	return counter.count, nil
}

// countingReader 统计读取字节数的Reader包装
type countingReader struct {
	reader io.Reader
	count  int64
}

func (r *countingReader) Read(p []byte) (int, error) {
	n, err := r.reader.Read(p)
	r.count += int64(n)
	return n, err
}

// GetByID 获取文件元数据（含归属检查）
func (s *fileService) GetByID(tenantID uint, fileID uint) (*database.FileObject, error) {
	var record database.FileObject
	if err := s.db.First(&record, fileID).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New(errors.ErrFileNotFound)
		}
		return nil, errors.Wrap(errors.ErrDatabaseQuery, err)
	}

	// 不存在返回未找到，归属他人返回禁止访问
	if !record.OwnedBy(tenantID) {
		return nil, errors.New(errors.ErrForbidden)
	}

	return &record, nil
}

// Update 更新文件的显示名称或元数据
func (s *fileService) Update(tenantID uint, fileID uint, input UpdateInput) (*database.FileObject, error) {
	record, err := s.GetByID(tenantID, fileID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if input.DisplayName != nil {
		updates["display_name"] = *input.DisplayName
	}
	if input.Metadata != nil {
		metadata, err := normalizeMetadata(*input.Metadata)
		if err != nil {
			return nil, err
		}
		updates["metadata"] = metadata
	}

	if len(updates) == 0 {
		return record, nil
	}

	if err := s.db.Model(record).Updates(updates).Error; err != nil {
		logger.Errorf("更新文件元数据失败: %d, 错误: %v", fileID, err)
		return nil, errors.Wrap(errors.ErrDatabaseUpdate, err)
	}

	return s.GetByID(tenantID, fileID)
}

// Delete 删除文件
func (s *fileService) Delete(ctx context.Context, tenantID uint, fileID uint) error {
	record, err := s.GetByID(tenantID, fileID)
	if err != nil {
		return err
	}

	// 先删对象，再删记录
	// 两步之间崩溃最多留下可被重试清理的元数据，不会留下指向缺失对象的分享链接之外的状态
	if err := s.store.DeleteObject(ctx, record.StorageKey); err != nil {
		logger.Errorf("删除对象失败: %s, 错误: %v", record.StorageKey, err)
		return errors.Wrap(errors.ErrStorageDeleteFailed, err)
	}

	// 文件记录和它的全部分享链接在一个事务中删除
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("file_id = ?", record.ID).Delete(&database.ShareLink{}).Error; err != nil {
			return err
		}
		return tx.Delete(record).Error
	})
	if err != nil {
		logger.Errorf("删除文件记录失败: %d, 错误: %v", fileID, err)
		return errors.Wrap(errors.ErrDatabaseTransaction, err)
	}

	logger.Infof("文件已删除: %s (ID: %d)", record.FileName, record.ID)
	return nil
}

// List 按条件查询文件列表
func (s *fileService) List(tenantID uint, query ListQuery) ([]database.FileObject, int64, error) {
	query.Normalize()
	if err := query.Validate(); err != nil {
		return nil, 0, err
	}

	scoped := func() *gorm.DB {
		return query.apply(
			s.db.Model(&database.FileObject{}).
				Where("storage_key LIKE ?", TenantKeyPrefix(tenantID)+"%"),
		)
	}

	var total int64
	if err := scoped().Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(errors.ErrDatabaseQuery, err)
	}

	var records []database.FileObject
	if err := scoped().
		Preload("ShareLinks").
		Order("created_at DESC, id DESC").
		Offset(query.Offset()).
		Limit(query.PageSize).
		Find(&records).Error; err != nil {
		return nil, 0, errors.Wrap(errors.ErrDatabaseQuery, err)
	}

	return records, total, nil
}

// Download 获取文件内容流（仅限归属租户）
func (s *fileService) Download(ctx context.Context, tenantID uint, fileID uint) (*database.FileObject, io.ReadCloser, error) {
	record, err := s.GetByID(tenantID, fileID)
	if err != nil {
		return nil, nil, err
	}

	body, err := s.store.GetObject(ctx, record.StorageKey)
	if err != nil {
		logger.Errorf("读取对象失败: %s, 错误: %v", record.StorageKey, err)
		return nil, nil, errors.Wrap(errors.ErrStorageDownloadFailed, err)
	}

	return record, body, nil
}

// normalizeMetadata 校验并规范化元数据JSON文本
// 元数据必须是字符串到字符串的JSON对象，空串表示无元数据
func normalizeMetadata(raw string) (string, error) {
	if raw == "" {
		return "", nil
	}

	var kv map[string]string
	if err := json.Unmarshal([]byte(raw), &kv); err != nil {
		return "", errors.New(errors.ErrInvalidMetadata).WithDetails("metadata must be a JSON object of string values")
	}

	normalized, err := json.Marshal(kv)
	if err != nil {
		return "", errors.Wrap(errors.ErrInvalidMetadata, err)
	}

	return string(normalized), nil
}
