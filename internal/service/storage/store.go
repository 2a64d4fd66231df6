// Package storage 提供对象存储抽象和各云服务商的实现
// 文件内容只存放在对象存储中，元数据库仅记录存储键
package storage

import (
	"context"
	"io"
	"time"

	"github.com/weiwangfds/filegate/internal/database"
	"github.com/weiwangfds/filegate/internal/errors"
)

// ObjectStore 对象存储接口
// 所有方法的失败都视为上游故障，由调用方决定如何向客户端呈现
type ObjectStore interface {
	// PutObject 上传对象
	PutObject(ctx context.Context, objectKey string, reader io.Reader, contentType string) error

	// GetObject 读取对象内容
	// 返回的ReadCloser需要调用者关闭
	GetObject(ctx context.Context, objectKey string) (io.ReadCloser, error)

	// DeleteObject 删除对象
	DeleteObject(ctx context.Context, objectKey string) error

	// PresignedGetURL 签发限时下载链接
	// 链接在ttl之后自动失效，持有者无需其他授权即可下载
	PresignedGetURL(ctx context.Context, objectKey string, ttl time.Duration) (string, error)

	// ObjectExists 检查对象是否存在
	ObjectExists(ctx context.Context, objectKey string) (bool, error)

	// TestConnection 测试连接
	TestConnection(ctx context.Context) error
}

// ProviderFactory 存储提供商工厂
type ProviderFactory struct{}

// CreateProvider 根据配置创建存储提供商实例
func (f *ProviderFactory) CreateProvider(profile *database.StorageProfile) (ObjectStore, error) {
	switch profile.Provider {
	case "aliyun":
		return NewAliyunOSSProvider(profile)
	case "tencent":
		return NewTencentCOSProvider(profile)
	case "qiniu":
		return NewQiniuKodoProvider(profile)
	default:
		return nil, errors.New(errors.ErrStorageProviderNotSupported).WithDetails(profile.Provider)
	}
}
