// 本文件实现了对象存储管理器，按当前激活的存储配置路由所有对象操作
package storage

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/weiwangfds/filegate/internal/logger"
)

// Manager 对象存储管理器
// 实现ObjectStore接口，将每次调用委托给当前激活配置对应的提供商
// 提供商实例按配置缓存，配置变更后自动重建
// 所有上游调用都受统一的超时约束
type Manager struct {
	profiles ProfileService
	timeout  time.Duration

	mu       sync.Mutex
	cachedID uint
	cachedAt time.Time
	provider ObjectStore
}

// NewManager 创建对象存储管理器
// 参数:
//   - profiles: 存储配置服务
//   - timeout: 单次对象存储请求的超时时间
func NewManager(profiles ProfileService, timeout time.Duration) *Manager {
	return &Manager{
		profiles: profiles,
		timeout:  timeout,
	}
}

// activeProvider 解析当前激活配置对应的提供商
// 配置ID或更新时间变化时重建提供商实例
func (m *Manager) activeProvider() (ObjectStore, error) {
	profile, err := m.profiles.GetActiveProfile()
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.provider != nil && m.cachedID == profile.ID && m.cachedAt.Equal(profile.UpdatedAt) {
		return m.provider, nil
	}

	provider, err := (&ProviderFactory{}).CreateProvider(profile)
	if err != nil {
		return nil, err
	}

	logger.Infof("对象存储提供商已切换: %s (提供商: %s, 存储桶: %s)",
		profile.Name, profile.Provider, profile.Bucket)

	m.cachedID = profile.ID
	m.cachedAt = profile.UpdatedAt
	m.provider = provider
	return provider, nil
}

// withTimeout 为上游调用附加统一超时
func (m *Manager) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, m.timeout)
}

// PutObject 上传对象
func (m *Manager) PutObject(ctx context.Context, objectKey string, reader io.Reader, contentType string) error {
	provider, err := m.activeProvider()
	if err != nil {
		return err
	}

	ctx, cancel := m.withTimeout(ctx)
	defer cancel()
	return provider.PutObject(ctx, objectKey, reader, contentType)
}

// GetObject 读取对象内容
func (m *Manager) GetObject(ctx context.Context, objectKey string) (io.ReadCloser, error) {
	provider, err := m.activeProvider()
	if err != nil {
		return nil, err
	}

	// 下载是流式的，超时只约束建立阶段由各提供商自行处理
	return provider.GetObject(ctx, objectKey)
}

// DeleteObject 删除对象
func (m *Manager) DeleteObject(ctx context.Context, objectKey string) error {
	provider, err := m.activeProvider()
	if err != nil {
		return err
	}

	ctx, cancel := m.withTimeout(ctx)
	defer cancel()
	return provider.DeleteObject(ctx, objectKey)
}

// PresignedGetURL 签发限时下载链接
func (m *Manager) PresignedGetURL(ctx context.Context, objectKey string, ttl time.Duration) (string, error) {
	provider, err := m.activeProvider()
	if err != nil {
		return "", err
	}

	ctx, cancel := m.withTimeout(ctx)
	defer cancel()
	return provider.PresignedGetURL(ctx, objectKey, ttl)
}

// ObjectExists 检查对象是否存在
func (m *Manager) ObjectExists(ctx context.Context, objectKey string) (bool, error) {
	provider, err := m.activeProvider()
	if err != nil {
		return false, err
	}

	ctx, cancel := m.withTimeout(ctx)
	defer cancel()
	return provider.ObjectExists(ctx, objectKey)
}

// TestConnection 测试当前激活配置的连接
func (m *Manager) TestConnection(ctx context.Context) error {
	provider, err := m.activeProvider()
	if err != nil {
		return err
	}

	ctx, cancel := m.withTimeout(ctx)
	defer cancel()
	return provider.TestConnection(ctx)
}
