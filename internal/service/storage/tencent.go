package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/tencentyun/cos-go-sdk-v5"
	"github.com/weiwangfds/filegate/internal/database"
)

// TencentCOSProvider 腾讯云COS提供商实现
type TencentCOSProvider struct {
	client  *cos.Client
	profile *database.StorageProfile
}

// NewTencentCOSProvider 创建腾讯云COS提供商实例
func NewTencentCOSProvider(profile *database.StorageProfile) (*TencentCOSProvider, error) {
	// 构建URL
	bucketURL := fmt.Sprintf("https://%s.cos.%s.myqcloud.com", profile.Bucket, profile.Region)
	if profile.Endpoint != "" {
		bucketURL = profile.Endpoint
	}

	u, err := url.Parse(bucketURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse bucket URL: %w", err)
	}

	// 创建COS客户端
	client := cos.NewClient(&cos.BaseURL{BucketURL: u}, &http.Client{
		Transport: &cos.AuthorizationTransport{
			SecretID:  profile.AccessKey,
			SecretKey: profile.SecretKey,
		},
	})

	return &TencentCOSProvider{
		client:  client,
		profile: profile,
	}, nil
}

// PutObject 上传对象到腾讯云COS
func (p *TencentCOSProvider) PutObject(ctx context.Context, objectKey string, reader io.Reader, contentType string) error {
	options := &cos.ObjectPutOptions{}
	if contentType != "" {
		options.ObjectPutHeaderOptions = &cos.ObjectPutHeaderOptions{
			ContentType: contentType,
		}
	}

	if _, err := p.client.Object.Put(ctx, objectKey, reader, options); err != nil {
		return fmt.Errorf("failed to upload object to tencent cos: %w", err)
	}

	return nil
}

// GetObject 从腾讯云COS读取对象
func (p *TencentCOSProvider) GetObject(ctx context.Context, objectKey string) (io.ReadCloser, error) {
	resp, err := p.client.Object.Get(ctx, objectKey, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to download object from tencent cos: %w", err)
	}

	return resp.Body, nil
}

// DeleteObject 删除腾讯云COS对象
func (p *TencentCOSProvider) DeleteObject(ctx context.Context, objectKey string) error {
	if _, err := p.client.Object.Delete(ctx, objectKey); err != nil {
		return fmt.Errorf("failed to delete object from tencent cos: %w", err)
	}

	return nil
}

// PresignedGetURL 签发腾讯云COS限时下载链接
func (p *TencentCOSProvider) PresignedGetURL(ctx context.Context, objectKey string, ttl time.Duration) (string, error) {
	signedURL, err := p.client.Object.GetPresignedURL(ctx, http.MethodGet, objectKey,
		p.profile.AccessKey, p.profile.SecretKey, ttl, nil)
	if err != nil {
		return "", fmt.Errorf("failed to sign url for tencent cos object: %w", err)
	}

	return signedURL.String(), nil
}

// ObjectExists 检查对象是否存在
func (p *TencentCOSProvider) ObjectExists(ctx context.Context, objectKey string) (bool, error) {
	_, err := p.client.Object.Head(ctx, objectKey, nil)
	if err != nil {
		if cos.IsNotFoundError(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check object existence in tencent cos: %w", err)
	}

	return true, nil
}

// TestConnection 测试连接
func (p *TencentCOSProvider) TestConnection(ctx context.Context) error {
	// 尝试获取存储桶信息
	if _, err := p.client.Bucket.Head(ctx); err != nil {
		return fmt.Errorf("failed to test tencent cos connection: %w", err)
	}

	return nil
}
