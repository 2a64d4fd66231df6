package storage

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/weiwangfds/filegate/internal/database"
)

// AliyunOSSProvider 阿里云OSS提供商实现
type AliyunOSSProvider struct {
	client  *oss.Client
	bucket  *oss.Bucket
	profile *database.StorageProfile
}

// NewAliyunOSSProvider 创建阿里云OSS提供商实例
func NewAliyunOSSProvider(profile *database.StorageProfile) (*AliyunOSSProvider, error) {
	// 构建endpoint
	endpoint := profile.Endpoint
	if endpoint == "" {
		endpoint = fmt.Sprintf("https://oss-%s.aliyuncs.com", profile.Region)
	}

	// 创建OSS客户端
	client, err := oss.New(endpoint, profile.AccessKey, profile.SecretKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create aliyun oss client: %w", err)
	}

	// 获取存储桶
	bucket, err := client.Bucket(profile.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to get bucket %s: %w", profile.Bucket, err)
	}

	return &AliyunOSSProvider{
		client:  client,
		bucket:  bucket,
		profile: profile,
	}, nil
}

// PutObject 上传对象到阿里云OSS
// 阿里云SDK不接受context，超时控制依赖SDK自身的HTTP超时
func (p *AliyunOSSProvider) PutObject(_ context.Context, objectKey string, reader io.Reader, contentType string) error {
	options := []oss.Option{}
	if contentType != "" {
		options = append(options, oss.ContentType(contentType))
	}

	if err := p.bucket.PutObject(objectKey, reader, options...); err != nil {
		return fmt.Errorf("failed to upload object to aliyun oss: %w", err)
	}

	return nil
}

// GetObject 从阿里云OSS读取对象
func (p *AliyunOSSProvider) GetObject(_ context.Context, objectKey string) (io.ReadCloser, error) {
	body, err := p.bucket.GetObject(objectKey)
	if err != nil {
		return nil, fmt.Errorf("failed to download object from aliyun oss: %w", err)
	}

	return body, nil
}

// DeleteObject 删除阿里云OSS对象
func (p *AliyunOSSProvider) DeleteObject(_ context.Context, objectKey string) error {
	if err := p.bucket.DeleteObject(objectKey); err != nil {
		return fmt.Errorf("failed to delete object from aliyun oss: %w", err)
	}

	return nil
}

// PresignedGetURL 签发阿里云OSS限时下载链接
func (p *AliyunOSSProvider) PresignedGetURL(_ context.Context, objectKey string, ttl time.Duration) (string, error) {
	signedURL, err := p.bucket.SignURL(objectKey, oss.HTTPGet, int64(ttl.Seconds()))
	if err != nil {
		return "", fmt.Errorf("failed to sign url for aliyun oss object: %w", err)
	}

	return signedURL, nil
}

// ObjectExists 检查对象是否存在
func (p *AliyunOSSProvider) ObjectExists(_ context.Context, objectKey string) (bool, error) {
	exists, err := p.bucket.IsObjectExist(objectKey)
	if err != nil {
		return false, fmt.Errorf("failed to check object existence in aliyun oss: %w", err)
	}

	return exists, nil
}

// TestConnection 测试连接
func (p *AliyunOSSProvider) TestConnection(_ context.Context) error {
	if _, err := p.client.GetBucketInfo(p.profile.Bucket); err != nil {
		return fmt.Errorf("failed to test aliyun oss connection: %w", err)
	}

	return nil
}
