package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/qiniu/go-sdk/v7/auth/qbox"
	"github.com/qiniu/go-sdk/v7/storage"
	"github.com/weiwangfds/filegate/internal/database"
)

// QiniuKodoProvider 七牛云Kodo提供商实现
type QiniuKodoProvider struct {
	mac          *qbox.Mac
	bucketName   string
	bucketDomain string
	region       *storage.Region
	profile      *database.StorageProfile
}

// NewQiniuKodoProvider 创建七牛云Kodo提供商实例
func NewQiniuKodoProvider(profile *database.StorageProfile) (*QiniuKodoProvider, error) {
	mac := qbox.NewMac(profile.AccessKey, profile.SecretKey)

	// 获取区域信息
	region, err := storage.GetRegion(profile.AccessKey, profile.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to get qiniu region: %w", err)
	}

	// 构建域名
	bucketDomain := profile.Endpoint
	if bucketDomain == "" {
		bucketDomain = fmt.Sprintf("%s.%s", profile.Bucket, region.RsHost)
	}

	return &QiniuKodoProvider{
		mac:          mac,
		bucketName:   profile.Bucket,
		bucketDomain: bucketDomain,
		region:       region,
		profile:      profile,
	}, nil
}

// PutObject 上传对象到七牛云Kodo
func (p *QiniuKodoProvider) PutObject(ctx context.Context, objectKey string, reader io.Reader, contentType string) error {
	putPolicy := storage.PutPolicy{
		Scope: fmt.Sprintf("%s:%s", p.bucketName, objectKey),
	}
	upToken := putPolicy.UploadToken(p.mac)

	cfg := storage.Config{
		Region:        p.region,
		UseHTTPS:      true,
		UseCdnDomains: false,
	}

	formUploader := storage.NewFormUploader(&cfg)
	ret := storage.PutRet{}

	putExtra := storage.PutExtra{}
	if contentType != "" {
		putExtra.MimeType = contentType
	}

	if err := formUploader.Put(ctx, &ret, upToken, objectKey, reader, -1, &putExtra); err != nil {
		return fmt.Errorf("failed to upload object to qiniu kodo: %w", err)
	}

	return nil
}

// GetObject 从七牛云Kodo读取对象
// Kodo没有直接的读取接口，通过私有下载链接获取内容
func (p *QiniuKodoProvider) GetObject(ctx context.Context, objectKey string) (io.ReadCloser, error) {
	deadline := time.Now().Add(time.Hour).Unix()
	privateURL := storage.MakePrivateURL(p.mac, p.bucketDomain, objectKey, deadline)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, privateURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build download request for qiniu kodo: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download object from qiniu kodo: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("failed to download object, status: %s", resp.Status)
	}

	return resp.Body, nil
}

// DeleteObject 删除七牛云Kodo对象
func (p *QiniuKodoProvider) DeleteObject(_ context.Context, objectKey string) error {
	bucketManager := storage.NewBucketManager(p.mac, &storage.Config{
		Region: p.region,
	})

	if err := bucketManager.Delete(p.bucketName, objectKey); err != nil {
		return fmt.Errorf("failed to delete object from qiniu kodo: %w", err)
	}

	return nil
}

// PresignedGetURL 签发七牛云Kodo限时下载链接
func (p *QiniuKodoProvider) PresignedGetURL(_ context.Context, objectKey string, ttl time.Duration) (string, error) {
	deadline := time.Now().Add(ttl).Unix()
	return storage.MakePrivateURL(p.mac, p.bucketDomain, objectKey, deadline), nil
}

// ObjectExists 检查对象是否存在
func (p *QiniuKodoProvider) ObjectExists(_ context.Context, objectKey string) (bool, error) {
	bucketManager := storage.NewBucketManager(p.mac, &storage.Config{
		Region: p.region,
	})

	if _, err := bucketManager.Stat(p.bucketName, objectKey); err != nil {
		if strings.Contains(err.Error(), "no such file or directory") {
			return false, nil
		}
		return false, fmt.Errorf("failed to check object existence in qiniu kodo: %w", err)
	}

	return true, nil
}

// TestConnection 测试连接
func (p *QiniuKodoProvider) TestConnection(_ context.Context) error {
	bucketManager := storage.NewBucketManager(p.mac, &storage.Config{
		Region: p.region,
	})

	// 尝试列出存储桶中的文件（限制为1个）
	_, _, _, _, err := bucketManager.ListFiles(p.bucketName, "", "", "", 1)
	if err != nil {
		return fmt.Errorf("failed to test qiniu kodo connection: %w", err)
	}

	return nil
}
