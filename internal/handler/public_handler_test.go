// 公开分享入口的HTTP层测试
// 验证各种访问失败到HTTP状态码的映射
package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/weiwangfds/filegate/config"
	"github.com/weiwangfds/filegate/internal/database"
	fileservice "github.com/weiwangfds/filegate/internal/service/file"
	shareservice "github.com/weiwangfds/filegate/internal/service/share"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// memStore 内存对象存储，用于测试
type memStore struct {
	objects map[string][]byte
}

func newMemStore() *memStore {
	return &memStore{objects: map[string][]byte{}}
}

func (s *memStore) PutObject(ctx context.Context, objectKey string, reader io.Reader, contentType string) error {
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	s.objects[objectKey] = data
	return nil
}

func (s *memStore) GetObject(ctx context.Context, objectKey string) (io.ReadCloser, error) {
	data, ok := s.objects[objectKey]
	if !ok {
		return nil, fmt.Errorf("object not found: %s", objectKey)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (s *memStore) DeleteObject(ctx context.Context, objectKey string) error {
	delete(s.objects, objectKey)
	return nil
}

func (s *memStore) PresignedGetURL(ctx context.Context, objectKey string, ttl time.Duration) (string, error) {
	return "https://cdn.example.com/" + objectKey + "?sig=test", nil
}

func (s *memStore) ObjectExists(ctx context.Context, objectKey string) (bool, error) {
	_, ok := s.objects[objectKey]
	return ok, nil
}

func (s *memStore) TestConnection(ctx context.Context) error {
	return nil
}

// publicGateFixture 公开入口测试环境
type publicGateFixture struct {
	engine *gin.Engine
	shares shareservice.ShareService
	files  fileservice.FileService
	db     *gorm.DB
}

// setupPublicGate 组装内存数据库、服务和公开路由
func setupPublicGate(t *testing.T) *publicGateFixture {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	store := newMemStore()
	files := fileservice.NewFileService(db, store)
	shares := shareservice.NewShareService(db, store, files, config.ShareConfig{
		DefaultTTLSeconds: 3600,
		MaxTTLSeconds:     86400,
		PresignTTLSeconds: 600,
		PublicBaseURL:     "https://files.example.com",
		BcryptCost:        4,
		MinPasswordLength: 4,
	})

	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.GET("/s/:token", NewPublicHandler(shares).AccessShare)

	return &publicGateFixture{engine: engine, shares: shares, files: files, db: db}
}

// shareFixtureFile 上传文件并创建分享
func (f *publicGateFixture) shareFixtureFile(t *testing.T, password string) *database.ShareLink {
	record, err := f.files.Upload(context.Background(), 1, fileservice.UploadInput{
		FileName:    "doc.txt",
		ContentType: "text/plain",
		Reader:      strings.NewReader("gate test"),
	})
	require.NoError(t, err)

	created, err := f.shares.Create(1, shareservice.CreateInput{FileID: record.ID, Password: password})
	require.NoError(t, err)
	return created.Link
}

// get 发起一次GET请求
func (f *publicGateFixture) get(path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	f.engine.ServeHTTP(w, req)
	return w
}

// TestPublicGateStatusMapping 访问结果到HTTP状态码的映射
func TestPublicGateStatusMapping(t *testing.T) {
	f := setupPublicGate(t)

	// 正常访问
	link := f.shareFixtureFile(t, "")
	w := f.get("/s/" + link.Token)
	assert.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Code int `json:"code"`
		Data struct {
			DownloadURL string `json:"download_url"`
			ExpiresIn   int64  `json:"expires_in"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 0, body.Code)
	assert.NotEmpty(t, body.Data.DownloadURL)
	assert.Equal(t, int64(600), body.Data.ExpiresIn)

	// 格式非法的令牌
	w = f.get("/s/garbage")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// 未知令牌
	w = f.get("/s/fs_00000000000000000000000000000000")
	assert.Equal(t, http.StatusNotFound, w.Code)

	// 已撤销
	require.NoError(t, f.shares.Revoke(1, link.Token))
	w = f.get("/s/" + link.Token)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

// TestPublicGateExpiredShare 过期分享返回410
func TestPublicGateExpiredShare(t *testing.T) {
	f := setupPublicGate(t)

	link := f.shareFixtureFile(t, "")
	require.NoError(t, f.db.Model(&database.ShareLink{}).
		Where("id = ?", link.ID).
		UpdateColumn("expires_at", time.Now().Add(-time.Minute)).Error)

	w := f.get("/s/" + link.Token)
	assert.Equal(t, http.StatusGone, w.Code)
}

// TestPublicGatePasswordFlow 密码保护分享的HTTP流程
func TestPublicGatePasswordFlow(t *testing.T) {
	f := setupPublicGate(t)

	link := f.shareFixtureFile(t, "secret")

	// 未提供密码时返回401并携带password_required标记
	w := f.get("/s/" + link.Token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var body struct {
		Data struct {
			PasswordRequired bool `json:"password_required"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Data.PasswordRequired)

	// 密码错误
	w = f.get("/s/" + link.Token + "?password=wrong")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// 密码正确
	w = f.get("/s/" + link.Token + "?password=secret")
	assert.Equal(t, http.StatusOK, w.Code)

	// 密码也可通过JSON请求体提供，不必出现在URL中
	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/s/"+link.Token, bytes.NewReader([]byte(`{"password":"secret"}`)))
	req.Header.Set("Content-Type", "application/json")
	f.engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	// 请求体中的错误密码同样被拒绝
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/s/"+link.Token, bytes.NewReader([]byte(`{"password":"wrong"}`)))
	req.Header.Set("Content-Type", "application/json")
	f.engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
