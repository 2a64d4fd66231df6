// 文件服务的单元测试
// 使用内存SQLite数据库和内存对象存储，不依赖任何云服务
package file

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/weiwangfds/filegate/internal/database"
	"github.com/weiwangfds/filegate/internal/errors"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// fakeStore 内存对象存储，用于测试
type fakeStore struct {
	mu         sync.Mutex
	objects    map[string][]byte
	failPut    bool
	failDelete bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{objects: map[string][]byte{}}
}

func (s *fakeStore) PutObject(ctx context.Context, objectKey string, reader io.Reader, contentType string) error {
	if s.failPut {
		return fmt.Errorf("simulated storage outage")
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[objectKey] = data
	return nil
}

func (s *fakeStore) GetObject(ctx context.Context, objectKey string) (io.ReadCloser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.objects[objectKey]
	if !ok {
		return nil, fmt.Errorf("object not found: %s", objectKey)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (s *fakeStore) DeleteObject(ctx context.Context, objectKey string) error {
	if s.failDelete {
		return fmt.Errorf("simulated storage outage")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, objectKey)
	return nil
}

func (s *fakeStore) PresignedGetURL(ctx context.Context, objectKey string, ttl time.Duration) (string, error) {
	return "https://cdn.example.com/" + objectKey + "?sig=test", nil
}

func (s *fakeStore) ObjectExists(ctx context.Context, objectKey string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.objects[objectKey]
	return ok, nil
}

func (s *fakeStore) TestConnection(ctx context.Context) error {
	return nil
}

// setupFileService 设置测试数据库和文件服务
func setupFileService(t *testing.T) (FileService, *fakeStore, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	store := newFakeStore()
	return NewFileService(db, store), store, db
}

// uploadFile 上传一个测试文件
func uploadFile(t *testing.T, svc FileService, tenantID uint, name, path, content string) *database.FileObject {
	record, err := svc.Upload(context.Background(), tenantID, UploadInput{
		FileName:    name,
		VirtualPath: path,
		ContentType: "text/plain",
		Reader:      strings.NewReader(content),
	})
	require.NoError(t, err)
	return record
}

// TestUploadCreatesObjectAndRecord 上传成功后对象和记录都存在
func TestUploadCreatesObjectAndRecord(t *testing.T) {
	svc, store, db := setupFileService(t)

	record := uploadFile(t, svc, 1, "report.txt", "docs/q3", "hello world")

	assert.Equal(t, "report.txt", record.FileName)
	assert.Equal(t, "docs/q3", record.VirtualPath)
	assert.Equal(t, int64(len("hello world")), record.FileSize)
	assert.True(t, strings.HasPrefix(record.StorageKey, "1/docs/q3/"))
	assert.True(t, record.OwnedBy(1))
	assert.False(t, record.OwnedBy(11))

	data, ok := store.objects[record.StorageKey]
	assert.True(t, ok)
	assert.Equal(t, "hello world", string(data))

	var count int64
	db.Model(&database.FileObject{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

// TestUploadStorageFailureLeavesNoRecord 对象写入失败时不得产生元数据记录
func TestUploadStorageFailureLeavesNoRecord(t *testing.T) {
	svc, store, db := setupFileService(t)
	store.failPut = true

	_, err := svc.Upload(context.Background(), 1, UploadInput{
		FileName: "report.txt",
		Reader:   strings.NewReader("data"),
	})
	assert.True(t, errors.IsCode(err, errors.ErrStorageUploadFailed))

	var count int64
	db.Model(&database.FileObject{}).Count(&count)
	assert.Equal(t, int64(0), count)
	assert.Empty(t, store.objects)
}

// TestUploadRejectsInvalidInput 非法路径和元数据在任何写入前被拒绝
func TestUploadRejectsInvalidInput(t *testing.T) {
	svc, store, _ := setupFileService(t)

	_, err := svc.Upload(context.Background(), 1, UploadInput{
		FileName:    "a.txt",
		VirtualPath: "docs/../secret",
		Reader:      strings.NewReader("x"),
	})
	assert.True(t, errors.IsCode(err, errors.ErrInvalidPath))

	_, err = svc.Upload(context.Background(), 1, UploadInput{
		FileName: "a.txt",
		Metadata: "not json",
		Reader:   strings.NewReader("x"),
	})
	assert.True(t, errors.IsCode(err, errors.ErrInvalidMetadata))

	_, err = svc.Upload(context.Background(), 1, UploadInput{
		FileName: "a.txt",
		Metadata: `{"nested": {"x": 1}}`,
		Reader:   strings.NewReader("x"),
	})
	assert.True(t, errors.IsCode(err, errors.ErrInvalidMetadata))

	assert.Empty(t, store.objects)
}

// TestTenantIsolation 租户只能看到和操作自己的文件
func TestTenantIsolation(t *testing.T) {
	svc, _, _ := setupFileService(t)

	mine := uploadFile(t, svc, 1, "mine.txt", "", "tenant one data")
	theirs := uploadFile(t, svc, 2, "theirs.txt", "", "tenant two data")

	// 跨租户读取返回禁止访问，文件确实不存在时返回未找到
	_, err := svc.GetByID(2, mine.ID)
	assert.True(t, errors.IsCode(err, errors.ErrForbidden))

	_, err = svc.GetByID(1, 9999)
	assert.True(t, errors.IsCode(err, errors.ErrFileNotFound))

	// 列表只返回自己的文件
	records, total, err := svc.List(1, ListQuery{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, records, 1)
	assert.Equal(t, mine.ID, records[0].ID)

	// 跨租户更新和删除同样被拒绝
	name := "renamed"
	_, err = svc.Update(2, mine.ID, UpdateInput{DisplayName: &name})
	assert.True(t, errors.IsCode(err, errors.ErrForbidden))

	err = svc.Delete(context.Background(), 1, theirs.ID)
	assert.True(t, errors.IsCode(err, errors.ErrForbidden))
}

// TestDeleteRemovesObjectAndShares 删除文件时连带清理对象和分享链接
func TestDeleteRemovesObjectAndShares(t *testing.T) {
	svc, store, db := setupFileService(t)

	record := uploadFile(t, svc, 1, "doc.txt", "", "content")

	link := &database.ShareLink{
		Token:     "fs_0123456789abcdef0123456789abcdef",
		FileID:    record.ID,
		ExpiresAt: time.Now().Add(time.Hour),
		IsActive:  true,
	}
	require.NoError(t, db.Create(link).Error)

	require.NoError(t, svc.Delete(context.Background(), 1, record.ID))

	_, ok := store.objects[record.StorageKey]
	assert.False(t, ok)

	var shareCount, fileCount int64
	db.Model(&database.ShareLink{}).Where("file_id = ?", record.ID).Count(&shareCount)
	db.Model(&database.FileObject{}).Count(&fileCount)
	assert.Equal(t, int64(0), shareCount)
	assert.Equal(t, int64(0), fileCount)
}

// TestDeleteStorageFailureKeepsRecord 对象删除失败时元数据保留，可以重试
func TestDeleteStorageFailureKeepsRecord(t *testing.T) {
	svc, store, _ := setupFileService(t)

	record := uploadFile(t, svc, 1, "doc.txt", "", "content")
	store.failDelete = true

	err := svc.Delete(context.Background(), 1, record.ID)
	assert.True(t, errors.IsCode(err, errors.ErrStorageDeleteFailed))

	kept, err := svc.GetByID(1, record.ID)
	require.NoError(t, err)
	assert.Equal(t, record.ID, kept.ID)
}

// TestUpdateDisplayNameAndMetadata 更新显示名称和元数据
func TestUpdateDisplayNameAndMetadata(t *testing.T) {
	svc, _, _ := setupFileService(t)

	record := uploadFile(t, svc, 1, "doc.txt", "", "content")

	name := "季度报告"
	metadata := `{"project":"apollo"}`
	updated, err := svc.Update(1, record.ID, UpdateInput{DisplayName: &name, Metadata: &metadata})
	require.NoError(t, err)
	assert.Equal(t, "季度报告", updated.DisplayName)
	assert.JSONEq(t, metadata, updated.Metadata)

	// 文件内容相关字段不受更新影响
	assert.Equal(t, record.StorageKey, updated.StorageKey)
	assert.Equal(t, record.FileSize, updated.FileSize)
}

// TestListPaginationDeterministic 分页遍历覆盖全部记录且无重复
func TestListPaginationDeterministic(t *testing.T) {
	svc, _, db := setupFileService(t)

	base := time.Now().Add(-10 * time.Hour)
	for i := 0; i < 150; i++ {
		record := &database.FileObject{
			FileName:    fmt.Sprintf("file-%03d.txt", i),
			StorageKey:  fmt.Sprintf("1/bulk/%d-file-%03d.txt", base.UnixMilli()+int64(i), i),
			ContentType: "text/plain",
			FileSize:    int64(i),
			CreatedAt:   base.Add(time.Duration(i) * time.Second),
		}
		require.NoError(t, db.Create(record).Error)
	}

	seen := map[uint]bool{}
	for page := 1; page <= 3; page++ {
		records, total, err := svc.List(1, ListQuery{Page: page, PageSize: 50})
		require.NoError(t, err)
		assert.Equal(t, int64(150), total)
		assert.Len(t, records, 50)
		for _, r := range records {
			assert.False(t, seen[r.ID], "record %d appeared twice", r.ID)
			seen[r.ID] = true
		}
	}
	assert.Len(t, seen, 150)

	// 超出范围的页返回空列表而非错误
	records, total, err := svc.List(1, ListQuery{Page: 4, PageSize: 50})
	require.NoError(t, err)
	assert.Equal(t, int64(150), total)
	assert.Empty(t, records)
}

// TestListFilters 组合筛选条件
func TestListFilters(t *testing.T) {
	svc, _, _ := setupFileService(t)

	uploadFile(t, svc, 1, "Report.txt", "docs", strings.Repeat("a", 100))
	uploadFile(t, svc, 1, "photo.png", "images", strings.Repeat("b", 2000))
	uploadFile(t, svc, 1, "notes.txt", "docs", strings.Repeat("c", 10))

	// 名称匹配不区分大小写
	records, total, err := svc.List(1, ListQuery{Name: "report"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, records, 1)
	assert.Equal(t, "Report.txt", records[0].FileName)

	// 大小区间
	min, max := int64(50), int64(500)
	_, total, err = svc.List(1, ListQuery{MinSize: &min, MaxSize: &max})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	// 路径筛选
	_, total, err = svc.List(1, ListQuery{Path: "docs"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
}

// TestListPreloadsShareLinks 列表结果携带每个文件的分享链接
func TestListPreloadsShareLinks(t *testing.T) {
	svc, _, db := setupFileService(t)

	shared := uploadFile(t, svc, 1, "shared.txt", "", "x")
	uploadFile(t, svc, 1, "plain.txt", "", "x")

	require.NoError(t, db.Create(&database.ShareLink{
		Token:     "fs_0123456789abcdef0123456789abcdef",
		FileID:    shared.ID,
		ExpiresAt: time.Now().Add(time.Hour),
		IsActive:  true,
	}).Error)

	records, total, err := svc.List(1, ListQuery{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, records, 2)

	byName := map[string][]database.ShareLink{}
	for i := range records {
		byName[records[i].FileName] = records[i].ShareLinks
	}
	require.Len(t, byName["shared.txt"], 1)
	assert.Equal(t, "fs_0123456789abcdef0123456789abcdef", byName["shared.txt"][0].Token)
	assert.Empty(t, byName["plain.txt"])
}

// TestListEscapesLikeMetacharacters 名称条件中的通配符按字面匹配
func TestListEscapesLikeMetacharacters(t *testing.T) {
	svc, _, _ := setupFileService(t)

	uploadFile(t, svc, 1, "sale-100%.txt", "", "x")
	uploadFile(t, svc, 1, "sale-100x.txt", "", "x")
	uploadFile(t, svc, 1, "my_file.txt", "", "x")
	uploadFile(t, svc, 1, "myxfile.txt", "", "x")

	records, total, err := svc.List(1, ListQuery{Name: "100%"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, records, 1)
	assert.Equal(t, "sale-100%.txt", records[0].FileName)

	records, total, err = svc.List(1, ListQuery{Name: "my_"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, records, 1)
	assert.Equal(t, "my_file.txt", records[0].FileName)
}

// TestDownloadStreamsContent 下载返回完整文件内容
func TestDownloadStreamsContent(t *testing.T) {
	svc, _, _ := setupFileService(t)

	record := uploadFile(t, svc, 1, "doc.txt", "", "streamed content")

	got, body, err := svc.Download(context.Background(), 1, record.ID)
	require.NoError(t, err)
	defer body.Close()

	data, err := io.ReadAll(body)
	require.NoError(t, err)
	assert.Equal(t, "streamed content", string(data))
	assert.Equal(t, record.ID, got.ID)

	// 跨租户下载被拒绝
	_, _, err = svc.Download(context.Background(), 2, record.ID)
	assert.True(t, errors.IsCode(err, errors.ErrForbidden))
}

// TestBuildStorageKey 存储键始终以租户前缀开头
func TestBuildStorageKey(t *testing.T) {
	now := time.UnixMilli(1700000000000)

	key := BuildStorageKey(42, "docs/q3", "report.txt", now)
	assert.Equal(t, "42/docs/q3/1700000000000-report.txt", key)

	key = BuildStorageKey(42, "", "report.txt", now)
	assert.Equal(t, "42/1700000000000-report.txt", key)

	// 文件名中的目录部分被剥离
	key = BuildStorageKey(7, "", "../../etc/passwd", now)
	assert.Equal(t, "7/1700000000000-passwd", key)
}
