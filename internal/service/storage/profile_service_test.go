// 存储配置服务的单元测试
package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/weiwangfds/filegate/internal/database"
	"github.com/weiwangfds/filegate/internal/errors"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupProfileService 设置测试数据库和存储配置服务
func setupProfileService(t *testing.T) ProfileService {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	return NewProfileService(db)
}

// testProfile 构造一个合法的存储配置
func testProfile(name string) *database.StorageProfile {
	return &database.StorageProfile{
		Name:      name,
		Provider:  "aliyun",
		Region:    "cn-hangzhou",
		Bucket:    "filegate-test",
		AccessKey: "test-access-key",
		SecretKey: "test-secret-key",
		Endpoint:  "oss-cn-hangzhou.aliyuncs.com",
		IsEnabled: true,
	}
}

// TestFirstProfileAutoActivates 首个配置自动激活
func TestFirstProfileAutoActivates(t *testing.T) {
	svc := setupProfileService(t)

	first := testProfile("primary")
	require.NoError(t, svc.CreateProfile(first))
	assert.True(t, first.IsActive)

	second := testProfile("secondary")
	require.NoError(t, svc.CreateProfile(second))
	assert.False(t, second.IsActive)

	active, err := svc.GetActiveProfile()
	require.NoError(t, err)
	assert.Equal(t, first.ID, active.ID)
}

// TestActivateIsExclusive 激活一个配置会取消其他配置的激活状态
func TestActivateIsExclusive(t *testing.T) {
	svc := setupProfileService(t)

	first := testProfile("primary")
	second := testProfile("secondary")
	require.NoError(t, svc.CreateProfile(first))
	require.NoError(t, svc.CreateProfile(second))

	require.NoError(t, svc.ActivateProfile(second.ID))

	active, err := svc.GetActiveProfile()
	require.NoError(t, err)
	assert.Equal(t, second.ID, active.ID)

	previous, err := svc.GetProfileByID(first.ID)
	require.NoError(t, err)
	assert.False(t, previous.IsActive)
}

// TestDeleteActiveProfileRejected 激活中的配置不可删除
func TestDeleteActiveProfileRejected(t *testing.T) {
	svc := setupProfileService(t)

	active := testProfile("primary")
	spare := testProfile("secondary")
	require.NoError(t, svc.CreateProfile(active))
	require.NoError(t, svc.CreateProfile(spare))

	err := svc.DeleteProfile(active.ID)
	assert.True(t, errors.IsCode(err, errors.ErrStorageProfileInvalid))

	require.NoError(t, svc.DeleteProfile(spare.ID))

	_, err = svc.GetProfileByID(spare.ID)
	assert.True(t, errors.IsCode(err, errors.ErrStorageProfileNotFound))
}

// TestProfileValidation 必填字段和提供商校验
func TestProfileValidation(t *testing.T) {
	svc := setupProfileService(t)

	invalid := testProfile("missing-bucket")
	invalid.Bucket = ""
	err := svc.CreateProfile(invalid)
	assert.True(t, errors.IsCode(err, errors.ErrStorageProfileInvalid))

	unsupported := testProfile("unsupported")
	unsupported.Provider = "dropbox"
	err = svc.CreateProfile(unsupported)
	assert.True(t, errors.IsCode(err, errors.ErrStorageProviderNotSupported))
}

// TestToggleProfile 禁用激活中的配置被拒绝
func TestToggleProfile(t *testing.T) {
	svc := setupProfileService(t)

	active := testProfile("primary")
	spare := testProfile("secondary")
	require.NoError(t, svc.CreateProfile(active))
	require.NoError(t, svc.CreateProfile(spare))

	err := svc.ToggleProfile(active.ID, false)
	assert.True(t, errors.IsCode(err, errors.ErrStorageProfileInvalid))

	require.NoError(t, svc.ToggleProfile(spare.ID, false))

	// 已禁用的配置不能激活
	err = svc.ActivateProfile(spare.ID)
	assert.True(t, errors.IsCode(err, errors.ErrStorageProfileInvalid))
}
