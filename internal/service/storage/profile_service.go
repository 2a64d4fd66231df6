// 本文件实现了存储配置管理服务，负责存储配置的增删改查和激活状态管理
package storage

import (
	"context"
	stderrors "errors"

	"github.com/weiwangfds/filegate/internal/database"
	"github.com/weiwangfds/filegate/internal/errors"
	"github.com/weiwangfds/filegate/internal/logger"
	"gorm.io/gorm"
)

// ProfileService 存储配置服务接口
// 定义了存储配置管理的所有操作，包括配置的增删改查、激活状态管理和连接测试
type ProfileService interface {
	// CreateProfile 创建存储配置
	// 验证配置参数并保存到数据库，如果是第一个配置会自动激活
	CreateProfile(profile *database.StorageProfile) error

	// GetProfileByID 根据ID获取存储配置
	GetProfileByID(id uint) (*database.StorageProfile, error)

	// ListProfiles 获取所有存储配置
	// 按创建时间倒序排列
	ListProfiles() ([]database.StorageProfile, error)

	// UpdateProfile 更新存储配置
	UpdateProfile(profile *database.StorageProfile) error

	// DeleteProfile 删除存储配置
	// 不允许删除激活状态的配置
	DeleteProfile(id uint) error

	// ActivateProfile 激活存储配置
	// 激活指定配置并取消其他配置的激活状态，确保只有一个激活配置
	ActivateProfile(id uint) error

	// TestProfile 测试存储配置连接
	// 使用指定配置创建提供商并测试连接是否正常
	TestProfile(ctx context.Context, id uint) error

	// GetActiveProfile 获取当前激活的存储配置
	GetActiveProfile() (*database.StorageProfile, error)

	// ToggleProfile 启用/禁用存储配置
	// 不允许禁用激活状态的配置
	ToggleProfile(id uint, enabled bool) error
}

// profileService 存储配置服务实现
type profileService struct {
	db      *gorm.DB
	factory *ProviderFactory
}

// NewProfileService 创建存储配置服务实例
// 参数:
//   - db: GORM数据库连接实例
//
// 返回:
//   - ProfileService: 存储配置服务接口实现
func NewProfileService(db *gorm.DB) ProfileService {
	return &profileService{
		db:      db,
		factory: &ProviderFactory{},
	}
}

// CreateProfile 创建存储配置
func (s *profileService) CreateProfile(profile *database.StorageProfile) error {
	logger.Infof("创建存储配置: %s (提供商: %s, 区域: %s, 存储桶: %s)",
		profile.Name, profile.Provider, profile.Region, profile.Bucket)

	if err := s.validateProfile(profile); err != nil {
		return err
	}

	// 如果这是第一个配置，自动设为激活状态
	var count int64
	if err := s.db.Model(&database.StorageProfile{}).Count(&count).Error; err != nil {
		return errors.Wrap(errors.ErrDatabaseQuery, err)
	}
	if count == 0 {
		profile.IsActive = true
	}

	// 如果设置为激活状态，需要先取消其他配置的激活状态
	if profile.IsActive {
		if err := s.deactivateAllProfiles(); err != nil {
			return err
		}
	}

	if err := s.db.Create(profile).Error; err != nil {
		logger.Errorf("保存存储配置失败: %s, 错误: %v", profile.Name, err)
		return errors.Wrap(errors.ErrDatabaseInsert, err)
	}

	logger.Infof("存储配置创建成功: %s (ID: %d, 激活: %v)", profile.Name, profile.ID, profile.IsActive)
	return nil
}

// GetProfileByID 根据ID获取存储配置
func (s *profileService) GetProfileByID(id uint) (*database.StorageProfile, error) {
	var profile database.StorageProfile
	if err := s.db.First(&profile, id).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New(errors.ErrStorageProfileNotFound)
		}
		return nil, errors.Wrap(errors.ErrDatabaseQuery, err)
	}
	return &profile, nil
}

// ListProfiles 获取所有存储配置
func (s *profileService) ListProfiles() ([]database.StorageProfile, error) {
	var profiles []database.StorageProfile
	if err := s.db.Order("created_at DESC").Find(&profiles).Error; err != nil {
		return nil, errors.Wrap(errors.ErrDatabaseQuery, err)
	}
	return profiles, nil
}

// UpdateProfile 更新存储配置
func (s *profileService) UpdateProfile(profile *database.StorageProfile) error {
	if err := s.validateProfile(profile); err != nil {
		return err
	}

	existing, err := s.GetProfileByID(profile.ID)
	if err != nil {
		return err
	}

	// 激活状态变更需要先取消其他配置
	if profile.IsActive && !existing.IsActive {
		if err := s.deactivateAllProfiles(); err != nil {
			return err
		}
	}

	if err := s.db.Save(profile).Error; err != nil {
		logger.Errorf("更新存储配置失败: %d, 错误: %v", profile.ID, err)
		return errors.Wrap(errors.ErrDatabaseUpdate, err)
	}

	return nil
}

// DeleteProfile 删除存储配置
func (s *profileService) DeleteProfile(id uint) error {
	profile, err := s.GetProfileByID(id)
	if err != nil {
		return err
	}

	// 激活中的配置承载着线上对象读写，不允许删除
	if profile.IsActive {
		return errors.New(errors.ErrStorageProfileInvalid).WithDetails("cannot delete the active profile")
	}

	if err := s.db.Delete(profile).Error; err != nil {
		return errors.Wrap(errors.ErrDatabaseDelete, err)
	}

	logger.Infof("存储配置已删除: %s (ID: %d)", profile.Name, profile.ID)
	return nil
}

// ActivateProfile 激活存储配置
func (s *profileService) ActivateProfile(id uint) error {
	profile, err := s.GetProfileByID(id)
	if err != nil {
		return err
	}

	if !profile.IsEnabled {
		return errors.New(errors.ErrStorageProfileInvalid).WithDetails("cannot activate a disabled profile")
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&database.StorageProfile{}).Where("is_active = ?", true).
			Update("is_active", false).Error; err != nil {
			return errors.Wrap(errors.ErrDatabaseUpdate, err)
		}
		if err := tx.Model(profile).Update("is_active", true).Error; err != nil {
			return errors.Wrap(errors.ErrDatabaseUpdate, err)
		}
		logger.Infof("存储配置已激活: %s (ID: %d)", profile.Name, profile.ID)
		return nil
	})
}

// TestProfile 测试存储配置连接
func (s *profileService) TestProfile(ctx context.Context, id uint) error {
	profile, err := s.GetProfileByID(id)
	if err != nil {
		return err
	}

	provider, err := s.factory.CreateProvider(profile)
	if err != nil {
		return err
	}

	if err := provider.TestConnection(ctx); err != nil {
		logger.Errorf("存储配置连接测试失败: %s (ID: %d), 错误: %v", profile.Name, profile.ID, err)
		return errors.Wrap(errors.ErrStorageConnectionFailed, err)
	}

	logger.Infof("存储配置连接测试通过: %s (ID: %d)", profile.Name, profile.ID)
	return nil
}

// GetActiveProfile 获取当前激活的存储配置
func (s *profileService) GetActiveProfile() (*database.StorageProfile, error) {
	var profile database.StorageProfile
	if err := s.db.Where("is_active = ? AND is_enabled = ?", true, true).First(&profile).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New(errors.ErrStorageProfileNotFound).WithDetails("no active storage profile")
		}
		return nil, errors.Wrap(errors.ErrDatabaseQuery, err)
	}
	return &profile, nil
}

// ToggleProfile 启用/禁用存储配置
func (s *profileService) ToggleProfile(id uint, enabled bool) error {
	profile, err := s.GetProfileByID(id)
	if err != nil {
		return err
	}

	if !enabled && profile.IsActive {
		return errors.New(errors.ErrStorageProfileInvalid).WithDetails("cannot disable the active profile")
	}

	if err := s.db.Model(profile).Update("is_enabled", enabled).Error; err != nil {
		return errors.Wrap(errors.ErrDatabaseUpdate, err)
	}

	return nil
}

// validateProfile 校验存储配置的必填字段
func (s *profileService) validateProfile(profile *database.StorageProfile) error {
	if profile.Name == "" || profile.Provider == "" || profile.Bucket == "" ||
		profile.AccessKey == "" || profile.SecretKey == "" {
		return errors.New(errors.ErrStorageProfileInvalid).WithDetails("name, provider, bucket and credentials are required")
	}

	switch profile.Provider {
	case "aliyun", "tencent", "qiniu":
		return nil
	default:
		return errors.New(errors.ErrStorageProviderNotSupported).WithDetails(profile.Provider)
	}
}

// deactivateAllProfiles 取消所有配置的激活状态
func (s *profileService) deactivateAllProfiles() error {
	if err := s.db.Model(&database.StorageProfile{}).Where("is_active = ?", true).
		Update("is_active", false).Error; err != nil {
		return errors.Wrap(errors.ErrDatabaseUpdate, err)
	}
	return nil
}
