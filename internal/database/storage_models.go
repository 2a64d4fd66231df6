// Package database 定义对象存储配置相关的数据库模型
package database

import (
	"time"

	"gorm.io/gorm"
)

// StorageProfile 对象存储配置模型
// 用于管理不同云服务商的存储配置，支持阿里云OSS、腾讯云COS、七牛云Kodo
// 系统中同一时刻只有一个激活配置，所有对象读写经由激活配置对应的提供商
type StorageProfile struct {
	ID        uint           `gorm:"primarykey" json:"id"`                          // 主键ID，自增
	Name      string         `gorm:"not null;size:100" json:"name"`                 // 配置名称，用于标识不同的存储配置
	Provider  string         `gorm:"not null;size:20" json:"provider"`              // 提供商：aliyun（阿里云）、tencent（腾讯云）、qiniu（七牛云）
	Region    string         `gorm:"not null;size:50" json:"region"`                // 服务区域，如：cn-hangzhou、ap-beijing等
	Bucket    string         `gorm:"not null;size:100" json:"bucket"`               // 存储桶名称
	AccessKey string         `gorm:"not null;size:100" json:"access_key"`           // 访问密钥ID，用于API认证
	SecretKey string         `gorm:"not null;size:200" json:"-"`                    // 访问密钥Secret，敏感信息，API响应时不返回
	Endpoint  string         `gorm:"size:200" json:"endpoint"`                      // 自定义服务端点URL，可选配置
	IsActive  bool           `gorm:"default:false" json:"is_active"`                // 是否为当前激活使用的配置
	IsEnabled bool           `gorm:"default:true" json:"is_enabled"`                // 配置是否启用，禁用后不可激活
	CreatedAt time.Time      `json:"created_at"`                                    // 配置创建时间
	UpdatedAt time.Time      `json:"updated_at"`                                    // 配置最后修改时间
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`                                // 软删除时间戳，支持逻辑删除
}

// TableName 指定StorageProfile模型对应的数据库表名
func (StorageProfile) TableName() string {
	return "storage_profiles"
}
