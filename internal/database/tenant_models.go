// Package database 定义租户凭证相关的数据库模型
package database

import (
	"time"

	"gorm.io/gorm"
)

// TenantCredential 租户凭证模型
// 每个租户通过一条高熵的访问密钥标识，密钥全局唯一
// 只有处于激活状态的凭证才能解析为可用身份
type TenantCredential struct {
	ID        uint           `gorm:"primarykey" json:"id"`                  // 主键ID，自增，即租户ID
	AccessKey string         `gorm:"uniqueIndex;not null;size:64" json:"-"` // 访问密钥，敏感信息，API响应时不返回
	Name      string         `gorm:"not null;size:100" json:"name"`         // 租户显示名称
	IsActive  bool           `gorm:"default:true" json:"is_active"`         // 是否激活，停用后凭证立即失效
	CreatedAt time.Time      `json:"created_at"`                            // 记录创建时间
	UpdatedAt time.Time      `json:"updated_at"`                            // 记录最后更新时间
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`                        // 软删除时间戳，支持逻辑删除
}

// TableName 指定TenantCredential模型对应的数据库表名
func (TenantCredential) TableName() string {
	return "tenant_credentials"
}
