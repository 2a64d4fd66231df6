// Package database 定义分享链接相关的数据库模型
package database

import (
	"time"

	"gorm.io/gorm"
)

// ShareLink 分享链接模型
// 一条分享链接授予对单个文件的限时公开读取能力
// 撤销是单向的：IsActive一旦置为false没有恢复路径
type ShareLink struct {
	ID           uint           `gorm:"primarykey" json:"id"`                   // 主键ID，自增
	Token        string         `gorm:"uniqueIndex;not null;size:64" json:"token"` // 唯一分享令牌，固定前缀+随机十六进制
	FileID       uint           `gorm:"not null;index" json:"file_id"`          // 被分享的文件ID
	File         *FileObject    `gorm:"foreignKey:FileID" json:"file,omitempty"` // 关联的文件对象，便于预加载
	ExpiresAt    time.Time      `gorm:"not null;index" json:"expires_at"`       // 过期时间，超过后链接不可用
	PasswordHash *string        `gorm:"size:255" json:"-"`                      // 可选的访问密码哈希（bcrypt），null表示无密码
	AccessCount  int64          `gorm:"default:0" json:"access_count"`          // 成功访问次数，单调递增
	IsActive     bool           `gorm:"default:true" json:"is_active"`          // 是否可用，false表示已撤销
	CreatedAt    time.Time      `json:"created_at"`                             // 分享创建时间
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`                         // 软删除时间戳，仅随文件级联删除
}

// TableName 指定ShareLink模型对应的数据库表名
func (ShareLink) TableName() string {
	return "share_links"
}

// HasPassword 判断分享链接是否设置了访问密码
func (s *ShareLink) HasPassword() bool {
	return s.PasswordHash != nil && *s.PasswordHash != ""
}

// UsableAt 判断分享链接在指定时刻是否可用
// 可用当且仅当未被撤销且未过期，密码校验与可用性无关
func (s *ShareLink) UsableAt(now time.Time) bool {
	return s.IsActive && now.Before(s.ExpiresAt)
}
