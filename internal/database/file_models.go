// Package database 定义文件相关的数据库模型
// 包含文件元数据等核心数据模型
package database

import (
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"
)

// FileObject 文件元数据模型
// 记录对象存储中每个文件对象的归属和基本信息
// 存储键以"{租户ID}/"开头，租户隔离完全依赖该前缀，没有独立的租户ID列
type FileObject struct {
	ID          uint           `gorm:"primarykey" json:"id"`                   // 主键ID，自增
	FileName    string         `gorm:"not null;size:255" json:"file_name"`     // 原始文件名称，最大255字符
	DisplayName string         `gorm:"size:255" json:"display_name,omitempty"` // 可选的显示名称
	StorageKey  string         `gorm:"uniqueIndex;not null;size:500" json:"-"` // 对象存储键，编码租户归属，不对外返回
	VirtualPath string         `gorm:"size:200" json:"virtual_path,omitempty"` // 规范化后的虚拟目录路径，可为空
	ContentType string         `gorm:"not null;size:100" json:"content_type"`  // 文件MIME类型
	FileSize    int64          `gorm:"not null" json:"file_size"`              // 文件大小，单位为字节
	Metadata    string         `gorm:"type:text" json:"metadata,omitempty"`    // 自由格式的键值元数据，JSON文本
	CreatedAt   time.Time      `json:"created_at"`                             // 记录创建时间
	UpdatedAt   time.Time      `json:"updated_at"`                             // 记录最后更新时间
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`                         // 软删除时间戳，支持逻辑删除

	ShareLinks []ShareLink `gorm:"foreignKey:FileID;constraint:OnDelete:CASCADE" json:"-"` // 该文件的所有分享链接，随文件级联删除，对外只输出摘要
}

// TableName 指定FileObject模型对应的数据库表名
func (FileObject) TableName() string {
	return "file_objects"
}

// OwnedBy 判断文件是否归属于指定租户
// 租户隔离的唯一判定点：存储键必须以"{租户ID}/"开头
// 归属编码方式若调整，只需修改此方法
func (f *FileObject) OwnedBy(tenantID uint) bool {
	return strings.HasPrefix(f.StorageKey, strconv.FormatUint(uint64(tenantID), 10)+"/")
}
