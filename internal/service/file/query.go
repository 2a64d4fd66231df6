// 本文件实现文件列表的查询条件构建
// 所有条件以AND组合，查询始终被租户的存储键前缀约束
package file

import (
	"strings"
	"time"

	"github.com/weiwangfds/filegate/internal/errors"
	"gorm.io/gorm"
)

// 分页默认值和上限
const (
	DefaultPageSize = 50
	MaxPageSize     = 200
)

// ListQuery 文件列表查询条件
// 所有条件均为可选；文本条件是大小写不敏感的子串匹配
type ListQuery struct {
	Name          string     // 文件名子串
	Path          string     // 虚拟路径子串
	ContentType   string     // MIME类型，精确匹配
	MinSize       *int64     // 最小文件大小（字节）
	MaxSize       *int64     // 最大文件大小（字节）
	CreatedAfter  *time.Time // 创建时间下界
	CreatedBefore *time.Time // 创建时间上界
	Page          int        // 页码，从1开始
	PageSize      int        // 每页数量
}

// Normalize 填充分页默认值并限制上限
func (q *ListQuery) Normalize() {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize <= 0 {
		q.PageSize = DefaultPageSize
	}
	if q.PageSize > MaxPageSize {
		q.PageSize = MaxPageSize
	}
}

// Validate 校验范围条件的合法性
func (q *ListQuery) Validate() error {
	if q.MinSize != nil && *q.MinSize < 0 {
		return errors.New(errors.ErrInvalidParams).WithDetails("min_size must not be negative")
	}
	if q.MinSize != nil && q.MaxSize != nil && *q.MinSize > *q.MaxSize {
		return errors.New(errors.ErrInvalidParams).WithDetails("min_size must not exceed max_size")
	}
	if q.CreatedAfter != nil && q.CreatedBefore != nil && q.CreatedAfter.After(*q.CreatedBefore) {
		return errors.New(errors.ErrInvalidParams).WithDetails("created_after must not be later than created_before")
	}
	return nil
}

// Offset 计算分页偏移量
func (q *ListQuery) Offset() int {
	return (q.Page - 1) * q.PageSize
}

// apply 将查询条件应用到GORM查询上
// 上下界可以单独出现或同时出现，分别构成开区间和闭区间
func (q *ListQuery) apply(db *gorm.DB) *gorm.DB {
	if q.Name != "" {
		db = db.Where("LOWER(file_name) LIKE ? ESCAPE '\\'", containsPattern(q.Name))
	}
	if q.Path != "" {
		db = db.Where("LOWER(virtual_path) LIKE ? ESCAPE '\\'", containsPattern(q.Path))
	}
	if q.ContentType != "" {
		db = db.Where("content_type = ?", q.ContentType)
	}
	if q.MinSize != nil {
		db = db.Where("file_size >= ?", *q.MinSize)
	}
	if q.MaxSize != nil {
		db = db.Where("file_size <= ?", *q.MaxSize)
	}
	if q.CreatedAfter != nil {
		db = db.Where("created_at >= ?", *q.CreatedAfter)
	}
	if q.CreatedBefore != nil {
		db = db.Where("created_at <= ?", *q.CreatedBefore)
	}
	return db
}

// containsPattern 构建大小写不敏感的子串匹配模式
// 用户输入中的模式元字符先被转义，避免被当作通配符解释
func containsPattern(s string) string {
	return "%" + EscapeLikePattern(strings.ToLower(s)) + "%"
}

// EscapeLikePattern 转义LIKE模式中的元字符（反斜杠、百分号、下划线）
func EscapeLikePattern(s string) string {
	replacer := strings.NewReplacer(
		`\`, `\\`,
		`%`, `\%`,
		`_`, `\_`,
	)
	return replacer.Replace(s)
}
