package handler

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	fileservice "github.com/weiwangfds/filegate/internal/service/file"
)

// bindListQuery 解析文件列表查询参数
// 数值和时间参数格式不合法时直接报参数错误
func bindListQuery(c *gin.Context) (fileservice.ListQuery, error) {
	var query fileservice.ListQuery

	query.Name = c.Query("name")
	query.Path = c.Query("path")
	query.ContentType = c.Query("content_type")

	var err error
	if query.MinSize, err = optionalInt64(c, "min_size"); err != nil {
		return query, err
	}
	if query.MaxSize, err = optionalInt64(c, "max_size"); err != nil {
		return query, err
	}
	if query.CreatedAfter, err = optionalTime(c, "created_after"); err != nil {
		return query, err
	}
	if query.CreatedBefore, err = optionalTime(c, "created_before"); err != nil {
		return query, err
	}

	if raw := c.Query("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil {
			return query, fmt.Errorf("页码格式错误: %s", raw)
		}
		query.Page = page
	}
	if raw := c.Query("page_size"); raw != "" {
		pageSize, err := strconv.Atoi(raw)
		if err != nil {
			return query, fmt.Errorf("每页数量格式错误: %s", raw)
		}
		query.PageSize = pageSize
	}

	return query, nil
}

// optionalInt64 解析可选的整数查询参数
func optionalInt64(c *gin.Context, name string) (*int64, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%s格式错误: %s", name, raw)
	}
	return &value, nil
}

// optionalTime 解析可选的RFC3339时间查询参数
func optionalTime(c *gin.Context, name string) (*time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	value, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, fmt.Errorf("%s必须是RFC3339格式: %s", name, raw)
	}
	return &value, nil
}
