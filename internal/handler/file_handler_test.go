// 文件详情和列表中分享链接摘要的生成测试
package handler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/weiwangfds/filegate/internal/database"
)

// TestUsableShareSummaries 摘要只包含未撤销且未过期的链接
func TestUsableShareSummaries(t *testing.T) {
	now := time.Now()
	hash := "$2a$04$placeholderplaceholderplacex"
	links := []database.ShareLink{
		{
			Token:        "fs_aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
			ExpiresAt:    now.Add(time.Hour),
			PasswordHash: &hash,
			AccessCount:  3,
			IsActive:     true,
		},
		// 已撤销
		{
			Token:     "fs_bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb",
			ExpiresAt: now.Add(time.Hour),
			IsActive:  false,
		},
		// 已过期
		{
			Token:     "fs_cccccccccccccccccccccccccccccccc",
			ExpiresAt: now.Add(-time.Minute),
			IsActive:  true,
		},
	}

	shares := usableShareSummaries(links, func(token string) string {
		return "https://files.example.com/s/" + token
	}, now)

	require.Len(t, shares, 1)
	assert.Equal(t, "fs_aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", shares[0].Token)
	assert.Equal(t, "https://files.example.com/s/fs_aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", shares[0].ShareURL)
	assert.True(t, shares[0].HasPassword)
	assert.Equal(t, int64(3), shares[0].AccessCount)

	// 无可用链接时返回空切片而非nil，序列化为[]
	assert.NotNil(t, usableShareSummaries(nil, func(string) string { return "" }, now))
}
