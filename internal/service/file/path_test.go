package file

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/weiwangfds/filegate/internal/errors"
)

// TestNormalizeVirtualPath 测试虚拟路径规范化
func TestNormalizeVirtualPath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "空路径合法", input: "", want: ""},
		{name: "纯空白视为空路径", input: "   ", want: ""},
		{name: "纯分隔符视为空路径", input: "///", want: ""},
		{name: "简单路径", input: "docs", want: "docs"},
		{name: "多级路径", input: "docs/reports/2026", want: "docs/reports/2026"},
		{name: "去除首尾分隔符", input: "/docs/reports/", want: "docs/reports"},
		{name: "去除首尾空白", input: "  docs/reports  ", want: "docs/reports"},
		{name: "下划线和连字符合法", input: "my_docs/q3-reports", want: "my_docs/q3-reports"},
		{name: "拒绝上级目录段", input: "docs/../secret", wantErr: true},
		{name: "拒绝纯上级目录", input: "..", wantErr: true},
		{name: "拒绝中间连续分隔符", input: "docs//reports", wantErr: true},
		{name: "拒绝空格", input: "my docs", wantErr: true},
		{name: "拒绝点号", input: "docs/v1.2", wantErr: true},
		{name: "拒绝百分号", input: "docs%2f", wantErr: true},
		{name: "拒绝反斜杠", input: `docs\reports`, wantErr: true},
		{name: "拒绝非ASCII字符", input: "文档", wantErr: true},
		{name: "拒绝控制字符", input: "docs\x00", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeVirtualPath(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				assert.True(t, errors.IsCode(err, errors.ErrInvalidPath))
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// TestNormalizeVirtualPathIdempotent 规范化结果再次规范化应保持不变
func TestNormalizeVirtualPathIdempotent(t *testing.T) {
	inputs := []string{"", "docs", "/docs/reports/", "  a/b/c  "}
	for _, input := range inputs {
		first, err := NormalizeVirtualPath(input)
		assert.NoError(t, err)

		second, err := NormalizeVirtualPath(first)
		assert.NoError(t, err)
		assert.Equal(t, first, second)
	}
}
