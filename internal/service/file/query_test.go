package file

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// TestEscapeLikePattern 测试LIKE模式元字符转义
func TestEscapeLikePattern(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"report", "report"},
		{"100%", `100\%`},
		{"my_file", `my\_file`},
		{`back\slash`, `back\\slash`},
		{"%_%", `\%\_\%`},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, EscapeLikePattern(tt.input))
	}
}

// TestListQueryNormalize 测试分页默认值和上限
func TestListQueryNormalize(t *testing.T) {
	q := ListQuery{}
	q.Normalize()
	assert.Equal(t, 1, q.Page)
	assert.Equal(t, DefaultPageSize, q.PageSize)

	q = ListQuery{Page: -5, PageSize: 10000}
	q.Normalize()
	assert.Equal(t, 1, q.Page)
	assert.Equal(t, MaxPageSize, q.PageSize)

	q = ListQuery{Page: 3, PageSize: 20}
	q.Normalize()
	assert.Equal(t, 3, q.Page)
	assert.Equal(t, 20, q.PageSize)
	assert.Equal(t, 40, q.Offset())
}

// TestListQueryValidate 测试范围条件校验
func TestListQueryValidate(t *testing.T) {
	min := int64(100)
	max := int64(10)
	q := ListQuery{MinSize: &min, MaxSize: &max}
	assert.Error(t, q.Validate())

	negative := int64(-1)
	q = ListQuery{MinSize: &negative}
	assert.Error(t, q.Validate())

	after := time.Now()
	before := after.Add(-time.Hour)
	q = ListQuery{CreatedAfter: &after, CreatedBefore: &before}
	assert.Error(t, q.Validate())

	ok := int64(10)
	q = ListQuery{MinSize: &ok, MaxSize: &min, CreatedAfter: &before, CreatedBefore: &after}
	assert.NoError(t, q.Validate())
}
