// 本文件实现虚拟路径的规范化
// 虚拟路径会被拼接进对象存储键，这里是防止路径穿越和键歧义的安全边界
package file

import (
	"strings"

	"github.com/weiwangfds/filegate/internal/errors"
)

// NormalizeVirtualPath 规范化用户提供的虚拟目录路径
// 算法: 去除首尾空白和分隔符；结果为空表示"无路径"，不是错误
// 拒绝: 上级目录段（".."）、连续分隔符、以及[A-Za-z0-9/_-]之外的任何字符
// 纯函数，无I/O
// 参数:
//   raw - 原始路径字符串，可为空
// 返回:
//   string - 规范化后的路径，无路径时为空串
//   error - 路径不合法时返回InvalidPath错误
func NormalizeVirtualPath(raw string) (string, error) {
	p := strings.TrimSpace(raw)
	p = strings.Trim(p, "/")
	if p == "" {
		return "", nil
	}

	if strings.Contains(p, "//") {
		return "", errors.New(errors.ErrInvalidPath).WithDetails("path contains doubled separators")
	}

	for _, segment := range strings.Split(p, "/") {
		if segment == ".." {
			return "", errors.New(errors.ErrInvalidPath).WithDetails("path contains a parent directory segment")
		}
	}

	for i := 0; i < len(p); i++ {
		if !isAllowedPathByte(p[i]) {
			return "", errors.New(errors.ErrInvalidPath).WithDetails("path contains disallowed characters")
		}
	}

	return p, nil
}

// isAllowedPathByte 判断字节是否属于路径合法字符集[A-Za-z0-9/_-]
func isAllowedPathByte(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z':
		return true
	case c >= 'A' && c <= 'Z':
		return true
	case c >= '0' && c <= '9':
		return true
	case c == '/' || c == '_' || c == '-':
		return true
	default:
		return false
	}
}
