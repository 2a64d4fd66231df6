package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/weiwangfds/filegate/internal/response"
	"github.com/weiwangfds/filegate/internal/service/tenant"
)

// AccessKeyHeader 携带租户访问密钥的请求头
const AccessKeyHeader = "X-Access-Key"

// 上下文键
const (
	ContextTenantID  = "tenant_id"
	ContextTenantKey = "tenant"
)

// TenantAuth 租户认证中间件
// 从请求头提取访问密钥并解析为租户身份，解析成功后将租户ID
// 写入请求上下文，后续处理器据此划定数据范围
// 密钥缺失、未知或已禁用一律返回相同的未授权错误，不泄露差异
func TenantAuth(tenantService tenant.TenantService) gin.HandlerFunc {
	return func(c *gin.Context) {
		accessKey := c.GetHeader(AccessKeyHeader)

		credential, err := tenantService.Resolve(accessKey)
		if err != nil {
			response.FromError(c, err)
			c.Abort()
			return
		}

		c.Set(ContextTenantID, credential.ID)
		c.Set(ContextTenantKey, credential)
		c.Next()
	}
}

// TenantID 从请求上下文读取已认证的租户ID
// 仅在TenantAuth之后的处理器中调用
func TenantID(c *gin.Context) uint {
	value, ok := c.Get(ContextTenantID)
	if !ok {
		return 0
	}
	id, _ := value.(uint)
	return id
}
