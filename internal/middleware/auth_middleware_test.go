// 租户认证中间件的测试
package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/weiwangfds/filegate/internal/database"
	tenantservice "github.com/weiwangfds/filegate/internal/service/tenant"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupAuthEngine 组装带认证中间件的测试路由
func setupAuthEngine(t *testing.T) (*gin.Engine, tenantservice.TenantService) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	tenants := tenantservice.NewTenantService(db)

	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.GET("/whoami", TenantAuth(tenants), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"tenant_id": TenantID(c)})
	})
	return engine, tenants
}

// TestTenantAuthAcceptsValidKey 合法密钥放行并注入租户ID
func TestTenantAuthAcceptsValidKey(t *testing.T) {
	engine, tenants := setupAuthEngine(t)

	credential, rawKey, err := tenants.CreateCredential("acme")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set(AccessKeyHeader, rawKey)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), fmt.Sprintf(`"tenant_id":%d`, credential.ID))
}

// TestTenantAuthRejectsUniformly 缺失、未知和停用的密钥返回相同的401响应
func TestTenantAuthRejectsUniformly(t *testing.T) {
	engine, tenants := setupAuthEngine(t)

	credential, rawKey, err := tenants.CreateCredential("acme")
	require.NoError(t, err)
	require.NoError(t, tenants.DeactivateCredential(credential.ID))

	var bodies []map[string]interface{}
	for _, key := range []string{"", "ak_00000000000000000000000000000000", rawKey} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		if key != "" {
			req.Header.Set(AccessKeyHeader, key)
		}
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)

		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		// timestamp和request_id随请求变化，比较其余部分
		delete(body, "timestamp")
		delete(body, "request_id")
		bodies = append(bodies, body)
	}

	assert.Equal(t, bodies[0], bodies[1])
	assert.Equal(t, bodies[1], bodies[2])
}
