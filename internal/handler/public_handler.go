package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/weiwangfds/filegate/internal/response"
	shareservice "github.com/weiwangfds/filegate/internal/service/share"
)

// PublicHandler 公开访问处理器
// @Description 无需租户凭证的分享访问入口
type PublicHandler struct {
	shareService shareservice.ShareService
}

// NewPublicHandler 创建公开访问处理器实例
func NewPublicHandler(shareService shareservice.ShareService) *PublicHandler {
	return &PublicHandler{
		shareService: shareService,
	}
}

// accessShareRequest 分享访问请求体
type accessShareRequest struct {
	Password string `json:"password"` // 访问密码
}

// AccessShare 访问分享链接
// @Summary 访问分享链接
// @Description 通过分享令牌匿名访问文件，返回文件元数据和限时下载链接
// @Description 带密码的分享通过password查询参数或JSON请求体提供密码
// @Tags 公开访问
// @Accept json
// @Produce json
// @Param token path string true "分享令牌"
// @Param password query string false "访问密码"
// @Param request body accessShareRequest false "访问密码"
// @Success 200 {object} response.Response "文件元数据和下载链接"
// @Failure 400 {object} response.Response "令牌格式不合法"
// @Failure 401 {object} response.Response "需要密码或密码错误"
// @Failure 403 {object} response.Response "分享已撤销"
// @Failure 404 {object} response.Response "分享链接不存在"
// @Failure 410 {object} response.Response "分享已过期"
// @Router /s/{token} [get]
func (h *PublicHandler) AccessShare(c *gin.Context) {
	result, err := h.shareService.Access(c.Request.Context(), shareservice.AccessInput{
		Token:    c.Param("token"),
		Password: sharePassword(c),
	})
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, result)
}

// sharePassword 提取访问密码
// 优先取查询参数，其次取JSON请求体，调用方无需把密码写进URL
func sharePassword(c *gin.Context) string {
	if password := c.Query("password"); password != "" {
		return password
	}
	if c.Request.ContentLength <= 0 {
		return ""
	}
	var body accessShareRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		return ""
	}
	return body.Password
}
