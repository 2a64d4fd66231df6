package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/weiwangfds/filegate/internal/middleware"
	"github.com/weiwangfds/filegate/internal/response"
	shareservice "github.com/weiwangfds/filegate/internal/service/share"
)

// ShareHandler 分享链接处理器
// @Description 分享链接管理相关的HTTP处理器
type ShareHandler struct {
	shareService shareservice.ShareService
}

// NewShareHandler 创建分享链接处理器实例
func NewShareHandler(shareService shareservice.ShareService) *ShareHandler {
	return &ShareHandler{
		shareService: shareService,
	}
}

// createShareRequest 创建分享链接请求体
type createShareRequest struct {
	TTLSeconds int64  `json:"ttl_seconds"` // 有效期（秒），0表示默认
	Password   string `json:"password"`    // 可选的访问密码
}

// CreateShare 创建分享链接
// @Summary 创建分享链接
// @Description 为文件签发分享令牌，可设置有效期和访问密码
// @Tags 分享管理
// @Accept json
// @Produce json
// @Param X-Access-Key header string true "租户访问密钥"
// @Param id path int true "文件ID"
// @Param request body createShareRequest false "分享选项"
// @Success 201 {object} response.Response "分享链接信息"
// @Failure 400 {object} response.Response "请求参数错误"
// @Failure 403 {object} response.Response "禁止访问"
// @Failure 404 {object} response.Response "文件不存在"
// @Router /api/v1/files/{id}/shares [post]
func (h *ShareHandler) CreateShare(c *gin.Context) {
	fileID, ok := parseFileID(c)
	if !ok {
		return
	}

	var req createShareRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BadRequest(c, "请求体格式错误")
			return
		}
	}

	created, err := h.shareService.Create(middleware.TenantID(c), shareservice.CreateInput{
		FileID:     fileID,
		TTLSeconds: req.TTLSeconds,
		Password:   req.Password,
	})
	if err != nil {
		response.FromError(c, err)
		return
	}

	// 返回实际生效的有效期，请求未指定时调用方由此得知应用的默认值
	response.Created(c, "分享链接创建成功", gin.H{
		"token":        created.Link.Token,
		"share_url":    created.ShareURL,
		"expires_at":   created.Link.ExpiresAt,
		"ttl_seconds":  created.TTLSeconds,
		"has_password": created.Link.HasPassword(),
	})
}

// ListShares 列出文件的分享链接
// @Summary 列出文件的分享链接
// @Description 列出指定文件的全部分享链接，含已撤销和已过期的
// @Tags 分享管理
// @Produce json
// @Param X-Access-Key header string true "租户访问密钥"
// @Param id path int true "文件ID"
// @Success 200 {object} response.Response "分享链接列表"
// @Failure 403 {object} response.Response "禁止访问"
// @Failure 404 {object} response.Response "文件不存在"
// @Router /api/v1/files/{id}/shares [get]
func (h *ShareHandler) ListShares(c *gin.Context) {
	fileID, ok := parseFileID(c)
	if !ok {
		return
	}

	links, err := h.shareService.ListForFile(middleware.TenantID(c), fileID)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, links)
}

// RevokeShare 撤销分享链接
// @Summary 撤销分享链接
// @Description 立即使分享令牌失效，撤销不可恢复，重复撤销幂等
// @Tags 分享管理
// @Produce json
// @Param X-Access-Key header string true "租户访问密钥"
// @Param token path string true "分享令牌"
// @Success 200 {object} response.Response "撤销成功"
// @Failure 400 {object} response.Response "令牌格式不合法"
// @Failure 403 {object} response.Response "禁止访问"
// @Failure 404 {object} response.Response "分享链接不存在"
// @Router /api/v1/shares/{token} [delete]
func (h *ShareHandler) RevokeShare(c *gin.Context) {
	token := c.Param("token")

	if err := h.shareService.Revoke(middleware.TenantID(c), token); err != nil {
		response.FromError(c, err)
		return
	}

	response.SuccessWithMessage(c, "分享链接已撤销", nil)
}
