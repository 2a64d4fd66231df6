// Package handler 提供HTTP请求处理器
// 处理器只做参数解析和响应封装，业务规则都在service层
package handler

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/weiwangfds/filegate/internal/database"
	"github.com/weiwangfds/filegate/internal/middleware"
	"github.com/weiwangfds/filegate/internal/response"
	fileservice "github.com/weiwangfds/filegate/internal/service/file"
	shareservice "github.com/weiwangfds/filegate/internal/service/share"
)

// FileHandler 文件处理器
// @Description 文件管理相关的HTTP处理器
type FileHandler struct {
	fileService  fileservice.FileService
	shareService shareservice.ShareService
}

// NewFileHandler 创建文件处理器实例
func NewFileHandler(fileService fileservice.FileService, shareService shareservice.ShareService) *FileHandler {
	return &FileHandler{
		fileService:  fileService,
		shareService: shareService,
	}
}

// parseFileID 解析路径参数中的文件ID
// 非数字的ID直接按参数错误处理，不查库
func parseFileID(c *gin.Context) (uint, bool) {
	raw := c.Param("id")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		response.BadRequest(c, "文件ID无效")
		return 0, false
	}
	return uint(id), true
}

// UploadFile 上传文件
// @Summary 上传文件
// @Description 上传单个文件，可附带虚拟路径、显示名称和元数据
// @Tags 文件管理
// @Accept multipart/form-data
// @Produce json
// @Param X-Access-Key header string true "租户访问密钥"
// @Param file formData file true "要上传的文件"
// @Param path formData string false "虚拟路径"
// @Param display_name formData string false "显示名称"
// @Param metadata formData string false "JSON对象格式的元数据"
// @Success 201 {object} response.Response "上传成功"
// @Failure 400 {object} response.Response "请求参数错误"
// @Failure 401 {object} response.Response "未授权"
// @Failure 500 {object} response.Response "服务器内部错误"
// @Router /api/v1/files/upload [post]
func (h *FileHandler) UploadFile(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "未选择文件或文件无效")
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		response.InternalServerError(c, "无法打开上传的文件")
		return
	}
	defer src.Close()

	record, err := h.fileService.Upload(c.Request.Context(), middleware.TenantID(c), fileservice.UploadInput{
		FileName:    fileHeader.Filename,
		DisplayName: c.PostForm("display_name"),
		VirtualPath: c.PostForm("path"),
		ContentType: fileHeader.Header.Get("Content-Type"),
		Metadata:    c.PostForm("metadata"),
		Reader:      src,
	})
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Created(c, "文件上传成功", record)
}

// shareSummary 文件详情和列表中的分享链接摘要
type shareSummary struct {
	Token       string    `json:"token"`        // 分享令牌
	ShareURL    string    `json:"share_url"`    // 公开访问地址
	ExpiresAt   time.Time `json:"expires_at"`   // 过期时间
	HasPassword bool      `json:"has_password"` // 是否设置了访问密码
	AccessCount int64     `json:"access_count"` // 成功访问次数
}

// usableShareSummaries 过滤出当前可用的分享链接并生成摘要
// 已撤销和已过期的链接不进入摘要，密码散列永不外传
func usableShareSummaries(links []database.ShareLink, urlFor func(token string) string, now time.Time) []shareSummary {
	shares := make([]shareSummary, 0)
	for i := range links {
		if !links[i].UsableAt(now) {
			continue
		}
		shares = append(shares, shareSummary{
			Token:       links[i].Token,
			ShareURL:    urlFor(links[i].Token),
			ExpiresAt:   links[i].ExpiresAt,
			HasPassword: links[i].HasPassword(),
			AccessCount: links[i].AccessCount,
		})
	}
	return shares
}

// GetFile 获取文件信息
// @Summary 获取文件信息
// @Description 根据文件ID获取文件的详细信息，附带当前可用的分享链接
// @Tags 文件管理
// @Produce json
// @Param X-Access-Key header string true "租户访问密钥"
// @Param id path int true "文件ID"
// @Success 200 {object} response.Response "文件信息"
// @Failure 400 {object} response.Response "文件ID无效"
// @Failure 403 {object} response.Response "禁止访问"
// @Failure 404 {object} response.Response "文件不存在"
// @Router /api/v1/files/{id} [get]
func (h *FileHandler) GetFile(c *gin.Context) {
	fileID, ok := parseFileID(c)
	if !ok {
		return
	}

	record, err := h.fileService.GetByID(middleware.TenantID(c), fileID)
	if err != nil {
		response.FromError(c, err)
		return
	}

	links, err := h.shareService.ListForFile(middleware.TenantID(c), fileID)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, gin.H{
		"file":   record,
		"shares": usableShareSummaries(links, h.shareService.ShareURL, time.Now()),
	})
}

// updateFileRequest 文件更新请求体
type updateFileRequest struct {
	DisplayName *string `json:"display_name"` // 新的显示名称
	Metadata    *string `json:"metadata"`     // 新的元数据JSON文本
}

// UpdateFile 更新文件信息
// @Summary 更新文件信息
// @Description 更新文件的显示名称或元数据，文件内容不可变
// @Tags 文件管理
// @Accept json
// @Produce json
// @Param X-Access-Key header string true "租户访问密钥"
// @Param id path int true "文件ID"
// @Param request body updateFileRequest true "更新内容"
// @Success 200 {object} response.Response "更新后的文件信息"
// @Failure 400 {object} response.Response "请求参数错误"
// @Failure 403 {object} response.Response "禁止访问"
// @Failure 404 {object} response.Response "文件不存在"
// @Router /api/v1/files/{id} [put]
func (h *FileHandler) UpdateFile(c *gin.Context) {
	fileID, ok := parseFileID(c)
	if !ok {
		return
	}

	var req updateFileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求体格式错误")
		return
	}

	record, err := h.fileService.Update(middleware.TenantID(c), fileID, fileservice.UpdateInput{
		DisplayName: req.DisplayName,
		Metadata:    req.Metadata,
	})
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.SuccessWithMessage(c, "文件更新成功", record)
}

// DeleteFile 删除文件
// @Summary 删除文件
// @Description 删除文件及其全部分享链接
// @Tags 文件管理
// @Produce json
// @Param X-Access-Key header string true "租户访问密钥"
// @Param id path int true "文件ID"
// @Success 200 {object} response.Response "删除成功"
// @Failure 400 {object} response.Response "文件ID无效"
// @Failure 403 {object} response.Response "禁止访问"
// @Failure 404 {object} response.Response "文件不存在"
// @Router /api/v1/files/{id} [delete]
func (h *FileHandler) DeleteFile(c *gin.Context) {
	fileID, ok := parseFileID(c)
	if !ok {
		return
	}

	if err := h.fileService.Delete(c.Request.Context(), middleware.TenantID(c), fileID); err != nil {
		response.FromError(c, err)
		return
	}

	response.SuccessWithMessage(c, "文件删除成功", nil)
}

// fileListItem 文件列表项，附带当前可用的分享链接摘要
type fileListItem struct {
	File   database.FileObject `json:"file"`   // 文件元数据
	Shares []shareSummary      `json:"shares"` // 当前可用的分享链接
}

// ListFiles 查询文件列表
// @Summary 查询文件列表
// @Description 按名称、路径、类型、大小区间和时间区间筛选当前租户的文件，每条记录附带当前可用的分享链接
// @Tags 文件管理
// @Produce json
// @Param X-Access-Key header string true "租户访问密钥"
// @Param name query string false "文件名关键字（不区分大小写）"
// @Param path query string false "虚拟路径前缀"
// @Param content_type query string false "MIME类型"
// @Param min_size query int false "最小字节数"
// @Param max_size query int false "最大字节数"
// @Param created_after query string false "创建时间下限（RFC3339）"
// @Param created_before query string false "创建时间上限（RFC3339）"
// @Param page query int false "页码，从1开始"
// @Param page_size query int false "每页数量，默认50，最大200"
// @Success 200 {object} response.Response "文件列表"
// @Failure 400 {object} response.Response "查询条件无效"
// @Router /api/v1/files [get]
func (h *FileHandler) ListFiles(c *gin.Context) {
	query, err := bindListQuery(c)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	query.Normalize()

	records, total, err := h.fileService.List(middleware.TenantID(c), query)
	if err != nil {
		response.FromError(c, err)
		return
	}

	now := time.Now()
	items := make([]fileListItem, 0, len(records))
	for i := range records {
		items = append(items, fileListItem{
			File:   records[i],
			Shares: usableShareSummaries(records[i].ShareLinks, h.shareService.ShareURL, now),
		})
	}

	response.SuccessWithPage(c, items, total, query.Page, query.PageSize)
}

// DownloadFile 下载文件
// @Summary 下载文件
// @Description 以流式方式下载文件内容
// @Tags 文件管理
// @Produce application/octet-stream
// @Param X-Access-Key header string true "租户访问密钥"
// @Param id path int true "文件ID"
// @Success 200 {file} binary "文件内容"
// @Failure 400 {object} response.Response "文件ID无效"
// @Failure 403 {object} response.Response "禁止访问"
// @Failure 404 {object} response.Response "文件不存在"
// @Router /api/v1/files/{id}/download [get]
func (h *FileHandler) DownloadFile(c *gin.Context) {
	fileID, ok := parseFileID(c)
	if !ok {
		return
	}

	record, body, err := h.fileService.Download(c.Request.Context(), middleware.TenantID(c), fileID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	defer body.Close()

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", record.FileName))
	c.Header("Content-Type", record.ContentType)
	if record.FileSize > 0 {
		c.Header("Content-Length", strconv.FormatInt(record.FileSize, 10))
	}
	c.DataFromReader(200, record.FileSize, record.ContentType, body, nil)
}
