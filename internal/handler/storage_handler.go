package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/weiwangfds/filegate/internal/database"
	"github.com/weiwangfds/filegate/internal/response"
	"github.com/weiwangfds/filegate/internal/service/storage"
)

// StorageHandler 存储配置处理器
// @Description 对象存储配置管理相关的HTTP处理器
type StorageHandler struct {
	profileService storage.ProfileService
}

// NewStorageHandler 创建存储配置处理器实例
func NewStorageHandler(profileService storage.ProfileService) *StorageHandler {
	return &StorageHandler{
		profileService: profileService,
	}
}

// parseProfileID 解析路径参数中的配置ID
func parseProfileID(c *gin.Context) (uint, bool) {
	raw := c.Param("id")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		response.BadRequest(c, "存储配置ID无效")
		return 0, false
	}
	return uint(id), true
}

// createProfileRequest 创建存储配置请求体
type createProfileRequest struct {
	Name      string `json:"name" binding:"required"`     // 配置名称
	Provider  string `json:"provider" binding:"required"` // 提供商: aliyun/tencent/qiniu
	Region    string `json:"region"`                      // 地域
	Bucket    string `json:"bucket" binding:"required"`   // 存储桶名称
	AccessKey string `json:"access_key" binding:"required"`
	SecretKey string `json:"secret_key" binding:"required"`
	Endpoint  string `json:"endpoint"` // 自定义端点
}

// CreateProfile 创建存储配置
// @Summary 创建存储配置
// @Description 新增一个对象存储配置，首个配置自动激活
// @Tags 存储配置
// @Accept json
// @Produce json
// @Param X-Access-Key header string true "租户访问密钥"
// @Param request body createProfileRequest true "存储配置"
// @Success 201 {object} response.Response "创建成功"
// @Failure 400 {object} response.Response "请求参数错误"
// @Router /api/v1/storage/profiles [post]
func (h *StorageHandler) CreateProfile(c *gin.Context) {
	var req createProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求体格式错误: "+err.Error())
		return
	}

	profile := &database.StorageProfile{
		Name:      req.Name,
		Provider:  req.Provider,
		Region:    req.Region,
		Bucket:    req.Bucket,
		AccessKey: req.AccessKey,
		SecretKey: req.SecretKey,
		Endpoint:  req.Endpoint,
		IsEnabled: true,
	}

	if err := h.profileService.CreateProfile(profile); err != nil {
		response.FromError(c, err)
		return
	}

	response.Created(c, "存储配置创建成功", profile)
}

// ListProfiles 列出存储配置
// @Summary 列出存储配置
// @Description 列出全部对象存储配置，密钥字段不回显
// @Tags 存储配置
// @Produce json
// @Param X-Access-Key header string true "租户访问密钥"
// @Success 200 {object} response.Response "存储配置列表"
// @Router /api/v1/storage/profiles [get]
func (h *StorageHandler) ListProfiles(c *gin.Context) {
	profiles, err := h.profileService.ListProfiles()
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, profiles)
}

// GetProfile 获取存储配置详情
// @Summary 获取存储配置详情
// @Tags 存储配置
// @Produce json
// @Param X-Access-Key header string true "租户访问密钥"
// @Param id path int true "配置ID"
// @Success 200 {object} response.Response "存储配置"
// @Failure 404 {object} response.Response "配置不存在"
// @Router /api/v1/storage/profiles/{id} [get]
func (h *StorageHandler) GetProfile(c *gin.Context) {
	id, ok := parseProfileID(c)
	if !ok {
		return
	}

	profile, err := h.profileService.GetProfileByID(id)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, profile)
}

// updateProfileRequest 更新存储配置请求体
type updateProfileRequest struct {
	Name      string `json:"name"`
	Region    string `json:"region"`
	Bucket    string `json:"bucket"`
	AccessKey string `json:"access_key"`
	SecretKey string `json:"secret_key"`
	Endpoint  string `json:"endpoint"`
}

// UpdateProfile 更新存储配置
// @Summary 更新存储配置
// @Tags 存储配置
// @Accept json
// @Produce json
// @Param X-Access-Key header string true "租户访问密钥"
// @Param id path int true "配置ID"
// @Param request body updateProfileRequest true "更新内容"
// @Success 200 {object} response.Response "更新成功"
// @Failure 404 {object} response.Response "配置不存在"
// @Router /api/v1/storage/profiles/{id} [put]
func (h *StorageHandler) UpdateProfile(c *gin.Context) {
	id, ok := parseProfileID(c)
	if !ok {
		return
	}

	profile, err := h.profileService.GetProfileByID(id)
	if err != nil {
		response.FromError(c, err)
		return
	}

	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求体格式错误")
		return
	}

	if req.Name != "" {
		profile.Name = req.Name
	}
	if req.Region != "" {
		profile.Region = req.Region
	}
	if req.Bucket != "" {
		profile.Bucket = req.Bucket
	}
	if req.AccessKey != "" {
		profile.AccessKey = req.AccessKey
	}
	if req.SecretKey != "" {
		profile.SecretKey = req.SecretKey
	}
	if req.Endpoint != "" {
		profile.Endpoint = req.Endpoint
	}

	if err := h.profileService.UpdateProfile(profile); err != nil {
		response.FromError(c, err)
		return
	}

	response.SuccessWithMessage(c, "存储配置更新成功", profile)
}

// DeleteProfile 删除存储配置
// @Summary 删除存储配置
// @Description 删除未激活的存储配置，激活中的配置不可删除
// @Tags 存储配置
// @Produce json
// @Param X-Access-Key header string true "租户访问密钥"
// @Param id path int true "配置ID"
// @Success 200 {object} response.Response "删除成功"
// @Failure 400 {object} response.Response "配置正在使用"
// @Failure 404 {object} response.Response "配置不存在"
// @Router /api/v1/storage/profiles/{id} [delete]
func (h *StorageHandler) DeleteProfile(c *gin.Context) {
	id, ok := parseProfileID(c)
	if !ok {
		return
	}

	if err := h.profileService.DeleteProfile(id); err != nil {
		response.FromError(c, err)
		return
	}

	response.SuccessWithMessage(c, "存储配置删除成功", nil)
}

// ActivateProfile 激活存储配置
// @Summary 激活存储配置
// @Description 将指定配置设为当前活动配置，同时取消其他配置的激活状态
// @Tags 存储配置
// @Produce json
// @Param X-Access-Key header string true "租户访问密钥"
// @Param id path int true "配置ID"
// @Success 200 {object} response.Response "激活成功"
// @Failure 404 {object} response.Response "配置不存在"
// @Router /api/v1/storage/profiles/{id}/activate [post]
func (h *StorageHandler) ActivateProfile(c *gin.Context) {
	id, ok := parseProfileID(c)
	if !ok {
		return
	}

	if err := h.profileService.ActivateProfile(id); err != nil {
		response.FromError(c, err)
		return
	}

	response.SuccessWithMessage(c, "存储配置已激活", nil)
}

// GetActiveProfile 获取当前激活的存储配置
// @Summary 获取当前激活的存储配置
// @Tags 存储配置
// @Produce json
// @Param X-Access-Key header string true "租户访问密钥"
// @Success 200 {object} response.Response "激活中的配置"
// @Failure 404 {object} response.Response "没有激活的配置"
// @Router /api/v1/storage/profiles/active [get]
func (h *StorageHandler) GetActiveProfile(c *gin.Context) {
	profile, err := h.profileService.GetActiveProfile()
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, profile)
}

// toggleProfileRequest 启用/禁用存储配置请求体
type toggleProfileRequest struct {
	Enabled bool `json:"enabled"` // true启用，false禁用
}

// ToggleProfile 启用或禁用存储配置
// @Summary 启用或禁用存储配置
// @Description 禁用的配置不可激活，激活中的配置不可禁用
// @Tags 存储配置
// @Accept json
// @Produce json
// @Param X-Access-Key header string true "租户访问密钥"
// @Param id path int true "配置ID"
// @Param request body toggleProfileRequest true "目标状态"
// @Success 200 {object} response.Response "操作成功"
// @Failure 400 {object} response.Response "配置正在使用"
// @Failure 404 {object} response.Response "配置不存在"
// @Router /api/v1/storage/profiles/{id}/toggle [put]
func (h *StorageHandler) ToggleProfile(c *gin.Context) {
	id, ok := parseProfileID(c)
	if !ok {
		return
	}

	var req toggleProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求体格式错误")
		return
	}

	if err := h.profileService.ToggleProfile(id, req.Enabled); err != nil {
		response.FromError(c, err)
		return
	}

	response.SuccessWithMessage(c, "存储配置状态已更新", nil)
}

// TestProfile 测试存储配置连通性
// @Summary 测试存储配置连通性
// @Description 使用配置的凭证访问存储桶，验证配置可用
// @Tags 存储配置
// @Produce json
// @Param X-Access-Key header string true "租户访问密钥"
// @Param id path int true "配置ID"
// @Success 200 {object} response.Response "连接正常"
// @Failure 400 {object} response.Response "连接失败"
// @Failure 404 {object} response.Response "配置不存在"
// @Router /api/v1/storage/profiles/{id}/test [post]
func (h *StorageHandler) TestProfile(c *gin.Context) {
	id, ok := parseProfileID(c)
	if !ok {
		return
	}

	if err := h.profileService.TestProfile(c.Request.Context(), id); err != nil {
		response.FromError(c, err)
		return
	}

	response.SuccessWithMessage(c, "存储连接正常", nil)
}
