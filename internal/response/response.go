// Package response 提供API统一响应格式
// 所有处理器通过本包输出响应，错误码到HTTP状态的映射集中在这里
package response

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/weiwangfds/filegate/internal/errors"
)

// Response 统一返回值结构体
// @Description API统一响应格式
type Response struct {
	// 状态码，0表示成功，非0表示失败
	Code int `json:"code" example:"0"`
	// 响应消息
	Message string `json:"message" example:"success"`
	// 响应数据
	Data interface{} `json:"data,omitempty"`
	// 请求ID，用于链路追踪
	RequestID string `json:"request_id,omitempty" example:"req_123456789"`
	// 时间戳
	Timestamp int64 `json:"timestamp" example:"1640995200"`
}

// PageData 分页数据结构体
// @Description 分页响应数据格式
type PageData struct {
	// 数据列表
	List interface{} `json:"list"`
	// 总数
	Total int64 `json:"total" example:"100"`
	// 当前页码
	Page int `json:"page" example:"1"`
	// 每页大小
	PageSize int `json:"page_size" example:"50"`
	// 总页数
	TotalPages int `json:"total_pages" example:"2"`
}

// NewPageData 构建分页数据
func NewPageData(list interface{}, total int64, page, pageSize int) PageData {
	totalPages := int(total) / pageSize
	if int(total)%pageSize > 0 {
		totalPages++
	}
	return PageData{
		List:       list,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}

// Success 成功响应
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:      0,
		Message:   "success",
		Data:      data,
		RequestID: getRequestID(c),
		Timestamp: time.Now().Unix(),
	})
}

// SuccessWithMessage 带消息的成功响应
func SuccessWithMessage(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:      0,
		Message:   message,
		Data:      data,
		RequestID: getRequestID(c),
		Timestamp: time.Now().Unix(),
	})
}

// Created 资源创建成功响应
func Created(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Code:      0,
		Message:   message,
		Data:      data,
		RequestID: getRequestID(c),
		Timestamp: time.Now().Unix(),
	})
}

// SuccessWithPage 分页成功响应
func SuccessWithPage(c *gin.Context, list interface{}, total int64, page, pageSize int) {
	Success(c, NewPageData(list, total, page, pageSize))
}

// Error 错误响应
// 按给定HTTP状态返回错误码和消息
func Error(c *gin.Context, httpStatus int, code errors.ErrorCode, message string) {
	c.JSON(httpStatus, Response{
		Code:      int(code),
		Message:   message,
		RequestID: getRequestID(c),
		Timestamp: time.Now().Unix(),
	})
}

// ErrorWithData 带数据的错误响应
func ErrorWithData(c *gin.Context, httpStatus int, code errors.ErrorCode, message string, data interface{}) {
	c.JSON(httpStatus, Response{
		Code:      int(code),
		Message:   message,
		Data:      data,
		RequestID: getRequestID(c),
		Timestamp: time.Now().Unix(),
	})
}

// BadRequest 400错误响应
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, errors.ErrInvalidParams, message)
}

// Unauthorized 401错误响应
func Unauthorized(c *gin.Context, message string) {
	Error(c, http.StatusUnauthorized, errors.ErrUnauthorized, message)
}

// Forbidden 403错误响应
func Forbidden(c *gin.Context, message string) {
	Error(c, http.StatusForbidden, errors.ErrForbidden, message)
}

// NotFound 404错误响应
func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, errors.ErrNotFound, message)
}

// InternalServerError 500错误响应
func InternalServerError(c *gin.Context, message string) {
	Error(c, http.StatusInternalServerError, errors.ErrInternalServer, message)
}

// FromError 根据错误输出响应
// 应用错误按其错误码映射HTTP状态，未知错误统一返回500
func FromError(c *gin.Context, err error) {
	appErr, ok := errors.GetAppError(err)
	if !ok {
		InternalServerError(c, errors.GetErrorMessage(errors.ErrInternalServer))
		return
	}

	// 需要密码的分享访问失败额外携带标记，客户端据此提示输入密码
	if appErr.Code == errors.ErrSharePasswordRequired {
		ErrorWithData(c, http.StatusUnauthorized, appErr.Code, appErr.Message, gin.H{
			"password_required": true,
		})
		return
	}

	Error(c, httpStatusOf(appErr.Code), appErr.Code, appErr.Message)
}

// httpStatusOf 错误码到HTTP状态的映射
func httpStatusOf(code errors.ErrorCode) int {
	switch code {
	case errors.ErrInvalidParams, errors.ErrInvalidPath, errors.ErrInvalidMetadata,
		errors.ErrFileSizeTooLarge, errors.ErrShareTokenInvalid,
		errors.ErrShareTTLInvalid, errors.ErrSharePasswordTooShort,
		errors.ErrStorageProfileInvalid:
		return http.StatusBadRequest
	case errors.ErrUnauthorized, errors.ErrSharePasswordRequired, errors.ErrSharePasswordInvalid:
		return http.StatusUnauthorized
	case errors.ErrForbidden, errors.ErrShareRevoked:
		return http.StatusForbidden
	case errors.ErrNotFound, errors.ErrFileNotFound, errors.ErrShareNotFound,
		errors.ErrRecordNotFound, errors.ErrStorageProfileNotFound:
		return http.StatusNotFound
	case errors.ErrShareExpired:
		return http.StatusGone
	case errors.ErrTooManyRequests:
		return http.StatusTooManyRequests
	case errors.ErrServiceUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// getRequestID 获取请求ID
// 从gin上下文中获取请求ID，用于链路追踪
func getRequestID(c *gin.Context) string {
	if requestID, exists := c.Get("request_id"); exists {
		if id, ok := requestID.(string); ok {
			return id
		}
	}
	return ""
}
