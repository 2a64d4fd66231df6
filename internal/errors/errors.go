// Package errors 定义应用程序统一的错误码和错误类型
// 每一种对外可见的失败原因对应唯一的错误码，处理器据此映射HTTP状态
package errors

import (
	"fmt"

	"github.com/weiwangfds/filegate/internal/i18n"
)

// ErrorCode 错误码类型
type ErrorCode int

// 定义错误码常量
const (
	// 通用错误码 (1000-1999)
	ErrSuccess            ErrorCode = 0    // 成功
	ErrInternalServer     ErrorCode = 1000 // 服务器内部错误
	ErrInvalidParams      ErrorCode = 1001 // 参数错误
	ErrUnauthorized       ErrorCode = 1002 // 未授权（凭证缺失、未知或已禁用）
	ErrForbidden          ErrorCode = 1003 // 禁止访问（资源不属于当前租户）
	ErrNotFound           ErrorCode = 1004 // 资源未找到
	ErrMethodNotAllowed   ErrorCode = 1005 // 方法不允许
	ErrTooManyRequests    ErrorCode = 1006 // 请求过于频繁
	ErrServiceUnavailable ErrorCode = 1007 // 服务不可用

	// 文件相关错误码 (2000-2999)
	ErrFileNotFound     ErrorCode = 2000 // 文件未找到
	ErrFileUploadFailed ErrorCode = 2001 // 文件上传失败
	ErrFileUpdateFailed ErrorCode = 2002 // 文件更新失败
	ErrFileDeleteFailed ErrorCode = 2003 // 文件删除失败
	ErrFileSizeTooLarge ErrorCode = 2004 // 文件大小超限
	ErrInvalidPath      ErrorCode = 2005 // 虚拟路径不合法
	ErrInvalidMetadata  ErrorCode = 2006 // 文件元数据不合法

	// 对象存储相关错误码 (3000-3999)
	ErrStorageProfileNotFound      ErrorCode = 3000 // 存储配置未找到
	ErrStorageProfileInvalid       ErrorCode = 3001 // 存储配置无效
	ErrStorageConnectionFailed     ErrorCode = 3002 // 对象存储连接失败
	ErrStorageUploadFailed         ErrorCode = 3003 // 对象存储上传失败
	ErrStorageDownloadFailed       ErrorCode = 3004 // 对象存储下载失败
	ErrStorageDeleteFailed         ErrorCode = 3005 // 对象存储删除失败
	ErrStoragePresignFailed        ErrorCode = 3006 // 下载链接签发失败
	ErrStorageProviderNotSupported ErrorCode = 3007 // 存储提供商不支持

	// 数据库相关错误码 (4000-4999)
	ErrDatabaseQuery       ErrorCode = 4000 // 数据库查询错误
	ErrDatabaseInsert      ErrorCode = 4001 // 数据库插入错误
	ErrDatabaseUpdate      ErrorCode = 4002 // 数据库更新错误
	ErrDatabaseDelete      ErrorCode = 4003 // 数据库删除错误
	ErrDatabaseTransaction ErrorCode = 4004 // 数据库事务错误
	ErrRecordNotFound      ErrorCode = 4005 // 记录未找到

	// 分享链接相关错误码 (5000-5999)
	ErrShareNotFound         ErrorCode = 5000 // 分享链接不存在
	ErrShareTokenInvalid     ErrorCode = 5001 // 分享令牌格式不合法
	ErrShareRevoked          ErrorCode = 5002 // 分享链接已被撤销
	ErrShareExpired          ErrorCode = 5003 // 分享链接已过期
	ErrSharePasswordRequired ErrorCode = 5004 // 分享链接需要访问密码
	ErrSharePasswordInvalid  ErrorCode = 5005 // 分享密码错误
	ErrShareCreateFailed     ErrorCode = 5006 // 分享链接创建失败
	ErrShareTTLInvalid       ErrorCode = 5007 // 分享有效期不合法
	ErrSharePasswordTooShort ErrorCode = 5008 // 分享密码长度不足
)

// AppError 应用错误结构体
// @Description 应用程序统一错误格式
type AppError struct {
	// 错误码
	Code ErrorCode `json:"code"`
	// 错误消息
	Message string `json:"message"`
	// 详细错误信息
	Details string `json:"details,omitempty"`
	// 原始错误
	OriginalError error `json:"-"`
}

// Error 实现error接口
func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("[%d] %s: %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// WithDetails 添加详细错误信息
func (e *AppError) WithDetails(details string) *AppError {
	clone := *e
	clone.Details = details
	return &clone
}

// WithOriginalError 添加原始错误
func (e *AppError) WithOriginalError(err error) *AppError {
	clone := *e
	clone.OriginalError = err
	if clone.Details == "" && err != nil {
		clone.Details = err.Error()
	}
	return &clone
}

// New 创建新的应用错误
// 错误消息根据错误码从i18n语言包中解析
func New(code ErrorCode) *AppError {
	return &AppError{
		Code:    code,
		Message: GetErrorMessage(code),
	}
}

// NewWithMessage 创建带自定义消息的应用错误
func NewWithMessage(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap 包装原始错误
func Wrap(code ErrorCode, err error) *AppError {
	appErr := &AppError{
		Code:          code,
		Message:       GetErrorMessage(code),
		OriginalError: err,
	}
	if err != nil {
		appErr.Details = err.Error()
	}
	return appErr
}

// IsAppError 判断是否为应用错误
func IsAppError(err error) bool {
	_, ok := err.(*AppError)
	return ok
}

// GetAppError 获取应用错误
// 返回应用错误实例和是否成功提取的标志
func GetAppError(err error) (*AppError, bool) {
	appErr, ok := err.(*AppError)
	return appErr, ok
}

// IsCode 判断错误是否携带指定错误码
func IsCode(err error, code ErrorCode) bool {
	appErr, ok := GetAppError(err)
	return ok && appErr.Code == code
}

// 错误码到i18n键的映射
var errorCodeToKeyMap = map[ErrorCode]string{
	ErrSuccess:            "success",
	ErrInternalServer:     "internal_server_error",
	ErrInvalidParams:      "invalid_params",
	ErrUnauthorized:       "unauthorized",
	ErrForbidden:          "forbidden",
	ErrNotFound:           "not_found",
	ErrMethodNotAllowed:   "method_not_allowed",
	ErrTooManyRequests:    "too_many_requests",
	ErrServiceUnavailable: "service_unavailable",

	ErrFileNotFound:     "file_not_found",
	ErrFileUploadFailed: "file_upload_failed",
	ErrFileUpdateFailed: "file_update_failed",
	ErrFileDeleteFailed: "file_delete_failed",
	ErrFileSizeTooLarge: "file_size_too_large",
	ErrInvalidPath:      "invalid_path",
	ErrInvalidMetadata:  "invalid_metadata",

	ErrStorageProfileNotFound:      "storage_profile_not_found",
	ErrStorageProfileInvalid:       "storage_profile_invalid",
	ErrStorageConnectionFailed:     "storage_connection_failed",
	ErrStorageUploadFailed:         "storage_upload_failed",
	ErrStorageDownloadFailed:       "storage_download_failed",
	ErrStorageDeleteFailed:         "storage_delete_failed",
	ErrStoragePresignFailed:        "storage_presign_failed",
	ErrStorageProviderNotSupported: "storage_provider_not_supported",

	ErrDatabaseQuery:       "database_query",
	ErrDatabaseInsert:      "database_insert",
	ErrDatabaseUpdate:      "database_update",
	ErrDatabaseDelete:      "database_delete",
	ErrDatabaseTransaction: "database_transaction",
	ErrRecordNotFound:      "record_not_found",

	ErrShareNotFound:         "share_not_found",
	ErrShareTokenInvalid:     "share_token_invalid",
	ErrShareRevoked:          "share_revoked",
	ErrShareExpired:          "share_expired",
	ErrSharePasswordRequired: "share_password_required",
	ErrSharePasswordInvalid:  "share_password_invalid",
	ErrShareCreateFailed:     "share_create_failed",
	ErrShareTTLInvalid:       "share_ttl_invalid",
	ErrSharePasswordTooShort: "share_password_too_short",
}

// GetErrorMessage 根据错误码获取错误消息（使用默认语言）
func GetErrorMessage(code ErrorCode) string {
	return GetErrorMessageWithLang(code, i18n.GetInstance().GetDefaultLanguage())
}

// GetErrorMessageWithLang 根据错误码和语言获取错误消息
func GetErrorMessageWithLang(code ErrorCode, lang string) string {
	key, exists := errorCodeToKeyMap[code]
	if !exists {
		key = "unknown_error"
	}
	return i18n.GetInstance().Translate(key, lang)
}
