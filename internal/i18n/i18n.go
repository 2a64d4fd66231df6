// Package i18n 提供国际化支持
// 负责管理应用程序的语言包和翻译功能
package i18n

import (
	"sync"

	"github.com/go-playground/locales/en_US"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	"github.com/weiwangfds/filegate/internal/logger"
)

// 支持的语言
const (
	LangZhCN = "zh-CN"
	LangEnUS = "en-US"
)

var (
	instance *I18n
	once     sync.Once

	// 语言包存储
	translations = map[string]map[string]string{
		LangZhCN: {
			"success":               "成功",
			"internal_server_error": "服务器内部错误",
			"invalid_params":        "参数错误",
			"unauthorized":          "未授权",
			"forbidden":             "禁止访问",
			"not_found":             "资源未找到",
			"method_not_allowed":    "方法不允许",
			"too_many_requests":     "请求过于频繁",
			"service_unavailable":   "服务不可用",

			"file_not_found":      "文件未找到",
			"file_upload_failed":  "文件上传失败",
			"file_update_failed":  "文件更新失败",
			"file_delete_failed":  "文件删除失败",
			"file_size_too_large": "文件大小超限",
			"invalid_path":        "虚拟路径不合法",
			"invalid_metadata":    "文件元数据不合法",

			"storage_profile_not_found":      "存储配置未找到",
			"storage_profile_invalid":        "存储配置无效",
			"storage_connection_failed":      "对象存储连接失败",
			"storage_upload_failed":          "对象存储上传失败",
			"storage_download_failed":        "对象存储下载失败",
			"storage_delete_failed":          "对象存储删除失败",
			"storage_presign_failed":         "下载链接签发失败",
			"storage_provider_not_supported": "存储提供商不支持",

			"database_query":       "数据库查询错误",
			"database_insert":      "数据库插入错误",
			"database_update":      "数据库更新错误",
			"database_delete":      "数据库删除错误",
			"database_transaction": "数据库事务错误",
			"record_not_found":     "记录未找到",

			"share_not_found":          "分享链接不存在",
			"share_token_invalid":      "分享令牌格式不合法",
			"share_revoked":            "分享链接已被撤销",
			"share_expired":            "分享链接已过期",
			"share_password_required":  "分享链接需要访问密码",
			"share_password_invalid":   "分享密码错误",
			"share_create_failed":      "分享链接创建失败",
			"share_ttl_invalid":        "分享有效期不合法",
			"share_password_too_short": "分享密码长度不足",

			"unknown_error": "未知错误",
		},
		LangEnUS: {
			"success":               "Success",
			"internal_server_error": "Internal Server Error",
			"invalid_params":        "Invalid Parameters",
			"unauthorized":          "Unauthorized",
			"forbidden":             "Forbidden",
			"not_found":             "Not Found",
			"method_not_allowed":    "Method Not Allowed",
			"too_many_requests":     "Too Many Requests",
			"service_unavailable":   "Service Unavailable",

			"file_not_found":      "File Not Found",
			"file_upload_failed":  "File Upload Failed",
			"file_update_failed":  "File Update Failed",
			"file_delete_failed":  "File Delete Failed",
			"file_size_too_large": "File Size Too Large",
			"invalid_path":        "Invalid Virtual Path",
			"invalid_metadata":    "Invalid File Metadata",

			"storage_profile_not_found":      "Storage Profile Not Found",
			"storage_profile_invalid":        "Storage Profile Invalid",
			"storage_connection_failed":      "Object Storage Connection Failed",
			"storage_upload_failed":          "Object Storage Upload Failed",
			"storage_download_failed":        "Object Storage Download Failed",
			"storage_delete_failed":          "Object Storage Delete Failed",
			"storage_presign_failed":         "Failed To Sign Download URL",
			"storage_provider_not_supported": "Storage Provider Not Supported",

			"database_query":       "Database Query Error",
			"database_insert":      "Database Insert Error",
			"database_update":      "Database Update Error",
			"database_delete":      "Database Delete Error",
			"database_transaction": "Database Transaction Error",
			"record_not_found":     "Record Not Found",

			"share_not_found":          "Share Link Not Found",
			"share_token_invalid":      "Malformed Share Token",
			"share_revoked":            "Share Link Revoked",
			"share_expired":            "Share Link Expired",
			"share_password_required":  "Share Password Required",
			"share_password_invalid":   "Invalid Share Password",
			"share_create_failed":      "Share Link Creation Failed",
			"share_ttl_invalid":        "Invalid Share TTL",
			"share_password_too_short": "Share Password Too Short",

			"unknown_error": "Unknown Error",
		},
	}
)

// I18n 国际化管理器
type I18n struct {
	translators map[string]ut.Translator
	defaultLang string
}

// GetInstance 获取I18n单例
func GetInstance() *I18n {
	once.Do(func() {
		instance = &I18n{
			translators: make(map[string]ut.Translator),
			defaultLang: LangZhCN,
		}
		instance.initTranslators()
	})
	return instance
}

// initTranslators 初始化翻译器
func (i *I18n) initTranslators() {
	zhCN := zh.New()
	enUS := en_US.New()
	uni := ut.New(zhCN, enUS, zhCN)

	// 注册支持的语言 - 使用locale库的标识符
	langMappings := map[string]string{
		LangZhCN: "zh",
		LangEnUS: "en_US",
	}

	for ourLang, localeLang := range langMappings {
		trans, found := uni.GetTranslator(localeLang)
		if !found {
			logger.Errorf("初始化翻译器失败 for language %s (locale: %s): translator not found", ourLang, localeLang)
			continue
		}
		i.translators[ourLang] = trans
	}
}

// Translate 根据键和语言获取翻译
func (i *I18n) Translate(key, lang string) string {
	if translation, found := translations[lang][key]; found {
		return translation
	}

	// 如果当前语言没有找到，尝试在默认语言中查找
	if lang != i.defaultLang {
		if translation, found := translations[i.defaultLang][key]; found {
			return translation
		}
	}

	logger.Warnf("未找到翻译: %s, 语言: %s", key, lang)
	return key
}

// SetDefaultLanguage 设置默认语言
func (i *I18n) SetDefaultLanguage(lang string) {
	i.defaultLang = lang
}

// GetDefaultLanguage 获取默认语言
func (i *I18n) GetDefaultLanguage() string {
	return i.defaultLang
}

// IsSupportedLanguage 检查语言是否支持
func (i *I18n) IsSupportedLanguage(lang string) bool {
	_, exists := i.translators[lang]
	return exists
}
