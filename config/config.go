// Package config 提供应用程序配置的加载和管理
// 基于viper实现，支持配置文件和环境变量两种来源
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config 应用程序总配置
// 聚合服务器、数据库、对象存储、分享和日志等各模块配置
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`   // HTTP服务器配置
	Database DatabaseConfig `mapstructure:"database"` // 数据库配置
	Storage  StorageConfig  `mapstructure:"storage"`  // 对象存储配置
	Share    ShareConfig    `mapstructure:"share"`    // 分享链接配置
	Log      LogConfig      `mapstructure:"log"`      // 日志配置
}

// ServerConfig HTTP服务器配置
type ServerConfig struct {
	HTTPSPort    int    `mapstructure:"https_port"`    // HTTPS监听端口
	ReadTimeout  int    `mapstructure:"read_timeout"`  // 读取超时时间（秒）
	WriteTimeout int    `mapstructure:"write_timeout"` // 写入超时时间（秒）
	EnableHTTPS  bool   `mapstructure:"enable_https"`  // 是否启用HTTPS
	EnableHTTP2  bool   `mapstructure:"enable_http2"`  // 是否启用HTTP/2
	TLSCertFile  string `mapstructure:"tls_cert_file"` // TLS证书文件路径
	TLSKeyFile   string `mapstructure:"tls_key_file"`  // TLS私钥文件路径
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Driver          string `mapstructure:"driver"`            // 数据库驱动，目前支持sqlite
	DSN             string `mapstructure:"dsn"`               // 数据库连接字符串
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`    // 最大空闲连接数
	MaxOpenConns    int    `mapstructure:"max_open_conns"`    // 最大打开连接数
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"` // 连接最大生命周期（秒）
}

// StorageConfig 对象存储配置
type StorageConfig struct {
	RequestTimeout int `mapstructure:"request_timeout"` // 对象存储请求超时时间（秒）
}

// ShareConfig 分享链接配置
type ShareConfig struct {
	DefaultTTLSeconds int64  `mapstructure:"default_ttl_seconds"` // 默认有效期（秒），默认7天
	MaxTTLSeconds     int64  `mapstructure:"max_ttl_seconds"`     // 最大有效期（秒）
	PresignTTLSeconds int64  `mapstructure:"presign_ttl_seconds"` // 下载链接有效期（秒）
	PublicBaseURL     string `mapstructure:"public_base_url"`     // 分享链接的公开访问地址前缀
	BcryptCost        int    `mapstructure:"bcrypt_cost"`         // 密码哈希的bcrypt工作因子
	MinPasswordLength int    `mapstructure:"min_password_length"` // 分享密码最小长度
}

// LogConfig 日志配置
type LogConfig struct {
	Level    string `mapstructure:"level"`     // 日志级别 (debug, info, warn, error)
	Format   string `mapstructure:"format"`    // 日志格式 (json, text)
	Output   string `mapstructure:"output"`    // 输出方式 (console, file, both)
	FilePath string `mapstructure:"file_path"` // 日志文件路径
}

// Load 加载应用程序配置
// 依次读取配置文件和FILEGATE_前缀的环境变量，环境变量优先
// 返回:
//   - *Config: 配置实例
//   - error: 加载失败时的错误信息
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetEnvPrefix("FILEGATE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// 配置文件缺失时使用默认值和环境变量
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// setDefaults 设置各配置项的默认值
func setDefaults(v *viper.Viper) {
	// 服务器默认配置
	v.SetDefault("server.https_port", 8443)
	v.SetDefault("server.read_timeout", 30)
	v.SetDefault("server.write_timeout", 30)
	v.SetDefault("server.enable_https", true)
	v.SetDefault("server.enable_http2", true)
	v.SetDefault("server.tls_cert_file", "certs/server.crt")
	v.SetDefault("server.tls_key_file", "certs/server.key")

	// 数据库默认配置
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "data/filegate.db")
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.max_open_conns", 100)
	v.SetDefault("database.conn_max_lifetime", 3600)

	// 对象存储默认配置
	v.SetDefault("storage.request_timeout", 30)

	// 分享链接默认配置
	v.SetDefault("share.default_ttl_seconds", 7*24*3600)
	v.SetDefault("share.max_ttl_seconds", 30*24*3600)
	v.SetDefault("share.presign_ttl_seconds", 600)
	v.SetDefault("share.public_base_url", "https://localhost:8443")
	v.SetDefault("share.bcrypt_cost", 10)
	v.SetDefault("share.min_password_length", 4)

	// 日志默认配置
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.output", "both")
	v.SetDefault("log.file_path", "logs/filegate.log")
}

// validate 校验配置的基本合法性
func validate(cfg *Config) error {
	if cfg.Share.DefaultTTLSeconds <= 0 {
		return fmt.Errorf("share.default_ttl_seconds must be positive, got %d", cfg.Share.DefaultTTLSeconds)
	}
	if cfg.Share.MaxTTLSeconds < cfg.Share.DefaultTTLSeconds {
		return fmt.Errorf("share.max_ttl_seconds must not be smaller than default ttl")
	}
	if cfg.Share.BcryptCost < 4 || cfg.Share.BcryptCost > 31 {
		return fmt.Errorf("share.bcrypt_cost must be between 4 and 31, got %d", cfg.Share.BcryptCost)
	}
	if cfg.Storage.RequestTimeout <= 0 {
		return fmt.Errorf("storage.request_timeout must be positive, got %d", cfg.Storage.RequestTimeout)
	}
	return nil
}
