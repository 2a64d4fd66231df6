// @title FileGate API
// @version 1.0
// @description 多租户文件存储网关，提供租户隔离的文件管理和可撤销的匿名分享

// @contact.name API Support
// @contact.url http://www.swagger.io/support
// @contact.email support@swagger.io

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8443
// @BasePath /
// @schemes https

// @securityDefinitions.apikey AccessKeyAuth
// @in header
// @name X-Access-Key
package main

import (
	"context"
	"crypto/tls"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/weiwangfds/filegate/config"
	"github.com/weiwangfds/filegate/internal/database"
	"github.com/weiwangfds/filegate/internal/logger"
	"github.com/weiwangfds/filegate/internal/middleware"
	"github.com/weiwangfds/filegate/internal/router"
	"golang.org/x/net/http2"
)

func main() {
	// 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 初始化日志系统
	if err := logger.Init(&logger.Config{
		Level:    cfg.Log.Level,
		Format:   cfg.Log.Format,
		Output:   cfg.Log.Output,
		FilePath: cfg.Log.FilePath,
	}); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	// 初始化数据库
	db, err := database.Init(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// 初始化中间件
	loggerMiddleware := middleware.NewLoggerMiddleware()

	// 初始化路由
	r := router.NewRouter(loggerMiddleware, db, cfg)

	// 创建HTTPS服务器（仅支持HTTPS和HTTP/2）
	if !cfg.Server.EnableHTTPS {
		log.Fatal("HTTPS必须启用，HTTP支持已被移除")
	}

	httpsSrv := &http.Server{
		Addr:         ":" + strconv.Itoa(cfg.Server.HTTPSPort),
		Handler:      r.GetEngine(),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		TLSConfig: &tls.Config{
			NextProtos: []string{"h2", "http/1.1"}, // 支持HTTP/2和HTTP/1.1
		},
	}

	// 如果启用HTTP/2，配置HTTP/2支持
	if cfg.Server.EnableHTTP2 {
		if err := http2.ConfigureServer(httpsSrv, &http2.Server{}); err != nil {
			log.Fatalf("配置HTTP/2失败: %v", err)
		}
	}

	// 启动HTTPS服务器
	go func() {
		logger.Infof("HTTPS服务器启动在端口 %d (HTTP/2: %v)", cfg.Server.HTTPSPort, cfg.Server.EnableHTTP2)
		if err := httpsSrv.ListenAndServeTLS(cfg.Server.TLSCertFile, cfg.Server.TLSKeyFile); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTPS服务器启动失败: %v", err)
		}
	}()

	// 等待中断信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("正在关闭服务器...")

	// 优雅关闭服务器
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpsSrv.Shutdown(ctx); err != nil {
		log.Fatal("HTTPS服务器强制关闭:", err)
	}

	logger.Info("服务器已退出")
}
