package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/weiwangfds/filegate/config"
	_ "github.com/weiwangfds/filegate/docs" // swagger docs
	"github.com/weiwangfds/filegate/internal/handler"
	"github.com/weiwangfds/filegate/internal/middleware"
	fileservice "github.com/weiwangfds/filegate/internal/service/file"
	shareservice "github.com/weiwangfds/filegate/internal/service/share"
	"github.com/weiwangfds/filegate/internal/service/storage"
	tenantservice "github.com/weiwangfds/filegate/internal/service/tenant"
	"gorm.io/gorm"
)

// Router 路由配置
type Router struct {
	engine *gin.Engine
	db     *gorm.DB
}

// NewRouter 创建路由实例
// 组装服务、处理器和中间件，划分公开路由和需认证的API路由
func NewRouter(loggerMiddleware *middleware.LoggerMiddleware, db *gorm.DB, cfg *config.Config) *Router {
	// 设置Gin模式
	gin.SetMode(gin.ReleaseMode)

	engine := gin.New()

	// 初始化服务
	profileService := storage.NewProfileService(db)
	store := storage.NewManager(profileService, time.Duration(cfg.Storage.RequestTimeout)*time.Second)
	tenantService := tenantservice.NewTenantService(db)
	fileService := fileservice.NewFileService(db, store)
	shareService := shareservice.NewShareService(db, store, fileService, cfg.Share)

	// 初始化处理器
	fileHandler := handler.NewFileHandler(fileService, shareService)
	shareHandler := handler.NewShareHandler(shareService)
	publicHandler := handler.NewPublicHandler(shareService)
	storageHandler := handler.NewStorageHandler(profileService)

	// 使用中间件
	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestID())
	engine.Use(loggerMiddleware.RequestLogger())

	// 配置CORS
	engine.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"*"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// Swagger文档路由
	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 健康检查
	engine.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Service is running",
		})
	})

	// 公开分享访问入口，无需租户凭证
	engine.GET("/s/:token", publicHandler.AccessShare)

	// API路由组，全部需要租户凭证
	api := engine.Group("/api/v1")
	api.Use(middleware.TenantAuth(tenantService))
	{
		// 基础信息接口
		api.GET("/info", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"service": "FileGate",
				"version": "1.0.0",
				"status":  "running",
			})
		})

		// 数据库状态检查
		api.GET("/db/status", func(c *gin.Context) {
			sqlDB, err := db.DB()
			if err != nil {
				c.JSON(500, gin.H{
					"error": "Database connection error",
				})
				return
			}

			if err := sqlDB.Ping(); err != nil {
				c.JSON(500, gin.H{
					"error": "Database ping failed",
				})
				return
			}

			c.JSON(200, gin.H{
				"status": "Database connection OK",
			})
		})

		// 文件管理接口
		files := api.Group("/files")
		{
			files.POST("/upload", fileHandler.UploadFile)
			files.GET("", fileHandler.ListFiles)
			files.GET("/:id", fileHandler.GetFile)
			files.GET("/:id/download", fileHandler.DownloadFile)
			files.PUT("/:id", fileHandler.UpdateFile)
			files.DELETE("/:id", fileHandler.DeleteFile)

			// 文件的分享链接管理
			files.POST("/:id/shares", shareHandler.CreateShare)
			files.GET("/:id/shares", shareHandler.ListShares)
		}

		// 分享链接撤销
		api.DELETE("/shares/:token", shareHandler.RevokeShare)

		// 存储配置管理接口
		profiles := api.Group("/storage/profiles")
		{
			profiles.POST("", storageHandler.CreateProfile)
			profiles.GET("", storageHandler.ListProfiles)
			profiles.GET("/active", storageHandler.GetActiveProfile)
			profiles.GET("/:id", storageHandler.GetProfile)
			profiles.PUT("/:id", storageHandler.UpdateProfile)
			profiles.DELETE("/:id", storageHandler.DeleteProfile)
			profiles.POST("/:id/activate", storageHandler.ActivateProfile)
			profiles.POST("/:id/test", storageHandler.TestProfile)
			profiles.PUT("/:id/toggle", storageHandler.ToggleProfile)
		}
	}

	return &Router{
		engine: engine,
		db:     db,
	}
}

// GetEngine 获取Gin引擎
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}

// GetDB 获取数据库连接
func (r *Router) GetDB() *gorm.DB {
	return r.db
}
