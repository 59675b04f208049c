package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/Kohryu26/SoleCast/internal/config"
	"github.com/Kohryu26/SoleCast/internal/handler"
	"github.com/Kohryu26/SoleCast/internal/middleware"
	"github.com/Kohryu26/SoleCast/internal/model/entity"
	"github.com/Kohryu26/SoleCast/internal/repository"
	"github.com/Kohryu26/SoleCast/internal/service"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	// 本地开发可选的 .env
	_ = godotenv.Load()

	// 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 初始化日志
	zapLogger, err := initLogger(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer zapLogger.Sync()

	zapLogger.Info("Starting solecast service",
		zap.String("version", Version),
		zap.String("build_time", BuildTime),
	)

	// 初始化数据库
	db, err := initDatabase(cfg.Database)
	if err != nil {
		zapLogger.Fatal("Failed to connect to database", zap.Error(err))
	}

	if err := entity.AutoMigrate(db); err != nil {
		zapLogger.Fatal("Failed to migrate database", zap.Error(err))
	}

	// 初始化依赖
	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, db, cfg, zapLogger)
	handlers := handler.NewHandlers(services)

	// 默认账号
	if err := services.Auth.SeedDefaultUsers(); err != nil {
		zapLogger.Fatal("Failed to seed default users", zap.Error(err))
	}

	// 设置Gin模式
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 创建路由
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(zapLogger))
	router.Use(middleware.CORS())
	router.Use(middleware.RequestID())
	router.Use(gzip.Gzip(gzip.DefaultCompression))

	// 注册路由
	registerRoutes(router, handlers, cfg)

	// 创建HTTP服务器
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// 启动服务器
	go func() {
		zapLogger.Info("Server starting", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Error("Server forced to shutdown", zap.Error(err))
	}

	zapLogger.Info("Server exited")
}

func initLogger(cfg config.LogConfig) (*zap.Logger, error) {
	var zapCfg zap.Config

	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}

	switch cfg.Level {
	case "debug":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "info":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	case "warn":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	}

	return zapCfg.Build()
}

func initDatabase(cfg config.DatabaseConfig) (*gorm.DB, error) {
	// _fk=1 开启SQLite外键约束
	dsn := fmt.Sprintf("%s?_fk=1", cfg.Path)

	gormConfig := &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	}

	db, err := gorm.Open(sqlite.Open(dsn), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	// SQLite单写者，限制连接数避免锁冲突
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	return db, nil
}

func registerRoutes(r *gin.Engine, h *handler.Handlers, cfg *config.Config) {
	// 健康检查
	r.GET("/health/live", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/health/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// 版本信息
	r.GET("/version", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"version":    Version,
			"build_time": BuildTime,
		})
	})

	// API v1
	v1 := r.Group("/api/v1")
	{
		// 认证 (无需登录)
		v1.POST("/auth/login", h.Auth.Login)

		// 需要认证的接口
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(cfg.JWT.Secret))
		{
			// 账号管理 (管理员)
			users := authorized.Group("/users", middleware.RequireRole(entity.RoleAdmin))
			{
				users.GET("", h.Auth.ListUsers)
				users.POST("", h.Auth.Register)
				users.PUT("/:id/role", h.Auth.UpdateRole)
				users.DELETE("/:id", h.Auth.DeleteUser)
				users.POST("/password", h.Auth.ChangePassword)
			}

			// 物料管理
			materials := authorized.Group("/materials")
			{
				materials.GET("", h.Material.List)
				materials.POST("", middleware.RequireRole(entity.RoleAdmin), h.Material.Create)
				materials.PUT("/:id", middleware.RequireRole(entity.RoleAdmin), h.Material.Update)
				materials.DELETE("/:id", middleware.RequireRole(entity.RoleAdmin), h.Material.Delete)
			}

			// 配方管理
			bom := authorized.Group("/bom")
			{
				bom.GET("", h.BOM.List)
				bom.POST("", middleware.RequireRole(entity.RoleAdmin), h.BOM.Upsert)
				bom.DELETE("/:id", middleware.RequireRole(entity.RoleAdmin), h.BOM.Delete)
			}

			// 算料
			authorized.GET("/costing", h.Costing.Calculate)

			// 物料申请单
			requests := authorized.Group("/requests")
			{
				requests.GET("", h.Request.List)
				requests.POST("", h.Request.Submit)
				requests.GET("/:id", h.Request.Get)
				requests.GET("/:id/items", h.Request.GetLineItems)
				requests.PUT("/:id/status", middleware.RequireRole(entity.RoleAdmin), h.Request.SetStatus)
				requests.POST("/:id/receive", middleware.RequireRole(entity.RoleAdmin), h.Request.Receive)
				requests.DELETE("/:id", middleware.RequireRole(entity.RoleAdmin), h.Request.Delete)
			}

			// 本地完成单
			orders := authorized.Group("/completed-orders")
			{
				orders.GET("", h.Request.ListCompletedOrders)
				orders.POST("", h.Request.CompleteLocal)
			}

			// 销售与目标
			sales := authorized.Group("/sales")
			{
				sales.GET("", h.Sales.List)
				sales.POST("", h.Sales.Append)
				sales.GET("/products", h.Sales.Products)
			}
			targets := authorized.Group("/targets")
			{
				targets.GET("", h.Sales.ListTargets)
				targets.POST("", middleware.RequireRole(entity.RoleAdmin), h.Sales.SaveTarget)
			}

			// 报表
			reports := authorized.Group("/reports")
			{
				reports.GET("/consumption", h.Report.Consumption)
				reports.GET("/consumption/export", h.Report.ExportConsumption)
			}

			// 预测
			authorized.POST("/forecast", h.Forecast.Generate)
			authorized.GET("/predictions", h.Forecast.List)

			// CSV导入 (管理员)
			imports := authorized.Group("/import", middleware.RequireRole(entity.RoleAdmin))
			{
				imports.POST("/materials", h.Import.Materials)
				imports.POST("/targets", h.Import.Targets)
				imports.POST("/sales-history", h.Import.HistoricalSales)
			}
		}
	}
}
