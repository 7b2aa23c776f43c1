package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/RT-Jeion/AI-Powered-Class-routine-management/api/swagger"
	"github.com/RT-Jeion/AI-Powered-Class-routine-management/internal/handler"
	"github.com/RT-Jeion/AI-Powered-Class-routine-management/internal/middleware"
	"github.com/RT-Jeion/AI-Powered-Class-routine-management/internal/repository"
	"github.com/RT-Jeion/AI-Powered-Class-routine-management/internal/service"
	"github.com/RT-Jeion/AI-Powered-Class-routine-management/pkg/cache"
	"github.com/RT-Jeion/AI-Powered-Class-routine-management/pkg/config"
	"github.com/RT-Jeion/AI-Powered-Class-routine-management/pkg/database"
	"github.com/RT-Jeion/AI-Powered-Class-routine-management/pkg/logger"
	corsmiddleware "github.com/RT-Jeion/AI-Powered-Class-routine-management/pkg/middleware/cors"
	reqidmiddleware "github.com/RT-Jeion/AI-Powered-Class-routine-management/pkg/middleware/requestid"
)

// @title Class Routine Management API
// @version 1.0.0
// @description Slot allocation, validation and export for weekly class routines
// @BasePath /api/v1
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	var viewCache service.RoutineViewCache
	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Warn("redis unavailable, routine views will not be cached", zap.Error(err))
	} else {
		defer redisClient.Close()
		viewCache = repository.NewCacheRepository(redisClient, cfg.Routine.ViewCacheTTL)
	}

	catalogRepo := repository.NewCatalogRepository(db)
	routineRepo := repository.NewRoutineRepository(db)

	metricsSvc := service.NewMetricsService()
	authSvc := service.NewAuthService(cfg.Auth, logr)
	routineSvc := service.NewRoutineService(catalogRepo, routineRepo, viewCache, nil, logr, cfg.Routine.PersistOnChange)
	intentSvc := service.NewIntentService(logr)
	exportSvc := service.NewExportService()

	routineHandler := handler.NewRoutineHandler(routineSvc, exportSvc, metricsSvc)
	catalogHandler := handler.NewCatalogHandler(routineSvc)
	commandHandler := handler.NewCommandHandler(intentSvc, routineSvc)
	authHandler := handler.NewAuthHandler(authSvc)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/ready", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "database unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.POST("/auth/login", authHandler.Login)
	api.GET("/catalog", catalogHandler.Get)
	api.GET("/catalog/sections", catalogHandler.Sections)
	api.GET("/routine", routineHandler.Show)
	api.GET("/routine/validate", routineHandler.Validate)
	api.GET("/routine/export/csv", routineHandler.ExportCSV)
	api.GET("/routine/export/pdf", routineHandler.ExportPDF)
	api.GET("/routine/export/markdown", routineHandler.ExportMarkdown)

	protected := api.Group("")
	protected.Use(middleware.JWT(authSvc))
	protected.POST("/routine/generate", routineHandler.Generate)
	protected.POST("/routine/reschedule", routineHandler.Reschedule)
	protected.PUT("/routine/slots", routineHandler.UpsertSlot)
	protected.POST("/routine/slots/move", routineHandler.MoveSlot)
	protected.POST("/routine/slots/swap", routineHandler.SwapSlots)
	protected.POST("/routine/slots/remove", routineHandler.RemoveSlot)
	protected.POST("/routine/save", routineHandler.Save)
	protected.POST("/routine/load", routineHandler.Load)
	protected.DELETE("/routine", routineHandler.Reset)
	protected.POST("/commands", commandHandler.Execute)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
