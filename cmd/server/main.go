package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"dockspace/backend/internal/config"
	"dockspace/backend/internal/dms"
	"dockspace/backend/internal/health"
	"dockspace/backend/internal/logger"
	"dockspace/backend/internal/monitoring"
	"dockspace/backend/internal/service"
	"dockspace/backend/internal/storage"
	"dockspace/backend/internal/storage/memory"
	sqlstore "dockspace/backend/internal/storage/sql"
	httptransport "dockspace/backend/internal/transport/http"
)

// main 启动管理 API 与后台漂移校验任务。
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}

	// 设置 Gin 模式（基于开发环境标志）
	if !cfg.Log.Development {
		gin.SetMode(gin.ReleaseMode)
	}

	// 初始化日志系统
	log, err := logger.NewLogger(logger.Config{
		Level:       cfg.Log.Level,
		Development: cfg.Log.Development,
		LogFile:     cfg.Log.File,
		MaxSize:     100,
		MaxBackups:  3,
		MaxAge:      28,
		Compress:    true,
	})
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("starting dockspace server",
		zap.String("log_level", cfg.Log.Level),
		zap.String("dms_output_dir", cfg.DMS.OutputDir),
	)

	// 初始化存储层：配置了数据库则用 SQL，否则内存（开发环境）
	var store storage.Store
	if cfg.Database.Type != "" && cfg.Database.DSN != "" {
		store, err = sqlstore.NewStore(
			cfg.Database.Type,
			cfg.Database.DSN,
			cfg.Database.MaxOpenConns,
			cfg.Database.MaxIdleConns,
			cfg.Database.ConnMaxLifetime,
		)
		if err != nil {
			panic(fmt.Sprintf("failed to initialize database storage: %v", err))
		}
		log.Info("using database storage", zap.String("type", cfg.Database.Type))
	} else {
		store = memory.NewStore()
		log.Info("using memory storage (development mode)")
	}
	defer store.Close()

	// 初始化监控与健康检查
	metrics := monitoring.NewMetrics()
	healthChecker := health.NewHealthChecker(store, log)

	// 初始化导出引擎与变更钩子
	exporter := dms.NewExporter(store, cfg.DMS.OutputDir, log, metrics)
	hooks := dms.NewHooks(exporter, store, log, metrics)

	// 初始化服务层
	accountService := service.NewAccountService(store, hooks)
	aliasService := service.NewAliasService(store, hooks)
	quotaService := service.NewQuotaService(store, hooks)

	// 启动时做一次全量导出，保证文件与存储状态一致
	if err := exporter.ExportAll(""); err != nil {
		log.Error("initial DMS export failed", zap.Error(err))
	}

	// 创建 HTTP 服务器
	httpAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	router := httptransport.NewRouter(httptransport.RouterDependencies{
		Config:         cfg,
		AccountService: accountService,
		AliasService:   aliasService,
		QuotaService:   quotaService,
		Exporter:       exporter,
		Metrics:        metrics,
		Health:         healthChecker,
		Logger:         log,
	})

	httpServer := &http.Server{
		Addr:              httpAddr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	// 信号处理
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	group, groupCtx := errgroup.WithContext(ctx)

	// HTTP 服务器 goroutine
	group.Go(func() error {
		log.Info("starting HTTP server", zap.String("address", httpAddr))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error", zap.Error(err))
			return err
		}
		return nil
	})

	// 定时漂移校验 goroutine（修复模式）
	if cfg.DMS.VerifyInterval > 0 {
		group.Go(func() error {
			ticker := time.NewTicker(cfg.DMS.VerifyInterval)
			defer ticker.Stop()

			log.Info("starting periodic drift verification", zap.Duration("interval", cfg.DMS.VerifyInterval))

			for {
				select {
				case <-groupCtx.Done():
					log.Info("drift verification task stopped")
					return nil
				case <-ticker.C:
					result, err := exporter.Verify("", true)
					if err != nil {
						log.Error("periodic drift verification failed", zap.Error(err))
					} else if !result.AllClean() {
						log.Warn("periodic verification repaired drifted files",
							zap.Strings("files", result.Drifted))
					}
				}
			}
		})
	}

	// 优雅关闭 goroutine
	group.Go(func() error {
		<-groupCtx.Done()
		log.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil {
		log.Error("server exited with error", zap.Error(err))
	}
	log.Info("server stopped")
}
