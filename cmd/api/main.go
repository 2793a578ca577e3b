package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	_ "github.com/xiebiao/aptcare/docs"
	appapartment "github.com/xiebiao/aptcare/internal/application/apartment"
	appchecklist "github.com/xiebiao/aptcare/internal/application/checklist"
	appinventory "github.com/xiebiao/aptcare/internal/application/inventory"
	appreport "github.com/xiebiao/aptcare/internal/application/report"
	"github.com/xiebiao/aptcare/internal/application/setup"
	appuser "github.com/xiebiao/aptcare/internal/application/user"
	"github.com/xiebiao/aptcare/internal/domain/user"
	"github.com/xiebiao/aptcare/internal/infrastructure/config"
	"github.com/xiebiao/aptcare/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/aptcare/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/aptcare/internal/infrastructure/storage"
	"github.com/xiebiao/aptcare/internal/interface/http/handler"
	"github.com/xiebiao/aptcare/internal/interface/http/middleware"
	"github.com/xiebiao/aptcare/internal/interface/http/router"
	"github.com/xiebiao/aptcare/pkg/jwt"
	"github.com/xiebiao/aptcare/pkg/logger"
	"github.com/xiebiao/aptcare/pkg/tracing"
)

// @title           AptCare API
// @version         1.0
// @description     公寓保洁清单、库存与告警管理接口
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description 格式：Bearer {token}
func main() {
	// 1. 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	// 2. 日志
	zlog, flush, err := logger.Setup(logger.Options{
		Level:        cfg.Log.Level,
		Format:       cfg.Log.Format,
		Output:       cfg.Log.Output,
		EnableCaller: cfg.Log.EnableCaller,
	})
	if err != nil {
		log.Fatalf("初始化日志失败: %v", err)
	}
	defer flush()

	zlog.Info("配置加载成功",
		zap.Int("port", cfg.Server.Port),
		zap.String("mode", cfg.Server.Mode),
		zap.String("db_driver", cfg.Database.Driver),
		zap.String("redis", cfg.Redis.Addr()),
	)

	// 3. 链路追踪（可选）
	if cfg.Tracing.Enabled {
		shutdown, err := tracing.InitTracer(cfg.Tracing.ServiceName, cfg.Tracing.Endpoint)
		if err != nil {
			zlog.Warn("初始化链路追踪失败，继续启动", zap.Error(err))
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					zlog.Warn("关闭链路追踪失败", zap.Error(err))
				}
			}()
		}
	}

	// 4. 数据库与Redis
	db, err := mysql.NewDB(cfg)
	if err != nil {
		zlog.Fatal("初始化数据库失败", zap.Error(err))
	}
	redisClient, err := redis.NewClient(cfg)
	if err != nil {
		zlog.Fatal("初始化Redis失败", zap.Error(err))
	}
	defer redisClient.Close()

	// 5. 依赖组装
	app, err := buildApp(cfg, db, redisClient)
	if err != nil {
		zlog.Fatal("初始化应用失败", zap.Error(err))
	}

	// 6. 初始数据
	if cfg.Database.Seed {
		if err := app.Seed.Execute(context.Background()); err != nil {
			zlog.Fatal("写入初始数据失败", zap.Error(err))
		}
	}

	// 7. 启动服务，收到信号后优雅退出
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      app.Engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		zlog.Info("服务启动", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("启动服务失败", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zlog.Info("正在关闭服务...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zlog.Error("服务关闭超时", zap.Error(err))
	}
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
	zlog.Info("服务已退出")
}

// App 启动所需的组件
type App struct {
	Engine *gin.Engine
	Seed   *setup.SeedUseCase
}

// buildApp 手动依赖注入
// Repository ← Service ← UseCase ← Handler
func buildApp(cfg *config.Config, db *gorm.DB, redisClient *goredis.Client) (*App, error) {
	// 基础设施层
	txManager := mysql.NewTxManager(db)
	userRepo := mysql.NewUserRepository(db)
	apartmentRepo := mysql.NewApartmentRepository(db)
	categoryRepo := mysql.NewCategoryRepository(db)
	itemRepo := mysql.NewItemRepository(db)
	ledgerRepo := mysql.NewLedgerRepository(db)
	alertRepo := mysql.NewAlertRepository(db)
	checklistRepo := mysql.NewChecklistRepository(db)
	templateRepo := mysql.NewTemplateRepository(db)
	sessionStore := redis.NewSessionStore(redisClient)
	jwtManager := jwt.NewManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpire, cfg.JWT.RefreshTokenExpire)

	photos, err := storage.NewLocalPhotoStorage(cfg.Upload)
	if err != nil {
		return nil, err
	}

	// 领域层
	userService := user.NewService(userRepo)

	// 应用层
	checklists := appchecklist.NewChecklistUseCase(checklistRepo, templateRepo, apartmentRepo, userRepo, txManager)
	quantity := appinventory.NewApplyQuantityChangeUseCase(itemRepo, ledgerRepo, alertRepo, txManager)
	seed := setup.NewSeedUseCase(categoryRepo, itemRepo, apartmentRepo, templateRepo, userRepo, userService, cfg.Seed)

	// 接口层
	handlers := &router.Handlers{
		Auth: handler.NewAuthHandler(
			appuser.NewLoginUseCase(userService, checklists, txManager, jwtManager, sessionStore, cfg.JWT.RefreshTokenExpire),
			appuser.NewLogoutUseCase(jwtManager, sessionStore),
		),
		User:      handler.NewUserHandler(appuser.NewUserUseCase(userService, userRepo)),
		Apartment: handler.NewApartmentHandler(appapartment.NewApartmentUseCase(apartmentRepo, txManager)),
		Checklist: handler.NewChecklistHandler(checklists),
		Task:      handler.NewTaskHandler(appchecklist.NewTaskUseCase(checklistRepo, photos, txManager), cfg),
		Template:  handler.NewTemplateHandler(appchecklist.NewTemplateUseCase(templateRepo, apartmentRepo)),
		Inventory: handler.NewInventoryHandler(
			appinventory.NewItemUseCase(itemRepo, categoryRepo, ledgerRepo, alertRepo, apartmentRepo, quantity, txManager),
			appinventory.NewCategoryUseCase(categoryRepo),
		),
		Alert:  handler.NewAlertHandler(appinventory.NewAlertUseCase(alertRepo, itemRepo, apartmentRepo, txManager)),
		Report: handler.NewReportHandler(appreport.NewReportUseCase(apartmentRepo, itemRepo, alertRepo, categoryRepo, checklistRepo, userRepo)),
	}

	return &App{
		Engine: router.New(cfg, handlers, middleware.NewAuthMiddleware(jwtManager, sessionStore)),
		Seed:   seed,
	}, nil
}
