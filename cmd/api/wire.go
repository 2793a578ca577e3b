//go:build wireinject
// +build wireinject

// Wire依赖注入配置
// 生成：wire gen ./cmd/api
// 生成的wire_gen.go提供InitializeApp()，组装结果与main.go中的buildApp一致

package main

import (
	"github.com/google/wire"

	appapartment "github.com/xiebiao/aptcare/internal/application/apartment"
	appchecklist "github.com/xiebiao/aptcare/internal/application/checklist"
	appinventory "github.com/xiebiao/aptcare/internal/application/inventory"
	appreport "github.com/xiebiao/aptcare/internal/application/report"
	"github.com/xiebiao/aptcare/internal/application/setup"
	appuser "github.com/xiebiao/aptcare/internal/application/user"
	"github.com/xiebiao/aptcare/internal/domain/apartment"
	"github.com/xiebiao/aptcare/internal/domain/checklist"
	"github.com/xiebiao/aptcare/internal/domain/inventory"
	"github.com/xiebiao/aptcare/internal/domain/user"
	"github.com/xiebiao/aptcare/internal/infrastructure/config"
	"github.com/xiebiao/aptcare/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/aptcare/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/aptcare/internal/infrastructure/storage"
	"github.com/xiebiao/aptcare/internal/interface/http/handler"
	"github.com/xiebiao/aptcare/internal/interface/http/middleware"
	"github.com/xiebiao/aptcare/internal/interface/http/router"
	"github.com/xiebiao/aptcare/pkg/jwt"
)

// infrastructureSet 配置、数据库、Redis、照片存储
var infrastructureSet = wire.NewSet(
	config.Load,
	mysql.NewDB,
	redis.NewClient,
	redis.NewSessionStore,
	storage.NewLocalPhotoStorage,
	provideUploadConfig,
	provideJWTManager,
	wire.Bind(new(appuser.SessionStore), new(*redis.SessionStore)),
	wire.Bind(new(middleware.TokenBlacklist), new(*redis.SessionStore)),
	wire.Bind(new(appchecklist.PhotoStorage), new(*storage.LocalPhotoStorage)),
)

// repositorySet 仓储层
var repositorySet = wire.NewSet(
	mysql.NewTxManager,
	mysql.NewUserRepository,
	mysql.NewApartmentRepository,
	mysql.NewCategoryRepository,
	mysql.NewItemRepository,
	mysql.NewLedgerRepository,
	mysql.NewAlertRepository,
	mysql.NewChecklistRepository,
	mysql.NewTemplateRepository,
)

// applicationSet 领域服务与用例
var applicationSet = wire.NewSet(
	user.NewService,
	appuser.NewUserUseCase,
	appuser.NewLogoutUseCase,
	provideLoginUseCase,
	appapartment.NewApartmentUseCase,
	appchecklist.NewChecklistUseCase,
	appchecklist.NewTaskUseCase,
	appchecklist.NewTemplateUseCase,
	appinventory.NewApplyQuantityChangeUseCase,
	appinventory.NewItemUseCase,
	appinventory.NewCategoryUseCase,
	appinventory.NewAlertUseCase,
	appreport.NewReportUseCase,
	provideSeedUseCase,
)

// handlerSet HTTP处理器与路由
var handlerSet = wire.NewSet(
	handler.NewAuthHandler,
	handler.NewUserHandler,
	handler.NewApartmentHandler,
	handler.NewChecklistHandler,
	handler.NewTaskHandler,
	handler.NewTemplateHandler,
	handler.NewInventoryHandler,
	handler.NewAlertHandler,
	handler.NewReportHandler,
	wire.Struct(new(*router.Handlers), "*"),
	middleware.NewAuthMiddleware,
	router.New,
	wire.Struct(new(*App), "*"),
)

// provideJWTManager Wire无法从Config中取出字段，需要手写Provider
func provideJWTManager(cfg *config.Config) *jwt.Manager {
	return jwt.NewManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpire, cfg.JWT.RefreshTokenExpire)
}

func provideUploadConfig(cfg *config.Config) config.UploadConfig {
	return cfg.Upload
}

// provideLoginUseCase 会话有效期取Refresh Token有效期
func provideLoginUseCase(
	cfg *config.Config,
	userService user.Service,
	checklists *appchecklist.ChecklistUseCase,
	txManager *mysql.TxManager,
	jwtManager *jwt.Manager,
	sessionStore appuser.SessionStore,
) *appuser.LoginUseCase {
	return appuser.NewLoginUseCase(userService, checklists, txManager, jwtManager, sessionStore, cfg.JWT.RefreshTokenExpire)
}

func provideSeedUseCase(
	cfg *config.Config,
	categoryRepo inventory.CategoryRepository,
	itemRepo inventory.ItemRepository,
	apartmentRepo apartment.Repository,
	templateRepo checklist.TemplateRepository,
	userRepo user.Repository,
	userService user.Service,
) *setup.SeedUseCase {
	return setup.NewSeedUseCase(categoryRepo, itemRepo, apartmentRepo, templateRepo, userRepo, userService, cfg.Seed)
}

// InitializeApp 组装Gin引擎和初始数据用例
func InitializeApp() (*App, error) {
	wire.Build(
		infrastructureSet,
		repositorySet,
		applicationSet,
		handlerSet,
	)
	return nil, nil
}
