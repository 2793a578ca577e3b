package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/xiebiao/aptcare/internal/infrastructure/config"
	"github.com/xiebiao/aptcare/internal/interface/http/handler"
	"github.com/xiebiao/aptcare/internal/interface/http/middleware"
	"github.com/xiebiao/aptcare/pkg/response"
)

// Handlers 所有HTTP处理器
type Handlers struct {
	Auth      *handler.AuthHandler
	User      *handler.UserHandler
	Apartment *handler.ApartmentHandler
	Checklist *handler.ChecklistHandler
	Task      *handler.TaskHandler
	Template  *handler.TemplateHandler
	Inventory *handler.InventoryHandler
	Alert     *handler.AlertHandler
	Report    *handler.ReportHandler
}

// New 创建Gin引擎并注册路由
//
// 权限划分：
//   - 公开：健康检查、登录、公寓列表（保洁员登录前选择公寓）
//   - 登录即可：清单、任务、物品查询与数量变更、告警上报
//   - 仅管理员：用户、公寓维护、模板与分类创建、物品增删、处理告警、报表
func New(cfg *config.Config, h *Handlers, auth *middleware.AuthMiddleware) *gin.Engine {
	switch cfg.Server.Mode {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	}

	r := gin.New()
	r.Use(
		gin.Recovery(),
		middleware.Logger(zap.L()),
		middleware.CORS(cfg.CORS),
		middleware.Metrics(),
	)

	// 运维接口
	r.GET("/ping", func(c *gin.Context) {
		response.Success(c, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	if cfg.Server.Mode != "release" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// 上传的任务照片
	r.Static(cfg.Upload.URLPrefix, cfg.Upload.Dir)

	v1 := r.Group("/api/v1")

	// 认证
	authGroup := v1.Group("/auth")
	{
		authGroup.POST("/login", h.Auth.OperatorLogin)
		authGroup.POST("/manager/login", h.Auth.ManagerLogin)
		authGroup.POST("/refresh", h.Auth.Refresh)
		authGroup.POST("/logout", auth.RequireAuth(), h.Auth.Logout)
	}

	// 公寓
	v1.GET("/apartments", h.Apartment.List)
	v1.GET("/apartments/:id", h.Apartment.Get)

	authorized := v1.Group("")
	authorized.Use(auth.RequireAuth())

	manager := authorized.Group("")
	manager.Use(auth.RequireManager())

	{
		manager.POST("/apartments", h.Apartment.Create)
		manager.PUT("/apartments/:id", h.Apartment.Update)
		manager.DELETE("/apartments/:id", h.Apartment.Delete)
	}

	// 用户
	{
		manager.GET("/users", h.User.List)
		manager.GET("/users/:id", h.User.Get)
		manager.POST("/users", h.User.Create)
	}

	// 清单、任务、模板
	{
		authorized.GET("/checklists", h.Checklist.List)
		authorized.GET("/checklists/:id", h.Checklist.Get)
		authorized.PUT("/checklists/:id", h.Checklist.Update)
		authorized.GET("/checklists/:id/tasks", h.Task.List)
		manager.POST("/checklists", h.Checklist.Create)

		authorized.PUT("/checklists/tasks/:id", h.Task.Update)
		authorized.POST("/checklists/tasks/:id/upload", h.Task.UploadPhoto)

		authorized.GET("/checklists/templates", h.Template.List)
		authorized.GET("/checklists/templates/:id", h.Template.Get)
		manager.POST("/checklists/templates", h.Template.Create)
	}

	// 库存
	{
		authorized.GET("/inventory/categories", h.Inventory.ListCategories)
		manager.POST("/inventory/categories", h.Inventory.CreateCategory)

		authorized.GET("/inventory/items", h.Inventory.ListItems)
		authorized.GET("/inventory/items/:id", h.Inventory.GetItem)
		authorized.PUT("/inventory/items/:id", h.Inventory.UpdateItem)
		authorized.GET("/inventory/items/:id/history", h.Inventory.History)
		manager.POST("/inventory/items", h.Inventory.CreateItem)
		manager.DELETE("/inventory/items/:id", h.Inventory.DeleteItem)

		authorized.GET("/inventory/alerts", h.Alert.List)
		authorized.POST("/inventory/alerts", h.Alert.Create)
		manager.PUT("/inventory/alerts/:id/resolve", h.Alert.Resolve)
	}

	// 报表
	reports := manager.Group("/reports")
	{
		reports.GET("/dashboard", h.Report.Dashboard)
		reports.GET("/apartments/:id/inventory", h.Report.ApartmentInventory)
		reports.GET("/apartments/:id/stats", h.Report.ApartmentStats)
		reports.GET("/export/inventory/csv", h.Report.ExportInventoryCSV)
		reports.GET("/export/inventory/pdf", h.Report.ExportInventoryPDF)
		reports.GET("/export/checklists/csv", h.Report.ExportChecklistsCSV)
	}

	return r
}
