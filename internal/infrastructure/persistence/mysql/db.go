package mysql

import (
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/xiebiao/aptcare/internal/infrastructure/config"
)

// NewDB 创建数据库连接
// 设计说明：
// 1. 使用GORM v2作为ORM框架，默认MySQL，也可切换为纯Go实现的SQLite（单机部署、测试）
// 2. 配置连接池参数（MaxOpenConns、MaxIdleConns、ConnMaxLifetime）
// 3. 开发环境开启SQL日志，生产环境关闭
// 4. 自动迁移表结构（AutoMigrate）
func NewDB(cfg *config.Config) (*gorm.DB, error) {
	// 1. 选择驱动
	var dialector gorm.Dialector
	switch cfg.Database.Driver {
	case config.DriverSQLite:
		dialector = sqlite.Open(cfg.Database.DSN())
	default:
		dialector = mysql.Open(cfg.Database.DSN())
	}

	// 2. 配置GORM日志
	logLevel := logger.Silent
	if cfg.Server.Mode == "debug" {
		logLevel = logger.Info
	}

	// 3. 连接数据库
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true, // 唯一索引冲突统一转换为gorm.ErrDuplicatedKey
		NowFunc: func() time.Time {
			return time.Now()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	// 4. 配置连接池
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取SQL DB失败: %w", err)
	}

	if cfg.Database.Driver == config.DriverSQLite {
		// SQLite同一时间只允许一个写事务，单连接让事务按顺序执行
		// 内存库的数据也只存在于这一个连接上
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetMaxIdleConns(1)
		sqlDB.SetConnMaxLifetime(0)
	} else {
		sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
		sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)
	}

	// 5. 测试连接
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("数据库连接测试失败: %w", err)
	}

	zap.L().Info("数据库连接成功", zap.String("driver", cfg.Database.Driver))

	// 6. 自动迁移表结构
	// 注意：生产环境应使用版本化的迁移脚本
	if err := autoMigrate(db); err != nil {
		return nil, fmt.Errorf("数据库迁移失败: %w", err)
	}

	return db, nil
}

// autoMigrate 自动迁移表结构
func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&UserModel{},
		&ApartmentModel{},
		&CategoryModel{},
		&InventoryItemModel{},
		&InventoryHistoryModel{},
		&AlertModel{},
		&ChecklistTemplateModel{},
		&TaskTemplateModel{},
		&ChecklistModel{},
		&TaskResponseModel{},
	)
}

// UserModel GORM用户模型
// 设计说明：
// 1. Username只有管理员有，可为NULL；MySQL和SQLite的唯一索引都允许多个NULL
// 2. 姓名+角色唯一，保洁员按姓名登录时并发创建不会产生重复
type UserModel struct {
	ID           uint      `gorm:"primaryKey"`
	Name         string    `gorm:"uniqueIndex:idx_users_name_role;size:100;not null;comment:姓名"`
	Username     *string   `gorm:"uniqueIndex;size:50;comment:登录用户名（仅管理员）"`
	PasswordHash string    `gorm:"size:255;comment:密码（bcrypt加密，仅管理员）"`
	Role         string    `gorm:"uniqueIndex:idx_users_name_role;size:20;not null;default:operator;comment:角色(operator/manager)"`
	CreatedAt    time.Time `gorm:"comment:创建时间"`
	UpdatedAt    time.Time `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (UserModel) TableName() string {
	return "users"
}

// ApartmentModel GORM公寓模型
type ApartmentModel struct {
	ID          uint           `gorm:"primaryKey"`
	Name        string         `gorm:"uniqueIndex;size:100;not null;comment:公寓名称"`
	Address     string         `gorm:"size:255;comment:地址"`
	Description string         `gorm:"type:text;comment:描述"`
	CreatedAt   time.Time      `gorm:"comment:创建时间"`
	UpdatedAt   time.Time      `gorm:"comment:更新时间"`
	DeletedAt   gorm.DeletedAt `gorm:"index;comment:删除时间（软删除）"`
}

// TableName 指定表名
func (ApartmentModel) TableName() string {
	return "apartments"
}

// CategoryModel GORM物品分类模型
type CategoryModel struct {
	ID           uint      `gorm:"primaryKey"`
	Name         string    `gorm:"uniqueIndex;size:100;not null;comment:分类名称"`
	Description  string    `gorm:"size:255;comment:描述"`
	IsConsumable bool      `gorm:"default:false;comment:是否消耗品"`
	CreatedAt    time.Time `gorm:"comment:创建时间"`
}

// TableName 指定表名
func (CategoryModel) TableName() string {
	return "inventory_categories"
}

// InventoryItemModel GORM库存物品模型
// 设计说明：
// 1. 数量变更通过 SELECT ... FOR UPDATE 锁定物品行后执行
// 2. 软删除，保留历史台账和告警的引用
type InventoryItemModel struct {
	ID            uint           `gorm:"primaryKey"`
	ApartmentID   uint           `gorm:"index:idx_items_apartment;not null;comment:公寓ID"`
	CategoryID    uint           `gorm:"index;not null;comment:分类ID"`
	Name          string         `gorm:"size:100;not null;comment:物品名称"`
	Description   string         `gorm:"size:255;comment:描述"`
	Quantity      int            `gorm:"index:idx_items_quantity;not null;default:0;comment:当前数量"`
	MinQuantity   int            `gorm:"not null;default:1;comment:补货阈值"`
	Unit          string         `gorm:"size:20;not null;default:pz;comment:单位"`
	LastUpdated   time.Time      `gorm:"comment:最后数量变更时间"`
	LastUpdatedBy *uint          `gorm:"comment:最后变更人"`
	CreatedAt     time.Time      `gorm:"comment:创建时间"`
	UpdatedAt     time.Time      `gorm:"comment:更新时间"`
	DeletedAt     gorm.DeletedAt `gorm:"index;comment:删除时间（软删除）"`
}

// TableName 指定表名
func (InventoryItemModel) TableName() string {
	return "inventory_items"
}

// InventoryHistoryModel GORM数量变更台账模型
// 只插入，不更新不删除
type InventoryHistoryModel struct {
	ID          uint      `gorm:"primaryKey"`
	ItemID      uint      `gorm:"index:idx_history_item;not null;comment:物品ID"`
	ActorID     *uint     `gorm:"comment:操作人ID"`
	OldQuantity int       `gorm:"not null;comment:变更前数量"`
	NewQuantity int       `gorm:"not null;comment:变更后数量"`
	Reason      string    `gorm:"size:255;comment:变更原因"`
	CreatedAt   time.Time `gorm:"index:idx_history_item;comment:变更时间"`
}

// TableName 指定表名
func (InventoryHistoryModel) TableName() string {
	return "inventory_history"
}

// AlertModel GORM告警模型
// 设计说明：
// OpenKey = "<item_id>:<kind>"，仅未处理时有值，处理后置NULL
// 唯一索引保证同一物品同一类型最多一条未处理告警
type AlertModel struct {
	ID          uint       `gorm:"primaryKey"`
	ApartmentID uint       `gorm:"index;not null;comment:公寓ID"`
	ItemID      *uint      `gorm:"index;comment:物品ID"`
	Kind        string     `gorm:"size:30;not null;comment:类型(low_stock/missing_item/checklist_issue)"`
	Message     string     `gorm:"size:500;not null;comment:告警内容"`
	Severity    string     `gorm:"size:10;not null;default:medium;comment:级别(low/medium/high)"`
	Resolved    bool       `gorm:"index;default:false;comment:是否已处理"`
	OpenKey     *string    `gorm:"uniqueIndex;size:64;comment:未处理告警唯一键"`
	CreatedAt   time.Time  `gorm:"index;comment:创建时间"`
	ResolvedAt  *time.Time `gorm:"comment:处理时间"`
}

// TableName 指定表名
func (AlertModel) TableName() string {
	return "alerts"
}

// ChecklistTemplateModel GORM清单模板模型
// ApartmentID为NULL表示通用模板
type ChecklistTemplateModel struct {
	ID          uint                `gorm:"primaryKey"`
	Name        string              `gorm:"size:100;not null;comment:模板名称"`
	Description string              `gorm:"size:255;comment:描述"`
	ApartmentID *uint               `gorm:"index;comment:公寓ID(NULL为通用模板)"`
	IsActive    bool                `gorm:"default:true;comment:是否启用"`
	Tasks       []TaskTemplateModel `gorm:"foreignKey:TemplateID"`
	CreatedAt   time.Time           `gorm:"comment:创建时间"`
}

// TableName 指定表名
func (ChecklistTemplateModel) TableName() string {
	return "checklist_templates"
}

// TaskTemplateModel GORM模板任务模型
type TaskTemplateModel struct {
	ID          uint   `gorm:"primaryKey"`
	TemplateID  uint   `gorm:"index;not null;comment:模板ID"`
	Title       string `gorm:"size:200;not null;comment:任务标题"`
	Description string `gorm:"size:500;comment:任务说明"`
	TaskType    string `gorm:"size:20;not null;default:checkbox;comment:类型(checkbox/yes_no/photo/text)"`
	Required    bool   `gorm:"default:false;comment:是否必填"`
	OrderIndex  int    `gorm:"default:0;comment:排序"`
}

// TableName 指定表名
func (TaskTemplateModel) TableName() string {
	return "task_templates"
}

// ChecklistModel GORM清单模型
type ChecklistModel struct {
	ID          uint                `gorm:"primaryKey"`
	ApartmentID uint                `gorm:"index;not null;comment:公寓ID"`
	UserID      uint                `gorm:"index;not null;comment:保洁员ID"`
	TemplateID  *uint               `gorm:"comment:模板ID"`
	Date        time.Time           `gorm:"index;not null;comment:清单日期"`
	Completed   bool                `gorm:"index;default:false;comment:是否完成"`
	CompletedAt *time.Time          `gorm:"comment:完成时间"`
	Notes       string              `gorm:"type:text;comment:备注"`
	Tasks       []TaskResponseModel `gorm:"foreignKey:ChecklistID"`
	CreatedAt   time.Time           `gorm:"comment:创建时间"`
	UpdatedAt   time.Time           `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (ChecklistModel) TableName() string {
	return "checklists"
}

// TaskResponseModel GORM任务结果模型
// 标题、类型、必填在创建时从模板复制（快照）
type TaskResponseModel struct {
	ID             uint                        `gorm:"primaryKey"`
	ChecklistID    uint                        `gorm:"index;not null;comment:清单ID"`
	TaskTemplateID *uint                       `gorm:"comment:模板任务ID"`
	Title          string                      `gorm:"size:200;not null;comment:任务标题(快照)"`
	TaskType       string                      `gorm:"size:20;not null;comment:任务类型(快照)"`
	Required       bool                        `gorm:"default:false;comment:是否必填(快照)"`
	OrderIndex     int                         `gorm:"default:0;comment:排序"`
	Completed      bool                        `gorm:"default:false;comment:是否完成"`
	Value          string                      `gorm:"size:1000;comment:回答内容"`
	Notes          string                      `gorm:"type:text;comment:备注"`
	PhotoPaths     datatypes.JSONSlice[string] `gorm:"comment:照片路径(JSON数组)"`
	UpdatedAt      time.Time                   `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (TaskResponseModel) TableName() string {
	return "task_responses"
}
