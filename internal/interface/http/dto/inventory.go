package dto

// =========================================
// 分类
// =========================================

// CreateCategoryRequest 创建分类请求
type CreateCategoryRequest struct {
	Name         string `json:"name" binding:"required,max=100" example:"Consumables"`
	Description  string `json:"description" binding:"max=500"`
	IsConsumable bool   `json:"is_consumable" example:"true"`
}

// =========================================
// 物品
// =========================================

// CreateItemRequest 创建物品请求
type CreateItemRequest struct {
	ApartmentID uint   `json:"apartment_id" binding:"required,min=1" example:"1"`
	CategoryID  uint   `json:"category_id" binding:"required,min=1" example:"4"`
	Name        string `json:"name" binding:"required,max=100" example:"Carta igienica"`
	Description string `json:"description" binding:"max=500"`
	Quantity    int    `json:"quantity" example:"12"`
	MinQuantity int    `json:"min_quantity" example:"4"`
	Unit        string `json:"unit" binding:"max=20" example:"rotoli"`
}

// ListItemsQuery 物品列表查询
type ListItemsQuery struct {
	ApartmentID *uint `form:"apartment_id" example:"1"`
	CategoryID  *uint `form:"category_id" example:"4"`
	LowStock    bool  `form:"low_stock" example:"false"` // 仅返回 quantity <= min_quantity
}

// UpdateItemRequest 修改物品请求
// 带quantity时执行数量变更（写台账、判断告警），change_reason为空时为"手动更新"
// user_id为空时使用当前登录用户
type UpdateItemRequest struct {
	Quantity     *int    `json:"quantity" example:"3"`
	MinQuantity  *int    `json:"min_quantity" example:"4"`
	Name         *string `json:"name" binding:"omitempty,max=100"`
	Unit         *string `json:"unit" binding:"omitempty,max=20"`
	Description  *string `json:"description" binding:"omitempty,max=500"`
	CategoryID   *uint   `json:"category_id" binding:"omitempty,min=1"`
	UserID       *uint   `json:"user_id" binding:"omitempty,min=1"`
	ChangeReason string  `json:"change_reason" binding:"max=255" example:"补货"`
}

// =========================================
// 告警
// =========================================

// CreateAlertRequest 手动创建告警
type CreateAlertRequest struct {
	ApartmentID uint   `json:"apartment_id" binding:"required,min=1" example:"1"`
	ItemID      *uint  `json:"inventory_item_id" example:"3"`
	AlertType   string `json:"alert_type" binding:"required" example:"missing_item"`
	Severity    string `json:"severity" example:"medium"` // 为空时为medium
	Message     string `json:"message" binding:"required,max=500" example:"浴室毛巾缺失"`
}

// ListAlertsQuery 告警列表查询
type ListAlertsQuery struct {
	ApartmentID *uint `form:"apartment_id" example:"1"`
	Resolved    *bool `form:"resolved" example:"false"`
}
