package dto

// =========================================
// 清单
// =========================================

// CreateChecklistRequest 手动创建清单请求
type CreateChecklistRequest struct {
	ApartmentID uint   `json:"apartment_id" binding:"required,min=1" example:"1"`
	UserID      uint   `json:"user_id" binding:"required,min=1" example:"2"`
	TemplateID  *uint  `json:"template_id" example:"1"` // 为空时使用公寓模板，没有则使用通用模板
	Date        string `json:"date" binding:"omitempty,datetime=2006-01-02" example:"2026-06-15"`
	Notes       string `json:"notes" binding:"max=2000"`
}

// ListChecklistsQuery 清单列表查询
type ListChecklistsQuery struct {
	ApartmentID *uint  `form:"apartment_id" example:"1"`
	UserID      *uint  `form:"user_id" example:"2"`
	Completed   *bool  `form:"completed" example:"false"`
	StartDate   string `form:"start_date" binding:"omitempty,datetime=2006-01-02" example:"2026-06-01"`
	EndDate     string `form:"end_date" binding:"omitempty,datetime=2006-01-02" example:"2026-06-30"`
	Page        int    `form:"page" binding:"omitempty,min=1" example:"1"`
	PageSize    int    `form:"page_size" binding:"omitempty,min=1,max=100" example:"20"`
}

// UpdateChecklistRequest 修改清单请求
type UpdateChecklistRequest struct {
	Completed *bool   `json:"completed" example:"true"`
	Notes     *string `json:"notes" binding:"omitempty,max=2000"`
}

// =========================================
// 任务
// =========================================

// UpdateTaskRequest 修改任务结果请求
// yes_no任务的value只能是yes或no
type UpdateTaskRequest struct {
	Completed *bool   `json:"completed" example:"true"`
	Value     *string `json:"value" binding:"omitempty,max=2000" example:"yes"`
	Notes     *string `json:"notes" binding:"omitempty,max=2000"`
}

// =========================================
// 模板
// =========================================

// CreateTemplateRequest 创建模板请求
type CreateTemplateRequest struct {
	Name        string                `json:"name" binding:"required,max=100" example:"Pulizia standard"`
	Description string                `json:"description" binding:"max=2000"`
	ApartmentID *uint                 `json:"apartment_id" example:"1"` // 为空表示通用模板
	Tasks       []TaskTemplateRequest `json:"tasks" binding:"required,min=1,dive"`
}

// TaskTemplateRequest 模板任务，数组顺序即执行顺序
type TaskTemplateRequest struct {
	Title       string `json:"title" binding:"required,max=200" example:"清洁浴室"`
	Description string `json:"description" binding:"max=2000"`
	TaskType    string `json:"task_type" binding:"required,oneof=checkbox yes_no photo text" example:"checkbox"`
	Required    bool   `json:"required" example:"true"`
}

// ListTemplatesQuery 模板列表查询
type ListTemplatesQuery struct {
	ApartmentID *uint `form:"apartment_id" example:"1"`
}
