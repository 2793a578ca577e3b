package dto

// ExportInventoryQuery 库存导出条件
type ExportInventoryQuery struct {
	ApartmentID *uint `form:"apartment_id" example:"1"` // 为空导出全部公寓
}

// ExportChecklistsQuery 清单导出条件
type ExportChecklistsQuery struct {
	ApartmentID *uint  `form:"apartment_id" example:"1"`
	StartDate   string `form:"start_date" binding:"omitempty,datetime=2006-01-02" example:"2026-06-01"`
	EndDate     string `form:"end_date" binding:"omitempty,datetime=2006-01-02" example:"2026-06-30"`
}
