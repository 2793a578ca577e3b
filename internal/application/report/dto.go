package report

import (
	appchecklist "github.com/xiebiao/aptcare/internal/application/checklist"
	appinventory "github.com/xiebiao/aptcare/internal/application/inventory"
)

// ApartmentInfo 公寓
type ApartmentInfo struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
}

// ApartmentSummary 看板中单个公寓的库存概况
type ApartmentSummary struct {
	Apartment     ApartmentInfo           `json:"apartment"`
	LowStockItems []appinventory.ItemInfo `json:"low_stock_items"`
	MissingItems  []appinventory.ItemInfo `json:"missing_items"`
	TotalItems    int                     `json:"total_items"`
}

// Dashboard 管理员看板
type Dashboard struct {
	Apartments       []ApartmentSummary           `json:"apartments"`
	ActiveAlerts     []appinventory.AlertInfo     `json:"active_alerts"`
	RecentChecklists []appchecklist.ChecklistInfo `json:"recent_checklists"`
	ItemsToRestock   []appinventory.ItemInfo      `json:"items_to_restock"`
}

// ApartmentInventoryReport 公寓库存报表
type ApartmentInventoryReport struct {
	Apartment     ApartmentInfo           `json:"apartment"`
	TotalItems    int                     `json:"total_items"`
	LowStockCount int                     `json:"low_stock_count"`
	MissingCount  int                     `json:"missing_count"`
	OKStockCount  int                     `json:"ok_stock_count"`
	LowStockItems []appinventory.ItemInfo `json:"low_stock_items"`
	MissingItems  []appinventory.ItemInfo `json:"missing_items"`
	AllItems      []appinventory.ItemInfo `json:"all_items"`
}

// ApartmentStats 公寓统计
type ApartmentStats struct {
	Apartment           ApartmentInfo `json:"apartment"`
	TotalChecklists     int64         `json:"total_checklists"`
	CompletedChecklists int64         `json:"completed_checklists"`
	CompletionRate      float64       `json:"completion_rate"`
	RecentChecklists30d int64         `json:"recent_checklists_30d"`
	TotalInventoryItems int           `json:"total_inventory_items"`
	LowStockItems       int           `json:"low_stock_items"` // quantity <= min_quantity，包含缺货
}

// ExportFile 导出文件
type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}
