package inventory

import (
	"time"

	"github.com/xiebiao/aptcare/internal/domain/inventory"
)

// =========================================
// 应用层响应DTO
// =========================================

// ItemInfo 库存物品
type ItemInfo struct {
	ID            uint      `json:"id"`
	ApartmentID   uint      `json:"apartment_id"`
	CategoryID    uint      `json:"category_id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Quantity      int       `json:"quantity"`
	MinQuantity   int       `json:"min_quantity"`
	Unit          string    `json:"unit"`
	LowStock      bool      `json:"low_stock"`
	LastUpdated   time.Time `json:"last_updated"`
	LastUpdatedBy *uint     `json:"last_updated_by,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// QuantityChangeInfo 数量变更结果
type QuantityChangeInfo struct {
	Item        ItemInfo   `json:"item"`
	OldQuantity int        `json:"old_quantity"`
	RecordID    uint       `json:"record_id"`
	Alert       *AlertInfo `json:"alert,omitempty"` // 本次新建的告警
}

// HistoryInfo 台账记录
type HistoryInfo struct {
	ID          uint      `json:"id"`
	ItemID      uint      `json:"item_id"`
	UserID      *uint     `json:"user_id,omitempty"`
	OldQuantity int       `json:"old_quantity"`
	NewQuantity int       `json:"new_quantity"`
	Reason      string    `json:"change_reason"`
	CreatedAt   time.Time `json:"created_at"`
}

// AlertInfo 告警
type AlertInfo struct {
	ID          uint       `json:"id"`
	ApartmentID uint       `json:"apartment_id"`
	ItemID      *uint      `json:"inventory_item_id,omitempty"`
	Kind        string     `json:"alert_type"`
	Message     string     `json:"message"`
	Severity    string     `json:"severity"`
	Resolved    bool       `json:"resolved"`
	CreatedAt   time.Time  `json:"created_at"`
	ResolvedAt  *time.Time `json:"resolved_at,omitempty"`
}

// CategoryInfo 分类
type CategoryInfo struct {
	ID           uint      `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	IsConsumable bool      `json:"is_consumable"`
	CreatedAt    time.Time `json:"created_at"`
}

// ToItemInfo 领域实体 → DTO
func ToItemInfo(item *inventory.Item) ItemInfo {
	return ItemInfo{
		ID:            item.ID,
		ApartmentID:   item.ApartmentID,
		CategoryID:    item.CategoryID,
		Name:          item.Name,
		Description:   item.Description,
		Quantity:      item.Quantity,
		MinQuantity:   item.MinQuantity,
		Unit:          item.Unit,
		LowStock:      item.IsLowStock(),
		LastUpdated:   item.LastUpdated,
		LastUpdatedBy: item.LastUpdatedBy,
		CreatedAt:     item.CreatedAt,
	}
}

// ToItemInfos 批量转换
func ToItemInfos(items []*inventory.Item) []ItemInfo {
	list := make([]ItemInfo, len(items))
	for i, item := range items {
		list[i] = ToItemInfo(item)
	}
	return list
}

// ToAlertInfo 领域实体 → DTO
func ToAlertInfo(a *inventory.Alert) AlertInfo {
	return AlertInfo{
		ID:          a.ID,
		ApartmentID: a.ApartmentID,
		ItemID:      a.ItemID,
		Kind:        string(a.Kind),
		Message:     a.Message,
		Severity:    string(a.Severity),
		Resolved:    a.Resolved,
		CreatedAt:   a.CreatedAt,
		ResolvedAt:  a.ResolvedAt,
	}
}

// ToAlertInfos 批量转换
func ToAlertInfos(alerts []*inventory.Alert) []AlertInfo {
	list := make([]AlertInfo, len(alerts))
	for i, a := range alerts {
		list[i] = ToAlertInfo(a)
	}
	return list
}

func toQuantityChangeInfo(s *inventory.ItemSnapshot) *QuantityChangeInfo {
	info := &QuantityChangeInfo{
		Item:        ToItemInfo(&s.Item),
		OldQuantity: s.OldQuantity,
		RecordID:    s.RecordID,
	}
	if s.Alert != nil {
		alert := ToAlertInfo(s.Alert)
		info.Alert = &alert
	}
	return info
}

func toCategoryInfo(c *inventory.Category) CategoryInfo {
	return CategoryInfo{
		ID:           c.ID,
		Name:         c.Name,
		Description:  c.Description,
		IsConsumable: c.IsConsumable,
		CreatedAt:    c.CreatedAt,
	}
}
