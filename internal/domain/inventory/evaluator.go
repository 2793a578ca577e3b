package inventory

import (
	"fmt"
	"time"
)

// AlertDraft 待创建的告警草稿
type AlertDraft struct {
	Kind     AlertKind
	Severity Severity
	Message  string
}

// Evaluate 根据新数量判断是否需要库存告警
// 规则：
// 1. newQuantity <= MinQuantity 产生low_stock草稿
// 2. newQuantity == 0 为high，否则为medium
// 3. 数量回升不会自动处理已有告警
//
// 纯函数，不访问存储
func Evaluate(item Item, newQuantity int) *AlertDraft {
	if newQuantity > item.MinQuantity {
		return nil
	}

	severity := SeverityMedium
	if newQuantity == 0 {
		severity = SeverityHigh
	}

	return &AlertDraft{
		Kind:     AlertLowStock,
		Severity: severity,
		Message:  fmt.Sprintf("库存不足: %s 剩余 %d %s", item.Name, newQuantity, item.Unit),
	}
}

// ToAlert 草稿转换为物品告警
func (d *AlertDraft) ToAlert(item Item) *Alert {
	itemID := item.ID
	return &Alert{
		ApartmentID: item.ApartmentID,
		ItemID:      &itemID,
		Kind:        d.Kind,
		Severity:    d.Severity,
		Message:     d.Message,
		CreatedAt:   time.Now(),
	}
}
