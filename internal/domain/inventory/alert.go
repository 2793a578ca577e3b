package inventory

import (
	"fmt"
	"time"
)

// AlertKind 告警类型
type AlertKind string

const (
	AlertLowStock       AlertKind = "low_stock"
	AlertMissingItem    AlertKind = "missing_item"
	AlertChecklistIssue AlertKind = "checklist_issue"
)

// ParseAlertKind 解析告警类型，未知值返回错误
func ParseAlertKind(s string) (AlertKind, error) {
	switch k := AlertKind(s); k {
	case AlertLowStock, AlertMissingItem, AlertChecklistIssue:
		return k, nil
	default:
		return "", ErrInvalidAlertKind
	}
}

// Severity 告警级别
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// ParseSeverity 解析告警级别，未知值返回错误
func ParseSeverity(s string) (Severity, error) {
	switch v := Severity(s); v {
	case SeverityLow, SeverityMedium, SeverityHigh:
		return v, nil
	default:
		return "", ErrInvalidSeverity
	}
}

// Alert 告警实体
// 生命周期：创建时未处理 → 显式处理后 resolved=true，不会自动重新打开
type Alert struct {
	ID          uint
	ApartmentID uint
	ItemID      *uint
	Kind        AlertKind
	Message     string
	Severity    Severity
	Resolved    bool
	CreatedAt   time.Time
	ResolvedAt  *time.Time
}

// NewAlert 创建告警
func NewAlert(apartmentID uint, itemID *uint, kind AlertKind, severity Severity, message string) (*Alert, error) {
	if _, err := ParseAlertKind(string(kind)); err != nil {
		return nil, err
	}
	if _, err := ParseSeverity(string(severity)); err != nil {
		return nil, err
	}
	if message == "" {
		return nil, ErrInvalidAlertMessage
	}
	return &Alert{
		ApartmentID: apartmentID,
		ItemID:      itemID,
		Kind:        kind,
		Message:     message,
		Severity:    severity,
		CreatedAt:   time.Now(),
	}, nil
}

// Resolve 处理告警，只能执行一次
func (a *Alert) Resolve(at time.Time) error {
	if a.Resolved {
		return ErrAlertAlreadyResolved
	}
	a.Resolved = true
	a.ResolvedAt = &at
	return nil
}

// OpenKey 未处理告警的唯一键（物品+类型）
// 没有关联物品的告警不参与唯一约束，返回空串
func (a *Alert) OpenKey() string {
	if a.Resolved || a.ItemID == nil {
		return ""
	}
	return OpenKey(*a.ItemID, a.Kind)
}

// OpenKey 生成 "<item_id>:<kind>" 形式的唯一键
func OpenKey(itemID uint, kind AlertKind) string {
	return fmt.Sprintf("%d:%s", itemID, kind)
}

// AlertListParams 告警列表查询参数
type AlertListParams struct {
	ApartmentID *uint
	Resolved    *bool
	Limit       int // 0表示不限制
}
