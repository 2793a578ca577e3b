// Package report 报表聚合规则
//
// 所有报表都在查询时根据当前库存和清单计算，不缓存、不增量维护。
package report

import (
	"github.com/xiebiao/aptcare/internal/domain/inventory"
)

// StockStatus 库存状态
type StockStatus string

const (
	StatusOK      StockStatus = "OK"
	StatusLow     StockStatus = "LOW"
	StatusMissing StockStatus = "MISSING"
)

// StatusOf 计算单个物品的库存状态
// missing: quantity == 0
// low:     0 < quantity <= min_quantity
// ok:      quantity > min_quantity
func StatusOf(item *inventory.Item) StockStatus {
	switch {
	case item.Quantity > item.MinQuantity:
		return StatusOK
	case item.Quantity > 0:
		return StatusLow
	default:
		return StatusMissing
	}
}

// Partition 按库存状态划分物品
type Partition struct {
	Low     []*inventory.Item
	Missing []*inventory.Item
	OK      []*inventory.Item
}

// Total 物品总数
func (p Partition) Total() int {
	return len(p.Low) + len(p.Missing) + len(p.OK)
}

// PartitionItems 划分物品，各分组内保持输入顺序
func PartitionItems(items []*inventory.Item) Partition {
	p := Partition{
		Low:     []*inventory.Item{},
		Missing: []*inventory.Item{},
		OK:      []*inventory.Item{},
	}
	for _, item := range items {
		switch StatusOf(item) {
		case StatusOK:
			p.OK = append(p.OK, item)
		case StatusLow:
			p.Low = append(p.Low, item)
		default:
			p.Missing = append(p.Missing, item)
		}
	}
	return p
}

// CompletionRate 清单完成率（百分比）
// total为0时返回0
func CompletionRate(completed, total int64) float64 {
	if total == 0 {
		return 0
	}
	return float64(completed) / float64(total) * 100
}

const (
	// DashboardAlertLimit 看板展示的未处理告警数量上限
	DashboardAlertLimit = 20
	// DashboardChecklistLimit 看板展示的近期清单数量上限
	DashboardChecklistLimit = 20
	// DashboardChecklistDays 看板近期清单的天数
	DashboardChecklistDays = 7
	// StatsRecentDays 公寓统计中近期清单的天数
	StatsRecentDays = 30
)
