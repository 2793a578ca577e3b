package inventory

import (
	"strings"
	"time"
)

// Item 库存物品实体（聚合根）
// 设计说明：
// 1. Quantity只能通过数量变更操作修改，每次变更都会写入台账
// 2. MinQuantity是补货阈值，Quantity <= MinQuantity 视为库存不足
// 3. 领域实体不依赖GORM tag
type Item struct {
	ID            uint
	ApartmentID   uint
	CategoryID    uint
	Name          string
	Description   string
	Quantity      int
	MinQuantity   int
	Unit          string
	LastUpdated   time.Time
	LastUpdatedBy *uint
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewItem 创建库存物品（工厂方法）
func NewItem(apartmentID, categoryID uint, name, unit, description string, quantity, minQuantity int) (*Item, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidName
	}
	if quantity < 0 || minQuantity < 0 {
		return nil, ErrInvalidQuantity
	}
	if unit == "" {
		unit = DefaultUnit
	}
	now := time.Now()
	return &Item{
		ApartmentID: apartmentID,
		CategoryID:  categoryID,
		Name:        name,
		Description: description,
		Quantity:    quantity,
		MinQuantity: minQuantity,
		Unit:        unit,
		LastUpdated: now,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// DefaultUnit 默认计量单位
const DefaultUnit = "pz"

// IsLowStock 是否达到补货阈值（含缺货）
func (i *Item) IsLowStock() bool {
	return i.Quantity <= i.MinQuantity
}

// IsMissing 是否缺货
func (i *Item) IsMissing() bool {
	return i.Quantity == 0
}

// SetQuantity 写入新数量与最后更新信息
// 只能由数量变更操作调用
func (i *Item) SetQuantity(quantity int, actorID *uint, at time.Time) error {
	if quantity < 0 {
		return ErrInvalidQuantity
	}
	i.Quantity = quantity
	i.LastUpdated = at
	i.LastUpdatedBy = actorID
	return nil
}

// ItemChanges 物品基本信息修改，nil字段不修改
type ItemChanges struct {
	Name        *string
	Description *string
	Unit        *string
	MinQuantity *int
	CategoryID  *uint
}

// IsEmpty 是否没有任何修改
func (c ItemChanges) IsEmpty() bool {
	return c.Name == nil && c.Description == nil && c.Unit == nil &&
		c.MinQuantity == nil && c.CategoryID == nil
}

// Validate 校验修改内容（不访问存储）
func (c ItemChanges) Validate() error {
	if c.Name != nil && strings.TrimSpace(*c.Name) == "" {
		return ErrInvalidName
	}
	if c.MinQuantity != nil && *c.MinQuantity < 0 {
		return ErrInvalidQuantity
	}
	return nil
}

// ApplyChanges 应用基本信息修改
func (i *Item) ApplyChanges(c ItemChanges) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.Name != nil {
		i.Name = strings.TrimSpace(*c.Name)
	}
	if c.Description != nil {
		i.Description = *c.Description
	}
	if c.Unit != nil {
		i.Unit = *c.Unit
		if i.Unit == "" {
			i.Unit = DefaultUnit
		}
	}
	if c.MinQuantity != nil {
		i.MinQuantity = *c.MinQuantity
	}
	if c.CategoryID != nil {
		i.CategoryID = *c.CategoryID
	}
	i.UpdatedAt = time.Now()
	return nil
}

// Category 物品分类
type Category struct {
	ID           uint
	Name         string
	Description  string
	IsConsumable bool
	CreatedAt    time.Time
}

// ItemSnapshot 数量变更后的物品快照
type ItemSnapshot struct {
	Item         Item
	OldQuantity  int
	RecordID     uint
	Alert        *Alert // 本次变更新建的告警，未新建时为nil
	AlertCreated bool
}

// ListParams 物品列表查询参数
type ListParams struct {
	ApartmentID *uint
	CategoryID  *uint
	LowStock    bool // 仅返回 quantity <= min_quantity 的物品
}
