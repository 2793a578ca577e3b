package apartment

import (
	"strings"
	"time"
)

// Apartment 公寓实体
type Apartment struct {
	ID          uint
	Name        string
	Address     string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewApartment 创建公寓
func NewApartment(name, address, description string) (*Apartment, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidName
	}
	now := time.Now()
	return &Apartment{
		Name:        name,
		Address:     address,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// Rename 修改名称
func (a *Apartment) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrInvalidName
	}
	a.Name = name
	a.UpdatedAt = time.Now()
	return nil
}
