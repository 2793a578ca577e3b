package mysql

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/xiebiao/aptcare/internal/domain/apartment"
	"github.com/xiebiao/aptcare/internal/domain/inventory"
	"github.com/xiebiao/aptcare/internal/infrastructure/config"
)

// newTestDB 内存SQLite,每个测试独立一个库
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	cfg := &config.Config{
		Server:   config.ServerConfig{Mode: "test"},
		Database: config.DatabaseConfig{Driver: config.DriverSQLite, Path: ":memory:"},
	}
	db, err := NewDB(cfg)
	require.NoError(t, err)

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

// seedItem 创建公寓、分类和一个物品
func seedItem(t *testing.T, db *gorm.DB, quantity, minQuantity int) *inventory.Item {
	t.Helper()
	ctx := context.Background()

	apt, err := apartment.NewApartment("Casa Verde "+t.Name(), "Via Roma 1", "")
	require.NoError(t, err)
	require.NoError(t, NewApartmentRepository(db).Create(ctx, apt))

	categories := NewCategoryRepository(db)
	cat, err := categories.FindByName(ctx, "Consumables")
	if err != nil {
		cat = &inventory.Category{Name: "Consumables", IsConsumable: true}
		require.NoError(t, categories.Create(ctx, cat))
	}

	item, err := inventory.NewItem(apt.ID, cat.ID, "Carta igienica", "rotoli", "", quantity, minQuantity)
	require.NoError(t, err)
	require.NoError(t, NewItemRepository(db).Create(ctx, item))
	return item
}
