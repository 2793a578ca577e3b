package inventory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/xiebiao/aptcare/internal/domain/apartment"
	"github.com/xiebiao/aptcare/internal/domain/inventory"
	"github.com/xiebiao/aptcare/internal/infrastructure/config"
	"github.com/xiebiao/aptcare/internal/infrastructure/persistence/mysql"
)

// fixture 用真实仓储和内存SQLite组装用例
type fixture struct {
	db        *gorm.DB
	items     inventory.ItemRepository
	ledger    inventory.LedgerRepository
	alerts    inventory.AlertRepository
	category  *inventory.Category
	apartment *apartment.Apartment

	quantity *ApplyQuantityChangeUseCase
	itemUC   *ItemUseCase
	alertUC  *AlertUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	db, err := mysql.NewDB(&config.Config{
		Server:   config.ServerConfig{Mode: "test"},
		Database: config.DatabaseConfig{Driver: config.DriverSQLite, Path: ":memory:"},
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	f := &fixture{
		db:     db,
		items:  mysql.NewItemRepository(db),
		ledger: mysql.NewLedgerRepository(db),
		alerts: mysql.NewAlertRepository(db),
	}
	categories := mysql.NewCategoryRepository(db)
	apartments := mysql.NewApartmentRepository(db)
	txManager := mysql.NewTxManager(db)

	f.apartment, err = apartment.NewApartment("Casa Verde", "Via Roma 1", "")
	require.NoError(t, err)
	require.NoError(t, apartments.Create(ctx, f.apartment))

	f.category = &inventory.Category{Name: "Consumables", IsConsumable: true}
	require.NoError(t, categories.Create(ctx, f.category))

	f.quantity = NewApplyQuantityChangeUseCase(f.items, f.ledger, f.alerts, txManager)
	f.itemUC = NewItemUseCase(f.items, categories, f.ledger, f.alerts, apartments, f.quantity, txManager)
	f.alertUC = NewAlertUseCase(f.alerts, f.items, apartments, txManager)
	return f
}

// newItem 创建物品
func (f *fixture) newItem(t *testing.T, name string, quantity, minQuantity int) *ItemInfo {
	t.Helper()
	info, err := f.itemUC.Create(context.Background(), CreateItemRequest{
		ApartmentID: f.apartment.ID,
		CategoryID:  f.category.ID,
		Name:        name,
		Unit:        "rotoli",
		Quantity:    quantity,
		MinQuantity: minQuantity,
	})
	require.NoError(t, err)
	return info
}

// openAlerts 物品的未处理告警数
func (f *fixture) openAlerts(t *testing.T, itemID uint) int64 {
	t.Helper()
	count, err := f.alerts.CountOpenByItem(context.Background(), itemID)
	require.NoError(t, err)
	return count
}

// history 物品台账条数
func (f *fixture) history(t *testing.T, itemID uint) []*inventory.QuantityChange {
	t.Helper()
	records, err := f.ledger.ListByItem(context.Background(), itemID)
	require.NoError(t, err)
	return records
}
