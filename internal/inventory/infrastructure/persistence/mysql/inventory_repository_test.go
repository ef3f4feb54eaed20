package mysql

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wyfcoding/atlasvision/internal/inventory/domain"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&ProductModel{}, &PriceHistoryModel{}, &AlertModel{}))
	return db
}

func TestInventoryRepository_SaveAndGetProduct(t *testing.T) {
	repo := NewInventoryRepository(setupTestDB(t))
	ctx := context.Background()

	now := time.Now()
	product := &domain.Product{
		ShopID:     "shop-1",
		Name:       "Sprite Zero",
		Category:   "beverage",
		LastPrice:  decimal.RequireFromString("2.49"),
		SeenCount:  1,
		LastScanID: "scan-1",
		LastSeenAt: &now,
	}
	require.NoError(t, repo.SaveProduct(ctx, product))
	assert.NotZero(t, product.ID, "create should write back the generated ID")

	got, err := repo.GetProductByShopAndName(ctx, "shop-1", "Sprite Zero")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, product.ID, got.ID)
	assert.Equal(t, "beverage", got.Category)
	assert.True(t, got.LastPrice.Equal(decimal.RequireFromString("2.49")))
	assert.Equal(t, 1, got.SeenCount)
	assert.Equal(t, "scan-1", got.LastScanID)

	byID, err := repo.GetProduct(ctx, product.ID)
	require.NoError(t, err)
	require.NotNil(t, byID)
	assert.Equal(t, "Sprite Zero", byID.Name)
}

func TestInventoryRepository_GetProductMisses(t *testing.T) {
	repo := NewInventoryRepository(setupTestDB(t))
	ctx := context.Background()

	got, err := repo.GetProductByShopAndName(ctx, "shop-1", "Unknown")
	require.NoError(t, err)
	assert.Nil(t, got)

	byID, err := repo.GetProduct(ctx, 424242)
	require.NoError(t, err)
	assert.Nil(t, byID)
}

func TestInventoryRepository_SaveProductUpdates(t *testing.T) {
	repo := NewInventoryRepository(setupTestDB(t))
	ctx := context.Background()

	product := &domain.Product{
		ShopID:    "shop-1",
		Name:      "Oreo Original",
		LastPrice: decimal.RequireFromString("1.99"),
		SeenCount: 1,
	}
	require.NoError(t, repo.SaveProduct(ctx, product))

	product.SeenCount = 2
	product.Category = "snack"
	product.LastPrice = decimal.RequireFromString("2.29")
	require.NoError(t, repo.SaveProduct(ctx, product))

	got, err := repo.GetProductByShopAndName(ctx, "shop-1", "Oreo Original")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 2, got.SeenCount)
	assert.Equal(t, "snack", got.Category)
	assert.True(t, got.LastPrice.Equal(decimal.RequireFromString("2.29")))
}

func TestInventoryRepository_ListProducts(t *testing.T) {
	repo := NewInventoryRepository(setupTestDB(t))
	ctx := context.Background()

	seed := []*domain.Product{
		{ShopID: "shop-1", Name: "Sprite Zero", Category: "beverage"},
		{ShopID: "shop-1", Name: "Coca Cola", Category: "beverage"},
		{ShopID: "shop-1", Name: "Oreo Original", Category: "snack"},
		{ShopID: "shop-2", Name: "Sprite Zero", Category: "beverage"},
	}
	for _, p := range seed {
		require.NoError(t, repo.SaveProduct(ctx, p))
	}

	all, total, err := repo.ListProducts(ctx, "shop-1", "", 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Len(t, all, 3)

	beverages, total, err := repo.ListProducts(ctx, "shop-1", "beverage", 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, beverages, 2)

	page, total, err := repo.ListProducts(ctx, "shop-1", "", 0, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Len(t, page, 2)

	names := map[string]bool{}
	byName, err := repo.ListAllProducts(ctx, "shop-1")
	require.NoError(t, err)
	require.Len(t, byName, 3)
	for _, p := range byName {
		names[p.Name] = true
	}
	assert.True(t, names["Sprite Zero"] && names["Coca Cola"] && names["Oreo Original"])
	// name ASC
	assert.Equal(t, "Coca Cola", byName[0].Name)
}

func TestInventoryRepository_PriceHistory(t *testing.T) {
	repo := NewInventoryRepository(setupTestDB(t))
	ctx := context.Background()

	product := &domain.Product{ShopID: "shop-1", Name: "Sprite Zero"}
	require.NoError(t, repo.SaveProduct(ctx, product))

	base := time.Now().Add(-time.Hour)
	for i, price := range []string{"2.49", "2.59", "2.39"} {
		require.NoError(t, repo.AddPriceHistory(ctx, &domain.PriceHistory{
			ProductID:  product.ID,
			ShopID:     "shop-1",
			Price:      decimal.RequireFromString(price),
			ScanID:     "scan-1",
			RecordedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}

	histories, err := repo.ListPriceHistory(ctx, product.ID, 2)
	require.NoError(t, err)
	require.Len(t, histories, 2)
	// recorded_at DESC,最近的一条在前
	assert.True(t, histories[0].Price.Equal(decimal.RequireFromString("2.39")))
	assert.True(t, histories[1].Price.Equal(decimal.RequireFromString("2.59")))
}

func TestInventoryRepository_Alerts(t *testing.T) {
	repo := NewInventoryRepository(setupTestDB(t))
	ctx := context.Background()

	alert := &domain.Alert{
		ShopID:        "shop-1",
		ProductID:     7,
		AlertType:     domain.AlertTypePriceChange,
		Severity:      domain.AlertSeverityWarning,
		Message:       `price of "Sprite Zero" changed 20% (2.49 -> 2.99)`,
		PrevPrice:     decimal.RequireFromString("2.49"),
		NewPrice:      decimal.RequireFromString("2.99"),
		ChangePercent: decimal.RequireFromString("20.08"),
		ScanID:        "scan-9",
	}
	require.NoError(t, repo.SaveAlert(ctx, alert))
	assert.NotZero(t, alert.ID)

	require.NoError(t, repo.SaveAlert(ctx, &domain.Alert{
		ShopID:    "shop-2",
		ProductID: 8,
		AlertType: domain.AlertTypePriceChange,
		Severity:  domain.AlertSeverityWarning,
		Message:   "other shop",
	}))

	alerts, total, err := repo.ListAlerts(ctx, "shop-1", 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, alerts, 1)
	assert.Equal(t, domain.AlertTypePriceChange, alerts[0].AlertType)
	assert.Equal(t, domain.AlertSeverityWarning, alerts[0].Severity)
	assert.EqualValues(t, 7, alerts[0].ProductID)
	assert.True(t, alerts[0].NewPrice.Equal(decimal.RequireFromString("2.99")))
}
