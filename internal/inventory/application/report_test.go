package application

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wyfcoding/atlasvision/internal/inventory/domain"
	"github.com/xuri/excelize/v2"
)

func TestExportInventoryXLSX(t *testing.T) {
	repo := newTestRepo(t)
	svc := NewInventoryReportService(repo)
	ctx := context.Background()

	seen := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	require.NoError(t, repo.SaveProduct(ctx, &domain.Product{
		ShopID:     "shop-1",
		Name:       "Sprite Zero",
		Category:   "beverage",
		LastPrice:  decimal.RequireFromString("2.49"),
		SeenCount:  3,
		LastScanID: "scan-3",
		LastSeenAt: &seen,
	}))
	require.NoError(t, repo.SaveProduct(ctx, &domain.Product{
		ShopID:    "shop-1",
		Name:      "Oreo Original",
		Category:  "snack",
		SeenCount: 1,
	}))
	// 其他店铺的商品不应出现在报表里
	require.NoError(t, repo.SaveProduct(ctx, &domain.Product{
		ShopID:    "shop-2",
		Name:      "Cola",
		Category:  "beverage",
		SeenCount: 1,
	}))

	data, err := svc.ExportInventoryXLSX(ctx, "shop-1")
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Inventory")
	require.NoError(t, err)
	require.Len(t, rows, 3, "header plus one row per product")

	assert.Equal(t, "Product Name", rows[0][0])
	assert.Equal(t, "Category", rows[0][1])
	assert.Equal(t, "Last Price", rows[0][2])

	names := []string{rows[1][0], rows[2][0]}
	assert.ElementsMatch(t, []string{"Sprite Zero", "Oreo Original"}, names)
	for _, row := range rows[1:] {
		if row[0] == "Sprite Zero" {
			assert.Equal(t, "beverage", row[1])
			assert.Equal(t, "2.49", row[2])
			assert.Equal(t, "3", row[3])
			assert.Equal(t, "scan-3", row[5])
		}
	}
}

func TestExportInventoryXLSX_EmptyShop(t *testing.T) {
	repo := newTestRepo(t)
	svc := NewInventoryReportService(repo)

	data, err := svc.ExportInventoryXLSX(context.Background(), "shop-empty")
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Inventory")
	require.NoError(t, err)
	require.Len(t, rows, 1, "header only")
}
