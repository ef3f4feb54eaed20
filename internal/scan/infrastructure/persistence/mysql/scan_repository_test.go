package mysql

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wyfcoding/atlasvision/internal/scan/domain"
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
	// 内存库只允许单连接,避免连接池各拿到一个空库
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&ScanModel{}))
	return db
}

func TestScanRepository_SaveAndGet(t *testing.T) {
	repo := NewScanRepository(setupTestDB(t))
	ctx := context.Background()

	scan := domain.NewScan("scan-1", "shop-1", "user-1", "scans/scan-1.jpg", "image/jpeg")
	require.NoError(t, repo.Save(ctx, scan))

	got, err := repo.Get(ctx, "scan-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "shop-1", got.ShopID)
	assert.Equal(t, "user-1", got.UserID)
	assert.Equal(t, "scans/scan-1.jpg", got.ImageKey)
	assert.Equal(t, "image/jpeg", got.ContentType)
	assert.Equal(t, domain.ScanStatusPending, got.Status)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestScanRepository_SaveUpdatesExisting(t *testing.T) {
	repo := NewScanRepository(setupTestDB(t))
	ctx := context.Background()

	scan := domain.NewScan("scan-1", "shop-1", "", "scans/scan-1.jpg", "image/jpeg")
	require.NoError(t, repo.Save(ctx, scan))

	created, err := repo.Get(ctx, "scan-1")
	require.NoError(t, err)

	// 第二次保存走更新路径,写入处理结果
	now := time.Now()
	scan.MarkProcessing()
	scan.OCRRaw = `{"text":"Sprite Zero\n$2.49"}`
	scan.ProductName = "Sprite Zero"
	scan.Category = "beverage"
	scan.Price = decimal.RequireFromString("2.49")
	scan.QuantityHint = 4
	scan.MarkDone(now)
	require.NoError(t, repo.Save(ctx, scan))

	got, err := repo.Get(ctx, "scan-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, domain.ScanStatusDone, got.Status)
	assert.Equal(t, "Sprite Zero", got.ProductName)
	assert.Equal(t, "beverage", got.Category)
	assert.True(t, got.Price.Equal(decimal.RequireFromString("2.49")))
	assert.Equal(t, 4, got.QuantityHint)
	require.NotNil(t, got.ProcessedAt)
	// 更新不改写创建时间
	assert.Equal(t, created.CreatedAt.Unix(), got.CreatedAt.Unix())
}

func TestScanRepository_GetMissing(t *testing.T) {
	repo := NewScanRepository(setupTestDB(t))

	got, err := repo.Get(context.Background(), "no-such-scan")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestScanRepository_ListByShop(t *testing.T) {
	repo := NewScanRepository(setupTestDB(t))
	ctx := context.Background()

	for _, s := range []*domain.Scan{
		domain.NewScan("scan-1", "shop-1", "", "scans/scan-1.jpg", "image/jpeg"),
		domain.NewScan("scan-2", "shop-1", "", "scans/scan-2.jpg", "image/jpeg"),
		domain.NewScan("scan-3", "shop-1", "", "scans/scan-3.jpg", "image/jpeg"),
		domain.NewScan("scan-4", "shop-2", "", "scans/scan-4.jpg", "image/jpeg"),
	} {
		require.NoError(t, repo.Save(ctx, s))
	}

	done := domain.NewScan("scan-5", "shop-1", "", "scans/scan-5.jpg", "image/jpeg")
	done.MarkDone(time.Now())
	require.NoError(t, repo.Save(ctx, done))

	scans, total, err := repo.ListByShop(ctx, "shop-1", "", 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 4, total)
	assert.Len(t, scans, 4)

	pending, total, err := repo.ListByShop(ctx, "shop-1", domain.ScanStatusPending, 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Len(t, pending, 3)

	// 分页只影响条目,不影响总数
	page, total, err := repo.ListByShop(ctx, "shop-1", "", 0, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 4, total)
	assert.Len(t, page, 2)

	none, total, err := repo.ListByShop(ctx, "shop-9", "", 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 0, total)
	assert.Empty(t, none)
}
