package http

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wyfcoding/atlasvision/internal/scan/application"
	"github.com/wyfcoding/atlasvision/internal/scan/domain"
	scanmysql "github.com/wyfcoding/atlasvision/internal/scan/infrastructure/persistence/mysql"
	"github.com/wyfcoding/atlasvision/internal/scan/infrastructure/storage"
	"github.com/wyfcoding/atlasvision/pkg/metrics"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// --- Mocks ---

type fakePublisher struct {
	events []domain.ScanCreatedEvent
	err    error
}

func (p *fakePublisher) PublishScanCreated(ctx context.Context, event domain.ScanCreatedEvent) error {
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, event)
	return nil
}

// --- Tests ---

type testEnv struct {
	router    *gin.Engine
	repo      domain.ScanRepository
	store     domain.ImageStore
	publisher *fakePublisher
}

func newTestEnv(t *testing.T) *testEnv {
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&scanmysql.ScanModel{}))

	repo := scanmysql.NewScanRepository(db)
	store := storage.NewMemoryStore()
	publisher := &fakePublisher{}
	m := metrics.New("test")

	cmd := application.NewScanCommandService(repo, store, publisher, m)
	query := application.NewScanQueryService(repo)

	router := gin.New()
	NewScanHandler(cmd, query).RegisterRoutes(router.Group(""))

	return &testEnv{router: router, repo: repo, store: store, publisher: publisher}
}

func multipartScanRequest(t *testing.T, fields map[string]string, filename string, image []byte) *http.Request {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if filename != "" {
		fw, err := w.CreateFormFile("image", filename)
		require.NoError(t, err)
		_, err = fw.Write(image)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/scans", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func TestSubmitScan_Accepted(t *testing.T) {
	env := newTestEnv(t)

	req := multipartScanRequest(t, map[string]string{"shop_id": "shop-1", "user_id": "user-1"}, "shelf.jpg", []byte("jpeg-bytes"))
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusAccepted, rec.Code, rec.Body.String())

	var resp struct {
		Code string `json:"code"`
		Data struct {
			ScanID string `json:"scan_id"`
			Status string `json:"status"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "OK", resp.Code)
	assert.NotEmpty(t, resp.Data.ScanID)
	assert.Equal(t, "pending", resp.Data.Status)

	// 任务落库为 pending,图片入存储,事件已发布
	scan, err := env.repo.Get(context.Background(), resp.Data.ScanID)
	require.NoError(t, err)
	require.NotNil(t, scan)
	assert.Equal(t, domain.ScanStatusPending, scan.Status)
	assert.Equal(t, "shop-1", scan.ShopID)
	assert.Equal(t, "user-1", scan.UserID)

	image, err := env.store.Get(context.Background(), scan.ImageKey)
	require.NoError(t, err)
	assert.Equal(t, []byte("jpeg-bytes"), image)

	require.Len(t, env.publisher.events, 1)
	assert.Equal(t, resp.Data.ScanID, env.publisher.events[0].ScanID)
	assert.Equal(t, "shop-1", env.publisher.events[0].ShopID)
}

func TestSubmitScan_MissingShopID(t *testing.T) {
	env := newTestEnv(t)

	req := multipartScanRequest(t, map[string]string{}, "shelf.jpg", []byte("x"))
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "shop_id is required")
	assert.Empty(t, env.publisher.events)
}

func TestSubmitScan_MissingImage(t *testing.T) {
	env := newTestEnv(t)

	req := multipartScanRequest(t, map[string]string{"shop_id": "shop-1"}, "", nil)
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "image file is required")
}

func TestSubmitScan_PublishFailure(t *testing.T) {
	env := newTestEnv(t)
	env.publisher.err = assert.AnError

	req := multipartScanRequest(t, map[string]string{"shop_id": "shop-1"}, "shelf.jpg", []byte("x"))
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestGetScan(t *testing.T) {
	env := newTestEnv(t)

	scan := domain.NewScan("scan-1", "shop-1", "", "scans/scan-1.jpg", "image/jpeg")
	require.NoError(t, env.repo.Save(context.Background(), scan))

	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/scans/scan-1", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data struct {
			ScanID string `json:"scan_id"`
			ShopID string `json:"shop_id"`
			Status string `json:"status"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "scan-1", resp.Data.ScanID)
	assert.Equal(t, "shop-1", resp.Data.ShopID)
	assert.Equal(t, "pending", resp.Data.Status)
}

func TestGetScan_NotFound(t *testing.T) {
	env := newTestEnv(t)

	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/scans/nope", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "scan not found")
}

func TestListScans(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	for _, id := range []string{"scan-1", "scan-2"} {
		require.NoError(t, env.repo.Save(ctx, domain.NewScan(id, "shop-1", "", "scans/"+id+".jpg", "image/jpeg")))
	}
	require.NoError(t, env.repo.Save(ctx, domain.NewScan("scan-3", "shop-2", "", "scans/scan-3.jpg", "image/jpeg")))

	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/scans?shop_id=shop-1", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data struct {
			Total int64 `json:"total"`
			Items []struct {
				ScanID string `json:"scan_id"`
			} `json:"items"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.EqualValues(t, 2, resp.Data.Total)
	assert.Len(t, resp.Data.Items, 2)
}

func TestListScans_RequiresShopID(t *testing.T) {
	env := newTestEnv(t)

	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/scans", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "shop_id is required")
}
