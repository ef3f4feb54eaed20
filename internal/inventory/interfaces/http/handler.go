package http

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/wyfcoding/atlasvision/internal/inventory/application"
	"github.com/wyfcoding/atlasvision/pkg/logging"
	"github.com/wyfcoding/atlasvision/pkg/response"
)

// InventoryHandler 负责处理与库存相关的 HTTP 请求
type InventoryHandler struct {
	query  *application.InventoryQueryService
	report *application.InventoryReportService
}

// NewInventoryHandler 创建 HTTP 处理器
func NewInventoryHandler(query *application.InventoryQueryService, report *application.InventoryReportService) *InventoryHandler {
	return &InventoryHandler{query: query, report: report}
}

// RegisterRoutes 注册路由
func (h *InventoryHandler) RegisterRoutes(router *gin.RouterGroup) {
	products := router.Group("/api/v1/products")
	{
		products.GET("", h.ListProducts)
		products.GET("/:id", h.GetProduct)
		products.GET("/:id/history", h.ListPriceHistory)
	}
	router.GET("/api/v1/alerts", h.ListAlerts)
	router.GET("/api/v1/reports/inventory", h.ExportInventory)
}

// ListProducts 按店铺分页查询商品
func (h *InventoryHandler) ListProducts(c *gin.Context) {
	shopID := c.Query("shop_id")
	if shopID == "" {
		response.ErrorWithStatus(c, http.StatusBadRequest, "shop_id is required", "")
		return
	}
	category := c.Query("category")

	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, "invalid page", "")
		return
	}
	size, err := strconv.Atoi(c.DefaultQuery("size", "20"))
	if err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, "invalid size", "")
		return
	}

	list, err := h.query.ListProducts(c.Request.Context(), shopID, category, page, size)
	if err != nil {
		logging.Error(c.Request.Context(), "Failed to list products", "shop_id", shopID, "error", err)
		response.ErrorWithStatus(c, http.StatusInternalServerError, err.Error(), "")
		return
	}

	response.Success(c, list)
}

// GetProduct 查询商品详情
func (h *InventoryHandler) GetProduct(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, "invalid product id", "")
		return
	}

	dto, err := h.query.GetProduct(c.Request.Context(), uint(id))
	if err != nil {
		logging.Error(c.Request.Context(), "Failed to get product", "product_id", id, "error", err)
		response.ErrorWithStatus(c, http.StatusInternalServerError, err.Error(), "")
		return
	}
	if dto == nil {
		response.ErrorWithStatus(c, http.StatusNotFound, "product not found", "")
		return
	}

	response.Success(c, dto)
}

// ListPriceHistory 查询商品价格历史
func (h *InventoryHandler) ListPriceHistory(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, "invalid product id", "")
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, "invalid limit", "")
		return
	}

	items, err := h.query.ListPriceHistory(c.Request.Context(), uint(id), limit)
	if err != nil {
		logging.Error(c.Request.Context(), "Failed to list price history", "product_id", id, "error", err)
		response.ErrorWithStatus(c, http.StatusInternalServerError, err.Error(), "")
		return
	}

	response.Success(c, items)
}

// ListAlerts 按店铺分页查询告警
func (h *InventoryHandler) ListAlerts(c *gin.Context) {
	shopID := c.Query("shop_id")
	if shopID == "" {
		response.ErrorWithStatus(c, http.StatusBadRequest, "shop_id is required", "")
		return
	}

	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, "invalid page", "")
		return
	}
	size, err := strconv.Atoi(c.DefaultQuery("size", "20"))
	if err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, "invalid size", "")
		return
	}

	list, err := h.query.ListAlerts(c.Request.Context(), shopID, page, size)
	if err != nil {
		logging.Error(c.Request.Context(), "Failed to list alerts", "shop_id", shopID, "error", err)
		response.ErrorWithStatus(c, http.StatusInternalServerError, err.Error(), "")
		return
	}

	response.Success(c, list)
}

// ExportInventory 导出店铺库存报表
func (h *InventoryHandler) ExportInventory(c *gin.Context) {
	shopID := c.Query("shop_id")
	if shopID == "" {
		response.ErrorWithStatus(c, http.StatusBadRequest, "shop_id is required", "")
		return
	}

	data, err := h.report.ExportInventoryXLSX(c.Request.Context(), shopID)
	if err != nil {
		logging.Error(c.Request.Context(), "Failed to export inventory report", "shop_id", shopID, "error", err)
		response.ErrorWithStatus(c, http.StatusInternalServerError, err.Error(), "")
		return
	}

	filename := fmt.Sprintf("inventory-%s.xlsx", shopID)
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
