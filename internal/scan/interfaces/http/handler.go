package http

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/wyfcoding/atlasvision/internal/scan/application"
	"github.com/wyfcoding/atlasvision/pkg/logging"
	"github.com/wyfcoding/atlasvision/pkg/response"
)

// ScanHandler 负责处理与扫描任务相关的 HTTP 请求
type ScanHandler struct {
	cmd   *application.ScanCommandService
	query *application.ScanQueryService
}

// NewScanHandler 创建 HTTP 处理器
func NewScanHandler(cmd *application.ScanCommandService, query *application.ScanQueryService) *ScanHandler {
	return &ScanHandler{cmd: cmd, query: query}
}

// RegisterRoutes 注册路由
func (h *ScanHandler) RegisterRoutes(router *gin.RouterGroup) {
	api := router.Group("/api/v1/scans")
	{
		api.POST("", h.SubmitScan)
		api.GET("/:id", h.GetScan)
		api.GET("", h.ListScans)
	}
}

// SubmitScan 受理货架图片上传,异步处理,返回 202
func (h *ScanHandler) SubmitScan(c *gin.Context) {
	shopID := c.PostForm("shop_id")
	if shopID == "" {
		response.ErrorWithStatus(c, http.StatusBadRequest, "shop_id is required", "")
		return
	}
	userID := c.PostForm("user_id")

	fileHeader, err := c.FormFile("image")
	if err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, "image file is required", "")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, "failed to open uploaded image", "")
		return
	}
	defer func() { _ = file.Close() }()

	image, err := io.ReadAll(file)
	if err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, "failed to read uploaded image", "")
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	result, err := h.cmd.SubmitScan(c.Request.Context(), application.SubmitScanCommand{
		ShopID:      shopID,
		UserID:      userID,
		Filename:    fileHeader.Filename,
		ContentType: contentType,
		Image:       image,
	})
	if err != nil {
		logging.Error(c.Request.Context(), "Failed to submit scan", "shop_id", shopID, "error", err)
		response.ErrorWithStatus(c, http.StatusInternalServerError, err.Error(), "")
		return
	}

	response.SuccessWithStatus(c, http.StatusAccepted, result)
}

// GetScan 查询扫描任务详情
func (h *ScanHandler) GetScan(c *gin.Context) {
	id := c.Param("id")

	dto, err := h.query.GetScan(c.Request.Context(), id)
	if err != nil {
		logging.Error(c.Request.Context(), "Failed to get scan", "scan_id", id, "error", err)
		response.ErrorWithStatus(c, http.StatusInternalServerError, err.Error(), "")
		return
	}
	if dto == nil {
		response.ErrorWithStatus(c, http.StatusNotFound, "scan not found", "")
		return
	}

	response.Success(c, dto)
}

// ListScans 按店铺分页查询扫描任务
func (h *ScanHandler) ListScans(c *gin.Context) {
	shopID := c.Query("shop_id")
	if shopID == "" {
		response.ErrorWithStatus(c, http.StatusBadRequest, "shop_id is required", "")
		return
	}
	status := c.Query("status")

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

	list, err := h.query.ListScans(c.Request.Context(), shopID, status, page, size)
	if err != nil {
		logging.Error(c.Request.Context(), "Failed to list scans", "shop_id", shopID, "error", err)
		response.ErrorWithStatus(c, http.StatusInternalServerError, err.Error(), "")
		return
	}

	response.Success(c, list)
}
