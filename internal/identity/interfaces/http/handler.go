package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/wyfcoding/atlasvision/internal/identity/application"
	"github.com/wyfcoding/atlasvision/pkg/logging"
	"github.com/wyfcoding/atlasvision/pkg/response"
)

// IdentityHandler 负责处理门店与用户相关的 HTTP 请求
type IdentityHandler struct {
	cmd   *application.IdentityCommandService
	query *application.IdentityQueryService
}

// NewIdentityHandler 创建 HTTP 处理器
func NewIdentityHandler(cmd *application.IdentityCommandService, query *application.IdentityQueryService) *IdentityHandler {
	return &IdentityHandler{cmd: cmd, query: query}
}

// RegisterRoutes 注册路由
func (h *IdentityHandler) RegisterRoutes(router *gin.RouterGroup) {
	shops := router.Group("/api/v1/shops")
	{
		shops.POST("", h.CreateShop)
		shops.GET("", h.ListShops)
		shops.GET("/:id", h.GetShop)
	}
	users := router.Group("/api/v1/users")
	{
		users.POST("", h.CreateUser)
		users.GET("", h.ListUsers)
		users.GET("/:id", h.GetUser)
	}
}

// CreateShopRequest 创建门店请求
type CreateShopRequest struct {
	Name     string `json:"name" binding:"required"`
	Address  string `json:"address"`
	Timezone string `json:"timezone"`
}

// CreateUserRequest 创建用户请求
type CreateUserRequest struct {
	ShopID string `json:"shop_id" binding:"required"`
	Name   string `json:"name"`
	Email  string `json:"email" binding:"required,email"`
}

// CreateShop 创建门店
func (h *IdentityHandler) CreateShop(c *gin.Context) {
	var req CreateShopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
		return
	}

	dto, err := h.cmd.CreateShop(c.Request.Context(), application.CreateShopCommand{
		Name:     req.Name,
		Address:  req.Address,
		Timezone: req.Timezone,
	})
	if err != nil {
		logging.Error(c.Request.Context(), "Failed to create shop", "error", err)
		response.ErrorWithStatus(c, http.StatusInternalServerError, err.Error(), "")
		return
	}

	response.SuccessWithStatus(c, http.StatusCreated, dto)
}

// GetShop 查询门店详情
func (h *IdentityHandler) GetShop(c *gin.Context) {
	id := c.Param("id")

	dto, err := h.query.GetShop(c.Request.Context(), id)
	if err != nil {
		logging.Error(c.Request.Context(), "Failed to get shop", "shop_id", id, "error", err)
		response.ErrorWithStatus(c, http.StatusInternalServerError, err.Error(), "")
		return
	}
	if dto == nil {
		response.ErrorWithStatus(c, http.StatusNotFound, "shop not found", "")
		return
	}

	response.Success(c, dto)
}

// ListShops 分页查询门店
func (h *IdentityHandler) ListShops(c *gin.Context) {
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

	list, err := h.query.ListShops(c.Request.Context(), page, size)
	if err != nil {
		logging.Error(c.Request.Context(), "Failed to list shops", "error", err)
		response.ErrorWithStatus(c, http.StatusInternalServerError, err.Error(), "")
		return
	}

	response.Success(c, list)
}

// CreateUser 创建用户
func (h *IdentityHandler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
		return
	}

	dto, err := h.cmd.CreateUser(c.Request.Context(), application.CreateUserCommand{
		ShopID: req.ShopID,
		Name:   req.Name,
		Email:  req.Email,
	})
	if err != nil {
		logging.Error(c.Request.Context(), "Failed to create user", "error", err)
		response.ErrorWithStatus(c, http.StatusInternalServerError, err.Error(), "")
		return
	}

	response.SuccessWithStatus(c, http.StatusCreated, dto)
}

// ListUsers 按门店分页查询用户
func (h *IdentityHandler) ListUsers(c *gin.Context) {
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

	list, err := h.query.ListUsers(c.Request.Context(), shopID, page, size)
	if err != nil {
		logging.Error(c.Request.Context(), "Failed to list users", "shop_id", shopID, "error", err)
		response.ErrorWithStatus(c, http.StatusInternalServerError, err.Error(), "")
		return
	}

	response.Success(c, list)
}

// GetUser 查询用户详情
func (h *IdentityHandler) GetUser(c *gin.Context) {
	id := c.Param("id")

	dto, err := h.query.GetUser(c.Request.Context(), id)
	if err != nil {
		logging.Error(c.Request.Context(), "Failed to get user", "user_id", id, "error", err)
		response.ErrorWithStatus(c, http.StatusInternalServerError, err.Error(), "")
		return
	}
	if dto == nil {
		response.ErrorWithStatus(c, http.StatusNotFound, "user not found", "")
		return
	}

	response.Success(c, dto)
}
