package handler

import (
	"github.com/gin-gonic/gin"

	basketapp "github.com/shopstream/backend/internal/application/basket"
	"github.com/shopstream/backend/internal/interfaces/http/dto"
)

// BasketHandler exposes cart storage and checkout
type BasketHandler struct {
	baskets *basketapp.BasketService
}

// NewBasketHandler creates a new BasketHandler
func NewBasketHandler(baskets *basketapp.BasketService) *BasketHandler {
	return &BasketHandler{baskets: baskets}
}

// Register mounts the basket routes on the given router group
func (h *BasketHandler) Register(r *gin.RouterGroup) {
	basket := r.Group("/basket")
	{
		basket.GET("/:username", h.Get)
		basket.POST("", h.Store)
		basket.DELETE("/:username", h.Delete)
		basket.POST("/checkout", h.Checkout)
	}
}

// Get handles GET /basket/:username
func (h *BasketHandler) Get(c *gin.Context) {
	resp, err := h.baskets.Get(c.Request.Context(), c.Param("username"))
	if err != nil {
		dto.Error(c, err)
		return
	}
	dto.OK(c, resp)
}

// Store handles POST /basket
func (h *BasketHandler) Store(c *gin.Context) {
	var req basketapp.StoreCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, err)
		return
	}

	resp, err := h.baskets.Store(c.Request.Context(), req)
	if err != nil {
		dto.Error(c, err)
		return
	}
	dto.OK(c, resp)
}

// Delete handles DELETE /basket/:username
func (h *BasketHandler) Delete(c *gin.Context) {
	if err := h.baskets.Delete(c.Request.Context(), c.Param("username")); err != nil {
		dto.Error(c, err)
		return
	}
	dto.NoContent(c)
}

// Checkout handles POST /basket/checkout.
// A missing cart is a handled outcome, not an error: the response body
// reports isSuccess false with a 200 status.
func (h *BasketHandler) Checkout(c *gin.Context) {
	var req basketapp.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, err)
		return
	}

	result, err := h.baskets.Checkout(c.Request.Context(), req)
	if err != nil {
		dto.Error(c, err)
		return
	}
	dto.OK(c, result)
}
