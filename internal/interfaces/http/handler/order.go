package handler

import (
	"github.com/gin-gonic/gin"

	orderapp "github.com/shopstream/backend/internal/application/order"
	"github.com/shopstream/backend/internal/interfaces/http/dto"
)

// OrderHandler exposes order commands and queries
type OrderHandler struct {
	orders *orderapp.OrderService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orders *orderapp.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

// Register mounts the order routes on the given router group
func (h *OrderHandler) Register(r *gin.RouterGroup) {
	orders := r.Group("/orders")
	{
		orders.POST("", h.Create)
		orders.GET("", h.List)
		orders.GET("/:id", h.GetByID)
		orders.PUT("/:id", h.Update)
		orders.DELETE("/:id", h.Delete)
		orders.GET("/by-name/:name", h.GetByName)
	}
	r.GET("/customers/:customerId/orders", h.GetByCustomer)
}

// Create handles POST /orders
func (h *OrderHandler) Create(c *gin.Context) {
	var req orderapp.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, err)
		return
	}

	resp, err := h.orders.Create(c.Request.Context(), req)
	if err != nil {
		dto.Error(c, err)
		return
	}
	dto.Created(c, resp)
}

// List handles GET /orders
func (h *OrderHandler) List(c *gin.Context) {
	page, err := h.orders.List(c.Request.Context(), parseFilter(c))
	if err != nil {
		dto.Error(c, err)
		return
	}
	dto.OK(c, page)
}

// GetByID handles GET /orders/:id
func (h *OrderHandler) GetByID(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		dto.BadRequest(c, err)
		return
	}

	resp, err := h.orders.GetByID(c.Request.Context(), id)
	if err != nil {
		dto.Error(c, err)
		return
	}
	dto.OK(c, resp)
}

// Update handles PUT /orders/:id
func (h *OrderHandler) Update(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		dto.BadRequest(c, err)
		return
	}

	var req orderapp.UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, err)
		return
	}

	resp, err := h.orders.Update(c.Request.Context(), id, req)
	if err != nil {
		dto.Error(c, err)
		return
	}
	dto.OK(c, resp)
}

// Delete handles DELETE /orders/:id
func (h *OrderHandler) Delete(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		dto.BadRequest(c, err)
		return
	}

	if err := h.orders.Delete(c.Request.Context(), id); err != nil {
		dto.Error(c, err)
		return
	}
	dto.NoContent(c)
}

// GetByName handles GET /orders/by-name/:name
func (h *OrderHandler) GetByName(c *gin.Context) {
	orders, err := h.orders.GetByName(c.Request.Context(), c.Param("name"))
	if err != nil {
		dto.Error(c, err)
		return
	}
	dto.OK(c, orders)
}

// GetByCustomer handles GET /customers/:customerId/orders
func (h *OrderHandler) GetByCustomer(c *gin.Context) {
	customerID, err := parseID(c, "customerId")
	if err != nil {
		dto.BadRequest(c, err)
		return
	}

	orders, err := h.orders.GetByCustomer(c.Request.Context(), customerID)
	if err != nil {
		dto.Error(c, err)
		return
	}
	dto.OK(c, orders)
}
