package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	catalogapp "github.com/shopstream/backend/internal/application/catalog"
	"github.com/shopstream/backend/internal/interfaces/http/dto"
)

// maxImageBytes caps product image uploads at 5MB
const maxImageBytes = 5 << 20

// CatalogHandler exposes product commands and queries
type CatalogHandler struct {
	products *catalogapp.ProductService
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(products *catalogapp.ProductService) *CatalogHandler {
	return &CatalogHandler{products: products}
}

// Register mounts the catalog routes on the given router group
func (h *CatalogHandler) Register(r *gin.RouterGroup) {
	products := r.Group("/products")
	{
		products.POST("", h.Create)
		products.GET("", h.List)
		products.GET("/:id", h.GetByID)
		products.PUT("/:id", h.Update)
		products.DELETE("/:id", h.Delete)
		products.GET("/category/:category", h.GetByCategory)
		products.POST("/import", h.Import)
		products.POST("/:id/image", h.UploadImage)
		products.GET("/:id/image", h.GetImage)
	}
}

// Create handles POST /products
func (h *CatalogHandler) Create(c *gin.Context) {
	var req catalogapp.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, err)
		return
	}

	resp, err := h.products.Create(c.Request.Context(), req)
	if err != nil {
		dto.Error(c, err)
		return
	}
	dto.Created(c, resp)
}

// List handles GET /products
func (h *CatalogHandler) List(c *gin.Context) {
	page, err := h.products.List(c.Request.Context(), parseFilter(c))
	if err != nil {
		dto.Error(c, err)
		return
	}
	dto.OK(c, page)
}

// GetByID handles GET /products/:id
func (h *CatalogHandler) GetByID(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		dto.BadRequest(c, err)
		return
	}

	resp, err := h.products.GetByID(c.Request.Context(), id)
	if err != nil {
		dto.Error(c, err)
		return
	}
	dto.OK(c, resp)
}

// Update handles PUT /products/:id
func (h *CatalogHandler) Update(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		dto.BadRequest(c, err)
		return
	}

	var req catalogapp.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, err)
		return
	}

	resp, err := h.products.Update(c.Request.Context(), id, req)
	if err != nil {
		dto.Error(c, err)
		return
	}
	dto.OK(c, resp)
}

// Delete handles DELETE /products/:id
func (h *CatalogHandler) Delete(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		dto.BadRequest(c, err)
		return
	}

	if err := h.products.Delete(c.Request.Context(), id); err != nil {
		dto.Error(c, err)
		return
	}
	dto.NoContent(c)
}

// GetByCategory handles GET /products/category/:category
func (h *CatalogHandler) GetByCategory(c *gin.Context) {
	products, err := h.products.GetByCategory(c.Request.Context(), c.Param("category"))
	if err != nil {
		dto.Error(c, err)
		return
	}
	dto.OK(c, products)
}

// Import handles POST /products/import as a multipart form with a
// "file" CSV field. A file with row errors imports nothing and returns
// the error report with a 400.
func (h *CatalogHandler) Import(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		dto.BadRequest(c, err)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		dto.BadRequest(c, err)
		return
	}
	defer file.Close()

	result, err := h.products.ImportProducts(c.Request.Context(), file)
	if err != nil {
		dto.Error(c, err)
		return
	}
	if len(result.Errors) > 0 {
		c.JSON(http.StatusBadRequest, dto.Response{Success: false, Data: result,
			Error: &dto.ErrorBody{Code: "IMPORT_REJECTED", Message: "The import file contains invalid rows"}})
		return
	}
	dto.OK(c, result)
}

// UploadImage handles POST /products/:id/image as a multipart form with
// an "image" file field
func (h *CatalogHandler) UploadImage(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		dto.BadRequest(c, err)
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		dto.BadRequest(c, err)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		dto.BadRequest(c, err)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxImageBytes+1))
	if err != nil {
		dto.Error(c, err)
		return
	}
	if len(data) > maxImageBytes {
		c.JSON(http.StatusRequestEntityTooLarge, dto.Response{
			Success: false,
			Error:   &dto.ErrorBody{Code: "IMAGE_TOO_LARGE", Message: "Image exceeds the 5MB limit"},
		})
		return
	}

	resp, err := h.products.UploadImage(c.Request.Context(), id, fileHeader.Filename, data)
	if err != nil {
		dto.Error(c, err)
		return
	}
	dto.OK(c, resp)
}

// GetImage handles GET /products/:id/image
func (h *CatalogHandler) GetImage(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		dto.BadRequest(c, err)
		return
	}

	data, err := h.products.GetImage(c.Request.Context(), id)
	if err != nil {
		dto.Error(c, err)
		return
	}

	c.Data(http.StatusOK, http.DetectContentType(data), data)
}
