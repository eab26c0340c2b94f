package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shopstream/backend/internal/domain/catalog"
)

// CreateProductRequest is the command to create a catalog product
type CreateProductRequest struct {
	Name        string          `json:"name" binding:"required,max=200"`
	Categories  []string        `json:"categories"`
	Description string          `json:"description"`
	ImageFile   string          `json:"imageFile"`
	Price       decimal.Decimal `json:"price" binding:"required"`
}

// UpdateProductRequest is the command to update a catalog product
type UpdateProductRequest struct {
	Name        string          `json:"name" binding:"required,max=200"`
	Categories  []string        `json:"categories"`
	Description string          `json:"description"`
	ImageFile   string          `json:"imageFile"`
	Price       decimal.Decimal `json:"price" binding:"required"`
}

// ProductResponse is the read model returned by catalog queries
type ProductResponse struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Categories  []string        `json:"categories"`
	Description string          `json:"description,omitempty"`
	ImageFile   string          `json:"imageFile,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Version     int             `json:"version"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// ToProductResponse converts a product aggregate to its response DTO
func ToProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Categories:  p.Categories,
		Description: p.Description,
		ImageFile:   p.ImageFile,
		Price:       p.Price,
		Version:     p.Version,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func toProductResponses(products []catalog.Product) []ProductResponse {
	responses := make([]ProductResponse, 0, len(products))
	for i := range products {
		responses = append(responses, ToProductResponse(&products[i]))
	}
	return responses
}
