package catalog

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/shopstream/backend/internal/domain/shared"
)

// Product represents a product in the catalog.
// It is the aggregate root for catalog operations.
type Product struct {
	shared.BaseAggregateRoot
	Name        string          `gorm:"type:varchar(200);not null;index"`
	Categories  []string        `gorm:"type:jsonb;serializer:json"`
	Description string          `gorm:"type:text"`
	ImageFile   string          `gorm:"type:varchar(500)"`
	Price       decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new catalog product
func NewProduct(name string, categories []string, description, imageFile string, price decimal.Decimal) (*Product, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	if err := validatePrice(price); err != nil {
		return nil, err
	}

	return &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Categories:        categories,
		Description:       description,
		ImageFile:         imageFile,
		Price:             price,
	}, nil
}

// Update replaces the product's catalog fields
func (p *Product) Update(name string, categories []string, description, imageFile string, price decimal.Decimal) error {
	if err := validateName(name); err != nil {
		return err
	}
	if err := validatePrice(price); err != nil {
		return err
	}

	p.Name = name
	p.Categories = categories
	p.Description = description
	p.ImageFile = imageFile
	p.Price = price
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

func validateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot exceed 200 characters")
	}
	return nil
}

func validatePrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Product price cannot be negative")
	}
	return nil
}
