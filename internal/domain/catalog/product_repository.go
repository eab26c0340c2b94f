package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/shopstream/backend/internal/domain/shared"
)

// ProductRepository persists catalog products
type ProductRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	FindAll(ctx context.Context, filter shared.Filter) (shared.Paginated[Product], error)
	FindByCategory(ctx context.Context, category string) ([]Product, error)
	Save(ctx context.Context, product *Product) error
	Update(ctx context.Context, product *Product) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ImageStorage stores product image files.
// Object storage itself is external; this is only the contract.
type ImageStorage interface {
	// Put stores the image bytes and returns the stored file name
	Put(ctx context.Context, fileName string, data []byte) (string, error)
	// Get returns the image bytes for a stored file name
	Get(ctx context.Context, fileName string) ([]byte, error)
}
