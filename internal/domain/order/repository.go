package order

import (
	"context"

	"github.com/google/uuid"

	"github.com/shopstream/backend/internal/domain/shared"
)

// Repository persists order aggregates
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	FindAll(ctx context.Context, filter shared.Filter) (shared.Paginated[Order], error)
	FindByName(ctx context.Context, name OrderName) ([]Order, error)
	FindByCustomer(ctx context.Context, customerID uuid.UUID) ([]Order, error)
	Save(ctx context.Context, o *Order) error
	Update(ctx context.Context, o *Order) error
	Delete(ctx context.Context, id uuid.UUID) error
}
