package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/shopstream/backend/internal/domain/basket"
	"github.com/shopstream/backend/internal/domain/shared"
	"github.com/shopstream/backend/internal/infrastructure/persistence/models"
)

// GormCartStore implements the durable CartStore using GORM.
// Carts are read and written as complete documents keyed by username.
type GormCartStore struct {
	db *gorm.DB
}

// NewGormCartStore creates a new GormCartStore
func NewGormCartStore(db *gorm.DB) *GormCartStore {
	return &GormCartStore{db: db}
}

// Get returns the cart for the username
func (s *GormCartStore) Get(ctx context.Context, username string) (*basket.ShoppingCart, error) {
	var model models.CartModel
	if err := s.db.WithContext(ctx).First(&model, "username = ?", username).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Store saves the cart, replacing any existing cart for the same username
func (s *GormCartStore) Store(ctx context.Context, cart *basket.ShoppingCart) (*basket.ShoppingCart, error) {
	model := models.CartModelFromDomain(cart)
	if err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "username"}},
			DoUpdates: clause.AssignmentColumns([]string{"items", "updated_at"}),
		}).
		Create(model).Error; err != nil {
		return nil, err
	}
	return cart, nil
}

// Delete removes the cart for the username.
// Deleting a username without a cart is a no-op.
func (s *GormCartStore) Delete(ctx context.Context, username string) error {
	return s.db.WithContext(ctx).Delete(&models.CartModel{}, "username = ?", username).Error
}

// Ensure GormCartStore implements CartStore
var _ basket.CartStore = (*GormCartStore)(nil)
