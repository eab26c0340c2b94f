package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/shopstream/backend/internal/domain/order"
	"github.com/shopstream/backend/internal/domain/shared"
	"github.com/shopstream/backend/internal/infrastructure/persistence/models"
)

// GormProductReplicaRepository implements ProductReplicaRepository using GORM
type GormProductReplicaRepository struct {
	db *gorm.DB
}

// NewGormProductReplicaRepository creates a new GormProductReplicaRepository
func NewGormProductReplicaRepository(db *gorm.DB) *GormProductReplicaRepository {
	return &GormProductReplicaRepository{db: db}
}

// FindByID finds a product replica by the originating product id
func (r *GormProductReplicaRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.ProductReplica, error) {
	var model models.ProductReplicaModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Upsert inserts the replica, or updates name and price when the id exists
func (r *GormProductReplicaRepository) Upsert(ctx context.Context, replica *order.ProductReplica) error {
	model := models.ProductReplicaModelFromDomain(replica)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "price"}),
		}).
		Create(model).Error
}

// Ensure GormProductReplicaRepository implements ProductReplicaRepository
var _ order.ProductReplicaRepository = (*GormProductReplicaRepository)(nil)

// GormCustomerReplicaRepository implements CustomerReplicaRepository using GORM
type GormCustomerReplicaRepository struct {
	db *gorm.DB
}

// NewGormCustomerReplicaRepository creates a new GormCustomerReplicaRepository
func NewGormCustomerReplicaRepository(db *gorm.DB) *GormCustomerReplicaRepository {
	return &GormCustomerReplicaRepository{db: db}
}

// FindByID finds a customer replica by the originating user id
func (r *GormCustomerReplicaRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.CustomerReplica, error) {
	var model models.CustomerReplicaModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Insert adds the replica; an id that already exists is left untouched
func (r *GormCustomerReplicaRepository) Insert(ctx context.Context, replica *order.CustomerReplica) error {
	model := models.CustomerReplicaModelFromDomain(replica)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoNothing: true,
		}).
		Create(model).Error
}

// Ensure GormCustomerReplicaRepository implements CustomerReplicaRepository
var _ order.CustomerReplicaRepository = (*GormCustomerReplicaRepository)(nil)
