package order

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductReplica is the order service's local copy of a catalog product.
// Rows are only ever written by integration event replay; they are never
// deleted and carry no version or timestamp for conflict resolution.
type ProductReplica struct {
	ID    uuid.UUID
	Name  string
	Price decimal.Decimal
}

// CustomerReplica is the order service's local copy of a registered account
type CustomerReplica struct {
	ID    uuid.UUID
	Name  string
	Email string
}

// ProductReplicaRepository persists product replicas keyed by the
// originating product id
type ProductReplicaRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ProductReplica, error)
	// Upsert inserts the replica or, if a row with the same id exists,
	// updates its name and price in place
	Upsert(ctx context.Context, replica *ProductReplica) error
}

// CustomerReplicaRepository persists customer replicas keyed by the
// originating user id
type CustomerReplicaRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*CustomerReplica, error)
	// Insert adds the replica; inserting an id that already exists is a no-op
	Insert(ctx context.Context, replica *CustomerReplica) error
}
