package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shopstream/backend/internal/domain/order"
	"github.com/shopstream/backend/internal/domain/shared/valueobject"
)

// OrderModel is the persistence model for order aggregates.
// Addresses, payment details and line items are stored as JSON columns;
// the status is stored under its canonical numeric code.
type OrderModel struct {
	AggregateModel
	CustomerID      uuid.UUID           `gorm:"type:uuid;not null;index"`
	Name            order.OrderName     `gorm:"type:varchar(5);not null;index"`
	ShippingAddress valueobject.Address `gorm:"type:jsonb"`
	BillingAddress  valueobject.Address `gorm:"type:jsonb"`
	Payment         valueobject.Payment `gorm:"type:jsonb"`
	Status          int                 `gorm:"not null"`
	Items           []order.OrderItem   `gorm:"type:jsonb;serializer:json"`
}

// TableName returns the table name for GORM
func (OrderModel) TableName() string {
	return "orders"
}

// ToDomain converts OrderModel to a domain Order
func (m *OrderModel) ToDomain() (*order.Order, error) {
	status, err := order.StatusFromCode(m.Status)
	if err != nil {
		return nil, err
	}

	return &order.Order{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		CustomerID:        m.CustomerID,
		Name:              m.Name,
		ShippingAddress:   m.ShippingAddress,
		BillingAddress:    m.BillingAddress,
		Payment:           m.Payment,
		Status:            status,
		Items:             m.Items,
	}, nil
}

// OrderModelFromDomain creates an OrderModel from a domain Order
func OrderModelFromDomain(o *order.Order) *OrderModel {
	m := &OrderModel{
		CustomerID:      o.CustomerID,
		Name:            o.Name,
		ShippingAddress: o.ShippingAddress,
		BillingAddress:  o.BillingAddress,
		Payment:         o.Payment,
		Status:          o.Status.Code(),
		Items:           o.Items,
	}
	m.FromDomainAggregateRoot(o.BaseAggregateRoot)
	return m
}

// ProductReplicaModel is the persistence model for the order service's
// catalog product replica
type ProductReplicaModel struct {
	ID    uuid.UUID       `gorm:"type:uuid;primary_key"`
	Name  string          `gorm:"type:varchar(200);not null"`
	Price decimal.Decimal `gorm:"type:decimal(18,2);not null"`
}

// TableName returns the table name for GORM
func (ProductReplicaModel) TableName() string {
	return "product_replicas"
}

// ToDomain converts ProductReplicaModel to a domain ProductReplica
func (m *ProductReplicaModel) ToDomain() *order.ProductReplica {
	return &order.ProductReplica{
		ID:    m.ID,
		Name:  m.Name,
		Price: m.Price,
	}
}

// ProductReplicaModelFromDomain creates a ProductReplicaModel from a domain replica
func ProductReplicaModelFromDomain(r *order.ProductReplica) *ProductReplicaModel {
	return &ProductReplicaModel{
		ID:    r.ID,
		Name:  r.Name,
		Price: r.Price,
	}
}

// CustomerReplicaModel is the persistence model for the order service's
// registered account replica
type CustomerReplicaModel struct {
	ID    uuid.UUID `gorm:"type:uuid;primary_key"`
	Name  string    `gorm:"type:varchar(100);not null"`
	Email string    `gorm:"type:varchar(255)"`
}

// TableName returns the table name for GORM
func (CustomerReplicaModel) TableName() string {
	return "customer_replicas"
}

// ToDomain converts CustomerReplicaModel to a domain CustomerReplica
func (m *CustomerReplicaModel) ToDomain() *order.CustomerReplica {
	return &order.CustomerReplica{
		ID:    m.ID,
		Name:  m.Name,
		Email: m.Email,
	}
}

// CustomerReplicaModelFromDomain creates a CustomerReplicaModel from a domain replica
func CustomerReplicaModelFromDomain(r *order.CustomerReplica) *CustomerReplicaModel {
	return &CustomerReplicaModel{
		ID:    r.ID,
		Name:  r.Name,
		Email: r.Email,
	}
}
