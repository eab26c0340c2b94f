package models

import (
	"github.com/shopstream/backend/internal/domain/basket"
)

// CartModel is the persistence model for shopping carts.
// A username owns at most one cart; items are stored as a JSON column
// because carts are always read and written as complete documents.
type CartModel struct {
	BaseModel
	Username string            `gorm:"type:varchar(100);not null;uniqueIndex"`
	Items    []basket.CartItem `gorm:"type:jsonb;serializer:json"`
}

// TableName returns the table name for GORM
func (CartModel) TableName() string {
	return "carts"
}

// ToDomain converts CartModel to a domain ShoppingCart
func (m *CartModel) ToDomain() *basket.ShoppingCart {
	return &basket.ShoppingCart{
		BaseEntity: m.BaseModel.ToDomain(),
		Username:   m.Username,
		Items:      m.Items,
	}
}

// CartModelFromDomain creates a CartModel from a domain ShoppingCart
func CartModelFromDomain(cart *basket.ShoppingCart) *CartModel {
	m := &CartModel{
		Username: cart.Username,
		Items:    cart.Items,
	}
	m.FromDomainBaseEntity(cart.BaseEntity)
	return m
}
