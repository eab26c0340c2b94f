package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shopstream/backend/internal/domain/shared"
	"github.com/shopstream/backend/internal/domain/shared/valueobject"
)

// OrderItem is a line item on an order
type OrderItem struct {
	ProductID uuid.UUID       `json:"productId"`
	Quantity  int64           `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

// Order is the aggregate root for customer orders.
// The total price is always derived from the line items, never stored.
type Order struct {
	shared.BaseAggregateRoot
	CustomerID      uuid.UUID
	Name            OrderName
	ShippingAddress valueobject.Address
	BillingAddress  valueobject.Address
	Payment         valueobject.Payment
	Status          OrderStatus
	Items           []OrderItem
}

// NewOrder creates a new pending order and records an OrderCreated event
func NewOrder(
	id, customerID uuid.UUID,
	name OrderName,
	shipping, billing valueobject.Address,
	payment valueobject.Payment,
) *Order {
	now := time.Now()
	o := &Order{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: shared.BaseEntity{ID: id, CreatedAt: now, UpdatedAt: now},
			Version:    1,
		},
		CustomerID:      customerID,
		Name:            name,
		ShippingAddress: shipping,
		BillingAddress:  billing,
		Payment:         payment,
		Status:          OrderStatusPending,
		Items:           make([]OrderItem, 0),
	}

	o.AddDomainEvent(NewOrderCreatedEvent(o))

	return o
}

// Update replaces the order's name, addresses, payment and status and
// records an OrderUpdated event. There is no transition table: any status
// may be set from any other status.
func (o *Order) Update(
	name OrderName,
	shipping, billing valueobject.Address,
	payment valueobject.Payment,
	status OrderStatus,
) {
	o.Name = name
	o.ShippingAddress = shipping
	o.BillingAddress = billing
	o.Payment = payment
	o.Status = status
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	o.AddDomainEvent(NewOrderUpdatedEvent(o))
}

// AddItem appends a line item to the order.
// Quantity and price must both be positive; a rejected item leaves the
// order unchanged. Adding an item does not record a domain event.
func (o *Order) AddItem(productID uuid.UUID, quantity int64, price decimal.Decimal) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVARIANT_VIOLATION", "Item quantity must be positive")
	}
	if !price.IsPositive() {
		return shared.NewDomainError("INVARIANT_VIOLATION", "Item price must be positive")
	}

	o.Items = append(o.Items, OrderItem{
		ProductID: productID,
		Quantity:  quantity,
		Price:     price,
	})
	o.UpdatedAt = time.Now()

	return nil
}

// RemoveItem removes the line item for the given product.
// Removing a product that is not on the order is a no-op.
func (o *Order) RemoveItem(productID uuid.UUID) {
	for i, item := range o.Items {
		if item.ProductID == productID {
			o.Items = append(o.Items[:i], o.Items[i+1:]...)
			o.UpdatedAt = time.Now()
			return
		}
	}
}

// TotalPrice returns the sum of price times quantity over all line items
func (o *Order) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.Price.Mul(decimal.NewFromInt(item.Quantity)))
	}
	return total
}
