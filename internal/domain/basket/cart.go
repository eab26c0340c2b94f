package basket

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shopstream/backend/internal/domain/shared"
)

// CartItem is a line item in a shopping cart
type CartItem struct {
	ProductID   uuid.UUID       `json:"productId"`
	ProductName string          `json:"productName"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int64           `json:"quantity"`
}

// ShoppingCart is the basket aggregate, keyed by the owning username.
// The total price is always derived from the items.
type ShoppingCart struct {
	shared.BaseEntity
	Username string
	Items    []CartItem
}

// NewShoppingCart creates an empty cart for the given username
func NewShoppingCart(username string) (*ShoppingCart, error) {
	if username == "" {
		return nil, shared.NewDomainError("INVALID_USERNAME", "Username cannot be empty")
	}
	return &ShoppingCart{
		BaseEntity: shared.NewBaseEntity(),
		Username:   username,
		Items:      make([]CartItem, 0),
	}, nil
}

// SetItems replaces the cart's items wholesale.
// Carts are submitted as complete documents; there is no per-item merge.
// Prices are stored as given: a discount larger than the line price
// leaves a negative price on the line.
func (c *ShoppingCart) SetItems(items []CartItem) error {
	for _, item := range items {
		if item.Quantity <= 0 {
			return shared.NewDomainError("INVALID_CART_ITEM", "Item quantity must be positive")
		}
	}
	c.Items = items
	c.UpdatedAt = time.Now()
	return nil
}

// TotalPrice returns the sum of price times quantity over all cart items
func (c *ShoppingCart) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.Items {
		total = total.Add(item.Price.Mul(decimal.NewFromInt(item.Quantity)))
	}
	return total
}

// IsEmpty returns true if the cart has no items
func (c *ShoppingCart) IsEmpty() bool {
	return len(c.Items) == 0
}
