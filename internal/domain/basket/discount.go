package basket

import (
	"context"

	"github.com/shopspring/decimal"
)

// Coupon is a discount returned by the discount service.
// A zero amount means no discount applies to the product.
type Coupon struct {
	ProductName string          `json:"productName"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
}

// DiscountLookup resolves the discount for a product by name.
// Lookups happen per cart line when a cart is stored; failures propagate
// to the caller, there is no local retry.
type DiscountLookup interface {
	GetDiscount(ctx context.Context, productName string) (*Coupon, error)
}
