package basket

import (
	"github.com/google/uuid"

	"github.com/shopstream/backend/internal/domain/shared/valueobject"
)

// Checkout carries the customer, address and payment details submitted
// with a checkout request. The cart contents and total come from the
// stored cart, not from the request.
type Checkout struct {
	Username   string
	CustomerID uuid.UUID
	Address    valueobject.Address
	Payment    valueobject.Payment
}

// CheckoutResult reports whether a checkout was accepted.
// A missing cart yields IsSuccess false; it is not an error.
type CheckoutResult struct {
	IsSuccess bool `json:"isSuccess"`
}
