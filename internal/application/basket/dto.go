package basket

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shopstream/backend/internal/domain/basket"
)

// CartItemRequest is a cart line submitted by the storefront
type CartItemRequest struct {
	ProductID   uuid.UUID       `json:"productId" binding:"required"`
	ProductName string          `json:"productName" binding:"required"`
	Price       decimal.Decimal `json:"price" binding:"required"`
	Quantity    int64           `json:"quantity" binding:"required,gt=0"`
}

// StoreCartRequest replaces a user's cart as a complete document
type StoreCartRequest struct {
	Username string            `json:"userName" binding:"required"`
	Items    []CartItemRequest `json:"items"`
}

// CheckoutRequest carries everything a checkout submission needs:
// the owning username, the customer id and the flattened address and
// payment fields. The cart contents come from the stored cart.
type CheckoutRequest struct {
	Username   string    `json:"userName" binding:"required"`
	CustomerID uuid.UUID `json:"customerId" binding:"required"`

	FirstName    string `json:"firstName" binding:"required"`
	LastName     string `json:"lastName" binding:"required"`
	EmailAddress string `json:"emailAddress" binding:"omitempty,email"`
	AddressLine  string `json:"addressLine" binding:"required"`
	Country      string `json:"country"`
	State        string `json:"state"`
	ZipCode      string `json:"zipCode"`

	CardName      string `json:"cardName"`
	CardNumber    string `json:"cardNumber" binding:"required"`
	Expiration    string `json:"expiration" binding:"required"`
	CVV           string `json:"cvv" binding:"required,max=3"`
	PaymentMethod int    `json:"paymentMethod"`
}

// CartItemResponse is a cart line on a response
type CartItemResponse struct {
	ProductID   uuid.UUID       `json:"productId"`
	ProductName string          `json:"productName"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int64           `json:"quantity"`
}

// CartResponse is the read model returned by cart operations
type CartResponse struct {
	Username   string             `json:"userName"`
	Items      []CartItemResponse `json:"items"`
	TotalPrice decimal.Decimal    `json:"totalPrice"`
}

// ToCartResponse converts a shopping cart to its response DTO
func ToCartResponse(cart *basket.ShoppingCart) CartResponse {
	items := make([]CartItemResponse, 0, len(cart.Items))
	for _, item := range cart.Items {
		items = append(items, CartItemResponse{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Price:       item.Price,
			Quantity:    item.Quantity,
		})
	}
	return CartResponse{
		Username:   cart.Username,
		Items:      items,
		TotalPrice: cart.TotalPrice(),
	}
}
