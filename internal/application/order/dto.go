package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shopstream/backend/internal/domain/order"
	"github.com/shopstream/backend/internal/domain/shared/valueobject"
)

// AddressRequest carries address fields on create/update requests
type AddressRequest struct {
	FirstName    string `json:"firstName" binding:"required"`
	LastName     string `json:"lastName" binding:"required"`
	EmailAddress string `json:"emailAddress" binding:"omitempty,email"`
	AddressLine  string `json:"addressLine" binding:"required"`
	Country      string `json:"country"`
	State        string `json:"state"`
	ZipCode      string `json:"zipCode"`
}

// PaymentRequest carries card details on create/update requests
type PaymentRequest struct {
	CardName      string `json:"cardName"`
	CardNumber    string `json:"cardNumber" binding:"required"`
	Expiration    string `json:"expiration" binding:"required"`
	CVV           string `json:"cvv" binding:"required,max=3"`
	PaymentMethod int    `json:"paymentMethod"`
}

// OrderItemRequest is a line item on a create request
type OrderItemRequest struct {
	ProductID uuid.UUID       `json:"productId" binding:"required"`
	Quantity  int64           `json:"quantity" binding:"required,gt=0"`
	Price     decimal.Decimal `json:"price" binding:"required"`
}

// CreateOrderRequest is the command to create an order
type CreateOrderRequest struct {
	CustomerID      uuid.UUID          `json:"customerId" binding:"required"`
	Name            string             `json:"name" binding:"required"`
	ShippingAddress AddressRequest     `json:"shippingAddress" binding:"required"`
	BillingAddress  AddressRequest     `json:"billingAddress" binding:"required"`
	Payment         PaymentRequest     `json:"payment" binding:"required"`
	Items           []OrderItemRequest `json:"items"`
}

// UpdateOrderRequest is the command to update an order's header fields.
// Items are managed through their own operations, never through update.
type UpdateOrderRequest struct {
	Name            string         `json:"name" binding:"required"`
	ShippingAddress AddressRequest `json:"shippingAddress" binding:"required"`
	BillingAddress  AddressRequest `json:"billingAddress" binding:"required"`
	Payment         PaymentRequest `json:"payment" binding:"required"`
	Status          string         `json:"status" binding:"required"`
}

// AddressResponse mirrors an address value object on responses
type AddressResponse struct {
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	EmailAddress string `json:"emailAddress,omitempty"`
	AddressLine  string `json:"addressLine"`
	Country      string `json:"country,omitempty"`
	State        string `json:"state,omitempty"`
	ZipCode      string `json:"zipCode,omitempty"`
}

// PaymentResponse mirrors a payment value object on responses.
// The card number is masked.
type PaymentResponse struct {
	CardName      string `json:"cardName,omitempty"`
	CardNumber    string `json:"cardNumber"`
	Expiration    string `json:"expiration"`
	PaymentMethod int    `json:"paymentMethod"`
}

// OrderItemResponse is a line item on a response
type OrderItemResponse struct {
	ProductID uuid.UUID       `json:"productId"`
	Quantity  int64           `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

// OrderResponse is the read model returned by order queries
type OrderResponse struct {
	ID              uuid.UUID           `json:"id"`
	CustomerID      uuid.UUID           `json:"customerId"`
	Name            string              `json:"name"`
	ShippingAddress AddressResponse     `json:"shippingAddress"`
	BillingAddress  AddressResponse     `json:"billingAddress"`
	Payment         PaymentResponse     `json:"payment"`
	Status          string              `json:"status"`
	StatusCode      int                 `json:"statusCode"`
	Items           []OrderItemResponse `json:"items"`
	TotalPrice      decimal.Decimal     `json:"totalPrice"`
	Version         int                 `json:"version"`
	CreatedAt       time.Time           `json:"createdAt"`
	UpdatedAt       time.Time           `json:"updatedAt"`
}

func toAddress(req AddressRequest) (valueobject.Address, error) {
	return valueobject.NewAddress(
		req.FirstName, req.LastName, req.EmailAddress,
		req.AddressLine, req.Country, req.State, req.ZipCode,
	)
}

func toPayment(req PaymentRequest) (valueobject.Payment, error) {
	return valueobject.NewPayment(
		req.CardName, req.CardNumber, req.Expiration, req.CVV, req.PaymentMethod,
	)
}

func toAddressResponse(addr valueobject.Address) AddressResponse {
	return AddressResponse{
		FirstName:    addr.FirstName(),
		LastName:     addr.LastName(),
		EmailAddress: addr.EmailAddress(),
		AddressLine:  addr.AddressLine(),
		Country:      addr.Country(),
		State:        addr.State(),
		ZipCode:      addr.ZipCode(),
	}
}

func toPaymentResponse(p valueobject.Payment) PaymentResponse {
	return PaymentResponse{
		CardName:      p.CardName(),
		CardNumber:    p.MaskedCardNumber(),
		Expiration:    p.Expiration(),
		PaymentMethod: p.Method(),
	}
}

// ToOrderResponse converts an order aggregate to its response DTO
func ToOrderResponse(o *order.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, OrderItemResponse{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}

	return OrderResponse{
		ID:              o.ID,
		CustomerID:      o.CustomerID,
		Name:            o.Name.String(),
		ShippingAddress: toAddressResponse(o.ShippingAddress),
		BillingAddress:  toAddressResponse(o.BillingAddress),
		Payment:         toPaymentResponse(o.Payment),
		Status:          string(o.Status),
		StatusCode:      o.Status.Code(),
		Items:           items,
		TotalPrice:      o.TotalPrice(),
		Version:         o.Version,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
}

func toOrderResponses(orders []order.Order) []OrderResponse {
	responses := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		responses = append(responses, ToOrderResponse(&orders[i]))
	}
	return responses
}
