package integration

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Integration event types. One broker topic per type, see TopicFor.
const (
	EventTypeUserRegistered    = "identity.user.registered"
	EventTypeUserUpdated       = "identity.user.updated"
	EventTypeUserDeleted       = "identity.user.deleted"
	EventTypeAdminUserUpserted = "identity.admin.upserted"
	EventTypeProductUpserted   = "catalog.product.upserted"
	EventTypeBasketCheckout    = "basket.checkout"
	EventTypeOrderCreated      = "order.created"
	EventTypeOrderUpdated      = "order.updated"
)

// UserRegisteredEvent announces a newly registered account
type UserRegisteredEvent struct {
	Envelope
	UserID   string `json:"userId"`
	Username string `json:"userName"`
	Email    string `json:"email"`
}

// NewUserRegisteredEvent creates a UserRegisteredEvent
func NewUserRegisteredEvent(userID, username, email string) *UserRegisteredEvent {
	return &UserRegisteredEvent{
		Envelope: NewEnvelope(EventTypeUserRegistered),
		UserID:   userID,
		Username: username,
		Email:    email,
	}
}

// Key returns the partition key
func (e *UserRegisteredEvent) Key() string { return e.UserID }

// UserUpdatedEvent announces a profile change on an existing account
type UserUpdatedEvent struct {
	Envelope
	UserID   string `json:"userId"`
	Username string `json:"userName"`
	Email    string `json:"email"`
}

// NewUserUpdatedEvent creates a UserUpdatedEvent
func NewUserUpdatedEvent(userID, username, email string) *UserUpdatedEvent {
	return &UserUpdatedEvent{
		Envelope: NewEnvelope(EventTypeUserUpdated),
		UserID:   userID,
		Username: username,
		Email:    email,
	}
}

// Key returns the partition key
func (e *UserUpdatedEvent) Key() string { return e.UserID }

// UserDeletedEvent announces an account removal
type UserDeletedEvent struct {
	Envelope
	UserID string `json:"userId"`
}

// NewUserDeletedEvent creates a UserDeletedEvent
func NewUserDeletedEvent(userID string) *UserDeletedEvent {
	return &UserDeletedEvent{
		Envelope: NewEnvelope(EventTypeUserDeleted),
		UserID:   userID,
	}
}

// Key returns the partition key
func (e *UserDeletedEvent) Key() string { return e.UserID }

// AdminUserUpsertedEvent announces an administrative create-or-update of an account
type AdminUserUpsertedEvent struct {
	Envelope
	UserID   string `json:"userId"`
	Username string `json:"userName"`
	Email    string `json:"email"`
	IsAdmin  bool   `json:"isAdmin"`
}

// NewAdminUserUpsertedEvent creates an AdminUserUpsertedEvent
func NewAdminUserUpsertedEvent(userID, username, email string, isAdmin bool) *AdminUserUpsertedEvent {
	return &AdminUserUpsertedEvent{
		Envelope: NewEnvelope(EventTypeAdminUserUpserted),
		UserID:   userID,
		Username: username,
		Email:    email,
		IsAdmin:  isAdmin,
	}
}

// Key returns the partition key
func (e *AdminUserUpsertedEvent) Key() string { return e.UserID }

// ProductUpsertedEvent announces a catalog product create or update
type ProductUpsertedEvent struct {
	Envelope
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
}

// NewProductUpsertedEvent creates a ProductUpsertedEvent
func NewProductUpsertedEvent(productID, name string, price decimal.Decimal) *ProductUpsertedEvent {
	return &ProductUpsertedEvent{
		Envelope:  NewEnvelope(EventTypeProductUpserted),
		ProductID: productID,
		Name:      name,
		Price:     price,
	}
}

// Key returns the partition key
func (e *ProductUpsertedEvent) Key() string { return e.ProductID }

// BasketCheckoutItem is a cart line carried in a BasketCheckoutEvent
type BasketCheckoutItem struct {
	ProductID   uuid.UUID       `json:"productId"`
	ProductName string          `json:"productName"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int64           `json:"quantity"`
}

// BasketCheckoutEvent carries a submitted checkout: customer identity,
// flattened address and payment fields, the cart snapshot and its total.
type BasketCheckoutEvent struct {
	Envelope
	Username   string          `json:"userName"`
	CustomerID uuid.UUID       `json:"customerId"`
	TotalPrice decimal.Decimal `json:"totalPrice"`

	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	EmailAddress string `json:"emailAddress"`
	AddressLine  string `json:"addressLine"`
	Country      string `json:"country"`
	State        string `json:"state"`
	ZipCode      string `json:"zipCode"`

	CardName      string `json:"cardName"`
	CardNumber    string `json:"cardNumber"`
	Expiration    string `json:"expiration"`
	CVV           string `json:"cvv"`
	PaymentMethod int    `json:"paymentMethod"`

	Items []BasketCheckoutItem `json:"items"`
}

// Key returns the partition key
func (e *BasketCheckoutEvent) Key() string { return e.Username }

// OrderItemPayload is an order line carried in order integration events
type OrderItemPayload struct {
	ProductID uuid.UUID       `json:"productId"`
	Quantity  int64           `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

// OrderCreatedEvent is re-published to the broker by the fulfillment
// bridge when a new order has been persisted
type OrderCreatedEvent struct {
	Envelope
	OrderID    uuid.UUID          `json:"orderId"`
	CustomerID uuid.UUID          `json:"customerId"`
	OrderName  string             `json:"orderName"`
	Status     int                `json:"status"`
	TotalPrice decimal.Decimal    `json:"totalPrice"`
	Items      []OrderItemPayload `json:"items"`
}

// Key returns the partition key
func (e *OrderCreatedEvent) Key() string { return e.OrderID.String() }

// OrderUpdatedEvent is re-published to the broker by the fulfillment
// bridge when an order's header fields have changed
type OrderUpdatedEvent struct {
	Envelope
	OrderID    uuid.UUID          `json:"orderId"`
	CustomerID uuid.UUID          `json:"customerId"`
	OrderName  string             `json:"orderName"`
	Status     int                `json:"status"`
	TotalPrice decimal.Decimal    `json:"totalPrice"`
	Items      []OrderItemPayload `json:"items"`
}

// Key returns the partition key
func (e *OrderUpdatedEvent) Key() string { return e.OrderID.String() }
