package order

import "github.com/shopstream/backend/internal/domain/shared"

// OrderStatus represents the status of an order
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusDraft     OrderStatus = "draft"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Status codes used on the wire and in persisted rows.
// The mapping is fixed: new statuses get new codes, existing codes never move.
const (
	orderStatusCodePending   = 1
	orderStatusCodeDraft     = 2
	orderStatusCodeCompleted = 3
	orderStatusCodeCancelled = 4
)

// Code returns the canonical numeric code for the status
func (s OrderStatus) Code() int {
	switch s {
	case OrderStatusPending:
		return orderStatusCodePending
	case OrderStatusDraft:
		return orderStatusCodeDraft
	case OrderStatusCompleted:
		return orderStatusCodeCompleted
	case OrderStatusCancelled:
		return orderStatusCodeCancelled
	default:
		return 0
	}
}

// IsValid returns true if the status is one of the known values
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusDraft, OrderStatusCompleted, OrderStatusCancelled:
		return true
	default:
		return false
	}
}

// ParseStatus converts a status string to an OrderStatus
func ParseStatus(value string) (OrderStatus, error) {
	status := OrderStatus(value)
	if !status.IsValid() {
		return "", shared.NewDomainError("INVALID_ORDER_STATUS", "Unknown order status: "+value)
	}
	return status, nil
}

// StatusFromCode converts a numeric code to an OrderStatus
func StatusFromCode(code int) (OrderStatus, error) {
	switch code {
	case orderStatusCodePending:
		return OrderStatusPending, nil
	case orderStatusCodeDraft:
		return OrderStatusDraft, nil
	case orderStatusCodeCompleted:
		return OrderStatusCompleted, nil
	case orderStatusCodeCancelled:
		return OrderStatusCancelled, nil
	default:
		return "", shared.NewDomainError("INVALID_ORDER_STATUS", "Unknown order status code")
	}
}
