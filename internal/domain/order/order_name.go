package order

import (
	"database/sql/driver"
	"fmt"

	"github.com/shopstream/backend/internal/domain/shared"
)

// OrderNameLength is the exact length every order name must have.
// Order names are short human-readable codes printed on packing slips.
const OrderNameLength = 5

// OrderName is a value object for the order's display code.
// The length rule is deliberately strict: downstream label printing
// reserves exactly five characters.
type OrderName struct {
	value string
}

// NewOrderName creates a new OrderName.
// The value must be exactly five characters long.
func NewOrderName(value string) (OrderName, error) {
	if len(value) != OrderNameLength {
		return OrderName{}, shared.NewDomainError("INVALID_ORDER_NAME",
			fmt.Sprintf("Order name must be exactly %d characters, got %d", OrderNameLength, len(value)))
	}
	return OrderName{value: value}, nil
}

// MustNewOrderName creates a new OrderName, panics on error
func MustNewOrderName(value string) OrderName {
	name, err := NewOrderName(value)
	if err != nil {
		panic(err)
	}
	return name
}

// String returns the order name string
func (n OrderName) String() string {
	return n.value
}

// Equals returns true if both names are equal
func (n OrderName) Equals(other OrderName) bool {
	return n.value == other.value
}

// MarshalJSON implements json.Marshaler
func (n OrderName) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", n.value)), nil
}

// UnmarshalJSON implements json.Unmarshaler
func (n *OrderName) UnmarshalJSON(data []byte) error {
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return fmt.Errorf("order name must be a JSON string")
	}
	name, err := NewOrderName(string(data[1 : len(data)-1]))
	if err != nil {
		return err
	}
	*n = name
	return nil
}

// Value implements driver.Valuer for database storage
func (n OrderName) Value() (driver.Value, error) {
	return n.value, nil
}

// Scan implements sql.Scanner for database retrieval
func (n *OrderName) Scan(value any) error {
	switch v := value.(type) {
	case string:
		n.value = v
	case []byte:
		n.value = string(v)
	default:
		return fmt.Errorf("cannot scan %T into OrderName", value)
	}
	return nil
}
