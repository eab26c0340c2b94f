package valueobject

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

const maxCardNumberLength = 24

// Payment is a value object holding the card details captured at checkout.
// It is immutable - all fields are set at construction.
type Payment struct {
	cardName   string
	cardNumber string
	expiration string
	cvv        string
	method     int
}

// NewPayment creates a new Payment.
// Card number, expiration and CVV are required; CVV must be at most 3 digits.
func NewPayment(cardName, cardNumber, expiration, cvv string, method int) (Payment, error) {
	cardName = strings.TrimSpace(cardName)
	cardNumber = strings.TrimSpace(cardNumber)
	expiration = strings.TrimSpace(expiration)
	cvv = strings.TrimSpace(cvv)

	if cardNumber == "" {
		return Payment{}, fmt.Errorf("card number cannot be empty")
	}
	if len(cardNumber) > maxCardNumberLength {
		return Payment{}, fmt.Errorf("card number cannot exceed %d characters", maxCardNumberLength)
	}
	if expiration == "" {
		return Payment{}, fmt.Errorf("expiration cannot be empty")
	}
	if cvv == "" {
		return Payment{}, fmt.Errorf("cvv cannot be empty")
	}
	if len(cvv) > 3 {
		return Payment{}, fmt.Errorf("cvv cannot exceed 3 digits")
	}

	return Payment{
		cardName:   cardName,
		cardNumber: cardNumber,
		expiration: expiration,
		cvv:        cvv,
		method:     method,
	}, nil
}

// MustNewPayment creates a new Payment, panics on error
func MustNewPayment(cardName, cardNumber, expiration, cvv string, method int) Payment {
	p, err := NewPayment(cardName, cardNumber, expiration, cvv, method)
	if err != nil {
		panic(err)
	}
	return p
}

// EmptyPayment returns an empty payment (for optional payment fields)
func EmptyPayment() Payment {
	return Payment{}
}

// CardName returns the name on the card
func (p Payment) CardName() string {
	return p.cardName
}

// CardNumber returns the card number
func (p Payment) CardNumber() string {
	return p.cardNumber
}

// Expiration returns the card expiration
func (p Payment) Expiration() string {
	return p.expiration
}

// CVV returns the card verification value
func (p Payment) CVV() string {
	return p.cvv
}

// Method returns the payment method code
func (p Payment) Method() int {
	return p.method
}

// IsEmpty returns true if no card details are set
func (p Payment) IsEmpty() bool {
	return p.cardNumber == ""
}

// MaskedCardNumber returns the card number with all but the last four digits masked
func (p Payment) MaskedCardNumber() string {
	if len(p.cardNumber) <= 4 {
		return p.cardNumber
	}
	return strings.Repeat("*", len(p.cardNumber)-4) + p.cardNumber[len(p.cardNumber)-4:]
}

// Equals returns true if both payments are equal
func (p Payment) Equals(other Payment) bool {
	return p == other
}

// paymentJSON is used for JSON marshaling/unmarshaling
type paymentJSON struct {
	CardName   string `json:"cardName,omitempty"`
	CardNumber string `json:"cardNumber"`
	Expiration string `json:"expiration"`
	CVV        string `json:"cvv"`
	Method     int    `json:"paymentMethod"`
}

// MarshalJSON implements json.Marshaler
func (p Payment) MarshalJSON() ([]byte, error) {
	return json.Marshal(paymentJSON{
		CardName:   p.cardName,
		CardNumber: p.cardNumber,
		Expiration: p.expiration,
		CVV:        p.cvv,
		Method:     p.method,
	})
}

// UnmarshalJSON implements json.Unmarshaler.
// All validation rules are applied through the NewPayment factory.
func (p *Payment) UnmarshalJSON(data []byte) error {
	var v paymentJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}

	if v.CardNumber == "" && v.Expiration == "" && v.CVV == "" {
		*p = EmptyPayment()
		return nil
	}

	payment, err := NewPayment(v.CardName, v.CardNumber, v.Expiration, v.CVV, v.Method)
	if err != nil {
		return err
	}
	*p = payment
	return nil
}

// Value implements driver.Valuer for database storage.
// The payment is stored as a JSON column.
func (p Payment) Value() (driver.Value, error) {
	if p.IsEmpty() {
		return nil, nil
	}
	return json.Marshal(p)
}

// Scan implements sql.Scanner for database retrieval
func (p *Payment) Scan(value any) error {
	if value == nil {
		*p = EmptyPayment()
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case string:
		data = []byte(v)
	case []byte:
		data = v
	default:
		return fmt.Errorf("cannot scan %T into Payment", value)
	}

	if len(data) == 0 || string(data) == "null" {
		*p = EmptyPayment()
		return nil
	}

	return json.Unmarshal(data, p)
}
