package valueobject

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"net/mail"
	"strings"
)

// Address is a value object representing a shipping or billing address.
// It is immutable - all operations return new Address instances.
type Address struct {
	firstName    string
	lastName     string
	emailAddress string
	addressLine  string
	country      string
	state        string
	zipCode      string
}

// NewAddress creates a new Address with the required fields.
// First name, last name, email and address line are required.
func NewAddress(firstName, lastName, emailAddress, addressLine, country, state, zipCode string) (Address, error) {
	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)
	emailAddress = strings.TrimSpace(emailAddress)
	addressLine = strings.TrimSpace(addressLine)

	if firstName == "" {
		return Address{}, fmt.Errorf("first name cannot be empty")
	}
	if lastName == "" {
		return Address{}, fmt.Errorf("last name cannot be empty")
	}
	if emailAddress != "" {
		if _, err := mail.ParseAddress(emailAddress); err != nil {
			return Address{}, fmt.Errorf("invalid email address: %w", err)
		}
	}
	if addressLine == "" {
		return Address{}, fmt.Errorf("address line cannot be empty")
	}
	if len(addressLine) > 500 {
		return Address{}, fmt.Errorf("address line cannot exceed 500 characters")
	}

	return Address{
		firstName:    firstName,
		lastName:     lastName,
		emailAddress: emailAddress,
		addressLine:  addressLine,
		country:      strings.TrimSpace(country),
		state:        strings.TrimSpace(state),
		zipCode:      strings.TrimSpace(zipCode),
	}, nil
}

// MustNewAddress creates a new Address, panics on error
func MustNewAddress(firstName, lastName, emailAddress, addressLine, country, state, zipCode string) Address {
	addr, err := NewAddress(firstName, lastName, emailAddress, addressLine, country, state, zipCode)
	if err != nil {
		panic(err)
	}
	return addr
}

// EmptyAddress returns an empty address (for optional address fields)
func EmptyAddress() Address {
	return Address{}
}

// FirstName returns the recipient's first name
func (a Address) FirstName() string {
	return a.firstName
}

// LastName returns the recipient's last name
func (a Address) LastName() string {
	return a.lastName
}

// EmailAddress returns the contact email
func (a Address) EmailAddress() string {
	return a.emailAddress
}

// AddressLine returns the street address
func (a Address) AddressLine() string {
	return a.addressLine
}

// Country returns the country
func (a Address) Country() string {
	return a.country
}

// State returns the state or province
func (a Address) State() string {
	return a.state
}

// ZipCode returns the postal code
func (a Address) ZipCode() string {
	return a.zipCode
}

// IsEmpty returns true if the address has no recipient and no street address
func (a Address) IsEmpty() bool {
	return a.firstName == "" && a.lastName == "" && a.addressLine == ""
}

// FullName returns the recipient's full name
func (a Address) FullName() string {
	return strings.TrimSpace(a.firstName + " " + a.lastName)
}

// String returns a single-line representation of the address
func (a Address) String() string {
	if a.IsEmpty() {
		return ""
	}
	parts := make([]string, 0, 5)
	parts = append(parts, a.FullName(), a.addressLine)
	if a.state != "" {
		parts = append(parts, a.state)
	}
	if a.country != "" {
		parts = append(parts, a.country)
	}
	if a.zipCode != "" {
		parts = append(parts, a.zipCode)
	}
	return strings.Join(parts, ", ")
}

// Equals returns true if both addresses are equal
func (a Address) Equals(other Address) bool {
	return a == other
}

// addressJSON is used for JSON marshaling/unmarshaling
type addressJSON struct {
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	EmailAddress string `json:"emailAddress,omitempty"`
	AddressLine  string `json:"addressLine"`
	Country      string `json:"country,omitempty"`
	State        string `json:"state,omitempty"`
	ZipCode      string `json:"zipCode,omitempty"`
}

// MarshalJSON implements json.Marshaler
func (a Address) MarshalJSON() ([]byte, error) {
	return json.Marshal(addressJSON{
		FirstName:    a.firstName,
		LastName:     a.lastName,
		EmailAddress: a.emailAddress,
		AddressLine:  a.addressLine,
		Country:      a.country,
		State:        a.state,
		ZipCode:      a.zipCode,
	})
}

// UnmarshalJSON implements json.Unmarshaler.
// All validation rules are applied through the NewAddress factory.
func (a *Address) UnmarshalJSON(data []byte) error {
	var v addressJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}

	if v.FirstName == "" && v.LastName == "" && v.AddressLine == "" {
		*a = EmptyAddress()
		return nil
	}

	addr, err := NewAddress(v.FirstName, v.LastName, v.EmailAddress, v.AddressLine, v.Country, v.State, v.ZipCode)
	if err != nil {
		return err
	}
	*a = addr
	return nil
}

// Value implements driver.Valuer for database storage.
// The address is stored as a JSON column.
func (a Address) Value() (driver.Value, error) {
	if a.IsEmpty() {
		return nil, nil
	}
	return json.Marshal(a)
}

// Scan implements sql.Scanner for database retrieval
func (a *Address) Scan(value any) error {
	if value == nil {
		*a = EmptyAddress()
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case string:
		data = []byte(v)
	case []byte:
		data = v
	default:
		return fmt.Errorf("cannot scan %T into Address", value)
	}

	if len(data) == 0 || string(data) == "null" {
		*a = EmptyAddress()
		return nil
	}

	return json.Unmarshal(data, a)
}
