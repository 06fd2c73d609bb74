package valueobject

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// Address is a value object representing a property's physical address.
// It is immutable - all operations return new Address instances.
type Address struct {
	county     string
	town       string
	street     string
	postalCode string
	country    string
}

// AddressOption is a functional option for configuring Address
type AddressOption func(*Address)

// WithPostalCode sets the postal code for the address
func WithPostalCode(postalCode string) AddressOption {
	return func(a *Address) {
		a.postalCode = strings.TrimSpace(postalCode)
	}
}

// WithCountry sets the country for the address
func WithCountry(country string) AddressOption {
	return func(a *Address) {
		a.country = strings.TrimSpace(country)
	}
}

// NewAddress creates a new Address. County, town and street are required.
func NewAddress(county, town, street string, opts ...AddressOption) (Address, error) {
	county = strings.TrimSpace(county)
	town = strings.TrimSpace(town)
	street = strings.TrimSpace(street)

	if county == "" {
		return Address{}, fmt.Errorf("county cannot be empty")
	}
	if town == "" {
		return Address{}, fmt.Errorf("town cannot be empty")
	}
	if street == "" {
		return Address{}, fmt.Errorf("street cannot be empty")
	}
	if len(street) > 300 {
		return Address{}, fmt.Errorf("street cannot exceed 300 characters")
	}

	addr := Address{
		county:  county,
		town:    town,
		street:  street,
		country: "Kenya",
	}

	for _, opt := range opts {
		opt(&addr)
	}

	if len(addr.country) > 100 {
		return Address{}, fmt.Errorf("country cannot exceed 100 characters")
	}

	return addr, nil
}

// EmptyAddress returns an empty address (for optional address fields)
func EmptyAddress() Address {
	return Address{}
}

// County returns the county
func (a Address) County() string {
	return a.county
}

// Town returns the town
func (a Address) Town() string {
	return a.town
}

// Street returns the street / estate detail
func (a Address) Street() string {
	return a.street
}

// PostalCode returns the postal code
func (a Address) PostalCode() string {
	return a.postalCode
}

// Country returns the country
func (a Address) Country() string {
	return a.country
}

// IsEmpty returns true if the address has no required fields set
func (a Address) IsEmpty() bool {
	return a.county == "" && a.town == "" && a.street == ""
}

// String returns a single-line representation of the address
func (a Address) String() string {
	parts := make([]string, 0, 5)
	for _, p := range []string{a.street, a.town, a.county, a.postalCode, a.country} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// Equals returns true if both addresses have identical fields
func (a Address) Equals(other Address) bool {
	return a == other
}

type addressJSON struct {
	County     string `json:"county"`
	Town       string `json:"town"`
	Street     string `json:"street"`
	PostalCode string `json:"postal_code,omitempty"`
	Country    string `json:"country,omitempty"`
}

// MarshalJSON implements json.Marshaler
func (a Address) MarshalJSON() ([]byte, error) {
	return json.Marshal(addressJSON{
		County:     a.county,
		Town:       a.town,
		Street:     a.street,
		PostalCode: a.postalCode,
		Country:    a.country,
	})
}

// UnmarshalJSON implements json.Unmarshaler
func (a *Address) UnmarshalJSON(data []byte) error {
	var v addressJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	a.county = v.County
	a.town = v.Town
	a.street = v.Street
	a.postalCode = v.PostalCode
	a.country = v.Country
	return nil
}

// Value implements driver.Valuer for storage as a JSON column
func (a Address) Value() (driver.Value, error) {
	b, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner for retrieval from a JSON column
func (a *Address) Scan(value any) error {
	if value == nil {
		*a = Address{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into Address", value)
	}

	if len(bytes) == 0 {
		*a = Address{}
		return nil
	}
	return json.Unmarshal(bytes, a)
}
