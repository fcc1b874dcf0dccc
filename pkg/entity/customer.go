package entity

import (
	"github.com/parameter1/omeda-go/pkg/schema"
)

var (
	customerSchema      = mustSchema("customer")
	customerEmailSchema = mustSchema("customer-email")
)

// Customer is a customer record from the customer lookup. Related
// collections (emails, addresses) are returned by Omeda as links.
type Customer struct {
	schema.Entity
}

// NewCustomer normalizes a raw customer record.
func NewCustomer(raw schema.Record) (*Customer, error) {
	return newEntity(customerSchema, nil, raw, func(e schema.Entity) *Customer {
		return &Customer{Entity: e}
	})
}

// ID returns the Omeda customer id.
func (c *Customer) ID() int64 { return intField(c.Entity, "Id") }

// EncryptedID returns the encrypted customer id.
func (c *Customer) EncryptedID() string { return stringField(c.Entity, "EncryptedCustomerId") }

// Name returns the first and last name joined by a space.
func (c *Customer) Name() string {
	first, last := stringField(c.Entity, "FirstName"), stringField(c.Entity, "LastName")
	switch {
	case first == "":
		return last
	case last == "":
		return first
	}
	return first + " " + last
}

// Email status codes.
const (
	EmailInactive = 0
	EmailPrimary  = 1
	EmailActive   = 2
)

// CustomerEmail is one email address on a customer.
type CustomerEmail struct {
	schema.Entity
}

// NewCustomerEmail normalizes a raw customer email record.
func NewCustomerEmail(raw schema.Record) (*CustomerEmail, error) {
	return newEntity(customerEmailSchema, nil, raw, func(e schema.Entity) *CustomerEmail {
		return &CustomerEmail{Entity: e}
	})
}

// ID returns the email record id.
func (e *CustomerEmail) ID() int64 { return intField(e.Entity, "Id") }

// Address returns the email address.
func (e *CustomerEmail) Address() string { return stringField(e.Entity, "EmailAddress") }

// IsPrimary reports whether this is the customer's primary address.
func (e *CustomerEmail) IsPrimary() bool {
	code, ok := e.Int("StatusCode")
	return ok && code == EmailPrimary
}
