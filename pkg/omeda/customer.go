package omeda

import (
	"context"
	"fmt"

	"github.com/parameter1/omeda-go/pkg/entity"
	"github.com/parameter1/omeda-go/pkg/schema"
)

// CustomerResource groups the customer endpoints.
type CustomerResource struct {
	client *Client
}

// Customer returns the customer endpoints.
func (c *Client) Customer() *CustomerResource { return &CustomerResource{client: c} }

// LookupByID returns a customer by Omeda customer id. Deactivated
// customers fail with an error matching ErrNotActive.
func (r *CustomerResource) LookupByID(ctx context.Context, id int64) (*entity.Customer, error) {
	endpoint := fmt.Sprintf("customer/%d/*", id)
	resp, err := r.client.Get(ctx, GetParams{Endpoint: endpoint})
	if err != nil {
		return nil, err
	}
	j, err := asJSON(resp, endpoint)
	if err != nil {
		return nil, err
	}
	return entity.NewCustomer(schema.AsRecord(j.Body()))
}

// Emails returns a customer's email addresses. A customer without
// addresses yields an empty slice.
func (r *CustomerResource) Emails(ctx context.Context, id int64) ([]*entity.CustomerEmail, error) {
	endpoint := fmt.Sprintf("customer/%d/email/*", id)
	resp, err := r.client.Get(ctx, GetParams{Endpoint: endpoint, ErrorOnNotFound: Bool(false)})
	if err != nil {
		return nil, err
	}
	j, err := asJSON(resp, endpoint)
	if err != nil {
		return nil, err
	}
	return entity.FromList(j.GetAsArray("Emails"), entity.NewCustomerEmail)
}
