package omeda

import (
	"context"
	"fmt"

	"github.com/parameter1/omeda-go/pkg/entity"
	"github.com/parameter1/omeda-go/pkg/errors"
)

// EmailResource groups the email deployment endpoints. They are scoped
// to the client, so Config.ClientAbbrev must be set.
type EmailResource struct {
	client *Client
}

// Email returns the email deployment endpoints.
func (c *Client) Email() *EmailResource { return &EmailResource{client: c} }

// ClickLookup returns the raw click report of a deployment.
func (r *EmailResource) ClickLookup(ctx context.Context, trackID string) (*JSONResponse, error) {
	if err := errors.ValidateIdentifier("deployment track id", trackID); err != nil {
		return nil, err
	}
	endpoint := fmt.Sprintf("email/clicks/%s/*", trackID)
	resp, err := r.client.Get(ctx, GetParams{Endpoint: endpoint, UseClientURL: true, ErrorOnNotFound: Bool(false)})
	if err != nil {
		return nil, err
	}
	return asJSON(resp, endpoint)
}

// LinkClicks returns the per-link clicks of a deployment. A deployment
// without clicks yields an empty slice.
func (r *EmailResource) LinkClicks(ctx context.Context, trackID string) ([]*entity.LinkClick, error) {
	resp, err := r.ClickLookup(ctx, trackID)
	if err != nil {
		return nil, err
	}
	return entity.FromList(resp.GetAsArray("Links"), entity.NewLinkClick)
}
