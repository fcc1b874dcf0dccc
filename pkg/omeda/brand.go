package omeda

import (
	"context"

	"github.com/parameter1/omeda-go/pkg/entity"
	"github.com/parameter1/omeda-go/pkg/errors"
)

// BrandResource groups the brand lookup endpoints.
type BrandResource struct {
	client *Client
}

// Brand returns the brand lookup endpoints.
func (c *Client) Brand() *BrandResource { return &BrandResource{client: c} }

// ComprehensiveLookup returns the brand's products, demographics,
// deployment types and other reference data. Omeda expects results to be
// cached and refreshed periodically rather than fetched per request.
func (r *BrandResource) ComprehensiveLookup(ctx context.Context) (*JSONResponse, error) {
	return r.getJSON(ctx, GetParams{Endpoint: "comp/*"})
}

// Demographics returns the demographics from the comprehensive lookup.
func (r *BrandResource) Demographics(ctx context.Context) ([]*entity.Demographic, error) {
	resp, err := r.ComprehensiveLookup(ctx)
	if err != nil {
		return nil, err
	}
	return entity.FromList(resp.GetAsArray("Demographics"), entity.NewDemographic)
}

// BehaviorLookup returns the brand's behaviors. A brand without behaviors
// yields an empty response rather than an error.
func (r *BrandResource) BehaviorLookup(ctx context.Context) (*JSONResponse, error) {
	return r.getJSON(ctx, GetParams{Endpoint: "behavior/*", ErrorOnNotFound: Bool(false)})
}

// Behaviors returns the behaviors from the behavior lookup.
func (r *BrandResource) Behaviors(ctx context.Context) ([]*entity.Behavior, error) {
	resp, err := r.BehaviorLookup(ctx)
	if err != nil {
		return nil, err
	}
	return entity.FromList(resp.GetAsArray("Behaviors"), entity.NewBehavior)
}

// BehaviorActionsLookup returns the brand's behavior actions.
func (r *BrandResource) BehaviorActionsLookup(ctx context.Context) (*JSONResponse, error) {
	return r.getJSON(ctx, GetParams{Endpoint: "behavior/action/*", ErrorOnNotFound: Bool(false)})
}

// BehaviorCategoriesLookup returns the brand's behavior categories.
func (r *BrandResource) BehaviorCategoriesLookup(ctx context.Context) (*JSONResponse, error) {
	return r.getJSON(ctx, GetParams{Endpoint: "behavior/category/*", ErrorOnNotFound: Bool(false)})
}

// BehaviorAttributesLookup returns the brand's behavior attributes. The
// endpoint is undocumented.
func (r *BrandResource) BehaviorAttributesLookup(ctx context.Context) (*JSONResponse, error) {
	return r.getJSON(ctx, GetParams{Endpoint: "behavior/attribute/*", ErrorOnNotFound: Bool(false)})
}

func (r *BrandResource) getJSON(ctx context.Context, p GetParams) (*JSONResponse, error) {
	resp, err := r.client.Get(ctx, p)
	if err != nil {
		return nil, err
	}
	return asJSON(resp, p.Endpoint)
}

// asJSON narrows a response to the JSON variant.
func asJSON(resp Response, endpoint string) (*JSONResponse, error) {
	j, ok := resp.(*JSONResponse)
	if !ok {
		return nil, errors.New(errors.ErrCodeUnsupportedContentType,
			"expected a JSON response from %s, got %s", CleanPath(endpoint), resp.ContentType())
	}
	return j, nil
}
