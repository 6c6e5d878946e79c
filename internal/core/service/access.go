package service

import (
	"context"

	"github.com/townboard/townboard-api/internal/core/domain"
)

// loadOwned fetches a resource for mutation and confirms p created it.
// Both resource services go through here so the check cannot drift.
func loadOwned[T domain.Owned](ctx context.Context, id string, p domain.Principal, find func(context.Context, string) (T, error)) (T, error) {
	var zero T
	if !p.Authenticated() {
		return zero, domain.ErrMissingPrincipal
	}
	resource, err := find(ctx, id)
	if err != nil {
		return zero, err
	}
	if err := domain.AssertOwner(resource, p); err != nil {
		return zero, err
	}
	return resource, nil
}
