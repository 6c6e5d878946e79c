package ports

import (
	"context"

	"github.com/townboard/townboard-api/internal/core/domain"
)

// CreatePostInput carries the fields supplied for a new community post.
type CreatePostInput struct {
	Type       string
	Town       string
	Title      string
	Body       string
	TargetDate string
}

type CommunityService interface {
	Create(ctx context.Context, in CreatePostInput, p domain.Principal) (*domain.Post, error)
	List(ctx context.Context, filter PostFilter) ([]*domain.Post, error)
	Get(ctx context.Context, id string) (*domain.Post, error)
	CheckOwner(ctx context.Context, id string, p domain.Principal) error
	Update(ctx context.Context, id string, patch domain.PostPatch, p domain.Principal) (*domain.Post, error)
	Delete(ctx context.Context, id string, p domain.Principal) error
	Reply(ctx context.Context, id, body string, p domain.Principal) (*domain.Post, error)
	Like(ctx context.Context, id string, p domain.Principal) (*domain.Post, error)
	Unlike(ctx context.Context, id string, p domain.Principal) (*domain.Post, error)
}
