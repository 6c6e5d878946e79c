package ports

import (
	"context"

	"github.com/townboard/townboard-api/internal/core/domain"
)

// PostFilter narrows a community board listing.
type PostFilter struct {
	Type domain.PostType
	Town string
}

// PostRepository defines persistence operations for community posts.
// Reply and like mutations are single-document atomic updates.
type PostRepository interface {
	Create(ctx context.Context, p *domain.Post) (*domain.Post, error)
	FindByID(ctx context.Context, id string) (*domain.Post, error)
	// List returns matching posts, newest first.
	List(ctx context.Context, filter PostFilter) ([]*domain.Post, error)
	Replace(ctx context.Context, p *domain.Post) error
	Delete(ctx context.Context, id string) error
	AppendReply(ctx context.Context, id string, reply domain.Reply) (*domain.Post, error)
	AddLike(ctx context.Context, id, userID string) (*domain.Post, error)
	RemoveLike(ctx context.Context, id, userID string) (*domain.Post, error)
}
