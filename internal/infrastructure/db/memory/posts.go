package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/townboard/townboard-api/internal/core/domain"
	"github.com/townboard/townboard-api/internal/core/ports"
)

type PostRepository struct {
	mu    sync.RWMutex
	posts map[string]*domain.Post
}

func NewPostRepository() *PostRepository {
	return &PostRepository{posts: make(map[string]*domain.Post)}
}

// clonePost deep-copies p so callers never share slices with the store.
func clonePost(p *domain.Post) *domain.Post {
	out := *p
	out.Likes = append([]string{}, p.Likes...)
	out.Replies = append([]domain.Reply{}, p.Replies...)
	return &out
}

func (r *PostRepository) Create(_ context.Context, p *domain.Post) (*domain.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := clonePost(p)
	stored.ID = uuid.NewString()
	r.posts[stored.ID] = stored
	return clonePost(stored), nil
}

func (r *PostRepository) FindByID(_ context.Context, id string) (*domain.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.posts[id]
	if !ok {
		return nil, domain.ErrPostNotFound
	}
	return clonePost(p), nil
}

func (r *PostRepository) List(_ context.Context, f ports.PostFilter) ([]*domain.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Post, 0)
	for _, p := range r.posts {
		if f.Type != "" && p.Type != f.Type {
			continue
		}
		if f.Town != "" && p.Town != f.Town {
			continue
		}
		out = append(out, clonePost(p))
	}

	// Newest first; ties fall back to id so the order is stable across calls.
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *PostRepository) Replace(_ context.Context, p *domain.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.posts[p.ID]
	if !ok {
		return domain.ErrPostNotFound
	}
	// Reactions are owned by their own operations, not by author edits.
	stored := clonePost(p)
	stored.Likes = current.Likes
	stored.Replies = current.Replies
	r.posts[p.ID] = stored
	return nil
}

func (r *PostRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.posts[id]; !ok {
		return domain.ErrPostNotFound
	}
	delete(r.posts, id)
	return nil
}

func (r *PostRepository) AppendReply(_ context.Context, id string, reply domain.Reply) (*domain.Post, error) {
	return r.mutate(id, func(p *domain.Post) {
		p.Replies = append(p.Replies, reply)
	})
}

func (r *PostRepository) AddLike(_ context.Context, id, userID string) (*domain.Post, error) {
	return r.mutate(id, func(p *domain.Post) {
		if !p.LikedBy(userID) {
			p.Likes = append(p.Likes, userID)
		}
	})
}

func (r *PostRepository) RemoveLike(_ context.Context, id, userID string) (*domain.Post, error) {
	return r.mutate(id, func(p *domain.Post) {
		kept := p.Likes[:0]
		for _, l := range p.Likes {
			if l != userID {
				kept = append(kept, l)
			}
		}
		p.Likes = kept
	})
}

func (r *PostRepository) mutate(id string, fn func(p *domain.Post)) (*domain.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.posts[id]
	if !ok {
		return nil, domain.ErrPostNotFound
	}
	fn(p)
	return clonePost(p), nil
}
