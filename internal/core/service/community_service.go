package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/townboard/townboard-api/internal/core/domain"
	"github.com/townboard/townboard-api/internal/core/ports"
)

// CommunityService implements the community board. Any authenticated
// identity may post, reply and like; only the author may edit or delete.
type CommunityService struct {
	posts  ports.PostRepository
	users  ports.UserRepository
	markup *MarkupGuard
	now    func() time.Time
	log    zerolog.Logger
}

func NewCommunityService(posts ports.PostRepository, users ports.UserRepository, markup *MarkupGuard, log zerolog.Logger) *CommunityService {
	if markup == nil {
		markup = NewMarkupGuard()
	}
	return &CommunityService{posts: posts, users: users, markup: markup, now: time.Now, log: log}
}

func (s *CommunityService) Create(ctx context.Context, in ports.CreatePostInput, p domain.Principal) (*domain.Post, error) {
	author, err := s.author(ctx, p)
	if err != nil {
		return nil, err
	}

	if err := s.markup.check(field("title", &in.Title), field("body", &in.Body)); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	post := &domain.Post{
		AuthorID:   p.UserID,
		AuthorName: author.DisplayName,
		Type:       domain.PostType(in.Type),
		Town:       in.Town,
		Title:      in.Title,
		Body:       in.Body,
		TargetDate: in.TargetDate,
		Likes:      []string{},
		Replies:    []domain.Reply{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := post.Validate(); err != nil {
		return nil, err
	}

	created, err := s.posts.Create(ctx, post)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to create post")
		return nil, err
	}

	s.log.Info().Str("post_id", created.ID).Str("type", string(created.Type)).Str("author_id", p.UserID).Msg("post created")
	return created, nil
}

func (s *CommunityService) List(ctx context.Context, filter ports.PostFilter) ([]*domain.Post, error) {
	if filter.Type != "" && !filter.Type.Valid() {
		return nil, domain.Invalid("type must be one of: roadConditions, rideShare, eventBuddy")
	}
	if filter.Town != "" && !domain.ValidTown(filter.Town) {
		return nil, domain.Invalid("town is not a supported town")
	}
	return s.posts.List(ctx, filter)
}

func (s *CommunityService) Get(ctx context.Context, id string) (*domain.Post, error) {
	return s.posts.FindByID(ctx, id)
}

func (s *CommunityService) CheckOwner(ctx context.Context, id string, p domain.Principal) error {
	_, err := loadOwned(ctx, id, p, s.posts.FindByID)
	return err
}

func (s *CommunityService) Update(ctx context.Context, id string, patch domain.PostPatch, p domain.Principal) (*domain.Post, error) {
	post, err := loadOwned(ctx, id, p, s.posts.FindByID)
	if err != nil {
		return nil, err
	}
	if patch.Empty() {
		return nil, domain.Invalid("no fields to update")
	}

	if err := s.markup.check(field("title", patch.Title), field("body", patch.Body)); err != nil {
		return nil, err
	}

	updated := *post
	patch.Apply(&updated)
	if err := updated.Validate(); err != nil {
		return nil, err
	}
	updated.UpdatedAt = s.now().UTC()

	if err := s.posts.Replace(ctx, &updated); err != nil {
		return nil, err
	}

	s.log.Info().Str("post_id", id).Str("user_id", p.UserID).Msg("post updated")
	return &updated, nil
}

func (s *CommunityService) Delete(ctx context.Context, id string, p domain.Principal) error {
	if _, err := loadOwned(ctx, id, p, s.posts.FindByID); err != nil {
		return err
	}
	if err := s.posts.Delete(ctx, id); err != nil {
		return err
	}

	s.log.Info().Str("post_id", id).Str("user_id", p.UserID).Msg("post deleted")
	return nil
}

// Reply appends a reply authored by p. No ownership check applies.
func (s *CommunityService) Reply(ctx context.Context, id, body string, p domain.Principal) (*domain.Post, error) {
	author, err := s.author(ctx, p)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(body) == "" {
		return nil, domain.Invalid("body is required")
	}
	if err := s.markup.check(field("body", &body)); err != nil {
		return nil, err
	}

	post, err := s.posts.AppendReply(ctx, id, domain.Reply{
		ID:         uuid.NewString(),
		AuthorID:   p.UserID,
		AuthorName: author.DisplayName,
		Body:       body,
		CreatedAt:  s.now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	s.log.Debug().Str("post_id", id).Str("user_id", p.UserID).Msg("reply added")
	return post, nil
}

// Like adds p to the post's like set. Liking twice is a no-op.
func (s *CommunityService) Like(ctx context.Context, id string, p domain.Principal) (*domain.Post, error) {
	if !p.Authenticated() {
		return nil, domain.ErrMissingPrincipal
	}
	return s.posts.AddLike(ctx, id, p.UserID)
}

// Unlike removes p from the post's like set. Unliking twice is a no-op.
func (s *CommunityService) Unlike(ctx context.Context, id string, p domain.Principal) (*domain.Post, error) {
	if !p.Authenticated() {
		return nil, domain.ErrMissingPrincipal
	}
	return s.posts.RemoveLike(ctx, id, p.UserID)
}

// author resolves the caller's identity; a token for a vanished account is
// treated as invalid.
func (s *CommunityService) author(ctx context.Context, p domain.Principal) (*domain.User, error) {
	if !p.Authenticated() {
		return nil, domain.ErrMissingPrincipal
	}
	user, err := s.users.FindByID(ctx, p.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidToken
		}
		return nil, err
	}
	return user, nil
}
