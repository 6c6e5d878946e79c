package handler

import (
	"github.com/townboard/townboard-api/internal/core/domain"
	"github.com/townboard/townboard-api/internal/core/ports"
)

// --- Request → Service input ---

func toCreatePostInput(req createPostRequest) ports.CreatePostInput {
	return ports.CreatePostInput{
		Type:       req.Type,
		Town:       req.Town,
		Title:      req.Title,
		Body:       req.Body,
		TargetDate: req.TargetDate,
	}
}

func toPostPatch(req updatePostRequest) domain.PostPatch {
	patch := domain.PostPatch{
		Town:       req.Town,
		Title:      req.Title,
		Body:       req.Body,
		TargetDate: req.TargetDate,
	}
	if req.Type != nil {
		t := domain.PostType(*req.Type)
		patch.Type = &t
	}
	return patch
}

// --- Service result → HTTP response ---

// toPostResponse renders p from the point of view of viewerID.
func toPostResponse(p *domain.Post, viewerID string) postResponse {
	likes := p.Likes
	if likes == nil {
		likes = []string{}
	}
	replies := make([]replyResponse, len(p.Replies))
	for i, r := range p.Replies {
		replies[i] = replyResponse{
			ID:         r.ID,
			AuthorID:   r.AuthorID,
			AuthorName: r.AuthorName,
			Body:       r.Body,
			CreatedAt:  r.CreatedAt.UTC(),
		}
	}
	return postResponse{
		ID:         p.ID,
		AuthorID:   p.AuthorID,
		AuthorName: p.AuthorName,
		Type:       string(p.Type),
		Town:       p.Town,
		Title:      p.Title,
		Body:       p.Body,
		TargetDate: p.TargetDate,
		Likes:      likes,
		LikeCount:  len(likes),
		LikedByMe:  p.LikedBy(viewerID),
		Replies:    replies,
		CreatedAt:  p.CreatedAt.UTC(),
		UpdatedAt:  p.UpdatedAt.UTC(),
	}
}

func toListPostsResponse(posts []*domain.Post, viewerID string) listPostsResponse {
	items := make([]postResponse, len(posts))
	for i, p := range posts {
		items[i] = toPostResponse(p, viewerID)
	}
	return listPostsResponse{Data: items}
}
