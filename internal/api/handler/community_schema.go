package handler

import "time"

type createPostRequest struct {
	Type       string `json:"type"       validate:"required,oneof=roadConditions rideShare eventBuddy"`
	Town       string `json:"town"       validate:"required"`
	Title      string `json:"title"      validate:"required,max=200"`
	Body       string `json:"body"       validate:"required,max=5000"`
	TargetDate string `json:"targetDate" validate:"required,datetime=2006-01-02"`
}

type updatePostRequest struct {
	Type       *string `json:"type"       validate:"omitempty,oneof=roadConditions rideShare eventBuddy"`
	Town       *string `json:"town"       validate:"omitempty,min=1"`
	Title      *string `json:"title"      validate:"omitempty,min=1,max=200"`
	Body       *string `json:"body"       validate:"omitempty,min=1,max=5000"`
	TargetDate *string `json:"targetDate" validate:"omitempty,datetime=2006-01-02"`
}

type replyRequest struct {
	Body string `json:"body" validate:"required,max=2000"`
}

// listPostsQuery is bound from the query string of GET /community.
type listPostsQuery struct {
	Type string `query:"type" validate:"omitempty,oneof=roadConditions rideShare eventBuddy"`
	Town string `query:"town"`
}

type replyResponse struct {
	ID         string    `json:"id"`
	AuthorID   string    `json:"authorId"`
	AuthorName string    `json:"authorName,omitempty"`
	Body       string    `json:"body"`
	CreatedAt  time.Time `json:"createdAt"`
}

type postResponse struct {
	ID         string          `json:"id"`
	AuthorID   string          `json:"authorId"`
	AuthorName string          `json:"authorName,omitempty"`
	Type       string          `json:"type"`
	Town       string          `json:"town"`
	Title      string          `json:"title"`
	Body       string          `json:"body"`
	TargetDate string          `json:"targetDate"`
	Likes      []string        `json:"likes"`
	LikeCount  int             `json:"likeCount"`
	LikedByMe  bool            `json:"likedByMe"`
	Replies    []replyResponse `json:"replies"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

type listPostsResponse struct {
	Data []postResponse `json:"data"`
}
