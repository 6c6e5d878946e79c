package domain

import (
	"strings"
	"time"
)

// PostType classifies a community board post.
type PostType string

const (
	PostRoadConditions PostType = "roadConditions"
	PostRideShare      PostType = "rideShare"
	PostEventBuddy     PostType = "eventBuddy"
)

func (t PostType) Valid() bool {
	return t == PostRoadConditions || t == PostRideShare || t == PostEventBuddy
}

// Reply is a single comment appended to a post.
type Reply struct {
	ID         string    `json:"id"`
	AuthorID   string    `json:"authorId"`
	AuthorName string    `json:"authorName,omitempty"`
	Body       string    `json:"body"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Post is a community board entry written by any authenticated identity.
type Post struct {
	ID         string    `json:"id"`
	AuthorID   string    `json:"authorId"`
	AuthorName string    `json:"authorName,omitempty"`
	Type       PostType  `json:"type"`
	Town       string    `json:"town"`
	Title      string    `json:"title"`
	Body       string    `json:"body"`
	TargetDate string    `json:"targetDate"`
	Likes      []string  `json:"likes"`
	Replies    []Reply   `json:"replies"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func (p *Post) OwnerID() string { return p.AuthorID }

// Validate checks the fields every stored post must carry.
func (p *Post) Validate() error {
	switch {
	case p.Type == "":
		return Invalid("type is required")
	case !p.Type.Valid():
		return Invalid("type must be one of: roadConditions, rideShare, eventBuddy")
	case p.Town == "":
		return Invalid("town is required")
	case !ValidTown(p.Town):
		return Invalid("town is not a supported town")
	case strings.TrimSpace(p.Title) == "":
		return Invalid("title is required")
	case strings.TrimSpace(p.Body) == "":
		return Invalid("body is required")
	case p.TargetDate == "":
		return Invalid("targetDate is required")
	case !ValidDate(p.TargetDate):
		return Invalid("targetDate must be formatted as YYYY-MM-DD")
	case p.AuthorID == "":
		return Invalid("post has no author")
	}
	return nil
}

// PostPatch carries a partial update; nil fields are left untouched.
type PostPatch struct {
	Type       *PostType
	Town       *string
	Title      *string
	Body       *string
	TargetDate *string
}

func (p PostPatch) Empty() bool {
	return p.Type == nil && p.Town == nil && p.Title == nil && p.Body == nil && p.TargetDate == nil
}

func (p PostPatch) Apply(post *Post) {
	if p.Type != nil {
		post.Type = *p.Type
	}
	set(&post.Town, p.Town)
	set(&post.Title, p.Title)
	set(&post.Body, p.Body)
	set(&post.TargetDate, p.TargetDate)
}

// LikedBy reports whether userID has liked the post.
func (p *Post) LikedBy(userID string) bool {
	return contains(p.Likes, userID)
}
