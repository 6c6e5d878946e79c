package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/townboard/townboard-api/internal/api/metrics"
	"github.com/townboard/townboard-api/internal/core/domain"
	"github.com/townboard/townboard-api/internal/core/ports"
)

// CommunityHandler handles HTTP requests for the community boards.
// Every route runs behind the Auth middleware.
type CommunityHandler struct {
	service ports.CommunityService
}

func NewCommunityHandler(service ports.CommunityService) *CommunityHandler {
	return &CommunityHandler{service: service}
}

// List handles GET /community.
//
// @Summary      List community posts
// @Description  Newest first, optionally filtered by type and town.
// @Tags         community
// @Produce      json
// @Security     BearerAuth
// @Param        type  query     string  false  "roadConditions, rideShare or eventBuddy"
// @Param        town  query     string  false  "Town filter"
// @Success      200   {object}  listPostsResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /community [get]
func (h *CommunityHandler) List(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var q listPostsQuery
	if err := c.Bind(&q); err != nil {
		return err
	}
	if err := c.Validate(&q); err != nil {
		return err
	}

	posts, err := h.service.List(c.Request().Context(), ports.PostFilter{
		Type: domain.PostType(q.Type),
		Town: q.Town,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListPostsResponse(posts, p.UserID))
}

// Get handles GET /community/:id.
//
// @Summary      Get a community post
// @Tags         community
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Post id"
// @Success      200  {object}  postResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /community/{id} [get]
func (h *CommunityHandler) Get(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	post, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPostResponse(post, p.UserID))
}

// Create handles POST /community.
//
// @Summary      Create a community post
// @Tags         community
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createPostRequest  true  "Post details"
// @Success      201   {object}  postResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /community [post]
func (h *CommunityHandler) Create(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req createPostRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	post, err := h.service.Create(c.Request().Context(), toCreatePostInput(req), p)
	if err != nil {
		return err
	}

	metrics.ResourceMutationsTotal.WithLabelValues("post", "create").Inc()
	return c.JSON(http.StatusCreated, toPostResponse(post, p.UserID))
}

// Update handles PUT /community/:id.
//
// @Summary      Update a community post
// @Description  Only the provided fields change. Restricted to the post's author.
// @Tags         community
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Post id"
// @Param        body  body      updatePostRequest  true  "Fields to change"
// @Success      200   {object}  postResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /community/{id} [put]
func (h *CommunityHandler) Update(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	id := c.Param("id")
	if err := h.service.CheckOwner(c.Request().Context(), id, p); err != nil {
		return err
	}

	var req updatePostRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	post, err := h.service.Update(c.Request().Context(), id, toPostPatch(req), p)
	if err != nil {
		return err
	}

	metrics.ResourceMutationsTotal.WithLabelValues("post", "update").Inc()
	return c.JSON(http.StatusOK, toPostResponse(post, p.UserID))
}

// Delete handles DELETE /community/:id.
//
// @Summary      Delete a community post
// @Tags         community
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Post id"
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /community/{id} [delete]
func (h *CommunityHandler) Delete(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), c.Param("id"), p); err != nil {
		return err
	}

	metrics.ResourceMutationsTotal.WithLabelValues("post", "delete").Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "post deleted"})
}

// Reply handles POST /community/:id/replies.
//
// @Summary      Reply to a community post
// @Tags         community
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string        true  "Post id"
// @Param        body  body      replyRequest  true  "Reply"
// @Success      201   {object}  postResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /community/{id}/replies [post]
func (h *CommunityHandler) Reply(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req replyRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	post, err := h.service.Reply(c.Request().Context(), c.Param("id"), req.Body, p)
	if err != nil {
		return err
	}

	metrics.ResourceMutationsTotal.WithLabelValues("post", "reply").Inc()
	return c.JSON(http.StatusCreated, toPostResponse(post, p.UserID))
}

// Like handles POST /community/:id/likes. Liking twice is a no-op.
//
// @Summary      Like a community post
// @Tags         community
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Post id"
// @Success      200  {object}  postResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /community/{id}/likes [post]
func (h *CommunityHandler) Like(c echo.Context) error {
	return h.toggleLike(c, "like", h.service.Like)
}

// Unlike handles DELETE /community/:id/likes.
//
// @Summary      Remove a like from a community post
// @Tags         community
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Post id"
// @Success      200  {object}  postResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /community/{id}/likes [delete]
func (h *CommunityHandler) Unlike(c echo.Context) error {
	return h.toggleLike(c, "unlike", h.service.Unlike)
}

type likeFunc func(ctx context.Context, id string, p domain.Principal) (*domain.Post, error)

func (h *CommunityHandler) toggleLike(c echo.Context, action string, fn likeFunc) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	post, err := fn(c.Request().Context(), c.Param("id"), p)
	if err != nil {
		return err
	}

	metrics.ResourceMutationsTotal.WithLabelValues("post", action).Inc()
	return c.JSON(http.StatusOK, toPostResponse(post, p.UserID))
}
