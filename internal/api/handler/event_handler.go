package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/townboard/townboard-api/internal/api/metrics"
	"github.com/townboard/townboard-api/internal/core/ports"
)

// EventHandler handles HTTP requests for the event feed.
type EventHandler struct {
	service ports.EventService
}

func NewEventHandler(service ports.EventService) *EventHandler {
	return &EventHandler{service: service}
}

// List handles GET /events.
//
// @Summary      List upcoming events
// @Description  Events dated today or later (in the configured timezone), ascending by date then time.
// @Tags         events
// @Produce      json
// @Param        from      query     string  false  "Earliest date (YYYY-MM-DD), defaults to today"
// @Param        town      query     string  false  "Town filter"
// @Param        category  query     string  false  "Category filter"
// @Success      200       {object}  listEventsResponse
// @Failure      400       {object}  errorResponse
// @Router       /events [get]
func (h *EventHandler) List(c echo.Context) error {
	var q listEventsQuery
	if err := c.Bind(&q); err != nil {
		return err
	}
	if err := c.Validate(&q); err != nil {
		return err
	}

	events, err := h.service.List(c.Request().Context(), ports.ListEventsInput{
		FromDate: q.From,
		Town:     q.Town,
		Category: q.Category,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListEventsResponse(events))
}

// ListMine handles GET /events/mine.
//
// @Summary      List the caller's events
// @Tags         events
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  listEventsResponse
// @Failure      401  {object}  errorResponse
// @Router       /events/mine [get]
func (h *EventHandler) ListMine(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	events, err := h.service.ListMine(c.Request().Context(), p)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListEventsResponse(events))
}

// Get handles GET /events/:id.
//
// @Summary      Get an event
// @Tags         events
// @Produce      json
// @Param        id   path      string  true  "Event id"
// @Success      200  {object}  eventResponse
// @Failure      404  {object}  errorResponse
// @Router       /events/{id} [get]
func (h *EventHandler) Get(c echo.Context) error {
	event, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toEventResponse(event))
}

// Create handles POST /events.
//
// @Summary      Publish an event
// @Tags         events
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createEventRequest  true  "Event details"
// @Success      201   {object}  eventResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /events [post]
func (h *EventHandler) Create(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req createEventRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	event, err := h.service.Create(c.Request().Context(), toCreateEventInput(req), p)
	if err != nil {
		return err
	}

	metrics.ResourceMutationsTotal.WithLabelValues("event", "create").Inc()
	return c.JSON(http.StatusCreated, toEventResponse(event))
}

// Update handles PUT /events/:id.
//
// @Summary      Update an event
// @Description  Only the provided fields change. Restricted to the event's creator.
// @Tags         events
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string              true  "Event id"
// @Param        body  body      updateEventRequest  true  "Fields to change"
// @Success      200   {object}  eventResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /events/{id} [put]
func (h *EventHandler) Update(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	// Ownership is settled before the body is looked at.
	id := c.Param("id")
	if err := h.service.CheckOwner(c.Request().Context(), id, p); err != nil {
		return err
	}

	var req updateEventRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	event, err := h.service.Update(c.Request().Context(), id, toEventPatch(req), p)
	if err != nil {
		return err
	}

	metrics.ResourceMutationsTotal.WithLabelValues("event", "update").Inc()
	return c.JSON(http.StatusOK, toEventResponse(event))
}

// Delete handles DELETE /events/:id.
//
// @Summary      Delete an event
// @Tags         events
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Event id"
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /events/{id} [delete]
func (h *EventHandler) Delete(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), c.Param("id"), p); err != nil {
		return err
	}

	metrics.ResourceMutationsTotal.WithLabelValues("event", "delete").Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "event deleted"})
}
