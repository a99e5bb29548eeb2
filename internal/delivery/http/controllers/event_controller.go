package controllers

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	h "agendabooking/internal/delivery/http/helpers"
	"agendabooking/internal/delivery/http/middleware"
	"agendabooking/internal/domain"
)

// InviteeRequest is one entry of the invitee list on event creation.
// Type selects which of the other fields are meaningful:
// "user" needs id, "guest" needs guest_id, "new" needs email (name optional).
type InviteeRequest struct {
	Type    string `json:"type"`
	UserID  string `json:"id,omitempty"`
	GuestID string `json:"guest_id,omitempty"`
	Email   string `json:"email,omitempty"`
	Name    string `json:"name,omitempty"`
}

// CreateEventRequest is the request body for POST /events.
type CreateEventRequest struct {
	Title       string           `json:"title"`
	StartTime   time.Time        `json:"start_time"`
	EndTime     time.Time        `json:"end_time"`
	Invitees    []InviteeRequest `json:"participants"`
	Description string           `json:"description"`
	Anonymous   bool             `json:"anonymous"`
}

// Validate implements Validator. Shape checks only; the scheduler owns the
// interval and invitee semantics.
func (req CreateEventRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(req.Title) == "" {
		errs = append(errs, "title is required")
	}
	if req.StartTime.IsZero() {
		errs = append(errs, "start_time is required")
	}
	if req.EndTime.IsZero() {
		errs = append(errs, "end_time is required")
	}
	for _, inv := range req.Invitees {
		switch inv.Type {
		case "user", "guest", "new":
		default:
			errs = append(errs, "participant type must be \"user\", \"guest\", or \"new\"")
		}
	}
	return errs
}

// CreateEventResponse is the response body for POST /events (201).
type CreateEventResponse struct {
	ID string `json:"id"`
}

type EventController struct {
	Logger  *slog.Logger
	Service domain.ScheduleService
}

func NewEventController(logger *slog.Logger, svc domain.ScheduleService) *EventController {
	return &EventController{
		Logger:  logger,
		Service: svc,
	}
}

// CreateEvent godoc
// @Summary Create a calendar event
// @Description Creates an event owned by the authenticated user. Participants may be internal users, existing external guests, or new guests by email. Every internal participant (owner included) is conflict-checked against the half-open interval [start_time, end_time); on conflict nothing is written and 409 names the busy participant.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateEventRequest true "Event data"
// @Success 201 {object} helpers.APIResponse "data contains the new event id"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [post]
func (c *EventController) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req CreateEventRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	ownerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "unauthorized")
		return
	}
	invitees := make([]domain.Invitee, 0, len(req.Invitees))
	for _, inv := range req.Invitees {
		invitees = append(invitees, domain.Invitee{
			Type:    domain.InviteeType(inv.Type),
			UserID:  inv.UserID,
			GuestID: inv.GuestID,
			Email:   inv.Email,
			Name:    inv.Name,
		})
	}
	eventID, err := c.Service.CreateEvent(r.Context(), ownerID, req.Title, req.StartTime, req.EndTime, invitees, req.Description, req.Anonymous)
	if err != nil {
		h.WriteDomainError(w, r, c.Logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusCreated, CreateEventResponse{ID: eventID})
}

// ListEvents godoc
// @Summary List the caller's events
// @Description Returns every event the authenticated user participates in, as owner or participant.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains the event list"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [get]
func (c *EventController) ListEvents(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "unauthorized")
		return
	}
	events, err := c.Service.ListEventsFor(r.Context(), userID)
	if err != nil {
		h.WriteDomainError(w, r, c.Logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, events)
}
