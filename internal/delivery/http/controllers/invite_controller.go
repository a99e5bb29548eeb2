package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	h "agendabooking/internal/delivery/http/helpers"
	"agendabooking/internal/delivery/http/middleware"
	"agendabooking/internal/domain"
)

// CreateInviteRequest is the request body for POST /events/{eventID}/invite.
type CreateInviteRequest struct {
	ToUserID  string `json:"to_user_id"`
	Anonymous bool   `json:"anonymous"`
}

// Validate implements Validator.
func (req CreateInviteRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(req.ToUserID) == "" {
		errs = append(errs, "to_user_id is required")
	}
	return errs
}

// CreateInviteResponse is the response body for POST /events/{eventID}/invite (201).
type CreateInviteResponse struct {
	ID string `json:"id"`
}

// RespondInviteRequest is the request body for POST /invites/{inviteID}/response.
type RespondInviteRequest struct {
	Status string `json:"status"`
}

// Validate implements Validator.
func (req RespondInviteRequest) Validate() []string {
	var errs []string
	if req.Status != domain.InviteAccepted && req.Status != domain.InviteRejected {
		errs = append(errs, "status must be \"accepted\" or \"rejected\"")
	}
	return errs
}

type InviteController struct {
	Logger  *slog.Logger
	Service domain.InviteService
}

func NewInviteController(logger *slog.Logger, svc domain.InviteService) *InviteController {
	return &InviteController{
		Logger:  logger,
		Service: svc,
	}
}

// CreateInvite godoc
// @Summary Invite a user to an event
// @Description Stores a pending invite for one internal user. Only the event owner or an admin may invite. The invitee is conflict-checked against the event's interval; an anonymous invite hides event detail from the invitee's listing.
// @Tags invites
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Param body body CreateInviteRequest true "Invite data"
// @Success 201 {object} helpers.APIResponse "data contains the new invite id"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (not owner or admin)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (invitee busy)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/invite [post]
func (c *InviteController) CreateInvite(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "missing eventID")
		return
	}
	var req CreateInviteRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	fromUserID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "unauthorized")
		return
	}
	inviteID, err := c.Service.CreateInvite(r.Context(), fromUserID, eventID, req.ToUserID, req.Anonymous)
	if err != nil {
		h.WriteDomainError(w, r, c.Logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusCreated, CreateInviteResponse{ID: inviteID})
}

// ListInvites godoc
// @Summary List the caller's invites
// @Description Returns every invite targeting the authenticated user, each passed through the visibility filter: anonymous invites carry only id, event id, status, sender, and a placeholder note.
// @Tags invites
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains the invite list"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /invites [get]
func (c *InviteController) ListInvites(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "unauthorized")
		return
	}
	invites, err := c.Service.ListInvitesFor(r.Context(), userID)
	if err != nil {
		h.WriteDomainError(w, r, c.Logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, invites)
}

// RespondInvite godoc
// @Summary Respond to an invite
// @Description Accepts or rejects an invite targeting the authenticated user. Acceptance adds the user to the event's participants.
// @Tags invites
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param inviteID path string true "Invite ID"
// @Param body body RespondInviteRequest true "Response: accepted or rejected"
// @Success 200 {object} helpers.APIResponse "data contains ok"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /invites/{inviteID}/response [post]
func (c *InviteController) RespondInvite(w http.ResponseWriter, r *http.Request) {
	inviteID := r.PathValue("inviteID")
	if inviteID == "" {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "missing inviteID")
		return
	}
	var req RespondInviteRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "unauthorized")
		return
	}
	if err := c.Service.RespondToInvite(r.Context(), inviteID, userID, req.Status); err != nil {
		h.WriteDomainError(w, r, c.Logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, map[string]bool{"ok": true})
}
