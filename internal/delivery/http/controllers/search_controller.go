package controllers

import (
	"log/slog"
	"net/http"

	h "agendabooking/internal/delivery/http/helpers"
	"agendabooking/internal/delivery/http/middleware"
	"agendabooking/internal/domain"
)

type SearchController struct {
	Logger  *slog.Logger
	Service domain.DirectoryService
}

func NewSearchController(logger *slog.Logger, svc domain.DirectoryService) *SearchController {
	return &SearchController{
		Logger:  logger,
		Service: svc,
	}
}

// Search godoc
// @Summary Autocomplete users and guests
// @Description Matches internal users and external guests by name or email substring, tagged by type. The caller is excluded. Queries shorter than two characters return an empty list.
// @Tags search
// @Produce json
// @Security BearerAuth
// @Param q query string true "Search query (min 2 characters)"
// @Success 200 {object} helpers.APIResponse "data contains the merged results"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /users/search [get]
func (c *SearchController) Search(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "unauthorized")
		return
	}
	results, err := c.Service.SearchParticipants(r.Context(), r.URL.Query().Get("q"), userID)
	if err != nil {
		h.WriteDomainError(w, r, c.Logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, results)
}
