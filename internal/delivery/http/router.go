package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"agendabooking/internal/delivery/http/controllers"
)

// NewRouter initializes the HTTP router with all application routes.
// Every route except registration, login, and swagger requires a Bearer token.
func NewRouter(
	authController *controllers.AuthController,
	eventController *controllers.EventController,
	inviteController *controllers.InviteController,
	searchController *controllers.SearchController,
	adminController *controllers.AdminController,
	requireAuth func(http.HandlerFunc) http.HandlerFunc,
) *http.ServeMux {
	mux := http.NewServeMux()

	// Auth
	mux.HandleFunc("POST /auth/register", authController.Register)
	mux.HandleFunc("POST /auth/login", authController.Login)

	// Events
	mux.HandleFunc("POST /events", requireAuth(eventController.CreateEvent))
	mux.HandleFunc("GET /events", requireAuth(eventController.ListEvents))

	// Invites
	mux.HandleFunc("POST /events/{eventID}/invite", requireAuth(inviteController.CreateInvite))
	mux.HandleFunc("GET /invites", requireAuth(inviteController.ListInvites))
	mux.HandleFunc("POST /invites/{inviteID}/response", requireAuth(inviteController.RespondInvite))

	// Search
	mux.HandleFunc("GET /users/search", requireAuth(searchController.Search))

	// Admin
	mux.HandleFunc("GET /admin/users", requireAuth(adminController.ListUsers))
	mux.HandleFunc("POST /admin/users", requireAuth(adminController.CreateUser))
	mux.HandleFunc("PUT /admin/users/{userID}/role", requireAuth(adminController.UpdateRole))
	mux.HandleFunc("PUT /admin/users/{userID}/status", requireAuth(adminController.UpdateStatus))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
