package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"

	"agendabooking/config"
	_ "agendabooking/docs"
	"agendabooking/internal/adapters/auth"
	delivery "agendabooking/internal/delivery/http"
	"agendabooking/internal/delivery/http/controllers"
	"agendabooking/internal/delivery/http/middleware"
	"agendabooking/internal/repository/postgres"
	"agendabooking/internal/services"
)

const serviceTimeout = 5 * time.Second

// @title Agenda Booking API
// @version 1.0
// @description Multi-user scheduling backend: events with conflict detection, mixed internal/guest participants, and anonymous invites.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger := config.NewLogger()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	userRepo := postgres.NewUserRepository(db)
	guestRepo := postgres.NewGuestRepository(db)
	eventRepo := postgres.NewEventRepository(db)
	inviteRepo := postgres.NewInviteRepository(db)
	conflicts := postgres.NewParticipantRepository(db)

	hasher := auth.NewBcryptHasher(bcrypt.DefaultCost)
	tokens := auth.NewJWTTokens(cfg.JWTSecret)

	authService := services.NewAuthService(userRepo, hasher, tokens, cfg.TokenExpiry)
	scheduleService := services.NewScheduleService(eventRepo, guestRepo, conflicts, serviceTimeout)
	inviteService := services.NewInviteService(inviteRepo, eventRepo, userRepo, conflicts, serviceTimeout)
	directoryService := services.NewDirectoryService(userRepo, guestRepo, serviceTimeout)
	adminService := services.NewAdminService(userRepo, hasher, serviceTimeout)

	mux := delivery.NewRouter(
		controllers.NewAuthController(logger, authService),
		controllers.NewEventController(logger, scheduleService),
		controllers.NewInviteController(logger, inviteService),
		controllers.NewSearchController(logger, directoryService),
		controllers.NewAdminController(logger, adminService),
		middleware.RequireAuth(tokens, logger),
	)

	handler := middleware.LoggingMiddleware(logger, middleware.CORS(cfg.AllowedOrigins, mux))

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("server starting", "port", cfg.Port, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
}
