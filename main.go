// Gamerack is a REST backend for a game-review catalog. It wires the
// configuration, database pool, token blacklist, services and handlers,
// sets up the chi router and middleware, and runs the HTTP server with
// graceful shutdown.
//
// @title Gamerack API
// @version 1.0
// @description REST API for the game-review catalog.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type 'Bearer YOUR_JWT_TOKEN' to authorize
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"github.com/user/gamerack-go/apperror"
	"github.com/user/gamerack-go/auth"
	"github.com/user/gamerack-go/config"
	"github.com/user/gamerack-go/db"
	"github.com/user/gamerack-go/games"
	"github.com/user/gamerack-go/groups"
	"github.com/user/gamerack-go/reviews"
	"github.com/user/gamerack-go/users"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or error loading it: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	pool, err := db.NewDBPool(cfg.DB)
	if err != nil {
		log.Fatalf("Failed to create database pool: %v", err)
	}
	defer pool.Close()

	if err := db.RunMigrations(cfg.DB, "./migrations"); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	blacklist, err := auth.NewBlacklist(cfg.Blacklist)
	if err != nil {
		log.Fatalf("Failed to create token blacklist: %v", err)
	}
	if cfg.Blacklist.RedisAddr == "" {
		log.Println("REDIS_ADDR not set; using in-process token blacklist")
	}

	// Services and handlers, wired by hand, leaves first.
	authService := auth.NewAuthService(pool, *cfg.Auth, blacklist)
	authHandlers := auth.NewHandlers(authService)

	reviewService := reviews.NewReviewService(pool)
	reviewHandlers := reviews.NewReviewHandlers(reviewService)

	gameService := games.NewGameService(pool, reviewService)
	gameHandlers := games.NewGameHandlers(gameService)

	userService := users.NewUserService(pool, gameService, reviewService)
	userHandlers := users.NewUserHandlers(userService)

	groupService := groups.NewGroupService(pool)
	groupHandlers := groups.NewGroupHandlers(groupService)

	r := chi.NewRouter()

	// Global middleware; chi requires all middleware registered before routes.
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRFToken"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			defer func() {
				if rvr := recover(); rvr != nil {
					log.Printf("Panic: %+v", rvr)
					writeError(ww, apperror.NewInternalError("internal server error", nil))
				}
			}()
			next.ServeHTTP(ww, r)
		})
	})

	authGate := auth.JWTMiddleware(cfg.Auth, blacklist)

	// Public endpoints.
	r.Post("/new-user", userHandlers.HandleRegister())
	r.Post("/api/login", authHandlers.HandleLogin())
	r.Post("/api/logout", authHandlers.HandleLogout())
	r.Post("/api/refresh", authHandlers.HandleRefresh())
	r.Get("/get-csrf-token", authHandlers.HandleCSRFToken())

	// Authenticated endpoints.
	r.Group(func(r chi.Router) {
		r.Use(authGate)

		r.Get("/users", userHandlers.HandleListUsers())
		r.Get("/users/{userID}", userHandlers.HandleGetUser())
		r.Delete("/users/{userID}", userHandlers.HandleDeleteUser())

		r.Get("/groups", groupHandlers.HandleListGroups())

		r.Get("/games", gameHandlers.HandleListGames())
		r.Post("/new-game", gameHandlers.HandleCreateGame())
		r.Get("/games/{gameID}", gameHandlers.HandleGetGame())
		r.Put("/games/{gameID}/edit", gameHandlers.HandleUpdateGame())
		r.Delete("/games/{gameID}", gameHandlers.HandleDeleteGame())

		r.Get("/reviews", reviewHandlers.HandleListReviews())
		r.Post("/games/{gameID}/new-review", reviewHandlers.HandleCreateReview())
		r.Put("/games/{gameID}/reviews/{reviewID}", reviewHandlers.HandleUpdateReview())
		r.Delete("/games/{gameID}/reviews/{reviewID}", reviewHandlers.HandleDeleteReview())
	})

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}
	if rb, ok := blacklist.(*auth.RedisBlacklist); ok {
		if err := rb.Close(); err != nil {
			log.Printf("Warning: error closing blacklist connection: %v", err)
		}
	}
	log.Println("Server stopped gracefully")
}

// writeError is a local helper for the panic recovery middleware.
func writeError(w http.ResponseWriter, appErr *apperror.AppError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.StatusCode())
	if err := json.NewEncoder(w).Encode(appErr.ToResponse()); err != nil {
		http.Error(w, `{"error":"Failed to encode error response"}`, http.StatusInternalServerError)
	}
}
