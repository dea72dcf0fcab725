package main

import (
	"database/sql"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"miniblog/internal/api/middleware"
	"miniblog/internal/api/routes"
	"miniblog/internal/config"
	"miniblog/internal/core/posts"
	"miniblog/internal/core/users"
	"miniblog/internal/db"
	postgresRepo "miniblog/internal/db/postgres"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	database, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer database.Close()

	if err := database.Ping(); err != nil {
		log.Fatal("Failed to ping database:", err)
	}

	log.Println("Connected to database")

	if err := db.Migrate(database); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	log.Println("Migrations completed successfully")

	r := chi.NewRouter()

	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(middleware.Metrics)

	rateLimiter := middleware.NewRateLimiter(cfg.RateLimitPerMin, 1*time.Minute)
	r.Use(rateLimiter.Middleware)

	userRepo := postgresRepo.NewUserRepository(database)
	postRepo := postgresRepo.NewPostRepository(database)

	userService := users.NewUserService(userRepo, nil)
	postService := posts.NewPostService(postRepo, userRepo, nil)

	authMiddleware := middleware.NewJWTAuthMiddleware([]byte(cfg.JWTSecret))

	routes.RegisterPostRoutes(r, postService, authMiddleware)
	routes.RegisterUserRoutes(r, userService, authMiddleware)

	r.Handle("/metrics", promhttp.Handler())

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	log.Println("Server listening on", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, r); err != nil {
		log.Fatal("Server failed:", err)
	}
}
