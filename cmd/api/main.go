package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/adaa/backoffice-go/internal/apperr"
	"github.com/adaa/backoffice-go/internal/config"
	"github.com/adaa/backoffice-go/internal/crypto"
	"github.com/adaa/backoffice-go/internal/handler"
	"github.com/adaa/backoffice-go/internal/mail"
	"github.com/adaa/backoffice-go/internal/middleware"
	"github.com/adaa/backoffice-go/internal/repository"
	"github.com/adaa/backoffice-go/internal/service"
	"github.com/adaa/backoffice-go/internal/session"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using environment variables")
	}

	cfg := config.Load()
	ctx := context.Background()

	pool, err := repository.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Username: cfg.RedisUsername,
		Password: cfg.RedisPassword,
	})
	defer redisClient.Close()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		slog.Warn("redis ping failed, sessions unavailable until it recovers", "error", err)
	}

	userRepo := repository.NewUserRepository(pool)
	sessions := session.NewRedisStore(redisClient, cfg.SessionDuration)
	breach := crypto.NewBreachClient(cfg.BreachAPIURL)
	tokens := crypto.NewVerificationCodec(cfg.VerificationSecret, cfg.VerificationTTL)
	mailer := mail.NewLogMailer(cfg.WebURL)

	authService := service.NewAuthService(userRepo, sessions, breach, tokens, mailer)
	authHandler := handler.NewAuthHandler(authService, cfg.SessionCookieName, cfg.SessionDuration, cfg.WebURL)

	productService := service.NewProductService(repository.NewProductRepository(pool))
	productHandler := handler.NewProductHandler(productService)

	categoryService := service.NewCategoryService(repository.NewCategoryRepository(pool))
	categoryHandler := handler.NewCategoryHandler(categoryService)

	guard := middleware.SessionAuth(authService, cfg.SessionCookieName)

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Metrics)
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		apperr.WriteError(w, r, apperr.MethodNotAllowed())
	})
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		apperr.WriteError(w, r, apperr.NotFound("No such route exists."))
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", middleware.MetricsHandler())

	r.Route("/auth", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(middleware.RateLimit(5, 10))
			r.Post("/login", authHandler.HandleLogin)
			r.Post("/signup", authHandler.HandleSignup)
		})
		r.Post("/logout", authHandler.HandleLogout)
		r.Get("/verify", authHandler.HandleVerify)
		r.With(guard).Get("/me", authHandler.HandleMe)
	})

	r.Group(func(r chi.Router) {
		r.Use(guard)

		r.Get("/products", productHandler.HandleList)
		r.Post("/products", productHandler.HandleCreate)
		r.Patch("/products/{product_id}", productHandler.HandleUpdate)
		r.Delete("/products/{product_id}", productHandler.HandleDelete)

		r.Get("/categories", categoryHandler.HandleList)
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		slog.Info("server starting", "port", cfg.Port, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}
