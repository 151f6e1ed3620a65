package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Atiqul-Imon/jhatika-safar-sub000/auth"
	"github.com/Atiqul-Imon/jhatika-safar-sub000/bookings"
	"github.com/Atiqul-Imon/jhatika-safar-sub000/config"
	"github.com/Atiqul-Imon/jhatika-safar-sub000/contact"
	"github.com/Atiqul-Imon/jhatika-safar-sub000/db"
	"github.com/Atiqul-Imon/jhatika-safar-sub000/filemgr"
	"github.com/Atiqul-Imon/jhatika-safar-sub000/middleware"
	"github.com/Atiqul-Imon/jhatika-safar-sub000/obs"
	"github.com/Atiqul-Imon/jhatika-safar-sub000/ratelim"
	"github.com/Atiqul-Imon/jhatika-safar-sub000/rdx"
	"github.com/Atiqul-Imon/jhatika-safar-sub000/routes"
	"github.com/Atiqul-Imon/jhatika-safar-sub000/stats"
	"github.com/Atiqul-Imon/jhatika-safar-sub000/tours"
	"github.com/Atiqul-Imon/jhatika-safar-sub000/users"

	"github.com/joho/godotenv"
	"github.com/julienschmidt/httprouter"
	"github.com/rs/cors"
)

// securityHeaders applies a set of recommended HTTP security headers.
// Cache-Control is left to the handlers: catalog reads are cacheable,
// admin reads are not.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Content-Security-Policy", "frame-ancestors 'none'")
		w.Header().Set("Referrer-Policy", "no-referrer")
		next.ServeHTTP(w, r)
	})
}

// loggingMiddleware logs each request method, path, and duration.
func loggingMiddleware(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"remote", r.RemoteAddr,
			"duration", time.Since(start),
		)
	})
}

func main() {
	// Missing .env is fine in containers, the environment is already set.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	logger := obs.NewLogger(cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	database, err := db.Connect(ctx, cfg)
	if err != nil {
		logger.Error("mongo connect failed", "error", err)
		os.Exit(1)
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := database.Close(closeCtx); err != nil {
			logger.Warn("mongo disconnect failed", "error", err)
		}
	}()

	if err := database.EnsureIndexes(ctx); err != nil {
		logger.Error("index bootstrap failed", "error", err)
		os.Exit(1)
	}

	cache := rdx.New(cfg, logger)
	defer cache.Close()

	files, err := filemgr.New(cfg.UploadDir)
	if err != nil {
		logger.Error("upload dir setup failed", "error", err)
		os.Exit(1)
	}

	authmw := &middleware.Auth{Secret: cfg.JWTSecret}
	limiter := ratelim.New()

	router := httprouter.New()
	router.GET("/health", func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		fmt.Fprint(w, "ok")
	})

	routes.AddStaticRoutes(router, cfg.UploadDir)
	routes.AddTourRoutes(router, tours.NewHandler(database, cache, files, logger), authmw)
	routes.AddBookingRoutes(router, bookings.NewHandler(database, logger, cfg.VoucherSecret), authmw, limiter)
	routes.AddContactRoutes(router, contact.NewHandler(database, logger), authmw, limiter)
	routes.AddAuthRoutes(router, auth.NewHandler(database, logger, cfg.JWTSecret, cfg.TokenTTL), authmw, limiter)
	routes.AddUserRoutes(router, users.NewHandler(database, logger), authmw)
	routes.AddStatsRoutes(router, stats.NewHandler(database, logger), authmw)

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: false,
	})

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      c.Handler(securityHeaders(loggingMiddleware(logger, router))),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("http shutdown failed", "error", err)
		}
	}()

	logger.Info("server starting", "addr", cfg.HTTPAddr, "env", cfg.Env)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("http server failed", "error", err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}
