package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	intconfig "bikerental/internal/config"
	intdb "bikerental/internal/db"
	router "bikerental/internal/http"
	"bikerental/internal/http/handlers"
	"bikerental/internal/repositories"
	"bikerental/internal/services"
)

func main() {
	env := intconfig.LoadEnv()

	db := intconfig.ConnectDB(env)
	defer intconfig.CloseDB()

	if env.AutoMigrate {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if err := intdb.EnsureSchema(ctx, db); err != nil {
			cancel()
			log.Fatalf("Failed to prepare schema: %v", err)
		}
		cancel()
	}

	deps := handlers.Handler{
		DB:           db,
		Bikes:        repositories.BikeRepository{DB: db},
		Reservations: repositories.ReservationRepository{DB: db},
		Users:        repositories.UserRepository{DB: db},
		Ledger:       repositories.MySQLLedger{DB: db},
		Tokens:       services.TokenService{Secret: []byte(env.JWTSecret)},
	}
	r := router.NewRouter(env, deps)

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("Server listening on http://localhost%s", env.AppAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}

	log.Println("Server stopped cleanly.")
}
