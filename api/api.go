package main

import (
	"context"
	"errors"
	"log"
	"lolanalyzer/api/modules"
	"lolanalyzer/api/routes"
	"lolanalyzer/pkg/config"
	"lolanalyzer/pkg/database"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/cors"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Couldn't initialize the configuration: %v", err)
	}

	db, err := database.NewConnection(cfg.Database.DSN())
	if err != nil {
		log.Fatal(err)
	}
	defer database.Close(db)

	// Create a module with all necessary handlers.
	module, err := modules.NewModule(&modules.ModuleDependencies{DB: db})
	if err != nil {
		log.Fatal(err)
	}
	defer module.Close()

	// Create a new router with the routes setup.
	router := routes.NewRouter(module.Router)
	router.SetupRoutes(
		module.PlayerHandler,
	)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: cfg.Api.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	})

	srv := &http.Server{
		Addr:         cfg.Api.Addr,
		Handler:      corsHandler.Handler(router.Engine),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	// Start the server.
	go func() {
		log.Printf("API listening on %s", cfg.Api.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("HTTP server error: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("HTTP server forced to shutdown: %v", err)
	}
}
