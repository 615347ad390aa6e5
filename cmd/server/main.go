package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jwaldner/paritycalc/internal/config"
	"github.com/jwaldner/paritycalc/internal/handlers"
	"github.com/jwaldner/paritycalc/internal/logger"
	"github.com/jwaldner/paritycalc/internal/services"

	"github.com/gorilla/mux"
)

func main() {
	cfg := config.Load()

	// Initialize logging with config level and file path
	if err := logger.InitWithConfig(cfg.Logging.LogLevel, cfg.Logging.LogFile); err != nil {
		log.Fatalf("Failed to initialize logging: %v", err)
	}
	defer logger.Close()
	logger.Always.Printf("Parity calculator starting - Port: %s", cfg.Server.Port)

	if cfg.Logging.LogLevel == "verbose" {
		fmt.Printf("VERBOSE LOGGING ENABLED - every calculation will be logged to %s\n", cfg.Logging.LogFile)
	}

	parityHandler := handlers.NewParityHandler(cfg, services.NewRequestService())

	// Setup router
	r := mux.NewRouter()

	// Serve static files (CSS) - NO REBUILD NEEDED
	r.PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.Server.StaticDir))))
	handlers.RegisterRoutes(r, parityHandler)

	srv := &http.Server{
		Addr:    "0.0.0.0:" + cfg.Server.Port,
		Handler: r,
	}

	go func() {
		fmt.Printf("Server starting on http://localhost:%s\n", cfg.Server.Port)
		logger.Info.Printf("HTTP server started on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start:", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Always.Printf("Shutting down (timeout %s)", cfg.ShutdownTimeout())
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout())
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error.Printf("Graceful shutdown failed: %v", err)
	}
}
