package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/danielhkuo/purpose-swipe/cliparse"
	"github.com/danielhkuo/purpose-swipe/db"
	"github.com/danielhkuo/purpose-swipe/middleware"
	"github.com/danielhkuo/purpose-swipe/router"
	"github.com/danielhkuo/purpose-swipe/storage"
)

func main() {
	var err error

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	// Connect to PostgreSQL or SQLite
	dbConn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		slog.Error("database connection failed", "error", err, "type", cfg.DatabaseType)
		os.Exit(1)
	}
	defer dbConn.Close()

	// Create schema (tables)
	if err := db.CreateSchema(dbConn); err != nil {
		slog.Error("schema creation failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database schema ready", "type", cfg.DatabaseType)

	// Seed the card catalog on first start
	catalog, err := db.LoadCatalog(cfg.SeedFile)
	if err != nil {
		slog.Error("card catalog invalid", "error", err, "file", cfg.SeedFile)
		os.Exit(1)
	}
	seeded, err := storage.New(dbConn).SeedCards(context.Background(), catalog)
	if err != nil {
		slog.Error("card seeding failed", "error", err)
		os.Exit(1)
	}
	if seeded > 0 {
		slog.Info("Seeded purpose cards", "count", seeded)
	}

	// Create router
	mux := router.NewRouter(dbConn, cfg)

	// Create server
	server := http.Server{
		Handler: middleware.CORS(mux),
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-ctrlc
		server.Close()
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}
