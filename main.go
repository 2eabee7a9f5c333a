package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/danielhkuo/survey-basket/cliparse"
	"github.com/danielhkuo/survey-basket/db"
	"github.com/danielhkuo/survey-basket/polls"
	"github.com/danielhkuo/survey-basket/router"
	"github.com/danielhkuo/survey-basket/store"
	"github.com/danielhkuo/survey-basket/store/gormstore"
	"github.com/danielhkuo/survey-basket/store/sqlstore"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect and verify
	dbConn, err := db.Open(ctx, cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		slog.Error("database connection failed", "error", err, "dialect", cfg.DatabaseType)
		os.Exit(1)
	}
	defer dbConn.Close()

	// Create schema (tables)
	if err := db.CreateSchema(ctx, dbConn, cfg.DatabaseType); err != nil {
		slog.Error("schema creation failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database schema ready", "dialect", cfg.DatabaseType)

	pollStore, closeStore, err := newPollStore(cfg, dbConn)
	if err != nil {
		slog.Error("store setup failed", "error", err, "backend", cfg.StoreBackend)
		os.Exit(1)
	}
	defer closeStore()

	// Create router
	mux := router.NewRouter(polls.New(pollStore))

	// Create server
	server := &http.Server{
		Handler: mux,
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	ln, err := net.Listen("tcp", server.Addr)
	if err != nil {
		slog.Error("listen failed", "error", err, "addr", server.Addr)
		return
	}

	// Start server
	slog.Info("Listening", "port", cfg.Port, "backend", cfg.StoreBackend)
	if err := serve(ctx, server, ln, shutdownTimeout); err != nil {
		slog.Error("Server closed", "error", err)
		return
	}
	slog.Info("Server closed")
}

// serve runs server on ln until ctx is done, then shuts down and waits up
// to timeout for in-flight requests before returning.
func serve(ctx context.Context, server *http.Server, ln net.Listener, timeout time.Duration) error {
	shutdownDone := make(chan error, 1)
	go func() {
		// Wait for Ctrl-C or SIGTERM
		<-ctx.Done()
		slog.Info("shutting down", "timeout", timeout)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		err := server.Shutdown(shutdownCtx)
		if err != nil {
			server.Close()
		}
		shutdownDone <- err
	}()

	err := server.Serve(ln)
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	// Serve returns as soon as Shutdown starts; wait for it to drain
	if err := <-shutdownDone; err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}

// newPollStore picks the storage backend. The gorm backend opens its own
// pool against the same postgres database.
func newPollStore(cfg cliparse.Config, conn *sql.DB) (store.PollStore, func(), error) {
	if cfg.StoreBackend != cliparse.BackendGORM {
		return sqlstore.New(conn, cfg.DatabaseType, nil), func() {}, nil
	}

	gdb, err := gormstore.Open(cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, nil, err
	}
	return gormstore.New(gdb, nil), func() { sqlDB.Close() }, nil
}
