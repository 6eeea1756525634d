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

	"github.com/joho/godotenv"

	"github.com/latlat/ledger/internal/api"
	"github.com/latlat/ledger/internal/config"
	"github.com/latlat/ledger/internal/infra/logging"
	"github.com/latlat/ledger/internal/infra/mongoutils"
	mongosessions "github.com/latlat/ledger/internal/repos/sessions/mongo"
	"github.com/latlat/ledger/internal/services/ledger"
	"github.com/latlat/ledger/pkg/shutdownqueue"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := run(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error running api: %v", err)
		//nolint:gocritic
		os.Exit(1)
	}
}

func run(ctx context.Context) (retErr error) {
	// .env is optional; real environment variables win.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("init config: %w", err)
	}

	logging.SetupJSON(cfg.LogLevel)

	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		serr := shutdownqueue.Shutdown(shutdownCtx)
		if serr != nil {
			retErr = errors.Join(retErr, serr)
		}
	}()

	// --- Infra ---
	connectCtx, cancel := context.WithTimeout(ctx, cfg.Mongo.ConnectTimeout)
	defer cancel()

	client, err := mongoutils.Connect(connectCtx, cfg.Mongo.URI)
	if err != nil {
		return fmt.Errorf("connect mongo: %w", err)
	}

	shutdownqueue.Add(func(c context.Context) error {
		slog.Info("Disconnect mongo client")

		derr := client.Disconnect(c)
		if derr != nil {
			return fmt.Errorf("disconnect mongo: %w", derr)
		}

		return nil
	})

	col := client.Database(cfg.Mongo.Database).Collection(cfg.Mongo.Collection)

	err = mongoutils.EnsureIndexes(ctx, col)
	if err != nil {
		return fmt.Errorf("ensure indexes: %w", err)
	}

	repo := mongosessions.New(client, cfg.Mongo.Database, cfg.Mongo.Collection)
	ledgerSrv := ledger.New(repo)

	// --- HTTP server ---
	srv := api.NewServer(cfg.Port, ledgerSrv)

	// Register HTTP server graceful shutdown
	shutdownqueue.Add(func(c context.Context) error {
		slog.Info("Shut down server")

		serr := srv.Shutdown(c)
		if serr != nil {
			return fmt.Errorf("shutdown srv: %w", serr)
		}

		return nil
	})

	// Run server
	errCh := make(chan error, 1)

	go func() {
		serr := srv.ListenAndServe()
		// http.ErrServerClosed is the normal path during Shutdown
		if serr != nil && !errors.Is(serr, http.ErrServerClosed) {
			errCh <- serr
			return
		}

		errCh <- nil
	}()

	slog.Info("API started", "port", cfg.Port)

	// --- Wait until either context cancels or server errors out ---
	select {
	case <-ctx.Done():
		// graceful path; deferred shutdownqueue.Shutdown will run
		return nil
	case serr := <-errCh:
		if serr != nil {
			return fmt.Errorf("server error: %w", serr)
		}

		return nil
	}
}
