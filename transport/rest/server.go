package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rocketscienceinc/tictactoe-contract/internal/contract"
)

const shutdownTimeout = 10 * time.Second

type host interface {
	Execute(ctx context.Context, sender string, msg contract.Message) (*contract.ExecuteResponse, error)
	Query(ctx context.Context, msg contract.Message) (any, error)
}

type Server struct {
	logger *slog.Logger
	host   host
	router chi.Router
}

func New(logger *slog.Logger, host host) *Server {
	server := &Server{
		logger: logger.With("component", "rest"),
		host:   host,
	}

	server.router = server.buildRouter()

	return server
}

func (that *Server) buildRouter() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(10 * time.Second))

	router.Get("/ping", that.handlePing)

	router.Post("/execute", that.handleExecute)
	router.Post("/query", that.handleQuery)

	router.Get("/games", that.handleAllGames)
	router.Get("/games/{host}/{guest}", that.handleGames)

	return router
}

// Handler - the router with all routes mounted, used by Start and by tests.
func (that *Server) Handler() http.Handler {
	return that.router
}

// Start - serves HTTP on port until ctx is canceled. It returns once in-flight
// requests have drained, so callers may release what the handlers use.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      that.router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	shutdownDone := make(chan struct{})
	go func() {
		defer close(shutdownDone)
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shut down server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	// ListenAndServe returns as soon as Shutdown starts
	<-shutdownDone

	return nil
}
