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

	"github.com/rocketscienceinc/mindgames-backend/internal/entity"
)

const shutdownTimeout = 5 * time.Second

type gameUseCase interface {
	GetSession(ctx context.Context, sessionID string) (*entity.Session, error)
	Scores(ctx context.Context, playerID string) ([]entity.Best, error)
}

type Server struct {
	logger *slog.Logger
	uGame  gameUseCase
}

func New(logger *slog.Logger, uGame gameUseCase) *Server {
	return &Server{
		logger: logger.With("component", "rest"),
		uGame:  uGame,
	}
}

func (that *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/ping", pingHandler)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/games", that.handleListGames)
		r.Get("/sessions/{id}", that.handleGetSession)
		r.Get("/players/{id}/scores", that.handleScores)
	})

	return r
}

// Start - serves the REST api until ctx is cancelled.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      that.Routes(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shutdown server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}
