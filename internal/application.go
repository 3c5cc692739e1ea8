package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/mindgames-backend/internal/config"
	"github.com/rocketscienceinc/mindgames-backend/internal/entity"
	"github.com/rocketscienceinc/mindgames-backend/internal/memory"
	"github.com/rocketscienceinc/mindgames-backend/internal/repository"
	"github.com/rocketscienceinc/mindgames-backend/internal/repository/storage"
	"github.com/rocketscienceinc/mindgames-backend/internal/rules"
	"github.com/rocketscienceinc/mindgames-backend/internal/scheduler"
	"github.com/rocketscienceinc/mindgames-backend/internal/service"
	"github.com/rocketscienceinc/mindgames-backend/internal/usecase"
	"github.com/rocketscienceinc/mindgames-backend/transport/rest"
	"github.com/rocketscienceinc/mindgames-backend/transport/websocket"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	redisAddrString := conf.Redis.GetRedisAddr()
	if redisAddrString == "" {
		return ErrAddrNotFound
	}

	redisStorage, err := storage.NewRedisStorage(ctx, redisAddrString)
	if err != nil {
		return fmt.Errorf("could not connect to redis storage: %w", err)
	}

	defer func() {
		if err = redisStorage.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}()

	sqliteStorage, err := storage.NewSQLiteStorage(conf.SQLiteStoragePath)
	if err != nil {
		return fmt.Errorf("could not open sqlite storage: %w", err)
	}

	defer func() {
		if err = sqliteStorage.Close(); err != nil {
			log.Error("could not close sqlite storage", "error", err)
		}
	}()

	if err = sqliteStorage.Init(ctx); err != nil {
		return fmt.Errorf("could not init sqlite storage: %w", err)
	}

	playerRepo := repository.NewPlayerRepository(redisStorage.Connection, conf.SessionTTL)
	sessionRepo := repository.NewSessionRepository(redisStorage.Connection, conf.SessionTTL)
	resultRepo := repository.NewResultRepository(sqliteStorage.Connection)

	deps := EngineDeps(conf, scheduler.NewTimer())
	newEngine := func(kind entity.Kind, sessionID string, onAsync func()) (service.Engine, error) {
		return service.NewEngine(kind, sessionID, deps, onAsync)
	}

	gameManager := usecase.NewGameManager(logger, playerRepo, sessionRepo, resultRepo, newEngine)
	defer gameManager.Shutdown()

	// live sessions idle past the store TTL have nothing left to resume
	go gameManager.SweepIdle(ctx, conf.SweepInterval, conf.SessionTTL)

	// run HTTP server
	httpErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		restServer := rest.New(logger, gameManager)
		if httpErr := restServer.Start(ctx, conf.HTTPPort); httpErr != nil {
			log.Error("HTTP server error", "error", httpErr)
			httpErrCh <- httpErr
		}
	}()

	// run Websocket server
	wsErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting WebSocket server", "port", conf.SocketPort)
		wsServer := websocket.New(logger, gameManager)
		if wsErr := wsServer.Start(ctx, conf.SocketPort); wsErr != nil {
			log.Error("WebSocket server error", "error", wsErr)
			wsErrCh <- wsErr
		}
	}()

	select {
	case err = <-httpErrCh:
		return fmt.Errorf("HTTP server error: %w", err)
	case err = <-wsErrCh:
		return fmt.Errorf("WebSocket server error: %w", err)
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}

// EngineDeps turns the game settings of conf into engine dependencies.
func EngineDeps(conf *config.Config, sched scheduler.Scheduler) service.Deps {
	var pairs []memory.Pair
	for i, icon := range conf.Memory.Pairs {
		pairs = append(pairs, memory.Pair{ID: i + 1, Icon: icon})
	}

	return service.Deps{
		Scheduler:    sched,
		ResolveDelay: conf.Memory.ResolveDelay,
		Pairs:        pairs,
		Words:        conf.Scramble.Words,
		Sources:      rules.NewSourceFactory(conf.Random.Seed, conf.Random.ServerSeed),
	}
}
