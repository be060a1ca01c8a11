package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/tictactoe-contract/internal/config"
	"github.com/rocketscienceinc/tictactoe-contract/internal/contract"
	"github.com/rocketscienceinc/tictactoe-contract/internal/repository"
	"github.com/rocketscienceinc/tictactoe-contract/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-contract/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-contract/transport/rest"
)

var (
	ErrAddrNotFound         = errors.New("redis address string is empty")
	ErrUnknownStorageDriver = errors.New("unknown storage driver")
)

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

	host, closeStorage, err := NewContract(ctx, logger, conf)
	if err != nil {
		return err
	}

	defer func() {
		if err = closeStorage(); err != nil {
			log.Error("could not close storage", "error", err)
		}
	}()

	host.Instantiate(ctx)

	// run HTTP server
	httpErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "port", conf.HTTPPort, "storage", conf.Storage.Driver)
		httpErrCh <- rest.New(logger, host).Start(ctx, conf.HTTPPort)
	}()

	select {
	case err = <-httpErrCh:
		if err != nil {
			log.Error("HTTP server error", "error", err)
			return fmt.Errorf("HTTP server error: %w", err)
		}

		return nil
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
	}

	// storage is closed by the deferred call only after requests have drained
	if err = <-httpErrCh; err != nil {
		return fmt.Errorf("HTTP server error: %w", err)
	}

	return nil
}

// NewContract - opens the configured storage and builds the contract on top of it.
// The returned func releases the storage connection.
func NewContract(ctx context.Context, logger *slog.Logger, conf *config.Config) (*contract.Contract, func() error, error) {
	sessionRepo, closeStorage, err := newSessionRepository(ctx, conf)
	if err != nil {
		return nil, nil, err
	}

	sessions := usecase.NewSessionManager(logger, sessionRepo)

	return contract.New(logger, sessions), closeStorage, nil
}

func newSessionRepository(ctx context.Context, conf *config.Config) (repository.SessionRepository, func() error, error) {
	switch conf.Storage.Driver {
	case config.DriverRedis:
		redisAddrString := conf.Redis.GetRedisAddr()
		if conf.Redis.Host == "" {
			return nil, nil, ErrAddrNotFound
		}

		redisStorage, err := storage.NewRedisStorage(ctx, redisAddrString, conf.Redis.Password, conf.Redis.DB)
		if err != nil {
			return nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
		}

		return repository.NewSessionRepository(redisStorage.Connection, conf.Storage.Namespace), redisStorage.Close, nil

	case config.DriverSQLite:
		sqliteStorage, err := storage.NewSQLiteStorage(ctx, conf.Storage.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("could not open sqlite storage: %w", err)
		}

		sessionRepo, err := repository.NewSQLiteSessionRepository(ctx, sqliteStorage.Connection, conf.Storage.Namespace)
		if err != nil {
			_ = sqliteStorage.Close()
			return nil, nil, err
		}

		return sessionRepo, sqliteStorage.Close, nil

	case config.DriverMemory:
		return repository.NewMemorySessionRepository(), func() error { return nil }, nil

	default:
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownStorageDriver, conf.Storage.Driver)
	}
}
