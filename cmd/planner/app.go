package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	_ "modernc.org/sqlite" // registers "sqlite" driver for database/sql

	"github.com/pkordes/planner/internal/config"
	"github.com/pkordes/planner/internal/remote"
	"github.com/pkordes/planner/internal/repo"
	"github.com/pkordes/planner/internal/service"
	"github.com/pkordes/planner/migrations"
)

// app holds everything a command needs. Commands build one with newApp and
// close it when done.
type app struct {
	cfg      config.Config
	log      *slog.Logger
	binding  *service.DeviceBinding
	trips    *service.TripService
	creation *service.CreationFlow
	invites  *service.InviteFlow
	closers  []func() error
}

// newLogger builds the JSON slog logger. Unknown levels fall back to info.
func newLogger(w io.Writer, level string) *slog.Logger {
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(level)); err != nil {
		logLevel = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: logLevel}))
}

func newApp(ctx context.Context, logOut io.Writer) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	log := newLogger(logOut, cfg.LogLevel)
	slog.SetDefault(log)

	a := &app{cfg: cfg, log: log}
	store, err := a.openStore(ctx)
	if err != nil {
		_ = a.Close()
		return nil, err
	}

	client := remote.New(cfg.PlannerAPIURL, remote.WithTimeout(cfg.RemoteTimeout))
	a.binding = service.NewDeviceBinding(store, cfg.DeviceID)
	a.trips = service.NewTripService(client, a.binding, log)
	a.creation = service.NewCreationFlow(client, log)
	a.invites = service.NewInviteFlow(client, a.binding, cfg.LinkScheme, log)
	return a, nil
}

// Close releases the store connections in reverse order of opening.
func (a *app) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}
	a.closers = nil
	return errors.Join(errs...)
}

// openStore connects the binding store selected by BINDING_DRIVER. The
// device-local sqlite file is migrated on open; a shared postgres database is
// migrated explicitly with "planner migrate".
func (a *app) openStore(ctx context.Context) (repo.BindingStore, error) {
	switch a.cfg.BindingDriver {
	case config.DriverMemory:
		a.log.Warn("memory binding store: the current trip is forgotten on exit")
		return repo.NewMemoryBindingStore(), nil

	case config.DriverSQLite:
		db, err := a.openSQLite(ctx)
		if err != nil {
			return nil, err
		}
		return repo.NewSQLiteBindingStore(db), nil

	case config.DriverPostgres:
		pool, err := a.openPostgres(ctx)
		if err != nil {
			return nil, err
		}
		return repo.NewPostgresBindingStore(pool), nil

	case config.DriverRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     a.cfg.RedisAddr,
			Password: a.cfg.RedisPassword,
			DB:       a.cfg.RedisDB,
		})
		a.closers = append(a.closers, client.Close)
		if err := client.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("connect to redis: %w", err)
		}
		return repo.NewRedisBindingStore(client, "planner"), nil
	}
	return nil, fmt.Errorf("unknown binding driver %q", a.cfg.BindingDriver)
}

func (a *app) openSQLite(ctx context.Context) (*sql.DB, error) {
	db, err := sql.Open("sqlite", a.cfg.SQLitePath+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	a.closers = append(a.closers, db.Close)
	if err := migrations.Up(ctx, db, goose.DialectSQLite3); err != nil {
		return nil, err
	}
	return db, nil
}

func (a *app) openPostgres(ctx context.Context) (*pgxpool.Pool, error) {
	// New does not open connections immediately; Ping verifies the DB is
	// reachable before any command runs.
	pool, err := pgxpool.New(ctx, a.cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("create database pool: %w", err)
	}
	a.closers = append(a.closers, func() error { pool.Close(); return nil })
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	a.log.Info("database connection established")
	return pool, nil
}

// runWithApp adapts a command body that needs an app. Logs go to stderr so
// stdout stays readable.
func runWithApp(fn func(cmd *cobra.Command, args []string, a *app) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		defer a.Close()
		return fn(cmd, args, a)
	}
}

// migrateDB applies migrations to the configured SQL store. It reports false
// for drivers that have no schema.
func migrateDB(ctx context.Context, cfg config.Config) (bool, error) {
	switch cfg.BindingDriver {
	case config.DriverSQLite:
		db, err := sql.Open("sqlite", cfg.SQLitePath+"?_pragma=busy_timeout(5000)")
		if err != nil {
			return false, fmt.Errorf("open sqlite: %w", err)
		}
		defer db.Close()
		return true, migrations.Up(ctx, db, goose.DialectSQLite3)

	case config.DriverPostgres:
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return false, fmt.Errorf("create database pool: %w", err)
		}
		defer pool.Close()
		db := stdlib.OpenDBFromPool(pool)
		defer db.Close()
		return true, migrations.Up(ctx, db, goose.DialectPostgres)
	}
	return false, nil
}
