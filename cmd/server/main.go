package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-logger/glog"
	users "github.com/goliatone/go-users"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

func main() {
	lgr := glog.NewLogger(
		glog.WithLoggerTypePretty(),
		glog.WithLevel(glog.Info),
		glog.WithName("users"),
		glog.WithAddSource(false),
		glog.WithRichErrorHandler(errors.ToSlogAttributes),
	)

	cfg, err := users.NewEnvConfig()
	if err != nil {
		lgr.GetLogger("config").Error("configuration error", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := openDatabase(ctx, cfg)
	if err != nil {
		lgr.GetLogger("persistence").Error("database error", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	repo := users.NewUsersRepository(db)

	tokens := users.NewTokenService(
		[]byte(cfg.GetSigningKey()),
		cfg.GetTokenExpiration(),
		cfg.GetIssuer(),
		cfg.GetAudience(),
		lgr.GetLogger("tokens"),
	)

	revoked := users.NewMemoryRevoker()
	revoked.StartJanitor(ctx, time.Hour)

	auther := users.NewAuthenticator(repo, tokens, revoked, cfg).
		WithLogger(lgr.GetLogger("auth"))

	manager := users.NewManager(repo).
		WithLogger(lgr.GetLogger("users"))

	srv := users.NewServer(cfg, auther, manager).
		WithLogger(lgr.GetLogger("http"))

	go func() {
		if err := srv.Listen(cfg.GetListenAddr()); err != nil {
			lgr.GetLogger("http").Error("listener stopped", "error", err)
			cancel()
		}
	}()

	waitExitSignal(ctx)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		lgr.GetLogger("http").Error("shutdown error", "error", err)
	}
}

func openDatabase(ctx context.Context, cfg *users.EnvConfig) (*bun.DB, error) {
	sqldb, err := sql.Open(sqliteshim.ShimName, cfg.GetDSN())
	if err != nil {
		return nil, err
	}

	db := bun.NewDB(sqldb, sqlitedialect.New())

	if err := users.CreateSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

func waitExitSignal(ctx context.Context) {
	ch := make(chan os.Signal, 3)
	signal.Notify(ch,
		syscall.SIGINT,
		syscall.SIGQUIT,
		syscall.SIGTERM,
	)
	select {
	case <-ch:
	case <-ctx.Done():
	}
}
