package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/indigo-web/waves"
	"github.com/indigo-web/waves/config"
	"github.com/indigo-web/waves/dispatcher/middleware"
	"github.com/indigo-web/waves/logging"
	"github.com/indigo-web/waves/session"
	"github.com/indigo-web/waves/session/pebblestore"
)

func main() {
	configPath := flag.String("config", "waves.yaml", "path to the YAML config")
	envFile := flag.String("env", ".env", "path to the dotenv file")
	addr := flag.String("addr", "", "address to listen at, overrides the config")
	flag.Parse()

	if err := run(*configPath, *envFile, *addr); err != nil {
		fmt.Fprintln(os.Stderr, "waves:", err)
		os.Exit(1)
	}
}

func run(configPath, envFile, addr string) error {
	if err := config.LoadDotenv(envFile); err != nil {
		return err
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if err = config.FromEnv(cfg); err != nil {
		return err
	}

	if len(addr) > 0 {
		cfg.Server.Addr = addr
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	store, closer, err := openStore(cfg.Session)
	if err != nil {
		return err
	}
	defer func() {
		if err := closer.Close(); err != nil {
			logger.Error("cannot close the session store", zap.Error(err))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return waves.New(cfg).
		Logger(logger).
		Sessions(store).
		Use(middleware.ServerHeader()).
		Handle(guestbook).
		Serve(ctx)
}

func openStore(cfg config.Session) (session.Store, io.Closer, error) {
	switch cfg.Store {
	case "memory", "":
		return session.NewMemory(), io.NopCloser(nil), nil
	case "pebble":
		store, err := pebblestore.Open(cfg.Dir)
		if err != nil {
			return nil, nil, err
		}

		return store, store, nil
	default:
		return nil, nil, fmt.Errorf("unknown session store: %q", cfg.Store)
	}
}
