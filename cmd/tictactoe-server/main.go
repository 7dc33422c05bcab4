package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/jaminalder/nxn-tic-tac-toe/internal/app"
	"github.com/jaminalder/nxn-tic-tac-toe/internal/config"
	"github.com/jaminalder/nxn-tic-tac-toe/internal/logging"
	"github.com/jaminalder/nxn-tic-tac-toe/internal/web"
)

var (
	configPath = flag.String("config", os.Getenv("TICTACTOE_CONFIG"), "Path to a YAML config file")
	addr       = flag.String("addr", "", "Listen address, overrides config and PORT")
	size       = flag.Int("size", 0, "Default board size for new games")
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	flag.Parse()
	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	cfg.ApplyEnv(os.LookupEnv)
	if *addr != "" {
		cfg.Addr = *addr
	}
	if *size != 0 {
		cfg.BoardSize = *size
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	log, err := logging.New(cfg.LogLevel, cfg.Development)
	if err != nil {
		return err
	}
	defer log.Sync()

	svc := app.NewService(app.WithLogger(log), app.WithDefaultSize(cfg.BoardSize))
	opts := web.Options{Logger: log, Heartbeat: cfg.Heartbeat}
	if cfg.FrontendHost != "" {
		opts.CheckOrigin = web.SameHostOrigin(cfg.FrontendHost)
	}
	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           web.NewServer(svc, opts),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	errc := make(chan error, 1)
	go func() {
		log.Info("listening", zap.String("addr", cfg.Addr), zap.Int("board_size", cfg.BoardSize))
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}
	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
