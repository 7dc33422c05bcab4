package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/jaminalder/nxn-tic-tac-toe/internal/config"
	"github.com/jaminalder/nxn-tic-tac-toe/internal/desktop"
	"github.com/jaminalder/nxn-tic-tac-toe/internal/domain"
	"github.com/jaminalder/nxn-tic-tac-toe/internal/logging"
	"github.com/jaminalder/nxn-tic-tac-toe/internal/scene"
)

var (
	configPath = flag.String("config", os.Getenv("TICTACTOE_CONFIG"), "Path to a YAML config file")
	size       = flag.Int("size", 0, "Board size, overrides the config file")
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
	if *size != 0 {
		cfg.BoardSize = *size
	}
	log, err := logging.New(cfg.LogLevel, cfg.Development)
	if err != nil {
		return err
	}
	defer log.Sync()

	engine, err := domain.NewEngine(cfg.BoardSize)
	if err != nil {
		return err
	}
	log.Info("starting desktop client", zap.Int("size", engine.Size()))

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	g := desktop.NewGame(scene.New(engine, log), log, cfg.Window.Width, cfg.Window.Height)
	return ebiten.RunGame(g)
}
