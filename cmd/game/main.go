package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"
	"golang.org/x/term"

	"github.com/tomz197/invaders/internal/audio"
	"github.com/tomz197/invaders/internal/config"
	"github.com/tomz197/invaders/internal/draw"
	"github.com/tomz197/invaders/internal/input"
	"github.com/tomz197/invaders/internal/loop"
	gameconfig "github.com/tomz197/invaders/internal/loop/config"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	settings, err := gameconfig.Load()
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	opts := loop.Options{
		Settings: settings,
		Logger:   logger,
	}

	if config.GetEnvBool("INVADERS_SOUND", false) {
		player := audio.NewPlayer(0.5)
		if err := player.Init(); err != nil {
			logger.Warn("sound disabled", "err", err)
		} else {
			defer player.Close()
			opts.Sounds = player
		}
	}

	switch frontend := config.GetEnv("INVADERS_FRONTEND", "tcell"); frontend {
	case "tcell":
		return runTcell(opts)
	case "ansi":
		return runANSI(opts)
	default:
		return fmt.Errorf("unknown INVADERS_FRONTEND %q", frontend)
	}
}

// newLogger logs to INVADERS_LOG, or nowhere: stdout is the game screen.
func newLogger() (*log.Logger, func(), error) {
	level, err := log.ParseLevel(config.GetEnv("INVADERS_LOG_LEVEL", "info"))
	if err != nil {
		return nil, nil, fmt.Errorf("INVADERS_LOG_LEVEL: %w", err)
	}

	path := config.GetEnv("INVADERS_LOG", "")
	if path == "" {
		return log.NewWithOptions(io.Discard, log.Options{Level: level}), func() {}, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log: %w", err)
	}
	logger := log.NewWithOptions(f, log.Options{
		Level:           level,
		ReportTimestamp: true,
		Prefix:          "invaders",
	})
	return logger, func() { _ = f.Close() }, nil
}

func runTcell(opts loop.Options) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()

	screen.EnableMouse(tcell.MouseButtonEvents)
	screen.HideCursor()

	surface := draw.NewTcellSurface(screen)
	opts.TermSizeFunc = surface.Size
	return loop.Run(input.StartTcellSource(screen), surface, opts)
}

func runANSI(opts loop.Options) error {
	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("enable raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	draw.HideCursor(os.Stdout)
	draw.EnableMouse(os.Stdout)
	defer func() {
		draw.DisableMouse(os.Stdout)
		draw.ClearScreen(os.Stdout)
		draw.ShowCursor(os.Stdout)
	}()

	src := input.StartStream(bufio.NewReader(os.Stdin))
	surface := draw.NewChunkWriter(os.Stdout, 0, 0)
	return loop.Run(src, surface, opts)
}
