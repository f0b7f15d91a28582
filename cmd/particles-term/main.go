package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Garsondee/particle-field/internal/config"
	"github.com/Garsondee/particle-field/internal/field"
	"github.com/Garsondee/particle-field/internal/term"
	"github.com/gdamore/tcell/v2"
)

func main() {
	var cfgPath string
	var quantity int
	var fps int
	var dumpLog bool

	flag.StringVar(&cfgPath, "config", "", "TOML settings file")
	flag.IntVar(&quantity, "quantity", -1, "particle count (overrides config)")
	flag.IntVar(&fps, "fps", 0, "frames per second (overrides config)")
	flag.BoolVar(&dumpLog, "dump-log", false, "print the event log on exit")
	flag.Parse()

	if err := run(cfgPath, quantity, fps, dumpLog); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfgPath string, quantity, fps int, dumpLog bool) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	if quantity >= 0 {
		cfg.Field.Quantity = quantity
	}
	if fps > 0 {
		cfg.Term.FPS = fps
	}
	opts, err := cfg.Options()
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init terminal: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	evlog := field.NewEventLog(false)
	err = term.Run(ctx, screen, opts, cfg.Term.FPS, evlog)
	screen.Fini()
	if dumpLog {
		fmt.Print(evlog.Format())
	}
	return err
}
