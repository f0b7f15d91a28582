package main

import (
	"flag"
	"log"

	"github.com/Garsondee/particle-field/internal/config"
	"github.com/Garsondee/particle-field/internal/game"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	var cfgPath string
	var quantity int
	var color string
	var seed int64
	var noHUD bool

	flag.StringVar(&cfgPath, "config", "", "TOML settings file")
	flag.IntVar(&quantity, "quantity", -1, "particle count (overrides config)")
	flag.StringVar(&color, "color", "", "particle colour as #rgb or #rrggbb (overrides config)")
	flag.Int64Var(&seed, "seed", 0, "RNG seed, 0 picks one from the clock")
	flag.BoolVar(&noHUD, "no-hud", false, "hide the overlay")
	flag.Parse()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatal(err)
	}
	if quantity >= 0 {
		cfg.Field.Quantity = quantity
	}
	if color != "" {
		cfg.Field.Color = color
	}
	if seed != 0 {
		cfg.Field.Seed = seed
	}
	opts, err := cfg.Options()
	if err != nil {
		log.Fatal(err)
	}

	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	g := game.New(opts, cfg.Window.HUD && !noHUD)
	defer g.Close()
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
