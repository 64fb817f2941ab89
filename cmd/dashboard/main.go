package main

import (
	"log"

	"github.com/Garsondee/skyline/internal/game"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg, err := game.LoadConfig()
	if err != nil {
		log.Printf("config: %v (using defaults)", err)
	}
	g := game.New(cfg)
	ebiten.SetWindowTitle("Skyline")
	ebiten.SetWindowSize(cfg.WindowW, cfg.WindowH)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	err = ebiten.RunGame(g)
	g.Close()
	if err != nil {
		log.Fatal(err)
	}
	log.Print("\n" + g.Report())
}
