package main

import (
	"errors"
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	debug := flag.Bool("debug", false, "enable every debug overlay")
	configPath := flag.String("config", "", "physics config yaml (defaults to prefabs/physics.yaml)")
	rows := flag.Int("rows", 0, "grid rows, overrides the config when > 0")
	cols := flag.Int("cols", 0, "grid columns, overrides the config when > 0")
	bodies := flag.Int("bodies", 24, "number of random bodies to spawn")
	seed := flag.Int64("seed", 1, "random seed for spawned bodies")
	scenePath := flag.String("scene", "", "scene yaml to load instead of spawning bodies")
	savePath := flag.String("save", "", "write the scene to this path on exit")
	watch := flag.Bool("watch", true, "reload the physics config when it changes on disk")
	flag.Parse()

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("rigid2d sandbox")

	game, err := NewGame(Options{
		Debug:      *debug,
		ConfigPath: *configPath,
		Rows:       *rows,
		Cols:       *cols,
		Bodies:     *bodies,
		Seed:       *seed,
		ScenePath:  *scenePath,
		SavePath:   *savePath,
		Watch:      *watch,
	})
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
	if err := game.Save(); err != nil {
		log.Printf("save scene: %v", err)
	}
}
