package main

import (
	"fmt"
	"log"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/rigid2d/ecs"
	"github.com/milk9111/rigid2d/ecs/component"
	"github.com/milk9111/rigid2d/ecs/entity"
	"github.com/milk9111/rigid2d/ecs/render"
	"github.com/milk9111/rigid2d/ecs/system"
	"github.com/milk9111/rigid2d/physics"
	"github.com/milk9111/rigid2d/prefabs"
	"github.com/milk9111/rigid2d/scene"
)

const (
	screenWidth  = 1280
	screenHeight = 720
)

type Options struct {
	Debug      bool
	ConfigPath string
	Rows       int
	Cols       int
	Bodies     int
	Seed       int64
	ScenePath  string
	SavePath   string
	Watch      bool
}

type Game struct {
	opts Options

	world      *ecs.World
	scheduler  *ecs.Scheduler
	physics    *system.PhysicsSystem
	collisions *system.CollisionSystem
	viewport   *render.EbitenViewport
	debug      *render.PhysicsDebug
	watcher    *prefabs.Watcher

	paused bool
}

func NewGame(opts Options) (*Game, error) {
	spec, err := loadSpec(opts.ConfigPath)
	if err != nil {
		return nil, err
	}

	world := ecs.NewWorld()
	viewport := render.NewEbitenViewport(world)
	physicsConfig, collisionConfig := system.ConfigsFromSpec(spec)
	grid := physics.NewImplicitGrid(gridConfig(spec, opts), viewport)
	collisions := system.NewCollisionSystem(grid, collisionConfig)
	ps := system.NewPhysicsSystem(physicsConfig, collisions)

	g := &Game{
		opts:       opts,
		world:      world,
		scheduler:  ecs.NewScheduler(ps),
		physics:    ps,
		collisions: collisions,
		viewport:   viewport,
		debug:      render.NewPhysicsDebug(viewport, debugToggles(spec, opts.Debug)),
	}

	if opts.ScenePath != "" {
		loaded, err := scene.LoadFile(world, opts.ScenePath)
		if err != nil {
			return nil, fmt.Errorf("sandbox: %w", err)
		}
		log.Printf("loaded %d entities from %s", len(loaded), opts.ScenePath)
	} else if err := spawnScene(world, opts.Bodies, opts.Seed); err != nil {
		return nil, fmt.Errorf("sandbox: %w", err)
	}
	if _, ok := ecs.First(world, component.CameraComponent.Kind()); !ok {
		if _, err := entity.NewCamera(world, cp.Vector{X: screenWidth / 2, Y: screenHeight / 2}, 1); err != nil {
			return nil, fmt.Errorf("sandbox: %w", err)
		}
	}

	if opts.Watch {
		dir := "prefabs"
		if opts.ConfigPath != "" {
			dir = filepath.Dir(opts.ConfigPath)
		}
		w, err := prefabs.NewWatcher(dir)
		if err != nil {
			log.Printf("config watch disabled: %v", err)
		} else {
			g.watcher = w
		}
	}

	return g, nil
}

func loadSpec(path string) (*prefabs.PhysicsSpec, error) {
	if path == "" {
		return prefabs.LoadPhysicsSpec()
	}
	return prefabs.LoadPhysicsSpecFile(path)
}

func gridConfig(spec *prefabs.PhysicsSpec, opts Options) physics.GridConfig {
	cfg := spec.Grid
	if opts.Rows > 0 {
		cfg.Rows = opts.Rows
	}
	if opts.Cols > 0 {
		cfg.Cols = opts.Cols
	}
	return physics.NewGridConfig(cfg.Rows, cfg.Cols)
}

func debugToggles(spec *prefabs.PhysicsSpec, all bool) render.DebugToggles {
	if all {
		return render.DebugToggles{ShowColliders: true, ShowGrid: true, ShowVelocity: true, ShowContacts: true}
	}
	return render.DebugToggles{
		ShowColliders: spec.Debug.ShowColliders,
		ShowGrid:      spec.Debug.ShowGrid,
		ShowVelocity:  spec.Debug.ShowVelocity,
		ShowContacts:  spec.Debug.ShowContacts,
	}
}

func (g *Game) Update() error {
	g.pollConfig()

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	g.handleInput()

	if !g.paused || inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.scheduler.Update(g.world)
	}
	return nil
}

func (g *Game) handleInput() {
	t := &g.debug.Toggles
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		t.ShowColliders = !t.ShowColliders
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyG) {
		t.ShowGrid = !t.ShowGrid
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyV) {
		t.ShowVelocity = !t.ShowVelocity
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyX) {
		t.ShowContacts = !t.ShowContacts
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		cfg := g.collisions.Config()
		if cfg.Resolver == system.ResolveWithRotation {
			cfg.Resolver = system.ResolveLinear
		} else {
			cfg.Resolver = system.ResolveWithRotation
		}
		g.collisions.Configure(cfg)
		log.Printf("resolver: %s", cfg.Resolver)
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		pos := g.screenToWorld(ebiten.CursorPosition())
		if _, err := entity.NewBox(g.world, pos, 40, 40, entity.BodySpec{Type: component.BodyDynamic, Restitution: 0.3}); err != nil {
			log.Printf("spawn box: %v", err)
		}
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) {
		pos := g.screenToWorld(ebiten.CursorPosition())
		if _, err := entity.NewCircle(g.world, pos, 20, entity.BodySpec{Type: component.BodyDynamic, Restitution: 0.5}); err != nil {
			log.Printf("spawn circle: %v", err)
		}
	}
}

func (g *Game) screenToWorld(x, y int) cp.Vector {
	w, h := g.viewport.Size()
	zoom := g.viewport.Zoom()
	if zoom <= 0 {
		zoom = 1
	}
	screen := cp.Vector{X: float64(x) - w/2, Y: float64(y) - h/2}
	return g.viewport.Center().Add(screen.Mult(1 / zoom))
}

// pollConfig applies config reloads without blocking the tick.
func (g *Game) pollConfig() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case name, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			g.reload(name)
		case err, ok := <-g.watcher.Errors:
			if ok {
				log.Printf("config watch: %v", err)
			}
			return
		default:
			return
		}
	}
}

func (g *Game) reload(name string) {
	if g.opts.ConfigPath != "" && filepath.Clean(name) != filepath.Clean(g.opts.ConfigPath) {
		return
	}
	if g.opts.ConfigPath == "" && filepath.Base(name) != prefabs.PhysicsFile {
		return
	}
	spec, err := loadSpec(g.opts.ConfigPath)
	if err != nil {
		log.Printf("reload %s: %v", name, err)
		return
	}
	physicsConfig, collisionConfig := system.ConfigsFromSpec(spec)
	g.physics.Configure(physicsConfig)
	g.collisions.Configure(collisionConfig)
	g.collisions.Grid().SetConfig(gridConfig(spec, g.opts))
	g.debug.Toggles = debugToggles(spec, g.opts.Debug)
	log.Printf("reloaded %s", name)
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.debug.Draw(screen, g.world, g.collisions)
	g.debug.DrawStats(screen, g.collisions)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.viewport.SetLayout(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

// Save writes the scene when a save path was given.
func (g *Game) Save() error {
	if g.opts.SavePath == "" {
		return nil
	}
	if err := scene.SaveFile(g.world, g.opts.SavePath); err != nil {
		return err
	}
	log.Printf("saved scene to %s", g.opts.SavePath)
	return nil
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}
