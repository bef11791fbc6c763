package main

import (
	"fmt"
	"math/rand"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/rigid2d/ecs"
	"github.com/milk9111/rigid2d/ecs/component"
	"github.com/milk9111/rigid2d/ecs/entity"
)

const wallThickness = 20

// spawnScene builds a walled box and drops random bodies into it.
func spawnScene(w *ecs.World, bodies int, seed int64) error {
	if err := spawnWalls(w); err != nil {
		return err
	}

	// A static ramp gives rotation something to do.
	_, err := entity.NewBox(w, cp.Vector{X: screenWidth * 0.35, Y: screenHeight * 0.6}, 360, 16,
		entity.BodySpec{Type: component.BodyStatic, Rotation: 0.3})
	if err != nil {
		return fmt.Errorf("spawn ramp: %w", err)
	}

	rng := rand.New(rand.NewSource(seed))
	for i := 0; i < bodies; i++ {
		pos := cp.Vector{
			X: wallThickness*2 + rng.Float64()*(screenWidth-wallThickness*4),
			Y: wallThickness*2 + rng.Float64()*screenHeight*0.4,
		}
		spec := entity.BodySpec{
			Type:        component.BodyDynamic,
			Density:     0.5 + rng.Float64(),
			Restitution: rng.Float64() * 0.6,
			Velocity:    cp.Vector{X: (rng.Float64() - 0.5) * 200},
			Rotation:    rng.Float64() * 3.14,
		}
		if i%2 == 0 {
			size := 20 + rng.Float64()*30
			_, err = entity.NewBox(w, pos, size, size*(0.6+rng.Float64()*0.8), spec)
		} else {
			_, err = entity.NewCircle(w, pos, 10+rng.Float64()*20, spec)
		}
		if err != nil {
			return fmt.Errorf("spawn body %d: %w", i, err)
		}
	}
	return nil
}

func spawnWalls(w *ecs.World) error {
	walls := []struct {
		pos  cp.Vector
		w, h float64
	}{
		{cp.Vector{X: screenWidth / 2, Y: screenHeight - wallThickness/2}, screenWidth, wallThickness},
		{cp.Vector{X: screenWidth / 2, Y: wallThickness / 2}, screenWidth, wallThickness},
		{cp.Vector{X: wallThickness / 2, Y: screenHeight / 2}, wallThickness, screenHeight},
		{cp.Vector{X: screenWidth - wallThickness/2, Y: screenHeight / 2}, wallThickness, screenHeight},
	}
	for i, wall := range walls {
		if _, err := entity.NewStaticBox(w, wall.pos, wall.w, wall.h); err != nil {
			return fmt.Errorf("spawn wall %d: %w", i, err)
		}
	}
	return nil
}
