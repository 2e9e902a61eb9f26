// Package sandfall adapts the chunked particle world to the core.Sim
// interface and registers the runnable scenes: a generated terrain world and
// two small fluid sandboxes.
package sandfall

import (
	"fmt"

	"sandfall/internal/core"
	"sandfall/internal/particle"
	"sandfall/internal/world"
)

// Scene selects the initial world contents.
type Scene string

const (
	// SceneWorld is the full generated terrain.
	SceneWorld Scene = "world"
	// SceneBasin is a stone basin with water poured in from above.
	SceneBasin Scene = "basin"
	// SceneLavaPool is a lava pool quenched by falling water.
	SceneLavaPool Scene = "lavapool"
)

// World adapts a world.Map to core.Sim and tracks the focal point that
// drives the active region.
type World struct {
	cfg   Config
	scene Scene

	m       *world.Map
	focus   world.Point
	display []uint8
}

// New returns a sandfall world for the given scene using defaults.
func New(scene Scene) *World {
	return NewWithConfig(DefaultConfig(), scene)
}

// NewWithConfig returns a sandfall world configured from the provided options.
func NewWithConfig(cfg Config, scene Scene) *World {
	w := &World{
		cfg:     cfg,
		scene:   scene,
		display: make([]uint8, cfg.Width*cfg.Height),
	}
	w.Reset(cfg.Seed)
	return w
}

// Name returns the simulation identifier.
func (w *World) Name() string { return "sandfall/" + string(w.scene) }

// Size reports the world dimensions in particle units.
func (w *World) Size() core.Size { return core.Size{W: w.cfg.Width, H: w.cfg.Height} }

// Cells exposes the current display buffer: one sprite index per cell in
// screen order (row 0 at the top of the world).
func (w *World) Cells() []uint8 { return w.display }

// Map exposes the underlying world for edit tools and inspection.
func (w *World) Map() *world.Map { return w.m }

// Focus returns the current focal world position.
func (w *World) Focus() world.Point { return w.focus }

// SetFocus moves the focal point that the active region follows.
func (w *World) SetFocus(pos world.Point) { w.focus = pos }

// MoveFocus nudges the focal point by the given world-unit deltas, clamped to
// the map.
func (w *World) MoveFocus(dx, dy int) {
	w.focus.X = clamp(w.focus.X+dx, 0, w.cfg.Width-1)
	w.focus.Y = clamp(w.focus.Y+dy, 0, w.cfg.Height-1)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Reset rebuilds the scene using deterministic randomness. A zero seed falls
// back to the configured seed.
func (w *World) Reset(seed int64) {
	cfg := w.cfg
	if seed != 0 {
		cfg.Seed = seed
	}
	wcfg := world.Config{
		Width:       cfg.Width,
		Height:      cfg.Height,
		Seed:        cfg.Seed,
		ActiveRange: cfg.ActiveRange,
		Workers:     cfg.Workers,
		Rules:       particle.DefaultRules(),
	}

	switch w.scene {
	case SceneBasin:
		w.m = buildBasin(wcfg)
	case SceneLavaPool:
		w.m = buildLavaPool(wcfg)
	default:
		m, err := world.Generate(wcfg)
		if err != nil {
			// A failed generation join leaves the world unusable; this is
			// a startup-fatal condition, not a recoverable one.
			panic(fmt.Sprintf("sandfall: world generation failed: %v", err))
		}
		w.m = m
	}

	w.focus = world.Point{X: cfg.Width / 2, Y: cfg.Height / 2}
	w.m.ActivateAround(w.focus)
	w.refreshDisplay(true)
}

// Step advances the world by one simulation tick around the current focus.
func (w *World) Step() {
	w.m.Tick(w.focus)
	w.refreshDisplay(false)
}

// Paint places a particle under the brush via the map edit API.
func (w *World) Paint(pos world.Point, p particle.Particle) {
	w.m.SetParticleAt(pos, p)
}

// Erase clears the cell under the brush.
func (w *World) Erase(pos world.Point) {
	w.m.SetParticleAt(pos, particle.Particle{})
}

// refreshDisplay re-encodes chunk contents into the display buffer. Frozen
// chunks keep their last rendered state, so per-step refreshes only touch the
// active region; all=true rebuilds everything.
func (w *World) refreshDisplay(all bool) {
	if all {
		cw, ch := w.m.ChunkCounts()
		for cx := 0; cx < cw; cx++ {
			for cy := 0; cy < ch; cy++ {
				w.blitChunk(world.Point{X: cx, Y: cy})
			}
		}
		return
	}
	for _, pos := range w.m.ActiveChunks() {
		w.blitChunk(pos)
	}
}

// blitChunk copies one chunk's sprite indices into the display buffer,
// flipping the y axis (world row 0 is the bottom; screen row 0 is the top)
// and clipping cells that fall outside the world bounds.
func (w *World) blitChunk(pos world.Point) {
	chunk := w.m.GetChunkAt(pos)
	if chunk == nil {
		return
	}
	indices := chunk.SpritesheetIndices()
	origin := chunk.WorldOrigin()
	for ly := 0; ly < world.ChunkSize; ly++ {
		wy := origin.Y + ly
		if wy >= w.cfg.Height {
			break
		}
		row := (w.cfg.Height - 1 - wy) * w.cfg.Width
		for lx := 0; lx < world.ChunkSize; lx++ {
			wx := origin.X + lx
			if wx >= w.cfg.Width {
				break
			}
			w.display[row+wx] = indices[ly*world.ChunkSize+lx]
		}
	}
}

// buildBasin creates a stone basin holding a block of water dropped from
// above, a quick scene for watching fluid settle.
func buildBasin(cfg world.Config) *world.Map {
	m := world.Empty(cfg)

	floor := 4
	wallH := cfg.Height / 3
	for x := 0; x < cfg.Width; x++ {
		for y := 0; y < floor; y++ {
			m.SetParticleAt(world.Point{X: x, Y: y}, particle.New(particle.KindStone))
		}
	}
	for y := floor; y < wallH; y++ {
		for t := 0; t < 4; t++ {
			m.SetParticleAt(world.Point{X: t, Y: y}, particle.New(particle.KindStone))
			m.SetParticleAt(world.Point{X: cfg.Width - 1 - t, Y: y}, particle.New(particle.KindStone))
		}
	}

	cx := cfg.Width / 2
	top := cfg.Height - cfg.Height/4
	for dx := -6; dx <= 6; dx++ {
		for dy := 0; dy < 8; dy++ {
			m.SetParticleAt(world.Point{X: cx + dx, Y: top + dy}, particle.NewLiquid(particle.KindWater, particle.Still))
		}
	}
	return m
}

// buildLavaPool creates a lava pool with water falling onto it, producing an
// obsidian crust where the two meet.
func buildLavaPool(cfg world.Config) *world.Map {
	m := world.Empty(cfg)

	floor := 4
	for x := 0; x < cfg.Width; x++ {
		for y := 0; y < floor; y++ {
			m.SetParticleAt(world.Point{X: x, Y: y}, particle.New(particle.KindStone))
		}
	}
	for x := cfg.Width / 4; x < 3*cfg.Width/4; x++ {
		for y := floor; y < floor+6; y++ {
			m.SetParticleAt(world.Point{X: x, Y: y}, particle.NewLiquid(particle.KindLava, particle.Still))
		}
	}

	cx := cfg.Width / 2
	top := cfg.Height - cfg.Height/4
	for dx := -4; dx <= 4; dx++ {
		for dy := 0; dy < 6; dy++ {
			m.SetParticleAt(world.Point{X: cx + dx, Y: top + dy}, particle.NewLiquid(particle.KindWater, particle.Still))
		}
	}
	return m
}

func init() {
	register := func(scene Scene) {
		core.Register(string(scene), func(cfg map[string]string) core.Sim {
			return NewWithConfig(FromMap(cfg), scene)
		})
	}
	register(SceneWorld)
	register(SceneBasin)
	register(SceneLavaPool)
}
