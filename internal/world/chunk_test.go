package world

import (
	"testing"

	"sandfall/internal/particle"
	"sandfall/pkg/core"
)

func TestChunkSetGet(t *testing.T) {
	c := NewChunk(Point{X: 2, Y: 3})

	if _, ok := c.Get(Point{X: 5, Y: 5}); ok {
		t.Fatal("empty cell must read as unoccupied")
	}

	c.Set(Point{X: 5, Y: 5}, particle.New(particle.KindStone))
	p, ok := c.Get(Point{X: 5, Y: 5})
	if !ok || p.Kind != particle.KindStone {
		t.Fatalf("Get after Set = %+v, %v", p, ok)
	}

	c.Set(Point{X: 5, Y: 5}, particle.Particle{})
	if _, ok := c.Get(Point{X: 5, Y: 5}); ok {
		t.Fatal("zero particle must clear the cell")
	}
}

func TestChunkBoundary(t *testing.T) {
	c := NewChunk(Point{})
	outside := []Point{
		{X: -1, Y: 0},
		{X: 0, Y: -1},
		{X: ChunkSize, Y: 0},
		{X: 0, Y: ChunkSize},
	}
	for _, pos := range outside {
		if c.InBounds(pos) {
			t.Fatalf("%v reported in bounds", pos)
		}
		if _, ok := c.Get(pos); ok {
			t.Fatalf("Get(%v) reported occupied", pos)
		}
		c.Set(pos, particle.New(particle.KindStone)) // must not panic
	}
	if c.Dirty() {
		t.Fatal("out-of-bounds Set must not mark the chunk dirty")
	}
}

func TestChunkRefresh(t *testing.T) {
	c := NewChunk(Point{})
	if c.ShouldSimulate() {
		t.Fatal("empty chunk must not simulate")
	}

	c.Set(Point{X: 1, Y: 1}, particle.New(particle.KindWater))
	if !c.Dirty() {
		t.Fatal("Set must mark the chunk dirty")
	}
	if c.ShouldSimulate() {
		t.Fatal("simulation flag must not update before a refresh")
	}

	c.TriggerRefresh()
	if c.Dirty() {
		t.Fatal("refresh must clear the dirty bit")
	}
	if !c.ShouldSimulate() {
		t.Fatal("chunk holding water must simulate")
	}

	c.Set(Point{X: 1, Y: 1}, particle.Particle{})
	c.TriggerRefresh()
	if c.ShouldSimulate() {
		t.Fatal("chunk with no liquids must not simulate")
	}
}

func TestChunkWorldCoordinates(t *testing.T) {
	c := NewChunk(Point{X: 1, Y: 2})
	origin := c.WorldOrigin()
	if origin != (Point{X: ChunkSize, Y: 2 * ChunkSize}) {
		t.Fatalf("origin = %v", origin)
	}
	if !c.ContainsWorld(origin) {
		t.Fatal("origin must be contained")
	}
	if !c.ContainsWorld(Point{X: origin.X + ChunkSize - 1, Y: origin.Y + ChunkSize - 1}) {
		t.Fatal("far corner must be contained")
	}
	if c.ContainsWorld(Point{X: origin.X + ChunkSize, Y: origin.Y}) {
		t.Fatal("next chunk's origin must not be contained")
	}
}

func TestSimulateWithoutLiquids(t *testing.T) {
	m := Empty(Config{Width: ChunkSize, Height: ChunkSize, Seed: 1})
	c := m.GetChunkAt(Point{})
	c.Set(Point{X: 3, Y: 0}, particle.New(particle.KindStone))
	c.TriggerRefresh()

	next, moves := c.Simulate(m, particle.DefaultRules(), core.NewRNG(1))
	if len(moves) != 0 {
		t.Fatalf("static chunk queued %d moves", len(moves))
	}
	if p, ok := next.Get(Point{X: 3, Y: 0}); !ok || p.Kind != particle.KindStone {
		t.Fatal("static chunk must return unchanged")
	}
}

func TestProcessInteractionsQuench(t *testing.T) {
	c := NewChunk(Point{})
	c.Set(Point{X: 4, Y: 2}, particle.New(particle.KindLava))
	c.Set(Point{X: 4, Y: 3}, particle.NewLiquid(particle.KindWater, particle.Still))

	next := c.ProcessInteractions(particle.DefaultRules(), core.NewRNG(1))

	p, ok := next.Get(Point{X: 4, Y: 2})
	if !ok || p.Kind != particle.KindObsidian {
		t.Fatalf("lower cell = %+v, %v, want obsidian", p, ok)
	}
	if _, ok := next.Get(Point{X: 4, Y: 3}); ok {
		t.Fatal("upper water must be consumed")
	}
}

func TestProcessInteractionsPreserve(t *testing.T) {
	c := NewChunk(Point{})
	c.Set(Point{X: 7, Y: 10}, particle.NewLiquid(particle.KindAcid, particle.Still))
	c.Set(Point{X: 7, Y: 11}, particle.NewLiquid(particle.KindWater, particle.Still))

	next := c.ProcessInteractions(particle.DefaultRules(), core.NewRNG(1))

	p, ok := next.Get(Point{X: 7, Y: 10})
	if !ok || p.Kind != particle.KindWater {
		t.Fatalf("lower cell = %+v, %v, want water", p, ok)
	}
	if _, ok := next.Get(Point{X: 7, Y: 11}); ok {
		t.Fatal("upper water must be consumed")
	}
}

func TestProcessInteractionsNoRule(t *testing.T) {
	c := NewChunk(Point{})
	c.Set(Point{X: 0, Y: 0}, particle.New(particle.KindStone))
	c.Set(Point{X: 0, Y: 1}, particle.NewLiquid(particle.KindWater, particle.Still))

	next := c.ProcessInteractions(particle.DefaultRules(), core.NewRNG(1))
	if p, _ := next.Get(Point{X: 0, Y: 0}); p.Kind != particle.KindStone {
		t.Fatal("stone must survive water above")
	}
	if p, _ := next.Get(Point{X: 0, Y: 1}); p.Kind != particle.KindWater {
		t.Fatal("water must survive above stone")
	}
}

func TestSpritesheetIndices(t *testing.T) {
	c := NewChunk(Point{})
	c.Set(Point{X: 0, Y: 0}, particle.New(particle.KindDirt))
	c.Set(Point{X: 1, Y: 0}, particle.NewLiquid(particle.KindWater, particle.Left))

	indices := c.SpritesheetIndices()
	if indices[0] != particle.KindDirt.SpriteIndex() {
		t.Fatalf("indices[0] = %d", indices[0])
	}
	if indices[1] != particle.KindWater.SpriteIndex() {
		t.Fatalf("indices[1] = %d", indices[1])
	}
	if indices[2] != 0 {
		t.Fatalf("empty cell index = %d, want 0", indices[2])
	}
}

func TestChunkComposition(t *testing.T) {
	c := NewChunk(Point{})
	for x := 0; x < 5; x++ {
		c.Set(Point{X: x, Y: 0}, particle.New(particle.KindStone))
	}
	c.Set(Point{X: 0, Y: 1}, particle.NewLiquid(particle.KindWater, particle.Still))

	counts := c.Composition()
	if counts[particle.KindStone] != 5 || counts[particle.KindWater] != 1 {
		t.Fatalf("composition = %v", counts)
	}
	if _, ok := counts[particle.KindNone]; ok {
		t.Fatal("empty cells must not be counted")
	}
}
