package world

import (
	"testing"

	"sandfall/internal/particle"
	"sandfall/pkg/core"
)

func TestSurfaceHeights(t *testing.T) {
	size := 256
	heights := surfaceHeights(size, size)
	if len(heights) != size {
		t.Fatalf("len(heights) = %d", len(heights))
	}

	base := int(float64(size) * surfaceBaseFraction)
	for x, h := range heights {
		if h < base-int(surfaceAmplitude) || h > base+int(surfaceAmplitude) {
			t.Fatalf("height[%d] = %d outside ripple band around %d", x, h, base)
		}
	}

	again := surfaceHeights(size, size)
	for x := range heights {
		if heights[x] != again[x] {
			t.Fatalf("surface not deterministic at column %d", x)
		}
	}
}

func TestRollSpecialShallowDepth(t *testing.T) {
	rng := core.NewRNG(1)
	for i := 0; i < 1000; i++ {
		if kind, ok := RollSpecial(5, rng); ok {
			t.Fatalf("special %v spawned above every special's minimum depth", kind)
		}
	}
}

func TestRollSpecialEligibility(t *testing.T) {
	rng := core.NewRNG(2)

	// Gold only: past gold's minimum, short of ruby's.
	for i := 0; i < 200000; i++ {
		if kind, ok := RollSpecial(50, rng); ok && kind != particle.KindGold {
			t.Fatalf("depth 50 spawned %v", kind)
		}
	}

	// Past ruby's maximum, only gold remains.
	for i := 0; i < 200000; i++ {
		if kind, ok := RollSpecial(200, rng); ok && kind != particle.KindGold {
			t.Fatalf("depth 200 spawned %v", kind)
		}
	}
}

func TestRollSpecialWeights(t *testing.T) {
	rng := core.NewRNG(3)
	counts := map[particle.Kind]int{}
	const trials = 200000
	for i := 0; i < trials; i++ {
		if kind, ok := RollSpecial(100, rng); ok {
			counts[kind]++
		}
	}

	total := counts[particle.KindGold] + counts[particle.KindRuby]
	wantTotal := trials * (particle.KindGold.SpawnWeight() + particle.KindRuby.SpawnWeight()) / particle.SpawnScale
	if total < wantTotal*8/10 || total > wantTotal*12/10 {
		t.Fatalf("spawn count %d far from expected %d", total, wantTotal)
	}
	// Weight 20 vs 3: gold must dominate heavily.
	if counts[particle.KindGold] < counts[particle.KindRuby]*3 {
		t.Fatalf("weight ratio off: gold=%d ruby=%d", counts[particle.KindGold], counts[particle.KindRuby])
	}
}

func TestSpawnSpecialVein(t *testing.T) {
	cfg := Config{Width: 64, Height: 64}
	rng := core.NewRNG(4)

	for i := 0; i < 100; i++ {
		center := Point{X: 30, Y: 30}
		out := spawnSpecial(center, particle.KindGold, cfg, rng)
		if len(out) < 1 || len(out) > 7 {
			t.Fatalf("vein size %d outside [1,7]", len(out))
		}
		if out[0].pos != center {
			t.Fatalf("first placement %v, want the rolled cell", out[0].pos)
		}
		for _, pl := range out {
			if pl.p.Kind != particle.KindGold || !pl.special {
				t.Fatalf("vein placement %+v", pl)
			}
			if pl.pos.X < center.X-1 || pl.pos.X > center.X+1 || pl.pos.Y < center.Y-1 || pl.pos.Y > center.Y+1 {
				t.Fatalf("vein cell %v outside the neighborhood of %v", pl.pos, center)
			}
		}
	}
}

func TestSpawnSpecialGem(t *testing.T) {
	out := spawnSpecial(Point{X: 10, Y: 10}, particle.KindRuby, Config{Width: 64, Height: 64}, core.NewRNG(5))
	if len(out) != 1 {
		t.Fatalf("ruby produced %d placements, want 1", len(out))
	}
}

func TestSpawnSpecialClipsToBounds(t *testing.T) {
	cfg := Config{Width: 64, Height: 64}
	rng := core.NewRNG(6)
	for i := 0; i < 100; i++ {
		for _, pl := range spawnSpecial(Point{}, particle.KindGold, cfg, rng) {
			if pl.pos.X < 0 || pl.pos.Y < 0 {
				t.Fatalf("vein cell %v outside the map", pl.pos)
			}
		}
	}
}

func TestGenerateTerrain(t *testing.T) {
	cfg := Config{Width: 96, Height: 96, Seed: 99, Workers: 3}
	m, err := Generate(cfg)
	if err != nil {
		t.Fatal(err)
	}

	heights := surfaceHeights(cfg.Width, cfg.Height)
	for x := 0; x < cfg.Width; x++ {
		surface := heights[x]
		for y := 0; y < cfg.Height; y++ {
			p, ok := m.ParticleAt(Point{X: x, Y: y})
			if y > surface {
				if ok {
					t.Fatalf("(%d,%d) above the surface holds %v", x, y, p.Kind)
				}
				continue
			}
			if !ok {
				t.Fatalf("(%d,%d) below the surface is empty", x, y)
			}
			depth := surface - y
			switch p.Kind {
			case particle.KindDirt, particle.KindStone:
				if want := particle.CommonAtDepth(depth); p.Kind != want {
					t.Fatalf("(%d,%d) depth %d holds %v, want %v", x, y, depth, p.Kind, want)
				}
			case particle.KindRuby:
				if depth < particle.KindRuby.MinDepth() || depth >= particle.KindRuby.MaxDepth() {
					t.Fatalf("ruby at depth %d", depth)
				}
			case particle.KindGold:
				// A vein cell lands up to one column over, where the sine
				// surface can sit a row lower, on top of its own vertical
				// offset: up to two cells shallower than the rolled center.
				if depth < particle.KindGold.MinDepth()-2 {
					t.Fatalf("gold at depth %d", depth)
				}
			default:
				t.Fatalf("(%d,%d) holds unexpected %v", x, y, p.Kind)
			}
		}
	}
}

func TestGenerateDeterministic(t *testing.T) {
	cfg := Config{Width: 96, Height: 96, Seed: 1234, Workers: 4}

	a, err := Generate(cfg)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Generate(cfg)
	if err != nil {
		t.Fatal(err)
	}

	cw, ch := a.ChunkCounts()
	for cx := 0; cx < cw; cx++ {
		for cy := 0; cy < ch; cy++ {
			pos := Point{X: cx, Y: cy}
			if a.GetChunkAt(pos).SpritesheetIndices() != b.GetChunkAt(pos).SpritesheetIndices() {
				t.Fatalf("chunk %v differs between identical runs", pos)
			}
		}
	}
}

func TestGenerateSingleWorker(t *testing.T) {
	cfg := Config{Width: 64, Height: 64, Seed: 7, Workers: 1}
	m, err := Generate(cfg)
	if err != nil {
		t.Fatal(err)
	}
	counts := m.Composition()
	if counts[particle.KindDirt] == 0 || counts[particle.KindStone] == 0 {
		t.Fatalf("terrain missing commons: %v", counts)
	}
}
