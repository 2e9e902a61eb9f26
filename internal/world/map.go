package world

import (
	"sort"

	"sandfall/internal/particle"
)

// SimulationRate is the fixed number of simulation ticks per second,
// independent of the render frame rate.
const SimulationRate = 40

// DefaultActiveRange is the radius, in chunks, of the active region kept
// simulating around the focal point.
const DefaultActiveRange = 12

// Config holds the world dimensions and simulation parameters.
type Config struct {
	// Width and Height are the world dimensions in particle units.
	Width  int
	Height int

	Seed int64

	// ActiveRange is the active-region radius in chunk units.
	ActiveRange int
	// Workers is the number of generation workers. Zero means one per CPU.
	Workers int

	// Rules is the interaction table the simulation consults. Nil disables
	// interactions.
	Rules *particle.Rules
}

// DefaultConfig returns the standard world configuration.
func DefaultConfig() Config {
	return Config{
		Width:       640,
		Height:      640,
		Seed:        1337,
		ActiveRange: DefaultActiveRange,
		Rules:       particle.DefaultRules(),
	}
}

// Map is the world: a rectangular array of chunks plus the set of chunks
// currently active around the focal point. Chunks are created empty at
// construction and mutated in place for the life of the process.
type Map struct {
	// Width and Height are the world dimensions in particle units.
	Width  int
	Height int

	chunks [][]Chunk // indexed [cx][cy]
	active map[Point]struct{}

	rules       *particle.Rules
	seed        int64
	activeRange int
	tick        uint64
}

func ceilDiv(a, b int) int { return (a + b - 1) / b }

// worldToChunk converts a world position to chunk coordinates.
func worldToChunk(pos Point) Point {
	return Point{X: pos.X / ChunkSize, Y: pos.Y / ChunkSize}
}

// worldToLocal converts a world position to in-chunk coordinates.
func worldToLocal(pos Point) Point {
	return Point{X: pos.X % ChunkSize, Y: pos.Y % ChunkSize}
}

// Empty creates a world of empty chunks sized to the config dimensions.
func Empty(cfg Config) *Map {
	cw := ceilDiv(cfg.Width, ChunkSize)
	ch := ceilDiv(cfg.Height, ChunkSize)

	chunks := make([][]Chunk, cw)
	for cx := 0; cx < cw; cx++ {
		chunks[cx] = make([]Chunk, ch)
		for cy := 0; cy < ch; cy++ {
			chunks[cx][cy] = NewChunk(Point{X: cx, Y: cy})
		}
	}

	activeRange := cfg.ActiveRange
	if activeRange <= 0 {
		activeRange = DefaultActiveRange
	}

	return &Map{
		Width:       cfg.Width,
		Height:      cfg.Height,
		chunks:      chunks,
		active:      map[Point]struct{}{},
		rules:       cfg.Rules,
		seed:        cfg.Seed,
		activeRange: activeRange,
	}
}

// ChunkCounts returns the chunk grid dimensions.
func (m *Map) ChunkCounts() (int, int) {
	return len(m.chunks), len(m.chunks[0])
}

// inBounds reports whether a world position lies inside the map.
func (m *Map) inBounds(pos Point) bool {
	return pos.X >= 0 && pos.X < m.Width && pos.Y >= 0 && pos.Y < m.Height
}

// GetChunkAt returns the chunk at the given chunk coordinates, or nil when
// the coordinates fall outside the chunk grid.
func (m *Map) GetChunkAt(pos Point) *Chunk {
	cw, ch := m.ChunkCounts()
	if pos.X < 0 || pos.X >= cw || pos.Y < 0 || pos.Y >= ch {
		return nil
	}
	return &m.chunks[pos.X][pos.Y]
}

// ParticleAt returns the particle at a world position. The second return is
// false for empty cells and out-of-bounds positions alike.
func (m *Map) ParticleAt(pos Point) (particle.Particle, bool) {
	if !m.inBounds(pos) {
		return particle.Particle{}, false
	}
	return m.GetChunkAt(worldToChunk(pos)).Get(worldToLocal(pos))
}

// SetParticleAt places a particle at a world position, handling the chunk
// split. Out-of-bounds positions are a no-op. Used by editing tools (paint
// and erase brushes) as well as the apply phase.
func (m *Map) SetParticleAt(pos Point, p particle.Particle) {
	if !m.inBounds(pos) {
		return
	}
	m.GetChunkAt(worldToChunk(pos)).Set(worldToLocal(pos), p)
}

// ActiveChunks returns the chunk coordinates of the active region, sorted by
// column then row so callers iterate in a stable order.
func (m *Map) ActiveChunks() []Point {
	keys := make([]Point, 0, len(m.active))
	for k := range m.active {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].X != keys[j].X {
			return keys[i].X < keys[j].X
		}
		return keys[i].Y < keys[j].Y
	})
	return keys
}

// IsActive reports whether a chunk coordinate is in the active region.
func (m *Map) IsActive(pos Point) bool {
	_, ok := m.active[pos]
	return ok
}

// ActivateAround recomputes the active region: all chunks within the
// configured radius (chunk units) of the focal world position, intersected
// with the chunk grid. Chunks that drop out freeze with whatever state they
// last had. Cheap enough to recompute every tick.
func (m *Map) ActivateAround(focus Point) {
	clamped := focus
	if clamped.X < 0 {
		clamped.X = 0
	}
	if clamped.X >= m.Width {
		clamped.X = m.Width - 1
	}
	if clamped.Y < 0 {
		clamped.Y = 0
	}
	if clamped.Y >= m.Height {
		clamped.Y = m.Height - 1
	}
	center := worldToChunk(clamped)

	cw, ch := m.ChunkCounts()
	minX := center.X - m.activeRange
	if minX < 0 {
		minX = 0
	}
	minY := center.Y - m.activeRange
	if minY < 0 {
		minY = 0
	}
	maxX := center.X + m.activeRange
	if maxX > cw-1 {
		maxX = cw - 1
	}
	maxY := center.Y + m.activeRange
	if maxY > ch-1 {
		maxY = ch - 1
	}

	clear(m.active)
	for x := minX; x <= maxX; x++ {
		for y := minY; y <= maxY; y++ {
			m.active[Point{X: x, Y: y}] = struct{}{}
		}
	}
}

// ChunksNear returns the chunk coordinates within a circular radius (world
// units) of the given world position, clipped to the chunk grid.
func (m *Map) ChunksNear(pos Point, radius int) []Point {
	center := worldToChunk(pos)
	chunkRange := ceilDiv(radius, ChunkSize)
	cw, ch := m.ChunkCounts()

	var nearby []Point
	for x := center.X - chunkRange; x <= center.X+chunkRange; x++ {
		if x < 0 || x >= cw {
			continue
		}
		for y := center.Y - chunkRange; y <= center.Y+chunkRange; y++ {
			if y < 0 || y >= ch {
				continue
			}
			dx := x - center.X
			dy := y - center.Y
			if dx*dx+dy*dy <= chunkRange*chunkRange {
				nearby = append(nearby, Point{X: x, Y: y})
			}
		}
	}
	return nearby
}

// Composition counts every particle in the world by kind.
func (m *Map) Composition() map[particle.Kind]int {
	counts := map[particle.Kind]int{}
	for cx := range m.chunks {
		for cy := range m.chunks[cx] {
			for kind, n := range m.chunks[cx][cy].Composition() {
				counts[kind] += n
			}
		}
	}
	return counts
}

// refreshDirty re-runs bookkeeping on every dirty chunk in the active region.
func (m *Map) refreshDirty() {
	for pos := range m.active {
		chunk := m.GetChunkAt(pos)
		if chunk.Dirty() {
			chunk.TriggerRefresh()
		}
	}
}
