//go:build ebiten

package app

import (
	"image/color"
	"time"

	"sandfall/internal/core"
	"sandfall/internal/particle"
	"sandfall/internal/render"
	"sandfall/internal/world"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Sandbox is the surface the viewer needs from a world: the Sim contract
// plus a palette, a movable focal point, and brush editing.
type Sandbox interface {
	core.Sim
	Palette() []color.RGBA
	MoveFocus(dx, dy int)
	Paint(pos world.Point, p particle.Particle)
	Erase(pos world.Point)
}

// Game adapts a sandfall world to the ebiten.Game interface. The viewer is a
// collaborator of the simulation core: it pulls display snapshots each frame
// and feeds back focus movement and brush edits.
type Game struct {
	sim     Sandbox
	painter *render.GridPainter
	stepper *core.FixedStep

	scale    int
	paused   bool
	tickOnce bool
	seed     int64
	brush    particle.Kind
}

// New constructs a Game for the provided world.
func New(sim Sandbox, scale int, seed int64) *Game {
	size := sim.Size()
	return &Game{
		sim:     sim,
		painter: render.NewGridPainter(size.W, size.H),
		stepper: core.NewFixedStep(world.SimulationRate),
		scale:   scale,
		seed:    seed,
		brush:   particle.KindWater,
	}
}

// Reset reinitializes the world state with the provided seed.
func (g *Game) Reset(seed int64) {
	g.seed = seed
	g.sim.Reset(seed)
	g.tickOnce = false
}

// Update handles per-frame input and advances the simulation at its fixed
// rate, independent of the frame rate.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset(g.seed)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.Reset(time.Now().UnixNano())
	}

	g.handleFocus()
	g.handleBrush()

	if g.paused {
		if g.tickOnce {
			g.sim.Step()
			g.tickOnce = false
		}
		return nil
	}
	for i := g.stepper.PendingSteps(4); i > 0; i-- {
		g.sim.Step()
	}
	return nil
}

// handleFocus moves the focal point one chunk per key press.
func (g *Game) handleFocus() {
	step := world.ChunkSize
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft) {
		g.sim.MoveFocus(-step, 0)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowRight) {
		g.sim.MoveFocus(step, 0)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) {
		g.sim.MoveFocus(0, step)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) {
		g.sim.MoveFocus(0, -step)
	}
}

// handleBrush paints with the selected particle on left click and erases on
// right click.
func (g *Game) handleBrush() {
	for key, kind := range map[ebiten.Key]particle.Kind{
		ebiten.Key1: particle.KindWater,
		ebiten.Key2: particle.KindLava,
		ebiten.Key3: particle.KindAcid,
		ebiten.Key4: particle.KindDirt,
		ebiten.Key5: particle.KindStone,
	} {
		if inpututil.IsKeyJustPressed(key) {
			g.brush = kind
		}
	}

	left := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	right := ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	if !left && !right {
		return
	}
	pos, ok := g.cursorWorld()
	if !ok {
		return
	}
	if left {
		p := particle.New(g.brush)
		if p.IsLiquid() {
			p = particle.NewLiquid(g.brush, particle.Still)
		}
		g.sim.Paint(pos, p)
		return
	}
	g.sim.Erase(pos)
}

// cursorWorld converts the mouse position to world coordinates, flipping the
// y axis (screen row 0 is the top of the world).
func (g *Game) cursorWorld() (world.Point, bool) {
	mx, my := ebiten.CursorPosition()
	size := g.sim.Size()
	x := mx / g.scale
	sy := my / g.scale
	if x < 0 || x >= size.W || sy < 0 || sy >= size.H {
		return world.Point{}, false
	}
	return world.Point{X: x, Y: size.H - 1 - sy}, true
}

// Draw renders the current world state.
func (g *Game) Draw(screen *ebiten.Image) {
	g.painter.Blit(screen, g.sim.Cells(), g.sim.Palette(), g.scale)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.sim.Size()
	return s.W * g.scale, s.H * g.scale
}
