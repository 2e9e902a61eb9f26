// Command sandfall-term is a terminal viewer for the sandfall world. It pulls
// display snapshots each tick and renders them as colored glyphs; arrows move
// the focal point, space pauses, n single-steps, r reseeds, q quits.
package main

import (
	"flag"
	"log"
	"time"

	"github.com/gdamore/tcell/v2"

	"sandfall/internal/core"
	"sandfall/internal/particle"
	"sandfall/internal/sims/sandfall"
	"sandfall/internal/world"
)

var kindRunes = map[uint8]rune{
	particle.KindDirt.SpriteIndex():     '.',
	particle.KindStone.SpriteIndex():    '#',
	particle.KindGold.SpriteIndex():     '$',
	particle.KindRuby.SpriteIndex():     '*',
	particle.KindWater.SpriteIndex():    '~',
	particle.KindLava.SpriteIndex():     '^',
	particle.KindObsidian.SpriteIndex(): '%',
	particle.KindAcid.SpriteIndex():     ':',
}

func main() {
	scene := flag.String("scene", "basin", "scene to run (world, basin, lavapool)")
	seed := flag.Int64("seed", 42, "seed for world reset")
	configFile := flag.String("config", "", "optional YAML world config file")
	flag.Parse()

	if _, ok := core.Sims()[*scene]; !ok {
		log.Fatalf("unknown scene %q", *scene)
	}

	cfg := sandfall.DefaultConfig()
	if *configFile != "" {
		loaded, err := sandfall.LoadFile(*configFile)
		if err != nil {
			log.Fatal(err)
		}
		cfg = loaded
	}
	cfg.Seed = *seed

	w := sandfall.NewWithConfig(cfg, sandfall.Scene(*scene))

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatal(err)
	}
	if err := screen.Init(); err != nil {
		log.Fatal(err)
	}
	defer screen.Fini()

	styles := buildStyles(w)

	events := make(chan tcell.Event, 8)
	go func() {
		for {
			events <- screen.PollEvent()
		}
	}()

	ticker := time.NewTicker(time.Second / world.SimulationRate)
	defer ticker.Stop()

	paused := false
	for {
		select {
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventResize:
				screen.Sync()
			case *tcell.EventKey:
				switch {
				case ev.Key() == tcell.KeyEscape || ev.Rune() == 'q':
					return
				case ev.Rune() == ' ':
					paused = !paused
				case ev.Rune() == 'n':
					w.Step()
				case ev.Rune() == 'r':
					w.Reset(*seed)
				case ev.Key() == tcell.KeyLeft:
					w.MoveFocus(-world.ChunkSize, 0)
				case ev.Key() == tcell.KeyRight:
					w.MoveFocus(world.ChunkSize, 0)
				case ev.Key() == tcell.KeyUp:
					w.MoveFocus(0, world.ChunkSize)
				case ev.Key() == tcell.KeyDown:
					w.MoveFocus(0, -world.ChunkSize)
				}
			}
		case <-ticker.C:
			if !paused {
				w.Step()
			}
			draw(screen, w, styles)
		}
	}
}

// buildStyles derives a tcell style per sprite index from the world palette.
func buildStyles(w *sandfall.World) []tcell.Style {
	palette := w.Palette()
	styles := make([]tcell.Style, len(palette))
	for i, c := range palette {
		styles[i] = tcell.StyleDefault.
			Foreground(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)))
	}
	return styles
}

// draw paints the visible portion of the display buffer, one glyph per cell.
func draw(screen tcell.Screen, w *sandfall.World, styles []tcell.Style) {
	size := w.Size()
	cells := w.Cells()
	sw, sh := screen.Size()

	rows := size.H
	if sh < rows {
		rows = sh
	}
	cols := size.W
	if sw < cols {
		cols = sw
	}

	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			idx := cells[y*size.W+x]
			r, ok := kindRunes[idx]
			if !ok {
				r = ' '
			}
			screen.SetContent(x, y, r, nil, styles[int(idx)%len(styles)])
		}
	}
	screen.Show()
}
