package sandfall

import (
	"image/color"

	"sandfall/internal/particle"
)

var sandfallPalette = buildPalette()

// Palette exposes the color palette used for rendering the world. Indexed by
// sprite index; index 0 is air.
func (w *World) Palette() []color.RGBA {
	return sandfallPalette
}

func buildPalette() []color.RGBA {
	palette := make([]color.RGBA, 9)
	kinds := []particle.Kind{
		particle.KindDirt,
		particle.KindStone,
		particle.KindGold,
		particle.KindRuby,
		particle.KindWater,
		particle.KindLava,
		particle.KindObsidian,
		particle.KindAcid,
	}
	palette[0] = color.RGBA{R: 12, G: 10, B: 16, A: 255} // air
	for _, k := range kinds {
		palette[k.SpriteIndex()] = kindColor(k)
	}
	return palette
}

func kindColor(k particle.Kind) color.RGBA {
	switch k {
	case particle.KindDirt:
		return color.RGBA{R: 120, G: 85, B: 50, A: 255}
	case particle.KindStone:
		return color.RGBA{R: 128, G: 128, B: 132, A: 255}
	case particle.KindGold:
		return color.RGBA{R: 255, G: 214, B: 0, A: 255}
	case particle.KindRuby:
		return color.RGBA{R: 230, G: 25, B: 25, A: 255}
	case particle.KindWater:
		return color.RGBA{R: 50, G: 110, B: 220, A: 255}
	case particle.KindLava:
		return color.RGBA{R: 255, G: 90, B: 40, A: 255}
	case particle.KindObsidian:
		return color.RGBA{R: 45, G: 35, B: 60, A: 255}
	case particle.KindAcid:
		return color.RGBA{R: 130, G: 220, B: 60, A: 255}
	default:
		return color.RGBA{A: 255}
	}
}
