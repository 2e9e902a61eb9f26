package render

import (
	"image/color"
	"testing"
)

func TestFillPaletteRGBA(t *testing.T) {
	palette := []color.RGBA{
		{R: 1, G: 2, B: 3, A: 255},
		{R: 10, G: 20, B: 30, A: 255},
	}
	cells := []uint8{0, 1, 9}
	buf := make([]byte, 4*len(cells))

	fillPaletteRGBA(buf, cells, palette)

	if buf[0] != 1 || buf[1] != 2 || buf[2] != 3 || buf[3] != 255 {
		t.Fatalf("cell 0 pixels = %v", buf[0:4])
	}
	if buf[4] != 10 || buf[5] != 20 || buf[6] != 30 {
		t.Fatalf("cell 1 pixels = %v", buf[4:8])
	}
	// Out-of-range cells clamp to the last palette entry.
	if buf[8] != 10 || buf[9] != 20 || buf[10] != 30 {
		t.Fatalf("clamped cell pixels = %v", buf[8:12])
	}
}

func TestFillPaletteRGBAEmptyPalette(t *testing.T) {
	cells := []uint8{3, 7}
	buf := []byte{9, 9, 9, 9, 9, 9, 9, 9}
	fillPaletteRGBA(buf, cells, nil)
	for i, b := range buf {
		if b != 0 {
			t.Fatalf("buf[%d] = %d, want 0", i, b)
		}
	}
}
