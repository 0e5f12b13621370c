//go:build ebiten

package window

import "image/color"

type palette struct {
	name        string
	background  color.RGBA
	ground      color.RGBA
	hud         color.RGBA
	tree        color.RGBA
	placeholder color.RGBA
}

var (
	darkPalette = palette{
		name:        "dark",
		background:  color.RGBA{R: 24, G: 26, B: 32, A: 255},
		ground:      color.RGBA{R: 120, G: 90, B: 60, A: 255},
		hud:         color.RGBA{R: 0, G: 0, B: 0, A: 120},
		tree:        color.RGBA{R: 40, G: 150, B: 60, A: 255},
		placeholder: color.RGBA{R: 128, G: 128, B: 128, A: 255},
	}
	lightPalette = palette{
		name:        "light",
		background:  color.RGBA{R: 236, G: 238, B: 240, A: 255},
		ground:      color.RGBA{R: 150, G: 110, B: 70, A: 255},
		hud:         color.RGBA{R: 0, G: 0, B: 0, A: 160},
		tree:        color.RGBA{R: 30, G: 120, B: 50, A: 255},
		placeholder: color.RGBA{R: 128, G: 128, B: 128, A: 255},
	}
)

func (p palette) toggle() palette {
	if p.name == darkPalette.name {
		return lightPalette
	}
	return darkPalette
}
