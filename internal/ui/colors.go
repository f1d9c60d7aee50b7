package ui

import "image/color"

// Theme colors - variables so they can be swapped for dark mode
var (
	colWhite     = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	colBlack     = color.NRGBA{R: 0, G: 0, B: 0, A: 255}
	colGray      = color.NRGBA{R: 100, G: 100, B: 100, A: 255}
	colLightGray = color.NRGBA{R: 200, G: 200, B: 200, A: 255}
	colSelected  = color.NRGBA{R: 200, G: 220, B: 255, A: 255}
	colStrip     = color.NRGBA{R: 245, G: 245, B: 245, A: 255}
	colHover     = color.NRGBA{R: 230, G: 236, B: 245, A: 255}
	colDisabled  = color.NRGBA{R: 150, G: 150, B: 150, A: 255}
	colAccent    = color.NRGBA{R: 66, G: 133, B: 244, A: 255}
	colDanger    = color.NRGBA{R: 220, G: 53, B: 69, A: 255}

	colDropAccept = color.NRGBA{R: 66, G: 133, B: 244, A: 160}  // hover zone when the drop would be accepted
	colDropReject = color.NRGBA{R: 220, G: 53, B: 69, A: 120}   // hover zone when it would be rejected
	colDragShadow = color.NRGBA{R: 200, G: 220, B: 255, A: 200} // tab following the pointer
	colShim       = color.NRGBA{R: 0, G: 0, B: 0, A: 40}        // overlay over content while dragging
	colBanner     = color.NRGBA{R: 220, G: 53, B: 69, A: 255}   // config error banner
)

// lightPalette and darkPalette are applied by ApplyTheme
var lightPalette = [...]color.NRGBA{
	{R: 255, G: 255, B: 255, A: 255},
	{R: 0, G: 0, B: 0, A: 255},
	{R: 245, G: 245, B: 245, A: 255},
	{R: 230, G: 236, B: 245, A: 255},
	{R: 200, G: 220, B: 255, A: 255},
}

var darkPalette = [...]color.NRGBA{
	{R: 30, G: 30, B: 30, A: 255},
	{R: 230, G: 230, B: 230, A: 255},
	{R: 40, G: 40, B: 44, A: 255},
	{R: 55, G: 60, B: 70, A: 255},
	{R: 45, G: 75, B: 120, A: 255},
}

// ApplyTheme switches the palette between light and dark.
func ApplyTheme(dark bool) {
	p := lightPalette
	if dark {
		p = darkPalette
	}
	colWhite, colBlack, colStrip, colHover, colSelected = p[0], p[1], p[2], p[3], p[4]
}
