package render

import "image/color"

func rgba(r, g, b uint8, a float64) color.NRGBA {
	return color.NRGBA{R: r, G: g, B: b, A: uint8(a*255 + 0.5)}
}

func withAlpha(c color.NRGBA, a float64) color.NRGBA {
	c.A = uint8(a*255 + 0.5)
	return c
}

// Trainer colors
var (
	trainerBackground = rgba(0, 4, 18, 0.97)
	nearHalfColor     = rgba(0x1b, 0x6b, 0x3e, 1)
	farHalfColor      = rgba(0x11, 0x47, 0x2a, 1)
	courtLineColor    = rgba(255, 255, 255, 0.80)
	courtDimColor     = rgba(255, 255, 255, 0.55)
	netTapeColor      = rgba(0xe8, 0xdf, 0xa0, 1)
	netPostColor      = rgba(0xc8, 0xb0, 0x60, 1)
	white             = rgba(255, 255, 255, 1)

	oppActiveColor   = rgba(0xff, 0x95, 0x00, 1)
	oppGlowInner     = rgba(255, 160, 0, 0.9)
	oppIdleFill      = rgba(255, 120, 0, 0.15)
	oppIdleStroke    = rgba(255, 150, 0, 0.45)
	myActiveColor    = rgba(0x00, 0xff, 0x66, 1)
	myGlowInner      = rgba(0, 255, 100, 0.9)
	myIdleFill       = rgba(0, 180, 80, 0.22)
	myIdleStroke     = rgba(0, 220, 100, 0.52)
	myIdleText       = rgba(180, 255, 200, 0.65)
	disabledFill     = rgba(80, 80, 100, 0.35)
	disabledStroke   = rgba(120, 120, 150, 0.35)
	overheadCard     = rgba(0, 120, 255, 0.85)
	underhandCard    = rgba(255, 80, 0, 0.85)
	defaultShotCard  = rgba(100, 100, 100, 0.85)
	trajectoryColor  = rgba(255, 255, 100, 1)
	longShotCard     = rgba(0, 160, 220, 0.85)
	dropShotCard     = rgba(180, 0, 220, 0.85)
	smashShotCard    = rgba(220, 30, 30, 0.85)
)

// Board colors
var (
	boardBackground = rgba(255, 255, 255, 1)
	homeTint        = rgba(52, 152, 219, 0.06)
	awayTint        = rgba(231, 76, 60, 0.06)
	singlesShade    = rgba(0, 0, 0, 0.07)
	boardLineColor  = rgba(0x1a, 0x1a, 0x8e, 1)
	boardNetColor   = rgba(0x55, 0x55, 0x55, 1)
	boardPostColor  = rgba(0x33, 0x33, 0x33, 1)
	serveColor      = rgba(241, 196, 15, 0.18)
	underlayColor   = rgba(0, 0, 0, 0.5)
	shadowColor     = rgba(0, 0, 0, 0.25)
	markerRing      = rgba(255, 255, 255, 0.4)
	activeRingColor = rgba(255, 255, 255, 0.55)
	shuttleBody     = rgba(30, 36, 55, 0.92)
	featherColor    = rgba(255, 255, 255, 0.72)
	corkColor       = rgba(0xdc, 0xc4, 0x7f, 1)
	corkRim         = rgba(0, 0, 0, 0.3)
)
