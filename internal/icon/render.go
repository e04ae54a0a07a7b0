// Package icon rasterizes the monochrome tray icons.
//
// Layout (64x64): a glyph at the top ("C", the percentage once usage
// passes 50%, or an exhausted mark at 100%) and two thin progress bars
// flush to the bottom edge (session / weekly) with proportional fill.
// Rendering is deterministic and does no I/O; glyphs come from the
// embedded Go Bold font.
package icon

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/claudeutils/usage-tray/internal/constants"
)

// exhaustedGlyph marks a fully consumed session quota.
const exhaustedGlyph = '✕'

// letterGlyph is shown while session usage is at or below 50%.
const letterGlyph = "C"

type palette struct {
	fg     color.NRGBA
	fgHalf color.NRGBA
	fgDim  color.NRGBA
}

var (
	// Light glyphs for a dark taskbar (default).
	lightIcons = palette{
		fg:     color.NRGBA{R: 255, G: 255, B: 255, A: 255},
		fgHalf: color.NRGBA{R: 255, G: 255, B: 255, A: 80},
		fgDim:  color.NRGBA{R: 255, G: 255, B: 255, A: 140},
	}
	// Dark glyphs for a light taskbar.
	darkIcons = palette{
		fg:     color.NRGBA{A: 255},
		fgHalf: color.NRGBA{A: 80},
		fgDim:  color.NRGBA{A: 140},
	}
)

var (
	fontOnce   sync.Once
	fontParsed *opentype.Font
	fontErr    error

	faceMu sync.Mutex
	faces  = map[float64]font.Face{}
)

// face returns a cached font face at the given point size.
func face(size float64) (font.Face, error) {
	fontOnce.Do(func() {
		fontParsed, fontErr = opentype.Parse(gobold.TTF)
	})
	if fontErr != nil {
		return nil, fontErr
	}

	faceMu.Lock()
	defer faceMu.Unlock()
	if f, ok := faces[size]; ok {
		return f, nil
	}
	f, err := opentype.NewFace(fontParsed, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, err
	}
	faces[size] = f
	return f, nil
}

// glyphFor selects the top glyph and its point size from the session
// utilization.
func glyphFor(pct5h float64) (string, float64) {
	switch {
	case pct5h >= 100:
		return string(exhaustedGlyph), 36
	case pct5h > 50:
		return fmt.Sprintf("%.0f", pct5h), 40
	default:
		return letterGlyph, 42
	}
}

// RenderUsage draws the tray icon for the given session and weekly
// utilization percentages. light selects the dark palette used on a
// light taskbar.
func RenderUsage(pct5h, pct7d float64, light bool) *image.RGBA {
	colors := lightIcons
	if light {
		colors = darkIcons
	}

	const s = constants.IconSize
	img := image.NewRGBA(image.Rect(0, 0, s, s))

	text, size := glyphFor(pct5h)
	if f, err := face(size); err == nil {
		// Go Bold may lack the exhausted mark; "X" is the closest cover.
		if text == string(exhaustedGlyph) {
			if _, ok := f.GlyphAdvance(exhaustedGlyph); !ok {
				text = "X"
			}
		}
		drawTextTop(img, text, f, colors.fg)
	}

	barH := constants.IconBarHeight
	bar2Y := s - barH
	bar1Y := bar2Y - constants.IconBarGap - barH

	for _, bar := range []struct {
		y   int
		pct float64
	}{
		{bar1Y, pct5h},
		{bar2Y, pct7d},
	} {
		fillRect(img, 0, bar.y, s, barH, colors.fgHalf)
		fillW := int(float64(s) * bar.pct / 100)
		if fillW < 0 {
			fillW = 0
		}
		if fillW > s {
			fillW = s
		}
		if fillW > 0 {
			fillRect(img, 0, bar.y, fillW, barH, colors.fg)
		}
	}

	return img
}

// RenderStatus draws a single dimmed glyph centered on the canvas, used
// for error and auth states ("!" or "C!").
func RenderStatus(text string, light bool) *image.RGBA {
	colors := lightIcons
	if light {
		colors = darkIcons
	}

	const s = constants.IconSize
	img := image.NewRGBA(image.Rect(0, 0, s, s))

	if f, err := face(46); err == nil {
		drawTextCentered(img, text, f, colors.fgDim)
	}
	return img
}

// PNG encodes an icon for fyne.io/systray, which accepts PNG on every
// platform it supports.
func PNG(img image.Image) []byte {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil
	}
	return buf.Bytes()
}

// drawTextTop draws text horizontally centered and flush with the top edge.
func drawTextTop(dst *image.RGBA, text string, f font.Face, col color.NRGBA) {
	bounds, _ := font.BoundString(f, text)
	width := (bounds.Max.X - bounds.Min.X).Ceil()

	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(col),
		Face: f,
		Dot: fixed.Point26_6{
			X: fixed.I((constants.IconSize-width)/2) - bounds.Min.X,
			Y: -bounds.Min.Y,
		},
	}
	d.DrawString(text)
}

// drawTextCentered draws text centered on both axes.
func drawTextCentered(dst *image.RGBA, text string, f font.Face, col color.NRGBA) {
	bounds, _ := font.BoundString(f, text)
	width := (bounds.Max.X - bounds.Min.X).Ceil()
	height := (bounds.Max.Y - bounds.Min.Y).Ceil()

	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(col),
		Face: f,
		Dot: fixed.Point26_6{
			X: fixed.I((constants.IconSize-width)/2) - bounds.Min.X,
			Y: fixed.I((constants.IconSize-height)/2) - bounds.Min.Y,
		},
	}
	d.DrawString(text)
}

// fillRect writes col into the rectangle verbatim (no alpha blending),
// so a full-opacity fill replaces the half-opacity track beneath it.
func fillRect(dst *image.RGBA, x, y, w, h int, col color.NRGBA) {
	draw.Draw(dst, image.Rect(x, y, x+w, y+h), image.NewUniform(col), image.Point{}, draw.Src)
}
