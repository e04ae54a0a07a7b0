package popup

import (
	"image/color"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"
)

// Bar colors. The fill turns red as the quota approaches exhaustion.
var (
	trackColor  = color.NRGBA{R: 0x3a, G: 0x3a, B: 0x3a, A: 0xff}
	fillColor   = color.NRGBA{R: 0x4a, G: 0x90, B: 0xd9, A: 0xff}
	fillHot     = color.NRGBA{R: 0xd9, G: 0x3a, B: 0x3a, A: 0xff}
	markerColor = color.NRGBA{R: 0xe0, G: 0xe0, B: 0xe0, A: 0xb0}
)

// hotThreshold is the utilization at which the fill turns red.
const hotThreshold = 80.0

// usageBar shows one quota window as a horizontal bar: the fill is the
// utilization, and a thin marker shows how far into the period we are.
type usageBar struct {
	widget.BaseWidget

	mu      sync.RWMutex
	pct     float64
	elapsed float64 // negative when the elapsed fraction is unknown
}

func newUsageBar() *usageBar {
	b := &usageBar{elapsed: -1}
	b.ExtendBaseWidget(b)
	return b
}

// Set updates utilization and elapsed-period percentages. Pass a
// negative elapsed to hide the marker.
func (b *usageBar) Set(pct, elapsed float64) {
	b.mu.Lock()
	b.pct = pct
	b.elapsed = elapsed
	b.mu.Unlock()
	b.Refresh()
}

// CreateRenderer implements fyne.Widget.
func (b *usageBar) CreateRenderer() fyne.WidgetRenderer {
	r := &usageBarRenderer{
		bar:    b,
		track:  canvas.NewRectangle(trackColor),
		fill:   canvas.NewRectangle(fillColor),
		marker: canvas.NewRectangle(markerColor),
	}
	r.track.CornerRadius = 3
	r.fill.CornerRadius = 3
	return r
}

type usageBarRenderer struct {
	bar    *usageBar
	track  *canvas.Rectangle
	fill   *canvas.Rectangle
	marker *canvas.Rectangle
}

func (r *usageBarRenderer) Layout(size fyne.Size) {
	r.bar.mu.RLock()
	pct := r.bar.pct
	elapsed := r.bar.elapsed
	r.bar.mu.RUnlock()

	r.track.Resize(size)
	r.track.Move(fyne.NewPos(0, 0))

	r.fill.Resize(fyne.NewSize(size.Width*float32(pct)/100, size.Height))
	r.fill.Move(fyne.NewPos(0, 0))

	if elapsed < 0 {
		r.marker.Hide()
	} else {
		r.marker.Show()
		x := size.Width * float32(elapsed) / 100
		if x > size.Width-2 {
			x = size.Width - 2
		}
		r.marker.Resize(fyne.NewSize(2, size.Height))
		r.marker.Move(fyne.NewPos(x, 0))
	}
}

func (r *usageBarRenderer) MinSize() fyne.Size {
	return fyne.NewSize(120, 12)
}

func (r *usageBarRenderer) Refresh() {
	r.bar.mu.RLock()
	pct := r.bar.pct
	r.bar.mu.RUnlock()

	if pct >= hotThreshold {
		r.fill.FillColor = fillHot
	} else {
		r.fill.FillColor = fillColor
	}

	r.Layout(r.bar.Size())
	canvas.Refresh(r.bar)
}

func (r *usageBarRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.track, r.fill, r.marker}
}

func (r *usageBarRenderer) Destroy() {}
