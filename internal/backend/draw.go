package backend

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/slippy/internal/geo"
)

// Screen cells cover this many world pixels. Terminal cells are roughly
// twice as tall as they are wide.
const (
	cellWidthPx  = 8
	cellHeightPx = 16
)

// View is the state drawn on each frame.
type View struct {
	Center geo.LatLng
	Zoom   float64

	// State is the keyboard controller state name.
	State string

	// Popup is the content of the open popup, if any.
	Popup string

	// Message is shown at the right of the status line.
	Message string
}

var (
	gridStyle   = tcell.StyleDefault.Foreground(tcell.ColorGray)
	markerStyle = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	statusStyle = tcell.StyleDefault.Reverse(true)
	popupStyle  = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorNavy)
)

// Draw renders the tile grid around the center, the popup and a status
// line, then shows the frame.
func (t *Terminal) Draw(v View) {
	t.mu.Lock()
	defer t.mu.Unlock()

	s := t.screen
	s.Clear()
	w, h := s.Size()
	if w <= 0 || h <= 0 {
		return
	}

	mapHeight := h - 1
	drawGrid(s, w, mapHeight, geo.Project(v.Center, v.Zoom))
	if mapHeight > 0 {
		s.SetContent(w/2, mapHeight/2, '+', nil, markerStyle)
	}
	if v.Popup != "" {
		drawPopup(s, w, mapHeight, v.Popup)
	}

	status := fmt.Sprintf(" %.5f, %.5f  z%.2f  %s", v.Center.Lat, v.Center.Lng, v.Zoom, v.State)
	drawLine(s, 0, h-1, w, status, v.Message, statusStyle)
	s.Show()
}

// drawGrid draws tile boundaries for a view centered on world pixel c.
func drawGrid(s tcell.Screen, w, h int, c geo.Point) {
	for y := 0; y < h; y++ {
		wy := c.Y + float64(y-h/2)*cellHeightPx
		onRow := mod(wy, geo.TileSize) < cellHeightPx
		for x := 0; x < w; x++ {
			wx := c.X + float64(x-w/2)*cellWidthPx
			onCol := mod(wx, geo.TileSize) < cellWidthPx
			switch {
			case onRow && onCol:
				s.SetContent(x, y, tcell.RunePlus, nil, gridStyle)
			case onRow:
				s.SetContent(x, y, tcell.RuneHLine, nil, gridStyle)
			case onCol:
				s.SetContent(x, y, tcell.RuneVLine, nil, gridStyle)
			}
		}
	}
}

// drawPopup draws content in a box centered above the marker.
func drawPopup(s tcell.Screen, w, h int, content string) {
	text := []rune(content)
	maxText := w - 4
	if maxText < 1 || h < 3 {
		return
	}
	if len(text) > maxText {
		text = text[:maxText]
	}

	boxW := len(text) + 4
	left := (w - boxW) / 2
	top := h/2 - 3
	if top < 0 {
		top = 0
	}

	for x := left; x < left+boxW; x++ {
		s.SetContent(x, top, tcell.RuneHLine, nil, popupStyle)
		s.SetContent(x, top+1, ' ', nil, popupStyle)
		s.SetContent(x, top+2, tcell.RuneHLine, nil, popupStyle)
	}
	s.SetContent(left, top, tcell.RuneULCorner, nil, popupStyle)
	s.SetContent(left+boxW-1, top, tcell.RuneURCorner, nil, popupStyle)
	s.SetContent(left, top+1, tcell.RuneVLine, nil, popupStyle)
	s.SetContent(left+boxW-1, top+1, tcell.RuneVLine, nil, popupStyle)
	s.SetContent(left, top+2, tcell.RuneLLCorner, nil, popupStyle)
	s.SetContent(left+boxW-1, top+2, tcell.RuneLRCorner, nil, popupStyle)
	for i, r := range text {
		s.SetContent(left+2+i, top+1, r, nil, popupStyle)
	}
}

// drawLine fills row y with style, left-aligning left and right-aligning
// right. left wins where they overlap.
func drawLine(s tcell.Screen, x, y, w int, left, right string, style tcell.Style) {
	for i := 0; i < w; i++ {
		s.SetContent(x+i, y, ' ', nil, style)
	}
	rr := []rune(right)
	start := w - len(rr) - 1
	for i, r := range rr {
		if start+i >= 0 {
			s.SetContent(x+start+i, y, r, nil, style)
		}
	}
	for i, r := range []rune(left) {
		if i >= w {
			break
		}
		s.SetContent(x+i, y, r, nil, style)
	}
}

func mod(v, m float64) float64 {
	r := math.Mod(v, m)
	if r < 0 {
		r += m
	}
	return r
}
