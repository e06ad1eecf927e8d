// Package term is the terminal frontend: it presents frames with
// half-block cells and turns key events into held-key input.
package term

import (
	"github.com/gdamore/tcell/v2"

	"rustycast/internal/render"
)

// halfBlock shows the foreground colour in the top half of a cell and the
// background colour in the bottom half, so one cell carries two pixels.
const halfBlock = '▀'

// FrameSize returns the frame that fills a cols*rows terminal, leaving
// the last row for the status line.
func FrameSize(cols, rows int) (w, h int) {
	if rows > 1 {
		rows--
	}
	return max(cols, 1), max(rows, 1) * 2
}

// Present copies f into s, two pixel rows per cell row. It does not call
// Show.
func Present(s tcell.Screen, f *render.Frame) {
	cols, rows := s.Size()
	for cy := 0; cy < rows && 2*cy < f.H; cy++ {
		for x := 0; x < cols && x < f.W; x++ {
			top := f.At(x, 2*cy)
			bottom := f.At(x, 2*cy+1)
			style := tcell.StyleDefault.
				Foreground(tcell.NewRGBColor(int32(top.R), int32(top.G), int32(top.B))).
				Background(tcell.NewRGBColor(int32(bottom.R), int32(bottom.G), int32(bottom.B)))
			s.SetContent(x, cy, halfBlock, nil, style)
		}
	}
}

var statusStyle = tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite)

// Status writes line into row y, padded with blanks to the screen width.
func Status(s tcell.Screen, y int, line string) {
	cols, _ := s.Size()
	x := 0
	for _, r := range line {
		if x >= cols {
			break
		}
		s.SetContent(x, y, r, nil, statusStyle)
		x++
	}
	for ; x < cols; x++ {
		s.SetContent(x, y, ' ', nil, statusStyle)
	}
}
