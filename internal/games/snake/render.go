package snake

import "github.com/vovakirdan/dexos/internal/core"

// Colors used for the board.
const (
	SnakeColor = core.ColorBrightGreen
	FoodColor  = core.ColorRed
)

// Surface is anything a frame can be drawn on: a terminal screen buffer or a
// raster image. Units are characters or pixels respectively.
type Surface interface {
	Clear()
	FillRect(r core.Rect, c core.Color)
}

// Render clears dst and draws every snake cell and the food. Each cell is
// drawn one unit smaller than the cell size on every axis wider than one
// unit, leaving a visible gap between neighbours. Cells outside the frame's
// grid are skipped.
func Render(dst Surface, f Frame, cell CellSize) {
	dst.Clear()

	for _, seg := range f.Snake {
		if f.Grid.Contains(seg) {
			dst.FillRect(cellRect(seg, cell), SnakeColor)
		}
	}
	if f.HasFood && f.Grid.Contains(f.Food) {
		dst.FillRect(cellRect(f.Food, cell), FoodColor)
	}
}

// cellRect returns the surface rectangle covered by c.
func cellRect(c Cell, cell CellSize) core.Rect {
	w, h := cell.W, cell.H
	if w > 1 {
		w--
	}
	if h > 1 {
		h--
	}
	return core.NewRect(c.X*cell.W, c.Y*cell.H, w, h)
}

// SurfaceSink draws every emitted frame onto a surface.
type SurfaceSink struct {
	Surface Surface
	Cell    CellSize
}

// Draw implements FrameSink.
func (s SurfaceSink) Draw(f Frame) {
	Render(s.Surface, f, s.Cell)
}
