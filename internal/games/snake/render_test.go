package snake

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/vovakirdan/dexos/internal/core"
)

func TestRenderTerminalCells(t *testing.T) {
	screen := core.NewScreen(40, 20)
	screen.Set(39, 19, 'x') // Stale content from a previous frame

	f := Frame{
		Grid:    Grid{Cols: 20, Rows: 20},
		Snake:   []Cell{{X: 1, Y: 1}, {X: 25, Y: 1}}, // Second cell is off-grid
		Food:    Cell{X: 3, Y: 2},
		HasFood: true,
	}
	Render(screen, f, CellSize{W: 2, H: 1})

	if c := screen.GetCell(2, 1); c.Color != SnakeColor || c.Rune != core.BlockRune {
		t.Errorf("snake cell not drawn, got %+v", c)
	}
	if screen.Get(3, 1) != ' ' {
		t.Error("expected a one-column gap after the snake cell")
	}
	if c := screen.GetCell(6, 2); c.Color != FoodColor {
		t.Errorf("food cell not drawn, got %+v", c)
	}
	if screen.Get(7, 2) != ' ' {
		t.Error("expected a one-column gap after the food cell")
	}
	if screen.Get(39, 19) != ' ' {
		t.Error("Render should clear the surface first")
	}
}

func TestRenderWithoutFood(t *testing.T) {
	screen := core.NewScreen(4, 2)
	Render(screen, Frame{Grid: Grid{Cols: 2, Rows: 2}, Food: Cell{X: 0, Y: 0}}, CellSize{W: 2, H: 1})

	if screen.GetCell(0, 0).Color == FoodColor {
		t.Error("food must not be drawn when HasFood is false")
	}
}

func TestSurfaceSinkDraws(t *testing.T) {
	screen := core.NewScreen(4, 4)
	sink := SurfaceSink{Surface: screen, Cell: CellSize{W: 1, H: 1}}

	sink.Draw(Frame{Grid: Grid{Cols: 4, Rows: 4}, Snake: []Cell{{X: 3, Y: 3}}})

	if screen.GetCell(3, 3).Color != SnakeColor {
		t.Error("1x1 cells should be filled without inset")
	}
}

func TestImageSurfaceInset(t *testing.T) {
	surface := NewImageSurface(60, 60)
	Render(surface, Frame{
		Grid:  Grid{Cols: 4, Rows: 4},
		Snake: []Cell{{X: 1, Y: 1}},
	}, CellSize{W: 15, H: 15})

	img := surface.Image()
	if got := img.RGBAAt(15, 15); got != SnakeColor.RGBA() {
		t.Errorf("expected lime at cell origin, got %+v", got)
	}
	if got := img.RGBAAt(28, 28); got != SnakeColor.RGBA() {
		t.Errorf("expected lime inside the cell, got %+v", got)
	}
	if got := img.RGBAAt(29, 15); got != core.ColorBlack.RGBA() {
		t.Errorf("expected black gap column, got %+v", got)
	}
	if got := img.RGBAAt(15, 29); got != core.ColorBlack.RGBA() {
		t.Errorf("expected black gap row, got %+v", got)
	}
}

func TestWritePNG(t *testing.T) {
	f := Frame{
		Grid:    Grid{Cols: 20, Rows: 20},
		Snake:   []Cell{{X: 10, Y: 10}},
		Food:    Cell{X: 2, Y: 3},
		HasFood: true,
	}

	var buf bytes.Buffer
	if err := WritePNG(&buf, f, 0, "len 1"); err != nil {
		t.Fatalf("WritePNG() failed: %v", err)
	}

	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("png.Decode() failed: %v", err)
	}
	b := img.Bounds()
	if b.Dx() != 300 || b.Dy() != 300+captionHeight {
		t.Errorf("expected 300x%d image, got %dx%d", 300+captionHeight, b.Dx(), b.Dy())
	}
	r, _, _, _ := img.At(2*DefaultImageCell, 3*DefaultImageCell).RGBA()
	if r>>8 != 0xff {
		t.Error("expected red food pixel")
	}
}
