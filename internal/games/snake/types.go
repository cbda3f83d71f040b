package snake

import (
	"fmt"

	"github.com/vovakirdan/dexos/internal/core"
)

// Cell is a (column, row) position on the game grid.
type Cell struct {
	X, Y int
}

// Add returns the cell one step away in direction d.
func (c Cell) Add(d Direction) Cell {
	return Cell{X: c.X + d.DX, Y: c.Y + d.DY}
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Direction is a unit movement vector.
type Direction struct {
	DX, DY int
}

// The four directions the snake can move in.
var (
	Right = Direction{DX: 1, DY: 0}
	Left  = Direction{DX: -1, DY: 0}
	Down  = Direction{DX: 0, DY: 1}
	Up    = Direction{DX: 0, DY: -1}
)

// Valid reports whether d is one of the four unit directions.
func (d Direction) Valid() bool {
	return d == Right || d == Left || d == Down || d == Up
}

// Opposite returns the reverse direction.
func (d Direction) Opposite() Direction {
	return Direction{DX: -d.DX, DY: -d.DY}
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "unknown"
	}
}

// DirectionForAction maps a directional input action to a Direction.
// Non-directional actions report false.
func DirectionForAction(a core.Action) (Direction, bool) {
	switch a {
	case core.ActionUp:
		return Up, true
	case core.ActionDown:
		return Down, true
	case core.ActionLeft:
		return Left, true
	case core.ActionRight:
		return Right, true
	default:
		return Direction{}, false
	}
}

// Grid is the playfield extent in cells.
type Grid struct {
	Cols, Rows int
}

// CellSize is the extent of one grid cell in surface units.
type CellSize struct {
	W, H int
}

// GridFor derives the grid that fits a surface of the given size:
// floor(width / cell.W) x floor(height / cell.H).
func GridFor(width, height int, cell CellSize) Grid {
	if cell.W <= 0 || cell.H <= 0 {
		return Grid{}
	}
	return Grid{Cols: max(width, 0) / cell.W, Rows: max(height, 0) / cell.H}
}

// Area returns the number of cells in the grid.
func (g Grid) Area() int {
	return g.Cols * g.Rows
}

// Contains reports whether c lies inside the grid.
func (g Grid) Contains(c Cell) bool {
	return c.X >= 0 && c.X < g.Cols && c.Y >= 0 && c.Y < g.Rows
}

// Center returns the middle cell of the grid.
func (g Grid) Center() Cell {
	return Cell{X: g.Cols / 2, Y: g.Rows / 2}
}

// Wrap moves a cell that has stepped off one edge onto the opposite edge.
// Only single-step overshoots occur, so each axis is corrected once.
func (g Grid) Wrap(c Cell) Cell {
	if c.X < 0 {
		c.X = g.Cols - 1
	} else if c.X >= g.Cols {
		c.X = 0
	}
	if c.Y < 0 {
		c.Y = g.Rows - 1
	} else if c.Y >= g.Rows {
		c.Y = 0
	}
	return c
}

// GameState is a copy of the engine's simulation state.
type GameState struct {
	Snake     []Cell // Head at index 0
	Direction Direction
	Pending   Direction // Buffered direction committed on the next tick
	Food      Cell
	HasFood   bool
	Running   bool
}

// Frame is the read-only snapshot handed to renderers once per tick.
type Frame struct {
	Tick    uint64
	Grid    Grid
	Snake   []Cell
	Food    Cell
	HasFood bool
}

// Head returns the first snake cell.
func (f Frame) Head() Cell {
	if len(f.Snake) == 0 {
		return Cell{}
	}
	return f.Snake[0]
}

// FrameSink consumes frames emitted by the engine.
type FrameSink interface {
	Draw(f Frame)
}

// FrameSinkFunc adapts a function to the FrameSink interface.
type FrameSinkFunc func(f Frame)

// Draw calls fn(f).
func (fn FrameSinkFunc) Draw(f Frame) {
	fn(f)
}
