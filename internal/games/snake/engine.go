// Package snake implements the DexOS snake game: a fixed-tick, wraparound
// simulation whose timer is armed through a Scheduler and whose frames are
// drawn by a FrameSink.
package snake

import (
	"math/rand"
	"sync"
	"time"
)

// DefaultInterval is the time between two simulation ticks.
const DefaultInterval = 120 * time.Millisecond

// Options configures an Engine.
type Options struct {
	Grid      Grid
	Start     Cell          // Falls back to the grid centre when outside the grid
	Direction Direction     // Initial heading, Right when unset
	Interval  time.Duration // Tick interval, DefaultInterval when unset
	Seed      int64         // Seed for food placement
}

// DefaultOptions returns the classic 20x20 board starting at (10,10).
func DefaultOptions() Options {
	return Options{
		Grid:      Grid{Cols: 20, Rows: 20},
		Start:     Cell{X: 10, Y: 10},
		Direction: Right,
		Interval:  DefaultInterval,
	}
}

// Engine owns the snake, its heading and the food, and advances them once
// per timer firing. Each Engine is independent; a desktop session owns one.
type Engine struct {
	mu    sync.Mutex
	opts  Options
	rng   *rand.Rand
	sched Scheduler
	sink  FrameSink

	timer      Timer
	generation uint64 // Identifies the armed timer; stale firings are dropped
	running    bool

	snake   []Cell // Head at index 0
	dir     Direction
	pending Direction
	food    Cell
	hasFood bool
	ticks   uint64
}

// NewEngine creates an engine. It does not start ticking until Reset.
// sched may be nil, in which case no timer is armed; sink may be nil.
func NewEngine(opts Options, sched Scheduler, sink FrameSink) *Engine {
	opts.Grid.Cols = max(opts.Grid.Cols, 1)
	opts.Grid.Rows = max(opts.Grid.Rows, 1)
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	if !opts.Direction.Valid() {
		opts.Direction = Right
	}
	if !opts.Grid.Contains(opts.Start) {
		opts.Start = opts.Grid.Center()
	}

	return &Engine{
		opts:  opts,
		rng:   rand.New(rand.NewSource(opts.Seed)),
		sched: sched,
		sink:  sink,
	}
}

// Grid returns the playfield extent.
func (e *Engine) Grid() Grid {
	return e.opts.Grid
}

// Interval returns the tick interval.
func (e *Engine) Interval() time.Duration {
	return e.opts.Interval
}

// Reset starts a fresh run: a one-cell snake at the start cell heading in the
// start direction, new food, and a newly armed timer. Any previously armed
// timer is stopped first, so repeated resets never stack timers.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.resetLocked()
}

func (e *Engine) resetLocked() {
	e.snake = []Cell{e.opts.Start}
	e.dir = e.opts.Direction
	e.pending = e.opts.Direction
	e.ticks = 0
	e.placeFood()
	e.arm()
}

// arm replaces the current timer. Callers hold e.mu.
func (e *Engine) arm() {
	e.disarm()
	e.running = true
	if e.sched == nil {
		return
	}
	gen := e.generation
	e.timer = e.sched.Every(e.opts.Interval, func() {
		e.tick(gen)
	})
}

func (e *Engine) disarm() {
	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
	e.generation++
	e.running = false
}

// Stop cancels the timer. The state is kept until the next Reset.
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.disarm()
}

// Running reports whether a timer is armed.
func (e *Engine) Running() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.running
}

// SetDirection buffers d for the next tick. It reports false and changes
// nothing when d is not a unit direction or is the exact reverse of the
// committed direction. It never advances the simulation.
func (e *Engine) SetDirection(d Direction) bool {
	if !d.Valid() {
		return false
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if d == e.dir.Opposite() {
		return false
	}
	e.pending = d
	return true
}

// tick is the timer callback. Firings from a timer that has since been
// replaced or stopped are ignored.
func (e *Engine) tick(gen uint64) {
	e.mu.Lock()
	if gen != e.generation || !e.running {
		e.mu.Unlock()
		return
	}
	frame, ok := e.advance()
	e.mu.Unlock()

	if ok && e.sink != nil {
		e.sink.Draw(frame)
	}
}

// advance runs one simulation step. It reports false when the step ended in
// a self-collision, in which case the engine has already been reset and no
// frame is produced. Callers hold e.mu.
func (e *Engine) advance() (Frame, bool) {
	if len(e.snake) == 0 {
		return Frame{}, false
	}

	e.dir = e.pending
	head := e.opts.Grid.Wrap(e.snake[0].Add(e.dir))

	if e.occupied(head) {
		e.resetLocked()
		return Frame{}, false
	}

	e.snake = append(e.snake, Cell{})
	copy(e.snake[1:], e.snake[:len(e.snake)-1])
	e.snake[0] = head

	if e.hasFood && head == e.food {
		e.placeFood()
	} else {
		e.snake = e.snake[:len(e.snake)-1]
	}

	e.ticks++
	return e.frameLocked(), true
}

// occupied reports whether any snake cell is at c.
func (e *Engine) occupied(c Cell) bool {
	for _, seg := range e.snake {
		if seg == c {
			return true
		}
	}
	return false
}

// placeFood picks a cell uniformly among those not covered by the snake.
// With no free cell left the board simply has no food.
func (e *Engine) placeFood() {
	grid := e.opts.Grid
	free := make([]Cell, 0, grid.Area()-len(e.snake))
	for y := 0; y < grid.Rows; y++ {
		for x := 0; x < grid.Cols; x++ {
			c := Cell{X: x, Y: y}
			if !e.occupied(c) {
				free = append(free, c)
			}
		}
	}

	if len(free) == 0 {
		e.food = Cell{X: -1, Y: -1}
		e.hasFood = false
		return
	}
	e.food = free[e.rng.Intn(len(free))]
	e.hasFood = true
}

// Frame returns a snapshot of the current board.
func (e *Engine) Frame() Frame {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.frameLocked()
}

func (e *Engine) frameLocked() Frame {
	return Frame{
		Tick:    e.ticks,
		Grid:    e.opts.Grid,
		Snake:   append([]Cell(nil), e.snake...),
		Food:    e.food,
		HasFood: e.hasFood,
	}
}

// State returns a copy of the simulation state.
func (e *Engine) State() GameState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return GameState{
		Snake:     append([]Cell(nil), e.snake...),
		Direction: e.dir,
		Pending:   e.pending,
		Food:      e.food,
		HasFood:   e.hasFood,
		Running:   e.running,
	}
}
