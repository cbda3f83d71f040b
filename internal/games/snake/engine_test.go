package snake

import (
	"math/rand"
	"testing"
	"time"

	"github.com/vovakirdan/dexos/internal/core"
)

// fakeScheduler records armed timers and fires them on demand.
type fakeScheduler struct {
	timers []*fakeTimer
}

type fakeTimer struct {
	interval time.Duration
	fire     func()
	stopped  bool
}

func (t *fakeTimer) Stop() { t.stopped = true }

func (s *fakeScheduler) Every(interval time.Duration, fire func()) Timer {
	t := &fakeTimer{interval: interval, fire: fire}
	s.timers = append(s.timers, t)
	return t
}

func (s *fakeScheduler) active() []*fakeTimer {
	var out []*fakeTimer
	for _, t := range s.timers {
		if !t.stopped {
			out = append(out, t)
		}
	}
	return out
}

// fireAll fires every timer that is active when called.
func (s *fakeScheduler) fireAll() {
	for _, t := range s.active() {
		t.fire()
	}
}

// frameRecorder collects emitted frames.
type frameRecorder struct {
	frames []Frame
}

func (r *frameRecorder) Draw(f Frame) { r.frames = append(r.frames, f) }

func newTestEngine(t *testing.T, opts Options) (*Engine, *fakeScheduler, *frameRecorder) {
	t.Helper()
	sched := &fakeScheduler{}
	rec := &frameRecorder{}
	e := NewEngine(opts, sched, rec)
	e.Reset()
	return e, sched, rec
}

// place overwrites the board for scenario tests.
func place(e *Engine, body []Cell, dir Direction, food Cell) {
	e.snake = append([]Cell(nil), body...)
	e.dir = dir
	e.pending = dir
	e.food = food
	e.hasFood = true
}

func TestResetInitialState(t *testing.T) {
	e, sched, _ := newTestEngine(t, DefaultOptions())

	st := e.State()
	if len(st.Snake) != 1 || st.Snake[0] != (Cell{X: 10, Y: 10}) {
		t.Fatalf("expected snake [(10,10)], got %v", st.Snake)
	}
	if st.Direction != Right || st.Pending != Right {
		t.Errorf("expected heading right, got %v/%v", st.Direction, st.Pending)
	}
	if !st.HasFood || st.Food == st.Snake[0] {
		t.Errorf("food must be placed off the snake, got %v", st.Food)
	}
	if !st.Running {
		t.Error("engine should be running after Reset")
	}

	active := sched.active()
	if len(active) != 1 {
		t.Fatalf("expected 1 active timer, got %d", len(active))
	}
	if active[0].interval != 120*time.Millisecond {
		t.Errorf("expected 120ms interval, got %v", active[0].interval)
	}
}

func TestResetTwiceKeepsSingleTimer(t *testing.T) {
	e, sched, rec := newTestEngine(t, DefaultOptions())
	first := sched.timers[0]

	e.Reset()

	if !first.stopped {
		t.Error("first timer should be stopped by the second Reset")
	}
	if n := len(sched.active()); n != 1 {
		t.Fatalf("expected exactly 1 active timer, got %d", n)
	}
	if n := len(e.State().Snake); n != 1 {
		t.Errorf("expected fresh snake of length 1, got %d", n)
	}

	// A late firing of the replaced timer must not advance the game.
	first.fire()
	if len(rec.frames) != 0 || e.Frame().Tick != 0 {
		t.Error("stale timer advanced the simulation")
	}

	sched.fireAll()
	if len(rec.frames) != 1 {
		t.Errorf("expected one frame per tick, got %d", len(rec.frames))
	}
}

func TestTickEatsFood(t *testing.T) {
	e, sched, rec := newTestEngine(t, DefaultOptions())
	place(e, []Cell{{X: 10, Y: 10}}, Right, Cell{X: 11, Y: 10})

	sched.fireAll()

	st := e.State()
	want := []Cell{{X: 11, Y: 10}, {X: 10, Y: 10}}
	if len(st.Snake) != 2 || st.Snake[0] != want[0] || st.Snake[1] != want[1] {
		t.Fatalf("expected snake %v, got %v", want, st.Snake)
	}
	if !st.HasFood {
		t.Fatal("new food should be placed")
	}
	for _, seg := range st.Snake {
		if seg == st.Food {
			t.Errorf("new food %v placed on the snake", st.Food)
		}
	}

	if len(rec.frames) != 1 {
		t.Fatalf("expected 1 frame, got %d", len(rec.frames))
	}
	if f := rec.frames[0]; len(f.Snake) != 2 || f.Head() != want[0] || f.Food != st.Food {
		t.Errorf("frame does not match state: %+v", f)
	}
}

func TestTickMovesWithoutGrowing(t *testing.T) {
	e, sched, _ := newTestEngine(t, DefaultOptions())
	place(e, []Cell{{X: 5, Y: 5}, {X: 4, Y: 5}, {X: 3, Y: 5}}, Right, Cell{X: 0, Y: 0})

	sched.fireAll()

	st := e.State()
	want := []Cell{{X: 6, Y: 5}, {X: 5, Y: 5}, {X: 4, Y: 5}}
	for i := range want {
		if st.Snake[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, st.Snake)
		}
	}
	if len(st.Snake) != 3 {
		t.Errorf("length should stay 3, got %d", len(st.Snake))
	}
}

func TestReversalRejected(t *testing.T) {
	e, sched, _ := newTestEngine(t, DefaultOptions())
	place(e, []Cell{{X: 5, Y: 5}, {X: 4, Y: 5}, {X: 3, Y: 5}}, Right, Cell{X: 0, Y: 0})

	if !e.SetDirection(Right) {
		t.Error("same direction should be accepted")
	}
	if e.SetDirection(Left) {
		t.Error("reverse direction should be rejected")
	}

	sched.fireAll()

	if head := e.State().Snake[0]; head != (Cell{X: 6, Y: 5}) {
		t.Errorf("expected head (6,5), got %v", head)
	}
}

func TestReversalCheckedAgainstCommittedDirection(t *testing.T) {
	e, sched, _ := newTestEngine(t, DefaultOptions())
	place(e, []Cell{{X: 5, Y: 5}, {X: 4, Y: 5}}, Right, Cell{X: 0, Y: 0})

	// Up then Left within one tick: Left is still the reverse of the
	// committed Right, so the snake cannot fold back onto itself.
	if !e.SetDirection(Up) {
		t.Fatal("Up should be accepted while moving right")
	}
	if e.SetDirection(Left) {
		t.Error("Left should be rejected while Right is committed")
	}
	if st := e.State(); st.Pending != Up || st.Direction != Right {
		t.Fatalf("expected pending Up / committed Right, got %v / %v", st.Pending, st.Direction)
	}

	sched.fireAll()

	st := e.State()
	if st.Snake[0] != (Cell{X: 5, Y: 4}) {
		t.Errorf("expected head (5,4), got %v", st.Snake[0])
	}
	if e.SetDirection(Down) {
		t.Error("Down should be rejected once Up is committed")
	}
	if !e.SetDirection(Left) {
		t.Error("Left should be accepted once Up is committed")
	}
}

func TestSetDirectionDoesNotAdvance(t *testing.T) {
	e, _, rec := newTestEngine(t, DefaultOptions())
	before := e.State()

	e.SetDirection(Down)
	e.SetDirection(Direction{DX: 2, DY: 0})

	after := e.State()
	if after.Snake[0] != before.Snake[0] || after.Food != before.Food || after.Direction != before.Direction {
		t.Error("SetDirection must not change the board")
	}
	if after.Pending != Down {
		t.Errorf("expected pending Down, got %v", after.Pending)
	}
	if len(rec.frames) != 0 {
		t.Error("SetDirection must not emit frames")
	}
}

func TestSelfCollisionResets(t *testing.T) {
	e, sched, rec := newTestEngine(t, DefaultOptions())
	// Head at (5,5) heading up; turning left moves it onto its own tail.
	place(e, []Cell{{X: 5, Y: 5}, {X: 5, Y: 6}, {X: 4, Y: 6}, {X: 4, Y: 5}}, Up, Cell{X: 0, Y: 0})
	if !e.SetDirection(Left) {
		t.Fatal("Left should be accepted while moving up")
	}
	old := sched.active()[0]

	sched.fireAll()

	st := e.State()
	if len(st.Snake) != 1 || st.Snake[0] != (Cell{X: 10, Y: 10}) {
		t.Fatalf("expected reset to [(10,10)], got %v", st.Snake)
	}
	if st.Direction != Right {
		t.Errorf("expected default heading after reset, got %v", st.Direction)
	}
	if !st.HasFood || st.Food == st.Snake[0] {
		t.Errorf("expected fresh food off the snake, got %v", st.Food)
	}
	if len(rec.frames) != 0 {
		t.Error("no frame should be emitted for the colliding tick")
	}
	if !old.stopped || len(sched.active()) != 1 {
		t.Errorf("collision reset should replace the timer (active=%d)", len(sched.active()))
	}
}

func TestWraparound(t *testing.T) {
	tests := []struct {
		name string
		head Cell
		dir  Direction
		want Cell
	}{
		{"left edge", Cell{X: 0, Y: 5}, Left, Cell{X: 19, Y: 5}},
		{"right edge", Cell{X: 19, Y: 5}, Right, Cell{X: 0, Y: 5}},
		{"top edge", Cell{X: 5, Y: 0}, Up, Cell{X: 5, Y: 19}},
		{"bottom edge", Cell{X: 5, Y: 19}, Down, Cell{X: 5, Y: 0}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e, sched, _ := newTestEngine(t, DefaultOptions())
			place(e, []Cell{tc.head}, tc.dir, Cell{X: 10, Y: 10})

			sched.fireAll()

			if got := e.State().Snake[0]; got != tc.want {
				t.Errorf("expected head %v, got %v", tc.want, got)
			}
		})
	}
}

func TestGridWrap(t *testing.T) {
	g := Grid{Cols: 20, Rows: 15}

	tests := []struct {
		in, want Cell
	}{
		{Cell{X: -1, Y: 3}, Cell{X: 19, Y: 3}},
		{Cell{X: 20, Y: 3}, Cell{X: 0, Y: 3}},
		{Cell{X: 3, Y: -1}, Cell{X: 3, Y: 14}},
		{Cell{X: 3, Y: 15}, Cell{X: 3, Y: 0}},
		{Cell{X: 7, Y: 7}, Cell{X: 7, Y: 7}},
	}
	for _, tc := range tests {
		if got := g.Wrap(tc.in); got != tc.want {
			t.Errorf("Wrap(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestGridFor(t *testing.T) {
	if g := GridFor(300, 300, CellSize{W: 15, H: 15}); g != (Grid{Cols: 20, Rows: 20}) {
		t.Errorf("GridFor(300x300, 15) = %+v", g)
	}
	if g := GridFor(41, 20, CellSize{W: 2, H: 1}); g != (Grid{Cols: 20, Rows: 20}) {
		t.Errorf("GridFor(41x20, 2x1) = %+v", g)
	}
	if g := GridFor(10, 10, CellSize{}); g.Area() != 0 {
		t.Errorf("zero cell size should give empty grid, got %+v", g)
	}
}

func TestFoodNeverOnSnake(t *testing.T) {
	opts := DefaultOptions()
	opts.Grid = Grid{Cols: 3, Rows: 1}
	opts.Start = Cell{X: 0, Y: 0}
	e, _, _ := newTestEngine(t, opts)

	e.snake = []Cell{{X: 0, Y: 0}, {X: 1, Y: 0}}
	for i := 0; i < 20; i++ {
		e.placeFood()
		if !e.hasFood || e.food != (Cell{X: 2, Y: 0}) {
			t.Fatalf("expected the only free cell (2,0), got %v (hasFood=%v)", e.food, e.hasFood)
		}
	}

	e.snake = []Cell{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}}
	e.placeFood()
	if e.hasFood {
		t.Errorf("full board should have no food, got %v", e.food)
	}
}

func TestInvariantsOverRandomPlay(t *testing.T) {
	opts := DefaultOptions()
	opts.Grid = Grid{Cols: 8, Rows: 6}
	opts.Seed = 7
	e, sched, _ := newTestEngine(t, opts)

	rng := rand.New(rand.NewSource(99))
	dirs := []Direction{Up, Down, Left, Right}

	for i := 0; i < 2000; i++ {
		e.SetDirection(dirs[rng.Intn(len(dirs))])

		before := e.State()
		sched.fireAll()
		after := e.State()

		if e.Frame().Tick == 0 {
			// Self-collision: the run restarted.
			if len(after.Snake) != 1 || after.Direction != opts.Direction {
				t.Fatalf("tick %d: reset produced %v heading %v", i, after.Snake, after.Direction)
			}
		} else {
			if after.Direction == before.Direction.Opposite() {
				t.Fatalf("tick %d: committed %v right after %v", i, after.Direction, before.Direction)
			}
			ate := before.HasFood && opts.Grid.Wrap(before.Snake[0].Add(after.Direction)) == before.Food
			switch {
			case !ate && len(after.Snake) == len(before.Snake):
			case ate && len(after.Snake) == len(before.Snake)+1:
			default:
				t.Fatalf("tick %d: length went from %d to %d (ate=%v)", i, len(before.Snake), len(after.Snake), ate)
			}
		}

		for _, seg := range after.Snake {
			if !opts.Grid.Contains(seg) {
				t.Fatalf("tick %d: segment %v outside grid", i, seg)
			}
			if after.HasFood && seg == after.Food {
				t.Fatalf("tick %d: food %v inside snake", i, after.Food)
			}
		}
		if n := len(sched.active()); n != 1 {
			t.Fatalf("tick %d: %d active timers", i, n)
		}
	}
}

func TestStopIgnoresLateFiring(t *testing.T) {
	e, sched, rec := newTestEngine(t, DefaultOptions())
	timer := sched.timers[0]

	e.Stop()
	timer.fire()

	if e.Running() {
		t.Error("engine should not be running after Stop")
	}
	if !timer.stopped {
		t.Error("Stop should stop the timer")
	}
	if len(rec.frames) != 0 {
		t.Error("stopped engine emitted a frame")
	}
}

func TestStartOutsideGridUsesCenter(t *testing.T) {
	opts := DefaultOptions()
	opts.Grid = Grid{Cols: 5, Rows: 5}
	e, _, _ := newTestEngine(t, opts)

	if head := e.State().Snake[0]; head != (Cell{X: 2, Y: 2}) {
		t.Errorf("expected centre start (2,2), got %v", head)
	}
}

func TestNilSchedulerAndSink(t *testing.T) {
	e := NewEngine(DefaultOptions(), nil, nil)
	e.Reset()

	if !e.Running() {
		t.Error("Reset should mark the engine running without a scheduler")
	}
	e.tick(e.generation) // Must not panic without a sink
	if e.Frame().Tick != 1 {
		t.Errorf("expected one tick, got %d", e.Frame().Tick)
	}
}

func TestDeterminism(t *testing.T) {
	opts := DefaultOptions()
	opts.Seed = 12345

	e1, s1, r1 := newTestEngine(t, opts)
	e2, s2, r2 := newTestEngine(t, opts)

	for i := 0; i < 200; i++ {
		if i%7 == 0 {
			e1.SetDirection(Down)
			e2.SetDirection(Down)
		}
		if i%11 == 0 {
			e1.SetDirection(Right)
			e2.SetDirection(Right)
		}
		s1.fireAll()
		s2.fireAll()
	}

	if len(r1.frames) != len(r2.frames) {
		t.Fatalf("frame count mismatch: %d vs %d", len(r1.frames), len(r2.frames))
	}
	f1, f2 := e1.Frame(), e2.Frame()
	if f1.Head() != f2.Head() || f1.Food != f2.Food || len(f1.Snake) != len(f2.Snake) {
		t.Errorf("engines diverged: %+v vs %+v", f1, f2)
	}
}

func TestDirectionForAction(t *testing.T) {
	tests := []struct {
		action core.Action
		want   Direction
		ok     bool
	}{
		{core.ActionUp, Up, true},
		{core.ActionDown, Down, true},
		{core.ActionLeft, Left, true},
		{core.ActionRight, Right, true},
		{core.ActionConfirm, Direction{}, false},
		{core.ActionNone, Direction{}, false},
	}
	for _, tc := range tests {
		got, ok := DirectionForAction(tc.action)
		if got != tc.want || ok != tc.ok {
			t.Errorf("DirectionForAction(%v) = %v, %v; want %v, %v", tc.action, got, ok, tc.want, tc.ok)
		}
	}
}
