package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/dexos/internal/config"
	"github.com/vovakirdan/dexos/internal/core"
	"github.com/vovakirdan/dexos/internal/games/snake"
	"github.com/vovakirdan/dexos/internal/shell"
)

// SnakePanel hosts the snake engine inside a desktop window. The engine
// draws every frame onto the panel's canvas.
type SnakePanel struct {
	engine    *snake.Engine
	canvas    *core.Screen
	cell      snake.CellSize
	imageCell int
	keys      *KeyMapper
	help      help.Model
	shotDir   string
	status    string
	logger    *log.Logger
}

// NewSnakePanel creates the panel and its engine. The engine stays idle
// until the window is opened.
func NewSnakePanel(cfg config.SnakeConfig, seed int64, sched snake.Scheduler, logger *log.Logger) *SnakePanel {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	cell := snake.CellSize{W: cfg.CellWidth, H: cfg.CellHeight}
	grid := snake.GridFor(cfg.SurfaceWidth, cfg.SurfaceHeight, cell)
	canvas := core.NewScreen(max(grid.Cols, 1)*cell.W, max(grid.Rows, 1)*cell.H)

	opts := snake.Options{
		Grid:      grid,
		Start:     snake.Cell{X: cfg.Start.X, Y: cfg.Start.Y},
		Direction: snake.Right,
		Interval:  cfg.TickInterval(),
		Seed:      seed,
	}

	p := &SnakePanel{
		canvas:    canvas,
		cell:      cell,
		imageCell: cfg.ImageCellPX,
		keys:      NewKeyMapper(),
		help:      help.New(),
		logger:    logger,
	}
	p.engine = snake.NewEngine(opts, sched, snake.SurfaceSink{Surface: canvas, Cell: cell})
	p.redraw()

	if home, err := os.UserHomeDir(); err == nil {
		p.shotDir = filepath.Join(home, ".dexos", "screenshots")
	}
	return p
}

// Attach registers the panel's window observers: opening the window starts
// a fresh game, closing it stops the timer, and interacting with an idle
// window starts a game.
func (p *SnakePanel) Attach(wm *shell.WindowManager) {
	wm.OnOpen(shell.AppSnake, func() {
		p.engine.Reset()
		p.status = ""
		p.redraw()
	})
	wm.OnClose(shell.AppSnake, func() {
		p.engine.Stop()
		p.redraw()
	})
	wm.OnInteract(shell.AppSnake, func() {
		if !p.engine.Running() {
			p.engine.Reset()
			p.redraw()
		}
	})
}

// Engine returns the panel's engine.
func (p *SnakePanel) Engine() *snake.Engine {
	return p.engine
}

// HandleKey routes a key pressed while the window is focused. Direction keys
// are forwarded to the engine; ctrl+s saves a screenshot.
func (p *SnakePanel) HandleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.String() == "ctrl+s" {
		p.saveScreenshot()
		return nil
	}

	action, ok := p.keys.MapKey(msg)
	if !ok {
		return nil
	}
	if d, ok := snake.DirectionForAction(action); ok {
		p.engine.SetDirection(d)
	}
	return nil
}

// Screenshot writes the current frame as PNG into dir and returns its path.
func (p *SnakePanel) Screenshot(dir string, now time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("snake panel: create screenshot dir: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("snake_%s.png", now.Format("20060102_150405")))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("snake panel: create screenshot: %w", err)
	}
	defer f.Close()

	frame := p.engine.Frame()
	caption := fmt.Sprintf("DexOS snake  length %d  tick %d", len(frame.Snake), frame.Tick)
	if err := snake.WritePNG(f, frame, p.imageCell, caption); err != nil {
		return "", err
	}
	return path, nil
}

func (p *SnakePanel) saveScreenshot() {
	if p.shotDir == "" {
		p.status = "no home directory for screenshots"
		return
	}
	path, err := p.Screenshot(p.shotDir, time.Now())
	if err != nil {
		p.logger.Warn("screenshot failed", "error", err)
		p.status = "screenshot failed"
		return
	}
	p.logger.Info("screenshot saved", "path", path)
	p.status = "saved " + filepath.Base(path)
}

// redraw paints the current frame. Between ticks the canvas already holds
// the last emitted frame; this covers resets, which emit nothing.
func (p *SnakePanel) redraw() {
	snake.Render(p.canvas, p.engine.Frame(), p.cell)
	if !p.engine.Running() {
		p.canvas.DrawTextCentered(p.canvas.Height()/2, "press any key", core.ColorGray)
	}
}

var snakeStatusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// View renders the board, the help line and the last status message.
func (p *SnakePanel) View() string {
	footer := p.help.View(p.keys)
	if p.status != "" {
		footer += "  " + p.status
	}
	return RenderScreen(p.canvas) + "\n" + snakeStatusStyle.Render(footer)
}

// Size returns the board size in terminal cells.
func (p *SnakePanel) Size() (w, h int) {
	return p.canvas.Width(), p.canvas.Height()
}
