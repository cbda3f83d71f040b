package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/dexos/internal/shell"
	"github.com/vovakirdan/dexos/internal/storage"
)

// Version is the DexOS version shown in the About window.
const Version = "1.0"

// HistorySource lists recent page loads. *storage.Store implements it.
type HistorySource interface {
	RecentVisits(limit int) ([]storage.Visit, error)
}

// AboutPanel shows system information and the browser history.
type AboutPanel struct {
	history HistorySource
	limit   int
	table   table.Model
	started time.Time
	now     func() time.Time
	err     error
	user    string
}

// NewAboutPanel creates the About window. history may be nil.
func NewAboutPanel(history HistorySource, limit int, user string) *AboutPanel {
	columns := []table.Column{
		{Title: "When", Width: 12},
		{Title: "Status", Width: 6},
		{Title: "Address", Width: 40},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(8),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return &AboutPanel{
		history: history,
		limit:   limit,
		table:   t,
		started: time.Now(),
		now:     time.Now,
		user:    user,
	}
}

// Attach reloads the history every time the window is opened.
func (p *AboutPanel) Attach(wm *shell.WindowManager) {
	wm.OnOpen(shell.AppAbout, p.Refresh)
}

// Refresh reloads the history table.
func (p *AboutPanel) Refresh() {
	p.err = nil
	if p.history == nil {
		p.table.SetRows(nil)
		return
	}

	visits, err := p.history.RecentVisits(p.limit)
	if err != nil {
		p.err = err
		p.table.SetRows(nil)
		return
	}

	rows := make([]table.Row, len(visits))
	for i, v := range visits {
		status := "-"
		if v.Status > 0 {
			status = fmt.Sprintf("%d", v.Status)
		}
		rows[i] = table.Row{v.CreatedAt.Local().Format("Jan 02 15:04"), status, v.URL}
	}
	p.table.SetRows(rows)
	p.table.GotoTop()
}

// Rows returns the number of history rows shown.
func (p *AboutPanel) Rows() int {
	return len(p.table.Rows())
}

// Uptime returns the time since the desktop started.
func (p *AboutPanel) Uptime() time.Duration {
	return p.now().Sub(p.started).Truncate(time.Second)
}

// Update scrolls the history table.
func (p *AboutPanel) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	p.table, cmd = p.table.Update(msg)
	return cmd
}

var aboutLabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Width(14)

// View renders the system facts and the history table.
func (p *AboutPanel) View() string {
	var b strings.Builder

	facts := [][2]string{
		{"System", "DexOS"},
		{"Version", Version},
		{"Boot device", "TERMINAL"},
		{"Uptime", p.Uptime().String()},
	}
	if p.user != "" {
		facts = append(facts, [2]string{"User", p.user})
	}
	for _, f := range facts {
		b.WriteString(aboutLabelStyle.Render(f[0]) + f[1] + "\n")
	}

	b.WriteString("\n")
	switch {
	case p.history == nil:
		b.WriteString(pageMetaStyle.Render("History is unavailable."))
	case p.err != nil:
		b.WriteString(pageErrStyle.Render("history: " + p.err.Error()))
	case len(p.table.Rows()) == 0:
		b.WriteString(pageMetaStyle.Render("No pages visited yet."))
	default:
		b.WriteString(p.table.View())
	}
	return b.String()
}
