package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/dexos/internal/shell"
)

// pageLoadedMsg carries the result of an asynchronous page load.
type pageLoadedMsg struct {
	seq  int
	page shell.Page
	err  error
}

// PageFetcher loads pages. *shell.PageLoader implements it.
type PageFetcher interface {
	Load(ctx context.Context, raw string) (shell.Page, error)
}

type browserKeys struct {
	Go       key.Binding
	ScrollUp key.Binding
	ScrollDn key.Binding
}

var defaultBrowserKeys = browserKeys{
	Go: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "go"),
	),
	ScrollUp: key.NewBinding(
		key.WithKeys("up", "pgup"),
		key.WithHelp("↑/pgup", "scroll"),
	),
	ScrollDn: key.NewBinding(
		key.WithKeys("down", "pgdown"),
		key.WithHelp("↓/pgdn", "scroll"),
	),
}

var (
	addressStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240"))
	pageTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	pageErrStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	pageMetaStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// BrowserPanel is the page viewer window: an address bar above a scrollable
// text rendition of the loaded page.
type BrowserPanel struct {
	input   textinput.Model
	view    viewport.Model
	fetcher PageFetcher
	keys    browserKeys
	page    *shell.Page
	err     error
	loading bool
	seq     int
	width   int
}

// NewBrowserPanel creates an empty viewer.
func NewBrowserPanel(fetcher PageFetcher) *BrowserPanel {
	ti := textinput.New()
	ti.Placeholder = "type an address and press enter"
	ti.Prompt = "url: "
	ti.CharLimit = 2048

	p := &BrowserPanel{
		input:   ti,
		view:    viewport.New(60, 12),
		fetcher: fetcher,
		keys:    defaultBrowserKeys,
	}
	p.SetSize(64, 18)
	return p
}

// Attach focuses the address bar whenever the window is opened.
func (p *BrowserPanel) Attach(wm *shell.WindowManager) {
	wm.OnOpen(shell.AppBrowser, func() { p.input.Focus() })
	wm.OnClose(shell.AppBrowser, func() { p.input.Blur() })
}

// SetSize fits the panel into w x h terminal cells.
func (p *BrowserPanel) SetSize(w, h int) {
	p.width = max(w, 20)
	p.input.Width = p.width - len(p.input.Prompt) - 3
	p.view.Width = p.width
	p.view.Height = max(h-5, 3)
	p.refreshContent()
}

// Navigate starts loading raw. Empty input does nothing.
func (p *BrowserPanel) Navigate(raw string) tea.Cmd {
	if _, err := shell.NormalizeURL(raw); err != nil {
		if errors.Is(err, shell.ErrEmptyURL) {
			return nil
		}
		p.err = err
		p.page = nil
		p.refreshContent()
		return nil
	}

	p.seq++
	seq := p.seq
	p.loading = true
	p.err = nil
	fetcher := p.fetcher
	return func() tea.Msg {
		page, err := fetcher.Load(context.Background(), raw)
		return pageLoadedMsg{seq: seq, page: page, err: err}
	}
}

// Update handles keys for the focused window and page load results.
func (p *BrowserPanel) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case pageLoadedMsg:
		if msg.seq != p.seq {
			return nil
		}
		p.loading = false
		p.err = msg.err
		if msg.err == nil {
			page := msg.page
			p.page = &page
			p.input.SetValue(page.URL)
		}
		p.refreshContent()
		p.view.GotoTop()
		return nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, p.keys.Go):
			return p.Navigate(p.input.Value())
		case key.Matches(msg, p.keys.ScrollUp), key.Matches(msg, p.keys.ScrollDn):
			var cmd tea.Cmd
			p.view, cmd = p.view.Update(msg)
			return cmd
		}
	}

	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return cmd
}

// Loading reports whether a page load is in flight.
func (p *BrowserPanel) Loading() bool {
	return p.loading
}

// Page returns the last loaded page, if any.
func (p *BrowserPanel) Page() (shell.Page, bool) {
	if p.page == nil {
		return shell.Page{}, false
	}
	return *p.page, true
}

func (p *BrowserPanel) refreshContent() {
	switch {
	case p.err != nil:
		p.view.SetContent(pageErrStyle.Render(p.err.Error()))
	case p.page != nil:
		body := p.page.Text
		if body == "" {
			body = "(no text content)"
		}
		p.view.SetContent(lipgloss.NewStyle().Width(p.view.Width).Render(body))
	default:
		p.view.SetContent(pageMetaStyle.Render("No page loaded."))
	}
}

// View renders the address bar, page header and content.
func (p *BrowserPanel) View() string {
	var b strings.Builder
	b.WriteString(addressStyle.Width(p.width - 2).Render(p.input.View()))
	b.WriteString("\n")

	switch {
	case p.loading:
		b.WriteString(pageMetaStyle.Render("loading..."))
	case p.page != nil:
		title := p.page.Title
		if title == "" {
			title = p.page.URL
		}
		meta := fmt.Sprintf("  %d", p.page.Status)
		if p.page.Truncated {
			meta += " (truncated)"
		}
		b.WriteString(pageTitleStyle.Render(title) + pageMetaStyle.Render(meta))
	}
	b.WriteString("\n")
	b.WriteString(p.view.View())
	return b.String()
}
