package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/net/html"

	"github.com/vovakirdan/dexos/internal/storage"
)

// Errors returned by NormalizeURL.
var (
	ErrEmptyURL   = errors.New("shell: empty url")
	ErrInvalidURL = errors.New("shell: invalid url")
)

// NormalizeURL turns free text typed into the address bar into a URL.
// Surrounding whitespace is dropped and "https://" is prepended unless the
// text already starts with "http://" or "https://".
func NormalizeURL(raw string) (string, error) {
	u := strings.TrimSpace(raw)
	if u == "" {
		return "", ErrEmptyURL
	}
	if !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://") {
		u = "https://" + u
	}

	parsed, err := url.Parse(u)
	if err != nil || parsed.Host == "" {
		return "", fmt.Errorf("%w: %q", ErrInvalidURL, raw)
	}
	return u, nil
}

// Page is a loaded document reduced to plain text.
type Page struct {
	URL       string
	Status    int
	Title     string
	Text      string
	Truncated bool // Body exceeded the size cap
}

// VisitRecorder persists page loads. *storage.Store implements it.
type VisitRecorder interface {
	RecordVisit(v storage.Visit) (int64, error)
}

// PageLoader fetches pages for the viewer. Only text is extracted; scripts,
// styles and embedded frames are never run or followed.
type PageLoader struct {
	Client    *http.Client
	UserAgent string
	MaxBytes  int64
	History   VisitRecorder // Optional
	Logger    *log.Logger   // Optional
}

// NewPageLoader creates a loader with a request timeout.
func NewPageLoader(timeout time.Duration, maxBytes int64, userAgent string) *PageLoader {
	return &PageLoader{
		Client:    &http.Client{Timeout: timeout},
		UserAgent: userAgent,
		MaxBytes:  maxBytes,
	}
}

// Load normalises raw, fetches it and extracts its text. HTTP error statuses
// are not errors: the page is returned with its status so it can be shown.
func (l *PageLoader) Load(ctx context.Context, raw string) (Page, error) {
	target, err := NormalizeURL(raw)
	if err != nil {
		return Page{}, err
	}

	page, err := l.fetch(ctx, target)
	l.record(page, target)
	if err != nil {
		l.logf().Warn("page load failed", "url", target, "error", err)
		return page, err
	}
	l.logf().Info("page loaded", "url", target, "status", page.Status, "bytes", len(page.Text))
	return page, nil
}

func (l *PageLoader) fetch(ctx context.Context, target string) (Page, error) {
	page := Page{URL: target}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return page, fmt.Errorf("shell: build request: %w", err)
	}
	if l.UserAgent != "" {
		req.Header.Set("User-Agent", l.UserAgent)
	}

	client := l.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return page, fmt.Errorf("shell: fetch %s: %w", target, err)
	}
	defer resp.Body.Close()

	page.Status = resp.StatusCode
	page.URL = resp.Request.URL.String() // After redirects

	limit := l.MaxBytes
	if limit <= 0 {
		limit = 1 << 20
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return page, fmt.Errorf("shell: read %s: %w", target, err)
	}
	if int64(len(body)) > limit {
		body = body[:limit]
		page.Truncated = true
	}

	mediaType, _, _ := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	switch {
	case mediaType == "text/html" || mediaType == "application/xhtml+xml" || mediaType == "":
		page.Title, page.Text = ExtractText(strings.NewReader(string(body)))
	case strings.HasPrefix(mediaType, "text/"):
		page.Text = collapseWhitespace(string(body))
	default:
		page.Text = fmt.Sprintf("[%s document, %d bytes not shown]", mediaType, len(body))
	}
	return page, nil
}

func (l *PageLoader) record(page Page, target string) {
	if l.History == nil {
		return
	}
	u := page.URL
	if u == "" {
		u = target
	}
	if _, err := l.History.RecordVisit(storage.Visit{URL: u, Title: page.Title, Status: page.Status}); err != nil {
		l.logf().Warn("could not record visit", "url", u, "error", err)
	}
}

func (l *PageLoader) logf() *log.Logger {
	if l.Logger == nil {
		return log.New(io.Discard)
	}
	return l.Logger
}

// Tags whose content is never shown.
var hiddenTags = map[string]bool{
	"script": true, "style": true, "noscript": true, "template": true,
	"iframe": true, "object": true, "svg": true,
}

// Tags that start a new line in the extracted text.
var blockTags = map[string]bool{
	"p": true, "div": true, "br": true, "li": true, "tr": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"section": true, "article": true, "header": true, "footer": true,
	"pre": true, "blockquote": true, "table": true, "ul": true, "ol": true,
}

// ExtractText returns the document title and its visible text with
// whitespace collapsed and one block element per line.
func ExtractText(r io.Reader) (title, text string) {
	z := html.NewTokenizer(r)
	var sb strings.Builder
	var titleBuf strings.Builder
	hidden := 0
	inTitle := false

	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			return collapseWhitespace(titleBuf.String()), collapseWhitespace(sb.String())

		case html.StartTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			tag := string(name)
			if hiddenTags[tag] && tt == html.StartTagToken {
				hidden++
			}
			if tag == "title" && tt == html.StartTagToken {
				inTitle = true
			}
			if blockTags[tag] {
				sb.WriteByte('\n')
			}

		case html.EndTagToken:
			name, _ := z.TagName()
			tag := string(name)
			if hiddenTags[tag] && hidden > 0 {
				hidden--
			}
			if tag == "title" {
				inTitle = false
			}
			if blockTags[tag] {
				sb.WriteByte('\n')
			}

		case html.TextToken:
			if hidden > 0 {
				continue
			}
			if inTitle {
				titleBuf.Write(z.Text())
				continue
			}
			sb.Write(z.Text())
			sb.WriteByte(' ')
		}
	}
}

// collapseWhitespace squeezes runs of spaces within lines and drops empty
// lines.
func collapseWhitespace(s string) string {
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if fields := strings.Fields(line); len(fields) > 0 {
			out = append(out, strings.Join(fields, " "))
		}
	}
	return strings.Join(out, "\n")
}
