package tui

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/jfmyers9/srfsongs/internal/songfeed"
	"github.com/rivo/tview"
)

// Config holds TUI configuration options
type Config struct {
	RefreshRate time.Duration // How often to refetch the song list (0 = only on 'r')
	Title       string        // Station name shown in the header
}

// DefaultConfig returns the default TUI configuration
func DefaultConfig() Config {
	return Config{
		RefreshRate: 30 * time.Second,
		Title:       "SRF",
	}
}

// Fetcher loads song list entries
type Fetcher interface {
	Fetch(ctx context.Context) ([]songfeed.Entry, error)
}

// App is the full-screen song list viewer
type App struct {
	app        *tview.Application
	nowPlaying *tview.TextView
	recent     *tview.TextView
	status     *tview.TextView

	config  Config
	fetcher Fetcher

	// mu guards the fields below, which are written by fetch goroutines
	// and read by the draw callback.
	mu          sync.Mutex
	entries     []songfeed.Entry
	lastErr     error
	lastFetched time.Time
	loading     bool

	// Last-rendered content for change detection
	lastNowPlaying string
	lastRecent     string

	cancelFunc context.CancelFunc
}

// New creates a new TUI application with the given config
func New(fetcher Fetcher, cfg Config) *App {
	a := &App{
		app:     tview.NewApplication(),
		config:  cfg,
		fetcher: fetcher,
	}
	a.setupUI()
	return a
}

// setupUI creates the UI layout
func (a *App) setupUI() {
	a.nowPlaying = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter)
	a.nowPlaying.SetBorder(true).
		SetTitle(fmt.Sprintf(" Now Playing on %s ", a.config.Title)).
		SetTitleAlign(tview.AlignLeft)

	a.recent = tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true).
		SetTextAlign(tview.AlignLeft)
	a.recent.SetBorder(true).
		SetTitle(" Recently Played ").
		SetTitleAlign(tview.AlignLeft)

	a.status = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter)

	flex := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(a.nowPlaying, 7, 1, false).
		AddItem(a.recent, 0, 3, true).
		AddItem(a.status, 1, 1, false)

	a.app.SetInputCapture(a.handleKeyEvent)
	a.app.SetRoot(flex, true)
}

// handleKeyEvent processes keyboard input
func (a *App) handleKeyEvent(event *tcell.EventKey) *tcell.EventKey {
	switch event.Rune() {
	case 'q', 'Q':
		a.Stop()
		return nil
	case 'r', 'R':
		go a.reload(context.Background())
		return nil
	}
	return event
}

// View runs the viewer until the user quits. It has the signature of a
// menu view so it can replace the plain text renderer; w is unused because
// the viewer draws to the terminal directly.
func (a *App) View(ctx context.Context, _ io.Writer) error {
	return a.Run(ctx)
}

// Run starts the TUI and blocks until it exits
func (a *App) Run(ctx context.Context) error {
	ctx, a.cancelFunc = context.WithCancel(ctx)
	defer a.cancelFunc()

	go a.reload(ctx)
	go a.refreshLoop(ctx)

	if err := a.app.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}

// refreshLoop refetches on a timer until ctx is cancelled
func (a *App) refreshLoop(ctx context.Context) {
	if a.config.RefreshRate <= 0 {
		<-ctx.Done()
		return
	}

	ticker := time.NewTicker(a.config.RefreshRate)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			a.reload(ctx)
		}
	}
}

// reload fetches the song list and redraws
func (a *App) reload(ctx context.Context) {
	a.mu.Lock()
	if a.loading {
		a.mu.Unlock()
		return
	}
	a.loading = true
	a.mu.Unlock()
	a.redraw()

	entries, err := a.fetcher.Fetch(ctx)

	a.mu.Lock()
	a.loading = false
	if err != nil {
		a.lastErr = err
	} else {
		a.entries = entries
		a.lastErr = nil
		a.lastFetched = time.Now()
	}
	a.mu.Unlock()

	a.redraw()
}

// redraw updates all UI components
func (a *App) redraw() {
	a.app.QueueUpdateDraw(func() {
		a.mu.Lock()
		defer a.mu.Unlock()

		if text := renderNowPlaying(a.entries, a.lastErr); text != a.lastNowPlaying {
			a.lastNowPlaying = text
			a.nowPlaying.SetText(text)
		}
		if text := renderRecent(a.entries); text != a.lastRecent {
			a.lastRecent = text
			a.recent.SetText(text)
		}
		a.status.SetText(renderStatus(a.loading, a.lastFetched))
	})
}

// Stop stops the TUI application
func (a *App) Stop() {
	if a.cancelFunc != nil {
		a.cancelFunc()
	}
	a.app.Stop()
}

// renderNowPlaying builds the header panel text
func renderNowPlaying(entries []songfeed.Entry, err error) string {
	if err != nil {
		return fmt.Sprintf("\n[red]%s[-]", tview.Escape(songfeed.Describe(err)))
	}

	for _, e := range entries {
		if e.NowPlaying {
			var sb strings.Builder
			sb.WriteString("\n")
			sb.WriteString(fmt.Sprintf("[white::b]%s[-:-:-]\n", tview.Escape(e.Title)))
			sb.WriteString(fmt.Sprintf("[yellow]%s[-]\n", tview.Escape(e.Artist)))
			sb.WriteString(fmt.Sprintf("[gray]since %s[-]", tview.Escape(e.PlayedOn)))
			return sb.String()
		}
	}

	return "\n\n[gray]Nothing playing right now[-]"
}

// renderRecent builds the list of songs that are not playing
func renderRecent(entries []songfeed.Entry) string {
	var sb strings.Builder

	n := 0
	for _, e := range entries {
		if e.NowPlaying {
			continue
		}
		if n > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(fmt.Sprintf("[gray]%s[-]  [white]%s[-] [yellow]%s[-]",
			tview.Escape(e.PlayedOn), tview.Escape(e.Title), tview.Escape(e.Artist)))
		n++
	}

	if n == 0 {
		return "[gray]No songs found in the song list.[-]"
	}
	return sb.String()
}

// renderStatus builds the footer line
func renderStatus(loading bool, fetched time.Time) string {
	keys := "[gray]q:quit  r:refresh[-]"
	switch {
	case loading:
		return "[yellow]Loading...[-]  " + keys
	case fetched.IsZero():
		return keys
	default:
		return fmt.Sprintf("[gray]Updated %s[-]  %s", fetched.Format("15:04:05"), keys)
	}
}
