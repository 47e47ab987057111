// Package songfeed turns the SRF song list into display entries and prints
// them. Fetch failures are reported to the user and never abort the caller.
package songfeed

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/jfmyers9/srfsongs/pkg/srf"
	"github.com/rs/zerolog"
)

// Defaults for fields the API leaves out
const (
	UnknownTitle  = "Unknown Title"
	UnknownArtist = "Unknown Artist"
)

// Heading is printed above a non-empty song list
const Heading = "--- Current and Recently Played Songs ---"

// Entry is a song ready for display
type Entry struct {
	Title      string
	Artist     string
	PlayedOn   string // Formatted with DisplayLayout
	NowPlaying bool
}

// Line renders the entry as a single line of text
func (e Entry) Line() string {
	if e.NowPlaying {
		return fmt.Sprintf("🎵 NOW PLAYING: \"%s\" by %s (Played on: %s)", e.Title, e.Artist, e.PlayedOn)
	}
	return fmt.Sprintf("   \"%s\" by %s (Played on: %s)", e.Title, e.Artist, e.PlayedOn)
}

// SongLister fetches the raw song list
type SongLister interface {
	SongList(ctx context.Context) (*srf.SongList, error)
}

// Feed fetches and renders song lists
type Feed struct {
	client SongLister
	logger zerolog.Logger

	// Width pads or truncates rendered lines to this many columns (0 = off)
	Width int
}

// New creates a new Feed
func New(client SongLister, logger zerolog.Logger) *Feed {
	return &Feed{
		client: client,
		logger: logger.With().Str("component", "songfeed").Logger(),
	}
}

// Fetch retrieves the song list and converts it to entries. A song with an
// unparseable date stops the conversion: the entries before it are returned
// together with a *ParseError.
func (f *Feed) Fetch(ctx context.Context) ([]Entry, error) {
	list, err := f.client.SongList(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(list.Songs))
	for _, song := range list.Songs {
		entry, err := toEntry(song)
		if err != nil {
			return entries, err
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

// FetchAndRender fetches the song list and writes it to w. Failures are
// written to w as user-facing messages and logged; they are not returned.
func (f *Feed) FetchAndRender(ctx context.Context, w io.Writer) error {
	entries, err := f.Fetch(ctx)

	var parseErr *ParseError
	if errors.As(err, &parseErr) {
		f.renderList(w, entries)
		f.report(w, err)
		return nil
	}
	if err != nil {
		f.report(w, err)
		return nil
	}

	f.Render(w, entries)
	return nil
}

// Render writes entries to w, or a notice when there are none
func (f *Feed) Render(w io.Writer, entries []Entry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No songs found in the song list.")
		return
	}

	f.renderList(w, entries)
}

// renderList writes the heading and one line per entry
func (f *Feed) renderList(w io.Writer, entries []Entry) {
	fmt.Fprintf(w, "\n%s\n\n", Heading)
	for _, e := range entries {
		fmt.Fprintln(w, padToWidth(e.Line(), f.Width))
	}
}

// Describe returns the user-facing message for a fetch error
func Describe(err error) string {
	var statusErr *srf.StatusError
	var decodeErr *srf.DecodeError
	var parseErr *ParseError

	switch {
	case errors.As(err, &statusErr):
		return fmt.Sprintf("Failed to fetch the song list. HTTP Status Code: %d", statusErr.StatusCode)
	case errors.As(err, &decodeErr), errors.As(err, &parseErr):
		return "Error: Could not parse the response as JSON."
	default:
		return "Error: Could not reach the song service."
	}
}

func (f *Feed) report(w io.Writer, err error) {
	f.logger.Warn().Err(err).Msg("Song list unavailable")
	fmt.Fprintln(w, Describe(err))
}

func toEntry(song srf.Song) (Entry, error) {
	title := UnknownTitle
	if song.Title != nil && *song.Title != "" {
		title = *song.Title
	}

	artist := UnknownArtist
	if song.Artist != nil && song.Artist.Name != nil && *song.Artist.Name != "" {
		artist = *song.Artist.Name
	}

	playedOn, err := FormatDate(song.Date)
	if err != nil {
		return Entry{}, err
	}

	return Entry{
		Title:      title,
		Artist:     artist,
		PlayedOn:   playedOn,
		NowPlaying: song.IsPlayingNow,
	}, nil
}
