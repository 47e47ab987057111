package songfeed

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jfmyers9/srfsongs/pkg/srf"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const twoSongs = `{"songList":[
	{"title":"Blinding Lights","artist":{"name":"The Weeknd"},"date":"2024-10-17T14:03:12+02:00","isPlayingNow":true},
	{"title":"Heroes","artist":{"name":"David Bowie"},"date":"2024-10-17T13:59:40+02:00","isPlayingNow":false}
]}`

func newTestFeed(t *testing.T, status int, body string) *Feed {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)

	client, err := srf.NewClient(srf.Config{URL: server.URL})
	require.NoError(t, err)
	return New(client, zerolog.Nop())
}

func TestFetchAndRender_MarksNowPlaying(t *testing.T) {
	feed := newTestFeed(t, http.StatusOK, twoSongs)

	var out bytes.Buffer
	require.NoError(t, feed.FetchAndRender(context.Background(), &out))

	assert.Equal(t, 1, strings.Count(out.String(), "NOW PLAYING"))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, Heading, lines[0])
	assert.Equal(t, `🎵 NOW PLAYING: "Blinding Lights" by The Weeknd (Played on: 17-Oct-2024 at 14:03)`, lines[2])
	assert.Equal(t, `   "Heroes" by David Bowie (Played on: 17-Oct-2024 at 13:59)`, lines[3])
}

func TestFetchAndRender_NotFound(t *testing.T) {
	feed := newTestFeed(t, http.StatusNotFound, `{"status":"not found"}`)

	var out bytes.Buffer
	require.NoError(t, feed.FetchAndRender(context.Background(), &out))

	assert.Equal(t, "Failed to fetch the song list. HTTP Status Code: 404\n", out.String())
	assert.NotContains(t, out.String(), "Played on")
}

func TestFetchAndRender_Empty(t *testing.T) {
	for _, body := range []string{`{"songList":[]}`, `{}`} {
		feed := newTestFeed(t, http.StatusOK, body)

		var out bytes.Buffer
		require.NoError(t, feed.FetchAndRender(context.Background(), &out))
		assert.Equal(t, "No songs found in the song list.\n", out.String())
	}
}

func TestFetchAndRender_MalformedJSON(t *testing.T) {
	feed := newTestFeed(t, http.StatusOK, `{"songList":[`)

	var out bytes.Buffer
	require.NoError(t, feed.FetchAndRender(context.Background(), &out))
	assert.Equal(t, "Error: Could not parse the response as JSON.\n", out.String())
}

func TestFetchAndRender_MalformedDate(t *testing.T) {
	feed := newTestFeed(t, http.StatusOK, `{"songList":[
		{"title":"Good","artist":{"name":"A"},"date":"2024-10-17T14:03:12+02:00"},
		{"title":"Bad","artist":{"name":"B"},"date":"yesterday"},
		{"title":"Never","artist":{"name":"C"},"date":"2024-10-17T13:00:00+02:00"}
	]}`)

	var out bytes.Buffer
	require.NoError(t, feed.FetchAndRender(context.Background(), &out))
	assert.Equal(t, "\n"+Heading+"\n\n"+
		`   "Good" by A (Played on: 17-Oct-2024 at 14:03)`+"\n"+
		"Error: Could not parse the response as JSON.\n", out.String())
}

func TestFetchAndRender_MalformedFirstDate(t *testing.T) {
	feed := newTestFeed(t, http.StatusOK, `{"songList":[{"title":"Bad","date":"nope"}]}`)

	var out bytes.Buffer
	require.NoError(t, feed.FetchAndRender(context.Background(), &out))
	assert.Equal(t, "\n"+Heading+"\n\nError: Could not parse the response as JSON.\n", out.String())
	assert.NotContains(t, out.String(), "No songs found")
}

func TestFetchAndRender_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	client, err := srf.NewClient(srf.Config{URL: url})
	require.NoError(t, err)
	feed := New(client, zerolog.Nop())

	var out bytes.Buffer
	require.NoError(t, feed.FetchAndRender(context.Background(), &out))
	assert.Equal(t, "Error: Could not reach the song service.\n", out.String())
}

func TestFetch_Defaults(t *testing.T) {
	feed := newTestFeed(t, http.StatusOK, `{"songList":[
		{"date":"2024-10-17T14:03:12+02:00"},
		{"title":"","artist":{},"date":"2024-10-17T14:00:00+02:00"}
	]}`)

	entries, err := feed.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 2)

	for _, e := range entries {
		assert.Equal(t, UnknownTitle, e.Title)
		assert.Equal(t, UnknownArtist, e.Artist)
		assert.False(t, e.NowPlaying)
	}
}

func TestFetch_ReturnsTypedErrors(t *testing.T) {
	feed := newTestFeed(t, http.StatusInternalServerError, "")
	_, err := feed.Fetch(context.Background())
	assert.True(t, errors.Is(err, &srf.StatusError{StatusCode: http.StatusInternalServerError}))

	feed = newTestFeed(t, http.StatusOK, `{"songList":[{"date":"2024-10-17T14:03:12+02:00"},{"date":"bad"}]}`)
	entries, err := feed.Fetch(context.Background())
	var parseErr *ParseError
	assert.True(t, errors.As(err, &parseErr))
	assert.Equal(t, "bad", parseErr.Value)
	assert.Len(t, entries, 1, "entries before the bad date are kept")
}

func TestRender_Width(t *testing.T) {
	feed := New(nil, zerolog.Nop())
	feed.Width = 20

	var out bytes.Buffer
	feed.Render(&out, []Entry{{Title: "A very long title indeed", Artist: "X", PlayedOn: "17-Oct-2024 at 14:03"}})

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	assert.Equal(t, `   "A very long t...`, lines[len(lines)-1])
}

func TestDescribe(t *testing.T) {
	assert.Equal(t, "Failed to fetch the song list. HTTP Status Code: 503",
		Describe(&srf.StatusError{StatusCode: 503}))
	assert.Equal(t, "Error: Could not parse the response as JSON.",
		Describe(&srf.DecodeError{Err: errors.New("eof")}))
	assert.Equal(t, "Error: Could not parse the response as JSON.",
		Describe(&ParseError{Value: "yesterday"}))
	assert.Equal(t, "Error: Could not reach the song service.",
		Describe(errors.New("dial tcp: connection refused")))
}
