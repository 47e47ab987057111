package srf

import (
	"net/http"
)

const (
	// DefaultChannelID is the SRF radio channel queried when none is configured
	DefaultChannelID = "69e8ac16-4327-4af4-b873-fd5cd6e895a7"

	// DefaultBaseURL is the song list endpoint prefix; the channel ID is appended
	DefaultBaseURL = "https://il.srgssr.ch/integrationlayer/2.0/srf/songList/radio/byChannel/"
)

// DefaultURL is the full song list URL for DefaultChannelID
var DefaultURL = DefaultBaseURL + DefaultChannelID

// Config holds client configuration.
type Config struct {
	URL        string       // Optional: Full song list URL (defaults to DefaultURL)
	HTTPClient *http.Client // Optional: HTTP client (defaults to http.DefaultClient)
	UserAgent  string       // Optional: User-Agent header
	Logger     Logger       // Optional: Logger interface for debug logging
}

// Logger is an optional interface for logging.
type Logger interface {
	// Debugf logs a debug message with format and arguments.
	Debugf(format string, args ...interface{})
}

// Client fetches song lists from a fixed URL.
type Client struct {
	url        string
	httpClient *http.Client
	userAgent  string
	logger     Logger
}

// NewClient creates a new song list client.
func NewClient(cfg Config) (*Client, error) {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	u := cfg.URL
	if u == "" {
		u = DefaultURL
	}

	return &Client{
		url:        u,
		httpClient: httpClient,
		userAgent:  cfg.UserAgent,
		logger:     cfg.Logger,
	}, nil
}

// URL returns the song list URL the client queries.
func (c *Client) URL() string {
	return c.url
}

// logDebugf logs a debug message if a logger is configured.
func (c *Client) logDebugf(format string, args ...interface{}) {
	if c.logger != nil {
		c.logger.Debugf(format, args...)
	}
}
