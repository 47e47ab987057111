package srf

// SongList is the body returned by the song list endpoint.
type SongList struct {
	Songs []Song `json:"songList"`
}

// Song is one played (or playing) song. Fields the API leaves out stay at
// their zero value; Title and Artist are pointers so absence can be told
// apart from an empty string.
type Song struct {
	Title        *string `json:"title,omitempty"`
	Artist       *Artist `json:"artist,omitempty"`
	Date         string  `json:"date,omitempty"` // ISO-8601 with a trailing UTC offset, e.g. 2024-10-17T14:03:12+02:00
	Duration     int64   `json:"duration,omitempty"`
	IsPlayingNow bool    `json:"isPlayingNow"`
}

// Artist is the performer of a Song.
type Artist struct {
	Name *string `json:"name,omitempty"`
}
