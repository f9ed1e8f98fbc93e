package model

import "time"

// Track is the app-internal representation of a playable track. Instances are
// built from catalog responses and are immutable once constructed.
type Track struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Artist      string    `json:"artist"`
	ArtistID    string    `json:"artistId,omitempty"`
	Album       string    `json:"album"`
	AlbumID     string    `json:"albumId,omitempty"`
	Duration    int       `json:"duration"` // Seconds
	CoverURL    string    `json:"coverUrl"`
	AudioURL    string    `json:"audioUrl"` // Preview/stream URL
	Genre       string    `json:"genre"`
	ReleaseDate string    `json:"releaseDate"`
	PlaysCount  int64     `json:"playsCount"`
	LikesCount  int64     `json:"likesCount"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Genre is a catalog genre entry.
type Genre struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// Artist is a catalog artist entry.
type Artist struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Picture    string `json:"picture"`
	AlbumCount int    `json:"albumCount"`
	FanCount   int    `json:"fanCount"`
}

// Album is a catalog album entry.
type Album struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	CoverURL    string `json:"coverUrl"`
	ReleaseDate string `json:"releaseDate"`
	RecordType  string `json:"recordType"`
	TrackCount  int    `json:"trackCount"`
}

// Playlist is a catalog playlist entry.
type Playlist struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Picture    string `json:"picture"`
	TrackCount int    `json:"trackCount"`
	FanCount   int    `json:"fanCount"`
	Creator    string `json:"creator"`
}
