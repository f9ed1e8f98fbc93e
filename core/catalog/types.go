package catalog

// Vendor response shapes. These mirror the upstream (Deezer-compatible)
// schema; translation to the app's own types happens in convert.go.

// VendorArtistRef is the artist object embedded in a track.
type VendorArtistRef struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
	PictureMedium string `json:"picture_medium"`
	PictureBig    string `json:"picture_big"`
	PictureXL     string `json:"picture_xl"`
}

// VendorAlbumRef is the album object embedded in a track.
type VendorAlbumRef struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Cover       string `json:"cover"`
	CoverMedium string `json:"cover_medium"`
	CoverBig    string `json:"cover_big"`
	CoverXL     string `json:"cover_xl"`
}

// VendorTrack is the upstream track representation.
type VendorTrack struct {
	ID       int64           `json:"id"`
	Title    string          `json:"title"`
	Duration int             `json:"duration"`
	Rank     int64           `json:"rank"`
	Preview  string          `json:"preview"`
	Explicit bool            `json:"explicit_lyrics"`
	Artist   VendorArtistRef `json:"artist"`
	Album    VendorAlbumRef  `json:"album"`
}

// VendorArtist is the upstream artist representation.
type VendorArtist struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Picture    string `json:"picture"`
	PictureXL  string `json:"picture_xl"`
	AlbumCount int    `json:"nb_album"`
	FanCount   int    `json:"nb_fan"`
}

// VendorAlbum is the upstream album representation as a root object.
type VendorAlbum struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Cover       string `json:"cover"`
	CoverBig    string `json:"cover_big"`
	CoverXL     string `json:"cover_xl"`
	ReleaseDate string `json:"release_date"`
	RecordType  string `json:"record_type"`
	TrackCount  int    `json:"nb_tracks"`
}

// VendorGenre is the upstream genre representation.
type VendorGenre struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// VendorPlaylist is the upstream playlist representation.
type VendorPlaylist struct {
	ID         int64  `json:"id"`
	Title      string `json:"title"`
	Picture    string `json:"picture"`
	PictureBig string `json:"picture_big"`
	TrackCount int    `json:"nb_tracks"`
	FanCount   int    `json:"fans"`
	User       struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	} `json:"user"`
}

// TrackListResponse is the paginated track list wrapper.
type TrackListResponse struct {
	Data  []VendorTrack `json:"data"`
	Total int           `json:"total"`
	Next  string        `json:"next,omitempty"`
}

// ArtistListResponse is the paginated artist list wrapper.
type ArtistListResponse struct {
	Data  []VendorArtist `json:"data"`
	Total int            `json:"total,omitempty"`
	Next  string         `json:"next,omitempty"`
}

// AlbumListResponse is the paginated album list wrapper.
type AlbumListResponse struct {
	Data  []VendorAlbum `json:"data"`
	Total int           `json:"total"`
	Next  string        `json:"next,omitempty"`
}

// GenreListResponse is the genre list wrapper.
type GenreListResponse struct {
	Data []VendorGenre `json:"data"`
}

// PlaylistListResponse is the playlist list wrapper.
type PlaylistListResponse struct {
	Data  []VendorPlaylist `json:"data"`
	Total int              `json:"total"`
}
