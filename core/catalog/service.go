package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"neurobeats/cache"
	"neurobeats/logger"

	"golang.org/x/sync/singleflight"
)

// Operation names double as cache-key prefixes.
const (
	opSearch            = "search"
	opTopTracks         = "top-tracks"
	opTrendingPlaylists = "trending-playlists"
	opGenres            = "genres"
	opGenreTracks       = "genre-tracks"
	opGenreArtists      = "genre-artists"
	opGenreRadio        = "genre-radio"
	opArtist            = "artist"
	opArtistTop         = "artist-top"
	opArtistAlbums      = "artist-albums"
	opArtistRadio       = "artist-radio"
	opAlbumTracks       = "album-tracks"
	opPlaylistTracks    = "playlist-tracks"
	opTrack             = "track"
)

// policy holds the freshness window and retention ceiling for one operation.
// Within fresh the cached payload is served as-is; between fresh and retain
// it is still served but a background refresh is kicked off; past retain the
// store evicts it and the next call goes to the network.
type policy struct {
	fresh  time.Duration
	retain time.Duration
}

var policies = map[string]policy{
	opSearch:            {5 * time.Minute, 10 * time.Minute},
	opTopTracks:         {30 * time.Minute, time.Hour},
	opTrendingPlaylists: {30 * time.Minute, time.Hour},
	opGenres:            {24 * time.Hour, 7 * 24 * time.Hour},
	opGenreTracks:       {30 * time.Minute, 24 * time.Hour},
	opGenreArtists:      {15 * time.Minute, 30 * time.Minute},
	opGenreRadio:        {15 * time.Minute, 24 * time.Hour},
	opArtist:            {time.Hour, 24 * time.Hour},
	opArtistTop:         {30 * time.Minute, 24 * time.Hour},
	opArtistAlbums:      {30 * time.Minute, 24 * time.Hour},
	opArtistRadio:       {15 * time.Minute, 24 * time.Hour},
	opAlbumTracks:       {15 * time.Minute, 24 * time.Hour},
	opPlaylistTracks:    {15 * time.Minute, 30 * time.Minute},
	opTrack:             {time.Hour, 24 * time.Hour},
}

// Fetcher abstracts the upstream HTTP client so the service can be tested
// against a stub.
type Fetcher interface {
	Get(ctx context.Context, path string, params url.Values) ([]byte, error)
}

// Service is the catalog access layer: typed operations over the upstream
// API with per-operation caching and request coalescing. It does not retry;
// callers decide how to surface RateLimited/RequestFailed conditions.
type Service struct {
	client Fetcher
	store  cache.Store
	group  singleflight.Group
	now    func() time.Time
}

// NewService creates a catalog service on top of client and store.
func NewService(client Fetcher, store cache.Store) *Service {
	return &Service{
		client: client,
		store:  store,
		now:    time.Now,
	}
}

// SetClock replaces the service clock. Intended for tests.
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

// cacheKey builds the exact (operation, normalized parameters) tuple key.
// url.Values.Encode sorts by key, which is the normalization.
func cacheKey(op, path string, params url.Values) string {
	if encoded := params.Encode(); encoded != "" {
		return fmt.Sprintf("%s:%s?%s", op, path, encoded)
	}
	return fmt.Sprintf("%s:%s", op, path)
}

// fetch resolves one operation through the cache, coalescing concurrent
// misses for the same key into a single upstream request.
func (s *Service) fetch(ctx context.Context, op, path string, params url.Values, out interface{}) error {
	pol, ok := policies[op]
	if !ok {
		return fmt.Errorf("no cache policy for operation %q", op)
	}
	key := cacheKey(op, path, params)

	entry, err := s.store.Get(ctx, key)
	if err != nil {
		logger.Warn("catalog cache read failed", logger.String("key", key), logger.ErrorField(err))
	}
	if entry != nil {
		if entry.Age(s.now()) > pol.fresh {
			s.refreshAsync(op, path, params, key, pol)
		}
		return json.Unmarshal(entry.Payload, out)
	}

	payload, err := s.load(ctx, key, path, params, pol)
	if err != nil {
		return err
	}
	return json.Unmarshal(payload, out)
}

// load performs the coalesced network fetch and stores the result.
func (s *Service) load(ctx context.Context, key, path string, params url.Values, pol policy) ([]byte, error) {
	v, err, _ := s.group.Do(key, func() (interface{}, error) {
		payload, err := s.client.Get(ctx, path, params)
		if err != nil {
			return nil, err
		}
		entry := &cache.Entry{Payload: payload, FetchedAt: s.now()}
		if err := s.store.Set(ctx, key, entry, pol.retain); err != nil {
			logger.Warn("catalog cache write failed", logger.String("key", key), logger.ErrorField(err))
		}
		return payload, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}

// refreshAsync refreshes a stale-but-retained entry in the background.
// Failures only log; the caller already has a usable payload.
func (s *Service) refreshAsync(op, path string, params url.Values, key string, pol policy) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if _, err := s.load(ctx, key, path, params, pol); err != nil {
			logger.Warn("catalog background refresh failed",
				logger.String("operation", op),
				logger.String("key", key),
				logger.ErrorField(err))
		}
	}()
}

func limitParams(limit int) url.Values {
	params := url.Values{}
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}
	return params
}

// Search runs a track search for the given query.
func (s *Service) Search(ctx context.Context, query string, limit int) (*TrackListResponse, error) {
	params := limitParams(limit)
	params.Set("q", query)
	var resp TrackListResponse
	if err := s.fetch(ctx, opSearch, "/search", params, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// TopTracks returns the global chart tracks.
func (s *Service) TopTracks(ctx context.Context, limit int) (*TrackListResponse, error) {
	var resp TrackListResponse
	if err := s.fetch(ctx, opTopTracks, "/chart/0/tracks", limitParams(limit), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// TrendingPlaylists returns the global chart playlists.
func (s *Service) TrendingPlaylists(ctx context.Context, limit int) (*PlaylistListResponse, error) {
	var resp PlaylistListResponse
	if err := s.fetch(ctx, opTrendingPlaylists, "/chart/0/playlists", limitParams(limit), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Genres returns the catalog genre list.
func (s *Service) Genres(ctx context.Context) (*GenreListResponse, error) {
	var resp GenreListResponse
	if err := s.fetch(ctx, opGenres, "/genre", url.Values{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GenreTracks returns the top tracks for a genre.
func (s *Service) GenreTracks(ctx context.Context, genreID string, limit int) (*TrackListResponse, error) {
	var resp TrackListResponse
	path := fmt.Sprintf("/genre/%s/tracks", genreID)
	if err := s.fetch(ctx, opGenreTracks, path, limitParams(limit), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GenreArtists returns the artists for a genre.
func (s *Service) GenreArtists(ctx context.Context, genreID string, limit int) (*ArtistListResponse, error) {
	var resp ArtistListResponse
	path := fmt.Sprintf("/genre/%s/artists", genreID)
	if err := s.fetch(ctx, opGenreArtists, path, limitParams(limit), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GenreRadio returns radio tracks for a genre.
func (s *Service) GenreRadio(ctx context.Context, genreID string, limit int) (*TrackListResponse, error) {
	var resp TrackListResponse
	path := fmt.Sprintf("/genre/%s/radio", genreID)
	if err := s.fetch(ctx, opGenreRadio, path, limitParams(limit), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ArtistDetails returns one artist.
func (s *Service) ArtistDetails(ctx context.Context, artistID string) (*VendorArtist, error) {
	var resp VendorArtist
	path := fmt.Sprintf("/artist/%s", artistID)
	if err := s.fetch(ctx, opArtist, path, url.Values{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ArtistTopTracks returns an artist's top tracks.
func (s *Service) ArtistTopTracks(ctx context.Context, artistID string, limit int) (*TrackListResponse, error) {
	var resp TrackListResponse
	path := fmt.Sprintf("/artist/%s/top", artistID)
	if err := s.fetch(ctx, opArtistTop, path, limitParams(limit), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ArtistAlbums returns an artist's albums.
func (s *Service) ArtistAlbums(ctx context.Context, artistID string, limit int) (*AlbumListResponse, error) {
	var resp AlbumListResponse
	path := fmt.Sprintf("/artist/%s/albums", artistID)
	if err := s.fetch(ctx, opArtistAlbums, path, limitParams(limit), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ArtistRadio returns radio tracks seeded by an artist.
func (s *Service) ArtistRadio(ctx context.Context, artistID string, limit int) (*TrackListResponse, error) {
	var resp TrackListResponse
	path := fmt.Sprintf("/artist/%s/radio", artistID)
	if err := s.fetch(ctx, opArtistRadio, path, limitParams(limit), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// AlbumTracks returns the tracks of an album.
func (s *Service) AlbumTracks(ctx context.Context, albumID string, limit int) (*TrackListResponse, error) {
	var resp TrackListResponse
	path := fmt.Sprintf("/album/%s/tracks", albumID)
	if err := s.fetch(ctx, opAlbumTracks, path, limitParams(limit), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// PlaylistTracks returns the tracks of a playlist.
func (s *Service) PlaylistTracks(ctx context.Context, playlistID string) (*TrackListResponse, error) {
	var resp TrackListResponse
	path := fmt.Sprintf("/playlist/%s/tracks", playlistID)
	if err := s.fetch(ctx, opPlaylistTracks, path, url.Values{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// TrackDetails returns one track.
func (s *Service) TrackDetails(ctx context.Context, trackID string) (*VendorTrack, error) {
	var resp VendorTrack
	path := fmt.Sprintf("/track/%s", trackID)
	if err := s.fetch(ctx, opTrack, path, url.Values{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
