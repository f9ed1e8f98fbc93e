package catalog

import (
	"context"
	"net/url"
	"sync"
	"testing"
	"time"

	"neurobeats/cache"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubFetcher counts upstream calls and serves a canned payload per path.
type stubFetcher struct {
	mu        sync.Mutex
	calls     map[string]int
	responses map[string][]byte
	err       error
}

func newStubFetcher() *stubFetcher {
	return &stubFetcher{
		calls:     make(map[string]int),
		responses: make(map[string][]byte),
	}
}

func (f *stubFetcher) Get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[path]++
	if f.err != nil {
		return nil, f.err
	}
	if resp, ok := f.responses[path]; ok {
		return resp, nil
	}
	return []byte(`{"data":[],"total":0}`), nil
}

func (f *stubFetcher) callCount(path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[path]
}

func newTestService(fetcher *stubFetcher) (*Service, *cache.MemoryStore, *time.Time) {
	store := cache.NewMemoryStore()
	svc := NewService(fetcher, store)

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	clock := &now
	svc.SetClock(func() time.Time { return *clock })
	store.SetClock(func() time.Time { return *clock })
	return svc, store, clock
}

func TestSearchParsesUpstreamResponse(t *testing.T) {
	fetcher := newStubFetcher()
	fetcher.responses["/search"] = []byte(`{
		"data": [{"id": 3135556, "title": "Harder Better Faster Stronger",
			"duration": 224, "preview": "https://cdn.example/preview.mp3",
			"artist": {"id": 27, "name": "Daft Punk"},
			"album": {"id": 302127, "title": "Discovery"}}],
		"total": 1
	}`)
	svc, _, _ := newTestService(fetcher)

	resp, err := svc.Search(context.Background(), "daft punk", 25)
	require.NoError(t, err)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, int64(3135556), resp.Data[0].ID)
	assert.Equal(t, "Daft Punk", resp.Data[0].Artist.Name)
	assert.Equal(t, 1, resp.Total)
}

func TestFreshHitSkipsUpstream(t *testing.T) {
	fetcher := newStubFetcher()
	svc, _, _ := newTestService(fetcher)
	ctx := context.Background()

	_, err := svc.Search(ctx, "query", 25)
	require.NoError(t, err)
	_, err = svc.Search(ctx, "query", 25)
	require.NoError(t, err)

	assert.Equal(t, 1, fetcher.callCount("/search"), "second call within the fresh window must be served from cache")
}

func TestDistinctParamsAreDistinctEntries(t *testing.T) {
	fetcher := newStubFetcher()
	svc, _, _ := newTestService(fetcher)
	ctx := context.Background()

	_, err := svc.Search(ctx, "one", 25)
	require.NoError(t, err)
	_, err = svc.Search(ctx, "two", 25)
	require.NoError(t, err)
	_, err = svc.Search(ctx, "one", 50)
	require.NoError(t, err)

	assert.Equal(t, 3, fetcher.callCount("/search"))
}

func TestStaleEntryServedWithBackgroundRefresh(t *testing.T) {
	fetcher := newStubFetcher()
	fetcher.responses["/search"] = []byte(`{"data":[],"total":7}`)
	svc, _, clock := newTestService(fetcher)
	ctx := context.Background()

	_, err := svc.Search(ctx, "query", 25)
	require.NoError(t, err)

	// Between the fresh window and the retention ceiling the cached payload
	// is served as-is and a refresh runs in the background.
	*clock = clock.Add(7 * time.Minute)
	resp, err := svc.Search(ctx, "query", 25)
	require.NoError(t, err)
	assert.Equal(t, 7, resp.Total, "stale-but-retained entry must be served from cache")

	deadline := time.Now().Add(2 * time.Second)
	for fetcher.callCount("/search") < 2 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	assert.Equal(t, 2, fetcher.callCount("/search"), "expected exactly one background refresh")
}

func TestExpiredEntryRefetches(t *testing.T) {
	fetcher := newStubFetcher()
	svc, _, clock := newTestService(fetcher)
	ctx := context.Background()

	_, err := svc.Search(ctx, "query", 25)
	require.NoError(t, err)

	// Past the retention ceiling the store evicts and the call goes upstream.
	*clock = clock.Add(11 * time.Minute)
	_, err = svc.Search(ctx, "query", 25)
	require.NoError(t, err)

	assert.Equal(t, 2, fetcher.callCount("/search"))
}

func TestGenresLongRetention(t *testing.T) {
	fetcher := newStubFetcher()
	svc, _, clock := newTestService(fetcher)
	ctx := context.Background()

	_, err := svc.Genres(ctx)
	require.NoError(t, err)

	// Still fresh after 23 hours.
	*clock = clock.Add(23 * time.Hour)
	_, err = svc.Genres(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, fetcher.callCount("/genre"))
}

func TestUpstreamErrorPropagates(t *testing.T) {
	fetcher := newStubFetcher()
	fetcher.err = &RateLimitedError{URL: "https://upstream/search", RetryAfter: 30 * time.Second}
	svc, _, _ := newTestService(fetcher)

	_, err := svc.Search(context.Background(), "query", 25)
	require.Error(t, err)
	assert.True(t, IsRateLimited(err))
}

func TestFailedFetchIsNotCached(t *testing.T) {
	fetcher := newStubFetcher()
	fetcher.err = &RequestFailedError{URL: "https://upstream/search", Status: 500}
	svc, _, _ := newTestService(fetcher)
	ctx := context.Background()

	_, err := svc.Search(ctx, "query", 25)
	require.Error(t, err)

	fetcher.mu.Lock()
	fetcher.err = nil
	fetcher.mu.Unlock()

	_, err = svc.Search(ctx, "query", 25)
	require.NoError(t, err)
	assert.Equal(t, 2, fetcher.callCount("/search"))
}

func TestConcurrentMissesCoalesce(t *testing.T) {
	fetcher := newStubFetcher()
	svc, _, _ := newTestService(fetcher)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.TopTracks(ctx, 50)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	// Coalescing keeps concurrent misses to at most a couple of upstream hits.
	assert.LessOrEqual(t, fetcher.callCount("/chart/0/tracks"), 2)
}

func TestCacheKeyNormalizesParamOrder(t *testing.T) {
	a := url.Values{}
	a.Set("q", "x")
	a.Set("limit", "25")

	b := url.Values{}
	b.Set("limit", "25")
	b.Set("q", "x")

	assert.Equal(t, cacheKey(opSearch, "/search", a), cacheKey(opSearch, "/search", b))
}

func TestEveryOperationHasAPolicy(t *testing.T) {
	ops := []string{
		opSearch, opTopTracks, opTrendingPlaylists, opGenres, opGenreTracks,
		opGenreArtists, opGenreRadio, opArtist, opArtistTop, opArtistAlbums,
		opArtistRadio, opAlbumTracks, opPlaylistTracks, opTrack,
	}
	for _, op := range ops {
		pol, ok := policies[op]
		require.True(t, ok, "missing policy for %s", op)
		assert.Greater(t, pol.retain, time.Duration(0))
		assert.LessOrEqual(t, pol.fresh, pol.retain, "fresh window must fit inside retention for %s", op)
	}
}
