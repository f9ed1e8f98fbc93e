package server

import (
	"net/http"
	"strconv"
	"strings"

	"neurobeats/core/catalog"
	"neurobeats/logger"

	"github.com/gorilla/mux"
)

func parseLimit(r *http.Request, fallback, max int) int {
	limitStr := r.URL.Query().Get("limit")
	if limitStr == "" {
		return fallback
	}
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit <= 0 {
		return fallback
	}
	if limit > max {
		return max
	}
	return limit
}

// writeCatalogError maps catalog layer failures onto transport statuses:
// 429 passes through for the client's rate-limit toast, anything else is a
// bad gateway.
func writeCatalogError(w http.ResponseWriter, err error) {
	if catalog.IsRateLimited(err) {
		writeError(w, http.StatusTooManyRequests, "Catalog rate limit exceeded. Please try again later.")
		return
	}
	logger.Error("[Catalog] upstream request failed", logger.ErrorField(err))
	writeError(w, http.StatusBadGateway, "Catalog request failed")
}

// SearchHandler runs a track search.
func (h *APIHandler) SearchHandler(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		writeError(w, http.StatusBadRequest, "Query parameter 'q' is required")
		return
	}
	if len(query) > 200 {
		writeError(w, http.StatusBadRequest, "Query is too long")
		return
	}

	resp, err := h.catalog.Search(r.Context(), query, parseLimit(r, 25, 100))
	if err != nil {
		writeCatalogError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"tracks": catalog.ConvertTracks(resp.Data),
		"total":  resp.Total,
	})
}

// TopTracksHandler returns the global chart tracks.
func (h *APIHandler) TopTracksHandler(w http.ResponseWriter, r *http.Request) {
	resp, err := h.catalog.TopTracks(r.Context(), parseLimit(r, 50, 100))
	if err != nil {
		writeCatalogError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"tracks": catalog.ConvertTracks(resp.Data),
		"total":  resp.Total,
	})
}

// TrendingPlaylistsHandler returns the global chart playlists.
func (h *APIHandler) TrendingPlaylistsHandler(w http.ResponseWriter, r *http.Request) {
	resp, err := h.catalog.TrendingPlaylists(r.Context(), parseLimit(r, 25, 100))
	if err != nil {
		writeCatalogError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"playlists": catalog.ConvertPlaylists(resp.Data),
		"total":     resp.Total,
	})
}

// GenresHandler returns the genre list.
func (h *APIHandler) GenresHandler(w http.ResponseWriter, r *http.Request) {
	resp, err := h.catalog.Genres(r.Context())
	if err != nil {
		writeCatalogError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"genres": catalog.ConvertGenres(resp.Data),
	})
}

// GenreTracksHandler returns the top tracks of a genre.
func (h *APIHandler) GenreTracksHandler(w http.ResponseWriter, r *http.Request) {
	genreID := mux.Vars(r)["id"]
	resp, err := h.catalog.GenreTracks(r.Context(), genreID, parseLimit(r, 25, 100))
	if err != nil {
		writeCatalogError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"tracks": catalog.ConvertTracks(resp.Data),
		"total":  resp.Total,
	})
}

// GenreArtistsHandler returns the artists of a genre.
func (h *APIHandler) GenreArtistsHandler(w http.ResponseWriter, r *http.Request) {
	genreID := mux.Vars(r)["id"]
	resp, err := h.catalog.GenreArtists(r.Context(), genreID, parseLimit(r, 25, 100))
	if err != nil {
		writeCatalogError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"artists": catalog.ConvertArtists(resp.Data),
		"total":   resp.Total,
	})
}

// GenreRadioHandler returns radio tracks for a genre.
func (h *APIHandler) GenreRadioHandler(w http.ResponseWriter, r *http.Request) {
	genreID := mux.Vars(r)["id"]
	resp, err := h.catalog.GenreRadio(r.Context(), genreID, parseLimit(r, 25, 100))
	if err != nil {
		writeCatalogError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"tracks": catalog.ConvertTracks(resp.Data),
		"total":  resp.Total,
	})
}

// ArtistHandler returns one artist.
func (h *APIHandler) ArtistHandler(w http.ResponseWriter, r *http.Request) {
	artistID := mux.Vars(r)["id"]
	resp, err := h.catalog.ArtistDetails(r.Context(), artistID)
	if err != nil {
		writeCatalogError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, catalog.ConvertArtist(*resp))
}

// ArtistTopTracksHandler returns an artist's top tracks.
func (h *APIHandler) ArtistTopTracksHandler(w http.ResponseWriter, r *http.Request) {
	artistID := mux.Vars(r)["id"]
	resp, err := h.catalog.ArtistTopTracks(r.Context(), artistID, parseLimit(r, 10, 100))
	if err != nil {
		writeCatalogError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"tracks": catalog.ConvertTracks(resp.Data),
		"total":  resp.Total,
	})
}

// ArtistAlbumsHandler returns an artist's albums.
func (h *APIHandler) ArtistAlbumsHandler(w http.ResponseWriter, r *http.Request) {
	artistID := mux.Vars(r)["id"]
	resp, err := h.catalog.ArtistAlbums(r.Context(), artistID, parseLimit(r, 20, 100))
	if err != nil {
		writeCatalogError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"albums": catalog.ConvertAlbums(resp.Data),
		"total":  resp.Total,
	})
}

// ArtistRadioHandler returns radio tracks seeded by an artist.
func (h *APIHandler) ArtistRadioHandler(w http.ResponseWriter, r *http.Request) {
	artistID := mux.Vars(r)["id"]
	resp, err := h.catalog.ArtistRadio(r.Context(), artistID, parseLimit(r, 25, 100))
	if err != nil {
		writeCatalogError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"tracks": catalog.ConvertTracks(resp.Data),
		"total":  resp.Total,
	})
}

// AlbumTracksHandler returns the tracks of an album.
func (h *APIHandler) AlbumTracksHandler(w http.ResponseWriter, r *http.Request) {
	albumID := mux.Vars(r)["id"]
	resp, err := h.catalog.AlbumTracks(r.Context(), albumID, parseLimit(r, 50, 100))
	if err != nil {
		writeCatalogError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"tracks": catalog.ConvertTracks(resp.Data),
		"total":  resp.Total,
	})
}

// PlaylistTracksHandler returns the tracks of a playlist.
func (h *APIHandler) PlaylistTracksHandler(w http.ResponseWriter, r *http.Request) {
	playlistID := mux.Vars(r)["id"]
	resp, err := h.catalog.PlaylistTracks(r.Context(), playlistID)
	if err != nil {
		writeCatalogError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"tracks": catalog.ConvertTracks(resp.Data),
		"total":  resp.Total,
	})
}

// TrackHandler returns one track, converted to the app representation.
func (h *APIHandler) TrackHandler(w http.ResponseWriter, r *http.Request) {
	trackID := mux.Vars(r)["id"]
	resp, err := h.catalog.TrackDetails(r.Context(), trackID)
	if err != nil {
		writeCatalogError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, catalog.ConvertTrack(*resp))
}
