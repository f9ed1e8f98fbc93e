package catalog

import (
	"strconv"
	"time"

	"neurobeats/model"
)

// ConvertTrack maps the vendor track shape onto the app's Track. Genre,
// release date and like-count are not present in the vendor payload and are
// left at their zero values deliberately.
func ConvertTrack(vt VendorTrack) model.Track {
	cover := vt.Album.CoverXL
	if cover == "" {
		cover = vt.Album.CoverBig
	}
	if cover == "" {
		cover = vt.Album.Cover
	}
	return model.Track{
		ID:         strconv.FormatInt(vt.ID, 10),
		Title:      vt.Title,
		Artist:     vt.Artist.Name,
		ArtistID:   strconv.FormatInt(vt.Artist.ID, 10),
		Album:      vt.Album.Title,
		AlbumID:    strconv.FormatInt(vt.Album.ID, 10),
		Duration:   vt.Duration,
		CoverURL:   cover,
		AudioURL:   vt.Preview,
		PlaysCount: vt.Rank,
		CreatedAt:  time.Now().UTC(),
	}
}

// ConvertTracks maps a vendor track list.
func ConvertTracks(vts []VendorTrack) []model.Track {
	tracks := make([]model.Track, 0, len(vts))
	for _, vt := range vts {
		tracks = append(tracks, ConvertTrack(vt))
	}
	return tracks
}

// ConvertGenre maps the vendor genre shape onto the app's Genre.
func ConvertGenre(vg VendorGenre) model.Genre {
	return model.Genre{
		ID:      strconv.FormatInt(vg.ID, 10),
		Name:    vg.Name,
		Picture: vg.Picture,
	}
}

// ConvertGenres maps a vendor genre list.
func ConvertGenres(vgs []VendorGenre) []model.Genre {
	genres := make([]model.Genre, 0, len(vgs))
	for _, vg := range vgs {
		genres = append(genres, ConvertGenre(vg))
	}
	return genres
}

// ConvertArtist maps the vendor artist shape onto the app's Artist. The XL
// picture wins when present.
func ConvertArtist(va VendorArtist) model.Artist {
	picture := va.PictureXL
	if picture == "" {
		picture = va.Picture
	}
	return model.Artist{
		ID:         strconv.FormatInt(va.ID, 10),
		Name:       va.Name,
		Picture:    picture,
		AlbumCount: va.AlbumCount,
		FanCount:   va.FanCount,
	}
}

// ConvertArtists maps a vendor artist list.
func ConvertArtists(vas []VendorArtist) []model.Artist {
	artists := make([]model.Artist, 0, len(vas))
	for _, va := range vas {
		artists = append(artists, ConvertArtist(va))
	}
	return artists
}

// ConvertAlbum maps the vendor album shape onto the app's Album, with the
// same cover fallback order as tracks.
func ConvertAlbum(va VendorAlbum) model.Album {
	cover := va.CoverXL
	if cover == "" {
		cover = va.CoverBig
	}
	if cover == "" {
		cover = va.Cover
	}
	return model.Album{
		ID:          strconv.FormatInt(va.ID, 10),
		Title:       va.Title,
		CoverURL:    cover,
		ReleaseDate: va.ReleaseDate,
		RecordType:  va.RecordType,
		TrackCount:  va.TrackCount,
	}
}

// ConvertAlbums maps a vendor album list.
func ConvertAlbums(vas []VendorAlbum) []model.Album {
	albums := make([]model.Album, 0, len(vas))
	for _, va := range vas {
		albums = append(albums, ConvertAlbum(va))
	}
	return albums
}

// ConvertPlaylist maps the vendor playlist shape onto the app's Playlist.
func ConvertPlaylist(vp VendorPlaylist) model.Playlist {
	picture := vp.PictureBig
	if picture == "" {
		picture = vp.Picture
	}
	return model.Playlist{
		ID:         strconv.FormatInt(vp.ID, 10),
		Title:      vp.Title,
		Picture:    picture,
		TrackCount: vp.TrackCount,
		FanCount:   vp.FanCount,
		Creator:    vp.User.Name,
	}
}

// ConvertPlaylists maps a vendor playlist list.
func ConvertPlaylists(vps []VendorPlaylist) []model.Playlist {
	playlists := make([]model.Playlist, 0, len(vps))
	for _, vp := range vps {
		playlists = append(playlists, ConvertPlaylist(vp))
	}
	return playlists
}
