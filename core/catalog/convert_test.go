package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConvertTrack(t *testing.T) {
	vt := VendorTrack{
		ID:       3135556,
		Title:    "Harder Better Faster Stronger",
		Duration: 224,
		Rank:     945512,
		Preview:  "https://cdn.example/preview.mp3",
		Artist:   VendorArtistRef{ID: 27, Name: "Daft Punk"},
		Album: VendorAlbumRef{
			ID:      302127,
			Title:   "Discovery",
			Cover:   "https://cdn.example/cover.jpg",
			CoverXL: "https://cdn.example/cover_xl.jpg",
		},
	}

	track := ConvertTrack(vt)
	assert.Equal(t, "3135556", track.ID)
	assert.Equal(t, "Harder Better Faster Stronger", track.Title)
	assert.Equal(t, "Daft Punk", track.Artist)
	assert.Equal(t, "27", track.ArtistID)
	assert.Equal(t, "Discovery", track.Album)
	assert.Equal(t, 224, track.Duration)
	assert.Equal(t, "https://cdn.example/cover_xl.jpg", track.CoverURL, "XL cover wins when present")
	assert.Equal(t, "https://cdn.example/preview.mp3", track.AudioURL)
	assert.Equal(t, int64(945512), track.PlaysCount)
}

func TestConvertTrackCoverFallback(t *testing.T) {
	vt := VendorTrack{ID: 1, Album: VendorAlbumRef{Cover: "base.jpg", CoverBig: "big.jpg"}}
	assert.Equal(t, "big.jpg", ConvertTrack(vt).CoverURL)

	vt.Album.CoverBig = ""
	assert.Equal(t, "base.jpg", ConvertTrack(vt).CoverURL)

	vt.Album.Cover = ""
	assert.Equal(t, "", ConvertTrack(vt).CoverURL)
}

func TestConvertTracksPreservesOrder(t *testing.T) {
	out := ConvertTracks([]VendorTrack{{ID: 2}, {ID: 1}, {ID: 3}})
	assert.Equal(t, []string{"2", "1", "3"}, []string{out[0].ID, out[1].ID, out[2].ID})
}

func TestConvertGenre(t *testing.T) {
	genre := ConvertGenre(VendorGenre{ID: 132, Name: "Pop", Picture: "pop.jpg"})
	assert.Equal(t, "132", genre.ID)
	assert.Equal(t, "Pop", genre.Name)
	assert.Equal(t, "pop.jpg", genre.Picture)
}

func TestConvertArtistPictureFallback(t *testing.T) {
	va := VendorArtist{ID: 27, Name: "Daft Punk", Picture: "base.jpg", PictureXL: "xl.jpg", AlbumCount: 8, FanCount: 4351373}

	artist := ConvertArtist(va)
	assert.Equal(t, "27", artist.ID)
	assert.Equal(t, "xl.jpg", artist.Picture, "XL picture wins when present")
	assert.Equal(t, 8, artist.AlbumCount)
	assert.Equal(t, 4351373, artist.FanCount)

	va.PictureXL = ""
	assert.Equal(t, "base.jpg", ConvertArtist(va).Picture)
}

func TestConvertAlbumCoverFallback(t *testing.T) {
	va := VendorAlbum{ID: 302127, Title: "Discovery", Cover: "base.jpg", CoverBig: "big.jpg", CoverXL: "xl.jpg", ReleaseDate: "2001-03-07", RecordType: "album", TrackCount: 14}

	album := ConvertAlbum(va)
	assert.Equal(t, "302127", album.ID)
	assert.Equal(t, "xl.jpg", album.CoverURL)
	assert.Equal(t, "2001-03-07", album.ReleaseDate)

	va.CoverXL = ""
	assert.Equal(t, "big.jpg", ConvertAlbum(va).CoverURL)

	va.CoverBig = ""
	assert.Equal(t, "base.jpg", ConvertAlbum(va).CoverURL)
}

func TestConvertPlaylist(t *testing.T) {
	vp := VendorPlaylist{ID: 908622995, Title: "Chill Hits", Picture: "base.jpg", PictureBig: "big.jpg", TrackCount: 50, FanCount: 1200}
	vp.User.Name = "Deezer Editors"

	playlist := ConvertPlaylist(vp)
	assert.Equal(t, "908622995", playlist.ID)
	assert.Equal(t, "big.jpg", playlist.Picture, "big picture wins when present")
	assert.Equal(t, "Deezer Editors", playlist.Creator)
	assert.Equal(t, 50, playlist.TrackCount)

	vp.PictureBig = ""
	assert.Equal(t, "base.jpg", ConvertPlaylist(vp).Picture)
}
