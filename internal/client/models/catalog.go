package models

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// SpotifyData is the subset of the upstream Spotify payload the client reads.
type SpotifyData struct {
	Images     []string `json:"images,omitempty"`
	Followers  int      `json:"followers,omitempty"`
	Popularity int      `json:"popularity,omitempty"`
	URI        string   `json:"uri,omitempty"`
	SpotifyID  string   `json:"spotify_id,omitempty"`
	PreviewURL string   `json:"preview_url,omitempty"`
}

func (d *SpotifyData) firstImage() string {
	if d == nil || len(d.Images) == 0 {
		return ""
	}
	return d.Images[0]
}

func (d *SpotifyData) uri() string {
	if d == nil {
		return ""
	}
	return d.URI
}

// ArtistDTO is an artist as served by /api/v1/artists/. Inside album
// payloads an artist may also arrive as a bare name or a bare id.
type ArtistDTO struct {
	ID          int          `json:"id,omitempty"`
	PK          int          `json:"pk,omitempty"`
	Name        string       `json:"name,omitempty"`
	SpotifyID   string       `json:"spotify_id,omitempty"`
	SpotifyData *SpotifyData `json:"spotify_data,omitempty"`
	Genres      []GenreDTO   `json:"genres,omitempty"`
}

func (a *ArtistDTO) UnmarshalJSON(b []byte) error {
	type plain ArtistDTO
	switch ref, kind := scalarRef(b); kind {
	case refNull:
		return nil
	case refNumber:
		a.ID = ref.id
		return nil
	case refString:
		a.Name = ref.name
		return nil
	}
	return json.Unmarshal(b, (*plain)(a))
}

// AlbumDTO is an album as served by /api/v1/albums/. Inside track payloads
// an album may also arrive as a bare id, a bare URL or null.
type AlbumDTO struct {
	ID          int          `json:"id,omitempty"`
	Name        string       `json:"name,omitempty"`
	AlbumType   string       `json:"album_type,omitempty"`
	ReleaseDate string       `json:"release_date,omitempty"`
	TotalTracks int          `json:"total_tracks,omitempty"`
	SpotifyID   string       `json:"spotify_id,omitempty"`
	SpotifyData *SpotifyData `json:"spotify_data,omitempty"`
	Artists     []ArtistDTO  `json:"artists,omitempty"`
}

func (a *AlbumDTO) UnmarshalJSON(b []byte) error {
	type plain AlbumDTO
	switch ref, kind := scalarRef(b); kind {
	case refNull, refString:
		return nil
	case refNumber:
		a.ID = ref.id
		return nil
	}
	return json.Unmarshal(b, (*plain)(a))
}

type TrackDTO struct {
	ID          int          `json:"id,omitempty"`
	Name        string       `json:"name,omitempty"`
	DurationMS  int          `json:"duration_ms,omitempty"`
	TrackNumber int          `json:"track_number,omitempty"`
	Explicit    bool         `json:"explicit,omitempty"`
	SpotifyID   string       `json:"spotify_id,omitempty"`
	SpotifyData *SpotifyData `json:"spotify_data,omitempty"`
	Album       *AlbumDTO    `json:"album,omitempty"`
}

// GenreDTO is a genre as served by /api/v1/genres/. Inside artist payloads
// a genre may also arrive as a bare name.
type GenreDTO struct {
	ID          int          `json:"id,omitempty"`
	Name        string       `json:"name,omitempty"`
	SpotifyID   string       `json:"spotify_id,omitempty"`
	SpotifyData *SpotifyData `json:"spotify_data,omitempty"`
}

func (g *GenreDTO) UnmarshalJSON(b []byte) error {
	type plain GenreDTO
	switch ref, kind := scalarRef(b); kind {
	case refNull:
		return nil
	case refNumber:
		g.ID = ref.id
		return nil
	case refString:
		g.Name = ref.name
		return nil
	}
	return json.Unmarshal(b, (*plain)(g))
}

type FeaturedArtistDTO struct {
	ID       string `json:"id,omitempty"`
	Name     string `json:"name,omitempty"`
	ImageURL string `json:"image_url,omitempty"`
}

type FeaturedGenreDTO struct {
	ID         string              `json:"id,omitempty"`
	Name       string              `json:"name,omitempty"`
	SpotifyID  string              `json:"spotify_id,omitempty"`
	TopArtists []FeaturedArtistDTO `json:"top_artists,omitempty"`
}

// Page is the {results: [...]} envelope of list endpoints.
type Page[T any] struct {
	Results []T `json:"results"`
}

type Artist struct {
	ID         int
	Name       string
	ImageURL   string
	Followers  int
	Popularity int
	SpotifyURI string
	Genres     []string
}

type Album struct {
	ID          int
	Name        string
	AlbumType   string
	ReleaseDate string
	TotalTracks int
	ImageURL    string
	SpotifyURI  string
	Artists     []string
}

type Track struct {
	ID          int
	Name        string
	DurationMS  int
	TrackNumber int
	Explicit    bool
	SpotifyURI  string
	SpotifyID   string
	PreviewURL  string
	AlbumName   string
	ArtistName  string
}

type Genre struct {
	ID        int
	Name      string
	SpotifyID string
}

type FeaturedArtist struct {
	ID       string
	Name     string
	ImageURL string
}

type FeaturedGenre struct {
	ID         string
	Name       string
	SpotifyID  string
	TopArtists []FeaturedArtist
}

// CatalogResults groups the per-resource results of a combined search.
type CatalogResults struct {
	Genres  []Genre
	Albums  []Album
	Artists []Artist
	Tracks  []Track
}

// Empty reports whether no resource matched.
func (r CatalogResults) Empty() bool {
	return len(r.Genres)+len(r.Albums)+len(r.Artists)+len(r.Tracks) == 0
}

func (d ArtistDTO) ToDomain() Artist {
	id := d.ID
	if id == 0 {
		id = d.PK
	}
	a := Artist{
		ID:         id,
		Name:       d.Name,
		ImageURL:   d.SpotifyData.firstImage(),
		SpotifyURI: d.SpotifyData.uri(),
	}
	if d.SpotifyData != nil {
		a.Followers = d.SpotifyData.Followers
		a.Popularity = d.SpotifyData.Popularity
	}
	for _, g := range d.Genres {
		if g.Name != "" {
			a.Genres = append(a.Genres, g.Name)
		}
	}
	return a
}

func (d AlbumDTO) ToDomain() Album {
	albumType := d.AlbumType
	if albumType == "" {
		albumType = "ALBUM"
	}
	a := Album{
		ID:          d.ID,
		Name:        d.Name,
		AlbumType:   albumType,
		ReleaseDate: d.ReleaseDate,
		TotalTracks: d.TotalTracks,
		ImageURL:    d.SpotifyData.firstImage(),
		SpotifyURI:  d.SpotifyData.uri(),
	}
	for _, ar := range d.Artists {
		if ar.Name != "" {
			a.Artists = append(a.Artists, ar.Name)
		}
	}
	return a
}

func (d TrackDTO) ToDomain() Track {
	t := Track{
		ID:          d.ID,
		Name:        d.Name,
		DurationMS:  d.DurationMS,
		TrackNumber: d.TrackNumber,
		Explicit:    d.Explicit,
		SpotifyURI:  d.SpotifyData.uri(),
		SpotifyID:   d.SpotifyID,
	}
	if d.SpotifyData != nil {
		if d.SpotifyData.SpotifyID != "" {
			t.SpotifyID = d.SpotifyData.SpotifyID
		}
		t.PreviewURL = d.SpotifyData.PreviewURL
	}
	if d.Album != nil {
		t.AlbumName = d.Album.Name
		if len(d.Album.Artists) > 0 {
			t.ArtistName = d.Album.Artists[0].Name
		}
	}
	return t
}

func (d GenreDTO) ToDomain() Genre {
	return Genre{ID: d.ID, Name: d.Name, SpotifyID: d.SpotifyID}
}

func (d FeaturedGenreDTO) ToDomain() FeaturedGenre {
	g := FeaturedGenre{
		ID:         d.ID,
		Name:       d.Name,
		SpotifyID:  d.SpotifyID,
		TopArtists: make([]FeaturedArtist, 0, len(d.TopArtists)),
	}
	for _, a := range d.TopArtists {
		g.TopArtists = append(g.TopArtists, FeaturedArtist(a))
	}
	return g
}

// MapSlice converts a slice of wire values with fn.
func MapSlice[T, U any](in []T, fn func(T) U) []U {
	out := make([]U, 0, len(in))
	for _, v := range in {
		out = append(out, fn(v))
	}
	return out
}

type refKind int

const (
	refObject refKind = iota
	refNull
	refNumber
	refString
)

type ref struct {
	id   int
	name string
}

// scalarRef classifies a JSON value that may stand in for a nested object.
func scalarRef(b []byte) (ref, refKind) {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return ref{}, refNull
	}
	switch b[0] {
	case '"':
		var s string
		if err := json.Unmarshal(b, &s); err == nil {
			return ref{name: s}, refString
		}
	case '{', '[':
		return ref{}, refObject
	default:
		if n, err := strconv.Atoi(string(b)); err == nil {
			return ref{id: n}, refNumber
		}
	}
	return ref{}, refObject
}
