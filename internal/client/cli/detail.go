package cli

import (
	"context"
	"strconv"

	"github.com/embario/jukeclient/internal/client/models"
)

// Genre shows one genre: genre <id>.
func (a *App) Genre(ctx context.Context, args []string) error {
	if len(args) != 1 {
		a.printf("Usage: genre <id>\n")
		return nil
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		a.printf("Usage: genre <id>\n")
		return nil
	}
	g, err := a.catalog.GenreDetail(ctx, id)
	if err != nil {
		return err
	}
	renderGenre(a.out, g)
	return nil
}

// Artist shows one artist: artist <id|spotify_id>. A numeric key is a catalog
// id, anything else a Spotify id.
func (a *App) Artist(ctx context.Context, args []string) error {
	if len(args) != 1 {
		a.printf("Usage: artist <id|spotify_id>\n")
		return nil
	}
	fetch := a.catalog.ArtistBySpotifyID
	if id, ok := catalogID(args[0]); ok {
		fetch = func(ctx context.Context, _ string) (models.Artist, error) {
			return a.catalog.ArtistDetail(ctx, id)
		}
	}
	ar, err := fetch(ctx, args[0])
	if err != nil {
		return err
	}
	renderArtist(a.out, ar)
	return nil
}

// Album shows one album: album <id|spotify_id>.
func (a *App) Album(ctx context.Context, args []string) error {
	if len(args) != 1 {
		a.printf("Usage: album <id|spotify_id>\n")
		return nil
	}
	fetch := a.catalog.AlbumBySpotifyID
	if id, ok := catalogID(args[0]); ok {
		fetch = func(ctx context.Context, _ string) (models.Album, error) {
			return a.catalog.AlbumDetail(ctx, id)
		}
	}
	al, err := fetch(ctx, args[0])
	if err != nil {
		return err
	}
	renderAlbum(a.out, al)
	return nil
}

func catalogID(key string) (int, bool) {
	id, err := strconv.Atoi(key)
	return id, err == nil && id > 0
}
