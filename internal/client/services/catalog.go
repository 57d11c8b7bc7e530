package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/embario/jukeclient/internal/client/client"
	"github.com/embario/jukeclient/internal/client/models"
	"github.com/embario/jukeclient/internal/logging"
)

const (
	pathArtists        = "/api/v1/artists/"
	pathAlbums         = "/api/v1/albums/"
	pathTracks         = "/api/v1/tracks/"
	pathGenres         = "/api/v1/genres/"
	pathFeaturedGenres = "/api/v1/genres/featured/"
	pathSearchHistory  = "/api/v1/search-history/"

	MsgCatalogUnavailable = "Unable to fetch catalog resources."
	MsgSpotifyIDRequired  = "Spotify id is required."
)

// ErrCatalogUnavailable is matched by the SearchAll error when every
// resource fetch failed. The individual failures are joined to it.
var ErrCatalogUnavailable = errors.New(MsgCatalogUnavailable)

type CatalogService interface {
	SearchArtists(ctx context.Context, query string) ([]models.Artist, error)
	SearchAlbums(ctx context.Context, query string) ([]models.Album, error)
	SearchTracks(ctx context.Context, query string) ([]models.Track, error)
	FeaturedGenres(ctx context.Context) ([]models.FeaturedGenre, error)
	GenreDetail(ctx context.Context, id int) (models.Genre, error)
	ArtistDetail(ctx context.Context, id int) (models.Artist, error)
	AlbumDetail(ctx context.Context, id int) (models.Album, error)
	// ArtistBySpotifyID and AlbumBySpotifyID let the server import a
	// resource it has not seen yet.
	ArtistBySpotifyID(ctx context.Context, spotifyID string) (models.Artist, error)
	AlbumBySpotifyID(ctx context.Context, spotifyID string) (models.Album, error)
	// SearchAll queries genres, albums, artists and tracks at once. A failed
	// resource yields an empty list unless all of them failed.
	SearchAll(ctx context.Context, query string) (models.CatalogResults, error)
	// RecordSearch stores what was searched and engaged with. It is best
	// effort: failures are logged, never returned.
	RecordSearch(ctx context.Context, h models.SearchHistory)
}

type catalogService struct {
	exec   client.Executor
	tokens TokenSource
	log    logging.Logger
}

func NewCatalogService(exec client.Executor, tokens TokenSource, log logging.Logger) CatalogService {
	if log == nil {
		log = logging.Nop()
	}
	return &catalogService{exec: exec, tokens: tokens, log: log.With("component", "catalog")}
}

// externalSearch is the query of the catalog search endpoints.
func externalSearch(q string) map[string]string {
	return map[string]string{"q": q, "external": "true"}
}

func (c *catalogService) get(ctx context.Context, path string, query map[string]string, out any) error {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return err
	}
	return c.exec.Execute(ctx, client.Request{
		Method: http.MethodGet,
		Path:   path,
		Query:  query,
		Token:  token,
	}, out)
}

func searchPage[D, T any](ctx context.Context, c *catalogService, path string, query map[string]string, conv func(D) T) ([]T, error) {
	var page models.Page[D]
	if err := c.get(ctx, path, query, &page); err != nil {
		return nil, err
	}
	return models.MapSlice(page.Results, conv), nil
}

func (c *catalogService) SearchArtists(ctx context.Context, query string) ([]models.Artist, error) {
	res, err := searchPage(ctx, c, pathArtists, externalSearch(query), models.ArtistDTO.ToDomain)
	if err != nil {
		return nil, fmt.Errorf("search artists: %w", err)
	}
	return res, nil
}

func (c *catalogService) SearchAlbums(ctx context.Context, query string) ([]models.Album, error) {
	res, err := searchPage(ctx, c, pathAlbums, externalSearch(query), models.AlbumDTO.ToDomain)
	if err != nil {
		return nil, fmt.Errorf("search albums: %w", err)
	}
	return res, nil
}

func (c *catalogService) SearchTracks(ctx context.Context, query string) ([]models.Track, error) {
	res, err := searchPage(ctx, c, pathTracks, externalSearch(query), models.TrackDTO.ToDomain)
	if err != nil {
		return nil, fmt.Errorf("search tracks: %w", err)
	}
	return res, nil
}

func (c *catalogService) FeaturedGenres(ctx context.Context) ([]models.FeaturedGenre, error) {
	var dtos []models.FeaturedGenreDTO
	if err := c.get(ctx, pathFeaturedGenres, nil, &dtos); err != nil {
		return nil, fmt.Errorf("featured genres: %w", err)
	}
	return models.MapSlice(dtos, models.FeaturedGenreDTO.ToDomain), nil
}

// detailPath is the path of a single resource under a list path.
func detailPath(list, key string) string {
	return list + url.PathEscape(key) + "/"
}

func detail[D, T any](ctx context.Context, c *catalogService, path string, query map[string]string, conv func(D) T) (T, error) {
	var dto D
	if err := c.get(ctx, path, query, &dto); err != nil {
		var zero T
		return zero, err
	}
	return conv(dto), nil
}

func (c *catalogService) GenreDetail(ctx context.Context, id int) (models.Genre, error) {
	g, err := detail(ctx, c, detailPath(pathGenres, strconv.Itoa(id)), nil, models.GenreDTO.ToDomain)
	if err != nil {
		return models.Genre{}, fmt.Errorf("genre %d: %w", id, err)
	}
	return g, nil
}

func (c *catalogService) ArtistDetail(ctx context.Context, id int) (models.Artist, error) {
	a, err := detail(ctx, c, detailPath(pathArtists, strconv.Itoa(id)), nil, models.ArtistDTO.ToDomain)
	if err != nil {
		return models.Artist{}, fmt.Errorf("artist %d: %w", id, err)
	}
	return a, nil
}

func (c *catalogService) AlbumDetail(ctx context.Context, id int) (models.Album, error) {
	a, err := detail(ctx, c, detailPath(pathAlbums, strconv.Itoa(id)), nil, models.AlbumDTO.ToDomain)
	if err != nil {
		return models.Album{}, fmt.Errorf("album %d: %w", id, err)
	}
	return a, nil
}

// externalLookup is the query of a lookup by Spotify id.
func externalLookup() map[string]string {
	return map[string]string{"external": "true"}
}

func (c *catalogService) ArtistBySpotifyID(ctx context.Context, spotifyID string) (models.Artist, error) {
	spotifyID = strings.TrimSpace(spotifyID)
	if spotifyID == "" {
		return models.Artist{}, &client.ValidationError{Message: MsgSpotifyIDRequired}
	}
	a, err := detail(ctx, c, detailPath(pathArtists, spotifyID), externalLookup(), models.ArtistDTO.ToDomain)
	if err != nil {
		return models.Artist{}, fmt.Errorf("artist %s: %w", spotifyID, err)
	}
	return a, nil
}

func (c *catalogService) AlbumBySpotifyID(ctx context.Context, spotifyID string) (models.Album, error) {
	spotifyID = strings.TrimSpace(spotifyID)
	if spotifyID == "" {
		return models.Album{}, &client.ValidationError{Message: MsgSpotifyIDRequired}
	}
	a, err := detail(ctx, c, detailPath(pathAlbums, spotifyID), externalLookup(), models.AlbumDTO.ToDomain)
	if err != nil {
		return models.Album{}, fmt.Errorf("album %s: %w", spotifyID, err)
	}
	return a, nil
}

func (c *catalogService) SearchAll(ctx context.Context, query string) (models.CatalogResults, error) {
	query = strings.TrimSpace(query)

	// Without a session nothing is fetched.
	if _, err := c.tokens.Token(ctx); err != nil {
		return models.CatalogResults{}, err
	}

	var search map[string]string
	if query != "" {
		search = map[string]string{"search": query, "q": query, "external": "true"}
	}

	var (
		res  models.CatalogResults
		errs [4]error
	)

	// Each goroutine writes only its own field and error slot; failures
	// are collected instead of cancelling the group.
	var g errgroup.Group
	g.Go(func() error {
		genres, err := searchPage(ctx, c, pathGenres, nil, models.GenreDTO.ToDomain)
		res.Genres, errs[0] = filterGenres(genres, query), err
		return nil
	})
	g.Go(func() error {
		res.Albums, errs[1] = searchPage(ctx, c, pathAlbums, search, models.AlbumDTO.ToDomain)
		return nil
	})
	g.Go(func() error {
		res.Artists, errs[2] = searchPage(ctx, c, pathArtists, search, models.ArtistDTO.ToDomain)
		return nil
	})
	g.Go(func() error {
		res.Tracks, errs[3] = searchPage(ctx, c, pathTracks, search, models.TrackDTO.ToDomain)
		return nil
	})
	_ = g.Wait()

	failed := 0
	for _, err := range errs {
		if err != nil {
			failed++
		}
	}
	if failed == len(errs) {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return models.CatalogResults{}, ctxErr
		}
		return models.CatalogResults{}, &client.UnexpectedError{
			Message: MsgCatalogUnavailable,
			Err:     errors.Join(append([]error{ErrCatalogUnavailable}, errs[:]...)...),
		}
	}
	if failed > 0 {
		c.log.Warn(ctx, "partial catalog search", "query", query, "failed", failed, "error", errors.Join(errs[:]...))
	}

	res.Genres = nonNilSlice(res.Genres)
	res.Albums = nonNilSlice(res.Albums)
	res.Artists = nonNilSlice(res.Artists)
	res.Tracks = nonNilSlice(res.Tracks)
	return res, nil
}

func (c *catalogService) RecordSearch(ctx context.Context, h models.SearchHistory) {
	h.SearchQuery = strings.TrimSpace(h.SearchQuery)
	if h.SearchQuery == "" || len(h.EngagedResources) == 0 {
		return
	}

	token, err := c.tokens.Token(ctx)
	if err != nil {
		c.log.Debug(ctx, "search history skipped", "error", err)
		return
	}

	err = c.exec.Execute(ctx, client.Request{
		Method: http.MethodPost,
		Path:   pathSearchHistory,
		Body:   h,
		Token:  token,
	}, nil)
	if err != nil {
		c.log.Warn(ctx, "recording search history failed", "error", err)
	}
}

// filterGenres keeps genres whose name contains query, ignoring case.
func filterGenres(genres []models.Genre, query string) []models.Genre {
	if query == "" || genres == nil {
		return genres
	}
	target := strings.ToLower(query)
	out := make([]models.Genre, 0, len(genres))
	for _, g := range genres {
		if strings.Contains(strings.ToLower(strings.TrimSpace(g.Name)), target) {
			out = append(out, g)
		}
	}
	return out
}

func nonNilSlice[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
