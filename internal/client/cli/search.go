package cli

import (
	"context"
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/embario/jukeclient/internal/client/client"
	"github.com/embario/jukeclient/internal/client/models"
)

// Search runs a combined catalog search. With a query it searches once and
// offers to open one result; without one it enters live mode.
func (a *App) Search(ctx context.Context, args []string) error {
	query := strings.TrimSpace(strings.Join(args, " "))
	if query == "" {
		return a.liveSearch(ctx)
	}

	res, latest, err := a.runSearch(ctx, query)
	if err != nil || !latest {
		return err
	}
	renderCatalog(a.out, res)
	if res.Empty() {
		return nil
	}

	choice, err := getSimpleText(a.reader, "Open a result (e.g. 'track 2'), Enter to skip", a.out)
	if err != nil || choice == "" {
		return nil
	}
	engaged, ok := pickResult(res, choice)
	if !ok {
		a.printf("No such result: %s\n", choice)
		return nil
	}
	a.printf("Opened %s %q.\n", engaged.ResourceType, engaged.ResourceName)
	a.catalog.RecordSearch(ctx, models.SearchHistory{
		SearchQuery:      query,
		EngagedResources: []models.EngagedResource{engaged},
	})
	return nil
}

// liveSearch treats every input line as the new query. Queries typed within
// the debounce window replace each other, and a response that arrives after
// a newer query was sent is dropped. The last pending query still runs after
// live mode ends.
func (a *App) liveSearch(ctx context.Context) error {
	a.printf("Live search: type a query, empty line to stop.\n")

	for {
		line, err := readLine(a.reader)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		if line == "" {
			return nil
		}
		a.debounce.Submit(ctx, line, func(ctx context.Context, q string) {
			res, latest, err := a.runSearch(ctx, q)
			switch {
			case !latest || ctx.Err() != nil:
			case err != nil:
				a.printf("%s\n", client.Message(err))
			default:
				a.printf("Results for %q:\n", q)
				renderCatalog(a.out, res)
			}
		})
	}
}

// runSearch reports whether the response still belongs to the newest query.
func (a *App) runSearch(ctx context.Context, query string) (models.CatalogResults, bool, error) {
	ticket := a.seq.Next()
	res, err := a.catalog.SearchAll(ctx, query)
	if !a.seq.IsLatest(ticket) {
		a.log.Debug(ctx, "dropping stale search response", "query", query)
		return models.CatalogResults{}, false, nil
	}
	return res, true, err
}

// pickResult resolves "<kind> <n>" against the numbered listing printed by
// renderCatalog.
func pickResult(res models.CatalogResults, choice string) (models.EngagedResource, bool) {
	parts := strings.Fields(strings.ToLower(choice))
	if len(parts) != 2 {
		return models.EngagedResource{}, false
	}
	n, err := strconv.Atoi(parts[1])
	if err != nil || n < 1 {
		return models.EngagedResource{}, false
	}
	i := n - 1

	switch strings.TrimSuffix(parts[0], "s") {
	case models.ResourceGenre:
		if i < len(res.Genres) {
			g := res.Genres[i]
			return models.EngagedResource{ResourceType: models.ResourceGenre, ResourceID: g.ID, ResourceName: g.Name}, true
		}
	case models.ResourceArtist:
		if i < len(res.Artists) {
			ar := res.Artists[i]
			return models.EngagedResource{ResourceType: models.ResourceArtist, ResourceID: ar.ID, ResourceName: ar.Name}, true
		}
	case models.ResourceAlbum:
		if i < len(res.Albums) {
			al := res.Albums[i]
			return models.EngagedResource{ResourceType: models.ResourceAlbum, ResourceID: al.ID, ResourceName: al.Name}, true
		}
	case models.ResourceTrack:
		if i < len(res.Tracks) {
			t := res.Tracks[i]
			return models.EngagedResource{ResourceType: models.ResourceTrack, ResourceID: t.ID, ResourceName: t.Name}, true
		}
	}
	return models.EngagedResource{}, false
}

func (a *App) Genres(ctx context.Context) error {
	genres, err := a.catalog.FeaturedGenres(ctx)
	if err != nil {
		return err
	}
	renderGenres(a.out, genres)
	return nil
}
