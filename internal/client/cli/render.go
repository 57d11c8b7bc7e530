package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/embario/jukeclient/internal/client/models"
)

func renderProfile(w io.Writer, p models.MusicProfile) {
	fmt.Fprintf(w, "%s (@%s)\n", p.Title(), p.Username)
	for _, f := range []struct{ label, value string }{
		{"Tagline", p.Tagline},
		{"Location", p.Location},
		{"Bio", p.Bio},
	} {
		if f.value != "" {
			fmt.Fprintf(w, "  %-9s %s\n", f.label+":", f.value)
		}
	}
	for _, f := range []struct {
		label  string
		values []string
	}{
		{"Genres", p.FavoriteGenres},
		{"Artists", p.FavoriteArtists},
		{"Albums", p.FavoriteAlbums},
		{"Tracks", p.FavoriteTracks},
	} {
		if len(f.values) > 0 {
			fmt.Fprintf(w, "  %-9s %s\n", f.label+":", strings.Join(f.values, ", "))
		}
	}
}

func renderPeople(w io.Writer, people []models.ProfileSummary) {
	if len(people) == 0 {
		fmt.Fprintln(w, "No people found.")
		return
	}
	for _, p := range people {
		line := "@" + p.Username
		if p.DisplayName != "" {
			line = p.DisplayName + " " + line
		}
		if p.Tagline != "" {
			line += " - " + p.Tagline
		}
		fmt.Fprintln(w, line)
	}
}

// renderCatalog numbers each section from 1 so results can be picked by
// "<kind> <n>".
func renderCatalog(w io.Writer, r models.CatalogResults) {
	if r.Empty() {
		fmt.Fprintln(w, "No results.")
		return
	}
	if len(r.Genres) > 0 {
		fmt.Fprintln(w, "Genres:")
		for i, g := range r.Genres {
			fmt.Fprintf(w, "  %d. %s\n", i+1, g.Name)
		}
	}
	if len(r.Artists) > 0 {
		fmt.Fprintln(w, "Artists:")
		for i, a := range r.Artists {
			fmt.Fprintf(w, "  %d. %s\n", i+1, a.Name)
		}
	}
	if len(r.Albums) > 0 {
		fmt.Fprintln(w, "Albums:")
		for i, a := range r.Albums {
			line := fmt.Sprintf("  %d. %s [%s]", i+1, a.Name, strings.ToLower(a.AlbumType))
			if a.ReleaseDate != "" {
				line += " " + a.ReleaseDate
			}
			fmt.Fprintln(w, line)
		}
	}
	if len(r.Tracks) > 0 {
		fmt.Fprintln(w, "Tracks:")
		for i, t := range r.Tracks {
			line := fmt.Sprintf("  %d. %s", i+1, t.Name)
			if t.ArtistName != "" {
				line += " - " + t.ArtistName
			}
			if t.DurationMS > 0 {
				line += " (" + formatDuration(t.DurationMS) + ")"
			}
			fmt.Fprintln(w, line)
		}
	}
}

func renderGenres(w io.Writer, genres []models.FeaturedGenre) {
	if len(genres) == 0 {
		fmt.Fprintln(w, "No featured genres.")
		return
	}
	for _, g := range genres {
		names := make([]string, 0, len(g.TopArtists))
		for _, a := range g.TopArtists {
			names = append(names, a.Name)
		}
		if len(names) == 0 {
			fmt.Fprintln(w, g.Name)
			continue
		}
		fmt.Fprintf(w, "%s: %s\n", g.Name, strings.Join(names, ", "))
	}
}

// formatDuration renders milliseconds as m:ss.
func formatDuration(ms int) string {
	d := time.Duration(ms) * time.Millisecond
	return fmt.Sprintf("%d:%02d", int(d.Minutes()), int(d.Seconds())%60)
}

func renderGenre(w io.Writer, g models.Genre) {
	fmt.Fprintln(w, g.Name)
	if g.SpotifyID != "" {
		fmt.Fprintf(w, "  %-9s %s\n", "Spotify:", g.SpotifyID)
	}
}

func renderArtist(w io.Writer, a models.Artist) {
	fmt.Fprintln(w, a.Name)
	if len(a.Genres) > 0 {
		fmt.Fprintf(w, "  %-9s %s\n", "Genres:", strings.Join(a.Genres, ", "))
	}
	if a.Followers > 0 {
		fmt.Fprintf(w, "  %-9s %d\n", "Followers:", a.Followers)
	}
	if a.SpotifyURI != "" {
		fmt.Fprintf(w, "  %-9s %s\n", "Spotify:", a.SpotifyURI)
	}
}

func renderAlbum(w io.Writer, a models.Album) {
	fmt.Fprintf(w, "%s [%s]\n", a.Name, strings.ToLower(a.AlbumType))
	if len(a.Artists) > 0 {
		fmt.Fprintf(w, "  %-9s %s\n", "Artists:", strings.Join(a.Artists, ", "))
	}
	if a.ReleaseDate != "" {
		fmt.Fprintf(w, "  %-9s %s\n", "Released:", a.ReleaseDate)
	}
	if a.TotalTracks > 0 {
		fmt.Fprintf(w, "  %-9s %d\n", "Tracks:", a.TotalTracks)
	}
}
