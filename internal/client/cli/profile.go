package cli

import (
	"context"
	"strings"

	"github.com/embario/jukeclient/internal/client/models"
)

func (a *App) Me(ctx context.Context) error {
	p, err := a.profiles.Me(ctx)
	if err != nil {
		return err
	}
	renderProfile(a.out, p)
	if p.OnboardingCompletedAt == "" {
		a.printf("Onboarding is not finished yet. Use 'edit' to fill in your profile.\n")
	}
	return nil
}

// Profile shows another user's profile: profile <username>.
func (a *App) Profile(ctx context.Context, args []string) error {
	if len(args) == 0 {
		a.printf("Usage: profile <username>\n")
		return nil
	}
	p, err := a.profiles.Get(ctx, args[0])
	if err != nil {
		return err
	}
	renderProfile(a.out, p)
	return nil
}

// People searches profiles by name: people <query>.
func (a *App) People(ctx context.Context, args []string) error {
	query := strings.Join(args, " ")
	if strings.TrimSpace(query) == "" {
		a.printf("Usage: people <query>\n")
		return nil
	}
	found, err := a.profiles.Search(ctx, query)
	if err != nil {
		return err
	}
	renderPeople(a.out, found)
	return nil
}

// Edit prompts for each editable field; an empty answer keeps the current
// value.
func (a *App) Edit(ctx context.Context) error {
	var u models.ProfileUpdate

	for _, f := range []struct {
		prompt string
		dst    **string
	}{
		{"Display name", &u.DisplayName},
		{"Tagline", &u.Tagline},
		{"Location", &u.Location},
	} {
		v, err := getSimpleText(a.reader, f.prompt+" (Enter to keep)", a.out)
		if err != nil {
			return err
		}
		if v != "" {
			*f.dst = &v
		}
	}

	bio, err := getMultiline(a.reader, "Bio (Enter to keep)", a.out)
	if err != nil {
		return err
	}
	if bio != "" {
		u.Bio = &bio
	}

	for _, f := range []struct {
		prompt string
		dst    **[]string
	}{
		{"Favorite genres", &u.FavoriteGenres},
		{"Favorite artists", &u.FavoriteArtists},
	} {
		items, err := getList(a.reader, f.prompt+" (empty keeps current)", a.out)
		if err != nil {
			return err
		}
		if len(items) > 0 {
			*f.dst = &items
		}
	}

	if u.IsEmpty() {
		a.printf("Nothing to update.\n")
		return nil
	}
	if err := a.profiles.Update(ctx, u); err != nil {
		return err
	}
	a.printf("Profile updated.\n")
	return nil
}
