package models

// MusicProfileDTO is the wire shape of /api/v1/music-profiles/{me,<username>}/.
type MusicProfileDTO struct {
	ID                    int      `json:"id,omitempty"`
	Username              string   `json:"username,omitempty"`
	Name                  string   `json:"name,omitempty"`
	DisplayName           string   `json:"display_name,omitempty"`
	Tagline               string   `json:"tagline,omitempty"`
	Bio                   string   `json:"bio,omitempty"`
	Location              string   `json:"location,omitempty"`
	AvatarURL             string   `json:"avatar_url,omitempty"`
	FavoriteGenres        []string `json:"favorite_genres,omitempty"`
	FavoriteArtists       []string `json:"favorite_artists,omitempty"`
	FavoriteAlbums        []string `json:"favorite_albums,omitempty"`
	FavoriteTracks        []string `json:"favorite_tracks,omitempty"`
	CreatedAt             string   `json:"created_at,omitempty"`
	ModifiedAt            string   `json:"modified_at,omitempty"`
	IsOwner               bool     `json:"is_owner,omitempty"`
	OnboardingCompletedAt *string  `json:"onboarding_completed_at,omitempty"`
}

// ProfileSearchEntryDTO is one row of /api/v1/music-profiles/search/.
type ProfileSearchEntryDTO struct {
	Username    string `json:"username"`
	DisplayName string `json:"display_name,omitempty"`
	Tagline     string `json:"tagline,omitempty"`
	AvatarURL   string `json:"avatar_url,omitempty"`
}

type MusicProfile struct {
	ID              int
	Username        string
	Name            string
	DisplayName     string
	Tagline         string
	Bio             string
	Location        string
	AvatarURL       string
	FavoriteGenres  []string
	FavoriteArtists []string
	FavoriteAlbums  []string
	FavoriteTracks  []string
	CreatedAt       string
	ModifiedAt      string
	IsOwner         bool
	// OnboardingCompletedAt is empty until onboarding is finished.
	OnboardingCompletedAt string
}

// Title is the name shown for the profile: display name, then name, then
// username.
func (p MusicProfile) Title() string {
	switch {
	case p.DisplayName != "":
		return p.DisplayName
	case p.Name != "":
		return p.Name
	default:
		return p.Username
	}
}

type ProfileSummary struct {
	Username    string
	DisplayName string
	Tagline     string
	AvatarURL   string
}

// ProfileUpdate is a partial update sent with PATCH. Nil fields are left
// unchanged on the server.
type ProfileUpdate struct {
	DisplayName     *string   `json:"display_name,omitempty"`
	Tagline         *string   `json:"tagline,omitempty"`
	Bio             *string   `json:"bio,omitempty"`
	Location        *string   `json:"location,omitempty"`
	AvatarURL       *string   `json:"avatar_url,omitempty"`
	FavoriteGenres  *[]string `json:"favorite_genres,omitempty"`
	FavoriteArtists *[]string `json:"favorite_artists,omitempty"`
	FavoriteAlbums  *[]string `json:"favorite_albums,omitempty"`
	FavoriteTracks  *[]string `json:"favorite_tracks,omitempty"`
}

// IsEmpty reports whether the update changes nothing.
func (u ProfileUpdate) IsEmpty() bool {
	return u.DisplayName == nil && u.Tagline == nil && u.Bio == nil &&
		u.Location == nil && u.AvatarURL == nil && u.FavoriteGenres == nil &&
		u.FavoriteArtists == nil && u.FavoriteAlbums == nil && u.FavoriteTracks == nil
}

func (d MusicProfileDTO) ToDomain() MusicProfile {
	p := MusicProfile{
		ID:              d.ID,
		Username:        d.Username,
		Name:            d.Name,
		DisplayName:     d.DisplayName,
		Tagline:         d.Tagline,
		Bio:             d.Bio,
		Location:        d.Location,
		AvatarURL:       d.AvatarURL,
		FavoriteGenres:  nonNil(d.FavoriteGenres),
		FavoriteArtists: nonNil(d.FavoriteArtists),
		FavoriteAlbums:  nonNil(d.FavoriteAlbums),
		FavoriteTracks:  nonNil(d.FavoriteTracks),
		CreatedAt:       d.CreatedAt,
		ModifiedAt:      d.ModifiedAt,
		IsOwner:         d.IsOwner,
	}
	if d.OnboardingCompletedAt != nil {
		p.OnboardingCompletedAt = *d.OnboardingCompletedAt
	}
	return p
}

func (d ProfileSearchEntryDTO) ToSummary() ProfileSummary {
	return ProfileSummary(d)
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
