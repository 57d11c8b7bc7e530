package models

// Resource types accepted by the search history endpoint.
const (
	ResourceGenre  = "genre"
	ResourceArtist = "artist"
	ResourceAlbum  = "album"
	ResourceTrack  = "track"
)

// SearchHistory is the body of POST /api/v1/search-history/: what the user
// searched for and which results they opened.
type SearchHistory struct {
	SearchQuery      string            `json:"search_query"`
	EngagedResources []EngagedResource `json:"engaged_resources"`
}

type EngagedResource struct {
	ResourceType string `json:"resource_type"`
	ResourceID   int    `json:"resource_id"`
	ResourceName string `json:"resource_name"`
}
