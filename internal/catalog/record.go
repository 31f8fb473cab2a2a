package catalog

// Source identifies where a loaded deck came from.
type Source string

// Deck sources.
const (
	SourceAPI      Source = "api"
	SourceCache    Source = "cache"
	SourceFallback Source = "fallback"
)

// Thumbnail is a provider image reference split into path and extension.
type Thumbnail struct {
	Path      string
	Extension string
}

// Record is a character as returned by the catalog provider, before
// filtering and enrichment.
type Record struct {
	ID          int64
	Name        string
	Description string
	Thumbnail   Thumbnail
}
