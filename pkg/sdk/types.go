package metasearch

// SearchType selects the upstream search vertical.
type SearchType string

// Search type constants.
const (
	General SearchType = "general"
	News    SearchType = "news"
	Images  SearchType = "images"
	Videos  SearchType = "videos"
	Science SearchType = "science"
)

// SearchResult is a single text search hit.
type SearchResult struct {
	URL         string
	Description string
}

// QueryResult is the outcome of one query.
type QueryResult struct {
	Query   string
	Success bool
	Results []SearchResult
	Err     string
}

// SearchResponse aggregates a batch of queries in input order.
// Success is true if any query succeeded.
type SearchResponse struct {
	Success    bool
	SearchType SearchType
	Results    []QueryResult
	Err        string
}

// ImageItem is a single image hit.
type ImageItem struct {
	ImageURL    string
	Description string
}

// ImageResult is the outcome of one keyword.
type ImageResult struct {
	Query   string
	Success bool
	Images  []ImageItem
	Err     string
}

// ImageResponse aggregates a batch of keywords in input order.
// Success is true only if every keyword succeeded.
type ImageResponse struct {
	Success bool
	Results []ImageResult
	Err     string
}
