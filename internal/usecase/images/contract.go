package images

import (
	"context"

	"github.com/kailas-cloud/metasearch/internal/domain/image"
)

// Searcher runs one keyword query against the image vertical.
type Searcher interface {
	SearchImages(ctx context.Context, keyword string) ([]image.Item, error)
}
