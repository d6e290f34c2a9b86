package searxng

import (
	"strings"

	"github.com/kailas-cloud/metasearch/internal/domain/category"
	"github.com/kailas-cloud/metasearch/internal/domain/image"
	"github.com/kailas-cloud/metasearch/internal/domain/search/result"
)

// mapItem converts a raw upstream item into a result. Items missing a url or
// description after trimming are dropped (ok=false); that is not an error.
func mapItem(c category.Category, item rawItem) (result.Result, bool) {
	if c.IsImage() {
		return mapImageItem(item)
	}
	return mapTextItem(item)
}

func mapTextItem(item rawItem) (result.Result, bool) {
	url, ok := normalize(item.URL)
	if !ok {
		return result.Result{}, false
	}
	desc, ok := firstPresent(item.Content, item.Title)
	if !ok {
		return result.Result{}, false
	}
	return result.New(url, desc)
}

func mapImageItem(item rawItem) (result.Result, bool) {
	url, ok := normalize(item.ImgSrc)
	if !ok {
		return result.Result{}, false
	}
	desc, ok := firstPresent(item.Title, item.Content)
	if !ok {
		return result.Result{}, false
	}
	return result.New(url, desc)
}

// mapImageSearchItem maps an item of the keyword image flow, which only
// accepts the title as description.
func mapImageSearchItem(item rawItem) (image.Item, bool) {
	src, ok := normalize(item.ImgSrc)
	if !ok {
		return image.Item{}, false
	}
	title, ok := normalize(item.Title)
	if !ok {
		return image.Item{}, false
	}
	return image.NewItem(src, title)
}

func firstPresent(values ...*string) (string, bool) {
	for _, v := range values {
		if s, ok := normalize(v); ok {
			return s, true
		}
	}
	return "", false
}

// normalize trims whitespace; nil and blank values are absent.
func normalize(v *string) (string, bool) {
	if v == nil {
		return "", false
	}
	s := strings.TrimSpace(*v)
	if s == "" {
		return "", false
	}
	return s, true
}
