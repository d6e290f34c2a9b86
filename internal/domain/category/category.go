package category

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/metasearch/internal/domain"
)

// Category selects the upstream search vertical.
type Category string

// Supported categories.
const (
	General Category = "general"
	News    Category = "news"
	Images  Category = "images"
	Videos  Category = "videos"
	Science Category = "science"
)

// All lists the categories in declaration order.
var All = []Category{General, News, Images, Videos, Science}

// Parse resolves a search_type value. An empty value means General.
func Parse(s string) (Category, error) {
	if strings.TrimSpace(s) == "" {
		return General, nil
	}
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if !c.IsValid() {
		return "", fmt.Errorf("%w: %q", domain.ErrUnsupportedSearchType, s)
	}
	return c, nil
}

// IsValid checks if the category is one of the supported values.
func (c Category) IsValid() bool {
	switch c {
	case General, News, Images, Videos, Science:
		return true
	}
	return false
}

// Filter returns the upstream categories parameter. General searches are unfiltered.
func (c Category) Filter() (string, bool) {
	if c == General || c == "" {
		return "", false
	}
	return string(c), true
}

// Label is the name used in responses and rerank prompts.
func (c Category) Label() string {
	if c == "" {
		return string(General)
	}
	return string(c)
}

// IsImage reports whether results come from the image vertical.
func (c Category) IsImage() bool { return c == Images }
