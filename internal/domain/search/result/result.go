package result

import "strings"

// Result is a single normalized search hit. Both fields are non-empty.
type Result struct {
	url         string
	description string
}

// New trims both fields and creates a result. ok is false if either is empty.
func New(url, description string) (Result, bool) {
	url = strings.TrimSpace(url)
	description = strings.TrimSpace(description)
	if url == "" || description == "" {
		return Result{}, false
	}
	return Result{url: url, description: description}, true
}

// URL returns the result location.
func (r Result) URL() string { return r.url }

// Description returns the result snippet or title.
func (r Result) Description() string { return r.description }

// Document renders the result as a rerank candidate document.
func (r Result) Document() string { return r.url + " - " + r.description }
