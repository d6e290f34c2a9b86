// Package image models the keyword image search flow.
package image

import "strings"

// Item is one image hit. Both fields are non-empty.
type Item struct {
	imageURL    string
	description string
}

// NewItem trims both fields and creates an item. ok is false if either is empty.
func NewItem(imageURL, description string) (Item, bool) {
	imageURL = strings.TrimSpace(imageURL)
	description = strings.TrimSpace(description)
	if imageURL == "" || description == "" {
		return Item{}, false
	}
	return Item{imageURL: imageURL, description: description}, true
}

// ImageURL returns the image source.
func (i Item) ImageURL() string { return i.imageURL }

// Description returns the image title.
func (i Item) Description() string { return i.description }

// Result is the outcome of one keyword search.
type Result struct {
	Query   string
	Success bool
	Images  []Item
	Err     string
}

// Response aggregates keyword results in input order.
type Response struct {
	Success bool
	Results []Result
	Err     string
}
