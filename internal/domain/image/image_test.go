package image

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewItem(t *testing.T) {
	it, ok := NewItem(" https://img/1.png ", " cat ")
	assert.True(t, ok)
	assert.Equal(t, "https://img/1.png", it.ImageURL())
	assert.Equal(t, "cat", it.Description())

	_, ok = NewItem("https://img/1.png", "  ")
	assert.False(t, ok)
	_, ok = NewItem("", "cat")
	assert.False(t, ok)
}
