package resolve_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/angelospk/mediasort/pkg/core/resolve"
)

func TestMovieLink(t *testing.T) {
	link := resolve.Movie(words("The Matrix"), 1999, nil)

	assert.Equal(t, "The Matrix", link.Title)
	assert.Equal(t, 1999, link.Year)
	assert.Empty(t, link.Franchise)
}

func TestMovieFranchiseFromRegistry(t *testing.T) {
	registry := []string{"The Matrix", "John Wick"}

	link := resolve.Movie(words("The Matrix Reloaded"), 2003, registry)
	assert.Equal(t, "The Matrix", link.Franchise)

	link = resolve.Movie(words("Heat"), 1995, registry)
	assert.Empty(t, link.Franchise)
}

func TestMatchFranchise(t *testing.T) {
	registry := []string{"  The Matrix  ", "", "john wick"}

	// Case-insensitive substring match; registry entries are trimmed.
	assert.Equal(t, "The Matrix", resolve.MatchFranchise("the matrix resurrections", registry))
	assert.Equal(t, "john wick", resolve.MatchFranchise("John Wick Chapter 4", registry))
	assert.Empty(t, resolve.MatchFranchise("Alien", registry))
	assert.Empty(t, resolve.MatchFranchise("Anything", nil))
}
