package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategorySet(t *testing.T) {
	var s CategorySet
	assert.True(t, s.Empty())

	s = s.With(Security).With(Stability)
	assert.False(t, s.Empty())
	assert.True(t, s.Has(Security))
	assert.True(t, s.Has(Stability))
	assert.False(t, s.Has(Availability))
	assert.False(t, s.Has(Performance))

	// Unknown categories are never members, not even of the full set.
	assert.False(t, AllCategories.Has("Compliance"))
	assert.False(t, AllCategories.Has("security"))
	assert.Equal(t, s, s.With("Compliance"))
}

func TestCategoryKnown(t *testing.T) {
	for _, c := range []Category{Security, Performance, Stability, Availability} {
		assert.True(t, c.Known(), c)
		assert.True(t, AllCategories.Has(c), c)
	}
	assert.False(t, Category("").Known())
	assert.False(t, Category("SECURITY").Known())
}
