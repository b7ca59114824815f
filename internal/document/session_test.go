package document

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNavigationInvariant(t *testing.T) {
	// For every valid index: HasPrev == (i > 0), HasNext == (i < total-1).
	for _, total := range []int{1, 2, 5} {
		t.Run(fmt.Sprintf("%d pages", total), func(t *testing.T) {
			s := &Session{totalPages: total}
			for i := 0; i < total; i++ {
				s.page = i
				assert.Equal(t, i > 0, s.HasPrev(), "HasPrev at index %d", i)
				assert.Equal(t, i < total-1, s.HasNext(), "HasNext at index %d", i)
			}
		})
	}
}

func TestNavigationBoundaries(t *testing.T) {
	s := &Session{totalPages: 3}

	// Prev on the first page is a no-op.
	assert.False(t, s.Prev())
	assert.Equal(t, 0, s.PageIndex())

	assert.True(t, s.Next())
	assert.True(t, s.Next())
	assert.Equal(t, 2, s.PageIndex())

	// Next on the last page is a no-op.
	assert.False(t, s.Next())
	assert.Equal(t, 2, s.PageIndex())

	assert.True(t, s.Prev())
	assert.Equal(t, 1, s.PageIndex())
}

func TestNavigationNeverLeavesRange(t *testing.T) {
	s := &Session{totalPages: 2}
	for i := 0; i < 10; i++ {
		s.Next()
	}
	assert.Equal(t, 1, s.PageIndex())
	for i := 0; i < 10; i++ {
		s.Prev()
	}
	assert.Equal(t, 0, s.PageIndex())
}

func TestSinglePageDocument(t *testing.T) {
	s := &Session{totalPages: 1}
	assert.False(t, s.HasPrev())
	assert.False(t, s.HasNext())
	assert.False(t, s.Next())
	assert.False(t, s.Prev())
}

func TestGoto(t *testing.T) {
	s := &Session{totalPages: 5}

	assert.NoError(t, s.Goto(4))
	assert.Equal(t, 4, s.PageIndex())

	assert.Error(t, s.Goto(5))
	assert.Error(t, s.Goto(-1))
	assert.Equal(t, 4, s.PageIndex(), "failed Goto must not move the index")
}

func TestPageNumberIsOneBased(t *testing.T) {
	s := &Session{totalPages: 10, page: 4}
	assert.Equal(t, 4, s.PageIndex())
	assert.Equal(t, 5, s.PageNumber())
	assert.Equal(t, "Page: 5 / 10", s.Label())
}
