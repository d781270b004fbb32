package admin

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginator_TotalPages(t *testing.T) {
	p := NewPaginator(10)

	cases := map[int]int{0: 1, 1: 1, 10: 1, 11: 2, 25: 3, 30: 3}
	for count, want := range cases {
		assert.Equal(t, want, p.TotalPages(count), "count=%d", count)
	}
}

func TestPaginator_Navigation(t *testing.T) {
	p := NewPaginator(10)

	assert.False(t, p.CanPrev(1))
	assert.True(t, p.CanPrev(2))
	assert.True(t, p.CanNext(1, 11))
	assert.False(t, p.CanNext(2, 11))
	assert.False(t, p.CanNext(1, 0))
}

func TestSlice(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}
	p := NewPaginator(2)

	assert.Equal(t, []int{1, 2}, Slice(items, 1, p))
	assert.Equal(t, []int{5}, Slice(items, 3, p))
	assert.Empty(t, Slice(items, 4, p))
	assert.Empty(t, Slice(items, 0, p))
	assert.Empty(t, Slice([]int(nil), 1, p))
}

func TestNewPaginator_DefaultSize(t *testing.T) {
	assert.Equal(t, DefaultPageSize, NewPaginator(0).Size)
	assert.Equal(t, DefaultPageSize, NewPaginator(-5).Size)
}
