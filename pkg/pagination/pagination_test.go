package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeDefaults(t *testing.T) {
	p := Normalize(0, 0, 20, 100)
	assert.Equal(t, int64(1), p.Page)
	assert.Equal(t, int64(20), p.Limit)

	p = Normalize(-3, -1, 50, 100)
	assert.Equal(t, int64(1), p.Page)
	assert.Equal(t, int64(50), p.Limit)
}

func TestNormalizeCapsLimit(t *testing.T) {
	p := Normalize(2, 500, 20, 100)
	assert.Equal(t, int64(2), p.Page)
	assert.Equal(t, int64(100), p.Limit)
}

func TestOffset(t *testing.T) {
	assert.Equal(t, int64(0), Normalize(1, 20, 20, 100).Offset())
	assert.Equal(t, int64(40), Normalize(3, 20, 20, 100).Offset())
}

func TestMetaPagesIsCeil(t *testing.T) {
	cases := []struct {
		total, limit, pages int64
	}{
		{0, 20, 0},
		{1, 20, 1},
		{20, 20, 1},
		{21, 20, 2},
		{100, 7, 15},
		{99, 50, 2},
	}
	for _, tc := range cases {
		m := NewMeta(Params{Page: 1, Limit: tc.limit}, tc.total)
		assert.Equalf(t, tc.pages, m.Pages, "total=%d limit=%d", tc.total, tc.limit)
		assert.Equal(t, tc.total, m.Total)
	}
}

// Concatenating every page must cover exactly total items with no overlap,
// given the offset/limit windows Normalize produces.
func TestPageWindowsPartitionTotal(t *testing.T) {
	const total, limit = 53, 10
	m := NewMeta(Params{Page: 1, Limit: limit}, total)

	seen := int64(0)
	for page := int64(1); page <= m.Pages; page++ {
		p := Normalize(page, limit, limit, 100)
		start := p.Offset()
		end := start + p.Limit
		if end > total {
			end = total
		}
		assert.Equal(t, seen, start, "window start must follow previous end")
		seen = end
	}
	assert.Equal(t, int64(total), seen)
}
