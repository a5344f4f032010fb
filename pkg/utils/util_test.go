package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContainsPattern(t *testing.T) {
	assert.Equal(t, "%Calc%", ContainsPattern("Calc"))
	assert.Equal(t, "%100!%!_done!!%", ContainsPattern("100%_done!"))
}

func TestParsePage(t *testing.T) {
	cases := []struct {
		page, perPage     string
		wantPage, wantPer int
	}{
		{"", "", 1, 10},
		{"3", "5", 3, 5},
		{"0", "-1", 1, 10},
		{"abc", "x", 1, 10},
		{"2", "1000", 2, 100},
		{"922337203685477582", "10", 922337203685477582, 10},
	}
	for _, tc := range cases {
		page, perPage := ParsePage(tc.page, tc.perPage)
		assert.Equal(t, tc.wantPage, page, "page %q", tc.page)
		assert.Equal(t, tc.wantPer, perPage, "per_page %q", tc.perPage)
	}
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 0, TotalPages(0, 10))
	assert.Equal(t, 1, TotalPages(1, 10))
	assert.Equal(t, 1, TotalPages(10, 10))
	assert.Equal(t, 2, TotalPages(11, 10))
	assert.Equal(t, 0, TotalPages(5, 0))
}

func TestOffset(t *testing.T) {
	assert.Equal(t, 0, Offset(1, 10))
	assert.Equal(t, 20, Offset(3, 10))
	assert.Equal(t, math.MaxInt, Offset(922337203685477582, 10))
	assert.Equal(t, math.MaxInt, Offset(math.MaxInt, 100))
}
