package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageCount(t *testing.T) {
	cases := []struct {
		total int64
		limit int
		want  int64
	}{
		{0, 10, 1}, // empty sets still report one page
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{25, 10, 3},
		{100, 1, 100},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, pageCount(tc.total, tc.limit),
			"total=%d limit=%d", tc.total, tc.limit)
	}
}
