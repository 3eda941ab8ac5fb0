package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPagination(t *testing.T) {
	tests := []struct {
		name       string
		page       int
		limit      int
		total      int64
		totalPages int
		hasNext    bool
		hasPrev    bool
	}{
		{"first of many", 1, 10, 45, 5, true, false},
		{"middle page", 3, 10, 45, 5, true, true},
		{"last page", 5, 10, 45, 5, false, true},
		{"exact fit", 2, 10, 20, 2, false, true},
		{"empty result", 1, 10, 0, 0, false, false},
		{"single partial page", 1, 50, 7, 1, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPagination(tt.page, tt.limit, tt.total)
			assert.Equal(t, tt.page, p.CurrentPage)
			assert.Equal(t, tt.totalPages, p.TotalPages)
			assert.Equal(t, tt.total, p.Total)
			assert.Equal(t, tt.hasNext, p.HasNext)
			assert.Equal(t, tt.hasPrev, p.HasPrev)
		})
	}
}
