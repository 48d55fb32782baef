package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractPagination(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		wantPage   int
		wantLimit  int
		wantOffset int
		wantErr    bool
	}{
		{name: "defaults", target: "/results", wantPage: 1, wantLimit: 100, wantOffset: 0},
		{name: "explicit page and limit", target: "/results?page=3&limit=50", wantPage: 3, wantLimit: 50, wantOffset: 100},
		{name: "limit capped", target: "/results?limit=99999", wantPage: 1, wantLimit: 1000, wantOffset: 0},
		{name: "zero page", target: "/results?page=0", wantErr: true},
		{name: "negative limit", target: "/results?limit=-1", wantErr: true},
		{name: "non numeric", target: "/results?limit=dez", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractPagination(httptest.NewRequest("GET", tt.target, nil), 100, 1000)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantPage, got.Page)
			assert.Equal(t, tt.wantLimit, got.Limit)
			assert.Equal(t, tt.wantOffset, got.Offset)
		})
	}
}

func TestSetPaginationStats(t *testing.T) {
	p := PaginationParams{Page: 1, Limit: 100}
	p.SetPaginationStats(0)
	assert.Zero(t, p.TotalPages)

	p.SetPaginationStats(101)
	assert.Equal(t, 101, p.TotalRecords)
	assert.Equal(t, 2, p.TotalPages)
}

func TestBounds(t *testing.T) {
	p := PaginationParams{Page: 2, Limit: 10, Offset: 10}

	lo, hi := p.Bounds(25)
	assert.Equal(t, 10, lo)
	assert.Equal(t, 20, hi)

	lo, hi = p.Bounds(12)
	assert.Equal(t, 10, lo)
	assert.Equal(t, 12, hi)

	lo, hi = p.Bounds(5)
	assert.Equal(t, 5, lo)
	assert.Equal(t, 5, hi)
}
