package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPage_PagesIsCeilOfCountOverLimit(t *testing.T) {
	tests := []struct {
		name          string
		count         int
		limit         int
		page          int
		expectedPages int
		expectedPage  int
	}{
		{name: "Exact multiple", count: 20, limit: 10, page: 1, expectedPages: 2, expectedPage: 1},
		{name: "Remainder adds a page", count: 21, limit: 10, page: 2, expectedPages: 3, expectedPage: 2},
		{name: "Fewer items than limit", count: 3, limit: 10, page: 1, expectedPages: 1, expectedPage: 1},
		{name: "Zero count", count: 0, limit: 10, page: 1, expectedPages: 0, expectedPage: 1},
		{name: "Limit of one", count: 7, limit: 1, page: 4, expectedPages: 7, expectedPage: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPage([]int{}, tt.page, tt.limit, tt.count)
			assert.Equal(t, tt.expectedPages, p.Pages)
			assert.Equal(t, tt.expectedPage, p.Page)
			assert.Equal(t, tt.count, p.Count)
		})
	}
}

func TestNewPage_NoLimitIsSinglePage(t *testing.T) {
	items := []string{"a", "b", "c"}

	for _, limit := range []int{0, -1, -10} {
		p := NewPage(items, 1, limit, len(items))
		assert.Equal(t, 1, p.Pages, "limit %d", limit)
		assert.Equal(t, 3, p.Count)
		assert.Equal(t, items, p.Items)
	}
}

func TestNewPage_DefaultsPageToOne(t *testing.T) {
	p := NewPage([]int{1}, 0, 10, 1)
	assert.Equal(t, 1, p.Page)

	p = NewPage([]int{1}, -5, 10, 1)
	assert.Equal(t, 1, p.Page)
}

func TestNewPage_NilItemsBecomeEmptySlice(t *testing.T) {
	p := NewPage[int](nil, 1, 10, 0)
	assert.NotNil(t, p.Items)
	assert.Len(t, p.Items, 0)
}
