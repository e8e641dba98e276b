package paging

import (
	"net/http/httptest"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name      string
		target    string
		wantPage  int
		wantLimit int
	}{
		{"defaults", "/projects", 1, DefaultPageSize},
		{"explicit", "/projects?page=2&limit=10", 2, 10},
		{"invalid page", "/projects?page=abc&limit=10", 1, 10},
		{"zero page", "/projects?page=0", 1, DefaultPageSize},
		{"negative limit", "/projects?limit=-5", 1, DefaultPageSize},
		{"limit clamped", "/projects?limit=5000", 1, MaxPageSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", tt.target, nil)
			p := Parse(r)
			if p.Number != tt.wantPage {
				t.Errorf("page: got %d, want %d", p.Number, tt.wantPage)
			}
			if p.Limit != tt.wantLimit {
				t.Errorf("limit: got %d, want %d", p.Limit, tt.wantLimit)
			}
		})
	}
}

func TestSkip(t *testing.T) {
	p := Page{Number: 2, Limit: 10}
	if got := p.Skip(); got != 10 {
		t.Errorf("Skip: got %d, want 10", got)
	}
	p = Page{Number: 1, Limit: 25}
	if got := p.Skip(); got != 0 {
		t.Errorf("Skip: got %d, want 0", got)
	}
}

func TestTotalPages(t *testing.T) {
	tests := []struct {
		total int64
		limit int
		want  int64
	}{
		{25, 10, 3},
		{30, 10, 3},
		{0, 10, 0},
		{1, 10, 1},
		{10, 0, 0},
	}
	for _, tt := range tests {
		if got := TotalPages(tt.total, tt.limit); got != tt.want {
			t.Errorf("TotalPages(%d, %d) = %d, want %d", tt.total, tt.limit, got, tt.want)
		}
	}
}
