package github

import (
	"testing"
	"time"
)

func TestIsPostFile(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"2025-05-26-weekly-OFS-48.md", true},
		{"2024-12-01-year-in-review.markdown", true},
		{"2025-01-15-a.md", true},
		{"README.md", false},
		{"index.html", false},
		{"2025-5-6-unpadded.md", false},
		{"2025-13-40-not-a-date.md", false},
		{"2025-05-26-missing-extension", false},
		{"2025-05-26-.md", false},
		{"notes-2025-05-26.md", false},
	}
	for _, tt := range tests {
		if got := IsPostFile(tt.name); got != tt.want {
			t.Errorf("IsPostFile(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestPostDate(t *testing.T) {
	date, ok := PostDate("2025-05-26-weekly-OFS-48.md")
	if !ok {
		t.Fatal("expected a post file")
	}
	want := time.Date(2025, 5, 26, 0, 0, 0, 0, time.UTC)
	if !date.Equal(want) {
		t.Errorf("date = %v, want %v", date, want)
	}

	if _, ok := PostDate("README.md"); ok {
		t.Error("expected README.md to be rejected")
	}
}
