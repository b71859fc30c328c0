package extract

import (
	"context"
	"testing"
	"time"
)

func secondsToDuration(s int) time.Duration {
	return time.Duration(s) * time.Second
}

func TestIsPlaylistURL(t *testing.T) {
	tests := []struct {
		url      string
		expected bool
	}{
		{"https://www.youtube.com/playlist?list=PLtest123", true},
		{"https://www.youtube.com/watch?v=abc&list=PLtest123", true},
		{"https://www.youtube.com/watch?v=abc", false},
		{"https://example.com/video", false},
		{"", false},
	}

	for _, test := range tests {
		result := IsPlaylistURL(test.url)
		if result != test.expected {
			t.Errorf("IsPlaylistURL(%q) = %v, expected %v", test.url, result, test.expected)
		}
	}
}

func TestExtractPlaylistID(t *testing.T) {
	tests := []struct {
		url      string
		expected string
	}{
		{"https://www.youtube.com/playlist?list=PLtest123", "PLtest123"},
		{"https://www.youtube.com/watch?v=abc&list=PLtest123&index=2", "PLtest123"},
		{"https://www.youtube.com/watch?v=abc", ""},
		{"", ""},
	}

	for _, test := range tests {
		result := ExtractPlaylistID(test.url)
		if result != test.expected {
			t.Errorf("ExtractPlaylistID(%q) = %q, expected %q", test.url, result, test.expected)
		}
	}
}

func TestResolve_SingleItemURL(t *testing.T) {
	y := NewYTDLP(t.TempDir())

	res, err := y.Resolve(context.Background(), "https://www.youtube.com/watch?v=abc")
	if err != nil {
		t.Fatalf("Expected no error for single item URL, got %v", err)
	}

	if res.Playlist {
		t.Error("Single item URL should not resolve as playlist")
	}
	if res.ItemCount() != 1 {
		t.Errorf("Expected item count 1, got %d", res.ItemCount())
	}
	if res.Items[0].URL != "https://www.youtube.com/watch?v=abc" {
		t.Errorf("Resolved item should carry the request URL, got %q", res.Items[0].URL)
	}
}

func TestResolution_ItemCount(t *testing.T) {
	var nilRes *Resolution
	if nilRes.ItemCount() != 1 {
		t.Error("nil resolution should default to one item")
	}

	res := &Resolution{Items: []Item{{}, {}, {}}}
	if res.ItemCount() != 3 {
		t.Errorf("Expected 3 items, got %d", res.ItemCount())
	}
}

func TestFormatETA(t *testing.T) {
	tests := []struct {
		seconds  int
		expected string
	}{
		{5, "00:05"},
		{65, "01:05"},
		{3600, "01:00:00"},
		{3725, "01:02:05"},
	}

	for _, test := range tests {
		result := formatETA(secondsToDuration(test.seconds))
		if result != test.expected {
			t.Errorf("formatETA(%ds) = %s, expected %s", test.seconds, result, test.expected)
		}
	}
}
