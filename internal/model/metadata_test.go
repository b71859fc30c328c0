package model

import "testing"

func TestMediaMetadata_GetDurationString(t *testing.T) {
	tests := []struct {
		seconds  int
		expected string
	}{
		{0, "Unknown"},
		{-5, "Unknown"},
		{59, "0:59"},
		{61, "1:01"},
		{3599, "59:59"},
		{3600, "1:00:00"},
		{7265, "2:01:05"},
	}

	for _, test := range tests {
		mm := &MediaMetadata{DurationSeconds: test.seconds}
		result := mm.GetDurationString()
		if result != test.expected {
			t.Errorf("GetDurationString() for %d seconds = %s, expected %s", test.seconds, result, test.expected)
		}
	}
}

func TestMediaMetadata_GetDisplayTitle(t *testing.T) {
	// Title takes priority
	mm := &MediaMetadata{Title: "My Video", LocalFilePath: "/tmp/file.mp4", SourceURL: "https://example.com/v"}
	if got := mm.GetDisplayTitle(); got != "My Video" {
		t.Errorf("Expected title, got %q", got)
	}

	// URL-looking title falls back to filename
	mm = &MediaMetadata{Title: "https://example.com/v", LocalFilePath: "/downloads/cool video.mp4"}
	if got := mm.GetDisplayTitle(); got != "cool video" {
		t.Errorf("Expected filename without extension, got %q", got)
	}

	// Windows-style path separators
	mm = &MediaMetadata{LocalFilePath: `C:\downloads\clip.webm`}
	if got := mm.GetDisplayTitle(); got != "clip" {
		t.Errorf("Expected filename from windows path, got %q", got)
	}

	// Last resort is the source URL
	mm = &MediaMetadata{SourceURL: "https://example.com/watch?v=abc"}
	if got := mm.GetDisplayTitle(); got != "https://example.com/watch?v=abc" {
		t.Errorf("Expected source URL fallback, got %q", got)
	}
}
