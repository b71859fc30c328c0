package ui

import (
	"strings"
	"testing"

	"github.com/ytget/media-player/internal/model"
)

func TestStatusText(t *testing.T) {
	tests := []struct {
		name     string
		event    model.Event
		contains string
	}{
		{
			"playlist info",
			model.Event{Type: model.EventPlaylistInfo, DisplayTitle: "Mix", TotalItems: 4},
			"Playlist: Mix (4 items)",
		},
		{
			"progress with speed and eta",
			model.Event{Type: model.EventProgress, ItemIndex: 2, ItemCount: 5, DisplayTitle: "Song", Percent: 42.5, Speed: "1.2MiB/s", ETA: "00:30"},
			"Downloading 2/5: Song (42.5%, 1.2MiB/s, ETA 00:30)",
		},
		{
			"progress without speed",
			model.Event{Type: model.EventProgress, ItemIndex: 1, ItemCount: 1, DisplayTitle: "Song", Percent: 10},
			"Downloading 1/1: Song (10.0%)",
		},
		{
			"completed",
			model.Event{Type: model.EventCompleted, Message: "Download completed successfully"},
			"Download completed successfully",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := StatusText(test.event); !strings.Contains(got, test.contains) {
				t.Errorf("StatusText() = %q, expected it to contain %q", got, test.contains)
			}
		})
	}
}

func TestEntrySubtitle(t *testing.T) {
	md := &model.MediaMetadata{Uploader: "Artist", DurationSeconds: 125}
	if got := EntrySubtitle(md); got != "Artist · 2:05" {
		t.Errorf("EntrySubtitle() = %q", got)
	}

	md = &model.MediaMetadata{}
	if got := EntrySubtitle(md); got != "Unknown uploader · Unknown" {
		t.Errorf("EntrySubtitle() = %q", got)
	}
}

func TestIsAudioFile(t *testing.T) {
	tests := []struct {
		path     string
		expected bool
	}{
		{"/media/song.mp3", true},
		{"/media/song.FLAC", true},
		{"/media/sound.wav", true},
		{"/media/video.mp4", false},
		{"/media/audio.m4a", false},
		{"", false},
	}

	for _, test := range tests {
		if got := isAudioFile(test.path); got != test.expected {
			t.Errorf("isAudioFile(%q) = %v, expected %v", test.path, got, test.expected)
		}
	}
}
