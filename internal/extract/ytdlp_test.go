package extract

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/lrstanley/go-ytdlp"
)

func TestEnsureInstalled_PropagatesInstallerError(t *testing.T) {
	original := installYTDLP
	defer func() { installYTDLP = original }()

	wantErr := errors.New("no network")
	installYTDLP = func(ctx context.Context, opts *ytdlp.InstallOptions) (*ytdlp.ResolvedInstall, error) {
		return nil, wantErr
	}

	if err := EnsureInstalled(context.Background()); !errors.Is(err, wantErr) {
		t.Fatalf("Expected installer error to propagate, got %v", err)
	}
}

func strPtr(s string) *string { return &s }

func downloadingUpdate(id, title string, downloaded, total int) ytdlp.ProgressUpdate {
	return ytdlp.ProgressUpdate{
		Status:          ytdlp.ProgressStatusDownloading,
		DownloadedBytes: downloaded,
		TotalBytes:      total,
		Info:            &ytdlp.ExtractedInfo{ID: id, Title: strPtr(title)},
	}
}

func finishedUpdate(id, title, filename string) ytdlp.ProgressUpdate {
	return ytdlp.ProgressUpdate{
		Status:          ytdlp.ProgressStatusFinished,
		DownloadedBytes: 100,
		TotalBytes:      100,
		Filename:        filename,
		Info:            &ytdlp.ExtractedInfo{ID: id, Title: strPtr(title)},
	}
}

// recordingTracker wires a tracker to callbacks that log delivery order
func recordingTracker() (*fetchTracker, *[]string) {
	var sequence []string
	tracker := newFetchTracker("https://example.com/v",
		func(sample ProgressSample) {
			sequence = append(sequence, fmt.Sprintf("sample:%s", sample.Title))
		},
		func(res *Result) {
			sequence = append(sequence, fmt.Sprintf("item:%s", res.ID))
		},
	)
	return tracker, &sequence
}

func TestFetchTracker_DeliversItemWhenStreamReportsFinished(t *testing.T) {
	tracker, sequence := recordingTracker()

	tracker.handleUpdate(downloadingUpdate("a", "First", 50, 100))
	tracker.handleUpdate(finishedUpdate("a", "First", "/media/first.mp4"))

	expected := []string{"sample:First", "sample:First", "item:a"}
	if len(*sequence) != len(expected) {
		t.Fatalf("Expected sequence %v, got %v", expected, *sequence)
	}
	for i, step := range expected {
		if (*sequence)[i] != step {
			t.Fatalf("Expected sequence %v, got %v", expected, *sequence)
		}
	}
}

func TestFetchTracker_ItemsInterleaveAcrossPlaylistRun(t *testing.T) {
	tracker, sequence := recordingTracker()

	tracker.handleUpdate(downloadingUpdate("a", "First", 50, 100))
	tracker.handleUpdate(finishedUpdate("a", "First", "/media/first.mp4"))
	tracker.handleUpdate(downloadingUpdate("b", "Second", 10, 100))
	tracker.handleUpdate(finishedUpdate("b", "Second", "/media/second.mp4"))

	// The first item must be delivered before the second item's samples,
	// not batched after the run.
	expected := []string{
		"sample:First", "sample:First", "item:a",
		"sample:Second", "sample:Second", "item:b",
	}
	if len(*sequence) != len(expected) {
		t.Fatalf("Expected sequence %v, got %v", expected, *sequence)
	}
	for i, step := range expected {
		if (*sequence)[i] != step {
			t.Fatalf("Expected sequence %v, got %v", expected, *sequence)
		}
	}
}

func TestFetchTracker_DuplicateFinishedDeliversOnce(t *testing.T) {
	var items []*Result
	tracker := newFetchTracker("https://example.com/v", nil, func(res *Result) {
		items = append(items, res)
	})

	// Merged video+audio runs flag finished once per track with the same id.
	tracker.handleUpdate(finishedUpdate("a", "First", "/media/first.f137.mp4"))
	tracker.handleUpdate(finishedUpdate("a", "First", "/media/first.f140.m4a"))

	if len(items) != 1 {
		t.Fatalf("Expected one delivery per item, got %d", len(items))
	}
}

func TestFetchTracker_FinishedFillsFilenameFromUpdate(t *testing.T) {
	var items []*Result
	tracker := newFetchTracker("https://example.com/v", nil, func(res *Result) {
		items = append(items, res)
	})

	tracker.handleUpdate(finishedUpdate("a", "First", "/media/first.mp4"))

	if len(items) != 1 {
		t.Fatalf("Expected one item, got %d", len(items))
	}
	if items[0].LocalFilePath != "/media/first.mp4" {
		t.Errorf("Expected update filename as local path, got %q", items[0].LocalFilePath)
	}
	if items[0].SourceURL != "https://example.com/v" {
		t.Errorf("Expected request URL fallback, got %q", items[0].SourceURL)
	}
}

func TestFetchTracker_FinalizeSweepsOnlyUndeliveredItems(t *testing.T) {
	var items []*Result
	tracker := newFetchTracker("https://example.com/v", nil, func(res *Result) {
		items = append(items, res)
	})

	tracker.handleUpdate(finishedUpdate("a", "First", "/media/first.mp4"))

	tracker.finalize([]*ytdlp.ExtractedInfo{
		{Type: ytdlp.ExtractedTypePlaylist, ID: "pl"},
		{ID: "a", Title: strPtr("First")},
		{ID: "b", Title: strPtr("Second")},
		nil,
	})

	if len(items) != 2 {
		t.Fatalf("Expected two items after sweep, got %d", len(items))
	}
	if items[0].ID != "a" || items[1].ID != "b" {
		t.Errorf("Expected items a then b, got %q, %q", items[0].ID, items[1].ID)
	}
}

func TestFetchTracker_ErrorStatusDeliversNothing(t *testing.T) {
	tracker, sequence := recordingTracker()

	tracker.handleUpdate(ytdlp.ProgressUpdate{
		Status: ytdlp.ProgressStatusError,
		Info:   &ytdlp.ExtractedInfo{ID: "a", Title: strPtr("First")},
	})

	if len(*sequence) != 0 {
		t.Fatalf("Expected no deliveries for error status, got %v", *sequence)
	}
}

func TestFetchTracker_NilCallbacksAreSafe(t *testing.T) {
	tracker := newFetchTracker("https://example.com/v", nil, nil)

	tracker.handleUpdate(downloadingUpdate("a", "First", 1, 2))
	tracker.handleUpdate(finishedUpdate("a", "First", "/media/first.mp4"))
	tracker.finalize([]*ytdlp.ExtractedInfo{{ID: "a"}})
}
