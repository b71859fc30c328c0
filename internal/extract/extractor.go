package extract

import (
	"context"
)

// Item is one entry discovered during the resolution pass
type Item struct {
	ID    string
	Title string
	URL   string
}

// Resolution is the outcome of the metadata-only pass
type Resolution struct {
	Playlist bool
	Title    string
	Items    []Item
}

// ItemCount returns the number of items the fetch pass is expected to produce
func (r *Resolution) ItemCount() int {
	if r == nil || len(r.Items) == 0 {
		return 1
	}
	return len(r.Items)
}

// Result is the raw descriptor the extractor produces for one completed item
type Result struct {
	ID              string
	Title           string
	UploadDate      string
	DurationSeconds int
	Uploader        string
	ThumbnailURL    string
	ViewCount       int64
	LikeCount       int64
	Description     string
	SourceURL       string
	ExtractorName   string
	LocalFilePath   string
}

// ProgressSample is one raw progress callback from the extractor. Percent is
// derived from the byte counters when both are known; PercentStr is the
// extractor's pre-formatted fallback.
type ProgressSample struct {
	Title           string
	DownloadedBytes int64
	TotalBytes      int64
	PercentStr      string
	Speed           string
	ETA             string
}

// ProgressFunc receives raw progress samples during a fetch
type ProgressFunc func(ProgressSample)

// ItemFunc receives the result descriptor for each completed item
type ItemFunc func(*Result)

// Extractor resolves a URL to downloadable media plus descriptive metadata.
// Implementations are owned by exactly one download task at a time; both
// callbacks are invoked from the goroutine that called Fetch.
type Extractor interface {
	// Resolve performs the metadata-only pass: item count and titles,
	// without fetching any media bytes.
	Resolve(ctx context.Context, url string) (*Resolution, error)

	// Fetch downloads the media for url using the given format selector,
	// reporting raw progress and per-item results through the callbacks.
	Fetch(ctx context.Context, url, format string, onProgress ProgressFunc, onItem ItemFunc) error
}

// Factory builds one extractor instance per download task, bound to the
// task's destination directory.
type Factory func(destDir string) Extractor
