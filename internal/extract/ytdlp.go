package extract

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/lrstanley/go-ytdlp"
)

// Raw yt-dlp progress callbacks can fire many times per second; the wrapper
// forwards them at this cadence and leaves coarser throttling to the caller.
const rawProgressInterval = 100 * time.Millisecond

// OutputTemplate names downloaded files after their title
const OutputTemplate = "%(title)s.%(ext)s"

var installYTDLP = ytdlp.Install

// EnsureInstalled provisions the yt-dlp binary: resolved from the system when
// already present, downloaded into the library's cache otherwise.
func EnsureInstalled(ctx context.Context) error {
	_, err := installYTDLP(ctx, nil)
	return err
}

// YTDLP is the production extractor backed by the yt-dlp wrapper library.
// One instance serves one download task.
type YTDLP struct {
	destDir string
	timeout time.Duration
}

// NewYTDLP creates an extractor writing media files into destDir
func NewYTDLP(destDir string) *YTDLP {
	return &YTDLP{
		destDir: destDir,
		timeout: DefaultResolveTimeout,
	}
}

// Fetch runs the real download. Progress samples are forwarded as they
// arrive, and each item's result descriptor is delivered the moment the
// progress stream reports that item finished, so multi-item runs persist and
// index per item while later items are still downloading. A post-run sweep
// catches items whose finished update never made it onto the stream.
func (y *YTDLP) Fetch(ctx context.Context, url, format string, onProgress ProgressFunc, onItem ItemFunc) error {
	dl := ytdlp.New().
		ForceOverwrites().
		RestrictFilenames().
		Format(format).
		Output(filepath.Join(y.destDir, OutputTemplate))

	tracker := newFetchTracker(url, onProgress, onItem)
	dl.ProgressFunc(rawProgressInterval, tracker.handleUpdate)

	result, err := dl.Run(ctx, url)
	if err != nil {
		return err
	}

	if onItem == nil {
		return nil
	}

	infos, err := result.GetExtractedInfo()
	if err != nil {
		return fmt.Errorf("failed to get extracted info: %w", err)
	}
	tracker.finalize(infos)

	return nil
}

// fetchTracker translates the raw yt-dlp progress stream into per-item
// delivery. yt-dlp invokes the progress callback sequentially and the sweep
// runs after the subprocess exits, so no locking is needed.
type fetchTracker struct {
	requestURL string
	onProgress ProgressFunc
	onItem     ItemFunc
	delivered  map[string]bool
}

func newFetchTracker(requestURL string, onProgress ProgressFunc, onItem ItemFunc) *fetchTracker {
	return &fetchTracker{
		requestURL: requestURL,
		onProgress: onProgress,
		onItem:     onItem,
		delivered:  make(map[string]bool),
	}
}

func (t *fetchTracker) handleUpdate(update ytdlp.ProgressUpdate) {
	switch update.Status {
	case ytdlp.ProgressStatusFinished:
		// Forward the terminating sample before the item result so the
		// consumer sees 100% ahead of the item transition.
		t.sample(&update)
		t.deliverUpdate(&update)
	case ytdlp.ProgressStatusError:
		// Run itself surfaces the error; nothing to deliver.
	default:
		t.sample(&update)
	}
}

func (t *fetchTracker) sample(update *ytdlp.ProgressUpdate) {
	if t.onProgress == nil {
		return
	}
	t.onProgress(sampleFromUpdate(update))
}

func (t *fetchTracker) deliverUpdate(update *ytdlp.ProgressUpdate) {
	if t.onItem == nil || update.Info == nil {
		return
	}

	res := resultFromInfo(update.Info, t.requestURL)
	if res.LocalFilePath == "" {
		res.LocalFilePath = update.Filename
	}
	t.deliver(res)
}

// deliver hands a result to the item callback at most once per item. Merged
// video+audio downloads report finished once per track with the same id, so
// deduplication keys on the item, not the file.
func (t *fetchTracker) deliver(res *Result) {
	key := itemKey(res)
	if key != "" {
		if t.delivered[key] {
			return
		}
		t.delivered[key] = true
	}
	t.onItem(res)
}

// finalize sweeps the run's extracted info for items whose finished update
// never arrived on the progress stream
func (t *fetchTracker) finalize(infos []*ytdlp.ExtractedInfo) {
	if t.onItem == nil {
		return
	}

	for _, info := range infos {
		if info == nil || info.Type == ytdlp.ExtractedTypePlaylist {
			continue
		}
		t.deliver(resultFromInfo(info, t.requestURL))
	}
}

func itemKey(res *Result) string {
	if res.ID != "" {
		return res.ID
	}
	if res.LocalFilePath != "" {
		return res.LocalFilePath
	}
	return res.Title
}

// sampleFromUpdate converts a yt-dlp progress update into a raw sample
func sampleFromUpdate(update *ytdlp.ProgressUpdate) ProgressSample {
	sample := ProgressSample{
		DownloadedBytes: int64(update.DownloadedBytes),
		TotalBytes:      int64(update.TotalBytes),
	}

	if update.Info != nil && update.Info.Title != nil {
		sample.Title = *update.Info.Title
	}

	if !update.Started.IsZero() {
		elapsed := time.Since(update.Started)
		if elapsed.Seconds() > 0 {
			bytesPerSecond := float64(update.DownloadedBytes) / elapsed.Seconds()
			sample.Speed = fmt.Sprintf("%.1fMB/s", bytesPerSecond/1024/1024)
		}
	}

	if eta := update.ETA(); eta > 0 {
		sample.ETA = formatETA(eta)
	}

	return sample
}

// resultFromInfo maps yt-dlp extracted info onto the raw result descriptor,
// nil-guarding every optional field
func resultFromInfo(info *ytdlp.ExtractedInfo, requestURL string) *Result {
	res := &Result{
		ID:        info.ID,
		SourceURL: requestURL,
	}

	if info.Title != nil {
		res.Title = *info.Title
	}
	if info.UploadDate != nil {
		res.UploadDate = *info.UploadDate
	}
	if info.Duration != nil {
		res.DurationSeconds = int(*info.Duration)
	}
	if info.Uploader != nil {
		res.Uploader = *info.Uploader
	}
	if info.Thumbnail != nil {
		res.ThumbnailURL = *info.Thumbnail
	}
	if info.ViewCount != nil {
		res.ViewCount = int64(*info.ViewCount)
	}
	if info.LikeCount != nil {
		res.LikeCount = int64(*info.LikeCount)
	}
	if info.Description != nil {
		res.Description = *info.Description
	}
	if info.WebpageURL != nil {
		res.SourceURL = *info.WebpageURL
	}
	if info.Extractor != nil {
		res.ExtractorName = *info.Extractor
	}
	if info.Filename != nil {
		res.LocalFilePath = *info.Filename
	}

	return res
}

// formatETA renders a duration as mm:ss or hh:mm:ss
func formatETA(eta time.Duration) string {
	total := int(eta.Seconds())
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60

	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}
