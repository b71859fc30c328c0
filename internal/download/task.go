package download

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"sync"

	"github.com/google/uuid"

	"github.com/ytget/media-player/internal/extract"
	"github.com/ytget/media-player/internal/model"
	"github.com/ytget/media-player/internal/platform"
)

var (
	ErrEmptyURL = errors.New("download URL is empty")
)

// eventBuffer sizes the task's event channel; the relay goroutine normally
// drains faster than the worker emits.
const eventBuffer = 64

// MetadataPersister is the slice of the metadata store the task needs
type MetadataPersister interface {
	Persist(res *extract.Result, kind model.MediaKind) (*model.MediaMetadata, error)
}

// Task executes one download request end-to-end on its own goroutine. Events
// are delivered in emission order on Events(); the channel closes after the
// terminal event, or without one when the task was cancelled.
type Task struct {
	ID  string
	req model.DownloadRequest

	extractor extract.Extractor
	store     MetadataPersister

	events chan model.Event
	done   chan struct{}
	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.Mutex
	status model.TaskStatus
}

// StartTask validates the request and spawns the worker goroutine. It fails
// synchronously when the URL is empty or the destination directory cannot be
// created; after that, all outcomes arrive as events.
func StartTask(req model.DownloadRequest, extractor extract.Extractor, store MetadataPersister) (*Task, error) {
	if req.URL == "" {
		return nil, ErrEmptyURL
	}
	if err := os.MkdirAll(req.DestinationDir, platform.DefaultDirPermissions); err != nil {
		return nil, fmt.Errorf("failed to create destination directory: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	t := &Task{
		ID:        "task-" + uuid.NewString(),
		req:       req,
		extractor: extractor,
		store:     store,
		events:    make(chan model.Event, eventBuffer),
		done:      make(chan struct{}),
		ctx:       ctx,
		cancel:    cancel,
		status:    model.TaskStatusIdle,
	}

	go t.run()

	return t, nil
}

// Events returns the ordered event stream. The channel is closed when the
// task finishes.
func (t *Task) Events() <-chan model.Event {
	return t.events
}

// Done is closed when the worker goroutine has fully stopped
func (t *Task) Done() <-chan struct{} {
	return t.done
}

// Cancel requests cooperative stop. No further events are emitted once the
// worker observes the cancellation; the terminal event is suppressed.
func (t *Task) Cancel() {
	t.cancel()
}

// Status returns the task's current lifecycle state
func (t *Task) Status() model.TaskStatus {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.status
}

// Request returns the immutable request this task is executing
func (t *Task) Request() model.DownloadRequest {
	return t.req
}

func (t *Task) setStatus(status model.TaskStatus) {
	t.mu.Lock()
	t.status = status
	t.mu.Unlock()
}

func (t *Task) cancelled() bool {
	return t.ctx.Err() != nil
}

// emit delivers an event unless the task has been cancelled. Delivery order
// matches emission order; the worker blocks rather than reorder or drop.
func (t *Task) emit(ev model.Event) {
	if t.cancelled() {
		return
	}
	select {
	case t.events <- ev:
	case <-t.ctx.Done():
	}
}

func (t *Task) run() {
	defer close(t.done)
	defer close(t.events)
	defer t.cancel()

	// Resolution pass: metadata only, errors are non-fatal because the
	// fetch pass is the source of truth.
	t.setStatus(model.TaskStatusResolving)
	resolution := t.resolve()

	if t.cancelled() {
		t.setStatus(model.TaskStatusCancelled)
		return
	}

	// Fetch pass
	t.setStatus(model.TaskStatusFetching)
	err := t.fetch(resolution)

	if t.cancelled() {
		t.setStatus(model.TaskStatusCancelled)
		return
	}

	if err != nil {
		t.setStatus(model.TaskStatusFailed)
		t.emit(model.Event{
			Type:    model.EventFailed,
			Message: fmt.Sprintf("Download failed: %v", err),
		})
		return
	}

	t.setStatus(model.TaskStatusCompleted)
	t.emit(model.Event{
		Type:    model.EventCompleted,
		Message: "Download completed successfully",
	})
}

// resolve runs the metadata-only pass and reports what the request refers to
func (t *Task) resolve() *extract.Resolution {
	resolution, err := t.extractor.Resolve(t.ctx, t.req.URL)
	if err != nil {
		log.Printf("Resolution failed for %s: %v (continuing to fetch)", t.req.URL, err)
		resolution = nil
	}

	if t.cancelled() {
		return resolution
	}

	if resolution != nil && resolution.Playlist {
		t.emit(model.Event{
			Type:         model.EventPlaylistInfo,
			TotalItems:   len(resolution.Items),
			Title:        resolution.Title,
			DisplayTitle: model.DisplayTitle(resolution.Title),
		})
		return resolution
	}

	title := t.req.URL
	if resolution != nil && len(resolution.Items) > 0 && resolution.Items[0].Title != "" {
		title = resolution.Items[0].Title
	}
	t.emit(model.Event{
		Type:         model.EventItemInfo,
		Title:        title,
		DisplayTitle: model.DisplayTitle(title),
	})

	return resolution
}

// fetch runs the real download, forwarding throttled progress and persisting
// metadata per completed item
func (t *Task) fetch(resolution *extract.Resolution) error {
	itemCount := resolution.ItemCount()
	itemsDone := 0
	currentTitle := ""
	throttler := NewProgressThrottler()

	onProgress := func(sample extract.ProgressSample) {
		// A bad sample must never abort the task.
		defer func() {
			if r := recover(); r != nil {
				log.Printf("Dropped progress sample: %v", r)
			}
		}()

		if t.cancelled() {
			return
		}

		percent, ok := throttler.Offer(sample)
		if !ok {
			return
		}

		if sample.Title != "" {
			currentTitle = sample.Title
		}
		title := currentTitle
		if title == "" {
			title = t.req.URL
		}

		t.emit(model.Event{
			Type:         model.EventProgress,
			ItemIndex:    itemsDone + 1,
			ItemCount:    itemCount,
			Percent:      percent,
			Speed:        sample.Speed,
			ETA:          sample.ETA,
			Title:        title,
			DisplayTitle: model.DisplayTitle(title),
		})
	}

	onItem := func(res *extract.Result) {
		// Cancellation checkpoint between items.
		if t.cancelled() {
			return
		}

		itemsDone++
		throttler.Reset()
		currentTitle = ""

		t.emit(model.Event{
			Type:         model.EventItemFinished,
			ItemIndex:    itemsDone,
			ItemCount:    itemCount,
			Title:        res.Title,
			DisplayTitle: model.DisplayTitle(res.Title),
		})

		// A write that started before cancellation is allowed to finish;
		// atomicity is per file, not per task.
		md, err := t.store.Persist(res, t.req.Kind)
		if err != nil {
			log.Printf("Failed to persist metadata for %q: %v", res.Title, err)
			return
		}

		t.emit(model.Event{
			Type:         model.EventMetadataSaved,
			ItemIndex:    itemsDone,
			ItemCount:    itemCount,
			Title:        md.Title,
			DisplayTitle: model.DisplayTitle(md.Title),
			Metadata:     md,
		})
	}

	return t.extractor.Fetch(t.ctx, t.req.URL, extract.FormatSelector(t.req.Kind), onProgress, onItem)
}
