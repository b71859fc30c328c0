package download

import (
	"errors"
	"log"
	"sync"
	"time"

	"github.com/ytget/media-player/internal/extract"
	"github.com/ytget/media-player/internal/model"
)

var (
	ErrDownloadActive = errors.New("a download is already in progress")
)

// Shutdown timing: the worker gets a short grace period to observe the
// cancellation flag, then a bounded wait before the caller tears down shared
// resources.
const (
	CancelGracePeriod      = 100 * time.Millisecond
	DefaultShutdownTimeout = 2 * time.Second
)

// StoreFactory builds one metadata persister per task, bound to the task's
// destination directory
type StoreFactory func(destDir string) (MetadataPersister, error)

// Coordinator is the UI-facing façade owning task lifecycle. At most one task
// is active at a time; starting another while one runs is rejected.
type Coordinator struct {
	newExtractor extract.Factory
	newStore     StoreFactory

	mu      sync.Mutex
	active  *Task
	onEvent func(model.Event)
}

// NewCoordinator creates a coordinator spawning tasks from the given
// factories
func NewCoordinator(newExtractor extract.Factory, newStore StoreFactory) *Coordinator {
	return &Coordinator{
		newExtractor: newExtractor,
		newStore:     newStore,
	}
}

// SetEventCallback sets the callback receiving every task event. The callback
// runs on the relay goroutine, never on the worker; implementations must hop
// to the UI thread themselves.
func (c *Coordinator) SetEventCallback(fn func(model.Event)) {
	c.mu.Lock()
	c.onEvent = fn
	c.mu.Unlock()
}

// Start begins a new download. It returns ErrDownloadActive while a previous
// task is still running; callers decide whether to cancel first.
func (c *Coordinator) Start(req model.DownloadRequest) (*Task, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.active != nil {
		select {
		case <-c.active.Done():
			c.active = nil
		default:
			return nil, ErrDownloadActive
		}
	}

	store, err := c.newStore(req.DestinationDir)
	if err != nil {
		return nil, err
	}

	task, err := StartTask(req, c.newExtractor(req.DestinationDir), store)
	if err != nil {
		return nil, err
	}

	c.active = task
	go c.relay(task)

	return task, nil
}

// Active returns the currently running task, or nil
func (c *Coordinator) Active() *Task {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active
}

// Cancel requests cooperative stop of the active task, if any
func (c *Coordinator) Cancel() {
	c.mu.Lock()
	task := c.active
	c.mu.Unlock()

	if task != nil {
		task.Cancel()
	}
}

// Shutdown cancels the active task and waits up to timeout for the worker to
// stop. It returns false when the worker is still running after the deadline;
// the caller may then release resources anyway.
func (c *Coordinator) Shutdown(timeout time.Duration) bool {
	c.mu.Lock()
	task := c.active
	c.mu.Unlock()

	if task == nil {
		return true
	}

	task.Cancel()

	// Give the worker a chance to observe the flag before the bounded wait.
	select {
	case <-task.Done():
		return true
	case <-time.After(CancelGracePeriod):
	}

	select {
	case <-task.Done():
		return true
	case <-time.After(timeout):
		log.Printf("Download task %s did not stop within %v", task.ID, timeout)
		return false
	}
}

// relay drains the task's event stream in order and forwards it to the
// callback, then releases the active slot
func (c *Coordinator) relay(task *Task) {
	for ev := range task.Events() {
		c.mu.Lock()
		fn := c.onEvent
		c.mu.Unlock()

		if fn != nil {
			fn(ev)
		}
	}

	c.mu.Lock()
	if c.active == task {
		c.active = nil
	}
	c.mu.Unlock()
}
