package playback

import (
	"errors"
	"time"
)

// SkipInterval is the jump applied by the skip forward/backward controls
const SkipInterval = 5 * time.Second

var (
	ErrNoMediaLoaded       = errors.New("no media loaded")
	ErrUnsupportedFormat   = errors.New("unsupported media format")
	ErrPositionOutOfBounds = errors.New("position out of bounds")
)

// Player is the local playback engine. Implementations are safe for use from
// the UI goroutine only.
type Player interface {
	// Load opens a media file and prepares it for playback, replacing any
	// previously loaded media.
	Load(path string) error

	Play()
	Pause()
	TogglePlayback()
	Stop()

	// SkipForward and SkipBackward jump by SkipInterval, clamped to the
	// media bounds.
	SkipForward() error
	SkipBackward() error

	// SetPosition seeks to an absolute offset from the start
	SetPosition(pos time.Duration) error

	// SetVolume accepts a percentage in [0,100]
	SetVolume(percent int)

	Position() time.Duration
	Duration() time.Duration
	IsPlaying() bool

	// SetOnFinished registers a callback invoked when the loaded media plays
	// to its end. The callback runs off the UI goroutine.
	SetOnFinished(fn func())

	Close() error
}
