package playback

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/flac"
	"github.com/gopxl/beep/mp3"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/wav"
)

const speakerBufferLen = time.Second / 10

// volumeBase is the exponent base of the volume effect; one volume unit
// doubles or halves the power
const volumeBase = 2

// BeepPlayer plays a single loaded file through the system speaker
type BeepPlayer struct {
	streamer beep.StreamSeekCloser
	format   beep.Format
	ctrl     *beep.Ctrl
	volume   *effects.Volume

	started bool
	percent int

	// mu guards playing and onFinished: the end-of-media callback fires on
	// the speaker goroutine while the UI goroutine polls IsPlaying.
	mu         sync.Mutex
	playing    bool
	onFinished func()
}

// NewBeepPlayer creates a player with full volume and nothing loaded
func NewBeepPlayer() *BeepPlayer {
	return &BeepPlayer{percent: 100}
}

// Load opens the file, picks a decoder by extension and restarts the speaker
// for the file's sample rate
func (p *BeepPlayer) Load(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open media file: %w", err)
	}

	var streamer beep.StreamSeekCloser
	var format beep.Format

	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	case ".wav":
		streamer, format, err = wav.Decode(f)
	case ".flac":
		streamer, format, err = flac.Decode(f)
	default:
		f.Close()
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
	if err != nil {
		f.Close()
		return fmt.Errorf("failed to decode media file: %w", err)
	}

	p.unload()

	if err := speaker.Init(format.SampleRate, format.SampleRate.N(speakerBufferLen)); err != nil {
		streamer.Close()
		return fmt.Errorf("failed to initialize speaker: %w", err)
	}

	p.streamer = streamer
	p.format = format
	p.ctrl = &beep.Ctrl{
		Streamer: beep.Seq(streamer, beep.Callback(p.handleFinished)),
	}
	p.volume = &effects.Volume{
		Streamer: p.ctrl,
		Base:     volumeBase,
		Volume:   VolumeExponent(p.percent),
		Silent:   p.percent == 0,
	}
	p.started = false
	p.setPlaying(false)

	return nil
}

// Play starts or resumes playback of the loaded media
func (p *BeepPlayer) Play() {
	if p.ctrl == nil {
		return
	}

	if !p.started {
		speaker.Play(p.volume)
		p.started = true
	}

	speaker.Lock()
	p.ctrl.Paused = false
	speaker.Unlock()
	p.setPlaying(true)
}

// Pause suspends playback, keeping the position
func (p *BeepPlayer) Pause() {
	if p.ctrl == nil {
		return
	}

	speaker.Lock()
	p.ctrl.Paused = true
	speaker.Unlock()
	p.setPlaying(false)
}

// TogglePlayback flips between playing and paused
func (p *BeepPlayer) TogglePlayback() {
	if p.IsPlaying() {
		p.Pause()
	} else {
		p.Play()
	}
}

// Stop halts playback and rewinds to the start
func (p *BeepPlayer) Stop() {
	if p.streamer == nil {
		return
	}

	speaker.Clear()
	p.streamer.Seek(0)
	p.started = false
	p.setPlaying(false)
}

// SkipForward jumps ahead by SkipInterval, clamped to the end
func (p *BeepPlayer) SkipForward() error {
	return p.seekRelative(SkipInterval)
}

// SkipBackward jumps back by SkipInterval, clamped to the start
func (p *BeepPlayer) SkipBackward() error {
	return p.seekRelative(-SkipInterval)
}

func (p *BeepPlayer) seekRelative(offset time.Duration) error {
	if p.streamer == nil {
		return ErrNoMediaLoaded
	}

	target := p.Position() + offset
	if target < 0 {
		target = 0
	}
	if max := p.Duration(); target > max {
		target = max
	}
	return p.SetPosition(target)
}

// SetPosition seeks to an absolute offset from the start
func (p *BeepPlayer) SetPosition(pos time.Duration) error {
	if p.streamer == nil {
		return ErrNoMediaLoaded
	}
	if pos < 0 || pos > p.Duration() {
		return ErrPositionOutOfBounds
	}

	speaker.Lock()
	defer speaker.Unlock()
	return p.streamer.Seek(p.format.SampleRate.N(pos))
}

// SetVolume maps a percentage in [0,100] onto the logarithmic volume scale.
// Out-of-range values are clamped.
func (p *BeepPlayer) SetVolume(percent int) {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	p.percent = percent

	if p.volume == nil {
		return
	}

	speaker.Lock()
	p.volume.Volume = VolumeExponent(percent)
	p.volume.Silent = percent == 0
	speaker.Unlock()
}

// Position returns the current playback offset
func (p *BeepPlayer) Position() time.Duration {
	if p.streamer == nil {
		return 0
	}

	speaker.Lock()
	defer speaker.Unlock()
	return p.format.SampleRate.D(p.streamer.Position())
}

// Duration returns the total length of the loaded media
func (p *BeepPlayer) Duration() time.Duration {
	if p.streamer == nil {
		return 0
	}
	return p.format.SampleRate.D(p.streamer.Len())
}

// IsPlaying reports whether playback is running
func (p *BeepPlayer) IsPlaying() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.playing
}

// SetOnFinished registers the end-of-media callback
func (p *BeepPlayer) SetOnFinished(fn func()) {
	p.mu.Lock()
	p.onFinished = fn
	p.mu.Unlock()
}

// Close stops playback and releases the decoder
func (p *BeepPlayer) Close() error {
	p.unload()
	return nil
}

func (p *BeepPlayer) unload() {
	if p.streamer == nil {
		return
	}

	speaker.Clear()
	p.streamer.Close()
	p.streamer = nil
	p.ctrl = nil
	p.volume = nil
	p.started = false
	p.setPlaying(false)
}

func (p *BeepPlayer) setPlaying(playing bool) {
	p.mu.Lock()
	p.playing = playing
	p.mu.Unlock()
}

// handleFinished runs on the speaker goroutine; it must only touch state
// behind the mutex
func (p *BeepPlayer) handleFinished() {
	p.mu.Lock()
	p.playing = false
	fn := p.onFinished
	p.mu.Unlock()

	if fn != nil {
		go fn()
	}
}

// VolumeExponent converts a percentage to the exponent the volume effect
// expects: 100% is unity gain, 50% is one halving. Zero is handled by the
// Silent flag, not the exponent.
func VolumeExponent(percent int) float64 {
	if percent <= 0 {
		return 0
	}
	return math.Log2(float64(percent) / 100)
}
