package download

import (
	"strconv"
	"strings"
	"time"

	"github.com/ytget/media-player/internal/extract"
)

// Throttling thresholds: a sample is dropped unless the minimum interval has
// elapsed since the last emitted sample AND the percent moved by the minimum
// delta. The sample that reaches 100% always passes.
const (
	MinEmitInterval = 100 * time.Millisecond
	MinPercentDelta = 0.5
)

// ProgressThrottler converts the raw high-frequency progress stream into a
// bounded-rate, deduplicated stream suitable for UI consumption. Not safe for
// concurrent use; one task owns one throttler and feeds it from the fetch
// goroutine.
type ProgressThrottler struct {
	now func() time.Time

	emitted     bool
	lastEmit    time.Time
	lastPercent float64
}

// NewProgressThrottler creates a throttler using the wall clock
func NewProgressThrottler() *ProgressThrottler {
	return &ProgressThrottler{now: time.Now}
}

// Offer evaluates one raw sample. It returns the computed percent and true
// when the sample should be emitted.
func (t *ProgressThrottler) Offer(sample extract.ProgressSample) (float64, bool) {
	percent := SamplePercent(sample)

	if t.emitted {
		if percent >= 100 {
			// The terminating sample always passes, but only once.
			if t.lastPercent >= 100 {
				return percent, false
			}
		} else {
			if t.now().Sub(t.lastEmit) < MinEmitInterval {
				return percent, false
			}
			if abs(percent-t.lastPercent) < MinPercentDelta {
				return percent, false
			}
		}
	}

	t.emitted = true
	t.lastEmit = t.now()
	t.lastPercent = percent
	return percent, true
}

// Reset clears throttling state on item transition; the next sample of the
// new item always passes.
func (t *ProgressThrottler) Reset() {
	t.emitted = false
	t.lastEmit = time.Time{}
	t.lastPercent = 0
}

// SamplePercent computes the progress percent for a raw sample: byte counters
// when both are known, otherwise the extractor's pre-formatted percent string,
// defaulting to 0 on parse failure. The result is clamped to [0,100].
func SamplePercent(sample extract.ProgressSample) float64 {
	var percent float64

	if sample.TotalBytes > 0 && sample.DownloadedBytes >= 0 {
		percent = float64(sample.DownloadedBytes) / float64(sample.TotalBytes) * 100
	} else {
		s := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(sample.PercentStr), "%"))
		if parsed, err := strconv.ParseFloat(s, 64); err == nil {
			percent = parsed
		}
	}

	if percent < 0 {
		return 0
	}
	if percent > 100 {
		return 100
	}
	return percent
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
