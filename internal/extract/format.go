package extract

import (
	"github.com/ytget/media-player/internal/model"
)

// Format selectors passed to yt-dlp. Video prefers an H.264 track combined
// with M4A audio, then a plain MP4, then whatever is ranked best; audio
// prefers M4A, then best-audio.
const (
	FormatVideo = "bv*[vcodec^=avc1]+ba[ext=m4a]/b[ext=mp4]/b"
	FormatAudio = "ba[ext=m4a]/ba"
	FormatBest  = "b"
)

// FormatSelector maps a media kind to the extractor's format selector string.
// Unrecognized kinds fall back to unconstrained best.
func FormatSelector(kind model.MediaKind) string {
	switch kind {
	case model.MediaKindVideo:
		return FormatVideo
	case model.MediaKindAudio:
		return FormatAudio
	default:
		return FormatBest
	}
}
