package model

// MediaKind selects which tracks the extractor should fetch
type MediaKind string

const (
	// MediaKindVideo requests best H.264 video plus best M4A audio
	MediaKindVideo MediaKind = "video"

	// MediaKindAudio requests best M4A audio only
	MediaKindAudio MediaKind = "audio"

	// MediaKindBest requests whatever single format the extractor ranks best
	MediaKindBest MediaKind = "best"
)

// String returns the string representation of MediaKind
func (mk MediaKind) String() string {
	return string(mk)
}

// MediaKinds returns all selectable media kinds in display order
func MediaKinds() []MediaKind {
	return []MediaKind{MediaKindVideo, MediaKindAudio, MediaKindBest}
}

// DownloadRequest is the input to a download task. Immutable once a task
// starts.
type DownloadRequest struct {
	URL            string
	DestinationDir string
	Kind           MediaKind
}
