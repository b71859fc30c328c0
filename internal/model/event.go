package model

// Display title limits: anything longer than MaxDisplayTitle runes is cut to
// TruncatedTitleLength runes plus an ellipsis. The full title is always
// preserved in Event.Title.
const (
	MaxDisplayTitle      = 30
	TruncatedTitleLength = 27
	Ellipsis             = "…"
)

// EventType discriminates the progress event union
type EventType int

const (
	// EventPlaylistInfo reports the item count and title of a resolved playlist
	EventPlaylistInfo EventType = iota

	// EventItemInfo reports the title of a resolved single item
	EventItemInfo

	// EventProgress reports throttled download progress for the current item
	EventProgress

	// EventItemFinished reports that one item finished downloading
	EventItemFinished

	// EventMetadataSaved reports that an item's metadata record was persisted
	EventMetadataSaved

	// EventError reports a non-fatal error inside the task
	EventError

	// EventCompleted is the terminal success event, emitted exactly once
	EventCompleted

	// EventFailed is the terminal failure event, emitted exactly once
	EventFailed
)

// String returns a short name for the event type
func (et EventType) String() string {
	switch et {
	case EventPlaylistInfo:
		return "playlist_info"
	case EventItemInfo:
		return "item_info"
	case EventProgress:
		return "progress"
	case EventItemFinished:
		return "item_finished"
	case EventMetadataSaved:
		return "metadata_saved"
	case EventError:
		return "error"
	case EventCompleted:
		return "completed"
	case EventFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Event is one message on a task's event stream. Only the fields relevant to
// the Type are set.
type Event struct {
	Type EventType

	// Playlist resolution
	TotalItems int

	// Per-item progress
	ItemIndex int
	ItemCount int
	Percent   float64
	Speed     string
	ETA       string

	// Title is the full item title; DisplayTitle is truncated for the UI
	Title        string
	DisplayTitle string

	// Terminal and error events
	Message string

	// Set on EventMetadataSaved
	Metadata *MediaMetadata
}

// IsTerminal returns true for the task's final success/failure event
func (e Event) IsTerminal() bool {
	return e.Type == EventCompleted || e.Type == EventFailed
}

// DisplayTitle shortens a title for list rows and progress labels. Truncation
// is rune-aware so multi-byte titles are not cut mid-character.
func DisplayTitle(title string) string {
	runes := []rune(title)
	if len(runes) <= MaxDisplayTitle {
		return title
	}
	return string(runes[:TruncatedTitleLength]) + Ellipsis
}
