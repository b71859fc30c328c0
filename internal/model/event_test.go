package model

import (
	"strings"
	"testing"
)

func TestDisplayTitle_ShortTitleUnchanged(t *testing.T) {
	title := "Short title"
	result := DisplayTitle(title)

	if result != title {
		t.Errorf("DisplayTitle(%q) = %q, expected unchanged", title, result)
	}
}

func TestDisplayTitle_ExactLimitUnchanged(t *testing.T) {
	title := strings.Repeat("a", MaxDisplayTitle)
	result := DisplayTitle(title)

	if result != title {
		t.Errorf("DisplayTitle at exact limit should be unchanged, got %q", result)
	}
}

func TestDisplayTitle_LongTitleTruncated(t *testing.T) {
	title := strings.Repeat("a", 50)
	result := DisplayTitle(title)

	expected := strings.Repeat("a", TruncatedTitleLength) + Ellipsis
	if result != expected {
		t.Errorf("DisplayTitle(%q) = %q, expected %q", title, result, expected)
	}
}

func TestDisplayTitle_MultiByteRunes(t *testing.T) {
	title := strings.Repeat("日", 40)
	result := DisplayTitle(title)

	runes := []rune(result)
	if len(runes) != TruncatedTitleLength+1 {
		t.Errorf("Expected %d runes including ellipsis, got %d", TruncatedTitleLength+1, len(runes))
	}
	if !strings.HasSuffix(result, Ellipsis) {
		t.Errorf("Truncated title should end with ellipsis, got %q", result)
	}
}

func TestEvent_IsTerminal(t *testing.T) {
	tests := []struct {
		eventType EventType
		expected  bool
	}{
		{EventPlaylistInfo, false},
		{EventItemInfo, false},
		{EventProgress, false},
		{EventItemFinished, false},
		{EventMetadataSaved, false},
		{EventError, false},
		{EventCompleted, true},
		{EventFailed, true},
	}

	for _, test := range tests {
		ev := Event{Type: test.eventType}
		if ev.IsTerminal() != test.expected {
			t.Errorf("Event(%s).IsTerminal() = %v, expected %v", test.eventType, ev.IsTerminal(), test.expected)
		}
	}
}

func TestEventType_String(t *testing.T) {
	if EventMetadataSaved.String() != "metadata_saved" {
		t.Errorf("EventMetadataSaved.String() = %s", EventMetadataSaved.String())
	}
	if EventType(99).String() != "unknown" {
		t.Errorf("Unknown event type should stringify as 'unknown'")
	}
}
