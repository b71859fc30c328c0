package extract

import (
	"context"
	"fmt"
	"strings"
	"time"

	ytdlp "github.com/ytget/ytdlp/v2"
)

// DefaultResolveTimeout bounds the metadata-only pass
const DefaultResolveTimeout = 60 * time.Second

// URL parameters and separators
const (
	PlaylistParam  = "list="
	ParamSeparator = "&"
)

// YouTubeVideoURLTemplate rebuilds a watch URL from a playlist entry ID
const YouTubeVideoURLTemplate = "https://www.youtube.com/watch?v=%s"

// Resolve performs the metadata-only pass. Playlist URLs are enumerated
// without fetching bytes; anything else resolves to a single item whose title
// is unknown until fetch time (the fetch pass is the source of truth).
func (y *YTDLP) Resolve(ctx context.Context, url string) (*Resolution, error) {
	if !IsPlaylistURL(url) {
		return &Resolution{
			Playlist: false,
			Items:    []Item{{URL: url}},
		}, nil
	}

	playlistID := ExtractPlaylistID(url)
	if playlistID == "" {
		return nil, fmt.Errorf("could not extract playlist ID from URL: %s", url)
	}

	ctx, cancel := context.WithTimeout(ctx, y.timeout)
	defer cancel()

	d := ytdlp.New()
	entries, err := d.GetPlaylistItemsAll(ctx, playlistID, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to get playlist items: %w", err)
	}

	items := make([]Item, 0, len(entries))
	for _, e := range entries {
		items = append(items, Item{
			ID:    e.VideoID,
			Title: e.Title,
			URL:   fmt.Sprintf(YouTubeVideoURLTemplate, e.VideoID),
		})
	}

	return &Resolution{
		Playlist: true,
		Title:    playlistTitle(items),
		Items:    items,
	}, nil
}

// IsPlaylistURL checks whether the URL addresses a playlist
func IsPlaylistURL(url string) bool {
	return strings.Contains(url, PlaylistParam)
}

// ExtractPlaylistID extracts the playlist ID from various URL formats
func ExtractPlaylistID(url string) string {
	parts := strings.Split(url, PlaylistParam)
	if len(parts) < 2 {
		return ""
	}
	id := parts[1]
	if strings.Contains(id, ParamSeparator) {
		id = strings.Split(id, ParamSeparator)[0]
	}
	return id
}

// playlistTitle derives a display title for a playlist from its first entry
func playlistTitle(items []Item) string {
	if len(items) == 0 {
		return "Unknown Playlist"
	}
	return items[0].Title + " Playlist"
}
