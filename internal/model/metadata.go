package model

import (
	"fmt"
	"strings"
	"time"
)

// MediaMetadata is the persisted per-item record, written as one JSON file
// next to an optional thumbnail in the metadata directory.
// ThumbnailFileName is null in the JSON when no thumbnail could be fetched.
type MediaMetadata struct {
	ID                string    `json:"id"`
	Title             string    `json:"title"`
	UploadDate        string    `json:"upload_date,omitempty"`
	DurationSeconds   int       `json:"duration_seconds,omitempty"`
	Uploader          string    `json:"uploader,omitempty"`
	ThumbnailURL      string    `json:"thumbnail_url,omitempty"`
	ViewCount         int64     `json:"view_count,omitempty"`
	LikeCount         int64     `json:"like_count,omitempty"`
	Description       string    `json:"description,omitempty"`
	SourceURL         string    `json:"source_url,omitempty"`
	ExtractorName     string    `json:"extractor_name,omitempty"`
	MediaKind         string    `json:"media_kind"`
	DownloadTimestamp time.Time `json:"download_timestamp"`
	LocalFilePath     string    `json:"local_file_path"`
	ThumbnailFileName *string   `json:"thumbnail_file_name"`
}

// GetDurationString returns the duration formatted as m:ss or h:mm:ss,
// or "Unknown" when the duration is not known
func (mm *MediaMetadata) GetDurationString() string {
	if mm.DurationSeconds <= 0 {
		return "Unknown"
	}

	hours := mm.DurationSeconds / 3600
	minutes := (mm.DurationSeconds % 3600) / 60
	seconds := mm.DurationSeconds % 60

	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%d:%02d", minutes, seconds)
}

// GetDisplayTitle returns title, filename, or source URL in order of preference
func (mm *MediaMetadata) GetDisplayTitle() string {
	if mm.Title != "" && !strings.HasPrefix(mm.Title, "http") {
		return mm.Title
	}

	if mm.LocalFilePath != "" {
		parts := strings.FieldsFunc(mm.LocalFilePath, func(r rune) bool {
			return r == '/' || r == '\\'
		})
		if len(parts) > 0 {
			filename := parts[len(parts)-1]
			if idx := strings.LastIndex(filename, "."); idx > 0 {
				filename = filename[:idx]
			}
			return filename
		}
	}

	return mm.SourceURL
}
