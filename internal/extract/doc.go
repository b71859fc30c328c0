package extract

// Package extract wraps the external media extractor behind a small
// collaborator interface: a metadata-only resolution pass (item count and
// titles, no bytes fetched) and the real fetch with progress and per-item
// result callbacks. The production implementation is built on yt-dlp via
// github.com/lrstanley/go-ytdlp, with playlist resolution via
// github.com/ytget/ytdlp/v2.
