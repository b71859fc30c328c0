package library

// Package library owns the on-disk media library: per-item JSON metadata
// sidecars and optional thumbnails under <downloads>/metadata, plus listing
// and deletion of library entries.
