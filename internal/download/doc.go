package download

// Package download implements the background download pipeline: a worker task
// that drives the extractor off the UI goroutine, a throttler that tames the
// raw progress stream, and a coordinator that owns at most one task at a time
// and relays its ordered event stream to the presentation layer.
