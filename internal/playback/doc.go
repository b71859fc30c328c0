package playback

// Package playback plays downloaded audio files locally. It is a standalone
// collaborator of the UI; the download pipeline never touches it.
