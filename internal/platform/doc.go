package platform

// Package platform holds filesystem helpers and the OS-specific glue for
// revealing downloaded media in the system file manager.
