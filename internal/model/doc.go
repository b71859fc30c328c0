package model

// Package model defines domain data structures used across the app: download
// requests, task lifecycle states, progress events, and the persisted media
// metadata record. Structures are designed for direct binding in the UI and
// explicit state transitions.
