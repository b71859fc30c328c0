// Package ui implements the Fyne desktop shell: the download form with live
// progress, the library sidebar and the playback controls.
package ui
