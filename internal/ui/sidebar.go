package ui

import (
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/media-player/internal/config"
	"github.com/ytget/media-player/internal/library"
	"github.com/ytget/media-player/internal/model"
	"github.com/ytget/media-player/internal/platform"
	"github.com/ytget/media-player/internal/playback"
)

// SidebarWidth is the fixed width of the library panel
const SidebarWidth = 280

// Sidebar lists the media library and drives local playback of the selected
// entry
type Sidebar struct {
	window   fyne.Window
	settings *config.Settings
	store    *library.Store
	player   playback.Player

	items    []*model.MediaMetadata
	selected int

	list        *widget.List
	titleLabel  *widget.Label
	detailLabel *widget.Label
	playBtn     *widget.Button
	volume      *widget.Slider

	container *fyne.Container
	detail    *fyne.Container
}

// NewSidebar builds the library panel
func NewSidebar(window fyne.Window, settings *config.Settings, store *library.Store, player playback.Player) *Sidebar {
	s := &Sidebar{
		window:   window,
		settings: settings,
		store:    store,
		player:   player,
		selected: -1,
	}

	s.list = widget.NewList(
		func() int { return len(s.items) },
		func() fyne.CanvasObject {
			return container.NewVBox(widget.NewLabel(""), widget.NewLabel(""))
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) { s.updateListItem(id, obj) },
	)
	s.list.OnSelected = func(id widget.ListItemID) { s.onSelect(id) }

	refreshBtn := widget.NewButton("Refresh", s.Refresh)
	deleteBtn := widget.NewButton("Delete", s.onDelete)
	revealBtn := widget.NewButton("Show File", s.onReveal)
	openBtn := widget.NewButton("Open...", s.onOpenFile)

	s.titleLabel = widget.NewLabel("No selection")
	s.titleLabel.TextStyle = fyne.TextStyle{Bold: true}
	s.titleLabel.Wrapping = fyne.TextWrapWord
	s.detailLabel = widget.NewLabel("")
	s.detailLabel.Wrapping = fyne.TextWrapWord

	s.playBtn = widget.NewButton("Play", s.onTogglePlayback)
	backBtn := widget.NewButton("-5s", func() { s.skip(false) })
	fwdBtn := widget.NewButton("+5s", func() { s.skip(true) })
	stopBtn := widget.NewButton("Stop", func() {
		s.player.Stop()
		s.playBtn.SetText("Play")
	})

	s.volume = widget.NewSlider(0, 100)
	s.volume.SetValue(float64(settings.GetVolume()))
	s.player.SetVolume(settings.GetVolume())
	s.volume.OnChanged = func(v float64) {
		s.player.SetVolume(int(v))
		s.settings.SetVolume(int(v))
	}

	controls := container.NewVBox(
		container.NewHBox(backBtn, s.playBtn, stopBtn, fwdBtn),
		s.volume,
	)

	s.detail = container.NewBorder(
		container.NewVBox(s.titleLabel, s.detailLabel),
		controls,
		nil, nil,
		widget.NewLabel(""),
	)

	listPanel := container.NewBorder(
		container.NewHBox(refreshBtn, deleteBtn, revealBtn, openBtn),
		nil, nil, nil,
		s.list,
	)
	s.container = container.NewGridWrap(fyne.NewSize(SidebarWidth, 600), listPanel)

	return s
}

// Container returns the library list panel
func (s *Sidebar) Container() fyne.CanvasObject {
	return s.container
}

// DetailView returns the selected-entry panel with the playback controls
func (s *Sidebar) DetailView() fyne.CanvasObject {
	return s.detail
}

// Refresh reloads the library from disk
func (s *Sidebar) Refresh() {
	if s.store == nil {
		return
	}

	items, err := s.store.List()
	if err != nil {
		log.Printf("Failed to list library: %v", err)
		return
	}

	s.items = items
	s.selected = -1
	s.list.UnselectAll()
	s.list.Refresh()
}

func (s *Sidebar) updateListItem(id widget.ListItemID, obj fyne.CanvasObject) {
	if id >= len(s.items) {
		return
	}
	md := s.items[id]

	box := obj.(*fyne.Container)
	title := box.Objects[0].(*widget.Label)
	subtitle := box.Objects[1].(*widget.Label)

	title.SetText(model.DisplayTitle(md.GetDisplayTitle()))
	subtitle.SetText(EntrySubtitle(md))
}

// EntrySubtitle renders the uploader and duration line under a library title
func EntrySubtitle(md *model.MediaMetadata) string {
	uploader := md.Uploader
	if uploader == "" {
		uploader = "Unknown uploader"
	}
	return fmt.Sprintf("%s · %s", uploader, md.GetDurationString())
}

func (s *Sidebar) onSelect(id widget.ListItemID) {
	if id >= len(s.items) {
		return
	}
	s.selected = id
	md := s.items[id]

	s.titleLabel.SetText(md.GetDisplayTitle())
	s.detailLabel.SetText(EntryDetails(md))

	s.playBtn.SetText("Play")
	if isAudioFile(md.LocalFilePath) {
		if err := s.player.Load(md.LocalFilePath); err != nil {
			log.Printf("Failed to load %s: %v", md.LocalFilePath, err)
		}
	} else {
		s.player.Stop()
	}
}

// EntryDetails renders the multi-line description of a library entry
func EntryDetails(md *model.MediaMetadata) string {
	lines := []string{
		fmt.Sprintf("Duration: %s", md.GetDurationString()),
		fmt.Sprintf("Kind: %s", md.MediaKind),
	}
	if md.UploadDate != "" {
		lines = append(lines, fmt.Sprintf("Uploaded: %s", md.UploadDate))
	}
	if md.ViewCount > 0 {
		lines = append(lines, fmt.Sprintf("Views: %d", md.ViewCount))
	}
	if md.SourceURL != "" {
		lines = append(lines, fmt.Sprintf("Source: %s", md.SourceURL))
	}
	return strings.Join(lines, "\n")
}

func (s *Sidebar) onTogglePlayback() {
	if s.selected < 0 {
		return
	}

	md := s.items[s.selected]
	if !isAudioFile(md.LocalFilePath) {
		// Video entries open with the system player.
		if err := platform.OpenFileInManager(md.LocalFilePath); err != nil {
			log.Printf("Failed to reveal %s: %v", md.LocalFilePath, err)
		}
		return
	}

	s.player.TogglePlayback()
	if s.player.IsPlaying() {
		s.playBtn.SetText("Pause")
	} else {
		s.playBtn.SetText("Play")
	}
}

func (s *Sidebar) skip(forward bool) {
	var err error
	if forward {
		err = s.player.SkipForward()
	} else {
		err = s.player.SkipBackward()
	}
	if err != nil {
		log.Printf("Skip failed: %v", err)
	}
}

func (s *Sidebar) onDelete() {
	if s.selected < 0 || s.store == nil {
		return
	}

	md := s.items[s.selected]
	s.player.Stop()

	report := s.store.Delete(md.ID)
	if report.Failed() {
		log.Printf("Delete of %s incomplete: metadata=%v media=%v thumbnail=%v",
			md.ID, report.Metadata.Err, report.Media.Err, report.Thumbnail.Err)
		widget.ShowPopUp(widget.NewLabel("Some files could not be deleted"), s.window.Canvas())
	}

	s.Refresh()
}

// onOpenFile loads an arbitrary local audio file into the player
func (s *Sidebar) onOpenFile() {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		path := reader.URI().Path()
		reader.Close()

		if !isAudioFile(path) {
			widget.ShowPopUp(widget.NewLabel("Only mp3, wav and flac files can be played"), s.window.Canvas())
			return
		}
		if err := s.player.Load(path); err != nil {
			log.Printf("Failed to load %s: %v", path, err)
			return
		}

		s.titleLabel.SetText(filepath.Base(path))
		s.detailLabel.SetText("Local file")
		s.player.Play()
		s.playBtn.SetText("Pause")
	}, s.window)
}

func (s *Sidebar) onReveal() {
	if s.selected < 0 {
		return
	}
	if err := platform.OpenFileInManager(s.items[s.selected].LocalFilePath); err != nil {
		log.Printf("Failed to reveal file: %v", err)
	}
}

// isAudioFile reports whether the native player can decode the file; anything
// else is handed to the system
func isAudioFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3", ".wav", ".flac":
		return true
	default:
		return false
	}
}
