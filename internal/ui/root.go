package ui

import (
	"errors"
	"fmt"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/media-player/internal/config"
	"github.com/ytget/media-player/internal/download"
	"github.com/ytget/media-player/internal/library"
	"github.com/ytget/media-player/internal/model"
	"github.com/ytget/media-player/internal/platform"
	"github.com/ytget/media-player/internal/playback"
)

// RootUI represents the main UI structure
type RootUI struct {
	window      fyne.Window
	settings    *config.Settings
	coordinator *download.Coordinator
	player      playback.Player
	store       *library.Store

	urlEntry    *widget.Entry
	kindSelect  *widget.Select
	downloadBtn *widget.Button
	cancelBtn   *widget.Button
	statusLabel *widget.Label
	progressBar *widget.ProgressBar

	sidebar *Sidebar
}

// NewRootUI creates and initializes the main UI
func NewRootUI(window fyne.Window, app fyne.App, coordinator *download.Coordinator, player playback.Player) *RootUI {
	settings := config.NewSettings(app)

	downloadsDir := settings.GetDownloadDirectory()
	if err := platform.CreateDirectoryIfNotExists(downloadsDir); err != nil {
		log.Printf("Failed to ensure downloads dir: %v", err)
	}

	store, err := library.NewStore(downloadsDir)
	if err != nil {
		log.Printf("Failed to open library store: %v", err)
	}

	ui := &RootUI{
		window:      window,
		settings:    settings,
		coordinator: coordinator,
		player:      player,
		store:       store,
	}

	coordinator.SetEventCallback(ui.onDownloadEvent)

	ui.setupUI()

	window.SetCloseIntercept(func() {
		if !coordinator.Shutdown(download.DefaultShutdownTimeout) {
			log.Printf("Closing with a download still stopping")
		}
		if err := player.Close(); err != nil {
			log.Printf("Failed to close player: %v", err)
		}
		window.Close()
	})

	return ui
}

func (ui *RootUI) setupUI() {
	ui.urlEntry = widget.NewEntry()
	ui.urlEntry.SetPlaceHolder("Video or playlist URL")

	kinds := model.MediaKinds()
	options := make([]string, len(kinds))
	for i, kind := range kinds {
		options[i] = kind.String()
	}
	ui.kindSelect = widget.NewSelect(options, func(selected string) {
		ui.settings.SetMediaKind(model.MediaKind(selected))
	})
	ui.kindSelect.SetSelected(ui.settings.GetMediaKind().String())

	ui.downloadBtn = widget.NewButton("Download", ui.onDownload)
	ui.cancelBtn = widget.NewButton("Cancel", ui.onCancel)
	ui.cancelBtn.Disable()

	ui.statusLabel = widget.NewLabel("Ready")
	ui.statusLabel.Truncation = fyne.TextTruncateEllipsis
	ui.progressBar = widget.NewProgressBar()

	ui.sidebar = NewSidebar(ui.window, ui.settings, ui.store, ui.player)

	topPanel := container.NewBorder(
		nil, nil, nil,
		container.NewHBox(ui.kindSelect, ui.downloadBtn, ui.cancelBtn),
		ui.urlEntry,
	)
	downloadPanel := container.NewVBox(topPanel, ui.progressBar, ui.statusLabel)

	content := container.NewBorder(
		downloadPanel,          // top
		nil,                    // bottom
		ui.sidebar.Container(), // left
		nil,                    // right
		ui.sidebar.DetailView(),
	)

	ui.window.SetContent(content)
	ui.sidebar.Refresh()
}

// onDownload validates the form and starts a new download task
func (ui *RootUI) onDownload() {
	url := ui.urlEntry.Text
	if url == "" {
		ui.statusLabel.SetText("Enter a URL first")
		return
	}

	req := model.DownloadRequest{
		URL:            url,
		DestinationDir: ui.settings.GetDownloadDirectory(),
		Kind:           model.MediaKind(ui.kindSelect.Selected),
	}

	_, err := ui.coordinator.Start(req)
	if errors.Is(err, download.ErrDownloadActive) {
		widget.ShowPopUp(widget.NewLabel("A download is already in progress"), ui.window.Canvas())
		return
	}
	if err != nil {
		ui.statusLabel.SetText(fmt.Sprintf("Failed to start: %v", err))
		return
	}

	ui.downloadBtn.Disable()
	ui.cancelBtn.Enable()
	ui.progressBar.SetValue(0)
	ui.statusLabel.SetText("Starting...")
}

// onCancel requests cooperative stop of the active download
func (ui *RootUI) onCancel() {
	ui.coordinator.Cancel()
	ui.statusLabel.SetText("Cancelling...")
	ui.cancelBtn.Disable()
	ui.downloadBtn.Enable()
}

// onDownloadEvent runs on the coordinator's relay goroutine and hops to the
// UI thread for every update
func (ui *RootUI) onDownloadEvent(ev model.Event) {
	fyne.Do(func() {
		switch ev.Type {
		case model.EventProgress:
			ui.progressBar.SetValue(ev.Percent / 100)
		case model.EventMetadataSaved:
			if ui.settings.GetAutoRefreshLibrary() {
				ui.sidebar.Refresh()
			}
		}

		if text := StatusText(ev); text != "" {
			ui.statusLabel.SetText(text)
		}

		if ev.IsTerminal() {
			ui.downloadBtn.Enable()
			ui.cancelBtn.Disable()
			switch ev.Type {
			case model.EventCompleted:
				ui.progressBar.SetValue(1)
				ui.urlEntry.SetText("")
			case model.EventFailed:
				widget.ShowPopUp(widget.NewLabel(ev.Message), ui.window.Canvas())
			}
		}
	})
}

// StatusText renders one event as a single status line, or "" when the event
// carries nothing worth showing
func StatusText(ev model.Event) string {
	switch ev.Type {
	case model.EventPlaylistInfo:
		return fmt.Sprintf("Playlist: %s (%d items)", ev.DisplayTitle, ev.TotalItems)
	case model.EventItemInfo:
		return fmt.Sprintf("Found: %s", ev.DisplayTitle)
	case model.EventProgress:
		text := fmt.Sprintf("Downloading %d/%d: %s (%.1f%%", ev.ItemIndex, ev.ItemCount, ev.DisplayTitle, ev.Percent)
		if ev.Speed != "" {
			text += ", " + ev.Speed
		}
		if ev.ETA != "" {
			text += ", ETA " + ev.ETA
		}
		return text + ")"
	case model.EventItemFinished:
		return fmt.Sprintf("Finished %d/%d: %s", ev.ItemIndex, ev.ItemCount, ev.DisplayTitle)
	case model.EventMetadataSaved:
		return fmt.Sprintf("Saved to library: %s", ev.DisplayTitle)
	case model.EventError, model.EventCompleted, model.EventFailed:
		return ev.Message
	default:
		return ""
	}
}
