package main

import (
	"context"
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"github.com/ytget/media-player/internal/config"
	"github.com/ytget/media-player/internal/download"
	"github.com/ytget/media-player/internal/extract"
	"github.com/ytget/media-player/internal/library"
	"github.com/ytget/media-player/internal/platform"
	"github.com/ytget/media-player/internal/playback"
	"github.com/ytget/media-player/internal/ui"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "com.ytget.media-player"
	AppName = "Media Player"

	WindowWidth  = 900
	WindowHeight = 600
)

func main() {
	fmt.Printf("%s v%s starting...\n", AppName, version)

	// Provision the yt-dlp binary before any download can need it; without
	// this, a clean machine has no extractor to run.
	if err := extract.EnsureInstalled(context.Background()); err != nil {
		fmt.Printf("failed to provision yt-dlp: %v\n", err)
	}

	myApp := app.NewWithID(AppID)

	windowTitle := fmt.Sprintf("%s v%s", AppName, version)
	myWindow := myApp.NewWindow(windowTitle)
	myWindow.Resize(fyne.NewSize(WindowWidth, WindowHeight))

	// Initialize services
	settings := config.NewSettings(myApp)
	downloadsDir := settings.GetDownloadDirectory()
	if err := platform.CreateDirectoryIfNotExists(downloadsDir); err != nil {
		fmt.Printf("failed to ensure downloads dir: %v\n", err)
	}

	coordinator := download.NewCoordinator(
		func(destDir string) extract.Extractor { return extract.NewYTDLP(destDir) },
		func(destDir string) (download.MetadataPersister, error) { return library.NewStore(destDir) },
	)
	player := playback.NewBeepPlayer()

	// Create and setup UI
	ui.NewRootUI(myWindow, myApp, coordinator, player)

	// Show and run
	myWindow.ShowAndRun()
}
