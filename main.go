package main

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"github.com/ytget/yt-browser/internal/download"
	"github.com/ytget/yt-browser/internal/fetch"
	"github.com/ytget/yt-browser/internal/ui"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "com.ytget.yt-browser"
	AppName = "YT Browser"

	WindowWidth  = 900
	WindowHeight = 640

	MaxParallelDownloads = 2
)

func main() {
	// Log version information
	fmt.Printf("YT Browser v%s starting...\n", version)

	// Create new Fyne app
	myApp := app.NewWithID(AppID)

	// Apply compact theme
	myApp.Settings().SetTheme(ui.NewCompactTheme())

	windowTitle := fmt.Sprintf("%s v%s", AppName, version)
	myWindow := myApp.NewWindow(windowTitle)
	myWindow.Resize(fyne.NewSize(WindowWidth, WindowHeight))

	// Initialize services
	fetchSvc := fetch.NewService(fetch.NewBinaryDumper())
	queue := download.NewQueue(MaxParallelDownloads)

	// Create and setup UI
	rootUI := ui.NewRootUI(myWindow, myApp, fetchSvc, queue)
	myWindow.SetOnClosed(rootUI.Shutdown)

	// Show and run
	myWindow.ShowAndRun()
}
