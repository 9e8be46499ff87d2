package main

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"github.com/ytget/yt-browser/internal/download"
	"github.com/ytget/yt-browser/internal/fetch"
	"github.com/ytget/yt-browser/internal/ui"
)

func main() {
	// Create new Fyne app
	myApp := app.NewWithID("com.ytget.yt-browser")
	myApp.Settings().SetTheme(ui.NewCompactTheme())
	myWindow := myApp.NewWindow("YT Browser")
	myWindow.Resize(fyne.NewSize(900, 640))

	// Create and setup UI
	rootUI := ui.NewRootUI(myWindow, myApp, fetch.NewService(fetch.NewBinaryDumper()), download.NewQueue(2))
	myWindow.SetOnClosed(rootUI.Shutdown)

	// Show and run
	myWindow.ShowAndRun()
}
