package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// RunApp opens the main window around board and blocks until it is closed.
// shareLink, when set, is shown so others can follow the board. onStarted,
// if not nil, runs once the app is up.
func RunApp(title, shareLink string, board *Board, onStarted func()) {
	myApp := app.New()
	if onStarted != nil {
		myApp.Lifecycle().SetOnStarted(onStarted)
	}
	myWindow := myApp.NewWindow(title)
	myWindow.Resize(fyne.NewSize(1024, 768))

	toolbar := NewToolbar(board, myWindow)

	footer := container.NewHBox(board.statusBar, layout.NewSpacer())
	if shareLink != "" {
		link := widget.NewEntry()
		link.SetText(shareLink)
		link.Disable()
		footer.Add(widget.NewLabel("Share:"))
		footer.Add(container.New(layout.NewGridWrapLayout(fyne.NewSize(260, 36)), link))
	}

	content := container.NewBorder(toolbar, footer, nil, nil, container.NewScroll(board))
	myWindow.SetContent(content)
	myWindow.ShowAndRun()
}
