package ui

import (
	"fmt"
	"strings"

	"RectBoard/internal/editor"
	"RectBoard/internal/state"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

const (
	drawLabel   = "Add Rectangle"
	cancelLabel = "Cancel Drawing"
)

func drawButtonLabel(m state.Mode) string {
	if m == state.ModeDrawing {
		return cancelLabel
	}
	return drawLabel
}

// describeSelection is the text shown next to the toolbar for v.
func describeSelection(v editor.View, overlaps []string) string {
	r, ok := v.Selected()
	if !ok {
		return fmt.Sprintf("%d shapes", len(v.Shapes))
	}
	text := fmt.Sprintf("%s at (%g, %g) %gx%g", r.ID, r.X, r.Y, r.Width, r.Height)
	if len(overlaps) > 0 {
		text += " | overlaps " + strings.Join(overlaps, ", ")
	}
	return text
}

// NewToolbar builds the toolbar for board. w is the parent of the dialogs it
// opens.
func NewToolbar(b *Board, w fyne.Window) fyne.CanvasObject {
	ed := b.editor

	drawButton := widget.NewButtonWithIcon(drawLabel, theme.ContentAddIcon(), ed.ToggleDrawing)
	selection := widget.NewLabel("")

	update := func(v editor.View) {
		drawButton.SetText(drawButtonLabel(v.Mode))
		var overlaps []string
		if v.SelectedID != "" {
			overlaps = ed.Overlaps(v.SelectedID)
		}
		selection.SetText(describeSelection(v, overlaps))
	}
	ed.OnChange(func(v editor.View) {
		fyne.Do(func() { update(v) })
	})
	update(ed.View())

	tb := widget.NewToolbar(
		widget.NewToolbarAction(theme.ViewFullScreenIcon(), func() {
			if r, err := ed.AddRectangle(); err != nil {
				b.SetStatus("Could not add rectangle: " + err.Error())
			} else {
				b.SetStatus("Added " + r.ID)
			}
		}),
		widget.NewToolbarAction(theme.DeleteIcon(), func() {
			if !ed.DeleteSelected() {
				b.SetStatus("Nothing selected")
			}
		}),
		widget.NewToolbarAction(theme.MoveUpIcon(), func() {
			if !ed.MoveSelectedToFront() {
				b.SetStatus("Nothing selected")
			}
		}),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.UploadIcon(), func() { showExport(w, b) }),
		widget.NewToolbarAction(theme.DownloadIcon(), func() { showImport(w, b) }),
		widget.NewToolbarAction(theme.ContentCopyIcon(), func() { copyExport(b) }),
		widget.NewToolbarAction(theme.ContentPasteIcon(), func() { pasteImport(w, b) }),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.DocumentSaveIcon(), func() { saveJSON(w, b) }),
		widget.NewToolbarAction(theme.FolderOpenIcon(), func() { openJSON(w, b) }),
		widget.NewToolbarAction(theme.DocumentPrintIcon(), func() { savePDF(w, b) }),
		widget.NewToolbarAction(theme.FileImageIcon(), func() { saveSVG(w, b) }),
	)

	return container.NewHBox(
		drawButton,
		widget.NewSeparator(),
		tb,
		layout.NewSpacer(),
		selection,
	)
}
