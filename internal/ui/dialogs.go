package ui

import (
	"bytes"
	"fmt"
	"io"
	"log"

	"RectBoard/internal/export"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"github.com/atotto/clipboard"
)

// showExport shows the exported document in a dialog with a copy button.
func showExport(w fyne.Window, b *Board) {
	text, err := b.editor.ExportJSON()
	if err != nil {
		dialog.ShowError(err, w)
		return
	}

	entry := widget.NewMultiLineEntry()
	entry.SetText(string(text))
	copyButton := widget.NewButton("Copy to clipboard", func() {
		if err := clipboard.WriteAll(string(text)); err != nil {
			dialog.ShowError(fmt.Errorf("clipboard: %w", err), w)
			return
		}
		b.SetStatus("Export copied to clipboard")
	})

	d := dialog.NewCustom("Export", "Close", container.NewBorder(nil, copyButton, nil, nil, entry), w)
	d.Resize(fyne.NewSize(560, 420))
	d.Show()
}

// showImport asks for document text and replaces the board with it.
func showImport(w fyne.Window, b *Board) {
	entry := widget.NewMultiLineEntry()
	entry.SetPlaceHolder(`[{"id":"root", ...}]`)
	pasteButton := widget.NewButton("Paste from clipboard", func() {
		text, err := clipboard.ReadAll()
		if err != nil {
			dialog.ShowError(fmt.Errorf("clipboard: %w", err), w)
			return
		}
		entry.SetText(text)
	})

	content := container.NewBorder(nil, pasteButton, nil, nil, entry)
	d := dialog.NewCustomConfirm("Import", "Import", "Cancel", content, func(ok bool) {
		if ok {
			importText(w, b, []byte(entry.Text))
		}
	}, w)
	d.Resize(fyne.NewSize(560, 420))
	d.Show()
}

func importText(w fyne.Window, b *Board, text []byte) {
	if err := b.editor.Import(text); err != nil {
		log.Printf("[UI] Import failed: %v", err)
		dialog.ShowError(err, w)
		return
	}
	b.SetStatus(fmt.Sprintf("Imported %d shapes", len(b.editor.View().Shapes)))
}

func copyExport(b *Board) {
	text, err := b.editor.ExportJSON()
	if err == nil {
		err = clipboard.WriteAll(string(text))
	}
	if err != nil {
		log.Printf("[UI] Copy failed: %v", err)
		b.SetStatus("Copy failed")
		return
	}
	b.SetStatus("Export copied to clipboard")
}

func pasteImport(w fyne.Window, b *Board) {
	text, err := clipboard.ReadAll()
	if err != nil {
		dialog.ShowError(fmt.Errorf("clipboard: %w", err), w)
		return
	}
	importText(w, b, []byte(text))
}

// saveTo asks for a destination and writes render's output there.
func saveTo(w fyne.Window, b *Board, name string, render func(io.Writer) error) {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, w)
			return
		}
		if writer == nil {
			return
		}
		defer func() {
			if err := writer.Close(); err != nil {
				log.Printf("[UI] Error closing %s: %v", writer.URI(), err)
			}
		}()

		var buf bytes.Buffer
		if err := render(&buf); err != nil {
			dialog.ShowError(err, w)
			return
		}
		if _, err := writer.Write(buf.Bytes()); err != nil {
			log.Printf("[UI] Error writing %s: %v", writer.URI(), err)
			b.SetStatus("Error writing file")
			return
		}
		b.SetStatus("Saved " + writer.URI().Name())
	}, w)
	d.SetFileName(name)
	d.Show()
}

func saveJSON(w fyne.Window, b *Board) {
	saveTo(w, b, "board.json", func(out io.Writer) error {
		text, err := b.editor.ExportJSON()
		if err != nil {
			return err
		}
		_, err = out.Write(text)
		return err
	})
}

func savePDF(w fyne.Window, b *Board) {
	saveTo(w, b, "board.pdf", func(out io.Writer) error {
		v := b.editor.View()
		return export.PDF(out, v.Shapes, v.Frame)
	})
}

func saveSVG(w fyne.Window, b *Board) {
	saveTo(w, b, "board.svg", func(out io.Writer) error {
		v := b.editor.View()
		export.SVG(out, v.Shapes, v.Frame)
		return nil
	})
}

func openJSON(w fyne.Window, b *Board) {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, w)
			return
		}
		if reader == nil {
			return
		}
		defer reader.Close()

		text, err := io.ReadAll(reader)
		if err != nil {
			log.Printf("[UI] Error reading %s: %v", reader.URI(), err)
			b.SetStatus("Error reading file")
			return
		}
		importText(w, b, text)
	}, w)
}
