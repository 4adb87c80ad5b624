package api

import (
	"bytes"
	"context"
	"errors"
	"log"
	"net/http"

	"RectBoard/internal/document"
	"RectBoard/internal/editor"
	"RectBoard/internal/export"
	"RectBoard/internal/snapshot"

	"github.com/gofiber/fiber/v3"
)

// Handler serves the board document over HTTP.
type Handler struct {
	editor    *editor.Editor
	snapshots *snapshot.Repository
}

// NewHandler builds a Handler. snapshots may be nil, in which case the
// snapshot routes answer 503.
func NewHandler(ed *editor.Editor, snapshots *snapshot.Repository) *Handler {
	return &Handler{editor: ed, snapshots: snapshots}
}

func LivenessProbe(c fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "alive"})
}

// ReadinessProbe reports ready once the editor is wired up.
func (h *Handler) ReadinessProbe(c fiber.Ctx) error {
	v := h.editor.View()
	return c.JSON(fiber.Map{
		"status": "ready",
		"mode":   v.Mode.String(),
		"shapes": len(v.Shapes),
	})
}

// GetDocument returns the current export.
func (h *Handler) GetDocument(c fiber.Ctx) error {
	body, err := h.editor.ExportJSON()
	if err != nil {
		log.Printf("[API] Export failed: %v", err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "export failed"})
	}
	c.Set("Content-Type", "application/json")
	return c.Send(body)
}

// PutDocument replaces the board with the posted document.
func (h *Handler) PutDocument(c fiber.Ctx) error {
	if err := h.editor.Import(c.Body()); err != nil {
		return importFailed(c, err)
	}
	log.Printf("[API] Document imported (%d bytes)", len(c.Body()))
	return h.GetDocument(c)
}

// GetSVG renders the board as SVG.
func (h *Handler) GetSVG(c fiber.Ctx) error {
	v := h.editor.View()
	var buf bytes.Buffer
	export.SVG(&buf, v.Shapes, v.Frame)
	c.Set("Content-Type", "image/svg+xml")
	return c.Send(buf.Bytes())
}

// GetPDF renders the board as a one-page PDF.
func (h *Handler) GetPDF(c fiber.Ctx) error {
	v := h.editor.View()
	var buf bytes.Buffer
	if err := export.PDF(&buf, v.Shapes, v.Frame); err != nil {
		log.Printf("[API] PDF render failed: %v", err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "pdf render failed"})
	}
	c.Set("Content-Type", "application/pdf")
	return c.Send(buf.Bytes())
}

// SaveSnapshot stores the current export under :name.
func (h *Handler) SaveSnapshot(c fiber.Ctx) error {
	if h.snapshots == nil {
		return snapshotsDisabled(c)
	}
	name := c.Params("name")
	s, err := h.snapshots.Save(context.Background(), name, h.editor.Export())
	if err != nil {
		log.Printf("[API] Snapshot %q not saved: %v", name, err)
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(http.StatusCreated).JSON(s)
}

// ListSnapshots lists stored snapshots, newest first.
func (h *Handler) ListSnapshots(c fiber.Ctx) error {
	if h.snapshots == nil {
		return snapshotsDisabled(c)
	}
	list, err := h.snapshots.List(context.Background())
	if err != nil {
		log.Printf("[API] Snapshot list failed: %v", err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "list failed"})
	}
	if list == nil {
		list = []snapshot.Snapshot{}
	}
	return c.JSON(list)
}

// RestoreSnapshot imports the stored snapshot :name into the editor.
func (h *Handler) RestoreSnapshot(c fiber.Ctx) error {
	if h.snapshots == nil {
		return snapshotsDisabled(c)
	}
	name := c.Params("name")
	s, err := h.snapshots.Get(context.Background(), name)
	if err != nil {
		if errors.Is(err, snapshot.ErrNotFound) {
			return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "snapshot not found"})
		}
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if err := h.editor.Import(s.Body); err != nil {
		return importFailed(c, err)
	}
	log.Printf("[API] Restored snapshot %q", name)
	return h.GetDocument(c)
}

func importFailed(c fiber.Ctx, err error) error {
	var ie *document.ImportError
	if errors.As(err, &ie) {
		log.Printf("[API] Import rejected: %v", err)
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": ie.Error(), "reason": ie.Reason})
	}
	return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
}

func snapshotsDisabled(c fiber.Ctx) error {
	return c.Status(http.StatusServiceUnavailable).JSON(fiber.Map{"error": "snapshots disabled"})
}
