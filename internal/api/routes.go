// Package api exposes the board document over a small HTTP API.
package api

import (
	"time"

	"RectBoard/internal/config"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/recover"
)

// NewApp builds the fiber application with every route registered.
func NewApp(cfg *config.Config, h *Handler) *fiber.App {
	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		AppName:      "RectBoard",
	})

	app.Use(recover.New())
	app.Use(Logger())

	app.Get("/health/live", LivenessProbe)
	app.Get("/health/ready", h.ReadinessProbe)

	v1 := app.Group("/api/v1")
	v1.Get("/document", h.GetDocument)
	v1.Put("/document", h.PutDocument)
	v1.Get("/document.svg", h.GetSVG)
	v1.Get("/document.pdf", h.GetPDF)

	v1.Get("/snapshots", h.ListSnapshots)
	v1.Post("/snapshots/:name", h.SaveSnapshot)
	v1.Post("/snapshots/:name/restore", h.RestoreSnapshot)

	return app
}
