package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"RectBoard/internal/api"
	"RectBoard/internal/config"
	"RectBoard/internal/document"
	"RectBoard/internal/editor"
	boardnet "RectBoard/internal/net"
	"RectBoard/internal/snapshot"
	"RectBoard/internal/state"
	"RectBoard/internal/ui"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

func main() {
	args := os.Args
	switch {
	case len(args) > 1 && strings.HasPrefix(args[1], boardnet.LinkScheme):
		runViewer(args[1])
	case len(args) > 1 && args[1] == "browse":
		runBrowse()
	default:
		runHost(config.Load())
	}
}

func runHost(cfg *config.Config) {
	log.Printf("Starting as HOST (env: %s)", cfg.Environment)
	if cfg.CanvasWidth <= 0 || cfg.CanvasHeight <= 0 {
		log.Fatalf("Invalid canvas size %dx%d", cfg.CanvasWidth, cfg.CanvasHeight)
	}

	ed := editor.New(editor.WithFrame(state.Frame{
		Width:  float64(cfg.CanvasWidth),
		Height: float64(cfg.CanvasHeight),
	}))

	feed := boardnet.NewFeed()
	feed.Attach(ed)
	feedServer := feed.Start(cfg.FeedPort)

	if cfg.Advertise {
		mdnsServer, err := boardnet.Advertise(cfg.FeedPort)
		if err != nil {
			log.Printf("[MDNS] Not advertising: %v", err)
		} else {
			defer mdnsServer.Shutdown()
		}
	}

	var repo *snapshot.Repository
	db, err := snapshot.OpenSQLite(cfg.DBPath)
	if err == nil {
		defer db.Close()
		repo = snapshot.New(db)
		err = repo.Init(context.Background())
	}
	if err != nil {
		log.Printf("[SNAPSHOT] Snapshots disabled: %v", err)
		repo = nil
	}

	app := api.NewApp(cfg, api.NewHandler(ed, repo))
	go func() {
		addr := fmt.Sprintf(":%s", cfg.APIPort)
		log.Printf("[API] Listening on %s", addr)
		if err := app.Listen(addr); err != nil {
			log.Printf("[API] Server stopped: %v", err)
		}
	}()

	shareLink := boardnet.ShareLink(boardnet.GetOutgoingIP(), cfg.FeedPort)
	log.Printf("Share link: %s", shareLink)

	if cfg.Headless {
		stop := make(chan os.Signal, 1)
		signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
		<-stop
		log.Println("Shutting down")
	} else {
		ui.RunApp("RectBoard", shareLink, ui.NewBoard(ed), nil)
	}

	if err := app.ShutdownWithTimeout(5 * time.Second); err != nil {
		log.Printf("[API] Shutdown: %v", err)
	}
	if err := feedServer.Close(); err != nil {
		log.Printf("[FEED] Shutdown: %v", err)
	}
}

// runViewer follows a host's feed. Local edits are replaced by the next
// document the host publishes.
func runViewer(link string) {
	log.Println("Starting as VIEWER")
	url, err := boardnet.FeedURL(link)
	if err != nil {
		log.Fatalf("%v", err)
	}

	ed := editor.New()
	board := ui.NewBoard(ed)
	done := make(chan struct{})

	ui.RunApp("RectBoard viewer", "", board, func() {
		go func() {
			board.SetStatus("Connecting to " + link)
			err := boardnet.Watch(url, done, func(doc document.Document) {
				if err := ed.ImportDocument(doc); err != nil {
					log.Printf("[FEED] Dropping document from host: %v", err)
					return
				}
				board.SetStatus("Following " + link)
			})
			if err != nil {
				board.SetStatus(fmt.Sprintf("Disconnected from host: %v", err))
			}
		}()
	})
	close(done)
}

func runBrowse() {
	log.Println("Looking for boards on the local network...")
	err := boardnet.Browse(3*time.Second, func(link string) {
		fmt.Println(link)
	})
	if err != nil {
		log.Fatalf("%v", err)
	}
}
