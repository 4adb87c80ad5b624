package net

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"RectBoard/internal/document"
	"RectBoard/internal/editor"

	"github.com/gorilla/websocket"
)

// FeedPath is the HTTP path the feed is served on.
const FeedPath = "/feed"

const (
	sendBuffer   = 8
	writeTimeout = 5 * time.Second
)

// Message is what the feed sends to viewers.
type Message struct {
	Type     string          `json:"type"`
	Document json.RawMessage `json:"document,omitempty"`
}

type viewer struct {
	conn *websocket.Conn
	send chan []byte
}

// Feed publishes every exported document to connected websocket viewers.
// Viewers are read-only: anything they send is ignored.
type Feed struct {
	viewers  map[*viewer]bool
	current  []byte
	mu       sync.RWMutex
	upgrader websocket.Upgrader
}

func NewFeed() *Feed {
	return &Feed{
		viewers: make(map[*viewer]bool),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Attach publishes the editor's committed shapes whenever they change. Views
// older than the last one published are skipped.
func (f *Feed) Attach(ed *editor.Editor) {
	var (
		mu      sync.Mutex
		last    uint64
		started bool
	)
	publish := func(v editor.View) {
		mu.Lock()
		defer mu.Unlock()
		if started && v.Revision < last {
			return
		}
		started, last = true, v.Revision

		body, err := document.Encode(document.Export(v.Shapes, v.Frame))
		if err != nil {
			log.Printf("[FEED] Encode failed: %v", err)
			return
		}
		f.Publish(body)
	}
	ed.OnChange(publish)
	publish(ed.View())
}

// Publish sends doc to every viewer. Repeats of the last document are
// dropped.
func (f *Feed) Publish(doc []byte) {
	data, err := json.Marshal(Message{Type: "document", Document: doc})
	if err != nil {
		log.Printf("[FEED] Marshal failed: %v", err)
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if bytes.Equal(f.current, data) {
		return
	}
	f.current = data
	for v := range f.viewers {
		select {
		case v.send <- data:
		default:
			log.Printf("[FEED] Dropping slow viewer %s", v.conn.RemoteAddr())
			f.removeLocked(v)
		}
	}
}

// Viewers returns the number of connected viewers.
func (f *Feed) Viewers() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.viewers)
}

func (f *Feed) add(v *viewer) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.viewers[v] = true
	if f.current != nil {
		v.send <- f.current
	}
	log.Printf("[FEED] Viewer connected: %s", v.conn.RemoteAddr())
}

func (f *Feed) remove(v *viewer) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.removeLocked(v)
}

func (f *Feed) removeLocked(v *viewer) {
	if !f.viewers[v] {
		return
	}
	delete(f.viewers, v)
	close(v.send)
	log.Printf("[FEED] Viewer removed: %s", v.conn.RemoteAddr())
}

// ServeHTTP upgrades the request and keeps the viewer until it disconnects.
func (f *Feed) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := f.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[FEED] Upgrade failed: %v", err)
		return
	}
	v := &viewer{conn: conn, send: make(chan []byte, sendBuffer)}
	f.add(v)

	go v.writeLoop()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
	f.remove(v)
}

func (v *viewer) writeLoop() {
	defer v.conn.Close()
	for data := range v.send {
		if err := v.conn.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
			log.Printf("[FEED] Write deadline for %s: %v", v.conn.RemoteAddr(), err)
			return
		}
		if err := v.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			log.Printf("[FEED] Write to %s failed: %v", v.conn.RemoteAddr(), err)
			return
		}
	}
	closing := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	if err := v.conn.WriteMessage(websocket.CloseMessage, closing); err != nil {
		log.Printf("[FEED] Close frame to %s failed: %v", v.conn.RemoteAddr(), err)
	}
}

// Start serves the feed on port in the background.
func (f *Feed) Start(port int) *http.Server {
	mux := http.NewServeMux()
	mux.Handle(FeedPath, f)
	srv := &http.Server{Addr: fmt.Sprintf(":%d", port), Handler: mux}

	go func() {
		log.Printf("[FEED] Listening on port %d", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("[FEED] Server stopped: %v", err)
		}
	}()
	return srv
}

// Watch connects to a feed at url and calls fn with every document received
// until the connection drops or done is closed.
func Watch(url string, done <-chan struct{}, fn func(document.Document)) error {
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return fmt.Errorf("dial feed: %w", err)
	}
	defer conn.Close()

	go func() {
		<-done
		conn.Close()
	}()

	for {
		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			select {
			case <-done:
				return nil
			default:
				return fmt.Errorf("read feed: %w", err)
			}
		}
		if msg.Type != "document" {
			continue
		}
		doc, err := document.Decode(msg.Document)
		if err != nil {
			log.Printf("[FEED] Ignoring bad document: %v", err)
			continue
		}
		fn(doc)
	}
}
