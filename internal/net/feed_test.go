package net

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"RectBoard/internal/document"
	"RectBoard/internal/editor"
	"RectBoard/internal/state"

	"github.com/gorilla/websocket"
)

func dialFeed(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + FeedPath
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readDoc(t *testing.T, conn *websocket.Conn) document.Document {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg Message
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read: %v", err)
	}
	if msg.Type != "document" {
		t.Fatalf("message type %q", msg.Type)
	}
	doc, err := document.Decode(msg.Document)
	if err != nil {
		t.Fatal(err)
	}
	return doc
}

func newFeedServer(t *testing.T) (*Feed, *editor.Editor, *httptest.Server) {
	t.Helper()
	ed := editor.New(
		editor.WithFrame(state.Frame{Width: 320, Height: 240}),
		editor.WithIDSource(state.NewIDSourceForSite("feed")),
	)
	feed := NewFeed()
	feed.Attach(ed)

	srv := httptest.NewServer(feed)
	t.Cleanup(srv.Close)
	return feed, ed, srv
}

func TestFeedSendsCurrentDocumentOnConnect(t *testing.T) {
	_, _, srv := newFeedServer(t)
	conn := dialFeed(t, srv)

	doc := readDoc(t, conn)
	root, ok := doc.Root()
	if !ok || root.Width != 320 || len(doc) != 1 {
		t.Errorf("initial document = %+v", doc)
	}
}

func TestFeedPublishesChanges(t *testing.T) {
	_, ed, srv := newFeedServer(t)
	conn := dialFeed(t, srv)
	readDoc(t, conn)

	r, err := ed.AddRectangle()
	if err != nil {
		t.Fatal(err)
	}
	doc := readDoc(t, conn)
	if len(doc) != 2 || doc[1].ID != r.ID {
		t.Errorf("published document = %+v", doc)
	}
}

func TestFeedSkipsDraftOnlyChanges(t *testing.T) {
	_, ed, srv := newFeedServer(t)
	conn := dialFeed(t, srv)
	readDoc(t, conn)

	ed.ToggleDrawing()
	ed.PointerDown(10, 10)
	ed.PointerMove(50, 50)
	ed.PointerUp()

	doc := readDoc(t, conn)
	if len(doc) != 2 {
		t.Fatalf("expected the committed rectangle only, got %+v", doc)
	}
	if doc[1].Width != 40 || doc[1].Height != 40 {
		t.Errorf("committed node = %+v", doc[1])
	}
}

func TestDroppedViewerGetsCloseFrame(t *testing.T) {
	feed, _, srv := newFeedServer(t)
	conn := dialFeed(t, srv)
	readDoc(t, conn)

	feed.mu.Lock()
	for v := range feed.viewers {
		feed.removeLocked(v)
	}
	feed.mu.Unlock()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, _, err := conn.ReadMessage()
	if !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
		t.Fatalf("expected a normal close, got %v", err)
	}
	if n := feed.Viewers(); n != 0 {
		t.Errorf("%d viewers left", n)
	}
}

func TestWatch(t *testing.T) {
	_, ed, srv := newFeedServer(t)
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + FeedPath

	got := make(chan document.Document, 4)
	done := make(chan struct{})
	errc := make(chan error, 1)
	go func() {
		errc <- Watch(url, done, func(d document.Document) { got <- d })
	}()

	select {
	case <-got:
	case <-time.After(2 * time.Second):
		t.Fatal("no initial document")
	}

	if _, err := ed.AddRectangle(); err != nil {
		t.Fatal(err)
	}
	select {
	case d := <-got:
		if len(d) != 2 {
			t.Errorf("watched document = %+v", d)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no update")
	}

	close(done)
	if err := <-errc; err != nil {
		t.Errorf("Watch returned %v", err)
	}
}

func TestFeedURL(t *testing.T) {
	tests := []struct {
		link    string
		want    string
		wantErr bool
	}{
		{link: ShareLink("192.168.1.4", 8888), want: "ws://192.168.1.4:8888/feed"},
		{link: "rectboard://10.0.0.2:9000/", want: "ws://10.0.0.2:9000/feed"},
		{link: "http://10.0.0.2:9000", wantErr: true},
		{link: "rectboard://nohost", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.link, func(t *testing.T) {
			got, err := FeedURL(tt.link)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v", err)
			}
			if got != tt.want {
				t.Errorf("FeedURL = %q, want %q", got, tt.want)
			}
		})
	}
}
