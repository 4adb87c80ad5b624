// Package document converts the shape collection to and from the persisted
// tree form: a flat list of nodes where the "root" node carries the canvas
// size and references every shape by id in paint order.
package document

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image/color"
	"log"

	"RectBoard/internal/state"
)

// RootID is the reserved id of the canvas node.
const RootID = "root"

// Node is one entry of a document.
type Node struct {
	ID       string   `json:"id"`
	Width    float64  `json:"width"`
	Height   float64  `json:"height"`
	X        float64  `json:"x"`
	Y        float64  `json:"y"`
	Children []string `json:"children"`
}

// Document is the persisted form of a board.
type Document []Node

// Root returns the root node.
func (d Document) Root() (Node, bool) {
	for _, n := range d {
		if n.ID == RootID {
			return n, true
		}
	}
	return Node{}, false
}

// Export builds the document for a collection: the root node first, then one
// node per shape in the same order.
func Export(shapes []state.Rectangle, frame state.Frame) Document {
	children := make([]string, 0, len(shapes))
	for _, r := range shapes {
		children = append(children, r.ID)
	}

	doc := make(Document, 0, len(shapes)+1)
	doc = append(doc, Node{
		ID:       RootID,
		Width:    frame.Width,
		Height:   frame.Height,
		Children: children,
	})
	for _, r := range shapes {
		doc = append(doc, Node{
			ID:       r.ID,
			Width:    r.Width,
			Height:   r.Height,
			X:        r.X,
			Y:        r.Y,
			Children: []string{},
		})
	}
	return doc
}

// Import validates a document and returns the collection and frame it
// describes. Every non-root node becomes a shape, in listed order, whether or
// not the root references it. Fill is not part of the document, so each shape
// gets a fresh one from fill (state.RandomFill when nil).
func Import(doc Document, fill func() color.NRGBA) ([]state.Rectangle, state.Frame, error) {
	if fill == nil {
		fill = state.RandomFill
	}

	roots := 0
	var root Node
	for _, n := range doc {
		if n.ID == RootID {
			roots++
			root = n
		}
	}
	switch {
	case roots == 0:
		return nil, state.Frame{}, &ImportError{Reason: ReasonMissingRoot}
	case roots > 1:
		return nil, state.Frame{}, &ImportError{Reason: ReasonMultipleRoots}
	}
	if root.Width <= 0 || root.Height <= 0 {
		return nil, state.Frame{}, &ImportError{Reason: ReasonInvalidFrame}
	}

	seen := make(map[string]struct{}, len(doc))
	shapes := make([]state.Rectangle, 0, len(doc)-1)
	for i, n := range doc {
		if n.ID == RootID {
			continue
		}
		if n.ID == "" {
			return nil, state.Frame{}, &ImportError{Reason: ReasonInvalidNode, Err: fmt.Errorf("node %d has no id", i)}
		}
		if _, dup := seen[n.ID]; dup {
			return nil, state.Frame{}, &ImportError{Reason: ReasonDuplicateID, Err: fmt.Errorf("node %q", n.ID)}
		}
		if n.Width < 0 || n.Height < 0 {
			return nil, state.Frame{}, &ImportError{Reason: ReasonInvalidNode, Err: fmt.Errorf("node %q has negative size", n.ID)}
		}
		seen[n.ID] = struct{}{}
		shapes = append(shapes, state.Rectangle{
			ID:     n.ID,
			X:      n.X,
			Y:      n.Y,
			Width:  n.Width,
			Height: n.Height,
			Fill:   fill(),
		})
	}

	if orphans := Orphans(doc); len(orphans) > 0 {
		log.Printf("[CODEC] %d node(s) not referenced by root: %v", len(orphans), orphans)
	}
	return shapes, state.Frame{Width: root.Width, Height: root.Height}, nil
}

// Orphans lists non-root node ids that the root does not reference.
func Orphans(doc Document) []string {
	root, ok := doc.Root()
	if !ok {
		return nil
	}
	referenced := make(map[string]struct{}, len(root.Children))
	for _, id := range root.Children {
		referenced[id] = struct{}{}
	}
	var orphans []string
	for _, n := range doc {
		if n.ID == RootID {
			continue
		}
		if _, ok := referenced[n.ID]; !ok {
			orphans = append(orphans, n.ID)
		}
	}
	return orphans
}

// Encode renders the document as indented JSON.
func Encode(doc Document) ([]byte, error) {
	return json.MarshalIndent(doc, "", "  ")
}

// Decode parses document text. Anything that is not a JSON array of nodes is
// reported as a parse failure.
func Decode(text []byte) (Document, error) {
	text = bytes.TrimSpace(text)
	if len(text) == 0 {
		return nil, &ImportError{Reason: ReasonParse, Err: fmt.Errorf("empty input")}
	}
	var doc Document
	if err := json.Unmarshal(text, &doc); err != nil {
		return nil, &ImportError{Reason: ReasonParse, Err: err}
	}
	return doc, nil
}
