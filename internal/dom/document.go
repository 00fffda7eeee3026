// Package dom owns the in-memory document the frontend renders into.
//
// A Document is parsed once from a page shell. The containers it exposes are
// looked up at that point and stay valid for the life of the document, even
// while they are detached from the tree (the detail view swaps main's
// children out and back in).
package dom

import (
	_ "embed"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Container identifiers owned by the frontend.
const (
	AllPlayers    = "all-players-container"
	NewPlayerForm = "new-player-form"
	Main          = "main"
)

// ActionsFormID is the shell form every action button submits through.
const ActionsFormID = "player-actions"

//go:embed shell.html
var defaultShell string

// ErrMissingContainer is returned when the shell lacks a required container.
var ErrMissingContainer = errors.New("dom: missing container")

// Document is a parsed page with its owned containers.
type Document struct {
	root       *html.Node
	containers map[string]*html.Node
}

// NewDocument parses the built-in shell.
func NewDocument() (*Document, error) {
	return Parse(strings.NewReader(defaultShell))
}

// Parse reads a page shell and acquires its containers.
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("dom: parse shell: %w", err)
	}

	doc := &Document{root: root, containers: make(map[string]*html.Node, 3)}
	for _, id := range []string{AllPlayers, NewPlayerForm} {
		node := ByID(root, id)
		if node == nil {
			return nil, fmt.Errorf("%w: #%s", ErrMissingContainer, id)
		}
		doc.containers[id] = node
	}
	main := Find(root, func(n *html.Node) bool { return n.Type == html.ElementNode && n.DataAtom == atom.Main })
	if main == nil {
		return nil, fmt.Errorf("%w: <main>", ErrMissingContainer)
	}
	doc.containers[Main] = main
	return doc, nil
}

// Root returns the document node.
func (d *Document) Root() *html.Node {
	return d.root
}

// Container returns one of AllPlayers, NewPlayerForm or Main.
func (d *Document) Container(name string) *html.Node {
	return d.containers[name]
}

// Attached reports whether n is currently reachable from the document root.
func (d *Document) Attached(n *html.Node) bool {
	return Contains(d.root, n)
}

// Render serializes the whole document.
func (d *Document) Render(w io.Writer) error {
	return html.Render(w, d.root)
}

// String serializes the whole document, for logs and tests.
func (d *Document) String() string {
	var sb strings.Builder
	_ = d.Render(&sb)
	return sb.String()
}
