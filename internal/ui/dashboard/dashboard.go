// Package dashboard renders the dashboard document and exposes its
// collapsible panels to the desktop UI.
package dashboard

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"io"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"golang.org/x/net/html"

	"github.com/shhac/atrium/internal/locale"
	"github.com/shhac/atrium/internal/sections"
)

//go:embed dashboard.html
var defaultTemplate string

// DefaultTemplate returns the built-in dashboard document template.
func DefaultTemplate() string {
	return defaultTemplate
}

// Data is the template input for a dashboard document.
type Data struct {
	Lang       string
	Dir        string
	LocaleName string
	Origin     string
	Location   string
}

// NewData builds template data for the page at location.
func NewData(info locale.Info, origin, location string) Data {
	return Data{
		Lang:       info.Code,
		Dir:        info.Dir(),
		LocaleName: info.Name,
		Origin:     origin,
		Location:   location,
	}
}

// Render executes the document template src into w.
func Render(w io.Writer, src string, data Data) error {
	tmpl, err := template.New("dashboard").Parse(src)
	if err != nil {
		return fmt.Errorf("parse dashboard template: %w", err)
	}
	if err := tmpl.Execute(w, data); err != nil {
		return fmt.Errorf("render dashboard: %w", err)
	}
	return nil
}

// Document is a parsed dashboard with its panels wired to a controller.
type Document struct {
	Root       *html.Node
	Controller *sections.Controller
}

// Load renders src, parses the result and initializes its collapsible
// panels with the default markers.
func Load(src string, data Data) (*Document, error) {
	var buf bytes.Buffer
	if err := Render(&buf, src, data); err != nil {
		return nil, err
	}

	root, err := html.Parse(&buf)
	if err != nil {
		return nil, fmt.Errorf("parse dashboard document: %w", err)
	}

	return &Document{
		Root:       root,
		Controller: sections.Initialize(root, sections.DefaultMarkers()),
	}, nil
}

// Panels returns the document's panels in document order.
func (d *Document) Panels() []*sections.DOMPanel {
	return sections.Panels(d.Controller)
}

// Panel returns the panel whose container has the given id, or nil.
func (d *Document) Panel(id string) *sections.DOMPanel {
	for _, p := range d.Panels() {
		if p.ID() == id {
			return p
		}
	}
	return nil
}

// Attr returns an attribute of the root <html> element, e.g. "lang" or "dir".
func (d *Document) Attr(key string) string {
	for n := d.Root.FirstChild; n != nil; n = n.NextSibling {
		if n.Type != html.ElementNode || n.Data != "html" {
			continue
		}
		for _, a := range n.Attr {
			if a.Key == key {
				return a.Val
			}
		}
	}
	return ""
}

// BodyMarkdown converts a panel's body to markdown for widget.RichText.
func BodyMarkdown(p *sections.DOMPanel) (string, error) {
	md, err := htmltomarkdown.ConvertString(p.BodyHTML())
	if err != nil {
		return "", fmt.Errorf("convert panel %q: %w", p.ID(), err)
	}
	return strings.TrimSpace(md), nil
}
