package sections

import (
	"bytes"
	"slices"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Markers names the classes that identify panels in a document.
type Markers struct {
	Container string // class of the collapsible container element
	Header    string // class of the header element inside a container
	Collapsed string // class present on a container while it is collapsed
	Indicator string // class of the indicator span prepended to each header
}

// DefaultMarkers returns the class names used by the dashboard markup.
func DefaultMarkers() Markers {
	return Markers{
		Container: "collapsible",
		Header:    "collapsible-header",
		Collapsed: "collapsed",
		Indicator: "collapsible-indicator",
	}
}

// DOMPanel is a panel backed by a container element in an HTML document.
// Collapsed state lives in the container's class attribute.
type DOMPanel struct {
	Container *html.Node
	Header    *html.Node

	markers  Markers
	title    string
	onClick  func(ev Event)
	onChange func(collapsed bool)
}

// Initialize scans root for panels, prepends an indicator into each header
// and attaches a click handler that routes to the returned controller.
// Panels must already exist in the document; none are created or removed.
func Initialize(root *html.Node, m Markers) *Controller {
	panels := scan(root, m)

	c := &Controller{panels: make([]Panel, 0, len(panels))}
	for _, p := range panels {
		p.title = strings.Join(strings.Fields(textContent(p.Header)), " ")
		p.Header.InsertBefore(indicatorNode(m.Indicator), p.Header.FirstChild)
		p.onClick = func(ev Event) {
			c.HeaderClick(ev, p)
		}
		c.panels = append(c.panels, p)
	}
	return c
}

// Panels returns the DOM panels managed by c, skipping panels of other types.
func Panels(c *Controller) []*DOMPanel {
	var out []*DOMPanel
	for _, p := range c.panels {
		if dp, ok := p.(*DOMPanel); ok {
			out = append(out, dp)
		}
	}
	return out
}

// Click dispatches a header click to the handler attached at initialization.
func (p *DOMPanel) Click(ev Event) {
	if p.onClick != nil {
		p.onClick(ev)
	}
}

// OnChange registers fn to be called whenever SetCollapsed runs.
func (p *DOMPanel) OnChange(fn func(collapsed bool)) {
	p.onChange = fn
}

// Collapsed reports whether the container carries the collapsed class.
func (p *DOMPanel) Collapsed() bool {
	return slices.Contains(classes(p.Container), p.markers.Collapsed)
}

// SetCollapsed adds or removes the collapsed class on the container.
func (p *DOMPanel) SetCollapsed(collapsed bool) {
	current := classes(p.Container)
	has := slices.Contains(current, p.markers.Collapsed)
	switch {
	case collapsed && !has:
		current = append(current, p.markers.Collapsed)
	case !collapsed && has:
		current = slices.DeleteFunc(current, func(c string) bool { return c == p.markers.Collapsed })
	}
	setAttr(p.Container, "class", strings.Join(current, " "))

	if p.onChange != nil {
		p.onChange(collapsed)
	}
}

// Title returns the header's text as it was before the indicator was added.
func (p *DOMPanel) Title() string {
	return p.title
}

// ID returns the container's id attribute, or "".
func (p *DOMPanel) ID() string {
	return attr(p.Container, "id")
}

// BodyHTML renders the container's children other than the header.
func (p *DOMPanel) BodyHTML() string {
	var buf bytes.Buffer
	for c := p.Container.FirstChild; c != nil; c = c.NextSibling {
		if c == p.Header {
			continue
		}
		_ = html.Render(&buf, c)
	}
	return strings.TrimSpace(buf.String())
}

// scan finds containers in document order. A container's header is the
// first descendant carrying the header class, not counting descendants of
// nested containers; containers without one are not panels.
func scan(root *html.Node, m Markers) []*DOMPanel {
	var panels []*DOMPanel

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && hasClass(n, m.Container) {
			if header := findHeader(n, m); header != nil {
				panels = append(panels, &DOMPanel{Container: n, Header: header, markers: m})
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)

	return panels
}

func findHeader(n *html.Node, m Markers) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		if hasClass(c, m.Header) {
			return c
		}
		if hasClass(c, m.Container) {
			continue
		}
		if found := findHeader(c, m); found != nil {
			return found
		}
	}
	return nil
}

func indicatorNode(class string) *html.Node {
	span := &html.Node{
		Type:     html.ElementNode,
		Data:     atom.Span.String(),
		DataAtom: atom.Span,
		Attr: []html.Attribute{
			{Key: "class", Val: class},
			{Key: "aria-hidden", Val: "true"},
		},
	}
	span.AppendChild(&html.Node{Type: html.TextNode, Data: "▸"})
	return span
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

func classes(n *html.Node) []string {
	return strings.Fields(attr(n, "class"))
}

func hasClass(n *html.Node, class string) bool {
	return slices.Contains(classes(n), class)
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func setAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}
