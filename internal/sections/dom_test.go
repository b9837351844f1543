package sections

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

const dashboardFixture = `<!DOCTYPE html>
<html><body>
<div id="files" class="collapsible">
  <h2 class="collapsible-header"><a href="#files">Library files</a></h2>
  <div class="body"><p>Browse the content library.</p></div>
</div>
<div id="stats" class="collapsible collapsed">
  <h2 class="collapsible-header">Content library stats</h2>
  <p>Disk usage.</p>
</div>
<section id="downloads" class="panel collapsible collapsed">
  <header><h2 class="collapsible-header">Downloads</h2></header>
  <ul><li>none</li></ul>
</section>
<div class="collapsible"><p>no header, not a panel</p></div>
</body></html>`

func parseFixture(t *testing.T, src string) *html.Node {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(src))
	require.NoError(t, err)
	return doc
}

func render(t *testing.T, n *html.Node) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, html.Render(&buf, n))
	return buf.String()
}

func TestInitialize_DiscoversPanels(t *testing.T) {
	doc := parseFixture(t, dashboardFixture)

	c := Initialize(doc, DefaultMarkers())
	panels := Panels(c)

	require.Len(t, panels, 3)
	assert.Equal(t, "files", panels[0].ID())
	assert.Equal(t, "Library files", panels[0].Title())
	assert.Equal(t, "Content library stats", panels[1].Title())
	assert.Equal(t, "downloads", panels[2].ID())

	assert.False(t, panels[0].Collapsed(), "initial state comes from markup")
	assert.True(t, panels[1].Collapsed())
	assert.True(t, panels[2].Collapsed())
}

func TestInitialize_PrependsIndicator(t *testing.T) {
	doc := parseFixture(t, dashboardFixture)
	c := Initialize(doc, DefaultMarkers())

	for _, p := range Panels(c) {
		first := p.Header.FirstChild
		require.NotNil(t, first)
		assert.Equal(t, "span", first.Data)
		assert.True(t, hasClass(first, "collapsible-indicator"))
	}
	assert.Equal(t, 3, strings.Count(render(t, doc), `class="collapsible-indicator"`))
}

func TestDOMPanel_ClickRoutesToController(t *testing.T) {
	doc := parseFixture(t, dashboardFixture)
	c := Initialize(doc, DefaultMarkers())
	panels := Panels(c)

	ev := &fakeEvent{}
	panels[1].Click(ev)

	assert.Equal(t, 1, ev.prevented)
	assert.True(t, panels[0].Collapsed())
	assert.False(t, panels[1].Collapsed())
	assert.True(t, panels[2].Collapsed())

	out := render(t, doc)
	assert.Contains(t, out, `<div id="files" class="collapsible collapsed">`)
	assert.Contains(t, out, `<div id="stats" class="collapsible">`)
	assert.Contains(t, out, `class="panel collapsible collapsed"`)
}

func TestDOMPanel_SetCollapsedIsIdempotent(t *testing.T) {
	doc := parseFixture(t, dashboardFixture)
	p := Panels(Initialize(doc, DefaultMarkers()))[1]

	p.SetCollapsed(true)
	p.SetCollapsed(true)
	assert.Equal(t, "collapsible collapsed", attr(p.Container, "class"))

	p.SetCollapsed(false)
	p.SetCollapsed(false)
	assert.Equal(t, "collapsible", attr(p.Container, "class"))
}

func TestDOMPanel_OnChange(t *testing.T) {
	doc := parseFixture(t, dashboardFixture)
	panels := Panels(Initialize(doc, DefaultMarkers()))

	var seen []bool
	panels[0].OnChange(func(collapsed bool) { seen = append(seen, collapsed) })

	panels[2].Click(nil)
	panels[0].Click(nil)

	assert.Equal(t, []bool{true, true, false}, seen)
}

func TestDOMPanel_BodyHTML(t *testing.T) {
	doc := parseFixture(t, dashboardFixture)
	panels := Panels(Initialize(doc, DefaultMarkers()))

	body := panels[0].BodyHTML()
	assert.Contains(t, body, "<p>Browse the content library.</p>")
	assert.NotContains(t, body, "Library files")
	assert.NotContains(t, body, "collapsible-indicator")
}

func TestInitialize_CustomMarkers(t *testing.T) {
	src := `<div class="acc shut"><b class="acc-title">One</b></div>
<div class="acc"><b class="acc-title">Two</b></div>`
	doc := parseFixture(t, src)

	m := Markers{Container: "acc", Header: "acc-title", Collapsed: "shut", Indicator: "caret"}
	panels := Panels(Initialize(doc, m))

	require.Len(t, panels, 2)
	assert.True(t, panels[0].Collapsed())

	panels[0].Click(nil)
	assert.False(t, panels[0].Collapsed())
	assert.True(t, panels[1].Collapsed())
	assert.Equal(t, "acc shut", attr(panels[1].Container, "class"))
}

func TestInitialize_NestedContainerHeaderNotStolen(t *testing.T) {
	src := `<div class="collapsible" id="outer">
  <div class="collapsible" id="inner"><h3 class="collapsible-header">Inner</h3></div>
</div>`
	doc := parseFixture(t, src)

	panels := Panels(Initialize(doc, DefaultMarkers()))
	require.Len(t, panels, 1)
	assert.Equal(t, "inner", panels[0].ID())
}

func TestInitialize_EmptyDocument(t *testing.T) {
	doc := parseFixture(t, "<p>nothing here</p>")
	c := Initialize(doc, DefaultMarkers())
	assert.Empty(t, c.Panels())
	assert.NotPanics(t, func() { c.HeaderClick(nil, nil) })
}
