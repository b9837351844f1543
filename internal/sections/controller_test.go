package sections

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePanel struct {
	name      string
	collapsed bool
	writes    []bool
}

func (p *fakePanel) Collapsed() bool { return p.collapsed }

func (p *fakePanel) SetCollapsed(collapsed bool) {
	p.collapsed = collapsed
	p.writes = append(p.writes, collapsed)
}

type fakeEvent struct {
	prevented int
}

func (e *fakeEvent) PreventDefault() { e.prevented++ }

func newGroup(n int) ([]*fakePanel, *Controller) {
	fakes := make([]*fakePanel, n)
	panels := make([]Panel, n)
	for i := range fakes {
		fakes[i] = &fakePanel{collapsed: true}
		panels[i] = fakes[i]
	}
	return fakes, NewController(panels...)
}

func TestController_HeaderClickExpandsOnlyClicked(t *testing.T) {
	fakes, c := newGroup(3)
	fakes[0].collapsed = false

	ev := &fakeEvent{}
	c.HeaderClick(ev, fakes[1])

	assert.Equal(t, 1, ev.prevented, "default action must be suppressed")
	assert.True(t, fakes[0].collapsed)
	assert.False(t, fakes[1].collapsed)
	assert.True(t, fakes[2].collapsed)
	require.Len(t, c.Expanded(), 1)
	assert.Same(t, fakes[1], c.Expanded()[0])
}

func TestController_CollapsesBeforeExpanding(t *testing.T) {
	fakes, c := newGroup(2)

	c.HeaderClick(&fakeEvent{}, fakes[0])

	// The clicked panel sees the blanket collapse first, then the expand.
	assert.Equal(t, []bool{true, false}, fakes[0].writes)
	assert.Equal(t, []bool{true}, fakes[1].writes)
}

func TestController_ReclickKeepsPanelExpanded(t *testing.T) {
	fakes, c := newGroup(3)

	c.HeaderClick(&fakeEvent{}, fakes[2])
	c.HeaderClick(&fakeEvent{}, fakes[2])

	assert.False(t, fakes[2].collapsed)
	assert.Len(t, c.Expanded(), 1)
}

func TestController_AccordionInvariantHolds(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for _, n := range []int{1, 2, 5, 12} {
		fakes, c := newGroup(n)
		// Arbitrary initial state, including several expanded panels.
		for _, f := range fakes {
			f.collapsed = rng.Intn(2) == 0
		}

		for i := 0; i < 200; i++ {
			clicked := fakes[rng.Intn(n)]
			c.HeaderClick(&fakeEvent{}, clicked)

			expanded := c.Expanded()
			require.Len(t, expanded, 1, "n=%d click=%d", n, i)
			assert.Same(t, clicked, expanded[0])
		}
	}
}

func TestController_NilEvent(t *testing.T) {
	fakes, c := newGroup(2)
	assert.NotPanics(t, func() { c.HeaderClick(nil, fakes[0]) })
	assert.False(t, fakes[0].collapsed)
}

func TestController_UnmanagedPanelNotExpanded(t *testing.T) {
	fakes, c := newGroup(2)
	fakes[0].collapsed = false
	stranger := &fakePanel{collapsed: true}

	c.HeaderClick(&fakeEvent{}, stranger)

	assert.Empty(t, c.Expanded())
	assert.True(t, stranger.collapsed)
	assert.Empty(t, stranger.writes)
}

func TestController_InitialStateUntouched(t *testing.T) {
	fakes, c := newGroup(3)
	fakes[0].collapsed = false
	fakes[1].collapsed = false

	assert.Len(t, c.Expanded(), 2, "no click yet, markup decides")
	for _, f := range fakes {
		assert.Empty(t, f.writes)
	}
}

func TestController_PanelsIsCopy(t *testing.T) {
	_, c := newGroup(2)
	panels := c.Panels()
	panels[0] = nil
	assert.NotNil(t, c.Panels()[0])
}
