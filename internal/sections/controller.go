// Package sections implements accordion behavior over a fixed group of
// collapsible panels: clicking a panel's header expands that panel and
// collapses every other one.
package sections

// Panel is one collapsible section managed by a Controller.
type Panel interface {
	Collapsed() bool
	SetCollapsed(collapsed bool)
}

// Event is the input event that triggered a header click.
type Event interface {
	// PreventDefault suppresses the event's default action so that a header
	// is never treated as a navigation trigger.
	PreventDefault()
}

// Controller keeps at most one of its panels expanded.
// It is not safe for concurrent use; callers drive it from the UI thread.
type Controller struct {
	panels []Panel
}

// NewController returns a controller over the given panels. The set is fixed
// for the controller's lifetime and initial collapsed state is left as is.
func NewController(panels ...Panel) *Controller {
	return &Controller{panels: panels}
}

// HeaderClick handles a click on the header of clicked. Every managed panel
// is collapsed first, then clicked is expanded. Clicking the panel that is
// already expanded leaves it expanded.
func (c *Controller) HeaderClick(ev Event, clicked Panel) {
	if ev != nil {
		ev.PreventDefault()
	}

	for _, p := range c.panels {
		p.SetCollapsed(true)
	}

	if c.manages(clicked) {
		clicked.SetCollapsed(false)
	}
}

// Panels returns the managed panels in discovery order.
func (c *Controller) Panels() []Panel {
	out := make([]Panel, len(c.panels))
	copy(out, c.panels)
	return out
}

// Expanded returns the panels that are currently not collapsed.
func (c *Controller) Expanded() []Panel {
	var out []Panel
	for _, p := range c.panels {
		if !p.Collapsed() {
			out = append(out, p)
		}
	}
	return out
}

func (c *Controller) manages(p Panel) bool {
	for _, managed := range c.panels {
		if managed == p {
			return true
		}
	}
	return false
}
