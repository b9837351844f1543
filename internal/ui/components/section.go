package components

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/shhac/atrium/internal/sections"
)

// tapEvent is the event handed to the controller for a header tap.
// Fyne buttons have no default action to suppress.
type tapEvent struct{}

func (tapEvent) PreventDefault() {}

// Section renders one dashboard panel: a header button and a body that is
// shown or hidden to mirror the panel's collapsed class. The panel stays the
// state of record; the widget only follows its change notifications.
type Section struct {
	widget.BaseWidget

	panel  *sections.DOMPanel
	header *widget.Button
	body   *fyne.Container

	onToggle func(collapsed bool)
}

// NewSection creates a section for panel with the given body content.
func NewSection(panel *sections.DOMPanel, body fyne.CanvasObject) *Section {
	s := &Section{
		panel: panel,
		body:  container.NewPadded(body),
	}

	s.header = widget.NewButtonWithIcon(panel.Title(), theme.MenuExpandIcon(), func() {
		panel.Click(tapEvent{})
	})
	s.header.Alignment = widget.ButtonAlignLeading
	s.header.Importance = widget.LowImportance

	panel.OnChange(s.apply)
	s.apply(panel.Collapsed())

	s.ExtendBaseWidget(s)
	return s
}

// SetOnToggle sets a callback invoked after the section follows a state change.
func (s *Section) SetOnToggle(fn func(collapsed bool)) {
	s.onToggle = fn
}

// Tap simulates a click on the section header.
func (s *Section) Tap() {
	s.header.OnTapped()
}

// Panel returns the panel this section mirrors.
func (s *Section) Panel() *sections.DOMPanel {
	return s.panel
}

// Expanded reports whether the body is visible.
func (s *Section) Expanded() bool {
	return s.body.Visible()
}

func (s *Section) apply(collapsed bool) {
	if collapsed {
		s.header.SetIcon(theme.MenuExpandIcon())
		s.body.Hide()
	} else {
		s.header.SetIcon(theme.MenuDropDownIcon())
		s.body.Show()
	}

	if s.onToggle != nil {
		s.onToggle(collapsed)
	}
}

// CreateRenderer implements fyne.Widget.
func (s *Section) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(container.NewVBox(s.header, s.body))
}
