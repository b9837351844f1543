package errors

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/data/binding"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/shhac/atrium/internal/model"
)

// StatusBar shows the state of the last listing request. Each state uses a
// distinct icon shape, not only a color:
//   - idle: empty radio button
//   - loading: circular arrows
//   - ready: checkmark
//   - error: X
type StatusBar struct {
	widget.BaseWidget

	state       *model.StatusState
	statusLabel *widget.Label
	indicator   *widget.Icon
	location    *widget.Label
}

// NewStatusBar creates a status bar bound to state. The trailing label
// follows the current location.
func NewStatusBar(state *model.StatusState, location binding.String) *StatusBar {
	label := widget.NewLabel("Ready")
	label.Truncation = fyne.TextTruncateEllipsis

	loc := widget.NewLabelWithData(location)
	loc.Importance = widget.LowImportance
	loc.Truncation = fyne.TextTruncateEllipsis

	s := &StatusBar{
		state:       state,
		statusLabel: label,
		indicator:   widget.NewIcon(theme.RadioButtonIcon()),
		location:    loc,
	}
	s.ExtendBaseWidget(s)

	state.State.AddListener(binding.NewDataListener(s.updateStatus))
	state.Message.AddListener(binding.NewDataListener(s.updateStatus))
	s.updateStatus()

	return s
}

func (s *StatusBar) updateStatus() {
	stateStr, _ := s.state.State.Get()
	message, _ := s.state.Message.Get()

	icon, fallback := theme.RadioButtonIcon(), "Unknown state"
	switch stateStr {
	case "idle":
		icon, fallback = theme.RadioButtonIcon(), "Ready"
	case "loading":
		icon, fallback = theme.ViewRefreshIcon(), "Loading..."
	case "ready":
		icon, fallback = theme.ConfirmIcon(), "Listing loaded"
	case "error":
		icon, fallback = theme.ErrorIcon(), "Listing unavailable"
	}

	s.indicator.SetResource(icon)
	if message == "" {
		message = fallback
	}
	s.statusLabel.SetText(message)
}

// SetState updates the status. State is one of "idle", "loading", "ready"
// or "error".
func (s *StatusBar) SetState(state string, message string) {
	_ = s.state.State.Set(state)
	_ = s.state.Message.Set(message)
	s.updateStatus()
}

// Text returns the label currently shown.
func (s *StatusBar) Text() string {
	return s.statusLabel.Text
}

// CreateRenderer implements fyne.Widget.
func (s *StatusBar) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(container.NewHBox(
		s.indicator,
		s.statusLabel,
		layout.NewSpacer(),
		s.location,
	))
}
