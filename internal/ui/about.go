package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/shhac/atrium/internal/locale"
	"github.com/shhac/atrium/internal/model"
)

// Version is set at build time via ldflags:
//
//	go build -ldflags "-X github.com/shhac/atrium/internal/ui.Version=1.2.3"
var Version = "dev"

// ShowAboutDialog displays the Atrium version together with the server
// and locale the dashboard is currently showing.
func ShowAboutDialog(parent fyne.Window, state *model.DashboardState) {
	dialog.ShowCustom("About Atrium", "Close", aboutContent(state), parent)
}

func aboutContent(state *model.DashboardState) *fyne.Container {
	location, _ := state.Location.Get()
	code, _ := state.Locale.Get()
	info := locale.Describe(code)

	localeText := "none"
	if code != "" {
		localeText = info.Name + " (" + code + ")"
	}

	details := widget.NewForm(
		widget.NewFormItem("Server", widget.NewLabel(location)),
		widget.NewFormItem("Locale", widget.NewLabel(localeText)),
		widget.NewFormItem("Text direction", widget.NewLabel(info.Dir())),
	)

	return container.NewVBox(
		widget.NewLabelWithStyle("Atrium "+Version, fyne.TextAlignCenter, fyne.TextStyle{Bold: true}),
		widget.NewLabel("Locale-aware dashboard for Librarian content servers"),
		widget.NewSeparator(),
		details,
	)
}

// ShowShortcutDialog displays a reference of all keyboard shortcuts.
func ShowShortcutDialog(parent fyne.Window) {
	shortcuts := []struct{ action, key string }{
		{"List Files", "⌘ Return"},
		{"Focus Location Bar", "⌘ K"},
		{"Reload Dashboard", "⌘ R"},
		{"Expand Section 1-9", "⌘ 1 … 9"},
	}

	grid := container.NewGridWithColumns(2)
	for _, s := range shortcuts {
		grid.Add(widget.NewLabel(s.action))
		grid.Add(widget.NewLabelWithStyle(s.key, fyne.TextAlignTrailing, fyne.TextStyle{Monospace: true}))
	}

	dialog.ShowCustom("Keyboard Shortcuts", "Close", container.NewVScroll(grid), parent)
}
