package ui

import (
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
)

var sectionKeys = []fyne.KeyName{
	fyne.Key1, fyne.Key2, fyne.Key3, fyne.Key4, fyne.Key5,
	fyne.Key6, fyne.Key7, fyne.Key8, fyne.Key9,
}

// setupKeyboardShortcuts configures all keyboard shortcuts for the main window
func (w *MainWindow) setupKeyboardShortcuts() {
	canvas := w.window.Canvas()

	// Cmd+Enter: List files
	canvas.AddShortcut(&desktop.CustomShortcut{
		KeyName:  fyne.KeyReturn,
		Modifier: fyne.KeyModifierSuper, // Cmd on macOS, Win on Windows
	}, func(fyne.Shortcut) {
		w.logger.Debug("keyboard shortcut: list files")
		w.listingPanel.List()
	})

	// Cmd+K: Focus location bar
	canvas.AddShortcut(&desktop.CustomShortcut{
		KeyName:  fyne.KeyK,
		Modifier: fyne.KeyModifierSuper,
	}, func(fyne.Shortcut) {
		w.logger.Debug("keyboard shortcut: focus location bar")
		canvas.Focus(w.locationEntry)
	})

	// Cmd+R: Reload dashboard
	canvas.AddShortcut(&desktop.CustomShortcut{
		KeyName:  fyne.KeyR,
		Modifier: fyne.KeyModifierSuper,
	}, func(fyne.Shortcut) {
		w.logger.Debug("keyboard shortcut: reload dashboard")
		w.reloadDashboard()
	})

	// Cmd+1..9: Expand the nth section
	for i, key := range sectionKeys {
		canvas.AddShortcut(&desktop.CustomShortcut{
			KeyName:  key,
			Modifier: fyne.KeyModifierSuper,
		}, func(fyne.Shortcut) {
			w.logger.Debug("keyboard shortcut: expand section", slog.Int("index", i))
			w.ExpandSection(i)
		})
	}

	w.logger.Info("keyboard shortcuts configured")
}
