package listing

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"
)

// jsonView is a multi-line Entry that keeps normal contrast and selection
// but refuses edits, so listings can be copied out.
type jsonView struct {
	widget.Entry
}

func newJSONView() *jsonView {
	v := &jsonView{}
	v.MultiLine = true
	v.Wrapping = fyne.TextWrapOff
	v.TextStyle = fyne.TextStyle{Monospace: true}
	v.ExtendBaseWidget(v)
	return v
}

// TypedRune blocks all character input.
func (v *jsonView) TypedRune(_ rune) {}

// TypedKey passes navigation keys only.
func (v *jsonView) TypedKey(key *fyne.KeyEvent) {
	switch key.Name {
	case fyne.KeyLeft, fyne.KeyRight, fyne.KeyUp, fyne.KeyDown,
		fyne.KeyHome, fyne.KeyEnd, fyne.KeyPageUp, fyne.KeyPageDown:
		v.Entry.TypedKey(key)
	}
}

// TypedShortcut allows copy and select-all.
func (v *jsonView) TypedShortcut(shortcut fyne.Shortcut) {
	switch shortcut.(type) {
	case *fyne.ShortcutCopy, *fyne.ShortcutSelectAll:
		v.Entry.TypedShortcut(shortcut)
	}
}
