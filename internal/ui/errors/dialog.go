package errors

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	apperrors "github.com/shhac/atrium/internal/errors"
)

// ShowError displays a classified error dialog with recovery suggestions
// and technical details. When onRetry is non-nil and the error is one the
// user can retry, the dialog offers a Retry button.
func ShowError(err error, window fyne.Window, onRetry func()) {
	if err == nil {
		return
	}

	uiErr := apperrors.ClassifyError(err)
	content := buildContent(uiErr)

	if onRetry != nil && uiErr.Severity == apperrors.SeverityError {
		d := dialog.NewCustomConfirm(uiErr.Title, "Retry", "Close", content, func(retry bool) {
			if retry {
				onRetry()
			}
		}, window)
		d.Resize(fyne.NewSize(480, 360))
		d.Show()
		return
	}

	d := dialog.NewCustom(uiErr.Title, "Close", content, window)
	d.Resize(fyne.NewSize(480, 360))
	d.Show()
}

func buildContent(uiErr *apperrors.UIError) *fyne.Container {
	msgLabel := widget.NewLabel(uiErr.Message)
	msgLabel.Wrapping = fyne.TextWrapWord
	content := container.NewVBox(msgLabel)

	if len(uiErr.Recovery) > 0 {
		content.Add(widget.NewSeparator())
		content.Add(widget.NewLabel("You can:"))
		for _, suggestion := range uiErr.Recovery {
			lbl := widget.NewLabel("• " + suggestion)
			lbl.Wrapping = fyne.TextWrapWord
			content.Add(lbl)
		}
	}

	if uiErr.Details != "" {
		details := widget.NewLabel(uiErr.Details)
		details.Wrapping = fyne.TextWrapWord
		content.Add(widget.NewAccordion(widget.NewAccordionItem("Technical Details", details)))
	}

	return content
}
