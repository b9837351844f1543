// Package listing provides the file listing panel shown inside the
// dashboard's "Library files" section.
package listing

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/data/binding"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/dustin/go-humanize"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/shhac/atrium/internal/model"
)

// UnavailableMessage is shown when a listing request yields no payload.
const UnavailableMessage = "Listing unavailable"

// Panel lets the user request a listing for a path and shows the result.
type Panel struct {
	widget.BaseWidget

	state       *model.ListingState
	pathEntry   *widget.Entry
	listButton  *widget.Button
	textDisplay *jsonView
	sizeLabel   *widget.Label
	errorLabel  *widget.Label
	fileLink    *widget.Hyperlink
	loadingBar  *widget.ProgressBarInfinite

	// Container for switching between the listing and the error view
	contentContainer *fyne.Container
	listingContent   *fyne.Container
	errorContent     *fyne.Container

	onList func(path string)
}

// NewPanel creates a listing panel bound to state.
func NewPanel(state *model.ListingState) *Panel {
	p := &Panel{state: state}
	p.ExtendBaseWidget(p)
	p.initializeComponents()
	p.setupBindings()
	return p
}

func (p *Panel) initializeComponents() {
	p.pathEntry = widget.NewEntry()
	p.pathEntry.SetPlaceHolder("/")
	p.pathEntry.OnSubmitted = func(string) { p.List() }

	p.listButton = widget.NewButtonWithIcon("List", theme.SearchIcon(), p.List)
	p.listButton.Importance = widget.HighImportance

	p.textDisplay = newJSONView()

	p.sizeLabel = widget.NewLabel("")
	p.sizeLabel.Importance = widget.LowImportance

	p.fileLink = widget.NewHyperlink("", nil)
	p.fileLink.Truncation = fyne.TextTruncateEllipsis

	p.loadingBar = widget.NewProgressBarInfinite()
	p.loadingBar.Stop()
	p.loadingBar.Hide()

	p.errorLabel = widget.NewLabel("")
	p.errorLabel.Wrapping = fyne.TextWrapWord
	p.errorLabel.Importance = widget.DangerImportance

	p.listingContent = container.NewBorder(
		nil,
		container.NewBorder(nil, nil, nil, p.sizeLabel, p.fileLink),
		nil,
		nil,
		container.NewGridWrap(fyne.NewSize(560, 240), p.textDisplay),
	)
	p.errorContent = container.NewVBox(p.errorLabel)
	p.contentContainer = container.NewStack(p.listingContent)
}

func (p *Panel) setupBindings() {
	p.pathEntry.Bind(p.state.Path)
	p.textDisplay.Bind(p.state.TextData)
	p.sizeLabel.Bind(p.state.Size)

	p.state.Loading.AddListener(binding.NewDataListener(func() {
		loading, _ := p.state.Loading.Get()
		p.showLoading(loading)
	}))

	p.state.FileURL.AddListener(binding.NewDataListener(func() {
		link, _ := p.state.FileURL.Get()
		p.showLink(link)
	}))
}

// SetOnList sets the callback invoked with the requested path.
func (p *Panel) SetOnList(fn func(path string)) {
	p.onList = fn
}

// List requests a listing for the current path.
// Nothing happens while a request is loading.
func (p *Panel) List() {
	if p.onList == nil {
		return
	}
	if loading, _ := p.state.Loading.Get(); loading {
		return
	}
	path, _ := p.state.Path.Get()
	if path == "" {
		path = "/"
	}
	p.onList(path)
}

// SetLoading marks a request as in flight.
func (p *Panel) SetLoading(loading bool) {
	_ = p.state.Loading.Set(loading)
	p.showLoading(loading)
}

// SetFileURL sets the link shown for the current path.
func (p *Panel) SetFileURL(link string) {
	_ = p.state.FileURL.Set(link)
	p.showLink(link)
}

// SetResult shows a listing payload. A nil payload is a failed listing.
func (p *Panel) SetResult(payload *structpb.Value) {
	p.SetLoading(false)

	if payload == nil {
		p.SetError(UnavailableMessage)
		return
	}

	text, size, err := Format(payload)
	if err != nil {
		p.SetError(err.Error())
		return
	}

	_ = p.state.TextData.Set(text)
	_ = p.state.Size.Set(humanize.Bytes(uint64(size)))
	_ = p.state.Error.Set("")
	p.show(p.listingContent)
}

// SetError replaces the listing with an error message.
func (p *Panel) SetError(message string) {
	_ = p.state.Error.Set(message)
	_ = p.state.TextData.Set("")
	_ = p.state.Size.Set("")
	p.errorLabel.SetText(message)
	p.show(p.errorContent)
}

// Showing reports whether the listing view (rather than the error) is active.
func (p *Panel) Showing() bool {
	return len(p.contentContainer.Objects) == 1 && p.contentContainer.Objects[0] == p.listingContent
}

func (p *Panel) show(content *fyne.Container) {
	p.contentContainer.Objects = []fyne.CanvasObject{content}
	p.contentContainer.Refresh()
}

func (p *Panel) showLoading(loading bool) {
	if loading {
		p.listButton.Disable()
		p.loadingBar.Start()
		p.loadingBar.Show()
		return
	}
	p.listButton.Enable()
	p.loadingBar.Stop()
	p.loadingBar.Hide()
}

func (p *Panel) showLink(link string) {
	if link == "" {
		p.fileLink.SetText("")
		return
	}
	if err := p.fileLink.SetURLFromString(link); err != nil {
		p.fileLink.SetText("")
		return
	}
	p.fileLink.SetText(link)
}

// Format pretty-prints a payload and reports its compact encoded size.
func Format(payload *structpb.Value) (text string, size int, err error) {
	pretty, err := protojson.MarshalOptions{Multiline: true, Indent: "  "}.Marshal(payload)
	if err != nil {
		return "", 0, fmt.Errorf("format listing: %w", err)
	}
	compact, err := protojson.Marshal(payload)
	if err != nil {
		return "", 0, fmt.Errorf("format listing: %w", err)
	}
	return string(pretty), len(compact), nil
}

// CreateRenderer implements fyne.Widget.
func (p *Panel) CreateRenderer() fyne.WidgetRenderer {
	toolbar := container.NewBorder(nil, nil, widget.NewLabel("Path:"), p.listButton, p.pathEntry)

	content := container.NewBorder(
		container.NewVBox(toolbar, p.loadingBar),
		nil,
		nil,
		nil,
		p.contentContainer,
	)
	return widget.NewSimpleRenderer(content)
}
