package ui

import (
	"log/slog"
	"net/url"
	"slices"
	"sync/atomic"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/shhac/atrium/internal/api"
	"github.com/shhac/atrium/internal/locale"
	"github.com/shhac/atrium/internal/model"
	"github.com/shhac/atrium/internal/page"
	"github.com/shhac/atrium/internal/sections"
	"github.com/shhac/atrium/internal/ui/components"
	"github.com/shhac/atrium/internal/ui/dashboard"
	uierrors "github.com/shhac/atrium/internal/ui/errors"
	"github.com/shhac/atrium/internal/ui/listing"
)

// listingPanelID is the id of the dashboard section that hosts the file
// listing panel.
const listingPanelID = "files"

// Locales offered by the locale selector. The current locale is added when
// it is not one of these.
var knownLocales = []string{"en", "fr", "de", "es", "it", "pt", "ru", "zh", "ar", "he", "fa", "ur"}

// AppController defines the interface for app-level operations needed by the UI
type AppController interface {
	State() *model.DashboardState
	Logger() *slog.Logger
	Location() *page.Location
	Client() *api.Client
	DashboardTemplate() string
}

// MainWindow manages the main application window and its layout.
type MainWindow struct {
	window fyne.Window
	state  *model.DashboardState
	logger *slog.Logger
	app    AppController

	locationEntry *widget.Entry
	localeSelect  *widget.Select
	listingPanel  *listing.Panel
	statusBar     *uierrors.StatusBar

	doc         *dashboard.Document
	sections    []*components.Section
	sectionList *fyne.Container

	// localeCodes maps selector labels back to locale codes.
	localeCodes map[string]string

	// listSeq numbers listing requests; only the latest one may update
	// the listing panel.
	listSeq atomic.Uint64
}

// NewMainWindow creates the main window and renders the dashboard for the
// app's current location.
func NewMainWindow(fyneApp fyne.App, app AppController) *MainWindow {
	window := fyneApp.NewWindow("Atrium")

	mw := &MainWindow{
		window:      window,
		state:       app.State(),
		logger:      app.Logger(),
		app:         app,
		sectionList: container.NewVBox(),
		localeCodes: map[string]string{},
	}

	mw.locationEntry = widget.NewEntryWithData(mw.state.Location)
	mw.locationEntry.OnSubmitted = mw.handleNavigate
	mw.localeSelect = widget.NewSelect(nil, mw.handleLocaleSelect)
	mw.listingPanel = listing.NewPanel(mw.state.Listing)
	mw.statusBar = uierrors.NewStatusBar(mw.state.Status, mw.state.Location)

	mw.wireCallbacks()
	mw.reloadDashboard()
	mw.SetContent()
	mw.setupMainMenu(fyneApp)
	mw.setupKeyboardShortcuts()

	window.Resize(fyne.NewSize(900, 700))
	return mw
}

// wireCallbacks sets up all the event handlers and connects components
func (w *MainWindow) wireCallbacks() {
	w.listingPanel.SetOnList(w.handleList)

	// Navigation happens on the UI thread, so the dashboard can be rebuilt
	// directly from the change notification.
	w.app.Location().SetOnChange(func(u *url.URL) {
		w.logger.Info("location changed", slog.String("location", u.String()))
		w.cancelListing()
		w.reloadDashboard()
	})
}

// handleNavigate replaces the location with the typed URL.
func (w *MainWindow) handleNavigate(raw string) {
	if err := w.app.Location().Navigate(raw); err != nil {
		w.logger.Warn("navigation rejected", slog.String("location", raw), slog.Any("error", err))
		_ = w.state.Location.Set(w.app.Location().String())
		uierrors.ShowError(err, w.window, nil)
	}
}

func (w *MainWindow) handleLocaleSelect(label string) {
	code, ok := w.localeCodes[label]
	if !ok || code == w.app.Location().Locale() {
		return
	}
	if err := w.app.Location().SwitchLocale(code); err != nil {
		w.logger.Warn("locale switch failed", slog.String("locale", code), slog.Any("error", err))
		uierrors.ShowError(err, w.window, nil)
	}
}

// handleList starts a listing request. The client delivers the result on
// the UI thread through its dispatcher; results of superseded requests are
// dropped.
func (w *MainWindow) handleList(path string) {
	client := w.app.Client()
	path = api.RootedPath(path)
	seq := w.listSeq.Add(1)

	w.logger.Debug("listing requested", slog.String("path", path), slog.Uint64("seq", seq))
	w.statusBar.SetState("loading", "Listing "+path)
	w.listingPanel.SetLoading(true)
	w.listingPanel.SetFileURL(client.AbsoluteURL(client.FileURL(path)))

	client.ListFiles(path, func(payload *structpb.Value) {
		if w.listSeq.Load() != seq {
			w.logger.Debug("stale listing dropped", slog.String("path", path), slog.Uint64("seq", seq))
			return
		}
		w.handleListResult(path, payload)
	})
}

// cancelListing supersedes any request in flight and clears the loading state.
func (w *MainWindow) cancelListing() {
	w.listSeq.Add(1)
	if loading, _ := w.state.Listing.Loading.Get(); loading {
		w.listingPanel.SetLoading(false)
		w.statusBar.SetState("ready", "Listing cancelled")
	}
}

func (w *MainWindow) handleListResult(path string, payload *structpb.Value) {
	w.listingPanel.SetResult(payload)
	if payload == nil {
		w.statusBar.SetState("error", listing.UnavailableMessage+": "+path)
		return
	}
	w.statusBar.SetState("ready", "Listed "+path)
}

// reloadDashboard renders the dashboard document for the current location
// and rebuilds the section widgets. The expanded section is kept when the
// new document has a panel with the same id.
func (w *MainWindow) reloadDashboard() {
	loc := w.app.Location()
	info := locale.Describe(loc.Locale())

	_ = w.state.Location.Set(loc.String())
	_ = w.state.Locale.Set(info.Code)
	_ = w.state.LocaleName.Set(info.Name)
	w.window.SetTitle("Atrium - " + info.Name)
	w.updateLocaleOptions(info)

	previous := w.expandedID()

	doc, err := dashboard.Load(w.app.DashboardTemplate(), dashboard.NewData(info, loc.Origin(), loc.String()))
	if err != nil {
		w.logger.Error("failed to load dashboard", slog.Any("error", err))
		uierrors.ShowError(err, w.window, w.reloadDashboard)
		return
	}

	w.doc = doc
	w.sections = make([]*components.Section, 0, len(doc.Panels()))
	objects := make([]fyne.CanvasObject, 0, len(doc.Panels()))
	for _, p := range doc.Panels() {
		section := components.NewSection(p, w.sectionBody(p))
		w.sections = append(w.sections, section)
		objects = append(objects, section)
	}
	w.sectionList.Objects = objects
	w.sectionList.Refresh()

	if previous != "" {
		if p := doc.Panel(previous); p != nil {
			p.Click(nil)
		}
	}

	w.logger.Debug("dashboard loaded",
		slog.String("locale", info.Code),
		slog.String("dir", info.Dir()),
		slog.Int("sections", len(w.sections)),
	)
}

// sectionBody renders a panel's body as rich text. The listing panel is
// appended to the files section.
func (w *MainWindow) sectionBody(p *sections.DOMPanel) fyne.CanvasObject {
	var text fyne.CanvasObject
	md, err := dashboard.BodyMarkdown(p)
	if err != nil {
		w.logger.Warn("panel body conversion failed", slog.String("panel", p.ID()), slog.Any("error", err))
		label := widget.NewLabel(p.BodyHTML())
		label.Wrapping = fyne.TextWrapWord
		text = label
	} else {
		rich := widget.NewRichTextFromMarkdown(md)
		rich.Wrapping = fyne.TextWrapWord
		text = rich
	}

	if p.ID() == listingPanelID {
		return container.NewVBox(text, w.listingPanel)
	}
	return text
}

// ExpandSection expands the section at index i, as if its header were
// clicked. Out-of-range indexes are ignored.
func (w *MainWindow) ExpandSection(i int) {
	if i < 0 || i >= len(w.sections) {
		return
	}
	w.sections[i].Tap()
}

// Sections returns the section widgets in document order.
func (w *MainWindow) Sections() []*components.Section {
	return w.sections
}

func (w *MainWindow) expandedID() string {
	if w.doc == nil {
		return ""
	}
	for _, p := range w.doc.Panels() {
		if !p.Collapsed() {
			return p.ID()
		}
	}
	return ""
}

func (w *MainWindow) updateLocaleOptions(current locale.Info) {
	codes := slices.Clone(knownLocales)
	if current.Code != "" && !slices.Contains(codes, current.Code) {
		codes = append(codes, current.Code)
	}

	options := make([]string, len(codes))
	clear(w.localeCodes)
	selected := ""
	for i, code := range codes {
		label := locale.Describe(code).Name + " (" + code + ")"
		options[i] = label
		w.localeCodes[label] = code
		if code == current.Code {
			selected = label
		}
	}

	w.localeSelect.Options = options
	// Selected is set without SetSelected so no change callback fires.
	w.localeSelect.Selected = selected
	w.localeSelect.Refresh()
}

// SetContent builds and sets the main window layout.
// Layout structure:
//
//	┌──────────────────────────────────────┐
//	│  Location [............] [Locale ▾]  │
//	├──────────────────────────────────────┤
//	│  ▾ Library files                     │
//	│      listing panel                   │
//	│  ▸ Content library stats             │
//	│  ▸ ...                               │
//	├──────────────────────────────────────┤
//	│  Status Bar                          │
//	└──────────────────────────────────────┘
func (w *MainWindow) SetContent() {
	goButton := widget.NewButtonWithIcon("", theme.NavigateNextIcon(), func() {
		w.handleNavigate(w.locationEntry.Text)
	})

	toolbar := container.NewBorder(
		nil, nil,
		widget.NewIcon(theme.HomeIcon()),
		container.NewHBox(goButton, w.localeSelect),
		w.locationEntry,
	)

	w.window.SetContent(container.NewBorder(
		container.NewVBox(toolbar, widget.NewSeparator()),
		w.statusBar,
		nil,
		nil,
		container.NewVScroll(w.sectionList),
	))
}

func (w *MainWindow) setupMainMenu(a fyne.App) {
	w.window.SetMainMenu(fyne.NewMainMenu(
		fyne.NewMenu("View",
			fyne.NewMenuItem("Reload Dashboard", w.reloadDashboard),
			fyne.NewMenuItemSeparator(),
			&fyne.MenuItem{Label: "Theme", ChildMenu: fyne.NewMenu("", themeMenu(a)...)},
		),
		fyne.NewMenu("Help",
			fyne.NewMenuItem("Keyboard Shortcuts", func() { ShowShortcutDialog(w.window) }),
			fyne.NewMenuItem("About Atrium", func() { ShowAboutDialog(w.window, w.state) }),
		),
	))
}

// Window returns the underlying Fyne window.
func (w *MainWindow) Window() fyne.Window {
	return w.window
}
