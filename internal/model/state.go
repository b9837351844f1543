package model

import "fyne.io/fyne/v2/data/binding"

// DashboardState is the centralized dashboard state exposed as Fyne data
// bindings. UI components bind to these values for reactive updates.
type DashboardState struct {
	// Location is the full URL of the current dashboard page.
	Location binding.String
	// Locale is the first path segment of Location.
	Locale binding.String
	// LocaleName is the display name of Locale, e.g. "Français".
	LocaleName binding.String

	Listing *ListingState
	Status  *StatusState
}

// NewDashboardState creates a DashboardState with initialized bindings.
func NewDashboardState() *DashboardState {
	return &DashboardState{
		Location:   binding.NewString(),
		Locale:     binding.NewString(),
		LocaleName: binding.NewString(),
		Listing:    NewListingState(),
		Status:     NewStatusState(),
	}
}

// ListingState is the state of the file listing panel.
type ListingState struct {
	Path     binding.String // path as typed by the user
	TextData binding.String // pretty-printed JSON payload
	Loading  binding.Bool
	Error    binding.String // non-empty when the last listing failed
	Size     binding.String // payload size, e.g. "1.2 kB"
	FileURL  binding.String // absolute link for Path
}

// NewListingState creates a ListingState rooted at "/".
func NewListingState() *ListingState {
	path := binding.NewString()
	_ = path.Set("/")

	return &ListingState{
		Path:     path,
		TextData: binding.NewString(),
		Loading:  binding.NewBool(),
		Error:    binding.NewString(),
		Size:     binding.NewString(),
		FileURL:  binding.NewString(),
	}
}

// StatusState backs the status bar.
// States: "idle", "loading", "ready", "error"
type StatusState struct {
	State   binding.String
	Message binding.String
}

// NewStatusState creates a StatusState in the idle state.
func NewStatusState() *StatusState {
	state := binding.NewString()
	_ = state.Set("idle")

	return &StatusState{
		State:   state,
		Message: binding.NewString(),
	}
}
