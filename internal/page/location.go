// Package page holds the dashboard's current location.
package page

import (
	"fmt"
	"net/url"
	"strings"
	"sync"

	apperrors "github.com/shhac/atrium/internal/errors"
	"github.com/shhac/atrium/internal/locale"
)

// Location is the URL of the page the dashboard is showing. It plays the
// role of a browser's window location: the locale is read from its path on
// every use, never cached.
type Location struct {
	mu  sync.RWMutex
	url *url.URL

	onChange func(u *url.URL)
}

// NewLocation parses raw into a Location.
func NewLocation(raw string) (*Location, error) {
	u, err := parse(raw)
	if err != nil {
		return nil, err
	}
	return &Location{url: u}, nil
}

// MustLocation is NewLocation for tests and constants; it panics on error.
func MustLocation(raw string) *Location {
	loc, err := NewLocation(raw)
	if err != nil {
		panic(err)
	}
	return loc
}

// Navigate replaces the current URL.
func (l *Location) Navigate(raw string) error {
	u, err := parse(raw)
	if err != nil {
		return err
	}

	l.mu.Lock()
	l.url = u
	callback := l.onChange
	l.mu.Unlock()

	if callback != nil {
		callback(cloneURL(u))
	}
	return nil
}

// SwitchLocale navigates to the same page under a different locale segment.
func (l *Location) SwitchLocale(code string) error {
	l.mu.RLock()
	u := cloneURL(l.url)
	l.mu.RUnlock()

	current := locale.FromPath(u.Path)
	rest := strings.TrimPrefix(u.Path, "/"+current)
	if rest == "" {
		rest = "/"
	}
	u.Path = locale.Prefix(code, rest)
	u.RawPath = ""
	return l.Navigate(u.String())
}

// Path returns the path component of the current URL.
func (l *Location) Path() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.url.Path
}

// Origin returns scheme://host of the current URL.
func (l *Location) Origin() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.url.Scheme + "://" + l.url.Host
}

// String returns the full current URL.
func (l *Location) String() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.url.String()
}

// Locale returns the first path segment of the current URL.
func (l *Location) Locale() string {
	return locale.FromPath(l.Path())
}

// SetOnChange registers a callback invoked after every successful Navigate.
func (l *Location) SetOnChange(fn func(u *url.URL)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.onChange = fn
}

func parse(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrInvalidLocation, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: %q is not an absolute URL", apperrors.ErrInvalidLocation, raw)
	}
	return u, nil
}

func cloneURL(u *url.URL) *url.URL {
	c := *u
	return &c
}
