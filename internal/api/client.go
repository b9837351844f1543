// Package api is the dashboard's client for the library server's
// locale-prefixed file listing endpoint.
package api

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	apperrors "github.com/shhac/atrium/internal/errors"
	"github.com/shhac/atrium/internal/locale"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

// maxListingSize bounds how much of a listing response is read.
const maxListingSize = 32 << 20

// LocationSource supplies the current page location. It is consulted on
// every call so locale changes take effect immediately.
type LocationSource interface {
	Path() string
	Origin() string
}

// Dispatcher runs fn on the thread that owns the caller's state. The GUI
// uses fyne.Do; the default runs fn directly on the fetching goroutine.
type Dispatcher func(fn func())

// Client builds locale-prefixed URLs and fetches file listings.
// It carries no state between calls beyond its configuration.
type Client struct {
	loc      LocationSource
	http     *http.Client
	logger   *slog.Logger
	dispatch Dispatcher
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the HTTP client used for listing requests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithLogger sets the logger for request diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDispatcher sets how ListFiles callbacks are delivered.
func WithDispatcher(d Dispatcher) Option {
	return func(c *Client) {
		c.dispatch = d
	}
}

// New creates a client reading the locale from loc.
func New(loc LocationSource, opts ...Option) *Client {
	c := &Client{
		loc:      loc,
		http:     http.DefaultClient,
		logger:   slog.New(slog.DiscardHandler),
		dispatch: func(fn func()) { fn() },
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Locale returns the first path segment of the current location, verbatim.
func (c *Client) Locale() string {
	return locale.FromPath(c.loc.Path())
}

// PrefixPath returns "/" + locale + path. Callers pass paths that start
// with "/"; a path without one produces a malformed result.
func (c *Client) PrefixPath(path string) string {
	return locale.Prefix(c.Locale(), path)
}

// FileURL returns the locale-prefixed link for a file, e.g. "/fr/files/a.txt"
// for "/a.txt". No request is made.
func (c *Client) FileURL(path string) string {
	return c.PrefixPath("/files" + path)
}

// AbsoluteURL resolves a prefixed path against the location's origin.
func (c *Client) AbsoluteURL(prefixed string) string {
	return c.loc.Origin() + prefixed
}

// RootedPath returns path with a leading "/" added when it lacks one.
// User-typed paths go through it before reaching PrefixPath or FileURL.
func RootedPath(path string) string {
	if strings.HasPrefix(path, "/") {
		return path
	}
	return "/" + path
}

// NormalizePath maps "" and "/" to "." and strips one leading "/" from
// anything else.
func NormalizePath(path string) string {
	if path == "" || path == "/" {
		return "."
	}
	return strings.TrimPrefix(path, "/")
}

// ListingURL returns the absolute URL requested for a listing of path.
func (c *Client) ListingURL(path string) string {
	u := url.URL{
		Path:     c.PrefixPath("/files/" + NormalizePath(path)),
		RawQuery: url.Values{"f": {"json"}}.Encode(),
	}
	return c.loc.Origin() + u.RequestURI()
}

// Fetch requests the listing for path and returns the decoded payload.
// The payload is opaque; any JSON value is accepted.
func (c *Client) Fetch(ctx context.Context, path string) (*structpb.Value, error) {
	target := c.ListingURL(path)
	c.logger.Debug("requesting listing",
		slog.String("path", path),
		slog.String("url", target),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidLocation, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, &apperrors.StatusError{Code: resp.StatusCode, URL: target}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxListingSize))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %w", apperrors.ErrTransport, err)
	}

	payload := &structpb.Value{}
	if err := protojson.Unmarshal(body, payload); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrDecode, err)
	}

	c.logger.Debug("listing received",
		slog.String("path", path),
		slog.Int("bytes", len(body)),
	)
	return payload, nil
}

// ListFiles fetches the listing for path in the background and delivers
// exactly one result to cb through the dispatcher: the payload on success,
// nil on any failure. There is no cancellation and no retry.
func (c *Client) ListFiles(path string, cb func(payload *structpb.Value)) {
	go func() {
		payload, err := c.Fetch(context.Background(), path)
		if err != nil {
			c.logger.Debug("listing failed",
				slog.String("path", path),
				slog.Any("error", err),
			)
			payload = nil
		}
		c.dispatch(func() {
			cb(payload)
		})
	}()
}
