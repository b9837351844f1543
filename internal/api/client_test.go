package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	apperrors "github.com/shhac/atrium/internal/errors"
	"github.com/shhac/atrium/internal/page"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/types/known/structpb"
)

// staticLocation is a LocationSource with a fixed path and origin.
type staticLocation struct {
	origin string
	path   string
}

func (l staticLocation) Path() string   { return l.path }
func (l staticLocation) Origin() string { return l.origin }

// recorder captures the request the backend received.
type recorder struct {
	mu     sync.Mutex
	paths  []string
	query  []string
	accept []string
}

func (r *recorder) record(req *http.Request) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.paths = append(r.paths, req.URL.Path)
	r.query = append(r.query, req.URL.RawQuery)
	r.accept = append(r.accept, req.Header.Get("Accept"))
}

func (r *recorder) lastPath() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.paths[len(r.paths)-1]
}

func newBackend(t *testing.T, status int, body string) (*httptest.Server, *recorder) {
	t.Helper()
	rec := &recorder{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.record(r)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, rec
}

// waitResult calls ListFiles and waits for the single callback.
func waitResult(t *testing.T, c *Client, path string) *structpb.Value {
	t.Helper()
	done := make(chan *structpb.Value, 2)
	c.ListFiles(path, func(payload *structpb.Value) {
		done <- payload
	})

	select {
	case payload := <-done:
		select {
		case <-done:
			t.Fatal("callback invoked twice")
		case <-time.After(50 * time.Millisecond):
		}
		return payload
	case <-time.After(5 * time.Second):
		t.Fatal("callback never invoked")
		return nil
	}
}

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "."},
		{"/", "."},
		{"/files/foo", "files/foo"},
		{"foo", "foo"},
		{"//double", "/double"},
		{"/a/b/", "a/b/"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizePath(tt.in))
		})
	}
}

func TestRootedPath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "/"},
		{"/", "/"},
		{"books/a.epub", "/books/a.epub"},
		{"/books/a.epub", "/books/a.epub"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, RootedPath(tt.in))
		})
	}

	c := New(staticLocation{origin: "http://h", path: "/fr/dashboard"})
	assert.Equal(t, "/fr/files/books/a.epub", c.FileURL(RootedPath("books/a.epub")))
}

func TestClient_LocalePrefixing(t *testing.T) {
	c := New(staticLocation{origin: "http://h", path: "/fr/dashboard"})

	assert.Equal(t, "fr", c.Locale())
	assert.Equal(t, "/fr/files/a.txt", c.PrefixPath("/files/a.txt"))
	assert.Equal(t, "/fr/files/a.txt", c.FileURL("/a.txt"))
	assert.Equal(t, "http://h/fr/files/a.txt", c.AbsoluteURL(c.FileURL("/a.txt")))
}

func TestClient_RootLocation(t *testing.T) {
	c := New(staticLocation{origin: "http://h", path: "/"})

	assert.Equal(t, "", c.Locale())
	assert.Equal(t, "//files/a.txt", c.FileURL("/a.txt"))
}

func TestClient_LocaleRecomputedPerCall(t *testing.T) {
	loc := page.MustLocation("http://h/en/dashboard/")
	c := New(loc)
	assert.Equal(t, "/en/files/x", c.FileURL("/x"))

	require.NoError(t, loc.SwitchLocale("de"))
	assert.Equal(t, "/de/files/x", c.FileURL("/x"))
}

func TestClient_ListingURL(t *testing.T) {
	c := New(staticLocation{origin: "http://h:8080", path: "/en/dashboard"})

	assert.Equal(t, "http://h:8080/en/files/.?f=json", c.ListingURL("/"))
	assert.Equal(t, "http://h:8080/en/files/.?f=json", c.ListingURL(""))
	assert.Equal(t, "http://h:8080/en/files/files/foo?f=json", c.ListingURL("/files/foo"))
	assert.Equal(t, "http://h:8080/en/files/my%20docs?f=json", c.ListingURL("/my docs"))
}

func TestClient_ListFilesRequestsNormalizedPath(t *testing.T) {
	srv, rec := newBackend(t, http.StatusOK, `{"files": []}`)
	c := New(staticLocation{origin: srv.URL, path: "/en/dashboard"})

	tests := []struct {
		in   string
		want string
	}{
		{"", "/en/files/."},
		{"/", "/en/files/."},
		{"/files/foo", "/en/files/files/foo"},
		{"foo", "/en/files/foo"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			payload := waitResult(t, c, tt.in)
			require.NotNil(t, payload)
			assert.Equal(t, tt.want, rec.lastPath())
		})
	}

	for i := range rec.query {
		assert.Equal(t, "f=json", rec.query[i])
		assert.Equal(t, "application/json", rec.accept[i])
	}
}

func TestClient_ListFilesSuccess(t *testing.T) {
	srv, _ := newBackend(t, http.StatusOK, `{"files": [], "dirs": ["a", "b"]}`)
	c := New(staticLocation{origin: srv.URL, path: "/en/dashboard"})

	payload := waitResult(t, c, "/")
	require.NotNil(t, payload)

	obj := payload.GetStructValue()
	require.NotNil(t, obj)
	assert.Empty(t, obj.Fields["files"].GetListValue().GetValues())
	assert.Len(t, obj.Fields["dirs"].GetListValue().GetValues(), 2)
}

func TestClient_ListFilesAcceptsAnyJSON(t *testing.T) {
	srv, _ := newBackend(t, http.StatusOK, `[{"name": "a.txt"}, {"name": "b.txt"}]`)
	c := New(staticLocation{origin: srv.URL, path: "/en/"})

	payload := waitResult(t, c, "/")
	require.NotNil(t, payload)
	assert.Len(t, payload.GetListValue().GetValues(), 2)
}

func TestClient_ListFilesFailuresYieldNil(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"server error", http.StatusInternalServerError, `{"error": "boom"}`},
		{"not found", http.StatusNotFound, `{}`},
		{"redirect status without location", http.StatusNotModified, ``},
		{"malformed body", http.StatusOK, `<html>not json</html>`},
		{"empty body", http.StatusOK, ``},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := newBackend(t, tt.status, tt.body)
			c := New(staticLocation{origin: srv.URL, path: "/en/dashboard"})
			assert.Nil(t, waitResult(t, c, "/"))
		})
	}
}

func TestClient_ListFilesTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	origin := srv.URL
	srv.Close()

	c := New(staticLocation{origin: origin, path: "/en/dashboard"})
	assert.Nil(t, waitResult(t, c, "/"))
}

func TestClient_ListFilesUsesDispatcher(t *testing.T) {
	srv, _ := newBackend(t, http.StatusOK, `{}`)

	var dispatched atomic.Int32
	c := New(staticLocation{origin: srv.URL, path: "/en/"},
		WithDispatcher(func(fn func()) {
			dispatched.Add(1)
			fn()
		}),
	)

	require.NotNil(t, waitResult(t, c, "/"))
	assert.Equal(t, int32(1), dispatched.Load())
}

func TestClient_CallbackCardinality(t *testing.T) {
	ok, _ := newBackend(t, http.StatusOK, `{"files": []}`)
	bad, _ := newBackend(t, http.StatusInternalServerError, ``)

	var calls atomic.Int32
	var wg sync.WaitGroup
	const n = 20
	wg.Add(2 * n)

	for i := 0; i < n; i++ {
		for _, origin := range []string{ok.URL, bad.URL} {
			c := New(staticLocation{origin: origin, path: "/en/"})
			c.ListFiles("/", func(*structpb.Value) {
				calls.Add(1)
				wg.Done()
			})
		}
	}

	wg.Wait()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(2*n), calls.Load())
}

func TestClient_FetchErrors(t *testing.T) {
	t.Run("status", func(t *testing.T) {
		srv, _ := newBackend(t, http.StatusNotFound, `{}`)
		c := New(staticLocation{origin: srv.URL, path: "/en/"})

		_, err := c.Fetch(context.Background(), "/missing")
		var statusErr *apperrors.StatusError
		require.ErrorAs(t, err, &statusErr)
		assert.Equal(t, http.StatusNotFound, statusErr.Code)
		assert.Equal(t, srv.URL+"/en/files/missing?f=json", statusErr.URL)
	})

	t.Run("decode", func(t *testing.T) {
		srv, _ := newBackend(t, http.StatusOK, `not json`)
		c := New(staticLocation{origin: srv.URL, path: "/en/"})

		_, err := c.Fetch(context.Background(), "/")
		assert.ErrorIs(t, err, apperrors.ErrDecode)
	})

	t.Run("transport", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		origin := srv.URL
		srv.Close()
		c := New(staticLocation{origin: origin, path: "/en/"})

		_, err := c.Fetch(context.Background(), "/")
		assert.ErrorIs(t, err, apperrors.ErrTransport)
	})

	t.Run("cancelled context", func(t *testing.T) {
		srv, _ := newBackend(t, http.StatusOK, `{}`)
		c := New(staticLocation{origin: srv.URL, path: "/en/"})

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := c.Fetch(ctx, "/")
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("invalid origin", func(t *testing.T) {
		c := New(staticLocation{origin: "::not-a-url", path: "/en/"})

		_, err := c.Fetch(context.Background(), "/")
		assert.ErrorIs(t, err, apperrors.ErrInvalidLocation)
	})
}
