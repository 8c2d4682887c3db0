package resource

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"
)

// Sentinel errors of the download pipeline.
var (
	// ErrUnknownScheme reports a URL scheme with no registered downloader.
	ErrUnknownScheme = errors.New("unknown url scheme")
	// ErrNoMessage reports an mqtt topic that stayed silent for the whole
	// timeout.
	ErrNoMessage = errors.New("no message received")
)

// Downloader fetches the raw bytes of a resource. Implementations must honor
// ctx cancellation on network waits.
type Downloader func(ctx context.Context, u *URL) (io.ReadCloser, error)

// Downloaders maps URL schemes to downloaders. It is safe for concurrent
// use; a downloader added for an existing scheme replaces it.
type Downloaders struct {
	mu       sync.RWMutex
	byScheme map[string]Downloader
}

// NewDownloaders returns an empty registry.
func NewDownloaders() *Downloaders {
	return &Downloaders{byScheme: make(map[string]Downloader)}
}

// Add registers a downloader for a scheme.
func (d *Downloaders) Add(scheme string, dl Downloader) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.byScheme[scheme] = dl
}

// Remove drops a scheme.
func (d *Downloaders) Remove(scheme string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.byScheme, scheme)
}

// Get returns the downloader registered for a scheme.
func (d *Downloaders) Get(scheme string) (Downloader, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	dl, ok := d.byScheme[scheme]
	return dl, ok
}

// Open fetches u with the downloader registered for its scheme.
func (d *Downloaders) Open(ctx context.Context, u *URL) (io.ReadCloser, error) {
	dl, ok := d.Get(u.Scheme)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownScheme, u.Scheme)
	}
	return dl(ctx, u)
}

// FileDownloader opens local files.
func FileDownloader(_ context.Context, u *URL) (io.ReadCloser, error) {
	f, err := os.Open(u.Path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", u.Path, err)
	}
	return f, nil
}

// HTTPDownloader fetches resources over HTTP(S) with the given client. A nil
// client uses http.DefaultClient. Responses outside the 2xx range are
// errors.
func HTTPDownloader(client *http.Client) Downloader {
	return func(ctx context.Context, u *URL) (io.ReadCloser, error) {
		c := client
		if c == nil {
			c = http.DefaultClient
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
		if err != nil {
			return nil, err
		}
		resp, err := c.Do(req)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			resp.Body.Close()
			return nil, fmt.Errorf("get %s: unexpected status %s", u.String(), resp.Status)
		}
		return resp.Body, nil
	}
}

// DefaultDownloaders is the process-wide registry Load consults unless a call
// overrides it. It starts with the builtin schemes; the mqtt and ssh entries
// run with zero options and can be replaced by configured ones.
var DefaultDownloaders = func() *Downloaders {
	d := NewDownloaders()
	d.Add("file", FileDownloader)
	d.Add("http", HTTPDownloader(nil))
	d.Add("https", HTTPDownloader(nil))
	d.Add("mqtt", MQTTDownloader(MQTTOptions{}))
	d.Add("ssh", SSHDownloader(SSHOptions{}))
	return d
}()
