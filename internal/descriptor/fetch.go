package descriptor

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"

	"github.com/spf13/afero"
)

// Fetcher retrieves an asset (descriptor, stylesheet, template) by its
// toolkit-relative path. Implementations must honor ctx cancellation.
type Fetcher interface {
	Fetch(ctx context.Context, assetPath string) ([]byte, error)
}

// FSFetcher serves assets from a filesystem root. Backed by afero so tests
// run against an in-memory filesystem.
type FSFetcher struct {
	fs   afero.Fs
	root string
}

// NewFSFetcher creates a fetcher rooted at root on the given filesystem.
func NewFSFetcher(fsys afero.Fs, root string) *FSFetcher {
	return &FSFetcher{fs: fsys, root: root}
}

// Fetch reads the asset from disk.
func (f *FSFetcher) Fetch(ctx context.Context, assetPath string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := afero.ReadFile(f.fs, path.Join(f.root, assetPath))
	if err != nil {
		return nil, err
	}
	return data, nil
}

// HTTPFetcher serves assets from a remote base URL over plain document
// fetch. No timeout is imposed here; callers own deadlines via ctx.
type HTTPFetcher struct {
	base   string
	client *http.Client
}

// NewHTTPFetcher creates a fetcher for the given base URL. A nil client
// falls back to http.DefaultClient.
func NewHTTPFetcher(base string, client *http.Client) *HTTPFetcher {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPFetcher{base: base, client: client}
}

// Fetch performs a GET for the asset and returns its body. Non-2xx
// responses are transport failures.
func (f *HTTPFetcher) Fetch(ctx context.Context, assetPath string) ([]byte, error) {
	target, err := url.JoinPath(f.base, assetPath)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("fetch %s: status %d", target, resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}
