// Package source loads the page text to extract from: a local file, stdin or
// a remote address.
package source

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/afero"

	"fbgrab/internal/fetch"
	"fbgrab/internal/httputil"
)

// Stdin is the argument that selects standard input.
const Stdin = "-"

// Loader resolves a source argument into page text.
type Loader struct {
	fs       afero.Fs
	stdin    io.Reader
	fetcher  *fetch.Client
	viaProxy bool
}

// New creates a Loader. fetcher may be nil when remote sources are not needed.
func New(fs afero.Fs, stdin io.Reader, fetcher *fetch.Client, viaProxy bool) *Loader {
	return &Loader{fs: fs, stdin: stdin, fetcher: fetcher, viaProxy: viaProxy}
}

// Load returns the text of arg. An empty arg or "-" reads stdin, an http(s)
// address is fetched and anything else is read as a file path.
func (l *Loader) Load(ctx context.Context, arg string) (string, error) {
	switch {
	case arg == "" || arg == Stdin:
		data, err := io.ReadAll(io.LimitReader(l.stdin, fetch.MaxPageSize))
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil

	case httputil.IsRemote(arg):
		if l.fetcher == nil {
			return "", fmt.Errorf("remote sources are not enabled")
		}
		data, err := l.fetcher.Bytes(ctx, arg, fetch.Options{ViaProxy: l.viaProxy})
		if err != nil {
			return "", fmt.Errorf("fetching page: %w", err)
		}
		return string(data), nil

	default:
		data, err := afero.ReadFile(l.fs, arg)
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", arg, err)
		}
		return string(data), nil
	}
}
