// Package fetch downloads page and media bytes, optionally through a proxy
// endpoint, reporting size and progress to the caller.
package fetch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/sirupsen/logrus"

	"fbgrab/internal/httputil"
)

// MaxPageSize caps how much of a page Bytes reads.
const MaxPageSize = 64 << 20

var (
	// ErrEmptyURL is returned when no address is given.
	ErrEmptyURL = errors.New("invalid URL or data is not passed")
	// ErrTooLarge is returned when a page body exceeds the size cap.
	ErrTooLarge = errors.New("response body too large")
)

// NetworkError reports a failed request or a non-2xx response.
type NetworkError struct {
	URL        string
	StatusCode int // Zero when the request itself failed
	Err        error
}

func (e *NetworkError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetching %s: unexpected status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetching %s: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// Options controls a single fetch.
type Options struct {
	ViaProxy        bool                    // Route through the client's proxy endpoint
	OnContentLength func(n int64)           // Called once before streaming; 0 when unknown
	OnProgress      func(read, total int64) // Called after every chunk
	OnError         func(err error)         // When set, errors go here and the call returns nil
}

// Client fetches remote content.
type Client struct {
	http      *http.Client
	proxyBase string
	log       logrus.FieldLogger
	maxPage   int64 // Cap for Bytes
}

// New creates a Client. proxyBase may be empty when no proxy is used.
func New(client *http.Client, proxyBase string, log logrus.FieldLogger) *Client {
	return &Client{http: client, proxyBase: proxyBase, log: log, maxPage: MaxPageSize}
}

// Bytes fetches target into memory. Bodies over MaxPageSize fail with ErrTooLarge.
func (c *Client) Bytes(ctx context.Context, target string, opts Options) ([]byte, error) {
	var buf bytes.Buffer
	if _, err := c.stream(ctx, target, &buf, c.maxPage, opts); err != nil {
		return nil, c.handle(err, opts)
	}
	return buf.Bytes(), nil
}

// Copy streams target into w without a size cap and returns the bytes written.
func (c *Client) Copy(ctx context.Context, target string, w io.Writer, opts Options) (int64, error) {
	n, err := c.stream(ctx, target, w, -1, opts)
	if err != nil {
		return n, c.handle(err, opts)
	}
	return n, nil
}

func (c *Client) handle(err error, opts Options) error {
	if opts.OnError != nil {
		opts.OnError(err)
		return nil
	}
	return err
}

func (c *Client) stream(ctx context.Context, target string, w io.Writer, limit int64, opts Options) (int64, error) {
	if target == "" {
		return 0, ErrEmptyURL
	}
	if err := httputil.ValidateURL(target); err != nil {
		return 0, fmt.Errorf("invalid URL: %w", err)
	}

	requestURL := target
	if opts.ViaProxy {
		var err error
		requestURL, err = httputil.ProxyURL(c.proxyBase, target)
		if err != nil {
			return 0, err
		}
	}

	req, err := httputil.NewRequest(ctx, requestURL)
	if err != nil {
		return 0, err
	}

	c.log.WithFields(logrus.Fields{"url": target, "proxy": opts.ViaProxy}).Debug("fetching")

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, &NetworkError{URL: target, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return 0, &NetworkError{URL: target, StatusCode: resp.StatusCode}
	}

	total := resp.ContentLength
	if total < 0 {
		total = 0
	}
	if opts.OnContentLength != nil {
		opts.OnContentLength(total)
	}

	var body io.Reader = &progressReader{Reader: resp.Body, total: total, callback: opts.OnProgress}
	if limit > 0 {
		body = io.LimitReader(body, limit+1)
	}

	n, err := io.Copy(w, body)
	if err != nil {
		return n, &NetworkError{URL: target, Err: err}
	}
	if limit > 0 && n > limit {
		return n, fmt.Errorf("fetching %s: %w (limit %d bytes)", target, ErrTooLarge, limit)
	}
	return n, nil
}

// progressReader reports every read to callback.
type progressReader struct {
	io.Reader
	total    int64
	read     int64
	callback func(read, total int64)
}

func (pr *progressReader) Read(p []byte) (n int, err error) {
	n, err = pr.Reader.Read(p)
	pr.read += int64(n)
	if n > 0 && pr.callback != nil {
		pr.callback(pr.read, pr.total)
	}
	return
}
