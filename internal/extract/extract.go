// Package extract finds downloadable video and audio streams in the HTML or
// JSON payload of a video post. The modern dash prefetch schema is tried
// first; the legacy manifest markup is the fallback.
package extract

import (
	"errors"
	"io"

	"github.com/sirupsen/logrus"

	"fbgrab/internal/media"
)

// Extractor runs the extraction strategies. It holds only configuration and
// is safe for concurrent use.
type Extractor struct {
	log      logrus.FieldLogger
	trash    []string
	rewriter *Rewriter
	cdnHost  string
	locator  *locator
	thumbs   *ThumbnailResolver
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithLogger sets the logger that receives diagnostic events.
func WithLogger(log logrus.FieldLogger) Option {
	return func(e *Extractor) { e.log = log }
}

// WithTrashWords sets substrings stripped from legacy markup before matching.
func WithTrashWords(words ...string) Option {
	return func(e *Extractor) { e.trash = words }
}

// WithRewriter replaces the default URL rewriter.
func WithRewriter(r *Rewriter) Option {
	return func(e *Extractor) { e.rewriter = r }
}

// WithCDNHost sets the host a text-matched thumbnail must contain.
func WithCDNHost(host string) Option {
	return func(e *Extractor) { e.cdnHost = host }
}

// New creates an Extractor.
func New(opts ...Option) *Extractor {
	e := &Extractor{
		log:      discardLogger(),
		rewriter: defaultRewriter,
		cdnHost:  "fbcdn.net",
	}
	for _, opt := range opts {
		opt(e)
	}
	e.locator = &locator{log: e.log}
	e.thumbs = NewThumbnailResolver(e.log, e.locator.locate, e.cdnHost)
	return e
}

type strategy struct {
	name string
	run  func(html string) ([]media.VideoEntry, error)
}

func (e *Extractor) strategies() []strategy {
	return []strategy{
		{name: "modern", run: e.Modern},
		{name: "legacy", run: e.Legacy},
	}
}

// Videos returns the videos found in html. The first strategy that yields at
// least one entry wins; if none does, the returned *ExtractionError joins the
// failure of every strategy.
func (e *Extractor) Videos(html string) ([]media.VideoEntry, error) {
	var errs []error
	for _, s := range e.strategies() {
		videos, err := s.run(html)
		if err == nil && len(videos) > 0 {
			return videos, nil
		}
		if err == nil {
			err = &ExtractionError{Stage: s.name, Err: ErrNoVideoStreams}
		}
		e.log.WithField("strategy", s.name).WithError(err).Debug("strategy failed")
		errs = append(errs, err)
	}
	return nil, &ExtractionError{Stage: "extract", Err: errors.Join(errs...)}
}

// LocateJSON returns the embedded JSON document carrying representations.
func (e *Extractor) LocateJSON(html string) (Document, error) {
	return e.locator.locate(html)
}

// Thumbnail resolves the thumbnail of the video at index. doc may be nil.
func (e *Extractor) Thumbnail(html string, doc Document, index int) string {
	return e.thumbs.Resolve(html, doc, index)
}

var defaultExtractor = New()

// Videos runs the default extractor over html.
func Videos(html string) ([]media.VideoEntry, error) {
	return defaultExtractor.Videos(html)
}

// LocateJSON runs the default locator over html.
func LocateJSON(html string) (Document, error) {
	return defaultExtractor.LocateJSON(html)
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
