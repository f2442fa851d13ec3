package extract

import (
	"errors"
	"fmt"
)

var (
	// ErrNoEmbeddedJSON means no script block or extensions fragment carried representations.
	ErrNoEmbeddedJSON = errors.New("no embedded media JSON found")
	// ErrNoVideoStreams means representations were found but none had a video stream.
	ErrNoVideoStreams = errors.New("no video streams in representations")
	// ErrNoLegacyIDs means the legacy prefetch id pair is missing.
	ErrNoLegacyIDs = errors.New("no dash prefetch ids found")
	// ErrNoRepresentations means the legacy manifest had no usable video representation.
	ErrNoRepresentations = errors.New("no video representations found")
)

// ExtractionError reports that a stage of the pipeline produced nothing usable.
type ExtractionError struct {
	Stage string // "locate", "modern", "legacy" or "extract"
	Err   error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// ParseError reports a malformed JSON candidate. It is logged, never returned
// to callers of the pipeline.
type ParseError struct {
	Offset int // Byte offset of the candidate in the input, -1 if unknown
	Err    error
}

func (e *ParseError) Error() string {
	if e.Offset < 0 {
		return fmt.Sprintf("malformed json candidate: %v", e.Err)
	}
	return fmt.Sprintf("malformed json candidate at offset %d: %v", e.Offset, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
