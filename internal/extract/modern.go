package extract

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/buger/jsonparser"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"fbgrab/internal/media"
)

const (
	mimeVideo = "video/mp4"
	mimeAudio = "audio/mp4"
)

// representation is one stream candidate of a dash prefetch group.
type representation struct {
	MimeType  string
	Bandwidth float64
	BaseURL   string
}

// decodeGroup returns the usable representations of a group. A
// representation without a mime type or base URL is dropped on its own;
// the group only fails when "representations" is not an array.
func decodeGroup(group []byte) ([]representation, error) {
	var reps []representation
	_, err := jsonparser.ArrayEach(group, func(value []byte, typ jsonparser.ValueType, _ int, _ error) {
		if typ != jsonparser.Object {
			return
		}
		if r, ok := decodeRepresentation(value); ok {
			reps = append(reps, r)
		}
	}, "representations")
	if err != nil {
		return nil, err
	}
	return reps, nil
}

func decodeRepresentation(raw []byte) (representation, bool) {
	mime, ok := lookupString(raw, "mime_type")
	if !ok {
		return representation{}, false
	}
	baseURL, ok := lookupString(raw, "base_url")
	if !ok {
		return representation{}, false
	}
	return representation{MimeType: mime, BaseURL: baseURL, Bandwidth: bandwidth(raw)}, true
}

// bandwidth reads a numeric or numeric-string bandwidth. Anything else is 0.
func bandwidth(raw []byte) float64 {
	if f, err := jsonparser.GetFloat(raw, "bandwidth"); err == nil {
		return f
	}
	if s, err := jsonparser.GetString(raw, "bandwidth"); err == nil {
		if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return f
		}
	}
	return 0
}

// Modern extracts videos from the dash prefetch representation schema.
// Each group with at least one video stream becomes an entry with an SD
// (lowest bandwidth) and an HD (highest bandwidth) resolution.
func (e *Extractor) Modern(html string) ([]media.VideoEntry, error) {
	doc, err := e.locator.locate(html)
	if err != nil {
		return nil, &ExtractionError{Stage: "modern", Err: err}
	}

	var videos []media.VideoEntry
	for i, raw := range arrayItems(doc, representationsPath...) {
		log := e.log.WithFields(logrus.Fields{"strategy": "modern", "index": i})

		reps, err := decodeGroup(raw)
		if err != nil {
			log.WithError(&ParseError{Offset: -1, Err: err}).Debug("skipping representation group")
			continue
		}

		entry, ok := e.buildModernEntry(html, doc, i, reps)
		if !ok {
			log.Debug("group has no video stream")
			continue
		}
		videos = append(videos, entry)
	}

	if len(videos) == 0 {
		return nil, &ExtractionError{Stage: "modern", Err: ErrNoVideoStreams}
	}

	e.log.WithFields(logrus.Fields{"strategy": "modern", "videos": len(videos)}).Debug("extraction succeeded")
	return videos, nil
}

func (e *Extractor) buildModernEntry(html string, doc Document, i int, reps []representation) (media.VideoEntry, bool) {
	videoReps := lo.Filter(reps, func(r representation, _ int) bool { return r.MimeType == mimeVideo })
	audioReps := lo.Filter(reps, func(r representation, _ int) bool { return r.MimeType == mimeAudio })
	if len(videoReps) == 0 {
		return media.VideoEntry{}, false
	}

	slices.SortStableFunc(videoReps, func(a, b representation) int {
		return cmp.Compare(a.Bandwidth, b.Bandwidth)
	})
	sd, hd := videoReps[0], videoReps[len(videoReps)-1]

	var audioURL string
	if len(audioReps) > 0 {
		audioURL = e.rewriter.Rewrite(audioReps[0].BaseURL)
	}

	id := fmt.Sprintf("video_%d", i)
	return media.VideoEntry{
		VideoID:   id,
		Key:       id,
		Thumbnail: e.thumbs.Resolve(html, doc, i),
		AudioURL:  audioURL,
		Resolutions: []media.Resolution{
			{
				QualityClass: media.SD,
				QualityLabel: "SD",
				URL:          e.rewriter.Rewrite(sd.BaseURL),
				Key:          id + "_sd",
				Bandwidth:    int64(sd.Bandwidth),
			},
			{
				QualityClass: media.HD,
				QualityLabel: "HD",
				URL:          e.rewriter.Rewrite(hd.BaseURL),
				Key:          id + "_hd",
				Bandwidth:    int64(hd.Bandwidth),
			},
		},
	}, true
}
