package extract

import (
	"fmt"
	"regexp"

	"github.com/sirupsen/logrus"

	"fbgrab/internal/media"
)

var (
	// "dash_prefetch_experimental":["<digits>v","<digits>a"]
	prefetchIDsPattern = regexp.MustCompile(`"dash_prefetch_experimental":\[\s*"(\d+v)",\s*"(\d+a)"\s*\]`)

	videoRepresentationPattern = regexp.MustCompile(
		`<Representation\s+[^>]*id="(\d+v)"[^>]*FBQualityClass="([^"]+)"[^>]*FBQualityLabel="([^"]+)"[^>]*>[\s\S]*?<BaseURL>(https://[^<]+)</BaseURL>`)

	audioRepresentationPattern = regexp.MustCompile(
		`<Representation\s+[^>]*id="(\d+a)"[^>]*mimeType="audio/mp4"[^>]*>[\s\S]*?<BaseURL>(https://[^<]+)</BaseURL>`)
)

const legacyVideoID = "video_0"

// Legacy extracts a single video from the manifest-like markup that older
// pages embed as escaped text. Every representation becomes a resolution in
// document order.
func (e *Extractor) Legacy(html string) ([]media.VideoEntry, error) {
	ids := prefetchIDsPattern.FindStringSubmatch(html)
	if ids == nil {
		return nil, &ExtractionError{Stage: "legacy", Err: ErrNoLegacyIDs}
	}
	audioID := ids[2]

	text := NewCleaner(html).Clean(e.trash...)

	var resolutions []media.Resolution
	for i, m := range videoRepresentationPattern.FindAllStringSubmatch(text, -1) {
		class, label := m[2], m[3]
		resolutions = append(resolutions, media.Resolution{
			QualityClass: class,
			QualityLabel: label,
			URL:          e.rewriter.Rewrite(m[4]),
			Key:          fmt.Sprintf("%s_%s_%d", class, label, i),
			SourceID:     m[1],
		})
	}
	if len(resolutions) == 0 {
		return nil, &ExtractionError{Stage: "legacy", Err: ErrNoRepresentations}
	}

	var audioURL string
	for _, m := range audioRepresentationPattern.FindAllStringSubmatch(text, -1) {
		if m[1] == audioID {
			audioURL = e.rewriter.Rewrite(m[2])
			break
		}
	}

	e.log.WithFields(logrus.Fields{
		"strategy":    "legacy",
		"resolutions": len(resolutions),
		"audio":       audioURL != "",
	}).Debug("extraction succeeded")

	return []media.VideoEntry{{
		VideoID:     legacyVideoID,
		Key:         legacyVideoID,
		Thumbnail:   e.thumbs.Resolve(html, nil, 0),
		AudioURL:    audioURL,
		Resolutions: resolutions,
	}}, nil
}
