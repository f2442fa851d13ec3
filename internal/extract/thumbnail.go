package extract

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/sirupsen/logrus"
)

// Text patterns used when no JSON document can be found, most specific first.
var thumbnailTextPatterns = []*regexp.Regexp{
	regexp.MustCompile(`preferred_thumbnail[^}]*image[^}]*uri["']\s*:\s*["']([^"']+)["']`),
	regexp.MustCompile(`thumbnail[^}]*uri["']\s*:\s*["']([^"']+)["']`),
	regexp.MustCompile(`image[^}]*uri["']\s*:\s*["']([^"']+)["']`),
}

var imageExtensions = []string{".jpg", ".png"}

// Attachment media paths, in order of preference.
var attachmentThumbnailPaths = [][]string{
	{"preferred_thumbnail", "image", "uri"},
	{"thumbnail_image", "uri"},
	{"image", "uri"},
}

// thumbnailStrategy looks up a thumbnail for the video at index.
type thumbnailStrategy struct {
	name string
	find func(doc Document, index int) (string, bool)
}

// ThumbnailResolver finds the preview image of a video through an ordered
// chain of lookups. It never fails; an empty result means no thumbnail.
type ThumbnailResolver struct {
	log        logrus.FieldLogger
	locate     func(html string) (Document, error)
	cdnHost    string
	strategies []thumbnailStrategy
}

// NewThumbnailResolver creates a resolver. locate is used when Resolve is
// called without a document; cdnHost gates text-pattern matches.
func NewThumbnailResolver(log logrus.FieldLogger, locate func(string) (Document, error), cdnHost string) *ThumbnailResolver {
	return &ThumbnailResolver{
		log:     log,
		locate:  locate,
		cdnHost: cdnHost,
		strategies: []thumbnailStrategy{
			{name: "attachment", find: fromAttachment},
			{name: "representation", find: fromRepresentation},
			{name: "first_attachment", find: fromFirstAttachment},
		},
	}
}

// Resolve returns the thumbnail URL for the video at index, or "".
func (r *ThumbnailResolver) Resolve(html string, doc Document, index int) string {
	if doc == nil {
		switch {
		case json.Valid([]byte(html)):
			doc = Document(html)
		default:
			located, err := r.locate(html)
			if err != nil {
				return r.fromText(html)
			}
			doc = located
		}
	}

	for _, s := range r.strategies {
		if uri, ok := s.find(doc, index); ok {
			r.log.WithFields(logrus.Fields{"strategy": s.name, "index": index}).Debug("thumbnail resolved")
			return uri
		}
	}
	r.log.WithField("index", index).Debug("no thumbnail found")
	return ""
}

// fromText scans raw text for a CDN image URI.
func (r *ThumbnailResolver) fromText(html string) string {
	for _, pattern := range thumbnailTextPatterns {
		m := pattern.FindStringSubmatch(html)
		if m == nil {
			continue
		}
		uri := m[1]
		if r.isCDNImage(uri) {
			r.log.WithField("strategy", "text").Debug("thumbnail resolved")
			return uri
		}
	}
	return ""
}

func (r *ThumbnailResolver) isCDNImage(uri string) bool {
	if !strings.Contains(uri, r.cdnHost) {
		return false
	}
	for _, ext := range imageExtensions {
		if strings.Contains(uri, ext) {
			return true
		}
	}
	return false
}

func attachmentMedia(index int) []string {
	return []string{"data", "video", "story", "attachments", at(index), "media"}
}

func fromAttachment(doc Document, index int) (string, bool) {
	base := attachmentMedia(index)
	for _, suffix := range attachmentThumbnailPaths {
		path := append(append([]string{}, base...), suffix...)
		if uri, ok := lookupString(doc, path...); ok {
			return uri, true
		}
	}
	return "", false
}

func fromRepresentation(doc Document, index int) (string, bool) {
	path := append(append([]string{}, representationsPath...), at(index), "video_thumbnail", "uri")
	return lookupString(doc, path...)
}

func fromFirstAttachment(doc Document, _ int) (string, bool) {
	path := append(attachmentMedia(0), attachmentThumbnailPaths[0]...)
	return lookupString(doc, path...)
}
