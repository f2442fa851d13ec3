// Package media defines shared types for the fbgrab application.
package media

import "strings"

// Quality classes assigned by the modern extractor.
const (
	SD = "sd"
	HD = "hd"
)

// VideoEntry is one downloadable video found in a page.
type VideoEntry struct {
	VideoID     string       `json:"videoId"`             // video_<i>, unique within a result
	Key         string       `json:"key"`                 // Same as VideoID
	Thumbnail   string       `json:"thumbnail,omitempty"` // Empty when unresolved
	AudioURL    string       `json:"audioUrl,omitempty"`  // Empty when the video has no separate audio track
	Resolutions []Resolution `json:"resolutions"`         // Never empty
}

// Resolution is a single quality variant of a video.
type Resolution struct {
	QualityClass string `json:"qualityClass"`        // "sd", "hd" or the site-provided class
	QualityLabel string `json:"qualityLabel"`        // "SD", "HD" or the site-provided label
	URL          string `json:"url"`                 // Rewritten stream URL
	Key          string `json:"key"`                 // Unique within the entry
	Bandwidth    int64  `json:"bandwidth,omitempty"` // Modern representations only
	SourceID     string `json:"sourceId,omitempty"`  // Legacy representation id, e.g. "1234v"
}

// Selection is the video and quality picked by the user.
type Selection struct {
	Video      VideoEntry
	Resolution Resolution
}

// HasAudio reports whether the entry carries a separate audio stream.
func (v VideoEntry) HasAudio() bool {
	return v.AudioURL != ""
}

// Resolution looks up a resolution by key.
func (v VideoEntry) Resolution(key string) (Resolution, bool) {
	for _, r := range v.Resolutions {
		if r.Key == key {
			return r, true
		}
	}
	return Resolution{}, false
}

// Preferred returns the resolution whose quality class matches class.
// An empty or unmatched class yields the last resolution in the list.
func (v VideoEntry) Preferred(class string) Resolution {
	if len(v.Resolutions) == 0 {
		return Resolution{}
	}
	if class != "" {
		for _, r := range v.Resolutions {
			if strings.EqualFold(r.QualityClass, class) || strings.EqualFold(r.QualityLabel, class) {
				return r
			}
		}
	}
	return v.Resolutions[len(v.Resolutions)-1]
}

// Describe returns the display description for a quality label.
func Describe(label string) string {
	if label == "HD" {
		return "High Definition"
	}
	return "Standard Definition"
}
