package extract

import "regexp"

// Default rewrite parameters.
const (
	DefaultCDNMarker   = "fbcdn"
	DefaultPlaceholder = ".xx"
)

// Rewriter replaces the host segment between "video" and the CDN domain with
// a placeholder, e.g. https://video-abc1-2.xx.fbcdn.net becomes
// https://video.xx.fbcdn.net.
type Rewriter struct {
	pattern     *regexp.Regexp
	placeholder string
}

// NewRewriter builds a rewriter for the given CDN marker and placeholder.
func NewRewriter(marker, placeholder string) *Rewriter {
	return &Rewriter{
		pattern:     regexp.MustCompile(`(?s)video(.*?).` + regexp.QuoteMeta(marker)),
		placeholder: placeholder,
	}
}

// Rewrite returns u with the first matching segment replaced. Inputs without
// a match are returned unchanged.
func (r *Rewriter) Rewrite(u string) string {
	loc := r.pattern.FindStringSubmatchIndex(u)
	if loc == nil {
		return u
	}
	return u[:loc[2]] + r.placeholder + u[loc[3]:]
}

var defaultRewriter = NewRewriter(DefaultCDNMarker, DefaultPlaceholder)

// RewriteURL rewrites u with the default marker and placeholder.
func RewriteURL(u string) string {
	return defaultRewriter.Rewrite(u)
}
