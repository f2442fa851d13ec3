package extract

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/sirupsen/logrus"
)

// extensionsMarker finds the opening brace of an "extensions" object in raw text.
var extensionsMarker = regexp.MustCompile(`"extensions":\s*\{`)

// locator finds the JSON document carrying representation groups inside a page.
type locator struct {
	log logrus.FieldLogger
}

// locate tries script blocks first and balanced-brace carving second.
func (l *locator) locate(html string) (Document, error) {
	if doc, ok := l.fromScripts(html); ok {
		return doc, nil
	}
	if doc, ok := l.fromExtensions(html); ok {
		return doc, nil
	}
	return nil, &ExtractionError{Stage: "locate", Err: ErrNoEmbeddedJSON}
}

// fromScripts returns the first <script type="application/json"> body that
// parses and carries a non-empty representation list.
func (l *locator) fromScripts(html string) (Document, bool) {
	page, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		l.log.WithError(err).Debug("html parse failed, skipping script scan")
		return nil, false
	}

	var found Document
	page.Find(`script[type="application/json"]`).EachWithBreak(func(i int, s *goquery.Selection) bool {
		body := strings.TrimSpace(s.Text())
		if body == "" {
			return true
		}
		if err := checkJSON(body); err != nil {
			l.log.WithField("script", i).
				WithError(&ParseError{Offset: -1, Err: err}).
				Debug("skipping json script")
			return true
		}
		if hasRepresentations([]byte(body)) {
			l.log.WithField("script", i).Debug("representations found in script block")
			found = Document(body)
			return false
		}
		return true
	})
	return found, found != nil
}

// fromExtensions carves every "extensions" object out of the raw text and
// returns the first one with representations, wrapped as {"extensions": ...}.
func (l *locator) fromExtensions(html string) (Document, bool) {
	for _, loc := range extensionsMarker.FindAllStringIndex(html, -1) {
		start := loc[1] - 1
		end, ok := matchObject(html, start)
		if !ok {
			l.log.WithField("offset", start).Debug("unbalanced extensions object")
			continue
		}

		fragment := html[start:end]
		if err := checkJSON(fragment); err != nil {
			l.log.WithField("offset", start).
				WithError(&ParseError{Offset: start, Err: err}).
				Debug("skipping extensions candidate")
			continue
		}

		doc := Document(`{"extensions":` + fragment + `}`)
		if hasRepresentations(doc) {
			l.log.WithField("offset", start).Debug("representations found in extensions object")
			return doc, true
		}
	}
	return nil, false
}

// checkJSON returns the syntax error of s, if any.
func checkJSON(s string) error {
	var raw json.RawMessage
	return json.Unmarshal([]byte(s), &raw)
}
