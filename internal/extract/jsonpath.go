package extract

import (
	"strconv"

	"github.com/buger/jsonparser"
)

// Path to the representation groups in a located document.
var representationsPath = []string{"extensions", "all_video_dash_prefetch_representations"}

// Document is a validated JSON object located inside a page.
type Document []byte

// at builds a jsonparser array index key.
func at(i int) string {
	return "[" + strconv.Itoa(i) + "]"
}

// lookupString follows path through doc and returns a non-empty string leaf.
// Any missing link, wrong type or empty value counts as absent.
func lookupString(doc []byte, path ...string) (string, bool) {
	v, err := jsonparser.GetString(doc, path...)
	if err != nil || v == "" {
		return "", false
	}
	return v, true
}

// arrayItems returns the raw elements of the array at path, or nil.
func arrayItems(doc []byte, path ...string) [][]byte {
	var items [][]byte
	_, err := jsonparser.ArrayEach(doc, func(value []byte, _ jsonparser.ValueType, _ int, _ error) {
		items = append(items, value)
	}, path...)
	if err != nil {
		return nil
	}
	return items
}

// hasRepresentations reports whether doc carries a non-empty representation list.
func hasRepresentations(doc []byte) bool {
	return len(arrayItems(doc, representationsPath...)) > 0
}
