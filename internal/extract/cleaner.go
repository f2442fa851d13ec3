package extract

import "strings"

// escapeReplacements are applied one after another, in this order.
// Later pairs see the output of earlier ones, so "u00253D" must run before "u0025".
var escapeReplacements = [][2]string{
	{"u003C", "<"},
	{"u003E", ">"},
	{"u002F", "/"},
	{"u0026", "&"},
	{"u00253D", "="},
	{"u0025", "%"},
	{`\`, ""},
	{"amp;", "&"},
}

// Cleaner normalizes the escaped fragments that pages embed in JSON strings.
type Cleaner struct {
	text string
}

// NewCleaner wraps text for cleaning.
func NewCleaner(text string) *Cleaner {
	return &Cleaner{text: text}
}

// Clean applies the escape replacements and then removes every trash word.
func (c *Cleaner) Clean(trash ...string) string {
	out := c.text
	for _, pair := range escapeReplacements {
		out = strings.ReplaceAll(out, pair[0], pair[1])
	}
	for _, word := range trash {
		if word == "" {
			continue
		}
		out = strings.ReplaceAll(out, word, "")
	}
	return out
}
