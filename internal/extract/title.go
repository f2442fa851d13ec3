package extract

import (
	"encoding/json"
	"regexp"
	"strings"
)

var storyTitlePattern = regexp.MustCompile(`"story":\s*\{"message":\s*\{"text":"([^"]+)",`)

// Title returns the post message of the page, or "" when it has none.
// JSON string escapes in the message are decoded when possible.
func Title(html string) string {
	m := storyTitlePattern.FindStringSubmatch(html)
	if m == nil {
		return ""
	}

	var decoded string
	if err := json.Unmarshal([]byte(`"`+m[1]+`"`), &decoded); err != nil {
		return strings.TrimSpace(m[1])
	}
	return strings.TrimSpace(decoded)
}
