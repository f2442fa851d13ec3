package extract

// scanState tracks where the scanner is relative to JSON strings and nesting.
type scanState struct {
	depth    int
	inString bool
	escaped  bool
}

// matchObject returns the index just past the brace that closes the object
// opening at s[start]. Braces inside string literals are ignored and a
// backslash inside a string escapes the next byte. ok is false when s[start]
// is not '{' or the object is never closed.
func matchObject(s string, start int) (end int, ok bool) {
	if start < 0 || start >= len(s) || s[start] != '{' {
		return 0, false
	}

	var st scanState
	for i := start; i < len(s); i++ {
		c := s[i]
		switch {
		case st.escaped:
			st.escaped = false
		case c == '\\' && st.inString:
			st.escaped = true
		case c == '"':
			st.inString = !st.inString
		case st.inString:
		case c == '{':
			st.depth++
		case c == '}':
			st.depth--
			if st.depth == 0 {
				return i + 1, true
			}
		}
	}
	return 0, false
}
