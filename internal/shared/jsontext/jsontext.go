// Package jsontext provides minimal JSON-shaped text handling for the
// line protocol: value escaping, top-level array/object extraction and
// flat field extraction. It is deliberately not a JSON parser; the
// first occurrence of a key wins and malformed trailing content is
// ignored rather than rejected.
package jsontext

import (
	"strconv"
	"strings"
)

// Escape escapes backslash, double quote, newline, carriage return and
// tab for embedding a string in a JSON-shaped line.
func Escape(input string) string {
	var out strings.Builder
	out.Grow(len(input))
	for _, c := range []byte(input) {
		switch c {
		case '\\':
			out.WriteString(`\\`)
		case '"':
			out.WriteString(`\"`)
		case '\n':
			out.WriteString(`\n`)
		case '\r':
			out.WriteString(`\r`)
		case '\t':
			out.WriteString(`\t`)
		default:
			out.WriteByte(c)
		}
	}
	return out.String()
}

// ArrayObjects returns the top-level object substrings of the array
// held by the named key. Nested braces and escaped quotes inside
// strings are respected; content after the closing bracket is ignored.
func ArrayObjects(content, key string) []string {
	var objects []string
	needle := `"` + key + `"`
	keyPos := strings.Index(content, needle)
	if keyPos < 0 {
		return objects
	}
	rest := content[keyPos+len(needle):]
	colonPos := strings.IndexByte(rest, ':')
	if colonPos < 0 {
		return objects
	}
	arrayPos := strings.IndexByte(rest[colonPos+1:], '[')
	if arrayPos < 0 {
		return objects
	}
	scan := rest[colonPos+1+arrayPos+1:]

	inString := false
	escape := false
	depth := 0
	objStart := -1
	for pos := 0; pos < len(scan); pos++ {
		ch := scan[pos]
		if inString {
			if escape {
				escape = false
			} else if ch == '\\' {
				escape = true
			} else if ch == '"' {
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case '{':
			if depth == 0 {
				objStart = pos
			}
			depth++
		case '}':
			if depth > 0 {
				depth--
				if depth == 0 && objStart >= 0 {
					objects = append(objects, scan[objStart:pos+1])
					objStart = -1
				}
			}
		case ']':
			if depth == 0 {
				return objects
			}
		}
	}
	return objects
}

// ObjectField returns the object substring held by the named key.
func ObjectField(content, key string) (string, bool) {
	needle := `"` + key + `"`
	keyPos := strings.Index(content, needle)
	if keyPos < 0 {
		return "", false
	}
	rest := content[keyPos+len(needle):]
	colonPos := strings.IndexByte(rest, ':')
	if colonPos < 0 {
		return "", false
	}
	objPos := strings.IndexByte(rest[colonPos+1:], '{')
	if objPos < 0 {
		return "", false
	}
	scan := rest[colonPos+1+objPos:]

	inString := false
	escape := false
	depth := 0
	objStart := -1
	for pos := 0; pos < len(scan); pos++ {
		ch := scan[pos]
		if inString {
			if escape {
				escape = false
			} else if ch == '\\' {
				escape = true
			} else if ch == '"' {
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case '{':
			if depth == 0 {
				objStart = pos
			}
			depth++
		case '}':
			if depth > 0 {
				depth--
				if depth == 0 && objStart >= 0 {
					return scan[objStart : pos+1], true
				}
			}
		}
	}
	return "", false
}

// StringField extracts the string value of the named key. Escaped
// characters inside the value are unescaped.
func StringField(content, key string) (string, bool) {
	raw, ok := rawValue(content, key)
	if !ok {
		return "", false
	}
	if len(raw) < 2 || raw[0] != '"' {
		return "", false
	}
	var out strings.Builder
	escape := false
	for pos := 1; pos < len(raw); pos++ {
		ch := raw[pos]
		if escape {
			switch ch {
			case 'n':
				out.WriteByte('\n')
			case 'r':
				out.WriteByte('\r')
			case 't':
				out.WriteByte('\t')
			default:
				out.WriteByte(ch)
			}
			escape = false
			continue
		}
		if ch == '\\' {
			escape = true
			continue
		}
		if ch == '"' {
			return out.String(), true
		}
		out.WriteByte(ch)
	}
	return "", false
}

// IntField extracts the integer value of the named key. A quoted
// numeric value is accepted as well.
func IntField(content, key string) (int, bool) {
	raw, ok := rawValue(content, key)
	if !ok {
		return 0, false
	}
	token := strings.TrimSpace(strings.Trim(raw, `"`))
	if token == "" {
		return 0, false
	}
	value, err := strconv.Atoi(token)
	if err != nil {
		return 0, false
	}
	return value, true
}

// BoolField extracts the boolean value of the named key.
func BoolField(content, key string) (bool, bool) {
	raw, ok := rawValue(content, key)
	if !ok {
		return false, false
	}
	switch strings.TrimSpace(strings.Trim(raw, `"`)) {
	case "true":
		return true, true
	case "false":
		return false, true
	}
	return false, false
}

// rawValue returns the raw token following the first occurrence of the
// named key: a complete quoted string (escapes respected) or the bare
// token up to the next comma, brace or bracket.
func rawValue(content, key string) (string, bool) {
	needle := `"` + key + `"`
	keyPos := strings.Index(content, needle)
	if keyPos < 0 {
		return "", false
	}
	rest := content[keyPos+len(needle):]
	colonPos := strings.IndexByte(rest, ':')
	if colonPos < 0 {
		return "", false
	}
	rest = strings.TrimLeft(rest[colonPos+1:], " \t\r\n")
	if rest == "" {
		return "", false
	}
	if rest[0] == '"' {
		escape := false
		for pos := 1; pos < len(rest); pos++ {
			if escape {
				escape = false
				continue
			}
			switch rest[pos] {
			case '\\':
				escape = true
			case '"':
				return rest[:pos+1], true
			}
		}
		return "", false
	}
	end := strings.IndexAny(rest, ",}]")
	if end < 0 {
		end = len(rest)
	}
	return strings.TrimSpace(rest[:end]), true
}
