package sanitizer

import (
	"strings"
	"unicode"
)

// StripTags removes HTML tags and comments. Elements named in allowed are
// kept; allowed is a comma or space separated list such as "p,<br>,em".
func StripTags(s string, allowed string) string {
	if !strings.Contains(s, "<") {
		return s
	}
	keep := parseAllowedTags(allowed)

	s = commentRegex.ReplaceAllString(s, "")
	return tagRegex.ReplaceAllStringFunc(s, func(tag string) string {
		m := tagRegex.FindStringSubmatch(tag)
		if _, ok := keep[strings.ToLower(m[1])]; ok {
			return tag
		}
		return ""
	})
}

func parseAllowedTags(allowed string) map[string]struct{} {
	keep := make(map[string]struct{})
	for _, name := range strings.FieldsFunc(allowed, func(r rune) bool {
		return r == ',' || r == '<' || r == '>' || r == '/' || unicode.IsSpace(r)
	}) {
		keep[strings.ToLower(name)] = struct{}{}
	}
	return keep
}

// RemoveNullBytes drops NUL characters.
func RemoveNullBytes(s string) string {
	return strings.ReplaceAll(s, "\x00", "")
}

// RemoveControlChars drops control characters except tab, carriage return and newline.
func RemoveControlChars(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) && r != '\n' && r != '\r' && r != '\t' {
			return -1
		}
		return r
	}, s)
}
