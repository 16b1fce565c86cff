package sanitizer

import (
	"net/url"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Trim removes leading and trailing whitespace.
func Trim(s string) string {
	return strings.TrimSpace(s)
}

func ToLower(s string) string {
	return strings.ToLower(s)
}

func ToUpper(s string) string {
	return strings.ToUpper(s)
}

// Minimize collapses every whitespace run into a single space.
func Minimize(s string) string {
	return whitespaceRegex.ReplaceAllString(s, " ")
}

// DecodeURL reverses query escaping. Malformed input is returned unchanged.
func DecodeURL(s string) string {
	decoded, err := url.QueryUnescape(s)
	if err != nil {
		return s
	}
	return decoded
}

// Capitalize uppercases the first letter and lowercases the rest.
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}

// Titleize uppercases the first letter of every word using English casing rules.
func Titleize(s string) string {
	return TitleizeIn(language.English, s)
}

// TitleizeIn titleizes s with the casing rules of tag.
func TitleizeIn(tag language.Tag, s string) string {
	return cases.Title(tag).String(s)
}

// splitWords breaks an identifier into lowercase words at camel humps and
// at every character that is neither a letter nor a digit.
func splitWords(s string) []string {
	s = humpRegex.ReplaceAllString(strings.TrimSpace(s), "${1}${3} ${2}${4}")
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// ToSnakeCase converts an identifier to snake_case. "firstName" and
// "First Name" both become "first_name".
func ToSnakeCase(s string) string {
	return strings.Join(splitWords(s), "_")
}

// ToKebabCase converts an identifier to kebab-case.
func ToKebabCase(s string) string {
	return strings.Join(splitWords(s), "-")
}

// ToCamelCase converts an identifier to camelCase. "first_name" becomes "firstName".
func ToCamelCase(s string) string {
	words := splitWords(s)
	for i := 1; i < len(words); i++ {
		r, size := utf8.DecodeRuneInString(words[i])
		words[i] = string(unicode.ToUpper(r)) + words[i][size:]
	}
	return strings.Join(words, "")
}
