package sanitizer

import "regexp"

var (
	whitespaceRegex = regexp.MustCompile(`\s+`)

	// tagRegex captures the element name of opening, closing and self closing tags.
	tagRegex = regexp.MustCompile(`</?([a-zA-Z][a-zA-Z0-9-]*)\b[^>]*>`)
	// commentRegex matches HTML comments, which never survive tag stripping.
	commentRegex = regexp.MustCompile(`(?s)<!--.*?-->`)

	// leadingNumberRegex matches the numeric prefix of a string.
	leadingNumberRegex = regexp.MustCompile(`^[-+]?(?:\d+(?:\.\d*)?|\.\d+)(?:[eE][-+]?\d+)?`)

	// humpRegex finds word boundaries inside camel case identifiers.
	humpRegex = regexp.MustCompile(`([a-z0-9])([A-Z])|([A-Z]+)([A-Z][a-z])`)
)
