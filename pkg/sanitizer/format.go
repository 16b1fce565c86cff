package sanitizer

import "strings"

const (
	emailChars = "!#$%&'*+-=?^_`{|}~@.[]"
	urlChars   = "$-_.+!*'(),{}|\\^~[]`#%;/?:@&="
)

func isASCIIAlnum(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

// keepOnly drops every rune that is neither an ASCII letter, a digit nor in extra.
func keepOnly(s, extra string) string {
	return strings.Map(func(r rune) rune {
		if isASCIIAlnum(r) || strings.ContainsRune(extra, r) {
			return r
		}
		return -1
	}, s)
}

// FilterEmail drops characters that cannot appear in an email address.
func FilterEmail(s string) string {
	return keepOnly(s, emailChars)
}

// FilterURL drops characters that cannot appear in a URL.
func FilterURL(s string) string {
	return keepOnly(s, urlChars)
}
