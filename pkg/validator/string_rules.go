package validator

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/dmitrymomot/formhandler/pkg/rules"
)

// URISchemes are the schemes accepted by url fields.
var URISchemes = []string{
	"http", "https", "ssh", "ftp", "smtp", "telnet", "imap", "ip", "ssl", "pop3", "sip", "ws", "wss",
}

const (
	hostLabels = `[a-z0-9](?:[-a-z0-9]*[a-z0-9])?(?:\.[a-z0-9](?:[-a-z0-9]*[a-z0-9])?)*`
	topLevel   = `(\.[a-z]{2,4})`
)

var (
	// emailShape: local part and domain.
	emailShape = regexp.MustCompile(`(?i)^[-\w!#$%&'*+/=?^` + "`" + `{|}~.]{1,64}@[-a-z0-9.]{1,253}$`)
	// emailStart: local part starts with a word character.
	emailStart = regexp.MustCompile(`^\w`)
	// emailDomain: labels of at most 63 characters not starting or ending with a hyphen.
	emailDomain = regexp.MustCompile(`(?i)@` + hostLabels + topLevel + `$`)
	// emailDots: adjacent dots in the local part.
	emailDots = regexp.MustCompile(`\.{2,}.*@`)

	urlFormat = regexp.MustCompile(`(?i)^(?:(?:` + strings.Join(URISchemes, "|") + `)://)?` +
		hostLabels + topLevel + `(?::\d{1,4})?(?:[#/?][-\w()/#~:.?+=&%@]*)?$`)
)

func emailRules(err string) *rules.Options {
	return &rules.Options{
		RegexAll: []rules.Pattern{
			{Matcher: emailShape, Err: err},
			{Matcher: emailStart, Err: err},
			{Matcher: emailDomain, Err: err},
		},
		RegexNone: []rules.Pattern{
			{Matcher: emailDots, Err: err},
		},
	}
}

func urlRules(err string) *rules.Options {
	return &rules.Options{
		Regex: &rules.Pattern{Matcher: urlFormat, Err: err},
	}
}

func validateText(c *Context, value string) bool {
	if c.setup(value) {
		checkLimits(c, float64(utf8.RuneCountInString(value)), charactersBound(c), PlaceholderField)
		checkPatterns(c, value, c.Options())
	}
	return c.postValidate(value, PlaceholderField)
}

func validateEmail(c *Context, value string) bool {
	if c.setup(value) {
		builtin := emailRules(pick(c.Options().Err, MsgEmail))
		if checkPatterns(c, value, builtin) && checkPatterns(c, value, c.Options()) {
			checkLimits(c, float64(utf8.RuneCountInString(value)), charactersBound(c), PlaceholderField)
		}
	}
	return c.postValidate(value, PlaceholderField)
}

func validateURL(c *Context, value string) bool {
	if c.setup(value) {
		builtin := urlRules(pick(c.Options().Err, MsgURL))
		if checkPatterns(c, value, builtin) && checkPatterns(c, value, c.Options()) {
			checkLimits(c, float64(utf8.RuneCountInString(value)), charactersBound(c), PlaceholderField)
		}
	}
	return c.postValidate(value, PlaceholderField)
}
