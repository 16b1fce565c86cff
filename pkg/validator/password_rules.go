package validator

import "unicode/utf8"

const (
	passwordPrefix      = "Password"
	passwordMatchPrefix = "Passwords"
)

// validatePassword relies on the resolved min, max and regexAll defaults.
func validatePassword(c *Context, value string) bool {
	if c.setup(value) {
		checkLimits(c, float64(utf8.RuneCountInString(value)), charactersBound(c), passwordPrefix)
		checkPatterns(c, value, c.Options())
	}
	return c.postValidate(value, passwordMatchPrefix)
}
