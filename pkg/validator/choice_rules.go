package validator

import (
	"slices"
	"strconv"
	"strings"
)

// validateChoice accepts a value equal to one of the choices. Numeric
// values also match numerically equal choices, so "01" matches "1".
func validateChoice(c *Context, value string) bool {
	if c.setup(value) {
		if !slices.ContainsFunc(c.Options().Choices, func(choice string) bool { return looseEqual(choice, value) }) {
			return c.failKey("validation.choice", pick(c.Options().Err, MsgChoice))
		}
	}
	return c.postValidate(value, PlaceholderField)
}

func looseEqual(a, b string) bool {
	if a == b {
		return true
	}
	x, errA := strconv.ParseFloat(strings.TrimSpace(a), 64)
	y, errB := strconv.ParseFloat(strings.TrimSpace(b), 64)
	return errA == nil && errB == nil && x == y
}

// validateBoolean accepts the usual checkbox spellings.
func validateBoolean(c *Context, value string) bool {
	if c.setup(value) {
		switch strings.ToLower(strings.TrimSpace(value)) {
		case "1", "0", "true", "false", "on", "off", "yes", "no", "checked", "null":
		default:
			return c.failKey("validation.boolean", pick(c.Options().Err, MsgBoolean))
		}
	}
	return c.postValidate(value, PlaceholderField)
}
