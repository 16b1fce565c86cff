package validator

import (
	"regexp"
	"strconv"
)

var (
	intFormat    = regexp.MustCompile(`^[-+]?\d+$`)
	pIntFormat   = regexp.MustCompile(`^[+]?\d+$`)
	nIntFormat   = regexp.MustCompile(`^-\d+$`)
	floatFormat  = regexp.MustCompile(`^(?:[-+]?\d+(\.\d+)?|\.\d+)$`)
	pFloatFormat = regexp.MustCompile(`^(?:\+?\d+(\.\d+)?|\.\d+)$`)
	nFloatFormat = regexp.MustCompile(`^[-]\d+(\.\d+)?$`)
	moneyFormat  = regexp.MustCompile(`^\+?\d+(\.\d{1,2})?$`)
)

// integerValidator is numberValidator for the int family. Values outside
// the int64 range fail.
func integerValidator(format *regexp.Regexp, formatErr string) Validator {
	number := numberValidator(format, formatErr)
	return ValidatorFunc(func(c *Context, value string) bool {
		if value != "" && format.MatchString(value) {
			if _, err := strconv.ParseInt(value, 10, 64); err != nil {
				c.value = value
				return c.failKey("validation.integer_range", pick(c.Options().Err, MsgIntegerRange))
			}
		}
		return number.Validate(c, value)
	})
}

// numberValidator checks the value against format, then the numeric limits.
func numberValidator(format *regexp.Regexp, formatErr string) Validator {
	return ValidatorFunc(func(c *Context, value string) bool {
		if c.setup(value) {
			if !format.MatchString(value) {
				return c.failKey("validation.number", pick(c.Options().Err, formatErr))
			}
			n, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return c.failKey("validation.number", pick(c.Options().Err, formatErr))
			}
			checkLimits(c, n, numericBound(c), PlaceholderField)
		}
		return c.postValidate(value, PlaceholderField)
	})
}
