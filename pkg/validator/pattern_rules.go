package validator

import "github.com/dmitrymomot/formhandler/pkg/rules"

// checkPatterns runs regex, regexAll, regexAny and regexNone in that order.
// Each combinator is skipped once the context has failed.
func checkPatterns(c *Context, value string, o *rules.Options) bool {
	if c.Succeeds() && o.Regex != nil {
		regexCheck(c, value, *o.Regex)
	}
	if c.Succeeds() {
		regexCheckAll(c, value, o.RegexAll)
	}
	if c.Succeeds() && o.RegexAny != nil {
		regexCheckAny(c, value, *o.RegexAny)
	}
	if c.Succeeds() {
		regexCheckNone(c, value, o.RegexNone)
	}
	return c.Succeeds()
}

func regexCheck(c *Context, value string, p rules.Pattern) bool {
	if !p.MatchString(value) {
		return c.failKey("validation.regex", pick(p.Err, MsgRegex))
	}
	return true
}

func regexCheckAll(c *Context, value string, patterns []rules.Pattern) bool {
	for _, p := range patterns {
		if !p.MatchString(value) {
			return c.failKey("validation.regex_all", pick(p.Err, MsgRegexAll))
		}
	}
	return true
}

func regexCheckAny(c *Context, value string, anyOf rules.AnyOf) bool {
	if len(anyOf.Tests) == 0 {
		return true
	}
	for _, p := range anyOf.Tests {
		if p.MatchString(value) {
			return true
		}
	}
	return c.failKey("validation.regex_any", pick(anyOf.Err, MsgRegexAny))
}

func regexCheckNone(c *Context, value string, patterns []rules.Pattern) bool {
	for _, p := range patterns {
		if p.MatchString(value) {
			return c.failKey("validation.regex_none", pick(p.Err, MsgRegexNone))
		}
	}
	return true
}
