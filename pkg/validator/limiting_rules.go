package validator

import (
	"cmp"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/dmitrymomot/formhandler/pkg/rules"
)

var sizeBound = regexp.MustCompile(`(?i)^(\.[0-9]+|[0-9]+\.?[0-9]*)(tb|gb|mb|kb|bytes)$`)

// bound reads declared limits as T and renders them in messages.
// parse reports false when the limit cannot be read as T.
type bound[T cmp.Ordered] struct {
	parse  func(rules.Limit) (T, bool)
	format func(T) string
}

type limitCheck[T cmp.Ordered] struct {
	name     string
	limit    rules.Limit
	custom   string
	phrase   string
	violated func(actual, limit T) bool
}

// checkLimits evaluates min, max, gt and lt in that order and stops at the
// first violated bound.
func checkLimits[T cmp.Ordered](c *Context, actual T, b bound[T], prefix string) bool {
	o := c.Options()
	checks := []limitCheck[T]{
		{"min", o.Min, o.MinErr, phraseMin, func(a, l T) bool { return a < l }},
		{"max", o.Max, o.MaxErr, phraseMax, func(a, l T) bool { return a > l }},
		{"gt", o.Gt, o.GtErr, phraseGt, func(a, l T) bool { return a <= l }},
		{"lt", o.Lt, o.LtErr, phraseLt, func(a, l T) bool { return a >= l }},
	}

	for _, chk := range checks {
		if !chk.limit.IsSet() {
			continue
		}
		declared := chk.limit
		isRef := rules.IsReference(string(declared))
		if isRef {
			// a reference reads the live value of another field; an empty or
			// unreadable value leaves that field's own rules to report it
			v, found := c.lookup(rules.Dereference(string(declared)))
			if !found || strings.TrimSpace(v) == "" {
				continue
			}
			declared = rules.Limit(strings.TrimSpace(v))
		}
		limit, ok := b.parse(declared)
		if !ok {
			if isRef {
				continue
			}
			return c.Abort(fmt.Errorf("%w: %s %q of field %q", ErrInvalidBound, chk.name, chk.limit, c.Field()))
		}
		if chk.violated(actual, limit) {
			msg := prefix + " " + chk.phrase + " " + b.format(limit)
			return c.failKey("validation."+chk.name, pick(chk.custom, msg))
		}
	}
	return true
}

// ParseLimit reads a numeric bound. Unit suffixed values are converted to
// a byte count using decimal multipliers.
func ParseLimit(l rules.Limit) (float64, bool) {
	s := strings.TrimSpace(string(l))
	if m := sizeBound.FindStringSubmatch(s); m != nil {
		n, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return 0, false
		}
		unit := strings.ToLower(m[2])
		for _, u := range fileUnits {
			if u.name == unit {
				return n * u.size, true
			}
		}
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

func charactersBound(c *Context) bound[float64] {
	return bound[float64]{
		parse:  ParseLimit,
		format: func(v float64) string { return formatNumber(c.engine.printer, v) + " characters" },
	}
}

func numericBound(c *Context) bound[float64] {
	return bound[float64]{
		parse:  ParseLimit,
		format: func(v float64) string { return formatNumber(c.engine.printer, v) },
	}
}

func fileBound(c *Context) bound[float64] {
	return bound[float64]{
		parse:  ParseLimit,
		format: func(v float64) string { return formatFileSize(c.engine.printer, v) },
	}
}

var dateBound = bound[int]{
	parse: func(l rules.Limit) (int, bool) {
		d, ok := ParseDate(string(l))
		return d.ordinal(), ok
	},
	format: func(v int) string { return dateFromOrdinal(v).String() },
}
