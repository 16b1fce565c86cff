package sanitizer

import (
	"math"
	"strconv"
	"strings"
)

// ToNumeric parses the leading number of s. Integers are returned as int64
// and decimals as float64; a string without a numeric prefix yields int64(0).
//
//	ToNumeric("200AD") // 200
//	ToNumeric("2.5kg") // 2.5
//	ToNumeric("AD30")  // 0
func ToNumeric(s string) any {
	prefix := leadingNumberRegex.FindString(strings.TrimSpace(s))
	if prefix == "" {
		return int64(0)
	}
	if !strings.ContainsAny(prefix, ".eE") {
		if n, err := strconv.ParseInt(prefix, 10, 64); err == nil {
			return n
		}
	}
	f, err := strconv.ParseFloat(prefix, 64)
	if err != nil {
		return int64(0)
	}
	return f
}

// HasNumericPrefix reports whether s starts with a number.
func HasNumericPrefix(s string) bool {
	return leadingNumberRegex.MatchString(strings.TrimSpace(s))
}

// ToInt returns the leading number of s truncated to an integer. Numbers
// outside the int64 range saturate at math.MinInt64 or math.MaxInt64.
func ToInt(s string) int64 {
	switch n := ToNumeric(s).(type) {
	case int64:
		return n
	case float64:
		switch {
		case math.IsNaN(n):
			return 0
		case n >= math.MaxInt64:
			return math.MaxInt64
		case n <= math.MinInt64:
			return math.MinInt64
		}
		return int64(n)
	}
	return 0
}

// ToFloat returns the leading number of s as a float.
func ToFloat(s string) float64 {
	switch n := ToNumeric(s).(type) {
	case int64:
		return float64(n)
	case float64:
		return n
	}
	return 0
}

// ToBool applies checkbox semantics: empty, "0", "false", "off", "no" and
// "null" are false, anything else is true.
func ToBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "0", "false", "off", "no", "null":
		return false
	}
	return true
}
