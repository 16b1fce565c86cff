package sanitizer

import (
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/jinzhu/inflection"
)

// Pluralize returns the plural form of an English noun.
func Pluralize(s string) string {
	return inflection.Plural(s)
}

// Singularize returns the singular form of an English noun.
func Singularize(s string) string {
	return inflection.Singular(s)
}

// Ordinalize appends the English ordinal suffix to an integer: "1" becomes
// "1st" and "22" becomes "22nd". Other input is returned unchanged.
func Ordinalize(s string) string {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return s
	}
	return humanize.Ordinal(n)
}
