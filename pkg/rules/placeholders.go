package rules

import (
	"strconv"
	"strings"
	"time"
)

// Placeholder tokens substituted at resolution time.
const (
	PlaceholderName        = "{name}"
	PlaceholderCurrentDate = "{current_date}"
	PlaceholderCurrentYear = "{current_year}"
	PlaceholderCurrentTime = "{current_time}"
)

// DateLayout is the layout of {current_date}.
const DateLayout = "2006-01-02"

// placeholders performs a single textual pass over rule strings.
// A single pass never rescans its own output, so applying it to already
// substituted text is a no-op.
type placeholders struct {
	r *strings.Replacer
}

func newPlaceholders(field string, now time.Time) placeholders {
	return placeholders{r: strings.NewReplacer(
		PlaceholderName, field,
		PlaceholderCurrentDate, now.Format(DateLayout),
		PlaceholderCurrentYear, strconv.Itoa(now.Year()),
		PlaceholderCurrentTime, strconv.FormatInt(now.Unix(), 10),
	)}
}

func (p placeholders) apply(s string) string {
	if !strings.Contains(s, "{") {
		return s
	}
	return p.r.Replace(s)
}

func (p placeholders) applyAll(list []string) []string {
	for i, s := range list {
		list[i] = p.apply(s)
	}
	return list
}

func (p placeholders) applyPatterns(list []Pattern) {
	for i := range list {
		list[i].Err = p.apply(list[i].Err)
	}
}

// options substitutes every string-valued option of o in place.
// o must already be a private copy.
func (p placeholders) options(o *Options) {
	o.Min = Limit(p.apply(string(o.Min)))
	o.Max = Limit(p.apply(string(o.Max)))
	o.Gt = Limit(p.apply(string(o.Gt)))
	o.Lt = Limit(p.apply(string(o.Lt)))
	o.MinErr = p.apply(o.MinErr)
	o.MaxErr = p.apply(o.MaxErr)
	o.GtErr = p.apply(o.GtErr)
	o.LtErr = p.apply(o.LtErr)

	if o.Regex != nil {
		o.Regex.Err = p.apply(o.Regex.Err)
	}
	p.applyPatterns(o.RegexAll)
	if o.RegexAny != nil {
		o.RegexAny.Err = p.apply(o.RegexAny.Err)
	}
	p.applyPatterns(o.RegexNone)

	o.Err = p.apply(o.Err)
	o.FormatErr = p.apply(o.FormatErr)
	o.RequiredErr = p.apply(o.RequiredErr)
	o.Choices = p.applyAll(o.Choices)
	o.From = p.apply(o.From)
	o.To = p.apply(o.To)

	if o.ShouldMatch != nil {
		o.ShouldMatch.Target = p.apply(o.ShouldMatch.Target)
		o.ShouldMatch.Err = p.apply(o.ShouldMatch.Err)
	}
	if o.MatchWith != nil {
		o.MatchWith.Target = p.apply(o.MatchWith.Target)
		o.MatchWith.Err = p.apply(o.MatchWith.Err)
	}

	o.MimeErr = p.apply(o.MimeErr)
	o.MoveTo = p.apply(o.MoveTo)
	o.MoveErr = p.apply(o.MoveErr)
	o.StorePrefix = p.apply(o.StorePrefix)
}

// Reference wraps a field name in placeholder delimiters unless it already is.
func Reference(field string) string {
	if IsReference(field) {
		return field
	}
	return "{" + field + "}"
}

// IsReference reports whether s is a delimited field reference.
func IsReference(s string) bool {
	return len(s) > 2 && strings.HasPrefix(s, "{") && strings.HasSuffix(s, "}")
}

// Dereference strips the delimiters of a field reference.
func Dereference(s string) string {
	if IsReference(s) {
		return s[1 : len(s)-1]
	}
	return s
}
