package rules

import (
	"fmt"
	"regexp"
	"strconv"
)

// Limit is a bound declared as text: a number, a date, or a byte count with
// a unit suffix such as "2mb".
type Limit string

// Num formats a numeric bound.
func Num[T ~int | ~int64 | ~float64](v T) Limit {
	switch n := any(v).(type) {
	case float64:
		return Limit(strconv.FormatFloat(n, 'f', -1, 64))
	default:
		return Limit(fmt.Sprint(n))
	}
}

// IsSet reports whether the bound was declared.
func (l Limit) IsSet() bool { return l != "" }

// Matcher is the compiled form of a pattern. *regexp.Regexp satisfies it.
type Matcher interface {
	MatchString(s string) bool
}

// Pattern pairs an expression with the error recorded when the test fails.
type Pattern struct {
	Expr    string  `yaml:"test" json:"test"`
	Err     string  `yaml:"err,omitempty" json:"err,omitempty"`
	Matcher Matcher `yaml:"-" json:"-"`
}

// Compile returns a copy of p with its Matcher built from Expr.
// A pattern that already has a Matcher is returned unchanged.
func (p Pattern) Compile() (Pattern, error) {
	if p.Matcher != nil {
		return p, nil
	}
	re, err := regexp.Compile(p.Expr)
	if err != nil {
		return p, fmt.Errorf("%w: %q: %v", ErrInvalidPattern, p.Expr, err)
	}
	p.Matcher = re
	return p, nil
}

// MatchString reports whether s matches. An uncompiled pattern never matches.
func (p Pattern) MatchString(s string) bool {
	if p.Matcher == nil {
		return false
	}
	return p.Matcher.MatchString(s)
}

// AnyOf holds the tests of a regexAny rule with its single error message.
type AnyOf struct {
	Tests []Pattern `yaml:"tests" json:"tests"`
	Err   string    `yaml:"err,omitempty" json:"err,omitempty"`
}

// Match declares a cross-field equality check.
type Match struct {
	Target string `yaml:"target" json:"target"`
	Err    string `yaml:"err,omitempty" json:"err,omitempty"`
}

// Options are the validation options of a field.
type Options struct {
	Min    Limit  `yaml:"min,omitempty" json:"min,omitempty"`
	Max    Limit  `yaml:"max,omitempty" json:"max,omitempty"`
	Gt     Limit  `yaml:"gt,omitempty" json:"gt,omitempty"`
	Lt     Limit  `yaml:"lt,omitempty" json:"lt,omitempty"`
	MinErr string `yaml:"minErr,omitempty" json:"minErr,omitempty"`
	MaxErr string `yaml:"maxErr,omitempty" json:"maxErr,omitempty"`
	GtErr  string `yaml:"gtErr,omitempty" json:"gtErr,omitempty"`
	LtErr  string `yaml:"ltErr,omitempty" json:"ltErr,omitempty"`

	Regex     *Pattern  `yaml:"regex,omitempty" json:"regex,omitempty"`
	RegexAll  []Pattern `yaml:"regexAll,omitempty" json:"regexAll,omitempty"`
	RegexAny  *AnyOf    `yaml:"regexAny,omitempty" json:"regexAny,omitempty"`
	RegexNone []Pattern `yaml:"regexNone,omitempty" json:"regexNone,omitempty"`

	// Err replaces the type's default format error.
	Err string `yaml:"err,omitempty" json:"err,omitempty"`
	// FormatErr replaces the date layout error.
	FormatErr string `yaml:"formatErr,omitempty" json:"formatErr,omitempty"`
	// RequiredErr replaces the missing value error.
	RequiredErr string `yaml:"requiredErr,omitempty" json:"requiredErr,omitempty"`

	Choices []string `yaml:"choices,omitempty" json:"choices,omitempty"`
	From    string   `yaml:"from,omitempty" json:"from,omitempty"`
	To      string   `yaml:"to,omitempty" json:"to,omitempty"`
	Step    int      `yaml:"step,omitempty" json:"step,omitempty"`

	ShouldMatch *Match `yaml:"shouldMatch,omitempty" json:"shouldMatch,omitempty"`
	// MatchWith compares against a literal value. A {field} target inside
	// it still reads that field. ShouldMatch wins when both are set.
	MatchWith *Match `yaml:"matchWith,omitempty" json:"matchWith,omitempty"`

	Mimes        []string `yaml:"mimes,omitempty" json:"mimes,omitempty"`
	MimeErr      string   `yaml:"mimeErr,omitempty" json:"mimeErr,omitempty"`
	OverrideMime string   `yaml:"overrideMime,omitempty" json:"overrideMime,omitempty"`
	MoveTo       string   `yaml:"moveTo,omitempty" json:"moveTo,omitempty"`
	MoveErr      string   `yaml:"moveErr,omitempty" json:"moveErr,omitempty"`

	// Store uploads accepted files to the handler's storage under StorePrefix.
	Store       bool   `yaml:"store,omitempty" json:"store,omitempty"`
	StorePrefix string `yaml:"storePrefix,omitempty" json:"storePrefix,omitempty"`
}

// clone returns a deep copy so derived values never alias the declaration.
func (o Options) clone() Options {
	out := o
	if o.Regex != nil {
		r := *o.Regex
		out.Regex = &r
	}
	out.RegexAll = append([]Pattern(nil), o.RegexAll...)
	if o.RegexAny != nil {
		a := AnyOf{Tests: append([]Pattern(nil), o.RegexAny.Tests...), Err: o.RegexAny.Err}
		out.RegexAny = &a
	}
	out.RegexNone = append([]Pattern(nil), o.RegexNone...)
	out.Choices = append([]string(nil), o.Choices...)
	if o.ShouldMatch != nil {
		m := *o.ShouldMatch
		out.ShouldMatch = &m
	}
	if o.MatchWith != nil {
		m := *o.MatchWith
		out.MatchWith = &m
	}
	out.Mimes = append([]string(nil), o.Mimes...)
	return out
}

// compile builds every pattern matcher in place.
func (o *Options) compile() error {
	var err error
	if o.Regex != nil {
		if *o.Regex, err = o.Regex.Compile(); err != nil {
			return err
		}
	}
	for i := range o.RegexAll {
		if o.RegexAll[i], err = o.RegexAll[i].Compile(); err != nil {
			return err
		}
	}
	if o.RegexAny != nil {
		for i := range o.RegexAny.Tests {
			if o.RegexAny.Tests[i], err = o.RegexAny.Tests[i].Compile(); err != nil {
				return err
			}
		}
	}
	for i := range o.RegexNone {
		if o.RegexNone[i], err = o.RegexNone[i].Compile(); err != nil {
			return err
		}
	}
	return nil
}
