package formhandler

import (
	"fmt"

	"golang.org/x/text/language"

	"github.com/dmitrymomot/formhandler/pkg/rules"
	"github.com/dmitrymomot/formhandler/pkg/sanitizer"
)

// filterValue runs the filter pipeline over one validated element:
// decode, stripTags, minimize, trim, type filters, numeric coercion, case
// transforms, inflection, hash and finally the callback.
func filterValue(rule *rules.FieldRule, value string, locale language.Tag) (any, error) {
	f := rule.Filters
	textual := rule.Type != rules.TypePassword

	if enabled(f.Decode, textual) {
		value = sanitizer.DecodeURL(value)
	}
	if enabled(f.StripTags, textual) {
		value = sanitizer.StripTags(value, f.StripTagsIgnore)
	}
	if f.Minimize {
		value = sanitizer.Minimize(value)
	}
	if enabled(f.Trim, textual) {
		value = sanitizer.Trim(value)
	}

	switch rule.Type {
	case rules.TypeEmail:
		value = sanitizer.FilterEmail(value)
	case rules.TypeURL:
		value = sanitizer.FilterURL(value)
	}

	var out any = value
	switch {
	case f.ToNumeric:
		out = sanitizer.ToNumeric(value)
	case rule.Type.IsBoolean():
		out = sanitizer.ToBool(value)
	case rule.Type.IsInteger() && sanitizer.HasNumericPrefix(value):
		out = sanitizer.ToInt(value)
	case rule.Type.IsNumber() && sanitizer.HasNumericPrefix(value):
		out = sanitizer.ToFloat(value)
	}

	if s, ok := out.(string); ok {
		transformed, err := transformText(rule, s, locale)
		if err != nil {
			return nil, err
		}
		out = transformed
	}

	if f.Callback != nil {
		out = f.Callback(out)
	}
	return out, nil
}

func transformText(rule *rules.FieldRule, s string, locale language.Tag) (string, error) {
	f := rule.Filters

	if f.Uppercase {
		s = sanitizer.ToUpper(s)
	}
	if f.Lowercase {
		s = sanitizer.ToLower(s)
	}
	if f.Capitalize {
		s = sanitizer.Capitalize(s)
	}
	if enabled(f.Titleize, rule.Type == rules.TypeTitle) {
		s = sanitizer.TitleizeIn(locale, s)
	}

	if f.Pluralize {
		s = sanitizer.Pluralize(s)
	}
	if f.Singularize {
		s = sanitizer.Singularize(s)
	}
	if f.Ordinalize {
		s = sanitizer.Ordinalize(s)
	}

	if f.Hash {
		hashed, err := sanitizer.Hash(s)
		if err != nil {
			return "", fmt.Errorf("%w: field %q: %v", ErrFilterFailed, rule.Field, err)
		}
		s = hashed
	}
	return s, nil
}

// enabled resolves an optional toggle against its default.
func enabled(toggle *bool, def bool) bool {
	if toggle == nil {
		return def
	}
	return *toggle
}
