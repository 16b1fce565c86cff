package rules

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/jinzhu/inflection"
)

// Password defaults applied when the declaration leaves them unset.
const (
	PasswordMin = "8"
	PasswordMax = "28"
)

// DefaultPasswordRules are the regexAll rules of a password field without its own.
func DefaultPasswordRules() []Pattern {
	return []Pattern{
		{Expr: `(?i)[a-z].*[a-z]`, Err: "Password must contain at least two letter alphabets"},
		{Expr: `[^a-zA-Z].*[^a-zA-Z]`, Err: "Password must contain at least two non letter alphabets"},
	}
}

// FieldRule is the resolved, read-only rule of one field.
type FieldRule struct {
	Field        string
	Type         Type
	Required     bool
	IsList       bool
	Options      Options
	Filters      Filters
	Checks       []Check
	Validate     ValidateFunc
	Compute      ComputeFunc
	DefaultValue any
	Hint         string
}

// HasDefault reports whether a default value was declared.
func (r *FieldRule) HasDefault() bool {
	return r.DefaultValue != nil
}

// Resolved is the snapshot of rules for one execution.
type Resolved struct {
	names   []string
	rules   map[string]*FieldRule
	dropped []string
}

// Get returns the resolved rule of a field.
func (r *Resolved) Get(field string) (*FieldRule, bool) {
	fr, ok := r.rules[field]
	return fr, ok
}

// Fields returns resolved field names in declaration order.
func (r *Resolved) Fields() []string {
	return slices.Clone(r.names)
}

// Len returns the number of resolved fields.
func (r *Resolved) Len() int {
	return len(r.names)
}

// Dropped returns the fields removed by a failed required-if condition.
func (r *Resolved) Dropped() []string {
	return slices.Clone(r.dropped)
}

// HasFileFields reports whether any resolved field reads from the files source.
func (r *Resolved) HasFileFields() bool {
	for _, fr := range r.rules {
		if fr.Type.IsFile() {
			return true
		}
	}
	return false
}

// Resolver turns declarations into resolved rules.
type Resolver struct {
	now func() time.Time
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithClock sets the clock used for date and time placeholders.
func WithClock(now func() time.Time) ResolverOption {
	return func(r *Resolver) {
		if now != nil {
			r.now = now
		}
	}
}

// NewResolver creates a Resolver.
func NewResolver(opts ...ResolverOption) *Resolver {
	r := &Resolver{now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve resolves every field of the set against the raw data.
func (r *Resolver) Resolve(set *Set, data map[string]any) (*Resolved, error) {
	return r.ResolveOnly(set, data, nil)
}

// ResolveOnly resolves the fields for which keep returns true.
// A nil keep resolves every field.
func (r *Resolver) ResolveOnly(set *Set, data map[string]any, keep func(field string) bool) (*Resolved, error) {
	out := &Resolved{rules: make(map[string]*FieldRule, set.Len())}
	now := r.now()

	for _, field := range set.Fields() {
		if keep != nil && !keep(field) {
			continue
		}
		decl, _ := set.Get(field)

		fr, dropped, err := r.resolveField(field, decl, data, now)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", field, err)
		}
		if dropped {
			out.dropped = append(out.dropped, field)
			continue
		}
		out.names = append(out.names, field)
		out.rules[field] = fr
	}
	return out, nil
}

// ResolveField resolves a single declaration.
// The boolean result is true when a required-if condition dropped the field.
func (r *Resolver) ResolveField(field string, decl Declaration, data map[string]any) (*FieldRule, bool, error) {
	return r.resolveField(field, decl, data, r.now())
}

func (r *Resolver) resolveField(field string, decl Declaration, data map[string]any, now time.Time) (*FieldRule, bool, error) {
	ph := newPlaceholders(field, now)

	// shorthand normalization
	fr := normalize(field, decl)
	if !fr.Type.Valid() {
		return nil, false, fmt.Errorf("%w: %q", ErrUnknownType, fr.Type)
	}

	// required-if
	if cond := decl.Required.Condition(); cond != nil {
		holds, err := evaluate(*cond, data, ph)
		if err != nil {
			return nil, false, err
		}
		switch {
		case holds:
			fr.Required = true
		case cond.DropOnFail == nil || *cond.DropOnFail:
			return nil, true, nil
		default:
			fr.Required = false
		}
	}

	// list inference
	if decl.IsList != nil {
		fr.IsList = *decl.IsList
	} else {
		fr.IsList = IsPlural(field)
	}

	// placeholders
	ph.options(&fr.Options)
	fr.Hint = ph.apply(fr.Hint)
	for i := range fr.Checks {
		fr.Checks[i].Field = ph.apply(fr.Checks[i].Field)
		fr.Checks[i].Err = ph.apply(fr.Checks[i].Err)
	}

	// shouldMatch
	if m := fr.Options.ShouldMatch; m != nil && m.Target != "" {
		m.Target = Reference(m.Target)
	}
	if m := fr.Options.MatchWith; m != nil {
		if fr.Options.ShouldMatch == nil && m.Target != "" {
			literal := *m
			fr.Options.ShouldMatch = &literal
		}
		fr.Options.MatchWith = nil
	}

	if err := derive(fr); err != nil {
		return nil, false, err
	}
	if err := fr.Options.compile(); err != nil {
		return nil, false, err
	}
	return fr, false, nil
}

func normalize(field string, decl Declaration) *FieldRule {
	t := decl.Type
	if t == "" {
		t = TypeText
	}

	required := !t.IsBoolean()
	if decl.Required != nil && decl.Required.condition == nil {
		required = decl.Required.value
	}

	checks := make([]Check, len(decl.Checks))
	copy(checks, decl.Checks)

	return &FieldRule{
		Field:        field,
		Type:         t,
		Required:     required,
		Options:      decl.Options.clone(),
		Filters:      decl.Filters,
		Checks:       checks,
		Validate:     decl.Validate,
		Compute:      decl.Compute,
		DefaultValue: decl.DefaultValue,
		Hint:         decl.Hint,
	}
}

// derive fills rules implied by the type into the snapshot.
func derive(fr *FieldRule) error {
	o := &fr.Options
	switch {
	case fr.Type == TypePassword:
		if !o.Min.IsSet() {
			o.Min = PasswordMin
		}
		if !o.Max.IsSet() {
			o.Max = PasswordMax
		}
		if len(o.RegexAll) == 0 {
			o.RegexAll = DefaultPasswordRules()
		}
	case fr.Type == TypeRange:
		choices, err := RangeChoices(o.From, o.To, o.Step)
		if err != nil {
			return err
		}
		o.Choices = choices
	case fr.Type.IsFile():
		if len(o.Mimes) == 0 {
			o.Mimes = DefaultMimes(fr.Type)
		}
	}
	return nil
}

func evaluate(c Condition, data map[string]any, ph placeholders) (bool, error) {
	raw := data[c.Field]
	value := Stringify(raw)
	want := ph.apply(c.Value)

	switch c.If {
	case IfChecked:
		return Truthy(raw), nil
	case IfNotChecked:
		return !Truthy(raw), nil
	case IfEquals:
		return value == want, nil
	case IfNotEquals:
		return value != want, nil
	case IfIn:
		return slices.Contains(ph.applyAll(slices.Clone(c.List)), value), nil
	case IfNotIn:
		return !slices.Contains(ph.applyAll(slices.Clone(c.List)), value), nil
	}
	return false, fmt.Errorf("%w: %q", ErrUnknownCondition, c.If)
}

// IsPlural reports whether a field name reads as a plural noun.
func IsPlural(field string) bool {
	return inflection.Singular(field) != field
}

// Truthy applies checkbox semantics to a raw value.
func Truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case []string:
		return len(t) > 0 && Truthy(t[0])
	case []any:
		return len(t) > 0 && Truthy(t[0])
	}
	switch strings.ToLower(strings.TrimSpace(Stringify(v))) {
	case "", "0", "false", "off", "no", "null":
		return false
	}
	return true
}

// Stringify renders a raw scalar value as text. Single element slices
// render as their element.
func Stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []string:
		if len(t) == 1 {
			return t[0]
		}
		return strings.Join(t, ",")
	case []any:
		if len(t) == 1 {
			return Stringify(t[0])
		}
		parts := make([]string, len(t))
		for i, e := range t {
			parts[i] = Stringify(e)
		}
		return strings.Join(parts, ",")
	case fmt.Stringer:
		return t.String()
	}
	return fmt.Sprint(v)
}
