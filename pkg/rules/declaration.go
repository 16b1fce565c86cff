package rules

import (
	"context"
	"slices"
)

// ConditionKind selects how a required-if condition compares the target value.
type ConditionKind string

const (
	IfChecked    ConditionKind = "checked"
	IfNotChecked ConditionKind = "notChecked"
	IfEquals     ConditionKind = "equals"
	IfNotEquals  ConditionKind = "notEquals"
	IfIn         ConditionKind = "in"
	IfNotIn      ConditionKind = "notIn"
)

// Condition makes a field required depending on another field's raw value.
type Condition struct {
	If    ConditionKind `yaml:"if" json:"if"`
	Field string        `yaml:"field" json:"field"`
	Value string        `yaml:"value,omitempty" json:"value,omitempty"`
	List  []string      `yaml:"list,omitempty" json:"list,omitempty"`
	// DropOnFail removes the field from the resolved set when the condition
	// does not hold. Defaults to true.
	DropOnFail *bool `yaml:"dropOnFail,omitempty" json:"dropOnFail,omitempty"`
}

// Requirement is either a fixed flag or a Condition.
type Requirement struct {
	value     bool
	condition *Condition
}

// Required returns a fixed requirement.
func Required(b bool) *Requirement {
	return &Requirement{value: b}
}

// RequiredIf returns a conditional requirement.
func RequiredIf(c Condition) *Requirement {
	return &Requirement{condition: &c}
}

// Condition returns the condition, or nil for a fixed requirement.
func (r *Requirement) Condition() *Condition {
	if r == nil {
		return nil
	}
	return r.condition
}

// CheckKind selects the outcome an existence check expects.
type CheckKind string

const (
	// ItExists fails when no record matches.
	ItExists CheckKind = "itExists"
	// ItDoesNotExist fails when at least one record matches.
	ItDoesNotExist CheckKind = "itDoesNotExist"
)

// Check declares an existence check against a model.
// Query overrides the query built from the field name and value.
type Check struct {
	That  CheckKind      `yaml:"that" json:"that"`
	Model string         `yaml:"model" json:"model"`
	Field string         `yaml:"field,omitempty" json:"field,omitempty"`
	Query map[string]any `yaml:"query,omitempty" json:"query,omitempty"`
	Err   string         `yaml:"err,omitempty" json:"err,omitempty"`
}

// Filters toggles the post-validation transforms of a field.
// Nil pointer toggles take the per-type default.
type Filters struct {
	Decode          *bool  `yaml:"decode,omitempty" json:"decode,omitempty"`
	StripTags       *bool  `yaml:"stripTags,omitempty" json:"stripTags,omitempty"`
	StripTagsIgnore string `yaml:"stripTagsIgnore,omitempty" json:"stripTagsIgnore,omitempty"`
	Minimize        bool   `yaml:"minimize,omitempty" json:"minimize,omitempty"`
	Trim            *bool  `yaml:"trim,omitempty" json:"trim,omitempty"`
	ToNumeric       bool   `yaml:"toNumeric,omitempty" json:"toNumeric,omitempty"`
	Uppercase       bool   `yaml:"uppercase,omitempty" json:"uppercase,omitempty"`
	Lowercase       bool   `yaml:"lowercase,omitempty" json:"lowercase,omitempty"`
	Capitalize      bool   `yaml:"capitalize,omitempty" json:"capitalize,omitempty"`
	Titleize        *bool  `yaml:"titleize,omitempty" json:"titleize,omitempty"`
	Pluralize       bool   `yaml:"pluralize,omitempty" json:"pluralize,omitempty"`
	Singularize     bool   `yaml:"singularize,omitempty" json:"singularize,omitempty"`
	Ordinalize      bool   `yaml:"ordinalize,omitempty" json:"ordinalize,omitempty"`
	Hash            bool   `yaml:"hash,omitempty" json:"hash,omitempty"`

	Callback func(value any) any `yaml:"-" json:"-"`
}

// ValidateFunc is a custom check run after filters. Returning false records
// a generic error for the field; a returned error aborts the execution.
type ValidateFunc func(ctx context.Context, field string, value any, index int, data map[string]any) (bool, error)

// ComputeFunc replaces the filtered value of a field.
type ComputeFunc func(ctx context.Context, field string, value any, data map[string]any) (any, error)

// Declaration is a field rule as written by the caller.
type Declaration struct {
	Type     Type         `yaml:"type,omitempty" json:"type,omitempty"`
	Required *Requirement `yaml:"required,omitempty" json:"required,omitempty"`
	Options  Options      `yaml:"options,omitempty" json:"options,omitempty"`
	Filters  Filters      `yaml:"filters,omitempty" json:"filters,omitempty"`
	Checks   []Check      `yaml:"checks,omitempty" json:"checks,omitempty"`

	Validate ValidateFunc `yaml:"-" json:"-"`
	Compute  ComputeFunc  `yaml:"-" json:"-"`

	DefaultValue any    `yaml:"defaultValue,omitempty" json:"defaultValue,omitempty"`
	IsList       *bool  `yaml:"isList,omitempty" json:"isList,omitempty"`
	Hint         string `yaml:"hint,omitempty" json:"hint,omitempty"`
}

// Shorthand expands a bare type into a Declaration.
func Shorthand(t Type) Declaration {
	return Declaration{Type: t}
}

// Bool returns a pointer to b, for the optional toggles.
func Bool(b bool) *bool {
	return &b
}

// Set is an ordered collection of field declarations.
type Set struct {
	names []string
	decls map[string]Declaration
}

// NewSet creates an empty rule set.
func NewSet() *Set {
	return &Set{decls: make(map[string]Declaration)}
}

// Add declares a field. Redeclaring a field replaces it in place.
func (s *Set) Add(field string, d Declaration) *Set {
	if _, ok := s.decls[field]; !ok {
		s.names = append(s.names, field)
	}
	s.decls[field] = d
	return s
}

// Get returns the declaration of a field.
func (s *Set) Get(field string) (Declaration, bool) {
	d, ok := s.decls[field]
	return d, ok
}

// Fields returns field names in declaration order.
func (s *Set) Fields() []string {
	return slices.Clone(s.names)
}

// Len returns the number of declared fields.
func (s *Set) Len() int {
	return len(s.names)
}

// HasFileFields reports whether any declaration reads from the files source.
func (s *Set) HasFileFields() bool {
	for _, d := range s.decls {
		if d.Type.IsFile() {
			return true
		}
	}
	return false
}
