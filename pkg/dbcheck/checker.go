package dbcheck

import (
	"context"
	"fmt"
	"maps"
	"strings"

	"github.com/dmitrymomot/formhandler/pkg/rules"
	"github.com/dmitrymomot/formhandler/pkg/sanitizer"
	"github.com/dmitrymomot/formhandler/pkg/validator"
)

// Query is a set of equality conditions that must all hold.
type Query map[string]any

// Counter counts the records of model matching query.
// Implementations must be safe for concurrent use.
type Counter interface {
	Count(ctx context.Context, model string, query Query) (int64, error)
}

// CounterFunc adapts a function to Counter.
type CounterFunc func(ctx context.Context, model string, query Query) (int64, error)

func (f CounterFunc) Count(ctx context.Context, model string, query Query) (int64, error) {
	return f(ctx, model, query)
}

// CaseStyle is the naming convention of model fields.
type CaseStyle string

const (
	CamelCase CaseStyle = "camel"
	SnakeCase CaseStyle = "snake"
)

// Apply converts a form field name to the style.
func (s CaseStyle) Apply(field string) string {
	if s == SnakeCase {
		return sanitizer.ToSnakeCase(field)
	}
	return sanitizer.ToCamelCase(field)
}

// ParseCaseStyle reads a style name. Anything but "snake" is camel case.
func ParseCaseStyle(s string) CaseStyle {
	if strings.EqualFold(strings.TrimSpace(s), string(SnakeCase)) {
		return SnakeCase
	}
	return CamelCase
}

// Checker runs the existence checks of a field.
type Checker struct {
	counter Counter
	style   CaseStyle
}

// Option configures a Checker.
type Option func(*Checker)

// WithCaseStyle sets the style applied to field names in built queries.
func WithCaseStyle(style CaseStyle) Option {
	return func(c *Checker) {
		c.style = style
	}
}

// New creates a Checker counting through counter. Field names default to camel case.
func New(counter Counter, opts ...Option) *Checker {
	c := &Checker{counter: counter, style: CamelCase}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Style returns the configured case style.
func (c *Checker) Style() CaseStyle {
	return c.style
}

// Run executes the checks of rule for value in declaration order and
// returns the message template of the first failed check, or "" when all
// pass. An empty value of an optional field skips every check. Counter
// failures are returned wrapped in ErrCountFailed.
func (c *Checker) Run(ctx context.Context, rule *rules.FieldRule, value string) (string, error) {
	if len(rule.Checks) == 0 || (value == "" && !rule.Required) {
		return "", nil
	}
	if c.counter == nil {
		return "", ErrCounterNotSet
	}

	for _, check := range rule.Checks {
		msg, err := c.run(ctx, rule.Field, value, check)
		if err != nil || msg != "" {
			return msg, err
		}
	}
	return "", nil
}

func (c *Checker) run(ctx context.Context, field, value string, check rules.Check) (string, error) {
	if check.Model == "" {
		return "", fmt.Errorf("%w: field %q", ErrModelNotSet, field)
	}

	query := c.Query(field, value, check)
	count, err := c.counter.Count(ctx, check.Model, query)
	if err != nil {
		return "", fmt.Errorf("%w: model %q: %w", ErrCountFailed, check.Model, err)
	}

	switch check.That {
	case rules.ItDoesNotExist:
		if count > 0 {
			return pick(check.Err, validator.MsgAlreadyExists), nil
		}
	case rules.ItExists:
		if count == 0 {
			return pick(check.Err, validator.MsgDoesNotExist), nil
		}
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownCheck, check.That)
	}
	return "", nil
}

// Query returns the query of a check: its explicit query, or the value
// keyed by the styled check field, falling back to the form field name.
func (c *Checker) Query(field, value string, check rules.Check) Query {
	if len(check.Query) > 0 {
		return Query(maps.Clone(check.Query))
	}
	name := check.Field
	if name == "" {
		name = field
	}
	return Query{c.style.Apply(name): value}
}

func pick(custom, fallback string) string {
	if custom != "" {
		return custom
	}
	return fallback
}
