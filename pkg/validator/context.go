package validator

import (
	"github.com/dmitrymomot/formhandler/pkg/file"
	"github.com/dmitrymomot/formhandler/pkg/rules"
)

// Lookup returns the live value of another field for cross-field checks.
type Lookup func(field string) (string, bool)

// Context carries the state of one field element through its validator.
// A Context is not shared between goroutines.
type Context struct {
	engine *Engine
	rule   *rules.FieldRule
	index  int
	bag    *ErrorBag
	lookup Lookup
	upload *file.Upload

	value  string
	failed bool
	fatal  error

	fileName  string
	filePath  string
	extension string
	magic     string
}

// NewContext prepares a context for element index of the field governed by rule.
func (e *Engine) NewContext(rule *rules.FieldRule, index int, bag *ErrorBag, lookup Lookup) *Context {
	if lookup == nil {
		lookup = func(string) (string, bool) { return "", false }
	}
	return &Context{engine: e, rule: rule, index: index, bag: bag, lookup: lookup}
}

// WithUpload attaches the upload validated by file types.
func (c *Context) WithUpload(u file.Upload) *Context {
	c.upload = &u
	return c
}

func (c *Context) Field() string { return c.rule.Field }
func (c *Context) Index() int { return c.index }
func (c *Context) Rule() *rules.FieldRule { return c.rule }
func (c *Context) Options() *rules.Options { return &c.rule.Options }
func (c *Context) Required() bool { return c.rule.Required }

func (c *Context) Upload() (file.Upload, bool) {
	if c.upload == nil {
		return file.Upload{}, false
	}
	return *c.upload, true
}

// Succeeds reports whether no error has been recorded by this context.
func (c *Context) Succeeds() bool {
	return !c.failed && c.fatal == nil
}

// Fails is the negation of Succeeds.
func (c *Context) Fails() bool {
	return !c.Succeeds()
}

// Err returns the fatal error raised during validation, if any.
func (c *Context) Err() error {
	return c.fatal
}

// FileName returns the name assigned to a relocated upload.
func (c *Context) FileName() string { return c.fileName }

// FilePath returns the full path of a relocated upload.
func (c *Context) FilePath() string { return c.filePath }

// Extension returns the resolved extension of a validated upload.
func (c *Context) Extension() string { return c.extension }

// MagicByte returns the leading bytes signature of the last detected upload.
func (c *Context) MagicByte() string { return c.magic }

// Fail records a rendered message for the field and marks the context failed.
// It always returns false.
func (c *Context) Fail(tmpl string) bool {
	return c.failKey("validation.failed", tmpl)
}

func (c *Context) failKey(key, tmpl string) bool {
	c.failed = true
	c.bag.Add(ValidationError{
		Field:          c.rule.Field,
		Message:        Render(tmpl, c.rule.Field, c.value, c.index),
		TranslationKey: key,
		TranslationValues: map[string]any{
			"field": c.rule.Field,
			"value": c.value,
			"index": c.index,
		},
	})
	return false
}

// Abort stops the whole execution with err. It always returns false.
func (c *Context) Abort(err error) bool {
	if c.fatal == nil {
		c.fatal = err
	}
	return false
}

// setup resets per-value state and reports whether validation should go on.
// Empty optional values succeed without further checks.
func (c *Context) setup(value string) bool {
	c.value = value
	if value != "" {
		return true
	}
	if c.rule.Required {
		c.failKey("validation.required", pick(c.rule.Options.RequiredErr, MsgRequired))
	}
	return false
}

// postValidate runs the shouldMatch check with the given message prefix.
func (c *Context) postValidate(value, prefix string) bool {
	if c.Fails() {
		return false
	}
	m := c.rule.Options.ShouldMatch
	if m == nil || m.Target == "" || value == "" {
		return true
	}

	want := m.Target
	if rules.IsReference(want) {
		want, _ = c.lookup(rules.Dereference(want))
	}
	if value != want {
		return c.failKey("validation.mismatch", pick(m.Err, prefix+MsgMismatch))
	}
	return true
}
