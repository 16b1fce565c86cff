package validator

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/dmitrymomot/formhandler/pkg/file"
	"github.com/dmitrymomot/formhandler/pkg/rules"
)

// Validator checks one value of a field.
// It returns false when the value is rejected or the context was aborted.
type Validator interface {
	Validate(c *Context, value string) bool
}

// ValidatorFunc adapts a function to Validator.
type ValidatorFunc func(c *Context, value string) bool

func (f ValidatorFunc) Validate(c *Context, value string) bool {
	return f(c, value)
}

// defaultValidators maps every declared type to its validator.
func defaultValidators() map[rules.Type]Validator {
	return map[rules.Type]Validator{
		rules.TypeText:     ValidatorFunc(validateText),
		rules.TypeTitle:    ValidatorFunc(validateText),
		rules.TypeName:     ValidatorFunc(validateText),
		rules.TypeEmail:    ValidatorFunc(validateEmail),
		rules.TypeURL:      ValidatorFunc(validateURL),
		rules.TypePassword: ValidatorFunc(validatePassword),
		rules.TypeCheckbox: ValidatorFunc(validateBoolean),
		rules.TypeBoolean:  ValidatorFunc(validateBoolean),

		rules.TypeInt:     integerValidator(intFormat, MsgInteger),
		rules.TypePInt:    integerValidator(pIntFormat, MsgPInteger),
		rules.TypeNInt:    integerValidator(nIntFormat, MsgNInteger),
		rules.TypeNumber:  numberValidator(floatFormat, MsgNumber),
		rules.TypePNumber: numberValidator(pFloatFormat, MsgPNumber),
		rules.TypeNNumber: numberValidator(nFloatFormat, MsgNNumber),
		rules.TypeMoney:   numberValidator(moneyFormat, MsgMoney),

		rules.TypeDate:   ValidatorFunc(validateDate),
		rules.TypeChoice: ValidatorFunc(validateChoice),
		rules.TypeRange:  ValidatorFunc(validateChoice),

		rules.TypeFile:     ValidatorFunc(validateFile),
		rules.TypeImage:    ValidatorFunc(validateFile),
		rules.TypeAudio:    ValidatorFunc(validateFile),
		rules.TypeVideo:    ValidatorFunc(validateFile),
		rules.TypeMedia:    ValidatorFunc(validateFile),
		rules.TypeDocument: ValidatorFunc(validateFile),
		rules.TypeArchive:  ValidatorFunc(validateFile),
	}
}

// Engine dispatches values to the validator of their field type.
// An Engine is read-only after construction and safe for concurrent use.
type Engine struct {
	validators map[rules.Type]Validator
	detector   file.Detector
	printer    *message.Printer
}

// Option configures an Engine.
type Option func(*Engine)

// WithDetector sets the file type detector used by file fields.
func WithDetector(d file.Detector) Option {
	return func(e *Engine) {
		if d != nil {
			e.detector = d
		}
	}
}

// WithLocale sets the locale used to format numbers in limit messages.
func WithLocale(tag language.Tag) Option {
	return func(e *Engine) {
		e.printer = message.NewPrinter(tag)
	}
}

// WithValidator replaces the validator of a type.
func WithValidator(t rules.Type, v Validator) Option {
	return func(e *Engine) {
		if v != nil {
			e.validators[t] = v
		}
	}
}

// New creates an Engine with the default validators.
func New(opts ...Option) *Engine {
	e := &Engine{
		validators: defaultValidators(),
		detector:   file.NewDetector(),
		printer:    message.NewPrinter(language.English),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Has reports whether a validator is registered for t.
func (e *Engine) Has(t rules.Type) bool {
	_, ok := e.validators[t]
	return ok
}

// Validate dispatches value to the validator of the context's field type.
func (e *Engine) Validate(c *Context, value string) bool {
	v, ok := e.validators[c.rule.Type]
	if !ok {
		return c.Abort(fmt.Errorf("%w: %q", ErrNoValidator, c.rule.Type))
	}
	return v.Validate(c, value)
}
