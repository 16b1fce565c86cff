package validator

import "sync"

// ErrorBag holds at most one error per field. The first error recorded for a
// field wins; later ones are ignored. Safe for concurrent use.
type ErrorBag struct {
	mu    sync.RWMutex
	order []string
	errs  map[string]ValidationError
}

// NewErrorBag creates an empty bag.
func NewErrorBag() *ErrorBag {
	return &ErrorBag{errs: make(map[string]ValidationError)}
}

// Add records err unless its field already has one. It reports whether err
// was recorded.
func (b *ErrorBag) Add(err ValidationError) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.errs[err.Field]; ok {
		return false
	}
	b.errs[err.Field] = err
	b.order = append(b.order, err.Field)
	return true
}

// Set records a plain message for a field.
func (b *ErrorBag) Set(field, message string) bool {
	return b.Add(ValidationError{Field: field, Message: message})
}

func (b *ErrorBag) Has(field string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	_, ok := b.errs[field]
	return ok
}

// Get returns the message recorded for a field.
func (b *ErrorBag) Get(field string) (string, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	err, ok := b.errs[field]
	return err.Message, ok
}

func (b *ErrorBag) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.order)
}

func (b *ErrorBag) IsEmpty() bool {
	return b.Len() == 0
}

// Errors returns the recorded errors in the order they were first recorded.
func (b *ErrorBag) Errors() ValidationErrors {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make(ValidationErrors, 0, len(b.order))
	for _, field := range b.order {
		out = append(out, b.errs[field])
	}
	return out
}

// Map returns field to message pairs.
func (b *ErrorBag) Map() map[string]string {
	return b.Errors().Map()
}

// Merge copies every error of other into b, keeping first-wins semantics.
func (b *ErrorBag) Merge(other *ErrorBag) {
	for _, err := range other.Errors() {
		b.Add(err)
	}
}

// Err returns the errors as an error value, or nil when the bag is empty.
func (b *ErrorBag) Err() error {
	errs := b.Errors()
	if errs.IsEmpty() {
		return nil
	}
	return errs
}
