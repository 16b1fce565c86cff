package dbcheck

import (
	"context"
	"maps"
	"sync"

	"github.com/dmitrymomot/formhandler/pkg/rules"
)

// MemoryCounter keeps records in process. It suits tests and small static
// lookup tables. Values are compared by their text form.
type MemoryCounter struct {
	mu      sync.RWMutex
	records map[string][]map[string]any
}

// NewMemoryCounter creates an empty MemoryCounter.
func NewMemoryCounter() *MemoryCounter {
	return &MemoryCounter{records: make(map[string][]map[string]any)}
}

// Insert adds a record to model.
func (m *MemoryCounter) Insert(model string, record map[string]any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[model] = append(m.records[model], maps.Clone(record))
}

// Reset removes every record of model.
func (m *MemoryCounter) Reset(model string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.records, model)
}

// Count returns the number of records of model matching every query condition.
func (m *MemoryCounter) Count(ctx context.Context, model string, query Query) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	var n int64
	for _, rec := range m.records[model] {
		if matches(rec, query) {
			n++
		}
	}
	return n, nil
}

func matches(rec map[string]any, query Query) bool {
	for k, want := range query {
		got, ok := rec[k]
		if !ok || rules.Stringify(got) != rules.Stringify(want) {
			return false
		}
	}
	return true
}
