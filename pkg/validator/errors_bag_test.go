package validator_test

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formhandler/pkg/validator"
)

func TestErrorBag(t *testing.T) {
	t.Parallel()

	t.Run("first error wins", func(t *testing.T) {
		t.Parallel()
		bag := validator.NewErrorBag()

		assert.True(t, bag.Set("email", "first"))
		assert.False(t, bag.Set("email", "second"))
		assert.True(t, bag.Set("name", "missing"))

		msg, ok := bag.Get("email")
		require.True(t, ok)
		assert.Equal(t, "first", msg)
		assert.Equal(t, 2, bag.Len())
		assert.Equal(t, []string{"email", "name"}, bag.Errors().Fields())
		assert.Equal(t, map[string]string{"email": "first", "name": "missing"}, bag.Map())
	})

	t.Run("empty bag has no error", func(t *testing.T) {
		t.Parallel()
		bag := validator.NewErrorBag()
		assert.True(t, bag.IsEmpty())
		assert.NoError(t, bag.Err())
		_, ok := bag.Get("x")
		assert.False(t, ok)
	})

	t.Run("err is extractable", func(t *testing.T) {
		t.Parallel()
		bag := validator.NewErrorBag()
		bag.Set("age", "too young")

		err := fmt.Errorf("submit: %w", bag.Err())
		require.Error(t, err)
		assert.True(t, validator.IsValidationError(err))

		errs := validator.ExtractValidationErrors(err)
		assert.Equal(t, "too young", errs.Get("age"))
		assert.True(t, errs.Has("age"))
		assert.Equal(t, "validation failed: age: too young", errs.Error())
	})

	t.Run("merge keeps existing messages", func(t *testing.T) {
		t.Parallel()
		a := validator.NewErrorBag()
		a.Set("x", "from a")
		b := validator.NewErrorBag()
		b.Set("x", "from b")
		b.Set("y", "from b")

		a.Merge(b)
		assert.Equal(t, map[string]string{"x": "from a", "y": "from b"}, a.Map())
	})

	t.Run("concurrent writers", func(t *testing.T) {
		t.Parallel()
		bag := validator.NewErrorBag()

		var wg sync.WaitGroup
		for i := range 50 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				bag.Set(fmt.Sprintf("field_%d", i%10), "failed")
				bag.Has("field_0")
			}()
		}
		wg.Wait()

		assert.Equal(t, 10, bag.Len())
	})
}

func TestExtractValidationErrors_Other(t *testing.T) {
	t.Parallel()
	assert.Nil(t, validator.ExtractValidationErrors(nil))
	assert.Nil(t, validator.ExtractValidationErrors(errors.New("boom")))
	assert.False(t, validator.IsValidationError(errors.New("boom")))
}

func TestRender(t *testing.T) {
	t.Parallel()

	tests := []struct {
		tmpl string
		want string
	}{
		{"{_this} is required", "email is required"},
		{"{this} is not valid", `"a\"b" is not valid`},
		{"{value} again", `"a\"b" again`},
		{"item {_index} of {_this}", "item 3 of email"},
		{"plain", "plain"},
	}
	for _, tt := range tests {
		t.Run(tt.tmpl, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, validator.Render(tt.tmpl, "email", `a"b`, 2))
		})
	}
}
