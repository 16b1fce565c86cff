package sanitizer_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/formhandler/pkg/sanitizer"
)

func TestToNumeric(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected any
	}{
		{"200", int64(200)},
		{"200AD", int64(200)},
		{"AD30", int64(0)},
		{"", int64(0)},
		{"-15", int64(-15)},
		{" +7 ", int64(7)},
		{"2.5kg", 2.5},
		{".5", 0.5},
		{"1e3", 1000.0},
		{"3.", 3.0},
		{"99999999999999999999", 1e20},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, sanitizer.ToNumeric(tt.input))
		})
	}
}

func TestCasts(t *testing.T) {
	t.Parallel()

	assert.Equal(t, int64(2), sanitizer.ToInt("2.9"))
	assert.Equal(t, int64(0), sanitizer.ToInt("abc"))
	assert.Equal(t, int64(math.MaxInt64), sanitizer.ToInt("99999999999999999999"))
	assert.Equal(t, int64(math.MinInt64), sanitizer.ToInt("-99999999999999999999"))
	assert.Equal(t, 12.0, sanitizer.ToFloat("12"))
	assert.Equal(t, 1.25, sanitizer.ToFloat("1.25"))

	for _, truthy := range []string{"1", "on", "true", "yes", "checked", "anything"} {
		assert.True(t, sanitizer.ToBool(truthy), truthy)
	}
	for _, falsy := range []string{"", "0", "false", "OFF", " no ", "null"} {
		assert.False(t, sanitizer.ToBool(falsy), falsy)
	}
}

func TestHasNumericPrefix(t *testing.T) {
	t.Parallel()

	assert.True(t, sanitizer.HasNumericPrefix("-20ad"))
	assert.True(t, sanitizer.HasNumericPrefix(" .5"))
	assert.False(t, sanitizer.HasNumericPrefix("ad-20"))
	assert.False(t, sanitizer.HasNumericPrefix(""))
}
