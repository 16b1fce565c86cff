package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formhandler/pkg/rules"
)

func TestRangeChoices(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		from, to string
		step     int
		want     []string
	}{
		{"numbers", "1", "5", 0, []string{"1", "2", "3", "4", "5"}},
		{"descending", "10", "4", 3, []string{"10", "7", "4"}},
		{"negative step", "0", "6", -3, []string{"0", "3", "6"}},
		{"letters", "a", "e", 2, []string{"a", "c", "e"}},
		{"descending letters", "C", "A", 1, []string{"C", "B", "A"}},
		{"decimals", "0.5", "2", 1, []string{"0.5", "1.5"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := rules.RangeChoices(tc.from, tc.to, tc.step)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	t.Run("mixed bounds fail", func(t *testing.T) {
		t.Parallel()
		_, err := rules.RangeChoices("1", "z", 1)
		require.ErrorIs(t, err, rules.ErrInvalidRange)
	})

	t.Run("words fail", func(t *testing.T) {
		t.Parallel()
		_, err := rules.RangeChoices("one", "ten", 1)
		require.ErrorIs(t, err, rules.ErrInvalidRange)
	})
}

func TestIsPlural(t *testing.T) {
	t.Parallel()

	for _, field := range []string{"account_types", "emails", "wives", "categories", "accountTypes"} {
		assert.True(t, rules.IsPlural(field), field)
	}
	for _, field := range []string{"account_type", "email", "password", "first_name", "address"} {
		assert.False(t, rules.IsPlural(field), field)
	}
}
