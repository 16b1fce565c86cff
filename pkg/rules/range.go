package rules

import (
	"fmt"
	"strconv"
	"unicode/utf8"
)

// RangeChoices expands a from/to/step range into its choices.
// Numeric bounds produce numbers, single letters produce letters. The step
// is taken as an absolute value and defaults to 1; the sequence descends
// when from is greater than to.
func RangeChoices(from, to string, step int) ([]string, error) {
	if step < 0 {
		step = -step
	}
	if step == 0 {
		step = 1
	}

	if f, err := strconv.ParseFloat(from, 64); err == nil {
		t, err := strconv.ParseFloat(to, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q to %q", ErrInvalidRange, from, to)
		}
		return numberRange(f, t, float64(step)), nil
	}

	if utf8.RuneCountInString(from) == 1 && utf8.RuneCountInString(to) == 1 {
		f, _ := utf8.DecodeRuneInString(from)
		t, _ := utf8.DecodeRuneInString(to)
		return letterRange(f, t, step), nil
	}

	return nil, fmt.Errorf("%w: %q to %q", ErrInvalidRange, from, to)
}

func numberRange(from, to, step float64) []string {
	var out []string
	if from <= to {
		for v := from; v <= to; v += step {
			out = append(out, strconv.FormatFloat(v, 'f', -1, 64))
		}
		return out
	}
	for v := from; v >= to; v -= step {
		out = append(out, strconv.FormatFloat(v, 'f', -1, 64))
	}
	return out
}

func letterRange(from, to rune, step int) []string {
	var out []string
	s := rune(step)
	if from <= to {
		for r := from; r <= to; r += s {
			out = append(out, string(r))
		}
		return out
	}
	for r := from; r >= to; r -= s {
		out = append(out, string(r))
	}
	return out
}
