package validator

import (
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// fileUnits are decimal size units, largest first.
var fileUnits = []struct {
	name string
	size float64
}{
	{"tb", 1e12},
	{"gb", 1e9},
	{"mb", 1e6},
	{"kb", 1e3},
	{"bytes", 1},
}

func formatNumber(p *message.Printer, v float64) string {
	return p.Sprintf("%v", number.Decimal(v, number.MaxFractionDigits(3)))
}

// formatFileSize reduces a byte count to the largest unit that fits.
func formatFileSize(p *message.Printer, v float64) string {
	unit := ""
	for _, u := range fileUnits {
		if v >= u.size {
			unit = u.name
			v /= u.size
			break
		}
	}
	return p.Sprintf("%v", number.Decimal(v, number.MaxFractionDigits(2))) + unit
}
