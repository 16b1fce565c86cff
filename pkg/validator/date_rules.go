package validator

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// dateFormat matches year, month and day with an optional separator. The
// second separator must repeat the first, which isDateLayout checks since
// the pattern cannot back-reference.
var dateFormat = regexp.MustCompile(`^(\d{4})([-._:|/\s])?(\d{1,2})([-._:|/\s])?(\d{1,2})$`)

// Date is a calendar date without time or zone.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate returns the date and whether it exists on the calendar.
func NewDate(year int, month time.Month, day int) (Date, bool) {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || t.Month() != month || t.Day() != day {
		return Date{}, false
	}
	return Date{Year: year, Month: month, Day: day}, true
}

func splitDate(s string) ([]string, bool) {
	m := dateFormat.FindStringSubmatch(s)
	if m == nil {
		return nil, false
	}
	if m[4] != "" && m[4] != m[2] {
		return nil, false
	}
	return m, true
}

// isDateLayout reports whether s is written as a date, valid or not.
func isDateLayout(s string) bool {
	_, ok := splitDate(s)
	return ok
}

// ParseDate reads a date such as 2018-01-31, 2018/1/31 or 20180131.
func ParseDate(s string) (Date, bool) {
	m, ok := splitDate(s)
	if !ok {
		return Date{}, false
	}
	year, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[3])
	day, _ := strconv.Atoi(m[5])
	return NewDate(year, time.Month(month), day)
}

// Compare returns -1, 0 or 1 as d is before, equal to or after o.
func (d Date) Compare(o Date) int {
	a, b := d.ordinal(), o.ordinal()
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// Time returns midnight UTC of the date.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

func (d Date) ordinal() int {
	return d.Year*10000 + int(d.Month)*100 + d.Day
}

func dateFromOrdinal(v int) Date {
	return Date{Year: v / 10000, Month: time.Month(v / 100 % 100), Day: v % 100}
}

func validateDate(c *Context, value string) bool {
	if c.setup(value) {
		o := c.Options()
		if !isDateLayout(value) {
			return c.failKey("validation.date_format", pick(o.FormatErr, MsgDateFormat))
		}
		date, ok := ParseDate(value)
		if !ok {
			return c.failKey("validation.date", pick(o.Err, MsgDate))
		}
		checkLimits(c, date.ordinal(), dateBound, PlaceholderField)
	}
	return c.postValidate(value, PlaceholderField)
}
