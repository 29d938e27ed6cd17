package ledger

import (
	"strconv"
	"time"

	"github.com/spendtrack-dev/spendtrack/internal/dates"
)

// ParseMonth accepts a month name ("March", case-insensitive) or a
// number ("3", "03"). Anything else is InvalidMonthError.
func ParseMonth(s string) (time.Month, error) {
	if m, err := dates.MonthFromName(s); err == nil {
		return m, nil
	}
	if m, err := dates.MonthFromNumber(s); err == nil {
		return m, nil
	}
	return 0, &InvalidMonthError{Month: s}
}

// ParseYear accepts a four-digit year. Anything else is
// InvalidYearError.
func ParseYear(s string) (int, error) {
	year, err := strconv.Atoi(s)
	if err != nil || year < 1000 || year > 9999 {
		return 0, &InvalidYearError{Year: s}
	}
	return year, nil
}
