package dates

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ISO is the date layout used everywhere in the ledger.
const ISO = "2006-01-02"

// ReformatSlash rewrites an export date in MM/DD/YYYY form to
// YYYY-MM-DD. Plain split-and-reassemble on "/", no locale handling.
func ReformatSlash(date string) (string, error) {
	parts := strings.Split(date, "/")
	if len(parts) != 3 {
		return "", fmt.Errorf("expected MM/DD/YYYY date, got %q", date)
	}
	return fmt.Sprintf("%s-%s-%s", parts[2], parts[0], parts[1]), nil
}

// MonthRange returns the inclusive first and last ISO dates of a month.
func MonthRange(month time.Month, year int) (start, end string) {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	return first.Format(ISO), last.Format(ISO)
}

// YearRange returns the inclusive first and last ISO dates of a year.
func YearRange(year int) (start, end string) {
	return fmt.Sprintf("%04d-01-01", year), fmt.Sprintf("%04d-12-31", year)
}

// Pretty rewrites an ISO date as "March 05, 2024". The day keeps the
// export's zero padding.
func Pretty(isoDate string) string {
	parts := strings.Split(isoDate, "-")
	if len(parts) != 3 {
		return isoDate
	}
	m, err := MonthFromNumber(parts[1])
	if err != nil {
		return isoDate
	}
	return fmt.Sprintf("%s %s, %s", m.String(), parts[2], parts[0])
}

// PrettyRange renders an inclusive ISO date range for error labels.
func PrettyRange(start, end string) string {
	return fmt.Sprintf("%s - %s", Pretty(start), Pretty(end))
}

// MonthFromNumber converts "1".."12" (or zero padded) to a time.Month.
func MonthFromNumber(s string) (time.Month, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > 12 {
		return 0, fmt.Errorf("invalid month number %q", s)
	}
	return time.Month(n), nil
}

// MonthFromName converts a month name, case-insensitively, to a
// time.Month.
func MonthFromName(s string) (time.Month, error) {
	for m := time.January; m <= time.December; m++ {
		if strings.EqualFold(s, m.String()) {
			return m, nil
		}
	}
	return 0, fmt.Errorf("invalid month name %q", s)
}
