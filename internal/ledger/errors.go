package ledger

import "fmt"

// The error taxonomy below means "the query had no valid result", never
// infrastructure failure. Callers present these; the ledger never
// substitutes a default value for absent data.

// NoDataFoundError is returned when a query matched no rows at all.
type NoDataFoundError struct {
	Label string
}

func (e *NoDataFoundError) Error() string {
	if e.Label == "" {
		return "no data found"
	}
	return fmt.Sprintf("no data found for %s", e.Label)
}

// NoTotalBetweenDatesError is returned by TotalBetween when the
// inclusive range contains no transactions. A range whose amounts sum
// to zero is not an error; only the absence of rows is.
type NoTotalBetweenDatesError struct {
	Start string
	End   string
}

func (e *NoTotalBetweenDatesError) Error() string {
	return fmt.Sprintf("no data found for the date range %s - %s", e.Start, e.End)
}

// NoTotalFoundError is the period-level translation of an empty range,
// carrying the human period label ("March 2024", "2024", "all time").
type NoTotalFoundError struct {
	Label string
}

func (e *NoTotalFoundError) Error() string {
	return fmt.Sprintf("no total could be found for %s", e.Label)
}

// InvalidMonthError is returned for month input outside January..December.
type InvalidMonthError struct {
	Month string
}

func (e *InvalidMonthError) Error() string {
	return fmt.Sprintf("invalid month %q", e.Month)
}

// InvalidYearError is returned for year input that is not a usable year.
type InvalidYearError struct {
	Year string
}

func (e *InvalidYearError) Error() string {
	return fmt.Sprintf("invalid year %q", e.Year)
}
