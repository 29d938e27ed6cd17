package ledger

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/spendtrack-dev/spendtrack/internal/dates"
	"github.com/spendtrack-dev/spendtrack/internal/store"
)

// Ledger answers aggregate spending queries over the transaction
// table. All queries are scoped to a single user and read-only, and
// every numeric result is rounded to 2 decimal places exactly once, at
// the point of return.
type Ledger struct {
	store *store.Store
	log   zerolog.Logger
}

// New creates a Ledger over a store.
func New(s *store.Store, log zerolog.Logger) *Ledger {
	return &Ledger{
		store: s,
		log:   log.With().Str("component", "ledger").Logger(),
	}
}

// Bucket is one label in an ordered group-by result.
type Bucket struct {
	Label string
	Total decimal.Decimal
}

// TotalBetween sums transaction amounts over an inclusive ISO date
// range. Zero matching rows is NoTotalBetweenDatesError; matching rows
// summing to zero is a legitimate zero result.
func (l *Ledger) TotalBetween(start, end string, userID int64) (decimal.Decimal, error) {
	rows, err := l.store.AmountsBetween(start, end, userID)
	if err != nil {
		return decimal.Zero, err
	}
	if len(rows) == 0 {
		return decimal.Zero, &NoTotalBetweenDatesError{
			Start: dates.Pretty(start),
			End:   dates.Pretty(end),
		}
	}

	total := decimal.Zero
	for _, row := range rows {
		total = total.Add(row.Amount)
	}
	return total.Round(2), nil
}

// AverageBetween returns the arithmetic mean of matching amounts,
// rounded to 2 decimal places; zero matching rows is NoDataFoundError.
func (l *Ledger) AverageBetween(start, end string, userID int64) (decimal.Decimal, error) {
	rows, err := l.store.AmountsBetween(start, end, userID)
	if err != nil {
		return decimal.Zero, err
	}
	if len(rows) == 0 {
		return decimal.Zero, &NoDataFoundError{Label: dates.PrettyRange(start, end)}
	}

	total := decimal.Zero
	for _, row := range rows {
		total = total.Add(row.Amount)
	}
	return total.Div(decimal.NewFromInt(int64(len(rows)))).Round(2), nil
}

// MonthlyTotal sums one calendar month.
func (l *Ledger) MonthlyTotal(month time.Month, year int, userID int64) (decimal.Decimal, error) {
	start, end := dates.MonthRange(month, year)
	total, err := l.TotalBetween(start, end, userID)
	var noTotal *NoTotalBetweenDatesError
	if errors.As(err, &noTotal) {
		return decimal.Zero, &NoTotalFoundError{Label: fmt.Sprintf("%s %d", month, year)}
	}
	return total, err
}

// YearlyTotal sums one calendar year.
func (l *Ledger) YearlyTotal(year int, userID int64) (decimal.Decimal, error) {
	start, end := dates.YearRange(year)
	total, err := l.TotalBetween(start, end, userID)
	var noTotal *NoTotalBetweenDatesError
	if errors.As(err, &noTotal) {
		return decimal.Zero, &NoTotalFoundError{Label: fmt.Sprintf("%d", year)}
	}
	return total, err
}

// AllTimeTotal sums every year with data, iterating year by year over
// DistinctYears and skipping years that have no rows. No contributing
// year at all is NoDataFoundError.
func (l *Ledger) AllTimeTotal(userID int64) (decimal.Decimal, error) {
	years, err := l.store.DistinctYears(userID)
	if err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	contributed := false
	for _, year := range years {
		yearTotal, err := l.YearlyTotal(year, userID)
		var noTotal *NoTotalFoundError
		if errors.As(err, &noTotal) {
			l.log.Warn().Int64("user_id", userID).Int("year", year).Msg("Year has no total, skipping")
			continue
		}
		if err != nil {
			return decimal.Zero, err
		}
		total = total.Add(yearTotal)
		contributed = true
	}

	if !contributed {
		return decimal.Zero, &NoDataFoundError{Label: "all time"}
	}
	return total.Round(2), nil
}

// GroupByDay returns per-date totals for one calendar month, ordered
// by date. Dates without rows are absent, not zero. An empty month is
// NoDataFoundError.
func (l *Ledger) GroupByDay(month time.Month, year int, userID int64) ([]Bucket, error) {
	start, end := dates.MonthRange(month, year)
	rows, err := l.store.AmountsBetween(start, end, userID)
	if err != nil {
		return nil, err
	}

	labeled := make([]labeledAmount, len(rows))
	for i, row := range rows {
		labeled[i] = labeledAmount{label: row.Date, amount: row.Amount}
	}
	buckets := accumulate(labeled)
	if len(buckets) == 0 {
		return nil, &NoDataFoundError{Label: fmt.Sprintf("%s %d", month, year)}
	}
	return buckets, nil
}

// GroupByMonth returns per-month totals for one year, in calendar
// order. Months without rows are absent. An empty year is
// NoDataFoundError.
func (l *Ledger) GroupByMonth(year int, userID int64) ([]Bucket, error) {
	var buckets []Bucket
	for month := time.January; month <= time.December; month++ {
		total, err := l.MonthlyTotal(month, year, userID)
		var noTotal *NoTotalFoundError
		if errors.As(err, &noTotal) {
			l.log.Warn().Int64("user_id", userID).Str("month", month.String()).Int("year", year).
				Msg("Month has no total, skipping")
			continue
		}
		if err != nil {
			return nil, err
		}
		buckets = append(buckets, Bucket{Label: month.String(), Total: total})
	}

	if len(buckets) == 0 {
		return nil, &NoDataFoundError{Label: fmt.Sprintf("%d", year)}
	}
	return buckets, nil
}

// GroupByYear returns per-year totals over the user's whole ledger, in
// ascending year order. An empty ledger is NoDataFoundError.
func (l *Ledger) GroupByYear(userID int64) ([]Bucket, error) {
	years, err := l.store.DistinctYears(userID)
	if err != nil {
		return nil, err
	}

	var buckets []Bucket
	for _, year := range years {
		total, err := l.YearlyTotal(year, userID)
		var noTotal *NoTotalFoundError
		if errors.As(err, &noTotal) {
			l.log.Warn().Int64("user_id", userID).Int("year", year).Msg("Year has no total, skipping")
			continue
		}
		if err != nil {
			return nil, err
		}
		buckets = append(buckets, Bucket{Label: fmt.Sprintf("%d", year), Total: total})
	}

	if len(buckets) == 0 {
		return nil, &NoDataFoundError{Label: "all time"}
	}
	return buckets, nil
}

// MerchantTotals sums amounts by merchant over an inclusive range,
// ordered by each merchant's first appearance. An empty range is
// NoDataFoundError.
func (l *Ledger) MerchantTotals(start, end string, userID int64) ([]Bucket, error) {
	rows, err := l.store.MerchantAmountsBetween(start, end, userID)
	if err != nil {
		return nil, err
	}

	labeled := make([]labeledAmount, len(rows))
	for i, row := range rows {
		labeled[i] = labeledAmount{label: row.Merchant, amount: row.Amount}
	}
	buckets := accumulate(labeled)
	if len(buckets) == 0 {
		return nil, &NoDataFoundError{Label: dates.PrettyRange(start, end)}
	}
	return buckets, nil
}

// DistinctYears returns the sorted calendar years with data for a
// user, the basis for all-time iteration.
func (l *Ledger) DistinctYears(userID int64) ([]int, error) {
	return l.store.DistinctYears(userID)
}

type labeledAmount struct {
	label  string
	amount decimal.Decimal
}

// accumulate groups rows by label, preserving first-appearance order
// and rounding each bucket's sum once at the end.
func accumulate(rows []labeledAmount) []Bucket {
	totals := make(map[string]decimal.Decimal)
	var order []string
	for _, row := range rows {
		if _, seen := totals[row.label]; !seen {
			order = append(order, row.label)
		}
		totals[row.label] = totals[row.label].Add(row.amount)
	}

	buckets := make([]Bucket, 0, len(order))
	for _, key := range order {
		buckets = append(buckets, Bucket{Label: key, Total: totals[key].Round(2)})
	}
	return buckets
}
