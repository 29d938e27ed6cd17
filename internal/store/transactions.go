package store

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/spendtrack-dev/spendtrack/internal/model"
)

const txnWhere = `Date=? AND Amount=? AND Card_Type=? AND Merchant=? AND Description=? AND User_id=?`

func txnArgs(t *model.Transaction) []any {
	return []any{t.Date, t.Amount, t.CardType, t.Merchant, t.Description, t.UserID}
}

// TransactionExists reports whether an identical transaction row is
// already persisted.
func (s *Store) TransactionExists(t *model.Transaction) (bool, error) {
	return transactionExists(s.conn, t)
}

// InsertTransaction persists a transaction row without an existence
// check.
func (s *Store) InsertTransaction(t *model.Transaction) error {
	return insertTransaction(s.conn, t)
}

// TransactionID returns the id of the first row matching the
// transaction on every column, or ErrNoMatch.
func (s *Store) TransactionID(t *model.Transaction) (int64, error) {
	return idOf(s.conn, "Transactions", txnWhere, txnArgs(t))
}

func transactionExists(q querier, t *model.Transaction) (bool, error) {
	return rowExists(q, "Transactions", txnWhere, txnArgs(t))
}

func insertTransaction(q querier, t *model.Transaction) error {
	query := `INSERT INTO Transactions(Date, Amount, Card_Type, Merchant, Description, User_id)
              VALUES(?,?,?,?,?,?)`
	if _, err := q.Exec(query, txnArgs(t)...); err != nil {
		return fmt.Errorf("inserting transaction: %w", err)
	}
	return nil
}

// DatedAmount is one transaction's date and amount, as read for
// aggregation.
type DatedAmount struct {
	Date   string
	Amount decimal.Decimal
}

// MerchantAmount is one transaction's merchant and amount.
type MerchantAmount struct {
	Merchant string
	Amount   decimal.Decimal
}

// AmountsBetween returns the date and amount of every transaction in
// the inclusive range for a user, ordered by date.
func (s *Store) AmountsBetween(start, end string, userID int64) ([]DatedAmount, error) {
	query := `SELECT Date, Amount FROM Transactions
              WHERE Date BETWEEN ? AND ? AND User_id=?
              ORDER BY Date`
	rows, err := s.conn.Query(query, start, end, userID)
	if err != nil {
		return nil, fmt.Errorf("querying amounts: %w", err)
	}
	defer rows.Close()

	var out []DatedAmount
	for rows.Next() {
		var date, raw string
		if err := rows.Scan(&date, &raw); err != nil {
			return nil, fmt.Errorf("scanning amount row: %w", err)
		}
		amount, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, fmt.Errorf("stored amount %q: %w", raw, err)
		}
		out = append(out, DatedAmount{Date: date, Amount: amount})
	}
	return out, rows.Err()
}

// MerchantAmountsBetween returns the merchant and amount of every
// transaction in the inclusive range for a user, ordered by date.
func (s *Store) MerchantAmountsBetween(start, end string, userID int64) ([]MerchantAmount, error) {
	query := `SELECT Merchant, Amount FROM Transactions
              WHERE Date BETWEEN ? AND ? AND User_id=?
              ORDER BY Date`
	rows, err := s.conn.Query(query, start, end, userID)
	if err != nil {
		return nil, fmt.Errorf("querying merchants: %w", err)
	}
	defer rows.Close()

	var out []MerchantAmount
	for rows.Next() {
		var merchant, raw string
		if err := rows.Scan(&merchant, &raw); err != nil {
			return nil, fmt.Errorf("scanning merchant row: %w", err)
		}
		amount, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, fmt.Errorf("stored amount %q: %w", raw, err)
		}
		out = append(out, MerchantAmount{Merchant: merchant, Amount: amount})
	}
	return out, rows.Err()
}

// DistinctYears returns the sorted distinct calendar years with
// transaction data for a user.
func (s *Store) DistinctYears(userID int64) ([]int, error) {
	query := `SELECT DISTINCT strftime('%Y', Date) FROM Transactions WHERE User_id=?`
	rows, err := s.conn.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("querying years: %w", err)
	}
	defer rows.Close()

	var years []int
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scanning year: %w", err)
		}
		year, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("stored year %q: %w", raw, err)
		}
		years = append(years, year)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	sort.Ints(years)
	return years, nil
}

// TransactionCount returns the number of transaction rows for a user.
func (s *Store) TransactionCount(userID int64) (int, error) {
	var count int
	err := s.conn.QueryRow(`SELECT COUNT(*) FROM Transactions WHERE User_id=?`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting transactions: %w", err)
	}
	return count, nil
}

// EarliestTransactionDate returns the first transaction date for a
// user, or "" when the user has no transactions.
func (s *Store) EarliestTransactionDate(userID int64) (string, error) {
	return s.boundaryDate("MIN", userID)
}

// LatestTransactionDate returns the last transaction date for a user,
// or "" when the user has no transactions.
func (s *Store) LatestTransactionDate(userID int64) (string, error) {
	return s.boundaryDate("MAX", userID)
}

func (s *Store) boundaryDate(fn string, userID int64) (string, error) {
	var date *string
	query := fmt.Sprintf(`SELECT %s(Date) FROM Transactions WHERE User_id=?`, fn)
	if err := s.conn.QueryRow(query, userID).Scan(&date); err != nil {
		return "", fmt.Errorf("querying %s date: %w", fn, err)
	}
	if date == nil {
		return "", nil
	}
	return *date, nil
}
