package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/spendtrack-dev/spendtrack/internal/model"
)

// ErrNoMatch is returned by the IDOf lookups when no row matches.
var ErrNoMatch = errors.New("no matching row")

// Full-column equality is the existence check: two rows differing in
// any stored column, even by whitespace in a text field, are distinct.
const (
	appleWhere = `Transaction_Date=? AND Clearing_Date=? AND Description=? AND Merchant=?
                  AND Category=? AND Type=? AND Amount=? AND Card_Type=?
                  AND Is_Payment=? AND Is_Transaction=? AND User_id=?`

	eslWhere = `Transaction_Number=? AND Date=? AND Description=? AND Memo=?
                AND Amount_Debit=? AND Amount_Credit=? AND Balance=? AND Check_Number=?
                AND Fees=? AND Card_Type=? AND Is_Payment=? AND Is_Transaction=? AND User_id=?`
)

func appleArgs(r *model.AppleReceipt) []any {
	return []any{
		r.TransactionDate, r.ClearingDate, r.Description, r.Merchant,
		r.Category, r.Type, r.Amount, r.CardType,
		boolToInt(r.IsPayment), boolToInt(r.IsTransaction), r.UserID,
	}
}

func eslArgs(r *model.ESLReceipt) []any {
	return []any{
		r.TransactionNumber, r.Date, r.Description, r.Memo,
		r.AmountDebit, r.AmountCredit, r.Balance, r.CheckNumber,
		r.Fees, r.CardType, boolToInt(r.IsPayment), boolToInt(r.IsTransaction), r.UserID,
	}
}

// ReceiptExists reports whether an identical receipt row is already
// persisted.
func (s *Store) ReceiptExists(r model.Receipt) (bool, error) {
	return receiptExists(s.conn, r)
}

// InsertReceipt persists a receipt row without an existence check;
// callers wanting idempotence go through Ingest.
func (s *Store) InsertReceipt(r model.Receipt) error {
	return insertReceipt(s.conn, r)
}

// ReceiptID returns the id of the first row matching the receipt on
// every column, or ErrNoMatch. Full-field equality is not a key, so
// duplicates resolve to the first match.
func (s *Store) ReceiptID(r model.Receipt) (int64, error) {
	switch rec := r.(type) {
	case *model.AppleReceipt:
		return idOf(s.conn, "AppleReceipts", appleWhere, appleArgs(rec))
	case *model.ESLReceipt:
		return idOf(s.conn, "ESLReceipts", eslWhere, eslArgs(rec))
	default:
		return 0, fmt.Errorf("unknown receipt type %T", r)
	}
}

func receiptExists(q querier, r model.Receipt) (bool, error) {
	switch rec := r.(type) {
	case *model.AppleReceipt:
		return rowExists(q, "AppleReceipts", appleWhere, appleArgs(rec))
	case *model.ESLReceipt:
		return rowExists(q, "ESLReceipts", eslWhere, eslArgs(rec))
	default:
		return false, fmt.Errorf("unknown receipt type %T", r)
	}
}

func insertReceipt(q querier, r model.Receipt) error {
	switch rec := r.(type) {
	case *model.AppleReceipt:
		query := `INSERT INTO AppleReceipts(Transaction_Date, Clearing_Date, Description, Merchant,
                      Category, Type, Amount, Card_Type, Is_Payment, Is_Transaction, User_id)
                  VALUES(?,?,?,?,?,?,?,?,?,?,?)`
		if _, err := q.Exec(query, appleArgs(rec)...); err != nil {
			return fmt.Errorf("inserting apple receipt: %w", err)
		}
		return nil
	case *model.ESLReceipt:
		query := `INSERT INTO ESLReceipts(Transaction_Number, Date, Description, Memo,
                      Amount_Debit, Amount_Credit, Balance, Check_Number, Fees,
                      Card_Type, Is_Payment, Is_Transaction, User_id)
                  VALUES(?,?,?,?,?,?,?,?,?,?,?,?,?)`
		if _, err := q.Exec(query, eslArgs(rec)...); err != nil {
			return fmt.Errorf("inserting esl receipt: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unknown receipt type %T", r)
	}
}

func rowExists(q querier, table, where string, args []any) (bool, error) {
	var count int
	query := "SELECT COUNT(*) FROM " + table + " WHERE " + where
	if err := q.QueryRow(query, args...).Scan(&count); err != nil {
		return false, fmt.Errorf("checking %s existence: %w", table, err)
	}
	return count > 0, nil
}

func idOf(q querier, table, where string, args []any) (int64, error) {
	var id int64
	query := "SELECT id FROM " + table + " WHERE " + where + " LIMIT 1"
	err := q.QueryRow(query, args...).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("%s: %w", table, ErrNoMatch)
	}
	if err != nil {
		return 0, fmt.Errorf("looking up %s id: %w", table, err)
	}
	return id, nil
}
