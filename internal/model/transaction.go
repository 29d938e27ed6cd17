package model

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Transaction is the unified, currency-agnostic spend record derived
// from a non-payment receipt. Amounts are stored as canonical decimal
// strings with the sign stripped, so numerically equal exports collapse
// to the same row during dedup.
type Transaction struct {
	Date        string // YYYY-MM-DD
	Amount      string // canonical unsigned decimal string
	CardType    string
	Merchant    string
	Description string
	UserID      int64
}

// Normalize projects an Apple receipt into a Transaction.
func (r *AppleReceipt) Normalize() (Transaction, bool, error) {
	if r.IsPayment {
		return Transaction{}, false, nil
	}
	amount, err := canonicalAmount(r.Amount)
	if err != nil {
		return Transaction{}, false, err
	}
	return Transaction{
		Date:        r.TransactionDate,
		Amount:      amount,
		CardType:    r.CardType,
		Merchant:    r.Merchant,
		Description: r.Description,
		UserID:      r.UserID,
	}, true, nil
}

// Normalize projects an ESL receipt into a Transaction. The debit
// column wins when both sides are present; the credit column is used
// only when the debit is empty.
func (r *ESLReceipt) Normalize() (Transaction, bool, error) {
	if r.IsPayment {
		return Transaction{}, false, nil
	}
	raw := r.AmountDebit
	if raw == "" {
		raw = r.AmountCredit
	}
	amount, err := canonicalAmount(raw)
	if err != nil {
		return Transaction{}, false, err
	}
	return Transaction{
		Date:        r.Date,
		Amount:      amount,
		CardType:    r.CardType,
		Merchant:    r.Memo,
		Description: r.Description,
		UserID:      r.UserID,
	}, true, nil
}

// canonicalAmount strips the sign and trailing zeros from an exported
// amount string so "-23.450" and "23.45" compare equal in the store.
func canonicalAmount(raw string) (string, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return "", fmt.Errorf("parsing amount %q: %w", raw, err)
	}
	s := d.Abs().String()
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimRight(s, ".")
	}
	return s, nil
}
