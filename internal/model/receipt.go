package model

import "strings"

// Card type labels stored on receipts and transactions.
const (
	CardTypeApple = "Apple"
	CardTypeESL   = "ESL"
)

// Receipt is one parsed export row, tagged as either a payment or a
// spend transaction at construction time.
type Receipt interface {
	// Payment reports whether the row is a bill payment or transfer,
	// excluded from spend totals.
	Payment() bool
	// Normalize projects the receipt into the unified Transaction shape.
	// Payments never normalize; ok is false for them.
	Normalize() (txn Transaction, ok bool, err error)
}

// AppleReceipt is a raw parsed row from an Apple Card export.
type AppleReceipt struct {
	TransactionDate string // YYYY-MM-DD
	ClearingDate    string // YYYY-MM-DD
	Description     string
	Merchant        string
	Category        string
	Type            string
	Amount          string // signed, as exported
	CardType        string
	IsPayment       bool
	IsTransaction   bool
	UserID          int64
}

// ESLReceipt is a raw parsed row from an ESL credit union export.
type ESLReceipt struct {
	TransactionNumber string
	Date              string // YYYY-MM-DD
	Description       string
	Memo              string
	AmountDebit       string // signed, as exported; empty if credit side
	AmountCredit      string // signed, as exported; empty if debit side
	Balance           string
	CheckNumber       string
	Fees              string
	CardType          string
	IsPayment         bool
	IsTransaction     bool
	UserID            int64
}

// AppleIsPayment reports whether an Apple Card row is a bill payment.
// The predicates are exact matches on export text. Brittle, but they
// mirror what the institution actually emits today.
func AppleIsPayment(category, rowType string) bool {
	return category == "Payment" || rowType == "Payment"
}

// ESLIsPayment reports whether an ESL row is a payment, transfer or
// deposit rather than a spend. Same caveat as AppleIsPayment: these are
// exact/substring matches on export text.
func ESLIsPayment(description, memo string) bool {
	return memo == "- PAYMENT" ||
		description == "Withdrawal Internet Transfer to" ||
		strings.Contains(description, "ACH Deposit") ||
		description == "Overdraft Deposit" ||
		description == "Descriptive Deposit Mobile /" ||
		description == "Deposit Internet Transfer from"
}

func (r *AppleReceipt) Payment() bool { return r.IsPayment }

func (r *ESLReceipt) Payment() bool { return r.IsPayment }
