package model

// User is an account that owns receipts and transactions.
type User struct {
	ID             int64
	Username       string
	PasswordHash   string
	Firstname      string
	Surname        string
	CurrencyID     int64
	HasFirstSignIn bool
	AccountCreated string // YYYY-MM-DD
	LastSignIn     string // YYYY-MM-DD, empty until first sign-in
}

// Currency is reference data used for report symbol lookup only; no
// conversion logic exists anywhere in the system.
type Currency struct {
	ID      int64
	Acronym string
	Name    string
	Symbol  string
}
