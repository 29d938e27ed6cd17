package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppleIsPayment(t *testing.T) {
	tests := []struct {
		name     string
		category string
		rowType  string
		want     bool
	}{
		{"payment category", "Payment", "Purchase", true},
		{"payment type", "Restaurants", "Payment", true},
		{"both payment", "Payment", "Payment", true},
		{"purchase", "Restaurants", "Purchase", false},
		{"empty fields", "", "", false},
		{"case sensitive", "payment", "purchase", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AppleIsPayment(tt.category, tt.rowType))
		})
	}
}

func TestESLIsPayment(t *testing.T) {
	tests := []struct {
		name string
		desc string
		memo string
		want bool
	}{
		{"card payment memo", "Withdrawal", "- PAYMENT", true},
		{"internet transfer out", "Withdrawal Internet Transfer to", "SAVINGS", true},
		{"ach deposit substring", "ACH Deposit PAYROLL 0042", "", true},
		{"overdraft deposit", "Overdraft Deposit", "", true},
		{"mobile deposit", "Descriptive Deposit Mobile /", "", true},
		{"internet transfer in", "Deposit Internet Transfer from", "CHECKING", true},
		{"pos withdrawal", "Withdrawal POS", "WEGMANS #93", false},
		{"transfer prefix only", "Withdrawal Internet Transfer", "", false},
		{"empty fields", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ESLIsPayment(tt.desc, tt.memo))
		})
	}
}

func TestAppleNormalize_StripsSign(t *testing.T) {
	r := &AppleReceipt{
		TransactionDate: "2024-03-07",
		ClearingDate:    "2024-03-08",
		Description:     "UBER EATS",
		Merchant:        "Uber Eats",
		Category:        "Restaurants",
		Type:            "Purchase",
		Amount:          "-23.45",
		CardType:        CardTypeApple,
		IsTransaction:   true,
		UserID:          1,
	}

	txn, ok, err := r.Normalize()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "23.45", txn.Amount)
	assert.Equal(t, "2024-03-07", txn.Date)
	assert.Equal(t, "Uber Eats", txn.Merchant)
	assert.Equal(t, "UBER EATS", txn.Description)
	assert.Equal(t, CardTypeApple, txn.CardType)
	assert.Equal(t, int64(1), txn.UserID)
}

func TestAppleNormalize_PaymentProducesNothing(t *testing.T) {
	r := &AppleReceipt{
		Category:  "Payment",
		Type:      "Payment",
		Amount:    "75.00",
		IsPayment: true,
		UserID:    1,
	}

	_, ok, err := r.Normalize()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestESLNormalize_DebitWins(t *testing.T) {
	r := &ESLReceipt{
		Date:          "2024-03-05",
		Description:   "Withdrawal POS",
		Memo:          "WEGMANS #93",
		AmountDebit:   "-42.10",
		AmountCredit:  "0.00",
		CardType:      CardTypeESL,
		IsTransaction: true,
		UserID:        2,
	}

	txn, ok, err := r.Normalize()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "42.1", txn.Amount)
	assert.Equal(t, "WEGMANS #93", txn.Merchant)
}

func TestESLNormalize_CreditNonNegative(t *testing.T) {
	for _, raw := range []string{"-12.00", "12.00", "12"} {
		r := &ESLReceipt{
			Date:          "2024-03-09",
			Description:   "Deposit Refund",
			Memo:          "REFUND",
			AmountCredit:  raw,
			CardType:      CardTypeESL,
			IsTransaction: true,
			UserID:        2,
		}

		txn, ok, err := r.Normalize()
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "12", txn.Amount, "input %q", raw)
	}
}

func TestNormalize_CanonicalAmount(t *testing.T) {
	a := &AppleReceipt{TransactionDate: "2024-01-01", Amount: "-23.450", CardType: CardTypeApple, IsTransaction: true}
	b := &AppleReceipt{TransactionDate: "2024-01-01", Amount: "23.45", CardType: CardTypeApple, IsTransaction: true}

	ta, ok, err := a.Normalize()
	require.NoError(t, err)
	require.True(t, ok)
	tb, ok, err := b.Normalize()
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, tb.Amount, ta.Amount)
}

func TestNormalize_BadAmount(t *testing.T) {
	r := &AppleReceipt{TransactionDate: "2024-01-01", Amount: "NOTANUMBER", IsTransaction: true}
	_, _, err := r.Normalize()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing amount")
}

func TestClassification_MutuallyExclusive(t *testing.T) {
	categories := []string{"Payment", "Restaurants", "Grocery", ""}
	types := []string{"Payment", "Purchase", ""}

	for _, c := range categories {
		for _, ty := range types {
			isPayment := AppleIsPayment(c, ty)
			r := &AppleReceipt{Category: c, Type: ty, IsPayment: isPayment, IsTransaction: !isPayment}
			assert.True(t, r.IsPayment != r.IsTransaction, "category=%q type=%q", c, ty)
		}
	}
}
