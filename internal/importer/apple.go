package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/spendtrack-dev/spendtrack/internal/dates"
	"github.com/spendtrack-dev/spendtrack/internal/model"
)

// AppleParser parses Apple Card transaction CSV exports.
type AppleParser struct{}

const (
	appleHeaderRows = 1
	appleNumFields  = 7

	appleColTransactionDate = 0
	appleColClearingDate    = 1
	appleColDescription     = 2
	appleColMerchant        = 3
	appleColCategory        = 4
	appleColType            = 5
	appleColAmount          = 6
)

// Format returns the parser name.
func (p *AppleParser) Format() string { return "apple" }

// Parse reads an Apple Card export and returns classified receipts.
// The first row is the column header and is skipped.
func (p *AppleParser) Parse(r io.Reader, userID int64) ([]model.Receipt, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading apple CSV: %w", err)
	}

	if len(records) <= appleHeaderRows {
		return nil, nil
	}

	var receipts []model.Receipt
	for i, rec := range records[appleHeaderRows:] {
		receipt, err := parseAppleRow(rec, userID)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+appleHeaderRows+1, err)
		}
		receipts = append(receipts, receipt)
	}
	return receipts, nil
}

func parseAppleRow(rec []string, userID int64) (*model.AppleReceipt, error) {
	if len(rec) < appleNumFields {
		return nil, fmt.Errorf("expected %d fields, got %d", appleNumFields, len(rec))
	}

	txnDate, err := dates.ReformatSlash(rec[appleColTransactionDate])
	if err != nil {
		return nil, fmt.Errorf("parsing transaction date: %w", err)
	}
	clearingDate, err := dates.ReformatSlash(rec[appleColClearingDate])
	if err != nil {
		return nil, fmt.Errorf("parsing clearing date: %w", err)
	}
	if _, err := decimal.NewFromString(strings.TrimSpace(rec[appleColAmount])); err != nil {
		return nil, fmt.Errorf("parsing amount %q: %w", rec[appleColAmount], err)
	}

	isPayment := model.AppleIsPayment(rec[appleColCategory], rec[appleColType])

	return &model.AppleReceipt{
		TransactionDate: txnDate,
		ClearingDate:    clearingDate,
		Description:     rec[appleColDescription],
		Merchant:        rec[appleColMerchant],
		Category:        rec[appleColCategory],
		Type:            rec[appleColType],
		Amount:          rec[appleColAmount],
		CardType:        model.CardTypeApple,
		IsPayment:       isPayment,
		IsTransaction:   !isPayment,
		UserID:          userID,
	}, nil
}
