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

// ESLParser parses ESL credit union account history CSV exports. The
// export carries three account preamble lines plus the column header,
// so data starts on the fifth row.
type ESLParser struct{}

const (
	eslHeaderRows = 4
	eslNumFields  = 9

	eslColTransactionNumber = 0
	eslColDate              = 1
	eslColDescription       = 2
	eslColMemo              = 3
	eslColAmountDebit       = 4
	eslColAmountCredit      = 5
	eslColBalance           = 6
	eslColCheckNumber       = 7
	eslColFees              = 8
)

// Format returns the parser name.
func (p *ESLParser) Format() string { return "esl" }

// Parse reads an ESL export and returns classified receipts.
func (p *ESLParser) Parse(r io.Reader, userID int64) ([]model.Receipt, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading esl CSV: %w", err)
	}

	if len(records) <= eslHeaderRows {
		return nil, nil
	}

	var receipts []model.Receipt
	for i, rec := range records[eslHeaderRows:] {
		receipt, err := parseESLRow(rec, userID)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+eslHeaderRows+1, err)
		}
		receipts = append(receipts, receipt)
	}
	return receipts, nil
}

func parseESLRow(rec []string, userID int64) (*model.ESLReceipt, error) {
	if len(rec) < eslNumFields {
		return nil, fmt.Errorf("expected %d fields, got %d", eslNumFields, len(rec))
	}

	date, err := dates.ReformatSlash(rec[eslColDate])
	if err != nil {
		return nil, fmt.Errorf("parsing date: %w", err)
	}

	// Exactly one of debit/credit is populated on a well-formed row;
	// whichever is present must be numeric.
	for _, col := range []int{eslColAmountDebit, eslColAmountCredit} {
		if rec[col] == "" {
			continue
		}
		if _, err := decimal.NewFromString(strings.TrimSpace(rec[col])); err != nil {
			return nil, fmt.Errorf("parsing amount %q: %w", rec[col], err)
		}
	}

	isPayment := model.ESLIsPayment(rec[eslColDescription], rec[eslColMemo])

	return &model.ESLReceipt{
		TransactionNumber: rec[eslColTransactionNumber],
		Date:              date,
		Description:       rec[eslColDescription],
		Memo:              rec[eslColMemo],
		AmountDebit:       rec[eslColAmountDebit],
		AmountCredit:      rec[eslColAmountCredit],
		Balance:           rec[eslColBalance],
		CheckNumber:       rec[eslColCheckNumber],
		Fees:              rec[eslColFees],
		CardType:          model.CardTypeESL,
		IsPayment:         isPayment,
		IsTransaction:     !isPayment,
		UserID:            userID,
	}, nil
}
