package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/spendtrack-dev/spendtrack/internal/model"
)

// defaultCurrencies is the reference data seeded into a fresh ledger.
// Currency is a display label only; no conversion happens anywhere.
var defaultCurrencies = []model.Currency{
	{Acronym: "USD", Name: "United States Dollar", Symbol: "$"},
	{Acronym: "EUR", Name: "Euro", Symbol: "€"},
	{Acronym: "GBP", Name: "Pound Sterling", Symbol: "£"},
	{Acronym: "CAD", Name: "Canadian Dollar", Symbol: "$"},
	{Acronym: "JPY", Name: "Japanese Yen", Symbol: "¥"},
	{Acronym: "AUD", Name: "Australian Dollar", Symbol: "$"},
	{Acronym: "CHF", Name: "Swiss Franc", Symbol: "CHF"},
}

// SeedCurrencies inserts the default currency set if the table is
// empty. Safe to call on every startup.
func (s *Store) SeedCurrencies() error {
	var count int
	if err := s.conn.QueryRow(`SELECT COUNT(*) FROM Currencies`).Scan(&count); err != nil {
		return fmt.Errorf("counting currencies: %w", err)
	}
	if count > 0 {
		return nil
	}

	for _, c := range defaultCurrencies {
		if _, err := s.conn.Exec(`INSERT INTO Currencies(Acronym, Name, Symbol) VALUES(?,?,?)`,
			c.Acronym, c.Name, c.Symbol); err != nil {
			return fmt.Errorf("seeding currency %s: %w", c.Acronym, err)
		}
	}
	s.log.Debug().Int("count", len(defaultCurrencies)).Msg("Currencies seeded")
	return nil
}

// CurrencyByID returns a currency, or nil when the id is unknown.
func (s *Store) CurrencyByID(id int64) (*model.Currency, error) {
	var c model.Currency
	err := s.conn.QueryRow(`SELECT id, Acronym, Name, Symbol FROM Currencies WHERE id=?`, id).
		Scan(&c.ID, &c.Acronym, &c.Name, &c.Symbol)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying currency: %w", err)
	}
	return &c, nil
}

// CurrencyByAcronym returns a currency by acronym, or nil when unknown.
func (s *Store) CurrencyByAcronym(acronym string) (*model.Currency, error) {
	var c model.Currency
	err := s.conn.QueryRow(`SELECT id, Acronym, Name, Symbol FROM Currencies WHERE Acronym=?`, acronym).
		Scan(&c.ID, &c.Acronym, &c.Name, &c.Symbol)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying currency: %w", err)
	}
	return &c, nil
}
