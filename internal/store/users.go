package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/spendtrack-dev/spendtrack/internal/model"
)

// nullableID maps the zero id to NULL so optional foreign keys stay
// satisfiable under PRAGMA foreign_keys.
func nullableID(id int64) any {
	if id == 0 {
		return nil
	}
	return id
}

// InsertUser persists a user and returns the assigned id.
func (s *Store) InsertUser(u *model.User) (int64, error) {
	query := `INSERT INTO Users(Username, PasswordHash, Firstname, Surname, Currency_id,
                  Has_First_Sign_In, Account_Created, Last_Sign_In)
              VALUES(?,?,?,?,?,?,?,?)`
	res, err := s.conn.Exec(query,
		u.Username, u.PasswordHash, u.Firstname, u.Surname, nullableID(u.CurrencyID),
		boolToInt(u.HasFirstSignIn), u.AccountCreated, u.LastSignIn)
	if err != nil {
		return 0, fmt.Errorf("inserting user: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading user id: %w", err)
	}
	return id, nil
}

// UserByUsername returns the user with the given username, or nil when
// no such user exists.
func (s *Store) UserByUsername(username string) (*model.User, error) {
	query := `SELECT id, Username, PasswordHash, Firstname, Surname, Currency_id,
                     Has_First_Sign_In, Account_Created, Last_Sign_In
              FROM Users WHERE Username=?`

	var (
		u          model.User
		currencyID sql.NullInt64
		firstSign  int
		created    sql.NullString
		lastSign   sql.NullString
	)
	err := s.conn.QueryRow(query, username).Scan(
		&u.ID, &u.Username, &u.PasswordHash, &u.Firstname, &u.Surname,
		&currencyID, &firstSign, &created, &lastSign)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying user: %w", err)
	}

	u.CurrencyID = currencyID.Int64
	u.HasFirstSignIn = firstSign != 0
	u.AccountCreated = created.String
	u.LastSignIn = lastSign.String
	return &u, nil
}

// UpdateUserProfile stores first/surname, currency and the first
// sign-in flag after initial account setup.
func (s *Store) UpdateUserProfile(u *model.User) error {
	query := `UPDATE Users SET Firstname=?, Surname=?, Currency_id=?, Has_First_Sign_In=? WHERE id=?`
	if _, err := s.conn.Exec(query, u.Firstname, u.Surname, nullableID(u.CurrencyID), boolToInt(u.HasFirstSignIn), u.ID); err != nil {
		return fmt.Errorf("updating user profile: %w", err)
	}
	return nil
}

// UpdateLastSignIn records a sign-in date for a user.
func (s *Store) UpdateLastSignIn(userID int64, date string) error {
	if _, err := s.conn.Exec(`UPDATE Users SET Last_Sign_In=? WHERE id=?`, date, userID); err != nil {
		return fmt.Errorf("updating last sign-in: %w", err)
	}
	return nil
}

// DeleteUser removes a user and everything they own. Receipts and
// transactions go first so the user row's foreign keys never dangle.
func (s *Store) DeleteUser(userID int64) error {
	tx, err := s.conn.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	deletes := []struct {
		table  string
		column string
	}{
		{"Transactions", "User_id"},
		{"AppleReceipts", "User_id"},
		{"ESLReceipts", "User_id"},
		{"Users", "id"},
	}
	for _, d := range deletes {
		query := fmt.Sprintf("DELETE FROM %s WHERE %s=?", d.table, d.column)
		if _, err := tx.Exec(query, userID); err != nil {
			return fmt.Errorf("deleting from %s: %w", d.table, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing delete: %w", err)
	}
	s.log.Info().Int64("user_id", userID).Msg("User and all owned rows deleted")
	return nil
}
