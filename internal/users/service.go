// Package users handles account creation, sign-in and profile setup.
// Passwords are stored as bcrypt hashes; the plaintext never touches
// the database or the logs.
package users

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/spendtrack-dev/spendtrack/internal/dates"
	"github.com/spendtrack-dev/spendtrack/internal/model"
	"github.com/spendtrack-dev/spendtrack/internal/store"
)

// Service wraps the store with account semantics.
type Service struct {
	store *store.Store
	log   zerolog.Logger

	// now is swappable so tests can pin sign-in dates.
	now func() time.Time
}

func New(s *store.Store, log zerolog.Logger) *Service {
	return &Service{
		store: s,
		log:   log.With().Str("component", "users").Logger(),
		now:   time.Now,
	}
}

// Create registers a new account. The username must be unused.
func (s *Service) Create(username, password string) (*model.User, error) {
	existing, err := s.store.UserByUsername(username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("username %q is already taken", username)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	u := &model.User{
		Username:       username,
		PasswordHash:   string(hash),
		AccountCreated: s.now().Format(dates.ISO),
	}
	id, err := s.store.InsertUser(u)
	if err != nil {
		return nil, err
	}
	u.ID = id

	s.log.Info().Str("username", username).Int64("user_id", id).Msg("Account created")
	return u, nil
}

// Authenticate checks a username/password pair and records the
// sign-in date on success.
func (s *Service) Authenticate(username, password string) (*model.User, error) {
	u, err := s.store.UserByUsername(username)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, &UserNotFoundError{Username: username}
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, &BadSignInError{Username: username}
	}

	u.LastSignIn = s.now().Format(dates.ISO)
	if err := s.store.UpdateLastSignIn(u.ID, u.LastSignIn); err != nil {
		return nil, err
	}
	return u, nil
}

// CompleteSetup fills in the profile collected on first sign-in.
func (s *Service) CompleteSetup(u *model.User, firstname, surname, currencyAcronym string) error {
	currency, err := s.store.CurrencyByAcronym(currencyAcronym)
	if err != nil {
		return err
	}
	if currency == nil {
		return fmt.Errorf("unknown currency %q", currencyAcronym)
	}

	u.Firstname = firstname
	u.Surname = surname
	u.CurrencyID = currency.ID
	u.HasFirstSignIn = true
	if err := s.store.UpdateUserProfile(u); err != nil {
		return err
	}
	s.log.Info().Str("username", u.Username).Msg("Profile setup complete")
	return nil
}

// Lookup returns the account for a username, failing with
// UserNotFoundError when none exists.
func (s *Service) Lookup(username string) (*model.User, error) {
	u, err := s.store.UserByUsername(username)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, &UserNotFoundError{Username: username}
	}
	return u, nil
}

// Delete removes the account and every receipt and transaction it
// owns.
func (s *Service) Delete(username string) error {
	u, err := s.Lookup(username)
	if err != nil {
		return err
	}
	return s.store.DeleteUser(u.ID)
}

// CurrencySymbol returns the display symbol for a user's chosen
// currency, or the empty string when none is set.
func (s *Service) CurrencySymbol(u *model.User) (string, error) {
	if u.CurrencyID == 0 {
		return "", nil
	}
	c, err := s.store.CurrencyByID(u.CurrencyID)
	if err != nil {
		return "", err
	}
	if c == nil {
		return "", nil
	}
	return c.Symbol, nil
}
