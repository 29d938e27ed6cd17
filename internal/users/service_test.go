package users

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spendtrack-dev/spendtrack/internal/model"
	"github.com/spendtrack-dev/spendtrack/internal/store"
)

func newTestService(t *testing.T) (*Service, *store.Store) {
	t.Helper()
	s, err := store.Open(store.Options{
		Path: filepath.Join(t.TempDir(), "test.db"),
		Log:  zerolog.Nop(),
	})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	require.NoError(t, s.SeedCurrencies())

	svc := New(s, zerolog.Nop())
	svc.now = func() time.Time { return time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC) }
	return svc, s
}

func TestCreateAndAuthenticate(t *testing.T) {
	svc, _ := newTestService(t)

	created, err := svc.Create("alex", "hunter2")
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "2024-03-05", created.AccountCreated)
	assert.NotEqual(t, "hunter2", created.PasswordHash)

	u, err := svc.Authenticate("alex", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, created.ID, u.ID)
	assert.Equal(t, "2024-03-05", u.LastSignIn)
}

func TestCreate_DuplicateUsername(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Create("alex", "hunter2")
	require.NoError(t, err)

	_, err = svc.Create("alex", "other")
	assert.ErrorContains(t, err, "already taken")
}

func TestAuthenticate_UnknownUser(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Authenticate("ghost", "pw")
	var notFound *UserNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "ghost", notFound.Username)
}

func TestAuthenticate_WrongPassword(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.Create("alex", "hunter2")
	require.NoError(t, err)

	_, err = svc.Authenticate("alex", "wrong")
	var badSignIn *BadSignInError
	assert.ErrorAs(t, err, &badSignIn)
}

func TestCompleteSetup(t *testing.T) {
	svc, _ := newTestService(t)
	u, err := svc.Create("alex", "hunter2")
	require.NoError(t, err)
	assert.False(t, u.HasFirstSignIn)

	require.NoError(t, svc.CompleteSetup(u, "Alex", "Smith", "GBP"))

	reloaded, err := svc.Lookup("alex")
	require.NoError(t, err)
	assert.True(t, reloaded.HasFirstSignIn)
	assert.Equal(t, "Alex", reloaded.Firstname)
	assert.Equal(t, "Smith", reloaded.Surname)

	symbol, err := svc.CurrencySymbol(reloaded)
	require.NoError(t, err)
	assert.Equal(t, "£", symbol)
}

func TestCompleteSetup_UnknownCurrency(t *testing.T) {
	svc, _ := newTestService(t)
	u, err := svc.Create("alex", "hunter2")
	require.NoError(t, err)

	err = svc.CompleteSetup(u, "Alex", "Smith", "XYZ")
	assert.ErrorContains(t, err, "unknown currency")
}

func TestCurrencySymbol_NoneSet(t *testing.T) {
	svc, _ := newTestService(t)
	u, err := svc.Create("alex", "hunter2")
	require.NoError(t, err)

	symbol, err := svc.CurrencySymbol(u)
	require.NoError(t, err)
	assert.Empty(t, symbol)
}

func TestDelete_RemovesOwnedRows(t *testing.T) {
	svc, s := newTestService(t)
	u, err := svc.Create("alex", "hunter2")
	require.NoError(t, err)
	require.NoError(t, s.InsertTransaction(&model.Transaction{
		Date: "2024-03-05", Amount: "23.45", CardType: model.CardTypeApple,
		Merchant: "Uber Eats", Description: "d", UserID: u.ID,
	}))

	require.NoError(t, svc.Delete("alex"))

	_, err = svc.Lookup("alex")
	var notFound *UserNotFoundError
	assert.ErrorAs(t, err, &notFound)

	count, err := s.TransactionCount(u.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestDelete_UnknownUser(t *testing.T) {
	svc, _ := newTestService(t)

	err := svc.Delete("ghost")
	var notFound *UserNotFoundError
	assert.ErrorAs(t, err, &notFound)
}
