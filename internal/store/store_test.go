package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spendtrack-dev/spendtrack/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(Options{
		Path: filepath.Join(t.TempDir(), "test.db"),
		Log:  zerolog.Nop(),
	})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func createTestUser(t *testing.T, s *Store, username string) int64 {
	t.Helper()
	id, err := s.InsertUser(&model.User{
		Username:       username,
		PasswordHash:   "x",
		Firstname:      "Test",
		Surname:        "User",
		AccountCreated: "2024-01-01",
	})
	require.NoError(t, err)
	return id
}

func copyTestdata(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("..", "..", "testdata", name))
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestOpen_CreatesSchema(t *testing.T) {
	s := openTestStore(t)

	// All tables exist and are queryable.
	count, err := s.TransactionCount(1)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	require.NoError(t, s.SeedCurrencies())
	c, err := s.CurrencyByAcronym("USD")
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, "$", c.Symbol)
}

func TestSeedCurrencies_Idempotent(t *testing.T) {
	s := openTestStore(t)
	require.NoError(t, s.SeedCurrencies())
	require.NoError(t, s.SeedCurrencies())

	c, err := s.CurrencyByAcronym("EUR")
	require.NoError(t, err)
	require.NotNil(t, c)

	// A second seed must not duplicate rows; acronym lookup still
	// resolves to a single currency.
	other, err := s.CurrencyByID(c.ID)
	require.NoError(t, err)
	assert.Equal(t, c.Acronym, other.Acronym)
}

func TestIngest_AppleFile(t *testing.T) {
	s := openTestStore(t)
	userID := createTestUser(t, s, "alex")
	file := copyTestdata(t, "Apple_Card_Transactions.csv")

	updated, err := s.Ingest([]string{file}, userID)
	require.NoError(t, err)
	assert.True(t, updated)

	// 5 rows: 1 payment + 4 purchases. Only purchases become
	// transactions.
	count, err := s.TransactionCount(userID)
	require.NoError(t, err)
	assert.Equal(t, 4, count)

	// The payment produced a receipt but no transaction.
	payment := &model.AppleReceipt{
		TransactionDate: "2024-03-05",
		ClearingDate:    "2024-03-06",
		Description:     "ACH DEPOSIT INTERNET TRANSFER",
		Merchant:        "Apple Card",
		Category:        "Payment",
		Type:            "Payment",
		Amount:          "75.00",
		CardType:        model.CardTypeApple,
		IsPayment:       true,
		IsTransaction:   false,
		UserID:          userID,
	}
	exists, err := s.ReceiptExists(payment)
	require.NoError(t, err)
	assert.True(t, exists)

	// The -23.45 purchase was normalized with the sign stripped.
	txn := &model.Transaction{
		Date:        "2024-03-07",
		Amount:      "23.45",
		CardType:    model.CardTypeApple,
		Merchant:    "Uber Eats",
		Description: "UBER EATS PENDING",
		UserID:      userID,
	}
	exists, err = s.TransactionExists(txn)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestIngest_Idempotent(t *testing.T) {
	s := openTestStore(t)
	userID := createTestUser(t, s, "alex")
	file := copyTestdata(t, "ESL_Export.csv")

	updated, err := s.Ingest([]string{file}, userID)
	require.NoError(t, err)
	assert.True(t, updated)

	before, err := s.TransactionCount(userID)
	require.NoError(t, err)

	// Second ingest of the same file: zero writes, reports false.
	updated, err = s.Ingest([]string{file}, userID)
	require.NoError(t, err)
	assert.False(t, updated)

	after, err := s.TransactionCount(userID)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestIngest_ESLClassification(t *testing.T) {
	s := openTestStore(t)
	userID := createTestUser(t, s, "alex")
	file := copyTestdata(t, "ESL_Export.csv")

	_, err := s.Ingest([]string{file}, userID)
	require.NoError(t, err)

	// 6 rows, 3 payments: only 3 transactions.
	count, err := s.TransactionCount(userID)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	// The credit-only refund row is stored non-negative.
	refund := &model.Transaction{
		Date:        "2024-03-22",
		Amount:      "12",
		CardType:    model.CardTypeESL,
		Merchant:    "VENDOR REFUND",
		Description: "Deposit Refund",
		UserID:      userID,
	}
	exists, err := s.TransactionExists(refund)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestIngest_UnknownFormatSkipped(t *testing.T) {
	s := openTestStore(t)
	userID := createTestUser(t, s, "alex")

	path := filepath.Join(t.TempDir(), "statement.csv")
	require.NoError(t, os.WriteFile(path, []byte("a,b,c\n"), 0o644))

	updated, err := s.Ingest([]string{path}, userID)
	require.NoError(t, err)
	assert.False(t, updated)
}

func TestIngest_MalformedFileFails(t *testing.T) {
	s := openTestStore(t)
	userID := createTestUser(t, s, "alex")

	path := filepath.Join(t.TempDir(), "Apple_bad.csv")
	require.NoError(t, os.WriteFile(path, []byte("h1,h2,h3,h4,h5,h6,h7\n03/05/2024,03/06/2024,short\n"), 0o644))

	_, err := s.Ingest([]string{path}, userID)
	require.Error(t, err)

	// The failed file wrote nothing.
	count, err := s.TransactionCount(userID)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestIngest_PerUserScoping(t *testing.T) {
	s := openTestStore(t)
	alex := createTestUser(t, s, "alex")
	brook := createTestUser(t, s, "brook")
	file := copyTestdata(t, "Apple_Card_Transactions.csv")

	// The same file ingested for two users writes rows for both:
	// user_id participates in the equality tuple.
	updated, err := s.Ingest([]string{file}, alex)
	require.NoError(t, err)
	assert.True(t, updated)

	updated, err = s.Ingest([]string{file}, brook)
	require.NoError(t, err)
	assert.True(t, updated)

	countA, err := s.TransactionCount(alex)
	require.NoError(t, err)
	countB, err := s.TransactionCount(brook)
	require.NoError(t, err)
	assert.Equal(t, countA, countB)
}

func TestReceiptID_FirstMatch(t *testing.T) {
	s := openTestStore(t)
	userID := createTestUser(t, s, "alex")

	r := &model.AppleReceipt{
		TransactionDate: "2024-05-01",
		ClearingDate:    "2024-05-02",
		Description:     "COFFEE",
		Merchant:        "Cafe",
		Category:        "Restaurants",
		Type:            "Purchase",
		Amount:          "-3.50",
		CardType:        model.CardTypeApple,
		IsTransaction:   true,
		UserID:          userID,
	}

	_, err := s.ReceiptID(r)
	assert.ErrorIs(t, err, ErrNoMatch)

	require.NoError(t, s.InsertReceipt(r))
	id, err := s.ReceiptID(r)
	require.NoError(t, err)
	assert.Positive(t, id)
}

func TestTransactionID(t *testing.T) {
	s := openTestStore(t)
	userID := createTestUser(t, s, "alex")

	txn := &model.Transaction{
		Date: "2024-05-01", Amount: "3.5", CardType: model.CardTypeApple,
		Merchant: "Cafe", Description: "COFFEE", UserID: userID,
	}

	_, err := s.TransactionID(txn)
	assert.ErrorIs(t, err, ErrNoMatch)

	require.NoError(t, s.InsertTransaction(txn))
	id, err := s.TransactionID(txn)
	require.NoError(t, err)
	assert.Positive(t, id)
}

func TestDistinctYears_Sorted(t *testing.T) {
	s := openTestStore(t)
	userID := createTestUser(t, s, "alex")

	for _, date := range []string{"2025-06-01", "2023-01-15", "2024-12-31", "2023-03-03"} {
		require.NoError(t, s.InsertTransaction(&model.Transaction{
			Date: date, Amount: "1", CardType: model.CardTypeApple,
			Merchant: "M", Description: "D", UserID: userID,
		}))
	}

	years, err := s.DistinctYears(userID)
	require.NoError(t, err)
	assert.Equal(t, []int{2023, 2024, 2025}, years)
}

func TestBoundaryDates(t *testing.T) {
	s := openTestStore(t)
	userID := createTestUser(t, s, "alex")

	earliest, err := s.EarliestTransactionDate(userID)
	require.NoError(t, err)
	assert.Empty(t, earliest)

	for _, date := range []string{"2024-03-10", "2024-01-05", "2024-07-20"} {
		require.NoError(t, s.InsertTransaction(&model.Transaction{
			Date: date, Amount: "1", CardType: model.CardTypeApple,
			Merchant: "M", Description: "D", UserID: userID,
		}))
	}

	earliest, err = s.EarliestTransactionDate(userID)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-05", earliest)

	latest, err := s.LatestTransactionDate(userID)
	require.NoError(t, err)
	assert.Equal(t, "2024-07-20", latest)
}

func TestDeleteUser_Cascades(t *testing.T) {
	s := openTestStore(t)
	userID := createTestUser(t, s, "alex")
	file := copyTestdata(t, "Apple_Card_Transactions.csv")

	_, err := s.Ingest([]string{file}, userID)
	require.NoError(t, err)

	require.NoError(t, s.DeleteUser(userID))

	u, err := s.UserByUsername("alex")
	require.NoError(t, err)
	assert.Nil(t, u)

	count, err := s.TransactionCount(userID)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestUserRoundTrip(t *testing.T) {
	s := openTestStore(t)
	require.NoError(t, s.SeedCurrencies())
	usd, err := s.CurrencyByAcronym("USD")
	require.NoError(t, err)

	id, err := s.InsertUser(&model.User{
		Username:       "casey",
		PasswordHash:   "hash",
		Firstname:      "Casey",
		Surname:        "Jones",
		CurrencyID:     usd.ID,
		HasFirstSignIn: true,
		AccountCreated: "2024-02-02",
	})
	require.NoError(t, err)

	u, err := s.UserByUsername("casey")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, id, u.ID)
	assert.Equal(t, usd.ID, u.CurrencyID)
	assert.True(t, u.HasFirstSignIn)
	assert.Equal(t, "2024-02-02", u.AccountCreated)
	assert.Empty(t, u.LastSignIn)

	require.NoError(t, s.UpdateLastSignIn(id, "2024-03-01"))
	u, err = s.UserByUsername("casey")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-01", u.LastSignIn)
}
