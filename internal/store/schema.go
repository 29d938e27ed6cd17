package store

// Table DDL. Amounts are stored as text: the export is the source of
// truth and the ledger never mutates a row after insert. Transactions
// carries nullable receipt foreign keys that are never populated; a
// Transaction is an independently addressable fact row.
const (
	currenciesSchema = `
CREATE TABLE IF NOT EXISTS Currencies(
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    Acronym TEXT NOT NULL,
    Name TEXT NOT NULL,
    Symbol TEXT
);`

	usersSchema = `
CREATE TABLE IF NOT EXISTS Users(
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    Username TEXT NOT NULL,
    PasswordHash TEXT NOT NULL,
    Firstname TEXT NOT NULL,
    Surname TEXT NOT NULL,
    Currency_id INTEGER,
    Has_First_Sign_In INTEGER NOT NULL,
    Account_Created TEXT,
    Last_Sign_In TEXT,
    FOREIGN KEY(Currency_id) REFERENCES Currencies(id)
);`

	appleReceiptsSchema = `
CREATE TABLE IF NOT EXISTS AppleReceipts(
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    Transaction_Date TEXT NOT NULL,
    Clearing_Date TEXT NOT NULL,
    Description TEXT NOT NULL,
    Merchant TEXT NOT NULL,
    Category TEXT NOT NULL,
    Type TEXT NOT NULL,
    Amount TEXT NOT NULL,
    Card_Type TEXT NOT NULL,
    Is_Payment INTEGER NOT NULL,
    Is_Transaction INTEGER NOT NULL,
    User_id INTEGER NOT NULL,
    FOREIGN KEY(User_id) REFERENCES Users(id)
);`

	eslReceiptsSchema = `
CREATE TABLE IF NOT EXISTS ESLReceipts(
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    Transaction_Number TEXT NOT NULL,
    Date TEXT NOT NULL,
    Description TEXT NOT NULL,
    Memo TEXT NOT NULL,
    Amount_Debit TEXT NOT NULL,
    Amount_Credit TEXT NOT NULL,
    Balance TEXT NOT NULL,
    Check_Number TEXT NOT NULL,
    Fees TEXT NOT NULL,
    Card_Type TEXT NOT NULL,
    Is_Payment INTEGER NOT NULL,
    Is_Transaction INTEGER NOT NULL,
    User_id INTEGER NOT NULL,
    FOREIGN KEY(User_id) REFERENCES Users(id)
);`

	transactionsSchema = `
CREATE TABLE IF NOT EXISTS Transactions(
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    Date TEXT NOT NULL,
    Amount TEXT NOT NULL,
    Card_Type TEXT NOT NULL,
    Merchant TEXT NOT NULL,
    Description TEXT NOT NULL,
    ESL_id INTEGER,
    Apple_id INTEGER,
    User_id INTEGER NOT NULL,
    FOREIGN KEY(User_id) REFERENCES Users(id),
    FOREIGN KEY(ESL_id) REFERENCES ESLReceipts(id),
    FOREIGN KEY(Apple_id) REFERENCES AppleReceipts(id)
);`

	// The existence check compares every stored column, which is O(n)
	// per row without an index. These cover the hot prefix of each
	// equality tuple without changing observable behavior.
	indexSchema = `
CREATE INDEX IF NOT EXISTS idx_transactions_user_date ON Transactions(User_id, Date);
CREATE INDEX IF NOT EXISTS idx_apple_receipts_user_date ON AppleReceipts(User_id, Transaction_Date);
CREATE INDEX IF NOT EXISTS idx_esl_receipts_user_date ON ESLReceipts(User_id, Date);`
)

// DefaultSchema returns the DDL set for a new ledger.
func DefaultSchema() []string {
	return []string{
		currenciesSchema,
		usersSchema,
		appleReceiptsSchema,
		eslReceiptsSchema,
		transactionsSchema,
		indexSchema,
	}
}
