// internal/storage/journal/schema.go
package journal

// Schema creates the journal tables. Money columns hold decimal strings.
const Schema = `
CREATE TABLE IF NOT EXISTS accounts (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	initial_balance TEXT NOT NULL,
	current_balance TEXT NOT NULL,
	created_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS trades (
	seq INTEGER PRIMARY KEY AUTOINCREMENT,
	id TEXT NOT NULL UNIQUE,
	account_id TEXT NOT NULL REFERENCES accounts(id) ON DELETE CASCADE,
	symbol TEXT NOT NULL DEFAULT '',
	position TEXT NOT NULL,
	entry_price TEXT NOT NULL,
	exit_price TEXT,
	pnl TEXT,
	trade_date TEXT NOT NULL,
	notes TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_trades_account_date ON trades(account_id, trade_date, seq);
`
