// journal/schema.go
package journal

const Schema = `
CREATE TABLE IF NOT EXISTS fills (
	seq INTEGER PRIMARY KEY AUTOINCREMENT,
	fill_id TEXT NOT NULL UNIQUE,
	date DATETIME NOT NULL,
	symbol TEXT NOT NULL,
	side TEXT NOT NULL CHECK (side IN ('buy', 'sell')),
	qty REAL NOT NULL,
	price REAL NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_fills_symbol_date ON fills(symbol, date, seq);
`
