package faqrepo

const postgresSchema = `
CREATE TABLE IF NOT EXISTS faqs (
	id         BIGSERIAL PRIMARY KEY,
	question   TEXT NOT NULL,
	answer     TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS faqs_created_at_idx ON faqs (created_at DESC, id DESC);
`

// Timestamps are unix nanoseconds so ordering never depends on text formatting.
const sqliteSchema = `
CREATE TABLE IF NOT EXISTS faqs (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	question   TEXT NOT NULL,
	answer     TEXT NOT NULL,
	created_at INTEGER NOT NULL,
	updated_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS faqs_created_at_idx ON faqs (created_at DESC, id DESC);
`
