package store

// schemaSQL is valid for both SQLite and PostgreSQL.
const schemaSQL = `
CREATE TABLE IF NOT EXISTS kv (
    key         TEXT PRIMARY KEY,
    value       TEXT NOT NULL,
    updated_at  TEXT NOT NULL
);
`
