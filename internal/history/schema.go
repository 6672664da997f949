package history

const schema = `
CREATE TABLE IF NOT EXISTS invocations (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id      TEXT NOT NULL,
    argv        TEXT NOT NULL,
    mode        TEXT NOT NULL,
    exit_code   INTEGER NOT NULL,
    error_kind  TEXT,
    duration_ms INTEGER NOT NULL,
    started_at  INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_invocations_started_at ON invocations(started_at);
`
