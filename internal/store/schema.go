package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS settings (
    id                   INTEGER PRIMARY KEY CHECK (id = 1),
    weekday_budget       REAL NOT NULL DEFAULT 0,
    weekend_budget       REAL NOT NULL DEFAULT 0,
    alarm_threshold      REAL NOT NULL DEFAULT 0.8,
    start_date           TEXT NOT NULL,
    end_date             TEXT,
    updated_at           TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS budget_overrides (
    date                 TEXT PRIMARY KEY,
    amount               REAL NOT NULL
);

CREATE TABLE IF NOT EXISTS rollover_overrides (
    date                 TEXT PRIMARY KEY,
    amount               REAL NOT NULL
);

CREATE TABLE IF NOT EXISTS entries (
    id                   TEXT PRIMARY KEY,
    date                 TEXT NOT NULL,
    amount               REAL NOT NULL,
    note                 TEXT,
    created_at           TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS challenges (
    id                   TEXT PRIMARY KEY,
    name                 TEXT NOT NULL,
    purpose              TEXT,
    start_date           TEXT NOT NULL,
    end_date             TEXT NOT NULL,
    target_pct           INTEGER NOT NULL DEFAULT 100,
    recurrence           TEXT NOT NULL DEFAULT 'none',
    recurrence_end       TEXT,
    status               TEXT NOT NULL,
    final_saved          REAL NOT NULL DEFAULT 0,
    final_total_budget   REAL NOT NULL DEFAULT 0,
    position             INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_entries_date ON entries(date);
CREATE INDEX IF NOT EXISTS idx_challenges_status ON challenges(status);
`
