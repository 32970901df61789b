// Package store persists settings, entries, and challenges in a local
// SQLite database. The in-memory state stays authoritative: callers treat
// save failures as log-and-continue, never as fatal.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"suds/internal/dateutil"
	"suds/internal/model"

	_ "modernc.org/sqlite" // register sqlite driver
)

// Store wraps the SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at the given path.
func Open(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("opening db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database.
func (st *Store) Close() error {
	return st.db.Close()
}

// LoadSettings reads the persisted settings, returning defaults when no
// row exists yet. Missing pieces fall back to their defaults rather than
// erroring, so a partially written database still loads.
func (st *Store) LoadSettings() (model.Settings, error) {
	s := model.DefaultSettings()

	var startStr string
	var endStr sql.NullString
	err := st.db.QueryRow(`SELECT weekday_budget, weekend_budget, alarm_threshold, start_date, end_date
		FROM settings WHERE id = 1`).
		Scan(&s.WeekdayBudget, &s.WeekendBudget, &s.AlarmThreshold, &startStr, &endStr)
	switch {
	case err == sql.ErrNoRows:
		return s, nil
	case err != nil:
		return s, fmt.Errorf("loading settings: %w", err)
	}

	if d, err := dateutil.Parse(startStr); err == nil {
		s.StartDate = d
	}
	if endStr.Valid && endStr.String != "" {
		if d, err := dateutil.Parse(endStr.String); err == nil {
			s.EndDate = d
		}
	}

	if err := st.loadOverrides("budget_overrides", s.CustomBudgets); err != nil {
		return s, err
	}
	if err := st.loadOverrides("rollover_overrides", s.CustomRollovers); err != nil {
		return s, err
	}
	if err := st.loadChallenges(&s); err != nil {
		return s, err
	}
	return s, nil
}

func (st *Store) loadOverrides(table string, into map[dateutil.Date]float64) error {
	rows, err := st.db.Query("SELECT date, amount FROM " + table)
	if err != nil {
		return fmt.Errorf("loading %s: %w", table, err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var dateStr string
		var amount float64
		if err := rows.Scan(&dateStr, &amount); err != nil {
			return err
		}
		d, err := dateutil.Parse(dateStr)
		if err != nil {
			continue // skip rows with unparseable dates
		}
		into[d] = amount
	}
	return rows.Err()
}

func (st *Store) loadChallenges(s *model.Settings) error {
	rows, err := st.db.Query(`SELECT id, name, purpose, start_date, end_date, target_pct,
		recurrence, recurrence_end, status, final_saved, final_total_budget
		FROM challenges ORDER BY position`)
	if err != nil {
		return fmt.Errorf("loading challenges: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var c model.Challenge
		var purpose, recurrenceEnd sql.NullString
		var startStr, endStr, recurrence, status string
		if err := rows.Scan(&c.ID, &c.Name, &purpose, &startStr, &endStr, &c.TargetPercentage,
			&recurrence, &recurrenceEnd, &status, &c.FinalSaved, &c.FinalTotalBudget); err != nil {
			return err
		}
		c.Purpose = purpose.String
		c.Recurrence = model.Recurrence(recurrence)
		c.Status = model.ChallengeStatus(status)
		if d, err := dateutil.Parse(startStr); err == nil {
			c.StartDate = d
		}
		if d, err := dateutil.Parse(endStr); err == nil {
			c.EndDate = d
		}
		if recurrenceEnd.Valid && recurrenceEnd.String != "" {
			if d, err := dateutil.Parse(recurrenceEnd.String); err == nil {
				c.RecurrenceEndDate = d
			}
		}

		if c.Status == model.ChallengeActive {
			active := c
			s.ActiveChallenge = &active
		} else {
			s.PastChallenges = append(s.PastChallenges, c)
		}
	}
	return rows.Err()
}

// SaveSettings writes the whole settings value in one transaction,
// including overrides and the full challenge list. Archival plus successor
// creation lands atomically.
func (st *Store) SaveSettings(s model.Settings) error {
	tx, err := st.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	endDate := ""
	if !s.EndDate.IsZero() {
		endDate = s.EndDate.String()
	}
	now := time.Now().UTC().Format(time.RFC3339)

	_, err = tx.Exec(`INSERT OR REPLACE INTO settings
		(id, weekday_budget, weekend_budget, alarm_threshold, start_date, end_date, updated_at)
		VALUES (1, ?, ?, ?, ?, ?, ?)`,
		s.WeekdayBudget, s.WeekendBudget, s.AlarmThreshold, s.StartDate.String(), endDate, now)
	if err != nil {
		return fmt.Errorf("saving settings: %w", err)
	}

	if err := saveOverrides(tx, "budget_overrides", s.CustomBudgets); err != nil {
		return err
	}
	if err := saveOverrides(tx, "rollover_overrides", s.CustomRollovers); err != nil {
		return err
	}
	if err := saveChallenges(tx, s); err != nil {
		return err
	}

	return tx.Commit()
}

func saveOverrides(tx *sql.Tx, table string, m map[dateutil.Date]float64) error {
	if _, err := tx.Exec("DELETE FROM " + table); err != nil {
		return err
	}
	for d, amount := range m {
		if _, err := tx.Exec("INSERT INTO "+table+" (date, amount) VALUES (?, ?)", d.String(), amount); err != nil {
			return fmt.Errorf("saving %s: %w", table, err)
		}
	}
	return nil
}

func saveChallenges(tx *sql.Tx, s model.Settings) error {
	if _, err := tx.Exec("DELETE FROM challenges"); err != nil {
		return err
	}

	insert := func(c model.Challenge, position int) error {
		recurrenceEnd := ""
		if !c.RecurrenceEndDate.IsZero() {
			recurrenceEnd = c.RecurrenceEndDate.String()
		}
		_, err := tx.Exec(`INSERT INTO challenges
			(id, name, purpose, start_date, end_date, target_pct, recurrence,
			 recurrence_end, status, final_saved, final_total_budget, position)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			c.ID, c.Name, c.Purpose, c.StartDate.String(), c.EndDate.String(),
			c.TargetPercentage, string(c.Recurrence), recurrenceEnd,
			string(c.Status), c.FinalSaved, c.FinalTotalBudget, position)
		return err
	}

	if s.ActiveChallenge != nil {
		if err := insert(*s.ActiveChallenge, 0); err != nil {
			return fmt.Errorf("saving active challenge: %w", err)
		}
	}
	for i, c := range s.PastChallenges {
		if err := insert(c, i+1); err != nil {
			return fmt.Errorf("saving past challenge: %w", err)
		}
	}
	return nil
}

// LoadEntries returns all entries in creation order.
func (st *Store) LoadEntries() ([]model.Entry, error) {
	rows, err := st.db.Query("SELECT id, date, amount, note, created_at FROM entries ORDER BY created_at")
	if err != nil {
		return nil, fmt.Errorf("loading entries: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []model.Entry
	for rows.Next() {
		var e model.Entry
		var dateStr, createdStr string
		var note sql.NullString
		if err := rows.Scan(&e.ID, &dateStr, &e.Amount, &note, &createdStr); err != nil {
			return nil, err
		}
		e.Note = note.String
		d, err := dateutil.Parse(dateStr)
		if err != nil {
			continue
		}
		e.Date = d
		if t, err := time.Parse(time.RFC3339, createdStr); err == nil {
			e.CreatedAt = t
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// SaveEntry inserts or updates one entry.
func (st *Store) SaveEntry(e model.Entry) error {
	_, err := st.db.Exec(`INSERT OR REPLACE INTO entries (id, date, amount, note, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		e.ID, e.Date.String(), e.Amount, e.Note, e.CreatedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("saving entry: %w", err)
	}
	return nil
}

// DeleteEntry removes an entry by id. Deleting a missing id is not an error.
func (st *Store) DeleteEntry(id string) error {
	_, err := st.db.Exec("DELETE FROM entries WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting entry: %w", err)
	}
	return nil
}

// Reset drops all user data, returning the database to a fresh state.
func (st *Store) Reset() error {
	for _, table := range []string{"settings", "budget_overrides", "rollover_overrides", "entries", "challenges"} {
		if _, err := st.db.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}
	return nil
}
