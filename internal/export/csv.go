// Package export renders the spending history as CSV. It reads only the
// public DailyStats fields, never engine internals.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strings"

	"suds/internal/dateutil"
	"suds/internal/ledger"
)

var historyHeader = []string{
	"Date",
	"Daily Base Budget",
	"Rollover from Previous Day",
	"Daily Actual Spent",
	"Note",
	"Daily Current Balance",
	"Challenge Saved",
}

// WriteHistory writes one CSV row per relevant day, newest first. Days in
// the future are skipped unless they already carry entries.
func WriteHistory(w io.Writer, stats ledger.StatsMap, today dateutil.Date) error {
	dates := stats.Dates()
	sort.Slice(dates, func(i, j int) bool { return dates[j].Before(dates[i]) })

	cw := csv.NewWriter(w)
	if err := cw.Write(historyHeader); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}

	for _, d := range dates {
		ds := stats.Lookup(d)
		if d.After(today) && len(ds.Entries) == 0 {
			continue
		}

		var notes []string
		for _, e := range ds.Entries {
			if strings.TrimSpace(e.Note) != "" {
				notes = append(notes, e.Note)
			}
		}

		saved := ""
		if ds.IsChallengeDay {
			saved = fmt.Sprintf("%.2f", ds.ChallengeSavedSoFar)
		}

		row := []string{
			ds.Date.String(),
			fmt.Sprintf("%.2f", ds.BaseBudget),
			fmt.Sprintf("%.2f", ds.Rollover),
			fmt.Sprintf("%.2f", ds.Spent),
			strings.Join(notes, "; "),
			fmt.Sprintf("%.2f", ds.Remaining),
			saved,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing csv row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}
