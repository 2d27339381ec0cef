package storage

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// DailyReport summarizes interaction volume since the cutoff: total
// exchanges, distinct users and a per-source breakdown.
func DailyReport(rec Recorder, since time.Time) (string, error) {
	events, err := rec.LoadInteractions()
	if err != nil {
		return "", fmt.Errorf("load interactions: %w", err)
	}

	total := 0
	users := make(map[int64]struct{})
	bySource := make(map[string]int)
	for _, ev := range events {
		if ev.Timestamp.Before(since) {
			continue
		}
		total++
		users[ev.UserID] = struct{}{}
		src := ev.Source
		if src == "" {
			src = "text"
		}
		bySource[src]++
	}

	if total == 0 {
		return "no interactions", nil
	}

	sources := make([]string, 0, len(bySource))
	for src := range bySource {
		sources = append(sources, src)
	}
	sort.Strings(sources)

	var b strings.Builder
	fmt.Fprintf(&b, "%d interactions from %d users", total, len(users))
	parts := make([]string, 0, len(sources))
	for _, src := range sources {
		parts = append(parts, fmt.Sprintf("%s=%d", src, bySource[src]))
	}
	b.WriteString(" (")
	b.WriteString(strings.Join(parts, ", "))
	b.WriteString(")")
	return b.String(), nil
}
