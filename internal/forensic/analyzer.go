// Package forensic evaluates patient timelines against statutory deadlines.
//
// The analyzer is a pure function: no storage, no shared state. Given the
// same set of events it always produces the same results in rule-table
// order, regardless of input order.
package forensic

import (
	"sort"
	"strings"
	"time"
)

// Analyze maps a timeline to one Violation per applicable rule. Rules whose
// required events are absent are omitted; that is not an error. The today
// argument anchors rules that measure against the current date.
func Analyze(events []Event, today time.Time) []Violation {
	in := sortedCopy(events)

	out := make([]Violation, 0, len(ruleTable))
	for _, rule := range ruleTable {
		if v, ok := rule(in, today); ok {
			out = append(out, v)
		}
	}
	return out
}

// sortedCopy orders events by date then id so rule matching is independent
// of caller insertion order.
func sortedCopy(events []Event) []Event {
	out := make([]Event, len(events))
	copy(out, events)
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// daysBetween is the whole-day difference between the calendar dates of a
// and b, ignoring time of day.
func daysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	start := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	end := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(end.Sub(start) / (24 * time.Hour))
}

func firstOfType(events []Event, t EventType) (Event, bool) {
	for _, e := range events {
		if e.Type == t {
			return e, true
		}
	}
	return Event{}, false
}

func firstLabelContains(events []Event, substrs ...string) (Event, bool) {
	for _, e := range events {
		label := strings.ToLower(e.Label)
		for _, s := range substrs {
			if strings.Contains(label, s) {
				return e, true
			}
		}
	}
	return Event{}, false
}

func mentions(e Event, substrs ...string) bool {
	text := strings.ToLower(e.Label + " " + e.Notes)
	for _, s := range substrs {
		if strings.Contains(text, s) {
			return true
		}
	}
	return false
}
