package field

import (
	"fmt"
	"strings"
)

// Event categories.
const (
	CatLifecycle = "lifecycle"
	CatSurface   = "surface"
	CatStore     = "store"
	CatConfig    = "config"
	CatFrame     = "frame"
)

// EventEntry is one recorded field event.
type EventEntry struct {
	Frame    int
	Category string  // lifecycle, surface, store, config, frame
	Key      string  // specific event name within the category
	Value    string  // human-readable detail
	NumVal   float64 // optional numeric value for threshold checks
}

// String formats the entry as a fixed-width log line.
//
//	[F=0042] surface   resize           800x600@2
func (e EventEntry) String() string {
	return fmt.Sprintf("[F=%04d] %-9s %-16s %s", e.Frame, e.Category, e.Key, e.Value)
}

// EventLog collects structured field events. It is unbounded and
// machine-readable; hosts show the tail, tests filter it.
// A nil *EventLog discards everything.
type EventLog struct {
	entries []EventEntry
	verbose bool
}

// NewEventLog creates an EventLog. If verbose is true, per-frame entries are
// recorded too.
func NewEventLog(verbose bool) *EventLog {
	return &EventLog{verbose: verbose}
}

// Add records a new entry.
func (l *EventLog) Add(frame int, category, key, value string, numVal float64) {
	if l == nil {
		return
	}
	l.entries = append(l.entries, EventEntry{
		Frame:    frame,
		Category: category,
		Key:      key,
		Value:    value,
		NumVal:   numVal,
	})
}

// AddVerbose records an entry only when verbose mode is on.
func (l *EventLog) AddVerbose(frame int, category, key, value string, numVal float64) {
	if l == nil || !l.verbose {
		return
	}
	l.Add(frame, category, key, value, numVal)
}

// Entries returns all recorded entries.
func (l *EventLog) Entries() []EventEntry {
	if l == nil {
		return nil
	}
	return l.entries
}

// Filter returns entries matching the given category and/or key.
// Pass empty string to match any value for that field.
func (l *EventLog) Filter(category, key string) []EventEntry {
	var out []EventEntry
	for _, e := range l.Entries() {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		out = append(out, e)
	}
	return out
}

// Count returns how many entries match the given category and key.
func (l *EventLog) Count(category, key string) int {
	return len(l.Filter(category, key))
}

// LastOf returns the most recent entry matching category+key, or false if none.
func (l *EventLog) LastOf(category, key string) (EventEntry, bool) {
	entries := l.Filter(category, key)
	if len(entries) == 0 {
		return EventEntry{}, false
	}
	return entries[len(entries)-1], true
}

// HasEntry returns true if at least one entry matches category, key, and value substring.
func (l *EventLog) HasEntry(category, key, valueSubstr string) bool {
	for _, e := range l.Entries() {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		if valueSubstr != "" && !strings.Contains(e.Value, valueSubstr) {
			continue
		}
		return true
	}
	return false
}

// Tail returns the last n entries.
func (l *EventLog) Tail(n int) []EventEntry {
	entries := l.Entries()
	if n <= 0 {
		return nil
	}
	if len(entries) > n {
		entries = entries[len(entries)-n:]
	}
	return entries
}

// Format returns the full log as a single string.
func (l *EventLog) Format() string {
	var sb strings.Builder
	for _, e := range l.Entries() {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}
