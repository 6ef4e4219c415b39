package catcher

import (
	"fmt"
	"strings"
)

// SimLogEntry is one recorded event during an episode.
type SimLogEntry struct {
	Step     int
	Subject  string  // "B7" for a ball, "cart", or "--" for episode events
	Category string  // ball, cart, sensor, episode
	Key      string  // specific event name within the category
	Value    string  // human-readable detail
	NumVal   float64 // optional numeric value for threshold checks
}

// String formats the entry as a fixed-width log line.
//
//	[S=042] B7   ball      caught           at x=312.4 cart=300.0
func (e SimLogEntry) String() string {
	return fmt.Sprintf("[S=%03d] %-4s %-9s %-16s %s",
		e.Step, e.Subject, e.Category, e.Key, e.Value)
}

// SimLog collects structured events while an Env runs. It is unbounded and
// machine-readable; attach one with WithSimLog.
type SimLog struct {
	entries []SimLogEntry
	verbose bool
}

// NewSimLog creates a SimLog. If verbose is true, per-step cart position and
// sensor entries are also recorded.
func NewSimLog(verbose bool) *SimLog {
	return &SimLog{verbose: verbose}
}

// Add records a new entry.
func (sl *SimLog) Add(step int, subject, category, key, value string, numVal float64) {
	sl.entries = append(sl.entries, SimLogEntry{
		Step:     step,
		Subject:  subject,
		Category: category,
		Key:      key,
		Value:    value,
		NumVal:   numVal,
	})
}

// AddVerbose records an entry only when verbose mode is on.
func (sl *SimLog) AddVerbose(step int, subject, category, key, value string, numVal float64) {
	if !sl.verbose {
		return
	}
	sl.Add(step, subject, category, key, value, numVal)
}

// Verbose reports whether per-step entries are recorded.
func (sl *SimLog) Verbose() bool {
	return sl.verbose
}

// Entries returns all recorded entries.
func (sl *SimLog) Entries() []SimLogEntry {
	return sl.entries
}

// Reset drops all entries.
func (sl *SimLog) Reset() {
	sl.entries = sl.entries[:0]
}

// Filter returns entries matching the given category and/or key.
// Pass empty string to match any value for that field.
func (sl *SimLog) Filter(category, key string) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.entries {
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

// FilterSubject returns entries for one subject label.
func (sl *SimLog) FilterSubject(subject string) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.entries {
		if e.Subject == subject {
			out = append(out, e)
		}
	}
	return out
}

// FilterStepRange returns entries within [fromStep, toStep] inclusive.
func (sl *SimLog) FilterStepRange(fromStep, toStep int) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.entries {
		if e.Step >= fromStep && e.Step <= toStep {
			out = append(out, e)
		}
	}
	return out
}

// CountCategory returns how many entries match the given category and key.
func (sl *SimLog) CountCategory(category, key string) int {
	return len(sl.Filter(category, key))
}

// LastOf returns the most recent entry matching category+key, or false if none.
func (sl *SimLog) LastOf(category, key string) (SimLogEntry, bool) {
	entries := sl.Filter(category, key)
	if len(entries) == 0 {
		return SimLogEntry{}, false
	}
	return entries[len(entries)-1], true
}

// HasEntry returns true if at least one entry matches category, key, and value substring.
func (sl *SimLog) HasEntry(category, key, valueSubstr string) bool {
	for _, e := range sl.entries {
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

// Format returns the full log as a single string.
func (sl *SimLog) Format() string {
	var sb strings.Builder
	for _, e := range sl.entries {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// FormatRange returns a log string filtered to a step range.
func (sl *SimLog) FormatRange(fromStep, toStep int) string {
	var sb strings.Builder
	for _, e := range sl.FilterStepRange(fromStep, toStep) {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

func ballLabel(id BallID) string {
	return fmt.Sprintf("B%d", id)
}
