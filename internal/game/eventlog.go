package game

import (
	"fmt"
	"strings"
	"sync"
)

// sceneWide is the entity column for events not tied to one entity.
const sceneWide = "--"

// EventEntry is one recorded dashboard event.
type EventEntry struct {
	Tick   int
	Entity string  // entity id, or sceneWide
	Topic  string  // texture, pointer, health, scene
	Key    string  // specific event name within the topic
	Value  string  // human-readable detail
	NumVal float64 // optional numeric value for threshold checks
}

// String formats the entry as a fixed-width log line.
//
//	[T=042] bank         health   status_change    healthy → warning
func (e EventEntry) String() string {
	return fmt.Sprintf("[T=%03d] %-12s %-8s %-16s %s",
		e.Tick, e.Entity, e.Topic, e.Key, e.Value)
}

// EventLog collects structured events. Unlike ActivityLog (UI ring buffer),
// EventLog is unbounded and machine-readable. Texture loaders settle on
// their own goroutines, so every method locks.
type EventLog struct {
	mu      sync.Mutex
	entries []EventEntry
	tick    int
	verbose bool
}

// NewEventLog creates an EventLog. If verbose is true, hover transitions
// and per-poll health samples are also recorded.
func NewEventLog(verbose bool) *EventLog {
	return &EventLog{verbose: verbose}
}

// SetTick stamps subsequent entries with tick.
func (el *EventLog) SetTick(tick int) {
	el.mu.Lock()
	el.tick = tick
	el.mu.Unlock()
}

// Add records a new entry at the current tick. An empty entity is
// recorded as sceneWide.
func (el *EventLog) Add(entity, topic, key, value string, numVal float64) {
	if entity == "" {
		entity = sceneWide
	}
	el.mu.Lock()
	defer el.mu.Unlock()
	el.entries = append(el.entries, EventEntry{
		Tick:   el.tick,
		Entity: entity,
		Topic:  topic,
		Key:    key,
		Value:  value,
		NumVal: numVal,
	})
}

// AddVerbose records an entry only when verbose mode is on.
func (el *EventLog) AddVerbose(entity, topic, key, value string, numVal float64) {
	if !el.verbose {
		return
	}
	el.Add(entity, topic, key, value, numVal)
}

// Entries returns a copy of all recorded entries.
func (el *EventLog) Entries() []EventEntry {
	el.mu.Lock()
	defer el.mu.Unlock()
	out := make([]EventEntry, len(el.entries))
	copy(out, el.entries)
	return out
}

// Filter returns entries matching the given topic and/or key.
// Pass empty string to match any value for that field.
func (el *EventLog) Filter(topic, key string) []EventEntry {
	var out []EventEntry
	for _, e := range el.Entries() {
		if topic != "" && e.Topic != topic {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		out = append(out, e)
	}
	return out
}

// FilterEntity returns entries for one entity id.
func (el *EventLog) FilterEntity(id string) []EventEntry {
	var out []EventEntry
	for _, e := range el.Entries() {
		if e.Entity == id {
			out = append(out, e)
		}
	}
	return out
}

// Count returns how many entries match the given topic and key.
func (el *EventLog) Count(topic, key string) int {
	return len(el.Filter(topic, key))
}

// LastOf returns the most recent entry matching topic+key, or false if none.
func (el *EventLog) LastOf(topic, key string) (EventEntry, bool) {
	entries := el.Filter(topic, key)
	if len(entries) == 0 {
		return EventEntry{}, false
	}
	return entries[len(entries)-1], true
}

// HasEntry returns true if at least one entry matches topic, key, and value substring.
func (el *EventLog) HasEntry(topic, key, valueSubstr string) bool {
	for _, e := range el.Filter(topic, key) {
		if valueSubstr == "" || strings.Contains(e.Value, valueSubstr) {
			return true
		}
	}
	return false
}

// Format returns the full log as a single string for t.Log output.
func (el *EventLog) Format() string {
	var sb strings.Builder
	for _, e := range el.Entries() {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}
