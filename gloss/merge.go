package gloss

import (
	"bufio"
	"io"
	"maps"
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Entry is a gloss together with the notation of its sign.
type Entry struct {
	Gloss    string
	Notation string
}

// Merger collects glossary entries from several lists. Entries are keyed by
// their gloss, ignoring case. Of entries with the same key the one added last
// is kept.
//
// Glossaries list signs on their own, therefore the lane of a sign is
// changed from M (middle lane) to B (no lanes).
type Merger struct {
	caser   cases.Caser
	entries map[string]Entry
}

// NewMerger creates a merger comparing glosses by the casing rules of a
// language.
func NewMerger(lang language.Tag) *Merger {
	return &Merger{
		caser:   cases.Lower(lang),
		entries: make(map[string]Entry),
	}
}

// Len returns the number of distinct entries.
func (m *Merger) Len() int {
	return len(m.entries)
}

// Add reads a list of alternating gloss and notation lines.
func (m *Merger) Add(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	scanner.Split(ScanLines)
	n := 0
	for scanner.Scan() {
		n++
		g := scanner.Text()
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return err
			}
			return &LineError{Line: n, Msg: "gloss without notation"}
		}
		n++
		m.Put(Entry{Gloss: g, Notation: scanner.Text()})
	}
	return scanner.Err()
}

// Put adds a single entry.
func (m *Merger) Put(e Entry) {
	e.Notation = strings.Replace(e.Notation, "M", "B", 1)
	key := m.caser.String(e.Gloss)
	if old, ok := m.entries[key]; ok {
		tracer().Debugf("gloss %q replaces %q", e.Gloss, old.Gloss)
	}
	m.entries[key] = e
}

// Entries returns all entries, sorted by key.
func (m *Merger) Entries() []Entry {
	keys := slices.Sorted(maps.Keys(m.entries))
	entries := make([]Entry, len(keys))
	for i, k := range keys {
		entries[i] = m.entries[k]
	}
	return entries
}

// WriteTo writes the entries as alternating gloss and notation lines, sorted
// by key.
func (m *Merger) WriteTo(w io.Writer) (int64, error) {
	out := bufio.NewWriter(w)
	var n int64
	for _, e := range m.Entries() {
		k, _ := out.WriteString(e.Gloss + "\n" + e.Notation + "\n")
		n += int64(k)
	}
	return n, out.Flush()
}
