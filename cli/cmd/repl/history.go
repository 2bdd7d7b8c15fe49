package repl

import (
	"bufio"
	"errors"
	"io/fs"
	"os"
	"slices"
	"strings"
	"sync"
)

// History entries are stored one per line, prefixed by the mode they were
// entered in.
const (
	templatePrefix = "T:"
	commandPrefix  = "C:"
)

// HistoryEntry is a line of input and the mode it was entered in.
type HistoryEntry struct {
	Line string
	Mode inputMode
}

func (e HistoryEntry) String() string {
	if e.Mode == modeCtrl {
		return commandPrefix + e.Line
	}

	return templatePrefix + e.Line
}

func parseHistoryEntry(line string) HistoryEntry {
	if s, ok := strings.CutPrefix(line, commandPrefix); ok {
		return HistoryEntry{Line: s, Mode: modeCtrl}
	}

	s, _ := strings.CutPrefix(line, templatePrefix)

	return HistoryEntry{Line: s, Mode: modeTemplate}
}

// History is the input history of a REPL, persisted to a file.
// A zero-length path keeps the history in memory only.
type History struct {
	path    string
	entries []HistoryEntry
	mu      sync.RWMutex
}

// NewHistory returns an empty history persisted to path.
func NewHistory(path string) *History {
	return &History{path: path}
}

// Load replaces the entries with those stored in the history file.
// A missing file is an empty history.
func (h *History) Load() error {
	if h.path == "" {
		return nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	file, err := os.Open(h.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	if err != nil {
		return err
	}
	defer file.Close()

	h.entries = h.entries[:0]

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			h.entries = append(h.entries, parseHistoryEntry(line))
		}
	}

	return scanner.Err()
}

// Add records line as the most recent entry of mode. An earlier identical
// entry is moved rather than repeated.
func (h *History) Add(line string, mode inputMode) error {
	e := HistoryEntry{Line: strings.TrimSpace(line), Mode: mode}
	if e.Line == "" {
		return nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if n := len(h.entries); n > 0 && h.entries[n-1] == e {
		return nil
	}

	i := slices.Index(h.entries, e)
	if i >= 0 {
		h.entries = slices.Delete(h.entries, i, i+1)
	}

	h.entries = append(h.entries, e)

	if i >= 0 {
		return h.save()
	}

	return h.append(e)
}

// Entry returns the entry at index i, where 0 is the oldest.
func (h *History) Entry(i int) (HistoryEntry, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if i < 0 || i >= len(h.entries) {
		return HistoryEntry{}, ErrOutOfBounds
	}

	return h.entries[i], nil
}

// Len returns the number of entries.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.entries)
}

// Entries returns a copy of every entry, oldest first.
func (h *History) Entries() []HistoryEntry {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return slices.Clone(h.entries)
}

// Search returns the index of the nearest entry of mode found by stepping
// from index from in direction dir (-1 or +1), or -1 if there is none.
func (h *History) Search(from, dir int, mode inputMode) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for i := from + dir; i >= 0 && i < len(h.entries); i += dir {
		if h.entries[i].Mode == mode {
			return i
		}
	}

	return -1
}

// append writes e to the end of the history file.
// Must be called with h.mu held.
func (h *History) append(e HistoryEntry) error {
	if h.path == "" {
		return nil
	}

	file, err := os.OpenFile(h.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return err
	}
	defer file.Close()

	_, err = file.WriteString(e.String() + "\n")

	return err
}

// save rewrites the history file with every entry.
// Must be called with h.mu held.
func (h *History) save() error {
	if h.path == "" {
		return nil
	}

	var b strings.Builder
	for _, e := range h.entries {
		b.WriteString(e.String())
		b.WriteByte('\n')
	}

	return os.WriteFile(h.path, []byte(b.String()), 0o600)
}
