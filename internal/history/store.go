package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/questclock/questclock/internal/log"
)

// ErrIndexOutOfRange is returned by Delete for an index outside the log.
var ErrIndexOutOfRange = errors.New("history index out of range")

// Store reads and rewrites the history file. Every read re-parses the
// whole file and every write rewrites it; there is no locking, so two
// processes sharing a file can lose each other's writes.
type Store struct {
	path string
	sink log.Sink

	readFailed bool // store_read_failed already logged for the current failure
}

// NewStore creates a Store backed by the JSON file at path. sink may be nil.
func NewStore(path string, sink log.Sink) *Store {
	return &Store{path: path, sink: sink}
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Read parses the history file. A missing file is an empty history.
func (s *Store) Read() ([]Record, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return []Record{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read history: %w", err)
	}

	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse history: %w", err)
	}
	if records == nil {
		records = []Record{}
	}
	return records, nil
}

// Load returns the history, most recent first. Read and parse failures
// yield an empty history and are logged once until a read succeeds again.
func (s *Store) Load() []Record {
	records, err := s.Read()
	if err != nil {
		if !s.readFailed {
			log.Emit(s.sink, log.LogEvent{
				Event: log.EventStoreReadFailed,
				Path:  s.path,
				Error: err.Error(),
			})
		}
		s.readFailed = true
		return []Record{}
	}
	s.readFailed = false
	return records
}

// Append inserts r at the front of the history and drops whatever falls
// beyond MaxRecords.
func (s *Store) Append(r Record) error {
	records := s.Load()
	records = append([]Record{r}, records...)
	if len(records) > MaxRecords {
		records = records[:MaxRecords]
	}
	if err := s.write(records); err != nil {
		log.Emit(s.sink, log.LogEvent{
			Event:   log.EventStoreWriteFailed,
			Path:    s.path,
			Project: r.Project,
			Task:    r.Task,
			Error:   err.Error(),
		})
		return err
	}
	return nil
}

// Delete removes the record at index, preserving the order of the rest.
func (s *Store) Delete(index int) error {
	records := s.Load()
	if index < 0 || index >= len(records) {
		return ErrIndexOutOfRange
	}
	records = append(records[:index], records[index+1:]...)
	if err := s.write(records); err != nil {
		log.Emit(s.sink, log.LogEvent{
			Event: log.EventStoreWriteFailed,
			Path:  s.path,
			Index: index,
			Error: err.Error(),
		})
		return err
	}
	log.Emit(s.sink, log.LogEvent{Event: log.EventHistoryDeleted, Path: s.path, Index: index})
	return nil
}

// Projects returns the distinct non-empty project labels, sorted.
func (s *Store) Projects() []string {
	return uniqueSorted(s.Load(), func(r Record) (string, bool) {
		return r.Project, true
	})
}

// Tasks returns the distinct non-empty task labels recorded under project, sorted.
func (s *Store) Tasks(project string) []string {
	return uniqueSorted(s.Load(), func(r Record) (string, bool) {
		return r.Task, r.Project == project
	})
}

func uniqueSorted(records []Record, pick func(Record) (string, bool)) []string {
	seen := make(map[string]bool)
	out := []string{}
	for _, r := range records {
		v, ok := pick(r)
		if !ok || v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// write replaces the history file via a temp file and rename.
func (s *Store) write(records []Record) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create history dir: %w", err)
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal history: %w", err)
	}

	tmpFile, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp")
	if err != nil {
		return fmt.Errorf("create temp history file: %w", err)
	}
	name := tmpFile.Name()
	_, err = tmpFile.Write(data)
	if err1 := tmpFile.Close(); err1 != nil && err == nil {
		err = err1
	}
	if err != nil {
		os.Remove(name)
		return fmt.Errorf("write temp history file: %w", err)
	}

	if err := os.Rename(name, s.path); err != nil {
		os.Remove(name)
		return fmt.Errorf("rename history file: %w", err)
	}
	return nil
}
