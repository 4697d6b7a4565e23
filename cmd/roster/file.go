package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jacentio/roster/store"
)

// entry is one record as written in a record file.
type entry struct {
	Key        string `yaml:"key"`
	Name       string `yaml:"name"`
	Branch     string `yaml:"branch,omitempty"`
	Level      string `yaml:"level"`
	Components int    `yaml:"components,omitempty"`
	Scores     []int  `yaml:"scores,flow"`
}

func readEntries(path string) ([]entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read record file: %w", err)
	}
	var entries []entry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return entries, nil
}

func writeEntries(path string, s *store.Store) error {
	entries := make([]entry, 0, s.Len())
	for _, r := range s.All() {
		entries = append(entries, entryFor(r))
	}
	data, err := yaml.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encode records: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write record file: %w", err)
	}
	return nil
}

func entryFor(r *store.Record) entry {
	return entry{
		Key:    r.Key(),
		Name:   r.Name(),
		Branch: r.Branch(),
		Level:  strings.ToLower(r.Level().String()),
		Scores: r.Scores(),
	}
}

// add validates e and appends it to s.
func (e entry) add(s *store.Store) (*store.Record, error) {
	level, err := parseLevel(e.Level)
	if err != nil {
		return nil, err
	}
	n := len(e.Scores)
	if e.Components > 0 {
		n = e.Components
	}
	r, err := store.NewRecordN(e.Key, e.Name, e.Branch, level, n, e.Scores)
	if err != nil {
		return nil, err
	}
	if err := s.Append(r); err != nil {
		return nil, err
	}
	return r, nil
}

// parseLevel accepts a level name in any case or its number. An empty level
// means undergraduate.
func parseLevel(s string) (store.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "undergraduate", "ug":
		return store.Undergraduate, nil
	case "graduate", "pg":
		return store.Graduate, nil
	case "doctoral", "phd":
		return store.Doctoral, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || !store.Level(n).Valid() {
		return 0, fmt.Errorf("%w: %q", store.ErrInvalidLevel, s)
	}
	return store.Level(n), nil
}
