// Package codes holds the lookup tables used to render upstream enum values.
package codes

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

const (
	TableStatus = "status"
	TableGender = "gender"
	TableRace   = "race"
)

var statuses = map[string]string{
	"ready":       "зарегистрирована",
	"created":     "новая",
	"cancelled":   "отменена",
	"transferred": "передана другому участнику",
	"locked":      "оплачивается",
}

var genders = map[string]string{
	"male":   "М",
	"female": "Ж",
}

// UnmappedCodeError means upstream sent a value none of the tables knows.
type UnmappedCodeError struct {
	Table string
	Code  string
}

func (e *UnmappedCodeError) Error() string {
	return fmt.Sprintf("unmapped %s code %q", e.Table, e.Code)
}

func Status(code string) (string, error) {
	return lookup(statuses, TableStatus, code)
}

func Gender(code string) (string, error) {
	return lookup(genders, TableGender, code)
}

func lookup(m map[string]string, table, code string) (string, error) {
	v, ok := m[code]
	if !ok {
		return "", &UnmappedCodeError{Table: table, Code: code}
	}
	return v, nil
}

// RaceTable maps race UUIDs to distance labels. It is read-only once built.
type RaceTable struct {
	labels map[uuid.UUID]string
}

// NewRaceTable validates every key as a UUID and every label as non-empty.
func NewRaceTable(raw map[string]string) (*RaceTable, error) {
	t := &RaceTable{labels: make(map[uuid.UUID]string, len(raw))}
	for k, v := range raw {
		id, err := uuid.Parse(strings.TrimSpace(k))
		if err != nil {
			return nil, fmt.Errorf("race table key %q: %w", k, err)
		}
		label := strings.TrimSpace(v)
		if label == "" {
			return nil, fmt.Errorf("race table key %q: empty label", k)
		}
		t.labels[id] = label
	}
	return t, nil
}

// ParseRaceTable reads "uuid=label" pairs separated by commas.
func ParseRaceTable(raw string) (*RaceTable, error) {
	m := map[string]string{}
	for _, p := range strings.Split(raw, ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		k, v, ok := strings.Cut(p, "=")
		if !ok {
			return nil, fmt.Errorf("race table entry %q: want uuid=label", p)
		}
		if _, dup := m[strings.TrimSpace(k)]; dup {
			return nil, fmt.Errorf("race table entry %q: duplicate uuid", p)
		}
		m[strings.TrimSpace(k)] = v
	}
	return NewRaceTable(m)
}

func (t *RaceTable) Distance(raceID string) (string, error) {
	id, err := uuid.Parse(raceID)
	if err != nil || t == nil {
		return "", &UnmappedCodeError{Table: TableRace, Code: raceID}
	}
	label, ok := t.labels[id]
	if !ok {
		return "", &UnmappedCodeError{Table: TableRace, Code: raceID}
	}
	return label, nil
}

func (t *RaceTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.labels)
}

// Labels returns the distance labels in a stable order.
func (t *RaceTable) Labels() []string {
	if t == nil {
		return nil
	}
	out := lo.Values(t.labels)
	sort.Strings(out)
	return out
}
