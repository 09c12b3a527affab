package registry

import (
	"sort"

	"github.com/KirkDiggler/rpg-spellindex/internal/entities/dnd5e"
	"github.com/KirkDiggler/rpg-spellindex/internal/errors"
)

// Store owns every SpellRecord of a run. Other components refer to records
// by key only.
type Store struct {
	records     map[dnd5e.EntityKey]*SpellRecord
	diagnostics *Diagnostics
}

// NewStore creates an empty store reporting to diagnostics
func NewStore(diagnostics *Diagnostics) *Store {
	if diagnostics == nil {
		diagnostics = NewDiagnostics()
	}
	return &Store{
		records:     make(map[dnd5e.EntityKey]*SpellRecord),
		diagnostics: diagnostics,
	}
}

// GetOrCreate returns the record for key, building it from bundle when it
// does not exist yet. An existing record is returned untouched and bundle is
// ignored. Unknown school codes and levels are recorded as issues and
// defaulted; this never fails.
func (s *Store) GetOrCreate(key dnd5e.EntityKey, bundle dnd5e.SpellBundle) *SpellRecord {
	if record, ok := s.records[key]; ok {
		return record
	}

	record := newSpellRecord(key)
	record.name = bundle.Name
	record.ritual = bundle.Ritual
	record.components = bundle.Components
	record.attackType = bundle.AttackTypes

	if level, ok := dnd5e.ParseSpellLevel(bundle.Level); ok {
		record.level = level
	} else {
		s.diagnostics.Record(errors.InvalidSpellLevel(key.String(), bundle.Level))
	}

	if school, ok := dnd5e.SchoolFromCode(bundle.School); ok {
		record.school = school
	} else {
		s.diagnostics.Record(errors.UnknownSchoolCode(key.String(), bundle.School))
	}

	s.records[key] = record
	return record
}

// Get returns an existing record
func (s *Store) Get(key dnd5e.EntityKey) (*SpellRecord, bool) {
	record, ok := s.records[key]
	return record, ok
}

// Keys returns every spell key, sorted
func (s *Store) Keys() []dnd5e.EntityKey {
	keys := make([]dnd5e.EntityKey, 0, len(s.records))
	for key := range s.records {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// Len returns the number of records
func (s *Store) Len() int {
	return len(s.records)
}
