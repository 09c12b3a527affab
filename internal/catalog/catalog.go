// Package catalog is the authoritative store of raw entity records that the
// spell registry resolves keys against.
package catalog

//go:generate mockgen -destination=mock/mock_catalog.go -package=catalogmock github.com/KirkDiggler/rpg-spellindex/internal/catalog Catalog

import (
	"sort"

	"github.com/KirkDiggler/rpg-spellindex/internal/entities/dnd5e"
	"github.com/KirkDiggler/rpg-spellindex/internal/errors"
)

// Entity is any catalog record. Referencing entities (class, subclass, feat,
// background, item, optional feature, race) are distinguished by Type only.
type Entity interface {
	Key() dnd5e.EntityKey
	Type() dnd5e.EntityType
	DisplayName() string
}

// Catalog resolves keys to records. Implementations hold the whole corpus in
// memory; lookups never block.
type Catalog interface {
	// Lookup returns the entity for key, or false when it is not in the catalog
	Lookup(key dnd5e.EntityKey) (Entity, bool)

	// SpellBundle returns the attribute bundle for a spell key
	SpellBundle(key dnd5e.EntityKey) (*dnd5e.SpellBundle, bool)
}

// Record is the concrete catalog entity
type Record struct {
	EntityKey dnd5e.EntityKey `yaml:"key" json:"key"`
	Name      string          `yaml:"name" json:"name"`
}

// Key returns the record key
func (r Record) Key() dnd5e.EntityKey {
	return r.EntityKey
}

// Type returns the record type from its key
func (r Record) Type() dnd5e.EntityType {
	return r.EntityKey.Type()
}

// DisplayName returns the human readable name, falling back to the key name
func (r Record) DisplayName() string {
	if r.Name != "" {
		return r.Name
	}
	return r.EntityKey.Name()
}

// Memory is an in-memory Catalog. It is filled once by a loader and read
// afterwards; it is not safe for concurrent writes.
type Memory struct {
	entities map[dnd5e.EntityKey]Record
	spells   map[dnd5e.EntityKey]*dnd5e.SpellBundle
}

// NewMemory creates an empty in-memory catalog
func NewMemory() *Memory {
	return &Memory{
		entities: make(map[dnd5e.EntityKey]Record),
		spells:   make(map[dnd5e.EntityKey]*dnd5e.SpellBundle),
	}
}

// AddEntity registers a referencing entity. The first record for a key wins;
// later ones are ignored.
func (m *Memory) AddEntity(record Record) error {
	if record.EntityKey == "" {
		return errors.InvalidArgument("entity key is required")
	}
	if !record.Type().IsReferencing() {
		return errors.InvalidArgumentf("entity %s: type %q cannot grant spells", record.EntityKey, record.Type())
	}
	if _, exists := m.entities[record.EntityKey]; exists {
		return nil
	}
	m.entities[record.EntityKey] = record
	return nil
}

// AddSpell registers a spell bundle and the matching spell entity. The first
// bundle for a key wins, so a record built from it matches the store's rule.
func (m *Memory) AddSpell(bundle dnd5e.SpellBundle) error {
	if bundle.Key == "" {
		return errors.InvalidArgument("spell key is required")
	}
	if bundle.Key.Type() != dnd5e.EntityTypeSpell {
		return errors.InvalidArgumentf("spell key %s must have type spell", bundle.Key)
	}
	if _, exists := m.spells[bundle.Key]; exists {
		return nil
	}
	b := bundle
	m.spells[bundle.Key] = &b
	m.entities[bundle.Key] = Record{EntityKey: bundle.Key, Name: bundle.Name}
	return nil
}

// Lookup implements Catalog
func (m *Memory) Lookup(key dnd5e.EntityKey) (Entity, bool) {
	record, ok := m.entities[key]
	if !ok {
		return nil, false
	}
	return record, true
}

// SpellBundle implements Catalog
func (m *Memory) SpellBundle(key dnd5e.EntityKey) (*dnd5e.SpellBundle, bool) {
	bundle, ok := m.spells[key]
	return bundle, ok
}

// Entities returns the referencing entities sorted by key
func (m *Memory) Entities() []Record {
	out := make([]Record, 0, len(m.entities))
	for _, record := range m.entities {
		if record.Type() == dnd5e.EntityTypeSpell {
			continue
		}
		out = append(out, record)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EntityKey < out[j].EntityKey })
	return out
}

// Spells returns the spell bundles sorted by key
func (m *Memory) Spells() []dnd5e.SpellBundle {
	out := make([]dnd5e.SpellBundle, 0, len(m.spells))
	for _, bundle := range m.spells {
		out = append(out, *bundle)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}
