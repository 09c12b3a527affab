// Package registry holds the spell records of one indexing run and the grants
// linking them to the catalog entities that provide access to them.
//
// A Registry is built by a single goroutine. Once the scan is done it is only
// read, and any number of goroutines may read it at once.
package registry

import (
	"github.com/KirkDiggler/rpg-spellindex/internal/catalog"
	"github.com/KirkDiggler/rpg-spellindex/internal/entities/dnd5e"
	"github.com/KirkDiggler/rpg-spellindex/internal/errors"
)

// View is the read-only surface the aggregation engine needs
type View interface {
	// Records returns every spell record sorted by key
	Records() []*SpellRecord

	// Entity resolves a referencing entity for display
	Entity(key dnd5e.EntityKey) (catalog.Entity, bool)
}

// Config holds the dependencies of a Registry
type Config struct {
	Catalog catalog.Catalog

	// Diagnostics receives non-fatal issues; a fresh collector is used if nil
	Diagnostics *Diagnostics

	// Policy resolves competing descriptors; FirstSpecificWins if nil
	Policy ConflictPolicy
}

// Validate ensures required dependencies are set and fills defaults
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}

	vb := errors.NewValidationBuilder()
	if c.Catalog == nil {
		vb.RequiredField("Catalog")
	}
	if err := vb.Build(); err != nil {
		return err
	}

	if c.Diagnostics == nil {
		c.Diagnostics = NewDiagnostics()
	}
	if c.Policy == nil {
		c.Policy = FirstSpecificWins{}
	}
	return nil
}

// Registry records grants between spells and referencing entities
type Registry struct {
	catalog     catalog.Catalog
	store       *Store
	policy      ConflictPolicy
	diagnostics *Diagnostics
}

// New creates an empty registry for one run
func New(cfg *Config) (*Registry, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Registry{
		catalog:     cfg.Catalog,
		store:       NewStore(cfg.Diagnostics),
		policy:      cfg.Policy,
		diagnostics: cfg.Diagnostics,
	}, nil
}

// Diagnostics returns the run's issue collector
func (r *Registry) Diagnostics() *Diagnostics {
	return r.diagnostics
}

// Policy returns the active conflict policy
func (r *Registry) Policy() ConflictPolicy {
	return r.policy
}

// EnsureSpell creates the record for spellKey from its catalog bundle. It
// lets spells nobody grants still show up in the level view. Returns false
// and records an issue when the spell is not in the catalog.
func (r *Registry) EnsureSpell(spellKey dnd5e.EntityKey) (*SpellRecord, bool) {
	if record, ok := r.store.Get(spellKey); ok {
		return record, true
	}

	bundle, ok := r.catalog.SpellBundle(spellKey)
	if !ok {
		r.diagnostics.Record(errors.MissingReferencedEntity(spellKey.String(), spellKey.String()))
		return nil, false
	}
	return r.store.GetOrCreate(spellKey, *bundle), true
}

// AddReference records that entityKey grants spellKey. descriptorText is
// parsed with ParseDescriptor; unknown syntax is reported once and treated
// as a bare grant. Unresolvable keys are reported and the call does nothing.
func (r *Registry) AddReference(spellKey, entityKey dnd5e.EntityKey, descriptorText string, expanded bool) {
	descriptor, issue := ParseDescriptor(entityKey, descriptorText, expanded)
	if issue != nil {
		r.diagnostics.recordDescriptorOnce(descriptorText, issue)
	}
	r.AddDescriptor(spellKey, descriptor)
}

// AddDescriptor stores an already parsed descriptor. The partition is chosen
// by descriptor.Expanded.
func (r *Registry) AddDescriptor(spellKey dnd5e.EntityKey, descriptor dnd5e.Descriptor) {
	entityKey := descriptor.EntityKey

	entity, ok := r.catalog.Lookup(entityKey)
	if !ok || !entity.Type().IsReferencing() {
		r.diagnostics.Record(errors.MissingReferencedEntity(spellKey.String(), entityKey.String()))
		return
	}

	record, ok := r.EnsureSpell(spellKey)
	if !ok {
		return
	}

	partition := record.partition(descriptor.Expanded)
	keep := descriptor
	if existing, found := partition[entityKey]; found {
		var conflict bool
		keep, conflict = r.policy.Resolve(existing, descriptor)
		if conflict {
			r.diagnostics.Record(errors.AmbiguousSpecificOverwrite(spellKey.String(), entityKey.String()).
				WithMeta("policy", r.policy.Name()))
		}
	}
	partition[entityKey] = keep

	if entity.Type() == dnd5e.EntityTypeClass {
		name := entityKey.Name()
		record.classes[name] = struct{}{}
		if descriptor.Expanded {
			record.classesExpanded[name] = struct{}{}
		}
	}
}

// GetReference returns the stored descriptor for the pair, looking in the
// base partition before the expanded one.
func (r *Registry) GetReference(spellKey, entityKey dnd5e.EntityKey) (dnd5e.Descriptor, bool) {
	record, ok := r.store.Get(spellKey)
	if !ok {
		return dnd5e.Descriptor{}, false
	}
	return record.Reference(entityKey)
}

// Record returns the record for spellKey
func (r *Registry) Record(spellKey dnd5e.EntityKey) (*SpellRecord, bool) {
	return r.store.Get(spellKey)
}

// Records implements View
func (r *Registry) Records() []*SpellRecord {
	keys := r.store.Keys()
	out := make([]*SpellRecord, 0, len(keys))
	for _, key := range keys {
		record, _ := r.store.Get(key)
		out = append(out, record)
	}
	return out
}

// Entity implements View
func (r *Registry) Entity(key dnd5e.EntityKey) (catalog.Entity, bool) {
	return r.catalog.Lookup(key)
}

// Len returns the number of spell records
func (r *Registry) Len() int {
	return r.store.Len()
}

// ClassNames returns every class name found on any record, sorted
func (r *Registry) ClassNames() []string {
	seen := make(map[string]struct{})
	for _, key := range r.store.Keys() {
		record, _ := r.store.Get(key)
		for name := range record.classes {
			seen[name] = struct{}{}
		}
	}
	return sortedSet(seen)
}
