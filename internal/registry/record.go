package registry

import (
	"sort"
	"strings"

	"github.com/KirkDiggler/rpg-spellindex/internal/entities/dnd5e"
)

// SpellRecord is one unique spell. The attribute core is fixed at creation;
// reference partitions and class sets are only changed by the Registry.
type SpellRecord struct {
	key        dnd5e.EntityKey
	name       string
	level      int
	school     dnd5e.School
	ritual     bool
	components dnd5e.Components
	attackType dnd5e.AttackType

	baseReferences     map[dnd5e.EntityKey]dnd5e.Descriptor
	expandedReferences map[dnd5e.EntityKey]dnd5e.Descriptor

	classes         map[string]struct{}
	classesExpanded map[string]struct{}
}

func newSpellRecord(key dnd5e.EntityKey) *SpellRecord {
	return &SpellRecord{
		key:                key,
		school:             dnd5e.SchoolNone,
		baseReferences:     make(map[dnd5e.EntityKey]dnd5e.Descriptor),
		expandedReferences: make(map[dnd5e.EntityKey]dnd5e.Descriptor),
		classes:            make(map[string]struct{}),
		classesExpanded:    make(map[string]struct{}),
	}
}

// Key returns the spell key
func (r *SpellRecord) Key() dnd5e.EntityKey { return r.key }

// Name returns the display name, falling back to the key's name segment
func (r *SpellRecord) Name() string {
	if r.name != "" {
		return r.name
	}
	return r.key.Name()
}

// Level returns the spell level, 0 for cantrips
func (r *SpellRecord) Level() int { return r.level }

// School returns the school, SchoolNone when the code was not recognized
func (r *SpellRecord) School() dnd5e.School { return r.school }

// Ritual reports whether the spell can be cast as a ritual
func (r *SpellRecord) Ritual() bool { return r.ritual }

// Components returns the casting components
func (r *SpellRecord) Components() dnd5e.Components { return r.components }

// AttackType returns the attack flags
func (r *SpellRecord) AttackType() dnd5e.AttackType { return r.attackType }

// BaseReferences returns a copy of the base grant partition
func (r *SpellRecord) BaseReferences() map[dnd5e.EntityKey]dnd5e.Descriptor {
	return copyPartition(r.baseReferences)
}

// ExpandedReferences returns a copy of the expanded grant partition
func (r *SpellRecord) ExpandedReferences() map[dnd5e.EntityKey]dnd5e.Descriptor {
	return copyPartition(r.expandedReferences)
}

// ReferencingKeys returns every entity key in either partition, sorted
func (r *SpellRecord) ReferencingKeys() []dnd5e.EntityKey {
	seen := make(map[dnd5e.EntityKey]struct{}, len(r.baseReferences)+len(r.expandedReferences))
	for key := range r.baseReferences {
		seen[key] = struct{}{}
	}
	for key := range r.expandedReferences {
		seen[key] = struct{}{}
	}
	keys := make([]dnd5e.EntityKey, 0, len(seen))
	for key := range seen {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// Reference returns the descriptor for entityKey, base partition first
func (r *SpellRecord) Reference(entityKey dnd5e.EntityKey) (dnd5e.Descriptor, bool) {
	if d, ok := r.baseReferences[entityKey]; ok {
		return d, true
	}
	d, ok := r.expandedReferences[entityKey]
	return d, ok
}

// Classes returns the lowercase class names granting this spell, sorted
func (r *SpellRecord) Classes() []string {
	return sortedSet(r.classes)
}

// ClassesExpanded returns the class names granting this spell by expansion
func (r *SpellRecord) ClassesExpanded() []string {
	return sortedSet(r.classesExpanded)
}

// HasClass reports whether name is among the granting classes, ignoring case
func (r *SpellRecord) HasClass(name string) bool {
	_, ok := r.classes[strings.ToLower(name)]
	return ok
}

// HasExpandedClass reports whether name grants this spell by expansion
func (r *SpellRecord) HasExpandedClass(name string) bool {
	_, ok := r.classesExpanded[strings.ToLower(name)]
	return ok
}

func (r *SpellRecord) partition(expanded bool) map[dnd5e.EntityKey]dnd5e.Descriptor {
	if expanded {
		return r.expandedReferences
	}
	return r.baseReferences
}

func copyPartition(in map[dnd5e.EntityKey]dnd5e.Descriptor) map[dnd5e.EntityKey]dnd5e.Descriptor {
	out := make(map[dnd5e.EntityKey]dnd5e.Descriptor, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func sortedSet(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
