// Package aggregation derives the list-view groupings of a finished spell
// registry. Every builder only reads the registry, so builders may run at
// the same time.
package aggregation

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/KirkDiggler/rpg-spellindex/internal/entities/dnd5e"
	"github.com/KirkDiggler/rpg-spellindex/internal/errors"
	"github.com/KirkDiggler/rpg-spellindex/internal/registry"
)

// Dimension names the axis a Group was built along
type Dimension string

// Dimension constants
const (
	DimensionClass  Dimension = "class"
	DimensionSchool Dimension = "school"
	DimensionEntity Dimension = "entity"
)

// Entry is one spell in a level bucket
type Entry struct {
	SpellKey  dnd5e.EntityKey `json:"spell"`
	Name      string          `json:"name"`
	Qualifier string          `json:"qualifier,omitempty"`
	Expanded  bool            `json:"expanded,omitempty"`
}

// LevelEntries holds one sorted bucket per spell level, cantrips first
type LevelEntries [dnd5e.SpellLevelCount][]Entry

// Keys returns the spell keys of one bucket in order
func (l *LevelEntries) Keys(level int) []dnd5e.EntityKey {
	if level < dnd5e.MinSpellLevel || level > dnd5e.MaxSpellLevel {
		return nil
	}
	keys := make([]dnd5e.EntityKey, len(l[level]))
	for i, e := range l[level] {
		keys[i] = e.SpellKey
	}
	return keys
}

// Len counts entries across all buckets
func (l *LevelEntries) Len() int {
	n := 0
	for _, bucket := range l {
		n += len(bucket)
	}
	return n
}

// Group is the restriction of the level view to one dimension value
type Group struct {
	Dimension   Dimension        `json:"dimension"`
	Value       string           `json:"value"`
	DisplayName string           `json:"display_name"`
	EntityType  dnd5e.EntityType `json:"entity_type,omitempty"`
	Levels      LevelEntries     `json:"levels"`
}

// Groupings is the full output handed to a renderer
type Groupings struct {
	All      LevelEntries              `json:"all"`
	ByClass  map[string]Group          `json:"by_class"`
	BySchool map[dnd5e.School]Group    `json:"by_school"`
	ByEntity map[dnd5e.EntityKey]Group `json:"by_entity"`
}

// Config holds the dependencies of an Engine
type Config struct {
	View registry.View
}

// Validate ensures the view is set
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	vb := errors.NewValidationBuilder()
	if c.View == nil {
		vb.RequiredField("View")
	}
	return vb.Build()
}

// Engine builds groupings from a registry view
type Engine struct {
	view registry.View
}

// New creates an engine over a finished registry
func New(cfg *Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Engine{view: cfg.View}, nil
}

// snapshot is the per-call read of the view: records by key plus the
// sorted level view every other grouping restricts.
type snapshot struct {
	records map[dnd5e.EntityKey]*registry.SpellRecord
	levels  LevelEntries
	namer   *namer
}

func (e *Engine) snapshot() *snapshot {
	n := newNamer()
	records := e.view.Records()

	snap := &snapshot{
		records: make(map[dnd5e.EntityKey]*registry.SpellRecord, len(records)),
		namer:   n,
	}

	sortKeys := make(map[dnd5e.EntityKey]string, len(records))
	for _, record := range records {
		snap.records[record.Key()] = record
		sortKeys[record.Key()] = n.sortKey(record.Name())
		level := record.Level()
		snap.levels[level] = append(snap.levels[level], Entry{
			SpellKey: record.Key(),
			Name:     record.Name(),
		})
	}

	for level := range snap.levels {
		bucket := snap.levels[level]
		sort.Slice(bucket, func(i, j int) bool {
			a, b := sortKeys[bucket[i].SpellKey], sortKeys[bucket[j].SpellKey]
			if a != b {
				return a < b
			}
			return bucket[i].SpellKey < bucket[j].SpellKey
		})
	}
	return snap
}

// restrict keeps the entries accepted by keep, in level view order. keep
// may rewrite the entry to attach annotations.
func (s *snapshot) restrict(keep func(record *registry.SpellRecord, e Entry) (Entry, bool)) LevelEntries {
	var out LevelEntries
	for level, bucket := range s.levels {
		for _, e := range bucket {
			if annotated, ok := keep(s.records[e.SpellKey], e); ok {
				out[level] = append(out[level], annotated)
			}
		}
	}
	return out
}

// ByLevel places every record in the bucket of its level. Buckets are
// ordered by case-insensitive display name, then by key.
func (e *Engine) ByLevel() LevelEntries {
	return e.snapshot().levels
}

// ByClass groups spells by every class name found on any record. Entries
// are marked Expanded when the class reaches the spell by expansion.
func (e *Engine) ByClass() map[string]Group {
	snap := e.snapshot()

	names := make(map[string]struct{})
	for _, record := range snap.records {
		for _, name := range record.Classes() {
			names[name] = struct{}{}
		}
	}

	out := make(map[string]Group, len(names))
	for name := range names {
		out[name] = Group{
			Dimension:   DimensionClass,
			Value:       name,
			DisplayName: snap.namer.className(name),
			EntityType:  dnd5e.EntityTypeClass,
			Levels: snap.restrict(func(record *registry.SpellRecord, entry Entry) (Entry, bool) {
				if !record.HasClass(name) {
					return entry, false
				}
				entry.Expanded = record.HasExpandedClass(name)
				return entry, true
			}),
		}
	}
	return out
}

// ByClassName returns the group for one class, matching case-insensitively
func (e *Engine) ByClassName(name string) (Group, bool) {
	group, ok := e.ByClass()[strings.ToLower(name)]
	return group, ok
}

// BySchool groups spells by school. Spells with an unrecognized school code
// land in the SchoolNone group.
func (e *Engine) BySchool() map[dnd5e.School]Group {
	snap := e.snapshot()

	schools := make(map[dnd5e.School]struct{})
	for _, record := range snap.records {
		schools[record.School()] = struct{}{}
	}

	out := make(map[dnd5e.School]Group, len(schools))
	for school := range schools {
		out[school] = Group{
			Dimension:   DimensionSchool,
			Value:       string(school),
			DisplayName: snap.namer.schoolName(school),
			Levels: snap.restrict(func(record *registry.SpellRecord, entry Entry) (Entry, bool) {
				return entry, record.School() == school
			}),
		}
	}
	return out
}

// ByOtherEntity groups spells by every non-class referencing entity. Each
// entry carries the qualifier derived from that entity's descriptor. When an
// entity grants a spell both ways the base descriptor is shown, as with
// Registry.GetReference.
func (e *Engine) ByOtherEntity() map[dnd5e.EntityKey]Group {
	snap := e.snapshot()

	keys := make(map[dnd5e.EntityKey]struct{})
	for _, record := range snap.records {
		for _, key := range record.ReferencingKeys() {
			if !key.IsClass() {
				keys[key] = struct{}{}
			}
		}
	}

	out := make(map[dnd5e.EntityKey]Group, len(keys))
	for key := range keys {
		displayName := key.Name()
		if entity, ok := e.view.Entity(key); ok {
			displayName = entity.DisplayName()
		} else {
			slog.Warn("Referencing entity missing from catalog at aggregation", "entity", key)
		}

		out[key] = Group{
			Dimension:   DimensionEntity,
			Value:       key.String(),
			DisplayName: displayName,
			EntityType:  key.Type(),
			Levels: snap.restrict(func(record *registry.SpellRecord, entry Entry) (Entry, bool) {
				d, ok := record.Reference(key)
				if !ok {
					return entry, false
				}
				entry.Qualifier = Qualifier(d)
				entry.Expanded = d.Expanded
				return entry, true
			}),
		}
	}
	return out
}

// BuildAll runs every builder concurrently and assembles the groupings
func (e *Engine) BuildAll(ctx context.Context) (*Groupings, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, "aggregation canceled")
	}

	out := &Groupings{}
	var wg sync.WaitGroup
	wg.Add(4)
	go func() {
		defer wg.Done()
		out.All = e.ByLevel()
	}()
	go func() {
		defer wg.Done()
		out.ByClass = e.ByClass()
	}()
	go func() {
		defer wg.Done()
		out.BySchool = e.BySchool()
	}()
	go func() {
		defer wg.Done()
		out.ByEntity = e.ByOtherEntity()
	}()
	wg.Wait()

	slog.Info("Built spell groupings",
		"spells", out.All.Len(),
		"classes", len(out.ByClass),
		"schools", len(out.BySchool),
		"entities", len(out.ByEntity))

	return out, nil
}
