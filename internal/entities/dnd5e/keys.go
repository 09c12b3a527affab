package dnd5e

import (
	"fmt"
	"strings"
)

const keySeparator = "|"

// EntityKey identifies a catalog record as "type|name|source", lowercase.
// Spells use the same form with type "spell".
type EntityKey string

// NewEntityKey builds a normalized key
func NewEntityKey(entityType EntityType, name, source string) EntityKey {
	return EntityKey(strings.Join([]string{
		normalize(string(entityType)),
		normalize(name),
		normalize(source),
	}, keySeparator))
}

// SpellKey builds the key for a spell
func SpellKey(name, source string) EntityKey {
	return NewEntityKey(EntityTypeSpell, name, source)
}

// ParseEntityKey normalizes and validates a raw key. It accepts "type|name"
// (no source) as well as the full three-part form.
func ParseEntityKey(raw string) (EntityKey, error) {
	parts := strings.Split(raw, keySeparator)
	if len(parts) < 2 || len(parts) > 3 {
		return "", fmt.Errorf("entity key %q: want type|name|source", raw)
	}
	for i := range parts {
		parts[i] = normalize(parts[i])
	}
	if parts[0] == "" || parts[1] == "" {
		return "", fmt.Errorf("entity key %q: type and name are required", raw)
	}
	if len(parts) == 2 {
		parts = append(parts, "")
	}
	return EntityKey(strings.Join(parts, keySeparator)), nil
}

func (k EntityKey) part(i int) string {
	parts := strings.SplitN(string(k), keySeparator, 3)
	if i >= len(parts) {
		return ""
	}
	return parts[i]
}

// Type returns the entity type segment
func (k EntityKey) Type() EntityType {
	return EntityType(k.part(0))
}

// Name returns the lowercase name segment
func (k EntityKey) Name() string {
	return k.part(1)
}

// Source returns the source segment, possibly empty
func (k EntityKey) Source() string {
	return k.part(2)
}

// IsClass reports whether the key names a class
func (k EntityKey) IsClass() bool {
	return k.Type() == EntityTypeClass
}

func (k EntityKey) String() string {
	return string(k)
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
