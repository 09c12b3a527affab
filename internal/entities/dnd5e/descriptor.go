package dnd5e

// Descriptor is one grant from an entity to a spell. At most one of the
// specificity fields is set in practice.
type Descriptor struct {
	EntityKey EntityKey

	// ClassLevelThreshold is the class level at which the grant applies
	ClassLevelThreshold *int
	// SpellSlotLevelOverride grants the spell to anyone with slots of this level
	SpellSlotLevelOverride *int
	// CastAsLevelOverride casts the spell as another level, e.g. "cantrip"
	CastAsLevelOverride string

	// Expanded marks grants that extend the entity's spell list rather than
	// forming its base list
	Expanded bool
}

// IsSpecific reports whether any specificity field is present
func (d Descriptor) IsSpecific() bool {
	return d.ClassLevelThreshold != nil ||
		d.SpellSlotLevelOverride != nil ||
		d.CastAsLevelOverride != ""
}

// Equal compares descriptors by value
func (d Descriptor) Equal(other Descriptor) bool {
	return d.EntityKey == other.EntityKey &&
		d.Expanded == other.Expanded &&
		d.CastAsLevelOverride == other.CastAsLevelOverride &&
		intPtrEqual(d.ClassLevelThreshold, other.ClassLevelThreshold) &&
		intPtrEqual(d.SpellSlotLevelOverride, other.SpellSlotLevelOverride)
}

func intPtrEqual(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// IntPtr returns a pointer to v
func IntPtr(v int) *int {
	return &v
}
