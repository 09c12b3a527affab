package registry

import (
	"github.com/KirkDiggler/rpg-spellindex/internal/entities/dnd5e"
	"github.com/KirkDiggler/rpg-spellindex/internal/errors"
)

// Conflict policy names accepted by PolicyByName
const (
	PolicyFirstSpecific = "first-specific"
	PolicyLastSpecific  = "last-specific"
)

// ConflictPolicy decides which descriptor survives when a grant arrives for
// an occupied (spell, entity, partition) slot.
type ConflictPolicy interface {
	// Name identifies the policy in config and logs
	Name() string

	// Resolve returns the descriptor to store. conflict is true when two
	// different specific descriptors competed and one was discarded.
	Resolve(existing dnd5e.Descriptor, incoming dnd5e.Descriptor) (keep dnd5e.Descriptor, conflict bool)
}

// FirstSpecificWins keeps the first specific descriptor seen for a slot.
// Non-specific descriptors replace each other freely. Which specific grant
// wins therefore depends on corpus scan order.
type FirstSpecificWins struct{}

// Name implements ConflictPolicy
func (FirstSpecificWins) Name() string { return PolicyFirstSpecific }

// Resolve implements ConflictPolicy
func (FirstSpecificWins) Resolve(existing, incoming dnd5e.Descriptor) (dnd5e.Descriptor, bool) {
	if existing.IsSpecific() {
		return existing, incoming.IsSpecific() && !incoming.Equal(existing)
	}
	return incoming, false
}

// LastSpecificWins lets a later specific descriptor replace an earlier one.
// A specific descriptor is still never replaced by a non-specific one.
type LastSpecificWins struct{}

// Name implements ConflictPolicy
func (LastSpecificWins) Name() string { return PolicyLastSpecific }

// Resolve implements ConflictPolicy
func (LastSpecificWins) Resolve(existing, incoming dnd5e.Descriptor) (dnd5e.Descriptor, bool) {
	if existing.IsSpecific() && !incoming.IsSpecific() {
		return existing, false
	}
	return incoming, existing.IsSpecific() && !incoming.Equal(existing)
}

// PolicyNames lists the accepted policy names
func PolicyNames() []string {
	return []string{PolicyFirstSpecific, PolicyLastSpecific}
}

// PolicyByName returns the named policy
func PolicyByName(name string) (ConflictPolicy, error) {
	switch name {
	case "", PolicyFirstSpecific:
		return FirstSpecificWins{}, nil
	case PolicyLastSpecific:
		return LastSpecificWins{}, nil
	default:
		return nil, errors.InvalidArgumentf("unknown conflict policy %q", name)
	}
}
