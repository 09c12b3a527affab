package registry_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/rpg-spellindex/internal/entities/dnd5e"
	"github.com/KirkDiggler/rpg-spellindex/internal/errors"
	"github.com/KirkDiggler/rpg-spellindex/internal/registry"
)

func TestConflictPolicies(t *testing.T) {
	key := dnd5e.NewEntityKey(dnd5e.EntityTypeFeat, "Magic Initiate", "PHB")
	bare := dnd5e.Descriptor{EntityKey: key}
	level3 := dnd5e.Descriptor{EntityKey: key, ClassLevelThreshold: dnd5e.IntPtr(3)}
	slot2 := dnd5e.Descriptor{EntityKey: key, SpellSlotLevelOverride: dnd5e.IntPtr(2)}

	testCases := []struct {
		name         string
		policy       registry.ConflictPolicy
		existing     dnd5e.Descriptor
		incoming     dnd5e.Descriptor
		want         dnd5e.Descriptor
		wantConflict bool
	}{
		{name: "first: bare then specific", policy: registry.FirstSpecificWins{}, existing: bare, incoming: level3, want: level3},
		{name: "first: specific then bare", policy: registry.FirstSpecificWins{}, existing: level3, incoming: bare, want: level3},
		{name: "first: specific then other specific", policy: registry.FirstSpecificWins{}, existing: level3, incoming: slot2, want: level3, wantConflict: true},
		{name: "first: same specific twice", policy: registry.FirstSpecificWins{}, existing: level3, incoming: level3, want: level3},
		{name: "last: specific then bare", policy: registry.LastSpecificWins{}, existing: level3, incoming: bare, want: level3},
		{name: "last: specific then other specific", policy: registry.LastSpecificWins{}, existing: level3, incoming: slot2, want: slot2, wantConflict: true},
		{name: "last: bare then bare", policy: registry.LastSpecificWins{}, existing: bare, incoming: bare, want: bare},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, conflict := tc.policy.Resolve(tc.existing, tc.incoming)
			assert.True(t, tc.want.Equal(got))
			assert.Equal(t, tc.wantConflict, conflict)
		})
	}
}

func TestPolicyByName(t *testing.T) {
	p, err := registry.PolicyByName("")
	require.NoError(t, err)
	assert.Equal(t, registry.PolicyFirstSpecific, p.Name())

	p, err = registry.PolicyByName(registry.PolicyLastSpecific)
	require.NoError(t, err)
	assert.Equal(t, registry.PolicyLastSpecific, p.Name())

	_, err = registry.PolicyByName("priority")
	assert.True(t, errors.IsInvalidArgument(err))
}
