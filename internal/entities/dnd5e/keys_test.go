package dnd5e_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/rpg-spellindex/internal/entities/dnd5e"
)

func TestEntityKey(t *testing.T) {
	key := dnd5e.NewEntityKey(dnd5e.EntityTypeClass, " Wizard ", "PHB")

	assert.Equal(t, dnd5e.EntityKey("class|wizard|phb"), key)
	assert.Equal(t, dnd5e.EntityTypeClass, key.Type())
	assert.Equal(t, "wizard", key.Name())
	assert.Equal(t, "phb", key.Source())
	assert.True(t, key.IsClass())
	assert.False(t, dnd5e.SpellKey("Fireball", "PHB").IsClass())
}

func TestParseEntityKey(t *testing.T) {
	testCases := []struct {
		name    string
		raw     string
		want    dnd5e.EntityKey
		wantErr bool
	}{
		{name: "full key", raw: "Feat|Magic Initiate|PHB", want: "feat|magic initiate|phb"},
		{name: "no source", raw: "race|tiefling", want: "race|tiefling|"},
		{name: "too few parts", raw: "wizard", wantErr: true},
		{name: "empty name", raw: "class||phb", wantErr: true},
		{name: "too many parts", raw: "a|b|c|d", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := dnd5e.ParseEntityKey(tc.raw)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestSchoolFromCode(t *testing.T) {
	school, ok := dnd5e.SchoolFromCode("V")
	assert.True(t, ok)
	assert.Equal(t, dnd5e.SchoolEvocation, school)
	assert.Equal(t, "V", school.Code())

	school, ok = dnd5e.SchoolFromCode("Q")
	assert.False(t, ok)
	assert.Equal(t, dnd5e.SchoolNone, school)
	assert.Equal(t, "", school.Code())

	school, ok = dnd5e.SchoolFromName("Necromancy")
	assert.True(t, ok)
	assert.Equal(t, dnd5e.SchoolNecromancy, school)
}

func TestLevelName(t *testing.T) {
	assert.Equal(t, "cantrip", dnd5e.LevelName(0))
	assert.Equal(t, "1st-level", dnd5e.LevelName(1))
	assert.Equal(t, "2nd-level", dnd5e.LevelName(2))
	assert.Equal(t, "3rd-level", dnd5e.LevelName(3))
	assert.Equal(t, "9th-level", dnd5e.LevelName(9))
	assert.Equal(t, "11th", dnd5e.Ordinal(11))
	assert.Equal(t, "21st", dnd5e.Ordinal(21))

	level, ok := dnd5e.ParseSpellLevel("7")
	assert.True(t, ok)
	assert.Equal(t, 7, level)
	_, ok = dnd5e.ParseSpellLevel("10")
	assert.False(t, ok)
}

func TestDescriptor(t *testing.T) {
	key := dnd5e.NewEntityKey(dnd5e.EntityTypeSubclass, "Pact of the Chain", "PHB")

	bare := dnd5e.Descriptor{EntityKey: key}
	assert.False(t, bare.IsSpecific())

	threshold := dnd5e.Descriptor{EntityKey: key, ClassLevelThreshold: dnd5e.IntPtr(3)}
	assert.True(t, threshold.IsSpecific())
	assert.True(t, threshold.Equal(dnd5e.Descriptor{EntityKey: key, ClassLevelThreshold: dnd5e.IntPtr(3)}))
	assert.False(t, threshold.Equal(bare))

	castAs := dnd5e.Descriptor{EntityKey: key, CastAsLevelOverride: dnd5e.CastAsCantrip}
	assert.True(t, castAs.IsSpecific())
}

func TestComponentsString(t *testing.T) {
	c := dnd5e.Components{Verbal: true, Somatic: true, Material: true, Text: "bat guano"}
	assert.Equal(t, "V, S, M (bat guano)", c.String())
	assert.Equal(t, "", dnd5e.Components{}.String())
}
