package testutils

import (
	"github.com/KirkDiggler/rpg-spellindex/internal/catalog"
	"github.com/KirkDiggler/rpg-spellindex/internal/corpus"
	"github.com/KirkDiggler/rpg-spellindex/internal/entities/dnd5e"
)

// Fixture keys
var (
	Fireball     = dnd5e.SpellKey("Fireball", "PHB")
	FindFamiliar = dnd5e.SpellKey("Find Familiar", "PHB")
	Guidance     = dnd5e.SpellKey("Guidance", "PHB")
	MindBlank    = dnd5e.SpellKey("Mind Blank", "PHB")
	EgoWhip      = dnd5e.SpellKey("Ego Whip", "UA")

	Wizard      = dnd5e.NewEntityKey(dnd5e.EntityTypeClass, "Wizard", "PHB")
	Ranger      = dnd5e.NewEntityKey(dnd5e.EntityTypeClass, "Ranger", "PHB")
	Cleric      = dnd5e.NewEntityKey(dnd5e.EntityTypeClass, "Cleric", "PHB")
	PactChain   = dnd5e.NewEntityKey(dnd5e.EntityTypeOptionalFeature, "Pact of the Chain", "PHB")
	MagicInit   = dnd5e.NewEntityKey(dnd5e.EntityTypeFeat, "Magic Initiate", "PHB")
	Acolyte     = dnd5e.NewEntityKey(dnd5e.EntityTypeBackground, "Acolyte", "PHB")
	MissingFeat = dnd5e.NewEntityKey(dnd5e.EntityTypeFeat, "Nonexistent", "HB")
)

// UnknownDescriptor is descriptor text no grammar rule accepts
const UnknownDescriptor = "?!"

// SpellCorpus returns a corpus covering base and expanded class grants,
// competing descriptors, an unknown school and a dangling reference.
func SpellCorpus() *corpus.Corpus {
	return &corpus.Corpus{
		Spells: []dnd5e.SpellBundle{
			{
				Key: Fireball, Name: "Fireball", Level: "3", School: "V",
				Components:  dnd5e.Components{Verbal: true, Somatic: true, Material: true, Text: "bat guano"},
				AttackTypes: dnd5e.AttackType{Other: true},
			},
			{Key: FindFamiliar, Name: "Find Familiar", Level: "1", School: "C", Ritual: true},
			{Key: Guidance, Name: "Guidance", Level: "0", School: "D"},
			{Key: MindBlank, Name: "Mind Blank", Level: "8", School: "A"},
			{Key: EgoWhip, Name: "Ego Whip", Level: "2", School: "Q"},
		},
		Entities: []catalog.Record{
			{EntityKey: Wizard, Name: "Wizard"},
			{EntityKey: Ranger, Name: "Ranger"},
			{EntityKey: Cleric, Name: "Cleric"},
			{EntityKey: PactChain, Name: "Pact of the Chain"},
			{EntityKey: MagicInit, Name: "Magic Initiate"},
			{EntityKey: Acolyte, Name: "Acolyte"},
		},
		References: []corpus.Reference{
			{Spell: Fireball, Entity: Wizard},
			{Spell: Fireball, Entity: Ranger, Expanded: true},
			{Spell: FindFamiliar, Entity: Wizard},
			{Spell: FindFamiliar, Entity: PactChain, Descriptor: "3"},
			{Spell: FindFamiliar, Entity: PactChain},
			{Spell: Guidance, Entity: Cleric},
			{Spell: Guidance, Entity: MagicInit, Descriptor: "#c"},
			{Spell: Guidance, Entity: Acolyte, Descriptor: UnknownDescriptor},
			{Spell: MindBlank, Entity: Wizard},
			{Spell: MindBlank, Entity: MagicInit, Descriptor: "s8"},
			{Spell: MindBlank, Entity: MagicInit, Descriptor: "5"},
			{Spell: Fireball, Entity: MissingFeat},
		},
	}
}
