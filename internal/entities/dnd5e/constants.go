package dnd5e

// EntityType tags every catalog record. Referencing entities are any type
// other than EntityTypeSpell.
type EntityType string

// Entity type constants
const (
	EntityTypeSpell           EntityType = "spell"
	EntityTypeClass           EntityType = "class"
	EntityTypeSubclass        EntityType = "subclass"
	EntityTypeFeat            EntityType = "feat"
	EntityTypeBackground      EntityType = "background"
	EntityTypeItem            EntityType = "item"
	EntityTypeOptionalFeature EntityType = "optionalfeature"
	EntityTypeRace            EntityType = "race"
)

// ReferencingTypes lists the entity types that can grant a spell.
var ReferencingTypes = []EntityType{
	EntityTypeClass,
	EntityTypeSubclass,
	EntityTypeFeat,
	EntityTypeBackground,
	EntityTypeItem,
	EntityTypeOptionalFeature,
	EntityTypeRace,
}

// IsReferencing reports whether entities of this type may grant spells.
func (t EntityType) IsReferencing() bool {
	for _, rt := range ReferencingTypes {
		if t == rt {
			return true
		}
	}
	return false
}

// School is the school of magic of a spell
type School string

// School constants
const (
	SchoolNone          School = "none"
	SchoolAbjuration    School = "abjuration"
	SchoolConjuration   School = "conjuration"
	SchoolDivination    School = "divination"
	SchoolEnchantment   School = "enchantment"
	SchoolEvocation     School = "evocation"
	SchoolIllusion      School = "illusion"
	SchoolNecromancy    School = "necromancy"
	SchoolTransmutation School = "transmutation"
	SchoolPsionic       School = "psionic"
)

// schoolCodes maps single-letter corpus codes to schools
var schoolCodes = map[string]School{
	"A": SchoolAbjuration,
	"C": SchoolConjuration,
	"D": SchoolDivination,
	"E": SchoolEnchantment,
	"V": SchoolEvocation,
	"I": SchoolIllusion,
	"N": SchoolNecromancy,
	"T": SchoolTransmutation,
	"P": SchoolPsionic,
}

// SchoolFromCode resolves a corpus school letter. The second return is false
// for unknown codes, in which case SchoolNone is returned.
func SchoolFromCode(code string) (School, bool) {
	school, ok := schoolCodes[code]
	if !ok {
		return SchoolNone, false
	}
	return school, true
}

// SchoolFromName resolves a full school name such as "Evocation".
func SchoolFromName(name string) (School, bool) {
	for _, school := range schoolCodes {
		if string(school) == normalize(name) {
			return school, true
		}
	}
	return SchoolNone, false
}

// Code returns the single-letter corpus code, or "" for SchoolNone.
func (s School) Code() string {
	for code, school := range schoolCodes {
		if school == s {
			return code
		}
	}
	return ""
}

// Spell levels
const (
	MinSpellLevel = 0
	MaxSpellLevel = 9

	// SpellLevelCount is the number of level buckets, cantrips included
	SpellLevelCount = MaxSpellLevel + 1
)

// Cast-as override for spells usable as cantrips
const CastAsCantrip = "cantrip"
