package aggregation

import (
	"strconv"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/KirkDiggler/rpg-spellindex/internal/entities/dnd5e"
)

// Qualifier renders the specificity of a grant as a phrase for list views.
// The cast-as override wins over the slot override, which wins over the
// class level threshold. A threshold of 1 and a bare grant yield "".
func Qualifier(d dnd5e.Descriptor) string {
	switch {
	case d.CastAsLevelOverride != "":
		return "as " + castAsName(d.CastAsLevelOverride)
	case d.SpellSlotLevelOverride != nil:
		return "with access to " + dnd5e.LevelName(*d.SpellSlotLevelOverride) + " spells"
	case d.ClassLevelThreshold != nil && *d.ClassLevelThreshold != 1:
		return "at class level " + strconv.Itoa(*d.ClassLevelThreshold)
	default:
		return ""
	}
}

func castAsName(override string) string {
	if level, ok := dnd5e.ParseSpellLevel(override); ok {
		return dnd5e.LevelName(level)
	}
	return override
}

// namer produces display and sort strings. Casers keep state, so each
// builder call gets its own namer.
type namer struct {
	fold  cases.Caser
	title cases.Caser
}

func newNamer() *namer {
	return &namer{
		fold:  cases.Fold(),
		title: cases.Title(language.English),
	}
}

// sortKey is the case-insensitive ordering key for a display name
func (n *namer) sortKey(name string) string {
	return n.fold.String(name)
}

// className turns "wizard" into "Wizard"
func (n *namer) className(name string) string {
	return n.title.String(name)
}

// schoolName turns a School into "Evocation", SchoolNone into "None"
func (n *namer) schoolName(school dnd5e.School) string {
	return n.title.String(string(school))
}
