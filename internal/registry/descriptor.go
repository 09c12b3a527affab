package registry

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/KirkDiggler/rpg-spellindex/internal/entities/dnd5e"
	"github.com/KirkDiggler/rpg-spellindex/internal/errors"
)

var (
	classLevelPattern = regexp.MustCompile(`^\d+$`)
	slotLevelPattern  = regexp.MustCompile(`^s(\d+)$`)
	castAsPattern     = regexp.MustCompile(`^#(\d)$`)
)

// ParseDescriptor turns descriptor text into a Descriptor for entityKey.
//
//	""         no specificity
//	"3"        class level threshold 3
//	"s2"       spell slot level override 2
//	"#c"       cast as cantrip ("cantrip" is accepted too)
//	"#1".."#9" cast as that level
//	"a_b"      anything with an underscore: no specificity, not an issue
//
// Any other text yields a descriptor without specificity and an
// UnknownDescriptorSyntax error the caller may record.
func ParseDescriptor(entityKey dnd5e.EntityKey, text string, expanded bool) (dnd5e.Descriptor, *errors.Error) {
	d := dnd5e.Descriptor{EntityKey: entityKey, Expanded: expanded}
	text = strings.TrimSpace(text)

	switch {
	case text == "":
		return d, nil
	case classLevelPattern.MatchString(text):
		if n, err := strconv.Atoi(text); err == nil {
			d.ClassLevelThreshold = &n
			return d, nil
		}
	case slotLevelPattern.MatchString(text):
		if n, err := strconv.Atoi(slotLevelPattern.FindStringSubmatch(text)[1]); err == nil {
			d.SpellSlotLevelOverride = &n
			return d, nil
		}
	case text == "#c" || strings.EqualFold(text, dnd5e.CastAsCantrip):
		d.CastAsLevelOverride = dnd5e.CastAsCantrip
		return d, nil
	case castAsPattern.MatchString(text):
		d.CastAsLevelOverride = castAsPattern.FindStringSubmatch(text)[1]
		return d, nil
	case strings.Contains(text, "_"):
		return d, nil
	}

	return d, errors.UnknownDescriptorSyntax(text).WithMeta("entity", entityKey.String())
}
