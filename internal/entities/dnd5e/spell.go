package dnd5e

import "strings"

// SpellBundle is the attribute bundle the corpus loader supplies for a spell.
// Level and School are kept in their raw corpus form; the spell store
// resolves them when the record is created.
type SpellBundle struct {
	Key         EntityKey  `yaml:"key" json:"key"`
	Name        string     `yaml:"name" json:"name"`
	Level       string     `yaml:"level" json:"level"`
	School      string     `yaml:"school" json:"school"`
	Ritual      bool       `yaml:"ritual,omitempty" json:"ritual,omitempty"`
	Components  Components `yaml:"components,omitempty" json:"components,omitempty"`
	AttackTypes AttackType `yaml:"attack,omitempty" json:"attack,omitempty"`
}

// Components are the casting components of a spell
type Components struct {
	Verbal   bool   `yaml:"v,omitempty" json:"v,omitempty"`
	Somatic  bool   `yaml:"s,omitempty" json:"s,omitempty"`
	Material bool   `yaml:"m,omitempty" json:"m,omitempty"`
	Royalty  bool   `yaml:"r,omitempty" json:"r,omitempty"`
	Text     string `yaml:"material,omitempty" json:"material,omitempty"`
}

// String renders the components the way stat blocks abbreviate them, e.g.
// "V, S, M (bat guano)".
func (c Components) String() string {
	var parts []string
	if c.Verbal {
		parts = append(parts, "V")
	}
	if c.Somatic {
		parts = append(parts, "S")
	}
	if c.Material {
		if c.Text != "" {
			parts = append(parts, "M ("+c.Text+")")
		} else {
			parts = append(parts, "M")
		}
	}
	if c.Royalty {
		parts = append(parts, "R")
	}
	return strings.Join(parts, ", ")
}

// AttackType flags how a spell makes attacks, if at all
type AttackType struct {
	Melee  bool `yaml:"m,omitempty" json:"m,omitempty"`
	Ranged bool `yaml:"r,omitempty" json:"r,omitempty"`
	Other  bool `yaml:"o,omitempty" json:"o,omitempty"`
}

// Any reports whether any attack flag is set
func (a AttackType) Any() bool {
	return a.Melee || a.Ranged || a.Other
}
