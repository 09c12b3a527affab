// Package corpus loads the raw entity records an indexing run scans: spell
// bundles, referencing entities and the spell references each entity makes.
package corpus

import (
	"bytes"
	"io"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/rpg-spellindex/internal/catalog"
	"github.com/KirkDiggler/rpg-spellindex/internal/entities/dnd5e"
	"github.com/KirkDiggler/rpg-spellindex/internal/errors"
)

// Reference is one spell reference found in an entity's data. Descriptor is
// the raw specificity text and Expanded marks expanded spell lists.
type Reference struct {
	Spell      dnd5e.EntityKey `yaml:"spell" json:"spell"`
	Entity     dnd5e.EntityKey `yaml:"entity" json:"entity"`
	Descriptor string          `yaml:"descriptor,omitempty" json:"descriptor,omitempty"`
	Expanded   bool            `yaml:"expanded,omitempty" json:"expanded,omitempty"`
}

// Corpus is the full input of one run
type Corpus struct {
	Spells     []dnd5e.SpellBundle `yaml:"spells" json:"spells"`
	Entities   []catalog.Record    `yaml:"entities" json:"entities"`
	References []Reference         `yaml:"references" json:"references"`
}

// LoadYAML decodes a corpus document and normalizes every key in it
func LoadYAML(r io.Reader) (*Corpus, error) {
	var c Corpus
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil {
		if err == io.EOF {
			return &c, nil
		}
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to decode corpus")
	}

	if err := c.Normalize(); err != nil {
		return nil, err
	}
	return &c, nil
}

// LoadFile reads a YAML corpus from path
func LoadFile(path string) (*Corpus, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path comes from the operator
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read corpus %s", path)
	}

	c, err := LoadYAML(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrapf(err, "corpus %s", path)
	}

	slog.Debug("Loaded corpus",
		"path", path,
		"spells", len(c.Spells),
		"entities", len(c.Entities),
		"references", len(c.References))
	return c, nil
}

// EncodeYAML writes the corpus as a YAML document
func (c *Corpus) EncodeYAML() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return nil, errors.Wrap(err, "failed to encode corpus")
	}
	if err := enc.Close(); err != nil {
		return nil, errors.Wrap(err, "failed to encode corpus")
	}
	return buf.Bytes(), nil
}

// Normalize rewrites every key into its canonical form. Keys that cannot be
// parsed are reported together.
func (c *Corpus) Normalize() error {
	vb := errors.NewValidationBuilder()

	normalize := func(field string, key *dnd5e.EntityKey) {
		parsed, err := dnd5e.ParseEntityKey(string(*key))
		if err != nil {
			vb.Field(field, err.Error())
			return
		}
		*key = parsed
	}

	for i := range c.Spells {
		normalize("spells", &c.Spells[i].Key)
	}
	for i := range c.Entities {
		normalize("entities", &c.Entities[i].EntityKey)
	}
	for i := range c.References {
		normalize("references.spell", &c.References[i].Spell)
		normalize("references.entity", &c.References[i].Entity)
	}
	return vb.Build()
}

// Merge appends other's records. When the catalog is built the first spell
// or entity for a key wins, so records already in c take precedence.
func (c *Corpus) Merge(other *Corpus) {
	if other == nil {
		return
	}
	c.Spells = append(c.Spells, other.Spells...)
	c.Entities = append(c.Entities, other.Entities...)
	c.References = append(c.References, other.References...)
}

// BuildCatalog builds the in-memory catalog the registry resolves keys
// against. Records the catalog rejects are handed to report and skipped.
func (c *Corpus) BuildCatalog(report func(issue *errors.Error)) *catalog.Memory {
	cat := catalog.NewMemory()
	for _, bundle := range c.Spells {
		if err := cat.AddSpell(bundle); err != nil {
			report(errors.InvalidCatalogRecord(string(bundle.Key), err))
		}
	}
	for _, record := range c.Entities {
		if err := cat.AddEntity(record); err != nil {
			report(errors.InvalidCatalogRecord(string(record.EntityKey), err))
		}
	}
	return cat
}

// ToCatalog is BuildCatalog that fails on the first rejected record
func (c *Corpus) ToCatalog() (*catalog.Memory, error) {
	cat := catalog.NewMemory()
	for _, bundle := range c.Spells {
		if err := cat.AddSpell(bundle); err != nil {
			return nil, errors.Wrapf(err, "spell %s", bundle.Key)
		}
	}
	for _, record := range c.Entities {
		if err := cat.AddEntity(record); err != nil {
			return nil, errors.Wrapf(err, "entity %s", record.EntityKey)
		}
	}
	return cat, nil
}
