package index

import (
	"github.com/KirkDiggler/rpg-spellindex/internal/aggregation"
	"github.com/KirkDiggler/rpg-spellindex/internal/corpus"
	"github.com/KirkDiggler/rpg-spellindex/internal/registry"
	"github.com/KirkDiggler/rpg-spellindex/internal/repositories/corpora"
)

// BuildIndexInput defines the request for indexing a corpus
type BuildIndexInput struct {
	Corpus *corpus.Corpus
}

// BuildIndexOutput carries the finished registry and its groupings
type BuildIndexOutput struct {
	Registry    *registry.Registry
	Engine      *aggregation.Engine
	Groupings   *aggregation.Groupings
	Diagnostics *registry.Diagnostics
}

// ImportSRDInput defines the request for pulling the SRD corpus
type ImportSRDInput struct {
	// Name stores the corpus under this name when set
	Name  string
	Level *int
	Class string
}

// ImportSRDOutput defines the response for an SRD import
type ImportSRDOutput struct {
	Corpus *corpus.Corpus
	Saved  *corpora.SaveOutput
}

// PushCorpusInput defines the request for storing a corpus
type PushCorpusInput struct {
	Name   string
	Corpus *corpus.Corpus
}

// PushCorpusOutput defines the response for storing a corpus
type PushCorpusOutput struct {
	Saved *corpora.SaveOutput
}

// LoadCorpusInput defines the request for loading stored corpora
type LoadCorpusInput struct {
	// Names are merged in order
	Names []string
}

// LoadCorpusOutput defines the response for loading stored corpora
type LoadCorpusOutput struct {
	Corpus *corpus.Corpus
}
