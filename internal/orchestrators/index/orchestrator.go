// Package index implements the orchestrator that runs one indexing pass:
// corpus to catalog, references to registry, registry to groupings.
package index

//go:generate mockgen -destination=mock/mock_service.go -package=indexmock github.com/KirkDiggler/rpg-spellindex/internal/orchestrators/index Service

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/rpg-spellindex/internal/aggregation"
	"github.com/KirkDiggler/rpg-spellindex/internal/clients/external"
	"github.com/KirkDiggler/rpg-spellindex/internal/corpus"
	"github.com/KirkDiggler/rpg-spellindex/internal/errors"
	"github.com/KirkDiggler/rpg-spellindex/internal/registry"
	"github.com/KirkDiggler/rpg-spellindex/internal/repositories/corpora"
)

// Service defines the indexing operations
type Service interface {
	// BuildIndex scans a corpus and builds every grouping
	BuildIndex(ctx context.Context, input *BuildIndexInput) (*BuildIndexOutput, error)

	// ImportSRD pulls the SRD corpus and optionally stores it
	ImportSRD(ctx context.Context, input *ImportSRDInput) (*ImportSRDOutput, error)

	// PushCorpus stores a corpus under a name
	PushCorpus(ctx context.Context, input *PushCorpusInput) (*PushCorpusOutput, error)

	// LoadCorpus reads stored corpora and merges them
	LoadCorpus(ctx context.Context, input *LoadCorpusInput) (*LoadCorpusOutput, error)
}

// Config holds the dependencies for the index orchestrator. Only Policy is
// needed to build indexes; the repository and SRD client enable the rest.
type Config struct {
	Policy     registry.ConflictPolicy
	CorpusRepo corpora.Repository
	SRDClient  external.Client
}

// Validate fills defaults. Every dependency is optional.
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if c.Policy == nil {
		c.Policy = registry.FirstSpecificWins{}
	}
	return nil
}

type orchestrator struct {
	policy     registry.ConflictPolicy
	corpusRepo corpora.Repository
	srdClient  external.Client
}

// NewOrchestrator creates a new index orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &orchestrator{
		policy:     cfg.Policy,
		corpusRepo: cfg.CorpusRepo,
		srdClient:  cfg.SRDClient,
	}, nil
}

func (o *orchestrator) BuildIndex(ctx context.Context, input *BuildIndexInput) (*BuildIndexOutput, error) {
	if input == nil || input.Corpus == nil {
		return nil, errors.InvalidArgument("corpus is required")
	}

	diagnostics := registry.NewDiagnostics()
	cat := input.Corpus.BuildCatalog(diagnostics.Record)

	reg, err := registry.New(&registry.Config{
		Catalog:     cat,
		Diagnostics: diagnostics,
		Policy:      o.policy,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create registry")
	}

	// Spells nobody grants still belong in the level view. Rejected bundles
	// were already reported by the catalog build.
	for _, bundle := range cat.Spells() {
		reg.EnsureSpell(bundle.Key)
	}

	for i, ref := range input.Corpus.References {
		if i%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, errors.Wrap(err, "indexing canceled")
			}
		}
		reg.AddReference(ref.Spell, ref.Entity, ref.Descriptor, ref.Expanded)
	}

	engine, err := aggregation.New(&aggregation.Config{View: reg})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create aggregation engine")
	}

	groupings, err := engine.BuildAll(ctx)
	if err != nil {
		return nil, err
	}

	slog.Info("Indexed corpus",
		"spells", reg.Len(),
		"references", len(input.Corpus.References),
		"policy", o.policy.Name())
	diagnostics.LogSummary()

	return &BuildIndexOutput{
		Registry:    reg,
		Engine:      engine,
		Groupings:   groupings,
		Diagnostics: diagnostics,
	}, nil
}

func (o *orchestrator) ImportSRD(ctx context.Context, input *ImportSRDInput) (*ImportSRDOutput, error) {
	if input == nil {
		input = &ImportSRDInput{}
	}
	if o.srdClient == nil {
		return nil, errors.Unavailablef("SRD client not configured")
	}
	if input.Name != "" && o.corpusRepo == nil {
		return nil, errors.Unavailablef("corpus repository not configured")
	}

	c, err := o.srdClient.FetchCorpus(ctx, &external.FetchCorpusInput{
		Level: input.Level,
		Class: input.Class,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch SRD corpus")
	}

	out := &ImportSRDOutput{Corpus: c}
	if input.Name == "" {
		return out, nil
	}

	saved, err := o.corpusRepo.Save(ctx, corpora.SaveInput{Name: input.Name, Corpus: c})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to store SRD corpus as %s", input.Name)
	}
	out.Saved = saved
	return out, nil
}

func (o *orchestrator) PushCorpus(ctx context.Context, input *PushCorpusInput) (*PushCorpusOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if o.corpusRepo == nil {
		return nil, errors.Unavailablef("corpus repository not configured")
	}

	saved, err := o.corpusRepo.Save(ctx, corpora.SaveInput{Name: input.Name, Corpus: input.Corpus})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to push corpus %s", input.Name)
	}

	slog.Info("Pushed corpus",
		"name", input.Name,
		"spells", saved.Spells,
		"entities", saved.Entities,
		"references", saved.References,
		"saved_at", saved.SavedAt)
	return &PushCorpusOutput{Saved: saved}, nil
}

func (o *orchestrator) LoadCorpus(ctx context.Context, input *LoadCorpusInput) (*LoadCorpusOutput, error) {
	if input == nil || len(input.Names) == 0 {
		return nil, errors.InvalidArgument("at least one corpus name is required")
	}
	if o.corpusRepo == nil {
		return nil, errors.Unavailablef("corpus repository not configured")
	}

	merged := &corpus.Corpus{}
	for _, name := range input.Names {
		got, err := o.corpusRepo.Get(ctx, corpora.GetInput{Name: name})
		if err != nil {
			return nil, errors.Wrapf(err, "failed to load corpus %s", name)
		}
		slog.Debug("Loaded stored corpus", "name", name, "saved_at", got.SavedAt)
		merged.Merge(got.Corpus)
	}
	return &LoadCorpusOutput{Corpus: merged}, nil
}
