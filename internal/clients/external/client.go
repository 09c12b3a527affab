// Package external is the location for the dnd5e-api client. It turns the
// SRD spell and class data into a corpus the indexer can scan.
package external

//go:generate mockgen -destination=mock/mock_client.go -package=externalmock github.com/KirkDiggler/rpg-spellindex/internal/clients/external Client

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/fadedpez/dnd5e-api/clients/dnd5e"
	"github.com/fadedpez/dnd5e-api/entities"

	"github.com/KirkDiggler/rpg-spellindex/internal/catalog"
	"github.com/KirkDiggler/rpg-spellindex/internal/corpus"
	internalDnd5e "github.com/KirkDiggler/rpg-spellindex/internal/entities/dnd5e"
	"github.com/KirkDiggler/rpg-spellindex/internal/errors"
)

// Client defines the interface for external API interactions
type Client interface {
	// FetchCorpus loads classes and spells from the API. Each class a spell
	// lists becomes a base reference from that class.
	FetchCorpus(ctx context.Context, input *FetchCorpusInput) (*corpus.Corpus, error)
}

type client struct {
	dnd5eClient dnd5e.Interface
	concurrency int
}

// Config contains configuration options for the external client.
type Config struct {
	// BaseURL for the D&D 5e API (optional, defaults to https://www.dnd5eapi.co/api/2014/)
	BaseURL string
	// HTTPTimeout for API requests (optional, defaults to 30 seconds)
	HTTPTimeout time.Duration
	// CacheTTL for the cached client (optional, defaults to 24 hours)
	CacheTTL time.Duration
	// Concurrency caps in-flight detail requests (optional, defaults to 8)
	Concurrency int
}

// Validate validates the Config and sets defaults if not provided.
func (cfg *Config) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://www.dnd5eapi.co/api/2014/"
	}
	if cfg.HTTPTimeout == 0 {
		cfg.HTTPTimeout = 30 * time.Second
	}
	if cfg.CacheTTL == 0 {
		cfg.CacheTTL = 24 * time.Hour
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 8
	}
	return nil
}

// New creates a new external client with the given configuration.
func New(cfg *Config) (Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	baseClient, err := dnd5e.NewDND5eAPI(&dnd5e.DND5eAPIConfig{
		Client:  httpClient,
		BaseURL: cfg.BaseURL,
	})
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInternal, "failed to create D&D 5e API client")
	}

	// Wrap with caching so repeated imports stay cheap
	cachedClient := dnd5e.NewCachedClient(baseClient, cfg.CacheTTL)

	return newClient(cachedClient, cfg.Concurrency), nil
}

func newClient(api dnd5e.Interface, concurrency int) *client {
	if concurrency <= 0 {
		concurrency = 1
	}
	return &client{dnd5eClient: api, concurrency: concurrency}
}

func (c *client) FetchCorpus(ctx context.Context, input *FetchCorpusInput) (*corpus.Corpus, error) {
	if input == nil {
		input = &FetchCorpusInput{}
	}

	slog.Info("Calling D&D 5e API to list classes")
	classRefs, err := c.dnd5eClient.ListClasses()
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to list classes from D&D 5e API")
	}

	out := &corpus.Corpus{}
	for _, ref := range classRefs {
		if ref == nil {
			continue
		}
		out.Entities = append(out.Entities, catalog.Record{
			EntityKey: classKey(ref),
			Name:      ref.Name,
		})
	}

	spells, err := c.loadSpells(ctx, input)
	if err != nil {
		return nil, err
	}

	for _, spell := range spells {
		bundle := convertSpellToBundle(spell)
		out.Spells = append(out.Spells, bundle)
		for _, ref := range spell.SpellClasses {
			if ref == nil {
				continue
			}
			out.References = append(out.References, corpus.Reference{
				Spell:  bundle.Key,
				Entity: classKey(ref),
			})
		}
	}

	slog.Info("Fetched SRD corpus",
		"classes", len(out.Entities),
		"spells", len(out.Spells),
		"references", len(out.References))
	return out, nil
}

// loadSpells lists the spell references and loads their details with at
// most c.concurrency requests in flight. The result keeps list order.
func (c *client) loadSpells(ctx context.Context, input *FetchCorpusInput) ([]*entities.Spell, error) {
	listInput := &dnd5e.ListSpellsInput{
		Level: input.Level,
		Class: input.Class,
	}

	slog.Info("Calling D&D 5e API to list spells", "level", input.Level, "class", input.Class)
	refs, err := c.dnd5eClient.ListSpells(listInput)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to list spells from D&D 5e API")
	}
	slog.Info("Got spell references", "count", len(refs))

	spells := make([]*entities.Spell, len(refs))
	errChan := make(chan error, len(refs))
	sem := make(chan struct{}, c.concurrency)
	var wg sync.WaitGroup

	for i, ref := range refs {
		if ref == nil {
			continue
		}
		wg.Add(1)
		go func(idx int, key string) {
			defer wg.Done()

			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				errChan <- ctx.Err()
				return
			}

			spell, err := c.dnd5eClient.GetSpell(key)
			if err != nil {
				slog.Error("Failed to get spell details", "spell", key, "error", err)
				errChan <- fmt.Errorf("failed to get spell %s: %w", key, err)
				return
			}
			if spell == nil {
				errChan <- fmt.Errorf("spell %s: empty response", key)
				return
			}
			spells[idx] = spell
		}(i, ref.Key)
	}

	wg.Wait()
	close(errChan)

	for err := range errChan {
		if err != nil {
			return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to load spell details")
		}
	}

	loaded := spells[:0]
	for _, spell := range spells {
		if spell != nil {
			loaded = append(loaded, spell)
		}
	}
	return loaded, nil
}

// convertSpellToBundle maps an API spell onto the corpus bundle. Schools the
// index does not know keep their API name so the store reports them.
func convertSpellToBundle(spell *entities.Spell) internalDnd5e.SpellBundle {
	school := ""
	if spell.SpellSchool != nil {
		school = spell.SpellSchool.Name
		if s, ok := internalDnd5e.SchoolFromName(school); ok {
			school = s.Code()
		}
	}

	return internalDnd5e.SpellBundle{
		Key:    internalDnd5e.SpellKey(spell.Name, SourceSRD),
		Name:   spell.Name,
		Level:  strconv.Itoa(spell.SpellLevel),
		School: school,
		Ritual: spell.Ritual,
	}
}

func classKey(ref *entities.ReferenceItem) internalDnd5e.EntityKey {
	return internalDnd5e.NewEntityKey(internalDnd5e.EntityTypeClass, ref.Name, SourceSRD)
}
