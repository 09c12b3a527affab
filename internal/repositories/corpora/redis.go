package corpora

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/rpg-spellindex/internal/catalog"
	"github.com/KirkDiggler/rpg-spellindex/internal/corpus"
	"github.com/KirkDiggler/rpg-spellindex/internal/entities/dnd5e"
	"github.com/KirkDiggler/rpg-spellindex/internal/errors"
	"github.com/KirkDiggler/rpg-spellindex/internal/pkg/clock"
	redisclient "github.com/KirkDiggler/rpg-spellindex/internal/redis"
)

const (
	corpusKeyPrefix = "spellindex:corpus:"
	corpusIndexKey  = "spellindex:corpora"

	spellsSuffix     = ":spells"
	entitiesSuffix   = ":entities"
	referencesSuffix = ":references"
	metaSuffix       = ":meta"

	savedAtField = "saved_at"

	// Error messages
	errNameEmpty = "corpus name cannot be empty"
	errCorpusNil = "corpus cannot be nil"
)

type redisRepository struct {
	client redisclient.Client
	clock  clock.Clock
}

// RedisConfig contains configuration for the Redis corpus repository
type RedisConfig struct {
	Client redisclient.Client

	// Clock stamps saved corpora; the system clock if nil
	Clock clock.Clock
}

// Validate validates the RedisConfig
func (cfg *RedisConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.Client == nil {
		return errors.InvalidArgument("client cannot be nil")
	}
	if cfg.Clock == nil {
		cfg.Clock = clock.New()
	}
	return nil
}

// NewRedis creates a Redis-backed corpus repository. Spells and entities are
// stored as hashes keyed by entity key; references keep their order in a list.
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &redisRepository{
		client: cfg.Client,
		clock:  cfg.Clock,
	}, nil
}

func (r *redisRepository) Save(ctx context.Context, input SaveInput) (*SaveOutput, error) {
	if input.Name == "" {
		return nil, errors.InvalidArgument(errNameEmpty)
	}
	if input.Corpus == nil {
		return nil, errors.InvalidArgument(errCorpusNil)
	}

	spells := make(map[string]any, len(input.Corpus.Spells))
	for _, bundle := range input.Corpus.Spells {
		data, err := json.Marshal(bundle)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to marshal spell %s", bundle.Key)
		}
		spells[bundle.Key.String()] = data
	}

	entities := make(map[string]any, len(input.Corpus.Entities))
	for _, record := range input.Corpus.Entities {
		data, err := json.Marshal(record)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to marshal entity %s", record.EntityKey)
		}
		entities[record.EntityKey.String()] = data
	}

	references := make([]any, 0, len(input.Corpus.References))
	for _, ref := range input.Corpus.References {
		data, err := json.Marshal(ref)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to marshal reference %s -> %s", ref.Entity, ref.Spell)
		}
		references = append(references, data)
	}

	savedAt := r.clock.Now()

	// Replace the whole corpus in one transaction
	pipe := r.client.TxPipeline()
	pipe.Del(ctx, corpusKeys(input.Name)...)
	if len(spells) > 0 {
		pipe.HSet(ctx, spellsKey(input.Name), spells)
	}
	if len(entities) > 0 {
		pipe.HSet(ctx, entitiesKey(input.Name), entities)
	}
	if len(references) > 0 {
		pipe.RPush(ctx, referencesKey(input.Name), references...)
	}
	pipe.HSet(ctx, metaKey(input.Name), savedAtField, savedAt.Format(time.RFC3339Nano))
	pipe.SAdd(ctx, corpusIndexKey, input.Name)

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to save corpus %s", input.Name)
	}

	return &SaveOutput{
		Spells:     len(spells),
		Entities:   len(entities),
		References: len(references),
		SavedAt:    savedAt,
	}, nil
}

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.Name == "" {
		return nil, errors.InvalidArgument(errNameEmpty)
	}

	exists, err := r.client.SIsMember(ctx, corpusIndexKey, input.Name).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to check corpus %s", input.Name)
	}
	if !exists {
		return nil, errors.NotFoundf("corpus %s not found", input.Name)
	}

	spellData, err := r.client.HGetAll(ctx, spellsKey(input.Name)).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get spells of corpus %s", input.Name)
	}
	entityData, err := r.client.HGetAll(ctx, entitiesKey(input.Name)).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get entities of corpus %s", input.Name)
	}
	referenceData, err := r.client.LRange(ctx, referencesKey(input.Name), 0, -1).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get references of corpus %s", input.Name)
	}

	c := &corpus.Corpus{
		Spells:     make([]dnd5e.SpellBundle, 0, len(spellData)),
		Entities:   make([]catalog.Record, 0, len(entityData)),
		References: make([]corpus.Reference, 0, len(referenceData)),
	}

	for _, key := range sortedKeys(spellData) {
		var bundle dnd5e.SpellBundle
		if err := json.Unmarshal([]byte(spellData[key]), &bundle); err != nil {
			return nil, errors.Wrapf(err, "failed to unmarshal spell %s", key)
		}
		c.Spells = append(c.Spells, bundle)
	}
	for _, key := range sortedKeys(entityData) {
		var record catalog.Record
		if err := json.Unmarshal([]byte(entityData[key]), &record); err != nil {
			return nil, errors.Wrapf(err, "failed to unmarshal entity %s", key)
		}
		c.Entities = append(c.Entities, record)
	}
	for i, raw := range referenceData {
		var ref corpus.Reference
		if err := json.Unmarshal([]byte(raw), &ref); err != nil {
			return nil, errors.Wrapf(err, "failed to unmarshal reference %d", i)
		}
		c.References = append(c.References, ref)
	}

	out := &GetOutput{Corpus: c}
	stamp, err := r.client.HGet(ctx, metaKey(input.Name), savedAtField).Result()
	switch {
	case errors.Is(err, redis.Nil):
	case err != nil:
		return nil, errors.Wrapf(err, "failed to get metadata of corpus %s", input.Name)
	default:
		if out.SavedAt, err = time.Parse(time.RFC3339Nano, stamp); err != nil {
			return nil, errors.Wrapf(err, "corpus %s: bad %s", input.Name, savedAtField)
		}
	}
	return out, nil
}

func (r *redisRepository) List(ctx context.Context, _ ListInput) (*ListOutput, error) {
	names, err := r.client.SMembers(ctx, corpusIndexKey).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list corpora")
	}
	sort.Strings(names)
	return &ListOutput{Names: names}, nil
}

func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.Name == "" {
		return nil, errors.InvalidArgument(errNameEmpty)
	}

	removed, err := r.client.SRem(ctx, corpusIndexKey, input.Name).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to delete corpus %s", input.Name)
	}
	if removed == 0 {
		return nil, errors.NotFoundf("corpus %s not found", input.Name)
	}

	if err := r.client.Del(ctx, corpusKeys(input.Name)...).Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to delete corpus %s", input.Name)
	}

	return &DeleteOutput{}, nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func corpusKeys(name string) []string {
	return []string{spellsKey(name), entitiesKey(name), referencesKey(name), metaKey(name)}
}

func metaKey(name string) string {
	return corpusKeyPrefix + name + metaSuffix
}

func spellsKey(name string) string {
	return corpusKeyPrefix + name + spellsSuffix
}

func entitiesKey(name string) string {
	return corpusKeyPrefix + name + entitiesSuffix
}

func referencesKey(name string) string {
	return corpusKeyPrefix + name + referencesSuffix
}

// GetSpellsKey returns the Redis hash holding a corpus's spells
// Exposed for testing purposes
func GetSpellsKey(name string) string {
	return spellsKey(name)
}
