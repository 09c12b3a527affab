// Package main is the entry point for the spell index CLI
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-spellindex/internal/config"
	"github.com/KirkDiggler/rpg-spellindex/internal/redis"
	"github.com/KirkDiggler/rpg-spellindex/internal/repositories/corpora"
)

var (
	// Global flags; set values win over the environment
	redisAddr      string
	logLevel       string
	logFormat      string
	conflictPolicy string

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "spellindex",
	Short: "D&D spell reference index",
	Long: `spellindex scans a corpus of spells and referencing entities (classes,
subclasses, feats, backgrounds, items, optional features, races) and builds
the spell list groupings: by level, by class, by school and by entity.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&redisAddr, "redis", "", "Redis address or URL (env SPELLINDEX_REDIS_ADDR)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "debug, info, warn or error (env SPELLINDEX_LOG_LEVEL)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "text or json (env SPELLINDEX_LOG_FORMAT)")
	rootCmd.PersistentFlags().StringVar(&conflictPolicy, "policy", "", "first-specific or last-specific (env SPELLINDEX_CONFLICT_POLICY)")

	rootCmd.AddCommand(indexCmd)
	rootCmd.AddCommand(importSRDCmd)
	rootCmd.AddCommand(pushCmd)
}

// loadConfig reads the environment, applies flag overrides and installs the
// process logger.
func loadConfig(cmd *cobra.Command, _ []string) error {
	loaded, err := config.Load()
	if err != nil {
		return err
	}
	applyFlagOverrides(cmd, loaded)
	if err := loaded.Validate(); err != nil {
		return err
	}

	cfg = loaded
	slog.SetDefault(cfg.NewLogger(cmd.ErrOrStderr()))
	return nil
}

func applyFlagOverrides(cmd *cobra.Command, c *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("redis") {
		c.RedisAddr = redisAddr
	}
	if flags.Changed("log-level") {
		c.LogLevel = logLevel
	}
	if flags.Changed("log-format") {
		c.LogFormat = logFormat
	}
	if flags.Changed("policy") {
		c.ConflictPolicy = conflictPolicy
	}
}

// newCorpusRepo connects to Redis and returns the corpus repository
func newCorpusRepo(ctx context.Context) (corpora.Repository, func(), error) {
	client, err := redis.NewClient(cfg.RedisAddr, nil)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if err := client.Close(); err != nil {
			slog.Warn("Failed to close redis client", "error", err)
		}
	}

	if err := redis.Ping(ctx, client); err != nil {
		cleanup()
		return nil, nil, err
	}

	repo, err := corpora.NewRedis(&corpora.RedisConfig{Client: client})
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	return repo, cleanup, nil
}
