package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-spellindex/internal/clients/external"
	"github.com/KirkDiggler/rpg-spellindex/internal/errors"
	"github.com/KirkDiggler/rpg-spellindex/internal/orchestrators/index"
)

var (
	srdName  string
	srdLevel int
	srdClass string
	srdOut   string
)

var importSRDCmd = &cobra.Command{
	Use:   "import-srd",
	Short: "Pull the SRD spells and classes from the D&D 5e API",
	Long: `Fetch spells and classes from the D&D 5e API and turn every class spell
list into base references. Write the corpus to a YAML file with --out, store it
in Redis with --name, or both.`,
	RunE: runImportSRD,
}

func init() {
	importSRDCmd.Flags().StringVar(&srdName, "name", "", "Store the corpus in Redis under this name")
	importSRDCmd.Flags().IntVar(&srdLevel, "level", -1, "Only spells of this level (0-9)")
	importSRDCmd.Flags().StringVar(&srdClass, "class", "", "Only spells on this class's list (API index, e.g. wizard)")
	importSRDCmd.Flags().StringVar(&srdOut, "out", "", "Write the corpus as YAML to this file")
}

func runImportSRD(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	if srdName == "" && srdOut == "" {
		return errors.InvalidArgument("give --name, --out or both")
	}

	input := &index.ImportSRDInput{Name: srdName, Class: srdClass}
	if cmd.Flags().Changed("level") {
		if srdLevel < 0 || srdLevel > 9 {
			return errors.InvalidArgumentf("--level must be 0-9, got %d", srdLevel)
		}
		level := srdLevel
		input.Level = &level
	}

	srdClient, err := external.New(&external.Config{
		BaseURL:     cfg.DND5eBaseURL,
		HTTPTimeout: cfg.HTTPTimeout,
	})
	if err != nil {
		return err
	}

	orchConfig := &index.Config{SRDClient: srdClient}
	if srdName != "" {
		repo, cleanup, err := newCorpusRepo(ctx)
		if err != nil {
			return err
		}
		defer cleanup()
		orchConfig.CorpusRepo = repo
	}

	orch, err := index.NewOrchestrator(orchConfig)
	if err != nil {
		return err
	}

	out, err := orch.ImportSRD(ctx, input)
	if err != nil {
		return err
	}

	if srdOut != "" {
		data, err := out.Corpus.EncodeYAML()
		if err != nil {
			return err
		}
		if err := os.WriteFile(srdOut, data, 0o600); err != nil {
			return errors.Wrapf(err, "failed to write %s", srdOut)
		}
		slog.Info("Wrote SRD corpus", "path", srdOut)
	}
	if out.Saved != nil {
		slog.Info("Stored SRD corpus", "name", srdName, "spells", out.Saved.Spells)
	}
	return nil
}
