package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-spellindex/internal/corpus"
	"github.com/KirkDiggler/rpg-spellindex/internal/orchestrators/index"
)

var pushCmd = &cobra.Command{
	Use:   "push <name> <corpus.yaml>...",
	Short: "Store YAML corpora in Redis under a name",
	Long:  `Merge the given YAML corpus files and store the result in Redis, replacing any corpus already stored under the name.`,
	Args:  cobra.MinimumNArgs(2),
	RunE:  runPush,
}

func runPush(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	name, paths := args[0], args[1:]

	merged := &corpus.Corpus{}
	for _, path := range paths {
		c, err := corpus.LoadFile(path)
		if err != nil {
			return err
		}
		merged.Merge(c)
	}

	repo, cleanup, err := newCorpusRepo(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	orch, err := index.NewOrchestrator(&index.Config{CorpusRepo: repo})
	if err != nil {
		return err
	}

	out, err := orch.PushCorpus(ctx, &index.PushCorpusInput{Name: name, Corpus: merged})
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "stored %s: %d spells, %d entities, %d references\n",
		name, out.Saved.Spells, out.Saved.Entities, out.Saved.References)
	return nil
}
