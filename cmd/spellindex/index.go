package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-spellindex/internal/aggregation"
	"github.com/KirkDiggler/rpg-spellindex/internal/corpus"
	"github.com/KirkDiggler/rpg-spellindex/internal/entities/dnd5e"
	"github.com/KirkDiggler/rpg-spellindex/internal/errors"
	"github.com/KirkDiggler/rpg-spellindex/internal/orchestrators/index"
)

// Output formats
const (
	outputJSON = "json"
	outputText = "text"
)

var (
	indexFromRedis []string
	indexClass     string
	indexSchool    string
	indexEntity    string
	indexOutput    string
)

var indexCmd = &cobra.Command{
	Use:   "index [corpus.yaml...]",
	Short: "Build the spell groupings of one or more corpora",
	Long: `Scan YAML corpus files (or corpora stored in Redis) and print the spell
groupings. Without a filter the full groupings are printed; --class, --school
and --entity print a single group.`,
	RunE: runIndex,
}

func init() {
	indexCmd.Flags().StringSliceVar(&indexFromRedis, "from-redis", nil, "Stored corpus names to load from Redis")
	indexCmd.Flags().StringVar(&indexClass, "class", "", "Print the group for one class name")
	indexCmd.Flags().StringVar(&indexSchool, "school", "", "Print the group for one school (name or letter code)")
	indexCmd.Flags().StringVar(&indexEntity, "entity", "", "Print the group for one entity key (type|name|source)")
	indexCmd.Flags().StringVarP(&indexOutput, "output", "o", outputJSON, "Output format: json or text")
}

func runIndex(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	vb := errors.NewValidationBuilder()
	errors.ValidateEnum("output", indexOutput, []string{outputJSON, outputText}, vb)
	if len(args) == 0 && len(indexFromRedis) == 0 {
		vb.Field("corpus", "give at least one file or --from-redis name")
	}
	if err := vb.Build(); err != nil {
		return err
	}

	policy, err := cfg.Policy()
	if err != nil {
		return err
	}

	orchConfig := &index.Config{Policy: policy}
	if len(indexFromRedis) > 0 {
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

	merged := &corpus.Corpus{}
	if len(indexFromRedis) > 0 {
		loaded, err := orch.LoadCorpus(ctx, &index.LoadCorpusInput{Names: indexFromRedis})
		if err != nil {
			return err
		}
		merged.Merge(loaded.Corpus)
	}
	for _, path := range args {
		c, err := corpus.LoadFile(path)
		if err != nil {
			return err
		}
		merged.Merge(c)
	}

	out, err := orch.BuildIndex(ctx, &index.BuildIndexInput{Corpus: merged})
	if err != nil {
		return err
	}

	return render(cmd.OutOrStdout(), out, indexOutput)
}

// render prints either the selected group or every grouping
func render(w io.Writer, out *index.BuildIndexOutput, format string) error {
	group, selected, err := selectGroup(out)
	if err != nil {
		return err
	}

	if format == outputJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if selected {
			return enc.Encode(group)
		}
		return enc.Encode(out.Groupings)
	}

	if selected {
		return writeGroup(w, group)
	}
	return writeGroupings(w, out.Groupings)
}

func selectGroup(out *index.BuildIndexOutput) (aggregation.Group, bool, error) {
	switch {
	case indexClass != "":
		group, ok := out.Engine.ByClassName(indexClass)
		if !ok {
			return group, false, errors.NotFoundf("no spells for class %q", indexClass)
		}
		return group, true, nil
	case indexSchool != "":
		school, ok := dnd5e.SchoolFromName(indexSchool)
		if !ok {
			school, ok = dnd5e.SchoolFromCode(strings.ToUpper(indexSchool))
		}
		if !ok && !strings.EqualFold(indexSchool, string(dnd5e.SchoolNone)) {
			return aggregation.Group{}, false, errors.InvalidArgumentf("unknown school %q", indexSchool)
		}
		group, found := out.Groupings.BySchool[school]
		if !found {
			return group, false, errors.NotFoundf("no spells for school %q", indexSchool)
		}
		return group, true, nil
	case indexEntity != "":
		key, err := dnd5e.ParseEntityKey(indexEntity)
		if err != nil {
			return aggregation.Group{}, false, errors.WrapWithCode(err, errors.CodeInvalidArgument, "invalid --entity")
		}
		group, found := out.Groupings.ByEntity[key]
		if !found {
			return group, false, errors.NotFoundf("no spells granted by %s", key)
		}
		return group, true, nil
	}
	return aggregation.Group{}, false, nil
}

func writeGroupings(w io.Writer, g *aggregation.Groupings) error {
	if err := writeLevels(w, "All spells", g.All); err != nil {
		return err
	}

	classes := make([]string, 0, len(g.ByClass))
	for name := range g.ByClass {
		classes = append(classes, name)
	}
	sort.Strings(classes)
	for _, name := range classes {
		if err := writeGroup(w, g.ByClass[name]); err != nil {
			return err
		}
	}

	schools := make([]string, 0, len(g.BySchool))
	for school := range g.BySchool {
		schools = append(schools, string(school))
	}
	sort.Strings(schools)
	for _, school := range schools {
		if err := writeGroup(w, g.BySchool[dnd5e.School(school)]); err != nil {
			return err
		}
	}

	entities := make([]string, 0, len(g.ByEntity))
	for key := range g.ByEntity {
		entities = append(entities, string(key))
	}
	sort.Strings(entities)
	for _, key := range entities {
		if err := writeGroup(w, g.ByEntity[dnd5e.EntityKey(key)]); err != nil {
			return err
		}
	}
	return nil
}

func writeGroup(w io.Writer, g aggregation.Group) error {
	title := g.DisplayName
	if g.EntityType != "" && g.Dimension == aggregation.DimensionEntity {
		title = fmt.Sprintf("%s (%s)", g.DisplayName, g.EntityType)
	}
	return writeLevels(w, title, g.Levels)
}

func writeLevels(w io.Writer, title string, levels aggregation.LevelEntries) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "== %s ==\n", title)
	for level, bucket := range levels {
		if len(bucket) == 0 {
			continue
		}
		heading := dnd5e.LevelName(level)
		for _, entry := range bucket {
			notes := entry.Qualifier
			if entry.Expanded {
				notes = strings.TrimSpace(notes + " (expanded)")
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\n", heading, entry.Name, notes)
			heading = ""
		}
	}
	fmt.Fprintln(tw)
	return tw.Flush()
}
