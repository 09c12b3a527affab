package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-spellindex/internal/aggregation"
	"github.com/KirkDiggler/rpg-spellindex/internal/testutils"
)

type CLITestSuite struct {
	suite.Suite
	mr         *miniredis.Miniredis
	corpusPath string
}

func TestCLISuite(t *testing.T) {
	suite.Run(t, new(CLITestSuite))
}

func (s *CLITestSuite) SetupTest() {
	s.mr = miniredis.RunT(s.T())

	data, err := testutils.SpellCorpus().EncodeYAML()
	s.Require().NoError(err)
	s.corpusPath = filepath.Join(s.T().TempDir(), "corpus.yaml")
	s.Require().NoError(os.WriteFile(s.corpusPath, data, 0o600))

	resetFlags(rootCmd)
}

// resetFlags puts every flag back to its default between runs
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

func (s *CLITestSuite) run(args ...string) (string, error) {
	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(append([]string{"--redis", s.mr.Addr(), "--log-level", "error"}, args...))
	defer resetFlags(rootCmd)

	err := rootCmd.ExecuteContext(context.Background())
	return stdout.String(), err
}

func (s *CLITestSuite) TestIndexJSON() {
	out, err := s.run("index", s.corpusPath)
	s.Require().NoError(err)

	var groupings aggregation.Groupings
	s.Require().NoError(json.Unmarshal([]byte(out), &groupings))
	s.Contains(groupings.ByClass, "wizard")
	s.Contains(groupings.ByClass, "ranger")
	s.Equal(5, groupings.All.Len())
}

func (s *CLITestSuite) TestIndexClassText() {
	out, err := s.run("index", s.corpusPath, "--class", "Ranger", "-o", "text")
	s.Require().NoError(err)

	s.Contains(out, "== Ranger ==")
	s.Contains(out, "Fireball")
	s.Contains(out, "(expanded)")
	s.NotContains(out, "Find Familiar")
}

func (s *CLITestSuite) TestIndexEntityGroup() {
	out, err := s.run("index", s.corpusPath, "--entity", string(testutils.PactChain))
	s.Require().NoError(err)

	var group aggregation.Group
	s.Require().NoError(json.Unmarshal([]byte(out), &group))
	s.Equal("Pact of the Chain", group.DisplayName)
	s.Require().Len(group.Levels[1], 1)
	s.Equal("at class level 3", group.Levels[1][0].Qualifier)
}

func (s *CLITestSuite) TestIndexSchoolNone() {
	out, err := s.run("index", s.corpusPath, "--school", "none", "-o", "text")
	s.Require().NoError(err)
	s.Contains(out, "Ego Whip")
}

func (s *CLITestSuite) TestIndexErrors() {
	testCases := []struct {
		name string
		args []string
	}{
		{name: "no corpus", args: []string{"index"}},
		{name: "bad output", args: []string{"index", "-o", "xml"}},
		{name: "unknown class", args: []string{"index", "--class", "bard"}},
		{name: "bad policy", args: []string{"--policy", "random", "index"}},
		{name: "missing file", args: []string{"index", "does-not-exist.yaml"}},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			if tc.name == "unknown class" {
				tc.args = append(tc.args, s.corpusPath)
			}
			_, err := s.run(tc.args...)
			s.Error(err)
		})
	}
}

func (s *CLITestSuite) TestPushThenIndexFromRedis() {
	out, err := s.run("push", "phb", s.corpusPath)
	s.Require().NoError(err)
	s.Contains(out, "stored phb: 5 spells, 6 entities, 12 references")

	out, err = s.run("index", "--from-redis", "phb", "--class", "wizard")
	s.Require().NoError(err)

	var group aggregation.Group
	s.Require().NoError(json.Unmarshal([]byte(out), &group))
	s.Equal(3, group.Levels.Len())
}

func (s *CLITestSuite) TestImportSRDRequiresDestination() {
	_, err := s.run("import-srd")
	s.Error(err)
}
