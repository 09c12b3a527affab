package index_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/rpg-spellindex/internal/catalog"
	"github.com/KirkDiggler/rpg-spellindex/internal/clients/external"
	externalmock "github.com/KirkDiggler/rpg-spellindex/internal/clients/external/mock"
	"github.com/KirkDiggler/rpg-spellindex/internal/corpus"
	"github.com/KirkDiggler/rpg-spellindex/internal/entities/dnd5e"
	"github.com/KirkDiggler/rpg-spellindex/internal/errors"
	"github.com/KirkDiggler/rpg-spellindex/internal/orchestrators/index"
	"github.com/KirkDiggler/rpg-spellindex/internal/registry"
	"github.com/KirkDiggler/rpg-spellindex/internal/repositories/corpora"
	corporamock "github.com/KirkDiggler/rpg-spellindex/internal/repositories/corpora/mock"
	"github.com/KirkDiggler/rpg-spellindex/internal/testutils"
)

type OrchestratorTestSuite struct {
	suite.Suite
	ctrl         *gomock.Controller
	mockRepo     *corporamock.MockRepository
	mockSRD      *externalmock.MockClient
	orchestrator index.Service
	ctx          context.Context
}

func TestOrchestratorSuite(t *testing.T) {
	suite.Run(t, new(OrchestratorTestSuite))
}

func (s *OrchestratorTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockRepo = corporamock.NewMockRepository(s.ctrl)
	s.mockSRD = externalmock.NewMockClient(s.ctrl)
	s.ctx = context.Background()

	o, err := index.NewOrchestrator(&index.Config{
		CorpusRepo: s.mockRepo,
		SRDClient:  s.mockSRD,
	})
	s.Require().NoError(err)
	s.orchestrator = o
}

func (s *OrchestratorTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *OrchestratorTestSuite) build() *index.BuildIndexOutput {
	out, err := s.orchestrator.BuildIndex(s.ctx, &index.BuildIndexInput{Corpus: testutils.SpellCorpus()})
	s.Require().NoError(err)
	return out
}

func (s *OrchestratorTestSuite) TestBuildIndexBaseClassGrant() {
	out := s.build()

	d, ok := out.Registry.GetReference(testutils.Fireball, testutils.Wizard)
	s.Require().True(ok)
	s.False(d.Expanded)
	s.False(d.IsSpecific())

	record, ok := out.Registry.Record(testutils.Fireball)
	s.Require().True(ok)
	s.Equal(3, record.Level())
	s.True(record.HasClass("wizard"))
	s.False(record.HasExpandedClass("wizard"))

	wizard := out.Groupings.ByClass["wizard"]
	s.Contains(wizard.Levels.Keys(3), testutils.Fireball)
}

func (s *OrchestratorTestSuite) TestBuildIndexExpandedClassGrant() {
	out := s.build()

	record, _ := out.Registry.Record(testutils.Fireball)
	s.True(record.HasClass("ranger"))
	s.True(record.HasExpandedClass("ranger"))
	s.Contains(record.ExpandedReferences(), testutils.Ranger)
	s.NotContains(record.BaseReferences(), testutils.Ranger)

	ranger := out.Groupings.ByClass["ranger"]
	s.Require().Len(ranger.Levels[3], 1)
	s.True(ranger.Levels[3][0].Expanded)
}

func (s *OrchestratorTestSuite) TestBuildIndexSpecificDescriptorSurvivesBareGrant() {
	out := s.build()

	d, ok := out.Registry.GetReference(testutils.FindFamiliar, testutils.PactChain)
	s.Require().True(ok)
	s.Require().NotNil(d.ClassLevelThreshold)
	s.Equal(3, *d.ClassLevelThreshold)

	chain := out.Groupings.ByEntity[testutils.PactChain]
	s.Require().Len(chain.Levels[1], 1)
	s.Equal("at class level 3", chain.Levels[1][0].Qualifier)
}

func (s *OrchestratorTestSuite) TestBuildIndexUnknownSchool() {
	out := s.build()

	record, ok := out.Registry.Record(testutils.EgoWhip)
	s.Require().True(ok)
	s.Equal(dnd5e.SchoolNone, record.School())
	s.Empty(record.ReferencingKeys())

	none := out.Groupings.BySchool[dnd5e.SchoolNone]
	s.Equal([]dnd5e.EntityKey{testutils.EgoWhip}, none.Levels.Keys(2))
	s.Equal(1, out.Diagnostics.Count(errors.CodeUnknownSchoolCode))
}

func (s *OrchestratorTestSuite) TestBuildIndexMissingEntity() {
	out := s.build()

	_, ok := out.Registry.GetReference(testutils.Fireball, testutils.MissingFeat)
	s.False(ok)
	_, ok = out.Groupings.ByEntity[testutils.MissingFeat]
	s.False(ok)
	s.Equal(1, out.Diagnostics.Count(errors.CodeMissingReferencedEntity))
}

func (s *OrchestratorTestSuite) TestBuildIndexDescriptorIssues() {
	out := s.build()

	// unknown text becomes a bare grant
	d, ok := out.Registry.GetReference(testutils.Guidance, testutils.Acolyte)
	s.Require().True(ok)
	s.False(d.IsSpecific())
	s.Equal(1, out.Diagnostics.Count(errors.CodeUnknownDescriptorSyntax))

	// the first specific descriptor is kept
	d, ok = out.Registry.GetReference(testutils.MindBlank, testutils.MagicInit)
	s.Require().True(ok)
	s.Require().NotNil(d.SpellSlotLevelOverride)
	s.Equal(8, *d.SpellSlotLevelOverride)
	s.Nil(d.ClassLevelThreshold)
	s.Equal(1, out.Diagnostics.Count(errors.CodeAmbiguousSpecificOverwrite))

	initiate := out.Groupings.ByEntity[testutils.MagicInit]
	s.Equal("as cantrip", initiate.Levels[0][0].Qualifier)
	s.Equal("with access to 8th-level spells", initiate.Levels[8][0].Qualifier)
}

func (s *OrchestratorTestSuite) TestBuildIndexSkipsRejectedRecords() {
	c := testutils.SpellCorpus()
	lich := dnd5e.NewEntityKey("monster", "Lich", "MM")
	c.Entities = append(c.Entities, catalog.Record{EntityKey: lich, Name: "Lich"})
	c.Spells = append(c.Spells, dnd5e.SpellBundle{Key: dnd5e.NewEntityKey(dnd5e.EntityTypeFeat, "Alert", "PHB"), Level: "0"})
	c.References = append(c.References, corpus.Reference{Spell: testutils.Fireball, Entity: lich})

	out, err := s.orchestrator.BuildIndex(s.ctx, &index.BuildIndexInput{Corpus: c})
	s.Require().NoError(err)

	s.Equal(2, out.Diagnostics.Count(errors.CodeInvalidCatalogRecord))
	// the reference to the skipped entity is dropped like any unknown key
	s.Equal(2, out.Diagnostics.Count(errors.CodeMissingReferencedEntity))
	_, ok := out.Groupings.ByEntity[lich]
	s.False(ok)

	// everything else is indexed as usual
	s.Equal(len(testutils.SpellCorpus().Spells), out.Registry.Len())
	wizard := out.Groupings.ByClass["wizard"]
	s.Equal(3, wizard.Levels.Len())
	_, ok = out.Groupings.ByEntity[testutils.MagicInit]
	s.True(ok)
}

func (s *OrchestratorTestSuite) TestBuildIndexDuplicateBundleFirstWins() {
	c := testutils.SpellCorpus()
	c.Spells = append(c.Spells, dnd5e.SpellBundle{Key: testutils.Fireball, Name: "Fireball", Level: "5", School: "C"})

	out, err := s.orchestrator.BuildIndex(s.ctx, &index.BuildIndexInput{Corpus: c})
	s.Require().NoError(err)

	record, ok := out.Registry.Record(testutils.Fireball)
	s.Require().True(ok)
	s.Equal(3, record.Level())
	s.Equal(dnd5e.SchoolEvocation, record.School())
	s.Contains(out.Groupings.All.Keys(3), testutils.Fireball)
	s.NotContains(out.Groupings.All.Keys(5), testutils.Fireball)
}

func (s *OrchestratorTestSuite) TestBuildIndexLastSpecificPolicy() {
	o, err := index.NewOrchestrator(&index.Config{Policy: registry.LastSpecificWins{}})
	s.Require().NoError(err)

	out, err := o.BuildIndex(s.ctx, &index.BuildIndexInput{Corpus: testutils.SpellCorpus()})
	s.Require().NoError(err)

	d, ok := out.Registry.GetReference(testutils.MindBlank, testutils.MagicInit)
	s.Require().True(ok)
	s.Nil(d.SpellSlotLevelOverride)
	s.Require().NotNil(d.ClassLevelThreshold)
	s.Equal(5, *d.ClassLevelThreshold)
}

func (s *OrchestratorTestSuite) TestBuildIndexLevelView() {
	out := s.build()

	s.Equal(out.Registry.Len(), out.Groupings.All.Len())
	s.Equal([]dnd5e.EntityKey{testutils.Guidance}, out.Groupings.All.Keys(0))
	s.Equal([]dnd5e.EntityKey{testutils.MindBlank}, out.Groupings.All.Keys(8))
}

func (s *OrchestratorTestSuite) TestBuildIndexErrors() {
	testCases := []struct {
		name  string
		ctx   func() context.Context
		input *index.BuildIndexInput
	}{
		{name: "nil input", ctx: context.Background, input: nil},
		{name: "nil corpus", ctx: context.Background, input: &index.BuildIndexInput{}},
		{
			name: "canceled",
			ctx: func() context.Context {
				ctx, cancel := context.WithCancel(context.Background())
				cancel()
				return ctx
			},
			input: &index.BuildIndexInput{Corpus: testutils.SpellCorpus()},
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			out, err := s.orchestrator.BuildIndex(tc.ctx(), tc.input)
			s.Error(err)
			s.Nil(out)
		})
	}
}

func (s *OrchestratorTestSuite) TestImportSRD() {
	level := 1
	fetched := testutils.SpellCorpus()

	s.mockSRD.EXPECT().
		FetchCorpus(s.ctx, &external.FetchCorpusInput{Level: &level, Class: "wizard"}).
		Return(fetched, nil)
	s.mockRepo.EXPECT().
		Save(s.ctx, corpora.SaveInput{Name: "srd", Corpus: fetched}).
		Return(&corpora.SaveOutput{Spells: len(fetched.Spells)}, nil)

	out, err := s.orchestrator.ImportSRD(s.ctx, &index.ImportSRDInput{Name: "srd", Level: &level, Class: "wizard"})
	s.Require().NoError(err)
	s.Equal(fetched, out.Corpus)
	s.Equal(len(fetched.Spells), out.Saved.Spells)
}

func (s *OrchestratorTestSuite) TestImportSRDWithoutSave() {
	s.mockSRD.EXPECT().FetchCorpus(s.ctx, gomock.Any()).Return(&corpus.Corpus{}, nil)

	out, err := s.orchestrator.ImportSRD(s.ctx, nil)
	s.Require().NoError(err)
	s.Nil(out.Saved)
}

func (s *OrchestratorTestSuite) TestImportSRDFetchFails() {
	s.mockSRD.EXPECT().FetchCorpus(s.ctx, gomock.Any()).
		Return(nil, errors.Unavailablef("dnd5eapi down"))

	_, err := s.orchestrator.ImportSRD(s.ctx, &index.ImportSRDInput{Name: "srd"})
	s.Equal(errors.CodeUnavailable, errors.GetCode(err))
}

func (s *OrchestratorTestSuite) TestPushCorpus() {
	c := testutils.SpellCorpus()
	s.mockRepo.EXPECT().
		Save(s.ctx, corpora.SaveInput{Name: "phb", Corpus: c}).
		Return(&corpora.SaveOutput{Spells: 5, Entities: 6, References: 12}, nil)

	out, err := s.orchestrator.PushCorpus(s.ctx, &index.PushCorpusInput{Name: "phb", Corpus: c})
	s.Require().NoError(err)
	s.Equal(12, out.Saved.References)
}

func (s *OrchestratorTestSuite) TestPushCorpusRepoError() {
	s.mockRepo.EXPECT().Save(s.ctx, gomock.Any()).Return(nil, errors.InvalidArgument("corpus name cannot be empty"))

	_, err := s.orchestrator.PushCorpus(s.ctx, &index.PushCorpusInput{Corpus: &corpus.Corpus{}})
	s.True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorTestSuite) TestLoadCorpusMerges() {
	first := testutils.SpellCorpus()
	second := &corpus.Corpus{References: []corpus.Reference{{
		Spell:  testutils.EgoWhip,
		Entity: testutils.Wizard,
	}}}

	gomock.InOrder(
		s.mockRepo.EXPECT().Get(s.ctx, corpora.GetInput{Name: "phb"}).Return(&corpora.GetOutput{Corpus: first}, nil),
		s.mockRepo.EXPECT().Get(s.ctx, corpora.GetInput{Name: "ua"}).Return(&corpora.GetOutput{Corpus: second}, nil),
	)

	out, err := s.orchestrator.LoadCorpus(s.ctx, &index.LoadCorpusInput{Names: []string{"phb", "ua"}})
	s.Require().NoError(err)
	s.Len(out.Corpus.References, len(testutils.SpellCorpus().References)+1)
}

func (s *OrchestratorTestSuite) TestLoadCorpusNotFound() {
	s.mockRepo.EXPECT().Get(s.ctx, corpora.GetInput{Name: "nope"}).Return(nil, errors.NotFoundf("corpus nope not found"))

	_, err := s.orchestrator.LoadCorpus(s.ctx, &index.LoadCorpusInput{Names: []string{"nope"}})
	s.True(errors.IsNotFound(err))

	_, err = s.orchestrator.LoadCorpus(s.ctx, &index.LoadCorpusInput{})
	s.True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorTestSuite) TestMissingDependencies() {
	o, err := index.NewOrchestrator(&index.Config{})
	s.Require().NoError(err)

	_, err = o.ImportSRD(s.ctx, nil)
	s.Equal(errors.CodeUnavailable, errors.GetCode(err))

	_, err = o.PushCorpus(s.ctx, &index.PushCorpusInput{Name: "phb"})
	s.Equal(errors.CodeUnavailable, errors.GetCode(err))

	_, err = o.LoadCorpus(s.ctx, &index.LoadCorpusInput{Names: []string{"phb"}})
	s.Equal(errors.CodeUnavailable, errors.GetCode(err))

	_, err = index.NewOrchestrator(nil)
	s.Error(err)
}
