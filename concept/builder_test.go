package concept

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/semvocab/code"
	"github.com/c360studio/semvocab/source/sheet"
)

const testNamespace = "https://bartoc.org/owcm/"

func newTestBuilder(workers int) *Builder {
	return NewBuilder(BuilderConfig{
		Namespace: testNamespace,
		SchemeURI: testNamespace,
		Workers:   workers,
	}, nil)
}

func rows(codes ...string) []sheet.Row {
	out := make([]sheet.Row, len(codes))
	for i, c := range codes {
		out[i] = sheet.Row{Sheet: "Sheet1", Line: i + 7, Code: c, Descriptor: "Label " + c}
	}
	return out
}

func TestBuild_ScenarioA(t *testing.T) {
	result, err := newTestBuilder(1).Build(context.Background(), rows("A", "A1", "A2", "AA", "AA1"))
	require.NoError(t, err)
	require.Len(t, result.Concepts, 5)

	top := result.Concepts[0]
	assert.Equal(t, testNamespace+"A", top.URI)
	assert.Equal(t, "skos:Concept", top.Type)
	assert.Nil(t, top.Broader)
	assert.Equal(t, []Reference{
		{URI: testNamespace + "A1"},
		{URI: testNamespace + "A2"},
		{URI: testNamespace + "AA"},
	}, top.Narrower)

	assert.Equal(t, []Reference{{URI: testNamespace + "A"}}, result.Concepts[3].Broader)
	assert.True(t, result.Report.Clean())
}

func TestBuild_ScenarioB(t *testing.T) {
	result, err := newTestBuilder(1).Build(context.Background(), rows("OJ", "OJ5", "OJ5.11", "OJ5.11.cAbau"))
	require.NoError(t, err)

	leaf := result.Concepts[3]
	assert.Equal(t, []Reference{{URI: testNamespace + "OJ5.11"}}, leaf.Broader)
	assert.Nil(t, leaf.Narrower)

	mid := result.Concepts[2]
	assert.Equal(t, []Reference{{URI: testNamespace + "OJ5"}}, mid.Broader)
	assert.Equal(t, []Reference{{URI: testNamespace + "OJ5.11.cAbau"}}, mid.Narrower)
}

func TestBuild_ScenarioE_BlankCodesSkipped(t *testing.T) {
	in := rows("A", "  ", "", "A1")
	result, err := newTestBuilder(1).Build(context.Background(), in)
	require.NoError(t, err)

	assert.Len(t, result.Concepts, 2)
	assert.Equal(t, 4, result.Report.RowsRead)
	assert.Equal(t, 2, result.Report.RowsSkipped)
	assert.Equal(t, 2, result.Report.Concepts)
	assert.Equal(t, "A", result.Concepts[0].Code)
	assert.Equal(t, "A1", result.Concepts[1].Code)
}

func TestBuild_LabelsAndNotes(t *testing.T) {
	in := []sheet.Row{
		{Code: "A", Descriptor: "Cataloguing. Methods of recording.", Change: "K"},
		{Code: "A 1", Descriptor: "Revised scope", Change: "K2 added subfield"},
		{Code: "A2", Descriptor: "Plain"},
	}
	result, err := newTestBuilder(1).Build(context.Background(), in)
	require.NoError(t, err)
	require.Len(t, result.Concepts, 3)

	a := result.Concepts[0]
	require.NotNil(t, a.PrefLabel)
	assert.Equal(t, "Cataloguing", a.PrefLabel.Value)
	require.NotNil(t, a.Definition)
	assert.Equal(t, "Methods of recording.", a.Definition.Value)
	assert.Equal(t, ptr("Cataloguing. Methods of recording."), a.HistoryNote)
	assert.Equal(t, ptr("Cataloguing. Methods of recording."), a.ChangeNote)
	assert.Equal(t, testNamespace, a.InScheme)
	assert.Nil(t, a.AltLabel)

	a1 := result.Concepts[1]
	assert.Equal(t, testNamespace+"A1", a1.URI)
	assert.Equal(t, ptr("added subfield"), a1.ChangeNote)

	assert.Nil(t, result.Concepts[2].ChangeNote)
	assert.Nil(t, result.Concepts[2].Definition)
}

func TestBuild_UnresolvedReferences(t *testing.T) {
	// AB has no top concept A, and OJ5 has no OJ.
	result, err := newTestBuilder(1).Build(context.Background(), rows("AB", "OJ5"))
	require.NoError(t, err)

	require.Len(t, result.Report.Unresolved, 2)
	assert.Equal(t, UnresolvedReference{
		Code:     "AB",
		Relation: RelationBroader,
		Target:   "A",
		URI:      testNamespace + "A",
	}, result.Report.Unresolved[0])
	assert.Equal(t, "OJ", result.Report.Unresolved[1].Target)
	assert.False(t, result.Report.Clean())

	// Dangling references stay in the output.
	assert.Equal(t, []Reference{{URI: testNamespace + "A"}}, result.Concepts[0].Broader)
}

func TestBuild_Duplicates(t *testing.T) {
	result, err := newTestBuilder(1).Build(context.Background(), rows("A", "A1", "A1"))
	require.NoError(t, err)
	assert.Equal(t, []string{"A1"}, result.Report.Duplicates)
	assert.Len(t, result.Concepts, 3)
}

func TestBuild_ClassificationGapAborts(t *testing.T) {
	_, err := newTestBuilder(1).Build(context.Background(), rows("A", "AB.CD"))
	require.Error(t, err)
	assert.ErrorIs(t, err, code.ErrClassificationGap)
}

func TestBuild_TierCounts(t *testing.T) {
	result, err := newTestBuilder(4).Build(context.Background(), rows("A", "AA", "AA1", "OJ5", "OJ5.1", "OJ5.1.x"))
	require.NoError(t, err)

	assert.Equal(t, 1, result.Report.Tiers[code.TierTop])
	assert.Equal(t, 1, result.Report.Tiers[code.TierMiddle])
	assert.Equal(t, 1, result.Report.Tiers[code.TierBottomStandard])
	assert.Equal(t, 1, result.Report.Tiers[code.TierBottomStandardOJ])
	assert.Equal(t, 1, result.Report.Tiers[code.TierBottomDottedMid])
	assert.Equal(t, 1, result.Report.Tiers[code.TierBottomDottedLeaf])
}

func TestConcept_JSONKeyOrder(t *testing.T) {
	result, err := newTestBuilder(1).Build(context.Background(), rows("A"))
	require.NoError(t, err)

	data, err := json.Marshal(result.Concepts[0])
	require.NoError(t, err)

	want := `{"uri":"https://bartoc.org/owcm/A","type":"skos:Concept",` +
		`"prefLabel":{"lang":"en","value":"Label A"},"altLabel":null,"definition":null,` +
		`"historyNote":"Label A","changeNote":null,"inScheme":"https://bartoc.org/owcm/",` +
		`"broader":null,"narrower":[]}`
	assert.Equal(t, want, string(data))
}

func TestNewScheme(t *testing.T) {
	s := NewScheme("https://bartoc.org/owcm/", "OWCM")
	data, err := json.Marshal(s)
	require.NoError(t, err)
	assert.JSONEq(t, `{"uri":"https://bartoc.org/owcm/","type":"skos:ConceptScheme","label":"OWCM"}`, string(data))
}
