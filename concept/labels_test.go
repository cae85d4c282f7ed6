package concept

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDescriptor(t *testing.T) {
	tests := []struct {
		name       string
		descriptor string
		wantPref   *Label
		wantDef    *Label
	}{
		{
			name:       "label and definition",
			descriptor: "Cataloguing. Methods of recording.",
			wantPref:   &Label{Lang: "en", Value: "Cataloguing"},
			wantDef:    &Label{Lang: "en", Value: "Methods of recording."},
		},
		{
			name:       "label only",
			descriptor: "Archives",
			wantPref:   &Label{Lang: "en", Value: "Archives"},
		},
		{
			name:       "trailing period",
			descriptor: "  Archives.  ",
			wantPref:   &Label{Lang: "en", Value: "Archives"},
		},
		{
			name:       "blank",
			descriptor: "   ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pref, def := ParseDescriptor(tt.descriptor, "en")
			assert.Equal(t, tt.wantPref, pref)
			assert.Equal(t, tt.wantDef, def)
		})
	}
}

func TestParseDescriptor_Language(t *testing.T) {
	pref, def := ParseDescriptor("Archiv. Sammlung.", "de")
	require.NotNil(t, pref)
	require.NotNil(t, def)
	assert.Equal(t, "de", pref.Lang)
	assert.Equal(t, "de", def.Lang)
}

func TestChangeNote(t *testing.T) {
	tests := []struct {
		name       string
		descriptor string
		indicator  string
		want       *string
	}{
		{"no indicator", "Revised scope", "", nil},
		{"blank indicator", "Revised scope", "  ", nil},
		{"sentinel", "Revised scope", "K", ptr("Revised scope")},
		{"sentinel with spaces", "Revised scope", " K ", ptr("Revised scope")},
		{"prefixed text", "Revised scope", "K2 added subfield", ptr("added subfield")},
		{"prefix only", "Revised scope", "K2", nil},
		{"single other character", "Revised scope", "X", nil},
		{"sentinel with blank descriptor", "", "K", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ChangeNote(tt.descriptor, tt.indicator))
		})
	}
}

func TestHistoryNote(t *testing.T) {
	assert.Nil(t, HistoryNote(""))
	assert.Equal(t, ptr(" Archives. Old "), HistoryNote(" Archives. Old "))
}

func TestMapper(t *testing.T) {
	m := NewMapper("https://bartoc.org/owcm/")

	assert.Equal(t, "https://bartoc.org/owcm/", m.Namespace())
	assert.Equal(t, "https://bartoc.org/owcm/OJ5.11", m.URI("OJ5 .11"))
	assert.Nil(t, m.References(nil))
	assert.Equal(t, []Reference{}, m.References([]string{}))
	assert.Equal(t, []Reference{{URI: "https://bartoc.org/owcm/A1"}}, m.References([]string{"A1"}))
}

func TestMapper_Injective(t *testing.T) {
	m := NewMapper("https://bartoc.org/owcm/")
	codes := []string{"A", "A1", "AA", "AA1", "OJ", "OJ5", "OJ5.11", "OJ5.11.cAbau"}

	seen := make(map[string]string)
	for _, c := range codes {
		uri := m.URI(c)
		if prev, ok := seen[uri]; ok {
			t.Fatalf("codes %s and %s both map to %s", prev, c, uri)
		}
		seen[uri] = c
	}
}

func ptr(s string) *string {
	return &s
}
