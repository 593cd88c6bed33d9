package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassSectionList(t *testing.T) {
	tests := []struct {
		name     string
		sections string
		expected []string
	}{
		{"plain list", "A,B,C", []string{"A", "B", "C"}},
		{"whitespace trimmed", " A , B ,C ", []string{"A", "B", "C"}},
		{"empty entries dropped", "A,,B,", []string{"A", "B"}},
		{"empty string", "", nil},
		{"only separators", ", ,", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			class := &Class{Sections: tt.sections}
			assert.Equal(t, tt.expected, class.SectionList())
		})
	}
}

func TestCollectSections(t *testing.T) {
	classes := []*Class{
		{Sections: "B,A"},
		{Sections: "A,C"},
		{Sections: ""},
	}

	sections := CollectSections(classes)

	assert.Equal(t, []Section{
		{ID: 1, Name: "A"},
		{ID: 2, Name: "B"},
		{ID: 3, Name: "C"},
	}, sections)
}

func TestCollectSectionsEmpty(t *testing.T) {
	assert.Empty(t, CollectSections(nil))
	assert.Empty(t, CollectSections([]*Class{{Sections: ""}}))
}
