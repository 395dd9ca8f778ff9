//nolint:revive // types is a standard Go package name pattern
package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResumeData_Filename(t *testing.T) {
	tests := []struct {
		name  string
		first string
		last  string
		ext   string
		want  string
	}{
		{name: "simple", first: "Jane", last: "Doe", ext: "pdf", want: "jane_doe_resume.pdf"},
		{name: "dot extension", first: "Jane", last: "Doe", ext: ".html", want: "jane_doe_resume.html"},
		{name: "diacritics stripped", first: "Renée", last: "Müller", ext: "pdf", want: "renee_muller_resume.pdf"},
		{name: "multi word name", first: "Mary Ann", last: "O'Neil", ext: "pdf", want: "mary-ann_oneil_resume.pdf"},
		{name: "stroke letters", first: "Łukasz", last: "Dąbrowski", ext: "pdf", want: "lukasz_dabrowski_resume.pdf"},
		{name: "slashed o", first: "Søren", last: "Ørsted", ext: "pdf", want: "soren_orsted_resume.pdf"},
		{name: "sharp s", first: "Ute", last: "Strauß", ext: "pdf", want: "ute_strauss_resume.pdf"},
		{name: "ligatures", first: "Ænne", last: "Cœur", ext: "pdf", want: "aenne_coeur_resume.pdf"},
		{name: "crossed d", first: "Đorđe", last: "Đoković", ext: "pdf", want: "dorde_dokovic_resume.pdf"},
		{name: "non latin dropped", first: "李", last: "Wei", ext: "pdf", want: "wei_resume.pdf"},
		{name: "no extension", first: "Jane", last: "Doe", ext: "", want: "jane_doe_resume"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &ResumeData{PersonalInfo: PersonalInfo{FirstName: tt.first, LastName: tt.last}}
			assert.Equal(t, tt.want, r.Filename(tt.ext))
		})
	}
}
