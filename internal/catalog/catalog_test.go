package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolPtr(b bool) *bool { return &b }

func ids(templates []Template) []string {
	out := make([]string, 0, len(templates))
	for _, t := range templates {
		out = append(out, t.ID)
	}
	return out
}

func TestDefault_LoadsEmbeddedCatalog(t *testing.T) {
	c := Default()
	require.NotNil(t, c)
	assert.Equal(t, 8, c.Len())
	assert.Same(t, c, Default(), "catalog is loaded once")

	for _, tpl := range c.List(Filter{}) {
		assert.NotEmpty(t, tpl.Name, tpl.ID)
		assert.NotEmpty(t, tpl.Layout, tpl.ID)
	}
}

func TestGet(t *testing.T) {
	c := Default()

	basic, err := c.Get("basic")
	require.NoError(t, err)
	assert.False(t, basic.IsPremium)
	assert.Equal(t, "basic", basic.Layout)

	modern, err := c.Get("modern")
	require.NoError(t, err)
	assert.True(t, modern.IsPremium)
	assert.Equal(t, "#2563eb", modern.Accent)
}

func TestGet_Unknown(t *testing.T) {
	_, err := Default().Get("does-not-exist")
	require.Error(t, err)

	var unknown *UnknownTemplateError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "does-not-exist", unknown.ID)
	assert.Equal(t, `unknown template: "does-not-exist"`, err.Error())

	_, err = Default().Get("")
	require.ErrorAs(t, err, &unknown)
	assert.Contains(t, err.Error(), "no template id")
}

func TestGet_ReturnsCopy(t *testing.T) {
	c := Default()
	tpl, err := c.Get("tech")
	require.NoError(t, err)
	tpl.Category[0] = "mutated"

	again, err := c.Get("tech")
	require.NoError(t, err)
	assert.Equal(t, "tech", again.Category[0])
}

func TestList_Filters(t *testing.T) {
	c := Default()

	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{
			name:   "no filter keeps catalog order",
			filter: Filter{},
			want:   []string{"basic", "classic", "modern", "creative", "executive", "tech", "developer-pro", "minimal"},
		},
		{
			name:   "free only",
			filter: Filter{Premium: boolPtr(false)},
			want:   []string{"basic", "classic", "tech", "minimal"},
		},
		{
			name:   "premium only",
			filter: Filter{Premium: boolPtr(true)},
			want:   []string{"modern", "creative", "executive", "developer-pro"},
		},
		{
			name:   "category tag case-insensitive",
			filter: Filter{Category: "Professional"},
			want:   []string{"classic", "modern", "executive", "developer-pro"},
		},
		{
			name:   "category combined with premium",
			filter: Filter{Category: "tech", Premium: boolPtr(false)},
			want:   []string{"tech"},
		},
		{
			name:   "free text matches tag substring",
			filter: Filter{Query: "engin"},
			want:   []string{"tech", "developer-pro"},
		},
		{
			name:   "free text matches name",
			filter: Filter{Query: "minim"},
			want:   []string{"minimal"},
		},
		{
			name:   "no match",
			filter: Filter{Category: "legal"},
			want:   []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(c.List(tt.filter)))
		})
	}
}

func TestNew_RejectsDuplicates(t *testing.T) {
	_, err := New([]Template{{ID: "a", Layout: "basic"}, {ID: "a", Layout: "basic"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate template id")

	_, err = New([]Template{{Layout: "basic"}})
	require.Error(t, err)
}

func TestLoad_InvalidDocument(t *testing.T) {
	_, err := Load([]byte(`[{"id": "x"}]`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid template catalog")
}

func TestSampleResume(t *testing.T) {
	r, err := SampleResume()
	require.NoError(t, err)
	require.NoError(t, r.Validate())
	assert.Equal(t, "Alex", r.PersonalInfo.FirstName)
	assert.Len(t, r.Skills, 7)

	other, err := SampleResume()
	require.NoError(t, err)
	other.Skills[0] = "changed"
	assert.Equal(t, "Go", r.Skills[0])
}
