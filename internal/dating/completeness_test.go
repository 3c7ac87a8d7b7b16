package dating

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imadgeboyega/nomad-dating/internal/profile"
)

func TestIsPresent(t *testing.T) {
	var nilSlice []string
	var nilPtr *int

	assert.False(t, IsPresent(nil))
	assert.False(t, IsPresent(nilSlice))
	assert.False(t, IsPresent([]string{}))
	assert.False(t, IsPresent([]any{}))
	assert.False(t, IsPresent(nilPtr))

	assert.True(t, IsPresent(0))
	assert.True(t, IsPresent(false))
	assert.True(t, IsPresent(""))
	assert.True(t, IsPresent([]string{"a"}))
	assert.True(t, IsPresent("Lisbon"))
}

func TestMissingFieldsKeepsCatalogOrder(t *testing.T) {
	p := &profile.Profile{
		UID:  "u1",
		City: str("Porto"),
		Attributes: profile.Attributes{
			"funFact": "",
		},
	}

	missing := MissingFields(p, DefaultCatalog)

	assert.Equal(t, []string{
		"age", "orientation", "gender", "interests", "favoriteFood",
		"relationshipGoals", "occupation", "education", "hobbies", "favoriteMovie",
	}, questionFields(missing))
}

func TestMissingFieldsTreatsZeroValuesAsPresent(t *testing.T) {
	catalog := Catalog{
		{Field: "age", Parser: ParserInteger},
		{Field: "enableDating"},
		{Field: "city"},
		{Field: "interests", Parser: ParserStringList},
	}
	p := &profile.Profile{
		UID:       "u1",
		Age:       num(0),
		City:      str(""),
		Interests: []string{},
	}

	assert.Equal(t, []string{"interests"}, questionFields(MissingFields(p, catalog)))
}

func TestMissingFieldsNilProfile(t *testing.T) {
	assert.Len(t, MissingFields(nil, DefaultCatalog), len(DefaultCatalog))
}

func TestMissingFieldsFillingRemovesAll(t *testing.T) {
	p := &profile.Profile{UID: "u1"}

	first := MissingFields(p, DefaultCatalog)
	assert.Equal(t, first, MissingFields(p, DefaultCatalog))

	answers := map[string]any{}
	for _, q := range first {
		switch q.Parser {
		case ParserInteger:
			answers[q.Field] = 31
		case ParserStringList:
			answers[q.Field] = []string{"x"}
		default:
			answers[q.Field] = "value"
		}
	}
	require.NoError(t, p.Apply(answers))

	assert.Empty(t, MissingFields(p, DefaultCatalog))
}
