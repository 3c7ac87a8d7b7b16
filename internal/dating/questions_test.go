package dating

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAnswerInteger(t *testing.T) {
	tests := []struct {
		raw  string
		want any
	}{
		{"29", 29},
		{" 42 ", 42},
		{"29 years", 29},
		{"-3", -3},
		{"abc", nil},
		{"", nil},
		{"   ", nil},
		{"age 30", nil},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseAnswer(ParserInteger, tt.raw))
		})
	}
}

func TestParseAnswerStringList(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, ParseAnswer(ParserStringList, " a, b ,,c "))
	assert.Equal(t, []string{}, ParseAnswer(ParserStringList, " , ,"))
	assert.Equal(t, []string{"solo"}, ParseAnswer(ParserStringList, "solo"))
}

func TestParseAnswerIdentity(t *testing.T) {
	assert.Equal(t, "  as typed ", ParseAnswer(ParserIdentity, "  as typed "))
	assert.Equal(t, "x", ParseAnswer("", "x"))
}

func TestDefaultCatalog(t *testing.T) {
	assert.Equal(t, []string{
		"age", "city", "orientation", "gender", "interests", "favoriteFood",
		"funFact", "relationshipGoals", "occupation", "education", "hobbies", "favoriteMovie",
	}, DefaultCatalog.Fields())
	assert.Equal(t, ParserInteger, DefaultCatalog[0].Parser)
}

func TestCoerceAnswer(t *testing.T) {
	assert.Equal(t, 29, coerceAnswer(ParserInteger, float64(29)))
	assert.Nil(t, coerceAnswer(ParserInteger, nil))
	assert.Equal(t, []string{"a", "b"}, coerceAnswer(ParserStringList, []any{"a", "b"}))
	assert.Equal(t, "text", coerceAnswer(ParserIdentity, "text"))
}
