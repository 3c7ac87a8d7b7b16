package dating

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/imadgeboyega/nomad-dating/internal/profile"
)

func TestBuildPrompt(t *testing.T) {
	target := &profile.Profile{
		UID:         "me",
		Name:        str("Ana"),
		Age:         num(28),
		City:        str("Lisbon"),
		Orientation: str("straight"),
		Gender:      str("female"),
		Interests:   []string{"surf", "", "books"},
	}
	candidates := []*profile.Profile{
		{UID: "c1", Name: str("Ben"), Age: num(31), City: str("Porto"), Gender: str("male"), Interests: []string{"surf"}},
		nil,
		{UID: "c2"},
	}

	prompt := BuildPrompt(target, candidates)

	assert.Contains(t, prompt, "Name: Ana\n")
	assert.Contains(t, prompt, "Age: 28\n")
	assert.Contains(t, prompt, "City: Lisbon\n")
	assert.Contains(t, prompt, "Orientation: straight\n")
	assert.Contains(t, prompt, "Gender: female\n")
	assert.Contains(t, prompt, "Interests: surf, books\n")
	assert.Contains(t, prompt, "1) UID: c1, Name: Ben, Age: 31, City: Porto,\n")
	assert.Contains(t, prompt, "2) UID: c2, Name: , Age: , City: ,\n")
	assert.Contains(t, prompt, "top 5 most compatible candidates based on age, city, orientation, and shared interests")
	assert.Contains(t, prompt, `"uid" and "reason"`)
	assert.NotContains(t, prompt, "3) UID")
	assert.True(t, strings.Index(prompt, "Target user:") < strings.Index(prompt, "Candidates:"))
}

func TestBuildPromptAbsentFieldsAreEmpty(t *testing.T) {
	prompt := BuildPrompt(&profile.Profile{UID: "me"}, nil)

	assert.Contains(t, prompt, "Name: \n")
	assert.Contains(t, prompt, "Age: \n")
	assert.Contains(t, prompt, "Interests: \n")
	assert.Contains(t, prompt, "Candidates:\n")
}

func TestBuildPromptZeroAgeIsWritten(t *testing.T) {
	prompt := BuildPrompt(&profile.Profile{UID: "me", Age: num(0)}, nil)
	assert.Contains(t, prompt, "Age: 0\n")
}
