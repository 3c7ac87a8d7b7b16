package dating

import (
	"github.com/imadgeboyega/nomad-dating/internal/profile"
)

func str(s string) *string { return &s }

func num(n int) *int { return &n }

// completeProfile answers every default catalog question
func completeProfile(uid, gender, orientation string) *profile.Profile {
	return &profile.Profile{
		UID:          uid,
		Name:         str("User " + uid),
		EnableDating: true,
		Age:          num(30),
		Gender:       str(gender),
		City:         str("Lisbon"),
		Orientation:  str(orientation),
		Interests:    []string{"surfing", "coffee"},
		Hobbies:      []string{"hiking"},
		Attributes: profile.Attributes{
			"favoriteFood":      "sushi",
			"funFact":           "juggles",
			"relationshipGoals": "serious",
			"occupation":        "nurse",
			"education":         "BSc",
			"favoriteMovie":     "Arrival",
		},
	}
}
