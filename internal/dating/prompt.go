package dating

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/imadgeboyega/nomad-dating/internal/profile"
)

// TopMatchCount is how many candidates the ranking prompt asks for
const TopMatchCount = 5

// BuildPrompt renders the target and the candidate pool as one ranking
// request. Absent fields are written as empty strings.
func BuildPrompt(target *profile.Profile, candidates []*profile.Profile) string {
	var b strings.Builder

	b.WriteString("You are a matchmaking assistant.\n")
	b.WriteString("Here is the target user's data:\n\n")
	b.WriteString("Target user:\n")
	if target != nil {
		fmt.Fprintf(&b, "Name: %s\n", deref(target.Name))
		fmt.Fprintf(&b, "Age: %s\n", ageText(target.Age))
		fmt.Fprintf(&b, "City: %s\n", deref(target.City))
		fmt.Fprintf(&b, "Orientation: %s\n", deref(target.Orientation))
		fmt.Fprintf(&b, "Gender: %s\n", deref(target.Gender))
		fmt.Fprintf(&b, "Interests: %s\n", joinList(target.Interests))
	}

	b.WriteString("\nBelow are candidate user profiles:\n\n")
	b.WriteString("Candidates:\n")
	n := 0
	for _, c := range candidates {
		if c == nil {
			continue
		}
		n++
		fmt.Fprintf(&b, "%d) UID: %s, Name: %s, Age: %s, City: %s,\n", n, c.UID, deref(c.Name), ageText(c.Age), deref(c.City))
		fmt.Fprintf(&b, "Orientation: %s,\n", deref(c.Orientation))
		fmt.Fprintf(&b, "Gender: %s,\n", deref(c.Gender))
		fmt.Fprintf(&b, "Interests: %s\n", joinList(c.Interests))
	}

	fmt.Fprintf(&b, "\nPlease pick the top %d most compatible candidates based on age, city, orientation, and shared interests. ", TopMatchCount)
	b.WriteString(`Return a JSON array of objects with "uid" and "reason".`)

	return b.String()
}

func ageText(age *int) string {
	if age == nil {
		return ""
	}
	return strconv.Itoa(*age)
}

func joinList(items []string) string {
	kept := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			kept = append(kept, item)
		}
	}
	return strings.Join(kept, ", ")
}
