package dating

import (
	"strings"

	"github.com/imadgeboyega/nomad-dating/internal/profile"
)

// BuildPool narrows the population to the candidates sent for ranking.
// The target is excluded, straight targets only see the opposite gender, and
// the result is cut to the first maxSize entries in population order.
func BuildPool(target *profile.Profile, population []*profile.Profile, maxSize int) []*profile.Profile {
	if target == nil || maxSize <= 0 {
		return []*profile.Profile{}
	}

	wantGender, filterGender := genderFilter(target)

	pool := make([]*profile.Profile, 0, min(maxSize, len(population)))
	for _, candidate := range population {
		if len(pool) >= maxSize {
			break
		}
		if candidate == nil || candidate.UID == target.UID {
			continue
		}
		if filterGender && !strings.EqualFold(deref(candidate.Gender), wantGender) {
			continue
		}
		pool = append(pool, candidate)
	}

	return pool
}

// genderFilter returns the gender candidates must have. Only a straight
// orientation with a non-empty gender filters.
func genderFilter(target *profile.Profile) (string, bool) {
	gender := strings.TrimSpace(deref(target.Gender))
	if !strings.EqualFold(deref(target.Orientation), "straight") || gender == "" {
		return "", false
	}
	return oppositeGender(gender), true
}

func oppositeGender(gender string) string {
	if strings.EqualFold(gender, "male") {
		return "female"
	}
	return "male"
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
