package dating

import (
	"reflect"

	"github.com/imadgeboyega/nomad-dating/internal/profile"
)

// IsPresent reports whether a stored value counts as answered: it must be
// non-nil and, when it is a list, non-empty. Zero values such as 0, false and
// "" are answers.
func IsPresent(value any) bool {
	if value == nil {
		return false
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		return rv.Len() > 0
	case reflect.Pointer, reflect.Interface, reflect.Map:
		return !rv.IsNil()
	}
	return true
}

// MissingFields returns, in catalog order, the questions whose field is not
// present on the profile.
func MissingFields(p *profile.Profile, catalog Catalog) []Question {
	missing := make([]Question, 0, len(catalog))
	for _, q := range catalog {
		if p == nil {
			missing = append(missing, q)
			continue
		}
		value, ok := p.Value(q.Field)
		if !ok || !IsPresent(value) {
			missing = append(missing, q)
		}
	}
	return missing
}

func questionFields(questions []Question) []string {
	fields := make([]string, 0, len(questions))
	for _, q := range questions {
		fields = append(fields, q.Field)
	}
	return fields
}
