//internals/profile/models.go

package profile

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Field keys with a dedicated column. Everything else lives in Attributes.
const (
	FieldName         = "name"
	FieldPhotoURL     = "photoURL"
	FieldEnableDating = "enableDating"
	FieldAge          = "age"
	FieldGender       = "gender"
	FieldCity         = "city"
	FieldOrientation  = "orientation"
	FieldInterests    = "interests"
	FieldHobbies      = "hobbies"
)

// Profile represents a user's stored profile
type Profile struct {
	UID          string     `json:"uid" db:"uid" bson:"_id"`
	Name         *string    `json:"name,omitempty" db:"name" bson:"name,omitempty"`
	PhotoURL     *string    `json:"photoURL,omitempty" db:"photo_url" bson:"photoURL,omitempty"`
	EnableDating bool       `json:"enableDating" db:"enable_dating" bson:"enableDating"`
	Age          *int       `json:"age,omitempty" db:"age" bson:"age,omitempty"`
	Gender       *string    `json:"gender,omitempty" db:"gender" bson:"gender,omitempty"`
	City         *string    `json:"city,omitempty" db:"city" bson:"city,omitempty"`
	Orientation  *string    `json:"orientation,omitempty" db:"orientation" bson:"orientation,omitempty"`
	Interests    []string   `json:"interests,omitempty" db:"interests" bson:"interests,omitempty"`
	Hobbies      []string   `json:"hobbies,omitempty" db:"hobbies" bson:"hobbies,omitempty"`
	Attributes   Attributes `json:"attributes,omitempty" db:"attributes" bson:"attributes,omitempty"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at" bson:"createdAt"`
	UpdatedAt    time.Time  `json:"updated_at" db:"updated_at" bson:"updatedAt"`
}

// Attributes holds profile answers without a dedicated column
type Attributes map[string]any

// Scan implements the sql.Scanner interface for Attributes
func (a *Attributes) Scan(value interface{}) error {
	if value == nil {
		*a = nil
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported attributes type %T", value)
	}
	return json.Unmarshal(data, a)
}

// Value implements the driver.Valuer interface for Attributes
func (a Attributes) Value() (driver.Value, error) {
	if a == nil {
		return "{}", nil
	}
	b, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Value returns the stored value for a field key. The bool is false when the
// field has never been set.
func (p *Profile) Value(field string) (any, bool) {
	switch field {
	case FieldName:
		return derefString(p.Name)
	case FieldPhotoURL:
		return derefString(p.PhotoURL)
	case FieldEnableDating:
		return p.EnableDating, true
	case FieldAge:
		if p.Age == nil {
			return nil, false
		}
		return *p.Age, true
	case FieldGender:
		return derefString(p.Gender)
	case FieldCity:
		return derefString(p.City)
	case FieldOrientation:
		return derefString(p.Orientation)
	case FieldInterests:
		if p.Interests == nil {
			return nil, false
		}
		return p.Interests, true
	case FieldHobbies:
		if p.Hobbies == nil {
			return nil, false
		}
		return p.Hobbies, true
	}
	v, ok := p.Attributes[field]
	return v, ok
}

// Apply merges field values into the profile. Known keys set their typed field,
// unknown keys go to Attributes; a nil value clears the field.
func (p *Profile) Apply(fields map[string]any) error {
	for key, value := range fields {
		if err := p.set(key, value); err != nil {
			return fmt.Errorf("field %s: %w", key, err)
		}
	}
	return nil
}

func (p *Profile) set(key string, value any) error {
	switch key {
	case FieldName:
		return setString(&p.Name, value)
	case FieldPhotoURL:
		return setString(&p.PhotoURL, value)
	case FieldEnableDating:
		b, ok := value.(bool)
		if !ok && value != nil {
			return fmt.Errorf("expected bool, got %T", value)
		}
		p.EnableDating = b
		return nil
	case FieldAge:
		n, ok, err := toInt(value)
		if err != nil {
			return err
		}
		if !ok {
			p.Age = nil
			return nil
		}
		p.Age = &n
		return nil
	case FieldGender:
		return setString(&p.Gender, value)
	case FieldCity:
		return setString(&p.City, value)
	case FieldOrientation:
		return setString(&p.Orientation, value)
	case FieldInterests:
		list, err := toStrings(value)
		if err != nil {
			return err
		}
		p.Interests = list
		return nil
	case FieldHobbies:
		list, err := toStrings(value)
		if err != nil {
			return err
		}
		p.Hobbies = list
		return nil
	}

	if value == nil {
		delete(p.Attributes, key)
		return nil
	}
	if p.Attributes == nil {
		p.Attributes = Attributes{}
	}
	p.Attributes[key] = value
	return nil
}

// DisplayName returns the name or an empty string
func (p *Profile) DisplayName() string {
	if p.Name == nil {
		return ""
	}
	return *p.Name
}

// IsKnownField reports whether the key maps to a dedicated column
func IsKnownField(key string) bool {
	switch key {
	case FieldName, FieldPhotoURL, FieldEnableDating, FieldAge, FieldGender,
		FieldCity, FieldOrientation, FieldInterests, FieldHobbies:
		return true
	}
	return false
}

// Helper functions

func derefString(s *string) (any, bool) {
	if s == nil {
		return nil, false
	}
	return *s, true
}

func setString(dst **string, value any) error {
	if value == nil {
		*dst = nil
		return nil
	}
	s, ok := value.(string)
	if !ok {
		return fmt.Errorf("expected string, got %T", value)
	}
	*dst = &s
	return nil
}

// toInt accepts the numeric shapes produced by the wizard parser and by JSON
// decoding.
func toInt(value any) (int, bool, error) {
	switch v := value.(type) {
	case nil:
		return 0, false, nil
	case int:
		return v, true, nil
	case *int:
		if v == nil {
			return 0, false, nil
		}
		return *v, true, nil
	case int32:
		return int(v), true, nil
	case int64:
		return int(v), true, nil
	case float64:
		return int(v), true, nil
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0, false, err
		}
		return int(n), true, nil
	}
	return 0, false, fmt.Errorf("expected integer, got %T", value)
}

func toStrings(value any) ([]string, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case []string:
		return v, nil
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("expected string list item, got %T", item)
			}
			out = append(out, s)
		}
		return out, nil
	}
	return nil, fmt.Errorf("expected string list, got %T", value)
}
