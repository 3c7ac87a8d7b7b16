// internal/profile/repository.go

package profile

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrInvalidField    = errors.New("invalid profile field")
	ErrProfileExists   = errors.New("profile already exists")
)

// uniqueViolation is the Postgres error code for a duplicate key
const uniqueViolation = "23505"

// Repository defines the profile store used by the dating features
type Repository interface {
	Get(ctx context.Context, uid string) (*Profile, error)
	Update(ctx context.Context, uid string, fields map[string]any) error
	ListAll(ctx context.Context) ([]*Profile, error)
	Create(ctx context.Context, profile *Profile) error
}

// postgresRepository implements Repository using PostgreSQL
type postgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

const selectProfileColumns = `
		SELECT uid, name, photo_url, enable_dating, age, gender, city,
		       orientation, interests, hobbies, attributes, created_at, updated_at
		FROM profiles`

// Get retrieves a profile by uid
func (r *postgresRepository) Get(ctx context.Context, uid string) (*Profile, error) {
	row := r.db.QueryRowxContext(ctx, selectProfileColumns+` WHERE uid = $1`, uid)

	profile, err := scanProfile(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	return profile, nil
}

// ListAll returns every stored profile in uid order
func (r *postgresRepository) ListAll(ctx context.Context) ([]*Profile, error) {
	rows, err := r.db.QueryxContext(ctx, selectProfileColumns+` ORDER BY uid`)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	defer rows.Close()

	var profiles []*Profile
	for rows.Next() {
		profile, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan profile: %w", err)
		}
		profiles = append(profiles, profile)
	}

	return profiles, rows.Err()
}

// Update applies a partial update. Known fields are written to their column,
// the rest are merged into the attributes document.
func (r *postgresRepository) Update(ctx context.Context, uid string, fields map[string]any) error {
	query, args, err := buildUpdateQuery(uid, fields)
	if err != nil {
		return err
	}
	if query == "" {
		return nil
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result: %w", err)
	}
	if affected == 0 {
		return ErrProfileNotFound
	}

	return nil
}

// buildUpdateQuery renders the UPDATE statement for a partial update. It
// returns an empty query when fields is empty.
func buildUpdateQuery(uid string, fields map[string]any) (string, []interface{}, error) {
	var setClauses []string
	var args []interface{}
	argCount := 1

	extra := Attributes{}
	var cleared []string

	// Sorted for a stable statement shape
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := fields[key]
		column, ok := columnFor(key)
		if !ok {
			if value == nil {
				cleared = append(cleared, key)
			} else {
				extra[key] = value
			}
			continue
		}

		arg, err := columnValue(key, value)
		if err != nil {
			return "", nil, fmt.Errorf("%w: %s: %v", ErrInvalidField, key, err)
		}
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, argCount))
		args = append(args, arg)
		argCount++
	}

	// a column may only be assigned once per statement
	if len(extra) > 0 || len(cleared) > 0 {
		expr := "COALESCE(attributes, '{}'::jsonb)"
		if len(extra) > 0 {
			expr = fmt.Sprintf("(%s || $%d::jsonb)", expr, argCount)
			args = append(args, extra)
			argCount++
		}
		if len(cleared) > 0 {
			expr = fmt.Sprintf("%s - $%d::text[]", expr, argCount)
			args = append(args, pq.Array(cleared))
			argCount++
		}
		setClauses = append(setClauses, "attributes = "+expr)
	}

	if len(setClauses) == 0 {
		return "", nil, nil
	}

	setClauses = append(setClauses, "updated_at = CURRENT_TIMESTAMP")
	args = append(args, uid)
	query := fmt.Sprintf("UPDATE profiles SET %s WHERE uid = $%d", strings.Join(setClauses, ", "), argCount)
	return query, args, nil
}

// Create inserts a new profile
func (r *postgresRepository) Create(ctx context.Context, p *Profile) error {
	query := `
		INSERT INTO profiles (
			uid, name, photo_url, enable_dating, age, gender, city,
			orientation, interests, hobbies, attributes
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at, updated_at`

	err := r.db.QueryRowxContext(
		ctx, query,
		p.UID, p.Name, p.PhotoURL, p.EnableDating, p.Age, p.Gender, p.City,
		p.Orientation, pq.Array(p.Interests), pq.Array(p.Hobbies), p.Attributes,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return ErrProfileExists
	}
	if err != nil {
		return fmt.Errorf("failed to create profile: %w", err)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProfile(row rowScanner) (*Profile, error) {
	var p Profile
	var age sql.NullInt64
	var interests, hobbies pq.StringArray

	err := row.Scan(
		&p.UID, &p.Name, &p.PhotoURL, &p.EnableDating, &age, &p.Gender, &p.City,
		&p.Orientation, &interests, &hobbies, &p.Attributes, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if age.Valid {
		n := int(age.Int64)
		p.Age = &n
	}
	// NULL arrays stay nil so the field reads as never answered
	if interests != nil {
		p.Interests = []string(interests)
	}
	if hobbies != nil {
		p.Hobbies = []string(hobbies)
	}

	return &p, nil
}

func columnFor(key string) (string, bool) {
	switch key {
	case FieldName:
		return "name", true
	case FieldPhotoURL:
		return "photo_url", true
	case FieldEnableDating:
		return "enable_dating", true
	case FieldAge:
		return "age", true
	case FieldGender:
		return "gender", true
	case FieldCity:
		return "city", true
	case FieldOrientation:
		return "orientation", true
	case FieldInterests:
		return "interests", true
	case FieldHobbies:
		return "hobbies", true
	}
	return "", false
}

// columnValue converts a field value into a driver argument by routing it
// through the typed profile fields.
func columnValue(key string, value any) (interface{}, error) {
	var p Profile
	if err := p.set(key, value); err != nil {
		return nil, err
	}

	switch key {
	case FieldName:
		return p.Name, nil
	case FieldPhotoURL:
		return p.PhotoURL, nil
	case FieldEnableDating:
		return p.EnableDating, nil
	case FieldAge:
		return p.Age, nil
	case FieldGender:
		return p.Gender, nil
	case FieldCity:
		return p.City, nil
	case FieldOrientation:
		return p.Orientation, nil
	case FieldInterests:
		if p.Interests == nil {
			return nil, nil
		}
		return pq.Array(p.Interests), nil
	case FieldHobbies:
		if p.Hobbies == nil {
			return nil, nil
		}
		return pq.Array(p.Hobbies), nil
	}
	return nil, fmt.Errorf("no column for %s", key)
}

// Migrations creates the profile schema
var Migrations = []string{
	`CREATE TABLE IF NOT EXISTS profiles (
		uid VARCHAR(128) PRIMARY KEY,
		name VARCHAR(100),
		photo_url TEXT,
		enable_dating BOOLEAN NOT NULL DEFAULT FALSE,
		age INTEGER,
		gender VARCHAR(32),
		city VARCHAR(100),
		orientation VARCHAR(50),
		interests TEXT[],
		hobbies TEXT[],
		attributes JSONB NOT NULL DEFAULT '{}'::jsonb,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE INDEX IF NOT EXISTS idx_profiles_enable_dating ON profiles(enable_dating)`,
}
