package dating

import (
	"time"

	"github.com/imadgeboyega/nomad-dating/internal/profile"
)

// ParserKind selects how raw wizard text becomes a stored field value
type ParserKind string

const (
	ParserIdentity   ParserKind = "identity"
	ParserInteger    ParserKind = "integer"
	ParserStringList ParserKind = "string_list"
)

// Question is one catalog entry of the dating questionnaire
type Question struct {
	Field       string     `json:"field"`
	Prompt      string     `json:"prompt"`
	Placeholder string     `json:"placeholder"`
	Parser      ParserKind `json:"parser,omitempty"`
}

// Catalog is the ordered list of questions a dating profile must answer
type Catalog []Question

// MatchResult is one ranked candidate as returned by the ranking endpoint
type MatchResult struct {
	UID    string `json:"uid"`
	Name   string `json:"name,omitempty"`
	Reason string `json:"reason,omitempty"`
}

// MatchCard joins a ranked match with the candidate's stored profile
type MatchCard struct {
	MatchResult
	Profile *profile.Profile `json:"profile"`
}

// WizardSession is the transient state of a questionnaire run
type WizardSession struct {
	ID        string         `json:"id"`
	UID       string         `json:"uid"`
	Questions []Question     `json:"questions"`
	Step      int            `json:"step"`
	Answers   map[string]any `json:"answers"`
	Input     string         `json:"input"`
	CreatedAt time.Time      `json:"created_at"`
}

// DatingStatus summarizes a user's eligibility for matching
type DatingStatus struct {
	EnableDating     bool        `json:"enable_dating"`
	MissingFields    []string    `json:"missing_fields"`
	Complete         bool        `json:"complete"`
	WizardInProgress bool        `json:"wizard_in_progress"`
	Wizard           *WizardView `json:"wizard,omitempty"`
}

// WizardView is what a client renders for the current wizard step
type WizardView struct {
	SessionID string    `json:"session_id"`
	Step      int       `json:"step"`
	Total     int       `json:"total"`
	Question  *Question `json:"question,omitempty"`
	Input     string    `json:"input"`
	Done      bool      `json:"done"`
}

// PreferenceResult is returned after toggling the dating preference
type PreferenceResult struct {
	EnableDating bool        `json:"enable_dating"`
	Wizard       *WizardView `json:"wizard,omitempty"`
	Matches      []MatchCard `json:"matches"`
}
