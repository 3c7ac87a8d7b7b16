// internal/dating/dto.go
package dating

// SetPreferenceDTO toggles the dating preference. Enabled is a pointer so an
// explicit false passes the required check.
type SetPreferenceDTO struct {
	Enabled *bool `json:"enabled" validate:"required"`
}

// WizardTextDTO carries raw text for the current wizard question
type WizardTextDTO struct {
	Text string `json:"text" validate:"max=2000"`
}

// QuestionsResponse lists the catalog
type QuestionsResponse struct {
	Questions Catalog `json:"questions"`
}

// MatchesResponse wraps resolved match cards
type MatchesResponse struct {
	Matches []MatchCard `json:"matches"`
}
