package dating

import (
	"time"

	"github.com/google/uuid"
	"github.com/imadgeboyega/nomad-dating/internal/profile"
)

// NewWizardSession starts a questionnaire over the given missing questions
func NewWizardSession(uid string, missing []Question) *WizardSession {
	questions := make([]Question, len(missing))
	copy(questions, missing)

	return &WizardSession{
		ID:        uuid.New().String(),
		UID:       uid,
		Questions: questions,
		Answers:   make(map[string]any, len(missing)),
		CreatedAt: time.Now(),
	}
}

// Current returns the question at the current step. The bool is false once
// every question has been answered.
func (s *WizardSession) Current() (Question, bool) {
	if s.Step < 0 || s.Step >= len(s.Questions) {
		return Question{}, false
	}
	return s.Questions[s.Step], true
}

// Done reports whether the wizard reached its terminal state
func (s *WizardSession) Done() bool {
	return s.Step >= len(s.Questions)
}

// SetInput replaces the in-progress raw text for the current question
func (s *WizardSession) SetInput(text string) {
	s.Input = text
}

// Advance parses the in-progress input, stores it under the current field,
// moves to the next step and clears the input.
func (s *WizardSession) Advance() error {
	q, ok := s.Current()
	if !ok {
		return ErrWizardComplete
	}

	if s.Answers == nil {
		s.Answers = make(map[string]any)
	}
	s.Answers[q.Field] = q.Parse(s.Input)
	s.Step++
	s.Input = ""
	return nil
}

// Answer sets the input and advances in one step
func (s *WizardSession) Answer(text string) error {
	s.SetInput(text)
	return s.Advance()
}

// MergeInto applies the accumulated answers to a profile
func (s *WizardSession) MergeInto(p *profile.Profile) error {
	return p.Apply(s.Answers)
}

// View renders the session for clients
func (s *WizardSession) View() *WizardView {
	view := &WizardView{
		SessionID: s.ID,
		Step:      s.Step,
		Total:     len(s.Questions),
		Input:     s.Input,
		Done:      s.Done(),
	}
	if q, ok := s.Current(); ok {
		view.Question = &q
	}
	return view
}

// restore fixes up answer types after the session was decoded from JSON
func (s *WizardSession) restore() {
	if s.Answers == nil {
		s.Answers = make(map[string]any)
	}
	for _, q := range s.Questions {
		if v, ok := s.Answers[q.Field]; ok {
			s.Answers[q.Field] = coerceAnswer(q.Parser, v)
		}
	}
}
