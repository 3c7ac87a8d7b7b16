package dating

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/imadgeboyega/nomad-dating/internal/profile"
)

var (
	ErrWizardNotFound    = errors.New("no wizard in progress")
	ErrWizardComplete    = errors.New("wizard has no questions left")
	ErrWizardIncomplete  = errors.New("wizard still has unanswered questions")
	ErrProfileIncomplete = errors.New("dating profile is incomplete")
	ErrDatingDisabled    = errors.New("dating is not enabled for this profile")
)

// IncompleteProfileError lists the catalog fields still missing
type IncompleteProfileError struct {
	Missing []string
}

func (e *IncompleteProfileError) Error() string {
	return fmt.Sprintf("%s: missing %s", ErrProfileIncomplete, strings.Join(e.Missing, ", "))
}

func (e *IncompleteProfileError) Unwrap() error {
	return ErrProfileIncomplete
}

type Service interface {
	// Preference & status
	GetStatus(ctx context.Context, uid string) (*DatingStatus, error)
	SetDatingEnabled(ctx context.Context, uid string, enabled bool) (*PreferenceResult, error)

	// Wizard
	CurrentWizard(ctx context.Context, uid string) (*WizardView, error)
	UpdateInput(ctx context.Context, uid, text string) (*WizardView, error)
	Answer(ctx context.Context, uid, text string) (*WizardView, error)
	FinishWizard(ctx context.Context, uid string) (*PreferenceResult, error)

	// Matching
	FetchMatches(ctx context.Context, uid string) ([]MatchCard, error)
	Questions() Catalog
}

// Options bounds the matching pipeline
type Options struct {
	PoolSize          int
	MatchLimit        int
	LookupConcurrency int
}

type service struct {
	profiles profile.Repository
	sessions SessionStore
	ranker   Ranker
	catalog  Catalog
	opts     Options
}

func NewService(profiles profile.Repository, sessions SessionStore, ranker Ranker, catalog Catalog, opts Options) Service {
	if opts.LookupConcurrency < 1 {
		opts.LookupConcurrency = 1
	}
	return &service{
		profiles: profiles,
		sessions: sessions,
		ranker:   ranker,
		catalog:  catalog,
		opts:     opts,
	}
}

func (s *service) GetStatus(ctx context.Context, uid string) (*DatingStatus, error) {
	p, err := s.profiles.Get(ctx, uid)
	if err != nil {
		return nil, err
	}

	missing := questionFields(MissingFields(p, s.catalog))
	status := &DatingStatus{
		EnableDating:  p.EnableDating,
		MissingFields: missing,
		Complete:      len(missing) == 0,
	}

	session, err := s.sessions.Get(ctx, uid)
	switch {
	case err == nil:
		status.WizardInProgress = true
		status.Wizard = session.View()
	case !errors.Is(err, ErrWizardNotFound):
		return nil, err
	}

	return status, nil
}

func (s *service) SetDatingEnabled(ctx context.Context, uid string, enabled bool) (*PreferenceResult, error) {
	if err := s.profiles.Update(ctx, uid, map[string]any{profile.FieldEnableDating: enabled}); err != nil {
		return nil, fmt.Errorf("failed to save dating preference: %w", err)
	}

	if !enabled {
		if err := s.sessions.Delete(ctx, uid); err != nil {
			log.Printf("⚠️  Failed to discard wizard for %s: %v", uid, err)
		}
		return &PreferenceResult{EnableDating: false, Matches: []MatchCard{}}, nil
	}

	p, err := s.profiles.Get(ctx, uid)
	if err != nil {
		return nil, err
	}
	return s.nextStep(ctx, p)
}

// nextStep starts a wizard over the missing fields or, when none are
// missing, ranks matches.
func (s *service) nextStep(ctx context.Context, p *profile.Profile) (*PreferenceResult, error) {
	result := &PreferenceResult{EnableDating: p.EnableDating, Matches: []MatchCard{}}

	if missing := MissingFields(p, s.catalog); len(missing) > 0 {
		session := NewWizardSession(p.UID, missing)
		if err := s.sessions.Save(ctx, session); err != nil {
			return nil, err
		}
		result.Wizard = session.View()
		return result, nil
	}

	if !p.EnableDating {
		return result, nil
	}

	matches, err := s.matchesFor(ctx, p)
	if err != nil {
		return nil, err
	}
	result.Matches = matches
	return result, nil
}

func (s *service) CurrentWizard(ctx context.Context, uid string) (*WizardView, error) {
	session, err := s.sessions.Get(ctx, uid)
	if err != nil {
		return nil, err
	}
	return session.View(), nil
}

func (s *service) UpdateInput(ctx context.Context, uid, text string) (*WizardView, error) {
	session, err := s.sessions.Get(ctx, uid)
	if err != nil {
		return nil, err
	}
	if session.Done() {
		return nil, ErrWizardComplete
	}

	session.SetInput(text)
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}
	return session.View(), nil
}

func (s *service) Answer(ctx context.Context, uid, text string) (*WizardView, error) {
	session, err := s.sessions.Get(ctx, uid)
	if err != nil {
		return nil, err
	}
	if err := session.Answer(text); err != nil {
		return nil, err
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}
	return session.View(), nil
}

func (s *service) FinishWizard(ctx context.Context, uid string) (*PreferenceResult, error) {
	session, err := s.sessions.Get(ctx, uid)
	if err != nil {
		return nil, err
	}
	if !session.Done() {
		return nil, ErrWizardIncomplete
	}

	p, err := s.profiles.Get(ctx, uid)
	if err != nil {
		return nil, err
	}

	// the session survives a failed write so the answers can be resubmitted
	if err := s.profiles.Update(ctx, uid, session.Answers); err != nil {
		return nil, fmt.Errorf("failed to save wizard answers: %w", err)
	}
	if err := session.MergeInto(p); err != nil {
		return nil, err
	}
	if err := s.sessions.Delete(ctx, uid); err != nil {
		log.Printf("⚠️  Failed to discard finished wizard for %s: %v", uid, err)
	}
	wizardCompletionsTotal.Inc()

	return s.nextStep(ctx, p)
}

func (s *service) FetchMatches(ctx context.Context, uid string) ([]MatchCard, error) {
	p, err := s.profiles.Get(ctx, uid)
	if err != nil {
		return nil, err
	}
	if !p.EnableDating {
		return nil, ErrDatingDisabled
	}
	if missing := MissingFields(p, s.catalog); len(missing) > 0 {
		return nil, &IncompleteProfileError{Missing: questionFields(missing)}
	}

	return s.matchesFor(ctx, p)
}

func (s *service) Questions() Catalog {
	out := make(Catalog, len(s.catalog))
	copy(out, s.catalog)
	return out
}

func (s *service) matchesFor(ctx context.Context, target *profile.Profile) ([]MatchCard, error) {
	population, err := s.profiles.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load candidates: %w", err)
	}

	pool := BuildPool(target, population, s.opts.PoolSize)
	if len(pool) == 0 {
		matchesReturned.Observe(0)
		return []MatchCard{}, nil
	}

	ranked := s.acceptedMatches(target, pool, s.ranker.Rank(ctx, target, pool))
	cards := s.resolve(ctx, ranked)
	matchesReturned.Observe(float64(len(cards)))
	return cards, nil
}

// acceptedMatches keeps ranked entries that name a pool member, once each,
// up to the match limit.
func (s *service) acceptedMatches(target *profile.Profile, pool []*profile.Profile, ranked []MatchResult) []MatchResult {
	inPool := make(map[string]bool, len(pool))
	for _, c := range pool {
		inPool[c.UID] = true
	}

	accepted := make([]MatchResult, 0, len(ranked))
	seen := make(map[string]bool, len(ranked))
	for _, m := range ranked {
		if s.opts.MatchLimit > 0 && len(accepted) >= s.opts.MatchLimit {
			break
		}
		if m.UID == target.UID || !inPool[m.UID] || seen[m.UID] {
			continue
		}
		seen[m.UID] = true
		accepted = append(accepted, m)
	}
	return accepted
}

// resolve loads each matched profile concurrently. Lookups that fail are
// dropped; the rest keep ranking order.
func (s *service) resolve(ctx context.Context, ranked []MatchResult) []MatchCard {
	resolved := make([]*profile.Profile, len(ranked))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.LookupConcurrency)
	for i, m := range ranked {
		g.Go(func() error {
			p, err := s.profiles.Get(gctx, m.UID)
			if err != nil {
				if !errors.Is(err, profile.ErrProfileNotFound) {
					log.Printf("⚠️  Failed to load matched profile %s: %v", m.UID, err)
				}
				profileLookupFailures.Inc()
				return nil
			}
			resolved[i] = p
			return nil
		})
	}
	// workers never return an error; failed lookups are dropped above
	g.Wait()

	cards := make([]MatchCard, 0, len(ranked))
	for i, p := range resolved {
		if p == nil {
			continue
		}
		m := ranked[i]
		if m.Name == "" {
			m.Name = p.DisplayName()
		}
		cards = append(cards, MatchCard{MatchResult: m, Profile: p})
	}
	return cards
}
