package dating

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imadgeboyega/nomad-dating/internal/profile"
)

// flakyProfiles fails selected operations on top of the memory repository
type flakyProfiles struct {
	*profile.MemoryRepository
	mu         sync.Mutex
	failGet    map[string]bool
	failUpdate bool
	failList   bool
}

func (f *flakyProfiles) Get(ctx context.Context, uid string) (*profile.Profile, error) {
	f.mu.Lock()
	fail := f.failGet[uid]
	f.mu.Unlock()
	if fail {
		return nil, errors.New("connection reset")
	}
	return f.MemoryRepository.Get(ctx, uid)
}

func (f *flakyProfiles) Update(ctx context.Context, uid string, fields map[string]any) error {
	if f.failUpdate {
		return errors.New("write failed")
	}
	return f.MemoryRepository.Update(ctx, uid, fields)
}

func (f *flakyProfiles) ListAll(ctx context.Context) ([]*profile.Profile, error) {
	if f.failList {
		return nil, errors.New("list failed")
	}
	return f.MemoryRepository.ListAll(ctx)
}

type stubRanker struct {
	results    []MatchResult
	candidates []*profile.Profile
	calls      int
}

func (s *stubRanker) Rank(ctx context.Context, target *profile.Profile, candidates []*profile.Profile) []MatchResult {
	s.calls++
	s.candidates = candidates
	return s.results
}

type fixture struct {
	profiles *flakyProfiles
	sessions *MemorySessionStore
	ranker   *stubRanker
	service  Service
}

func newFixture(t *testing.T, profiles ...*profile.Profile) *fixture {
	t.Helper()
	f := &fixture{
		profiles: &flakyProfiles{MemoryRepository: profile.NewMemoryRepository(profiles...), failGet: map[string]bool{}},
		sessions: NewMemorySessionStore(time.Hour),
		ranker:   &stubRanker{},
	}
	f.service = NewService(f.profiles, f.sessions, f.ranker, DefaultCatalog, Options{
		PoolSize:          20,
		MatchLimit:        5,
		LookupConcurrency: 4,
	})
	return f
}

func population() []*profile.Profile {
	return []*profile.Profile{
		completeProfile("me", "male", "straight"),
		completeProfile("f1", "female", "straight"),
		completeProfile("m1", "male", "gay"),
		completeProfile("f2", "female", "bi"),
		completeProfile("f3", "female", "straight"),
	}
}

func cardUIDs(cards []MatchCard) []string {
	out := make([]string, 0, len(cards))
	for _, c := range cards {
		out = append(out, c.UID)
	}
	return out
}

func TestGetStatus(t *testing.T) {
	f := newFixture(t, &profile.Profile{UID: "me", City: str("Lisbon")})

	status, err := f.service.GetStatus(context.Background(), "me")
	require.NoError(t, err)
	assert.False(t, status.EnableDating)
	assert.False(t, status.Complete)
	assert.NotContains(t, status.MissingFields, "city")
	assert.Len(t, status.MissingFields, len(DefaultCatalog)-1)
	assert.False(t, status.WizardInProgress)

	_, err = f.service.GetStatus(context.Background(), "ghost")
	assert.ErrorIs(t, err, profile.ErrProfileNotFound)
}

func TestEnableWithMissingFieldsStartsWizard(t *testing.T) {
	f := newFixture(t, &profile.Profile{UID: "me"})
	ctx := context.Background()

	result, err := f.service.SetDatingEnabled(ctx, "me", true)
	require.NoError(t, err)
	assert.True(t, result.EnableDating)
	require.NotNil(t, result.Wizard)
	assert.Equal(t, len(DefaultCatalog), result.Wizard.Total)
	assert.Equal(t, "age", result.Wizard.Question.Field)
	assert.Empty(t, result.Matches)
	assert.Zero(t, f.ranker.calls)

	stored, err := f.profiles.Get(ctx, "me")
	require.NoError(t, err)
	assert.True(t, stored.EnableDating)

	status, err := f.service.GetStatus(ctx, "me")
	require.NoError(t, err)
	assert.True(t, status.WizardInProgress)
}

func TestEnableCompleteProfileReturnsMatches(t *testing.T) {
	f := newFixture(t, population()...)
	f.ranker.results = []MatchResult{{UID: "f3", Reason: "same city"}, {UID: "f1"}}

	result, err := f.service.SetDatingEnabled(context.Background(), "me", true)
	require.NoError(t, err)
	assert.Nil(t, result.Wizard)
	assert.Equal(t, []string{"f3", "f1"}, cardUIDs(result.Matches))
	assert.Equal(t, "same city", result.Matches[0].Reason)
	assert.Equal(t, "User f3", result.Matches[0].Name)
	require.NotNil(t, result.Matches[0].Profile)
	assert.Equal(t, "f3", result.Matches[0].Profile.UID)
}

func TestEnableStoreFailurePropagates(t *testing.T) {
	f := newFixture(t, &profile.Profile{UID: "me"})
	f.profiles.failUpdate = true

	_, err := f.service.SetDatingEnabled(context.Background(), "me", true)
	require.Error(t, err)

	_, err = f.sessions.Get(context.Background(), "me")
	assert.ErrorIs(t, err, ErrWizardNotFound)
}

func TestDisableClearsWizard(t *testing.T) {
	f := newFixture(t, &profile.Profile{UID: "me"})
	ctx := context.Background()

	_, err := f.service.SetDatingEnabled(ctx, "me", true)
	require.NoError(t, err)

	result, err := f.service.SetDatingEnabled(ctx, "me", false)
	require.NoError(t, err)
	assert.False(t, result.EnableDating)
	assert.Nil(t, result.Wizard)
	assert.NotNil(t, result.Matches)
	assert.Empty(t, result.Matches)

	_, err = f.service.CurrentWizard(ctx, "me")
	assert.ErrorIs(t, err, ErrWizardNotFound)
}

func TestWizardFlowThroughService(t *testing.T) {
	me := completeProfile("me", "male", "straight")
	me.Age = nil
	me.Interests = nil
	delete(me.Attributes, "funFact")

	people := append([]*profile.Profile{me}, population()[1:]...)
	f := newFixture(t, people...)
	f.ranker.results = []MatchResult{{UID: "f2"}}
	ctx := context.Background()

	result, err := f.service.SetDatingEnabled(ctx, "me", true)
	require.NoError(t, err)
	require.NotNil(t, result.Wizard)
	assert.Equal(t, 3, result.Wizard.Total)

	view, err := f.service.UpdateInput(ctx, "me", "3")
	require.NoError(t, err)
	assert.Equal(t, "3", view.Input)

	view, err = f.service.Answer(ctx, "me", "34 years")
	require.NoError(t, err)
	assert.Equal(t, 1, view.Step)
	assert.Empty(t, view.Input)
	assert.Equal(t, "interests", view.Question.Field)

	_, err = f.service.FinishWizard(ctx, "me")
	assert.ErrorIs(t, err, ErrWizardIncomplete)

	_, err = f.service.Answer(ctx, "me", "chess, , film")
	require.NoError(t, err)
	view, err = f.service.Answer(ctx, "me", "I speak five languages")
	require.NoError(t, err)
	assert.True(t, view.Done)

	_, err = f.service.Answer(ctx, "me", "extra")
	assert.ErrorIs(t, err, ErrWizardComplete)
	_, err = f.service.UpdateInput(ctx, "me", "extra")
	assert.ErrorIs(t, err, ErrWizardComplete)

	finished, err := f.service.FinishWizard(ctx, "me")
	require.NoError(t, err)
	assert.Nil(t, finished.Wizard)
	assert.Equal(t, []string{"f2"}, cardUIDs(finished.Matches))

	stored, err := f.profiles.Get(ctx, "me")
	require.NoError(t, err)
	assert.Equal(t, 34, *stored.Age)
	assert.Equal(t, []string{"chess", "film"}, stored.Interests)
	assert.Equal(t, "I speak five languages", stored.Attributes["funFact"])

	_, err = f.service.CurrentWizard(ctx, "me")
	assert.ErrorIs(t, err, ErrWizardNotFound)
}

func TestFinishWizardStoreFailureKeepsSession(t *testing.T) {
	f := newFixture(t, &profile.Profile{UID: "me", EnableDating: true})
	ctx := context.Background()

	session := NewWizardSession("me", threeQuestions)
	require.NoError(t, session.Answer("30"))
	require.NoError(t, session.Answer("a"))
	require.NoError(t, session.Answer("Rome"))
	require.NoError(t, f.sessions.Save(ctx, session))

	f.profiles.failUpdate = true
	_, err := f.service.FinishWizard(ctx, "me")
	require.Error(t, err)

	view, err := f.service.CurrentWizard(ctx, "me")
	require.NoError(t, err)
	assert.True(t, view.Done)

	f.profiles.failUpdate = false
	_, err = f.service.FinishWizard(ctx, "me")
	require.NoError(t, err)
}

func TestFinishWizardWithUnparseableAnswerAsksAgain(t *testing.T) {
	me := completeProfile("me", "male", "straight")
	me.Age = nil
	f := newFixture(t, me)
	ctx := context.Background()

	_, err := f.service.SetDatingEnabled(ctx, "me", true)
	require.NoError(t, err)
	_, err = f.service.Answer(ctx, "me", "old enough")
	require.NoError(t, err)

	result, err := f.service.FinishWizard(ctx, "me")
	require.NoError(t, err)
	require.NotNil(t, result.Wizard)
	assert.Equal(t, 1, result.Wizard.Total)
	assert.Equal(t, "age", result.Wizard.Question.Field)
	assert.Zero(t, f.ranker.calls)
}

func TestFetchMatchesGates(t *testing.T) {
	incomplete := &profile.Profile{UID: "inc", EnableDating: true, City: str("Rome")}
	disabled := completeProfile("off", "female", "straight")
	disabled.EnableDating = false
	f := newFixture(t, incomplete, disabled)
	ctx := context.Background()

	_, err := f.service.FetchMatches(ctx, "inc")
	require.ErrorIs(t, err, ErrProfileIncomplete)
	var incompleteErr *IncompleteProfileError
	require.ErrorAs(t, err, &incompleteErr)
	assert.Equal(t, "age", incompleteErr.Missing[0])
	assert.NotContains(t, incompleteErr.Missing, "city")

	_, err = f.service.FetchMatches(ctx, "off")
	assert.ErrorIs(t, err, ErrDatingDisabled)

	_, err = f.service.FetchMatches(ctx, "ghost")
	assert.ErrorIs(t, err, profile.ErrProfileNotFound)
	assert.Zero(t, f.ranker.calls)
}

func TestFetchMatchesBuildsFilteredPool(t *testing.T) {
	f := newFixture(t, population()...)

	matches, err := f.service.FetchMatches(context.Background(), "me")
	require.NoError(t, err)
	assert.Empty(t, matches)
	assert.Equal(t, 1, f.ranker.calls)

	pool := make([]string, 0, len(f.ranker.candidates))
	for _, c := range f.ranker.candidates {
		pool = append(pool, c.UID)
	}
	assert.Equal(t, []string{"f1", "f2", "f3"}, pool)
}

func TestFetchMatchesPartialLookupFailure(t *testing.T) {
	f := newFixture(t, population()...)
	f.ranker.results = []MatchResult{{UID: "f1"}, {UID: "f2"}, {UID: "f3"}}
	f.profiles.failGet["f2"] = true

	matches, err := f.service.FetchMatches(context.Background(), "me")
	require.NoError(t, err)
	assert.Equal(t, []string{"f1", "f3"}, cardUIDs(matches))
}

func TestFetchMatchesAllLookupsFail(t *testing.T) {
	f := newFixture(t, population()...)
	f.ranker.results = []MatchResult{{UID: "f1"}, {UID: "f3"}}
	f.profiles.failGet["f1"] = true
	f.profiles.failGet["f3"] = true

	matches, err := f.service.FetchMatches(context.Background(), "me")
	require.NoError(t, err)
	assert.NotNil(t, matches)
	assert.Empty(t, matches)
}

func TestFetchMatchesDropsUnknownDuplicateAndSelf(t *testing.T) {
	f := newFixture(t, population()...)
	f.ranker.results = []MatchResult{
		{UID: "me"},
		{UID: "nobody"},
		{UID: "m1"},
		{UID: "f3", Name: "Model Name"},
		{UID: "f3"},
		{UID: "f1"},
	}

	matches, err := f.service.FetchMatches(context.Background(), "me")
	require.NoError(t, err)
	assert.Equal(t, []string{"f3", "f1"}, cardUIDs(matches))
	assert.Equal(t, "Model Name", matches[0].Name)
}

func TestFetchMatchesRespectsLimit(t *testing.T) {
	people := []*profile.Profile{completeProfile("me", "female", "anyone")}
	results := []MatchResult{}
	for _, uid := range []string{"a", "b", "c", "d", "e", "f", "g"} {
		people = append(people, completeProfile(uid, "male", "anyone"))
		results = append(results, MatchResult{UID: uid})
	}
	f := newFixture(t, people...)
	f.ranker.results = results

	matches, err := f.service.FetchMatches(context.Background(), "me")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, cardUIDs(matches))
}

func TestFetchMatchesListFailurePropagates(t *testing.T) {
	f := newFixture(t, population()...)
	f.profiles.failList = true

	_, err := f.service.FetchMatches(context.Background(), "me")
	assert.Error(t, err)
}

func TestQuestionsReturnsCopy(t *testing.T) {
	f := newFixture(t)

	questions := f.service.Questions()
	questions[0].Field = "changed"

	assert.Equal(t, "age", f.service.Questions()[0].Field)
}
