package dating

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/imadgeboyega/nomad-dating/internal/profile"
)

// Ranker orders a candidate pool for a target profile. Implementations never
// fail: an unusable ranking is an empty result.
type Ranker interface {
	Rank(ctx context.Context, target *profile.Profile, candidates []*profile.Profile) []MatchResult
}

// RankingClient ranks candidates by prompting a text-completion backend and
// normalizing its reply.
type RankingClient struct {
	completer Completer
	timeout   time.Duration
}

// NewRankingClient wraps a completer. A non-positive timeout leaves the
// deadline to the caller's context.
func NewRankingClient(completer Completer, timeout time.Duration) *RankingClient {
	return &RankingClient{
		completer: completer,
		timeout:   timeout,
	}
}

func (r *RankingClient) Rank(ctx context.Context, target *profile.Profile, candidates []*profile.Profile) []MatchResult {
	if target == nil || len(candidates) == 0 {
		return []MatchResult{}
	}
	if r.completer == nil {
		log.Printf("⚠️  No ranking completer configured, returning no matches")
		rankingRequestsTotal.WithLabelValues(OutcomeNoCredential).Inc()
		return []MatchResult{}
	}

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	prompt := BuildPrompt(target, candidates)

	start := time.Now()
	raw, err := r.completer.Complete(ctx, prompt)
	if err != nil {
		if errors.Is(err, ErrNoCredential) {
			log.Printf("⚠️  No ranking API key configured, returning no matches for %s", target.UID)
			rankingRequestsTotal.WithLabelValues(OutcomeNoCredential).Inc()
			return []MatchResult{}
		}
		rankingDuration.Observe(time.Since(start).Seconds())
		log.Printf("❌ Ranking call failed for %s: %v", target.UID, err)
		rankingRequestsTotal.WithLabelValues(OutcomeTransportError).Inc()
		return []MatchResult{}
	}
	rankingDuration.Observe(time.Since(start).Seconds())

	matches, err := normalize(raw)
	if err != nil {
		log.Printf("❌ Unusable ranking response for %s: %v; raw: %q", target.UID, err, snippet(raw, 2000))
		rankingRequestsTotal.WithLabelValues(OutcomeMalformed).Inc()
		return []MatchResult{}
	}

	rankingRequestsTotal.WithLabelValues(OutcomeOK).Inc()
	return matches
}
