// Package suggestion ranks candidate recipes against a pantry.
package suggestion

import (
	"sort"

	"github.com/pageza/pantrychef/backend/internal/dietary"
)

const (
	// MaxResults caps the ranked list before dietary and allergy filtering.
	MaxResults = 20
	// LikedBoost is added to the composite score of recipes the caller liked.
	LikedBoost = 0.3
)

// Candidate is a recipe fetched from the store with its full ingredient list.
type Candidate struct {
	ID          string
	Ingredients []string
	Tags        []string
}

// MatchResult is the overlap between a pantry and one recipe.
type MatchResult struct {
	Matching int
	Total    int
	Ratio    float64
}

// Ranked is a candidate that survived the pipeline.
type Ranked struct {
	Candidate
	MatchResult
	Composite float64
}

// Options carries what is known about the caller. The zero value is an
// anonymous caller: no preferences, allergies or likes.
type Options struct {
	Liked       map[string]bool
	Preferences []dietary.Preference
	Allergies   []dietary.Allergy
	Rules       *dietary.Rules
	Limit       int
}

// Match counts recipe ingredients present in the pantry. Names are compared
// exactly as stored.
func Match(pantry []string, ingredients []string) MatchResult {
	have := make(map[string]struct{}, len(pantry))
	for _, p := range pantry {
		have[p] = struct{}{}
	}
	res := MatchResult{Total: len(ingredients)}
	for _, ing := range ingredients {
		if _, ok := have[ing]; ok {
			res.Matching++
		}
	}
	if res.Total > 0 {
		res.Ratio = float64(res.Matching) / float64(res.Total)
	}
	return res
}

// Rank scores candidates and orders them by composite score, ratio, matching
// count and id. Candidates without a matching ingredient are dropped.
func Rank(pantry []string, candidates []Candidate, liked map[string]bool) []Ranked {
	out := make([]Ranked, 0, len(candidates))
	for _, c := range candidates {
		m := Match(pantry, c.Ingredients)
		if m.Matching == 0 {
			continue
		}
		score := m.Ratio
		if liked[c.ID] {
			score += LikedBoost
		}
		out = append(out, Ranked{Candidate: c, MatchResult: m, Composite: score})
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Composite != b.Composite {
			return a.Composite > b.Composite
		}
		if a.Ratio != b.Ratio {
			return a.Ratio > b.Ratio
		}
		if a.Matching != b.Matching {
			return a.Matching > b.Matching
		}
		return a.ID < b.ID
	})
	return out
}

// Stats counts what each filter removed from the capped list.
type Stats struct {
	Ranked          int
	DietaryExcluded int
	AllergyExcluded int
}

// Suggest runs the full pipeline: rank, cap, dietary filter, allergy filter,
// then move recipes tagged with a preferred diet to the front.
func Suggest(pantry []string, candidates []Candidate, opts Options) ([]Ranked, Stats) {
	var stats Stats
	if len(pantry) == 0 {
		return []Ranked{}, stats
	}
	limit := opts.Limit
	if limit <= 0 {
		limit = MaxResults
	}
	rules := opts.Rules
	if rules == nil {
		rules = dietary.DefaultRules()
	}

	ranked := Rank(pantry, candidates, opts.Liked)
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	stats.Ranked = len(ranked)

	kept := ranked[:0]
	for _, r := range ranked {
		if rules.Violates(r.Ingredients, opts.Preferences) {
			stats.DietaryExcluded++
			continue
		}
		if dietary.HasAllergen(r.Ingredients, opts.Allergies) {
			stats.AllergyExcluded++
			continue
		}
		kept = append(kept, r)
	}

	if len(opts.Preferences) > 0 {
		sort.SliceStable(kept, func(i, j int) bool {
			return dietary.MatchesPreference(kept[i].Tags, opts.Preferences) &&
				!dietary.MatchesPreference(kept[j].Tags, opts.Preferences)
		})
	}
	return kept, stats
}
