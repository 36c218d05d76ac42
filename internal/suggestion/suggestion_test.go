package suggestion

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/pageza/pantrychef/backend/internal/dietary"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var pantry = []string{"Tomato", "Pasta", "Garlic"}

func sampleCandidates() []Candidate {
	return []Candidate{
		{ID: "stir-fry", Ingredients: []string{"Chicken Breast", "Garlic", "Soy Sauce", "Rice"}},
		{ID: "omelette", Ingredients: []string{"Eggs", "Cheese", "Tomato"}, Tags: []string{"Vegetarian"}},
		{ID: "tomato-pasta", Ingredients: []string{"Pasta", "Tomato", "Garlic", "Olive Oil", "Salt", "Pepper"}},
		{ID: "beans", Ingredients: []string{"Rice", "Beans"}},
		{ID: "empty"},
	}
}

func ids(rs []Ranked) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.ID
	}
	return out
}

func TestMatch(t *testing.T) {
	m := Match(pantry, []string{"Pasta", "Tomato", "Garlic", "Olive Oil", "Salt", "Pepper"})
	assert.Equal(t, MatchResult{Matching: 3, Total: 6, Ratio: 0.5}, m)

	assert.Equal(t, MatchResult{}, Match(pantry, nil))
	assert.Equal(t, 0, Match([]string{"tomato"}, []string{"Tomato"}).Matching, "names compare case-sensitively")
}

func TestMatchRatioBounds(t *testing.T) {
	for _, c := range sampleCandidates() {
		m := Match(pantry, c.Ingredients)
		assert.GreaterOrEqual(t, m.Ratio, 0.0, c.ID)
		assert.LessOrEqual(t, m.Ratio, 1.0, c.ID)
	}
}

func TestRankOrdersByRatioAndDropsNonMatches(t *testing.T) {
	got := Rank(pantry, sampleCandidates(), nil)

	if diff := cmp.Diff([]string{"tomato-pasta", "omelette", "stir-fry"}, ids(got)); diff != "" {
		t.Errorf("rank order mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 0.5, got[0].Ratio)
	assert.Equal(t, 0.5, got[0].Composite)
}

func TestRankLikedBoost(t *testing.T) {
	got := Rank(pantry, sampleCandidates(), map[string]bool{"stir-fry": true})

	require.Len(t, got, 3)
	assert.Equal(t, "stir-fry", got[0].ID)
	assert.InDelta(t, 0.55, got[0].Composite, 1e-9)
	assert.Equal(t, 0.25, got[0].Ratio, "exposed ratio is not boosted")
}

func TestRankTieBreaks(t *testing.T) {
	candidates := []Candidate{
		{ID: "b", Ingredients: []string{"Tomato", "Salt"}},
		{ID: "c", Ingredients: []string{"Tomato", "Pasta", "Salt", "Oil"}},
		{ID: "a", Ingredients: []string{"Garlic", "Salt"}},
	}
	got := Rank(pantry, candidates, nil)

	if diff := cmp.Diff([]string{"c", "a", "b"}, ids(got)); diff != "" {
		t.Errorf("tie-break order mismatch (-want +got):\n%s", diff)
	}
}

func TestSuggestAnonymous(t *testing.T) {
	got, _ := Suggest(pantry, sampleCandidates(), Options{})

	assert.Equal(t, []string{"tomato-pasta", "omelette", "stir-fry"}, ids(got))
}

func TestSuggestEmptyPantry(t *testing.T) {
	got, _ := Suggest(nil, sampleCandidates(), Options{})

	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestSuggestVeganExcludesCheese(t *testing.T) {
	got, _ := Suggest(pantry, sampleCandidates(), Options{
		Preferences: dietary.ParsePreferences([]string{"vegan"}),
	})

	assert.Equal(t, []string{"tomato-pasta"}, ids(got))
}

func TestSuggestAllergies(t *testing.T) {
	candidates := append(sampleCandidates(), Candidate{
		ID:          "peanut-noodles",
		Ingredients: []string{"Pasta", "Peanut Butter", "Garlic"},
	})
	got, stats := Suggest(pantry, candidates, Options{
		Allergies: dietary.ParseAllergies([]string{"peanuts", "eggs"}),
	})

	assert.Equal(t, []string{"tomato-pasta", "stir-fry"}, ids(got))
	assert.Equal(t, 2, stats.AllergyExcluded)
}

func TestSuggestPartitionsByPreferredTags(t *testing.T) {
	got, _ := Suggest(pantry, sampleCandidates(), Options{
		Preferences: dietary.ParsePreferences([]string{"vegetarian"}),
	})

	if diff := cmp.Diff([]string{"omelette", "tomato-pasta"}, ids(got)); diff != "" {
		t.Errorf("partition mismatch (-want +got):\n%s", diff)
	}
}

func TestSuggestCapsBeforeFiltering(t *testing.T) {
	var candidates []Candidate
	for i := 0; i < 30; i++ {
		candidates = append(candidates, Candidate{
			ID:          fmt.Sprintf("r%02d", i),
			Ingredients: []string{"Tomato", "Chicken"},
		})
	}
	candidates = append(candidates, Candidate{ID: "low", Ingredients: []string{"Tomato", "Rice", "Beans"}})

	got, _ := Suggest(pantry, candidates, Options{})
	assert.Len(t, got, MaxResults)

	got, stats := Suggest(pantry, candidates, Options{Preferences: dietary.ParsePreferences([]string{"vegetarian"})})
	assert.Empty(t, got, "the vegetarian-safe recipe ranks below the cap")
	assert.Equal(t, Stats{Ranked: MaxResults, DietaryExcluded: MaxResults}, stats)
}
