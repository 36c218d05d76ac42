package dietary

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRulesViolates(t *testing.T) {
	rules := DefaultRules()

	tests := []struct {
		name        string
		ingredients []string
		prefs       []string
		want        bool
	}{
		{"vegetarian rejects chicken breast", []string{"Pasta", "Chicken Breast"}, []string{"vegetarian"}, true},
		{"vegetarian keeps tomato pasta", []string{"Pasta", "Tomato", "Garlic"}, []string{"vegetarian"}, false},
		{"vegan rejects cheese", []string{"Tomato", "Cheese"}, []string{"vegan"}, true},
		{"vegan rejects eggs", []string{"Eggs", "Spinach"}, []string{"vegan"}, true},
		{"pescatarian allows fish", []string{"White Fish", "Lemon"}, []string{"pescatarian"}, false},
		{"pescatarian rejects bacon", []string{"Smoked Bacon"}, []string{"pescatarian"}, true},
		{"gluten-free rejects pasta", []string{"Pasta"}, []string{"gluten-free"}, true},
		{"dairy-free rejects butter", []string{"Unsalted Butter"}, []string{"dairy-free"}, true},
		{"nut-free rejects almonds", []string{"Toasted Almonds"}, []string{"nut-free"}, true},
		{"exact match after trim", []string{"  BEEF  "}, []string{"vegetarian"}, true},
		{"punctuation still a word boundary", []string{"chicken, diced"}, []string{"vegetarian"}, true},
		{"no partial word match", []string{"Hamburger Buns"}, []string{"vegetarian"}, false},
		{"any of several prefs", []string{"Milk"}, []string{"vegetarian", "dairy-free"}, true},
		{"custom preference forbids nothing", []string{"Chicken"}, []string{"low-sodium"}, false},
		{"no preferences", []string{"Chicken", "Bacon"}, nil, false},
		{"preference case ignored", []string{"Chicken"}, []string{"  Vegetarian "}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := rules.Violates(tt.ingredients, ParsePreferences(tt.prefs))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRulesCheckReportsViolation(t *testing.T) {
	rules := DefaultRules()

	v := rules.Check([]string{"Rice", "Chicken Thighs"}, ParsePreferences([]string{"vegetarian"}))
	require.NotNil(t, v)
	assert.Equal(t, "Chicken Thighs", v.Ingredient)
	assert.Equal(t, "chicken", v.Term)
	assert.Equal(t, "vegetarian", v.Preference)

	assert.Nil(t, rules.Check([]string{"Rice"}, ParsePreferences([]string{"vegetarian"})))
}

func TestWordSplitCatchesNonASCIIEdges(t *testing.T) {
	rules, err := ParseRules([]byte("vegan:\n  - café\n"))
	require.NoError(t, err)

	term := rules.forbidden[Vegan][0]
	assert.False(t, term.boundary.MatchString("café latte"), "ASCII word boundary cannot close after é")
	assert.True(t, rules.Violates([]string{"Café Latte"}, []Preference{KnownPreference(Vegan)}))
	assert.True(t, rules.Violates([]string{"iced café"}, []Preference{KnownPreference(Vegan)}))
	assert.False(t, rules.Violates([]string{"pea soup"}, []Preference{KnownPreference(Vegan)}))
}

func TestParseRulesRejectsBadYAML(t *testing.T) {
	_, err := ParseRules([]byte("vegan: [unclosed"))
	assert.Error(t, err)
}

func TestForbidden(t *testing.T) {
	rules := DefaultRules()

	assert.Contains(t, rules.Forbidden(KnownPreference(Vegetarian)), "bacon")
	assert.NotContains(t, rules.Forbidden(KnownPreference(Pescatarian)), "fish")
	assert.Contains(t, rules.Forbidden(KnownPreference(Vegan)), "cheese")
	assert.Empty(t, rules.Forbidden(CustomPreference("keto")))
}

func TestAllergyViolation(t *testing.T) {
	tests := []struct {
		name        string
		ingredients []string
		allergies   []string
		want        bool
	}{
		{"plural allergy catches singular ingredient", []string{"Peanut Butter"}, []string{"peanuts"}, true},
		{"ingredient contains allergy", []string{"Shrimp Paste"}, []string{"shrimp"}, true},
		{"allergy contains ingredient", []string{"Soy"}, []string{"soy sauce"}, true},
		{"equal after trim and case", []string{" SESAME "}, []string{"sesame"}, true},
		{"custom allergy string", []string{"Kiwi Fruit"}, []string{"kiwi"}, true},
		{"no overlap", []string{"Tomato", "Basil"}, []string{"peanuts"}, false},
		{"no allergies", []string{"Peanut Butter"}, nil, false},
		{"double s is not a plural", []string{"Glass Noodles"}, []string{"grass"}, false},
		{"singular must be a whole word", []string{"Peanut Butter"}, []string{"peas"}, false},
		{"singular inside another word", []string{"Goat Cheese"}, []string{"oats"}, false},
		{"singular as word prefix", []string{"Cornflour"}, []string{"corns"}, false},
		{"singular among several words", []string{"Roasted Peanut Sauce"}, []string{"peanuts"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HasAllergen(tt.ingredients, ParseAllergies(tt.allergies)))
		})
	}
}

func TestMatchesPreference(t *testing.T) {
	prefs := ParsePreferences([]string{"vegan"})

	assert.True(t, MatchesPreference([]string{"Quick", "VEGAN"}, prefs))
	assert.False(t, MatchesPreference([]string{"vegetarian"}, prefs))
	assert.False(t, MatchesPreference(nil, prefs))
}
