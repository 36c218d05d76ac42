package dietary

import "strings"

// Diet is a dietary preference the service knows forbidden terms for.
type Diet string

const (
	Vegetarian  Diet = "vegetarian"
	Vegan       Diet = "vegan"
	Pescatarian Diet = "pescatarian"
	GlutenFree  Diet = "gluten-free"
	DairyFree   Diet = "dairy-free"
	NutFree     Diet = "nut-free"
)

// KnownDiets lists the diets offered in the preference palette.
var KnownDiets = []Diet{Vegetarian, Vegan, Pescatarian, GlutenFree, DairyFree, NutFree}

// CustomPreferenceType is stored in place of a diet name for free-text preferences.
const CustomPreferenceType = "custom"

// Preference is either a known Diet or a free-text custom preference.
type Preference struct {
	diet   Diet
	custom string
}

// ParsePreference normalizes s and classifies it as known or custom.
func ParsePreference(s string) Preference {
	v := normalize(s)
	for _, d := range KnownDiets {
		if v == string(d) {
			return Preference{diet: d}
		}
	}
	return Preference{custom: v}
}

// KnownPreference wraps a known diet.
func KnownPreference(d Diet) Preference {
	return Preference{diet: d}
}

// CustomPreference wraps a free-text preference.
func CustomPreference(s string) Preference {
	return Preference{custom: normalize(s)}
}

// Known returns the diet and true when p is a known diet.
func (p Preference) Known() (Diet, bool) {
	return p.diet, p.diet != ""
}

// Custom returns the free-text value and true when p is custom.
func (p Preference) Custom() (string, bool) {
	return p.custom, p.diet == ""
}

// String returns the lower-cased comparison form.
func (p Preference) String() string {
	if p.diet != "" {
		return string(p.diet)
	}
	return p.custom
}

// IsZero reports whether p carries no value.
func (p Preference) IsZero() bool {
	return p.diet == "" && p.custom == ""
}

// Allergen is an allergen offered in the allergy palette.
type Allergen string

const (
	Peanuts   Allergen = "peanuts"
	TreeNuts  Allergen = "tree nuts"
	Milk      Allergen = "milk"
	Eggs      Allergen = "eggs"
	Fish      Allergen = "fish"
	Shellfish Allergen = "shellfish"
	Soy       Allergen = "soy"
	Wheat     Allergen = "wheat"
	Sesame    Allergen = "sesame"
)

// KnownAllergens lists the allergens offered in the allergy palette.
var KnownAllergens = []Allergen{Peanuts, TreeNuts, Milk, Eggs, Fish, Shellfish, Soy, Wheat, Sesame}

// Allergy is either a known Allergen or a custom allergy string.
type Allergy struct {
	known  Allergen
	custom string
}

// ParseAllergy normalizes s and classifies it as known or custom.
func ParseAllergy(s string) Allergy {
	v := normalize(s)
	for _, a := range KnownAllergens {
		if v == string(a) {
			return Allergy{known: a}
		}
	}
	return Allergy{custom: v}
}

// Known returns the allergen and true when a is from the palette.
func (a Allergy) Known() (Allergen, bool) {
	return a.known, a.known != ""
}

// Custom returns the free-text value and true when a is custom.
func (a Allergy) Custom() (string, bool) {
	return a.custom, a.known == ""
}

func (a Allergy) String() string {
	if a.known != "" {
		return string(a.known)
	}
	return a.custom
}

// IsZero reports whether a carries no value.
func (a Allergy) IsZero() bool {
	return a.known == "" && a.custom == ""
}

// ParsePreferences parses and de-duplicates raw preference strings, dropping blanks.
func ParsePreferences(raw []string) []Preference {
	seen := make(map[string]bool, len(raw))
	out := make([]Preference, 0, len(raw))
	for _, s := range raw {
		p := ParsePreference(s)
		if p.IsZero() || seen[p.String()] {
			continue
		}
		seen[p.String()] = true
		out = append(out, p)
	}
	return out
}

// ParseAllergies parses and de-duplicates raw allergy strings, dropping blanks.
func ParseAllergies(raw []string) []Allergy {
	seen := make(map[string]bool, len(raw))
	out := make([]Allergy, 0, len(raw))
	for _, s := range raw {
		a := ParseAllergy(s)
		if a.IsZero() || seen[a.String()] {
			continue
		}
		seen[a.String()] = true
		out = append(out, a)
	}
	return out
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
