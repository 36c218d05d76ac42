package dietary

import "strings"

// Violation describes why an ingredient list fails a preference.
type Violation struct {
	Ingredient string
	Term       string
	Preference string
}

// Check returns the first violation of any preference by any ingredient, or nil.
func (r *Rules) Check(ingredients []string, prefs []Preference) *Violation {
	if len(prefs) == 0 {
		return nil
	}
	for _, raw := range ingredients {
		ing := normalize(raw)
		for _, p := range prefs {
			d, ok := p.Known()
			if !ok {
				continue
			}
			for _, t := range r.forbidden[d] {
				if t.violates(ing) {
					return &Violation{Ingredient: raw, Term: t.word, Preference: string(d)}
				}
			}
		}
	}
	return nil
}

// Violates reports whether any ingredient is forbidden under any preference.
func (r *Rules) Violates(ingredients []string, prefs []Preference) bool {
	return r.Check(ingredients, prefs) != nil
}

// AllergyViolation returns the first (ingredient, allergy) pair where one
// contains the other after trimming and lower-casing. A plural allergy also
// matches when its singular form is a whole word of the ingredient, so
// "peanuts" catches "Peanut Butter" but "peas" does not.
func AllergyViolation(ingredients []string, allergies []Allergy) (string, string, bool) {
	for _, raw := range ingredients {
		ing := normalize(raw)
		if ing == "" {
			continue
		}
		for _, a := range allergies {
			al := a.String()
			if al == "" {
				continue
			}
			if overlaps(ing, al) {
				return raw, al, true
			}
			if one := singular(al); one != al && hasWord(ing, one) {
				return raw, al, true
			}
		}
	}
	return "", "", false
}

func overlaps(ingredient, allergy string) bool {
	return ingredient == allergy || strings.Contains(ingredient, allergy) || strings.Contains(allergy, ingredient)
}

func hasWord(s, word string) bool {
	for _, w := range strings.Fields(s) {
		if w == word {
			return true
		}
	}
	return false
}

func singular(s string) string {
	if len(s) > 3 && strings.HasSuffix(s, "s") && !strings.HasSuffix(s, "ss") {
		return s[:len(s)-1]
	}
	return s
}

// HasAllergen reports whether any ingredient matches any allergy.
func HasAllergen(ingredients []string, allergies []Allergy) bool {
	_, _, hit := AllergyViolation(ingredients, allergies)
	return hit
}

// MatchesPreference reports whether any dietary tag equals one of prefs, case-insensitively.
func MatchesPreference(tags []string, prefs []Preference) bool {
	for _, tag := range tags {
		t := normalize(tag)
		for _, p := range prefs {
			if t == p.String() {
				return true
			}
		}
	}
	return false
}
