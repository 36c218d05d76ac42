package dietary

import (
	_ "embed"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed rules.yaml
var defaultRules []byte

type term struct {
	word     string
	boundary *regexp.Regexp
}

// Rules maps each known diet to the ingredient terms it forbids.
type Rules struct {
	forbidden map[Diet][]term
}

// ParseRules decodes a YAML document mapping diet names to forbidden terms.
func ParseRules(data []byte) (*Rules, error) {
	var raw map[string][]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode dietary rules: %w", err)
	}

	rules := &Rules{forbidden: make(map[Diet][]term, len(raw))}
	for name, words := range raw {
		diet := Diet(normalize(name))
		terms := make([]term, 0, len(words))
		for _, w := range words {
			w = normalize(w)
			if w == "" {
				continue
			}
			re, err := regexp.Compile(`\b` + regexp.QuoteMeta(w) + `\b`)
			if err != nil {
				return nil, fmt.Errorf("compile term %q for %s: %w", w, diet, err)
			}
			terms = append(terms, term{word: w, boundary: re})
		}
		rules.forbidden[diet] = terms
	}
	return rules, nil
}

// DefaultRules returns the rule table shipped with the binary.
var DefaultRules = sync.OnceValue(func() *Rules {
	r, err := ParseRules(defaultRules)
	if err != nil {
		panic(err)
	}
	return r
})

// Forbidden returns the forbidden terms for p. Custom and unknown preferences forbid nothing.
func (r *Rules) Forbidden(p Preference) []string {
	d, ok := p.Known()
	if !ok {
		return nil
	}
	terms := r.forbidden[d]
	out := make([]string, len(terms))
	for i, t := range terms {
		out[i] = t.word
	}
	return out
}

// violates reports whether ingredient hits t. The ingredient must already be
// trimmed and lower-cased.
//
// RE2's \b is ASCII-only: a term whose first or last letter is non-ASCII
// ("café") only matches through the whitespace word split.
func (t term) violates(ingredient string) bool {
	if ingredient == t.word {
		return true
	}
	if t.boundary.MatchString(ingredient) {
		return true
	}
	if strings.Contains(ingredient, t.word) {
		for _, w := range strings.Fields(ingredient) {
			if w == t.word {
				return true
			}
		}
	}
	return false
}
