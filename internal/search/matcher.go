package search

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/hammamikhairi/petitsplats/internal/domain"
)

// Mode is the matching discipline used for every token of a search.
type Mode int

const (
	// ModeWord requires a form to appear as a whole word.
	ModeWord Mode = iota
	// ModeSubstring accepts a form anywhere inside a field.
	ModeSubstring
)

// String returns the configuration name of the mode.
func (m Mode) String() string {
	switch m {
	case ModeWord:
		return "word"
	case ModeSubstring:
		return "substring"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// ParseMode converts "word" or "substring" to a Mode.
func ParseMode(name string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "word", "":
		return ModeWord, nil
	case "substring":
		return ModeSubstring, nil
	default:
		return 0, fmt.Errorf("unknown match mode %q", name)
	}
}

// Matcher tests recipes against single tokens.
type Matcher struct {
	mode Mode
	norm Normalizer
}

// NewMatcher creates a matcher for the given mode and normalizer.
func NewMatcher(mode Mode, norm Normalizer) *Matcher {
	return &Matcher{mode: mode, norm: norm}
}

// Mode returns the matching discipline.
func (m *Matcher) Mode() Mode { return m.mode }

// Term is a token prepared for repeated matching.
type Term struct {
	Token string
	forms []string
	mode  Mode
	word  *regexp.Regexp
}

// Compile prepares a token. The token is lower-cased; its singular and
// plural forms are computed once.
func (m *Matcher) Compile(token string) Term {
	token = strings.ToLower(token)
	t := Term{
		Token: token,
		forms: m.norm.Forms(token).distinct(),
		mode:  m.mode,
	}
	if m.mode == ModeWord && len(t.forms) > 0 {
		alts := make([]string, len(t.forms))
		for i, f := range t.forms {
			alts[i] = regexp.QuoteMeta(f)
		}
		// Letters and digits of any script count as word characters, so
		// accented words ("crème", "café") get proper boundaries.
		t.word = regexp.MustCompile(`(?i)(?:^|[^\p{L}\p{N}_])(?:` + strings.Join(alts, "|") + `)(?:$|[^\p{L}\p{N}_])`)
	}
	return t
}

// Matches reports whether recipe satisfies token in at least one of its
// searchable fields.
func (m *Matcher) Matches(recipe *domain.Recipe, token string) bool {
	return m.Compile(token).Match(recipe)
}

// Match reports whether the name, the description or any ingredient name
// contains one of the term's forms.
func (t Term) Match(r *domain.Recipe) bool {
	if len(t.forms) == 0 {
		return true
	}
	if t.matchField(r.Name) || t.matchField(r.Description) {
		return true
	}
	for _, ing := range r.Ingredients {
		if t.matchField(ing.Ingredient) {
			return true
		}
	}
	return false
}

func (t Term) matchField(field string) bool {
	if t.word != nil {
		return t.word.MatchString(field)
	}
	lower := strings.ToLower(field)
	for _, f := range t.forms {
		if strings.Contains(lower, f) {
			return true
		}
	}
	return false
}
