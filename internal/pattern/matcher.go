package pattern

import (
	"log/slog"
	"regexp"
	"sort"
	"strings"

	"github.com/Veraticus/ledger-pulse/internal/model"
)

// Matcher evaluates ledger entries against category rules.
type Matcher struct {
	compiled map[int]*regexp.Regexp
	rules    []Rule
}

// NewMatcher validates rules and returns a matcher that tries them in
// priority order (highest first, ties in the given order).
func NewMatcher(rules []Rule) (*Matcher, error) {
	m := &Matcher{
		rules:    make([]Rule, len(rules)),
		compiled: make(map[int]*regexp.Regexp),
	}
	copy(m.rules, rules)

	for i := range m.rules {
		if err := m.rules[i].Validate(); err != nil {
			return nil, err
		}
	}

	sort.SliceStable(m.rules, func(i, j int) bool {
		return m.rules[i].Priority > m.rules[j].Priority
	})

	for i := range m.rules {
		if m.rules[i].IsRegex {
			m.compiled[i] = regexp.MustCompile("(?i)" + m.rules[i].Pattern)
		}
	}

	return m, nil
}

// Match returns the highest-priority rule that matches e.
func (m *Matcher) Match(e *model.LedgerEntry) (Rule, bool) {
	for i := range m.rules {
		if m.matchesRule(i, e) {
			return m.rules[i], true
		}
	}
	return Rule{}, false
}

// Categorize sets the category of every uncategorized entry that matches a
// rule and returns how many entries it changed. Entries that already have
// a category are left alone.
func (m *Matcher) Categorize(entries []model.LedgerEntry) int {
	if len(m.rules) == 0 {
		return 0
	}

	changed := 0
	for i := range entries {
		e := &entries[i]
		if strings.TrimSpace(e.Category) != "" {
			continue
		}
		if rule, ok := m.Match(e); ok {
			e.Category = rule.Category
			changed++
		}
	}

	slog.Debug("Applied category rules",
		"rules", len(m.rules),
		"entries", len(entries),
		"categorized", changed)
	return changed
}

func (m *Matcher) matchesRule(i int, e *model.LedgerEntry) bool {
	rule := &m.rules[i]

	if rule.Direction != "" && e.Direction != rule.Direction {
		return false
	}
	return m.matchesDescription(i, e.Description) && matchesAmount(rule, e.Amount)
}

func (m *Matcher) matchesDescription(i int, description string) bool {
	rule := &m.rules[i]
	if rule.Pattern == "" {
		return true
	}
	if re, ok := m.compiled[i]; ok {
		return re.MatchString(description)
	}
	return strings.Contains(strings.ToLower(description), strings.ToLower(rule.Pattern))
}

func matchesAmount(rule *Rule, amount float64) bool {
	switch rule.AmountCondition {
	case "", AmountAny:
		return true
	case AmountLessThan:
		return amount < *rule.AmountValue
	case AmountLessEqual:
		return amount <= *rule.AmountValue
	case AmountEqual:
		return amount == *rule.AmountValue
	case AmountGreaterEqual:
		return amount >= *rule.AmountValue
	case AmountGreaterThan:
		return amount > *rule.AmountValue
	case AmountRange:
		if rule.AmountMin != nil && amount < *rule.AmountMin {
			return false
		}
		if rule.AmountMax != nil && amount > *rule.AmountMax {
			return false
		}
		return true
	}
	return false
}
