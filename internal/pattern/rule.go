// Package pattern fills in categories for imported ledger entries using
// description rules.
package pattern

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/Veraticus/ledger-pulse/internal/model"
)

// ErrInvalidRule is returned for a rule that can never be applied.
var ErrInvalidRule = errors.New("invalid category rule")

// AmountCondition is the amount comparison a rule applies.
type AmountCondition string

// Amount condition constants.
const (
	AmountAny          AmountCondition = "any"
	AmountLessThan     AmountCondition = "lt"
	AmountLessEqual    AmountCondition = "le"
	AmountEqual        AmountCondition = "eq"
	AmountGreaterEqual AmountCondition = "ge"
	AmountGreaterThan  AmountCondition = "gt"
	AmountRange        AmountCondition = "range"
)

// Rule assigns Category to entries whose description matches Pattern.
// A non-regex pattern matches when the description contains it, ignoring
// case. An empty AmountCondition behaves like AmountAny and an empty
// Direction matches both directions.
type Rule struct {
	AmountValue     *float64        `mapstructure:"amount_value"`
	AmountMin       *float64        `mapstructure:"amount_min"`
	AmountMax       *float64        `mapstructure:"amount_max"`
	Name            string          `mapstructure:"name"`
	Pattern         string          `mapstructure:"pattern"`
	Category        string          `mapstructure:"category"`
	Direction       model.Direction `mapstructure:"direction"`
	AmountCondition AmountCondition `mapstructure:"amount_condition"`
	Priority        int             `mapstructure:"priority"`
	IsRegex         bool            `mapstructure:"regex"`
}

// Label names the rule in logs and errors.
func (r *Rule) Label() string {
	if r.Name != "" {
		return r.Name
	}
	return r.Pattern
}

// Validate checks that the rule is complete and its pattern compiles.
func (r *Rule) Validate() error {
	if strings.TrimSpace(r.Category) == "" {
		return fmt.Errorf("%w: rule %q has no category", ErrInvalidRule, r.Label())
	}
	if r.Direction != "" && !r.Direction.IsValid() {
		return fmt.Errorf("%w: rule %q has direction %q", ErrInvalidRule, r.Label(), r.Direction)
	}
	if r.IsRegex {
		if _, err := regexp.Compile(r.Pattern); err != nil {
			return fmt.Errorf("%w: rule %q: %v", ErrInvalidRule, r.Label(), err)
		}
	}

	switch r.AmountCondition {
	case "", AmountAny:
	case AmountLessThan, AmountLessEqual, AmountEqual, AmountGreaterEqual, AmountGreaterThan:
		if r.AmountValue == nil {
			return fmt.Errorf("%w: rule %q needs amount_value for %s", ErrInvalidRule, r.Label(), r.AmountCondition)
		}
	case AmountRange:
		if r.AmountMin == nil && r.AmountMax == nil {
			return fmt.Errorf("%w: rule %q needs amount_min or amount_max", ErrInvalidRule, r.Label())
		}
	default:
		return fmt.Errorf("%w: rule %q has amount condition %q", ErrInvalidRule, r.Label(), r.AmountCondition)
	}
	return nil
}
