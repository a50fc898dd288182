package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/Veraticus/ledger-pulse/internal/common"
	"github.com/Veraticus/ledger-pulse/internal/pattern"
)

// KeyCategoryRules is the viper key holding import category rules.
const KeyCategoryRules = "import.category_rules"

// LoadCategoryRules reads the category rules applied to imported entries.
//
//	import:
//	  category_rules:
//	    - pattern: electric
//	      category: Utilities
//	    - pattern: "^amzn"
//	      regex: true
//	      amount_condition: lt
//	      amount_value: 100
//	      category: Supplies
func LoadCategoryRules(v *viper.Viper) ([]pattern.Rule, error) {
	if !v.IsSet(KeyCategoryRules) {
		return nil, nil
	}

	var rules []pattern.Rule
	if err := v.UnmarshalKey(KeyCategoryRules, &rules); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", common.ErrInvalidConfig, KeyCategoryRules, err)
	}
	for i := range rules {
		if err := rules[i].Validate(); err != nil {
			return nil, fmt.Errorf("%w: %v", common.ErrInvalidConfig, err)
		}
	}
	return rules, nil
}
