package pattern

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/ledger-pulse/internal/model"
)

func floatPtr(f float64) *float64 { return &f }

func TestMatcher_Match(t *testing.T) {
	tests := []struct {
		name     string
		rules    []Rule
		entry    model.LedgerEntry
		wantName string
		wantOK   bool
	}{
		{
			name:     "substring match ignores case",
			rules:    []Rule{{Name: "power", Pattern: "electric", Category: "Utilities"}},
			entry:    model.LedgerEntry{Description: "CITY ELECTRIC CO", Amount: 80, Direction: model.DirectionOut},
			wantName: "power",
			wantOK:   true,
		},
		{
			name:     "regex match",
			rules:    []Rule{{Name: "coffee", Pattern: `^star\w+`, IsRegex: true, Category: "Supplies"}},
			entry:    model.LedgerEntry{Description: "Starbucks Store #1234", Amount: 5},
			wantName: "coffee",
			wantOK:   true,
		},
		{
			name:   "no match",
			rules:  []Rule{{Pattern: "rent", Category: "Rent"}},
			entry:  model.LedgerEntry{Description: "daily sales"},
			wantOK: false,
		},
		{
			name:   "direction filter",
			rules:  []Rule{{Pattern: "transfer", Category: "Transfers", Direction: model.DirectionOut}},
			entry:  model.LedgerEntry{Description: "transfer from owner", Direction: model.DirectionIn},
			wantOK: false,
		},
		{
			name: "amount less than",
			rules: []Rule{
				{Name: "small", Pattern: "amazon", AmountCondition: AmountLessThan, AmountValue: floatPtr(50), Category: "Supplies"},
			},
			entry:    model.LedgerEntry{Description: "AMAZON.COM", Amount: 45.99},
			wantName: "small",
			wantOK:   true,
		},
		{
			name: "amount greater than fails",
			rules: []Rule{
				{Pattern: "amazon", AmountCondition: AmountGreaterThan, AmountValue: floatPtr(50), Category: "Inventory"},
			},
			entry:  model.LedgerEntry{Description: "AMAZON.COM", Amount: 45.99},
			wantOK: false,
		},
		{
			name: "amount range inclusive",
			rules: []Rule{
				{Name: "mid", Pattern: "supplier", AmountCondition: AmountRange, AmountMin: floatPtr(100), AmountMax: floatPtr(500), Category: "Inventory"},
			},
			entry:    model.LedgerEntry{Description: "supplier invoice", Amount: 500},
			wantName: "mid",
			wantOK:   true,
		},
		{
			name: "highest priority wins",
			rules: []Rule{
				{Name: "generic", Pattern: "amazon", Category: "Supplies", Priority: 1},
				{Name: "specific", Pattern: "amazon web", Category: "Software", Priority: 10},
			},
			entry:    model.LedgerEntry{Description: "Amazon Web Services"},
			wantName: "specific",
			wantOK:   true,
		},
		{
			name: "ties keep configured order",
			rules: []Rule{
				{Name: "first", Pattern: "fuel", Category: "Transport"},
				{Name: "second", Pattern: "fuel", Category: "Delivery"},
			},
			entry:    model.LedgerEntry{Description: "fuel"},
			wantName: "first",
			wantOK:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NewMatcher(tt.rules)
			require.NoError(t, err)

			rule, ok := m.Match(&tt.entry)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantName, rule.Name)
			}
		})
	}
}

func TestMatcher_Categorize(t *testing.T) {
	m, err := NewMatcher([]Rule{
		{Pattern: "electric", Category: "Utilities"},
		{Pattern: "rent", Category: "Rent", Direction: model.DirectionOut},
	})
	require.NoError(t, err)

	entries := []model.LedgerEntry{
		{ID: "1", Description: "City Electric", Direction: model.DirectionOut},
		{ID: "2", Description: "Shop rent", Direction: model.DirectionOut, Category: "Premises"},
		{ID: "3", Description: "Shop rent", Direction: model.DirectionOut},
		{ID: "4", Description: "daily sales", Direction: model.DirectionIn},
	}
	hashBefore := entries[0].GenerateHash()

	changed := m.Categorize(entries)

	assert.Equal(t, 2, changed)
	assert.Equal(t, "Utilities", entries[0].Category)
	assert.Equal(t, "Premises", entries[1].Category)
	assert.Equal(t, "Rent", entries[2].Category)
	assert.Empty(t, entries[3].Category)
	assert.Equal(t, hashBefore, entries[0].GenerateHash())
}

func TestMatcher_NoRules(t *testing.T) {
	m, err := NewMatcher(nil)
	require.NoError(t, err)

	entries := []model.LedgerEntry{{Description: "anything"}}
	assert.Equal(t, 0, m.Categorize(entries))
}

func TestRule_Validate(t *testing.T) {
	tests := []struct {
		name    string
		rule    Rule
		wantErr bool
	}{
		{name: "minimal", rule: Rule{Pattern: "x", Category: "Misc"}},
		{name: "missing category", rule: Rule{Pattern: "x"}, wantErr: true},
		{name: "bad regex", rule: Rule{Pattern: "(", IsRegex: true, Category: "Misc"}, wantErr: true},
		{name: "bad direction", rule: Rule{Pattern: "x", Category: "Misc", Direction: "UP"}, wantErr: true},
		{name: "comparison without value", rule: Rule{Pattern: "x", Category: "Misc", AmountCondition: AmountGreaterThan}, wantErr: true},
		{name: "range without bounds", rule: Rule{Pattern: "x", Category: "Misc", AmountCondition: AmountRange}, wantErr: true},
		{name: "range with one bound", rule: Rule{Pattern: "x", Category: "Misc", AmountCondition: AmountRange, AmountMax: floatPtr(10)}},
		{name: "unknown condition", rule: Rule{Pattern: "x", Category: "Misc", AmountCondition: "between"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.rule.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidRule)
			} else {
				assert.NoError(t, err)
			}
		})
	}

	_, err := NewMatcher([]Rule{{Pattern: "x"}})
	assert.ErrorIs(t, err, ErrInvalidRule)
}
