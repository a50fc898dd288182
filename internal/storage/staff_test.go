package storage

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/ledger-pulse/internal/model"
)

func TestSaveStaffCost_Upsert(t *testing.T) {
	ctx := context.Background()
	store := newTestStorage(t)

	require.NoError(t, store.SaveStaffCost(ctx, &model.StaffCostRecord{Month: "2024-01", StaffCount: 2, TotalSalary: 800}))
	require.NoError(t, store.SaveStaffCost(ctx, &model.StaffCostRecord{Month: "2024-01", StaffCount: 3, TotalSalary: 1200}))

	got, err := store.GetStaffCosts(ctx, "", "")
	require.NoError(t, err)
	assert.Equal(t, []model.StaffCostRecord{{Month: "2024-01", StaffCount: 3, TotalSalary: 1200}}, got)
}

func TestGetStaffCosts_Range(t *testing.T) {
	ctx := context.Background()
	store := newTestStorage(t)

	for _, month := range []string{"2024-03", "2024-01", "2024-02", "2024-04"} {
		require.NoError(t, store.SaveStaffCost(ctx, &model.StaffCostRecord{Month: month, StaffCount: 1, TotalSalary: 100}))
	}

	tests := []struct {
		name       string
		start, end string
		want       []string
	}{
		{name: "open", want: []string{"2024-01", "2024-02", "2024-03", "2024-04"}},
		{name: "from", start: "2024-03", want: []string{"2024-03", "2024-04"}},
		{name: "until", end: "2024-02", want: []string{"2024-01", "2024-02"}},
		{name: "between", start: "2024-02", end: "2024-03", want: []string{"2024-02", "2024-03"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := store.GetStaffCosts(ctx, tt.start, tt.end)
			require.NoError(t, err)

			var months []string
			for _, rec := range got {
				months = append(months, rec.Month)
			}
			assert.Equal(t, tt.want, months)
		})
	}
}

func TestStaffCost_Validation(t *testing.T) {
	ctx := context.Background()
	store := newTestStorage(t)

	assert.ErrorIs(t, store.SaveStaffCost(ctx, nil), ErrNilParameter)
	assert.ErrorIs(t, store.SaveStaffCost(ctx, &model.StaffCostRecord{Month: "January"}), ErrInvalidStaffCost)
	assert.ErrorIs(t, store.SaveStaffCost(ctx, &model.StaffCostRecord{Month: "2024-01", StaffCount: -1}), ErrInvalidStaffCost)
	assert.ErrorIs(t, store.SaveStaffCost(ctx, &model.StaffCostRecord{Month: "2024-01", TotalSalary: -5}), ErrInvalidStaffCost)
	assert.ErrorIs(t, store.SaveStaffCost(ctx, &model.StaffCostRecord{Month: "2024-01", TotalSalary: math.Inf(1)}), ErrInvalidStaffCost)
	assert.ErrorIs(t, store.SaveStaffCost(ctx, &model.StaffCostRecord{Month: "2024-01", TotalSalary: math.NaN()}), ErrInvalidStaffCost)

	_, err := store.GetStaffCosts(ctx, "2024-05", "2024-01")
	assert.ErrorIs(t, err, ErrInvalidDateRange)
	_, err = store.GetStaffCosts(ctx, "bogus", "")
	assert.ErrorIs(t, err, ErrInvalidDateRange)
}
