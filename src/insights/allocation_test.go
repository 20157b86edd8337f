package insights

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateAllocations(t *testing.T) {
	assert.NoError(t, ValidateAllocations(nil))
	assert.NoError(t, ValidateAllocations([]AllocationInput{
		{CategoryID: 1, Percent: 50},
		{CategoryID: 2, Percent: 50},
	}))
	assert.NoError(t, ValidateAllocations([]AllocationInput{
		{CategoryID: 1, Percent: 30.5},
		{CategoryID: 2, Percent: 20},
	}))

	assert.Error(t, ValidateAllocations([]AllocationInput{{CategoryID: 1, Percent: 0}}))
	assert.Error(t, ValidateAllocations([]AllocationInput{{CategoryID: 1, Percent: -5}}))
	assert.Error(t, ValidateAllocations([]AllocationInput{{CategoryID: 1, Percent: 101}}))
	assert.Error(t, ValidateAllocations([]AllocationInput{
		{CategoryID: 1, Percent: 60},
		{CategoryID: 2, Percent: 60},
	}), "over 100% total")
	assert.Error(t, ValidateAllocations([]AllocationInput{
		{CategoryID: 1, Percent: 20},
		{CategoryID: 1, Percent: 20},
	}), "duplicate category")
}

func TestAllocatedAmounts(t *testing.T) {
	amounts := AllocatedAmounts(2500, []AllocationInput{
		{CategoryID: 1, Percent: 30},
		{CategoryID: 2, Percent: 12.5},
	})
	require.Len(t, amounts, 2)
	assert.Equal(t, 750.0, amounts[0].Amount)
	assert.Equal(t, 312.5, amounts[1].Amount)
}

func TestAllocatedAmountsRoundsToCents(t *testing.T) {
	amounts := AllocatedAmounts(100, []AllocationInput{{CategoryID: 1, Percent: 33.333}})
	require.Len(t, amounts, 1)
	assert.Equal(t, 33.33, amounts[0].Amount)
}

func TestUnallocatedPercent(t *testing.T) {
	assert.Equal(t, 100.0, UnallocatedPercent(nil))
	assert.Equal(t, 40.0, UnallocatedPercent([]AllocationInput{
		{CategoryID: 1, Percent: 35},
		{CategoryID: 2, Percent: 25},
	}))
	assert.Equal(t, 0.0, UnallocatedPercent([]AllocationInput{{CategoryID: 1, Percent: 100}}))
}
