package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculatePercentile_EmptyInput_ReturnsZero(t *testing.T) {
	assert.Equal(t, 0.0, CalculatePercentile([]int64{}, 95))
}

func TestCalculatePercentile_SingleElement(t *testing.T) {
	assert.Equal(t, 7.0, CalculatePercentile([]int64{7}, 50))
}

func TestCalculatePercentile_Interpolates(t *testing.T) {
	data := []int64{0, 10, 20, 30, 40}
	assert.InDelta(t, 20.0, CalculatePercentile(data, 50), 1e-12)
	assert.InDelta(t, 38.0, CalculatePercentile(data, 95), 1e-12)
	assert.InDelta(t, 40.0, CalculatePercentile(data, 100), 1e-12)
}

func TestCalculateMean(t *testing.T) {
	assert.Equal(t, 0.0, CalculateMean([]int64{}))
	assert.InDelta(t, 2.5, CalculateMean([]int{1, 2, 3, 4}), 1e-12)
}

func TestSortedCopy_DoesNotMutateInput(t *testing.T) {
	in := []int64{3, 1, 2}
	out := sortedCopy(in)
	assert.Equal(t, []int64{1, 2, 3}, out)
	assert.Equal(t, []int64{3, 1, 2}, in)
}
