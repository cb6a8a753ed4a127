package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSortOnCountTable(t *testing.T) {
	counts := map[int]int{1: 4, 2: 2, 3: 2, 4: 7}
	assert.Equal(t, []int{4, 1, 2, 3}, SortOnCountTable(counts, false), "count desc, id asc on ties")
	assert.Equal(t, []int{3, 2, 1, 4}, SortOnCountTable(counts, true), "ascending reverses the order")
}

func TestSortOnCountDeterministic(t *testing.T) {
	counts := map[int]int{5: 1, 9: 1, 2: 1, 7: 1}
	first := SortOnCountTable(counts, false)
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, SortOnCountTable(counts, false))
	}
	assert.Equal(t, []int{2, 5, 7, 9}, first)
}

func TestSortOnCountMissingItems(t *testing.T) {
	counts := map[int]int{1: 3}
	assert.Equal(t, []int{1, 2, 8}, SortOnCount([]int{8, 1, 2}, counts, false))
}

func TestMakeUniqueTrans(t *testing.T) {
	assert.Equal(t, []int{3, 1, 2}, MakeUniqueTrans([]int{3, 1, 3, 2, 1}))
	assert.Empty(t, MakeUniqueTrans([]int{}))
}

func TestCheckUniqueTrans(t *testing.T) {
	assert.True(t, CheckUniqueTrans([]int{1, 2, 3}))
	assert.False(t, CheckUniqueTrans([]int{1, 2, 1}))
}
