package fptree

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreateFpTree(t *testing.T) {
	tr := InitTree()
	assert.NotNil(t, tr.Root)
	assert.True(t, tr.Root.IsRoot)
	assert.Empty(t, tr.CountMap)
}

func TestUpdateHeaderTable(t *testing.T) {
	tr := InitTree()
	n1 := InitNode(5, 1)
	n2 := InitNode(5, 1)
	n3 := InitNode(5, 1)

	err := tr.UpdateHeaderTable(n1)
	assert.Nil(t, err, "error in update header table")
	assert.Nil(t, n1.AuxNode, "aux node should be nil for the chain head")
	err = tr.UpdateHeaderTable(n2)
	assert.Nil(t, err, "error in update header table for n2")
	assert.Equal(t, n2, n1.AuxNode, "head should link to second node")
	assert.Equal(t, n2, tr.TailMap[5], "tail should be the second node")
	assert.Nil(t, n2.AuxNode)
	err = tr.UpdateHeaderTable(n3)
	assert.Nil(t, err, "error in update header table for n3")
	assert.Equal(t, n3, n2.AuxNode, "tail should thread to third node")
	assert.Equal(t, n3, tr.TailMap[5])
	assert.Nil(t, n3.AuxNode)
}

func TestUpdateHeaderTableRejectsRoot(t *testing.T) {
	tr := InitTree()
	err := tr.UpdateHeaderTable(tr.Root)
	assert.NotNil(t, err)
}

func TestInsertItemsIntoTree(t *testing.T) {
	tr := InitTree()
	err := tr.InsertItemsIntoTree([]int{1, 2, 3, 4}, 1)
	assert.Nil(t, err, "error in insert items to tree")
	assert.Equal(t, 4, len(tr.HeadMap), "number of items inserted")

	err = tr.InsertItemsIntoTree([]int{2, 1, 3, 4}, 1)
	assert.Nil(t, err)
	assert.Equal(t, 4, len(tr.HeadMap), "number of items in head map")
	assert.Equal(t, 4, len(tr.TailMap), "diverging path should thread every item chain")
	for _, v := range tr.HeadMap {
		assert.NotNil(t, v.AuxNode, "aux node is not set")
	}
	for _, vTail := range tr.TailMap {
		assert.NotNil(t, vTail.ParentNode, "all parent nodes are set")
	}
	for itm, c := range tr.CountMap {
		assert.Equal(t, 2, c, "item %d should count both transactions", itm)
	}
}

func TestInsertSharedPrefixMergesCounts(t *testing.T) {
	tr := InitTree()
	assert.Nil(t, tr.InsertItemsIntoTree([]int{1, 2, 3}, 1))
	assert.Nil(t, tr.InsertItemsIntoTree([]int{1, 2}, 1))
	assert.Nil(t, tr.InsertItemsIntoTree([]int{1, 4}, 1))

	// one shared path for the common prefix
	assert.Equal(t, 1, len(tr.Root.NextMap))
	n1 := tr.Root.NextMap[1]
	assert.Equal(t, 3, n1.Counter)
	assert.Equal(t, 2, n1.NextMap[2].Counter)
	assert.Equal(t, 1, n1.NextMap[4].Counter)
	assert.Equal(t, 1, n1.NextMap[2].NextMap[3].Counter)
	assert.Equal(t, 3, tr.CountMap[1])
	assert.Equal(t, 2, tr.CountMap[2])
}

func TestInsertWeighted(t *testing.T) {
	tr := InitTree()
	assert.Nil(t, tr.InsertItemsIntoTree([]int{1, 2}, 3))
	assert.Nil(t, tr.InsertItemsIntoTree([]int{1}, 2))
	assert.Equal(t, 5, tr.CountMap[1])
	assert.Equal(t, 3, tr.CountMap[2])
	assert.Equal(t, 5, tr.Root.NextMap[1].Counter)

	err := tr.InsertItemsIntoTree([]int{1}, 0)
	assert.NotNil(t, err, "zero weight should be rejected")
}

func TestInsertRejectsRepeatedItem(t *testing.T) {
	tr := InitTree()
	err := tr.InsertItemsIntoTree([]int{1, 2, 1}, 1)
	assert.NotNil(t, err, "an item cannot appear twice on one path")
}

func TestOrderAndInsertTrans(t *testing.T) {
	counts := map[int]int{1: 4, 2: 3, 3: 2}
	tr := InitTree()
	// unsorted, with a duplicate and an infrequent item
	err := tr.OrderAndInsertTrans([]int{3, 9, 1, 2, 1}, counts)
	assert.Nil(t, err)
	// path follows the count order 1 > 2 > 3, item 9 filtered out
	n1 := tr.Root.NextMap[1]
	assert.NotNil(t, n1)
	assert.Equal(t, 1, n1.Counter, "duplicate item should count once")
	n2 := n1.NextMap[2]
	assert.NotNil(t, n2)
	assert.NotNil(t, n2.NextMap[3])
	_, ok := tr.CountMap[9]
	assert.False(t, ok)
}

func TestOrderAndInsertTransTieBreak(t *testing.T) {
	counts := map[int]int{7: 2, 3: 2}
	tr := InitTree()
	assert.Nil(t, tr.OrderAndInsertTrans([]int{7, 3}, counts))
	// equal counts order on ascending item id
	n3 := tr.Root.NextMap[3]
	assert.NotNil(t, n3)
	assert.NotNil(t, n3.NextMap[7])
}

func TestBuildTree(t *testing.T) {
	trns := [][]int{{1, 2, 3}, {1, 2}, {1, 3}, {1}}
	counts := CountItems(trns, 2)
	tr, err := BuildTree(trns, counts)
	assert.Nil(t, err)
	assert.Equal(t, 4, tr.CountMap[1])
	assert.Equal(t, 2, tr.CountMap[2])
	assert.Equal(t, 2, tr.CountMap[3])
}

func TestSinglePath(t *testing.T) {
	tr := InitTree()
	assert.Nil(t, tr.InsertItemsIntoTree([]int{1, 2, 3}, 2))
	assert.Nil(t, tr.InsertItemsIntoTree([]int{1, 2}, 1))
	path, ok := tr.singlePath()
	assert.True(t, ok)
	assert.Equal(t, 3, len(path))
	assert.Equal(t, []int{1, 2, 3}, []int{path[0].Item, path[1].Item, path[2].Item})

	assert.Nil(t, tr.InsertItemsIntoTree([]int{1, 4}, 1))
	_, ok = tr.singlePath()
	assert.False(t, ok, "branching tree is not a single path")

	empty := InitTree()
	_, ok = empty.singlePath()
	assert.False(t, ok)
}
