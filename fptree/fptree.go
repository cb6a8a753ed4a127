package fptree

import (
	"fmt"

	U "patternmine/util"
)

// node is one occurrence of an item along one root path of the tree. AuxNode
// threads all nodes carrying the same item into the header table chain; it is
// not an ownership edge, and neither is ParentNode.
type node struct {
	Item       int
	Counter    int
	IsRoot     bool
	ParentNode *node
	AuxNode    *node
	NextMap    map[int]*node
}

// Tree is a frequent-pattern tree together with its header table. HeadMap
// holds the first node of each item chain, TailMap the last so a new node can
// be linked without walking the chain. CountMap carries the total support of
// each item inserted into this tree and is the authoritative count at this
// mining level.
type Tree struct {
	Root     *node
	HeadMap  map[int]*node
	TailMap  map[int]*node
	CountMap map[int]int
}

const rootItem = -1

func InitNode(item, count int) *node {
	return &node{
		Item:    item,
		Counter: count,
		NextMap: make(map[int]*node),
	}
}

func InitTree() Tree {
	root := InitNode(rootItem, 0)
	root.IsRoot = true
	return Tree{
		Root:     root,
		HeadMap:  make(map[int]*node),
		TailMap:  make(map[int]*node),
		CountMap: make(map[int]int),
	}
}

// UpdateHeaderTable appends a freshly created node to its item chain.
func (t *Tree) UpdateHeaderTable(nd *node) error {
	if nd == nil || nd.IsRoot {
		return fmt.Errorf("cannot link node into header table")
	}
	head, ok := t.HeadMap[nd.Item]
	if !ok {
		t.HeadMap[nd.Item] = nd
		return nil
	}
	if tail, ok := t.TailMap[nd.Item]; ok {
		tail.AuxNode = nd
	} else {
		head.AuxNode = nd
	}
	t.TailMap[nd.Item] = nd
	return nil
}

// InsertItemsIntoTree walks and extends the tree with an already filtered and
// ordered item list, adding weight along the whole path.
func (t *Tree) InsertItemsIntoTree(items []int, weight int) error {
	if weight <= 0 {
		return fmt.Errorf("insert weight should be positive, got %d", weight)
	}
	// a repeated item would put the same label twice on one root path
	if !U.CheckUniqueTrans(items) {
		return fmt.Errorf("repeated item in ordered transaction %v", items)
	}
	curr := t.Root
	for _, itm := range items {
		if child, ok := curr.NextMap[itm]; ok {
			child.Counter += weight
			curr = child
		} else {
			nd := InitNode(itm, weight)
			nd.ParentNode = curr
			curr.NextMap[itm] = nd
			if err := t.UpdateHeaderTable(nd); err != nil {
				return err
			}
			curr = nd
		}
		t.CountMap[itm] += weight
	}
	return nil
}

// OrderAndInsertTrans inserts one raw transaction: duplicates dropped, items
// not present in counts filtered out, the rest sorted on the counts order
// before insertion. The counts map is the order snapshot of this tree and has
// to be the same for every insertion.
func (t *Tree) OrderAndInsertTrans(trns []int, counts map[int]int) error {
	return t.orderAndInsert(trns, counts, 1)
}

// OrderAndInsertCondTrans inserts one weighted prefix path from a conditional
// pattern base, with the path count as the increment.
func (t *Tree) OrderAndInsertCondTrans(p ConditionalPattern, counts map[int]int) error {
	return t.orderAndInsert(p.Items, counts, p.Count)
}

func (t *Tree) orderAndInsert(trns []int, counts map[int]int, weight int) error {
	items := make([]int, 0, len(trns))
	for _, itm := range U.MakeUniqueTrans(trns) {
		if _, ok := counts[itm]; ok {
			items = append(items, itm)
		}
	}
	if len(items) == 0 {
		return nil
	}
	ordered := U.SortOnCount(items, counts, false)
	return t.InsertItemsIntoTree(ordered, weight)
}

// BuildTree builds the global tree for a transaction set. counts is the
// already thresholded item frequency map from CountItems.
func BuildTree(trns [][]int, counts map[int]int) (Tree, error) {
	t := InitTree()
	for _, tr := range trns {
		if err := t.OrderAndInsertTrans(tr, counts); err != nil {
			return Tree{}, err
		}
	}
	return t, nil
}

// BuildCondTree builds a conditional tree from the weighted prefix paths of
// one item. counts is the local, re-thresholded frequency map of the
// conditional pattern base.
func BuildCondTree(paths []ConditionalPattern, counts map[int]int) (Tree, error) {
	t := InitTree()
	for _, p := range paths {
		if err := t.OrderAndInsertCondTrans(p, counts); err != nil {
			return Tree{}, err
		}
	}
	return t, nil
}

// maxSinglePathLen bounds the subset enumeration mask; longer single paths go
// through the regular per-item recursion instead.
const maxSinglePathLen = 30

// singlePath returns the nodes from the root's only child down to the leaf if
// the whole tree is one unbranched path.
func (t Tree) singlePath() ([]*node, bool) {
	path := make([]*node, 0)
	curr := t.Root
	for len(curr.NextMap) == 1 {
		for _, nd := range curr.NextMap {
			curr = nd
		}
		path = append(path, curr)
	}
	if len(curr.NextMap) == 0 && len(path) > 0 && len(path) <= maxSinglePathLen {
		return path, true
	}
	return nil, false
}
