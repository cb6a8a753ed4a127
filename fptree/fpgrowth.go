package fptree

import (
	"fmt"
	"sort"
	"sync"

	log "github.com/sirupsen/logrus"

	U "patternmine/util"
)

// ConditionalPattern is a weighted item list. It carries both the prefix
// paths of a conditional pattern base and the mined frequent itemsets.
type ConditionalPattern struct {
	Items []int `json:"fi"`
	Count int   `json:"fc"`
}

// CountItems counts the support of every item over the transaction set,
// once per transaction, and drops items below minSupport.
func CountItems(trns [][]int, minSupport int) map[int]int {
	counts := make(map[int]int)
	for _, tr := range trns {
		for _, itm := range U.MakeUniqueTrans(tr) {
			counts[itm]++
		}
	}
	for k, v := range counts {
		if v < minSupport {
			delete(counts, k)
		}
	}
	return counts
}

// MineFrequentItemsets mines every itemset with support count >= minSupport
// from the transaction set. Results hold item ids sorted ascending and are
// ordered on support descending with a lexicographic tie break.
func MineFrequentItemsets(trns [][]int, minSupport int) ([]ConditionalPattern, error) {
	return MineFrequentItemsetsParallel(trns, minSupport, 1)
}

// MineFrequentItemsetsParallel is MineFrequentItemsets with the top recursion
// level fanned out over numRoutines workers. Each top-level item branch only
// reads the shared global tree and mines its own conditional trees, so the
// branches are independent; output is identical to the sequential run.
func MineFrequentItemsetsParallel(trns [][]int, minSupport, numRoutines int) ([]ConditionalPattern, error) {
	if minSupport <= 0 {
		return nil, fmt.Errorf("support count should be positive, got %d", minSupport)
	}
	if numRoutines < 1 {
		numRoutines = 1
	}

	counts := CountItems(trns, minSupport)
	if len(counts) == 0 {
		return []ConditionalPattern{}, nil
	}
	tr, err := BuildTree(trns, counts)
	if err != nil {
		return nil, err
	}
	log.Debugf("built global tree with %d frequent items over %d transactions", len(counts), len(trns))

	var patterns []ConditionalPattern
	if numRoutines == 1 {
		container := make([]ConditionalPattern, 0)
		if err := MineTree(tr, minSupport, nil, &container); err != nil {
			return nil, err
		}
		patterns = container
	} else {
		patterns, err = mineTreeParallel(tr, minSupport, numRoutines)
		if err != nil {
			return nil, err
		}
	}

	SortPatterns(patterns)
	return patterns, nil
}

// MineTree mines a built tree, appending every frequent itemset extending
// prefix to container. The tree and its CountMap must have been built from
// transactions already thresholded on minSupport.
func MineTree(tr Tree, minSupport int, prefix []int, container *[]ConditionalPattern) error {
	if len(tr.CountMap) == 0 {
		return nil
	}
	if path, ok := tr.singlePath(); ok {
		emitPathCombinations(path, prefix, container)
		return nil
	}
	basePat := U.SortOnCountTable(tr.CountMap, true)
	for _, itm := range basePat {
		if err := mineItem(tr, itm, minSupport, prefix, container); err != nil {
			return err
		}
	}
	return nil
}

// mineItem mines one header-table item: emit prefix+item, collect the
// conditional pattern base, rebuild local counts and order, recurse on the
// conditional tree. The conditional tree lives only for this call.
func mineItem(tr Tree, itm, minSupport int, prefix []int, container *[]ConditionalPattern) error {
	base := make([]int, 0, len(prefix)+1)
	base = append(base, prefix...)
	base = append(base, itm)
	*container = append(*container, ConditionalPattern{Items: base, Count: tr.CountMap[itm]})

	condPatt, err := findPrefixPath(itm, tr.HeadMap[itm])
	if err != nil {
		return err
	}
	condCounts := countCondItems(condPatt, minSupport)
	if len(condCounts) == 0 {
		return nil
	}
	cTr, err := BuildCondTree(condPatt, condCounts)
	if err != nil {
		return err
	}
	return MineTree(cTr, minSupport, base, container)
}

func mineTreeParallel(tr Tree, minSupport, numRoutines int) ([]ConditionalPattern, error) {
	if path, ok := tr.singlePath(); ok {
		container := make([]ConditionalPattern, 0)
		emitPathCombinations(path, nil, &container)
		return container, nil
	}

	basePat := U.SortOnCountTable(tr.CountMap, true)
	itemChan := make(chan int, len(basePat))
	for _, itm := range basePat {
		itemChan <- itm
	}
	close(itemChan)

	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error
	container := make([]ConditionalPattern, 0)

	for w := 0; w < numRoutines; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			local := make([]ConditionalPattern, 0)
			for itm := range itemChan {
				if err := mineItem(tr, itm, minSupport, nil, &local); err != nil {
					mu.Lock()
					if firstErr == nil {
						firstErr = err
					}
					mu.Unlock()
					return
				}
			}
			mu.Lock()
			container = append(container, local...)
			mu.Unlock()
		}()
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return container, nil
}

// findPrefixPath walks the node-link chain of one item, collecting the path
// from each node's parent up to the root weighted with the node's counter.
// A revisited node means the chain is cyclic, which a correctly built tree
// can never produce.
func findPrefixPath(basePat int, treeNode *node) ([]ConditionalPattern, error) {
	condPattern := make([]ConditionalPattern, 0)
	visited := make(map[*node]bool)
	for treeNode != nil {
		if visited[treeNode] {
			return nil, fmt.Errorf("cycle in node links of item %d", basePat)
		}
		visited[treeNode] = true

		prefixPath := make([]int, 0)
		ascendFpTree(treeNode, &prefixPath)
		if len(prefixPath) > 1 {
			var c ConditionalPattern
			c.Items = append(c.Items, prefixPath[1:]...)
			c.Count = treeNode.Counter
			condPattern = append(condPattern, c)
		}
		treeNode = treeNode.AuxNode
	}
	return condPattern, nil
}

// ascendFpTree collects the items from n up to (excluding) the root.
func ascendFpTree(n *node, prefixPath *[]int) {
	if n.ParentNode != nil {
		*prefixPath = append(*prefixPath, n.Item)
		ascendFpTree(n.ParentNode, prefixPath)
	}
}

// countCondItems sums the path weights per item over a conditional pattern
// base and drops items below minSupport. Each path holds distinct items, so
// summing weights counts each path once per item.
func countCondItems(paths []ConditionalPattern, minSupport int) map[int]int {
	counts := make(map[int]int)
	for _, p := range paths {
		for _, itm := range p.Items {
			counts[itm] += p.Count
		}
	}
	for k, v := range counts {
		if v < minSupport {
			delete(counts, k)
		}
	}
	return counts
}

// emitPathCombinations emits prefix extended with every non-empty subset of a
// single-path tree. Counters never increase downward along one path, so the
// subset support is the counter of its deepest node; min is taken anyway.
func emitPathCombinations(path []*node, prefix []int, container *[]ConditionalPattern) {
	n := len(path)
	for mask := 1; mask < 1<<uint(n); mask++ {
		items := make([]int, 0, len(prefix)+n)
		items = append(items, prefix...)
		minCount := 0
		for i := 0; i < n; i++ {
			if mask&(1<<uint(i)) == 0 {
				continue
			}
			items = append(items, path[i].Item)
			if minCount == 0 || path[i].Counter < minCount {
				minCount = path[i].Counter
			}
		}
		*container = append(*container, ConditionalPattern{Items: items, Count: minCount})
	}
}

// SortPatterns orders itemsets for output: item ids ascending within each
// itemset, itemsets on support descending with ties broken lexicographically
// on the sorted ids.
func SortPatterns(patterns []ConditionalPattern) {
	for i := range patterns {
		sort.Ints(patterns[i].Items)
	}
	sort.SliceStable(patterns, func(i, j int) bool {
		if patterns[i].Count != patterns[j].Count {
			return patterns[i].Count > patterns[j].Count
		}
		a, b := patterns[i].Items, patterns[j].Items
		for k := 0; k < len(a) && k < len(b); k++ {
			if a[k] != b[k] {
				return a[k] < b[k]
			}
		}
		return len(a) < len(b)
	})
}
