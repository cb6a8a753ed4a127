package util

import (
	"sort"
)

type kv struct {
	Key   int
	Value int
}

// SortOnCountTable sorts all keys of a count map. Default order is the tree
// insertion order: count descending with item id ascending as tie break.
// ascending=true reverses it, giving the least frequent item first.
func SortOnCountTable(counts map[int]int, ascending bool) []int {
	ll := make([]int, 0, len(counts))
	for k := range counts {
		ll = append(ll, k)
	}
	return SortOnCount(ll, counts, ascending)
}

// SortOnCount sorts the given items on their counts. Items missing from the
// count map sort as count zero.
func SortOnCount(ll []int, counts map[int]int, ascending bool) []int {
	var ss []kv
	for _, k := range ll {
		ss = append(ss, kv{k, counts[k]})
	}

	sort.SliceStable(ss, func(i, j int) bool {
		if ss[i].Value != ss[j].Value {
			return ss[i].Value > ss[j].Value
		}
		return ss[i].Key < ss[j].Key
	})

	res := make([]int, 0, len(ss))
	if !ascending {
		for _, e := range ss {
			res = append(res, e.Key)
		}
	} else {
		for i := len(ss) - 1; i >= 0; i-- {
			res = append(res, ss[i].Key)
		}
	}
	return res
}

// MakeUniqueTrans drops duplicate items from a transaction, keeping the first
// occurrence of each.
func MakeUniqueTrans(trns []int) []int {
	trnsMap := make(map[int]bool, len(trns))
	trnsSet := make([]int, 0, len(trns))
	for _, tr := range trns {
		if !trnsMap[tr] {
			trnsMap[tr] = true
			trnsSet = append(trnsSet, tr)
		}
	}
	return trnsSet
}

// CheckUniqueTrans reports whether a transaction has no repeated items.
func CheckUniqueTrans(trns []int) bool {
	trnsMap := make(map[int]bool, len(trns))
	for _, tr := range trns {
		if trnsMap[tr] {
			return false
		}
		trnsMap[tr] = true
	}
	return true
}
