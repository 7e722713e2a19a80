package report

import (
	"sync"

	"github.com/google/btree"

	"sortbench/pkg/common"
)

type entry struct {
	res *common.RunResult
	seq uint64
}

// Less orders by elapsed time, then comparisons, then algorithm name. seq
// keeps identical results from replacing each other.
func (e entry) Less(than btree.Item) bool {
	o := than.(entry)
	if e.res.Elapsed != o.res.Elapsed {
		return e.res.Elapsed < o.res.Elapsed
	}
	if e.res.Comparisons != o.res.Comparisons {
		return e.res.Comparisons < o.res.Comparisons
	}
	if e.res.Algorithm != o.res.Algorithm {
		return e.res.Algorithm < o.res.Algorithm
	}
	return e.seq < o.seq
}

// Leaderboard ranks run results, fastest first.
type Leaderboard struct {
	tree *btree.BTree
	lock sync.RWMutex
	seq  uint64
}

func NewLeaderboard(degree int) *Leaderboard {
	return &Leaderboard{
		tree: btree.New(degree),
	}
}

func (lb *Leaderboard) Add(r *common.RunResult) {
	if r == nil {
		return
	}
	lb.lock.Lock()
	defer lb.lock.Unlock()

	lb.seq++
	lb.tree.ReplaceOrInsert(entry{res: r, seq: lb.seq})
}

func (lb *Leaderboard) Len() int {
	lb.lock.RLock()
	defer lb.lock.RUnlock()
	return lb.tree.Len()
}

// Ascend visits results from fastest to slowest until fn returns false.
func (lb *Leaderboard) Ascend(fn func(r *common.RunResult) bool) {
	lb.lock.RLock()
	defer lb.lock.RUnlock()

	lb.tree.Ascend(func(i btree.Item) bool {
		return fn(i.(entry).res)
	})
}

// Top returns at most n results, fastest first.
func (lb *Leaderboard) Top(n int) []*common.RunResult {
	var out []*common.RunResult
	lb.Ascend(func(r *common.RunResult) bool {
		if len(out) >= n {
			return false
		}
		out = append(out, r)
		return true
	})
	return out
}
