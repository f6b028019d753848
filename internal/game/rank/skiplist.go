// Package rank provides the ordered index behind the kill leaderboard.
//
// The core is a skip list with augmented span counts, giving O(log n) insert,
// remove, and rank queries. Redis ZSET uses the same structure.
//
// Origin: Pugh (1990), "Skip Lists: A Probabilistic Alternative to Balanced Trees"
package rank

import (
	"math/rand"
	"sync"
	"sync/atomic"
)

const (
	maxLevel         = 32   // supports 2^32 entries
	levelProbability = 0.25 // P=0.25 gives optimal balance
)

// Entry is one scored actor in the index.
type Entry struct {
	ActorID string
	Score   float64
}

type node struct {
	entry Entry
	next  []*node // forward pointers, one per level
	span  []int   // distance to next node at each level
}

// SkipList orders entries by score descending, actor ID ascending on ties.
// A side map from actor ID to score directs descents for ID-keyed queries.
type SkipList struct {
	head   *node
	scores map[string]float64
	level  int32
	length int32
	mu     sync.RWMutex
	rng    *rand.Rand
}

// NewSkipList creates an empty index.
func NewSkipList() *SkipList {
	return &SkipList{
		head: &node{
			next: make([]*node, maxLevel),
			span: make([]int, maxLevel),
		},
		scores: make(map[string]float64),
		level:  1,
		rng:    rand.New(rand.NewSource(rand.Int63())),
	}
}

// randomLevel draws a geometric level in [1, maxLevel].
func (sl *SkipList) randomLevel() int {
	level := 1
	for level < maxLevel && sl.rng.Float64() < levelProbability {
		level++
	}
	return level
}

// before reports whether entry a sorts ahead of the given score/ID.
func before(a Entry, score float64, actorID string) bool {
	if a.Score != score {
		return a.Score > score
	}
	return a.ActorID < actorID
}

// Insert adds an entry or repositions an existing one under a new score.
func (sl *SkipList) Insert(actorID string, score float64) {
	sl.mu.Lock()
	defer sl.mu.Unlock()

	if old, ok := sl.scores[actorID]; ok {
		sl.remove(actorID, old)
	}
	sl.insert(actorID, score)
	sl.scores[actorID] = score
}

// insert places a fresh node. Caller holds the write lock; no node for this
// actor exists.
func (sl *SkipList) insert(actorID string, score float64) {
	update := make([]*node, maxLevel)
	rank := make([]int, maxLevel)

	x := sl.head
	for i := int(sl.level) - 1; i >= 0; i-- {
		if i == int(sl.level)-1 {
			rank[i] = 0
		} else {
			rank[i] = rank[i+1]
		}
		for x.next[i] != nil && before(x.next[i].entry, score, actorID) {
			rank[i] += x.span[i]
			x = x.next[i]
		}
		update[i] = x
	}

	newLevel := sl.randomLevel()
	if newLevel > int(sl.level) {
		for i := int(sl.level); i < newLevel; i++ {
			rank[i] = 0
			update[i] = sl.head
			update[i].span[i] = int(sl.length)
		}
		atomic.StoreInt32(&sl.level, int32(newLevel))
	}

	n := &node{
		entry: Entry{ActorID: actorID, Score: score},
		next:  make([]*node, newLevel),
		span:  make([]int, newLevel),
	}
	for i := 0; i < newLevel; i++ {
		n.next[i] = update[i].next[i]
		update[i].next[i] = n
		n.span[i] = update[i].span[i] - (rank[0] - rank[i])
		update[i].span[i] = (rank[0] - rank[i]) + 1
	}
	for i := newLevel; i < int(sl.level); i++ {
		update[i].span[i]++
	}

	atomic.AddInt32(&sl.length, 1)
}

// Remove deletes an entry by actor ID.
func (sl *SkipList) Remove(actorID string) bool {
	sl.mu.Lock()
	defer sl.mu.Unlock()

	score, ok := sl.scores[actorID]
	if !ok {
		return false
	}
	sl.remove(actorID, score)
	delete(sl.scores, actorID)
	return true
}

// remove unlinks the node for an actor whose score is known. Caller holds the
// write lock.
func (sl *SkipList) remove(actorID string, score float64) {
	update := make([]*node, maxLevel)
	x := sl.head
	for i := int(sl.level) - 1; i >= 0; i-- {
		for x.next[i] != nil && before(x.next[i].entry, score, actorID) {
			x = x.next[i]
		}
		update[i] = x
	}

	target := x.next[0]
	if target == nil || target.entry.ActorID != actorID {
		return
	}

	for i := 0; i < int(sl.level); i++ {
		if update[i].next[i] == target {
			update[i].span[i] += target.span[i] - 1
			update[i].next[i] = target.next[i]
		} else {
			update[i].span[i]--
		}
	}
	for sl.level > 1 && sl.head.next[sl.level-1] == nil {
		atomic.AddInt32(&sl.level, -1)
	}
	atomic.AddInt32(&sl.length, -1)
}

// Rank returns the 1-indexed rank of an actor, 1 being the highest score.
// Returns 0 when absent.
func (sl *SkipList) Rank(actorID string) int {
	sl.mu.RLock()
	defer sl.mu.RUnlock()

	score, ok := sl.scores[actorID]
	if !ok {
		return 0
	}

	rank := 0
	x := sl.head
	for i := int(sl.level) - 1; i >= 0; i-- {
		for x.next[i] != nil && before(x.next[i].entry, score, actorID) {
			rank += x.span[i]
			x = x.next[i]
		}
	}
	if x.next[0] != nil && x.next[0].entry.ActorID == actorID {
		return rank + 1
	}
	return 0
}

// ByRank returns the entry at a 1-indexed rank via span counts.
func (sl *SkipList) ByRank(rank int) *Entry {
	sl.mu.RLock()
	defer sl.mu.RUnlock()

	if rank <= 0 || rank > int(sl.length) {
		return nil
	}

	traversed := 0
	x := sl.head
	for i := int(sl.level) - 1; i >= 0; i-- {
		for x.next[i] != nil && traversed+x.span[i] <= rank {
			traversed += x.span[i]
			x = x.next[i]
		}
		if traversed == rank {
			e := x.entry
			return &e
		}
	}
	return nil
}

// Range returns entries in rank order for the inclusive 1-indexed range.
func (sl *SkipList) Range(start, end int) []Entry {
	sl.mu.RLock()
	defer sl.mu.RUnlock()

	if start <= 0 {
		start = 1
	}
	if end > int(sl.length) {
		end = int(sl.length)
	}
	if start > end {
		return nil
	}

	result := make([]Entry, 0, end-start+1)
	traversed := 0
	x := sl.head
	for i := int(sl.level) - 1; i >= 0; i-- {
		for x.next[i] != nil && traversed+x.span[i] < start {
			traversed += x.span[i]
			x = x.next[i]
		}
	}
	x = x.next[0]
	for x != nil && traversed < end {
		traversed++
		if traversed >= start {
			result = append(result, x.entry)
		}
		x = x.next[0]
	}
	return result
}

// Score returns an actor's score.
func (sl *SkipList) Score(actorID string) (float64, bool) {
	sl.mu.RLock()
	defer sl.mu.RUnlock()
	score, ok := sl.scores[actorID]
	return score, ok
}

// Length returns the number of entries.
func (sl *SkipList) Length() int {
	return int(atomic.LoadInt32(&sl.length))
}

// Clear drops every entry.
func (sl *SkipList) Clear() {
	sl.mu.Lock()
	defer sl.mu.Unlock()

	for i := range sl.head.next {
		sl.head.next[i] = nil
		sl.head.span[i] = 0
	}
	sl.scores = make(map[string]float64)
	atomic.StoreInt32(&sl.level, 1)
	atomic.StoreInt32(&sl.length, 0)
}

// ForEach walks all entries in rank order until fn returns false.
func (sl *SkipList) ForEach(fn func(rank int, entry Entry) bool) {
	sl.mu.RLock()
	defer sl.mu.RUnlock()

	rank := 0
	for x := sl.head.next[0]; x != nil; x = x.next[0] {
		rank++
		if !fn(rank, x.entry) {
			break
		}
	}
}
