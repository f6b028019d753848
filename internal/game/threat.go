package game

import "time"

// QueuedThreat is a pending hit waiting in a defender's reaction queue.
// Amount already includes the attacker-side multiplier and crit roll; the
// defender-side mitigation is applied only when the threat resolves.
// Window is frozen at insertion and never recomputed.
type QueuedThreat struct {
	ID         string
	SourceID   string
	Ability    AbilityID
	Kind       DamageKind
	Amount     float64
	Critical   bool
	InsertedAt time.Duration // engine clock at insertion
	Window     time.Duration
}

// Remaining returns time left before the threat resolves on its own.
func (t QueuedThreat) Remaining(now time.Duration) time.Duration {
	left := t.Window - (now - t.InsertedAt)
	if left < 0 {
		return 0
	}
	return left
}

// expired reports whether the threat's window has fully elapsed.
func (t QueuedThreat) expired(now time.Duration) bool {
	return now-t.InsertedAt >= t.Window
}

// ReactionQueue holds an actor's pending threats in strict insertion order.
// Capacity is not stored here: it derives from the defender's attributes and
// is passed in at each insert so attribute changes apply lazily.
type ReactionQueue struct {
	threats []QueuedThreat
}

// NewReactionQueue creates an empty queue with capacity pre-allocated to the
// hard slot ceiling.
func NewReactionQueue() *ReactionQueue {
	return &ReactionQueue{threats: make([]QueuedThreat, 0, MaxQueueSlots)}
}

// Len returns the number of pending threats.
func (q *ReactionQueue) Len() int {
	return len(q.threats)
}

// Front returns the oldest pending threat without removing it.
func (q *ReactionQueue) Front() (QueuedThreat, bool) {
	if len(q.threats) == 0 {
		return QueuedThreat{}, false
	}
	return q.threats[0], true
}

// Threats returns a copy of the pending threats in insertion order.
func (q *ReactionQueue) Threats() []QueuedThreat {
	out := make([]QueuedThreat, len(q.threats))
	copy(out, q.threats)
	return out
}

// Insert appends a threat. When the queue is already at capacity the oldest
// threat is forced out first and returned so the caller can resolve it
// immediately; threats are never silently dropped.
func (q *ReactionQueue) Insert(t QueuedThreat, capacity int) (forced QueuedThreat, overflow bool) {
	if capacity < 1 {
		capacity = 1
	}
	if capacity > MaxQueueSlots {
		capacity = MaxQueueSlots
	}
	if len(q.threats) >= capacity {
		forced = q.threats[0]
		overflow = true
		q.threats = append(q.threats[:0], q.threats[1:]...)
	}
	q.threats = append(q.threats, t)
	return forced, overflow
}

// Expire removes and returns, in insertion order, every threat whose window
// has elapsed at the given clock.
func (q *ReactionQueue) Expire(now time.Duration) []QueuedThreat {
	var expired []QueuedThreat
	n := 0
	for _, t := range q.threats {
		if t.expired(now) {
			expired = append(expired, t)
			continue
		}
		q.threats[n] = t
		n++
	}
	q.threats = q.threats[:n]
	return expired
}

// ClearFront removes up to n threats from the front without resolving them.
// The removed threats deal no damage.
func (q *ReactionQueue) ClearFront(n int) []QueuedThreat {
	if n <= 0 || len(q.threats) == 0 {
		return nil
	}
	if n > len(q.threats) {
		n = len(q.threats)
	}
	cleared := make([]QueuedThreat, n)
	copy(cleared, q.threats[:n])
	q.threats = append(q.threats[:0], q.threats[n:]...)
	return cleared
}

// ClearAll empties the queue without resolving anything.
func (q *ReactionQueue) ClearAll() []QueuedThreat {
	if len(q.threats) == 0 {
		return nil
	}
	cleared := make([]QueuedThreat, len(q.threats))
	copy(cleared, q.threats)
	q.threats = q.threats[:0]
	return cleared
}

// ClearByKind removes every threat of the given kind without resolving it,
// preserving the order of the rest.
func (q *ReactionQueue) ClearByKind(kind DamageKind) []QueuedThreat {
	var cleared []QueuedThreat
	n := 0
	for _, t := range q.threats {
		if t.Kind == kind {
			cleared = append(cleared, t)
			continue
		}
		q.threats[n] = t
		n++
	}
	q.threats = q.threats[:n]
	return cleared
}

// DismissFront pops the front threat for immediate unmitigated resolution.
func (q *ReactionQueue) DismissFront() (QueuedThreat, bool) {
	if len(q.threats) == 0 {
		return QueuedThreat{}, false
	}
	front := q.threats[0]
	q.threats = append(q.threats[:0], q.threats[1:]...)
	return front, true
}
