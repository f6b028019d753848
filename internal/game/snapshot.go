package game

import (
	"sync/atomic"
	"time"
)

// ResourceLimits defines hard caps to prevent DoS attacks
type ResourceLimits struct {
	MaxTotalActors int // Hard cap on total spawned actors (logic)
	MaxActors      int // Hard cap on actors included per snapshot
}

// DefaultLimits provides production-safe default limits
var DefaultLimits = ResourceLimits{
	MaxTotalActors: 10000,
	MaxActors:      200,
}

// ThreatSnapshot is an immutable copy of one queued threat. RemainingMs is
// computed against the snapshot clock; the frozen window never changes.
type ThreatSnapshot struct {
	ID          string
	SourceID    string
	Ability     string
	Kind        string
	Amount      float64
	Critical    bool
	RemainingMs int64
	WindowMs    int64
}

// RecoverySnapshot is an immutable copy of a running lockout.
type RecoverySnapshot struct {
	Ability     string
	RemainingMs int64
	DurationMs  int64
}

// SynergySnapshot is an immutable copy of one unlock window.
type SynergySnapshot struct {
	Ability    string
	UnlockAtMs int64
	Open       bool
}

// ActorSnapshot is an immutable copy of actor state for API and websocket
// consumers. Fixed-size arrays keep snapshot production allocation-free.
type ActorSnapshot struct {
	ID   string
	Name string

	Health     float64
	MaxHealth  float64
	Stamina    float64
	MaxStamina float64
	Mana       float64
	MaxMana    float64

	QueueCapacity int
	ThreatCount   int
	Threats       [MaxQueueSlots]ThreatSnapshot

	HasRecovery  bool
	Recovery     RecoverySnapshot
	SynergyCount int
	Synergies    [MaxQueueSlots]SynergySnapshot

	IsDead   bool
	InCombat bool
	Kills    int
	Deaths   int
}

// GameSnapshot is a complete immutable combat state.
// The actor slice is pre-allocated and capped to prevent memory attacks.
type GameSnapshot struct {
	Sequence   uint64    // Monotonic sequence for ordering
	Timestamp  time.Time // When snapshot was created
	TickNumber uint64    // Game tick this represents
	RNGSeed    int64     // Seed for deterministic replay
	ClockMs    int64     // Engine clock at snapshot time

	Actors []ActorSnapshot

	// Aggregate stats
	ActorCount     int
	AliveCount     int
	PendingThreats int
	TotalKills     int
}

// SnapshotPool pre-allocates snapshots to avoid GC pressure
// Uses triple buffering for lock-free producer/consumer
type SnapshotPool struct {
	snapshots [3]GameSnapshot // Triple buffer
	limits    ResourceLimits
	writeIdx  uint32 // atomic - producer index
	readIdx   uint32 // atomic - consumer index
	sequence  uint64 // atomic - monotonic sequence
}

// NewSnapshotPool creates a pool with pre-allocated slices
func NewSnapshotPool(limits ResourceLimits) *SnapshotPool {
	pool := &SnapshotPool{limits: limits}

	for i := 0; i < 3; i++ {
		pool.snapshots[i] = GameSnapshot{
			Actors: make([]ActorSnapshot, 0, limits.MaxActors),
		}
	}

	return pool
}

// AcquireWrite gets the next write slot (producer only, called from game tick)
// Returns a snapshot with reset slices but preserved capacity
func (p *SnapshotPool) AcquireWrite() *GameSnapshot {
	idx := atomic.AddUint32(&p.writeIdx, 1) % 3
	snap := &p.snapshots[idx]

	// Reset slice but keep capacity (zero allocation)
	snap.Actors = snap.Actors[:0]

	snap.Sequence = atomic.AddUint64(&p.sequence, 1)
	snap.Timestamp = time.Now()

	return snap
}

// PublishWrite marks write complete and advances read pointer
// Called after snapshot is fully populated
func (p *SnapshotPool) PublishWrite() {
	atomic.StoreUint32(&p.readIdx, atomic.LoadUint32(&p.writeIdx))
}

// AcquireRead gets the latest complete snapshot (consumer only)
// The returned snapshot stays valid until two more writes complete.
func (p *SnapshotPool) AcquireRead() *GameSnapshot {
	idx := atomic.LoadUint32(&p.readIdx) % 3
	return &p.snapshots[idx]
}

// GetLimits returns the resource limits
func (p *SnapshotPool) GetLimits() ResourceLimits {
	return p.limits
}
