package game

import (
	"encoding/json"
	"time"
)

// EventType enum for event classification
type EventType uint8

const (
	EventTypeUnknown EventType = iota
	EventTypeTick              // Tick boundary with RNG seed
	EventTypeActorJoin
	EventTypeActorLeave
	EventTypeThreatQueued
	EventTypeThreatResolved
	EventTypeThreatCleared
	EventTypeAttackEvaded
	EventTypeAbilityRejected
	EventTypeRecoveryStarted
	EventTypeSynergyUnlocked
	EventTypeHeal
	EventTypeDeath
	EventTypeRespawn
)

// EventVersion for backwards compatibility in replay
const EventVersion uint8 = 1

// Event is the core event structure for the event log and the websocket
// broadcast. Payload is the JSON-encoded typed payload for the event type.
type Event struct {
	Version   uint8     `json:"version"`
	Type      EventType `json:"type"`
	Timestamp int64     `json:"timestamp"` // Unix nano
	Sequence  uint64    `json:"sequence"`  // Monotonic sequence
	TickNum   uint64    `json:"tickNum"`
	ActorID   string    `json:"actorId"` // Source actor (for rate limiting)
	Payload   []byte    `json:"payload"`
}

// String returns human-readable event type
func (t EventType) String() string {
	switch t {
	case EventTypeTick:
		return "tick"
	case EventTypeActorJoin:
		return "actor_join"
	case EventTypeActorLeave:
		return "actor_leave"
	case EventTypeThreatQueued:
		return "threat_queued"
	case EventTypeThreatResolved:
		return "threat_resolved"
	case EventTypeThreatCleared:
		return "threat_cleared"
	case EventTypeAttackEvaded:
		return "attack_evaded"
	case EventTypeAbilityRejected:
		return "ability_rejected"
	case EventTypeRecoveryStarted:
		return "recovery_started"
	case EventTypeSynergyUnlocked:
		return "synergy_unlocked"
	case EventTypeHeal:
		return "heal"
	case EventTypeDeath:
		return "death"
	case EventTypeRespawn:
		return "respawn"
	default:
		return "unknown"
	}
}

// ResolutionCause explains why a queued threat resolved.
type ResolutionCause string

const (
	CauseWindowExpired ResolutionCause = "window-expired"
	CauseOverflow      ResolutionCause = "overflow"
	CauseDismissed     ResolutionCause = "dismissed"
)

// Typed payloads for different event types

// TickPayload contains tick boundary information for replay
type TickPayload struct {
	RNGSeed     int64 `json:"rngSeed"`
	ActorCount  int   `json:"actorCount"`
	DeltaTimeNs int64 `json:"deltaTimeNs"`
	ClockMs     int64 `json:"clockMs"`
}

// ThreatQueuedPayload is emitted once when a threat enters a queue. Clients
// run the countdown locally from InsertedAtMs + WindowMs; no per-tick
// countdown traffic follows.
type ThreatQueuedPayload struct {
	ThreatID     string  `json:"threatId"`
	SourceID     string  `json:"sourceId"`
	DefenderID   string  `json:"defenderId"`
	Ability      string  `json:"ability"`
	Kind         string  `json:"kind"`
	Amount       float64 `json:"amount"`
	Critical     bool    `json:"critical"`
	InsertedAtMs int64   `json:"insertedAtMs"`
	WindowMs     int64   `json:"windowMs"`
}

// ThreatResolvedPayload is emitted once when a threat applies damage.
type ThreatResolvedPayload struct {
	ThreatID    string  `json:"threatId"`
	SourceID    string  `json:"sourceId"`
	DefenderID  string  `json:"defenderId"`
	Kind        string  `json:"kind"`
	FinalAmount float64 `json:"finalAmount"`
	DefenderHP  float64 `json:"defenderHp"`
	Cause       string  `json:"cause"`
}

// ThreatClearedPayload is emitted when a reaction ability removes threats
// without damage.
type ThreatClearedPayload struct {
	DefenderID string   `json:"defenderId"`
	Ability    string   `json:"ability"`
	ThreatIDs  []string `json:"threatIds"`
}

// AttackEvadedPayload is emitted when a strike misses outright.
type AttackEvadedPayload struct {
	SourceID   string `json:"sourceId"`
	DefenderID string `json:"defenderId"`
	Ability    string `json:"ability"`
}

// AbilityRejectedPayload reports a refused ability request.
type AbilityRejectedPayload struct {
	ActorID string `json:"actorId"`
	Ability string `json:"ability"`
	Reason  string `json:"reason"`
}

// RecoveryStartedPayload is emitted once when a lockout begins.
type RecoveryStartedPayload struct {
	ActorID    string `json:"actorId"`
	Ability    string `json:"ability"`
	DurationMs int64  `json:"durationMs"`
}

// SynergyUnlockedPayload is emitted once per unlock window opened.
type SynergyUnlockedPayload struct {
	ActorID     string `json:"actorId"`
	Ability     string `json:"ability"`
	UnlockAtMs  int64  `json:"unlockAtMs"`
	TriggeredBy string `json:"triggeredBy"`
}

// ActorJoinPayload contains spawn details
type ActorJoinPayload struct {
	ActorID   string  `json:"actorId"`
	ActorName string  `json:"actorName"`
	MaxHealth float64 `json:"maxHealth"`
}

// HealPayload contains heal event details
type HealPayload struct {
	ActorID   string  `json:"actorId"`
	Amount    float64 `json:"amount"`
	CurrentHP float64 `json:"currentHp"`
}

// DeathPayload contains finalized death details
type DeathPayload struct {
	ActorID  string `json:"actorId"`
	KillerID string `json:"killerId"`
	Deaths   int    `json:"deaths"`
}

// RespawnPayload contains respawn event details
type RespawnPayload struct {
	ActorID string `json:"actorId"`
}

// EncodePayload marshals a payload to JSON bytes
func EncodePayload(payload interface{}) []byte {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil
	}
	return data
}

// NewEvent creates a new event with the current timestamp
func NewEvent(eventType EventType, tickNum uint64, actorID string, payload interface{}) Event {
	return Event{
		Version:   EventVersion,
		Type:      eventType,
		Timestamp: time.Now().UnixNano(),
		TickNum:   tickNum,
		ActorID:   actorID,
		Payload:   EncodePayload(payload),
	}
}
