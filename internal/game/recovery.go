package game

import "time"

// GlobalRecovery is the single lockout an actor carries after using an
// ability. A new ability use overwrites it; recoveries never stack.
type GlobalRecovery struct {
	Remaining   time.Duration
	Duration    time.Duration
	TriggeredBy AbilityID
}

// SynergyUnlock lets one ability through the lockout early. It is satisfied
// once the parent recovery has at most UnlockAt remaining, and dies with the
// parent recovery.
type SynergyUnlock struct {
	Ability     AbilityID
	UnlockAt    time.Duration
	TriggeredBy AbilityID
}

// RecoveryState tracks an actor's lockout and its open synergy windows.
type RecoveryState struct {
	recovery  *GlobalRecovery
	synergies []SynergyUnlock
}

// Ready reports whether no lockout is running.
func (rs *RecoveryState) Ready() bool {
	return rs.recovery == nil
}

// Current returns the running recovery, or nil when ready.
func (rs *RecoveryState) Current() *GlobalRecovery {
	return rs.recovery
}

// Synergies returns the active unlock windows.
func (rs *RecoveryState) Synergies() []SynergyUnlock {
	return rs.synergies
}

// Tick counts the lockout down. When it reaches zero the recovery and every
// synergy window it opened are removed together.
func (rs *RecoveryState) Tick(dt time.Duration) {
	if rs.recovery == nil {
		return
	}
	rs.recovery.Remaining -= dt
	if rs.recovery.Remaining <= 0 {
		rs.recovery = nil
		rs.synergies = rs.synergies[:0]
	}
}

// Gate checks whether the ability may be used right now. Returns nil when
// allowed, or a typed rejection. Dismiss is never gated here.
func (rs *RecoveryState) Gate(id AbilityID) *AbilityError {
	if rs.recovery == nil {
		return nil
	}
	for _, s := range rs.synergies {
		if s.Ability != id || s.TriggeredBy != rs.recovery.TriggeredBy {
			continue
		}
		if rs.recovery.Remaining <= s.UnlockAt {
			return nil
		}
		return rejectErr(ReasonSynergyLocked)
	}
	return rejectErr(ReasonOnRecovery)
}

// Start begins a new lockout for the given ability, replacing any running
// recovery and its synergy windows with the new trigger's unlocks.
// Abilities with zero recovery (own cadence timers) leave the state ready.
// Returns the unlock windows opened, for event emission.
func (rs *RecoveryState) Start(ab Ability) []SynergyUnlock {
	rs.synergies = rs.synergies[:0]
	if ab.Recovery <= 0 {
		rs.recovery = nil
		return nil
	}
	rs.recovery = &GlobalRecovery{
		Remaining:   ab.Recovery,
		Duration:    ab.Recovery,
		TriggeredBy: ab.ID,
	}
	for _, rule := range SynergiesFor(ab.ID) {
		if len(rs.synergies) >= MaxQueueSlots {
			break
		}
		rs.synergies = append(rs.synergies, SynergyUnlock{
			Ability:     rule.Unlocks,
			UnlockAt:    rule.Reduction,
			TriggeredBy: ab.ID,
		})
	}
	return rs.synergies
}

// Reset clears the lockout and all synergy windows, used on respawn.
func (rs *RecoveryState) Reset() {
	rs.recovery = nil
	rs.synergies = rs.synergies[:0]
}
