package ipc

import (
	"github.com/ThePuug/unnamed-hex-tile-mmo-sub003/internal/game"
)

// ToGameSnapshot converts a wire snapshot back into engine snapshot types,
// for observers written against the engine's read API.
func ToGameSnapshot(msg *SnapshotMessage) *game.GameSnapshot {
	snap := &game.GameSnapshot{
		Sequence:       msg.Sequence,
		Timestamp:      msg.Timestamp,
		TickNumber:     msg.TickNumber,
		ClockMs:        msg.ClockMs,
		RNGSeed:        msg.RNGSeed,
		ActorCount:     msg.ActorCount,
		AliveCount:     msg.AliveCount,
		PendingThreats: msg.PendingThreats,
		TotalKills:     msg.TotalKills,
		Actors:         make([]game.ActorSnapshot, 0, len(msg.Actors)),
	}

	for i := range msg.Actors {
		a := &msg.Actors[i]
		as := game.ActorSnapshot{
			ID:            a.ID,
			Name:          a.Name,
			Health:        a.Health,
			MaxHealth:     a.MaxHealth,
			Stamina:       a.Stamina,
			MaxStamina:    a.MaxStamina,
			Mana:          a.Mana,
			MaxMana:       a.MaxMana,
			QueueCapacity: a.QueueCapacity,
			HasRecovery:   a.HasRecovery,
			IsDead:        a.IsDead,
			InCombat:      a.InCombat,
			Kills:         a.Kills,
			Deaths:        a.Deaths,
		}

		n := len(a.Threats)
		if n > game.MaxQueueSlots {
			n = game.MaxQueueSlots
		}
		as.ThreatCount = n
		for j := 0; j < n; j++ {
			t := &a.Threats[j]
			as.Threats[j] = game.ThreatSnapshot{
				ID:          t.ID,
				SourceID:    t.SourceID,
				Ability:     t.Ability,
				Kind:        t.Kind,
				Amount:      t.Amount,
				Critical:    t.Critical,
				RemainingMs: t.RemainingMs,
				WindowMs:    t.WindowMs,
			}
		}

		if a.HasRecovery {
			as.Recovery = game.RecoverySnapshot{
				Ability:     a.Recovery.Ability,
				RemainingMs: a.Recovery.RemainingMs,
				DurationMs:  a.Recovery.DurationMs,
			}
			m := len(a.Synergies)
			if m > game.MaxQueueSlots {
				m = game.MaxQueueSlots
			}
			as.SynergyCount = m
			for j := 0; j < m; j++ {
				s := &a.Synergies[j]
				as.Synergies[j] = game.SynergySnapshot{
					Ability:    s.Ability,
					UnlockAtMs: s.UnlockAtMs,
					Open:       s.Open,
				}
			}
		}

		snap.Actors = append(snap.Actors, as)
	}

	return snap
}
