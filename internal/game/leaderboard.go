package game

import (
	"github.com/ThePuug/unnamed-hex-tile-mmo-sub003/internal/game/rank"
)

// Scoring weights for the kill leaderboard. Kills dominate; deaths are a
// small penalty so equal-kill actors still order meaningfully.
const (
	killScoreWeight   = 100.0
	deathScorePenalty = 10.0
)

// Leaderboard ranks actors by combat score with O(log n) updates. The engine
// updates it when kills and deaths are finalized; API reads never touch the
// engine lock.
type Leaderboard struct {
	index *rank.SkipList
}

// LeaderboardEntry is one ranked actor.
type LeaderboardEntry struct {
	ActorID string  `json:"actorId"`
	Score   float64 `json:"score"`
	Rank    int     `json:"rank"`
}

// NewLeaderboard creates an empty leaderboard.
func NewLeaderboard() *Leaderboard {
	return &Leaderboard{index: rank.NewSkipList()}
}

func combatScore(kills, deaths int) float64 {
	return float64(kills)*killScoreWeight - float64(deaths)*deathScorePenalty
}

// Update repositions an actor under their current kill and death counts.
func (lb *Leaderboard) Update(actorID string, kills, deaths int) {
	lb.index.Insert(actorID, combatScore(kills, deaths))
}

// Remove drops an actor from the ranking.
func (lb *Leaderboard) Remove(actorID string) {
	lb.index.Remove(actorID)
}

// Rank returns an actor's 1-indexed rank, or 0 when absent.
func (lb *Leaderboard) Rank(actorID string) int {
	return lb.index.Rank(actorID)
}

// Score returns an actor's current score.
func (lb *Leaderboard) Score(actorID string) (float64, bool) {
	return lb.index.Score(actorID)
}

// Top returns the best n actors in rank order.
func (lb *Leaderboard) Top(n int) []LeaderboardEntry {
	return toEntries(lb.index.Range(1, n), 1)
}

// Around returns the actors ranked near one actor: above better-ranked
// entries, the actor, and below worse-ranked entries.
func (lb *Leaderboard) Around(actorID string, above, below int) []LeaderboardEntry {
	r := lb.index.Rank(actorID)
	if r == 0 {
		return nil
	}
	start := r - above
	if start < 1 {
		start = 1
	}
	return toEntries(lb.index.Range(start, r+below), start)
}

// Length returns the number of ranked actors.
func (lb *Leaderboard) Length() int {
	return lb.index.Length()
}

// Clear drops every ranking.
func (lb *Leaderboard) Clear() {
	lb.index.Clear()
}

func toEntries(entries []rank.Entry, startRank int) []LeaderboardEntry {
	result := make([]LeaderboardEntry, len(entries))
	for i, e := range entries {
		result[i] = LeaderboardEntry{
			ActorID: e.ActorID,
			Score:   e.Score,
			Rank:    startRank + i,
		}
	}
	return result
}
