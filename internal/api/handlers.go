package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ThePuug/unnamed-hex-tile-mmo-sub003/internal/game"
)

// Handler methods for routerHandlers
// These are used by both the standalone router (for testing) and the full Server.

func (h *routerHandlers) handleGetState(w http.ResponseWriter, r *http.Request) {
	state := h.engine.GetState()

	actors := make([]map[string]interface{}, 0)
	for _, a := range state.Actors {
		actors = append(actors, a.ToJSON())
	}

	writeJSON(w, map[string]interface{}{
		"actors":     actors,
		"actorCount": state.ActorCount,
		"aliveCount": state.AliveCount,
	})
}

func (h *routerHandlers) handleGetStats(w http.ResponseWriter, r *http.Request) {
	// OPTIMIZATION: Use lock-free snapshot instead of GetState()
	// This avoids RWMutex contention and redundant sorting on every poll request
	snapshot := h.engine.GetSnapshot()
	stats := map[string]interface{}{
		"actorCount":     snapshot.ActorCount,
		"aliveCount":     snapshot.AliveCount,
		"pendingThreats": snapshot.PendingThreats,
		"totalKills":     snapshot.TotalKills,
		"tickNumber":     snapshot.TickNumber,
		"clockMs":        snapshot.ClockMs,
	}
	writeJSON(w, stats)
}

func (h *routerHandlers) handleGetLeaderboard(w http.ResponseWriter, r *http.Request) {
	// Ranked reads come from the skip list index, not the engine lock.
	entries := h.engine.TopRanked(10)

	result := make([]map[string]interface{}, 0, len(entries))
	for _, e := range entries {
		row := map[string]interface{}{
			"rank":    e.Rank,
			"actorId": e.ActorID,
			"score":   e.Score,
		}
		if actor := h.engine.GetActor(e.ActorID); actor != nil {
			row["name"] = actor.Name
			row["kills"] = actor.Kills
			row["deaths"] = actor.Deaths
		}
		result = append(result, row)
	}

	writeJSON(w, result)
}

func (h *routerHandlers) handleGetAbilities(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, game.AllAbilities())
}

func (h *routerHandlers) handleActorJoin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name       string          `json:"name"`
		Attributes game.Attributes `json:"attributes"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request", http.StatusBadRequest)
		return
	}

	if req.Name == "" {
		writeError(w, "Name is required", http.StatusBadRequest)
		return
	}

	actor := h.engine.AddActor(req.Name, game.ActorOptions{
		Attributes: req.Attributes,
	})

	// Handle actor limit reached (DoS protection)
	if actor == nil {
		writeError(w, "Actor limit reached", http.StatusServiceUnavailable)
		return
	}

	writeJSON(w, actor.ToJSON())
}

func (h *routerHandlers) handleActorHeal(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID     string  `json:"id"`
		Amount float64 `json:"amount"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request", http.StatusBadRequest)
		return
	}

	amount := req.Amount
	if amount <= 0 {
		amount = 20
	}

	success := h.engine.HealActor(req.ID, amount)
	writeJSON(w, map[string]bool{"success": success})
}

func (h *routerHandlers) handleAbilityUse(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Actor   string `json:"actor"`
		Ability string `json:"ability"`
		Target  string `json:"target"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request", http.StatusBadRequest)
		return
	}

	if req.Actor == "" || req.Ability == "" {
		writeError(w, "Actor and ability are required", http.StatusBadRequest)
		return
	}

	err := h.engine.UseAbility(req.Actor, game.AbilityID(req.Ability), req.Target)
	if err != nil {
		// Refusals are normal gameplay outcomes, not server errors.
		var abilityErr *game.AbilityError
		if errors.As(err, &abilityErr) {
			RecordAbilityRejected(string(abilityErr.Reason))
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusConflict)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"success": false,
				"reason":  string(abilityErr.Reason),
			})
			return
		}
		writeError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]bool{"success": true})
}

// Helper functions (package-level for reuse)

func writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, message string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
