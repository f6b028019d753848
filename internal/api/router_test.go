package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ThePuug/unnamed-hex-tile-mmo-sub003/internal/game"
)

// newTestServer builds a router around a real engine without starting its
// tick loop. Ability requests go through the full validation path; the clock
// simply never advances.
func newTestServer(t *testing.T) (*httptest.Server, *game.Engine) {
	t.Helper()
	engine := game.NewEngine(game.EngineConfig{
		TickRate:           10,
		BaseReactionWindow: time.Second,
		Seed:               1,
	})
	router := NewRouter(RouterConfig{
		Engine:         engine,
		DisableLogging: true,
		RateLimitConfig: &RateLimitConfig{
			RequestsPerSecond: 1000,
			Burst:             1000,
		},
	})
	ts := httptest.NewServer(router)
	t.Cleanup(ts.Close)
	return ts, engine
}

func postJSON(t *testing.T, url string, body interface{}) *http.Response {
	t.Helper()
	buf, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(buf))
	if err != nil {
		t.Fatalf("POST %s failed: %v", url, err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
}

func TestActorJoinEndpoint(t *testing.T) {
	ts, engine := newTestServer(t)

	resp := postJSON(t, ts.URL+"/api/actor/join", map[string]interface{}{
		"name": "alice",
		"attributes": map[string]interface{}{
			"vitalityFocus": map[string]int{"axis": 10},
		},
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}

	var body map[string]interface{}
	decodeBody(t, resp, &body)
	if body["name"] != "alice" {
		t.Errorf("Expected name alice, got %v", body["name"])
	}
	if body["id"] == "" || body["id"] == nil {
		t.Error("Expected an actor ID in the response")
	}

	actor := engine.GetActorByName("alice")
	if actor == nil {
		t.Fatal("Expected actor registered in engine")
	}
	if actor.Health.Max <= 100 {
		t.Errorf("Expected vitality build health above base, got %v", actor.Health.Max)
	}
}

func TestActorJoinValidation(t *testing.T) {
	ts, _ := newTestServer(t)

	resp := postJSON(t, ts.URL+"/api/actor/join", map[string]string{})
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("Expected 400 for missing name, got %d", resp.StatusCode)
	}

	resp, err := http.Post(ts.URL+"/api/actor/join", "application/json", bytes.NewReader([]byte("not json")))
	if err != nil {
		t.Fatalf("POST failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("Expected 400 for bad JSON, got %d", resp.StatusCode)
	}
}

func TestAbilityUseEndpoint(t *testing.T) {
	ts, engine := newTestServer(t)
	a := engine.AddActor("attacker", game.ActorOptions{})
	b := engine.AddActor("defender", game.ActorOptions{})

	resp := postJSON(t, ts.URL+"/api/ability/use", map[string]string{
		"actor":   a.ID,
		"ability": "lunge",
		"target":  b.ID,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}
	var body map[string]interface{}
	decodeBody(t, resp, &body)
	if body["success"] != true {
		t.Errorf("Expected success true, got %v", body)
	}
	if b.Queue.Len() != 1 {
		t.Errorf("Expected threat queued through the API, got %d", b.Queue.Len())
	}
}

// TestAbilityUseRejection verifies refusals come back as 409 with the typed
// reason, not as server errors.
func TestAbilityUseRejection(t *testing.T) {
	ts, engine := newTestServer(t)
	a := engine.AddActor("attacker", game.ActorOptions{})
	b := engine.AddActor("defender", game.ActorOptions{})

	// First lunge starts the lockout, second is refused
	postJSON(t, ts.URL+"/api/ability/use", map[string]string{
		"actor": a.ID, "ability": "lunge", "target": b.ID,
	}).Body.Close()

	resp := postJSON(t, ts.URL+"/api/ability/use", map[string]string{
		"actor": a.ID, "ability": "lunge", "target": b.ID,
	})
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("Expected 409 for refused ability, got %d", resp.StatusCode)
	}
	var body map[string]interface{}
	decodeBody(t, resp, &body)
	if body["success"] != false || body["reason"] != "on-recovery" {
		t.Errorf("Expected on-recovery refusal, got %v", body)
	}
}

func TestAbilityUseValidation(t *testing.T) {
	ts, _ := newTestServer(t)

	resp := postJSON(t, ts.URL+"/api/ability/use", map[string]string{"actor": "x"})
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("Expected 400 for missing ability, got %d", resp.StatusCode)
	}

	resp = postJSON(t, ts.URL+"/api/ability/use", map[string]string{
		"actor": "missing", "ability": "lunge", "target": "also-missing",
	})
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("Expected 409 for unknown actor, got %d", resp.StatusCode)
	}
	var body map[string]interface{}
	decodeBody(t, resp, &body)
	if body["reason"] != "unknown-actor" {
		t.Errorf("Expected unknown-actor, got %v", body)
	}
}

func TestStateEndpoint(t *testing.T) {
	ts, engine := newTestServer(t)
	engine.AddActor("alice", game.ActorOptions{})
	engine.AddActor("bob", game.ActorOptions{})

	resp, err := http.Get(ts.URL + "/api/state")
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}
	var body struct {
		Actors     []map[string]interface{} `json:"actors"`
		ActorCount int                      `json:"actorCount"`
		AliveCount int                      `json:"aliveCount"`
	}
	decodeBody(t, resp, &body)
	if body.ActorCount != 2 || body.AliveCount != 2 || len(body.Actors) != 2 {
		t.Errorf("Expected 2 alive actors, got %+v", body)
	}
}

func TestAbilitiesEndpoint(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/abilities")
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	var abilities []map[string]interface{}
	decodeBody(t, resp, &abilities)

	if len(abilities) != len(game.AllAbilities()) {
		t.Fatalf("Expected full catalog, got %d entries", len(abilities))
	}
	found := map[string]bool{}
	for _, ab := range abilities {
		found[ab["id"].(string)] = true
	}
	for _, id := range []string{"auto_attack", "lunge", "deflect", "counter", "ward", "dismiss"} {
		if !found[id] {
			t.Errorf("Expected ability %s in catalog", id)
		}
	}
}

func TestHealEndpoint(t *testing.T) {
	ts, engine := newTestServer(t)
	a := engine.AddActor("patient", game.ActorOptions{})
	a.Health.Current = 50

	resp := postJSON(t, ts.URL+"/api/actor/heal", map[string]interface{}{
		"id": a.ID, "amount": 30,
	})
	var body map[string]bool
	decodeBody(t, resp, &body)
	if !body["success"] {
		t.Fatal("Expected heal to succeed")
	}
	if a.Health.Current != 80 {
		t.Errorf("Expected health 80, got %v", a.Health.Current)
	}

	resp = postJSON(t, ts.URL+"/api/actor/heal", map[string]interface{}{
		"id": "missing", "amount": 30,
	})
	decodeBody(t, resp, &body)
	if body["success"] {
		t.Error("Expected heal of unknown actor to fail")
	}
}

func TestLeaderboardEndpoint(t *testing.T) {
	ts, engine := newTestServer(t)
	names := map[string]bool{}
	for _, name := range []string{"a", "b", "c"} {
		engine.AddActor(name, game.ActorOptions{})
		names[name] = true
	}

	resp, err := http.Get(ts.URL + "/api/leaderboard")
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	var board []map[string]interface{}
	decodeBody(t, resp, &board)
	if len(board) != 3 {
		t.Fatalf("Expected 3 entries, got %d", len(board))
	}
	for i, row := range board {
		if int(row["rank"].(float64)) != i+1 {
			t.Errorf("Expected rank %d at position %d, got %v", i+1, i, row["rank"])
		}
		if !names[row["name"].(string)] {
			t.Errorf("Unexpected actor in leaderboard: %v", row["name"])
		}
	}
}

func TestRateLimitRejects(t *testing.T) {
	engine := game.NewEngine(game.EngineConfig{TickRate: 10, Seed: 1})
	router := NewRouter(RouterConfig{
		Engine:         engine,
		DisableLogging: true,
		RateLimitConfig: &RateLimitConfig{
			RequestsPerSecond: 1,
			Burst:             2,
		},
	})
	ts := httptest.NewServer(router)
	defer ts.Close()

	limited := false
	for i := 0; i < 10; i++ {
		resp, err := http.Get(ts.URL + "/api/stats")
		if err != nil {
			t.Fatalf("GET failed: %v", err)
		}
		resp.Body.Close()
		if resp.StatusCode == http.StatusTooManyRequests {
			limited = true
			break
		}
	}
	if !limited {
		t.Error("Expected rate limiter to reject the burst")
	}
}
