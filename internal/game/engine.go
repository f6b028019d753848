package game

import (
	"log"
	"math/rand"
	"sort"
	"sync"
	"time"
)

// Engine is the authoritative combat core. It owns every actor record and
// advances them on a fixed timestep. All mutation happens under the engine
// lock, on the tick goroutine or on the request path.
type Engine struct {
	mu     sync.RWMutex
	actors map[string]*Actor // by ID
	byName map[string]*Actor

	actorSlice []*Actor // Cached slice reused each tick to avoid allocation

	cfg      EngineConfig
	running  bool
	ticker   *time.Ticker
	stopChan chan struct{}

	// Stats
	totalKills int
	tickCount  int64

	// clock is the monotonic engine clock, advanced exactly dt per tick.
	// Threat timestamps and recovery deadlines are all expressed in it.
	clock time.Duration

	// DoS Protection: Resource limits
	limits ResourceLimits

	// Snapshot system for lock-free API/websocket reads
	snapshotPool *SnapshotPool

	// Kill ranking, updated as deaths finalize. Reads take its own lock, not
	// the engine's.
	board *Leaderboard

	// Event sourcing for replay and debugging
	eventLog *EventLog

	// Deterministic RNG for replay consistency
	rng     *rand.Rand
	rngSeed int64

	// eventSink fans combat events out to the websocket layer. It must be
	// non-blocking; it is invoked under the engine lock.
	eventSink func(Event)

	// snapshotSink receives each published snapshot for local observers.
	// Same contract as eventSink: non-blocking, called under the lock.
	snapshotSink func(*GameSnapshot)

	// tickObserver receives wall-clock tick durations for metrics.
	tickObserver func(time.Duration)
}

// EngineConfig configures a new engine. Zero fields fall back to defaults.
type EngineConfig struct {
	TickRate           int           // ticks per second
	BaseReactionWindow time.Duration // unscaled threat window
	RespawnDelay       time.Duration
	CombatExitDelay    time.Duration // no combat activity for this long drops the flag
	Limits             ResourceLimits
	Seed               int64 // 0 seeds from the wall clock
}

// NewEngine creates a new combat engine with DoS-resilient defaults
func NewEngine(cfg EngineConfig) *Engine {
	if cfg.TickRate <= 0 {
		cfg.TickRate = 30
	}
	if cfg.BaseReactionWindow <= 0 {
		cfg.BaseReactionWindow = 3 * time.Second
	}
	if cfg.RespawnDelay <= 0 {
		cfg.RespawnDelay = 5 * time.Second
	}
	if cfg.CombatExitDelay <= 0 {
		cfg.CombatExitDelay = 5 * time.Second
	}
	limits := cfg.Limits
	if limits.MaxTotalActors <= 0 {
		limits = DefaultLimits
	}
	cfg.Limits = limits

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return &Engine{
		actors:       make(map[string]*Actor),
		byName:       make(map[string]*Actor),
		actorSlice:   make([]*Actor, 0, limits.MaxActors),
		cfg:          cfg,
		stopChan:     make(chan struct{}),
		limits:       limits,
		snapshotPool: NewSnapshotPool(limits),
		board:        NewLeaderboard(),
		eventLog:     NewEventLog(),
		rng:          rand.New(rand.NewSource(seed)),
		rngSeed:      seed,
	}
}

// Start begins the game loop
func (e *Engine) Start() {
	e.mu.Lock()
	if e.running {
		e.mu.Unlock()
		return
	}
	e.running = true
	e.mu.Unlock()

	e.ticker = time.NewTicker(time.Second / time.Duration(e.cfg.TickRate))

	go func() {
		for {
			select {
			case <-e.ticker.C:
				e.tick()
			case <-e.stopChan:
				return
			}
		}
	}()

	log.Printf("🎮 Combat engine started at %d TPS", e.cfg.TickRate)
}

// Stop stops the game loop
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.running {
		return
	}

	e.running = false
	if e.ticker != nil {
		e.ticker.Stop()
	}
	close(e.stopChan)
	log.Println("🛑 Combat engine stopped")
}

// tick is called at tickRate times per second
func (e *Engine) tick() {
	start := time.Now()

	e.mu.Lock()
	e.step(time.Second / time.Duration(e.cfg.TickRate))
	e.mu.Unlock()

	if e.tickObserver != nil {
		e.tickObserver(time.Since(start))
	}
}

// step advances the simulation by dt. Caller must hold the engine lock.
// Per-actor order is fixed: pools regenerate, the lockout counts down, the
// reaction queue expires and resolves. Deaths are finalized only after every
// actor has resolved, so two lethal threats landing the same tick kill both
// sides.
func (e *Engine) step(dt time.Duration) {
	e.tickCount++
	e.clock += dt

	// Log tick event with RNG seed for deterministic replay
	e.eventLog.EmitSimple(EventTypeTick, uint64(e.tickCount), "",
		TickPayload{
			RNGSeed:     e.rngSeed,
			ActorCount:  len(e.actors),
			DeltaTimeNs: int64(dt),
			ClockMs:     e.clock.Milliseconds(),
		})

	// Advance RNG seed deterministically for next tick
	e.rngSeed = e.rng.Int63()
	e.rng.Seed(e.rngSeed)

	// Reuse actorSlice to avoid allocation
	e.actorSlice = e.actorSlice[:0]
	for _, a := range e.actors {
		e.actorSlice = append(e.actorSlice, a)
	}
	actorList := e.actorSlice

	for _, actor := range actorList {
		if actor.IsDead {
			if e.clock >= actor.RespawnAt {
				actor.Respawn()
				e.emit(EventTypeRespawn, actor.ID, RespawnPayload{ActorID: actor.ID})
				log.Printf("✨ %s respawned", actor.Name)
			}
			continue
		}

		actor.TickPools(dt)
		actor.Recovery.Tick(dt)
		e.runAutoAttack(actor)

		for _, t := range actor.Queue.Expire(e.clock) {
			e.resolveThreat(t, actor, CauseWindowExpired)
		}
	}

	// Death pass runs strictly after all resolutions: mutual destruction is
	// a legitimate outcome.
	for _, actor := range actorList {
		if !actor.IsDead && actor.Health.Current <= 0 {
			e.finalizeDeath(actor)
		}
	}

	for _, actor := range actorList {
		if actor.InCombat && e.clock-actor.LastCombatAt >= e.cfg.CombatExitDelay {
			actor.InCombat = false
			actor.AutoTargetID = ""
		}
	}

	e.produceSnapshot()
}

// emit records an event in the audit log and fans it out to the websocket
// sink. Tick events stay log-only.
func (e *Engine) emit(eventType EventType, actorID string, payload interface{}) {
	ev := NewEvent(eventType, uint64(e.tickCount), actorID, payload)
	e.eventLog.Emit(ev)
	if e.eventSink != nil {
		e.eventSink(ev)
	}
}

// runAutoAttack fires the cadence strike when due. Automatic strikes bypass
// the recovery gate but share the whole damage pipeline.
func (e *Engine) runAutoAttack(actor *Actor) {
	if actor.AutoTargetID == "" {
		return
	}
	target := e.actors[actor.AutoTargetID]
	if target == nil || target.IsDead {
		actor.AutoTargetID = ""
		return
	}
	if e.clock < actor.NextAutoAt {
		return
	}
	ab := abilityCatalog[AbilityAutoAttack]
	e.performStrike(actor, target, ab)
	actor.NextAutoAt = e.clock + actor.Attributes.CadenceInterval()
}

// performStrike runs phase 1 of the pipeline and queues the threat,
// force-resolving the defender's oldest threat on overflow.
func (e *Engine) performStrike(attacker, defender *Actor, ab Ability) {
	attacker.MarkCombat(e.clock)
	defender.MarkCombat(e.clock)

	if chance := defender.Attributes.EvasionChance(); chance > 0 && e.rng.Float64() < chance {
		e.emit(EventTypeAttackEvaded, attacker.ID, AttackEvadedPayload{
			SourceID:   attacker.ID,
			DefenderID: defender.ID,
			Ability:    string(ab.ID),
		})
		return
	}

	threat := GenerateThreat(e.rng, attacker, defender, ab, e.cfg.BaseReactionWindow, e.clock)
	forced, overflow := defender.Queue.Insert(threat, defender.Attributes.QueueCapacity())
	if overflow {
		e.resolveThreat(forced, defender, CauseOverflow)
	}

	e.emit(EventTypeThreatQueued, attacker.ID, ThreatQueuedPayload{
		ThreatID:     threat.ID,
		SourceID:     threat.SourceID,
		DefenderID:   defender.ID,
		Ability:      string(threat.Ability),
		Kind:         threat.Kind.String(),
		Amount:       threat.Amount,
		Critical:     threat.Critical,
		InsertedAtMs: threat.InsertedAt.Milliseconds(),
		WindowMs:     threat.Window.Milliseconds(),
	})
}

// resolveThreat runs phase 2 against the defender and emits the result.
func (e *Engine) resolveThreat(t QueuedThreat, defender *Actor, cause ResolutionCause) {
	final := ResolveThreat(t, defender)
	defender.lastHitBy = t.SourceID
	defender.MarkCombat(e.clock)

	e.emit(EventTypeThreatResolved, t.SourceID, ThreatResolvedPayload{
		ThreatID:    t.ID,
		SourceID:    t.SourceID,
		DefenderID:  defender.ID,
		Kind:        t.Kind.String(),
		FinalAmount: final,
		DefenderHP:  defender.Health.Current,
		Cause:       string(cause),
	})
}

// finalizeDeath marks the actor dead, schedules the respawn, and credits the
// last attacker.
func (e *Engine) finalizeDeath(actor *Actor) {
	actor.IsDead = true
	actor.Deaths++
	actor.RespawnAt = e.clock + e.cfg.RespawnDelay
	actor.Queue.ClearAll()
	actor.Recovery.Reset()
	actor.AutoTargetID = ""

	killerID := ""
	if killer := e.actors[actor.lastHitBy]; killer != nil && killer.ID != actor.ID {
		killer.Kills++
		e.totalKills++
		killerID = killer.ID
		e.board.Update(killer.ID, killer.Kills, killer.Deaths)
		log.Printf("💀 %s killed by %s (Kills: %d)", actor.Name, killer.Name, killer.Kills)
	} else {
		log.Printf("💀 %s died", actor.Name)
	}
	e.board.Update(actor.ID, actor.Kills, actor.Deaths)

	e.emit(EventTypeDeath, actor.ID, DeathPayload{
		ActorID:  actor.ID,
		KillerID: killerID,
		Deaths:   actor.Deaths,
	})
}

// reject emits the refusal event and returns the typed error.
func (e *Engine) reject(actor *Actor, ability AbilityID, reason RejectReason) error {
	e.emit(EventTypeAbilityRejected, actor.ID, AbilityRejectedPayload{
		ActorID: actor.ID,
		Ability: string(ability),
		Reason:  string(reason),
	})
	return rejectErr(reason)
}

// UseAbility is the request path: validate everything, then commit. A request
// either fully succeeds or changes nothing.
func (e *Engine) UseAbility(actorID string, abilityID AbilityID, targetID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	actor := e.actors[actorID]
	if actor == nil {
		return rejectErr(ReasonUnknownActor)
	}
	ab, ok := GetAbility(abilityID)
	if !ok {
		return e.reject(actor, abilityID, ReasonUnknownAbility)
	}
	if actor.IsDead {
		return e.reject(actor, abilityID, ReasonDead)
	}

	// Dismiss skips every gate: no cost, no lockout, always available.
	if ab.Effect == EffectDismiss {
		e.performDismiss(actor)
		return nil
	}

	if gateErr := actor.Recovery.Gate(ab.ID); gateErr != nil {
		return e.reject(actor, abilityID, gateErr.Reason)
	}

	var target *Actor
	if ab.Effect == EffectStrike {
		target = e.actors[targetID]
		if target == nil || target.IsDead || target.ID == actor.ID {
			return e.reject(actor, abilityID, ReasonInvalidTarget)
		}
	}

	if actor.Stamina.Current < ab.StaminaCost {
		return e.reject(actor, abilityID, ReasonInsufficientStamina)
	}
	if actor.Mana.Current < ab.ManaCost {
		return e.reject(actor, abilityID, ReasonInsufficientMana)
	}

	// Validation done; commit atomically from here.
	actor.Stamina.Spend(ab.StaminaCost)
	actor.Mana.Spend(ab.ManaCost)

	unlocks := actor.Recovery.Start(ab)
	if ab.Recovery > 0 {
		e.emit(EventTypeRecoveryStarted, actor.ID, RecoveryStartedPayload{
			ActorID:    actor.ID,
			Ability:    string(ab.ID),
			DurationMs: ab.Recovery.Milliseconds(),
		})
		for _, s := range unlocks {
			e.emit(EventTypeSynergyUnlocked, actor.ID, SynergyUnlockedPayload{
				ActorID:     actor.ID,
				Ability:     string(s.Ability),
				UnlockAtMs:  s.UnlockAt.Milliseconds(),
				TriggeredBy: string(s.TriggeredBy),
			})
		}
	}

	switch ab.Effect {
	case EffectStrike:
		if ab.ID == AbilityAutoAttack {
			// Cadence-timed: fire now if due, then keep attacking from the
			// tick loop until combat drops or the target dies.
			if e.clock >= actor.NextAutoAt {
				e.performStrike(actor, target, ab)
				actor.NextAutoAt = e.clock + actor.Attributes.CadenceInterval()
			}
			actor.AutoTargetID = target.ID
		} else {
			e.performStrike(actor, target, ab)
		}

	case EffectClearByKind:
		e.clearThreats(actor, ab, actor.Queue.ClearByKind(ab.Kind))

	case EffectClearFront:
		e.clearThreats(actor, ab, actor.Queue.ClearFront(ab.ClearCount))

	case EffectReflect:
		cleared := actor.Queue.ClearFront(ab.ClearCount)
		e.clearThreats(actor, ab, cleared)
		for _, t := range cleared {
			source := e.actors[t.SourceID]
			if source == nil || source.IsDead {
				continue
			}
			rt := ReflectThreat(t, actor, source, e.cfg.BaseReactionWindow, e.clock)
			forced, overflow := source.Queue.Insert(rt, source.Attributes.QueueCapacity())
			if overflow {
				e.resolveThreat(forced, source, CauseOverflow)
			}
			source.MarkCombat(e.clock)
			e.emit(EventTypeThreatQueued, actor.ID, ThreatQueuedPayload{
				ThreatID:     rt.ID,
				SourceID:     rt.SourceID,
				DefenderID:   source.ID,
				Ability:      string(rt.Ability),
				Kind:         rt.Kind.String(),
				Amount:       rt.Amount,
				Critical:     rt.Critical,
				InsertedAtMs: rt.InsertedAt.Milliseconds(),
				WindowMs:     rt.Window.Milliseconds(),
			})
		}
	}

	return nil
}

// clearThreats emits the no-damage removal event for a reaction ability.
func (e *Engine) clearThreats(actor *Actor, ab Ability, cleared []QueuedThreat) {
	actor.MarkCombat(e.clock)
	if len(cleared) == 0 {
		return
	}
	ids := make([]string, len(cleared))
	for i, t := range cleared {
		ids[i] = t.ID
	}
	e.emit(EventTypeThreatCleared, actor.ID, ThreatClearedPayload{
		DefenderID: actor.ID,
		Ability:    string(ab.ID),
		ThreatIDs:  ids,
	})
}

// performDismiss accepts the front threat at its full frozen amount,
// skipping mitigation. Dismissing an empty queue is a no-op.
func (e *Engine) performDismiss(actor *Actor) {
	t, ok := actor.Queue.DismissFront()
	if !ok {
		return
	}
	final := ResolveUnmitigated(t, actor)
	actor.lastHitBy = t.SourceID
	actor.MarkCombat(e.clock)

	e.emit(EventTypeThreatResolved, t.SourceID, ThreatResolvedPayload{
		ThreatID:    t.ID,
		SourceID:    t.SourceID,
		DefenderID:  actor.ID,
		Kind:        t.Kind.String(),
		FinalAmount: final,
		DefenderHP:  actor.Health.Current,
		Cause:       string(CauseDismissed),
	})
}

// AddActor spawns a new actor, or respawns/returns the existing one with the
// same name.
func (e *Engine) AddActor(name string, opts ActorOptions) *Actor {
	e.mu.Lock()
	defer e.mu.Unlock()

	// Rejoining by name never allocates, so it bypasses the cap.
	if existing, ok := e.byName[name]; ok {
		if existing.IsDead {
			existing.Respawn()
			e.emit(EventTypeRespawn, existing.ID, RespawnPayload{ActorID: existing.ID})
		}
		return existing
	}

	// HARD CAP: Prevent DoS via actor flooding
	if len(e.actors) >= e.limits.MaxTotalActors {
		log.Printf("⚠️ Actor limit reached (%d), rejecting: %s", e.limits.MaxTotalActors, name)
		return nil
	}

	actor := NewActor(name, opts)
	e.actors[actor.ID] = actor
	e.byName[name] = actor
	e.board.Update(actor.ID, 0, 0)

	e.emit(EventTypeActorJoin, actor.ID, ActorJoinPayload{
		ActorID:   actor.ID,
		ActorName: actor.Name,
		MaxHealth: actor.Health.Max,
	})

	log.Printf("👤 Actor joined: %s", name)
	return actor
}

// RemoveActor discards an actor whole; pending threats and lockouts go with
// it.
func (e *Engine) RemoveActor(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	actor, ok := e.actors[id]
	if !ok {
		return
	}
	delete(e.actors, id)
	delete(e.byName, actor.Name)
	e.board.Remove(id)
	e.emit(EventTypeActorLeave, id, nil)
}

// GetActor returns an actor by ID
func (e *Engine) GetActor(id string) *Actor {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.actors[id]
}

// GetActorByName returns an actor by name
func (e *Engine) GetActorByName(name string) *Actor {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.byName[name]
}

// HealActor heals an actor
func (e *Engine) HealActor(id string, amount float64) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	actor, ok := e.actors[id]
	if !ok || actor.IsDead {
		return false
	}

	actor.Heal(amount)
	e.emit(EventTypeHeal, actor.ID, HealPayload{
		ActorID:   actor.ID,
		Amount:    amount,
		CurrentHP: actor.Health.Current,
	})
	return true
}

// Clock returns the current engine clock, used by the websocket hello for
// client prediction epoch sync.
func (e *Engine) Clock() time.Duration {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.clock
}

// GameState represents the current state for API responses
type GameState struct {
	Actors     []*Actor
	ActorCount int
	AliveCount int
	TotalKills int
}

// GetState returns the current game state for API responses
func (e *Engine) GetState() GameState {
	e.mu.RLock()
	defer e.mu.RUnlock()

	actors := make([]*Actor, 0, len(e.actors))
	aliveCount := 0
	for _, a := range e.actors {
		actors = append(actors, a)
		if !a.IsDead {
			aliveCount++
		}
	}

	// STABLE SORT by kills (descending), then by name for consistency
	sort.SliceStable(actors, func(i, j int) bool {
		if actors[i].Kills != actors[j].Kills {
			return actors[i].Kills > actors[j].Kills
		}
		return actors[i].Name < actors[j].Name
	})

	return GameState{
		Actors:     actors,
		ActorCount: len(actors),
		AliveCount: aliveCount,
		TotalKills: e.totalKills,
	}
}

// TopRanked returns the best n actors from the kill leaderboard without
// taking the engine lock.
func (e *Engine) TopRanked(n int) []LeaderboardEntry {
	return e.board.Top(n)
}

// ActorRank returns an actor's 1-indexed leaderboard rank, 0 when unranked.
func (e *Engine) ActorRank(id string) int {
	return e.board.Rank(id)
}

// GetSnapshot returns the latest immutable snapshot for lock-free reads
func (e *Engine) GetSnapshot() *GameSnapshot {
	return e.snapshotPool.AcquireRead()
}

// produceSnapshot creates an immutable snapshot of the current combat state.
// Called at the end of each tick; caller holds the lock.
func (e *Engine) produceSnapshot() {
	snap := e.snapshotPool.AcquireWrite()
	snap.TickNumber = uint64(e.tickCount)
	snap.RNGSeed = e.rngSeed
	snap.ClockMs = e.clock.Milliseconds()
	snap.TotalKills = e.totalKills

	actorPtrs := make([]*Actor, 0, len(e.actors))
	for _, a := range e.actors {
		actorPtrs = append(actorPtrs, a)
	}

	// Alive first, then kills, then name for a deterministic cut when the
	// snapshot cap applies.
	sort.Slice(actorPtrs, func(i, j int) bool {
		if !actorPtrs[i].IsDead && actorPtrs[j].IsDead {
			return true
		}
		if actorPtrs[i].IsDead && !actorPtrs[j].IsDead {
			return false
		}
		if actorPtrs[i].Kills != actorPtrs[j].Kills {
			return actorPtrs[i].Kills > actorPtrs[j].Kills
		}
		return actorPtrs[i].Name < actorPtrs[j].Name
	})

	aliveCount := 0
	pendingThreats := 0
	for _, a := range actorPtrs {
		if !a.IsDead {
			aliveCount++
		}
		pendingThreats += a.Queue.Len()
		if len(snap.Actors) >= e.limits.MaxActors {
			continue
		}

		as := ActorSnapshot{
			ID:            a.ID,
			Name:          a.Name,
			Health:        a.Health.Current,
			MaxHealth:     a.Health.Max,
			Stamina:       a.Stamina.Current,
			MaxStamina:    a.Stamina.Max,
			Mana:          a.Mana.Current,
			MaxMana:       a.Mana.Max,
			QueueCapacity: a.Attributes.QueueCapacity(),
			IsDead:        a.IsDead,
			InCombat:      a.InCombat,
			Kills:         a.Kills,
			Deaths:        a.Deaths,
		}

		for _, t := range a.Queue.Threats() {
			if as.ThreatCount >= MaxQueueSlots {
				break
			}
			as.Threats[as.ThreatCount] = ThreatSnapshot{
				ID:          t.ID,
				SourceID:    t.SourceID,
				Ability:     string(t.Ability),
				Kind:        t.Kind.String(),
				Amount:      t.Amount,
				Critical:    t.Critical,
				RemainingMs: t.Remaining(e.clock).Milliseconds(),
				WindowMs:    t.Window.Milliseconds(),
			}
			as.ThreatCount++
		}

		if rec := a.Recovery.Current(); rec != nil {
			as.HasRecovery = true
			as.Recovery = RecoverySnapshot{
				Ability:     string(rec.TriggeredBy),
				RemainingMs: rec.Remaining.Milliseconds(),
				DurationMs:  rec.Duration.Milliseconds(),
			}
			for _, s := range a.Recovery.Synergies() {
				if as.SynergyCount >= MaxQueueSlots {
					break
				}
				as.Synergies[as.SynergyCount] = SynergySnapshot{
					Ability:    string(s.Ability),
					UnlockAtMs: s.UnlockAt.Milliseconds(),
					Open:       rec.Remaining <= s.UnlockAt,
				}
				as.SynergyCount++
			}
		}

		snap.Actors = append(snap.Actors, as)
	}

	snap.ActorCount = len(snap.Actors)
	snap.AliveCount = aliveCount
	snap.PendingThreats = pendingThreats

	e.snapshotPool.PublishWrite()

	if e.snapshotSink != nil {
		e.snapshotSink(e.snapshotPool.AcquireRead())
	}
}

// SetEventSink registers the websocket fanout. The sink is called under the
// engine lock and must never block.
func (e *Engine) SetEventSink(sink func(Event)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.eventSink = sink
}

// SetSnapshotSink registers an observer feed. The sink receives the
// freshly published snapshot each tick and must never block.
func (e *Engine) SetSnapshotSink(sink func(*GameSnapshot)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.snapshotSink = sink
}

// SetTickObserver registers a metrics callback for tick durations.
func (e *Engine) SetTickObserver(obs func(time.Duration)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.tickObserver = obs
}

// StartEventLog initializes the event logging system
func (e *Engine) StartEventLog(filePath string) error {
	return e.eventLog.Start(filePath)
}

// StopEventLog gracefully stops the event logging system
func (e *Engine) StopEventLog() {
	e.eventLog.Stop()
}

// GetEventLogStats returns event log statistics for monitoring
func (e *Engine) GetEventLogStats() map[string]interface{} {
	return e.eventLog.GetStats()
}

// GetLimits returns the current resource limits
func (e *Engine) GetLimits() ResourceLimits {
	return e.limits
}
