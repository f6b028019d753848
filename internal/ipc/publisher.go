package ipc

import (
	"log"
	"net"
	"sync"
	"sync/atomic"

	"github.com/ThePuug/unnamed-hex-tile-mmo-sub003/internal/game"
)

// Publisher broadcasts combat snapshots to connected observers. Publishing
// never blocks the game loop: snapshots go through a small channel that
// drops the oldest entry when full, and slow subscribers are disconnected
// on write timeout.
type Publisher struct {
	listener net.Listener
	path     string

	mu      sync.Mutex
	clients map[net.Conn]struct{}
	config  *ConfigMessage

	snapshotCh chan *SnapshotMessage
	done       chan struct{}
	wg         sync.WaitGroup

	published uint64
	dropped   uint64
	sendFails uint64
}

// NewPublisher creates a publisher bound to the given socket path
// (empty uses the platform default).
func NewPublisher(path string) (*Publisher, error) {
	ln, err := CreatePlatformListener(path)
	if err != nil {
		return nil, err
	}

	p := &Publisher{
		listener:   ln,
		path:       path,
		clients:    make(map[net.Conn]struct{}),
		snapshotCh: make(chan *SnapshotMessage, 8),
		done:       make(chan struct{}),
	}

	p.wg.Add(2)
	go p.acceptLoop()
	go p.broadcastLoop()

	log.Printf("📡 snapshot publisher listening on %s", GetPlatformAddress(path))
	return p, nil
}

// SetConfig records the loop parameters sent to each new subscriber.
func (p *Publisher) SetConfig(cfg ConfigMessage) {
	p.mu.Lock()
	p.config = &cfg
	p.mu.Unlock()
}

// PublishSnapshot queues a snapshot for broadcast. It never blocks; under
// pressure the oldest queued snapshot is discarded.
func (p *Publisher) PublishSnapshot(snap *game.GameSnapshot) {
	msg := snapshotToMessage(snap)

	select {
	case p.snapshotCh <- msg:
	default:
		select {
		case <-p.snapshotCh:
			atomic.AddUint64(&p.dropped, 1)
		default:
		}
		select {
		case p.snapshotCh <- msg:
		default:
			atomic.AddUint64(&p.dropped, 1)
		}
	}
}

// ClientCount returns the number of connected subscribers.
func (p *Publisher) ClientCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.clients)
}

// GetStats returns publish counters for the stats endpoint.
func (p *Publisher) GetStats() map[string]any {
	p.mu.Lock()
	clients := len(p.clients)
	p.mu.Unlock()

	return map[string]any{
		"clients":    clients,
		"published":  atomic.LoadUint64(&p.published),
		"dropped":    atomic.LoadUint64(&p.dropped),
		"send_fails": atomic.LoadUint64(&p.sendFails),
	}
}

// Close stops the publisher and disconnects all subscribers.
func (p *Publisher) Close() error {
	close(p.done)
	err := p.listener.Close()

	p.mu.Lock()
	for conn := range p.clients {
		conn.Close()
	}
	p.clients = make(map[net.Conn]struct{})
	p.mu.Unlock()

	p.wg.Wait()
	CleanupSocket(GetPlatformAddress(p.path))
	return err
}

func (p *Publisher) acceptLoop() {
	defer p.wg.Done()

	for {
		conn, err := p.listener.Accept()
		if err != nil {
			select {
			case <-p.done:
				return
			default:
				log.Printf("⚠️ snapshot accept error: %v", err)
				continue
			}
		}

		p.mu.Lock()
		p.clients[conn] = struct{}{}
		cfg := p.config
		p.mu.Unlock()

		if cfg != nil {
			writeDeadline(conn)
			if err := WriteMessage(conn, MsgTypeConfig, cfg); err != nil {
				log.Printf("⚠️ config send failed: %v", err)
				p.dropClient(conn)
				continue
			}
		}

		log.Printf("📡 observer connected (%d total)", p.ClientCount())
	}
}

func (p *Publisher) broadcastLoop() {
	defer p.wg.Done()

	for {
		select {
		case <-p.done:
			return
		case msg := <-p.snapshotCh:
			p.broadcast(msg)
		}
	}
}

func (p *Publisher) broadcast(msg *SnapshotMessage) {
	p.mu.Lock()
	conns := make([]net.Conn, 0, len(p.clients))
	for conn := range p.clients {
		conns = append(conns, conn)
	}
	p.mu.Unlock()

	if len(conns) == 0 {
		return
	}

	for _, conn := range conns {
		writeDeadline(conn)
		if err := WriteMessage(conn, MsgTypeSnapshot, msg); err != nil {
			atomic.AddUint64(&p.sendFails, 1)
			p.dropClient(conn)
		}
	}
	atomic.AddUint64(&p.published, 1)
}

func (p *Publisher) dropClient(conn net.Conn) {
	conn.Close()
	p.mu.Lock()
	delete(p.clients, conn)
	remaining := len(p.clients)
	p.mu.Unlock()
	log.Printf("📡 observer disconnected (%d remaining)", remaining)
}

// snapshotToMessage copies the engine snapshot into wire types. Fixed
// arrays become slices trimmed to their live counts.
func snapshotToMessage(snap *game.GameSnapshot) *SnapshotMessage {
	msg := &SnapshotMessage{
		Sequence:       snap.Sequence,
		Timestamp:      snap.Timestamp,
		TickNumber:     snap.TickNumber,
		ClockMs:        snap.ClockMs,
		RNGSeed:        snap.RNGSeed,
		ActorCount:     snap.ActorCount,
		AliveCount:     snap.AliveCount,
		PendingThreats: snap.PendingThreats,
		TotalKills:     snap.TotalKills,
		Actors:         make([]ActorData, 0, len(snap.Actors)),
	}

	for i := range snap.Actors {
		a := &snap.Actors[i]
		ad := ActorData{
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

		if a.ThreatCount > 0 {
			ad.Threats = make([]ThreatData, a.ThreatCount)
			for j := 0; j < a.ThreatCount; j++ {
				t := &a.Threats[j]
				ad.Threats[j] = ThreatData{
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
		}

		if a.HasRecovery {
			ad.Recovery = RecoveryData{
				Ability:     a.Recovery.Ability,
				RemainingMs: a.Recovery.RemainingMs,
				DurationMs:  a.Recovery.DurationMs,
			}
			if a.SynergyCount > 0 {
				ad.Synergies = make([]SynergyData, a.SynergyCount)
				for j := 0; j < a.SynergyCount; j++ {
					s := &a.Synergies[j]
					ad.Synergies[j] = SynergyData{
						Ability:    s.Ability,
						UnlockAtMs: s.UnlockAtMs,
						Open:       s.Open,
					}
				}
			}
		}

		msg.Actors = append(msg.Actors, ad)
	}

	return msg
}
