package ipc

import (
	"errors"
	"log"
	"net"
	"sync"
	"sync/atomic"
	"time"
)

// Subscriber connects to a snapshot publisher and keeps the most recent
// snapshot available without blocking the reader. It reconnects with a
// fixed delay while the server is restarting.
type Subscriber struct {
	path string

	latest atomic.Value // *SnapshotMessage
	config atomic.Value // *ConfigMessage

	onSnapshot   func(*SnapshotMessage)
	onConfig     func(*ConfigMessage)
	onConnect    func()
	onDisconnect func()

	mu        sync.Mutex
	conn      net.Conn
	connected bool

	done     chan struct{}
	wg       sync.WaitGroup
	received uint64
}

// NewSubscriber creates a subscriber for the given socket path (empty uses
// the platform default). Call Start to begin receiving.
func NewSubscriber(path string) *Subscriber {
	return &Subscriber{
		path: path,
		done: make(chan struct{}),
	}
}

// OnSnapshot registers a callback invoked for every snapshot received.
// Set callbacks before Start.
func (s *Subscriber) OnSnapshot(fn func(*SnapshotMessage)) { s.onSnapshot = fn }

// OnConfig registers a callback invoked when the publisher sends its
// loop parameters.
func (s *Subscriber) OnConfig(fn func(*ConfigMessage)) { s.onConfig = fn }

// OnConnect registers a callback invoked after each successful connect.
func (s *Subscriber) OnConnect(fn func()) { s.onConnect = fn }

// OnDisconnect registers a callback invoked after the connection drops.
func (s *Subscriber) OnDisconnect(fn func()) { s.onDisconnect = fn }

// Start launches the connect/read loop.
func (s *Subscriber) Start() {
	s.wg.Add(1)
	go s.run()
}

// Stop disconnects and stops reconnecting.
func (s *Subscriber) Stop() {
	close(s.done)
	s.mu.Lock()
	if s.conn != nil {
		s.conn.Close()
	}
	s.mu.Unlock()
	s.wg.Wait()
}

// Latest returns the most recent snapshot, or nil before the first one
// arrives.
func (s *Subscriber) Latest() *SnapshotMessage {
	v := s.latest.Load()
	if v == nil {
		return nil
	}
	return v.(*SnapshotMessage)
}

// Config returns the publisher's loop parameters, or nil before they
// arrive.
func (s *Subscriber) Config() *ConfigMessage {
	v := s.config.Load()
	if v == nil {
		return nil
	}
	return v.(*ConfigMessage)
}

// WaitForConfig blocks until the config message arrives or the timeout
// elapses.
func (s *Subscriber) WaitForConfig(timeout time.Duration) (*ConfigMessage, error) {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cfg := s.Config(); cfg != nil {
			return cfg, nil
		}
		select {
		case <-s.done:
			return nil, errors.New("subscriber stopped")
		case <-time.After(10 * time.Millisecond):
		}
	}
	return nil, errors.New("timed out waiting for config")
}

// IsConnected reports whether the subscriber currently holds a connection.
func (s *Subscriber) IsConnected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.connected
}

// ReceivedCount returns the number of snapshots received since Start.
func (s *Subscriber) ReceivedCount() uint64 {
	return atomic.LoadUint64(&s.received)
}

func (s *Subscriber) run() {
	defer s.wg.Done()

	attempts := 0
	for {
		select {
		case <-s.done:
			return
		default:
		}

		conn, err := ConnectPlatform(s.path)
		if err != nil {
			attempts++
			if attempts > MaxReconnects {
				log.Printf("⚠️ snapshot subscriber giving up after %d attempts", attempts)
				return
			}
			select {
			case <-s.done:
				return
			case <-time.After(ReconnectDelay):
			}
			continue
		}
		attempts = 0

		s.mu.Lock()
		s.conn = conn
		s.connected = true
		s.mu.Unlock()

		if s.onConnect != nil {
			s.onConnect()
		}

		s.readLoop(conn)

		s.mu.Lock()
		s.conn = nil
		s.connected = false
		s.mu.Unlock()

		if s.onDisconnect != nil {
			s.onDisconnect()
		}
	}
}

func (s *Subscriber) readLoop(conn net.Conn) {
	defer conn.Close()

	for {
		select {
		case <-s.done:
			return
		default:
		}

		hdr, body, err := ReadMessage(conn)
		if err != nil {
			return
		}

		switch hdr.Type {
		case MsgTypeSnapshot:
			msg, err := DecodeSnapshot(body)
			if err != nil {
				log.Printf("⚠️ bad snapshot frame: %v", err)
				continue
			}
			s.latest.Store(msg)
			atomic.AddUint64(&s.received, 1)
			if s.onSnapshot != nil {
				s.onSnapshot(msg)
			}

		case MsgTypeConfig:
			cfg, err := DecodeConfig(body)
			if err != nil {
				log.Printf("⚠️ bad config frame: %v", err)
				continue
			}
			s.config.Store(cfg)
			if s.onConfig != nil {
				s.onConfig(cfg)
			}

		case MsgTypePing:
			writeDeadline(conn)
			if err := WriteMessage(conn, MsgTypePong, nil); err != nil {
				return
			}

		case MsgTypePong:
			// Keepalive reply, nothing to record.
		}
	}
}
