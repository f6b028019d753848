// Package ipc carries combat snapshots from the server to local observer
// processes over a unix domain socket (TCP loopback on Windows).
//
// The wire format is a fixed 8-byte header followed by a gob-encoded body.
// Gob keeps the encoder simple for process-local traffic where both ends
// are built from the same source tree.
package ipc

import (
	"bytes"
	"encoding/binary"
	"encoding/gob"
	"fmt"
	"io"
	"net"
	"os"
	"sync"
	"time"
)

const (
	// DefaultSocketPath is where the server publishes snapshots on unix.
	DefaultSocketPath = "/tmp/hex-combat.sock"

	// DefaultTCPPort is the loopback port used on platforms without
	// unix domain sockets.
	DefaultTCPPort = 9271

	// ProtocolVersion is bumped on any incompatible wire change.
	ProtocolVersion = 1

	// MaxMessageSize bounds a single framed message.
	MaxMessageSize = 1 << 20

	WriteTimeout   = 50 * time.Millisecond
	ReadTimeout    = 100 * time.Millisecond
	ReconnectDelay = 500 * time.Millisecond
	MaxReconnects  = 20
)

// Message types.
const (
	MsgTypeSnapshot byte = 0x01
	MsgTypePing     byte = 0x02
	MsgTypePong     byte = 0x03
	MsgTypeConfig   byte = 0x04
)

// Header precedes every message on the wire.
type Header struct {
	Version  uint16
	Type     byte
	Reserved byte
	Length   uint32
}

// HeaderSize is the encoded size of Header in bytes.
const HeaderSize = 8

// SnapshotMessage is the combat state published each tick. It mirrors the
// engine's snapshot but owns its own types so the wire format stays stable
// if the engine changes internally.
type SnapshotMessage struct {
	Sequence   uint64
	Timestamp  time.Time
	TickNumber uint64
	ClockMs    int64
	RNGSeed    int64

	ActorCount     int
	AliveCount     int
	PendingThreats int
	TotalKills     int

	Actors []ActorData
}

// ActorData is one actor's combat state on the wire.
type ActorData struct {
	ID   string
	Name string

	Health     float64
	MaxHealth  float64
	Stamina    float64
	MaxStamina float64
	Mana       float64
	MaxMana    float64

	QueueCapacity int
	Threats       []ThreatData

	HasRecovery bool
	Recovery    RecoveryData
	Synergies   []SynergyData

	IsDead   bool
	InCombat bool
	Kills    int
	Deaths   int
}

// ThreatData is one queued threat on the wire.
type ThreatData struct {
	ID          string
	SourceID    string
	Ability     string
	Kind        string
	Amount      float64
	Critical    bool
	RemainingMs int64
	WindowMs    int64
}

// RecoveryData is the active recovery lockout, valid when HasRecovery is set.
type RecoveryData struct {
	Ability     string
	RemainingMs int64
	DurationMs  int64
}

// SynergyData is one early-unlock window on the active recovery.
type SynergyData struct {
	Ability    string
	UnlockAtMs int64
	Open       bool
}

// ConfigMessage tells subscribers the loop parameters so they can
// interpolate between snapshots.
type ConfigMessage struct {
	TickRate             int
	BaseReactionWindowMs int64
}

// Buffer pools for encode/decode. Snapshot bodies are a few KB; reusing
// buffers keeps the per-tick publish allocation-free in steady state.
var (
	gobBufferPool = sync.Pool{
		New: func() any { return new(bytes.Buffer) },
	}
	readerPool = sync.Pool{
		New: func() any { return new(bytes.Reader) },
	}
)

// WriteMessage frames and writes one message. body may be nil for
// ping/pong.
func WriteMessage(w io.Writer, msgType byte, body any) error {
	var payload []byte

	if body != nil {
		buf := gobBufferPool.Get().(*bytes.Buffer)
		buf.Reset()
		defer gobBufferPool.Put(buf)

		if err := gob.NewEncoder(buf).Encode(body); err != nil {
			return fmt.Errorf("encode body: %w", err)
		}
		payload = buf.Bytes()
	}

	if len(payload) > MaxMessageSize {
		return fmt.Errorf("message too large: %d bytes", len(payload))
	}

	var hdr [HeaderSize]byte
	binary.LittleEndian.PutUint16(hdr[0:2], ProtocolVersion)
	hdr[2] = msgType
	hdr[3] = 0
	binary.LittleEndian.PutUint32(hdr[4:8], uint32(len(payload)))

	if _, err := w.Write(hdr[:]); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if len(payload) > 0 {
		if _, err := w.Write(payload); err != nil {
			return fmt.Errorf("write body: %w", err)
		}
	}
	return nil
}

// ReadMessage reads one framed message. The returned body is nil for
// messages without a payload.
func ReadMessage(r io.Reader) (Header, []byte, error) {
	var raw [HeaderSize]byte
	if _, err := io.ReadFull(r, raw[:]); err != nil {
		return Header{}, nil, err
	}

	hdr := Header{
		Version:  binary.LittleEndian.Uint16(raw[0:2]),
		Type:     raw[2],
		Reserved: raw[3],
		Length:   binary.LittleEndian.Uint32(raw[4:8]),
	}

	if hdr.Version != ProtocolVersion {
		return hdr, nil, fmt.Errorf("protocol version mismatch: got %d, want %d", hdr.Version, ProtocolVersion)
	}
	if hdr.Length > MaxMessageSize {
		return hdr, nil, fmt.Errorf("message too large: %d bytes", hdr.Length)
	}

	if hdr.Length == 0 {
		return hdr, nil, nil
	}

	body := make([]byte, hdr.Length)
	if _, err := io.ReadFull(r, body); err != nil {
		return hdr, nil, fmt.Errorf("read body: %w", err)
	}
	return hdr, body, nil
}

// DecodeSnapshot decodes a MsgTypeSnapshot body.
func DecodeSnapshot(body []byte) (*SnapshotMessage, error) {
	rd := readerPool.Get().(*bytes.Reader)
	rd.Reset(body)
	defer readerPool.Put(rd)

	var msg SnapshotMessage
	if err := gob.NewDecoder(rd).Decode(&msg); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return &msg, nil
}

// DecodeConfig decodes a MsgTypeConfig body.
func DecodeConfig(body []byte) (*ConfigMessage, error) {
	rd := readerPool.Get().(*bytes.Reader)
	rd.Reset(body)
	defer readerPool.Put(rd)

	var msg ConfigMessage
	if err := gob.NewDecoder(rd).Decode(&msg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return &msg, nil
}

// CleanupSocket removes a stale socket file left by an unclean shutdown.
func CleanupSocket(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// writeDeadline applies WriteTimeout if the connection supports deadlines.
func writeDeadline(conn net.Conn) {
	conn.SetWriteDeadline(time.Now().Add(WriteTimeout))
}
