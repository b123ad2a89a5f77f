// Package session implements the per-connection full-duplex I/O loop:
// one task per accepted TCP connection that multiplexes inbound wire
// reads, a personal unicast outbound queue, and a shared broadcast
// subscription, translating between the wire codec and the WorldActor's
// event queue.
package session

import (
	"bufio"
	"context"
	"errors"
	"io"
	"net"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/vintagecraft/vintage/internal/actor"
	"github.com/vintagecraft/vintage/internal/packet"
)

// OutboundCap and BroadcastCap are the per-session channel capacities:
// outbound is lossless (blocking send from the actor), broadcast is
// lossy (non-blocking send, dropped on overflow).
const (
	OutboundCap  = 16
	BroadcastCap = 32
)

// Session owns one accepted connection's read/write loop. Its id is the
// handle the WorldActor uses to key its connection table.
type Session struct {
	id     string
	conn   net.Conn
	events chan<- actor.Event
	log    logrus.FieldLogger
}

// New wraps an accepted connection. events is the WorldActor's shared
// inbound queue.
func New(conn net.Conn, events chan<- actor.Event, log logrus.FieldLogger) *Session {
	id := uuid.New().String()
	return &Session{
		id:     id,
		conn:   conn,
		events: events,
		log: log.WithFields(logrus.Fields{
			"component":   "session",
			"remote_addr": conn.RemoteAddr().String(),
			"session_id":  id,
		}),
	}
}

// Run blocks for the lifetime of the connection. It registers the
// session with the WorldActor, pumps reads and writes concurrently, and
// on termination (either direction failing) emits one Disconnect event
// before returning. ctx cancellation closes the underlying connection,
// which is how a server-wide shutdown unblocks a session's blocking
// net.Conn.Read.
func (s *Session) Run(ctx context.Context) {
	outbound := make(chan packet.ServerPacket, OutboundCap)
	broadcast := make(chan []byte, BroadcastCap)

	s.events <- actor.ConnectEvent{
		ID:        s.id,
		Addr:      s.conn.RemoteAddr().String(),
		Outbound:  outbound,
		Broadcast: broadcast,
	}
	s.log.Info("session started")

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		<-ctx.Done()
		s.conn.Close()
	}()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return s.readLoop(gctx) })
	g.Go(func() error { return s.writeLoop(gctx, outbound, broadcast) })

	if err := g.Wait(); err != nil && !errors.Is(err, io.EOF) {
		s.log.WithError(err).Info("session ended")
	} else {
		s.log.Info("session ended")
	}

	s.events <- actor.DisconnectEvent{ID: s.id}
}

// readLoop is the inbound-wire-reads source of the session's I/O loop: it
// reads one opcode byte, looks up its known payload size, decodes, and
// forwards the result as a PacketEvent. A malformed payload terminates
// the session (returned as an error, which cancels gctx and stops the
// writer too); an unknown opcode is logged and the loop continues. A
// SetBlockPacket's block type is wire noise at this layer — it is
// advisory and only meaningful when Mode says "place," so it is
// validated by the WorldActor, not here.
func (s *Session) readLoop(ctx context.Context) error {
	r := bufio.NewReader(s.conn)
	for {
		op, err := r.ReadByte()
		if err != nil {
			return err
		}

		size, known := packet.KnownClientOpcode(op)
		if !known {
			// Unknown opcodes never terminate the connection. Only the
			// opcode byte itself is consumed; any payload bytes the
			// sender attached to it are read as opcodes next.
			s.log.WithField("opcode", op).Warn("unknown opcode, discarding")
			continue
		}

		payload := io.LimitReader(r, int64(size))
		pkt, err := packet.Decode(op, payload)
		if err != nil {
			return err
		}

		select {
		case s.events <- actor.PacketEvent{ID: s.id, Pkt: pkt}:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// writeLoop is the unicast/broadcast multiplexer of the session's I/O
// loop. Unicast and broadcast are drained from whichever channel is
// ready first; both are individually FIFO but there is no ordering
// guarantee between them. A DisconnectPacket is the actor's signal that
// this session is done: once it's written, writeLoop closes the
// connection itself, which unblocks readLoop's pending Read and tears
// the whole session down.
func (s *Session) writeLoop(ctx context.Context, outbound <-chan packet.ServerPacket, broadcast <-chan []byte) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case pkt := <-outbound:
			if _, err := pkt.WriteTo(s.conn); err != nil {
				return err
			}
			if _, ok := pkt.(packet.DisconnectPacket); ok {
				return s.conn.Close()
			}
		case buf := <-broadcast:
			if _, err := s.conn.Write(buf); err != nil {
				return err
			}
		}
	}
}
