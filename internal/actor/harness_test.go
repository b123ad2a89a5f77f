package actor

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vintagecraft/vintage/internal/fixed"
	"github.com/vintagecraft/vintage/internal/packet"
	"github.com/vintagecraft/vintage/internal/world"
)

// sliceReader wraps a broadcast buffer's payload (opcode already
// stripped) for DecodeServer in tests.
func sliceReader(b []byte) io.Reader { return bytes.NewReader(b) }

// testWorld spins up a WorldActor over a small all-Air world and
// returns it already running in the background, along with the event
// queue used to drive it. t.Cleanup cancels the actor's context.
func testWorld(t *testing.T, cfg Config) chan Event {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)

	bw := world.New(world.Dims{X: 16, Y: 16, Z: 16}, nil)
	wa := New(cfg, bw, log)

	events := make(chan Event, 32)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	go wa.Run(ctx, events)
	return events
}

// fakeSession is a connected session's channel pair as the actor sees
// it, plus helpers to drive it from a test.
type fakeSession struct {
	id        string
	outbound  chan packet.ServerPacket
	broadcast chan []byte
}

func connectSession(events chan<- Event, id string) *fakeSession {
	fs := &fakeSession{
		id:        id,
		outbound:  make(chan packet.ServerPacket, 16),
		broadcast: make(chan []byte, 32),
	}
	events <- ConnectEvent{ID: id, Addr: id, Outbound: fs.outbound, Broadcast: fs.broadcast}
	return fs
}

// join sends a PlayerIdent packet and drains the entire join sequence:
// ServerIdent, LevelInit, the LevelDataChunk run, LevelFinalise,
// PlayerTeleport(self), SpawnPlayer(self), and one SpawnPlayer per
// already-joined peer — priorPeers must match how many sessions joined
// before this one.
func (fs *fakeSession) join(t *testing.T, events chan<- Event, name string, priorPeers int) {
	t.Helper()
	events <- PacketEvent{ID: fs.id, Pkt: packet.PlayerIdentPacket{
		ProtocolVersion: packet.ProtocolVersion,
		Username:        fixed.PacketString(name),
	}}

	fs.expectUnicastType(t, packet.ServerIdentPacket{})
	fs.expectUnicastType(t, packet.LevelInitPacket{})
	for {
		p := fs.recvUnicast(t)
		if _, ok := p.(packet.LevelDataChunkPacket); ok {
			continue
		}
		if _, ok := p.(packet.LevelFinalisePacket); ok {
			break
		}
		t.Fatalf("unexpected packet in join sequence before LevelFinalise: %T", p)
	}
	fs.expectUnicastType(t, packet.PlayerTeleportPacket{})
	fs.expectUnicastType(t, packet.SpawnPlayerPacket{})
	for i := 0; i < priorPeers; i++ {
		fs.expectUnicastType(t, packet.SpawnPlayerPacket{})
	}
}

func (fs *fakeSession) recvUnicast(t *testing.T) packet.ServerPacket {
	t.Helper()
	select {
	case p := <-fs.outbound:
		return p
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for unicast packet")
		return nil
	}
}

func (fs *fakeSession) expectUnicastType(t *testing.T, want packet.ServerPacket) packet.ServerPacket {
	t.Helper()
	got := fs.recvUnicast(t)
	gotType, wantType := fmt.Sprintf("%T", got), fmt.Sprintf("%T", want)
	if gotType != wantType {
		t.Fatalf("unicast packet = %s, want %s", gotType, wantType)
	}
	return got
}

func (fs *fakeSession) recvBroadcast(t *testing.T) []byte {
	t.Helper()
	select {
	case b := <-fs.broadcast:
		return b
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for broadcast packet")
		return nil
	}
}

func (fs *fakeSession) expectNoBroadcast(t *testing.T) {
	t.Helper()
	select {
	case b := <-fs.broadcast:
		t.Fatalf("unexpected broadcast packet: %v", b)
	case <-time.After(50 * time.Millisecond):
	}
}
