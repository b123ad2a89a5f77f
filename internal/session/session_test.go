package session

import (
	"bytes"
	"context"
	"io"
	"net"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vintagecraft/vintage/internal/actor"
	"github.com/vintagecraft/vintage/internal/fixed"
	"github.com/vintagecraft/vintage/internal/packet"
)

func testLogger() logrus.FieldLogger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestSessionRegistersAndForwardsPackets(t *testing.T) {
	server, client := net.Pipe()
	defer client.Close()

	events := make(chan actor.Event, 8)
	sess := New(server, events, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go sess.Run(ctx)

	connectEv, ok := (<-events).(actor.ConnectEvent)
	if !ok {
		t.Fatalf("first event was not a ConnectEvent")
	}
	if connectEv.ID == "" {
		t.Error("ConnectEvent.ID is empty")
	}

	ident := packet.PlayerIdentPacket{
		ProtocolVersion: packet.ProtocolVersion,
		Username:        fixed.PacketString("Alice"),
	}
	go func() {
		if err := packet.EncodeClient(ident, client); err != nil {
			t.Errorf("EncodeClient error: %v", err)
		}
	}()

	select {
	case ev := <-events:
		pe, ok := ev.(actor.PacketEvent)
		if !ok {
			t.Fatalf("event = %T, want actor.PacketEvent", ev)
		}
		if pe.ID != connectEv.ID {
			t.Errorf("PacketEvent.ID = %q, want %q", pe.ID, connectEv.ID)
		}
		got, ok := pe.Pkt.(packet.PlayerIdentPacket)
		if !ok {
			t.Fatalf("decoded packet = %T, want PlayerIdentPacket", pe.Pkt)
		}
		if got.Username != ident.Username {
			t.Errorf("Username = %q, want %q", got.Username, ident.Username)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for forwarded PacketEvent")
	}
}

func TestSessionUnicastWriteReachesClient(t *testing.T) {
	server, client := net.Pipe()
	defer client.Close()

	events := make(chan actor.Event, 8)
	sess := New(server, events, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go sess.Run(ctx)

	connectEv := (<-events).(actor.ConnectEvent)

	pkt := packet.PingPacket{}
	go func() {
		connectEv.Outbound <- pkt
	}()

	buf := make([]byte, 1)
	if _, err := io.ReadFull(client, buf); err != nil {
		t.Fatalf("client read error: %v", err)
	}
	if buf[0] != packet.OpPing {
		t.Errorf("opcode = %#x, want OpPing (%#x)", buf[0], packet.OpPing)
	}
}

func TestSessionClosesConnectionAfterDisconnectPacket(t *testing.T) {
	server, client := net.Pipe()
	defer client.Close()

	events := make(chan actor.Event, 8)
	sess := New(server, events, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go sess.Run(ctx)

	connectEv := (<-events).(actor.ConnectEvent)

	go func() {
		connectEv.Outbound <- packet.DisconnectPacket{Reason: "Server is full"}
	}()

	// Drain the DisconnectPacket itself, then the connection should be
	// closed from the server side: the next read hits EOF rather than
	// blocking forever.
	buf := make([]byte, 65)
	if _, err := io.ReadFull(client, buf); err != nil {
		t.Fatalf("client read of DisconnectPacket failed: %v", err)
	}
	if _, err := client.Read(make([]byte, 1)); err != io.EOF {
		t.Fatalf("read after DisconnectPacket = %v, want io.EOF", err)
	}

	select {
	case ev := <-events:
		if _, ok := ev.(actor.DisconnectEvent); !ok {
			t.Fatalf("event = %T, want actor.DisconnectEvent", ev)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for DisconnectEvent after server closed the connection")
	}
}

func TestSessionBroadcastWriteReachesClient(t *testing.T) {
	server, client := net.Pipe()
	defer client.Close()

	events := make(chan actor.Event, 8)
	sess := New(server, events, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go sess.Run(ctx)

	connectEv := (<-events).(actor.ConnectEvent)

	var wire bytes.Buffer
	packet.DespawnPlayerPacket{ID: 5}.WriteTo(&wire)
	go func() {
		connectEv.Broadcast <- wire.Bytes()
	}()

	buf := make([]byte, wire.Len())
	if _, err := io.ReadFull(client, buf); err != nil {
		t.Fatalf("client read error: %v", err)
	}
	if !bytes.Equal(buf, wire.Bytes()) {
		t.Errorf("received %v, want %v", buf, wire.Bytes())
	}
}

func TestSessionUnknownOpcodeDoesNotTerminate(t *testing.T) {
	server, client := net.Pipe()
	defer client.Close()

	events := make(chan actor.Event, 8)
	sess := New(server, events, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go sess.Run(ctx)

	<-events // ConnectEvent

	go client.Write([]byte{0xfe}) // unknown opcode

	ident := packet.PlayerIdentPacket{ProtocolVersion: packet.ProtocolVersion, Username: "Bob"}
	go func() {
		packet.EncodeClient(ident, client)
	}()

	select {
	case ev := <-events:
		pe, ok := ev.(actor.PacketEvent)
		if !ok {
			t.Fatalf("event = %T, want actor.PacketEvent (session should have survived the unknown opcode)", ev)
		}
		if _, ok := pe.Pkt.(packet.PlayerIdentPacket); !ok {
			t.Fatalf("decoded packet = %T, want PlayerIdentPacket", pe.Pkt)
		}
	case <-time.After(time.Second):
		t.Fatal("session appears to have terminated on an unknown opcode")
	}
}

func TestSessionDisconnectOnClientClose(t *testing.T) {
	server, client := net.Pipe()

	events := make(chan actor.Event, 8)
	sess := New(server, events, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go sess.Run(ctx)

	<-events // ConnectEvent
	client.Close()

	select {
	case ev := <-events:
		if _, ok := ev.(actor.DisconnectEvent); !ok {
			t.Fatalf("event = %T, want actor.DisconnectEvent", ev)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for DisconnectEvent after client close")
	}
}
