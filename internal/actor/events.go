package actor

import "github.com/vintagecraft/vintage/internal/packet"

// Event is one of the tagged events the WorldActor's inbound queue
// carries: Connect, Tick, Packet, Disconnect.
type Event interface{ event() }

// ConnectEvent registers a new session's connection with the actor. It is
// the message-passing handshake that lets the actor learn a session's
// outbound/broadcast channels before the session's first real packet
// arrives, so the actor never has to reach back into the session to
// start talking to it. ID is the session's handle, a uuid.New().String()
// minted once per connection rather than its remote address, so
// reconnects and address reuse never collide in the actor's bookkeeping.
type ConnectEvent struct {
	ID        string
	Addr      string
	Outbound  chan<- packet.ServerPacket
	Broadcast chan<- []byte
}

func (ConnectEvent) event() {}

// TickEvent fires every second from a timer and drives periodic save.
type TickEvent struct{}

func (TickEvent) event() {}

// PacketEvent is a decoded client packet plus the handle of the
// originating session, used to look up its connRecord.
type PacketEvent struct {
	ID  string
	Pkt packet.ClientPacket
}

func (PacketEvent) event() {}

// DisconnectEvent announces that the session with the given handle is gone.
type DisconnectEvent struct {
	ID string
}

func (DisconnectEvent) event() {}
