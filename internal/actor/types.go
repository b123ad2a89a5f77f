package actor

import (
	"math"

	"github.com/vintagecraft/vintage/internal/packet"
)

// Position is a point in world coordinates, single-precision.
type Position struct {
	X, Y, Z float32
}

// Sub returns p - o, componentwise.
func (p Position) Sub(o Position) Position {
	return Position{X: p.X - o.X, Y: p.Y - o.Y, Z: p.Z - o.Z}
}

// Distance returns the Euclidean distance between p and o.
func (p Position) Distance(o Position) float64 {
	d := p.Sub(o)
	return math.Sqrt(float64(d.X)*float64(d.X) + float64(d.Y)*float64(d.Y) + float64(d.Z)*float64(d.Z))
}

// Rotation is a pitch/yaw pair in radians. Equality is exact float
// equality — it exists to detect "did this change at all," not to
// approximate.
type Rotation struct {
	Pitch, Yaw float64
}

// Player is the record the world keeps for a joined session.
type Player struct {
	ID   int8
	Name string
}

// connRecord is the WorldActor's bookkeeping for one live session: its
// outbound unicast queue, its broadcast fan-out target, and — once
// joined — its Player/Position/Rotation. Exclusively owned by the actor
// goroutine; never touched from a session goroutine.
type connRecord struct {
	id        string
	addr      string
	outbound  chan<- packet.ServerPacket
	broadcast chan<- []byte

	player *Player
	pos    Position
	rot    Rotation
}

func (c *connRecord) joined() bool { return c.player != nil }
