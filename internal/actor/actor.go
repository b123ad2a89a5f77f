// Package actor implements the WorldActor: the single
// goroutine that owns the BlockWorld, the PlayerIdTable, every Player's
// Position/Rotation, and all live connRecords, and that is the sole
// writer of world state. It drains one inbound event queue and reacts to
// Connect/Tick/Packet/Disconnect by pushing packets into per-session
// outbound queues and the broadcast fan-out.
package actor

import (
	"bytes"
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vintagecraft/vintage/internal/fixed"
	"github.com/vintagecraft/vintage/internal/packet"
	"github.com/vintagecraft/vintage/internal/protoerr"
	"github.com/vintagecraft/vintage/internal/world"
)

// MoveThreshold is the distance, in blocks, at or above which a position
// update is sent as a teleport rather than a relative delta. The
// comparison is inclusive: a move of exactly MoveThreshold teleports.
const MoveThreshold = 3.0

// Config bundles the WorldActor's static configuration.
type Config struct {
	ServerName string
	MOTD       string
	Spawn      Position
	SpawnRot   Rotation

	SavePath     string
	SaveInterval time.Duration
}

// World is the WorldActor. Construct with New and run with Run; every
// other method is unexported because the event loop is the only caller.
type World struct {
	cfg   Config
	log   logrus.FieldLogger
	block *world.BlockWorld
	ids   *world.PlayerIdTable[string]
	conns map[string]*connRecord

	lastSave time.Time
}

// New creates a WorldActor over the given BlockWorld.
func New(cfg Config, bw *world.BlockWorld, log logrus.FieldLogger) *World {
	return &World{
		cfg:      cfg,
		log:      log,
		block:    bw,
		ids:      world.NewPlayerIdTable[string](),
		conns:    make(map[string]*connRecord),
		lastSave: time.Now(),
	}
}

// Run drains events until it is closed or ctx is cancelled, dispatching
// each to its handler. It owns all world state exclusively for the
// duration of the call — there is no external synchronization because
// nothing else ever touches that state.
func (w *World) Run(ctx context.Context, events <-chan Event) {
	for {
		select {
		case <-ctx.Done():
			w.saveNow()
			return
		case ev, ok := <-events:
			if !ok {
				w.saveNow()
				return
			}
			w.dispatch(ev)
		}
	}
}

func (w *World) dispatch(ev Event) {
	switch v := ev.(type) {
	case ConnectEvent:
		w.handleConnect(v)
	case TickEvent:
		w.handleTick()
	case PacketEvent:
		w.handlePacket(v)
	case DisconnectEvent:
		w.handleDisconnect(v)
	}
}

func (w *World) handleConnect(ev ConnectEvent) {
	w.conns[ev.ID] = &connRecord{
		id:        ev.ID,
		addr:      ev.Addr,
		outbound:  ev.Outbound,
		broadcast: ev.Broadcast,
	}
	w.log.WithField("remote_addr", ev.Addr).Debug("session connected")
}

func (w *World) handlePacket(ev PacketEvent) {
	rec, ok := w.conns[ev.ID]
	if !ok {
		return
	}

	switch p := ev.Pkt.(type) {
	case packet.PlayerIdentPacket:
		w.handleJoin(rec, p)
	case packet.PositionPacket:
		w.handlePosition(rec, p)
	case packet.SetBlockPacket:
		w.handleSetBlock(rec, p)
	case packet.MessagePacket:
		w.handleMessage(rec, p)
	}
}

func (w *World) handleJoin(rec *connRecord, p packet.PlayerIdentPacket) {
	if p.ProtocolVersion < packet.ProtocolVersion {
		w.log.WithFields(logrus.Fields{
			"remote_addr": rec.addr,
			"version":     p.ProtocolVersion,
		}).Warn("client protocol version below server version, proceeding anyway")
	}

	id, err := w.ids.Alloc(rec.id)
	if err != nil {
		w.log.WithField("remote_addr", rec.addr).Warn("server full, rejecting join")
		rec.outbound <- packet.DisconnectPacket{Reason: fixed.Truncate("Server is full")}
		return
	}

	name := string(p.Username)
	rec.player = &Player{ID: id, Name: name}
	rec.pos = w.cfg.Spawn
	rec.rot = w.cfg.SpawnRot

	w.sendJoinSequence(rec, name)

	w.broadcastExcept("", packet.SpawnPlayerPacket{
		ID:    id,
		Name:  fixed.Truncate(name),
		X:     fixed.NewShort(rec.pos.X),
		Y:     fixed.NewShort(rec.pos.Y),
		Z:     fixed.NewShort(rec.pos.Z),
		Yaw:   fixed.RadiansToAngle(rec.rot.Yaw),
		Pitch: fixed.RadiansToAngle(rec.rot.Pitch),
	})

	w.log.WithFields(logrus.Fields{"remote_addr": rec.addr, "name": name, "player_id": id}).Info("player joined")
}

func (w *World) sendJoinSequence(rec *connRecord, name string) {
	rec.outbound <- packet.ServerIdentPacket{
		ProtocolVersion: packet.ProtocolVersion,
		Name:            fixed.Truncate(w.cfg.ServerName),
		MOTD:            fixed.Truncate(w.cfg.MOTD),
		UserType:        packet.UserTypeRegular,
	}
	rec.outbound <- packet.LevelInitPacket{}

	payload, err := w.block.Serialise()
	if err != nil {
		w.log.WithError(err).Error("serialise level for join failed")
		payload = nil
	}
	total := len(payload)
	for i := 0; i*packet.LevelChunkSize < total; i++ {
		start := i * packet.LevelChunkSize
		end := start + packet.LevelChunkSize
		if end > total {
			end = total
		}
		var chunk [packet.LevelChunkSize]byte
		copy(chunk[:], payload[start:end])
		rec.outbound <- packet.LevelDataChunkPacket{
			Len:     int16(end - start),
			Data:    chunk,
			Percent: uint8(i * packet.LevelChunkSize * 100 / total),
		}
	}

	dims := w.block.Dims()
	rec.outbound <- packet.LevelFinalisePacket{X: int16(dims.X), Y: int16(dims.Y), Z: int16(dims.Z)}

	rec.outbound <- packet.PlayerTeleportPacket{
		ID:    packet.SelfID,
		X:     fixed.NewShort(rec.pos.X),
		Y:     fixed.NewShort(rec.pos.Y),
		Z:     fixed.NewShort(rec.pos.Z),
		Yaw:   fixed.RadiansToAngle(rec.rot.Yaw),
		Pitch: fixed.RadiansToAngle(rec.rot.Pitch),
	}
	rec.outbound <- packet.SpawnPlayerPacket{
		ID:    packet.SelfID,
		Name:  fixed.Truncate(name),
		X:     fixed.NewShort(rec.pos.X),
		Y:     fixed.NewShort(rec.pos.Y),
		Z:     fixed.NewShort(rec.pos.Z),
		Yaw:   fixed.RadiansToAngle(rec.rot.Yaw),
		Pitch: fixed.RadiansToAngle(rec.rot.Pitch),
	}

	for id, other := range w.conns {
		if id == rec.id || !other.joined() {
			continue
		}
		rec.outbound <- packet.SpawnPlayerPacket{
			ID:    other.player.ID,
			Name:  fixed.Truncate(other.player.Name),
			X:     fixed.NewShort(other.pos.X),
			Y:     fixed.NewShort(other.pos.Y),
			Z:     fixed.NewShort(other.pos.Z),
			Yaw:   fixed.RadiansToAngle(other.rot.Yaw),
			Pitch: fixed.RadiansToAngle(other.rot.Pitch),
		}
	}
}

func (w *World) handlePosition(rec *connRecord, p packet.PositionPacket) {
	if !rec.joined() {
		return
	}

	newPos := Position{X: p.X.Float(), Y: p.Y.Float(), Z: p.Z.Float()}
	newRot := Rotation{Pitch: p.Pitch.Radians(), Yaw: p.Yaw.Radians()}

	oldPos, oldRot := rec.pos, rec.rot
	id := rec.player.ID

	dist := newPos.Distance(oldPos)
	posChanged := newPos != oldPos
	rotChanged := newRot != oldRot

	var out packet.ServerPacket
	switch {
	case dist >= MoveThreshold:
		out = packet.PlayerTeleportPacket{
			ID: id,
			X:  fixed.NewShort(newPos.X), Y: fixed.NewShort(newPos.Y), Z: fixed.NewShort(newPos.Z),
			Yaw: fixed.RadiansToAngle(newRot.Yaw), Pitch: fixed.RadiansToAngle(newRot.Pitch),
		}
	case posChanged && rotChanged:
		d := newPos.Sub(oldPos)
		out = packet.PosOriUpdatePacket{
			ID: id,
			DX: fixed.NewByte(d.X), DY: fixed.NewByte(d.Y), DZ: fixed.NewByte(d.Z),
			Yaw: fixed.RadiansToAngle(newRot.Yaw), Pitch: fixed.RadiansToAngle(newRot.Pitch),
		}
	case rotChanged:
		out = packet.OriUpdatePacket{
			ID:  id,
			Yaw: fixed.RadiansToAngle(newRot.Yaw), Pitch: fixed.RadiansToAngle(newRot.Pitch),
		}
	case posChanged:
		d := newPos.Sub(oldPos)
		out = packet.PosUpdatePacket{ID: id, DX: fixed.NewByte(d.X), DY: fixed.NewByte(d.Y), DZ: fixed.NewByte(d.Z)}
	}

	rec.pos, rec.rot = newPos, newRot

	if out == nil {
		return
	}
	for id, other := range w.conns {
		if id == rec.id || !other.joined() {
			continue
		}
		other.outbound <- out
	}
}

func (w *World) handleSetBlock(rec *connRecord, p packet.SetBlockPacket) {
	if !rec.joined() {
		return
	}
	if !w.block.InBounds(uint32(p.X), uint32(p.Y), uint32(p.Z)) {
		w.log.WithField("remote_addr", rec.addr).Warn("set-block out of bounds, dropping")
		return
	}

	var final world.Block
	if p.Mode == 1 {
		b, err := world.CheckBlock(p.BlockType)
		if err != nil {
			w.log.WithError(err).WithField("remote_addr", rec.addr).Warn("invalid block type, dropping")
			return
		}
		final = b
	} else {
		final = world.Air
	}

	w.block.Set(uint32(p.X), uint32(p.Y), uint32(p.Z), final)
	w.broadcastExcept("", packet.SetBlockServerPacket{X: p.X, Y: p.Y, Z: p.Z, Block: uint8(final)})
}

func (w *World) handleMessage(rec *connRecord, p packet.MessagePacket) {
	if !rec.joined() {
		return
	}
	text := rec.player.Name + ": " + string(p.Message)
	w.broadcastExcept("", packet.MessageServerPacket{ID: rec.player.ID, Message: fixed.Truncate(text)})
}

func (w *World) handleDisconnect(ev DisconnectEvent) {
	rec, ok := w.conns[ev.ID]
	if !ok {
		return
	}
	delete(w.conns, ev.ID)

	if rec.joined() {
		w.ids.Free(rec.player.ID)
		w.broadcastExcept(ev.ID, packet.DespawnPlayerPacket{ID: rec.player.ID})
		w.log.WithFields(logrus.Fields{"remote_addr": rec.addr, "name": rec.player.Name}).Info("player left")
	}
}

func (w *World) handleTick() {
	if w.cfg.SavePath == "" {
		return
	}
	if time.Since(w.lastSave) >= w.cfg.SaveInterval {
		w.lastSave = time.Now()
		w.saveNow()
	}
}

func (w *World) saveNow() {
	if w.cfg.SavePath == "" {
		return
	}
	if err := w.block.Save(w.cfg.SavePath); err != nil {
		w.log.WithError(err).Error("world save failed")
		return
	}
	w.log.WithField("path", w.cfg.SavePath).Debug("world saved")
}

// broadcastExcept encodes pkt once and pushes it onto every live session's
// broadcast channel except the one with handle exceptID (pass "" to
// exclude none). Sends are non-blocking: a subscriber more than its
// channel's capacity behind drops the message and the drop is logged
// rather than stalling the whole actor on one slow reader.
func (w *World) broadcastExcept(exceptID string, pkt packet.ServerPacket) {
	var bw bytes.Buffer
	if _, err := pkt.WriteTo(&bw); err != nil {
		w.log.WithError(err).Error("encode broadcast packet failed")
		return
	}
	buf := bw.Bytes()

	for id, rec := range w.conns {
		if id == exceptID {
			continue
		}
		select {
		case rec.broadcast <- buf:
		default:
			w.log.WithField("remote_addr", rec.addr).WithError(protoerr.ErrBroadcastLagged).Warn("broadcast lagged, dropping message")
		}
	}
}
