package world

import "github.com/vintagecraft/vintage/internal/protoerr"

// MaxPlayers is the number of player-id slots, 0..126. -1 (or 255 on the
// wire) is reserved by the protocol to mean "self" and is never allocated.
const MaxPlayers = 127

// PlayerIdTable is a bijective allocator between a session handle (opaque
// to this package) and the protocol's signed 8-bit player-id. It is
// mutated only by the WorldActor.
type PlayerIdTable[Handle comparable] struct {
	slots [MaxPlayers]*Handle
}

// NewPlayerIdTable returns an empty table.
func NewPlayerIdTable[Handle comparable]() *PlayerIdTable[Handle] {
	return &PlayerIdTable[Handle]{}
}

// Alloc assigns the lowest-indexed empty slot to handle and returns its
// index, or protoerr.ErrServerFull if every slot is occupied.
func (t *PlayerIdTable[Handle]) Alloc(handle Handle) (int8, error) {
	for i := range t.slots {
		if t.slots[i] == nil {
			t.slots[i] = &handle
			return int8(i), nil
		}
	}
	return 0, protoerr.ErrServerFull
}

// Free clears the slot at id. It is a no-op on an already-empty slot.
func (t *PlayerIdTable[Handle]) Free(id int8) {
	if id < 0 || int(id) >= MaxPlayers {
		return
	}
	t.slots[id] = nil
}

// HandleOf returns the handle occupying id, if any.
func (t *PlayerIdTable[Handle]) HandleOf(id int8) (Handle, bool) {
	var zero Handle
	if id < 0 || int(id) >= MaxPlayers || t.slots[id] == nil {
		return zero, false
	}
	return *t.slots[id], true
}

// IDOf does a linear scan for the slot holding handle. O(N) is acceptable
// against a table capped at MaxPlayers slots.
func (t *PlayerIdTable[Handle]) IDOf(handle Handle) (int8, bool) {
	for i := range t.slots {
		if t.slots[i] != nil && *t.slots[i] == handle {
			return int8(i), true
		}
	}
	return 0, false
}
