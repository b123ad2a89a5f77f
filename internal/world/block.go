package world

import "github.com/vintagecraft/vintage/internal/protoerr"

// Block is one of the 50 enumerated voxel types, addressable on the wire
// and on disk by a single byte in the contiguous range 0..=49.
type Block uint8

// The classic block set, in wire-id order.
const (
	Air Block = iota
	Stone
	Grass
	Dirt
	Cobblestone
	Planks
	Sapling
	Bedrock
	Water
	StillWater
	Lava
	StillLava
	Sand
	Gravel
	GoldOre
	IronOre
	Coal
	Log
	Leaves
	Sponge
	Glass
	Red
	Orange
	Yellow
	Lime
	Green
	Teal
	Aqua
	Cyan
	Blue
	Indigo
	Violet
	Magenta
	Pink
	Black
	Gray
	White
	Dandelion
	Rose
	BrownMushroom
	RedMushroom
	GoldBlock
	IronBlock
	DoubleSlab
	Slab
	Brick
	TNT
	Bookshelf
	MossyCobblestone
	Obsidian

	// blockCount is the number of valid block ids, one past the highest.
	blockCount
)

// MaxBlock is the highest valid block id (Obsidian, 49).
const MaxBlock = Block(blockCount - 1)

// Valid reports whether b is one of the 50 enumerated block ids.
func (b Block) Valid() bool {
	return b <= MaxBlock
}

// CheckBlock validates a raw wire byte as a Block, returning
// protoerr.ErrInvalidBlock for ids outside 0..=49.
func CheckBlock(raw byte) (Block, error) {
	b := Block(raw)
	if !b.Valid() {
		return 0, protoerr.ErrInvalidBlock
	}
	return b, nil
}
