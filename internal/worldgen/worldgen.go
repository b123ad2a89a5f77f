// Package worldgen provides concrete implementations of world.Generator,
// selectable by name from the command line. Terrain generation is
// explicitly out of scope for the core server, which treats it as an
// opaque callback; these exist only so a runnable binary has something
// to hand world.New.
package worldgen

import "github.com/vintagecraft/vintage/internal/world"

// Flat fills every layer below dims.Y/2 - 1 with Stone, layer dims.Y/2 - 1
// with Dirt, and layer dims.Y/2 with Grass, leaving Air above — a
// deterministic stand-in terrain for
// the classic protocol's "send whatever the generator built" contract.
func Flat(dims world.Dims, w *world.BlockWorld) {
	if dims.Y == 0 {
		return
	}
	grassLevel := dims.Y / 2
	var dirtLevel uint32
	if grassLevel > 0 {
		dirtLevel = grassLevel - 1
	}

	for x := uint32(0); x < dims.X; x++ {
		for z := uint32(0); z < dims.Z; z++ {
			for y := uint32(0); y < dims.Y; y++ {
				switch {
				case y < dirtLevel:
					w.Set(x, y, z, world.Stone)
				case y < grassLevel:
					w.Set(x, y, z, world.Dirt)
				case y == grassLevel:
					w.Set(x, y, z, world.Grass)
				}
			}
		}
	}
}

// Superflat returns a generator that repeats layers bottom-up, the same
// way vanilla Minecraft's superflat preset list works. layers[0] is the
// bottom layer (typically Bedrock); layers beyond dims.Y are ignored.
func Superflat(layers []world.Block) world.Generator {
	return func(dims world.Dims, w *world.BlockWorld) {
		for x := uint32(0); x < dims.X; x++ {
			for z := uint32(0); z < dims.Z; z++ {
				for y := uint32(0); y < dims.Y && int(y) < len(layers); y++ {
					w.Set(x, y, z, layers[y])
				}
			}
		}
	}
}
