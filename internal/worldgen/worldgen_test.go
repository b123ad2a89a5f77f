package worldgen

import (
	"testing"

	"github.com/vintagecraft/vintage/internal/world"
)

func TestFlatLayering(t *testing.T) {
	dims := world.Dims{X: 2, Y: 8, Z: 2}
	w := world.New(dims, Flat)

	grassLevel := dims.Y / 2
	for y := uint32(0); y < dims.Y; y++ {
		var want world.Block
		switch {
		case y < grassLevel-1:
			want = world.Stone
		case y < grassLevel:
			want = world.Dirt
		case y == grassLevel:
			want = world.Grass
		default:
			want = world.Air
		}
		if got := w.Get(0, y, 0); got != want {
			t.Errorf("Get(0,%d,0) = %v, want %v", y, got, want)
		}
	}
}

func TestFlatZeroHeight(t *testing.T) {
	dims := world.Dims{X: 2, Y: 0, Z: 2}
	// Must not panic on a degenerate world with no Y extent.
	world.New(dims, Flat)
}

func TestSuperflatLayers(t *testing.T) {
	layers := []world.Block{world.Bedrock, world.Dirt, world.Grass}
	dims := world.Dims{X: 1, Y: 5, Z: 1}
	w := world.New(dims, Superflat(layers))

	for y, want := range layers {
		if got := w.Get(0, uint32(y), 0); got != want {
			t.Errorf("Get(0,%d,0) = %v, want %v", y, got, want)
		}
	}
	// Above the layer list, cells stay Air.
	if got := w.Get(0, 3, 0); got != world.Air {
		t.Errorf("Get(0,3,0) = %v, want Air", got)
	}
}

func TestSuperflatLayersTallerThanWorld(t *testing.T) {
	layers := []world.Block{world.Bedrock, world.Dirt, world.Grass, world.Sand, world.Sand}
	dims := world.Dims{X: 1, Y: 2, Z: 1}
	// Must not panic or write out of bounds when layers exceed dims.Y.
	w := world.New(dims, Superflat(layers))
	if got := w.Get(0, 0, 0); got != world.Bedrock {
		t.Errorf("Get(0,0,0) = %v, want Bedrock", got)
	}
	if got := w.Get(0, 1, 0); got != world.Dirt {
		t.Errorf("Get(0,1,0) = %v, want Dirt", got)
	}
}
