package main

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/tetratelabs/wazero/api"

	"github.com/wippyai/strings-engine/collections/vect"
	"github.com/wippyai/strings-engine/mem"
	"github.com/wippyai/strings-engine/mem/linear"
)

// scriptModule is a guest with one exported, growable page of memory.
var scriptModule = []byte{
	0x00, 0x61, 0x73, 0x6d,
	0x01, 0x00, 0x00, 0x00,
	0x05, 0x03, 0x01, 0x00, 0x01,
	0x07, 0x07, 0x01, 0x03, 'm', 'e', 'm', 0x02, 0x00,
}

const scriptPageLimit = 64

type entity struct {
	transform [16]float32
	id        uint32
}

// texture owns its pixels until dropped.
type texture struct {
	alloc  mem.Allocator[uint32]
	pixels []uint32
}

func (t texture) Drop() {
	t.alloc.Dealloc(t.pixels)
}

// node is a scene node owning scratch vertex data.
type node struct {
	alloc mem.Allocator[float32]
	verts []float32
}

func (n *node) Drop() {
	n.alloc.Dealloc(n.verts)
	n.verts = nil
}

// world is a synthetic engine frame loop driving every allocation path.
type world struct {
	ledger   *mem.Ledger
	rng      *rand.Rand
	entities *vect.Vect[entity]
	textures *vect.Vect[texture]
	scene    *vect.Vect[*node]
	host     *linear.Host
	script   api.Module
	ops      uint64
	nextID   uint32
}

func newWorld(ctx context.Context, l *mem.Ledger, seed uint64, withScript bool) (*world, error) {
	w := &world{
		ledger:   l,
		rng:      rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		entities: vect.NewWithLedger[entity](l),
		textures: vect.NewWithLedger[texture](l),
		scene:    vect.NewWithLedger[*node](l),
	}
	if withScript {
		w.host = linear.NewHost(ctx, l, &linear.Config{MemoryLimitPages: scriptPageLimit, Tag: mem.TagJob})
		mod, err := w.host.Instantiate(ctx, scriptModule, "script")
		if err != nil {
			w.close(ctx)
			return nil, fmt.Errorf("load script: %w", err)
		}
		w.script = mod
	}
	return w, nil
}

// step performs one randomly chosen operation.
func (w *world) step() {
	w.ops++
	switch r := w.rng.IntN(100); {
	case r < 35:
		w.entities.Push(w.spawn())
	case r < 55:
		if n := w.entities.Len(); n > 0 {
			w.entities.Remove(w.rng.IntN(n))
		}
	case r < 65:
		w.entities.Insert(w.rng.IntN(w.entities.Len()+1), w.spawn())
	case r < 75:
		side := 16 << w.rng.IntN(4)
		a := mem.For[uint32](w.ledger, mem.TagTexture)
		w.textures.Push(texture{alloc: a, pixels: a.Alloc(side * side)})
	case r < 82:
		if t, ok := w.textures.Pop(); ok {
			t.Drop()
		}
	case r < 94:
		a := mem.For[float32](w.ledger, mem.TagEntityNode)
		w.scene.Push(&node{alloc: a, verts: a.Alloc(3 * (1 + w.rng.IntN(64)))})
	case r < 97:
		w.drainScene()
	default:
		w.growScript()
	}
}

func (w *world) spawn() entity {
	w.nextID++
	e := entity{id: w.nextID}
	for i := 0; i < 16; i += 5 {
		e.transform[i] = 1
	}
	return e
}

// drainScene releases roughly half the scene, front first; the rest is
// destroyed when the drain is dropped.
func (w *world) drainScene() {
	d := w.scene.Drain()
	defer d.Drop()
	for range d.Len() / 2 {
		n, _ := d.Next()
		n.Drop()
	}
}

func (w *world) growScript() {
	if w.script == nil {
		return
	}
	m := w.script.Memory()
	if m.Size()/65536 < scriptPageLimit {
		m.Grow(1)
	}
}

// reset drops all engine state but keeps the script host.
func (w *world) reset() {
	w.entities.Drop()
	w.textures.Drop()
	w.scene.Drop()
}

func (w *world) close(ctx context.Context) {
	w.reset()
	if w.host != nil {
		_ = w.host.Close(ctx)
	}
}
