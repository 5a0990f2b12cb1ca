package gravity

import "fmt"

// Handle encodes a 32-bit slot index in the lower bits and a 32-bit
// generation in the upper bits. The generation is bumped when the slot is
// released, so handles held by cannons go stale instead of silently pointing
// at whatever body reuses the slot.
type Handle uint64

func newHandle(index, generation uint32) Handle {
	return Handle(uint64(generation)<<32 | uint64(index))
}

func (h Handle) Index() uint32      { return uint32(h) }
func (h Handle) Generation() uint32 { return uint32(h >> 32) }
func (h Handle) IsZero() bool       { return h == 0 }

func (h Handle) String() string {
	return fmt.Sprintf("%d@%d", h.Index(), h.Generation())
}

// handlePool hands out generational handles with a free list. Generations
// start at 1 so the zero Handle is never alive.
type handlePool struct {
	generations []uint32
	freeList    []uint32
}

func newHandlePool() *handlePool {
	return &handlePool{
		generations: make([]uint32, 0, 256),
		freeList:    make([]uint32, 0, 64),
	}
}

func (p *handlePool) create() Handle {
	if n := len(p.freeList); n > 0 {
		idx := p.freeList[n-1]
		p.freeList = p.freeList[:n-1]
		return newHandle(idx, p.generations[idx])
	}
	idx := uint32(len(p.generations))
	p.generations = append(p.generations, 1)
	return newHandle(idx, 1)
}

func (p *handlePool) alive(h Handle) bool {
	idx := h.Index()
	if int(idx) >= len(p.generations) {
		return false
	}
	return p.generations[idx] == h.Generation()
}

func (p *handlePool) release(h Handle) {
	if !p.alive(h) {
		return
	}
	idx := h.Index()
	p.generations[idx]++
	if p.generations[idx] == 0 {
		p.generations[idx] = 1
	}
	p.freeList = append(p.freeList, idx)
}
