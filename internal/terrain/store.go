package terrain

import (
	"sync"

	"mini-terrain/internal/profiling"
)

// ChunkStore caches generated chunks by grid coordinate.
// Only the owning Terrain writes. The lock guards the map and the per-sweep
// Visible flag, so diagnostics may read concurrently through Describe.
type ChunkStore struct {
	chunks   map[GridCoord]*Chunk
	mu       sync.RWMutex
	modCount uint64 // Increases on any chunk add/remove
}

// NewChunkStore creates an empty chunk store.
func NewChunkStore() *ChunkStore {
	return &ChunkStore{
		chunks: make(map[GridCoord]*Chunk),
	}
}

// Get returns the chunk at c, if present.
func (cs *ChunkStore) Get(c GridCoord) (*Chunk, bool) {
	cs.mu.RLock()
	chunk, ok := cs.chunks[c]
	cs.mu.RUnlock()
	return chunk, ok
}

// Has checks for a chunk without returning it.
func (cs *ChunkStore) Has(c GridCoord) bool {
	_, ok := cs.Get(c)
	return ok
}

// Add publishes a chunk. The first chunk stored under a coordinate wins;
// Add reports whether this call inserted it.
func (cs *ChunkStore) Add(chunk *Chunk) bool {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	if _, ok := cs.chunks[chunk.Coord]; ok {
		return false
	}
	cs.chunks[chunk.Coord] = chunk
	cs.modCount++
	return true
}

// SetVisible records the facing classification of a stored chunk.
func (cs *ChunkStore) SetVisible(ch *Chunk, visible bool) {
	cs.mu.Lock()
	ch.Visible = visible
	cs.mu.Unlock()
}

// Describe formats the chunk at c while holding the read lock.
func (cs *ChunkStore) Describe(c GridCoord) (string, bool) {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	ch, ok := cs.chunks[c]
	if !ok {
		return "", false
	}
	return ch.String(), true
}

// Len returns the number of stored chunks.
func (cs *ChunkStore) Len() int {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return len(cs.chunks)
}

// All returns every stored chunk in no particular order.
func (cs *ChunkStore) All() []*Chunk {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	out := make([]*Chunk, 0, len(cs.chunks))
	for _, ch := range cs.chunks {
		out = append(out, ch)
	}
	return out
}

// ModCount returns the current modification count of the chunk map.
func (cs *ChunkStore) ModCount() uint64 {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return cs.modCount
}

// EvictOutside removes chunks whose ring distance from center exceeds radius
// and returns them.
func (cs *ChunkStore) EvictOutside(center GridCoord, radius int) []*Chunk {
	defer profiling.Track("terrain.ChunkStore.EvictOutside")()
	var removed []*Chunk
	cs.mu.Lock()
	for coord, ch := range cs.chunks {
		if chebyshev(coord, center) > radius {
			delete(cs.chunks, coord)
			cs.modCount++
			removed = append(removed, ch)
		}
	}
	cs.mu.Unlock()
	return removed
}
