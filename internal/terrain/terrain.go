package terrain

import (
	"fmt"
	"log"
	"time"

	"mini-terrain/internal/config"
	"mini-terrain/internal/profiling"

	"github.com/go-gl/mathgl/mgl32"
)

// Terrain owns the chunk store and streams the window of chunks around the
// viewer. It is driven from a single goroutine, once per frame.
type Terrain struct {
	cfg    config.Terrain
	store  *ChunkStore
	field  HeightField
	mesher *Mesher
	cell   cellFunc

	activeCell      GridCoord
	chunksGenerated int

	frustum  *Frustum
	streamer *Streamer

	// OnEvict is called for every chunk dropped by the retention policy, so
	// the renderer can free its GPU buffers.
	OnEvict func(*Chunk)
}

// New validates cfg and builds a terrain over a fractal simplex height field.
func New(cfg config.Terrain) (*Terrain, error) {
	field := NewFractalNoise(NoiseParams{
		Seed:        cfg.Noise.Seed,
		Frequency:   cfg.Noise.Frequency,
		Amplitude:   cfg.Noise.Amplitude,
		Lacunarity:  cfg.Lacunarity,
		Persistence: cfg.Persistence,
		Octaves:     cfg.Octaves,
	})
	return NewWithField(cfg, field)
}

// NewWithField validates cfg and builds a terrain over an arbitrary field.
func NewWithField(cfg config.Terrain, field HeightField) (*Terrain, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if field == nil {
		return nil, fmt.Errorf("nil height field: %w", config.ErrInvalidConfig)
	}

	t := &Terrain{
		cfg:   cfg,
		store: NewChunkStore(),
		field: field,
		mesher: &Mesher{
			Field:           field,
			HeightAmplitude: cfg.HeightAmplitude,
			WaterLevel:      WaterLevelFor(cfg.HeightAmplitude, cfg.WaterLevelFraction),
			TextureTileSize: cfg.TextureTileSize,
		},
		cell: floorCell,
	}
	if cfg.GridConvention == config.GridMirror {
		t.cell = mirrorCell
	}
	if cfg.AsyncWorkers > 0 {
		queue := cfg.WindowSize * cfg.WindowSize * 2
		t.streamer = NewStreamer(t.mesher, cfg.ChunkEdgeLength, cfg.Resolution, cfg.AsyncWorkers, queue)
	}
	return t, nil
}

// Close stops background generation, if any.
func (t *Terrain) Close() {
	if t.streamer != nil {
		t.streamer.Close()
	}
}

// Config returns the parameters the terrain was built with.
func (t *Terrain) Config() config.Terrain {
	return t.cfg
}

// UpdateActiveCell recomputes the cell under the viewer.
func (t *Terrain) UpdateActiveCell(viewerX, viewerZ float32) {
	t.activeCell = t.cell(viewerX, viewerZ, t.cfg.ChunkEdgeLength)
}

// ActiveCell returns the cell computed by the last UpdateActiveCell.
func (t *Terrain) ActiveCell() GridCoord {
	return t.activeCell
}

// SetFrustum installs the projection*view matrix used by the frustum culling
// mode. Until it is called the frustum mode culls nothing.
func (t *Terrain) SetFrustum(clip mgl32.Mat4) {
	f := NewFrustum(clip)
	t.frustum = &f
}

// VisibleChunks streams the windowSize x windowSize cells around the viewer
// and returns the draw list.
//
// The window starts windowSize/2 cells before the active cell on each axis,
// so even sizes reach one cell further on the negative side. Missing cells are
// generated synchronously unless async generation is enabled, in which case
// they are queued and left out until a later sweep publishes them. In the
// default culling mode every cell of the window is returned; Visible only
// records the facing test.
func (t *Terrain) VisibleChunks(windowSize int, viewerX, viewerZ float32, facing mgl32.Vec3) []GridCoord {
	defer profiling.Track("terrain.VisibleChunks")()

	if t.streamer != nil {
		t.Drain()
	}

	t.UpdateActiveCell(viewerX, viewerZ)
	if windowSize <= 0 {
		return nil
	}

	half := windowSize / 2
	startX := t.activeCell.X - half
	startZ := t.activeCell.Z - half

	start := time.Now()
	generated := 0
	visible := make([]GridCoord, 0, windowSize*windowSize)

	for x := startX; x < startX+windowSize; x++ {
		for z := startZ; z < startZ+windowSize; z++ {
			coord := GridCoord{X: x, Z: z}
			ch, ok := t.store.Get(coord)
			if !ok {
				if t.streamer != nil {
					t.streamer.Request(coord)
					continue
				}
				ch = t.generate(coord)
				generated++
			}

			t.store.SetVisible(ch, facingVisible(ch, viewerX, viewerZ, facing, t.cfg.VisibilityThreshold))
			if t.keep(ch) {
				visible = append(visible, coord)
			}
		}
	}

	if generated > 0 {
		log.Printf("terrain: generated %d chunks around %v in %v", generated, t.activeCell, time.Since(start))
	}

	if t.cfg.RetentionRadius > 0 {
		t.evict(max(t.cfg.RetentionRadius, half))
	}
	return visible
}

// keep applies the configured culling mode to a chunk already classified.
func (t *Terrain) keep(ch *Chunk) bool {
	switch t.cfg.Culling {
	case config.CullFacing:
		return ch.Visible
	case config.CullFrustum:
		if t.frustum == nil {
			return true
		}
		lo, hi := chunkBounds(ch, t.cfg.ChunkEdgeLength, t.cfg.HeightAmplitude)
		return t.frustum.IntersectsAABB(lo, hi)
	default:
		return true
	}
}

// generate meshes a cell on the calling goroutine and publishes it.
func (t *Terrain) generate(coord GridCoord) *Chunk {
	ch := newChunk(coord, t.cfg.ChunkEdgeLength)
	mesh := t.mesher.Generate(ch.PosX, ch.PosZ, t.cfg.ChunkEdgeLength, t.cfg.Resolution)
	return t.publish(ch, mesh)
}

// publish assigns the next ID and inserts the chunk. It is the only writer
// of the store.
func (t *Terrain) publish(ch *Chunk, mesh Mesh) *Chunk {
	ch.applyMesh(mesh, t.mesher.WaterLevel)
	ch.ID = t.chunksGenerated
	if t.store.Add(ch) {
		t.chunksGenerated++
		return ch
	}
	existing, _ := t.store.Get(ch.Coord)
	return existing
}

// Drain publishes every chunk finished by the background workers. It must be
// called from the goroutine that calls VisibleChunks; VisibleChunks already
// does so at the start of each sweep.
func (t *Terrain) Drain() int {
	if t.streamer == nil {
		return 0
	}
	return t.streamer.Drain(func(r meshResult) {
		if t.store.Has(r.Coord) {
			return
		}
		t.publish(newChunk(r.Coord, t.cfg.ChunkEdgeLength), r.Mesh)
	})
}

// Pending returns how many cells are queued for background generation.
func (t *Terrain) Pending() int {
	if t.streamer == nil {
		return 0
	}
	return t.streamer.Pending()
}

func (t *Terrain) evict(radius int) {
	removed := t.store.EvictOutside(t.activeCell, radius)
	if len(removed) == 0 {
		return
	}
	if t.OnEvict != nil {
		for _, ch := range removed {
			t.OnEvict(ch)
		}
	}
	log.Printf("terrain: evicted %d chunks beyond %d cells of %v", len(removed), radius, t.activeCell)
}

// Chunk returns the chunk stored at c.
func (t *Terrain) Chunk(c GridCoord) (*Chunk, bool) {
	return t.store.Get(c)
}

// Len returns the number of chunks currently stored.
func (t *Terrain) Len() int {
	return t.store.Len()
}

// ChunksGenerated returns how many chunks have ever been published.
func (t *Terrain) ChunksGenerated() int {
	return t.chunksGenerated
}

// WaterLevel returns the absolute height below which terrain is under water.
func (t *Terrain) WaterLevel() float32 {
	return t.mesher.WaterLevel
}

// HeightAt returns the scaled terrain height at a world position.
func (t *Terrain) HeightAt(x, z float64) float32 {
	return float32(t.field.Height(x, z)) * t.cfg.HeightAmplitude
}

// ChunkInfo describes the chunk at c for debugging. It is safe to call from
// another goroutine while VisibleChunks runs.
func (t *Terrain) ChunkInfo(c GridCoord) (string, bool) {
	return t.store.Describe(c)
}

// LogChunkInfo writes ChunkInfo to the standard logger.
func (t *Terrain) LogChunkInfo(c GridCoord) {
	info, ok := t.ChunkInfo(c)
	if !ok {
		log.Printf("terrain: no chunk at %v", c)
		return
	}
	log.Print(info)
}
