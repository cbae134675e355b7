// Command terrain-probe streams terrain without a window. It walks a viewer
// along a straight path, reports what each sweep generated and can export
// the height field as a BMP.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"mini-terrain/internal/config"
	"mini-terrain/internal/profiling"
	"mini-terrain/internal/terrain"

	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/image/bmp"
)

func main() {
	var (
		configPath = flag.String("config", "", "terrain yaml config (defaults when empty)")
		windowSize = flag.Int("window", 0, "override the streaming window size in chunks")
		startX     = flag.Float64("x", 0, "viewer start x")
		startZ     = flag.Float64("z", 0, "viewer start z")
		sweeps     = flag.Int("sweeps", 10, "number of VisibleChunks calls")
		stepX      = flag.Float64("dx", 25, "viewer x advance per sweep")
		stepZ      = flag.Float64("dz", 0, "viewer z advance per sweep")
		info       = flag.Bool("info", false, "log the active chunk after every sweep")
		heightmap  = flag.String("heightmap", "", "write a BMP heightmap of the start area to this path")
		mapSize    = flag.Int("map-size", 512, "heightmap edge in pixels")
		mapStep    = flag.Int("map-step", 1, "world units per heightmap pixel")
	)
	flag.Parse()

	cfg := config.DefaultTerrain()
	if *configPath != "" {
		var err error
		cfg, err = config.LoadTerrain(*configPath)
		if err != nil {
			log.Fatalf("load config: %v", err)
		}
	}
	if *windowSize > 0 {
		cfg.WindowSize = *windowSize
	}

	terr, err := terrain.New(cfg)
	if err != nil {
		log.Fatalf("terrain: %v", err)
	}
	defer terr.Close()

	evicted := 0
	terr.OnEvict = func(*terrain.Chunk) { evicted++ }

	step := mgl32.Vec3{float32(*stepX), 0, float32(*stepZ)}
	facing := mgl32.Vec3{1, 0, 0}
	if step.Len() > 0 {
		facing = step.Normalize()
	}

	if err := run(terr, cfg.WindowSize, mgl32.Vec3{float32(*startX), 0, float32(*startZ)}, step, facing, *sweeps, *info); err != nil {
		log.Fatal(err)
	}
	log.Printf("done: stored %d generated %d evicted %d pending %d",
		terr.Len(), terr.ChunksGenerated(), evicted, terr.Pending())

	if *heightmap != "" {
		if err := writeHeightmap(terr, *heightmap, int(*startX), int(*startZ), *mapSize, *mapStep); err != nil {
			log.Fatal(err)
		}
		log.Printf("heightmap written to %s", *heightmap)
	}
}

func run(terr *terrain.Terrain, windowSize int, pos, step, facing mgl32.Vec3, sweeps int, info bool) error {
	if sweeps < 0 {
		return fmt.Errorf("sweeps must be >= 0, got %d", sweeps)
	}
	for i := range sweeps {
		profiling.ResetFrame()
		before := terr.ChunksGenerated()
		start := time.Now()

		draw := terr.VisibleChunks(windowSize, pos.X(), pos.Z(), facing)

		log.Printf("sweep %d at (%.1f, %.1f) cell %v: draw %d new %d in %v [%s]",
			i, pos.X(), pos.Z(), terr.ActiveCell(), len(draw),
			terr.ChunksGenerated()-before, time.Since(start), profiling.TopN(2))
		if info {
			terr.LogChunkInfo(terr.ActiveCell())
		}
		pos = pos.Add(step)
	}
	// Give queued async work a chance to land before reporting
	for deadline := time.Now().Add(2 * time.Second); terr.Pending() > 0 && time.Now().Before(deadline); {
		time.Sleep(10 * time.Millisecond)
		terr.Drain()
	}
	terr.Drain()
	return nil
}

func writeHeightmap(terr *terrain.Terrain, path string, originX, originZ, size, step int) error {
	if size <= 0 {
		return fmt.Errorf("map-size must be > 0, got %d", size)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create heightmap: %w", err)
	}
	defer f.Close()

	half := size * max(step, 1) / 2
	img := terr.Heightmap(originX-half, originZ-half, size, step)
	if err := bmp.Encode(f, img); err != nil {
		return fmt.Errorf("encode heightmap: %w", err)
	}
	return f.Close()
}
