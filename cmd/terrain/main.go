package main

import (
	"flag"
	"log"
	"runtime"

	"mini-terrain/internal/config"
	"mini-terrain/internal/terrain"

	"github.com/go-gl/glfw/v3.3/glfw"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	var (
		configPath = flag.String("config", "", "terrain yaml config (defaults when empty)")
		fpsLimit   = flag.Int("fps", config.GetFPSLimit(), "frame cap, 0 for uncapped")
		windowSize = flag.Int("window", 0, "override the streaming window size in chunks")
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
	config.SetWindowSize(cfg.WindowSize)
	config.SetFPSLimit(*fpsLimit)

	terr, err := terrain.New(cfg)
	if err != nil {
		log.Fatalf("terrain: %v", err)
	}
	defer terr.Close()

	if err := glfw.Init(); err != nil {
		log.Fatalf("glfw: %v", err)
	}
	defer glfw.Terminate()

	window, err := setupWindow()
	if err != nil {
		log.Fatalf("window: %v", err)
	}

	v, err := setupViewer(window, terr)
	if err != nil {
		log.Fatalf("renderer: %v", err)
	}
	defer v.Renderer.Dispose()

	NewViewerLoop(window, v).Run()
}
