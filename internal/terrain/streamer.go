package terrain

import (
	"context"
	"sync"

	"mini-terrain/internal/profiling"
)

// meshResult is a finished off-thread generation waiting to be published.
type meshResult struct {
	Coord GridCoord
	Mesh  Mesh
}

// Streamer meshes chunks on background workers. Workers never touch the
// store: results queue up until the owner drains them on its own goroutine.
type Streamer struct {
	jobs    chan GridCoord
	results chan meshResult

	pending   map[GridCoord]struct{}
	pendingMu sync.Mutex

	mesher     *Mesher
	edge       int
	resolution int

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewStreamer starts workers meshing footprints of the given edge length.
func NewStreamer(m *Mesher, edge, resolution, workers, queueSize int) *Streamer {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Streamer{
		jobs:       make(chan GridCoord, queueSize),
		results:    make(chan meshResult, queueSize),
		pending:    make(map[GridCoord]struct{}),
		mesher:     m,
		edge:       edge,
		resolution: resolution,
		ctx:        ctx,
		cancel:     cancel,
	}

	workers = max(workers, 1)
	for range workers {
		s.wg.Add(1)
		go s.worker()
	}
	return s
}

func (s *Streamer) worker() {
	defer s.wg.Done()
	for {
		select {
		case coord := <-s.jobs:
			mesh := s.mesher.Generate(coord.X*s.edge, coord.Z*s.edge, s.edge, s.resolution)
			select {
			case s.results <- meshResult{Coord: coord, Mesh: mesh}:
			case <-s.ctx.Done():
				return
			}
		case <-s.ctx.Done():
			return
		}
	}
}

// Request queues a cell unless it is already pending. It never blocks;
// false means the cell was pending or the queue is full.
func (s *Streamer) Request(coord GridCoord) bool {
	s.pendingMu.Lock()
	if _, ok := s.pending[coord]; ok {
		s.pendingMu.Unlock()
		return false
	}
	s.pending[coord] = struct{}{}
	s.pendingMu.Unlock()

	select {
	case s.jobs <- coord:
		return true
	default:
		// queue full: rollback
		s.pendingMu.Lock()
		delete(s.pending, coord)
		s.pendingMu.Unlock()
		return false
	}
}

// Drain hands every finished result to publish without blocking and returns
// how many were drained.
func (s *Streamer) Drain(publish func(meshResult)) int {
	defer profiling.Track("terrain.Streamer.Drain")()
	n := 0
	for {
		select {
		case r := <-s.results:
			s.pendingMu.Lock()
			delete(s.pending, r.Coord)
			s.pendingMu.Unlock()
			publish(r)
			n++
		default:
			return n
		}
	}
}

// Pending returns the number of cells queued or in flight.
func (s *Streamer) Pending() int {
	s.pendingMu.Lock()
	defer s.pendingMu.Unlock()
	return len(s.pending)
}

// IsPending reports whether a cell is queued or in flight.
func (s *Streamer) IsPending(coord GridCoord) bool {
	s.pendingMu.Lock()
	defer s.pendingMu.Unlock()
	_, ok := s.pending[coord]
	return ok
}

// Close stops the workers and waits for them to exit.
func (s *Streamer) Close() {
	s.cancel()
	s.wg.Wait()
}
