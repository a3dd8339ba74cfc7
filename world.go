package hydrostat

import "sync"

const DEFAULT_WORKERS = 1

// World steps a set of independent floating bodies against a shared fluid
// environment. Bodies never share mutable state, so they may be stepped by
// several workers; event processing stays on the caller's goroutine.
type World struct {
	// List of all floating bodies in the world
	Bodies []*Body
	// Fluid scalars shared by every body
	Environment Environment
	Workers     int

	Events Events
}

// NewWorld creates a world with the given environment and no bodies.
func NewWorld(env Environment) *World {
	return &World{
		Environment: env,
		Workers:     DEFAULT_WORKERS,
		Events:      NewEvents(),
	}
}

// AddBody adds a floating body to the world
func (w *World) AddBody(body *Body) {
	w.Bodies = append(w.Bodies, body)
	w.Events.track(body)
}

// RemoveBody removes a floating body from the world
func (w *World) RemoveBody(body *Body) {
	k := -1
	for i, b := range w.Bodies {
		if b == body {
			k = i
			break
		}
	}

	if k != -1 {
		w.Bodies = append(w.Bodies[:k], w.Bodies[k+1:]...)
	}

	w.Events.forget(body)
}

// Step runs one simulation tick: every body re-solves its equilibrium pose,
// then settle/immersion transitions are dispatched to event listeners.
func (w *World) Step() {
	w.Workers = max(DEFAULT_WORKERS, w.Workers)

	task(w.Workers, w.Bodies, func(body *Body) {
		body.step(w.Environment)
	})

	w.Events.processStateEvents(w.Bodies)
	w.Events.flush()
}

// task spreads fn over the data slice across workersCount goroutines and
// waits for completion.
func task[T any](workersCount int, data []T, fn func(data T)) {
	if workersCount <= 1 {
		for _, d := range data {
			fn(d)
		}
		return
	}

	var wg sync.WaitGroup
	dataSize := len(data)
	chunkSize := (dataSize + workersCount - 1) / workersCount

	for workerID := 0; workerID < workersCount; workerID++ {
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				fn(data[i])
			}
		}(workerID*chunkSize, min((workerID+1)*chunkSize, dataSize))
	}
	wg.Wait()
}
