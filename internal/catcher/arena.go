package catcher

// BallID is a stable handle for a ball within one environment. IDs are never
// reused, not even across resets, so a renderer can key presentation objects
// on them.
type BallID uint64

// Removal records a ball leaving the arena during a step.
type Removal struct {
	ID     BallID
	Caught bool // false when the ball hit the ground
}

// ballArena owns the live balls in spawn order. ids and balls are parallel.
type ballArena struct {
	ids    []BallID
	balls  []Ball
	nextID BallID
}

func newBallArena(capacity int) ballArena {
	return ballArena{
		ids:    make([]BallID, 0, capacity),
		balls:  make([]Ball, 0, capacity),
		nextID: 1,
	}
}

func (a *ballArena) clear() {
	a.ids = a.ids[:0]
	a.balls = a.balls[:0]
}

func (a *ballArena) len() int {
	return len(a.balls)
}

// add appends b and returns its handle.
func (a *ballArena) add(b Ball) BallID {
	id := a.nextID
	a.nextID++
	a.ids = append(a.ids, id)
	a.balls = append(a.balls, b)
	return id
}

// get returns the ball for id, or false if it is no longer alive.
func (a *ballArena) get(id BallID) (Ball, bool) {
	for i, bid := range a.ids {
		if bid == id {
			return a.balls[i], true
		}
	}
	return Ball{}, false
}

// retain keeps the balls for which keep returns true, preserving order, and
// drops the rest.
func (a *ballArena) retain(keep func(id BallID, b *Ball) bool) {
	n := 0
	for i := range a.balls {
		if keep(a.ids[i], &a.balls[i]) {
			a.ids[n] = a.ids[i]
			a.balls[n] = a.balls[i]
			n++
		}
	}
	a.ids = a.ids[:n]
	a.balls = a.balls[:n]
}
