package catcher

// BallState is a read-only copy of one ball.
type BallState struct {
	ID     BallID
	X, Y   float64
	Radius float64
}

// SensorState is a read-only copy of one sensor, with its ray placed at the
// current anchor.
type SensorState struct {
	Angle    float64
	From, To Point
	Active   bool
}

// Snapshot is everything a renderer needs to draw a frame. It shares no
// memory with the Env.
type Snapshot struct {
	Clock    int
	Done     bool
	Position float64
	CartX    float64 // pixel-space cart centre
	Balls    []BallState
	Sensors  []SensorState // construction order

	// Balls added and removed by the most recent step.
	Spawned []BallID
	Removed []Removal
}

// Snapshot captures the current state.
func (e *Env) Snapshot() Snapshot {
	snap := Snapshot{
		Clock:    e.clock,
		Done:     e.Done(),
		Position: e.position,
		CartX:    e.cfg.CartPixelX(e.position),
		Balls:    make([]BallState, e.arena.len()),
		Sensors:  make([]SensorState, len(e.sensors)),
		Spawned:  append([]BallID(nil), e.lastSpawned...),
		Removed:  append([]Removal(nil), e.lastRemoved...),
	}
	for i, b := range e.arena.balls {
		snap.Balls[i] = BallState{ID: e.arena.ids[i], X: b.X, Y: b.Y, Radius: b.Radius}
	}
	anchor := e.anchor()
	for i, s := range e.sensors {
		from, to := s.Endpoints(anchor)
		snap.Sensors[i] = SensorState{Angle: s.Angle, From: from, To: to, Active: e.activeBuf[i]}
	}
	return snap
}
