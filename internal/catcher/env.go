package catcher

import (
	"fmt"
	"math/rand"

	"github.com/pkg/errors"
)

// Action is a discrete cart command.
type Action int

const (
	ActionLeft  Action = 0
	ActionRight Action = 1
)

func (a Action) String() string {
	switch a {
	case ActionLeft:
		return "left"
	case ActionRight:
		return "right"
	default:
		return fmt.Sprintf("action(%d)", int(a))
	}
}

// Discrete is a finite action space {0, ..., N-1}.
type Discrete struct {
	N int
}

// Contains reports whether a is a member of the space.
func (d Discrete) Contains(a Action) bool {
	return a >= 0 && int(a) < d.N
}

// ActionSpace is the fixed two-action space: 0 moves left, 1 moves right.
var ActionSpace = Discrete{N: 2}

// Observation is the cart position followed by one 0/1 value per sensor,
// ordered from the highest sensor angle to the lowest.
type Observation []float64

// Position returns the cart position component.
func (o Observation) Position() float64 {
	return o[0]
}

// Sensors returns the sensor sub-vector.
func (o Observation) Sensors() []float64 {
	return o[1:]
}

// StepResult is what Step returns to the agent.
type StepResult struct {
	Observation Observation
	Reward      int
	Done        bool
	Info        map[string]any // always nil

	// Arena bookkeeping for renderers.
	Spawned []BallID
	Removed []Removal
}

// Env is the catcher simulation. It is not safe for concurrent use; run one
// Env per goroutine.
type Env struct {
	cfg       Config
	rng       *rand.Rand
	log       *SimLog
	scale     float64
	stepSize  float64
	position  float64
	clock     int
	arena     ballArena
	sensors   []Sensor
	activeBuf []bool

	lastSpawned []BallID
	lastRemoved []Removal
}

// EnvOption configures an Env at construction.
type EnvOption func(*Env)

// WithSeed seeds the environment's random source for reproducible runs.
func WithSeed(seed int64) EnvOption {
	return func(e *Env) {
		e.rng = rand.New(rand.NewSource(seed)) // #nosec G404 -- simulation only
	}
}

// WithRand injects the random source. The Env takes ownership of r.
func WithRand(r *rand.Rand) EnvOption {
	return func(e *Env) {
		e.rng = r
	}
}

// WithSimLog attaches an event log.
func WithSimLog(sl *SimLog) EnvOption {
	return func(e *Env) {
		e.log = sl
	}
}

// NewEnv validates cfg and returns an environment already in its reset
// state.
func NewEnv(cfg Config, opts ...EnvOption) (*Env, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	e := &Env{
		cfg:      cfg,
		rng:      rand.New(rand.NewSource(1)), // #nosec G404 -- deterministic default
		scale:    cfg.Scale(),
		stepSize: cfg.StepSize(),
		arena:    newBallArena(cfg.MaxBalls),
	}
	for _, o := range opts {
		o(e)
	}
	e.resetState()
	return e, nil
}

// Config returns the parameters the environment was built with.
func (e *Env) Config() Config {
	return e.cfg
}

// ObservationLow is the lower bound of every observation component.
func (e *Env) ObservationLow() Observation {
	low := make(Observation, 1+e.cfg.NSensors)
	low[0] = -e.cfg.Threshold
	return low
}

// ObservationHigh is the upper bound of every observation component.
func (e *Env) ObservationHigh() Observation {
	high := make(Observation, 1+e.cfg.NSensors)
	high[0] = e.cfg.Threshold
	for i := 1; i < len(high); i++ {
		high[i] = 1
	}
	return high
}

func (e *Env) resetState() {
	e.position = 0
	e.clock = 0
	e.arena.clear()
	e.sensors = NewSensorFan(e.cfg)
	e.activeBuf = make([]bool, len(e.sensors))
	e.lastSpawned = nil
	e.lastRemoved = nil
}

// Reset starts a new episode and returns the initial observation. It draws
// nothing from the random source.
func (e *Env) Reset() Observation {
	e.resetState()
	if e.log != nil {
		e.log.Add(0, "--", "episode", "reset", fmt.Sprintf("%d sensors", len(e.sensors)), 0)
	}
	return e.observe()
}

// Step applies action and advances the simulation by one step. An invalid
// action returns ErrInvalidAction and leaves the environment untouched.
//
// Stepping past the end of an episode keeps simulating with Done set; only
// Reset starts over.
func (e *Env) Step(action Action) (StepResult, error) {
	if !ActionSpace.Contains(action) {
		return StepResult{}, errors.Wrapf(ErrInvalidAction, "%d not in [0, %d)", int(action), ActionSpace.N)
	}
	e.clock++
	e.lastSpawned = nil
	e.lastRemoved = nil

	// 1. SPAWN
	if (e.clock-1)%e.cfg.Frequency == 0 && e.arena.len() < e.cfg.MaxBalls {
		e.spawnBall()
	}

	// 2. FALL
	for i := range e.arena.balls {
		e.arena.balls[i].Fall()
	}

	// 3. MOVE
	direction := 1.0
	if action == ActionLeft {
		direction = -1.0
	}
	e.position += direction * e.stepSize
	if e.position > e.cfg.Threshold {
		e.position = e.cfg.Threshold
	}
	if e.position < -e.cfg.Threshold {
		e.position = -e.cfg.Threshold
	}

	// 4. RESOLVE
	reward := e.resolveCollisions()

	obs := e.observe()
	done := e.Done()
	if e.log != nil {
		e.log.AddVerbose(e.clock, "cart", "cart", "position", fmt.Sprintf("%.3f", e.position), e.position)
		if done && e.clock == e.cfg.MaxSteps+1 {
			e.log.Add(e.clock, "--", "episode", "done", fmt.Sprintf("after %d steps", e.clock), float64(e.clock))
		}
	}

	return StepResult{
		Observation: obs,
		Reward:      reward,
		Done:        done,
		Spawned:     e.lastSpawned,
		Removed:     e.lastRemoved,
	}, nil
}

// spawnBall draws vertical speed, horizontal speed and start x, in that
// order, and adds the ball at the top of the screen.
func (e *Env) spawnBall() {
	c := e.cfg
	vertical := uniform(e.rng, c.BallMinVerticalSpeed, c.BallMaxVerticalSpeed)
	horizontal := uniform(e.rng, -c.BallMaxHorizontalSpeed, c.BallMaxHorizontalSpeed)
	band := c.ScreenWidth * c.SpawnSpread
	x := uniform(e.rng, -band, band) + c.ScreenWidth/2

	b := NewBall(c.BallRadius, horizontal, vertical, c.ScreenWidth, c.ScreenHeight, x)
	id := e.arena.add(b)
	e.lastSpawned = append(e.lastSpawned, id)
	if e.log != nil {
		e.log.Add(e.clock, ballLabel(id), "ball", "spawn",
			fmt.Sprintf("x=%.1f vx=%.2f vy=%.2f", x, horizontal, vertical), x)
	}
}

// resolveCollisions removes caught and grounded balls and returns the number
// caught. A caught ball is never also counted as grounded.
func (e *Env) resolveCollisions() int {
	reward := 0
	cartX := e.cfg.CartPixelX(e.position)
	e.arena.retain(func(id BallID, b *Ball) bool {
		switch {
		case b.CollidesCart(cartX, e.cfg.CartWidth, e.cfg.CartHeight):
			reward++
			e.lastRemoved = append(e.lastRemoved, Removal{ID: id, Caught: true})
			if e.log != nil {
				e.log.Add(e.clock, ballLabel(id), "ball", "caught",
					fmt.Sprintf("at x=%.1f cart=%.1f", b.X, cartX), b.X)
			}
			return false
		case b.GroundTouched():
			e.lastRemoved = append(e.lastRemoved, Removal{ID: id})
			if e.log != nil {
				e.log.Add(e.clock, ballLabel(id), "ball", "ground",
					fmt.Sprintf("at x=%.1f cart=%.1f", b.X, cartX), b.X)
			}
			return false
		}
		return true
	})
	return reward
}

// anchor is the pixel point all sensor rays start from.
func (e *Env) anchor() Point {
	return Point{X: e.cfg.CartPixelX(e.position), Y: e.cfg.SensorAnchorY()}
}

// computeActivations fills activeBuf in construction order.
func (e *Env) computeActivations() {
	anchor := e.anchor()
	for i, s := range e.sensors {
		e.activeBuf[i] = s.Activated(anchor, e.arena.balls)
	}
}

func (e *Env) observe() Observation {
	e.computeActivations()
	n := len(e.sensors)
	obs := make(Observation, 1+n)
	obs[0] = e.position
	for i := 0; i < n; i++ {
		if e.activeBuf[n-1-i] {
			obs[1+i] = 1
		}
	}
	if e.log != nil && e.log.Verbose() {
		active := 0
		for _, a := range e.activeBuf {
			if a {
				active++
			}
		}
		e.log.AddVerbose(e.clock, "cart", "sensor", "active", fmt.Sprintf("%d/%d", active, n), float64(active))
	}
	return obs
}

// Activations returns the current sensor states in construction order
// (increasing angle).
func (e *Env) Activations() []bool {
	out := make([]bool, len(e.activeBuf))
	copy(out, e.activeBuf)
	return out
}

// Position returns the cart position in world units.
func (e *Env) Position() float64 {
	return e.position
}

// Clock returns the number of steps since the last reset.
func (e *Env) Clock() int {
	return e.clock
}

// Done reports whether the episode step limit has been passed.
func (e *Env) Done() bool {
	return e.clock > e.cfg.MaxSteps
}

// NumBalls returns how many balls are alive.
func (e *Env) NumBalls() int {
	return e.arena.len()
}

// Ball looks up a live ball by handle.
func (e *Env) Ball(id BallID) (Ball, bool) {
	return e.arena.get(id)
}

// Sensors returns a copy of the sensor array in construction order.
func (e *Env) Sensors() []Sensor {
	out := make([]Sensor, len(e.sensors))
	copy(out, e.sensors)
	return out
}

// Close releases nothing; the core owns no external resources.
func (e *Env) Close() error {
	return nil
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}
