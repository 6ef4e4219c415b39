package catcher

import "math/rand"

// Policy picks an action from an observation.
type Policy interface {
	Act(obs Observation) Action
}

// PolicyFunc adapts a plain function to Policy.
type PolicyFunc func(obs Observation) Action

// Act calls f.
func (f PolicyFunc) Act(obs Observation) Action {
	return f(obs)
}

// SensorPolicy steers toward the side whose sensors see more balls. The
// sensor sub-vector runs from the leftmost ray to the rightmost, so the first
// half looks left. With no preference it drifts back toward the centre.
type SensorPolicy struct{}

// Act implements Policy.
func (SensorPolicy) Act(obs Observation) Action {
	sensors := obs.Sensors()
	half := len(sensors) / 2
	left, right := 0.0, 0.0
	for i, v := range sensors {
		switch {
		case i < half:
			left += v
		case i >= len(sensors)-half:
			right += v
		}
	}
	switch {
	case right > left:
		return ActionRight
	case left > right:
		return ActionLeft
	case obs.Position() > 0:
		return ActionLeft
	default:
		return ActionRight
	}
}

// RandomPolicy picks uniformly from the action space.
type RandomPolicy struct {
	rng *rand.Rand
}

// NewRandomPolicy seeds a RandomPolicy.
func NewRandomPolicy(seed int64) *RandomPolicy {
	return &RandomPolicy{rng: rand.New(rand.NewSource(seed))} // #nosec G404 -- baseline only
}

// Act implements Policy.
func (p *RandomPolicy) Act(Observation) Action {
	return Action(p.rng.Intn(ActionSpace.N))
}

// ActionSequence replays a fixed list of actions, repeating the last one once
// the list runs out.
type ActionSequence struct {
	actions []Action
	i       int
}

// NewActionSequence returns a policy that plays actions in order.
func NewActionSequence(actions ...Action) *ActionSequence {
	return &ActionSequence{actions: actions}
}

// Act implements Policy.
func (s *ActionSequence) Act(Observation) Action {
	if len(s.actions) == 0 {
		return ActionRight
	}
	a := s.actions[len(s.actions)-1]
	if s.i < len(s.actions) {
		a = s.actions[s.i]
		s.i++
	}
	return a
}
