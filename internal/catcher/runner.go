package catcher

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Runner drives an Env with a Policy for whole episodes, headless, and keeps a
// SimLog of what happened.
type Runner struct {
	Env    *Env
	Policy Policy
	SimLog *SimLog

	// Trajectory holds every StepResult of the last episode when recording.
	Trajectory []StepResult

	cfg     Config
	seed    int64
	record  bool
	verbose bool
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithRunnerConfig replaces DefaultConfig.
func WithRunnerConfig(cfg Config) RunnerOption {
	return func(r *Runner) {
		r.cfg = cfg
	}
}

// WithRunnerSeed sets the environment seed.
func WithRunnerSeed(seed int64) RunnerOption {
	return func(r *Runner) {
		r.seed = seed
	}
}

// WithPolicy sets the acting policy. The default is SensorPolicy.
func WithPolicy(p Policy) RunnerOption {
	return func(r *Runner) {
		r.Policy = p
	}
}

// WithRecording keeps the per-step trajectory.
func WithRecording(on bool) RunnerOption {
	return func(r *Runner) {
		r.record = on
	}
}

// WithVerbose enables per-step log entries.
func WithVerbose(v bool) RunnerOption {
	return func(r *Runner) {
		r.verbose = v
	}
}

// NewRunner builds a Runner and its Env.
func NewRunner(opts ...RunnerOption) (*Runner, error) {
	r := &Runner{
		cfg:    DefaultConfig(),
		seed:   1,
		Policy: SensorPolicy{},
	}
	for _, o := range opts {
		o(r)
	}
	r.SimLog = NewSimLog(r.verbose)
	env, err := NewEnv(r.cfg, WithSeed(r.seed), WithSimLog(r.SimLog))
	if err != nil {
		return nil, errors.Wrap(err, "could not build runner env")
	}
	r.Env = env
	return r, nil
}

// RunEpisode resets the Env and steps it until Done.
func (r *Runner) RunEpisode() (EpisodeStats, error) {
	r.SimLog.Reset()
	r.Trajectory = r.Trajectory[:0]
	obs := r.Env.Reset()
	stats := EpisodeStats{Seed: r.seed, FirstCatchStep: -1}
	for {
		res, err := r.Env.Step(r.Policy.Act(obs))
		if err != nil {
			return stats, errors.Wrapf(err, "step %d", r.Env.Clock()+1)
		}
		stats.add(r.Env.Clock(), res)
		if r.record {
			r.Trajectory = append(r.Trajectory, res)
		}
		obs = res.Observation
		if res.Done {
			return stats, nil
		}
	}
}

// EpisodeStats summarises one episode.
type EpisodeStats struct {
	Seed           int64
	Steps          int
	Reward         int
	Caught         int
	Missed         int
	Spawned        int
	FirstCatchStep int // -1 when nothing was caught
}

func (s *EpisodeStats) add(step int, res StepResult) {
	s.Steps = step
	s.Reward += res.Reward
	s.Spawned += len(res.Spawned)
	for _, rm := range res.Removed {
		if rm.Caught {
			s.Caught++
			if s.FirstCatchStep < 0 {
				s.FirstCatchStep = step
			}
		} else {
			s.Missed++
		}
	}
}

// CatchRate is caught over resolved balls; 0 when none were resolved.
func (s EpisodeStats) CatchRate() float64 {
	resolved := s.Caught + s.Missed
	if resolved == 0 {
		return 0
	}
	return float64(s.Caught) / float64(resolved)
}

// String formats the stats as one report line.
func (s EpisodeStats) String() string {
	return fmt.Sprintf("seed=%d steps=%d reward=%d caught=%d missed=%d spawned=%d catch_rate=%.2f first_catch=%d",
		s.Seed, s.Steps, s.Reward, s.Caught, s.Missed, s.Spawned, s.CatchRate(), s.FirstCatchStep)
}

// FormatStats renders a block of episode lines plus an aggregate line.
func FormatStats(all []EpisodeStats) string {
	var sb strings.Builder
	totalReward, totalCaught, totalMissed := 0, 0, 0
	for i, s := range all {
		fmt.Fprintf(&sb, "%3d  %s\n", i+1, s)
		totalReward += s.Reward
		totalCaught += s.Caught
		totalMissed += s.Missed
	}
	if len(all) == 0 {
		return sb.String()
	}
	rate := 0.0
	if totalCaught+totalMissed > 0 {
		rate = float64(totalCaught) / float64(totalCaught+totalMissed)
	}
	fmt.Fprintf(&sb, "avg_reward=%.2f total_caught=%d total_missed=%d catch_rate=%.2f\n",
		float64(totalReward)/float64(len(all)), totalCaught, totalMissed, rate)
	return sb.String()
}
