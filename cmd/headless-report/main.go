package main

import (
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/pkg/errors"
	"github.com/ttacon/chalk"

	"github.com/piaxar/gym-catcher/internal/catcher"
)

type runStats struct {
	runIndex int
	stats    catcher.EpisodeStats
	log      *catcher.SimLog
}

func main() {
	var runs int
	var seedBase int64
	var seedStep int64
	var policyName string
	var configPath string
	var showLog bool

	flag.IntVar(&runs, "runs", 5, "number of headless episodes")
	flag.Int64Var(&seedBase, "seed-base", 42, "base RNG seed for run 1")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.StringVar(&policyName, "policy", "sensor", "policy to run (sensor, random, left, right)")
	flag.StringVar(&configPath, "config", "", "optional TOML file overriding the default parameters")
	flag.BoolVar(&showLog, "log", false, "print each episode's event log")
	flag.Parse()

	if runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		os.Exit(2)
	}
	cfg := catcher.DefaultConfig()
	if configPath != "" {
		var err error
		if cfg, err = catcher.LoadConfig(configPath); err != nil {
			fmt.Println("error:", err)
			os.Exit(1)
		}
	}

	fmt.Println(chalk.Green.Color("=== Headless Catcher Report ==="))
	fmt.Printf("policy=%s runs=%d seed_base=%d seed_step=%d max_steps=%d max_balls=%d frequency=%d\n\n",
		policyName, runs, seedBase, seedStep, cfg.MaxSteps, cfg.MaxBalls, cfg.Frequency)

	all, err := runEpisodes(cfg, policyName, runs, seedBase, seedStep)
	if err != nil {
		fmt.Println(chalk.Red.Color("error: " + err.Error()))
		os.Exit(1)
	}
	for _, rs := range all {
		printRun(rs, showLog)
	}
	printAggregate(all)
}

func newPolicy(name string, seed int64) (catcher.Policy, error) {
	switch name {
	case "sensor":
		return catcher.SensorPolicy{}, nil
	case "random":
		return catcher.NewRandomPolicy(seed), nil
	case "left":
		return catcher.NewActionSequence(catcher.ActionLeft), nil
	case "right":
		return catcher.NewActionSequence(catcher.ActionRight), nil
	}
	return nil, errors.Errorf("unsupported policy %q (supported: sensor, random, left, right)", name)
}

func runEpisodes(cfg catcher.Config, policyName string, runs int, seedBase, seedStep int64) ([]runStats, error) {
	all := make([]runStats, 0, runs)
	for i := 0; i < runs; i++ {
		seed := seedBase + int64(i)*seedStep
		policy, err := newPolicy(policyName, seed)
		if err != nil {
			return nil, err
		}
		r, err := catcher.NewRunner(
			catcher.WithRunnerConfig(cfg),
			catcher.WithRunnerSeed(seed),
			catcher.WithPolicy(policy),
		)
		if err != nil {
			return nil, err
		}
		stats, err := r.RunEpisode()
		if err != nil {
			return nil, errors.Wrapf(err, "run %d (seed=%d)", i+1, seed)
		}
		all = append(all, runStats{runIndex: i + 1, stats: stats, log: r.SimLog})
	}
	return all, nil
}

func printRun(rs runStats, showLog bool) {
	fmt.Println(chalk.Blue.Color(fmt.Sprintf("--- Run %d (seed=%d) ---", rs.runIndex, rs.stats.Seed)))
	fmt.Println(rs.stats)
	if showLog {
		fmt.Print(rs.log.Format())
	}
	fmt.Println()
}

type aggregate struct {
	runs        int
	avgReward   float64
	bestReward  int
	worstReward int
	medianFirst string
	catchRate   float64
}

func summarize(all []runStats) aggregate {
	agg := aggregate{runs: len(all), medianFirst: "n/a"}
	if len(all) == 0 {
		return agg
	}
	total, caught, resolved := 0, 0, 0
	agg.bestReward = all[0].stats.Reward
	agg.worstReward = all[0].stats.Reward
	var firsts []int
	for _, rs := range all {
		s := rs.stats
		total += s.Reward
		caught += s.Caught
		resolved += s.Caught + s.Missed
		if s.Reward > agg.bestReward {
			agg.bestReward = s.Reward
		}
		if s.Reward < agg.worstReward {
			agg.worstReward = s.Reward
		}
		if s.FirstCatchStep >= 0 {
			firsts = append(firsts, s.FirstCatchStep)
		}
	}
	agg.avgReward = float64(total) / float64(len(all))
	if resolved > 0 {
		agg.catchRate = float64(caught) / float64(resolved)
	}
	if len(firsts) > 0 {
		sort.Ints(firsts)
		agg.medianFirst = fmt.Sprintf("%d", firsts[len(firsts)/2])
	}
	return agg
}

func printAggregate(all []runStats) {
	agg := summarize(all)
	fmt.Println(chalk.Green.Color("=== Aggregate ==="))
	fmt.Printf("runs=%d avg_reward=%.2f best=%d worst=%d catch_rate=%.2f median_first_catch=%s\n",
		agg.runs, agg.avgReward, agg.bestReward, agg.worstReward, agg.catchRate, agg.medianFirst)
}
