package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/piaxar/gym-catcher/internal/catcher"
	"github.com/piaxar/gym-catcher/internal/viewer"
)

func main() {
	var configPath string
	var seed int64
	var autopilot bool
	var framesPerStep int

	flag.StringVar(&configPath, "config", "", "optional TOML file overriding the default parameters")
	flag.Int64Var(&seed, "seed", 1, "RNG seed")
	flag.BoolVar(&autopilot, "autopilot", false, "start with the sensor policy in control")
	flag.IntVar(&framesPerStep, "frames-per-step", 6, "frames between simulation steps")
	flag.Parse()

	cfg := catcher.DefaultConfig()
	if configPath != "" {
		var err error
		if cfg, err = catcher.LoadConfig(configPath); err != nil {
			log.Fatal(err)
		}
	}

	simLog := catcher.NewSimLog(false)
	env, err := catcher.NewEnv(cfg, catcher.WithSeed(seed), catcher.WithSimLog(simLog))
	if err != nil {
		log.Fatal(err)
	}
	v := viewer.New(env, simLog, viewer.WithAutopilot(autopilot), viewer.WithFramesPerStep(framesPerStep))
	defer v.Close()

	w, h := v.WindowSize()
	ebiten.SetWindowTitle("Catcher")
	ebiten.SetWindowSize(w, h)
	if err := ebiten.RunGame(v); err != nil {
		log.Fatal(err)
	}
}
