// Package viewer draws a catcher.Env in an ebiten window. It only reads
// snapshots; the simulation never calls into it.
package viewer

import (
	"fmt"
	"image/color"

	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/piaxar/gym-catcher/internal/catcher"
)

const (
	// defaultFramesPerStep paces the simulation: 60 fps / 6 ~ the original 0.09s per render.
	defaultFramesPerStep = 6

	sensorWidthIdle   = 1
	sensorWidthActive = 5
)

var (
	backgroundColor = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	cartColor       = color.RGBA{R: 204, G: 153, B: 102, A: 255}
	sensorColor     = color.RGBA{R: 40, G: 40, B: 40, A: 255}
	hudColor        = color.RGBA{R: 20, G: 20, B: 20, A: 255}
)

// Viewer is an ebiten.Game over a catcher environment. In manual mode the
// arrow keys choose the action and the sim only advances while one is held;
// with autopilot on, the policy acts every step.
type Viewer struct {
	env    *catcher.Env
	cfg    catcher.Config
	log    *catcher.SimLog
	policy catcher.Policy
	obs    catcher.Observation

	autopilot     bool
	paused        bool
	framesPerStep int
	frame         int
	prevKeys      map[ebiten.Key]bool

	// Presentation objects keyed by arena handle.
	ballColors map[catcher.BallID]color.RGBA

	episode     int
	reward      int
	bestReward  int
	status      string
	statusTicks int

	face   text.Face
	closed bool
}

// Option configures a Viewer.
type Option func(*Viewer)

// WithPolicy sets the autopilot policy. The default is catcher.SensorPolicy.
func WithPolicy(p catcher.Policy) Option {
	return func(v *Viewer) {
		v.policy = p
	}
}

// WithAutopilot starts the viewer with the policy in control.
func WithAutopilot(on bool) Option {
	return func(v *Viewer) {
		v.autopilot = on
	}
}

// WithFramesPerStep sets how many frames pass between simulation steps.
func WithFramesPerStep(n int) Option {
	return func(v *Viewer) {
		if n > 0 {
			v.framesPerStep = n
		}
	}
}

// New wraps env, resetting it. log may be nil; when set, the C key copies it
// to the clipboard.
func New(env *catcher.Env, log *catcher.SimLog, opts ...Option) *Viewer {
	v := &Viewer{
		env:           env,
		cfg:           env.Config(),
		log:           log,
		policy:        catcher.SensorPolicy{},
		framesPerStep: defaultFramesPerStep,
		prevKeys:      make(map[ebiten.Key]bool),
		ballColors:    make(map[catcher.BallID]color.RGBA),
		episode:       1,
	}
	for _, o := range opts {
		o(v)
	}
	v.obs = env.Reset()
	return v
}

// WindowSize returns the window dimensions for the environment's screen.
func (v *Viewer) WindowSize() (int, int) {
	return int(v.cfg.ScreenWidth), int(v.cfg.ScreenHeight)
}

// Update implements ebiten.Game.
func (v *Viewer) Update() error {
	if v.closed {
		return ebiten.Termination
	}
	if v.handleInput() {
		return ebiten.Termination
	}
	if v.statusTicks > 0 {
		v.statusTicks--
	}
	if v.paused {
		return nil
	}
	v.frame++
	if v.frame%v.framesPerStep != 0 {
		return nil
	}

	action, ok := v.chooseAction(readInput())
	if !ok {
		return nil
	}
	return v.advance(action)
}

// input is the per-frame key state the action choice depends on.
type input struct {
	left, right bool
}

func readInput() input {
	return input{
		left:  ebiten.IsKeyPressed(ebiten.KeyArrowLeft) || ebiten.IsKeyPressed(ebiten.KeyA),
		right: ebiten.IsKeyPressed(ebiten.KeyArrowRight) || ebiten.IsKeyPressed(ebiten.KeyD),
	}
}

// chooseAction returns the next action, or false to hold the sim this frame.
func (v *Viewer) chooseAction(in input) (catcher.Action, bool) {
	if v.autopilot {
		return v.policy.Act(v.obs), true
	}
	switch {
	case in.left && !in.right:
		return catcher.ActionLeft, true
	case in.right && !in.left:
		return catcher.ActionRight, true
	}
	return 0, false
}

// advance steps the env once and syncs presentation state.
func (v *Viewer) advance(action catcher.Action) error {
	res, err := v.env.Step(action)
	if err != nil {
		return err
	}
	v.applyStep(res)
	if res.Done {
		v.endEpisode()
	}
	return nil
}

func (v *Viewer) applyStep(res catcher.StepResult) {
	v.obs = res.Observation
	v.reward += res.Reward
	for _, id := range res.Spawned {
		v.ballColors[id] = ballColor(id)
	}
	for _, rm := range res.Removed {
		delete(v.ballColors, rm.ID)
	}
}

func (v *Viewer) endEpisode() {
	if v.reward > v.bestReward {
		v.bestReward = v.reward
	}
	v.setStatus(fmt.Sprintf("episode %d: caught %d", v.episode, v.reward))
	v.episode++
	v.reset()
}

func (v *Viewer) reset() {
	v.reward = 0
	v.obs = v.env.Reset()
	for id := range v.ballColors {
		delete(v.ballColors, id)
	}
}

func (v *Viewer) setStatus(s string) {
	v.status = s
	v.statusTicks = 180
}

// handleInput processes edge-triggered toggles. It returns true on quit.
func (v *Viewer) handleInput() bool {
	currentKeys := map[ebiten.Key]bool{}
	pressed := func(k ebiten.Key) bool {
		currentKeys[k] = ebiten.IsKeyPressed(k)
		return currentKeys[k] && !v.prevKeys[k]
	}
	defer func() { v.prevKeys = currentKeys }()

	if pressed(ebiten.KeyEscape) || pressed(ebiten.KeyQ) {
		return true
	}
	// P: toggle autopilot.
	if pressed(ebiten.KeyP) {
		v.autopilot = !v.autopilot
	}
	// Space: pause.
	if pressed(ebiten.KeySpace) {
		v.paused = !v.paused
	}
	// R: restart the episode.
	if pressed(ebiten.KeyR) {
		v.reset()
		v.setStatus("episode restarted")
	}
	// C: copy the event log.
	if pressed(ebiten.KeyC) {
		v.copyLog()
	}
	// +/-: sim speed.
	if pressed(ebiten.KeyEqual) && v.framesPerStep > 1 {
		v.framesPerStep--
	}
	if pressed(ebiten.KeyMinus) && v.framesPerStep < 60 {
		v.framesPerStep++
	}
	return false
}

func (v *Viewer) copyLog() {
	if v.log == nil {
		v.setStatus("no event log attached")
		return
	}
	if err := clipboard.WriteAll(v.log.Format()); err != nil {
		v.setStatus("clipboard: " + err.Error())
		return
	}
	v.setStatus(fmt.Sprintf("copied %d log entries", len(v.log.Entries())))
}

// Draw implements ebiten.Game.
func (v *Viewer) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	snap := v.env.Snapshot()

	for _, s := range snap.Sensors {
		width := float32(sensorWidthIdle)
		if s.Active {
			width = sensorWidthActive
		}
		x0, y0 := v.toScreen(s.From)
		x1, y1 := v.toScreen(s.To)
		vector.StrokeLine(screen, x0, y0, x1, y1, width, sensorColor, true)
	}

	cx, cy := v.toScreen(catcher.Point{X: snap.CartX - v.cfg.CartWidth/2, Y: v.cfg.CartHeight})
	vector.FillRect(screen, cx, cy, float32(v.cfg.CartWidth), float32(v.cfg.CartHeight), cartColor, false)

	for _, b := range snap.Balls {
		clr, ok := v.ballColors[b.ID]
		if !ok {
			clr = ballColor(b.ID)
		}
		bx, by := v.toScreen(catcher.Point{X: b.X, Y: b.Y})
		vector.FillCircle(screen, bx, by, float32(b.Radius), clr, true)
	}

	v.drawHUD(screen, snap)
}

func (v *Viewer) drawHUD(screen *ebiten.Image, snap catcher.Snapshot) {
	if v.face == nil {
		v.face = text.NewGoXFace(basicfont.Face7x13)
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(10, 8)
	op.ColorScale.ScaleWithColor(hudColor)
	text.Draw(screen, fmt.Sprintf("episode %d  step %d/%d  caught %d  best %d",
		v.episode, snap.Clock, v.cfg.MaxSteps, v.reward, v.bestReward), v.face, op)

	mode := "manual"
	if v.autopilot {
		mode = "autopilot"
	}
	if v.paused {
		mode += " (paused)"
	}
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("[%s] arrows move  P autopilot  SPACE pause  R restart  C copy log", mode), 10, 26)
	if v.statusTicks > 0 {
		ebitenutil.DebugPrintAt(screen, v.status, 10, 42)
	}
}

// toScreen flips world-up pixel coordinates into ebiten's y-down space.
func (v *Viewer) toScreen(p catcher.Point) (float32, float32) {
	return float32(p.X), float32(v.cfg.ScreenHeight - p.Y)
}

// Layout implements ebiten.Game.
func (v *Viewer) Layout(_, _ int) (int, int) {
	return v.WindowSize()
}

// Close drops presentation state and closes the env.
func (v *Viewer) Close() error {
	if v.closed {
		return nil
	}
	v.closed = true
	for id := range v.ballColors {
		delete(v.ballColors, id)
	}
	return v.env.Close()
}

// ballColor is a stable per-ball tint: fixed red/green, blue varying by handle.
func ballColor(id catcher.BallID) color.RGBA {
	blue := uint8((uint64(id) * 97) % 256)
	return color.RGBA{R: 179, G: 77, B: blue, A: 255}
}
