package catcher

import (
	"io"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// Config holds every tunable of the simulation. The zero value is not usable;
// start from DefaultConfig.
type Config struct {
	// Screen, in pixels.
	ScreenWidth  float64 `toml:"screen_width"`
	ScreenHeight float64 `toml:"screen_height"`

	// Cart (paddle).
	CartWidth       float64 `toml:"cart_width"`
	CartHeight      float64 `toml:"cart_height"`
	CartMovingSpeed float64 `toml:"cart_moving_speed"` // pixels per action, halved into world units
	Threshold       float64 `toml:"threshold"`         // world-space half width of the track

	// Sensors.
	NSensors    int     `toml:"n_sensors"`
	VisionAngle float64 `toml:"vision_angle"` // degrees, total fan width centred on straight up

	// Falling balls.
	BallRadius             float64 `toml:"ball_radius"`
	Frequency              int     `toml:"frequency"` // a ball spawns every Frequency steps
	MaxBalls               int     `toml:"max_balls"` // ceiling on balls alive at once
	BallMaxHorizontalSpeed float64 `toml:"ball_max_horizontal_speed"`
	BallMinVerticalSpeed   float64 `toml:"ball_min_vertical_speed"`
	BallMaxVerticalSpeed   float64 `toml:"ball_max_vertical_speed"`
	SpawnSpread            float64 `toml:"spawn_spread"` // half-width of the spawn band, fraction of ScreenWidth

	// Episode.
	MaxSteps int `toml:"max_steps"` // done once the clock passes this
}

// DefaultConfig returns the stock environment parameters.
func DefaultConfig() Config {
	return Config{
		ScreenWidth:            600,
		ScreenHeight:           700,
		CartWidth:              50,
		CartHeight:             30,
		CartMovingSpeed:        50,
		Threshold:              2.4,
		NSensors:               7,
		VisionAngle:            45,
		BallRadius:             25,
		Frequency:              5,
		MaxBalls:               10,
		BallMaxHorizontalSpeed: 5,
		BallMinVerticalSpeed:   30,
		BallMaxVerticalSpeed:   49,
		SpawnSpread:            1.0 / 3.0,
		MaxSteps:               100,
	}
}

// LoadConfig decodes a TOML file on top of DefaultConfig. Keys missing from
// the file keep their defaults; unknown keys are an error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, errors.Wrapf(err, "could not decode config (%s)", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, errors.Wrapf(ErrInvalidConfig, "unknown keys in %s: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, errors.Wrapf(err, "config %s", path)
	}
	return cfg, nil
}

// Encode writes the config as TOML.
func (c Config) Encode(w io.Writer) error {
	return errors.Wrap(toml.NewEncoder(w).Encode(c), "could not encode config")
}

// Validate reports the first parameter that would make the simulation
// ill-defined.
func (c Config) Validate() error {
	switch {
	case c.ScreenWidth <= 0 || c.ScreenHeight <= 0:
		return errors.Wrapf(ErrInvalidConfig, "screen must be positive, got %vx%v", c.ScreenWidth, c.ScreenHeight)
	case c.CartWidth <= 0 || c.CartHeight <= 0:
		return errors.Wrapf(ErrInvalidConfig, "cart must be positive, got %vx%v", c.CartWidth, c.CartHeight)
	case c.Threshold <= 0:
		return errors.Wrapf(ErrInvalidConfig, "threshold must be positive, got %v", c.Threshold)
	case c.CartMovingSpeed < 0:
		return errors.Wrapf(ErrInvalidConfig, "cart moving speed must not be negative, got %v", c.CartMovingSpeed)
	case c.NSensors < 1:
		return errors.Wrapf(ErrInvalidConfig, "need at least one sensor, got %d", c.NSensors)
	case c.VisionAngle < 0 || c.VisionAngle >= 180:
		return errors.Wrapf(ErrInvalidConfig, "vision angle must be in [0, 180), got %v", c.VisionAngle)
	case c.BallRadius < 0:
		return errors.Wrapf(ErrInvalidConfig, "ball radius must not be negative, got %v", c.BallRadius)
	case c.Frequency < 1:
		return errors.Wrapf(ErrInvalidConfig, "frequency must be at least 1, got %d", c.Frequency)
	case c.MaxBalls < 0:
		return errors.Wrapf(ErrInvalidConfig, "max balls must not be negative, got %d", c.MaxBalls)
	case c.BallMaxHorizontalSpeed < 0:
		return errors.Wrapf(ErrInvalidConfig, "max horizontal speed must not be negative, got %v", c.BallMaxHorizontalSpeed)
	case c.BallMinVerticalSpeed > c.BallMaxVerticalSpeed:
		return errors.Wrapf(ErrInvalidConfig, "min vertical speed %v exceeds max %v", c.BallMinVerticalSpeed, c.BallMaxVerticalSpeed)
	case c.SpawnSpread < 0:
		return errors.Wrapf(ErrInvalidConfig, "spawn spread must not be negative, got %v", c.SpawnSpread)
	case c.MaxSteps < 0:
		return errors.Wrapf(ErrInvalidConfig, "max steps must not be negative, got %d", c.MaxSteps)
	}
	return nil
}

// Scale is pixels per world unit.
func (c Config) Scale() float64 {
	return c.ScreenWidth / (2 * c.Threshold)
}

// StepSize is the world-space distance the cart covers per action: half its
// moving speed, converted from pixels.
func (c Config) StepSize() float64 {
	return c.CartMovingSpeed / (2 * c.Scale())
}

// CartPixelX converts a world position to the cart's pixel-space centre.
func (c Config) CartPixelX(position float64) float64 {
	return position*c.Scale() + c.ScreenWidth/2
}

// SensorAnchorY is the pixel height every sensor ray starts from.
func (c Config) SensorAnchorY() float64 {
	return c.CartHeight / 2
}

// SensorAngles returns the fan of sensor angles in construction order
// (increasing angle). A single sensor points straight up.
func (c Config) SensorAngles() []float64 {
	angles := make([]float64, c.NSensors)
	if c.NSensors == 1 {
		angles[0] = 90
		return angles
	}
	step := c.VisionAngle / float64(c.NSensors-1)
	for i := range angles {
		angles[i] = 90 - c.VisionAngle/2 + step*float64(i)
	}
	return angles
}
