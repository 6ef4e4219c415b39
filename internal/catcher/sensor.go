package catcher

import "math"

// Point is a pixel-space coordinate.
type Point struct {
	X, Y float64
}

// Sensor is a fixed-angle proximity ray rooted at the cart.
// Angle is in degrees from the rightward horizontal, 90 = straight up.
type Sensor struct {
	Angle  float64
	Length float64

	// Ray endpoint relative to the anchor.
	DeltaX float64
	DeltaY float64
}

// NewSensor builds a sensor whose ray reaches length pixels upward.
func NewSensor(angle, length float64) Sensor {
	return Sensor{
		Angle:  angle,
		Length: length,
		DeltaX: length / math.Tan(angle*math.Pi/180.0),
		DeltaY: length,
	}
}

// Points returns the ray endpoints relative to the anchor.
func (s Sensor) Points() (Point, Point) {
	return Point{}, Point{X: s.DeltaX, Y: s.DeltaY}
}

// Endpoints returns the ray endpoints once the sensor is moved to anchor.
func (s Sensor) Endpoints(anchor Point) (Point, Point) {
	return anchor, Point{X: anchor.X + s.DeltaX, Y: anchor.Y + s.DeltaY}
}

// line returns the implicit form a*x + b*y + c = 0 of the line through the
// anchored ray.
func (s Sensor) line(anchor Point) (a, b, c float64) {
	p, q := s.Endpoints(anchor)
	a = p.Y - q.Y
	b = q.X - p.X
	c = -a*p.X - b*p.Y
	return a, b, c
}

// Activated reports whether any ball lies within its radius of the sensor
// line. The line is unbounded: balls behind the cart or past the ray's end
// also trigger it.
func (s Sensor) Activated(anchor Point, balls []Ball) bool {
	a, b, c := s.line(anchor)
	for i := range balls {
		if lineTouchesCircle(a, b, c, balls[i].X, balls[i].Y, balls[i].Radius) {
			return true
		}
	}
	return false
}

// lineTouchesCircle reports whether the perpendicular distance from (x,y) to
// the line a*x + b*y + c = 0 is within radius.
func lineTouchesCircle(a, b, c, x, y, radius float64) bool {
	dist := math.Abs(a*x+b*y+c) / math.Sqrt(a*a+b*b)
	return radius >= dist
}

// NewSensorFan builds the sensor array for cfg in construction order.
func NewSensorFan(cfg Config) []Sensor {
	angles := cfg.SensorAngles()
	sensors := make([]Sensor, len(angles))
	for i, a := range angles {
		sensors[i] = NewSensor(a, cfg.ScreenHeight)
	}
	return sensors
}
