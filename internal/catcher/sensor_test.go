package catcher

import (
	"math"
	"testing"
)

func TestNewSensor_StraightUp(t *testing.T) {
	s := NewSensor(90, 700)
	if math.Abs(s.DeltaX) > 1e-9 {
		t.Fatalf("vertical sensor should have ~0 delta x, got %g", s.DeltaX)
	}
	if s.DeltaY != 700 {
		t.Fatalf("delta y should equal the ray length, got %.1f", s.DeltaY)
	}
}

func TestNewSensor_Diagonal(t *testing.T) {
	s := NewSensor(45, 700)
	if math.Abs(s.DeltaX-700) > 1e-9 {
		t.Fatalf("45° sensor should reach x=700, got %.6f", s.DeltaX)
	}
	s = NewSensor(135, 700)
	if math.Abs(s.DeltaX+700) > 1e-9 {
		t.Fatalf("135° sensor should reach x=-700, got %.6f", s.DeltaX)
	}
}

func TestSensor_Points_RelativeToAnchor(t *testing.T) {
	s := NewSensor(45, 100)
	from, to := s.Points()
	if from != (Point{}) {
		t.Fatalf("ray should start at the origin, got %+v", from)
	}
	if math.Abs(to.X-100) > 1e-9 || to.Y != 100 {
		t.Fatalf("unexpected ray end %+v", to)
	}
	af, at := s.Endpoints(Point{X: 10, Y: 5})
	if af.X != 10 || af.Y != 5 || math.Abs(at.X-110) > 1e-9 || at.Y != 105 {
		t.Fatalf("anchored endpoints wrong: %+v %+v", af, at)
	}
}

func TestSensor_Activated_WithinRadius(t *testing.T) {
	s := NewSensor(90, 700)
	anchor := Point{X: 300, Y: 15}
	near := []Ball{{Radius: 25, X: 320, Y: 400}}
	if !s.Activated(anchor, near) {
		t.Fatal("ball 20px from the ray should activate it")
	}
	far := []Ball{{Radius: 25, X: 330, Y: 400}}
	if s.Activated(anchor, far) {
		t.Fatal("ball 30px from the ray should not activate it")
	}
}

func TestSensor_Activated_Diagonal(t *testing.T) {
	s := NewSensor(45, 700)
	if !s.Activated(Point{}, []Ball{{Radius: 25, X: 100, Y: 100}}) {
		t.Fatal("ball centred on the y=x line should activate")
	}
	if s.Activated(Point{}, []Ball{{Radius: 25, X: 100, Y: 0}}) {
		t.Fatal("ball ~70px off the line should not activate")
	}
}

func TestSensor_Activated_LineIsUnbounded(t *testing.T) {
	s := NewSensor(90, 700)
	anchor := Point{X: 300, Y: 15}
	behind := []Ball{{Radius: 25, X: 300, Y: -200}}
	if !s.Activated(anchor, behind) {
		t.Fatal("a ball behind the anchor on the same line still activates")
	}
	beyond := []Ball{{Radius: 25, X: 300, Y: 5000}}
	if !s.Activated(anchor, beyond) {
		t.Fatal("a ball past the ray end on the same line still activates")
	}
}

func TestSensor_Activated_AnyBall(t *testing.T) {
	s := NewSensor(90, 700)
	anchor := Point{X: 300, Y: 15}
	balls := []Ball{
		{Radius: 25, X: 100, Y: 400},
		{Radius: 25, X: 500, Y: 400},
		{Radius: 25, X: 305, Y: 200},
	}
	if !s.Activated(anchor, balls) {
		t.Fatal("third ball is on the ray; sensor should activate")
	}
	if s.Activated(anchor, nil) {
		t.Fatal("no balls means no activation")
	}
}

func TestNewSensorFan_DefaultAngles(t *testing.T) {
	sensors := NewSensorFan(DefaultConfig())
	if len(sensors) != 7 {
		t.Fatalf("expected 7 sensors, got %d", len(sensors))
	}
	want := []float64{67.5, 75, 82.5, 90, 97.5, 105, 112.5}
	for i, s := range sensors {
		if math.Abs(s.Angle-want[i]) > 1e-9 {
			t.Fatalf("sensor %d: expected angle %.1f, got %.4f", i, want[i], s.Angle)
		}
		if s.Length != 700 {
			t.Fatalf("sensor %d: ray length should be the screen height, got %.1f", i, s.Length)
		}
	}
	if sensors[0].DeltaX <= 0 || sensors[6].DeltaX >= 0 {
		t.Fatalf("low angles lean right, high angles lean left: %.1f %.1f", sensors[0].DeltaX, sensors[6].DeltaX)
	}
}

func TestNewSensorFan_SingleSensorPointsUp(t *testing.T) {
	cfg := DefaultConfig()
	cfg.NSensors = 1
	sensors := NewSensorFan(cfg)
	if len(sensors) != 1 || sensors[0].Angle != 90 {
		t.Fatalf("single sensor should point straight up, got %+v", sensors)
	}
	if math.IsNaN(sensors[0].DeltaX) || math.IsInf(sensors[0].DeltaX, 0) {
		t.Fatalf("single sensor geometry must be finite, got %g", sensors[0].DeltaX)
	}
}
