package catcher

import "math"

// Ball is a falling ball in screen space: y starts at the screen height and
// decreases towards the ground at y = 0.
type Ball struct {
	Radius          float64
	X, Y            float64
	HorizontalSpeed float64
	VerticalSpeed   float64

	screenWidth float64
}

// NewBall places a ball at the top of the screen at x.
func NewBall(radius, horizontalSpeed, verticalSpeed, screenWidth, screenHeight, x float64) Ball {
	return Ball{
		Radius:          radius,
		X:               x,
		Y:               screenHeight,
		HorizontalSpeed: horizontalSpeed,
		VerticalSpeed:   verticalSpeed,
		screenWidth:     screenWidth,
	}
}

// Fall advances the ball one step and bounces it off the side walls.
func (b *Ball) Fall() {
	b.Y -= b.VerticalSpeed
	b.X += b.HorizontalSpeed

	if b.X <= b.Radius || b.X >= b.screenWidth-b.Radius {
		b.HorizontalSpeed = -b.HorizontalSpeed
	}
}

// GroundTouched reports whether the ball has dropped below the ground.
func (b *Ball) GroundTouched() bool {
	return b.Y < 0
}

// CollidesCart reports whether the ball overlaps a cart centred at cartX.
// Touching edges count as a catch.
func (b *Ball) CollidesCart(cartX, cartWidth, cartHeight float64) bool {
	if b.Y-b.Radius > cartHeight {
		return false
	}
	return math.Abs(cartX-b.X) <= cartWidth/2+b.Radius
}
