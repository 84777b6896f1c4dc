package main

import (
	"math"
	"math/rand"

	"github.com/google/uuid"
)

// NewSessionID returns a random transport session identifier
func NewSessionID() string {
	return uuid.NewString()
}

// Clamp restricts v to [min, max]
func Clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// Distance returns the distance between two points
func Distance(x1, y1, x2, y2 float64) float64 {
	return math.Hypot(x2-x1, y2-y1)
}

// ClampSpeed scales (vx, vy) down to max length, preserving direction
func ClampSpeed(vx, vy, max float64) (float64, float64) {
	speed := math.Hypot(vx, vy)
	if speed > max && speed > 0 {
		scale := max / speed
		return vx * scale, vy * scale
	}
	return vx, vy
}

// ClampMagnitude limits |v| to max, keeping the sign
func ClampMagnitude(v, max float64) float64 {
	if math.Abs(v) > max {
		return math.Copysign(max, v)
	}
	return v
}

// NormalizeAngle wraps angle to [-PI, PI]
func NormalizeAngle(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a < -math.Pi {
		a += 2 * math.Pi
	}
	return a
}

// randRange returns a uniform float64 in [min, max)
func randRange(rng *rand.Rand, min, max float64) float64 {
	return min + rng.Float64()*(max-min)
}

// round1 rounds to one decimal for compact snapshots
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// round2 rounds to two decimals (angles)
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
