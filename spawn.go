package main

import "math/rand"

// SpawnPlacer finds spawn positions clear of obstacles and other players
type SpawnPlacer struct {
	width, height float64
	margin        float64
	safety        float64 // disc radius that must not touch an obstacle
	separation    float64 // minimum distance to any other alive player
	attempts      int
	rng           *rand.Rand
}

// NewSpawnPlacer creates a placer for an arena. rng must not be shared across goroutines.
func NewSpawnPlacer(cfg ArenaConfig, rng *rand.Rand) *SpawnPlacer {
	attempts := cfg.MaxSpawnAttempts
	if attempts <= 0 {
		attempts = 1
	}
	return &SpawnPlacer{
		width:      cfg.Width,
		height:     cfg.Height,
		margin:     cfg.SpawnMargin,
		safety:     cfg.SpawnSafetyRadius,
		separation: cfg.MinSpawnSeparation,
		attempts:   attempts,
		rng:        rng,
	}
}

// IsSafe reports whether (x, y) is a valid spawn point
func (s *SpawnPlacer) IsSafe(x, y float64, obstacles []Obstacle, players []*Player) bool {
	if _, hit := CircleHitsAny(x, y, s.safety, obstacles); hit {
		return false
	}
	for _, p := range players {
		if !p.Alive {
			continue
		}
		if Distance(p.X, p.Y, x, y) < s.separation {
			return false
		}
	}
	return true
}

// SafeSpawn rejection-samples the inset arena. When every attempt fails the last
// sample is returned with ok=false; callers place the player there anyway.
func (s *SpawnPlacer) SafeSpawn(obstacles []Obstacle, players []*Player) (x, y float64, ok bool) {
	for i := 0; i < s.attempts; i++ {
		x = randRange(s.rng, s.margin, s.width-s.margin)
		y = randRange(s.rng, s.margin, s.height-s.margin)
		if s.IsSafe(x, y, obstacles, players) {
			return x, y, true
		}
	}
	return x, y, false
}

// MidlineSpawn samples only x and places the player at half height
func (s *SpawnPlacer) MidlineSpawn(obstacles []Obstacle, players []*Player) (x, y float64, ok bool) {
	y = s.height / 2
	for i := 0; i < s.attempts; i++ {
		x = randRange(s.rng, s.margin, s.width-s.margin)
		if s.IsSafe(x, y, obstacles, players) {
			return x, y, true
		}
	}
	return x, y, false
}
