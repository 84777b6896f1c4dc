package main

import "math/rand"

// Powerup is a collectible that grants a weapon or shield
type Powerup struct {
	ID        EntityID
	Type      PowerupType
	X, Y      float64
	Collected bool
}

// powerupSpawner drops powerups at a fixed interval up to a cap
type powerupSpawner struct {
	interval float64
	max      int
	timer    float64
}

func newPowerupSpawner(cfg ArenaConfig) powerupSpawner {
	return powerupSpawner{
		interval: cfg.PowerupInterval,
		max:      cfg.MaxPowerups,
		timer:    cfg.PowerupInterval,
	}
}

// Due counts down dt seconds and reports whether a powerup should spawn now
func (s *powerupSpawner) Due(dt float64, count int) bool {
	if s.interval <= 0 || count >= s.max {
		return false
	}
	s.timer -= dt
	if s.timer > 0 {
		return false
	}
	s.timer = s.interval
	return true
}

// randomPowerupType rolls one of PowerupTypes
func randomPowerupType(rng *rand.Rand) PowerupType {
	return PowerupTypes[rng.Intn(len(PowerupTypes))]
}

// ToState converts to protocol state
func (p *Powerup) ToState() PowerupState {
	return PowerupState{
		ID:   p.ID,
		Type: p.Type,
		X:    round1(p.X),
		Y:    round1(p.Y),
	}
}
