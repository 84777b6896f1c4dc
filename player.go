package main

import (
	"math"
	"math/rand"
)

// playerColors is the palette handed out at join
var playerColors = []string{"#e74c3c", "#3498db", "#2ecc71", "#f1c40f", "#9b59b6", "#e67e22", "#1abc9c"}

// Player represents a player in the arena
type Player struct {
	ID        EntityID
	SessionID string
	Name      string
	Color     string
	X, Y      float64
	Radius    float64
	Body      Body
	Health    int
	Score     int
	Alive     bool

	Weapon      WeaponType
	WeaponTimer float64 // seconds left on a weapon powerup
	Shielded    bool
	ShieldTimer float64 // seconds left on the shield

	Cooldown     float64 // steps until the next shot
	RespawnTimer float64 // seconds until respawn (timed-respawn arenas)

	input     Input // latest staged input
	fireLatch bool  // fire seen since the last tick
}

// NewPlayer creates a player at (x, y) with the default loadout
func NewPlayer(id EntityID, sessionID, name string, cfg ArenaConfig, rng *rand.Rand) *Player {
	p := &Player{
		ID:        id,
		SessionID: sessionID,
		Name:      name,
		Color:     playerColors[rng.Intn(len(playerColors))],
		Radius:    cfg.PlayerRadius(),
		Health:    cfg.PlayerHealth,
		Alive:     true,
		Weapon:    WeaponNormal,
	}
	if cfg.Mode == ModeTank {
		p.Body.Angle = rng.Float64() * math.Pi * 2
	}
	return p
}

// Stage records the latest input. Fire presses are latched until the next tick.
func (p *Player) Stage(in Input) {
	p.input = in
	if in.Fire {
		p.fireLatch = true
	}
}

// takeInput returns the input for this tick and clears the fire latch
func (p *Player) takeInput() Input {
	in := p.input
	in.Fire = in.Fire || p.fireLatch
	p.fireLatch = false
	return in
}

// ResetKinematics zeroes velocities and turret state and points the body at angle
func (p *Player) ResetKinematics(angle float64) {
	p.Body = Body{Angle: angle}
}

// ResetLoadout restores health, weapon, shield and cooldown
func (p *Player) ResetLoadout(cfg ArenaConfig) {
	p.Health = cfg.PlayerHealth
	p.Weapon = WeaponNormal
	p.WeaponTimer = 0
	p.Shielded = false
	p.ShieldTimer = 0
	p.Cooldown = 0
}

// Penalize decrements the score, never below zero
func (p *Player) Penalize() {
	p.Score = max(0, p.Score-1)
}

// Die marks the player dead and starts the respawn countdown
func (p *Player) Die(respawnTime float64) {
	p.Alive = false
	p.Health = 0
	p.RespawnTimer = respawnTime
	p.Body.VX = 0
	p.Body.VY = 0
}

// TakeDamage reduces health and returns true if the player died
func (p *Player) TakeDamage(dmg int) bool {
	if !p.Alive {
		return false
	}
	p.Health -= dmg
	if p.Health <= 0 {
		p.Health = 0
		return true
	}
	return false
}

// CanFire returns true if the player can fire a projectile
func (p *Player) CanFire(in Input) bool {
	return p.Alive && in.Fire && p.Cooldown <= 0
}

// TickPowers counts down weapon and shield timers by dt seconds
func (p *Player) TickPowers(dt float64) {
	if p.WeaponTimer > 0 {
		p.WeaponTimer -= dt
		if p.WeaponTimer <= 0 {
			p.WeaponTimer = 0
			p.Weapon = WeaponNormal
		}
	}
	if p.Shielded {
		p.ShieldTimer -= dt
		if p.ShieldTimer <= 0 {
			p.ShieldTimer = 0
			p.Shielded = false
		}
	}
}

// ToState converts to protocol state
func (p *Player) ToState() PlayerState {
	return PlayerState{
		ID:          p.ID,
		Name:        p.Name,
		Color:       p.Color,
		X:           round1(p.X),
		Y:           round1(p.Y),
		Angle:       round2(p.Body.Angle),
		TurretAngle: round2(p.Body.TurretAngle),
		VX:          round1(p.Body.VX),
		VY:          round1(p.Body.VY),
		Radius:      p.Radius,
		Health:      p.Health,
		Score:       p.Score,
		Alive:       p.Alive,
		Weapon:      p.Weapon,
		Shielded:    p.Shielded,
		Respawn:     round1(p.RespawnTimer),
	}
}
