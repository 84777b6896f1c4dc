package main

import "math"

// Projectile is a shell (tank) or bullet/missile (plane)
type Projectile struct {
	ID        EntityID
	OwnerID   EntityID
	X, Y      float64
	VX, VY    float64
	Radius    float64
	Life      float64 // steps left, only used when HasLife
	HasLife   bool
	Ricochets int
	Damage    int
	Type      WeaponType
	Alive     bool
}

// NewProjectile launches a projectile from (x, y) along angle
func NewProjectile(id, owner EntityID, x, y, angle float64, shot Shot, cfg ArenaConfig) *Projectile {
	return &Projectile{
		ID:      id,
		OwnerID: owner,
		X:       x,
		Y:       y,
		VX:      math.Cos(angle) * shot.Speed,
		VY:      math.Sin(angle) * shot.Speed,
		Radius:  shot.Radius,
		Life:    cfg.ProjectileLife,
		HasLife: cfg.ProjectileLife > 0,
		Damage:  shot.Damage,
		Type:    shot.Type,
		Alive:   true,
	}
}

// Advance moves the projectile by one step and burns lifetime
func (p *Projectile) Advance(step float64) {
	if !p.Alive {
		return
	}
	p.X += p.VX * step
	p.Y += p.VY * step
	if p.HasLife {
		p.Life -= step
		if p.Life <= 0 {
			p.Alive = false
		}
	}
}

// Ricochet bounces the projectile off rect after an overlapping Advance(step).
// The axis whose isolated previous coordinate still overlaps is the one that hit
// the face, so that velocity component flips and the other coordinate backs up one step.
// A corner graze that would still overlap on the next step reverses both components
// from the previous position instead.
func (p *Projectile) Ricochet(rect Rect, step float64) {
	prevX := p.X - p.VX*step
	prevY := p.Y - p.VY*step
	inX, inY := p.VX, p.VY
	if CircleRectOverlap(p.X, prevY, p.Radius, rect) {
		p.VX = -p.VX
		p.Y = prevY
	} else {
		p.VY = -p.VY
		p.X = prevX
	}
	if CircleRectOverlap(p.X+p.VX*step, p.Y+p.VY*step, p.Radius, rect) {
		p.X, p.Y = prevX, prevY
		p.VX, p.VY = -inX, -inY
	}
	p.Ricochets++
}

// ToState converts to protocol state
func (p *Projectile) ToState() ProjectileState {
	return ProjectileState{
		ID:     p.ID,
		Owner:  p.OwnerID,
		X:      round1(p.X),
		Y:      round1(p.Y),
		VX:     round1(p.VX),
		VY:     round1(p.VY),
		Radius: p.Radius,
		Type:   p.Type,
	}
}
