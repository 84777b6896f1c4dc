package main

import "math"

// Body is the kinematic state a motion model works on.
// TurretAngle is relative to Angle.
type Body struct {
	VX, VY      float64
	Angle       float64
	AngularVel  float64
	TurretAngle float64
	TurretVel   float64
}

// Speed returns the velocity magnitude
func (b Body) Speed() float64 {
	return math.Hypot(b.VX, b.VY)
}

// MotionModel advances velocity and heading for one tick.
// Position integration is left to the caller so it can test the predicted position.
type MotionModel interface {
	Integrate(b Body, in Input, dt float64) Body
}

// NewMotionModel picks the model for an arena
func NewMotionModel(cfg ArenaConfig) MotionModel {
	if cfg.Mode == ModePlane {
		return FlightModel{cfg: cfg}
	}
	return GroundModel{cfg: cfg}
}

// GroundModel is the tank model. All constants are per tick and dt is ignored.
type GroundModel struct {
	cfg ArenaConfig
}

func (m GroundModel) Integrate(b Body, in Input, _ float64) Body {
	c := m.cfg

	// Turn: shift steers the turret instead of the body
	turn := 0.0
	if in.Left {
		turn -= c.RotationAccel
	}
	if in.Right {
		turn += c.RotationAccel
	}
	if in.Shift {
		b.TurretVel += turn
	} else {
		b.AngularVel += turn
	}

	// Thrust along heading
	if in.Up {
		b.VX += math.Cos(b.Angle) * c.Acceleration
		b.VY += math.Sin(b.Angle) * c.Acceleration
	}
	if in.Down {
		b.VX -= math.Cos(b.Angle) * c.Acceleration
		b.VY -= math.Sin(b.Angle) * c.Acceleration
	}

	// Friction
	b.VX *= c.Friction
	b.VY *= c.Friction
	b.AngularVel *= c.RotationFriction
	b.TurretVel *= c.RotationFriction

	// Caps
	b.VX, b.VY = ClampSpeed(b.VX, b.VY, c.MaxSpeed)
	b.AngularVel = ClampMagnitude(b.AngularVel, c.MaxRotationSpeed)
	b.TurretVel = ClampMagnitude(b.TurretVel, c.MaxRotationSpeed)

	b.Angle += b.AngularVel
	b.TurretAngle += b.TurretVel
	return b
}

// FlightModel is the plane model: thrust, gravity, drag and lift, all per second
type FlightModel struct {
	cfg ArenaConfig
}

func (m FlightModel) Integrate(b Body, in Input, dt float64) Body {
	c := m.cfg

	// Turn (y grows downward, so turning "up" is a negative rotation)
	if in.Left {
		b.Angle -= c.TurnSpeed * dt
	}
	if in.Right {
		b.Angle += c.TurnSpeed * dt
	}

	// Thrust
	if in.Up {
		b.VX += math.Cos(b.Angle) * c.Acceleration * dt
		b.VY += math.Sin(b.Angle) * c.Acceleration * dt
	}
	if in.Down {
		speed := b.Speed()
		if speed > 0 {
			target := math.Max(c.MinSpeed, speed-c.Acceleration*dt)
			scale := target / speed
			b.VX *= scale
			b.VY *= scale
		}
	}

	// Gravity
	b.VY += c.Gravity * dt

	// Drag opposes velocity, proportional to speed
	speed := b.Speed()
	if speed > 0 {
		drag := c.DragCoefficient * speed
		b.VX -= b.VX / speed * drag * dt
		b.VY -= b.VY / speed * drag * dt
	}

	// Lift only above stall speed
	if speed > c.StallSpeed {
		b.VY -= c.Gravity * c.LiftCoefficient * dt
	}

	b.VX, b.VY = ClampSpeed(b.VX, b.VY, c.MaxSpeed)
	b.Angle = NormalizeAngle(b.Angle)
	return b
}
