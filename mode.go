package main

import (
	"errors"
	"fmt"
	"strings"
)

// GameMode selects the movement model and combat rules of an arena
type GameMode int

const (
	ModeTank  GameMode = 0
	ModePlane GameMode = 1
)

// ErrUnknownMode is returned when a mode name cannot be parsed
var ErrUnknownMode = errors.New("unknown game mode")

func (m GameMode) String() string {
	switch m {
	case ModePlane:
		return "plane"
	default:
		return "tank"
	}
}

// ParseMode converts a mode name ("tank", "plane") to a GameMode
func ParseMode(s string) (GameMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "tank", "ground", "":
		return ModeTank, nil
	case "plane", "flight", "dogfight":
		return ModePlane, nil
	}
	return ModeTank, fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// ArenaConfig holds every tuning constant of one arena.
// Durations are in simulation steps: ticks when FixedStep is set, seconds otherwise.
type ArenaConfig struct {
	Mode      GameMode `json:"mode"`
	Width     float64  `json:"width"`
	Height    float64  `json:"height"`
	TickRate  int      `json:"tickRate"`
	FixedStep bool     `json:"fixedStep"`

	MaxPlayers     int `json:"maxPlayers"`
	MaxProjectiles int `json:"maxProjectiles"`

	// Rules
	BorderWalls     bool `json:"borderWalls"`
	LethalContact   bool `json:"lethalContact"`   // obstacles, bounds and player overlap kill
	RicochetWalls   bool `json:"ricochetWalls"`   // projectiles bounce off obstacles
	TimedRespawn    bool `json:"timedRespawn"`    // dead state with countdown instead of teleport
	HealthEnabled   bool `json:"healthEnabled"`   // false means one-hit kills
	PowerupsEnabled bool `json:"powerupsEnabled"`

	// Bodies
	PlayerSize         float64 `json:"playerSize"`
	SpawnMargin        float64 `json:"spawnMargin"`
	SpawnSafetyRadius  float64 `json:"spawnSafetyRadius"`
	MinSpawnSeparation float64 `json:"minSpawnSeparation"`
	MaxSpawnAttempts   int     `json:"maxSpawnAttempts"`

	// Ground model (per tick)
	Acceleration     float64 `json:"acceleration"`
	MaxSpeed         float64 `json:"maxSpeed"`
	MinSpeed         float64 `json:"minSpeed"`
	Friction         float64 `json:"friction"`
	RotationAccel    float64 `json:"rotationAccel"`
	MaxRotationSpeed float64 `json:"maxRotationSpeed"`
	RotationFriction float64 `json:"rotationFriction"`

	// Flight model (per second)
	Gravity         float64 `json:"gravity"`
	StallSpeed      float64 `json:"stallSpeed"`
	TurnSpeed       float64 `json:"turnSpeed"`
	DragCoefficient float64 `json:"dragCoefficient"`
	LiftCoefficient float64 `json:"liftCoefficient"`

	// Weapons
	ProjectileSpeed  float64 `json:"projectileSpeed"`
	ProjectileRadius float64 `json:"projectileRadius"`
	ProjectileLife   float64 `json:"projectileLife"` // 0 = no lifetime
	ProjectileDamage int     `json:"projectileDamage"`
	MuzzleOffset     float64 `json:"muzzleOffset"`
	FireInterval     float64 `json:"fireInterval"`
	MaxRicochets     int     `json:"maxRicochets"`
	HitDistance      float64 `json:"hitDistance"` // 0 = circle-circle test
	SpreadAngle      float64 `json:"spreadAngle"`
	MissileSpeed     float64 `json:"missileSpeed"`
	MissileDamage    int     `json:"missileDamage"`
	MissileRadius    float64 `json:"missileRadius"`
	RapidFireFactor  float64 `json:"rapidFireFactor"`

	// Health and powerups (seconds)
	PlayerHealth    int     `json:"playerHealth"`
	RespawnTime     float64 `json:"respawnTime"`
	PowerupInterval float64 `json:"powerupInterval"`
	MaxPowerups     int     `json:"maxPowerups"`
	PowerupRadius   float64 `json:"powerupRadius"`
	PowerupDuration float64 `json:"powerupDuration"`
	ShieldDuration  float64 `json:"shieldDuration"`
}

// PlayerRadius is half the body size
func (c ArenaConfig) PlayerRadius() float64 {
	return c.PlayerSize / 2
}

// step converts a wall-clock delta into simulation units
func (c ArenaConfig) step(dt float64) float64 {
	if c.FixedStep {
		return 1
	}
	return dt
}

// DefaultArenaConfig returns the default config for the given mode
func DefaultArenaConfig(mode GameMode) ArenaConfig {
	switch mode {
	case ModePlane:
		return ArenaConfig{
			Mode:            ModePlane,
			Width:           2000,
			Height:          1200,
			TickRate:        60,
			MaxPlayers:      20,
			MaxProjectiles:  500,
			LethalContact:   true,
			TimedRespawn:    true,
			HealthEnabled:   true,
			PowerupsEnabled: true,

			PlayerSize:         32,
			SpawnMargin:        100,
			SpawnSafetyRadius:  32/2 + 10,
			MinSpawnSeparation: 2 * 32,
			MaxSpawnAttempts:   100,

			Acceleration:    200,
			MaxSpeed:        400,
			MinSpeed:        0,
			Gravity:         300,
			StallSpeed:      80,
			TurnSpeed:       2.5,
			DragCoefficient: 0.3,
			LiftCoefficient: 0.8,

			ProjectileSpeed:  500,
			ProjectileRadius: 3,
			ProjectileLife:   2.0,
			ProjectileDamage: 20,
			MuzzleOffset:     32,
			FireInterval:     0.2,
			HitDistance:      32 / 2,
			SpreadAngle:      0.2,
			MissileSpeed:     300,
			MissileDamage:    50,
			MissileRadius:    6,
			RapidFireFactor:  0.5,

			PlayerHealth:    100,
			RespawnTime:     3.0,
			PowerupInterval: 10,
			MaxPowerups:     5,
			PowerupRadius:   15,
			PowerupDuration: 10,
			ShieldDuration:  5,
		}
	default:
		return ArenaConfig{
			Mode:           ModeTank,
			Width:          800,
			Height:         600,
			TickRate:       60,
			FixedStep:      true,
			MaxPlayers:     20,
			MaxProjectiles: 500,
			BorderWalls:    true,
			RicochetWalls:  true,

			PlayerSize:         30,
			SpawnMargin:        50,
			SpawnSafetyRadius:  30/2 + 10,
			MinSpawnSeparation: 2 * 30,
			MaxSpawnAttempts:   100,

			Acceleration:     0.4,
			MaxSpeed:         6,
			Friction:         0.92,
			RotationAccel:    0.01,
			MaxRotationSpeed: 0.12,
			RotationFriction: 0.90,

			ProjectileSpeed:  10,
			ProjectileRadius: 5,
			MuzzleOffset:     30/2 + 20,
			FireInterval:     30,
			MaxRicochets:     2,
			SpreadAngle:      0.2,
			PlayerHealth:     1,
		}
	}
}
