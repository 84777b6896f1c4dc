package main

// WeaponType tags a player loadout and the projectiles it fires
type WeaponType string

const (
	WeaponNormal     WeaponType = "normal"
	WeaponTripleShot WeaponType = "triple_shot"
	WeaponRapidFire  WeaponType = "rapid_fire"
	WeaponMissile    WeaponType = "missile"
)

// PowerupType identifies what a powerup grants
type PowerupType string

const (
	PowerupTripleShot PowerupType = "triple_shot"
	PowerupRapidFire  PowerupType = "rapid_fire"
	PowerupMissile    PowerupType = "missile"
	PowerupShield     PowerupType = "shield"
)

// PowerupTypes lists every powerup the spawner can roll
var PowerupTypes = []PowerupType{PowerupTripleShot, PowerupRapidFire, PowerupMissile, PowerupShield}

// Shot describes one projectile of a volley
type Shot struct {
	Angle  float64
	Speed  float64
	Damage int
	Radius float64
	Type   WeaponType
}

// FirePattern returns the volley a weapon fires along angle
func FirePattern(cfg ArenaConfig, weapon WeaponType, angle float64) []Shot {
	base := Shot{
		Angle:  angle,
		Speed:  cfg.ProjectileSpeed,
		Damage: cfg.ProjectileDamage,
		Radius: cfg.ProjectileRadius,
		Type:   weapon,
	}
	switch weapon {
	case WeaponTripleShot:
		left, right := base, base
		left.Angle = angle - cfg.SpreadAngle
		right.Angle = angle + cfg.SpreadAngle
		return []Shot{left, base, right}
	case WeaponMissile:
		base.Speed = cfg.MissileSpeed
		base.Damage = cfg.MissileDamage
		base.Radius = cfg.MissileRadius
		return []Shot{base}
	case WeaponRapidFire:
		return []Shot{base}
	default:
		base.Type = WeaponNormal
		return []Shot{base}
	}
}

// FireInterval returns the cooldown after firing weapon
func FireInterval(cfg ArenaConfig, weapon WeaponType) float64 {
	if weapon == WeaponRapidFire && cfg.RapidFireFactor > 0 {
		return cfg.FireInterval * cfg.RapidFireFactor
	}
	return cfg.FireInterval
}

// ApplyPowerup grants a powerup. Timers are overwritten, never stacked.
func ApplyPowerup(p *Player, t PowerupType, cfg ArenaConfig) {
	switch t {
	case PowerupShield:
		p.Shielded = true
		p.ShieldTimer = cfg.ShieldDuration
	case PowerupTripleShot:
		p.Weapon = WeaponTripleShot
		p.WeaponTimer = cfg.PowerupDuration
	case PowerupRapidFire:
		p.Weapon = WeaponRapidFire
		p.WeaponTimer = cfg.PowerupDuration
	case PowerupMissile:
		p.Weapon = WeaponMissile
		p.WeaponTimer = cfg.PowerupDuration
	}
}
