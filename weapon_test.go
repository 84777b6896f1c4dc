package main

import (
	"math"
	"testing"
)

func TestFirePatternNormal(t *testing.T) {
	cfg := DefaultArenaConfig(ModePlane)
	shots := FirePattern(cfg, WeaponNormal, 1)
	if len(shots) != 1 {
		t.Fatalf("expected 1 shot, got %d", len(shots))
	}
	if shots[0].Angle != 1 || shots[0].Speed != cfg.ProjectileSpeed || shots[0].Damage != cfg.ProjectileDamage {
		t.Errorf("unexpected shot %+v", shots[0])
	}
}

func TestFirePatternTripleShot(t *testing.T) {
	cfg := DefaultArenaConfig(ModePlane)
	shots := FirePattern(cfg, WeaponTripleShot, 0.5)
	if len(shots) != 3 {
		t.Fatalf("expected 3 shots, got %d", len(shots))
	}
	want := []float64{0.5 - 0.2, 0.5, 0.5 + 0.2}
	for i, s := range shots {
		if math.Abs(s.Angle-want[i]) > 1e-12 {
			t.Errorf("shot %d: expected angle %f, got %f", i, want[i], s.Angle)
		}
		if s.Type != WeaponTripleShot {
			t.Errorf("shot %d: expected type triple_shot, got %s", i, s.Type)
		}
	}
}

func TestFirePatternMissile(t *testing.T) {
	cfg := DefaultArenaConfig(ModePlane)
	shots := FirePattern(cfg, WeaponMissile, 0)
	if len(shots) != 1 {
		t.Fatalf("expected 1 missile, got %d", len(shots))
	}
	m := shots[0]
	if m.Speed >= cfg.ProjectileSpeed {
		t.Errorf("missile should be slower than a bullet: %f vs %f", m.Speed, cfg.ProjectileSpeed)
	}
	if m.Damage <= cfg.ProjectileDamage {
		t.Errorf("missile should hit harder: %d vs %d", m.Damage, cfg.ProjectileDamage)
	}
}

func TestFireIntervalRapidFire(t *testing.T) {
	cfg := DefaultArenaConfig(ModePlane)
	if got := FireInterval(cfg, WeaponRapidFire); got != cfg.FireInterval/2 {
		t.Errorf("expected halved interval %f, got %f", cfg.FireInterval/2, got)
	}
	if got := FireInterval(cfg, WeaponTripleShot); got != cfg.FireInterval {
		t.Errorf("expected normal interval %f, got %f", cfg.FireInterval, got)
	}
}

func TestApplyPowerupOverwrites(t *testing.T) {
	cfg := DefaultArenaConfig(ModePlane)
	p := &Player{Alive: true, Weapon: WeaponNormal}

	ApplyPowerup(p, PowerupTripleShot, cfg)
	p.TickPowers(4)
	ApplyPowerup(p, PowerupMissile, cfg)
	if p.Weapon != WeaponMissile {
		t.Errorf("expected missile, got %s", p.Weapon)
	}
	if p.WeaponTimer != cfg.PowerupDuration {
		t.Errorf("timer should be reset to %f, not stacked, got %f", cfg.PowerupDuration, p.WeaponTimer)
	}

	ApplyPowerup(p, PowerupShield, cfg)
	if !p.Shielded || p.ShieldTimer != cfg.ShieldDuration {
		t.Errorf("expected shield for %f, got %v %f", cfg.ShieldDuration, p.Shielded, p.ShieldTimer)
	}
	if p.Weapon != WeaponMissile {
		t.Error("shield should not replace the weapon")
	}
}

func TestPowerTimersExpireExactly(t *testing.T) {
	p := &Player{Alive: true, Weapon: WeaponTripleShot, WeaponTimer: 0.5, Shielded: true, ShieldTimer: 0.75}

	p.TickPowers(0.25)
	if p.Weapon != WeaponTripleShot || !p.Shielded {
		t.Fatal("powers should still be active")
	}
	p.TickPowers(0.25)
	if p.Weapon != WeaponNormal {
		t.Errorf("weapon should revert when the timer reaches zero, got %s", p.Weapon)
	}
	if !p.Shielded {
		t.Error("shield has 0.25s left and should still be up")
	}
	p.TickPowers(0.25)
	if p.Shielded {
		t.Error("shield should drop when its timer reaches zero")
	}
	if p.WeaponTimer != 0 || p.ShieldTimer != 0 {
		t.Errorf("expired timers should be zero, got %f %f", p.WeaponTimer, p.ShieldTimer)
	}
}

func TestPowerupSpawner(t *testing.T) {
	cfg := DefaultArenaConfig(ModePlane)
	s := newPowerupSpawner(cfg)
	if s.Due(cfg.PowerupInterval/2, 0) {
		t.Error("should not spawn before the interval")
	}
	if !s.Due(cfg.PowerupInterval/2, 0) {
		t.Error("should spawn once the interval elapses")
	}
	if s.Due(cfg.PowerupInterval*2, cfg.MaxPowerups) {
		t.Error("should not spawn at the cap")
	}
}
