package main

// Event colors
const (
	wallHitColor = "#bdc3c7"
	shieldColor  = "#00e5ff"
)

// Cause of a player death, recorded in analytics
const (
	causeShot    = "shot"
	causeCrash   = "crash"
	causeBounds  = "bounds"
	causeCollide = "collision"
)

// movePlayer integrates position and resolves contact with obstacles and bounds
func (g *Game) movePlayer(p *Player, step float64) {
	nx := p.X + p.Body.VX*step
	ny := p.Y + p.Body.VY*step

	if g.cfg.LethalContact {
		p.X, p.Y = nx, ny
		if OutOfBounds(p.X, p.Y, g.cfg.Width, g.cfg.Height) {
			g.crash(p, causeBounds)
			return
		}
		if _, hit := CircleHitsAny(p.X, p.Y, p.Radius, g.obstacles); hit {
			g.crash(p, causeCrash)
		}
		return
	}

	// Blocking contact: slide along whichever axis is free
	if _, hit := CircleHitsAny(nx, ny, p.Radius, g.obstacles); !hit {
		p.X, p.Y = nx, ny
	} else if _, hit := CircleHitsAny(nx, p.Y, p.Radius, g.obstacles); !hit {
		p.X = nx
		p.Body.VY *= 0.5
	} else if _, hit := CircleHitsAny(p.X, ny, p.Radius, g.obstacles); !hit {
		p.Y = ny
		p.Body.VX *= 0.5
	} else {
		p.Body.VX = 0
		p.Body.VY = 0
	}
}

// collidePlayers kills both players of every overlapping pair (lethal contact only)
func (g *Game) collidePlayers() {
	if !g.cfg.LethalContact {
		return
	}
	for i := 0; i < len(g.order); i++ {
		a := g.order[i]
		if !a.Alive {
			continue
		}
		for j := i + 1; j < len(g.order); j++ {
			b := g.order[j]
			if !b.Alive {
				continue
			}
			if CirclesOverlap(a.X, a.Y, a.Radius, b.X, b.Y, b.Radius) {
				g.crash(a, causeCollide)
				g.crash(b, causeCollide)
				break
			}
		}
	}
}

// crash kills a player by contact and costs them a point
func (g *Game) crash(p *Player, cause string) {
	p.Penalize()
	g.kill(p, cause)
}

// kill emits the explosion and moves the victim to its respawn state
func (g *Game) kill(p *Player, cause string) {
	g.emit(EventExplosion, p.X, p.Y, p.Color)
	g.analytics.Track(EvtPlayerDeath, g.cfg.Mode, p.SessionID, p.Name, cause)

	if g.cfg.TimedRespawn {
		p.Die(g.cfg.RespawnTime)
		return
	}
	x, y, ok := g.spawns.SafeSpawn(g.obstacles, g.order)
	if !ok {
		g.log.Debug("spawn attempts exhausted", "player", p.ID)
	}
	p.X, p.Y = x, y
	p.ResetKinematics(g.randomAngle())
	if i := g.orderIndex(p.ID); i >= 0 {
		g.grid.InsertCircle(p.X, p.Y, p.Radius, i)
	}
}

// updateProjectiles advances every projectile and resolves wall and player hits
func (g *Game) updateProjectiles(step float64) {
	g.grid.Clear()
	for i, p := range g.order {
		if p.Alive {
			g.grid.InsertCircle(p.X, p.Y, p.Radius, i)
		}
	}

	alive := g.projectiles[:0]
	for _, proj := range g.projectiles {
		g.updateProjectile(proj, step)
		if proj.Alive {
			alive = append(alive, proj)
		}
	}
	for i := len(alive); i < len(g.projectiles); i++ {
		g.projectiles[i] = nil
	}
	g.projectiles = alive
}

func (g *Game) updateProjectile(proj *Projectile, step float64) {
	proj.Advance(step)
	if !proj.Alive {
		return
	}

	if obs, hit := CircleHitsAny(proj.X, proj.Y, proj.Radius, g.obstacles); hit {
		g.emit(EventHit, proj.X, proj.Y, wallHitColor)
		if !g.cfg.RicochetWalls {
			proj.Alive = false
			return
		}
		proj.Ricochet(obs.Rect, step)
		if proj.Ricochets > g.cfg.MaxRicochets {
			proj.Alive = false
			return
		}
	}

	// Border walls usually stop shells; corners can still leak
	if OutOfBounds(proj.X, proj.Y, g.cfg.Width, g.cfg.Height) {
		proj.Alive = false
		return
	}

	if victim := g.projectileTarget(proj); victim != nil {
		proj.Alive = false
		g.hitPlayer(proj, victim)
	}
}

// projectileTarget returns the first player in join order struck by proj
func (g *Game) projectileTarget(proj *Projectile) *Player {
	reach := proj.Radius + g.cfg.PlayerRadius()
	if g.cfg.HitDistance > reach {
		reach = g.cfg.HitDistance
	}
	g.queryBuf = g.grid.QueryBuf(proj.X, proj.Y, reach, g.queryBuf[:0])

	best := -1
	for _, idx := range g.queryBuf {
		if best >= 0 && idx >= best {
			continue
		}
		p := g.order[idx]
		if !p.Alive {
			continue
		}
		if p.ID == proj.OwnerID && (!g.cfg.RicochetWalls || proj.Ricochets == 0) {
			continue
		}
		if g.projectileHits(proj, p) {
			best = idx
		}
	}
	if best < 0 {
		return nil
	}
	return g.order[best]
}

func (g *Game) projectileHits(proj *Projectile, p *Player) bool {
	if g.cfg.HitDistance > 0 {
		return Distance(proj.X, proj.Y, p.X, p.Y) < g.cfg.HitDistance
	}
	return CirclesOverlap(proj.X, proj.Y, proj.Radius, p.X, p.Y, p.Radius)
}

// hitPlayer applies a consumed projectile to its victim
func (g *Game) hitPlayer(proj *Projectile, victim *Player) {
	if victim.Shielded {
		g.emit(EventShield, proj.X, proj.Y, shieldColor)
		return
	}
	if g.cfg.HealthEnabled && !victim.TakeDamage(proj.Damage) {
		g.emit(EventHit, proj.X, proj.Y, victim.Color)
		return
	}

	if shooter, ok := g.players[proj.OwnerID]; ok {
		shooter.Score++
		g.analytics.Track(EvtPlayerKill, g.cfg.Mode, shooter.SessionID, shooter.Name, victim.Name)
	}
	g.kill(victim, causeShot)
}

// updatePowerups spawns due powerups and hands them to the first player in reach
func (g *Game) updatePowerups(dt float64) {
	if !g.cfg.PowerupsEnabled {
		return
	}
	if g.spawner.Due(dt, len(g.powerups)) {
		x, y, _ := g.spawns.SafeSpawn(g.obstacles, nil)
		g.powerups = append(g.powerups, &Powerup{
			ID:   g.powerupIDs.Next(),
			Type: randomPowerupType(g.rng),
			X:    x,
			Y:    y,
		})
	}

	remaining := g.powerups[:0]
	for _, pu := range g.powerups {
		for _, p := range g.order {
			if !p.Alive {
				continue
			}
			if CirclesOverlap(pu.X, pu.Y, g.cfg.PowerupRadius, p.X, p.Y, p.Radius) {
				ApplyPowerup(p, pu.Type, g.cfg)
				pu.Collected = true
				g.emit(EventPickup, pu.X, pu.Y, p.Color)
				break
			}
		}
		if !pu.Collected {
			remaining = append(remaining, pu)
		}
	}
	for i := len(remaining); i < len(g.powerups); i++ {
		g.powerups[i] = nil
	}
	g.powerups = remaining
}

// updateRespawns counts down dead players and brings them back at mid height
func (g *Game) updateRespawns(dt float64) {
	if !g.cfg.TimedRespawn {
		return
	}
	for _, p := range g.order {
		if p.Alive {
			continue
		}
		p.RespawnTimer -= dt
		if p.RespawnTimer > 0 {
			continue
		}
		x, y, ok := g.spawns.MidlineSpawn(g.obstacles, g.order)
		if !ok {
			g.log.Debug("midline spawn attempts exhausted", "player", p.ID)
		}
		p.X, p.Y = x, y
		p.ResetKinematics(0)
		p.ResetLoadout(g.cfg)
		p.RespawnTimer = 0
		p.Alive = true
	}
}
