package main

import (
	"errors"
	"io"
	"math"
	"math/rand"
	"sync"
	"testing"
)

// mockBroadcaster captures sent messages for testing
type mockBroadcaster struct {
	mu       sync.Mutex
	messages []interface{}
	states   []*StateFrames
}

func (m *mockBroadcaster) SendJSON(msg interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, msg)
}

func (m *mockBroadcaster) SendState(frames *StateFrames) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.states = append(m.states, frames)
}

func newTestGame(mode GameMode) *Game {
	return newTestGameWith(DefaultArenaConfig(mode))
}

func newTestGameWith(cfg ArenaConfig) *Game {
	return NewGame(cfg, rand.New(rand.NewSource(1)), WithLogger(NewLogger(io.Discard, "error")))
}

// addTestPlayer joins a player and parks it at rest at (x, y)
func addTestPlayer(t *testing.T, g *Game, session string, x, y float64) *Player {
	t.Helper()
	st, err := g.AddPlayer(session, session)
	if err != nil {
		t.Fatalf("add player %s: %v", session, err)
	}
	p := g.players[st.ID]
	p.X, p.Y = x, y
	p.Body = Body{}
	return p
}

func countEvents(events []Event, typ string) int {
	n := 0
	for _, e := range events {
		if e.Type == typ {
			n++
		}
	}
	return n
}

func TestGameAddRemovePlayer(t *testing.T) {
	g := newTestGame(ModeTank)
	st, err := g.AddPlayer("s1", "TestPilot")
	if err != nil {
		t.Fatalf("add player: %v", err)
	}
	if st.Name != "TestPilot" {
		t.Errorf("expected name TestPilot, got %s", st.Name)
	}
	if st.ID == EntityIDInvalid {
		t.Error("player id should be allocated")
	}
	if g.PlayerCount() != 1 {
		t.Errorf("expected 1 player, got %d", g.PlayerCount())
	}

	id, ok := g.RemovePlayer("s1")
	if !ok || id != st.ID {
		t.Errorf("expected to remove %d, got %d %v", st.ID, id, ok)
	}
	if g.PlayerCount() != 0 {
		t.Errorf("expected 0 players, got %d", g.PlayerCount())
	}
}

func TestGameDefaultName(t *testing.T) {
	g := newTestGame(ModeTank)
	g.AddPlayer("s1", "Ace")
	st, _ := g.AddPlayer("s2", "")
	if st.Name != "Player 2" {
		t.Errorf("expected default name Player 2, got %s", st.Name)
	}
}

func TestGameIDsAreUnique(t *testing.T) {
	g := newTestGame(ModeTank)
	a, _ := g.AddPlayer("s1", "A")
	g.RemovePlayer("s1")
	b, _ := g.AddPlayer("s2", "B")
	if a.ID == b.ID {
		t.Error("ids should not be reused")
	}
}

func TestGameArenaFull(t *testing.T) {
	cfg := DefaultArenaConfig(ModeTank)
	cfg.MaxPlayers = 2
	g := newTestGameWith(cfg)
	g.AddPlayer("s1", "A")
	g.AddPlayer("s2", "B")
	if _, err := g.AddPlayer("s3", "C"); !errors.Is(err, ErrArenaFull) {
		t.Errorf("expected ErrArenaFull, got %v", err)
	}
}

func TestGameUnknownSessionIsNoop(t *testing.T) {
	g := newTestGame(ModeTank)
	g.HandleInput("nobody", Input{Up: true, Fire: true})
	if _, ok := g.RemovePlayer("nobody"); ok {
		t.Error("removing an unknown session should report false")
	}
	g.Update(1.0 / 60)
	if len(g.projectiles) != 0 {
		t.Error("input for an unknown session should not fire")
	}
}

func TestGameSpawnIsSafe(t *testing.T) {
	g := newTestGame(ModeTank)
	for i := 0; i < 10; i++ {
		g.AddPlayer(NewSessionID(), "")
	}
	for _, p := range g.order {
		if _, hit := CircleHitsAny(p.X, p.Y, p.Radius, g.obstacles); hit {
			t.Errorf("player %d spawned inside an obstacle at (%f,%f)", p.ID, p.X, p.Y)
		}
	}
}

func TestTankFireSpawnsShell(t *testing.T) {
	g := newTestGame(ModeTank)
	p := addTestPlayer(t, g, "s1", 400, 200)

	// press and release between ticks still fires
	g.HandleInput("s1", Input{Fire: true})
	g.HandleInput("s1", Input{})
	g.Update(1.0 / 60)

	if len(g.projectiles) != 1 {
		t.Fatalf("expected 1 shell, got %d", len(g.projectiles))
	}
	shell := g.projectiles[0]
	// muzzle at radius+20, then one step of travel
	if !approx(shell.X, 400+35+10) || !approx(shell.Y, 200) {
		t.Errorf("expected shell at (445, 200), got (%f, %f)", shell.X, shell.Y)
	}
	if p.Cooldown != 29 {
		t.Errorf("expected cooldown 29 after the firing tick, got %f", p.Cooldown)
	}

	g.HandleInput("s1", Input{Fire: true})
	g.Update(1.0 / 60)
	if len(g.projectiles) != 1 {
		t.Errorf("cooldown should block a second shell, got %d", len(g.projectiles))
	}
}

func TestTankShellFollowsTurret(t *testing.T) {
	g := newTestGame(ModeTank)
	p := addTestPlayer(t, g, "s1", 400, 200)
	p.Body.Angle = 0
	p.Body.TurretAngle = math.Pi

	g.HandleInput("s1", Input{Fire: true})
	g.Update(1.0 / 60)
	if len(g.projectiles) != 1 {
		t.Fatalf("expected 1 shell, got %d", len(g.projectiles))
	}
	if g.projectiles[0].VX >= 0 {
		t.Errorf("shell should travel along the turret, got vx %f", g.projectiles[0].VX)
	}
}

func TestTankPlayerSlidesAlongWall(t *testing.T) {
	g := newTestGame(ModeTank)
	// left face of the wall at x=100..150, y=100..300
	p := addTestPlayer(t, g, "s1", 84, 200)
	p.Body = Body{VX: 5, VY: 2}
	g.Update(1.0 / 60)

	if _, hit := CircleHitsAny(p.X, p.Y, p.Radius, g.obstacles); hit {
		t.Fatalf("player should never end inside an obstacle, at (%f,%f)", p.X, p.Y)
	}
	if p.X != 84 {
		t.Errorf("x should be blocked, got %f", p.X)
	}
	if p.Y <= 200 {
		t.Errorf("y should keep sliding, got %f", p.Y)
	}
}

func TestTankPlayerCannotLeaveArena(t *testing.T) {
	g := newTestGame(ModeTank)
	p := addTestPlayer(t, g, "s1", 20, 400)
	for i := 0; i < 120; i++ {
		g.HandleInput("s1", Input{Down: true})
		p.Body.Angle = 0
		g.Update(1.0 / 60)
	}
	if p.X-p.Radius < 0 {
		t.Errorf("border walls should keep the tank inside, x=%f", p.X)
	}
	if !p.Alive {
		t.Error("tank walls block, they do not kill")
	}
}

func TestPlaneOutOfBoundsKillsAndRespawns(t *testing.T) {
	g := newTestGame(ModePlane)
	cfg := g.Config()
	p := addTestPlayer(t, g, "s1", 5, 400)
	p.Body = Body{VX: -400, Angle: math.Pi}
	p.Score = 3
	p.Weapon = WeaponMissile
	p.WeaponTimer = 100
	p.Shielded = true
	p.ShieldTimer = 100

	g.Update(0.1)
	if p.Alive {
		t.Fatal("leaving the arena should kill the plane")
	}
	if p.Score != 2 {
		t.Errorf("expected score 2 after penalty, got %d", p.Score)
	}
	// the countdown starts in the tick of death
	if !approx(p.RespawnTimer, cfg.RespawnTime-0.1) {
		t.Errorf("expected respawn timer %f, got %f", cfg.RespawnTime-0.1, p.RespawnTimer)
	}
	if countEvents(g.events, EventExplosion) != 1 {
		t.Errorf("expected one explosion event, got %v", g.events)
	}

	for i := 0; i < 40 && !p.Alive; i++ {
		g.Update(0.1)
	}
	if !p.Alive {
		t.Fatal("player should respawn after the countdown")
	}
	if p.Y != cfg.Height/2 {
		t.Errorf("expected respawn at y=%f, got %f", cfg.Height/2, p.Y)
	}
	if p.X < cfg.SpawnMargin || p.X > cfg.Width-cfg.SpawnMargin {
		t.Errorf("respawn x %f outside the arena", p.X)
	}
	if p.Weapon != WeaponNormal || p.Shielded {
		t.Errorf("respawn should reset loadout, got %s shielded=%v", p.Weapon, p.Shielded)
	}
	if p.Health != cfg.PlayerHealth {
		t.Errorf("expected full health, got %d", p.Health)
	}
}

func TestPlaneScoreNeverNegative(t *testing.T) {
	g := newTestGame(ModePlane)
	p := addTestPlayer(t, g, "s1", 5, 400)
	p.Body = Body{VX: -400, Angle: math.Pi}
	g.Update(0.1)
	if p.Alive {
		t.Fatal("expected crash")
	}
	if p.Score != 0 {
		t.Errorf("score should clamp at 0, got %d", p.Score)
	}
}

func TestPlaneObstacleCrash(t *testing.T) {
	g := newTestGame(ModePlane)
	// block at 900..1100 x 550..610
	p := addTestPlayer(t, g, "s1", 1000, 530)
	p.Body = Body{VY: 200, Angle: math.Pi / 2}
	g.Update(0.1)
	if p.Alive {
		t.Error("flying into a block should kill the plane")
	}
}

func TestPlaneDeadPlayerIsInert(t *testing.T) {
	g := newTestGame(ModePlane)
	p := addTestPlayer(t, g, "s1", 1000, 200)
	p.Die(10)
	x, y := p.X, p.Y
	g.HandleInput("s1", Input{Up: true, Fire: true})
	g.Update(0.1)
	if p.X != x || p.Y != y {
		t.Error("dead players should not move")
	}
	if len(g.projectiles) != 0 {
		t.Error("dead players should not fire")
	}
}

func TestPlaneTripleShotOrigins(t *testing.T) {
	g := newTestGame(ModePlane)
	cfg := g.Config()
	p := addTestPlayer(t, g, "s1", 1000, 200)
	p.Weapon = WeaponTripleShot
	p.WeaponTimer = 10

	g.HandleInput("s1", Input{Fire: true})
	dt := 0.0625
	g.Update(dt)

	if len(g.projectiles) != 3 {
		t.Fatalf("expected 3 projectiles, got %d", len(g.projectiles))
	}
	for i, proj := range g.projectiles {
		angle := []float64{-cfg.SpreadAngle, 0, cfg.SpreadAngle}[i]
		// back out the one step of travel to find the muzzle
		x0 := proj.X - proj.VX*dt
		y0 := proj.Y - proj.VY*dt
		wx, wy := 1000+cfg.MuzzleOffset*math.Cos(angle), 200+cfg.MuzzleOffset*math.Sin(angle)
		if !approx(x0, wx) || !approx(y0, wy) {
			t.Errorf("projectile %d: expected origin (%f,%f), got (%f,%f)", i, wx, wy, x0, y0)
		}
	}
}

func TestStepDrainsEventsOnce(t *testing.T) {
	g := newTestGame(ModeTank)
	// shell about to strike the left face of the wall at x=100
	g.projectiles = append(g.projectiles, &Projectile{ID: 1, OwnerID: 99, X: 92, Y: 200, VX: 10, Radius: 5, Alive: true})

	first := g.Step(1.0 / 60)
	if countEvents(first.Events, EventHit) != 1 {
		t.Fatalf("expected one hit event, got %v", first.Events)
	}
	second := g.Step(1.0 / 60)
	if len(second.Events) != 0 {
		t.Errorf("events should be delivered once, got %v", second.Events)
	}
	if len(second.Projectiles) != 1 {
		t.Errorf("bounced shell should still be alive, got %d", len(second.Projectiles))
	}
}

func TestSnapshotIncludesWorld(t *testing.T) {
	g := newTestGame(ModeTank)
	addTestPlayer(t, g, "s1", 400, 200)
	s := g.Snapshot()
	if s.Mode != "tank" {
		t.Errorf("expected tank snapshot, got %s", s.Mode)
	}
	if len(s.Players) != 1 || len(s.Obstacles) != 8 {
		t.Errorf("expected 1 player and 8 obstacles, got %d and %d", len(s.Players), len(s.Obstacles))
	}
}

func TestBroadcastStateReachesClients(t *testing.T) {
	g := newTestGame(ModeTank)
	addTestPlayer(t, g, "s1", 400, 200)
	mb := &mockBroadcaster{}
	g.SetClient("s1", mb)

	g.broadcastState(g.Step(1.0 / 60))
	mb.mu.Lock()
	defer mb.mu.Unlock()
	if len(mb.states) != 1 {
		t.Fatalf("expected 1 state frame, got %d", len(mb.states))
	}
	if len(mb.states[0].JSON) == 0 || len(mb.states[0].Binary) == 0 {
		t.Error("both wire formats should be encoded")
	}
}

func TestRemovePlayerDropsClient(t *testing.T) {
	g := newTestGame(ModeTank)
	addTestPlayer(t, g, "s1", 400, 200)
	mb := &mockBroadcaster{}
	g.SetClient("s1", mb)
	g.RemovePlayer("s1")

	g.broadcastMsg(Envelope{T: MsgPlayerLeft})
	mb.mu.Lock()
	defer mb.mu.Unlock()
	if len(mb.messages) != 0 {
		t.Error("removed clients should not receive broadcasts")
	}
}
