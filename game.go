package main

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// MaxTickDelta caps the wall-clock delta fed to one tick
const MaxTickDelta = 0.1

// ErrArenaFull is returned when an arena has no free player slot
var ErrArenaFull = errors.New("arena full")

// Broadcaster is a connection that receives messages from a game
type Broadcaster interface {
	SendJSON(msg interface{})
	SendState(frames *StateFrames)
}

// Game holds the world state of one arena
type Game struct {
	mu  sync.RWMutex
	cfg ArenaConfig
	log *log.Logger

	motion  MotionModel
	spawns  *SpawnPlacer
	rng     *rand.Rand
	grid    *SpatialGrid
	spawner powerupSpawner

	obstacles      []Obstacle
	obstacleStates []ObstacleState

	players  map[EntityID]*Player
	order    []*Player // join order
	sessions map[string]EntityID

	projectiles []*Projectile
	powerups    []*Powerup
	events      []Event

	clients map[string]Broadcaster // sessionID -> client

	playerIDs     idSequence
	projectileIDs idSequence
	powerupIDs    idSequence

	tick      uint64
	queryBuf  []int
	analytics *Analytics
}

// GameOption configures optional Game collaborators
type GameOption func(*Game)

// WithAnalytics records joins, leaves, kills and deaths
func WithAnalytics(a *Analytics) GameOption {
	return func(g *Game) { g.analytics = a }
}

// WithLogger replaces the default logger
func WithLogger(l *log.Logger) GameOption {
	return func(g *Game) { g.log = l }
}

// NewGame creates an empty arena. rng drives spawns and colors; pass a seeded
// source for deterministic tests.
func NewGame(cfg ArenaConfig, rng *rand.Rand, opts ...GameOption) *Game {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	obstacles := BuildObstacles(cfg)
	states := make([]ObstacleState, len(obstacles))
	for i, o := range obstacles {
		states[i] = o.ToState()
	}
	g := &Game{
		cfg:            cfg,
		log:            log.Default(),
		motion:         NewMotionModel(cfg),
		spawns:         NewSpawnPlacer(cfg, rng),
		rng:            rng,
		grid:           NewSpatialGrid(cfg.Width, cfg.Height),
		spawner:        newPowerupSpawner(cfg),
		obstacles:      obstacles,
		obstacleStates: states,
		players:        make(map[EntityID]*Player),
		sessions:       make(map[string]EntityID),
		clients:        make(map[string]Broadcaster),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.log = g.log.With("arena", cfg.Mode.String())
	return g
}

// Config returns the arena configuration
func (g *Game) Config() ArenaConfig {
	return g.cfg
}

// Obstacles returns the static walls of the arena
func (g *Game) Obstacles() []ObstacleState {
	out := make([]ObstacleState, len(g.obstacleStates))
	copy(out, g.obstacleStates)
	return out
}

// AddPlayer spawns a new player for a connection
func (g *Game) AddPlayer(sessionID, name string) (PlayerState, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.sessions[sessionID]; ok {
		return PlayerState{}, fmt.Errorf("session %s already joined", sessionID)
	}
	if g.cfg.MaxPlayers > 0 && len(g.order) >= g.cfg.MaxPlayers {
		return PlayerState{}, fmt.Errorf("add player: %w", ErrArenaFull)
	}

	if name == "" {
		name = DefaultName(len(g.order) + 1)
	}
	p := NewPlayer(g.playerIDs.Next(), sessionID, name, g.cfg, g.rng)
	x, y, ok := g.spawns.SafeSpawn(g.obstacles, g.order)
	if !ok {
		g.log.Debug("spawn attempts exhausted", "player", p.ID)
	}
	p.X, p.Y = x, y

	g.players[p.ID] = p
	g.order = append(g.order, p)
	g.sessions[sessionID] = p.ID
	g.analytics.Track(EvtPlayerJoin, g.cfg.Mode, sessionID, p.Name, "")
	return p.ToState(), nil
}

// RemovePlayer deletes the player of a connection. Unknown sessions are ignored.
func (g *Game) RemovePlayer(sessionID string) (EntityID, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	delete(g.clients, sessionID)
	id, ok := g.sessions[sessionID]
	if !ok {
		return EntityIDInvalid, false
	}
	delete(g.sessions, sessionID)
	p := g.players[id]
	delete(g.players, id)
	if i := g.orderIndex(id); i >= 0 {
		copy(g.order[i:], g.order[i+1:])
		g.order[len(g.order)-1] = nil
		g.order = g.order[:len(g.order)-1]
	}
	if p != nil {
		g.analytics.Track(EvtPlayerLeave, g.cfg.Mode, sessionID, p.Name, "")
	}
	return id, true
}

// SetClient associates a broadcaster with a connection
func (g *Game) SetClient(sessionID string, client Broadcaster) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.clients[sessionID] = client
}

// HandleInput stages the latest input of a connection for the next tick
func (g *Game) HandleInput(sessionID string, in Input) {
	g.mu.Lock()
	defer g.mu.Unlock()

	id, ok := g.sessions[sessionID]
	if !ok {
		return
	}
	if p, ok := g.players[id]; ok {
		p.Stage(in)
	}
}

// PlayerCount returns the number of players
func (g *Game) PlayerCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.order)
}

// Update advances the world by dt seconds
func (g *Game) Update(dt float64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.update(dt)
}

// Snapshot returns the current world without draining events
func (g *Game) Snapshot() GameState {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.snapshot()
}

// Step advances the world, snapshots it and drains the event queue in one
// critical section
func (g *Game) Step(dt float64) GameState {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.update(dt)
	state := g.snapshot()
	g.events = nil
	return state
}

// Run drives the arena at cfg.TickRate until ctx is done
func (g *Game) Run(ctx context.Context) {
	rate := g.cfg.TickRate
	if rate <= 0 {
		rate = 60
	}
	ticker := time.NewTicker(time.Second / time.Duration(rate))
	defer ticker.Stop()

	g.log.Info("arena started", "tickRate", rate)
	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			g.log.Info("arena stopped")
			return
		case now := <-ticker.C:
			dt := math.Min(now.Sub(last).Seconds(), MaxTickDelta)
			last = now
			g.broadcastState(g.Step(dt))
		}
	}
}

// update runs one tick. Caller holds g.mu.
func (g *Game) update(dt float64) {
	if dt <= 0 {
		return
	}
	g.tick++
	step := g.cfg.step(dt)

	// 1. input, cooldowns, firing
	intents := make([]Input, len(g.order))
	for i, p := range g.order {
		in := p.takeInput()
		if !p.Alive {
			continue
		}
		intents[i] = in
		if p.CanFire(in) {
			g.fire(p)
			p.Cooldown = FireInterval(g.cfg, p.Weapon)
		}
		if p.Cooldown > 0 {
			p.Cooldown -= step
		}
	}

	// 2. player physics and contact
	for i, p := range g.order {
		if !p.Alive {
			continue
		}
		p.Body = g.motion.Integrate(p.Body, intents[i], dt)
		g.movePlayer(p, step)
	}
	g.collidePlayers()

	// 3. projectiles
	g.updateProjectiles(step)

	// 4. weapon and shield timers
	for _, p := range g.order {
		p.TickPowers(dt)
	}

	// 5. powerups
	g.updatePowerups(dt)

	// 6. respawns
	g.updateRespawns(dt)
}

// fire launches the volley of p's weapon along the absolute turret angle
func (g *Game) fire(p *Player) {
	aim := p.Body.Angle + p.Body.TurretAngle
	for _, shot := range FirePattern(g.cfg, p.Weapon, aim) {
		if g.cfg.MaxProjectiles > 0 && len(g.projectiles) >= g.cfg.MaxProjectiles {
			return
		}
		x := p.X + math.Cos(shot.Angle)*g.cfg.MuzzleOffset
		y := p.Y + math.Sin(shot.Angle)*g.cfg.MuzzleOffset
		g.projectiles = append(g.projectiles, NewProjectile(g.projectileIDs.Next(), p.ID, x, y, shot.Angle, shot, g.cfg))
	}
}

func (g *Game) emit(typ string, x, y float64, color string) {
	g.events = append(g.events, Event{Type: typ, X: round1(x), Y: round1(y), Color: color})
}

func (g *Game) randomAngle() float64 {
	if g.cfg.Mode != ModeTank {
		return 0
	}
	return g.rng.Float64() * math.Pi * 2
}

func (g *Game) orderIndex(id EntityID) int {
	for i, p := range g.order {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// snapshot builds the broadcast state. Caller holds g.mu.
func (g *Game) snapshot() GameState {
	state := GameState{
		Tick:        g.tick,
		Mode:        g.cfg.Mode.String(),
		Players:     make([]PlayerState, 0, len(g.order)),
		Projectiles: make([]ProjectileState, 0, len(g.projectiles)),
		Powerups:    make([]PowerupState, 0, len(g.powerups)),
		Obstacles:   g.obstacleStates,
		Events:      make([]Event, len(g.events)),
	}
	for _, p := range g.order {
		state.Players = append(state.Players, p.ToState())
	}
	for _, proj := range g.projectiles {
		state.Projectiles = append(state.Projectiles, proj.ToState())
	}
	for _, pu := range g.powerups {
		state.Powerups = append(state.Powerups, pu.ToState())
	}
	copy(state.Events, g.events)
	return state
}

// broadcastState encodes state once and fans it out to every client
func (g *Game) broadcastState(state GameState) {
	g.mu.RLock()
	if len(g.clients) == 0 {
		g.mu.RUnlock()
		return
	}
	g.mu.RUnlock()

	frames, err := EncodeState(state)
	if err != nil {
		g.log.Error("encode state", "error", err)
		return
	}

	g.mu.RLock()
	defer g.mu.RUnlock()
	for _, client := range g.clients {
		client.SendState(frames)
	}
}

// broadcastMsg sends a message to every client
func (g *Game) broadcastMsg(msg Envelope) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	for _, client := range g.clients {
		client.SendJSON(msg)
	}
}
