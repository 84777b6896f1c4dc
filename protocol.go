package main

import jsoniter "github.com/json-iterator/go"

// Client -> Server message types
const (
	MsgJoin  = "join"
	MsgLeave = "leave"
	MsgInput = "input"
)

// Server -> Client message types
const (
	MsgInit         = "init"
	MsgState        = "state"
	MsgPlayerJoined = "player_joined"
	MsgPlayerLeft   = "player_left"
	MsgError        = "error"
)

// Event types carried in GameState.Events
const (
	EventHit       = "hit"
	EventExplosion = "explosion"
	EventShield    = "shield"
	EventPickup    = "pickup"
)

// Envelope wraps all outgoing messages with a type field
type Envelope struct {
	T    string      `json:"t"`
	Data interface{} `json:"d,omitempty"`
}

// InEnvelope is used for incoming messages; the payload is decoded per type
type InEnvelope struct {
	T string              `json:"t"`
	D jsoniter.RawMessage `json:"d,omitempty"`
}

// ClientInput is the wire form of a control update. Both the tank names
// (up/down/left/right/space) and the plane names (accelerate/decelerate/turnUp/turnDown/fire)
// are accepted; absent fields are false.
type ClientInput struct {
	Up         bool `json:"up"`
	Down       bool `json:"down"`
	Left       bool `json:"left"`
	Right      bool `json:"right"`
	Shift      bool `json:"shift"`
	Space      bool `json:"space"`
	Fire       bool `json:"fire"`
	Accelerate bool `json:"accelerate"`
	Decelerate bool `json:"decelerate"`
	TurnUp     bool `json:"turnUp"`
	TurnDown   bool `json:"turnDown"`
}

// Input is the normalized control state the simulation consumes
type Input struct {
	Up, Down    bool // thrust forward / back (brake in flight)
	Left, Right bool // turn counter-clockwise / clockwise
	Shift       bool // tank: steer turret instead of body
	Fire        bool
}

// Normalize folds the alias fields into an Input
func (c ClientInput) Normalize() Input {
	return Input{
		Up:    c.Up || c.Accelerate,
		Down:  c.Down || c.Decelerate,
		Left:  c.Left || c.TurnUp,
		Right: c.Right || c.TurnDown,
		Shift: c.Shift,
		Fire:  c.Fire || c.Space,
	}
}

// JoinMsg is sent when a player wants to enter the arena
type JoinMsg struct {
	Name   string `json:"name"`
	Ticket string `json:"ticket,omitempty"` // signed join ticket, when the server requires one
	Binary bool   `json:"bin,omitempty"`    // receive state as msgpack binary frames
}

// InitMsg is sent to a player after joining
type InitMsg struct {
	ID        EntityID        `json:"id"`
	Mode      string          `json:"mode"`
	Width     float64         `json:"width"`
	Height    float64         `json:"height"`
	Config    ArenaConfig     `json:"config"`
	Obstacles []ObstacleState `json:"obstacles"`
}

// PlayerJoinedMsg is broadcast when someone enters
type PlayerJoinedMsg struct {
	ID   EntityID `json:"id"`
	Name string   `json:"name"`
}

// PlayerLeftMsg is broadcast when someone disconnects
type PlayerLeftMsg struct {
	ID EntityID `json:"id"`
}

// ErrorMsg sends an error to the client
type ErrorMsg struct {
	Msg string `json:"msg"`
}

// PlayerState is broadcast per player each tick
type PlayerState struct {
	ID          EntityID   `json:"id"`
	Name        string     `json:"name"`
	Color       string     `json:"color"`
	X           float64    `json:"x"`
	Y           float64    `json:"y"`
	Angle       float64    `json:"angle"`
	TurretAngle float64    `json:"turretRelAngle,omitempty"`
	VX          float64    `json:"vx"`
	VY          float64    `json:"vy"`
	Radius      float64    `json:"radius"`
	Health      int        `json:"health"`
	Score       int        `json:"score"`
	Alive       bool       `json:"alive"`
	Weapon      WeaponType `json:"weapon"`
	Shielded    bool       `json:"shielded"`
	Respawn     float64    `json:"respawn,omitempty"`
}

// ProjectileState is broadcast per projectile
type ProjectileState struct {
	ID     EntityID   `json:"id"`
	Owner  EntityID   `json:"owner"`
	X      float64    `json:"x"`
	Y      float64    `json:"y"`
	VX     float64    `json:"vx"`
	VY     float64    `json:"vy"`
	Radius float64    `json:"radius"`
	Type   WeaponType `json:"type"`
}

// PowerupState is broadcast per powerup
type PowerupState struct {
	ID   EntityID    `json:"id"`
	Type PowerupType `json:"type"`
	X    float64     `json:"x"`
	Y    float64     `json:"y"`
}

// ObstacleState is a static wall
type ObstacleState struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Event is a transient notification delivered at most once
type Event struct {
	Type  string  `json:"type"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Color string  `json:"color"`
}

// GameState is the full snapshot broadcast every tick
type GameState struct {
	Tick        uint64            `json:"tick"`
	Mode        string            `json:"mode"`
	Players     []PlayerState     `json:"players"`
	Projectiles []ProjectileState `json:"projectiles"`
	Powerups    []PowerupState    `json:"powerups"`
	Obstacles   []ObstacleState   `json:"obstacles"`
	Events      []Event           `json:"events"`
}
