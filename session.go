package main

import (
	"context"
	"math/rand"

	"github.com/charmbracelet/log"
)

// ArenaRegistry owns one long-lived Game per mode
type ArenaRegistry struct {
	arenas      map[GameMode]*Game
	defaultMode GameMode
}

// NewArenaRegistry creates a tank and a plane arena. Each arena gets its own
// rng derived from seed so ticks never share a source.
func NewArenaRegistry(defaultMode GameMode, seed int64, logger *log.Logger, analytics *Analytics) *ArenaRegistry {
	r := &ArenaRegistry{
		arenas:      make(map[GameMode]*Game),
		defaultMode: defaultMode,
	}
	for i, mode := range []GameMode{ModeTank, ModePlane} {
		rng := rand.New(rand.NewSource(seed + int64(i)))
		r.arenas[mode] = NewGame(DefaultArenaConfig(mode), rng, WithLogger(logger), WithAnalytics(analytics))
	}
	return r
}

// Get returns the arena for a mode name; empty selects the default mode
func (r *ArenaRegistry) Get(name string) (*Game, error) {
	mode := r.defaultMode
	if name != "" {
		m, err := ParseMode(name)
		if err != nil {
			return nil, err
		}
		mode = m
	}
	return r.arenas[mode], nil
}

// Start runs every arena loop until ctx is done
func (r *ArenaRegistry) Start(ctx context.Context) {
	for _, g := range r.arenas {
		go g.Run(ctx)
	}
}

// ArenaInfo is the public summary of an arena
type ArenaInfo struct {
	Mode    string `json:"mode"`
	Players int    `json:"players"`
}

// List returns a summary of every arena, tank first
func (r *ArenaRegistry) List() []ArenaInfo {
	list := make([]ArenaInfo, 0, len(r.arenas))
	for _, mode := range []GameMode{ModeTank, ModePlane} {
		if g, ok := r.arenas[mode]; ok {
			list = append(list, ArenaInfo{Mode: mode.String(), Players: g.PlayerCount()})
		}
	}
	return list
}
