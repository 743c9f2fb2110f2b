package game

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"feudal/internal/ai"
	"feudal/internal/feudal"
)

var ErrGameNotFound = errors.New("game not found")

// Config describes a new game. Players are numbered in order.
type Config struct {
	Terrain *feudal.Grid // nil means the built-in map
	AI      []bool       // one entry per player
	Seed    int64        // 0 picks a time-based seed
}

type Manager struct {
	mu      sync.RWMutex
	games   map[string]*GameState
	terrain *feudal.Grid
}

func NewManager() *Manager {
	return &Manager{games: make(map[string]*GameState)}
}

// SetDefaultTerrain sets the map used by games whose Config has none.
func (m *Manager) SetDefaultTerrain(g *feudal.Grid) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.terrain = g
}

func (m *Manager) NewGame(cfg Config) (*GameState, error) {
	if n := len(cfg.AI); n < 2 || n > feudal.MaxPlayers {
		return nil, fmt.Errorf("need 2 to %d players, got %d", feudal.MaxPlayers, n)
	}
	terrain := cfg.Terrain
	if terrain == nil {
		m.mu.RLock()
		terrain = m.terrain
		m.mu.RUnlock()
	}
	if terrain == nil {
		terrain = feudal.DefaultTerrain()
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	now := time.Now()
	g := &GameState{
		ID:         uuid.NewString(),
		Terrain:    terrain,
		Board:      feudal.NewBoard(terrain),
		Stage:      StageCoinToss,
		Winner:     NoWinner,
		FlipWinner: NoWinner,
		rng:        rand.New(rand.NewSource(seed)),
		placer:     ai.NewPlacer(seed + 1),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	for i, isAI := range cfg.AI {
		g.Players = append(g.Players, &Player{
			Number: feudal.PlayerID(i),
			IsAI:   isAI,
			Hand:   feudal.StartingHand(),
		})
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.games[g.ID] = g
	return g, nil
}

func (m *Manager) Get(id string) (*GameState, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	g, ok := m.games[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrGameNotFound, id)
	}
	return g, nil
}

func (m *Manager) Remove(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.games[id]; !ok {
		return fmt.Errorf("%w: %s", ErrGameNotFound, id)
	}
	delete(m.games, id)
	return nil
}

func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.games)
}
