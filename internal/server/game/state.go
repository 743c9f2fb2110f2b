package game

import (
	"math/rand"
	"sync"
	"time"

	"feudal/internal/ai"
	"feudal/internal/feudal"
)

type Stage int

const (
	StageCoinToss Stage = iota
	StagePositioning
	StagePlacement
	StagePlay
	StageGameOver
)

func (s Stage) String() string {
	switch s {
	case StageCoinToss:
		return "cointoss"
	case StagePositioning:
		return "positioning"
	case StagePlacement:
		return "placement"
	case StagePlay:
		return "play"
	case StageGameOver:
		return "gameover"
	}
	return "unknown"
}

type Player struct {
	Number   feudal.PlayerID
	IsAI     bool
	Hand     feudal.Hand
	Finished bool // done placing
}

const NoWinner feudal.PlayerID = -1

// GameState is one game. Its methods serialize on mu, so the interaction
// layer can never have two operations in flight on the same board.
type GameState struct {
	mu sync.Mutex

	ID         string
	Terrain    *feudal.Grid // current orientation
	Board      *feudal.Board
	Stage      Stage
	Players    []*Player
	FlipWinner feudal.PlayerID
	Turn       int // turns taken in the current stage
	PlayerTurn feudal.PlayerID
	Rotations  int // clockwise quarter turns applied during positioning
	Winner     feudal.PlayerID

	rng    *rand.Rand
	placer *ai.Placer

	CreatedAt time.Time
	UpdatedAt time.Time
}

// View is a consistent copy of a game for readers outside the lock.
type View struct {
	ID         string
	Stage      Stage
	Terrain    [][]feudal.Terrain
	Pieces     []feudal.Piece
	Hands      map[feudal.PlayerID]feudal.Hand
	AIPlayers  []feudal.PlayerID
	FlipWinner feudal.PlayerID
	Turn       int
	PlayerTurn feudal.PlayerID
	Rotations  int
	Winner     feudal.PlayerID
	Hash       uint64
	UpdatedAt  time.Time
}

func (g *GameState) Snapshot() View {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.view()
}

func (g *GameState) view() View {
	v := View{
		ID:         g.ID,
		Stage:      g.Stage,
		Terrain:    g.Terrain.Rows(),
		Pieces:     g.Board.Pieces(),
		Hands:      make(map[feudal.PlayerID]feudal.Hand, len(g.Players)),
		FlipWinner: g.FlipWinner,
		Turn:       g.Turn,
		PlayerTurn: g.PlayerTurn,
		Rotations:  g.Rotations,
		Winner:     g.Winner,
		Hash:       g.Board.Hash(),
		UpdatedAt:  g.UpdatedAt,
	}
	for _, p := range g.Players {
		v.Hands[p.Number] = p.Hand.Clone()
		if p.IsAI {
			v.AIPlayers = append(v.AIPlayers, p.Number)
		}
	}
	return v
}

func (g *GameState) touch() { g.UpdatedAt = time.Now() }
