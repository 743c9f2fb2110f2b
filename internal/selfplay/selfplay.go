// Package selfplay runs AI-only games: random placement, then random legal
// moves until a king falls or the ply limit is hit.
package selfplay

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"golang.org/x/sync/errgroup"

	"feudal/internal/feudal"
	"feudal/internal/record"
	"feudal/internal/server/game"
)

// DefaultMaxPlies caps a game when MaxPlies is unset; random play rarely
// finds a king on its own.
const DefaultMaxPlies = 400

type Config struct {
	Terrain  *feudal.Grid // nil for the built-in map
	Players  int
	MaxPlies int
	Seed     int64
}

type Result struct {
	GameID  string
	Seed    int64
	Players int
	Winner  feudal.PlayerID // game.NoWinner when the ply limit ran out
	Plies   int
	Placed  int
	Starved bool // some AI could not place its whole hand
	Width   int
	Height  int
	Moves   []record.MoveRow
}

func (r Result) Row() record.GameRow {
	return record.GameRow{
		GameID:  r.GameID,
		Seed:    r.Seed,
		Players: int32(r.Players),
		Width:   int32(r.Width),
		Height:  int32(r.Height),
		Placed:  int32(r.Placed),
		Plies:   int32(r.Plies),
		Winner:  int32(r.Winner),
		Starved: r.Starved,
	}
}

// Play runs one game to completion on m. The game is removed from m
// when it ends.
func Play(ctx context.Context, m *game.Manager, cfg Config) (Result, error) {
	if cfg.Players == 0 {
		cfg.Players = 2
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.MaxPlies <= 0 {
		cfg.MaxPlies = DefaultMaxPlies
	}
	ai := make([]bool, cfg.Players)
	for i := range ai {
		ai[i] = true
	}
	g, err := m.NewGame(game.Config{Terrain: cfg.Terrain, AI: ai, Seed: cfg.Seed})
	if err != nil {
		return Result{}, err
	}
	defer m.Remove(g.ID)

	// cointoss -> positioning -> placement; AI players place on the way in.
	for n := 0; n < 2; n++ {
		if err := g.Advance(); err != nil {
			return Result{}, err
		}
	}
	v := g.Snapshot()
	if v.Stage != game.StagePlay {
		return Result{}, fmt.Errorf("game %s: placement ended in %s", g.ID, v.Stage)
	}

	res := Result{
		GameID:  g.ID,
		Seed:    cfg.Seed,
		Players: cfg.Players,
		Winner:  game.NoWinner,
		Placed:  len(v.Pieces),
		Height:  len(v.Terrain),
	}
	if res.Height > 0 {
		res.Width = len(v.Terrain[0])
	}
	for _, h := range v.Hands {
		if !h.Empty() {
			res.Starved = true
		}
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	for ply := 0; ply < cfg.MaxPlies; ply++ {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		v = g.Snapshot()
		player := v.PlayerTurn
		row, moved, err := playRandom(g, rng, v, ply)
		if err != nil {
			return res, err
		}
		res.Plies = ply + 1
		if moved {
			res.Moves = append(res.Moves, row)
		}
		if v = g.Snapshot(); v.Stage == game.StageGameOver {
			res.Winner = v.Winner
			break
		}
		if err := g.EndTurn(player); err != nil {
			return res, err
		}
	}
	return res, nil
}

// playRandom moves one random piece of the player to move. A player whose
// pieces are all stuck passes.
func playRandom(g *game.GameState, rng *rand.Rand, v game.View, ply int) (record.MoveRow, bool, error) {
	var own []feudal.Piece
	for _, p := range v.Pieces {
		if p.Owner == v.PlayerTurn && !p.Kind.Fixture() {
			own = append(own, p)
		}
	}
	rng.Shuffle(len(own), func(i, j int) { own[i], own[j] = own[j], own[i] })

	for _, p := range own {
		moves, err := g.Moves(p.ID)
		if err != nil {
			return record.MoveRow{}, false, err
		}
		if len(moves) == 0 {
			continue
		}
		pick := moves[rng.Intn(len(moves))]
		m, err := g.Move(v.PlayerTurn, p.ID, pick.X, pick.Y)
		if err != nil {
			return record.MoveRow{}, false, err
		}
		return record.MoveRow{
			GameID:  v.ID,
			Ply:     int32(ply),
			Player:  int32(v.PlayerTurn),
			PieceID: int32(p.ID),
			Kind:    p.Kind.String(),
			FromX:   int32(p.X),
			FromY:   int32(p.Y),
			ToX:     int32(m.X),
			ToY:     int32(m.Y),
			Class:   m.Class.String(),
			Hash:    int64(g.Snapshot().Hash),
		}, true, nil
	}
	return record.MoveRow{}, false, nil
}

// RunMany plays n games with at most workers in flight. Game i uses seed
// cfg.Seed+i, so a run is reproducible whatever the scheduling.
func RunMany(ctx context.Context, cfg Config, n, workers int) ([]Result, error) {
	if n <= 0 {
		return nil, errors.New("selfplay: need at least one game")
	}
	if workers <= 0 {
		workers = 1
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	m := game.NewManager()
	results := make([]Result, n)

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)
	for i := 0; i < n; i++ {
		i := i
		c := cfg
		c.Seed = cfg.Seed + int64(i)
		eg.Go(func() error {
			r, err := Play(ctx, m, c)
			if err != nil {
				return fmt.Errorf("game %d: %w", i, err)
			}
			results[i] = r
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
