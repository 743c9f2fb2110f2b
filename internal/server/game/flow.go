package game

import (
	"errors"
	"fmt"
	"log"

	"feudal/internal/feudal"
)

var (
	ErrWrongStage       = errors.New("not allowed in this stage")
	ErrNotYourTurn      = errors.New("not your turn")
	ErrNotYourPiece     = errors.New("not your piece")
	ErrUnknownPlayer    = errors.New("unknown player")
	ErrPlacementPending = errors.New("players still placing")
)

// Advance moves the game to its next stage.
func (g *GameState) Advance() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	switch g.Stage {
	case StageCoinToss:
		g.FlipWinner = feudal.PlayerID(g.rng.Intn(len(g.Players)))
		g.Stage = StagePositioning
	case StagePositioning:
		g.Stage = StagePlacement
		g.PlayerTurn = g.FlipWinner
		g.Turn = 0
		g.runAIPlacement()
	case StagePlacement:
		for _, p := range g.Players {
			if !p.Finished {
				return fmt.Errorf("%w: player %d", ErrPlacementPending, p.Number)
			}
		}
		g.startPlay()
	case StagePlay:
		g.Stage = StageGameOver
	default:
		return fmt.Errorf("%w: %s is the last stage", ErrWrongStage, g.Stage)
	}
	log.Printf("game %s: advanced to %s", g.ID, g.Stage)
	g.touch()
	return nil
}

// RotateBoard turns the map a quarter turn. The board is rebuilt from the
// rotated terrain, so any piece on it is dropped.
func (g *GameState) RotateBoard(clockwise bool) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.expectStage(StagePositioning); err != nil {
		return err
	}
	if clockwise {
		g.Terrain = g.Terrain.RotateClockwise()
		g.Rotations = (g.Rotations + 1) % 4
	} else {
		g.Terrain = g.Terrain.RotateCounterClockwise()
		g.Rotations = (g.Rotations + 3) % 4
	}
	g.Board = feudal.NewBoard(g.Terrain)
	g.touch()
	return nil
}

// Place puts a piece from the player's hand on the board.
func (g *GameState) Place(player feudal.PlayerID, kind feudal.PieceKind, x, y int, rot feudal.Rotation) (feudal.Piece, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	p, err := g.actingPlayer(player, StagePlacement)
	if err != nil {
		return feudal.Piece{}, err
	}
	if p.Hand[kind] <= 0 {
		return feudal.Piece{}, fmt.Errorf("%w: %s", feudal.ErrNotInHand, kind)
	}
	piece, err := g.Board.Place(kind, player, x, y, rot)
	if err != nil {
		return feudal.Piece{}, err
	}
	if err := p.Hand.Take(kind); err != nil {
		return feudal.Piece{}, err
	}
	g.touch()
	return piece, nil
}

// FinishPlacement ends the player's placement turn, placed out or not.
func (g *GameState) FinishPlacement(player feudal.PlayerID) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	p, err := g.actingPlayer(player, StagePlacement)
	if err != nil {
		return err
	}
	p.Finished = true
	g.nextPlacementTurn()
	g.runAIPlacement()
	g.touch()
	return nil
}

// Moves lists the destinations of a piece for highlighting.
func (g *GameState) Moves(id feudal.PieceID) ([]feudal.Move, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	piece, ok := g.Board.Piece(id)
	if !ok {
		return nil, fmt.Errorf("%w: %d", feudal.ErrUnknownPiece, id)
	}
	return feudal.GenerateMoves(g.Board, piece), nil
}

// Move plays one of the piece's generated moves.
func (g *GameState) Move(player feudal.PlayerID, id feudal.PieceID, x, y int) (feudal.Move, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, err := g.actingPlayer(player, StagePlay); err != nil {
		return feudal.Move{}, err
	}
	piece, ok := g.Board.Piece(id)
	if !ok {
		return feudal.Move{}, fmt.Errorf("%w: %d", feudal.ErrUnknownPiece, id)
	}
	if piece.Owner != player {
		return feudal.Move{}, fmt.Errorf("%w: %d", ErrNotYourPiece, id)
	}
	m, ok := feudal.FindMove(feudal.GenerateMoves(g.Board, piece), x, y)
	if !ok {
		return feudal.Move{}, fmt.Errorf("%w: %s to (%d, %d)", feudal.ErrMoveNotAllowed, piece.Kind, x, y)
	}

	if m.Class == feudal.Capture {
		victim := g.Board.OccupantsAt(x, y).Ground
		if err := g.Board.Capture(id, x, y); err != nil {
			return feudal.Move{}, err
		}
		if victim != nil && victim.Kind == feudal.King {
			g.checkKings(player)
		}
	} else if err := g.Board.Move(id, x, y); err != nil {
		return feudal.Move{}, err
	}
	g.touch()
	return m, nil
}

// EndTurn passes play to the next player.
func (g *GameState) EndTurn(player feudal.PlayerID) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, err := g.actingPlayer(player, StagePlay); err != nil {
		return err
	}
	g.Turn++
	g.PlayerTurn = g.nextPlayer(g.PlayerTurn)
	g.touch()
	return nil
}

func (g *GameState) expectStage(s Stage) error {
	if g.Stage != s {
		return fmt.Errorf("%w: in %s, want %s", ErrWrongStage, g.Stage, s)
	}
	return nil
}

func (g *GameState) player(n feudal.PlayerID) (*Player, error) {
	if n < 0 || int(n) >= len(g.Players) {
		return nil, fmt.Errorf("%w: %d", ErrUnknownPlayer, n)
	}
	return g.Players[n], nil
}

func (g *GameState) actingPlayer(n feudal.PlayerID, s Stage) (*Player, error) {
	p, err := g.player(n)
	if err != nil {
		return nil, err
	}
	if err := g.expectStage(s); err != nil {
		return nil, err
	}
	if g.PlayerTurn != n {
		return nil, fmt.Errorf("%w: player %d to act", ErrNotYourTurn, g.PlayerTurn)
	}
	return p, nil
}

func (g *GameState) nextPlayer(n feudal.PlayerID) feudal.PlayerID {
	return feudal.PlayerID((int(n) + 1) % len(g.Players))
}

func (g *GameState) nextPlacementTurn() {
	g.Turn++
	for _, p := range g.Players {
		if !p.Finished {
			g.PlayerTurn = g.nextPlayer(g.PlayerTurn)
			for g.Players[g.PlayerTurn].Finished {
				g.PlayerTurn = g.nextPlayer(g.PlayerTurn)
			}
			return
		}
	}
	g.startPlay()
}

// runAIPlacement lets AI players place while it is their placement turn.
// A starved AI keeps what it placed; the game goes on.
func (g *GameState) runAIPlacement() {
	for g.Stage == StagePlacement {
		p := g.Players[g.PlayerTurn]
		if !p.IsAI || p.Finished {
			return
		}
		if _, err := g.placer.PlaceHand(g.Board, p.Number, p.Hand); err != nil {
			log.Printf("game %s: AI player %d placement: %v", g.ID, p.Number, err)
		}
		p.Finished = true
		g.nextPlacementTurn()
	}
}

func (g *GameState) startPlay() {
	g.Stage = StagePlay
	g.Turn = 0
	g.PlayerTurn = g.FlipWinner
}

// checkKings ends the game once a single player still has a king.
func (g *GameState) checkKings(mover feudal.PlayerID) {
	alive := make(map[feudal.PlayerID]bool)
	for _, p := range g.Board.Pieces() {
		if p.Kind == feudal.King {
			alive[p.Owner] = true
		}
	}
	if len(alive) > 1 {
		return
	}
	g.Stage = StageGameOver
	g.Winner = mover
	log.Printf("game %s: player %d wins", g.ID, mover)
}
