package httpserver

import (
	"strconv"

	"feudal/internal/feudal"
	"feudal/internal/server/game"
)

// NewGameRequest starts a game. An empty AI list means one human (player 0)
// against one AI (player 1).
type NewGameRequest struct {
	AI    []bool `json:"ai"`
	Board string `json:"board"` // optional text layout, '.', 'h', 'm'
	Seed  int64  `json:"seed"`
}

type GameRequest struct {
	GameID string `json:"game_id"`
}

type RotateRequest struct {
	GameID    string `json:"game_id"`
	Clockwise bool   `json:"clockwise"`
}

type PlaceRequest struct {
	GameID   string `json:"game_id"`
	Player   int    `json:"player"`
	Kind     string `json:"kind"`
	X        int    `json:"x"`
	Y        int    `json:"y"`
	Rotation int    `json:"rotation"` // 0 right, 1 down, 2 left, 3 up
}

type PlayerRequest struct {
	GameID string `json:"game_id"`
	Player int    `json:"player"`
}

type MovesRequest struct {
	GameID  string `json:"game_id"`
	PieceID int32  `json:"piece_id"`
}

type MoveRequest struct {
	GameID  string `json:"game_id"`
	Player  int    `json:"player"`
	PieceID int32  `json:"piece_id"`
	X       int    `json:"x"`
	Y       int    `json:"y"`
}

type PieceDTO struct {
	ID     int32  `json:"id"`
	Kind   string `json:"kind"`
	Owner  int    `json:"owner"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Linked int32  `json:"linked,omitempty"`
	Facing int    `json:"facing"`
}

type HandDTO struct {
	Player int            `json:"player"`
	Pieces map[string]int `json:"pieces"`
}

type MoveDTO struct {
	X     int    `json:"x"`
	Y     int    `json:"y"`
	Class string `json:"class"`
}

// StateResponse is what every mutating endpoint returns. Version changes
// whenever the pieces on the board change.
type StateResponse struct {
	GameID     string     `json:"game_id"`
	Stage      string     `json:"stage"`
	Width      int        `json:"width"`
	Height     int        `json:"height"`
	Tiles      [][]int    `json:"tiles"`
	Pieces     []PieceDTO `json:"pieces"`
	Hands      []HandDTO  `json:"hands"`
	AIPlayers  []int      `json:"ai_players"`
	FlipWinner int        `json:"flip_winner"`
	Turn       int        `json:"turn"`
	PlayerTurn int        `json:"player_turn"`
	Rotations  int        `json:"rotations"`
	Winner     int        `json:"winner"`
	Version    string     `json:"version"`
}

type PlaceResponse struct {
	Piece PieceDTO      `json:"piece"`
	State StateResponse `json:"state"`
}

type MovesResponse struct {
	PieceID int32     `json:"piece_id"`
	Moves   []MoveDTO `json:"moves"`
}

type MoveResponse struct {
	Move  MoveDTO       `json:"move"`
	State StateResponse `json:"state"`
}

// WatchEvent is one websocket frame on /api/watch.
type WatchEvent struct {
	Type string         `json:"type"` // "state" or "game_end"
	Data *StateResponse `json:"data,omitempty"`
}

func pieceToDTO(p feudal.Piece) PieceDTO {
	return PieceDTO{
		ID:     int32(p.ID),
		Kind:   p.Kind.String(),
		Owner:  int(p.Owner),
		X:      p.X,
		Y:      p.Y,
		Linked: int32(p.Linked),
		Facing: int(p.Facing),
	}
}

func moveToDTO(m feudal.Move) MoveDTO {
	return MoveDTO{X: m.X, Y: m.Y, Class: m.Class.String()}
}

func movesToDTO(ms []feudal.Move) []MoveDTO {
	out := make([]MoveDTO, len(ms))
	for i, m := range ms {
		out[i] = moveToDTO(m)
	}
	return out
}

func viewToState(v game.View) StateResponse {
	resp := StateResponse{
		GameID:     v.ID,
		Stage:      v.Stage.String(),
		Height:     len(v.Terrain),
		Tiles:      make([][]int, len(v.Terrain)),
		Pieces:     make([]PieceDTO, len(v.Pieces)),
		FlipWinner: int(v.FlipWinner),
		Turn:       v.Turn,
		PlayerTurn: int(v.PlayerTurn),
		Rotations:  v.Rotations,
		Winner:     int(v.Winner),
		Version:    strconv.FormatUint(v.Hash, 16),
	}
	if resp.Height > 0 {
		resp.Width = len(v.Terrain[0])
	}
	for y, row := range v.Terrain {
		resp.Tiles[y] = make([]int, len(row))
		for x, t := range row {
			resp.Tiles[y][x] = int(t)
		}
	}
	for i, p := range v.Pieces {
		resp.Pieces[i] = pieceToDTO(p)
	}
	for player := 0; player < len(v.Hands); player++ {
		h := HandDTO{Player: player, Pieces: map[string]int{}}
		for _, k := range v.Hands[feudal.PlayerID(player)].Order() {
			h.Pieces[k.String()] = v.Hands[feudal.PlayerID(player)][k]
		}
		resp.Hands = append(resp.Hands, h)
	}
	for _, p := range v.AIPlayers {
		resp.AIPlayers = append(resp.AIPlayers, int(p))
	}
	return resp
}
