package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"

	"feudal/internal/ai"
	"feudal/internal/feudal"
)

// TestCase is one move-generation fixture for the browser front end: a
// position, a selected piece and every destination it has.
type TestCase struct {
	Tiles  [][]int     `json:"tiles"`
	Pieces []PieceJSON `json:"pieces"`
	Piece  int32       `json:"piece"`
	Moves  []MoveJSON  `json:"moves"`
	Checks []MoveJSON  `json:"checks"` // CanMove probes at random cells, mostly illegal
}

type PieceJSON struct {
	ID     int32  `json:"id"`
	Kind   string `json:"kind"`
	Owner  int    `json:"owner"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Linked int32  `json:"linked,omitempty"`
}

type MoveJSON struct {
	X     int    `json:"x"`
	Y     int    `json:"y"`
	Class string `json:"class"`
}

func snapshot(b *feudal.Board) ([][]int, []PieceJSON) {
	rows := b.Terrain().Rows()
	tiles := make([][]int, len(rows))
	for y, row := range rows {
		tiles[y] = make([]int, len(row))
		for x, t := range row {
			tiles[y][x] = int(t)
		}
	}
	var pieces []PieceJSON
	for _, p := range b.Pieces() {
		pieces = append(pieces, PieceJSON{ID: int32(p.ID), Kind: p.Kind.String(), Owner: int(p.Owner), X: p.X, Y: p.Y, Linked: int32(p.Linked)})
	}
	return tiles, pieces
}

func main() {
	numGames := flag.Int("games", 10, "random games to sample")
	plies := flag.Int("plies", 200, "plies per game")
	seed := flag.Int64("seed", 1, "random seed")
	out := flag.String("out", "move_gen_test_data.json", "output file")
	flag.Parse()

	rng := rand.New(rand.NewSource(*seed))
	var testCases []TestCase

	for g := 0; g < *numGames; g++ {
		b := feudal.NewBoard(feudal.DefaultTerrain())
		pl := &ai.Placer{Rand: rng, Quiet: true}
		for p := feudal.PlayerID(0); p < 2; p++ {
			if _, err := pl.PlaceHand(b, p, feudal.StartingHand()); err != nil {
				log.Printf("game %d: %v", g, err)
			}
		}

		for ply := 0; ply < *plies; ply++ {
			var movers []feudal.Piece
			for _, p := range b.PiecesOf(feudal.PlayerID(ply % 2)) {
				if !p.Kind.Fixture() {
					movers = append(movers, p)
				}
			}
			if len(movers) == 0 {
				break
			}
			p := movers[rng.Intn(len(movers))]
			moves := feudal.GenerateMoves(b, p)

			tc := TestCase{Piece: int32(p.ID)}
			tc.Tiles, tc.Pieces = snapshot(b)
			for _, m := range moves {
				tc.Moves = append(tc.Moves, MoveJSON{X: m.X, Y: m.Y, Class: m.Class.String()})
			}
			// a few random probes anywhere on the board
			for i := 0; i < 4; i++ {
				x, y := rng.Intn(b.Width()), rng.Intn(b.Height())
				tc.Checks = append(tc.Checks, MoveJSON{X: x, Y: y, Class: feudal.CanMove(b, p, x, y).String()})
			}
			testCases = append(testCases, tc)

			if len(moves) == 0 {
				continue
			}
			m := moves[rng.Intn(len(moves))]
			var err error
			if m.Class == feudal.Capture {
				err = b.Capture(p.ID, m.X, m.Y)
			} else {
				err = b.Move(p.ID, m.X, m.Y)
			}
			if err != nil {
				log.Fatalf("game %d ply %d: %v", g, ply, err)
			}
		}
	}

	file, err := json.MarshalIndent(testCases, "", "  ")
	if err != nil {
		log.Fatal(err)
	}
	if err := os.WriteFile(*out, file, 0o644); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Generated %d test cases from %d random games to %s\n", len(testCases), *numGames, *out)
}
