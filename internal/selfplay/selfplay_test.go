package selfplay

import (
	"context"
	"testing"

	"feudal/internal/server/game"
)

func TestPlayRecordsLegalMoves(t *testing.T) {
	m := game.NewManager()
	res, err := Play(context.Background(), m, Config{MaxPlies: 40, Seed: 9})
	if err != nil {
		t.Fatal(err)
	}
	if m.Len() != 0 {
		t.Fatalf("finished game still registered")
	}
	if res.Plies == 0 || res.Plies > 40 {
		t.Fatalf("plies = %d", res.Plies)
	}
	if res.Width != 24 || res.Height != 24 || res.Placed == 0 {
		t.Fatalf("result = %+v", res)
	}
	for i, mv := range res.Moves {
		if mv.Class == "illegal" || mv.GameID != res.GameID {
			t.Fatalf("move %d = %+v", i, mv)
		}
		if mv.FromX == mv.ToX && mv.FromY == mv.ToY {
			t.Fatalf("move %d goes nowhere: %+v", i, mv)
		}
	}
	if res.Winner != game.NoWinner {
		last := res.Moves[len(res.Moves)-1]
		if last.Class != "capture" || last.Player != int32(res.Winner) {
			t.Fatalf("winner %d after %+v", res.Winner, last)
		}
	}
	row := res.Row()
	if row.Players != 2 || row.Plies != int32(res.Plies) || row.Winner != int32(res.Winner) {
		t.Fatalf("row = %+v", row)
	}
}

func TestRunManyIsReproducible(t *testing.T) {
	run := func() []Result {
		rs, err := RunMany(context.Background(), Config{MaxPlies: 20, Seed: 100}, 4, 2)
		if err != nil {
			t.Fatal(err)
		}
		return rs
	}
	a, b := run(), run()
	if len(a) != 4 || len(b) != 4 {
		t.Fatalf("results %d and %d", len(a), len(b))
	}
	for i := range a {
		if a[i].Seed != int64(100+i) {
			t.Fatalf("game %d seed = %d", i, a[i].Seed)
		}
		if len(a[i].Moves) != len(b[i].Moves) {
			t.Fatalf("game %d: %d vs %d moves", i, len(a[i].Moves), len(b[i].Moves))
		}
		for j := range a[i].Moves {
			x, y := a[i].Moves[j], b[i].Moves[j]
			x.GameID, y.GameID = "", ""
			if x != y {
				t.Fatalf("game %d move %d: %+v vs %+v", i, j, x, y)
			}
		}
	}
}

func TestRunManyStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := RunMany(ctx, Config{MaxPlies: 10, Seed: 1}, 3, 3); err == nil {
		t.Fatalf("cancelled run returned no error")
	}
}

func TestRunManyNeedsGames(t *testing.T) {
	if _, err := RunMany(context.Background(), Config{}, 0, 1); err == nil {
		t.Fatalf("zero games accepted")
	}
}
