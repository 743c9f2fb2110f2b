package main

import (
	"fmt"
	"log"
	"strings"
	"time"

	"feudal/internal/ai"
	"feudal/internal/feudal"
	"feudal/internal/selfplay"
	"feudal/internal/server/game"
)

type summary struct {
	games, decided, starved int
	plies                   int
	captures                int
	wins                    map[feudal.PlayerID]int
}

func summarize(results []selfplay.Result) summary {
	s := summary{wins: make(map[feudal.PlayerID]int)}
	for _, r := range results {
		s.games++
		s.plies += r.Plies
		if r.Starved {
			s.starved++
		}
		if r.Winner != game.NoWinner {
			s.decided++
			s.wins[r.Winner]++
		}
		for _, m := range r.Moves {
			if m.Class == feudal.Capture.String() {
				s.captures++
			}
		}
	}
	return s
}

func (s summary) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "=== %d games ===\n", s.games)
	if s.games > 0 {
		fmt.Fprintf(&sb, "avg plies: %.1f, captures: %d, starved placements: %d\n",
			float64(s.plies)/float64(s.games), s.captures, s.starved)
	}
	for p := feudal.PlayerID(0); p < feudal.MaxPlayers; p++ {
		if n := s.wins[p]; n > 0 {
			fmt.Fprintf(&sb, "player %d: %d wins\n", p, n)
		}
	}
	fmt.Fprintf(&sb, "undecided: %d\n", s.games-s.decided)
	return sb.String()
}

// runBenchmark places random armies and generates every piece's moves in a
// loop, reporting generated moves per second.
func runBenchmark(cfg selfplay.Config, d time.Duration) {
	terrain := cfg.Terrain
	if terrain == nil {
		terrain = feudal.DefaultTerrain()
	}
	players := cfg.Players
	if players == 0 {
		players = 2
	}
	b := feudal.NewBoard(terrain)
	pl := ai.NewPlacer(cfg.Seed)
	for p := 0; p < players; p++ {
		if _, err := pl.PlaceHand(b, feudal.PlayerID(p), feudal.StartingHand()); err != nil {
			log.Printf("bench: %v", err)
		}
	}
	pieces := b.Pieces()

	var calls, moves int64
	start := time.Now()
	for time.Since(start) < d {
		for _, p := range pieces {
			moves += int64(len(feudal.GenerateMoves(b, p)))
			calls++
		}
	}
	el := time.Since(start)
	fmt.Printf("%d pieces, %d generations, %d moves in %v (%d moves/s)\n",
		len(pieces), calls, moves, el, int64(float64(moves)/el.Seconds()))
}
