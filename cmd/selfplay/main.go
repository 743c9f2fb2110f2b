package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"feudal/internal/feudal"
	"feudal/internal/record"
	"feudal/internal/selfplay"
)

func main() {
	games := flag.Int("games", 10, "number of games to play")
	workers := flag.Int("workers", 4, "games played at once")
	players := flag.Int("players", 2, "players per game")
	plies := flag.Int("plies", selfplay.DefaultMaxPlies, "max plies per game")
	seed := flag.Int64("seed", 1, "seed of the first game; game i uses seed+i")
	boardPath := flag.String("board", "", "board data JSON; built-in map if empty")
	outDir := flag.String("out", "", "directory for moves.parquet and games.parquet")
	bench := flag.Duration("bench", 0, "instead of playing, time move generation for this long")
	flag.Parse()

	cfg := selfplay.Config{Players: *players, MaxPlies: *plies, Seed: *seed}
	if *boardPath != "" {
		f, err := os.Open(*boardPath)
		if err != nil {
			log.Fatalf("open board: %v", err)
		}
		cfg.Terrain, err = feudal.DecodeBoardData(f)
		f.Close()
		if err != nil {
			log.Fatalf("board %s: %v", *boardPath, err)
		}
	}

	if *bench > 0 {
		runBenchmark(cfg, *bench)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	results, err := selfplay.RunMany(ctx, cfg, *games, *workers)
	if err != nil {
		log.Fatalf("selfplay: %v", err)
	}
	s := summarize(results)
	log.Printf("%d games in %v", len(results), time.Since(start))
	fmt.Print(s)

	if *outDir != "" {
		if err := write(*outDir, results); err != nil {
			log.Fatalf("write records: %v", err)
		}
		log.Printf("records written to %s", *outDir)
	}
}

func write(dir string, results []selfplay.Result) error {
	var moves []record.MoveRow
	games := make([]record.GameRow, 0, len(results))
	for _, r := range results {
		moves = append(moves, r.Moves...)
		games = append(games, r.Row())
	}
	if err := record.WriteMoves(filepath.Join(dir, "moves.parquet"), moves); err != nil {
		return err
	}
	return record.WriteGames(filepath.Join(dir, "games.parquet"), games)
}
