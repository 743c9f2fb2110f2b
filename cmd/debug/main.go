package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"feudal/internal/ai"
	"feudal/internal/feudal"
	"feudal/internal/tui"
)

func main() {
	boardPath := flag.String("board", "", "board data JSON; built-in map if empty")
	seed := flag.Int64("seed", 1, "placement seed")
	players := flag.Int("players", 2, "AI-placed armies")
	interactive := flag.Bool("tui", false, "open the interactive inspector")
	flag.Parse()

	terrain := feudal.DefaultTerrain()
	if *boardPath != "" {
		f, err := os.Open(*boardPath)
		if err != nil {
			log.Fatal(err)
		}
		terrain, err = feudal.DecodeBoardData(f)
		f.Close()
		if err != nil {
			log.Fatal(err)
		}
	}

	b := feudal.NewBoard(terrain)
	pl := ai.NewPlacer(*seed)
	for p := 0; p < *players; p++ {
		if _, err := pl.PlaceHand(b, feudal.PlayerID(p), feudal.StartingHand()); err != nil {
			log.Printf("player %d: %v", p, err)
		}
	}

	if *interactive {
		if err := tui.Run(b); err != nil {
			log.Fatal(err)
		}
		return
	}

	fmt.Println(terrain)
	fmt.Printf("hash: %016x\n", b.Hash())
	for p := 0; p < *players; p++ {
		total := 0
		for _, pc := range b.PiecesOf(feudal.PlayerID(p)) {
			n := len(feudal.GenerateMoves(b, pc))
			total += n
			fmt.Printf("  player %d %-11s (%2d,%2d) %3d moves\n", p, pc.Kind, pc.X, pc.Y, n)
		}
		fmt.Printf("player %d: %d moves\n", p, total)
	}
}
