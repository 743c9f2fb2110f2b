package main

import (
	"flag"
	"log"
	"net/http"
	"os"
	"os/exec"
	"runtime"
	"time"

	"feudal/internal/feudal"
	"feudal/internal/server/game"
	httpserver "feudal/internal/server/http"
)

func openBrowser(url string) {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	case "darwin":
		cmd = exec.Command("open", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}

	// headless machines have nothing to open
	_ = cmd.Start()
}

func main() {
	addr := flag.String("addr", ":2888", "listen address")
	webDir := flag.String("web", "./web", "directory with the desktop front end")
	mobileDir := flag.String("web-mobile", "", "directory with the touch front end (defaults to -web)")
	boardPath := flag.String("board", "", "board data JSON ({\"tiles\": [[...]]}); built-in map if empty")
	noBrowser := flag.Bool("no-browser", false, "do not open a browser")
	flag.Parse()

	games := game.NewManager()
	if *boardPath != "" {
		f, err := os.Open(*boardPath)
		if err != nil {
			log.Fatalf("open board: %v", err)
		}
		grid, err := feudal.DecodeBoardData(f)
		f.Close()
		if err != nil {
			log.Fatalf("board %s: %v", *boardPath, err)
		}
		games.SetDefaultTerrain(grid)
		log.Printf("using board %s (%dx%d)", *boardPath, grid.Width(), grid.Height())
	}

	srv := httpserver.NewServer(games, *webDir, *mobileDir)
	log.Printf("listening on %s, serving static from %s", *addr, *webDir)

	if !*noBrowser {
		go func() {
			// give ListenAndServe a moment to bind
			time.Sleep(100 * time.Millisecond)
			openBrowser("http://127.0.0.1" + *addr)
		}()
	}

	if err := http.ListenAndServe(*addr, srv); err != nil {
		log.Fatal(err)
	}
}
