// Package mobile is the gomobile entry point: the app unpacks the web
// assets and calls StartServer, then points a WebView at the port.
package mobile

import (
	"log"
	"net/http"

	"feudal/internal/server/game"
	httpserver "feudal/internal/server/http"
)

// StartServer serves webDir and the API on 127.0.0.1:port in the
// background so the Android UI thread is not blocked.
func StartServer(webDir string, port string) {
	srv := httpserver.NewServer(game.NewManager(), webDir, webDir)
	go func() {
		if err := http.ListenAndServe("127.0.0.1:"+port, srv); err != nil {
			log.Printf("Server Error: %v", err)
		}
	}()
}
