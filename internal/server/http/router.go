package httpserver

import (
	"net/http"

	"feudal/internal/server/game"
)

// Server is the whole local site: /api/* plus the static front ends.
type Server struct {
	api *Handler
	mux *http.ServeMux
}

// NewServer wires the API and the asset directories. mobileDir may be
// empty, in which case both views share webDir.
func NewServer(games *game.Manager, webDir, mobileDir string) *Server {
	s := &Server{api: NewHandler(games), mux: http.NewServeMux()}
	s.mux.Handle("/api/", s.api)
	RegisterStaticRoutes(s.mux, webDir, mobileDir)
	return s
}

func (s *Server) API() *Handler { return s.api }

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}
