package httpserver

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"feudal/internal/feudal"
	"feudal/internal/server/game"
)

// Handler serves /api/* for the local browser front end.
type Handler struct {
	games *game.Manager

	// WatchInterval is how often /api/watch polls a game for changes.
	WatchInterval time.Duration
	upgrader      websocket.Upgrader
}

func NewHandler(games *game.Manager) *Handler {
	if games == nil {
		games = game.NewManager()
	}
	return &Handler{
		games:         games,
		WatchInterval: 200 * time.Millisecond,
		upgrader: websocket.Upgrader{
			// The front end is served from this same process.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

func (h *Handler) Games() *game.Manager { return h.games }

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == "/api/watch" {
		h.handleWatch(w, r)
		return
	}

	var fn func(http.ResponseWriter, *http.Request)
	switch r.URL.Path {
	case "/api/new_game":
		fn = h.handleNewGame
	case "/api/state":
		fn = h.handleState
	case "/api/advance":
		fn = h.handleAdvance
	case "/api/rotate":
		fn = h.handleRotate
	case "/api/place":
		fn = h.handlePlace
	case "/api/finish_placement":
		fn = h.handleFinishPlacement
	case "/api/moves":
		fn = h.handleMoves
	case "/api/move":
		fn = h.handleMove
	case "/api/end_turn":
		fn = h.handleEndTurn
	default:
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	fn(w, r)
}

func (h *Handler) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req NewGameRequest
	if !decode(w, r, &req) {
		return
	}
	cfg := game.Config{AI: req.AI, Seed: req.Seed}
	if len(cfg.AI) == 0 {
		cfg.AI = []bool{false, true}
	}
	if strings.TrimSpace(req.Board) != "" {
		grid, err := feudal.ParseTerrain(req.Board)
		if err != nil {
			writeError(w, err)
			return
		}
		cfg.Terrain = grid
	}

	g, err := h.games.NewGame(cfg)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	log.Printf("new game %s, %d players", g.ID, len(cfg.AI))
	writeJSON(w, viewToState(g.Snapshot()))
}

func (h *Handler) handleState(w http.ResponseWriter, r *http.Request) {
	var req GameRequest
	g, ok := h.lookup(w, r, &req, func() string { return req.GameID })
	if !ok {
		return
	}
	writeJSON(w, viewToState(g.Snapshot()))
}

func (h *Handler) handleAdvance(w http.ResponseWriter, r *http.Request) {
	var req GameRequest
	g, ok := h.lookup(w, r, &req, func() string { return req.GameID })
	if !ok {
		return
	}
	if err := g.Advance(); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, viewToState(g.Snapshot()))
}

func (h *Handler) handleRotate(w http.ResponseWriter, r *http.Request) {
	var req RotateRequest
	g, ok := h.lookup(w, r, &req, func() string { return req.GameID })
	if !ok {
		return
	}
	if err := g.RotateBoard(req.Clockwise); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, viewToState(g.Snapshot()))
}

func (h *Handler) handlePlace(w http.ResponseWriter, r *http.Request) {
	var req PlaceRequest
	g, ok := h.lookup(w, r, &req, func() string { return req.GameID })
	if !ok {
		return
	}
	kind, err := feudal.ParseKind(req.Kind)
	if err != nil {
		writeError(w, err)
		return
	}
	p, err := g.Place(feudal.PlayerID(req.Player), kind, req.X, req.Y, feudal.Rotation(req.Rotation))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, PlaceResponse{Piece: pieceToDTO(p), State: viewToState(g.Snapshot())})
}

func (h *Handler) handleFinishPlacement(w http.ResponseWriter, r *http.Request) {
	var req PlayerRequest
	g, ok := h.lookup(w, r, &req, func() string { return req.GameID })
	if !ok {
		return
	}
	if err := g.FinishPlacement(feudal.PlayerID(req.Player)); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, viewToState(g.Snapshot()))
}

func (h *Handler) handleMoves(w http.ResponseWriter, r *http.Request) {
	var req MovesRequest
	g, ok := h.lookup(w, r, &req, func() string { return req.GameID })
	if !ok {
		return
	}
	moves, err := g.Moves(feudal.PieceID(req.PieceID))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, MovesResponse{PieceID: req.PieceID, Moves: movesToDTO(moves)})
}

func (h *Handler) handleMove(w http.ResponseWriter, r *http.Request) {
	var req MoveRequest
	g, ok := h.lookup(w, r, &req, func() string { return req.GameID })
	if !ok {
		return
	}
	m, err := g.Move(feudal.PlayerID(req.Player), feudal.PieceID(req.PieceID), req.X, req.Y)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, MoveResponse{Move: moveToDTO(m), State: viewToState(g.Snapshot())})
}

func (h *Handler) handleEndTurn(w http.ResponseWriter, r *http.Request) {
	var req PlayerRequest
	g, ok := h.lookup(w, r, &req, func() string { return req.GameID })
	if !ok {
		return
	}
	if err := g.EndTurn(feudal.PlayerID(req.Player)); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, viewToState(g.Snapshot()))
}

// handleWatch streams the game over a websocket: a "state" frame on every
// change, then "game_end" once the game is over.
func (h *Handler) handleWatch(w http.ResponseWriter, r *http.Request) {
	g, err := h.games.Get(r.URL.Query().Get("game_id"))
	if err != nil {
		writeError(w, err)
		return
	}
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("watch %s: upgrade: %v", g.ID, err)
		return
	}
	defer conn.Close()

	// The client never sends anything; reading only notices it leaving.
	gone := make(chan struct{})
	go func() {
		defer close(gone)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(h.WatchInterval)
	defer ticker.Stop()
	var last time.Time
	for {
		v := g.Snapshot()
		if !v.UpdatedAt.Equal(last) {
			last = v.UpdatedAt
			state := viewToState(v)
			if err := conn.WriteJSON(WatchEvent{Type: "state", Data: &state}); err != nil {
				return
			}
		}
		if v.Stage == game.StageGameOver {
			_ = conn.WriteJSON(WatchEvent{Type: "game_end"})
			_ = conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, "game over"))
			return
		}
		select {
		case <-gone:
			return
		case <-r.Context().Done():
			return
		case <-ticker.C:
		}
	}
}

// lookup decodes the request body into req and fetches the game named by id.
func (h *Handler) lookup(w http.ResponseWriter, r *http.Request, req any, id func() string) (*game.GameState, bool) {
	if !decode(w, r, req) {
		return nil, false
	}
	g, err := h.games.Get(id())
	if err != nil {
		writeError(w, err)
		return nil, false
	}
	return g, true
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return false
	}
	return true
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, game.ErrGameNotFound), errors.Is(err, feudal.ErrUnknownPiece):
		return http.StatusNotFound
	case errors.Is(err, game.ErrWrongStage), errors.Is(err, game.ErrNotYourTurn),
		errors.Is(err, game.ErrPlacementPending):
		return http.StatusConflict
	}
	return http.StatusBadRequest
}

func writeError(w http.ResponseWriter, err error) {
	http.Error(w, err.Error(), statusFor(err))
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Println("writeJSON error:", err)
	}
}
