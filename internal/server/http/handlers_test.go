package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"feudal/internal/server/game"
)

const testBoard = `
........
........
........
........
........
........
........
........`

func post(t *testing.T, h http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	buf, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, path, bytes.NewReader(buf)))
	return rec
}

func decodeInto[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return v
}

// placementGame returns a two-human game in placement, and who places first.
func placementGame(t *testing.T, h http.Handler) (string, int) {
	t.Helper()
	st := decodeInto[StateResponse](t, post(t, h, "/api/new_game", NewGameRequest{AI: []bool{false, false}, Board: testBoard, Seed: 5}))
	if st.Stage != "cointoss" || st.Width != 8 || st.Height != 8 {
		t.Fatalf("new game = %+v", st)
	}
	decodeInto[StateResponse](t, post(t, h, "/api/advance", GameRequest{GameID: st.GameID}))
	st = decodeInto[StateResponse](t, post(t, h, "/api/advance", GameRequest{GameID: st.GameID}))
	if st.Stage != "placement" {
		t.Fatalf("stage = %s", st.Stage)
	}
	return st.GameID, st.PlayerTurn
}

func TestNewGameDefaults(t *testing.T) {
	h := NewHandler(nil)
	st := decodeInto[StateResponse](t, post(t, h, "/api/new_game", NewGameRequest{}))
	if st.Width != 24 || st.Height != 24 {
		t.Fatalf("default board %dx%d", st.Width, st.Height)
	}
	if len(st.AIPlayers) != 1 || st.AIPlayers[0] != 1 {
		t.Fatalf("ai players = %v", st.AIPlayers)
	}
	if len(st.Hands) != 2 || st.Hands[0].Pieces["king"] != 1 {
		t.Fatalf("hands = %+v", st.Hands)
	}
	if h.Games().Len() != 1 {
		t.Fatalf("games = %d", h.Games().Len())
	}
}

func TestPlaceAndMoveOverHTTP(t *testing.T) {
	h := NewHandler(nil)
	id, first := placementGame(t, h)
	second := 1 - first

	pr := decodeInto[PlaceResponse](t, post(t, h, "/api/place", PlaceRequest{GameID: id, Player: first, Kind: "King", X: 3, Y: 3}))
	if pr.Piece.Kind != "king" || pr.State.Hands[first].Pieces["king"] != 0 {
		t.Fatalf("place = %+v", pr)
	}
	kingID := pr.Piece.ID

	castle := decodeInto[PlaceResponse](t, post(t, h, "/api/place", PlaceRequest{GameID: id, Player: first, Kind: "castleInner", X: 6, Y: 6, Rotation: 3}))
	if castle.Piece.Linked == 0 || len(castle.State.Pieces) != 3 {
		t.Fatalf("castle = %+v", castle)
	}

	decodeInto[StateResponse](t, post(t, h, "/api/finish_placement", PlayerRequest{GameID: id, Player: first}))
	decodeInto[PlaceResponse](t, post(t, h, "/api/place", PlaceRequest{GameID: id, Player: second, Kind: "king", X: 4, Y: 4}))
	st := decodeInto[StateResponse](t, post(t, h, "/api/finish_placement", PlayerRequest{GameID: id, Player: second}))
	if st.Stage != "play" || st.PlayerTurn != first {
		t.Fatalf("after placement: %s, turn %d", st.Stage, st.PlayerTurn)
	}

	mv := decodeInto[MovesResponse](t, post(t, h, "/api/moves", MovesRequest{GameID: id, PieceID: kingID}))
	found := false
	for _, m := range mv.Moves {
		if m.X == 4 && m.Y == 4 && m.Class == "capture" {
			found = true
		}
	}
	if !found {
		t.Fatalf("capture missing from %+v", mv.Moves)
	}

	res := decodeInto[MoveResponse](t, post(t, h, "/api/move", MoveRequest{GameID: id, Player: first, PieceID: kingID, X: 3, Y: 2}))
	if res.Move.Class != "normal" || res.State.Version == st.Version {
		t.Fatalf("move = %+v", res)
	}
	st = decodeInto[StateResponse](t, post(t, h, "/api/end_turn", PlayerRequest{GameID: id, Player: first}))
	if st.PlayerTurn != second || st.Turn != 1 {
		t.Fatalf("after end turn: %+v", st)
	}
}

func TestErrorStatus(t *testing.T) {
	h := NewHandler(nil)
	id, first := placementGame(t, h)

	cases := []struct {
		name string
		path string
		body any
		want int
	}{
		{"unknown game", "/api/state", GameRequest{GameID: "nope"}, http.StatusNotFound},
		{"unknown piece", "/api/moves", MovesRequest{GameID: id, PieceID: 42}, http.StatusNotFound},
		{"wrong stage", "/api/rotate", RotateRequest{GameID: id}, http.StatusConflict},
		{"not your turn", "/api/place", PlaceRequest{GameID: id, Player: 1 - first, Kind: "king"}, http.StatusConflict},
		{"placement pending", "/api/advance", GameRequest{GameID: id}, http.StatusConflict},
		{"bad kind", "/api/place", PlaceRequest{GameID: id, Player: first, Kind: "dragon"}, http.StatusBadRequest},
		{"off board", "/api/place", PlaceRequest{GameID: id, Player: first, Kind: "king", X: 9}, http.StatusBadRequest},
		{"too many players", "/api/new_game", NewGameRequest{AI: make([]bool, 7)}, http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if rec := post(t, h, tc.path, tc.body); rec.Code != tc.want {
				t.Fatalf("status = %d, want %d: %s", rec.Code, tc.want, rec.Body.String())
			}
		})
	}
}

func TestMethodAndRouting(t *testing.T) {
	h := NewHandler(nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/state", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("GET status = %d", rec.Code)
	}
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/ai_move", strings.NewReader("{}")))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unknown route status = %d", rec.Code)
	}
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/state", strings.NewReader("{")))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("bad json status = %d", rec.Code)
	}
}

func TestWatchStreamsUntilGameOver(t *testing.T) {
	m := game.NewManager()
	h := NewHandler(m)
	h.WatchInterval = 10 * time.Millisecond
	srv := httptest.NewServer(h)
	defer srv.Close()

	g, err := m.NewGame(game.Config{AI: []bool{false, false}, Seed: 2})
	if err != nil {
		t.Fatal(err)
	}
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/watch?game_id=" + g.ID
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	var ev WatchEvent
	if err := conn.ReadJSON(&ev); err != nil || ev.Type != "state" || ev.Data.Stage != "cointoss" {
		t.Fatalf("first frame = %+v, %v", ev, err)
	}
	if err := g.Advance(); err != nil {
		t.Fatal(err)
	}

	stages := []string{}
	for {
		ev = WatchEvent{}
		if err := conn.ReadJSON(&ev); err != nil {
			t.Fatalf("read: %v (stages %v)", err, stages)
		}
		if ev.Type == "game_end" {
			break
		}
		stages = append(stages, ev.Data.Stage)
		if ev.Data.Stage == "positioning" {
			// positioning -> placement -> play -> gameover, no AI involved
			if err := g.Advance(); err != nil {
				t.Fatal(err)
			}
			for range g.Players {
				if err := g.FinishPlacement(g.Snapshot().PlayerTurn); err != nil {
					t.Fatal(err)
				}
			}
			if err := g.Advance(); err != nil {
				t.Fatal(err)
			}
		}
	}
	if len(stages) == 0 || stages[0] != "positioning" {
		t.Fatalf("stages = %v", stages)
	}
}

func TestWatchUnknownGame(t *testing.T) {
	h := NewHandler(nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/watch?game_id=x", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rec.Code)
	}
}
