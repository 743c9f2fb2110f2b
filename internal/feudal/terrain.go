package feudal

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

type Terrain int8

const (
	NoTerrain  Terrain = 0 // off-board sentinel
	Open       Terrain = 1 // grass
	Rough      Terrain = 2 // hill
	Impassable Terrain = 3 // mountain
)

func (t Terrain) Valid() bool { return t >= Open && t <= Impassable }

func (t Terrain) String() string {
	switch t {
	case Open:
		return "grass"
	case Rough:
		return "hill"
	case Impassable:
		return "mountain"
	}
	return "none"
}

var terrainChars = map[rune]Terrain{
	'.': Open,
	'h': Rough,
	'm': Impassable,
}

func terrainToChar(t Terrain) rune {
	for ch, v := range terrainChars {
		if v == t {
			return ch
		}
	}
	return '?'
}

// Grid is the per-game terrain. It is never mutated once built; rotation
// returns a new grid.
type Grid struct {
	w, h  int
	cells []Terrain // row-major
}

var ErrInvalidTerrain = errors.New("invalid terrain")

// NewGrid copies rows (indexed [y][x]) into a grid.
func NewGrid(rows [][]Terrain) (*Grid, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("%w: empty grid", ErrInvalidTerrain)
	}
	g := &Grid{w: len(rows[0]), h: len(rows)}
	g.cells = make([]Terrain, 0, g.w*g.h)
	for y, row := range rows {
		if len(row) != g.w {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrInvalidTerrain, y, len(row), g.w)
		}
		for x, t := range row {
			if !t.Valid() {
				return nil, fmt.Errorf("%w: code %d at (%d, %d)", ErrInvalidTerrain, t, x, y)
			}
		}
		g.cells = append(g.cells, row...)
	}
	return g, nil
}

// UniformGrid builds a w×h grid of a single terrain.
func UniformGrid(w, h int, t Terrain) *Grid {
	g := &Grid{w: w, h: h, cells: make([]Terrain, w*h)}
	for i := range g.cells {
		g.cells[i] = t
	}
	return g
}

func (g *Grid) Width() int  { return g.w }
func (g *Grid) Height() int { return g.h }

func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.w && y >= 0 && y < g.h
}

func (g *Grid) index(x, y int) int { return y*g.w + x }

// At returns NoTerrain outside the grid.
func (g *Grid) At(x, y int) Terrain {
	if !g.InBounds(x, y) {
		return NoTerrain
	}
	return g.cells[g.index(x, y)]
}

// Rows returns a copy indexed [y][x].
func (g *Grid) Rows() [][]Terrain {
	out := make([][]Terrain, g.h)
	for y := range out {
		out[y] = append([]Terrain(nil), g.cells[y*g.w:(y+1)*g.w]...)
	}
	return out
}

// RotateClockwise returns the grid turned a quarter turn clockwise:
// transpose, then reverse every row.
func (g *Grid) RotateClockwise() *Grid {
	r := &Grid{w: g.h, h: g.w, cells: make([]Terrain, len(g.cells))}
	for y := 0; y < g.h; y++ {
		for x := 0; x < g.w; x++ {
			// (x, y) lands at column h-1-y, row x
			r.cells[r.index(g.h-1-y, x)] = g.cells[g.index(x, y)]
		}
	}
	return r
}

func (g *Grid) RotateCounterClockwise() *Grid {
	return g.RotateClockwise().RotateClockwise().RotateClockwise()
}

func (g *Grid) String() string {
	var sb strings.Builder
	for y := 0; y < g.h; y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := 0; x < g.w; x++ {
			sb.WriteRune(terrainToChar(g.At(x, y)))
		}
	}
	return sb.String()
}

// ParseTerrain reads the text layout: one line per row, '.' grass,
// 'h' hill, 'm' mountain. Blank lines are skipped.
func ParseTerrain(s string) (*Grid, error) {
	var rows [][]Terrain
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		row := make([]Terrain, 0, len(line))
		for _, ch := range line {
			t, ok := terrainChars[ch]
			if !ok {
				return nil, fmt.Errorf("%w: unknown terrain %q", ErrInvalidTerrain, ch)
			}
			row = append(row, t)
		}
		rows = append(rows, row)
	}
	return NewGrid(rows)
}

// boardData is the static board document, tiles indexed [row][col].
type boardData struct {
	Tiles [][]int `json:"tiles"`
}

// DecodeBoardData parses the JSON board document {"tiles": [[1,2,3], ...]}.
func DecodeBoardData(r io.Reader) (*Grid, error) {
	var doc boardData
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode board data: %w", err)
	}
	rows := make([][]Terrain, len(doc.Tiles))
	for y, line := range doc.Tiles {
		rows[y] = make([]Terrain, len(line))
		for x, code := range line {
			rows[y][x] = Terrain(code)
		}
	}
	return NewGrid(rows)
}

// 24×24, point-symmetric so both home halves get the same features.
const defaultTerrainString = `........................
..hh...............hh...
..hmm...............h...
....m.....hh............
...........h...mm.......
................m.......
......................h.
......hh................
.........m..............
.............hh.....m...
.m......................
........................
........................
......................m.
...m.....hh.............
..............m.........
................hh......
.h......................
.......m................
.......mm...h...........
............hh.....m....
...h...............mmh..
...hh...............hh..
........................`

// DefaultTerrain returns the built-in map.
func DefaultTerrain() *Grid {
	g, err := ParseTerrain(defaultTerrainString)
	if err != nil {
		panic("default terrain: " + err.Error())
	}
	return g
}
