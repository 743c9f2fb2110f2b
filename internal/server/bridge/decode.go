package main

import (
	"errors"
	"fmt"

	"feudal/internal/feudal"
)

// Each piece crosses the C boundary as recordSize int32s:
// kind, owner, x, y, facing. Kinds use the catalog numbering (1 king ..
// 9 castleInner); castleOuter records are skipped because the inner
// record rebuilds its pair from facing.
const recordSize = 5

// Placement result codes, 0 meaning legal.
const (
	codeOK = iota
	codeOutOfBounds
	codeOccupied
	codeTerrain
	codeInvalidKind
	codeCastleLinkage
	codeInvalidBoard
)

func decodeTerrain(tiles []int8, w, h int) (*feudal.Grid, error) {
	if w <= 0 || h <= 0 || len(tiles) < w*h {
		return nil, fmt.Errorf("bridge: %d tiles for %dx%d", len(tiles), w, h)
	}
	rows := make([][]feudal.Terrain, h)
	for y := range rows {
		rows[y] = make([]feudal.Terrain, w)
		for x := range rows[y] {
			rows[y][x] = feudal.Terrain(tiles[y*w+x])
		}
	}
	return feudal.NewGrid(rows)
}

// decodeBoard rebuilds a board from piece records. ids[i] is the id given
// to record i, or 0 for skipped records. Castles go down first: a ground
// piece may stand in a castle but a castle may not be built under one.
func decodeBoard(g *feudal.Grid, recs []int32) (*feudal.Board, []feudal.PieceID, error) {
	if len(recs)%recordSize != 0 {
		return nil, nil, fmt.Errorf("bridge: %d ints is not a whole number of records", len(recs))
	}
	b := feudal.NewBoard(g)
	n := len(recs) / recordSize
	ids := make([]feudal.PieceID, n)
	for pass := 0; pass < 2; pass++ {
		for i := 0; i < n; i++ {
			r := recs[i*recordSize : (i+1)*recordSize]
			kind := feudal.PieceKind(r[0])
			if kind == feudal.CastleOuter || kind.Fixture() != (pass == 0) {
				continue
			}
			p, err := b.Place(kind, feudal.PlayerID(r[1]), int(r[2]), int(r[3]), feudal.Rotation(r[4]))
			if err != nil {
				return nil, nil, fmt.Errorf("bridge: record %d: %w", i, err)
			}
			ids[i] = p.ID
		}
	}
	return b, ids, nil
}

func placeCode(err error) int {
	switch {
	case err == nil:
		return codeOK
	case errors.Is(err, feudal.ErrIllegalCastleLinkage):
		return codeCastleLinkage
	case errors.Is(err, feudal.ErrOutOfBounds):
		return codeOutOfBounds
	case errors.Is(err, feudal.ErrOccupiedCell):
		return codeOccupied
	case errors.Is(err, feudal.ErrTerrainBlocked):
		return codeTerrain
	case errors.Is(err, feudal.ErrInvalidKind):
		return codeInvalidKind
	}
	return codeInvalidBoard
}

// moveMask writes the MoveClass of every cell for the piece of record idx
// into mask, row major. Cells it cannot reach stay 0 (Illegal).
func moveMask(b *feudal.Board, ids []feudal.PieceID, idx int, mask []int8) error {
	for i := range mask {
		mask[i] = 0
	}
	if idx < 0 || idx >= len(ids) || ids[idx] == 0 {
		return fmt.Errorf("bridge: no piece for record %d", idx)
	}
	p, _ := b.Piece(ids[idx])
	for _, m := range feudal.GenerateMoves(b, p) {
		mask[m.Y*b.Width()+m.X] = int8(m.Class)
	}
	return nil
}
