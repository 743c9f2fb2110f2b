package main

import (
	"errors"
	"testing"

	"feudal/internal/feudal"
)

func openTiles(w, h int) []int8 {
	tiles := make([]int8, w*h)
	for i := range tiles {
		tiles[i] = int8(feudal.Open)
	}
	return tiles
}

func TestDecodeBoardCastleFirst(t *testing.T) {
	g, err := decodeTerrain(openTiles(6, 6), 6, 6)
	if err != nil {
		t.Fatal(err)
	}
	// The knight is listed first but stands in the castle.
	recs := []int32{
		int32(feudal.Knight), 0, 2, 2, 0,
		int32(feudal.CastleInner), 0, 2, 2, int32(feudal.Down),
		int32(feudal.CastleOuter), 0, 2, 3, int32(feudal.Down),
	}
	b, ids, err := decodeBoard(g, recs)
	if err != nil {
		t.Fatal(err)
	}
	if b.Len() != 3 || ids[0] == 0 || ids[1] == 0 || ids[2] != 0 {
		t.Fatalf("pieces %d, ids %v", b.Len(), ids)
	}
	inner, _ := b.Piece(ids[1])
	outer, ok := b.Linked(inner)
	if !ok || outer.X != 2 || outer.Y != 3 {
		t.Fatalf("outer castle = %+v", outer)
	}

	mask := make([]int8, 36)
	if err := moveMask(b, ids, 0, mask); err != nil {
		t.Fatal(err)
	}
	// the knight may only leave through its outer castle
	for i, c := range mask {
		want := int8(feudal.Illegal)
		if i == 3*6+2 {
			want = int8(feudal.Special)
		}
		if c != want {
			t.Fatalf("mask[%d] = %d, want %d", i, c, want)
		}
	}
	if err := moveMask(b, ids, 2, mask); err == nil {
		t.Fatalf("mask for a skipped record")
	}
}

func TestDecodeRejectsBadInput(t *testing.T) {
	if _, err := decodeTerrain(openTiles(2, 2), 3, 3); err == nil {
		t.Fatalf("short tiles accepted")
	}
	g, _ := decodeTerrain(openTiles(3, 3), 3, 3)
	if _, _, err := decodeBoard(g, []int32{1, 0, 0}); err == nil {
		t.Fatalf("partial record accepted")
	}
	_, _, err := decodeBoard(g, []int32{int32(feudal.King), 0, 5, 5, 0})
	if !errors.Is(err, feudal.ErrOutOfBounds) {
		t.Fatalf("off-board record: %v", err)
	}
}

func TestPlaceCode(t *testing.T) {
	g, _ := decodeTerrain(openTiles(3, 3), 3, 3)
	b := feudal.NewBoard(g)
	cases := []struct {
		kind feudal.PieceKind
		x, y int
		rot  feudal.Rotation
		want int
	}{
		{feudal.King, 1, 1, feudal.Right, codeOK},
		{feudal.King, 3, 0, feudal.Right, codeOutOfBounds},
		{feudal.PieceKind(42), 0, 0, feudal.Right, codeInvalidKind},
		{feudal.CastleInner, 2, 0, feudal.Right, codeCastleLinkage},
	}
	for _, tc := range cases {
		if got := placeCode(feudal.CanPlace(b, tc.kind, 0, tc.x, tc.y, tc.rot)); got != tc.want {
			t.Fatalf("%s at (%d, %d): code %d, want %d", tc.kind, tc.x, tc.y, got, tc.want)
		}
	}
}
