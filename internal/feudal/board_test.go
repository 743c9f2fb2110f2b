package feudal

import (
	"errors"
	"testing"
)

func newOpenBoard(w, h int) *Board {
	return NewBoard(UniformGrid(w, h, Open))
}

func mustPlace(t *testing.T, b *Board, kind PieceKind, owner PlayerID, x, y int, rot Rotation) Piece {
	t.Helper()
	p, err := b.Place(kind, owner, x, y, rot)
	if err != nil {
		t.Fatalf("place %s at (%d,%d): %v", kind, x, y, err)
	}
	return p
}

func TestPlaceCastleCreatesLinkedOuter(t *testing.T) {
	want := map[Rotation][2]int{
		Right: {4, 3},
		Down:  {3, 4},
		Left:  {2, 3},
		Up:    {3, 2},
	}
	for rot, cell := range want {
		t.Run(rot.String(), func(t *testing.T) {
			b := newOpenBoard(8, 8)
			inner := mustPlace(t, b, CastleInner, 0, 3, 3, rot)

			occ := b.OccupantsAt(cell[0], cell[1])
			if occ.Castle == nil || occ.Castle.Kind != CastleOuter {
				t.Fatalf("no outer castle at %v: %+v", cell, occ)
			}
			outer := *occ.Castle
			if inner.Linked != outer.ID || outer.Linked != inner.ID {
				t.Fatalf("link not symmetric: inner=%+v outer=%+v", inner, outer)
			}
			if got, ok := b.Linked(outer); !ok || got.ID != inner.ID {
				t.Fatalf("Linked(outer) = %+v, %v", got, ok)
			}
			if inner.Facing != rot || outer.Owner != 0 {
				t.Fatalf("unexpected outer %+v inner %+v", outer, inner)
			}
			if b.Len() != 2 {
				t.Fatalf("Len = %d, want 2", b.Len())
			}
		})
	}
}

func TestPlaceCastleIsAtomic(t *testing.T) {
	b := newOpenBoard(14, 14)
	mustPlace(t, b, Pikeman, 1, 4, 3, Right)

	_, err := b.Place(CastleInner, 0, 3, 3, Right)
	if !errors.Is(err, ErrIllegalCastleLinkage) || !errors.Is(err, ErrOccupiedCell) {
		t.Fatalf("err = %v, want castle linkage + occupied", err)
	}
	if occ := b.OccupantsAt(3, 3); !occ.Empty() {
		t.Fatalf("inner castle committed: %+v", occ)
	}
	if b.Len() != 1 {
		t.Fatalf("Len = %d, want 1", b.Len())
	}
}

func TestPlaceCastleOffBoardOuter(t *testing.T) {
	b := newOpenBoard(6, 6)
	_, err := b.Place(CastleInner, 0, 5, 0, Right)
	if !errors.Is(err, ErrIllegalCastleLinkage) || !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("err = %v", err)
	}
	_, err = b.Place(CastleInner, 0, 5, 0, Rotation(7))
	if !errors.Is(err, ErrIllegalCastleLinkage) {
		t.Fatalf("bad rotation err = %v", err)
	}
	if b.Len() != 0 {
		t.Fatalf("Len = %d", b.Len())
	}
}

func TestGroundPieceSharesCastleCell(t *testing.T) {
	b := newOpenBoard(8, 8)
	mustPlace(t, b, CastleInner, 0, 2, 2, Down)
	k := mustPlace(t, b, King, 0, 2, 2, Right)

	occ := b.OccupantsAt(2, 2)
	if occ.Count() != 2 || occ.Ground.ID != k.ID || occ.Castle.Kind != CastleInner {
		t.Fatalf("occupants = %+v", occ)
	}
	if _, err := b.Place(Archer, 0, 2, 2, Right); !errors.Is(err, ErrOccupiedCell) {
		t.Fatalf("second ground piece err = %v", err)
	}
	if _, err := b.Place(CastleInner, 1, 2, 3, Right); !errors.Is(err, ErrOccupiedCell) {
		t.Fatalf("castle on castle err = %v", err)
	}
}

func TestRemoveIgnoresCastles(t *testing.T) {
	b := newOpenBoard(8, 8)
	mustPlace(t, b, CastleInner, 0, 2, 2, Right)
	if b.Remove(2, 2) {
		t.Fatalf("Remove took a castle")
	}
	mustPlace(t, b, Duke, 1, 2, 2, Right)
	if !b.Remove(2, 2) {
		t.Fatalf("Remove missed the ground piece")
	}
	occ := b.OccupantsAt(2, 2)
	if occ.Ground != nil || occ.Castle == nil {
		t.Fatalf("occupants after remove = %+v", occ)
	}
	if b.Remove(-1, 0) {
		t.Fatalf("Remove off board returned true")
	}
}

func TestRemoveByIDTakesBothCastles(t *testing.T) {
	b := newOpenBoard(8, 8)
	inner := mustPlace(t, b, CastleInner, 0, 2, 2, Up)
	if err := b.RemoveByID(inner.Linked); err != nil {
		t.Fatal(err)
	}
	if b.Len() != 0 {
		t.Fatalf("Len = %d after removing castle pair", b.Len())
	}
	if err := b.RemoveByID(inner.ID); !errors.Is(err, ErrUnknownPiece) {
		t.Fatalf("err = %v", err)
	}
}

func TestMoveAndCapture(t *testing.T) {
	b := newOpenBoard(8, 8)
	k := mustPlace(t, b, King, 0, 1, 1, Right)
	e := mustPlace(t, b, Pikeman, 1, 3, 1, Right)

	if err := b.Move(k.ID, 3, 1); !errors.Is(err, ErrOccupiedCell) {
		t.Fatalf("move onto piece err = %v", err)
	}
	if err := b.Move(k.ID, 9, 1); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("move off board err = %v", err)
	}
	if err := b.Capture(k.ID, 3, 1); err != nil {
		t.Fatal(err)
	}
	if _, ok := b.Piece(e.ID); ok {
		t.Fatalf("captured piece still on board")
	}
	got, _ := b.Piece(k.ID)
	if got.X != 3 || got.Y != 1 {
		t.Fatalf("king at (%d,%d)", got.X, got.Y)
	}

	// Capturing an empty cell is a plain move.
	if err := b.Capture(k.ID, 4, 2); err != nil {
		t.Fatal(err)
	}
	if occ := b.OccupantsAt(4, 2); occ.Ground == nil || occ.Ground.ID != k.ID {
		t.Fatalf("occupants = %+v", occ)
	}
	if occ := b.OccupantsAt(3, 1); !occ.Empty() {
		t.Fatalf("old cell not cleared: %+v", occ)
	}
}

func TestCastlesNeverMove(t *testing.T) {
	b := newOpenBoard(8, 8)
	inner := mustPlace(t, b, CastleInner, 0, 2, 2, Right)
	if err := b.Move(inner.ID, 5, 5); !errors.Is(err, ErrMoveNotAllowed) {
		t.Fatalf("err = %v", err)
	}
	if err := b.Capture(inner.Linked, 5, 5); !errors.Is(err, ErrMoveNotAllowed) {
		t.Fatalf("err = %v", err)
	}
}

func TestTileAt(t *testing.T) {
	g, err := ParseTerrain(".h\nm.")
	if err != nil {
		t.Fatal(err)
	}
	b := NewBoard(g)
	if tt, err := b.TileAt(1, 0); err != nil || tt != Rough {
		t.Fatalf("TileAt(1,0) = %v, %v", tt, err)
	}
	if tt, err := b.TileAt(0, 1); err != nil || tt != Impassable {
		t.Fatalf("TileAt(0,1) = %v, %v", tt, err)
	}
	if _, err := b.TileAt(2, 0); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("err = %v", err)
	}
}

func TestPiecesOf(t *testing.T) {
	b := newOpenBoard(8, 8)
	mustPlace(t, b, King, 0, 0, 0, Right)
	mustPlace(t, b, King, 1, 7, 7, Right)
	mustPlace(t, b, CastleInner, 1, 5, 5, Left)
	if n := len(b.PiecesOf(1)); n != 3 {
		t.Fatalf("PiecesOf(1) = %d pieces, want 3", n)
	}
	all := b.Pieces()
	for i := 1; i < len(all); i++ {
		if all[i-1].ID >= all[i].ID {
			t.Fatalf("Pieces not ordered by id: %+v", all)
		}
	}
}
