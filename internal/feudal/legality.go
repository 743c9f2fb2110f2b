package feudal

import "fmt"

// CanPlace reports whether kind may be placed at (x, y) for owner. Checks
// run in order and the first failure is returned: kind, bounds, mountain,
// mounted-on-hill, occupancy. rot is only read for CastleInner, which
// must find both of its cells free.
func CanPlace(b *Board, kind PieceKind, owner PlayerID, x, y int, rot Rotation) error {
	if !kind.Valid() {
		return invalidKind(int(kind))
	}
	switch kind {
	case CastleOuter:
		if err := checkCell(b, CastleOuter, x, y); err != nil {
			return err
		}
		return fmt.Errorf("%w: outer castle is placed with its inner castle", ErrIllegalCastleLinkage)
	case CastleInner:
		if !rot.Valid() {
			return fmt.Errorf("%w: rotation %d", ErrIllegalCastleLinkage, rot)
		}
		if err := checkCell(b, CastleInner, x, y); err != nil {
			return err
		}
		dx, dy := rot.Offset()
		if err := checkCell(b, CastleOuter, x+dx, y+dy); err != nil {
			return fmt.Errorf("%w: outer castle: %w", ErrIllegalCastleLinkage, err)
		}
		return nil
	}
	return checkCell(b, kind, x, y)
}

func checkCell(b *Board, kind PieceKind, x, y int) error {
	if !b.InBounds(x, y) {
		return outOfBounds(x, y)
	}
	switch t := b.grid.At(x, y); {
	case t == Impassable:
		return fmt.Errorf("%w: %s on mountain at (%d, %d)", ErrTerrainBlocked, kind, x, y)
	case t == Rough && kind.Mounted():
		return fmt.Errorf("%w: mounted %s on hill at (%d, %d)", ErrTerrainBlocked, kind, x, y)
	}
	if b.groundAt(x, y) != nil {
		return fmt.Errorf("%w: (%d, %d)", ErrOccupiedCell, x, y)
	}
	// Ground pieces may share a cell with a castle; castles may not.
	if kind.Fixture() && b.castleAt(x, y) != nil {
		return fmt.Errorf("%w: castle at (%d, %d)", ErrOccupiedCell, x, y)
	}
	return nil
}

// CanMove classifies moving p to (x, y). It never mutates b.
func CanMove(b *Board, p Piece, x, y int) MoveClass {
	if !p.Kind.Valid() || p.Kind.Fixture() {
		return Illegal
	}
	if !b.InBounds(x, y) {
		return Illegal
	}

	// An inner castle only lets its occupant out through the paired outer cell.
	if here := b.castleAt(p.X, p.Y); here != nil && here.Kind == CastleInner {
		if !b.isLinkedOuter(here, x, y) {
			return Illegal
		}
	}

	enemy := b.groundAt(x, y)
	castle := b.castleAt(x, y)

	if enemy != nil {
		if enemy.Owner == p.Owner {
			return Illegal
		}
		if castle != nil && castle.Kind == CastleInner && !b.isLinkedOuter(castle, p.X, p.Y) {
			return Illegal
		}
		return Capture
	}

	if castle != nil {
		switch castle.Kind {
		case CastleInner:
			if p.Kind == Archer && castle.Owner == p.Owner {
				return Illegal
			}
			if b.isLinkedOuter(castle, p.X, p.Y) {
				return Special
			}
			return Illegal
		case CastleOuter:
			return Special
		}
	}

	switch t := b.grid.At(x, y); {
	case t == Impassable:
		return Illegal
	case t == Rough && p.Kind.Mounted():
		return Illegal
	}
	return Normal
}

// isLinkedOuter reports whether (x, y) is the outer cell paired with inner.
func (b *Board) isLinkedOuter(inner *Piece, x, y int) bool {
	outer, ok := b.pieces[inner.Linked]
	return ok && outer.X == x && outer.Y == y
}

// CheckMove is CanMove with ErrMoveNotAllowed for illegal destinations.
func CheckMove(b *Board, p Piece, x, y int) (MoveClass, error) {
	c := CanMove(b, p, x, y)
	if c == Illegal {
		return Illegal, fmt.Errorf("%w: %s from (%d, %d) to (%d, %d)", ErrMoveNotAllowed, p.Kind, p.X, p.Y, x, y)
	}
	return c, nil
}
