package feudal

import (
	"errors"
	"fmt"
)

var (
	ErrOutOfBounds          = errors.New("out of bounds")
	ErrOccupiedCell         = errors.New("cell occupied")
	ErrTerrainBlocked       = errors.New("terrain blocked")
	ErrInvalidKind          = errors.New("invalid piece kind")
	ErrIllegalCastleLinkage = errors.New("illegal castle linkage")
	ErrMoveNotAllowed       = errors.New("move not allowed")
	ErrUnknownPiece         = errors.New("unknown piece")
	ErrNotInHand            = errors.New("piece not in hand")
)

func invalidKind(v any) error {
	return fmt.Errorf("%w: %v", ErrInvalidKind, v)
}

func outOfBounds(x, y int) error {
	return fmt.Errorf("%w: (%d, %d)", ErrOutOfBounds, x, y)
}
