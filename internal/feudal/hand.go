package feudal

import "fmt"

// Hand counts the pieces a player still has to place during setup.
type Hand map[PieceKind]int

func StartingHand() Hand {
	return Hand{
		King:        1,
		Prince:      1,
		Duke:        1,
		Knight:      2,
		Sergeant:    2,
		Pikeman:     4,
		Squire:      1,
		Archer:      1,
		CastleInner: 1,
	}
}

func (h Hand) Clone() Hand {
	out := make(Hand, len(h))
	for k, n := range h {
		out[k] = n
	}
	return out
}

// Take removes one kind from the hand.
func (h Hand) Take(k PieceKind) error {
	if h[k] <= 0 {
		return fmt.Errorf("%w: %s", ErrNotInHand, k)
	}
	h[k]--
	return nil
}

func (h Hand) Remaining() int {
	n := 0
	for _, c := range h {
		n += c
	}
	return n
}

func (h Hand) Empty() bool { return h.Remaining() == 0 }

// Order returns the kinds still held, in catalog order.
func (h Hand) Order() []PieceKind {
	var out []PieceKind
	for _, k := range Kinds() {
		if h[k] > 0 {
			out = append(out, k)
		}
	}
	return out
}
