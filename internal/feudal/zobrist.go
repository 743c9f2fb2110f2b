package feudal

// Grids are not a fixed size, so keys are derived from (owner, kind, cell)
// with a splitmix64 finalizer instead of a precomputed table.
const zobristSeed = uint64(0x9E3779B97F4A7C15)

func mix64(z uint64) uint64 {
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}

func pieceHashKey(owner PlayerID, kind PieceKind, cell int) uint64 {
	if !kind.Valid() || cell < 0 {
		return 0
	}
	packed := uint64(cell)<<16 | uint64(uint8(owner))<<8 | uint64(kind)
	return mix64(zobristSeed + packed*zobristSeed)
}

// CalculateHash recomputes the position hash from scratch.
func (b *Board) CalculateHash() uint64 {
	var h uint64
	for _, p := range b.pieces {
		h ^= pieceHashKey(p.Owner, p.Kind, b.grid.index(p.X, p.Y))
	}
	return h
}

// Hash returns the incrementally maintained position hash. Two boards
// with the same pieces of the same kinds and owners on the same cells
// hash equal, regardless of piece ids.
func (b *Board) Hash() uint64 { return b.hash }

func (b *Board) toggleHash(p *Piece) {
	b.hash ^= pieceHashKey(p.Owner, p.Kind, b.grid.index(p.X, p.Y))
}
