package feudal

var (
	orthogonalDirs = [4][2]int{{0, 1}, {0, -1}, {1, 0}, {-1, 0}}
	diagonalDirs   = [4][2]int{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}

	squireOffsets = [8][2]int{
		{1, 2}, {1, -2}, {-1, 2}, {-1, -2},
		{2, 1}, {2, -1}, {-2, 1}, {-2, -1},
	}
)

// GenerateMoves lists every destination p can legally reach.
func GenerateMoves(b *Board, p Piece) []Move {
	prof := p.Kind.Profile()
	if prof.Fixture || !p.Kind.Valid() {
		return nil
	}
	var moves []Move
	if prof.Leaper {
		genSquireMoves(b, p, &moves)
		return moves
	}
	for _, d := range orthogonalDirs {
		genRay(b, p, d, prof.Orthogonal, &moves)
	}
	for _, d := range diagonalDirs {
		genRay(b, p, d, prof.Diagonal, &moves)
	}
	return moves
}

// genRay walks outward until the range runs out, the board ends, or a
// capture/castle stops the line of sight.
func genRay(b *Board, p Piece, d [2]int, r Range, moves *[]Move) {
	for step := 1; r.allows(step); step++ {
		x, y := p.X+d[0]*step, p.Y+d[1]*step
		c := CanMove(b, p, x, y)
		if c == Illegal {
			return
		}
		*moves = append(*moves, Move{X: x, Y: y, Class: c})
		if c != Normal {
			return
		}
	}
}

// Squire offsets are independent: nothing in between blocks them.
func genSquireMoves(b *Board, p Piece, moves *[]Move) {
	for _, o := range squireOffsets {
		x, y := p.X+o[0], p.Y+o[1]
		if c := CanMove(b, p, x, y); c != Illegal {
			*moves = append(*moves, Move{X: x, Y: y, Class: c})
		}
	}
}

// FindMove returns the generated move for (x, y), if any.
func FindMove(moves []Move, x, y int) (Move, bool) {
	for _, m := range moves {
		if m.X == x && m.Y == y {
			return m, true
		}
	}
	return Move{}, false
}
