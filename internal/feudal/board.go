package feudal

import (
	"fmt"
	"sort"
)

// Board owns every piece in a game. Each cell holds at most one ground
// piece and, independently, at most one castle fixture.
//
// Board is not safe for concurrent use.
type Board struct {
	grid   *Grid
	pieces map[PieceID]*Piece
	ground []PieceID // per cell, 0 = empty
	castle []PieceID
	nextID PieceID
	hash   uint64
}

func NewBoard(g *Grid) *Board {
	n := g.Width() * g.Height()
	return &Board{
		grid:   g,
		pieces: make(map[PieceID]*Piece),
		ground: make([]PieceID, n),
		castle: make([]PieceID, n),
	}
}

func (b *Board) Terrain() *Grid { return b.grid }
func (b *Board) Width() int     { return b.grid.Width() }
func (b *Board) Height() int    { return b.grid.Height() }

func (b *Board) InBounds(x, y int) bool { return b.grid.InBounds(x, y) }

func (b *Board) TileAt(x, y int) (Terrain, error) {
	if !b.grid.InBounds(x, y) {
		return NoTerrain, outOfBounds(x, y)
	}
	return b.grid.At(x, y), nil
}

// Occupants holds copies of what stands on a cell; either may be nil.
type Occupants struct {
	Ground *Piece
	Castle *Piece
}

func (o Occupants) Empty() bool { return o.Ground == nil && o.Castle == nil }

func (o Occupants) Count() int {
	n := 0
	if o.Ground != nil {
		n++
	}
	if o.Castle != nil {
		n++
	}
	return n
}

func (b *Board) OccupantsAt(x, y int) Occupants {
	var o Occupants
	if !b.grid.InBounds(x, y) {
		return o
	}
	i := b.grid.index(x, y)
	if id := b.ground[i]; id != 0 {
		p := *b.pieces[id]
		o.Ground = &p
	}
	if id := b.castle[i]; id != 0 {
		p := *b.pieces[id]
		o.Castle = &p
	}
	return o
}

func (b *Board) groundAt(x, y int) *Piece {
	if !b.grid.InBounds(x, y) {
		return nil
	}
	return b.pieces[b.ground[b.grid.index(x, y)]]
}

func (b *Board) castleAt(x, y int) *Piece {
	if !b.grid.InBounds(x, y) {
		return nil
	}
	return b.pieces[b.castle[b.grid.index(x, y)]]
}

func (b *Board) Piece(id PieceID) (Piece, bool) {
	p, ok := b.pieces[id]
	if !ok {
		return Piece{}, false
	}
	return *p, true
}

// Linked returns the castle paired with p.
func (b *Board) Linked(p Piece) (Piece, bool) {
	if p.Linked == 0 {
		return Piece{}, false
	}
	return b.Piece(p.Linked)
}

// Pieces returns every piece ordered by id.
func (b *Board) Pieces() []Piece {
	out := make([]Piece, 0, len(b.pieces))
	for _, p := range b.pieces {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (b *Board) PiecesOf(owner PlayerID) []Piece {
	var out []Piece
	for _, p := range b.Pieces() {
		if p.Owner == owner {
			out = append(out, p)
		}
	}
	return out
}

func (b *Board) Len() int { return len(b.pieces) }

// Place validates with CanPlace and inserts the piece. A CastleInner also
// inserts its CastleOuter at the cell rot points to and links the pair;
// nothing is inserted when either cell is illegal.
func (b *Board) Place(kind PieceKind, owner PlayerID, x, y int, rot Rotation) (Piece, error) {
	if err := CanPlace(b, kind, owner, x, y, rot); err != nil {
		return Piece{}, err
	}
	p := b.insert(kind, owner, x, y)
	if kind == CastleInner {
		dx, dy := rot.Offset()
		outer := b.insert(CastleOuter, owner, x+dx, y+dy)
		outer.Linked = p.ID
		outer.Facing = rot
		p.Linked = outer.ID
		p.Facing = rot
	}
	return *p, nil
}

func (b *Board) insert(kind PieceKind, owner PlayerID, x, y int) *Piece {
	b.nextID++
	p := &Piece{ID: b.nextID, Kind: kind, Owner: owner, X: x, Y: y}
	b.pieces[p.ID] = p
	b.index(p)[b.grid.index(x, y)] = p.ID
	b.toggleHash(p)
	return p
}

func (b *Board) index(p *Piece) []PieceID {
	if p.Kind.Fixture() {
		return b.castle
	}
	return b.ground
}

func (b *Board) detach(p *Piece) {
	b.toggleHash(p)
	b.index(p)[b.grid.index(p.X, p.Y)] = 0
	delete(b.pieces, p.ID)
}

// Remove deletes the ground piece at (x, y). Castles are left alone.
func (b *Board) Remove(x, y int) bool {
	p := b.groundAt(x, y)
	if p == nil {
		return false
	}
	b.detach(p)
	return true
}

// RemoveByID deletes any piece. A castle takes its linked partner with it.
func (b *Board) RemoveByID(id PieceID) error {
	p, ok := b.pieces[id]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownPiece, id)
	}
	if partner, ok := b.pieces[p.Linked]; ok {
		b.detach(partner)
	}
	b.detach(p)
	return nil
}

// Move relocates a piece without consulting the rules; callers check
// CanMove first. It refuses only what would break the board invariants.
func (b *Board) Move(id PieceID, x, y int) error {
	p, err := b.movable(id, x, y)
	if err != nil {
		return err
	}
	if occ := b.groundAt(x, y); occ != nil && occ.ID != id {
		return fmt.Errorf("%w: (%d, %d)", ErrOccupiedCell, x, y)
	}
	b.relocate(p, x, y)
	return nil
}

// Capture removes whatever ground piece stands on (x, y), then moves the
// piece there. An empty target is not an error.
func (b *Board) Capture(id PieceID, x, y int) error {
	p, err := b.movable(id, x, y)
	if err != nil {
		return err
	}
	if occ := b.groundAt(x, y); occ != nil && occ.ID != id {
		b.detach(occ)
	}
	b.relocate(p, x, y)
	return nil
}

func (b *Board) movable(id PieceID, x, y int) (*Piece, error) {
	p, ok := b.pieces[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownPiece, id)
	}
	if p.Kind.Fixture() {
		return nil, fmt.Errorf("%w: %s never moves", ErrMoveNotAllowed, p.Kind)
	}
	if !b.grid.InBounds(x, y) {
		return nil, outOfBounds(x, y)
	}
	return p, nil
}

func (b *Board) relocate(p *Piece, x, y int) {
	b.toggleHash(p)
	b.ground[b.grid.index(p.X, p.Y)] = 0
	p.X, p.Y = x, y
	b.ground[b.grid.index(x, y)] = p.ID
	b.toggleHash(p)
}
