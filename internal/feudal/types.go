package feudal

import "strings"

// PlayerID identifies the owner of a piece. Players are numbered from 0.
type PlayerID int

const MaxPlayers = 6

type PieceKind int8

const (
	KindNone PieceKind = iota
	King
	Prince
	Duke
	Knight
	Sergeant
	Pikeman
	Squire // leaps like a chess knight
	Archer
	CastleInner
	CastleOuter
	numKinds
)

// Range is a per-direction step limit. Unlimited walks to the board edge.
type Range int

const Unlimited Range = -1

func (r Range) allows(step int) bool {
	return r == Unlimited || step <= int(r)
}

// Profile describes how a kind moves.
type Profile struct {
	Name       string
	Orthogonal Range
	Diagonal   Range
	Mounted    bool // may not stop on rough terrain
	Leaper     bool // fixed knight offsets instead of rays
	Fixture    bool // castle pieces, never move
}

var catalog = [numKinds]Profile{
	KindNone:    {Name: "none"},
	King:        {Name: "king", Orthogonal: 2, Diagonal: 2},
	Prince:      {Name: "prince", Orthogonal: Unlimited, Diagonal: Unlimited, Mounted: true},
	Duke:        {Name: "duke", Orthogonal: Unlimited, Diagonal: Unlimited, Mounted: true},
	Knight:      {Name: "knight", Orthogonal: Unlimited, Diagonal: Unlimited, Mounted: true},
	Sergeant:    {Name: "sergeant", Orthogonal: 1, Diagonal: 12},
	Pikeman:     {Name: "pikeman", Orthogonal: 12, Diagonal: 1},
	Squire:      {Name: "squire", Leaper: true},
	Archer:      {Name: "archer", Orthogonal: 3, Diagonal: 3},
	CastleInner: {Name: "castleInner", Fixture: true},
	CastleOuter: {Name: "castleOuter", Fixture: true},
}

// Valid reports whether k is a catalog entry.
func (k PieceKind) Valid() bool { return k > KindNone && k < numKinds }

// Profile returns the catalog entry; unrecognized kinds get the zero profile.
func (k PieceKind) Profile() Profile {
	if !k.Valid() {
		return Profile{}
	}
	return catalog[k]
}

func (k PieceKind) Mounted() bool { return k.Profile().Mounted }
func (k PieceKind) Fixture() bool { return k.Profile().Fixture }

func (k PieceKind) String() string {
	if !k.Valid() {
		return "none"
	}
	return catalog[k].Name
}

// Kinds lists every recognized kind in catalog order.
func Kinds() []PieceKind {
	out := make([]PieceKind, 0, numKinds-1)
	for k := KindNone + 1; k < numKinds; k++ {
		out = append(out, k)
	}
	return out
}

// ParseKind accepts the catalog name, case-insensitively.
func ParseKind(name string) (PieceKind, error) {
	name = strings.TrimSpace(name)
	for k := KindNone + 1; k < numKinds; k++ {
		if strings.EqualFold(catalog[k].Name, name) {
			return k, nil
		}
	}
	return KindNone, invalidKind(name)
}

// Rotation is the direction from an inner castle to its outer castle.
type Rotation int8

const (
	Right Rotation = iota
	Down
	Left
	Up
)

func (r Rotation) Valid() bool { return r >= Right && r <= Up }

// Offset returns the outer castle displacement for r.
func (r Rotation) Offset() (dx, dy int) {
	switch r {
	case Right:
		return 1, 0
	case Down:
		return 0, 1
	case Left:
		return -1, 0
	case Up:
		return 0, -1
	}
	return 0, 0
}

func (r Rotation) String() string {
	switch r {
	case Right:
		return "right"
	case Down:
		return "down"
	case Left:
		return "left"
	case Up:
		return "up"
	}
	return "invalid"
}

type PieceID int32

// Piece is a board entity. Linked is the paired castle's id, or 0.
type Piece struct {
	ID     PieceID
	Kind   PieceKind
	Owner  PlayerID
	X, Y   int
	Linked PieceID
	Facing Rotation // only meaningful for CastleInner
}

// MoveClass classifies a proposed destination.
type MoveClass int8

const (
	Illegal MoveClass = iota
	Normal
	Capture
	Special // onto a castle cell
)

func (c MoveClass) String() string {
	switch c {
	case Normal:
		return "normal"
	case Capture:
		return "capture"
	case Special:
		return "special"
	}
	return "illegal"
}

type Move struct {
	X, Y  int
	Class MoveClass
}
