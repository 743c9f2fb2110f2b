package ai

import (
	"errors"
	"fmt"
	"log"
	"math/rand"
	"time"

	"feudal/internal/feudal"
)

// MaxAttempts bounds the random tries spent on a single piece.
const MaxAttempts = 1000

var ErrPlacementStarved = errors.New("placement starved")

// StarvationError reports a piece that found no legal cell in time.
type StarvationError struct {
	Player   feudal.PlayerID
	Kind     feudal.PieceKind
	Attempts int
}

func (e *StarvationError) Error() string {
	return fmt.Sprintf("player %d: no legal cell for %s after %d attempts", e.Player, e.Kind, e.Attempts)
}

func (e *StarvationError) Unwrap() error { return ErrPlacementStarved }

// Placer drops a player's hand on random legal cells of their home half.
type Placer struct {
	Rand  *rand.Rand
	Quiet bool // suppress per-player summary logs
}

func NewPlacer(seed int64) *Placer {
	return &Placer{Rand: rand.New(rand.NewSource(seed))}
}

// HomeRows returns the [lo, hi) row band a player sets up in: even
// players take the top half, odd players the bottom.
func HomeRows(player feudal.PlayerID, height int) (lo, hi int) {
	mid := (height + 1) / 2
	if player%2 == 0 {
		return 0, mid
	}
	return mid, height
}

// PlaceHand places every piece left in hand, in catalog order, taking each
// from the hand as it lands. It stops at the first starved piece; pieces
// placed before that stay on the board.
func (pl *Placer) PlaceHand(b *feudal.Board, player feudal.PlayerID, hand feudal.Hand) (int, error) {
	start := time.Now()
	steps := 0
	for _, kind := range hand.Order() {
		for hand[kind] > 0 {
			n, err := pl.placeOne(b, player, kind)
			steps += n
			if err != nil {
				log.Printf("[ai] %v", err)
				return steps, err
			}
			if err := hand.Take(kind); err != nil {
				return steps, err
			}
		}
	}
	if !pl.Quiet {
		log.Printf("[ai] player %d placed in %d steps (%v)", player, steps, time.Since(start))
	}
	return steps, nil
}

func (pl *Placer) placeOne(b *feudal.Board, player feudal.PlayerID, kind feudal.PieceKind) (int, error) {
	lo, hi := HomeRows(player, b.Height())
	if hi <= lo || b.Width() == 0 {
		return 0, &StarvationError{Player: player, Kind: kind}
	}
	for attempt := 1; attempt <= MaxAttempts; attempt++ {
		x := pl.Rand.Intn(b.Width())
		y := lo + pl.Rand.Intn(hi-lo)
		rot := feudal.Right
		if kind == feudal.CastleInner {
			rot = feudal.Rotation(pl.Rand.Intn(4))
			// Castles are only worth building against a mountain.
			if !nearMountain(b, x, y) {
				continue
			}
		}
		if feudal.CanPlace(b, kind, player, x, y, rot) != nil {
			continue
		}
		if _, err := b.Place(kind, player, x, y, rot); err != nil {
			return attempt, err
		}
		return attempt, nil
	}
	return MaxAttempts, &StarvationError{Player: player, Kind: kind, Attempts: MaxAttempts}
}

func nearMountain(b *feudal.Board, x, y int) bool {
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			if t, err := b.TileAt(x+dx, y+dy); err == nil && t == feudal.Impassable {
				return true
			}
		}
	}
	return false
}
