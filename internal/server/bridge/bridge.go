package main

/*
#include <stdint.h>
*/
import "C"
import (
	"log"
	"time"
	"unsafe"

	"feudal/internal/feudal"
)

// Build with -buildmode=c-shared. tiles is w*h terrain codes row major;
// pieces is n records (see recordSize).

func load(tilesPtr *C.int8_t, w, h C.int, piecesPtr *C.int32_t, n C.int) (*feudal.Board, []feudal.PieceID, error) {
	tiles := unsafe.Slice((*int8)(unsafe.Pointer(tilesPtr)), int(w)*int(h))
	var recs []int32
	if n > 0 {
		recs = unsafe.Slice((*int32)(unsafe.Pointer(piecesPtr)), int(n)*recordSize)
	}
	g, err := decodeTerrain(tiles, int(w), int(h))
	if err != nil {
		return nil, nil, err
	}
	return decodeBoard(g, recs)
}

//export FeudalCanPlace
func FeudalCanPlace(tilesPtr *C.int8_t, w, h C.int, piecesPtr *C.int32_t, n C.int, kind, owner, x, y, rot C.int) C.int {
	b, _, err := load(tilesPtr, w, h, piecesPtr, n)
	if err != nil {
		log.Printf("[bridge] %v", err)
		return codeInvalidBoard
	}
	err = feudal.CanPlace(b, feudal.PieceKind(kind), feudal.PlayerID(owner), int(x), int(y), feudal.Rotation(rot))
	return C.int(placeCode(err))
}

// FeudalCanMove returns the MoveClass (0 illegal, 1 normal, 2 capture,
// 3 special) of moving the piece of record idx to (x, y).
//
//export FeudalCanMove
func FeudalCanMove(tilesPtr *C.int8_t, w, h C.int, piecesPtr *C.int32_t, n C.int, idx, x, y C.int) C.int {
	b, ids, err := load(tilesPtr, w, h, piecesPtr, n)
	if err != nil || idx < 0 || int(idx) >= len(ids) || ids[idx] == 0 {
		return C.int(feudal.Illegal)
	}
	p, _ := b.Piece(ids[idx])
	return C.int(feudal.CanMove(b, p, int(x), int(y)))
}

//export FeudalMoveMask
func FeudalMoveMask(tilesPtr *C.int8_t, w, h C.int, piecesPtr *C.int32_t, n C.int, idx C.int, maskOut *C.int8_t) C.int {
	start := time.Now()
	mask := unsafe.Slice((*int8)(unsafe.Pointer(maskOut)), int(w)*int(h))
	b, ids, err := load(tilesPtr, w, h, piecesPtr, n)
	if err == nil {
		err = moveMask(b, ids, int(idx), mask)
	}
	if err != nil {
		log.Printf("[bridge] %v", err)
		return -1
	}
	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		log.Printf("[bridge] slow move mask: %d pieces, took %v", b.Len(), elapsed)
	}
	return 0
}

func main() {}
