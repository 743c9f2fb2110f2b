// Package record stores self-play games as parquet files.
package record

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress/zstd"
)

// MoveRow is one played move. Hash is the board hash after the move, so a
// reader can spot transpositions without replaying.
type MoveRow struct {
	GameID  string `parquet:"game_id,dict"`
	Ply     int32  `parquet:"ply"`
	Player  int32  `parquet:"player"`
	PieceID int32  `parquet:"piece_id"`
	Kind    string `parquet:"kind,dict"`
	FromX   int32  `parquet:"from_x"`
	FromY   int32  `parquet:"from_y"`
	ToX     int32  `parquet:"to_x"`
	ToY     int32  `parquet:"to_y"`
	Class   string `parquet:"class,dict"`
	Hash    int64  `parquet:"hash"`
}

// GameRow summarizes one game. Winner is -1 when the ply limit ran out.
type GameRow struct {
	GameID  string `parquet:"game_id,dict"`
	Seed    int64  `parquet:"seed"`
	Players int32  `parquet:"players"`
	Width   int32  `parquet:"width"`
	Height  int32  `parquet:"height"`
	Placed  int32  `parquet:"placed"`
	Plies   int32  `parquet:"plies"`
	Winner  int32  `parquet:"winner"`
	Starved bool   `parquet:"starved"`
}

func WriteMoves(outPath string, rows []MoveRow) error {
	return writeAtomic(outPath, rows, "feudal_move_v1")
}

func WriteGames(outPath string, rows []GameRow) error {
	return writeAtomic(outPath, rows, "feudal_game_v1")
}

func ReadMoves(path string) ([]MoveRow, error) {
	rows, err := parquet.ReadFile[MoveRow](path)
	if err != nil {
		return nil, fmt.Errorf("read parquet: %w", err)
	}
	return rows, nil
}

func ReadGames(path string) ([]GameRow, error) {
	rows, err := parquet.ReadFile[GameRow](path)
	if err != nil {
		return nil, fmt.Errorf("read parquet: %w", err)
	}
	return rows, nil
}

// writeAtomic writes to a temp file next to outPath and renames it into
// place, so readers never see a half-written file.
func writeAtomic[T any](outPath string, rows []T, schema string) error {
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	tmpPath := outPath + ".tmp"
	_ = os.Remove(tmpPath)

	if err := parquet.WriteFile(tmpPath, rows,
		parquet.Compression(&zstd.Codec{Level: zstd.SpeedBetterCompression}),
		parquet.KeyValueMetadata("schema", schema),
	); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("write parquet: %w", err)
	}
	if err := os.Rename(tmpPath, outPath); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename parquet: %w", err)
	}
	return nil
}
