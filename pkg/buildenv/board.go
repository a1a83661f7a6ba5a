package buildenv

import (
	"encoding/json"
	"fmt"
	"os"
)

// Board is the subset of a PlatformIO board definition used after the build.
type Board struct {
	Name   string      `json:"name"`
	Upload BoardUpload `json:"upload"`
}

// BoardUpload holds the upload limits of the board.
type BoardUpload struct {
	MaximumSize int64 `json:"maximum_size"`
}

// ReadBoard reads a board JSON file (boards/<id>.json).
func ReadBoard(path string) (*Board, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read board: %w", err)
	}
	var b Board
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("parse board %s: %w", path, err)
	}
	return &b, nil
}

// MaximumSize is upload.maximum_size, the flash available to the sketch; 0 when unset.
func (b *Board) MaximumSize() int64 {
	if b == nil {
		return 0
	}
	return b.Upload.MaximumSize
}
