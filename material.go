package xtid

import "fmt"

const (
	frameCount         = 4
	frameSelectorIndex = 5
	rowIndexModulus    = 16
	minFrameValues     = 11
)

// KeyMaterial aggregates everything extracted from the homepage and the
// ondemand bundle. It is immutable after construction and safe to share
// across concurrent token generation.
type KeyMaterial struct {
	keyBytes    []byte
	frames      frameTable
	indices     indexTable
	ondemandURL string
}

// buildKeyMaterial cross-validates the extracted values and assembles them.
// Every selector must resolve in range: a wrong derived key must never be
// silently produced, so nothing is clamped, wrapped or defaulted.
func buildKeyMaterial(keyBytes []byte, frames frameTable, indices indexTable, ondemandURL string) (*KeyMaterial, error) {
	if len(keyBytes) <= frameSelectorIndex {
		return nil, fmt.Errorf("key of %d bytes cannot address frame selector byte %d: %w",
			len(keyBytes), frameSelectorIndex, ErrInconsistentKeyMaterial)
	}
	if indices.rowSelector >= len(keyBytes) {
		return nil, fmt.Errorf("row selector index %d exceeds key of %d bytes: %w",
			indices.rowSelector, len(keyBytes), ErrInconsistentKeyMaterial)
	}
	for _, idx := range indices.frameTime {
		if idx >= len(keyBytes) {
			return nil, fmt.Errorf("frame time index %d exceeds key of %d bytes: %w",
				idx, len(keyBytes), ErrInconsistentKeyMaterial)
		}
	}

	frame := frames[keyBytes[frameSelectorIndex]%frameCount]
	rowIndex := int(keyBytes[indices.rowSelector] % rowIndexModulus)
	if rowIndex >= len(frame) {
		return nil, fmt.Errorf("row %d out of range for frame with %d rows: %w",
			rowIndex, len(frame), ErrInconsistentKeyMaterial)
	}
	if len(frame[rowIndex]) < minFrameValues {
		return nil, fmt.Errorf("frame row has %d values, need at least %d: %w",
			len(frame[rowIndex]), minFrameValues, ErrInconsistentKeyMaterial)
	}

	return &KeyMaterial{
		keyBytes:    keyBytes,
		frames:      frames,
		indices:     indices,
		ondemandURL: ondemandURL,
	}, nil
}

// selectedRow returns the animation frame row addressed by the key bytes.
// Bounds were checked at construction.
func (m *KeyMaterial) selectedRow() []int {
	frame := m.frames[m.keyBytes[frameSelectorIndex]%frameCount]
	return frame[m.keyBytes[m.indices.rowSelector]%rowIndexModulus]
}
