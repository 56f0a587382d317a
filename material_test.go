package xtid

import (
	"errors"
	"testing"
)

// validFixtureFrames mirrors the fixture HTML: frame 1 has four 11-value
// rows, the others a single row.
func validFixtureFrames() frameTable {
	small := [][]int{{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11}}
	return frameTable{
		small,
		{
			{10, 20, 30, 40, 50, 60, 70, 80, 90, 100, 110},
			{15, 25, 35, 45, 55, 65, 75, 85, 95, 105, 115},
			{120, 130, 140, 150, 160, 170, 180, 190, 200, 210, 220},
			{99, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10},
		},
		small,
		small,
	}
}

func TestBuildKeyMaterial(t *testing.T) {
	key := []byte("0123456789abcdefghijklmnopqrstuv")
	m, err := buildKeyMaterial(key, validFixtureFrames(), indexTable{rowSelector: 3, frameTime: []int{7, 1}}, fixtureOndemandURL)
	if err != nil {
		t.Fatal(err)
	}
	row := m.selectedRow()
	if row[0] != 99 {
		t.Fatalf("expected row starting with 99, got %v", row)
	}
	if m.ondemandURL != fixtureOndemandURL {
		t.Fatalf("unexpected ondemand url %s", m.ondemandURL)
	}
}

func TestBuildKeyMaterial_KeyTooShortForFrameSelector(t *testing.T) {
	_, err := buildKeyMaterial([]byte("01234"), validFixtureFrames(), indexTable{rowSelector: 0}, "")
	if !errors.Is(err, ErrInconsistentKeyMaterial) {
		t.Fatalf("expected ErrInconsistentKeyMaterial, got %v", err)
	}
}

func TestBuildKeyMaterial_RowSelectorBeyondKey(t *testing.T) {
	key := []byte("0123456789abcdefghijklmnopqrstuv")
	_, err := buildKeyMaterial(key, validFixtureFrames(), indexTable{rowSelector: 99}, "")
	if !errors.Is(err, ErrInconsistentKeyMaterial) {
		t.Fatalf("expected ErrInconsistentKeyMaterial, got %v", err)
	}
}

func TestBuildKeyMaterial_FrameTimeIndexBeyondKey(t *testing.T) {
	key := []byte("0123456789abcdefghijklmnopqrstuv")
	_, err := buildKeyMaterial(key, validFixtureFrames(), indexTable{rowSelector: 3, frameTime: []int{200}}, "")
	if !errors.Is(err, ErrInconsistentKeyMaterial) {
		t.Fatalf("expected ErrInconsistentKeyMaterial, got %v", err)
	}
}

func TestBuildKeyMaterial_RowOutOfRange(t *testing.T) {
	// key[5]='5' selects frame 1; a one-row frame 1 cannot satisfy row
	// selector key[3]%16=3 and must fail, not clamp.
	key := []byte("0123456789abcdefghijklmnopqrstuv")
	frames := validFixtureFrames()
	frames[1] = frames[0]
	_, err := buildKeyMaterial(key, frames, indexTable{rowSelector: 3, frameTime: []int{7, 1}}, "")
	if !errors.Is(err, ErrInconsistentKeyMaterial) {
		t.Fatalf("expected ErrInconsistentKeyMaterial, got %v", err)
	}
}

func TestBuildKeyMaterial_ShortRow(t *testing.T) {
	key := []byte("0123456789abcdefghijklmnopqrstuv")
	frames := validFixtureFrames()
	frames[1][3] = []int{1, 2, 3}
	_, err := buildKeyMaterial(key, frames, indexTable{rowSelector: 3, frameTime: []int{7, 1}}, "")
	if !errors.Is(err, ErrInconsistentKeyMaterial) {
		t.Fatalf("expected ErrInconsistentKeyMaterial, got %v", err)
	}
}
