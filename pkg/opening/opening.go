// Package opening loads a seed list of openings and replays each onto
// a GameState, optionally expanding it by the diagonal-preserving D4
// subgroup (identity, main-diagonal mirror, anti-diagonal mirror,
// 180-degree rotation) for opening augmentation.
package opening

import (
	"fmt"
	"strings"

	"github.com/nullmove/tairitsu/pkg/board"
)

// Parse reads one opening per line: a line is a run of concatenated
// two-character coordinates, applied in order from the opening
// position. Blank lines and lines starting with "//" are skipped.
func Parse(text string) ([]board.GameState, error) {
	var result []board.GameState
	for lineNo, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}
		state, err := replay(line)
		if err != nil {
			return nil, fmt.Errorf("opening: line %d: %w", lineNo+1, err)
		}
		result = append(result, state)
	}
	return result, nil
}

func replay(line string) (board.GameState, error) {
	if len(line)%2 != 0 {
		return board.GameState{}, fmt.Errorf("odd-length opening %q", line)
	}
	state := board.NewGameState()
	for i := 0; i < len(line); i += 2 {
		coord, ok := board.ParseCoord(line[i : i+2])
		if !ok {
			return board.GameState{}, fmt.Errorf("invalid coordinate %q", line[i:i+2])
		}
		if state.LegalMoves&coord.Bit() == 0 {
			return board.GameState{}, fmt.Errorf("coordinate %q is not a legal move", line[i:i+2])
		}
		state = state.PlayCopied(coord)
	}
	return state, nil
}

// ExpandD4 returns opening plus its images under the three other
// diagonal-preserving D4 symmetries: main-diagonal mirror,
// anti-diagonal mirror, and 180-degree rotation.
func ExpandD4(opening board.GameState) [4]board.GameState {
	mainDiag := opening
	mainDiag.MirrorMainDiagonal()
	antiDiag := opening
	antiDiag.MirrorAntiDiagonal()
	rotated := opening
	rotated.Rotate180()
	return [4]board.GameState{opening, mainDiag, antiDiag, rotated}
}
