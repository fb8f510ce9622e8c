// Package player defines the opaque move oracle consumed by match
// harnesses and the self-play data generator, plus the two built-in
// implementations: uniform random play and searcher-backed play.
package player

import "github.com/nullmove/tairitsu/pkg/board"

// Player is a move oracle: GetMove may return board.None to pass, but
// only when the state has no legal moves.
type Player interface {
	GetMove(state board.GameState) board.Coords
}
