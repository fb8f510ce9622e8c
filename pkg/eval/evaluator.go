// Package eval provides the Evaluator/LearnableEvaluator interfaces
// and the LinearPatternEvaluator: a bank of D4-canonicalized board
// patterns whose {empty, self, opponent} occupancy indexes a learned,
// stage-banked weight, trained by batched gradient descent against
// search-harvested labels.
package eval

import (
	"io"

	"github.com/nullmove/tairitsu/pkg/board"
)

// DataPoint is a training label: either an exact target or an
// interval harvested from a non-fully-searched transposition table
// entry.
type DataPoint struct {
	Board  board.Board
	Bounds board.Bounds[float32]
}

// Evaluator scores a board from black's perspective (boards passed in
// are expected to already be canonicalized by the caller).
type Evaluator interface {
	Clone() Evaluator
	Evaluate(b board.Board) float32
}

// LearnableEvaluator is an Evaluator whose weights can be updated by
// gradient descent and persisted.
type LearnableEvaluator interface {
	Evaluator
	// Optimize runs one epoch of mini-batch gradient descent over
	// dataset and returns the mean squared error across all samples.
	Optimize(dataset []DataPoint, batchSize int, lr float32) float32
	Save(w io.Writer) error
}
