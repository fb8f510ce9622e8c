package eval

import (
	"encoding/binary"
	"fmt"
	"io"
	"math/rand"

	"github.com/nullmove/tairitsu/pkg/bit"
	"github.com/nullmove/tairitsu/pkg/board"
)

// LinearPatternEvaluator scores a board as the sum, over a bank of D4
// symmetric patterns, of a stage-indexed weight selected by the
// pattern's {empty, self, opponent} occupancy. Weights are trained by
// batched gradient descent in Optimize.
type LinearPatternEvaluator struct {
	patterns []*pattern
	stages   int
}

var _ Evaluator = (*LinearPatternEvaluator)(nil)
var _ LearnableEvaluator = (*LinearPatternEvaluator)(nil)

// NewLinearPatternEvaluator builds an evaluator with one pattern per
// entry of masks, each holding stages weight banks. A fully occupied
// board has no bank and is scored by its disk difference instead.
// stages must be positive.
func NewLinearPatternEvaluator(masks []bit.Board, stages int) *LinearPatternEvaluator {
	if stages <= 0 {
		panic("eval: stages must be positive")
	}
	e := &LinearPatternEvaluator{stages: stages, patterns: make([]*pattern, len(masks))}
	for i, mask := range masks {
		e.patterns[i] = newPattern(mask, stages)
	}
	return e
}

func (e *LinearPatternEvaluator) Clone() Evaluator {
	clone := &LinearPatternEvaluator{stages: e.stages, patterns: make([]*pattern, len(e.patterns))}
	for i, p := range e.patterns {
		weights := make([]float32, len(p.weights))
		copy(weights, p.weights)
		clone.patterns[i] = &pattern{
			mask:     p.mask,
			symmetry: p.symmetry,
			indexMap: p.indexMap,
			count:    p.count,
			weights:  weights,
		}
	}
	return clone
}

// stageOf buckets board's disk count into [0, stages]; stages itself
// is reached only by a fully occupied board, which Evaluate scores by
// disk difference (see the stage==stages shortcut there).
func (e *LinearPatternEvaluator) stageOf(b board.Board) int {
	return (b.CountTotal() - 4) * e.stages / (board.CellCount - 4)
}

func symmetryCount(s Symmetry) int {
	if s == SymmetryNone {
		return 8
	}
	return 4
}

func (e *LinearPatternEvaluator) Evaluate(b board.Board) float32 {
	stage := e.stageOf(b)
	if stage == e.stages {
		return float32(b.DiskDifference())
	}
	selfD4 := transformD4(b.Black)
	oppD4 := transformD4(b.White)
	var res float64
	for _, p := range e.patterns {
		n := symmetryCount(p.symmetry)
		weights := p.weightsAtStage(stage)
		for i := 0; i < n; i++ {
			idx := extractPattern(selfD4[i], oppD4[i], p.mask)
			res += float64(weights[p.indexMap[idx]])
		}
	}
	return float32(res)
}

// Optimize runs one pass of mini-batch gradient descent over dataset,
// clipping each sample's gradient contribution to [-2, 2], and
// returns the mean squared error across the whole dataset.
func (e *LinearPatternEvaluator) Optimize(dataset []DataPoint, batchSize int, lr float32) float32 {
	if batchSize <= 0 {
		panic("eval: batchSize must be positive")
	}
	var totalSE float32
	var updated []*float32
	for i := 0; i < len(dataset); i += batchSize {
		for _, p := range e.patterns {
			p.resetGradients()
		}
		end := i + batchSize
		if end > len(dataset) {
			end = len(dataset)
		}
		mult := 2 * lr / float32(end-i)
		var batchSE float32
		for j := i; j < end; j++ {
			updated = updated[:0]
			dp := dataset[j]
			stage := e.stageOf(dp.Board)
			if stage == e.stages {
				continue
			}
			selfD4 := transformD4(dp.Board.Black)
			oppD4 := transformD4(dp.Board.White)
			var predicted float32
			for _, p := range e.patterns {
				n := symmetryCount(p.symmetry)
				weights := p.weightsAtStage(stage)
				grads := p.gradientsAtStage(stage)
				for k := 0; k < n; k++ {
					idx := extractPattern(selfD4[k], oppD4[k], p.mask)
					mapped := p.indexMap[idx]
					updated = append(updated, &grads[mapped])
					predicted += weights[mapped]
				}
			}
			errVal := dp.Bounds.Error(predicted)
			if errVal == 0 {
				continue
			}
			batchSE += errVal * errVal
			grad := mult * errVal
			if grad > 2 {
				grad = 2
			} else if grad < -2 {
				grad = -2
			}
			for _, g := range updated {
				*g += grad
			}
		}
		totalSE += batchSE
		for _, p := range e.patterns {
			p.applyGradients()
		}
	}
	return totalSE / float32(len(dataset))
}

// RandomizeWeights seeds every weight from a zero-mean normal
// distribution, just to break the symmetry of an all-zero evaluator
// before the first training iteration.
func (e *LinearPatternEvaluator) RandomizeWeights(r *rand.Rand) {
	stddev := 1.0 / float64(len(e.patterns))
	for _, p := range e.patterns {
		for i := range p.weights {
			p.weights[i] = float32(r.NormFloat64() * stddev)
		}
	}
}

// Save writes stages, then each pattern's (mask, weights), terminated
// by a mask of zero.
func (e *LinearPatternEvaluator) Save(w io.Writer) error {
	if err := binary.Write(w, binary.LittleEndian, uint64(e.stages)); err != nil {
		return err
	}
	for _, p := range e.patterns {
		if err := p.save(w); err != nil {
			return err
		}
	}
	return binary.Write(w, binary.LittleEndian, uint64(0))
}

// LoadLinearPatternEvaluator reads the format written by Save.
func LoadLinearPatternEvaluator(r io.Reader) (*LinearPatternEvaluator, error) {
	var stages uint64
	if err := binary.Read(r, binary.LittleEndian, &stages); err != nil {
		return nil, fmt.Errorf("eval: reading stages: %w", err)
	}
	e := &LinearPatternEvaluator{stages: int(stages)}
	for {
		var mask uint64
		if err := binary.Read(r, binary.LittleEndian, &mask); err != nil {
			return nil, fmt.Errorf("eval: reading pattern mask: %w", err)
		}
		if mask == 0 {
			return e, nil
		}
		p, err := loadPattern(r, bit.Board(mask), e.stages)
		if err != nil {
			return nil, fmt.Errorf("eval: reading pattern weights: %w", err)
		}
		e.patterns = append(e.patterns, p)
	}
}
