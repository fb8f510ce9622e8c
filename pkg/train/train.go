package train

import (
	"log"

	"github.com/nullmove/tairitsu/pkg/eval"
	"github.com/nullmove/tairitsu/pkg/rng"
)

// calculateMSE scores evaluator against dataset in batches, matching
// how Optimize itself batches, for the initial-MSE progress report.
func calculateMSE(dataset []eval.DataPoint, evaluator eval.Evaluator, batchSize int) float32 {
	var totalSE float32
	for i := 0; i < len(dataset); i += batchSize {
		end := i + batchSize
		if end > len(dataset) {
			end = len(dataset)
		}
		var batchSE float32
		for j := i; j < end; j++ {
			predicted := evaluator.Evaluate(dataset[j].Board)
			errVal := dataset[j].Bounds.Error(predicted)
			batchSE += errVal * errVal
		}
		totalSE += batchSE
	}
	return totalSE / float32(len(dataset))
}

// TrainEvaluator runs opts.Epochs passes of shuffle-then-optimize over
// dataset, logging the initial MSE and the latest per-epoch MSE as
// progress.
func TrainEvaluator(evaluator eval.LearnableEvaluator, dataset []eval.DataPoint, opts TrainOptions) {
	var source rng.Source
	if opts.Seed != nil {
		source = rng.New(*opts.Seed)
	} else {
		source = rng.NewUnseeded()
	}
	initialMSE := calculateMSE(dataset, evaluator, opts.BatchSize)
	for i := 0; i < opts.Epochs; i++ {
		source.Shuffle(len(dataset), func(a, b int) { dataset[a], dataset[b] = dataset[b], dataset[a] })
		mse := evaluator.Optimize(dataset, opts.BatchSize, opts.LearningRate)
		if opts.ShowProgress {
			log.Printf("epoch %d/%d: MSE %v -> %v", i+1, opts.Epochs, initialMSE, mse)
		}
	}
}
