package train

import (
	"log"
	"math/rand"

	"github.com/google/uuid"

	"github.com/nullmove/tairitsu/pkg/eval"
)

// TrainingLoop runs opts.Iterations rounds of generate-then-train,
// deriving per-iteration seeds for the two sub-steps from a master
// seeded RNG whenever the caller left that sub-step's own seed unset,
// and invoking OnIterationFinished (if set) after each round with a
// freshly minted run ID for checkpointing.
func TrainingLoop(evaluator eval.LearnableEvaluator, opts TrainingLoopOptions) {
	var master *rand.Rand
	if opts.Seed != nil {
		master = rand.New(rand.NewSource(*opts.Seed))
	} else {
		master = rand.New(rand.NewSource(rand.Int63()))
	}
	seedDataGen := opts.DataGenerationOptions.Seed == nil
	seedTrain := opts.TrainOptions.Seed == nil

	for i := 0; i < opts.Iterations; i++ {
		if opts.ShowProgress {
			log.Printf("=== iteration %d ===", i+1)
		}
		if seedDataGen {
			seed := master.Int63()
			opts.DataGenerationOptions.Seed = &seed
		}
		if seedTrain {
			seed := master.Int63()
			opts.TrainOptions.Seed = &seed
		}
		dataset := GenerateDatasetViaSelfPlay(evaluator, opts.DataGenerationOptions)
		TrainEvaluator(evaluator, dataset, opts.TrainOptions)
		if opts.OnIterationFinished != nil {
			opts.OnIterationFinished(i, uuid.NewString())
		}
	}
}
