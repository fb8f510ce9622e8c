// Package train implements self-play dataset generation, epoch
// training of a LearnableEvaluator against a harvested dataset, and
// the outer loop that alternates the two.
package train

// DataGenerationOptions configures GenerateDatasetViaSelfPlay.
type DataGenerationOptions struct {
	TotalGames          int
	MidgameSearchDepth  int
	EndgameSolveDepth   int
	BalancePhases       bool
	InitialRandomMoves  int
	Epsilon             float64
	WorkerCount         int
	Seed                *int64
	ShowProgress        bool
}

// DefaultDataGenerationOptions matches the self-play generator's
// documented defaults.
func DefaultDataGenerationOptions() DataGenerationOptions {
	return DataGenerationOptions{
		TotalGames:         100,
		MidgameSearchDepth: 8,
		EndgameSolveDepth:  16,
		BalancePhases:      true,
		InitialRandomMoves: 6,
		Epsilon:            0.01,
		WorkerCount:        1,
		Seed:               nil,
		ShowProgress:       true,
	}
}

// TrainOptions configures TrainEvaluator.
type TrainOptions struct {
	Epochs       int
	BatchSize    int
	LearningRate float32
	Seed         *int64
	ShowProgress bool
}

// DefaultTrainOptions matches the epoch trainer's documented
// defaults.
func DefaultTrainOptions() TrainOptions {
	return TrainOptions{
		Epochs:       20,
		BatchSize:    32,
		LearningRate: 0.01,
		Seed:         nil,
		ShowProgress: true,
	}
}

// TrainingLoopOptions configures TrainingLoop.
type TrainingLoopOptions struct {
	Iterations            int
	Seed                  *int64
	ShowProgress          bool
	DataGenerationOptions DataGenerationOptions
	TrainOptions          TrainOptions
	// OnIterationFinished is called after each iteration's generate +
	// train step, with i the zero-based iteration index and a fresh
	// run ID identifying that iteration's checkpoint. Used by the
	// caller to save checkpoints under a stable, collision-free name.
	OnIterationFinished func(iteration int, runID string)
}

// DefaultTrainingLoopOptions matches the outer loop's documented
// defaults.
func DefaultTrainingLoopOptions() TrainingLoopOptions {
	return TrainingLoopOptions{
		Iterations:            10,
		Seed:                  nil,
		ShowProgress:          true,
		DataGenerationOptions: DefaultDataGenerationOptions(),
		TrainOptions:          DefaultTrainOptions(),
	}
}
