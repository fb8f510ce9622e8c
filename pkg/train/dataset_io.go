package train

import (
	"bufio"
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/nullmove/tairitsu/pkg/board"
	"github.com/nullmove/tairitsu/pkg/eval"
)

// SaveDataset writes dataset as a sequence of fixed-size records:
// black u64, white u64, lower f32, upper f32.
func SaveDataset(w io.Writer, dataset []eval.DataPoint) error {
	bw := bufio.NewWriter(w)
	for _, dp := range dataset {
		if err := binary.Write(bw, binary.LittleEndian, dp.Board.Black); err != nil {
			return err
		}
		if err := binary.Write(bw, binary.LittleEndian, dp.Board.White); err != nil {
			return err
		}
		if err := binary.Write(bw, binary.LittleEndian, dp.Bounds.Lower); err != nil {
			return err
		}
		if err := binary.Write(bw, binary.LittleEndian, dp.Bounds.Upper); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// LoadDataset reads the format written by SaveDataset.
func LoadDataset(r io.Reader) ([]eval.DataPoint, error) {
	br := bufio.NewReader(r)
	var dataset []eval.DataPoint
	for {
		var black, white uint64
		var lower, upper float32
		if err := binary.Read(br, binary.LittleEndian, &black); err != nil {
			if err == io.EOF {
				return dataset, nil
			}
			return nil, fmt.Errorf("train: reading dataset record: %w", err)
		}
		if err := binary.Read(br, binary.LittleEndian, &white); err != nil {
			return nil, fmt.Errorf("train: reading dataset record: %w", err)
		}
		if err := binary.Read(br, binary.LittleEndian, &lower); err != nil {
			return nil, fmt.Errorf("train: reading dataset record: %w", err)
		}
		if err := binary.Read(br, binary.LittleEndian, &upper); err != nil {
			return nil, fmt.Errorf("train: reading dataset record: %w", err)
		}
		dataset = append(dataset, eval.DataPoint{
			Board:  board.Board{Black: black, White: white},
			Bounds: board.Bounds[float32]{Lower: lower, Upper: upper},
		})
	}
}

// LoadDatasetShards loads every path in paths concurrently and
// concatenates the results in path order, cancelling the remaining
// loads on the first error.
func LoadDatasetShards(ctx context.Context, paths []string) ([]eval.DataPoint, error) {
	g, ctx := errgroup.WithContext(ctx)
	shards := make([][]eval.DataPoint, len(paths))
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			f, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("train: opening dataset shard %s: %w", path, err)
			}
			defer f.Close()
			dataset, err := LoadDataset(f)
			if err != nil {
				return fmt.Errorf("train: loading dataset shard %s: %w", path, err)
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			shards[i] = dataset
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	var total int
	for _, s := range shards {
		total += len(s)
	}
	result := make([]eval.DataPoint, 0, total)
	for _, s := range shards {
		result = append(result, s...)
	}
	return result, nil
}
