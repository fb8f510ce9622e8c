package train

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/nullmove/tairitsu/pkg/board"
	"github.com/nullmove/tairitsu/pkg/eval"
)

func sampleDataset() []eval.DataPoint {
	return []eval.DataPoint{
		{Board: board.NewBoard(), Bounds: board.Exact[float32](3)},
		{Board: board.Board{Black: 1, White: 2}, Bounds: board.Bounds[float32]{Lower: -5, Upper: 5}},
	}
}

func TestSaveLoadDatasetRoundtrip(t *testing.T) {
	var buf bytes.Buffer
	want := sampleDataset()
	if err := SaveDataset(&buf, want); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	got, err := LoadDataset(&buf)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d want %d", len(got), len(want))
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("record %d mismatch: got %+v want %+v", i, got[i], want[i])
		}
	}
}

func TestLoadDatasetShardsConcatenatesInOrder(t *testing.T) {
	dir := t.TempDir()
	shardA := sampleDataset()[:1]
	shardB := sampleDataset()[1:]

	pathA := filepath.Join(dir, "a.bin")
	pathB := filepath.Join(dir, "b.bin")
	writeShard(t, pathA, shardA)
	writeShard(t, pathB, shardB)

	got, err := LoadDatasetShards(context.Background(), []string{pathA, pathB})
	if err != nil {
		t.Fatalf("load shards failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 records, got %d", len(got))
	}
	if got[0] != shardA[0] || got[1] != shardB[0] {
		t.Fatalf("shards not concatenated in path order: %+v", got)
	}
}

func TestLoadDatasetShardsPropagatesError(t *testing.T) {
	_, err := LoadDatasetShards(context.Background(), []string{"/nonexistent/path/shard.bin"})
	if err == nil {
		t.Fatalf("expected error for missing shard file")
	}
}

func writeShard(t *testing.T, path string, dataset []eval.DataPoint) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create shard: %v", err)
	}
	defer f.Close()
	if err := SaveDataset(f, dataset); err != nil {
		t.Fatalf("save shard: %v", err)
	}
}
