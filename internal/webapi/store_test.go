package webapi

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spboyer/gridlens/internal/models"
)

func writeBatchFile(t *testing.T, path string, bf *models.BatchFile) {
	t.Helper()

	data, err := json.Marshal(bf)
	if err != nil {
		t.Fatalf("marshal batch: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("create parent dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write batch file: %v", err)
	}
}

func TestFileStoreEmptyDir(t *testing.T) {
	store := NewFileStore(t.TempDir())

	list, err := store.ListExperiments("", "")
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 0 {
		t.Errorf("expected 0 experiments, got %d", len(list))
	}
}

func TestFileStoreNonexistentDir(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "does-not-exist"))

	list, err := store.ListExperiments("", "")
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 0 {
		t.Errorf("expected 0 experiments, got %d", len(list))
	}
}

func TestFileStoreGetBatchAndReload(t *testing.T) {
	dir := t.TempDir()
	ts := time.Date(2026, 2, 18, 10, 0, 0, 0, time.UTC)

	writeBatchFile(t, filepath.Join(dir, "exp-1.json"), sampleBatch("exp-1", ts))

	unnamed := sampleBatch("", ts.Add(time.Hour))
	writeBatchFile(t, filepath.Join(dir, "from-filename.json"), unnamed)

	if err := os.WriteFile(filepath.Join(dir, "broken.json"), []byte(`{"responses": [{"id": 1}]}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "README.md"), []byte("ignored"), 0o644); err != nil {
		t.Fatal(err)
	}

	store := NewFileStore(dir)

	list, err := store.ListExperiments("id", "asc")
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 experiments (broken file skipped), got %d", len(list))
	}
	if list[0].ID != "exp-1" || list[1].ID != "from-filename" {
		t.Errorf("unexpected ids %q, %q", list[0].ID, list[1].ID)
	}

	bf, err := store.GetBatch("exp-1")
	if err != nil {
		t.Fatal(err)
	}
	if len(bf.Responses) != 4 {
		t.Errorf("expected 4 responses, got %d", len(bf.Responses))
	}

	if _, err := store.GetBatch("missing"); !errors.Is(err, ErrBatchNotFound) {
		t.Errorf("expected ErrBatchNotFound, got %v", err)
	}

	writeBatchFile(t, filepath.Join(dir, "exp-2.json"), sampleBatch("exp-2", ts))
	if _, err := store.GetBatch("exp-2"); !errors.Is(err, ErrBatchNotFound) {
		t.Fatalf("expected exp-2 to be invisible before reload, got %v", err)
	}
	if err := store.Reload(); err != nil {
		t.Fatal(err)
	}
	if _, err := store.GetBatch("exp-2"); err != nil {
		t.Errorf("expected exp-2 after reload, got %v", err)
	}
}

func TestFileStoreDuplicateIDKeepsFirstFile(t *testing.T) {
	dir := t.TempDir()

	first := sampleBatch("same", time.Time{})
	first.Experiment.Title = "first"
	second := sampleBatch("same", time.Time{})
	second.Experiment.Title = "second"
	writeBatchFile(t, filepath.Join(dir, "a.json"), first)
	writeBatchFile(t, filepath.Join(dir, "b.json"), second)

	bf, err := NewFileStore(dir).GetBatch("same")
	if err != nil {
		t.Fatal(err)
	}
	if bf.Experiment.Title != "first" {
		t.Errorf("expected the first file to win, got %q", bf.Experiment.Title)
	}
}

func TestSummarizeBatchInvalid(t *testing.T) {
	bf := sampleBatch("dup", time.Time{})
	bf.Responses = append(bf.Responses, bf.Responses[0])

	s := summarizeBatch(bf)
	if s.Error == "" {
		t.Error("expected an error for duplicate response ids")
	}
	if s.Responses != 5 || s.Scored != 0 {
		t.Errorf("unexpected summary %+v", s)
	}
}

func TestSortExperiments(t *testing.T) {
	list := []ExperimentSummary{
		{ID: "b", Quality: 0.5, Responses: 3},
		{ID: "c", Quality: 0.9, Responses: 1},
		{ID: "a", Quality: 0.5, Responses: 2},
	}

	sortExperiments(list, "quality", "desc")
	got := []string{list[0].ID, list[1].ID, list[2].ID}
	want := []string{"c", "a", "b"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("quality desc: got %v, want %v", got, want)
		}
	}

	sortExperiments(list, "responses", "asc")
	if list[0].ID != "c" || list[2].ID != "b" {
		t.Errorf("responses asc: got %v", []string{list[0].ID, list[1].ID, list[2].ID})
	}
}
