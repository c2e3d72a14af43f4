package webapi

import (
	"errors"
	"log/slog"
	"os"
	"sort"
	"sync"

	"github.com/spboyer/gridlens/internal/analysis"
	"github.com/spboyer/gridlens/internal/batchfile"
	"github.com/spboyer/gridlens/internal/models"
	"golang.org/x/sync/errgroup"
)

// ErrBatchNotFound is returned when an experiment ID does not match any stored batch.
var ErrBatchNotFound = errors.New("experiment not found")

// loadConcurrency bounds how many batch files are parsed at once.
const loadConcurrency = 8

// BatchStore provides access to experiment batches.
type BatchStore interface {
	// ListExperiments returns a summary of every batch, sorted by the given field and order.
	ListExperiments(sortField, order string) ([]ExperimentSummary, error)
	// GetBatch returns the batch file for an experiment. Callers must not modify it.
	GetBatch(id string) (*models.BatchFile, error)
}

// FileStore reads batch files from a directory.
type FileStore struct {
	dir string

	mu      sync.RWMutex
	batches map[string]*models.BatchFile
	loaded  bool
	loadErr error
}

// NewFileStore creates a FileStore that reads batches from dir.
func NewFileStore(dir string) *FileStore {
	return &FileStore{
		dir:     dir,
		batches: make(map[string]*models.BatchFile),
	}
}

// load reads all batch files from the configured directory. Files that fail
// to load are logged and skipped.
func (fs *FileStore) load() error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	fs.batches = make(map[string]*models.BatchFile)

	if fs.dir == "" {
		fs.loaded = true
		return nil
	}

	paths, err := batchfile.Discover(fs.dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			fs.loaded = true
			return nil
		}
		fs.loadErr = err
		return err
	}

	files := make([]*models.BatchFile, len(paths))
	eg := errgroup.Group{}
	eg.SetLimit(loadConcurrency)
	for i, p := range paths {
		eg.Go(func() error {
			bf, err := batchfile.Load(p)
			if err != nil {
				slog.Warn("skipping batch file", "path", p, "error", err)
				return nil
			}
			files[i] = bf
			return nil
		})
	}
	_ = eg.Wait()

	for i, bf := range files {
		if bf == nil {
			continue
		}
		id := bf.Experiment.ID
		if _, dup := fs.batches[id]; dup {
			slog.Warn("duplicate experiment id, keeping first file", "id", id, "path", paths[i])
			continue
		}
		fs.batches[id] = bf
	}

	slog.Debug("batch store loaded", "dir", fs.dir, "experiments", len(fs.batches))
	fs.loaded = true
	fs.loadErr = nil
	return nil
}

// ensureLoaded loads data if not already loaded.
func (fs *FileStore) ensureLoaded() error {
	fs.mu.RLock()
	if fs.loaded {
		fs.mu.RUnlock()
		return nil
	}
	fs.mu.RUnlock()
	return fs.load()
}

// Reload forces a fresh reload of all batch files from disk.
func (fs *FileStore) Reload() error {
	return fs.load()
}

// summarizeBatch builds the list entry for one batch file.
func summarizeBatch(bf *models.BatchFile) ExperimentSummary {
	s := ExperimentSummary{
		ID:        bf.Experiment.ID,
		Title:     bf.Experiment.Title,
		Model:     bf.Experiment.Model,
		CreatedAt: bf.Experiment.CreatedAt,
		Responses: len(bf.Responses),
	}

	b, err := analysis.NewBatch(bf.Responses, bf.Metrics)
	if err != nil {
		s.Error = err.Error()
		return s
	}
	s.Scored = b.ScoredLen()
	s.Quality = b.OverallQualityStats().Mean
	s.BestPickID, _ = b.BestPickID()
	return s
}

// ListExperiments returns all experiments sorted by the given field and order.
func (fs *FileStore) ListExperiments(sortField, order string) ([]ExperimentSummary, error) {
	if err := fs.ensureLoaded(); err != nil {
		return nil, err
	}

	fs.mu.RLock()
	defer fs.mu.RUnlock()

	list := make([]ExperimentSummary, 0, len(fs.batches))
	for _, bf := range fs.batches {
		list = append(list, summarizeBatch(bf))
	}

	sortExperiments(list, sortField, order)
	return list, nil
}

// GetBatch returns the batch file stored under id.
func (fs *FileStore) GetBatch(id string) (*models.BatchFile, error) {
	if err := fs.ensureLoaded(); err != nil {
		return nil, err
	}

	fs.mu.RLock()
	defer fs.mu.RUnlock()

	bf, ok := fs.batches[id]
	if !ok {
		return nil, ErrBatchNotFound
	}
	return bf, nil
}

// sortExperiments orders list by field. Ties keep ascending ID order.
func sortExperiments(list []ExperimentSummary, field, order string) {
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })

	less := func(i, j int) bool {
		switch field {
		case "id":
			return list[i].ID < list[j].ID
		case "quality":
			return list[i].Quality < list[j].Quality
		case "responses":
			return list[i].Responses < list[j].Responses
		default: // "created" or empty
			return list[i].CreatedAt.Before(list[j].CreatedAt)
		}
	}

	if order == "asc" {
		sort.SliceStable(list, less)
	} else {
		sort.SliceStable(list, func(i, j int) bool { return less(j, i) })
	}
}

// Ensure FileStore satisfies BatchStore.
var _ BatchStore = (*FileStore)(nil)
