// Package batchfile reads experiment batches from disk.
//
// A batch file holds one experiment, its responses and the metric rows scored
// for them. JSON, YAML and gzip-compressed JSON are accepted; the format is
// chosen by extension. Every document is checked against the batch schema
// before it is decoded.
package batchfile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/spboyer/gridlens/internal/models"
	"github.com/spboyer/gridlens/internal/validation"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned for files whose extension is not a known batch format.
var ErrUnsupportedFormat = errors.New("unsupported batch file format")

// ValidationError lists every schema violation found in a batch file.
type ValidationError struct {
	Path     string
	Messages []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid batch file %s:\n  %s", e.Path, strings.Join(e.Messages, "\n  "))
}

type format int

const (
	formatUnknown format = iota
	formatJSON
	formatYAML
	formatGzipJSON
)

func detectFormat(path string) format {
	lower := strings.ToLower(path)
	switch {
	case strings.HasSuffix(lower, ".json.gz"):
		return formatGzipJSON
	case strings.HasSuffix(lower, ".json"):
		return formatJSON
	case strings.HasSuffix(lower, ".yaml"), strings.HasSuffix(lower, ".yml"):
		return formatYAML
	}
	return formatUnknown
}

// IsBatchFile reports whether path has a batch file extension.
func IsBatchFile(path string) bool {
	return detectFormat(path) != formatUnknown
}

// ID is the experiment id a batch file is served under when the file does
// not name one: its base name without the batch extension.
func ID(path string) string {
	base := filepath.Base(path)
	lower := strings.ToLower(base)
	for _, ext := range []string{".json.gz", ".json", ".yaml", ".yml"} {
		if strings.HasSuffix(lower, ext) {
			return base[:len(base)-len(ext)]
		}
	}
	return base
}

// Load reads, validates and decodes the batch file at path.
func Load(path string) (*models.BatchFile, error) {
	f := detectFormat(path)
	if f == formatUnknown {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading batch file: %w", err)
	}

	if f == formatGzipJSON {
		data, err = gunzip(data)
		if err != nil {
			return nil, fmt.Errorf("decompressing %s: %w", path, err)
		}
	}

	bf, err := decode(path, f, data)
	if err != nil {
		return nil, err
	}

	if bf.Experiment.ID == "" {
		bf.Experiment.ID = ID(path)
	}

	slog.Debug("loaded batch", "path", path, "experiment", bf.Experiment.ID,
		"responses", len(bf.Responses), "metrics", len(bf.Metrics))
	return bf, nil
}

func decode(path string, f format, data []byte) (*models.BatchFile, error) {
	var bf models.BatchFile
	switch f {
	case formatYAML:
		if msgs := validation.ValidateBatchYAML(data); len(msgs) > 0 {
			return nil, &ValidationError{Path: path, Messages: msgs}
		}
		if err := yaml.Unmarshal(data, &bf); err != nil {
			return nil, fmt.Errorf("decoding %s: %w", path, err)
		}
	default:
		if msgs := validation.ValidateBatchJSON(data); len(msgs) > 0 {
			return nil, &ValidationError{Path: path, Messages: msgs}
		}
		if err := json.Unmarshal(data, &bf); err != nil {
			return nil, fmt.Errorf("decoding %s: %w", path, err)
		}
	}
	return &bf, nil
}

func gunzip(data []byte) ([]byte, error) {
	zr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer zr.Close()
	return io.ReadAll(zr)
}

// LoadAll loads every path concurrently. Results keep the order of paths; the
// first error encountered is returned.
func LoadAll(paths []string) ([]*models.BatchFile, error) {
	out := make([]*models.BatchFile, len(paths))
	eg := errgroup.Group{}

	for i, p := range paths {
		eg.Go(func() error {
			bf, err := Load(p)
			if err != nil {
				return err
			}
			out[i] = bf
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Discover lists the batch files directly inside dir, sorted by name.
func Discover(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading batch directory: %w", err)
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() || !IsBatchFile(e.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	return paths, nil
}
