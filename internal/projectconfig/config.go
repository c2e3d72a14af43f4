// Package projectconfig provides the ProjectConfig struct and loader for
// .gridlens.yaml project-level configuration files.
package projectconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the project configuration file looked up by Load.
const FileName = ".gridlens.yaml"

// Default values for project configuration. New() references them and no
// other code should duplicate them.
const (
	DefaultBatchesDir = "batches/"

	DefaultServerPort = 3000

	DefaultReportFormat       = "table"
	DefaultReportPreviewWidth = 80
)

// maxWalkUp bounds how many parent directories Load searches.
const maxWalkUp = 10

// PathsConfig holds directory paths.
type PathsConfig struct {
	Batches string `yaml:"batches,omitempty"`
}

// ServerConfig holds dashboard API server settings.
type ServerConfig struct {
	Port           int      `yaml:"port,omitempty"`
	AllowedOrigins []string `yaml:"allowed_origins,omitempty"`
}

// ReportConfig holds CLI report settings.
type ReportConfig struct {
	Format       string `yaml:"format,omitempty"`
	PreviewWidth int    `yaml:"preview_width,omitempty"`
}

// ProjectConfig is the top-level configuration loaded from .gridlens.yaml.
type ProjectConfig struct {
	Paths  PathsConfig  `yaml:"paths,omitempty"`
	Server ServerConfig `yaml:"server,omitempty"`
	Report ReportConfig `yaml:"report,omitempty"`
}

// New returns a ProjectConfig with all hard-coded defaults populated.
func New() *ProjectConfig {
	return &ProjectConfig{
		Paths: PathsConfig{
			Batches: DefaultBatchesDir,
		},
		Server: ServerConfig{
			Port:           DefaultServerPort,
			AllowedOrigins: []string{},
		},
		Report: ReportConfig{
			Format:       DefaultReportFormat,
			PreviewWidth: DefaultReportPreviewWidth,
		},
	}
}

// Load finds .gridlens.yaml by walking up from startDir (max 10 levels),
// unmarshals it, and fills in missing fields with defaults.
// If no config file is found, returns defaults with a nil error.
// Real I/O errors (e.g. permission denied) are returned to the caller.
func Load(startDir string) (*ProjectConfig, error) {
	cfg := New()

	data, err := findConfigFile(startDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("loading %s: %w", FileName, err)
	}

	var fileCfg ProjectConfig
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", FileName, err)
	}

	mergeConfig(cfg, &fileCfg)
	return cfg, nil
}

// findConfigFile walks up from dir looking for .gridlens.yaml.
// Returns os.ErrNotExist if no config file is found.
func findConfigFile(dir string) ([]byte, error) {
	// filepath.Dir(".") does not walk, so start from an absolute path.
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path %q: %w", dir, err)
	}
	dir = absDir

	for i := 0; i < maxWalkUp; i++ {
		p := filepath.Join(dir, FileName)
		data, err := os.ReadFile(p)
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("reading %q: %w", p, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break // reached filesystem root
		}
		dir = parent
	}
	return nil, os.ErrNotExist
}

// mergeConfig overlays non-zero values from src onto dst.
func mergeConfig(dst, src *ProjectConfig) {
	if src.Paths.Batches != "" {
		dst.Paths.Batches = src.Paths.Batches
	}

	if src.Server.Port != 0 {
		dst.Server.Port = src.Server.Port
	}
	if src.Server.AllowedOrigins != nil {
		dst.Server.AllowedOrigins = src.Server.AllowedOrigins
	}

	if src.Report.Format != "" {
		dst.Report.Format = src.Report.Format
	}
	if src.Report.PreviewWidth != 0 {
		dst.Report.PreviewWidth = src.Report.PreviewWidth
	}
}
