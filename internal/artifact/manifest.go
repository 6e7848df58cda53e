package artifact

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const manifestFile = "manifest.yaml"

// Manifest names the exported model files in an artifact directory. All files
// in one directory come from the same offline training run.
type Manifest struct {
	Version    string `yaml:"version"`
	Scaler     string `yaml:"scaler"`
	Clustering string `yaml:"clustering"`
	Projector  string `yaml:"projector"`
	Regression string `yaml:"regression"`
}

func defaultManifest() Manifest {
	return Manifest{
		Version:    "unversioned",
		Scaler:     "scaler_clustering.json",
		Clustering: "kmeans_model.json",
		Projector:  "pca_projector.json",
		Regression: "xgboost_model.json",
	}
}

// readManifest reads dir/manifest.yaml when present. Fields left empty keep
// their default file names.
func readManifest(dir string) (Manifest, error) {
	m := defaultManifest()

	raw, err := os.ReadFile(filepath.Join(dir, manifestFile))
	if errors.Is(err, os.ErrNotExist) {
		return m, nil
	}
	if err != nil {
		return Manifest{}, fmt.Errorf("read manifest: %w", err)
	}

	var fromFile Manifest
	if err := yaml.Unmarshal(raw, &fromFile); err != nil {
		return Manifest{}, fmt.Errorf("parse manifest: %w", err)
	}

	if fromFile.Version != "" {
		m.Version = fromFile.Version
	}
	if fromFile.Scaler != "" {
		m.Scaler = fromFile.Scaler
	}
	if fromFile.Clustering != "" {
		m.Clustering = fromFile.Clustering
	}
	if fromFile.Projector != "" {
		m.Projector = fromFile.Projector
	}
	if fromFile.Regression != "" {
		m.Regression = fromFile.Regression
	}

	return m, nil
}
