package artifact

import (
	"errors"
	"fmt"
	"path/filepath"
	"sync"

	"smartStock/domain"
)

// Bundle is the set of pre-fitted models for one process. It is immutable
// after Load and safe to share between concurrent requests.
type Bundle struct {
	Manifest   Manifest
	Scaler     *StandardScaler
	Clustering *KMeans
	// Projector is nil when the optional projector file is absent.
	Projector  *PCA
	Regression *RegressionPipeline
}

func (b *Bundle) Version() string {
	return b.Manifest.Version
}

// Load reads every artifact in dir. Any missing required file fails with
// domain.ErrArtifactMissing naming the file.
func Load(dir string) (*Bundle, error) {
	manifest, err := readManifest(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStartup, err)
	}

	b := &Bundle{Manifest: manifest}

	b.Scaler = &StandardScaler{}
	if err := readJSON(filepath.Join(dir, manifest.Scaler), b.Scaler); err != nil {
		return nil, err
	}
	if err := b.Scaler.validate(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrStartup, manifest.Scaler, err)
	}

	b.Clustering = &KMeans{}
	if err := readJSON(filepath.Join(dir, manifest.Clustering), b.Clustering); err != nil {
		return nil, err
	}
	if err := b.Clustering.validate(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrStartup, manifest.Clustering, err)
	}

	b.Regression = &RegressionPipeline{}
	if err := readJSON(filepath.Join(dir, manifest.Regression), b.Regression); err != nil {
		return nil, err
	}
	if err := b.Regression.validate(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrStartup, manifest.Regression, err)
	}

	projector := &PCA{}
	err = readJSON(filepath.Join(dir, manifest.Projector), projector)
	switch {
	case errors.Is(err, domain.ErrArtifactMissing):
		// optional
	case err != nil:
		return nil, err
	default:
		if err := projector.validate(); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", domain.ErrStartup, manifest.Projector, err)
		}
		b.Projector = projector
	}

	return b, nil
}

// Store loads the bundle at most once for the lifetime of the process.
type Store struct {
	dir string

	once   sync.Once
	bundle *Bundle
	err    error
}

func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Get returns the cached bundle, loading it on first use. A failed load is
// cached too; the process is expected to stop.
func (s *Store) Get() (*Bundle, error) {
	s.once.Do(func() {
		s.bundle, s.err = Load(s.dir)
	})
	return s.bundle, s.err
}
