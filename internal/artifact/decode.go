package artifact

import (
	"errors"
	"fmt"
	"math"
	"os"

	"smartStock/domain"

	"github.com/goccy/go-json"
)

// readJSON decodes one artifact file. A missing file is reported as
// domain.ErrArtifactMissing with the path in the message.
func readJSON(path string, v any) error {
	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %s", domain.ErrArtifactMissing, path)
	}
	if err != nil {
		return fmt.Errorf("%w: read %s: %v", domain.ErrStartup, path, err)
	}

	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("%w: decode %s: %v", domain.ErrStartup, path, err)
	}
	return nil
}

func allFinite(xs []float64) bool {
	for _, x := range xs {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}
