package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/stdevel/downspeeds/pkg/errata"
)

// Filename returns the export artifact name for a release.
func Filename(release int) string {
	return fmt.Sprintf("downspeeds-%d.json", release)
}

// Write serializes the comparison dataset to downspeeds-<release>.json under
// dir and returns the path of the written file.
func Write(dir string, release int, dataset errata.Dataset) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", errors.Wrapf(err, "mkdir %s", dir)
	}

	p := filepath.Join(dir, Filename(release))
	f, err := os.Create(p)
	if err != nil {
		return "", errors.Wrapf(err, "create %s", p)
	}
	defer f.Close()

	e := json.NewEncoder(f)
	e.SetEscapeHTML(false)
	e.SetIndent("", "  ")
	if err := e.Encode(dataset); err != nil {
		return "", errors.Wrapf(err, "encode %s", p)
	}

	return p, nil
}
