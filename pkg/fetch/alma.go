package fetch

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pkg/errors"

	"github.com/stdevel/downspeeds/pkg/errata"
)

const defaultAlmaBaseURL = "https://errata.almalinux.org"

// Alma gathers the AlmaLinux security-advisory database for a release, a
// single JSON file per release.
func Alma(ctx context.Context, release int, opts ...Option) ([]errata.AlmaErratum, error) {
	options := newOptions(defaultAlmaBaseURL, opts)

	u := fmt.Sprintf("%s/%d/errata.json", options.baseURL, release)

	slog.Debug("Gathering AlmaLinux errata", "url", u)

	var advisories []errata.AlmaErratum
	if err := options.getJSON(ctx, u, &advisories); err != nil {
		return nil, errors.Wrap(err, "fetch AlmaLinux errata")
	}

	slog.Debug("Gathered AlmaLinux errata", "count", len(advisories))
	return advisories, nil
}
