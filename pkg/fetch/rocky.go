package fetch

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/pkg/errors"

	"github.com/stdevel/downspeeds/pkg/errata"
)

const defaultRockyBaseURL = "https://errata.rockylinux.org/api/v2/advisories"

const rockyLimit = 100

// Rocky gathers the Rocky Linux security-advisory database for a release
// from the Apollo errata API, walking all result pages.
func Rocky(ctx context.Context, release int, opts ...Option) ([]errata.RockyErratum, error) {
	options := newOptions(defaultRockyBaseURL, opts)

	var advisories []errata.RockyErratum
	for page, pages := 0, 1; page < pages; page++ {
		q := url.Values{}
		q.Set("filters.product", fmt.Sprintf("Rocky Linux %d", release))
		q.Set("filters.type", "TYPE_SECURITY")
		q.Set("filters.fetchRelated", "false")
		q.Set("page", fmt.Sprintf("%d", page))
		q.Set("limit", fmt.Sprintf("%d", rockyLimit))
		u := fmt.Sprintf("%s?%s", options.baseURL, q.Encode())

		slog.Debug("Gathering Rocky Linux errata", "url", u, "page", page)

		var hits struct {
			Total      int                   `json:"total"`
			Advisories []errata.RockyErratum `json:"advisories"`
		}
		if err := options.getJSON(ctx, u, &hits); err != nil {
			return nil, errors.Wrapf(err, "fetch Rocky Linux errata page %d", page)
		}

		advisories = append(advisories, hits.Advisories...)
		pages = (hits.Total + rockyLimit - 1) / rockyLimit
	}

	slog.Debug("Gathered Rocky Linux errata", "count", len(advisories))
	return advisories, nil
}
