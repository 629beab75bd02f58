package fetch

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/pkg/errors"

	"github.com/stdevel/downspeeds/pkg/errata"
)

const defaultRHELBaseURL = "https://access.redhat.com/hydra/rest/search/kcs"

// rhelRows is the customer portal search API page cap; it covers the full
// security-advisory set of a single release.
const rhelRows = 5000

// RHEL gathers the RHEL security-advisory database for a release from the
// customer portal search API.
func RHEL(ctx context.Context, release int, opts ...Option) ([]errata.UpstreamErratum, error) {
	options := newOptions(defaultRHELBaseURL, opts)

	q := url.Values{}
	q.Set("q", "*:*")
	q.Set("start", "0")
	q.Add("fq", `portal_advisory_type:("Security Advisory") AND documentKind:("Errata")`)
	q.Add("fq", fmt.Sprintf(`portal_product_filter:Red\ Hat\ Enterprise\ Linux|*|%d|*`, release))
	q.Set("facet.mincount", "1")
	q.Set("rows", fmt.Sprintf("%d", rhelRows))
	q.Set("fl", "id,portal_severity,portal_product_names,portal_publication_date,portal_synopsis,view_uri,allTitle")
	q.Set("sort", "portal_publication_date desc")
	q.Set("p", "1")
	u := fmt.Sprintf("%s?%s", options.baseURL, q.Encode())

	slog.Debug("Gathering RHEL errata", "url", u)

	var hits struct {
		Response struct {
			NumFound int                      `json:"numFound"`
			Docs     []errata.UpstreamErratum `json:"docs"`
		} `json:"response"`
	}
	if err := options.getJSON(ctx, u, &hits); err != nil {
		return nil, errors.Wrap(err, "fetch RHEL errata")
	}

	slog.Debug("Gathered RHEL errata", "found", hits.Response.NumFound, "count", len(hits.Response.Docs))
	return hits.Response.Docs, nil
}
