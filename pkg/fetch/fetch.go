package fetch

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/cenkalti/backoff"
	"github.com/pkg/errors"
	progressbar "github.com/schollz/progressbar/v3"
)

type options struct {
	baseURL string
	client  *http.Client

	maxElapsedTime time.Duration
	noProgress     bool
}

type Option interface {
	apply(*options)
}

type baseURLOption string

func (o baseURLOption) apply(opts *options) {
	opts.baseURL = string(o)
}

func WithBaseURL(baseURL string) Option {
	return baseURLOption(baseURL)
}

type clientOption struct {
	client *http.Client
}

func (o clientOption) apply(opts *options) {
	opts.client = o.client
}

func WithClient(client *http.Client) Option {
	return clientOption{client: client}
}

type maxElapsedTimeOption time.Duration

func (o maxElapsedTimeOption) apply(opts *options) {
	opts.maxElapsedTime = time.Duration(o)
}

func WithMaxElapsedTime(d time.Duration) Option {
	return maxElapsedTimeOption(d)
}

type noProgressOption bool

func (o noProgressOption) apply(opts *options) {
	opts.noProgress = bool(o)
}

func WithNoProgress(noProgress bool) Option {
	return noProgressOption(noProgress)
}

func newOptions(baseURL string, opts []Option) *options {
	options := &options{
		baseURL:        baseURL,
		client:         &http.Client{Timeout: 5 * time.Minute},
		maxElapsedTime: 5 * time.Minute,
		noProgress:     false,
	}
	for _, o := range opts {
		o.apply(options)
	}
	return options
}

// getJSON downloads url and decodes the body into v, retrying transient
// failures with exponential backoff. Decode failures are permanent: a body
// that is not the expected JSON will not get better by retrying.
func (o *options) getJSON(ctx context.Context, url string, v any) error {
	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = o.maxElapsedTime

	if err := backoff.RetryNotify(func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return backoff.Permanent(errors.Wrapf(err, "new request for %s", url))
		}

		resp, err := o.client.Do(req)
		if err != nil {
			return errors.Wrapf(err, "get %s", url)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return errors.Errorf("unexpected response status %d from %s", resp.StatusCode, url)
		}

		pb := func() *progressbar.ProgressBar {
			if o.noProgress {
				return progressbar.DefaultBytesSilent(-1)
			}
			return progressbar.DefaultBytes(-1, "downloading")
		}()
		defer pb.Finish()

		if err := json.NewDecoder(io.TeeReader(resp.Body, pb)).Decode(v); err != nil {
			return backoff.Permanent(errors.Wrapf(err, "decode response from %s", url))
		}
		return nil
	}, backoff.WithContext(bo, ctx), func(err error, d time.Duration) {
		slog.Warn("Retrying download", "url", url, "err", err, "backoff", d)
	}); err != nil {
		return errors.WithStack(err)
	}

	return nil
}
