package gather

import (
	"context"
	"log/slog"
	"slices"

	"github.com/pkg/errors"

	"github.com/stdevel/downspeeds/pkg/cache"
	"github.com/stdevel/downspeeds/pkg/errata"
	"github.com/stdevel/downspeeds/pkg/export"
	"github.com/stdevel/downspeeds/pkg/fetch"
	utilos "github.com/stdevel/downspeeds/pkg/util/os"
)

// Releases lists the supported RHEL major releases.
var Releases = []int{8, 9}

type options struct {
	cacheDir  string
	outputDir string

	useCache   bool
	compress   bool
	noProgress bool

	fetchOptions []fetch.Option
}

type Option interface {
	apply(*options)
}

type cacheDirOption string

func (o cacheDirOption) apply(opts *options) {
	opts.cacheDir = string(o)
}

func WithCacheDir(cacheDir string) Option {
	return cacheDirOption(cacheDir)
}

type outputDirOption string

func (o outputDirOption) apply(opts *options) {
	opts.outputDir = string(o)
}

func WithOutputDir(outputDir string) Option {
	return outputDirOption(outputDir)
}

type useCacheOption bool

func (o useCacheOption) apply(opts *options) {
	opts.useCache = bool(o)
}

func WithUseCache(useCache bool) Option {
	return useCacheOption(useCache)
}

type compressOption bool

func (o compressOption) apply(opts *options) {
	opts.compress = bool(o)
}

func WithCompress(compress bool) Option {
	return compressOption(compress)
}

type noProgressOption bool

func (o noProgressOption) apply(opts *options) {
	opts.noProgress = bool(o)
}

func WithNoProgress(noProgress bool) Option {
	return noProgressOption(noProgress)
}

type fetchOptionsOption []fetch.Option

func (o fetchOptionsOption) apply(opts *options) {
	opts.fetchOptions = append(opts.fetchOptions, o...)
}

func WithFetchOptions(fopts ...fetch.Option) Option {
	return fetchOptionsOption(fopts)
}

// Gather collects the RHEL, Rocky Linux and AlmaLinux errata databases for
// one release, correlates publication dates and exports the drift dataset
// as downspeeds-<release>.json.
func Gather(ctx context.Context, release int, opts ...Option) error {
	options := &options{
		cacheDir:  utilos.UserCacheDir(),
		outputDir: ".",
	}
	for _, o := range opts {
		o.apply(options)
	}

	if !slices.Contains(Releases, release) {
		return errors.Errorf("unsupported release %d, expected one of %v", release, Releases)
	}

	slog.Info("Gathering errata databases", "release", release)

	fetchOpts := append([]fetch.Option{fetch.WithNoProgress(options.noProgress)}, options.fetchOptions...)

	upstream, err := source(ctx, cache.RHEL, release, options, func(ctx context.Context) ([]errata.UpstreamErratum, error) {
		return fetch.RHEL(ctx, release, fetchOpts...)
	})
	if err != nil {
		return errors.Wrap(err, "gather RHEL errata")
	}

	rocky, err := source(ctx, cache.Rocky, release, options, func(ctx context.Context) ([]errata.RockyErratum, error) {
		return fetch.Rocky(ctx, release, fetchOpts...)
	})
	if err != nil {
		return errors.Wrap(err, "gather Rocky Linux errata")
	}

	alma, err := source(ctx, cache.Alma, release, options, func(ctx context.Context) ([]errata.AlmaErratum, error) {
		return fetch.Alma(ctx, release, fetchOpts...)
	})
	if err != nil {
		return errors.Wrap(err, "gather AlmaLinux errata")
	}

	slog.Info("Analyzing errata", "rhel", len(upstream), "rockylinux", len(rocky), "almalinux", len(alma))

	dataset, diags := errata.Correlate(upstream, rocky, alma)
	for _, d := range diags {
		slog.Log(ctx, d.Level, d.Message, "erratum", d.Erratum)
	}

	p, err := export.Write(options.outputDir, release, dataset)
	if err != nil {
		return errors.Wrap(err, "export dataset")
	}
	slog.Info("Stored differences", "path", p, "entries", len(dataset))

	return nil
}

// source returns one errata database, from a valid cached artifact when
// allowed, otherwise freshly fetched and written back to the cache.
func source[E any](ctx context.Context, a cache.Artifact, release int, o *options, fetchFn func(context.Context) ([]E, error)) ([]E, error) {
	if o.useCache {
		if p, err := a.Resolve(o.cacheDir, release); err != nil {
			slog.Info("No cached errata database, downloading", "source", a.Source, "release", release)
		} else if err := a.Validate(p); err != nil {
			slog.Warn("Cached errata database invalid, re-downloading", "path", p, "err", err)
		} else {
			var es []E
			if err := cache.Load(p, &es); err != nil {
				slog.Warn("Cached errata database unreadable, re-downloading", "path", p, "err", err)
			} else {
				slog.Info("Using valid cached errata database", "path", p)
				return es, nil
			}
		}
	}

	es, err := fetchFn(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	p := a.Path(o.cacheDir, release, o.compress)
	if err := cache.Store(p, es); err != nil {
		return nil, errors.Wrapf(err, "store %s", p)
	}
	slog.Debug("Wrote gathered errata to cache file", "path", p, "count", len(es))

	return es, nil
}
