package gather

import (
	"log/slog"

	"github.com/MakeNowJust/heredoc"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/stdevel/downspeeds/pkg/gather"
	utilos "github.com/stdevel/downspeeds/pkg/util/os"
)

func NewCmd() *cobra.Command {
	options := struct {
		release    int
		useCache   bool
		cacheDir   string
		outputDir  string
		compress   bool
		noProgress bool
		debug      bool
	}{
		release:   9,
		cacheDir:  utilos.UserCacheDir(),
		outputDir: ".",
	}

	cmd := &cobra.Command{
		Use:   "gather",
		Short: "gather errata databases and export publication drift",
		Args:  cobra.NoArgs,
		Example: heredoc.Doc(`
			$ downspeeds gather
			$ downspeeds gather --release 8
			$ downspeeds gather --release 9 --use-cache
		`),
		RunE: func(cmd *cobra.Command, _ []string) error {
			if options.debug {
				slog.SetLogLoggerLevel(slog.LevelDebug)
			}
			if err := gather.Gather(cmd.Context(), options.release, gather.WithCacheDir(options.cacheDir), gather.WithOutputDir(options.outputDir), gather.WithUseCache(options.useCache), gather.WithCompress(options.compress), gather.WithNoProgress(options.noProgress)); err != nil {
				return errors.Wrap(err, "gather")
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&options.release, "release", "r", options.release, "target RHEL release (accepts: [8, 9])")
	cmd.Flags().BoolVarP(&options.useCache, "use-cache", "c", options.useCache, "use cached files instead of gathering data")
	cmd.Flags().StringVarP(&options.cacheDir, "cache-dir", "", options.cacheDir, "errata cache path")
	cmd.Flags().StringVarP(&options.outputDir, "output-dir", "", options.outputDir, "dataset export path")
	cmd.Flags().BoolVarP(&options.compress, "compress", "", options.compress, "compress cached files with zstd")
	cmd.Flags().BoolVarP(&options.noProgress, "no-progress", "", options.noProgress, "suppress download progress bars")
	cmd.Flags().BoolVarP(&options.debug, "debug", "d", options.debug, "debug mode")

	return cmd
}
