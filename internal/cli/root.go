package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/pinboard/pkg/buildinfo"
)

// RootCommand creates the root cobra command with all subcommands registered.
// The persistent --verbose flag switches the CLI logger to debug level and
// --redis-addr replaces the local file cache with a shared Redis instance.
func (c *CLI) RootCommand() *cobra.Command {
	var (
		verbose   bool
		logFormat string
	)

	root := &cobra.Command{
		Use:   appName,
		Short: "Pinboard lays out waterfall grids with sticky section headers",
		Long: `Pinboard computes waterfall (masonry) grid layouts from layout documents.

Items are packed into the shortest column of each section, section headers
can stay pinned while their section scrolls, and results are written as JSON
or SVG wireframes. Layouts are cached locally for faster subsequent runs.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if verbose {
				c.SetLogLevel(LogDebug)
			}
			if err := c.SetLogFormat(logFormat); err != nil {
				return err
			}
			c.SetOutput(cmd.OutOrStdout())
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetOut(c.out.w)
	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&logFormat, "log-format", logFormatText, "log record format: text, json, logfmt")
	root.PersistentFlags().StringVar(&c.redisAddr, "redis-addr", c.redisAddr, "use a Redis cache at this address (env "+envRedisAddr+")")

	// Register all subcommands
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.stickyCommand())
	root.AddCommand(c.previewCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}
