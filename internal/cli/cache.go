package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/parameter1/omeda-go/pkg/cache"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the response cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Clear all cached responses in the configured backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			ch, closeFn, err := c.newCache(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			clearer, ok := ch.(cache.Clearer)
			if !ok {
				printInfo(c.Out, "The %s cache holds nothing to clear", c.config.Cache.Backend)
				return nil
			}

			count, err := clearer.Clear(cmd.Context())
			if err != nil {
				return err
			}
			if count == 0 {
				printInfo(c.Out, "Cache is empty")
				return nil
			}
			printSuccess(c.Out, "Cleared %d cached entries", count)
			if fc, ok := ch.(*cache.FileCache); ok {
				printDetail(c.Out, "Directory: %s", fc.Dir())
			}
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the file cache directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			if c.config.Cache.Backend != backendFile {
				printWarning(c.Err, "cache backend is %s; the directory is only used by the file backend", c.config.Cache.Backend)
			}
			fmt.Fprintln(c.Out, c.config.Cache.Dir)
			return nil
		},
	}
}
