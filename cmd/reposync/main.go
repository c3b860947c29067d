package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vendorsync/reposync"
)

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	cmd := &cobra.Command{
		Use:   "reposync",
		Short: "Keep local copies of remote git repositories current",
		Long: `reposync clones and updates local copies of remote git repositories
listed in a YAML manifest, reports their revision state, and checks out
historical revisions. It is meant for automation such as keeping vendored
dependencies current, not for interactive development: checkouts are hard
resets and uncommitted changes are discarded.`,
	}

	cmd.PersistentFlags().StringVar(&opts.manifest, "manifest", "reposync.yaml", "Path to the repository manifest")
	cmd.PersistentFlags().StringVar(&opts.baseDir, "base-dir", reposync.DefaultBaseDir(), "Directory holding the local copies")

	cmd.AddCommand(
		newStatusCmd(opts),
		newUpdateCmd(opts),
		newLogCmd(opts),
		newCheckoutCmd(opts),
	)

	return cmd
}

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
