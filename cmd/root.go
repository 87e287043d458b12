package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "tz-stage",
	Short: "A CLI tool for staging Terrazul releases",
	Long: `tz-stage locates the workflow run that built the SEA binaries for a
release and hands its coordinates to the packaging delegate.`,
	SilenceUsage: true,
}

func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
